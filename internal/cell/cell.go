// Package cell provides the styled text cell used by the details and grid
// views. A cell carries its display width alongside its contents so the
// width never has to be measured twice.
package cell

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Fragment is one run of text painted in a single style
type Fragment struct {
	Text   string
	Style  lipgloss.Style
	styled bool
}

// Styled creates a fragment painted with the given style
func Styled(style lipgloss.Style, text string) Fragment {
	return Fragment{Text: text, Style: style, styled: true}
}

// Raw creates a fragment that is written out exactly as given. It is used
// for padding and for escape sequences that must not be styled.
func Raw(text string) Fragment {
	return Fragment{Text: text}
}

// String renders the fragment
func (f Fragment) String() string {
	if !f.styled || f.Text == "" {
		return f.Text
	}
	return f.Style.Render(f.Text)
}

// TextCell holds styled text together with its display width.
//
// Width is the number of terminal columns the contents occupy. It is set
// when the cell is built and updated by every method that adds to the cell;
// nothing ever re-measures the contents.
type TextCell struct {
	Contents []Fragment
	Width    int
}

// Paint creates a cell holding text in the given style. The width is the
// Unicode display width, so wide characters count as two columns.
func Paint(style lipgloss.Style, text string) TextCell {
	return TextCell{
		Contents: []Fragment{Styled(style, text)},
		Width:    runewidth.StringWidth(text),
	}
}

// PaintStr creates a cell for short ASCII text such as column headers,
// using the byte length as the width.
func PaintStr(style lipgloss.Style, text string) TextCell {
	return TextCell{
		Contents: []Fragment{Styled(style, text)},
		Width:    len(text),
	}
}

// Blank creates a one-column placeholder used where an attribute has no
// value, so no table cell is ever empty.
func Blank(style lipgloss.Style) TextCell {
	return TextCell{
		Contents: []Fragment{Styled(style, "-")},
		Width:    1,
	}
}

// AddSpaces appends count unstyled spaces
func (c *TextCell) AddSpaces(count int) {
	if count <= 0 {
		return
	}
	c.Width += count
	c.Contents = append(c.Contents, Raw(strings.Repeat(" ", count)))
}

// Push appends a fragment that occupies width columns. Zero-width
// decoration such as hyperlink escapes is pushed with a width of 0.
func (c *TextCell) Push(f Fragment, width int) {
	c.Contents = append(c.Contents, f)
	c.Width += width
}

// Append moves all of other's contents onto the end of this cell
func (c *TextCell) Append(other TextCell) {
	c.Width += other.Width
	c.Contents = append(c.Contents, other.Contents...)
}

// Clone returns a copy that shares no storage with c
func (c TextCell) Clone() TextCell {
	contents := make([]Fragment, len(c.Contents))
	copy(contents, c.Contents)
	return TextCell{Contents: contents, Width: c.Width}
}

// String renders every fragment in order
func (c TextCell) String() string {
	var b strings.Builder
	for _, f := range c.Contents {
		b.WriteString(f.String())
	}
	return b.String()
}

// Text returns the unstyled text of the cell
func (c TextCell) Text() string {
	var b strings.Builder
	for _, f := range c.Contents {
		b.WriteString(f.Text)
	}
	return b.String()
}
