// Package filename paints file names: icon, quoting, kind colour,
// classification suffix and optional terminal hyperlinks
package filename

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/young1lin/lsgrid/internal/cell"
	"github.com/young1lin/lsgrid/internal/fs"
	"github.com/young1lin/lsgrid/internal/theme"
)

// IconMode controls when icons are drawn
type IconMode int

const (
	IconsNever IconMode = iota
	// IconsAutomatic draws icons only when writing to a terminal
	IconsAutomatic
	IconsAlways
)

// ParseIconMode parses "never", "auto" or "always"
func ParseIconMode(s string) (IconMode, error) {
	switch s {
	case "never", "":
		return IconsNever, nil
	case "auto", "automatic":
		return IconsAutomatic, nil
	case "always":
		return IconsAlways, nil
	}
	return IconsNever, fmt.Errorf("invalid icon mode %q (want never, auto or always)", s)
}

// QuoteStyle controls quoting of names that contain spaces
type QuoteStyle int

const (
	QuoteSpaces QuoteStyle = iota
	NoQuotes
)

// Options controls how names are painted
type Options struct {
	Classify        bool
	Icons           IconMode
	IconSpacing     int
	EmbedHyperlinks bool
	QuoteStyle      QuoteStyle
	// IsTerminal resolves IconsAutomatic
	IsTerminal bool
}

// ShowsIcons reports whether icons are drawn with these options
func (o Options) ShowsIcons() bool {
	switch o.Icons {
	case IconsAlways:
		return true
	case IconsAutomatic:
		return o.IsTerminal
	}
	return false
}

// QuoteAllowance returns the extra width quoting adds to name
func (o Options) QuoteAllowance(name string) int {
	if o.QuoteStyle == QuoteSpaces && strings.Contains(name, " ") {
		return 2
	}
	return 0
}

// IconAllowance returns the width of the icon and the spacing after it
func (o Options) IconAllowance() int {
	if !o.ShowsIcons() {
		return 0
	}
	return 1 + o.IconSpacing
}

// FileName paints one file's name
type FileName struct {
	File      *fs.File
	Options   Options
	theme     *theme.Theme
	linkPaths bool
}

// ForFile prepares a file name for painting
func (o Options) ForFile(f *fs.File, th *theme.Theme) *FileName {
	return &FileName{File: f, Options: o, theme: th}
}

// WithLinkPaths also paints " -> target" after symlinks
func (n *FileName) WithLinkPaths() *FileName {
	n.linkPaths = true
	return n
}

// Paint builds the cell for the name. The cell's width counts only the
// visible glyphs: hyperlink escapes are pushed with zero width.
func (n *FileName) Paint() cell.TextCell {
	var c cell.TextCell
	style := n.Style()

	if n.Options.ShowsIcons() {
		c.Push(cell.Styled(style, iconFor(n.File)), 1)
		c.AddSpaces(n.Options.IconSpacing)
	}

	quoted := n.Options.QuoteAllowance(n.File.Name) > 0
	if n.Options.EmbedHyperlinks {
		c.Push(cell.Raw(hyperlinkStart(n.File.Path)), 0)
	}
	if quoted {
		c.Push(cell.Styled(n.theme.Punctuation, "'"), 1)
	}
	n.paintEscaped(&c, style, n.File.Name)
	if quoted {
		c.Push(cell.Styled(n.theme.Punctuation, "'"), 1)
	}
	if n.Options.EmbedHyperlinks {
		c.Push(cell.Raw(hyperlinkEnd), 0)
	}

	if n.Options.Classify {
		if ind := n.classifyIndicator(); ind != "" {
			c.Append(cell.PaintStr(n.theme.Punctuation, ind))
		}
	}

	if n.linkPaths && n.File.Kind == fs.KindSymlink && n.File.LinkTarget != "" {
		c.Append(cell.PaintStr(n.theme.Punctuation, " -> "))
		targetStyle := n.theme.Kinds.Symlink
		if n.File.BrokenLink {
			targetStyle = n.theme.Kinds.BrokenSymlink
		}
		n.paintEscaped(&c, targetStyle, n.File.LinkTarget)
	}
	return c
}

// paintEscaped appends text to c with every control character written as
// an escape such as \t. A raw tab or newline would reach the terminal with
// a width the cell does not record.
func (n *FileName) paintEscaped(c *cell.TextCell, style lipgloss.Style, text string) {
	start := 0
	for i, r := range text {
		if !unicode.IsControl(r) {
			continue
		}
		if start < i {
			c.Append(cell.Paint(style, text[start:i]))
		}
		c.Append(cell.PaintStr(n.theme.Control, escapeRune(r)))
		start = i + utf8.RuneLen(r)
	}
	if start < len(text) {
		c.Append(cell.Paint(style, text[start:]))
	}
}

// escapeRune returns the Go escape for r, without quotes
func escapeRune(r rune) string {
	q := strconv.QuoteRune(r)
	return q[1 : len(q)-1]
}

// escapedWidth is the display width of text once control characters are
// escaped. It measures the same runs paintEscaped paints.
func escapedWidth(text string) int {
	w, start := 0, 0
	for i, r := range text {
		if !unicode.IsControl(r) {
			continue
		}
		w += runewidth.StringWidth(text[start:i]) + len(escapeRune(r))
		start = i + utf8.RuneLen(r)
	}
	return w + runewidth.StringWidth(text[start:])
}

// BareWidth is the width of the name and its classify suffix, without the
// icon, quotes or link target
func (n *FileName) BareWidth() int {
	w := escapedWidth(n.File.Name)
	if n.Options.Classify {
		w += len(n.classifyIndicator())
	}
	return w
}

// Style returns the style the name is painted in
func (n *FileName) Style() lipgloss.Style {
	k := n.theme.Kinds
	switch n.File.Kind {
	case fs.KindDirectory:
		return k.Directory
	case fs.KindSymlink:
		if n.File.BrokenLink {
			return k.BrokenSymlink
		}
		return k.Symlink
	case fs.KindPipe:
		return k.Pipe
	case fs.KindSocket:
		return k.Socket
	case fs.KindBlockDevice, fs.KindCharDevice:
		return k.Device
	}
	if n.File.IsExecutable() {
		return k.Executable
	}
	if s, ok := n.theme.FileType(n.File.Type); ok {
		return s
	}
	return k.Normal
}

func (n *FileName) classifyIndicator() string {
	switch n.File.Kind {
	case fs.KindDirectory:
		return "/"
	case fs.KindSymlink:
		return "@"
	case fs.KindPipe:
		return "|"
	case fs.KindSocket:
		return "="
	}
	if n.File.IsExecutable() {
		return "*"
	}
	return ""
}

const hyperlinkEnd = "\x1b]8;;\x1b\\"

func hyperlinkStart(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return "\x1b]8;;" + u.String() + "\x1b\\"
}
