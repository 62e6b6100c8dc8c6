// Package theme holds the lipgloss styles used to paint listings
package theme

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/young1lin/lsgrid/internal/filetype"
)

// ColorMode selects when colours are used
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a colour mode name
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(s) {
	case ColorAuto, ColorAlways, ColorNever:
		return ColorMode(s), nil
	case "":
		return ColorAuto, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Permissions styles the permission bits column
type Permissions struct {
	FileType     lipgloss.Style
	Read         lipgloss.Style
	Write        lipgloss.Style
	ExecFile     lipgloss.Style
	Exec         lipgloss.Style
	Special      lipgloss.Style
	Attribute    lipgloss.Style
	NoPermission lipgloss.Style
}

// Size styles the file size column
type Size struct {
	Number lipgloss.Style
	Unit   lipgloss.Style
}

// Git styles the git status column
type Git struct {
	New        lipgloss.Style
	Modified   lipgloss.Style
	Deleted    lipgloss.Style
	Renamed    lipgloss.Style
	TypeChange lipgloss.Style
	Ignored    lipgloss.Style
	Conflicted lipgloss.Style
}

// Kinds styles file names by what kind of file they are
type Kinds struct {
	Normal        lipgloss.Style
	Directory     lipgloss.Style
	Symlink       lipgloss.Style
	BrokenSymlink lipgloss.Style
	Pipe          lipgloss.Style
	Device        lipgloss.Style
	Socket        lipgloss.Style
	Executable    lipgloss.Style
}

// Theme is the full set of styles for one render
type Theme struct {
	Punctuation lipgloss.Style
	// Control styles escaped control characters in file names
	Control   lipgloss.Style
	Header    lipgloss.Style
	Perms     Permissions
	Size      Size
	Links     lipgloss.Style
	User      lipgloss.Style
	Group     lipgloss.Style
	Date      lipgloss.Style
	Git       Git
	Kinds     Kinds
	FileTypes map[filetype.FileType]lipgloss.Style
	Icon      lipgloss.Style
}

// New builds the default theme on top of a renderer
func New(r *lipgloss.Renderer) *Theme {
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &Theme{
		Punctuation: fg("8"),
		Control:     fg("1"),
		Header:      r.NewStyle().Underline(true),
		Perms: Permissions{
			FileType:     fg("4"),
			Read:         fg("3").Bold(true),
			Write:        fg("1").Bold(true),
			ExecFile:     fg("2").Bold(true).Underline(true),
			Exec:         fg("2").Bold(true),
			Special:      fg("5"),
			Attribute:    fg("8"),
			NoPermission: fg("8"),
		},
		Size: Size{
			Number: fg("2").Bold(true),
			Unit:   fg("2"),
		},
		Links: fg("1").Bold(true),
		User:  fg("3").Bold(true),
		Group: fg("3"),
		Date:  fg("4"),
		Git: Git{
			New:        fg("2"),
			Modified:   fg("4"),
			Deleted:    fg("1"),
			Renamed:    fg("3"),
			TypeChange: fg("5"),
			Ignored:    fg("8"),
			Conflicted: fg("1").Bold(true),
		},
		Kinds: Kinds{
			Normal:        r.NewStyle(),
			Directory:     fg("4").Bold(true),
			Symlink:       fg("6"),
			BrokenSymlink: fg("1").Underline(true),
			Pipe:          fg("3"),
			Device:        fg("3").Bold(true),
			Socket:        fg("1").Bold(true),
			Executable:    fg("2").Bold(true),
		},
		FileTypes: map[filetype.FileType]lipgloss.Style{
			filetype.Image:      fg("5"),
			filetype.Video:      fg("5").Bold(true),
			filetype.Music:      fg("6"),
			filetype.Lossless:   fg("6").Bold(true),
			filetype.Crypto:     fg("2").Bold(true),
			filetype.Document:   fg("2"),
			filetype.Compressed: fg("1"),
			filetype.Temp:       fg("8"),
			filetype.Compiled:   fg("3"),
			filetype.Build:      fg("3").Bold(true).Underline(true),
			filetype.Source:     fg("3").Bold(true),
		},
		Icon: r.NewStyle(),
	}
}

// Plain returns a theme that never emits escape sequences
func Plain() *Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return New(r)
}

// ForMode returns a theme for output written to w
func ForMode(mode ColorMode, w io.Writer) *Theme {
	switch mode {
	case ColorNever:
		return Plain()
	case ColorAlways:
		r := lipgloss.NewRenderer(w, termenv.WithUnsafe())
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI256)
		}
		return New(r)
	}
	return New(lipgloss.NewRenderer(w))
}

// FileType returns the style for a file type, and false when the type has
// no style of its own
func (t *Theme) FileType(ft filetype.FileType) (lipgloss.Style, bool) {
	s, ok := t.FileTypes[ft]
	return s, ok
}
