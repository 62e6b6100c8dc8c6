package filename

import (
	"github.com/young1lin/lsgrid/internal/filetype"
	"github.com/young1lin/lsgrid/internal/fs"
)

// Nerd Font glyphs. Every icon occupies one terminal column.
const (
	iconDirectory = ""
	iconFile      = ""
	iconSymlink   = ""
	iconPipe      = ""
	iconSocket    = ""
	iconDevice    = ""
	iconExec      = ""
)

var extensionIcons = map[string]string{
	"c":    "",
	"cpp":  "",
	"css":  "",
	"go":   "",
	"html": "",
	"java": "",
	"js":   "",
	"json": "",
	"lock": "",
	"md":   "",
	"py":   "",
	"rb":   "",
	"rs":   "",
	"sh":   "",
	"toml": "",
	"ts":   "",
	"txt":  "",
	"yaml": "",
	"yml":  "",
}

var typeIcons = map[filetype.FileType]string{
	filetype.Image:      "",
	filetype.Video:      "",
	filetype.Music:      "",
	filetype.Lossless:   "",
	filetype.Crypto:     "",
	filetype.Document:   "",
	filetype.Compressed: "",
	filetype.Temp:       "",
	filetype.Compiled:   "",
	filetype.Build:      "",
	filetype.Source:     "",
}

// iconFor picks the icon for a file: kind first, then extension, then type
func iconFor(f *fs.File) string {
	switch f.Kind {
	case fs.KindDirectory:
		return iconDirectory
	case fs.KindSymlink:
		if f.TargetIsDir {
			return iconDirectory
		}
		return iconSymlink
	case fs.KindPipe:
		return iconPipe
	case fs.KindSocket:
		return iconSocket
	case fs.KindBlockDevice, fs.KindCharDevice:
		return iconDevice
	}
	if icon, ok := extensionIcons[f.Ext]; ok {
		return icon
	}
	if icon, ok := typeIcons[f.Type]; ok {
		return icon
	}
	if f.IsExecutable() {
		return iconExec
	}
	return iconFile
}
