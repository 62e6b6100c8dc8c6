package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/young1lin/lsgrid/internal/filetype"
)

// ErrNotDirectory is returned when a directory listing is requested for
// something that is not a directory
var ErrNotDirectory = errors.New("not a directory")

// Kind is what sort of file system entry a file is
type Kind int

const (
	KindFile Kind = iota
	KindDirectory
	KindSymlink
	KindPipe
	KindSocket
	KindBlockDevice
	KindCharDevice
)

// Owner holds the resolved user and group names of a file
type Owner struct {
	User  string
	Group string
	// Mine is true when the file belongs to the current user
	Mine bool
}

// File is one entry to be rendered. It is read once and not modified
// afterwards.
type File struct {
	Name  string
	Path  string
	Ext   string
	Info  os.FileInfo
	Kind  Kind
	Type  filetype.FileType
	Links uint64
	Owner Owner

	// LinkTarget is set for symlinks. BrokenLink is true when the target
	// does not exist.
	LinkTarget string
	BrokenLink bool
	// TargetIsDir is true for symlinks pointing at directories
	TargetIsDir bool
}

// IsDir reports whether the file is a directory
func (f *File) IsDir() bool {
	return f.Kind == KindDirectory
}

// IsExecutable reports whether a regular file has any execute bit set
func (f *File) IsExecutable() bool {
	return f.Kind == KindFile && f.Info != nil && f.Info.Mode().Perm()&0o111 != 0
}

// Size returns the file size in bytes
func (f *File) Size() int64 {
	if f.Info == nil {
		return 0
	}
	return f.Info.Size()
}

func kindOf(mode os.FileMode) Kind {
	switch {
	case mode.IsDir():
		return KindDirectory
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	case mode&os.ModeNamedPipe != 0:
		return KindPipe
	case mode&os.ModeSocket != 0:
		return KindSocket
	case mode&os.ModeCharDevice != 0:
		return KindCharDevice
	case mode&os.ModeDevice != 0:
		return KindBlockDevice
	}
	return KindFile
}

// NewFile builds a file record for path from its lstat information
func NewFile(fsys FileSystem, path string, info os.FileInfo, siblings func(string) bool) *File {
	name := info.Name()
	if name == "" || name == "." {
		name = filepath.Base(path)
	}

	f := &File{
		Name: name,
		Path: path,
		Ext:  filetype.Extension(name),
		Info: info,
		Kind: kindOf(info.Mode()),
	}
	f.Owner, f.Links = ownerOf(info)
	if f.Kind != KindDirectory {
		f.Type = filetype.Detect(name, siblings)
	}

	if f.Kind == KindSymlink {
		if target, err := fsys.Readlink(path); err == nil {
			f.LinkTarget = target
		}
		if ti, err := fsys.Stat(path); err != nil {
			f.BrokenLink = true
		} else {
			f.TargetIsDir = ti.IsDir()
		}
	}
	return f
}

// Dir is a listed directory and its filtered, sorted files
type Dir struct {
	Path  string
	Files []*File
}

// ReadDir lists path, applying filter to choose and order the entries
func ReadDir(fsys FileSystem, path string, filter Filter) (*Dir, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}

	entries, err := fsys.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", path, err)
	}

	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}
	siblings := func(name string) bool { return names[name] }

	files := make([]*File, 0, len(entries))
	for _, e := range entries {
		if !filter.ShowHidden && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		full := filepath.Join(path, e.Name())
		fi, err := fsys.Lstat(full)
		if err != nil {
			// Entry vanished between listing and stat
			continue
		}
		files = append(files, NewFile(fsys, full, fi, siblings))
	}

	return &Dir{Path: path, Files: filter.Apply(files)}, nil
}

// FromPaths builds file records for paths given directly, such as
// command-line arguments that are not directories
func FromPaths(fsys FileSystem, paths []string, filter Filter) ([]*File, error) {
	files := make([]*File, 0, len(paths))
	for _, p := range paths {
		fi, err := fsys.Lstat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		f := NewFile(fsys, p, fi, nil)
		f.Name = p
		files = append(files, f)
	}
	return filter.Apply(files), nil
}
