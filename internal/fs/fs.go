// Package fs reads directories into file records for rendering
package fs

import (
	"os"
)

//go:generate mockgen -destination=mock_fs.go -package=fs github.com/young1lin/lsgrid/internal/fs FileSystem

// FileSystem is an interface for file system operations to allow mocking
type FileSystem interface {
	Lstat(name string) (os.FileInfo, error)
	Stat(name string) (os.FileInfo, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Readlink(name string) (string, error)
}

// OSFileSystem implements FileSystem using os package
type OSFileSystem struct{}

// Lstat calls os.Lstat
func (OSFileSystem) Lstat(name string) (os.FileInfo, error) {
	return os.Lstat(name)
}

// Stat calls os.Stat
func (OSFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadDir calls os.ReadDir
func (OSFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

// Readlink calls os.Readlink
func (OSFileSystem) Readlink(name string) (string, error) {
	return os.Readlink(name)
}
