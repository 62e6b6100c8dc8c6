package fs

import (
	"fmt"
	"slices"
	"strings"
)

// SortField is the attribute files are ordered by
type SortField string

const (
	SortName      SortField = "name"
	SortSize      SortField = "size"
	SortModified  SortField = "modified"
	SortExtension SortField = "extension"
	SortNone      SortField = "none"
)

// ParseSortField parses a sort field name
func ParseSortField(s string) (SortField, error) {
	switch SortField(s) {
	case SortName, SortSize, SortModified, SortExtension, SortNone:
		return SortField(s), nil
	case "":
		return SortName, nil
	}
	return "", fmt.Errorf("invalid sort field %q", s)
}

// Filter chooses and orders the files of a listing
type Filter struct {
	ShowHidden bool
	OnlyDirs   bool
	Sort       SortField
	Reverse    bool
	DirsFirst  bool
}

// Apply filters files and sorts what is left. The input slice may be
// reordered.
func (f Filter) Apply(files []*File) []*File {
	if f.OnlyDirs {
		files = slices.DeleteFunc(files, func(file *File) bool {
			return !file.IsDir() && !file.TargetIsDir
		})
	}

	if f.Sort != SortNone {
		slices.SortStableFunc(files, f.compare)
		if f.Reverse {
			slices.Reverse(files)
		}
	}

	if f.DirsFirst {
		slices.SortStableFunc(files, func(a, b *File) int {
			return boolRank(b.IsDir()) - boolRank(a.IsDir())
		})
	}
	return files
}

func (f Filter) compare(a, b *File) int {
	switch f.Sort {
	case SortSize:
		if c := cmpInt64(a.Size(), b.Size()); c != 0 {
			return c
		}
	case SortModified:
		if a.Info != nil && b.Info != nil {
			if c := a.Info.ModTime().Compare(b.Info.ModTime()); c != 0 {
				return c
			}
		}
	case SortExtension:
		if c := strings.Compare(a.Ext, b.Ext); c != 0 {
			return c
		}
	}
	return compareNames(a.Name, b.Name)
}

// compareNames orders names case-insensitively, falling back to a
// byte comparison so the order is total
func compareNames(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
