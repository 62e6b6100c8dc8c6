package table

import (
	"fmt"
	"strings"
)

// Column is one attribute slot of a details row
type Column int

const (
	Permissions Column = iota
	HardLinks
	FileSize
	User
	Group
	Modified
	GitStatus
)

var columnNames = map[Column]string{
	Permissions: "permissions",
	HardLinks:   "links",
	FileSize:    "size",
	User:        "user",
	Group:       "group",
	Modified:    "modified",
	GitStatus:   "git",
}

var columnHeaders = map[Column]string{
	Permissions: "Permissions",
	HardLinks:   "Links",
	FileSize:    "Size",
	User:        "User",
	Group:       "Group",
	Modified:    "Date Modified",
	GitStatus:   "Git",
}

func (c Column) String() string {
	return columnNames[c]
}

// Header returns the column's heading text
func (c Column) Header() string {
	return columnHeaders[c]
}

// Alignment is how a cell is padded to its column's width
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Alignment returns Right for numeric columns
func (c Column) Alignment() Alignment {
	switch c {
	case HardLinks, FileSize:
		return AlignRight
	}
	return AlignLeft
}

// ParseColumn looks a column up by its config name
func ParseColumn(name string) (Column, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range columnNames {
		if n == name {
			return c, true
		}
	}
	switch name {
	case "perms", "mode":
		return Permissions, true
	case "date", "time":
		return Modified, true
	}
	return 0, false
}

// DefaultColumns is the schema used when none is configured
func DefaultColumns() []Column {
	return []Column{Permissions, FileSize, User, Modified, GitStatus}
}

// TimeFormat is how the Modified column shows timestamps
type TimeFormat string

const (
	TimeDefault  TimeFormat = "default"
	TimeISO      TimeFormat = "iso"
	TimeLongISO  TimeFormat = "long-iso"
	TimeFullISO  TimeFormat = "full-iso"
	TimeRelative TimeFormat = "relative"
)

// ParseTimeFormat parses a time format name
func ParseTimeFormat(s string) (TimeFormat, error) {
	switch TimeFormat(s) {
	case TimeDefault, TimeISO, TimeLongISO, TimeFullISO, TimeRelative:
		return TimeFormat(s), nil
	case "":
		return TimeDefault, nil
	}
	return "", fmt.Errorf("invalid time format %q", s)
}

// SizeFormat is how the FileSize column shows sizes
type SizeFormat string

const (
	SizeDecimal SizeFormat = "decimal"
	SizeBinary  SizeFormat = "binary"
	SizeBytes   SizeFormat = "bytes"
)

// ParseSizeFormat parses a size format name
func ParseSizeFormat(s string) (SizeFormat, error) {
	switch SizeFormat(s) {
	case SizeDecimal, SizeBinary, SizeBytes:
		return SizeFormat(s), nil
	case "":
		return SizeDecimal, nil
	}
	return "", fmt.Errorf("invalid size format %q", s)
}
