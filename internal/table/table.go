// Package table turns files into rows of attribute cells and keeps track of
// how wide each attribute column has to be.
//
// A Table has a fixed set of columns. Rows are built with RowForFile, fed
// to AddWidths so the table learns the widest value of every column, and
// only then padded into single cells with Render.
package table

import (
	"time"

	"github.com/young1lin/lsgrid/internal/cell"
	"github.com/young1lin/lsgrid/internal/fs"
	"github.com/young1lin/lsgrid/internal/git"
	"github.com/young1lin/lsgrid/internal/theme"
)

// Options is the column schema and value formats of a table
type Options struct {
	Columns    []Column
	TimeFormat TimeFormat
	SizeFormat SizeFormat
}

// Env is the environment values are rendered against
type Env struct {
	Now time.Time
}

// NewEnv captures the current time
func NewEnv() Env {
	return Env{Now: time.Now()}
}

// Row is the attribute cells of one file, in column order
type Row struct {
	Cells []cell.TextCell
}

// Table accumulates the column widths of the rows added to it
type Table struct {
	columns []Column
	opts    *Options
	git     git.Cache
	theme   *theme.Theme
	env     Env
	widths  []int
}

// New creates an empty table. The GitStatus column is left out when gc is
// nil.
func New(opts *Options, gc git.Cache, th *theme.Theme, env Env) *Table {
	columns := make([]Column, 0, len(opts.Columns))
	for _, c := range opts.Columns {
		if c == GitStatus && gc == nil {
			continue
		}
		columns = append(columns, c)
	}
	return &Table{
		columns: columns,
		opts:    opts,
		git:     gc,
		theme:   th,
		env:     env,
		widths:  make([]int, len(columns)),
	}
}

// Columns returns the columns the table actually shows
func (t *Table) Columns() []Column {
	return t.columns
}

// HeaderRow returns the column headings as a row
func (t *Table) HeaderRow() Row {
	cells := make([]cell.TextCell, len(t.columns))
	for i, c := range t.columns {
		cells[i] = cell.PaintStr(t.theme.Header, c.Header())
	}
	return Row{Cells: cells}
}

// RowForFile renders every column's value for f
func (t *Table) RowForFile(f *fs.File) Row {
	cells := make([]cell.TextCell, len(t.columns))
	for i, c := range t.columns {
		cells[i] = t.display(f, c)
	}
	return Row{Cells: cells}
}

func (t *Table) display(f *fs.File, c Column) cell.TextCell {
	switch c {
	case Permissions:
		return renderPermissions(f, t.theme)
	case HardLinks:
		return renderLinks(f, t.theme)
	case FileSize:
		return renderSize(f, t.opts.SizeFormat, t.theme)
	case User:
		return renderUser(f, t.theme)
	case Group:
		return renderGroup(f, t.theme)
	case Modified:
		return renderTime(f, t.opts.TimeFormat, t.env, t.theme)
	case GitStatus:
		return renderGit(t.git.Get(f.Path, f.IsDir()), t.theme)
	}
	return cell.Blank(t.theme.Punctuation)
}

// AddWidths grows the column widths to fit row
func (t *Table) AddWidths(row Row) {
	for i, c := range row.Cells {
		if i < len(t.widths) && c.Width > t.widths[i] {
			t.widths[i] = c.Width
		}
	}
}

// Widths returns the widest cell seen in each column
func (t *Table) Widths() []int {
	return t.widths
}

// Render pads every cell of row to its column width and joins them with a
// single space. Row itself is left untouched so it can be rendered again
// by another table.
func (t *Table) Render(row Row) cell.TextCell {
	var out cell.TextCell
	for i, c := range row.Cells {
		if i > 0 {
			out.AddSpaces(1)
		}
		pad := 0
		if i < len(t.widths) {
			pad = t.widths[i] - c.Width
		}
		if i < len(t.columns) && t.columns[i].Alignment() == AlignRight {
			out.AddSpaces(pad)
			out.Append(c)
		} else {
			out.Append(c)
			out.AddSpaces(pad)
		}
	}
	return out
}
