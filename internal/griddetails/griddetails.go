// Package griddetails lays several long listings side by side.
//
// The files are split between a number of column tables and the tables are
// packed into a grid. Column counts are tried from two upwards until the
// grid stops fitting the console; the last count that fitted wins. When no
// count fits, or the winner has too few rows to be worth it, the caller
// gets a plain one-column listing instead.
package griddetails

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/young1lin/lsgrid/internal/cell"
	"github.com/young1lin/lsgrid/internal/details"
	"github.com/young1lin/lsgrid/internal/filename"
	"github.com/young1lin/lsgrid/internal/fs"
	"github.com/young1lin/lsgrid/internal/git"
	"github.com/young1lin/lsgrid/internal/grid"
	"github.com/young1lin/lsgrid/internal/table"
	"github.com/young1lin/lsgrid/internal/theme"
)

// MaxColumns bounds the search: column counts from 2 up to MaxColumns-1
// are tried. When every one of them fits, the MaxColumns-1 grid is used.
const MaxColumns = 100

// columnGap is the number of spaces between adjacent tables
const columnGap = 4

// RowThreshold decides whether a grid that fits is still worth using
type RowThreshold struct {
	minRows int
	always  bool
}

// MinimumRows only accepts grids with at least n rows
func MinimumRows(n int) RowThreshold {
	return RowThreshold{minRows: n}
}

// AlwaysGrid accepts every grid that fits
var AlwaysGrid = RowThreshold{always: true}

// Accepts reports whether a grid of rows lines passes the threshold
func (t RowThreshold) Accepts(rows int) bool {
	return t.always || rows >= t.minRows
}

// GridOptions is the grid half of the view
type GridOptions struct {
	// Across fills rows before columns
	Across bool
}

// Render is a grid-details view of Files
type Render struct {
	Dir          *fs.Dir
	Files        []*fs.File
	Theme        *theme.Theme
	FileStyle    filename.Options
	Grid         GridOptions
	Details      *details.Options
	Filter       fs.Filter
	RowThreshold RowThreshold
	GitIgnoring  bool
	Git          git.Cache
	Env          table.Env
	ConsoleWidth int
	Log          *log.Logger
}

// detailsForColumn is the row renderer shared by every column table. It
// holds no files: they are added to the tables here, a slice at a time.
func (r *Render) detailsForColumn() *details.Render {
	return &details.Render{
		Dir:         r.Dir,
		Theme:       r.Theme,
		FileStyle:   r.FileStyle,
		Opts:        r.Details,
		Filter:      r.Filter,
		GitIgnoring: r.GitIgnoring,
		Git:         r.Git,
		Env:         r.Env,
	}
}

// GiveUp returns the one-column listing used when no grid is worthwhile
func (r *Render) GiveUp() *details.Render {
	d := r.detailsForColumn()
	d.Files = r.Files
	return d
}

// Render writes the grid, or the one-column listing when no grid fits
func (r *Render) Render(w io.Writer) error {
	if g, columns, ok := r.FindFittingGrid(); ok {
		_, err := io.WriteString(w, g.FitIntoColumns(columns).String())
		return err
	}
	return r.GiveUp().Render(w)
}

// FindFittingGrid searches for the widest grid that fits the console. It
// returns the grid and the number of columns to pack it into, or false
// when the caller should fall back to a one-column listing.
func (r *Render) FindFittingGrid() (*grid.Grid, int, bool) {
	logger := r.logger()
	if r.Details == nil || r.Details.Table == nil {
		return nil, 0, false
	}
	if r.ConsoleWidth <= 0 {
		logger.Debug("no console width, giving up on the grid")
		return nil, 0, false
	}

	files := details.WithoutIgnored(r.Files, r.Git, r.GitIgnoring)
	if len(files) == 0 {
		return nil, 0, false
	}

	s := &search{
		render:  r,
		drender: r.detailsForColumn(),
		git:     details.GitForListing(r.Git, r.Dir, files),
	}

	first := s.newTable()
	rows := make([]table.Row, len(files))
	for i, f := range files {
		rows[i] = first.RowForFile(f)
	}
	s.rows = rows
	s.names = r.nameCells(files)

	if len(files) == 1 {
		g, columns := s.makeGrid(1)
		if width := g.FitIntoColumns(columns).Width(); width > r.ConsoleWidth {
			logger.Debug("single file does not fit", "width", width, "console", r.ConsoleWidth)
			return nil, 0, false
		}
		return g, columns, true
	}

	var (
		best        *grid.Grid
		bestColumns int
	)
	for columnCount := 2; columnCount < MaxColumns; columnCount++ {
		g, columns := s.makeGrid(columnCount)
		width := g.FitIntoColumns(columns).Width()
		fits := width <= r.ConsoleWidth
		logger.Debug("layout trial", "columns", columnCount, "tables", columns, "width", width, "fits", fits)

		if fits {
			best, bestColumns = g, columns
		}
		if !fits || columnCount >= len(files) {
			break
		}
	}

	if best == nil {
		return nil, 0, false
	}
	if rows := best.FitIntoColumns(bestColumns).RowCount(); !r.RowThreshold.Accepts(rows) {
		logger.Debug("grid has too few rows", "columns", bestColumns, "rows", rows)
		return nil, 0, false
	}
	return best, bestColumns, true
}

// nameCells paints every name once. Hyperlink escapes take no columns on
// screen, so with hyperlinks on the width is rebuilt from the visible
// parts alone.
func (r *Render) nameCells(files []*fs.File) []cell.TextCell {
	names := make([]cell.TextCell, len(files))
	for i, f := range files {
		fn := r.FileStyle.ForFile(f, r.Theme)
		c := fn.Paint()
		if r.FileStyle.EmbedHyperlinks {
			c.Width = fn.BareWidth() + r.FileStyle.IconAllowance() + r.FileStyle.QuoteAllowance(f.Name)
		}
		names[i] = c
	}
	return names
}

func (r *Render) logger() *log.Logger {
	if r.Log != nil {
		return r.Log
	}
	return log.New(io.Discard)
}

// search holds what every layout trial shares: the attribute rows and
// name cells are built once and only read afterwards.
type search struct {
	render  *Render
	drender *details.Render
	git     git.Cache
	rows    []table.Row
	names   []cell.TextCell
}

// column is one table of a trial and the rows assigned to it
type column struct {
	table *table.Table
	rows  []details.Row
	files int
}

func (s *search) newTable() *table.Table {
	return table.New(s.render.Details.Table, s.git, s.render.Theme, s.render.Env)
}

func (s *search) newColumn() *column {
	c := &column{table: s.newTable()}
	if s.render.Details.Header {
		header := c.table.HeaderRow()
		c.table.AddWidths(header)
		c.rows = append(c.rows, s.drender.RenderHeader(header))
	}
	return c
}

// makeGrid splits the files between columnCount tables and packs them
// into a grid. Down listings can leave the last tables without files;
// those are dropped, so the returned count is the number of tables that
// made it into the grid.
func (s *search) makeGrid(columnCount int) (*grid.Grid, int) {
	columns := make([]*column, columnCount)
	for i := range columns {
		columns[i] = s.newColumn()
	}

	across := s.render.Grid.Across
	height := divideRoundingUp(len(s.rows), columnCount)
	for i, row := range s.rows {
		index := i / height
		if across {
			index = i % columnCount
		}
		col := columns[index]
		col.table.AddWidths(row)
		col.rows = append(col.rows, s.drender.RenderFile(row, s.names[i].Clone()))
		col.files++
	}

	var rendered [][]cell.TextCell
	for _, col := range columns {
		if col.files == 0 {
			continue
		}
		rendered = append(rendered, s.drender.IterateWithTable(col.table, col.rows))
	}

	direction := grid.TopToBottom
	if across {
		direction = grid.LeftToRight
	}
	g := grid.New(grid.Options{Direction: direction, Filling: columnGap})

	if across {
		height := 0
		for _, cells := range rendered {
			height = max(height, len(cells))
		}
		for row := 0; row < height; row++ {
			for _, cells := range rendered {
				if row < len(cells) {
					g.Add(gridCell(cells[row]))
				}
			}
		}
	} else {
		for _, cells := range rendered {
			for _, c := range cells {
				g.Add(gridCell(c))
			}
		}
	}
	return g, len(rendered)
}

func gridCell(c cell.TextCell) grid.Cell {
	return grid.Cell{Contents: c.String(), Width: c.Width}
}

func divideRoundingUp(a, b int) int {
	result := a / b
	if a%b != 0 {
		result++
	}
	return result
}
