// Package grid packs pre-measured cells into columns that fit a terminal.
//
// Cells are laid out either left to right (filling each row before moving
// on) or top to bottom (filling each column first), with a fixed number of
// spaces between columns. Cell widths are trusted as given.
package grid

import (
	"strings"
)

// Direction controls the order cells are placed in
type Direction int

const (
	// LeftToRight fills each row before moving to the next
	LeftToRight Direction = iota
	// TopToBottom fills each column before moving to the next
	TopToBottom
)

// Cell is rendered text plus the number of terminal columns it occupies
type Cell struct {
	Contents string
	Width    int
}

// Options configures a grid
type Options struct {
	Direction Direction
	// Filling is the number of spaces between adjacent columns
	Filling int
}

// Grid accumulates cells for packing
type Grid struct {
	options  Options
	cells    []Cell
	maxWidth int
}

// New creates an empty grid
func New(options Options) *Grid {
	return &Grid{options: options}
}

// Add appends a cell
func (g *Grid) Add(c Cell) {
	if c.Width > g.maxWidth {
		g.maxWidth = c.Width
	}
	g.cells = append(g.cells, c)
}

// Cells returns the cells in insertion order
func (g *Grid) Cells() []Cell {
	return g.cells
}

// Display is a grid packed into a fixed number of columns
type Display struct {
	grid     *Grid
	numLines int
	widths   []int
}

// FitIntoColumns packs the grid into exactly numColumns columns
func (g *Grid) FitIntoColumns(numColumns int) Display {
	if numColumns < 1 {
		numColumns = 1
	}
	numLines := divideRoundingUp(len(g.cells), numColumns)
	return Display{
		grid:     g,
		numLines: numLines,
		widths:   g.columnWidths(numLines, numColumns),
	}
}

// FitIntoWidth packs the grid into as many columns as fit within
// maxWidth. It returns false when even one column is too wide.
func (g *Grid) FitIntoWidth(maxWidth int) (Display, bool) {
	if len(g.cells) == 0 {
		return g.FitIntoColumns(1), true
	}
	if g.maxWidth > maxWidth {
		return Display{}, false
	}

	best := g.FitIntoColumns(1)
	for numColumns := 2; numColumns <= len(g.cells); numColumns++ {
		d := g.FitIntoColumns(numColumns)
		if d.Width() > maxWidth {
			break
		}
		best = d
	}
	return best, true
}

func (g *Grid) columnWidths(numLines, numColumns int) []int {
	widths := make([]int, numColumns)
	for i, c := range g.cells {
		col := g.columnOf(i, numLines, numColumns)
		if col < numColumns && c.Width > widths[col] {
			widths[col] = c.Width
		}
	}
	return widths
}

func (g *Grid) columnOf(index, numLines, numColumns int) int {
	if g.options.Direction == LeftToRight {
		return index % numColumns
	}
	if numLines == 0 {
		return 0
	}
	return index / numLines
}

// Width returns the total width including the filling between columns
func (d Display) Width() int {
	if len(d.widths) == 0 {
		return 0
	}
	total := 0
	for _, w := range d.widths {
		total += w
	}
	return total + (len(d.widths)-1)*d.grid.options.Filling
}

// RowCount returns the number of lines the display occupies
func (d Display) RowCount() int {
	return d.numLines
}

// ColumnCount returns the number of columns in the display
func (d Display) ColumnCount() int {
	return len(d.widths)
}

// String renders the display, one line per row, each ending in a newline.
// The last cell on every line is not padded.
func (d Display) String() string {
	if d.grid == nil {
		return ""
	}
	cells := d.grid.cells
	numColumns := len(d.widths)
	filling := strings.Repeat(" ", d.grid.options.Filling)

	var b strings.Builder
	for row := 0; row < d.numLines; row++ {
		var line []int
		for col := 0; col < numColumns; col++ {
			index := d.indexOf(row, col)
			if index < len(cells) {
				line = append(line, index)
			}
		}

		for n, index := range line {
			c := cells[index]
			b.WriteString(c.Contents)
			if n == len(line)-1 {
				break
			}
			col := d.grid.columnOf(index, d.numLines, numColumns)
			if pad := d.widths[col] - c.Width; pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
			b.WriteString(filling)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (d Display) indexOf(row, col int) int {
	if d.grid.options.Direction == LeftToRight {
		return row*len(d.widths) + col
	}
	return col*d.numLines + row
}

func divideRoundingUp(a, b int) int {
	result := a / b
	if a%b != 0 {
		result++
	}
	return result
}
