// Package details renders the one-file-per-line long listing. Its row
// helpers are shared with the grid-details view, which lays several of
// these listings side by side.
package details

import (
	"bufio"
	"io"

	"github.com/young1lin/lsgrid/internal/cell"
	"github.com/young1lin/lsgrid/internal/filename"
	"github.com/young1lin/lsgrid/internal/fs"
	"github.com/young1lin/lsgrid/internal/git"
	"github.com/young1lin/lsgrid/internal/table"
	"github.com/young1lin/lsgrid/internal/theme"
)

// Options configures the long listing
type Options struct {
	// Table is nil when only names are shown
	Table  *table.Options
	Header bool
}

// Row is one line of a listing before it has been padded: the attribute
// cells, if there is a table, and the file name.
type Row struct {
	Cells *table.Row
	Name  cell.TextCell
}

// Render is a long listing of Files
type Render struct {
	Dir         *fs.Dir
	Files       []*fs.File
	Theme       *theme.Theme
	FileStyle   filename.Options
	Opts        *Options
	Filter      fs.Filter
	GitIgnoring bool
	Git         git.Cache
	Env         table.Env
}

// RenderHeader pairs the table headings with a "Name" heading
func (r *Render) RenderHeader(header table.Row) Row {
	return Row{
		Cells: &header,
		Name:  cell.PaintStr(r.Theme.Header, "Name"),
	}
}

// RenderFile pairs a file's attribute cells with its painted name
func (r *Render) RenderFile(cells table.Row, name cell.TextCell) Row {
	return Row{Cells: &cells, Name: name}
}

// IterateWithTable pads every row against t and appends the name. It must
// be called after every row has been added to t's widths.
func (r *Render) IterateWithTable(t *table.Table, rows []Row) []cell.TextCell {
	out := make([]cell.TextCell, 0, len(rows))
	for _, row := range rows {
		if row.Cells == nil {
			out = append(out, row.Name)
			continue
		}
		c := t.Render(*row.Cells)
		c.AddSpaces(1)
		c.Append(row.Name)
		out = append(out, c)
	}
	return out
}

// Render writes the listing to w, one file per line
func (r *Render) Render(w io.Writer) error {
	files := WithoutIgnored(r.Files, r.Git, r.GitIgnoring)
	bw := bufio.NewWriter(w)

	if r.Opts == nil || r.Opts.Table == nil {
		for _, f := range files {
			name := r.FileStyle.ForFile(f, r.Theme).WithLinkPaths().Paint()
			if _, err := bw.WriteString(name.String() + "\n"); err != nil {
				return err
			}
		}
		return bw.Flush()
	}

	gc := GitForListing(r.Git, r.Dir, files)
	t := table.New(r.Opts.Table, gc, r.Theme, r.Env)

	rows := make([]Row, 0, len(files)+1)
	if r.Opts.Header {
		header := t.HeaderRow()
		t.AddWidths(header)
		rows = append(rows, r.RenderHeader(header))
	}
	for _, f := range files {
		cells := t.RowForFile(f)
		t.AddWidths(cells)
		name := r.FileStyle.ForFile(f, r.Theme).WithLinkPaths().Paint()
		rows = append(rows, r.RenderFile(cells, name))
	}

	for _, c := range r.IterateWithTable(t, rows) {
		if _, err := bw.WriteString(c.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// GitForListing returns gc when it has anything to say about the listing,
// and nil otherwise so the Git column is left out entirely. With no
// directory, any of the listed files being tracked is enough.
func GitForListing(gc git.Cache, dir *fs.Dir, files []*fs.File) git.Cache {
	if gc == nil {
		return nil
	}
	if dir != nil {
		if gc.HasAnythingFor(dir.Path) {
			return gc
		}
		return nil
	}
	for _, f := range files {
		if gc.HasAnythingFor(f.Path) {
			return gc
		}
	}
	return nil
}

// WithoutIgnored drops git-ignored files when ignoring is on
func WithoutIgnored(files []*fs.File, gc git.Cache, ignoring bool) []*fs.File {
	if !ignoring || gc == nil {
		return files
	}
	kept := make([]*fs.File, 0, len(files))
	for _, f := range files {
		// an exact lookup: a directory holding one ignored file is not
		// itself ignored
		if st := gc.Get(f.Path, false); st.Unstaged == git.Ignored {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}
