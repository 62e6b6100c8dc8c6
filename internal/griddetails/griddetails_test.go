package griddetails

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang/mock/gomock"
	"github.com/mattn/go-runewidth"

	"github.com/young1lin/lsgrid/internal/details"
	"github.com/young1lin/lsgrid/internal/filename"
	"github.com/young1lin/lsgrid/internal/fs"
	"github.com/young1lin/lsgrid/internal/git"
	"github.com/young1lin/lsgrid/internal/table"
	"github.com/young1lin/lsgrid/internal/theme"
)

type fakeInfo struct {
	name string
	size int64
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return f.size }
func (f fakeInfo) Mode() os.FileMode  { return 0o644 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() interface{}   { return nil }

// files returns n files named f0, f1, ... each one byte long. With only
// the size column shown, every rendered row is "1 fN".
func files(n int) []*fs.File {
	out := make([]*fs.File, n)
	for i := range out {
		name := fmt.Sprintf("f%d", i)
		out[i] = &fs.File{
			Name: name,
			Path: "/work/" + name,
			Kind: fs.KindFile,
			Info: fakeInfo{name: name, size: 1},
		}
	}
	return out
}

func newRender(fl []*fs.File, width int) *Render {
	return &Render{
		Files:        fl,
		Theme:        theme.Plain(),
		Details:      &details.Options{Table: &table.Options{Columns: []table.Column{table.FileSize}}},
		RowThreshold: AlwaysGrid,
		Env:          table.Env{Now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		ConsoleWidth: width,
	}
}

// tablesWidth is the width of k tables of two-character names
func tablesWidth(k int) int {
	return 4*k + columnGap*(k-1)
}

func render(t *testing.T, r *Render) string {
	t.Helper()
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestDownDistribution(t *testing.T) {
	r := newRender(files(7), tablesWidth(3))

	g, columns, ok := r.FindFittingGrid()
	if !ok {
		t.Fatal("FindFittingGrid() gave up")
	}
	if columns != 3 {
		t.Fatalf("columns = %d, want 3", columns)
	}

	want := "1 f0    1 f3    1 f6\n" +
		"1 f1    1 f4\n" +
		"1 f2    1 f5\n"
	if got := g.FitIntoColumns(columns).String(); got != want {
		t.Errorf("grid =\n%q\nwant\n%q", got, want)
	}
}

func TestAcrossDistribution(t *testing.T) {
	r := newRender(files(7), tablesWidth(3))
	r.Grid.Across = true

	want := "1 f0    1 f1    1 f2\n" +
		"1 f3    1 f4    1 f5\n" +
		"1 f6\n"
	if got := render(t, r); got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestAcrossOneFilePerColumn(t *testing.T) {
	r := newRender(files(5), 1000)
	r.Grid.Across = true

	_, columns, ok := r.FindFittingGrid()
	if !ok || columns != 5 {
		t.Fatalf("FindFittingGrid() = %d, %v, want 5 columns", columns, ok)
	}
	if got := render(t, r); got != "1 f0    1 f1    1 f2    1 f3    1 f4\n" {
		t.Errorf("Render() = %q", got)
	}
}

func TestDownDropsEmptyTables(t *testing.T) {
	// four tables of ceil(5/4) = 2 rows only need three tables
	r := newRender(files(5), tablesWidth(3))

	_, columns, ok := r.FindFittingGrid()
	if !ok || columns != 3 {
		t.Fatalf("FindFittingGrid() = %d, %v, want 3 columns", columns, ok)
	}
	want := "1 f0    1 f2    1 f4\n" +
		"1 f1    1 f3\n"
	if got := render(t, r); got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestMinimumRowsRejectsShortGrid(t *testing.T) {
	// eight tables fit; ten files in eight columns is only two rows
	tests := []struct {
		name      string
		threshold RowThreshold
		wantOK    bool
	}{
		{"minimum five rows", MinimumRows(5), false},
		{"minimum two rows", MinimumRows(2), true},
		{"always grid", AlwaysGrid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRender(files(10), tablesWidth(8))
			r.Grid.Across = true
			r.RowThreshold = tt.threshold

			_, columns, ok := r.FindFittingGrid()
			if ok != tt.wantOK {
				t.Fatalf("FindFittingGrid() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && columns != 8 {
				t.Errorf("columns = %d, want 8", columns)
			}
		})
	}
}

func TestGiveUpFallsBackToDetails(t *testing.T) {
	r := newRender(files(3), tablesWidth(2)-1)

	if _, _, ok := r.FindFittingGrid(); ok {
		t.Fatal("FindFittingGrid() should give up when two columns do not fit")
	}
	want := "1 f0\n1 f1\n1 f2\n"
	if got := render(t, r); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestSingleFile(t *testing.T) {
	r := newRender(files(1), 4)
	r.RowThreshold = MinimumRows(10)

	g, columns, ok := r.FindFittingGrid()
	if !ok || columns != 1 {
		t.Fatalf("FindFittingGrid() = %d, %v, want a one-column grid", columns, ok)
	}
	if got := g.FitIntoColumns(1).String(); got != "1 f0\n" {
		t.Errorf("grid = %q", got)
	}

	r.ConsoleWidth = 3
	if _, _, ok := r.FindFittingGrid(); ok {
		t.Error("FindFittingGrid() should give up when the file is wider than the console")
	}
}

func TestZeroWidthGivesUp(t *testing.T) {
	for _, width := range []int{0, -5} {
		r := newRender(files(3), width)
		if _, _, ok := r.FindFittingGrid(); ok {
			t.Errorf("FindFittingGrid() with width %d should give up", width)
		}
	}
}

func TestNoFilesGivesUp(t *testing.T) {
	r := newRender(nil, 80)
	if _, _, ok := r.FindFittingGrid(); ok {
		t.Error("FindFittingGrid() with no files should give up")
	}
	if got := render(t, r); got != "" {
		t.Errorf("Render() = %q, want nothing", got)
	}
}

func TestNoTableOptionsGivesUp(t *testing.T) {
	r := newRender(files(3), 80)
	r.Details = &details.Options{}
	if _, _, ok := r.FindFittingGrid(); ok {
		t.Error("FindFittingGrid() without table options should give up")
	}
}

func TestNeverWiderThanConsole(t *testing.T) {
	for _, across := range []bool{false, true} {
		for n := 1; n <= 25; n++ {
			for width := 1; width <= 90; width++ {
				r := newRender(files(n), width)
				r.Grid.Across = across

				g, columns, ok := r.FindFittingGrid()
				if !ok {
					continue
				}
				if got := g.FitIntoColumns(columns).Width(); got > width {
					t.Fatalf("n=%d width=%d across=%v: grid is %d wide", n, width, across, got)
				}
			}
		}
	}
}

func TestPicksMostColumnsThatFit(t *testing.T) {
	// up to ten files every name is two characters wide
	for n := 2; n <= 10; n++ {
		for width := tablesWidth(2); width <= 120; width++ {
			r := newRender(files(n), width)
			r.Grid.Across = true

			_, columns, ok := r.FindFittingGrid()
			if !ok {
				t.Fatalf("n=%d width=%d: gave up", n, width)
			}
			want := min(n, (width+columnGap)/(4+columnGap))
			if columns != want {
				t.Fatalf("n=%d width=%d: columns = %d, want %d", n, width, columns, want)
			}
		}
	}
}

func TestPicksMostColumnsThatFitDown(t *testing.T) {
	for n := 2; n <= 10; n++ {
		for width := tablesWidth(2); width <= 120; width++ {
			r := newRender(files(n), width)

			g, columns, ok := r.FindFittingGrid()
			if !ok {
				t.Fatalf("n=%d width=%d: gave up", n, width)
			}

			// a split into k tables of ceil(n/k) rows fills only
			// ceil(n/ceil(n/k)) of them
			want := 0
			for k := 2; k <= n; k++ {
				filled := divideRoundingUp(n, divideRoundingUp(n, k))
				if tablesWidth(filled) <= width && filled > want {
					want = filled
				}
			}
			if columns != want {
				t.Fatalf("n=%d width=%d: columns = %d, want %d", n, width, columns, want)
			}
			if rows := g.FitIntoColumns(columns).RowCount(); rows != divideRoundingUp(n, columns) {
				t.Fatalf("n=%d width=%d: %d rows in %d columns", n, width, rows, columns)
			}
		}
	}
}

func TestControlCharactersKeepGridInsideConsole(t *testing.T) {
	fl := files(6)
	for i, name := range []string{"a\tb", "c\nd", "e", "f\tg\th", "i\rj", "k"} {
		fl[i].Name = name
		fl[i].Info = fakeInfo{name: name, size: 1}
	}

	for _, across := range []bool{false, true} {
		for width := 1; width <= 60; width++ {
			r := newRender(fl, width)
			r.Grid.Across = across

			g, columns, ok := r.FindFittingGrid()
			if !ok {
				continue
			}
			out := render(t, r)
			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			if rows := g.FitIntoColumns(columns).RowCount(); len(lines) != rows {
				t.Fatalf("width=%d across=%v: %d lines for %d rows:\n%s", width, across, len(lines), rows, out)
			}
			for _, line := range lines {
				if strings.ContainsAny(line, "\t\r") {
					t.Fatalf("width=%d across=%v: raw control character in %q", width, across, line)
				}
				if w := runewidth.StringWidth(line); w > width {
					t.Fatalf("width=%d across=%v: line %q is %d wide", width, across, line, w)
				}
			}
		}
	}
}

func TestSearchStopsBeforeMaxColumns(t *testing.T) {
	var buf bytes.Buffer
	r := newRender(files(150), 10000)
	r.Grid.Across = true
	r.Log = log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	_, columns, ok := r.FindFittingGrid()
	if !ok {
		t.Fatal("FindFittingGrid() gave up")
	}
	if columns != MaxColumns-1 {
		t.Errorf("columns = %d, want %d", columns, MaxColumns-1)
	}
	if trials := strings.Count(buf.String(), "layout trial"); trials != MaxColumns-2 {
		t.Errorf("ran %d trials, want %d", trials, MaxColumns-2)
	}
}

func TestHeaders(t *testing.T) {
	// "Size Name" is nine columns wide, two tables need 22
	r := newRender(files(4), 22)
	r.Details.Header = true

	_, columns, ok := r.FindFittingGrid()
	if !ok || columns != 2 {
		t.Fatalf("FindFittingGrid() = %d, %v, want 2 columns", columns, ok)
	}

	gap := strings.Repeat(" ", 2+columnGap)
	want := "Size Name" + strings.Repeat(" ", columnGap) + "Size Name\n" +
		"   1 f0" + gap + "   1 f2\n" +
		"   1 f1" + gap + "   1 f3\n"
	if got := render(t, r); got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestHeadersCountTowardRows(t *testing.T) {
	r := newRender(files(4), 22)
	r.Details.Header = true
	r.RowThreshold = MinimumRows(3)

	g, columns, ok := r.FindFittingGrid()
	if !ok {
		t.Fatal("two files and a header per table is three rows")
	}
	if rows := g.FitIntoColumns(columns).RowCount(); rows != 3 {
		t.Errorf("RowCount() = %d, want 3", rows)
	}
}

func TestGitColumnDecidedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fl := files(6)
	gc := git.NewMockCache(ctrl)
	gc.EXPECT().HasAnythingFor("/work").Return(true).Times(1)
	// attribute rows are built once and reused by every trial
	gc.EXPECT().Get(gomock.Any(), false).Return(git.Status{Unstaged: git.Modified}).Times(len(fl))

	r := newRender(fl, 1000)
	r.Dir = &fs.Dir{Path: "/work", Files: fl}
	r.Git = gc
	r.Details.Table.Columns = []table.Column{table.GitStatus}

	g, columns, ok := r.FindFittingGrid()
	if !ok {
		t.Fatal("FindFittingGrid() gave up")
	}
	if out := g.FitIntoColumns(columns).String(); !strings.HasPrefix(out, "-M f0") {
		t.Errorf("grid = %q, want git column first", out)
	}
}

func TestGitColumnOmittedOutsideRepository(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gc := git.NewMockCache(ctrl)
	gc.EXPECT().HasAnythingFor("/work").Return(false)

	fl := files(2)
	r := newRender(fl, 1000)
	r.Dir = &fs.Dir{Path: "/work", Files: fl}
	r.Git = gc
	r.Details.Table.Columns = []table.Column{table.FileSize, table.GitStatus}

	if got := render(t, r); got != "1 f0    1 f1\n" {
		t.Errorf("Render() = %q", got)
	}
}

func TestHyperlinkNamesUseVisibleWidth(t *testing.T) {
	r := newRender(files(2), tablesWidth(2))
	r.FileStyle = filename.Options{EmbedHyperlinks: true}

	_, columns, ok := r.FindFittingGrid()
	if !ok || columns != 2 {
		t.Errorf("FindFittingGrid() = %d, %v, want 2 columns", columns, ok)
	}
}

func TestNameCellsQuoteAllowance(t *testing.T) {
	fl := files(1)
	fl[0].Name = "a b"
	r := newRender(fl, 80)
	r.FileStyle = filename.Options{EmbedHyperlinks: true, QuoteStyle: filename.QuoteSpaces}

	names := r.nameCells(fl)
	if names[0].Width != 5 {
		t.Errorf("name width = %d, want 5", names[0].Width)
	}
}

func TestRowThreshold(t *testing.T) {
	if MinimumRows(3).Accepts(2) {
		t.Error("MinimumRows(3).Accepts(2) = true")
	}
	if !MinimumRows(3).Accepts(3) {
		t.Error("MinimumRows(3).Accepts(3) = false")
	}
	if !AlwaysGrid.Accepts(0) {
		t.Error("AlwaysGrid.Accepts(0) = false")
	}
}
