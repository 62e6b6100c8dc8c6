package details

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/young1lin/lsgrid/internal/cell"
	"github.com/young1lin/lsgrid/internal/fs"
	"github.com/young1lin/lsgrid/internal/git"
	"github.com/young1lin/lsgrid/internal/table"
	"github.com/young1lin/lsgrid/internal/theme"
)

type fakeInfo struct {
	name string
	mode os.FileMode
	size int64
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return f.size }
func (f fakeInfo) Mode() os.FileMode  { return f.mode }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeInfo) Sys() interface{}   { return nil }

func file(name string, size int64) *fs.File {
	return &fs.File{
		Name: name,
		Path: "/work/" + name,
		Kind: fs.KindFile,
		Info: fakeInfo{name: name, mode: 0o644, size: size},
	}
}

func newRender(files []*fs.File, opts *Options) *Render {
	return &Render{
		Dir:   &fs.Dir{Path: "/work", Files: files},
		Files: files,
		Theme: theme.Plain(),
		Opts:  opts,
		Env:   table.Env{Now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestRenderNamesOnly(t *testing.T) {
	r := newRender([]*fs.File{file("a.txt", 1), file("b.txt", 2)}, &Options{})

	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.String() != "a.txt\nb.txt\n" {
		t.Errorf("Render() = %q", buf.String())
	}
}

func TestRenderWithTableAndHeader(t *testing.T) {
	files := []*fs.File{file("small", 7), file("large", 4096)}
	r := newRender(files, &Options{
		Table:  &table.Options{Columns: []table.Column{table.FileSize}},
		Header: true,
	})

	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := "Size Name\n" +
		"   7 small\n" +
		"4.1k large\n"
	if buf.String() != want {
		t.Errorf("Render() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestIterateWithTable(t *testing.T) {
	r := newRender(nil, &Options{})
	tbl := table.New(&table.Options{Columns: []table.Column{table.FileSize}}, nil, r.Theme, r.Env)

	var rows []Row
	for _, f := range []*fs.File{file("x", 10), file("y", 5)} {
		cells := tbl.RowForFile(f)
		tbl.AddWidths(cells)
		rows = append(rows, r.RenderFile(cells, cell.PaintStr(r.Theme.Kinds.Normal, f.Name)))
	}
	rows = append(rows, Row{Name: cell.PaintStr(r.Theme.Kinds.Normal, "bare")})

	got := r.IterateWithTable(tbl, rows)
	if len(got) != 3 {
		t.Fatalf("IterateWithTable() returned %d cells", len(got))
	}
	for i, want := range []string{"10 x", " 5 y", "bare"} {
		if got[i].Text() != want || got[i].Width != len(want) {
			t.Errorf("cell %d = %q (width %d), want %q", i, got[i].Text(), got[i].Width, want)
		}
	}
}

func TestGitForListing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := []*fs.File{file("a", 1), file("b", 1)}

	t.Run("nil cache", func(t *testing.T) {
		if GitForListing(nil, &fs.Dir{Path: "/work"}, files) != nil {
			t.Error("GitForListing(nil) should be nil")
		}
	})

	t.Run("directory outside a repository", func(t *testing.T) {
		gc := git.NewMockCache(ctrl)
		gc.EXPECT().HasAnythingFor("/work").Return(false)
		if GitForListing(gc, &fs.Dir{Path: "/work"}, files) != nil {
			t.Error("expected the git column to be dropped")
		}
	})

	t.Run("directory inside a repository", func(t *testing.T) {
		gc := git.NewMockCache(ctrl)
		gc.EXPECT().HasAnythingFor("/work").Return(true)
		if GitForListing(gc, &fs.Dir{Path: "/work"}, files) == nil {
			t.Error("expected the git column to be kept")
		}
	})

	t.Run("file list with one tracked file", func(t *testing.T) {
		gc := git.NewMockCache(ctrl)
		gc.EXPECT().HasAnythingFor("/work/a").Return(false)
		gc.EXPECT().HasAnythingFor("/work/b").Return(true)
		if GitForListing(gc, nil, files) == nil {
			t.Error("expected the git column to be kept")
		}
	})
}

func TestWithoutIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := []*fs.File{file("keep", 1), file("build", 1)}
	gc := git.NewMockCache(ctrl)
	gc.EXPECT().Get("/work/keep", false).Return(git.Status{})
	gc.EXPECT().Get("/work/build", false).Return(git.Status{Unstaged: git.Ignored})

	kept := WithoutIgnored(files, gc, true)
	if len(kept) != 1 || kept[0].Name != "keep" {
		t.Errorf("WithoutIgnored() kept %d files", len(kept))
	}

	if got := WithoutIgnored(files, gc, false); len(got) != 2 {
		t.Errorf("WithoutIgnored(ignoring=false) kept %d files, want 2", len(got))
	}
}

func TestRenderDropsIgnoredFiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	files := []*fs.File{file("main.go", 1), file("out.bin", 1)}
	gc := git.NewMockCache(ctrl)
	gc.EXPECT().Get("/work/main.go", false).Return(git.Status{Unstaged: git.Modified}).AnyTimes()
	gc.EXPECT().Get("/work/out.bin", false).Return(git.Status{Unstaged: git.Ignored})
	gc.EXPECT().HasAnythingFor("/work").Return(true)

	r := newRender(files, &Options{Table: &table.Options{Columns: []table.Column{table.GitStatus}}})
	r.Git = gc
	r.GitIgnoring = true

	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(buf.String(), "out.bin") {
		t.Errorf("ignored file listed: %q", buf.String())
	}
	if buf.String() != "-M main.go\n" {
		t.Errorf("Render() = %q", buf.String())
	}
}
