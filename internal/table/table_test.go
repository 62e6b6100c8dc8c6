package table

import (
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/young1lin/lsgrid/internal/fs"
	"github.com/young1lin/lsgrid/internal/git"
	"github.com/young1lin/lsgrid/internal/theme"
)

type fakeInfo struct {
	name    string
	mode    os.FileMode
	size    int64
	modTime time.Time
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return f.size }
func (f fakeInfo) Mode() os.FileMode  { return f.mode }
func (f fakeInfo) ModTime() time.Time { return f.modTime }
func (f fakeInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fakeInfo) Sys() interface{}   { return nil }

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func regular(name string, size int64) *fs.File {
	return &fs.File{
		Name:  name,
		Path:  "/repo/" + name,
		Kind:  fs.KindFile,
		Links: 1,
		Owner: fs.Owner{User: "alice", Group: "staff", Mine: true},
		Info:  fakeInfo{name: name, mode: 0o644, size: size, modTime: time.Date(2024, 3, 5, 9, 7, 0, 0, time.UTC)},
	}
}

func plainTable(opts *Options, gc git.Cache) *Table {
	return New(opts, gc, theme.Plain(), Env{Now: now})
}

func TestNewOmitsGitColumnWithoutCache(t *testing.T) {
	opts := &Options{Columns: []Column{Permissions, GitStatus, FileSize}}

	tbl := plainTable(opts, nil)
	if len(tbl.Columns()) != 2 {
		t.Errorf("Columns() = %v, want git column omitted", tbl.Columns())
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	withGit := plainTable(opts, git.NewMockCache(ctrl))
	if len(withGit.Columns()) != 3 {
		t.Errorf("Columns() = %v, want git column kept", withGit.Columns())
	}
}

func TestRenderPermissions(t *testing.T) {
	tests := []struct {
		name string
		kind fs.Kind
		mode os.FileMode
		want string
	}{
		{"regular", fs.KindFile, 0o644, ".rw-r--r--"},
		{"executable", fs.KindFile, 0o755, ".rwxr-xr-x"},
		{"directory", fs.KindDirectory, os.ModeDir | 0o755, "drwxr-xr-x"},
		{"symlink", fs.KindSymlink, os.ModeSymlink | 0o777, "lrwxrwxrwx"},
		{"setuid", fs.KindFile, os.ModeSetuid | 0o755, ".rwsr-xr-x"},
		{"setuid without exec", fs.KindFile, os.ModeSetuid | 0o644, ".rwSr--r--"},
		{"sticky", fs.KindDirectory, os.ModeDir | os.ModeSticky | 0o777, "drwxrwxrwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &fs.File{Kind: tt.kind, Info: fakeInfo{mode: tt.mode}}
			c := renderPermissions(f, theme.Plain())
			if c.Text() != tt.want || c.Width != 10 {
				t.Errorf("renderPermissions() = %q (width %d), want %q", c.Text(), c.Width, tt.want)
			}
		})
	}
}

func TestRenderSize(t *testing.T) {
	tests := []struct {
		name   string
		size   int64
		format SizeFormat
		want   string
	}{
		{"small decimal", 999, SizeDecimal, "999"},
		{"kilobytes", 1500, SizeDecimal, "1.5k"},
		{"megabytes", 83_000_000, SizeDecimal, "83M"},
		{"binary", 2048, SizeBinary, "2.0Ki"},
		{"small binary", 1000, SizeBinary, "1000"},
		{"bytes", 1234567, SizeBytes, "1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := renderSize(regular("f", tt.size), tt.format, theme.Plain())
			if c.Text() != tt.want || c.Width != len(tt.want) {
				t.Errorf("renderSize() = %q (width %d), want %q", c.Text(), c.Width, tt.want)
			}
		})
	}

	dir := &fs.File{Kind: fs.KindDirectory, Info: fakeInfo{mode: os.ModeDir | 0o755, size: 4096}}
	if c := renderSize(dir, SizeDecimal, theme.Plain()); c.Text() != "-" || c.Width != 1 {
		t.Errorf("directory size = %q, want blank", c.Text())
	}
}

func TestRenderTime(t *testing.T) {
	thisYear := regular("a", 0)
	lastYear := regular("b", 0)
	lastYear.Info = fakeInfo{modTime: time.Date(2021, 11, 30, 8, 0, 0, 0, time.UTC)}
	env := Env{Now: now}

	tests := []struct {
		name   string
		f      *fs.File
		format TimeFormat
		want   string
	}{
		{"default this year", thisYear, TimeDefault, " 5 Mar 09:07"},
		{"default other year", lastYear, TimeDefault, "30 Nov  2021"},
		{"iso this year", thisYear, TimeISO, "03-05 09:07"},
		{"iso other year", lastYear, TimeISO, "2021-11-30"},
		{"long iso", thisYear, TimeLongISO, "2024-03-05 09:07"},
		{"full iso", thisYear, TimeFullISO, "2024-03-05 09:07:00.000000000 +0000"},
		{"relative", thisYear, TimeRelative, "3 months ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := renderTime(tt.f, tt.format, env, theme.Plain())
			if c.Text() != tt.want {
				t.Errorf("renderTime() = %q, want %q", c.Text(), tt.want)
			}
		})
	}
}

func TestRenderGit(t *testing.T) {
	c := renderGit(git.Status{Staged: git.New, Unstaged: git.Modified}, theme.Plain())
	if c.Text() != "NM" || c.Width != 2 {
		t.Errorf("renderGit() = %q (width %d)", c.Text(), c.Width)
	}
	clean := renderGit(git.Status{}, theme.Plain())
	if clean.Text() != "--" {
		t.Errorf("renderGit(clean) = %q", clean.Text())
	}
}

func TestAddWidthsTracksMaximum(t *testing.T) {
	tbl := plainTable(&Options{Columns: []Column{FileSize, User}}, nil)

	small := regular("a", 5)
	big := regular("b", 123)
	big.Owner.User = "bob"
	long := regular("c", 7)
	long.Owner.User = "administrator"

	for _, f := range []*fs.File{small, big, long} {
		row := tbl.RowForFile(f)
		tbl.AddWidths(row)
		for i, c := range row.Cells {
			if tbl.Widths()[i] < c.Width {
				t.Fatalf("Widths()[%d] = %d after adding a cell of width %d", i, tbl.Widths()[i], c.Width)
			}
		}
	}

	if got := tbl.Widths(); got[0] != 3 || got[1] != 13 {
		t.Errorf("Widths() = %v, want [3 13]", got)
	}
}

func TestRenderPadsAndAligns(t *testing.T) {
	tbl := plainTable(&Options{Columns: []Column{FileSize, User}}, nil)
	header := tbl.HeaderRow()
	tbl.AddWidths(header)

	f := regular("a", 5)
	f.Owner.User = "bo"
	row := tbl.RowForFile(f)
	tbl.AddWidths(row)

	if got := tbl.Render(header); got.Text() != "Size User" || got.Width != 9 {
		t.Errorf("Render(header) = %q (width %d)", got.Text(), got.Width)
	}
	got := tbl.Render(row)
	if got.Text() != "   5 bo  " || got.Width != 9 {
		t.Errorf("Render(row) = %q (width %d)", got.Text(), got.Width)
	}

	// rendering again leaves the row intact
	if again := tbl.Render(row); again.Text() != got.Text() {
		t.Errorf("second Render(row) = %q, want %q", again.Text(), got.Text())
	}
	if row.Cells[0].Width != 1 {
		t.Errorf("Render modified the row: width %d", row.Cells[0].Width)
	}
}

func TestGitColumnUsesPrefixLookupForDirectories(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gc := git.NewMockCache(ctrl)
	gc.EXPECT().Get("/repo/src", true).Return(git.Status{Unstaged: git.Modified})
	gc.EXPECT().Get("/repo/a.go", false).Return(git.Status{Unstaged: git.New})

	tbl := plainTable(&Options{Columns: []Column{GitStatus}}, gc)
	dir := &fs.File{Name: "src", Path: "/repo/src", Kind: fs.KindDirectory}

	if got := tbl.RowForFile(dir).Cells[0].Text(); got != "-M" {
		t.Errorf("directory git cell = %q, want -M", got)
	}
	if got := tbl.RowForFile(regular("a.go", 1)).Cells[0].Text(); got != "-N" {
		t.Errorf("file git cell = %q, want -N", got)
	}
}

func TestParseColumn(t *testing.T) {
	for name, want := range map[string]Column{
		"permissions": Permissions, "Size": FileSize, "git": GitStatus, "date": Modified, " links ": HardLinks,
	} {
		got, ok := ParseColumn(name)
		if !ok || got != want {
			t.Errorf("ParseColumn(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseColumn("inode"); ok {
		t.Error("ParseColumn(inode) should fail")
	}
}

func TestParseFormats(t *testing.T) {
	if f, err := ParseTimeFormat(""); err != nil || f != TimeDefault {
		t.Errorf("ParseTimeFormat(\"\") = %v, %v", f, err)
	}
	if _, err := ParseTimeFormat("epoch"); err == nil {
		t.Error("ParseTimeFormat(epoch) should fail")
	}
	if f, err := ParseSizeFormat("binary"); err != nil || f != SizeBinary {
		t.Errorf("ParseSizeFormat(binary) = %v, %v", f, err)
	}
	if _, err := ParseSizeFormat("octal"); err == nil {
		t.Error("ParseSizeFormat(octal) should fail")
	}
}
