package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/young1lin/lsgrid/internal/config"
	"github.com/young1lin/lsgrid/internal/details"
	"github.com/young1lin/lsgrid/internal/filename"
	"github.com/young1lin/lsgrid/internal/fs"
	"github.com/young1lin/lsgrid/internal/git"
	"github.com/young1lin/lsgrid/internal/grid"
	"github.com/young1lin/lsgrid/internal/griddetails"
	"github.com/young1lin/lsgrid/internal/table"
	"github.com/young1lin/lsgrid/internal/theme"
)

// nameGap is the number of spaces between names in the plain grid
const nameGap = 2

// listing is everything given on the command line, read from disk and
// ready to be rendered at any width
type listing struct {
	paths []string

	fsys      fs.FileSystem
	runner    git.Runner
	now       func() table.Env
	logger    *log.Logger
	theme     *theme.Theme
	fileStyle filename.Options
	filter    fs.Filter
	details   *details.Options
	long      bool
	gridMode  bool
	across    bool
	threshold griddetails.RowThreshold
	useGit    bool
	ignoring  bool

	files []*fs.File
	dirs  []*fs.Dir
	git   git.Cache
}

func newListing(cfg *config.Config, deps *AppDependencies, logger *log.Logger, isTerminal bool, f *cliFlags) (*listing, error) {
	tableOpts, err := cfg.TableOptions()
	if err != nil {
		return nil, err
	}
	filter := cfg.Filter()
	filter.OnlyDirs = f.onlyDirs

	now := table.NewEnv
	if deps.Now != nil {
		clock := deps.Now
		now = func() table.Env { return table.Env{Now: clock()} }
	}

	return &listing{
		fsys:      deps.FS,
		runner:    deps.GitRunner,
		now:       now,
		logger:    logger,
		theme:     theme.ForMode(cfg.ColorMode(), deps.Stdout),
		fileStyle: cfg.FileStyle(isTerminal),
		filter:    filter,
		details:   &details.Options{Table: tableOpts, Header: cfg.Display.Header},
		long:      cfg.Display.Long,
		gridMode:  cfg.Display.Grid,
		across:    cfg.Display.Across,
		threshold: rowThreshold(cfg.MinGridRows()),
		useGit:    f.git,
		ignoring:  f.gitIgnore,
	}, nil
}

// rowThreshold turns a minimum row count into the grid's threshold. Zero
// accepts every grid that fits.
func rowThreshold(minRows int) griddetails.RowThreshold {
	if minRows <= 0 {
		return griddetails.AlwaysGrid
	}
	return griddetails.MinimumRows(minRows)
}

// load reads every path. Directories are listed; anything else is shown
// as a file in its own right.
func (l *listing) load(ctx context.Context) error {
	var (
		filePaths []string
		dirs      []*fs.Dir
	)
	for _, p := range l.paths {
		info, err := l.fsys.Stat(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		if !info.IsDir() {
			filePaths = append(filePaths, p)
			continue
		}
		dir, err := fs.ReadDir(l.fsys, p, l.filter)
		if err != nil {
			return err
		}
		dirs = append(dirs, dir)
	}

	var files []*fs.File
	if len(filePaths) > 0 {
		var err error
		if files, err = fs.FromPaths(l.fsys, filePaths, l.filter); err != nil {
			return err
		}
	}

	// a nil *RepoCache must not end up inside the interface
	var gc git.Cache
	if l.useGit && l.runner != nil {
		gc = git.Discover(ctx, l.runner, l.paths, l.logger)
	}

	l.files, l.dirs, l.git = files, dirs, gc
	return nil
}

// count returns the number of entries loaded
func (l *listing) count() int {
	n := len(l.files)
	for _, d := range l.dirs {
		n += len(d.Files)
	}
	return n
}

// render writes the loaded files and then each directory. Directories
// are titled when there is more than one thing to show.
func (l *listing) render(w io.Writer, width int) error {
	env := l.now()
	titled := len(l.paths) > 1

	first := true
	if len(l.files) > 0 {
		if err := l.renderFiles(w, nil, l.files, width, env); err != nil {
			return err
		}
		first = false
	}
	for _, d := range l.dirs {
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		first = false
		if titled {
			if _, err := fmt.Fprintf(w, "%s:\n", d.Path); err != nil {
				return err
			}
		}
		if err := l.renderFiles(w, d, d.Files, width, env); err != nil {
			return err
		}
	}
	return nil
}

func (l *listing) renderFiles(w io.Writer, dir *fs.Dir, files []*fs.File, width int, env table.Env) error {
	switch {
	case l.long && l.gridMode:
		r := &griddetails.Render{
			Dir:          dir,
			Files:        files,
			Theme:        l.theme,
			FileStyle:    l.fileStyle,
			Grid:         griddetails.GridOptions{Across: l.across},
			Details:      l.details,
			Filter:       l.filter,
			RowThreshold: l.threshold,
			GitIgnoring:  l.ignoring,
			Git:          l.git,
			Env:          env,
			ConsoleWidth: width,
			Log:          l.logger,
		}
		return r.Render(w)

	case l.long:
		r := &details.Render{
			Dir:         dir,
			Files:       files,
			Theme:       l.theme,
			FileStyle:   l.fileStyle,
			Opts:        l.details,
			Filter:      l.filter,
			GitIgnoring: l.ignoring,
			Git:         l.git,
			Env:         env,
		}
		return r.Render(w)
	}
	return l.renderNames(w, files, width)
}

// renderNames packs bare names into as many columns as fit, or writes
// one per line when the width is unknown or a name is too wide
func (l *listing) renderNames(w io.Writer, files []*fs.File, width int) error {
	files = details.WithoutIgnored(files, l.git, l.ignoring)

	direction := grid.TopToBottom
	if l.across {
		direction = grid.LeftToRight
	}
	g := grid.New(grid.Options{Direction: direction, Filling: nameGap})
	for _, f := range files {
		c := l.fileStyle.ForFile(f, l.theme).Paint()
		g.Add(grid.Cell{Contents: c.String(), Width: c.Width})
	}

	if width > 0 {
		if d, ok := g.FitIntoWidth(width); ok {
			_, err := io.WriteString(w, d.String())
			return err
		}
		l.logger.Debug("names do not fit, one per line", "width", width)
	}

	var b strings.Builder
	for _, c := range g.Cells() {
		b.WriteString(c.Contents)
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// dirLister serves a loaded listing to the watch-mode interface
type dirLister struct {
	ctx     context.Context
	listing *listing
}

func (d *dirLister) Path() string {
	if len(d.listing.dirs) == 0 {
		return strings.Join(d.listing.paths, " ")
	}
	return d.listing.dirs[0].Path
}

func (d *dirLister) Count() int {
	return d.listing.count()
}

func (d *dirLister) Reload() error {
	return d.listing.load(d.ctx)
}

func (d *dirLister) Render(width int) (string, error) {
	var b strings.Builder
	if err := d.listing.render(&b, width); err != nil {
		return "", err
	}
	return b.String(), nil
}
