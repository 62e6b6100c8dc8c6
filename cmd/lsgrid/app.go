package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/young1lin/lsgrid/internal/config"
	"github.com/young1lin/lsgrid/internal/filename"
	"github.com/young1lin/lsgrid/internal/fs"
	"github.com/young1lin/lsgrid/internal/git"
	"github.com/young1lin/lsgrid/internal/table"
	"github.com/young1lin/lsgrid/internal/theme"
	"github.com/young1lin/lsgrid/internal/version"
	"github.com/young1lin/lsgrid/internal/watch"
	"github.com/young1lin/lsgrid/tui"
)

// defaultWidth is used on a terminal whose size cannot be read
const defaultWidth = 80

// ProgramSender is an interface for sending messages to a Bubbletea program
type ProgramSender interface {
	Send(msg tea.Msg)
}

// AppDependencies contains the dependencies for the main application
type AppDependencies struct {
	FS             fs.FileSystem
	GitRunner      git.Runner
	Stdout         io.Writer
	Stderr         io.Writer
	Getenv         func(string) string
	Platform       config.PlatformProvider
	IsTerminal     func() bool
	TerminalWidth  func() (int, error)
	Now            func() time.Time
	WatcherCreator func(string) (watch.WatcherInterface, error)
	ProgramRunner  func(*tea.Program) error
	UpdateCheck    func(context.Context) (*version.ReleaseInfo, error)
}

// cliFlags holds the flags that are not config settings
type cliFlags struct {
	git       bool
	gitIgnore bool
	onlyDirs  bool
	columns   string
	watch     bool
	debug     bool
	version   bool
	update    bool
}

// parseFlags binds the command line onto cfg. Flags left unset keep the
// value cfg already holds.
func parseFlags(args []string, cfg *config.Config, output io.Writer) (*cliFlags, []string, error) {
	set := flag.NewFlagSet("lsgrid", flag.ContinueOnError)
	set.SetOutput(output)
	set.Usage = func() {
		fmt.Fprintln(output, "Usage: lsgrid [flags] [path ...]")
		set.PrintDefaults()
	}

	d := &cfg.Display
	boolFlag := func(p *bool, short, long, usage string) {
		if short != "" {
			set.BoolVar(p, short, *p, usage)
		}
		set.BoolVar(p, long, *p, usage)
	}
	boolFlag(&d.Long, "l", "long", "show attribute columns")
	boolFlag(&d.Grid, "G", "grid", "lay long listings side by side")
	boolFlag(&d.Across, "x", "across", "fill rows before columns")
	boolFlag(&d.Header, "", "header", "add a header row")
	boolFlag(&d.Classify, "F", "classify", "append a file type indicator")
	boolFlag(&d.Hyperlinks, "", "hyperlink", "link file names to their paths")
	boolFlag(&cfg.Sort.All, "a", "all", "show hidden files")
	boolFlag(&cfg.Sort.Reverse, "r", "reverse", "reverse the sort order")
	boolFlag(&cfg.Sort.DirsFirst, "", "group-directories-first", "list directories before files")
	set.StringVar(&d.Icons, "icons", d.Icons, "show icons: never, auto or always")
	set.StringVar(&d.Color, "color", d.Color, "use colour: auto, always or never")
	set.IntVar(&d.Width, "width", d.Width, "console width in columns")
	set.StringVar(&cfg.Sort.Field, "sort", cfg.Sort.Field, "sort by name, size, modified, extension or none")
	set.StringVar(&cfg.Format.TimeFormat, "time-style", cfg.Format.TimeFormat, "default, iso, long-iso, full-iso or relative")
	set.StringVar(&cfg.Format.Sizes, "sizes", cfg.Format.Sizes, "decimal, binary or bytes")

	f := &cliFlags{}
	set.StringVar(&f.columns, "columns", "", "comma-separated column names")
	set.BoolVar(&f.git, "git", false, "show the git status column")
	set.IntVar(&cfg.Grid.MinRows, "grid-rows", cfg.Grid.MinRows, "fewest rows worth a grid, 0 for always")
	set.BoolVar(&f.gitIgnore, "git-ignore", false, "hide git-ignored files")
	set.BoolVar(&f.onlyDirs, "D", false, "list only directories")
	set.BoolVar(&f.onlyDirs, "only-dirs", false, "list only directories")
	set.BoolVar(&f.watch, "watch", false, "keep the listing open and follow changes")
	set.BoolVar(&f.debug, "debug", false, "log layout decisions")
	set.BoolVar(&f.version, "version", false, "print the version")
	set.BoolVar(&f.update, "check-update", false, "ask GitHub for a newer release")

	if err := set.Parse(args); err != nil {
		return nil, nil, err
	}
	if f.columns != "" {
		cfg.Columns = strings.Split(f.columns, ",")
		for i := range cfg.Columns {
			cfg.Columns[i] = strings.TrimSpace(cfg.Columns[i])
		}
	}
	set.Visit(func(fl *flag.Flag) {
		if fl.Name == "grid-rows" {
			cfg.Grid.AlwaysGrid = cfg.Grid.MinRows == 0
		}
	})
	if f.gitIgnore {
		// hiding ignored files needs the status data
		f.git = true
	}
	return f, set.Args(), nil
}

// checkFlags rejects enum values given on the command line. Config files
// fall back to defaults instead, but a mistyped flag is reported.
func checkFlags(cfg *config.Config) error {
	if _, err := filename.ParseIconMode(cfg.Display.Icons); err != nil {
		return err
	}
	if _, err := theme.ParseColorMode(cfg.Display.Color); err != nil {
		return err
	}
	if _, err := fs.ParseSortField(cfg.Sort.Field); err != nil {
		return err
	}
	if _, err := table.ParseTimeFormat(cfg.Format.TimeFormat); err != nil {
		return err
	}
	if _, err := table.ParseSizeFormat(cfg.Format.Sizes); err != nil {
		return err
	}
	if cfg.Grid.MinRows < 0 {
		return fmt.Errorf("grid-rows must not be negative, got %d", cfg.Grid.MinRows)
	}
	if cfg.Display.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", cfg.Display.Width)
	}
	_, err := cfg.TableColumns()
	return err
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{Level: level, Prefix: "lsgrid"})
}

func run(ctx context.Context, args []string, deps *AppDependencies) error {
	cfg, err := config.Load(deps.Platform)
	if err != nil {
		return err
	}

	// COLUMNS only stands in for a terminal size that cannot be read,
	// so it is kept apart from a width set in a file or a flag
	configured := cfg.Display.Width
	cfg.Display.Width = 0
	if err := cfg.ApplyEnv(deps.Getenv); err != nil {
		return err
	}
	envWidth := cfg.Display.Width
	cfg.Display.Width = configured

	f, paths, err := parseFlags(args, cfg, deps.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if f.version {
		_, err := fmt.Fprintln(deps.Stdout, version.String())
		return err
	}
	if f.update {
		return checkUpdate(ctx, deps)
	}
	if err := checkFlags(cfg); err != nil {
		return err
	}
	if len(paths) == 0 {
		paths = []string{"."}
	}

	logger := newLogger(deps.Stderr, f.debug)
	isTerminal := deps.IsTerminal != nil && deps.IsTerminal()

	l, err := newListing(cfg, deps, logger, isTerminal, f)
	if err != nil {
		return err
	}
	l.paths = paths

	if f.watch {
		return runWatch(ctx, l, deps)
	}

	if err := l.load(ctx); err != nil {
		return err
	}
	width := consoleWidth(cfg.Display.Width, envWidth, isTerminal, deps.TerminalWidth)
	logger.Debug("console width", "width", width, "terminal", isTerminal)
	return l.render(deps.Stdout, width)
}

func checkUpdate(ctx context.Context, deps *AppDependencies) error {
	if deps.UpdateCheck == nil {
		return errors.New("update checks are not available in this build")
	}
	release, err := deps.UpdateCheck(ctx)
	if err != nil {
		return err
	}
	if release == nil {
		_, err = fmt.Fprintf(deps.Stdout, "%s is up to date\n", version.String())
		return err
	}
	_, err = fmt.Fprintf(deps.Stdout, "Update available: %s → %s\nVisit %s to download\n",
		version.Version, release.TagName, release.HTMLURL)
	return err
}

// consoleWidth picks the width to lay out for. An explicit width wins,
// then the terminal size, then COLUMNS. A terminal that cannot be measured
// gets 80 columns; output that is not a terminal gets none, which makes
// long listings one file per line.
func consoleWidth(explicit, env int, isTerminal bool, measure func() (int, error)) int {
	if explicit > 0 {
		return explicit
	}
	if isTerminal && measure != nil {
		if width, err := measure(); err == nil && width > 0 {
			return width
		}
	}
	if env > 0 {
		return env
	}
	if isTerminal {
		return defaultWidth
	}
	return 0
}

func runWatch(ctx context.Context, l *listing, deps *AppDependencies) error {
	if len(l.paths) != 1 {
		return errors.New("watch mode lists exactly one directory")
	}
	if err := l.load(ctx); err != nil {
		return err
	}
	if len(l.dirs) != 1 {
		return fmt.Errorf("watch mode needs a directory: %w", fs.ErrNotDirectory)
	}

	watcher, err := deps.WatcherCreator(l.dirs[0].Path)
	if err != nil {
		return fmt.Errorf("failed to start directory watcher: %w", err)
	}
	defer watcher.Close()

	model := tui.NewModel(&dirLister{ctx: ctx, listing: l})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(deps.Stdout))

	go runWatchLoop(p, watcher)

	return deps.ProgramRunner(p)
}

// runWatchLoop forwards directory changes to the program until the
// watcher closes or fails
func runWatchLoop(sender ProgramSender, watcher watch.WatcherInterface) {
	sender.Send(tui.WatcherStartedMsg{})

	for {
		select {
		case _, ok := <-watcher.Events():
			if !ok {
				return
			}
			sender.Send(tui.DirChangedMsg{})

		case err, ok := <-watcher.Errors():
			if !ok {
				return
			}
			sender.Send(tui.WatcherFailedMsg{Err: fmt.Errorf("watcher error: %w", err)})
			return
		}
	}
}
