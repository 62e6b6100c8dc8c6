package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/young1lin/lsgrid/internal/config"
	"github.com/young1lin/lsgrid/internal/fs"
	"github.com/young1lin/lsgrid/internal/git"
	"github.com/young1lin/lsgrid/internal/version"
	"github.com/young1lin/lsgrid/internal/watch"
)

// exitFunc is the function to call for exiting (can be mocked for testing)
var exitFunc = os.Exit

func main() {
	err := run(context.Background(), os.Args[1:], &AppDependencies{
		FS:        fs.OSFileSystem{},
		GitRunner: git.ExecRunner{},
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Getenv:    os.Getenv,
		Platform:  config.DefaultPlatform,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
		TerminalWidth: func() (int, error) {
			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			return width, err
		},
		WatcherCreator: func(dir string) (watch.WatcherInterface, error) {
			return watch.NewWatcher(dir, watch.DefaultDebounce)
		},
		ProgramRunner: func(p *tea.Program) error {
			_, err := p.Run()
			return err
		},
		UpdateCheck: version.NewChecker(version.Version).Check,
	})
	logAndExit(err)
}

func logAndExit(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "lsgrid: %v\n", err)
		exitFunc(1)
	}
}
