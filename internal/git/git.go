package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

//go:generate mockgen -destination=mock_cache.go -package=git github.com/young1lin/lsgrid/internal/git Cache

// Cache answers git status questions for listed paths
type Cache interface {
	// HasAnythingFor reports whether path lies inside a known repository
	HasAnythingFor(path string) bool
	// Get returns the status of path. With prefixLookup the statuses of
	// everything under path are combined, which is how directories are
	// shown.
	Get(path string, prefixLookup bool) Status
}

// Runner runs git with args in dir and returns its standard output
type Runner interface {
	Output(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// ExecRunner runs the git binary found on PATH
type ExecRunner struct{}

// Output runs git in dir
func (ExecRunner) Output(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	return cmd.Output()
}

// Repo holds the statuses of one repository, keyed by absolute path
type Repo struct {
	Root     string
	statuses map[string]Status
}

// Contains reports whether path is the repository root or lies under it
func (r *Repo) Contains(path string) bool {
	return path == r.Root || strings.HasPrefix(path, r.Root+string(filepath.Separator))
}

// RepoCache is a Cache backed by `git status` output
type RepoCache struct {
	repos []*Repo
}

// Discover finds the repositories containing paths and reads their status.
// Paths outside any repository are skipped; failures are logged and never
// returned, since a listing without git data is still useful.
func Discover(ctx context.Context, runner Runner, paths []string, logger *log.Logger) *RepoCache {
	c := &RepoCache{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if c.repoFor(abs) != nil {
			continue
		}

		root, err := findRoot(ctx, runner, abs)
		if err != nil {
			if logger != nil {
				logger.Debug("not a git repository", "path", abs)
			}
			continue
		}
		repo, err := readRepo(ctx, runner, root)
		if err != nil {
			if logger != nil {
				logger.Warn("failed to read git status", "repo", root, "err", err)
			}
			continue
		}
		c.repos = append(c.repos, repo)
	}
	return c
}

// Repos returns the repositories discovered
func (c *RepoCache) Repos() []*Repo {
	return c.repos
}

func findRoot(ctx context.Context, runner Runner, path string) (string, error) {
	dir := path
	out, err := runner.Output(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		// path may be a file; ask from its parent
		dir = filepath.Dir(path)
		out, err = runner.Output(ctx, dir, "rev-parse", "--show-toplevel")
		if err != nil {
			return "", fmt.Errorf("failed to find repository for %s: %w", path, err)
		}
	}
	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", fmt.Errorf("empty repository root for %s", path)
	}
	return filepath.Clean(filepath.FromSlash(root)), nil
}

func readRepo(ctx context.Context, runner Runner, root string) (*Repo, error) {
	out, err := runner.Output(ctx, root, "status", "--porcelain=v1", "-z", "--ignored=matching", "-unormal")
	if err != nil {
		return nil, fmt.Errorf("git status: %w", err)
	}
	return &Repo{Root: root, statuses: parsePorcelain(root, out)}, nil
}

// parsePorcelain parses NUL-separated `git status --porcelain=v1 -z`
// output. Renames are followed by an extra entry naming the source path.
func parsePorcelain(root string, out []byte) map[string]Status {
	statuses := make(map[string]Status)
	entries := bytes.Split(out, []byte{0})
	for i := 0; i < len(entries); i++ {
		e := entries[i]
		if len(e) < 4 {
			continue
		}
		x, y := e[0], e[1]
		rel := strings.TrimSuffix(string(e[3:]), "/")
		statuses[filepath.Join(root, filepath.FromSlash(rel))] = parseXY(x, y)
		if x == 'R' || x == 'C' {
			i++
		}
	}
	return statuses
}

// HasAnythingFor reports whether path lies inside a discovered repository
func (c *RepoCache) HasAnythingFor(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return c.repoFor(abs) != nil
}

// Get returns the status of path
func (c *RepoCache) Get(path string, prefixLookup bool) Status {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Status{}
	}
	repo := c.repoFor(abs)
	if repo == nil {
		return Status{}
	}
	if prefixLookup {
		return repo.dirStatus(abs)
	}
	return repo.fileStatus(abs)
}

func (c *RepoCache) repoFor(path string) *Repo {
	for _, r := range c.repos {
		if r.Contains(path) {
			return r
		}
	}
	return nil
}

// fileStatus looks up path, inheriting from an untracked or ignored
// parent directory, which git reports as a single entry
func (r *Repo) fileStatus(path string) Status {
	if s, ok := r.statuses[path]; ok {
		return s
	}
	for dir := filepath.Dir(path); r.Contains(dir) && dir != r.Root; dir = filepath.Dir(dir) {
		if s, ok := r.statuses[dir]; ok && (s.Unstaged == New || s.Unstaged == Ignored) {
			return s
		}
	}
	return Status{}
}

// dirStatus combines the statuses of everything under dir
func (r *Repo) dirStatus(dir string) Status {
	if s := r.fileStatus(dir); !s.IsZero() {
		return s
	}

	prefix := dir + string(filepath.Separator)
	if dir == r.Root {
		prefix = ""
	}
	var staged, unstaged kindSet
	for p, s := range r.statuses {
		if prefix != "" && !strings.HasPrefix(p, prefix) {
			continue
		}
		staged.add(s.Staged)
		unstaged.add(s.Unstaged)
	}
	return Status{Staged: staged.pick(), Unstaged: unstaged.pick()}
}
