// Package gitops versions workspace reports and logs with the git CLI.
package gitops

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNothingToCommit is returned when the staged paths hold no changes.
var ErrNothingToCommit = errors.New("nothing to commit")

// Author identifies who commits. It is used for both author and committer so
// commits work on machines without a global git identity.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

func (a Author) env() []string {
	return append(os.Environ(),
		"GIT_AUTHOR_NAME="+a.Name,
		"GIT_AUTHOR_EMAIL="+a.Email,
		"GIT_COMMITTER_NAME="+a.Name,
		"GIT_COMMITTER_EMAIL="+a.Email,
	)
}

func git(ctx context.Context, dir string, env []string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Init initializes a new git repository at dir.
func Init(ctx context.Context, dir string) error {
	_, err := git(ctx, dir, nil, "init", "-q")
	return err
}

// CommitAll stages all files and creates a commit. Returns the short commit hash.
func CommitAll(ctx context.Context, dir, message string, author Author) (string, error) {
	return commit(ctx, dir, message, author, []string{"-A"})
}

// CommitFiles stages only paths (relative to dir) and commits them.
// Returns ErrNothingToCommit when they are unchanged.
func CommitFiles(ctx context.Context, dir string, paths []string, message string, author Author) (string, error) {
	if len(paths) == 0 {
		return "", ErrNothingToCommit
	}
	rel := make([]string, 0, len(paths)+1)
	rel = append(rel, "--")
	for _, p := range paths {
		if filepath.IsAbs(p) {
			r, err := filepath.Rel(dir, p)
			if err != nil {
				return "", fmt.Errorf("path %s: %w", p, err)
			}
			p = r
		}
		rel = append(rel, filepath.ToSlash(p))
	}
	return commit(ctx, dir, message, author, rel)
}

func commit(ctx context.Context, dir, message string, author Author, addArgs []string) (string, error) {
	env := author.env()
	if _, err := git(ctx, dir, env, append([]string{"add"}, addArgs...)...); err != nil {
		return "", err
	}

	// "diff --cached --quiet" exits 1 when something is staged.
	if _, err := git(ctx, dir, env, "diff", "--cached", "--quiet"); err == nil {
		return "", ErrNothingToCommit
	}

	if _, err := git(ctx, dir, env, "commit", "-q", "-m", message, "--author", author.String()); err != nil {
		return "", err
	}
	return git(ctx, dir, env, "rev-parse", "--short", "HEAD")
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
