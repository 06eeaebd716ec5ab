// Package gitx wraps the git commands pushwatch needs: change detection,
// staging, commit, and push. All helpers run git with -C so no working
// directory changes leak between repository targets.
package gitx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ppiankov/pushwatch/internal/model"
)

const (
	// defaultCmdTimeout bounds local git plumbing calls.
	defaultCmdTimeout = 10 * time.Second

	// defaultPushTimeout bounds the single network round trip. A hung
	// push must not hang the whole invocation.
	defaultPushTimeout = 30 * time.Second
)

// run executes git in dir and returns trimmed combined output.
func run(ctx context.Context, dir string, timeout time.Duration, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = defaultCmdTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, "git", append([]string{"-C", dir}, args...)...)
	out, err := cmd.CombinedOutput()
	if runCtx.Err() != nil {
		return "", runCtx.Err()
	}
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return "", err
		}
		return "", fmt.Errorf("%w: %s", err, msg)
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// isNotGitRepo matches the status-128 failure git emits outside a work tree.
func isNotGitRepo(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) ||
		strings.Contains(err.Error(), "not a git repository")
}

// Detect inspects dir and classifies it without side effects.
// A missing or non-repository path is a normal silent outcome, never an error.
func Detect(ctx context.Context, dir string) (model.ChangeState, model.ChangeSet, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return model.StateNotARepo, model.ChangeSet{}, nil
	}

	if _, err := run(ctx, dir, 0, "rev-parse", "--git-dir"); err != nil {
		if isNotGitRepo(err) {
			return model.StateNotARepo, model.ChangeSet{}, nil
		}
		// Missing directories also surface as exec errors; treat as absent.
		return model.StateNotARepo, model.ChangeSet{}, nil
	}

	status, err := run(ctx, dir, 0, "status", "--porcelain")
	if err != nil {
		return model.StateNotARepo, model.ChangeSet{}, fmt.Errorf("git status: %w", err)
	}

	cs := parsePorcelain(status)
	if cs.Empty() {
		return model.StateClean, cs, nil
	}
	return model.StateDirty, cs, nil
}

// parsePorcelain splits `git status --porcelain` output into a ChangeSet.
func parsePorcelain(status string) model.ChangeSet {
	var cs model.ChangeSet
	for _, line := range strings.Split(status, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "?? ") {
			if path := strings.TrimSpace(line[3:]); path != "" {
				cs.Untracked = append(cs.Untracked, path)
			}
			continue
		}
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		if path == "" {
			continue
		}
		if line[0] != ' ' {
			cs.Staged = append(cs.Staged, path)
		}
		if line[1] != ' ' {
			cs.Unstaged = append(cs.Unstaged, path)
		}
	}
	return cs
}

// StageAll stages every modification, deletion, and untracked file.
func StageAll(ctx context.Context, dir string) error {
	if _, err := run(ctx, dir, 0, "add", "-A"); err != nil {
		return fmt.Errorf("git add -A: %w", err)
	}
	return nil
}

// CurrentBranch returns the checked-out branch name, or "" for a
// detached HEAD or unborn branch. Automatic commits only make sense
// on a named branch, so "" is a silent-skip signal, not an error.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, 0, "symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		// symbolic-ref exits non-zero with no output on detached HEAD.
		return "", nil
	}
	return strings.TrimSpace(out), nil
}

// StagedFiles lists paths staged for the next commit.
func StagedFiles(ctx context.Context, dir string) ([]string, error) {
	out, err := run(ctx, dir, 0, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, fmt.Errorf("git diff --cached: %w", err)
	}
	return splitLines(out), nil
}

// AddedLine is one inserted line of a staged diff, attributed to its file.
type AddedLine struct {
	File string
	Text string
}

// StagedAddedLines extracts the added lines of the staged diff, skipping
// headers and context so unchanged content never reaches the scanner.
func StagedAddedLines(ctx context.Context, dir string) ([]AddedLine, error) {
	out, err := run(ctx, dir, 0, "diff", "--cached", "--unified=0", "--no-color")
	if err != nil {
		return nil, fmt.Errorf("git diff --cached: %w", err)
	}

	var lines []AddedLine
	file := ""
	for _, raw := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(raw, "+++ b/"):
			file = raw[len("+++ b/"):]
		case strings.HasPrefix(raw, "+++ "):
			// /dev/null for deletions; keep previous attribution empty.
			file = ""
		case strings.HasPrefix(raw, "+") && !strings.HasPrefix(raw, "+++"):
			lines = append(lines, AddedLine{File: file, Text: raw[1:]})
		}
	}
	return lines, nil
}

// Commit creates a commit with the given message. noVerify skips local
// commit hooks for targets outside the secret-sensitive boundary.
// Returns the short commit hash, or "" if nothing was staged.
func Commit(ctx context.Context, dir, message string, noVerify bool) (string, error) {
	args := []string{"commit", "-m", message}
	if noVerify {
		args = append(args, "--no-verify")
	}
	if _, err := run(ctx, dir, 0, args...); err != nil {
		// Repeated invocation on an unchanged tree is a benign no-op.
		if strings.Contains(err.Error(), "nothing to commit") ||
			strings.Contains(err.Error(), "nothing added to commit") {
			return "", nil
		}
		return "", fmt.Errorf("git commit: %w", err)
	}
	hash, err := run(ctx, dir, 0, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(hash), nil
}

// DefaultRemote resolves where a push should go: origin when it exists,
// otherwise the first configured remote. Returns "" when the repository
// has no remotes at all.
func DefaultRemote(ctx context.Context, dir string) string {
	out, err := run(ctx, dir, 0, "remote")
	if err != nil {
		return ""
	}
	remotes := splitLines(out)
	if len(remotes) == 0 {
		return ""
	}
	for _, r := range remotes {
		if r == "origin" {
			return r
		}
	}
	return remotes[0]
}

// Push pushes branch to the given remote with a bounded timeout. One
// attempt, no retries: a transient failure degrades to a local-only commit.
func Push(ctx context.Context, dir, remote, branch string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultPushTimeout
	}
	if _, err := run(ctx, dir, timeout, "push", remote, branch); err != nil {
		return fmt.Errorf("git push: %w", err)
	}
	return nil
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
