// Package syncer runs the commit-and-push pipeline over an ordered list
// of repository targets. Targets are processed strictly sequentially and
// failures are isolated: a block or error in one target never prevents
// the next from being processed.
package syncer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ppiankov/pushwatch/internal/audit"
	"github.com/ppiankov/pushwatch/internal/gitx"
	"github.com/ppiankov/pushwatch/internal/leakscan"
	"github.com/ppiankov/pushwatch/internal/model"
)

// maxMessageFiles caps how many file names the synthesized commit
// message lists before collapsing to a count.
const maxMessageFiles = 10

// Options configures a Syncer.
type Options struct {
	Scanner     *leakscan.Scanner
	Audit       *audit.Log // optional; nil disables the sync log
	Out         io.Writer  // status lines; callers pass stderr
	PushTimeout time.Duration
	NoPush      bool // commit only, never attempt the network round trip
}

// Syncer drives the pipeline: detect → scan (guarded) → commit → push.
type Syncer struct {
	scanner     *leakscan.Scanner
	auditLog    *audit.Log
	out         io.Writer
	pushTimeout time.Duration
	noPush      bool
}

// New creates a Syncer. A nil Scanner gets the built-in rule tables.
func New(opts Options) *Syncer {
	s := &Syncer{
		scanner:     opts.Scanner,
		auditLog:    opts.Audit,
		out:         opts.Out,
		pushTimeout: opts.PushTimeout,
		noPush:      opts.NoPush,
	}
	if s.scanner == nil {
		s.scanner = leakscan.New()
	}
	if s.out == nil {
		s.out = io.Discard
	}
	return s
}

// RunAll processes targets in order and returns one result per target.
// A panic inside one target's pipeline is contained to that target.
func (s *Syncer) RunAll(ctx context.Context, targets []model.RepoTarget) []model.SyncResult {
	results := make([]model.SyncResult, 0, len(targets))
	for _, t := range targets {
		r := s.runIsolated(ctx, t)
		if r.Actionable() {
			fmt.Fprintln(s.out, Line(r))
			s.record(r)
		}
		results = append(results, r)
	}
	return results
}

func (s *Syncer) runIsolated(ctx context.Context, t model.RepoTarget) (result model.SyncResult) {
	defer func() {
		if r := recover(); r != nil {
			result = model.SyncResult{
				Target:  t,
				Status:  model.StatusFailed,
				Message: fmt.Sprintf("internal error: %v", r),
			}
		}
	}()
	return s.runOne(ctx, t)
}

// runOne executes the full pipeline for a single target.
func (s *Syncer) runOne(ctx context.Context, t model.RepoTarget) model.SyncResult {
	skip := func(reason string) model.SyncResult {
		return model.SyncResult{Target: t, Status: model.StatusSkipped, Message: reason}
	}
	fail := func(err error) model.SyncResult {
		return model.SyncResult{Target: t, Status: model.StatusFailed, Message: firstLine(err)}
	}

	state, _, err := gitx.Detect(ctx, t.Path)
	if err != nil {
		return fail(err)
	}
	if state != model.StateDirty {
		return skip(string(state))
	}

	branch, err := gitx.CurrentBranch(ctx, t.Path)
	if err != nil {
		return fail(err)
	}
	if branch == "" {
		// Detached HEAD: automatic commits only make sense on a named branch.
		return skip("no branch")
	}

	if err := gitx.StageAll(ctx, t.Path); err != nil {
		return fail(err)
	}

	staged, err := gitx.StagedFiles(ctx, t.Path)
	if err != nil {
		return fail(err)
	}
	if len(staged) == 0 {
		return skip("nothing staged")
	}

	var verdict *model.ScanVerdict
	if t.Guarded {
		added, err := gitx.StagedAddedLines(ctx, t.Path)
		if err != nil {
			return fail(err)
		}
		lines := make([]leakscan.Line, len(added))
		for i, a := range added {
			lines[i] = leakscan.Line{File: a.File, Text: a.Text}
		}
		v := s.scanner.Scan(staged, lines)
		verdict = &v
		if v.Blocked {
			m := v.Matches[0]
			return model.SyncResult{
				Target:  t,
				Status:  model.StatusBlocked,
				Message: fmt.Sprintf("%s: %s", m.RuleID, m.Evidence),
				Verdict: verdict,
			}
		}
	}

	record := model.CommitRecord{
		Branch:  branch,
		Message: commitMessage(staged),
		Files:   staged,
	}

	// Unguarded targets skip local commit hooks: the workspace is not
	// the secret-sensitive boundary, and speed matters there.
	hash, err := gitx.Commit(ctx, t.Path, record.Message, !t.Guarded)
	if err != nil {
		return model.SyncResult{Target: t, Status: model.StatusFailed, Message: firstLine(err), Verdict: verdict}
	}
	if hash == "" {
		return skip("nothing to commit")
	}
	record.Hash = hash

	if s.noPush {
		return model.SyncResult{
			Target:  t,
			Status:  model.StatusCommittedOnly,
			Message: fmt.Sprintf("committed %s (push disabled)", hash),
			Commit:  &record,
			Verdict: verdict,
		}
	}

	remote := gitx.DefaultRemote(ctx, t.Path)
	if remote == "" {
		return model.SyncResult{
			Target:  t,
			Status:  model.StatusNoRemote,
			Message: fmt.Sprintf("committed %s locally (no remote configured)", hash),
			Commit:  &record,
			Verdict: verdict,
		}
	}

	if err := gitx.Push(ctx, t.Path, remote, branch, s.pushTimeout); err != nil {
		return model.SyncResult{
			Target:  t,
			Status:  model.StatusCommittedOnly,
			Message: fmt.Sprintf("committed %s, push failed: %s", hash, firstLine(err)),
			Commit:  &record,
			Verdict: verdict,
		}
	}

	return model.SyncResult{
		Target:  t,
		Status:  model.StatusPushed,
		Message: fmt.Sprintf("pushed %s to %s/%s", hash, remote, branch),
		Commit:  &record,
		Verdict: verdict,
	}
}

// firstLine collapses a wrapped git error, which may carry multi-line
// stderr, to its first line. Every target reports exactly one status line.
func firstLine(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = strings.TrimSpace(msg[:i])
	}
	return msg
}

// record appends the result to the sync log, if one is configured.
func (s *Syncer) record(r model.SyncResult) {
	if s.auditLog == nil {
		return
	}
	e := audit.Entry{
		Repo:    r.Target.Label,
		Path:    r.Target.Path,
		Status:  string(r.Status),
		Message: r.Message,
	}
	if r.Commit != nil {
		e.Branch = r.Commit.Branch
		e.Commit = r.Commit.Hash
		e.Files = len(r.Commit.Files)
	}
	if r.Verdict != nil && len(r.Verdict.Matches) > 0 {
		e.RuleID = r.Verdict.Matches[0].RuleID
	}
	_ = s.auditLog.Record(e)
}

// commitMessage synthesizes a message from the staged file list,
// capped to maxMessageFiles names.
func commitMessage(files []string) string {
	listed := files
	extra := 0
	if len(listed) > maxMessageFiles {
		extra = len(listed) - maxMessageFiles
		listed = listed[:maxMessageFiles]
	}
	msg := "Auto-sync: " + strings.Join(listed, ", ")
	if extra > 0 {
		msg += fmt.Sprintf(" (+%d more)", extra)
	}
	return msg
}

// ExitCode maps results to the process exit code: 77 (the block exit
// code) if any target was blocked by the scanner, 0 otherwise. All
// other conditions degrade gracefully.
func ExitCode(results []model.SyncResult) int {
	for _, r := range results {
		if r.Status == model.StatusBlocked {
			return 77
		}
	}
	return 0
}
