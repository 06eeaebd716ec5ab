package model

// ChangeState classifies a repository directory at invocation time.
type ChangeState string

const (
	StateNotARepo ChangeState = "not_a_repo"
	StateClean    ChangeState = "clean"
	StateDirty    ChangeState = "dirty"
)

// RepoTarget identifies one version-controlled directory to process.
// Guarded targets always route staged changes through the secret scanner
// before a commit is created.
type RepoTarget struct {
	Path    string `json:"path" yaml:"path"`
	Label   string `json:"label" yaml:"label"`
	Guarded bool   `json:"guarded" yaml:"guarded"`
}

// ChangeSet is the set of pending modifications in a repository,
// derived fresh on every run and never persisted.
type ChangeSet struct {
	Staged    []string `json:"staged"`
	Unstaged  []string `json:"unstaged"`
	Untracked []string `json:"untracked"`
}

// Empty reports whether there is nothing to act on.
func (c ChangeSet) Empty() bool {
	return len(c.Staged) == 0 && len(c.Unstaged) == 0 && len(c.Untracked) == 0
}

// RuleMatch is one secret-rule hit with bounded evidence.
type RuleMatch struct {
	RuleID   string `json:"rule_id"`
	File     string `json:"file,omitempty"`
	Evidence string `json:"evidence"`
}

// ScanVerdict is the scanner's pass/block decision for one target.
type ScanVerdict struct {
	Blocked bool        `json:"blocked"`
	Matches []RuleMatch `json:"matches,omitempty"`
}

// CommitRecord describes a commit handed to git. Durable history
// belongs to git once the commit exists.
type CommitRecord struct {
	Branch  string   `json:"branch"`
	Hash    string   `json:"hash,omitempty"`
	Message string   `json:"message"`
	Files   []string `json:"files"`
}

// SyncStatus is the terminal outcome for one target.
type SyncStatus string

const (
	StatusPushed        SyncStatus = "pushed"
	StatusCommittedOnly SyncStatus = "committed_local"
	StatusNoRemote      SyncStatus = "no_remote"
	StatusBlocked       SyncStatus = "blocked"
	StatusSkipped       SyncStatus = "skipped"
	StatusFailed        SyncStatus = "failed"
)

// SyncResult is the transient per-target report handed back to the caller.
type SyncResult struct {
	Target  RepoTarget    `json:"target"`
	Status  SyncStatus    `json:"status"`
	Message string        `json:"message"`
	Commit  *CommitRecord `json:"commit,omitempty"`
	Verdict *ScanVerdict  `json:"verdict,omitempty"`
}

// Actionable reports whether the result represents real work
// (anything other than a silent skip).
func (r SyncResult) Actionable() bool {
	return r.Status != StatusSkipped
}
