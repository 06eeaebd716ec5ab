package pushwatch

import (
	"fmt"

	"github.com/ppiankov/pushwatch/internal/model"
)

// Target identifies one repository directory to process.
type Target struct {
	Path    string
	Label   string
	Guarded bool
}

// Status is the terminal outcome for one target.
type Status string

const (
	StatusPushed        Status = Status(model.StatusPushed)
	StatusCommittedOnly Status = Status(model.StatusCommittedOnly)
	StatusNoRemote      Status = Status(model.StatusNoRemote)
	StatusBlocked       Status = Status(model.StatusBlocked)
	StatusSkipped       Status = Status(model.StatusSkipped)
	StatusFailed        Status = Status(model.StatusFailed)
)

// Verdict is the scanner's pass/block decision with truncated evidence.
type Verdict model.ScanVerdict

// Result is one repository's sync outcome.
type Result struct {
	Label   string
	Path    string
	Status  Status
	Message string
}

// Blocked reports whether the result was refused by the secret scanner.
func (r Result) Blocked() bool { return r.Status == StatusBlocked }

// BlockedError wraps a blocking verdict for callers that prefer errors.
type BlockedError struct {
	Verdict Verdict
}

func (e *BlockedError) Error() string {
	if len(e.Verdict.Matches) == 0 {
		return "pushwatch blocked"
	}
	m := e.Verdict.Matches[0]
	return fmt.Sprintf("pushwatch blocked (%s): %s", m.RuleID, m.Evidence)
}

// Err returns a *BlockedError if the verdict blocks, nil otherwise.
func (v Verdict) Err() error {
	if !v.Blocked {
		return nil
	}
	return &BlockedError{Verdict: v}
}
