package syncer

import (
	"fmt"

	"github.com/ppiankov/pushwatch/internal/model"
)

// Line renders one result as the single status line shown to the
// caller. Never a stack trace, never raw diff content.
func Line(r model.SyncResult) string {
	label := r.Target.Label
	if label == "" {
		label = r.Target.Path
	}

	switch r.Status {
	case model.StatusPushed:
		branch := ""
		if r.Commit != nil {
			branch = r.Commit.Branch
		}
		return fmt.Sprintf("[%s] %s — run 'git pull' in other checkouts of %s", label, r.Message, branch)
	case model.StatusCommittedOnly:
		return fmt.Sprintf("[%s] %s", label, r.Message)
	case model.StatusNoRemote:
		return fmt.Sprintf("[%s] %s", label, r.Message)
	case model.StatusBlocked:
		return fmt.Sprintf("[%s] BLOCKED %s — commit aborted", label, r.Message)
	case model.StatusFailed:
		return fmt.Sprintf("[%s] sync failed: %s", label, r.Message)
	default:
		return fmt.Sprintf("[%s] %s", label, r.Message)
	}
}
