package model

import "testing"

func TestChangeSetEmpty(t *testing.T) {
	if !(ChangeSet{}).Empty() {
		t.Error("zero changeset not empty")
	}
	if (ChangeSet{Untracked: []string{"a"}}).Empty() {
		t.Error("untracked-only changeset reported empty")
	}
	if (ChangeSet{Staged: []string{"a"}}).Empty() {
		t.Error("staged-only changeset reported empty")
	}
}

func TestResultActionable(t *testing.T) {
	if (SyncResult{Status: StatusSkipped}).Actionable() {
		t.Error("skip should not be actionable")
	}
	for _, s := range []SyncStatus{StatusPushed, StatusCommittedOnly, StatusNoRemote, StatusBlocked, StatusFailed} {
		if !(SyncResult{Status: s}).Actionable() {
			t.Errorf("%s should be actionable", s)
		}
	}
}
