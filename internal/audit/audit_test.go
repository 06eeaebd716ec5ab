package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRecordAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.jsonl")

	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	entries := []Entry{
		{Repo: "workspace", Path: "/work/app", Status: "pushed", Branch: "main", Commit: "abc1234", Files: 3},
		{Repo: "agent-config", Path: "/home/u/.agent", Status: "blocked", RuleID: "content.openai-key"},
		{Repo: "workspace", Path: "/work/app", Status: "no_remote"},
	}
	for _, e := range entries {
		if err := log.Record(e); err != nil {
			t.Fatal(err)
		}
	}
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	result := Verify(path)
	if !result.Valid {
		t.Fatalf("chain invalid: %s (line %d)", result.Error, result.ErrorLine)
	}
	if result.Lines != 3 {
		t.Errorf("lines = %d, want 3", result.Lines)
	}
}

func TestChainSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.jsonl")

	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := log.Record(Entry{Repo: "a", Status: "pushed"}); err != nil {
		t.Fatal(err)
	}
	log.Close()

	// Reopening must recover the chain tail, not restart from genesis.
	log, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := log.Record(Entry{Repo: "b", Status: "pushed"}); err != nil {
		t.Fatal(err)
	}
	log.Close()

	if result := Verify(path); !result.Valid || result.Lines != 2 {
		t.Fatalf("verify after reopen: %+v", result)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.jsonl")

	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	log.Record(Entry{Repo: "a", Status: "pushed"})
	log.Record(Entry{Repo: "b", Status: "blocked", RuleID: "file.dotenv"})
	log.Close()

	// Rewrite the first entry; the second entry's prev_hash no longer
	// matches and the chain must break there.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(string(data), `"pushed"`, `"failed"`, 1)
	if err := os.WriteFile(path, []byte(tampered), 0600); err != nil {
		t.Fatal(err)
	}

	result := Verify(path)
	if result.Valid {
		t.Fatal("tampered log verified as valid")
	}
	if result.ErrorLine != 2 {
		t.Errorf("error line = %d, want 2", result.ErrorLine)
	}
	if !strings.Contains(result.Error, "hash mismatch") {
		t.Errorf("error = %q", result.Error)
	}
}

func TestVerifyFlagsInterruptedWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.jsonl")

	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	log.Record(Entry{Repo: "a", Status: "pushed"})
	log.Record(Entry{Repo: "b", Status: "no_remote"})
	log.Close()

	// A crash mid-write leaves a final line with no newline terminator.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString(`{"ts":"2026-08-31T0`)
	f.Close()

	result := Verify(path)
	if !result.Valid {
		t.Fatalf("chain before partial line should verify: %+v", result)
	}
	if !result.Truncated {
		t.Error("Truncated not flagged")
	}
	if result.Lines != 2 {
		t.Errorf("lines = %d, want 2", result.Lines)
	}
}

func TestOpenDropsPartialLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.jsonl")

	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	log.Record(Entry{Repo: "a", Status: "pushed"})
	log.Close()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString(`{"ts":"2026-08`)
	f.Close()

	// Reopening cuts the partial line and chains from the last complete one.
	log, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := log.Record(Entry{Repo: "b", Status: "pushed"}); err != nil {
		t.Fatal(err)
	}
	log.Close()

	result := Verify(path)
	if !result.Valid || result.Truncated {
		t.Fatalf("verify after recovery: %+v", result)
	}
	if result.Lines != 2 {
		t.Errorf("lines = %d, want 2", result.Lines)
	}
}

func TestReadAndFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sync.jsonl")

	log, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	log.Record(Entry{Repo: "workspace", Status: "pushed", Commit: "abc1234"})
	log.Record(Entry{Repo: "agent-config", Status: "blocked", RuleID: "content.jwt"})
	log.Close()

	entries, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}

	text := FormatTimeline(entries)
	if !strings.Contains(text, "PUSHED") || !strings.Contains(text, "content.jwt") {
		t.Errorf("timeline missing fields:\n%s", text)
	}
	if !strings.Contains(text, "1 pushed, 1 blocked") {
		t.Errorf("summary missing:\n%s", text)
	}

	if _, err := FormatJSON(entries); err != nil {
		t.Errorf("FormatJSON: %v", err)
	}
}
