package mcp

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// newTestServer creates a server whose config and sync log live in
// temp directories, so nothing under the real home is touched.
func newTestServer(t *testing.T, targetDir string) *Server {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	data := "targets:\n" +
		"  - path: " + targetDir + "\n" +
		"    label: ws\n" +
		"    guarded: true\n" +
		"audit_log: " + filepath.Join(dir, "sync.jsonl") + "\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	srv, err := New(Config{ConfigPath: cfgPath})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	git(t, dir, "init", "-b", "main")
	git(t, dir, "config", "user.email", "test@example.com")
	git(t, dir, "config", "user.name", "test")
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("hi\n"), 0644); err != nil {
		t.Fatal(err)
	}
	git(t, dir, "add", "-A")
	git(t, dir, "commit", "-m", "initial")
	return dir
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func TestHandleScanBlocksStagedSecret(t *testing.T) {
	repo := initRepo(t)
	srv := newTestServer(t, repo)

	if err := os.WriteFile(filepath.Join(repo, ".env"), []byte("X=1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	git(t, repo, "add", "-A")

	res, out, err := srv.handleScan(context.Background(), nil, ScanInput{Path: repo})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Blocked {
		t.Fatal("staged .env not blocked")
	}
	if res == nil || !res.IsError {
		t.Error("blocking scan should set IsError")
	}
	if out.Matches[0].RuleID != "file.dotenv" {
		t.Errorf("rule = %s", out.Matches[0].RuleID)
	}
}

func TestHandleScanClean(t *testing.T) {
	repo := initRepo(t)
	srv := newTestServer(t, repo)

	if err := os.WriteFile(filepath.Join(repo, "notes.txt"), []byte("plain\n"), 0644); err != nil {
		t.Fatal(err)
	}
	git(t, repo, "add", "-A")

	res, out, err := srv.handleScan(context.Background(), nil, ScanInput{Path: repo})
	if err != nil {
		t.Fatal(err)
	}
	if out.Blocked || res != nil {
		t.Errorf("clean scan blocked: %+v", out)
	}
}

func TestHandleSyncAndAudit(t *testing.T) {
	repo := initRepo(t)
	srv := newTestServer(t, repo)

	if err := os.WriteFile(filepath.Join(repo, "notes.txt"), []byte("plain\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, out, err := srv.handleSync(context.Background(), nil, SyncInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("results = %+v", out.Results)
	}
	if out.Results[0].Status != "no_remote" {
		t.Errorf("status = %s, want no_remote", out.Results[0].Status)
	}
	if out.Blocked {
		t.Error("clean sync reported blocked")
	}

	_, auditOut, err := srv.handleAudit(context.Background(), nil, AuditInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(auditOut.Entries) != 1 {
		t.Fatalf("audit entries = %d", len(auditOut.Entries))
	}
	if !auditOut.Chain.Valid {
		t.Errorf("chain invalid: %s", auditOut.Chain.Error)
	}
}
