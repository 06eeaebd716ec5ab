package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config errored: %v", err)
	}
	if len(cfg.Targets) == 0 {
		t.Error("default targets empty")
	}
	if cfg.PushTimeout != 30*time.Second {
		t.Errorf("push timeout = %v", cfg.PushTimeout)
	}
	if cfg.AuditLog == "" {
		t.Error("default audit log path empty")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `targets:
  - path: /work/app
    label: workspace
  - path: /home/u/.agent
    label: agent-config
    guarded: true
audit_log: /tmp/pw-sync.jsonl
scan:
  extra_filenames:
    - id: file.custom
      pattern: "*.vault"
  extra_patterns:
    - id: content.custom
      pattern: "corp_[a-z0-9]{30,}"
  exclude:
    - docs/EXAMPLES.md
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Targets) != 2 {
		t.Fatalf("targets = %d", len(cfg.Targets))
	}
	if cfg.Targets[0].Guarded {
		t.Error("workspace should not be guarded")
	}
	if !cfg.Targets[1].Guarded {
		t.Error("agent-config should be guarded")
	}
	if cfg.AuditLog != "/tmp/pw-sync.jsonl" {
		t.Errorf("audit log = %s", cfg.AuditLog)
	}
	if len(cfg.Scan.ExtraFilenames) != 1 || cfg.Scan.ExtraFilenames[0].Pattern != "*.vault" {
		t.Errorf("extra filenames = %+v", cfg.Scan.ExtraFilenames)
	}
	if len(cfg.Scan.ExtraPatterns) != 1 {
		t.Errorf("extra patterns = %+v", cfg.Scan.ExtraPatterns)
	}
	if len(cfg.Scan.Exclude) != 1 {
		t.Errorf("exclude = %+v", cfg.Scan.Exclude)
	}
	// push_timeout absent: compiled default applies.
	if cfg.PushTimeout != 30*time.Second {
		t.Errorf("push timeout = %v", cfg.PushTimeout)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("targets: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alt.yaml")
	data := "targets:\n  - path: /alt\n    label: alt\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Targets) != 1 || cfg.Targets[0].Path != "/alt" {
		t.Errorf("targets = %+v", cfg.Targets)
	}
}

func TestWorkspaceEnv(t *testing.T) {
	t.Setenv(EnvWorkspace, "/work/session")
	targets := DefaultTargets()
	if len(targets) == 0 || targets[0].Path != "/work/session" {
		t.Fatalf("targets = %+v", targets)
	}
	if targets[0].Guarded {
		t.Error("workspace target should skip the guard")
	}
	last := targets[len(targets)-1]
	if !last.Guarded {
		t.Error("shared config target should be guarded")
	}
}
