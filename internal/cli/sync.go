package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pushwatch/internal/audit"
	"github.com/ppiankov/pushwatch/internal/config"
	"github.com/ppiankov/pushwatch/internal/hookio"
	"github.com/ppiankov/pushwatch/internal/model"
	"github.com/ppiankov/pushwatch/internal/syncer"
)

var (
	syncConfig  string
	syncHook    bool
	syncNoPush  bool
	syncNoAudit bool
)

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().StringVar(&syncConfig, "config", "", "Path to config YAML (default: ~/.pushwatch/config.yaml)")
	syncCmd.Flags().BoolVar(&syncHook, "hook", false, "Read the agent hook payload from stdin for the workspace path")
	syncCmd.Flags().BoolVar(&syncNoPush, "no-push", false, "Commit only, never push")
	syncCmd.Flags().BoolVar(&syncNoAudit, "no-audit", false, "Skip the sync log")
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Commit and push pending changes across all repository targets",
	Long: "Processes each configured repository target in order: detects pending\n" +
		"changes, scans guarded targets for secrets, commits, and pushes.\n" +
		"One status line per repository is written to stderr.\n\n" +
		"Exit code 0 on success or benign no-op, 77 if a secret rule blocked a commit.\n" +
		"Intended as a session-end automation hook.",
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(syncConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	targets := cfg.Targets
	if syncHook {
		payload, err := hookio.Read(os.Stdin)
		if err != nil {
			return err
		}
		if payload != nil && payload.Cwd != "" {
			targets = withWorkspace(targets, payload.Cwd)
		}
	}

	scanner, err := buildScanner(cfg)
	if err != nil {
		return err
	}

	var syncLog *audit.Log
	if !syncNoAudit && cfg.AuditLog != "" {
		syncLog, err = audit.Open(cfg.AuditLog)
		if err != nil {
			return fmt.Errorf("failed to open sync log: %w", err)
		}
		defer syncLog.Close()
	}

	s := syncer.New(syncer.Options{
		Scanner:     scanner,
		Audit:       syncLog,
		Out:         os.Stderr,
		PushTimeout: cfg.PushTimeout,
		NoPush:      syncNoPush,
	})

	results := s.RunAll(context.Background(), targets)

	if code := syncer.ExitCode(results); code != 0 {
		os.Exit(code)
	}
	return nil
}

// withWorkspace replaces the workspace entry with the hook-supplied
// directory, keeping the rest of the ordered target list intact.
func withWorkspace(targets []model.RepoTarget, cwd string) []model.RepoTarget {
	out := make([]model.RepoTarget, 0, len(targets)+1)
	replaced := false
	for _, t := range targets {
		if !t.Guarded && !replaced {
			t.Path = cwd
			replaced = true
		}
		out = append(out, t)
	}
	if !replaced {
		out = append([]model.RepoTarget{{Path: cwd, Label: "workspace"}}, out...)
	}
	return out
}
