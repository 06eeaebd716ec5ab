package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pushwatch/internal/audit"
	"github.com/ppiankov/pushwatch/internal/config"
	"github.com/ppiankov/pushwatch/internal/daemon"
	"github.com/ppiankov/pushwatch/internal/syncer"
)

var watchConfig string

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchConfig, "config", "", "Path to config YAML (default: ~/.pushwatch/config.yaml)")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch repository targets and sync when changes settle",
	Long: "Watches the configured worktrees with fsnotify and runs the sync\n" +
		"pipeline after a burst of file events settles. Ctrl+C to stop.",
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(watchConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	scanner, err := buildScanner(cfg)
	if err != nil {
		return err
	}

	var syncLog *audit.Log
	if cfg.AuditLog != "" {
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
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nStopping watcher...")
		cancel()
	}()

	roots := make([]string, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		roots = append(roots, t.Path)
	}

	watcher := daemon.NewWorktreeWatcher(roots, func() {
		s.RunAll(ctx, cfg.Targets)
	})

	fmt.Fprintf(os.Stderr, "pushwatch watching %d worktree(s)\n", len(roots))
	if err := watcher.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
