package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pushwatch/internal/config"
	"github.com/ppiankov/pushwatch/internal/gitx"
	"github.com/ppiankov/pushwatch/internal/leakscan"
)

var (
	scanConfig string
	scanDir    string
	scanFormat string
)

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanConfig, "config", "", "Path to config YAML (default: ~/.pushwatch/config.yaml)")
	scanCmd.Flags().StringVar(&scanDir, "dir", ".", "Repository directory to scan")
	scanCmd.Flags().StringVarP(&scanFormat, "format", "f", "text", "Output format (text|json)")
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan staged changes against the secret rule table",
	Long: "Evaluates staged file names and the added lines of the staged diff\n" +
		"against the rule table. Intended as a git pre-commit hook:\n\n" +
		"    pushwatch scan || exit 1\n\n" +
		"Exit code 0 when clean, 77 when a rule matched. Evidence in the\n" +
		"report is truncated so the report itself cannot leak a secret.",
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(scanConfig)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	scanner, err := buildScanner(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	staged, err := gitx.StagedFiles(ctx, scanDir)
	if err != nil {
		return err
	}
	added, err := gitx.StagedAddedLines(ctx, scanDir)
	if err != nil {
		return err
	}

	lines := make([]leakscan.Line, len(added))
	for i, a := range added {
		lines[i] = leakscan.Line{File: a.File, Text: a.Text}
	}

	verdict := scanner.Scan(staged, lines)

	switch scanFormat {
	case "json":
		out, _ := json.MarshalIndent(verdict, "", "  ")
		fmt.Println(string(out))
	default:
		if !verdict.Blocked {
			fmt.Fprintf(os.Stderr, "scan clean: %d staged file(s)\n", len(staged))
			break
		}
		for _, m := range verdict.Matches {
			fmt.Fprintf(os.Stderr, "BLOCKED %s (%s): %s\n", m.RuleID, m.File, m.Evidence)
		}
	}

	if verdict.Blocked {
		os.Exit(77)
	}
	return nil
}
