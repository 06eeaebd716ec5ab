package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pushwatch/internal/config"
)

var rulesConfig string

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().StringVar(&rulesConfig, "config", "", "Path to config YAML (default: ~/.pushwatch/config.yaml)")
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the active secret rule table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rulesConfig)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		scanner, err := buildScanner(cfg)
		if err != nil {
			return err
		}

		filenames, contents := scanner.Rules()
		fmt.Printf("Filename rules (%d):\n", len(filenames))
		for _, r := range filenames {
			fmt.Println("  " + r)
		}
		fmt.Printf("\nContent rules (%d):\n", len(contents))
		for _, r := range contents {
			fmt.Println("  " + r)
		}
		return nil
	},
}
