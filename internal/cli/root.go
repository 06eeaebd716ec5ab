package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pushwatch",
	Short: "Secret-scanning commit guard and multi-repo auto-sync",
	Long:  "Automatically commits and pushes changes an agent session makes across repository targets, and blocks commits whose staged changes match a known secret shape before they reach a possibly-public remote.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
