package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/pushwatch/internal/audit"
	"github.com/ppiankov/pushwatch/internal/config"
)

var (
	auditPath   string
	auditVerify bool
	auditFormat string
)

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().StringVar(&auditPath, "log", "", "Path to sync log JSONL (default: ~/.pushwatch/sync.jsonl)")
	auditCmd.Flags().BoolVar(&auditVerify, "verify", false, "Validate the hash chain instead of listing entries")
	auditCmd.Flags().StringVarP(&auditFormat, "format", "f", "text", "Output format (text|json)")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show or verify the hash-chained sync log",
	RunE:  runAudit,
}

func runAudit(cmd *cobra.Command, args []string) error {
	path := auditPath
	if path == "" {
		path = config.Default().AuditLog
	}

	if auditVerify {
		result := audit.Verify(path)
		if auditFormat == "json" {
			out, _ := json.MarshalIndent(result, "", "  ")
			fmt.Println(string(out))
		} else if result.Valid {
			fmt.Printf("chain valid: %d entries\n", result.Lines)
		} else {
			fmt.Printf("chain BROKEN at line %d: %s\n", result.ErrorLine, result.Error)
		}
		if !result.Valid {
			os.Exit(1)
		}
		return nil
	}

	entries, err := audit.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("No sync log yet.")
			return nil
		}
		return err
	}

	switch auditFormat {
	case "json":
		out, err := audit.FormatJSON(entries)
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		fmt.Print(audit.FormatTimeline(entries))
	}
	return nil
}
