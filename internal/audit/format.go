package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const separator = "──────────────────────────────────────────────────────────────────"

// Read loads all entries from a JSONL sync log.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audit: open: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("audit: line %d: %w", lineNum, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("audit: scan: %w", err)
	}
	return entries, nil
}

// FormatTimeline renders sync entries as a human-readable text timeline.
func FormatTimeline(entries []Entry) string {
	if len(entries) == 0 {
		return "No sync entries found.\n"
	}

	var b strings.Builder
	b.WriteString(separator + "\n")

	counts := map[string]int{}
	for _, e := range entries {
		ts := formatTimeOnly(e.Timestamp)
		status := strings.ToUpper(e.Status)
		repo := pad(e.Repo, 14)
		detail := e.Commit
		if e.RuleID != "" {
			detail = e.RuleID
		}
		b.WriteString(fmt.Sprintf("%-10s %-16s %-14s %s\n", ts, status, repo, detail))
		counts[e.Status]++
	}

	b.WriteString(separator + "\n")
	var parts []string
	for _, s := range []string{"pushed", "committed_local", "no_remote", "blocked", "failed"} {
		if counts[s] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[s], s))
		}
	}
	b.WriteString("Summary: " + strings.Join(parts, ", ") + "\n")
	return b.String()
}

// FormatJSON renders sync entries as indented JSON.
func FormatJSON(entries []Entry) (string, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal entries: %w", err)
	}
	return string(data), nil
}

func formatTimeOnly(ts string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04:05")
}

func pad(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
