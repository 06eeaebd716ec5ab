package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/pushwatch/internal/audit"
	"github.com/ppiankov/pushwatch/internal/gitx"
	"github.com/ppiankov/pushwatch/internal/leakscan"
	"github.com/ppiankov/pushwatch/internal/model"
)

// --- Input/Output types ---

// SyncInput defines parameters for the pushwatch_sync tool.
type SyncInput struct {
	Workspace string `json:"workspace,omitempty" jsonschema:"workspace directory to sync first, defaults to configured targets"`
}

// TargetResult is one repository's outcome.
type TargetResult struct {
	Label   string `json:"label"`
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// SyncOutput contains one result per processed target.
type SyncOutput struct {
	Results []TargetResult `json:"results"`
	Blocked bool           `json:"blocked"`
}

// ScanInput defines parameters for the pushwatch_scan tool.
type ScanInput struct {
	Path string `json:"path" jsonschema:"repository directory whose staged changes to scan"`
}

// ScanOutput contains the scanner verdict with truncated evidence.
type ScanOutput struct {
	Blocked bool              `json:"blocked"`
	Matches []model.RuleMatch `json:"matches,omitempty"`
}

// AuditInput defines parameters for the pushwatch_audit tool.
type AuditInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of recent entries to return, default 20"`
}

// AuditOutput contains recent sync entries and chain verification.
type AuditOutput struct {
	Entries []audit.Entry      `json:"entries"`
	Chain   audit.VerifyResult `json:"chain"`
}

// --- Handlers ---

func (s *Server) handleSync(ctx context.Context, req *mcpsdk.CallToolRequest, input SyncInput) (*mcpsdk.CallToolResult, SyncOutput, error) {
	targets := s.cfg.Targets
	if input.Workspace != "" {
		targets = append([]model.RepoTarget{{
			Path:  input.Workspace,
			Label: "workspace",
		}}, guardedOnly(targets)...)
	}

	s.mu.Lock()
	results := s.syncer.RunAll(ctx, targets)
	s.mu.Unlock()

	out := SyncOutput{}
	for _, r := range results {
		if !r.Actionable() {
			continue
		}
		out.Results = append(out.Results, TargetResult{
			Label:   r.Target.Label,
			Path:    r.Target.Path,
			Status:  string(r.Status),
			Message: r.Message,
		})
		if r.Status == model.StatusBlocked {
			out.Blocked = true
		}
	}

	if out.Blocked {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleScan(ctx context.Context, req *mcpsdk.CallToolRequest, input ScanInput) (*mcpsdk.CallToolResult, ScanOutput, error) {
	staged, err := gitx.StagedFiles(ctx, input.Path)
	if err != nil {
		return nil, ScanOutput{}, err
	}
	added, err := gitx.StagedAddedLines(ctx, input.Path)
	if err != nil {
		return nil, ScanOutput{}, err
	}

	lines := make([]leakscan.Line, len(added))
	for i, a := range added {
		lines[i] = leakscan.Line{File: a.File, Text: a.Text}
	}

	v := s.scanner.Scan(staged, lines)
	out := ScanOutput{Blocked: v.Blocked, Matches: v.Matches}
	if v.Blocked {
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleAudit(ctx context.Context, req *mcpsdk.CallToolRequest, input AuditInput) (*mcpsdk.CallToolResult, AuditOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, err := audit.Read(s.cfg.AuditLog)
	if err != nil {
		return nil, AuditOutput{}, err
	}
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	return nil, AuditOutput{
		Entries: entries,
		Chain:   audit.Verify(s.cfg.AuditLog),
	}, nil
}

// guardedOnly filters targets to the always-synced guarded set, used
// when the caller supplies an explicit workspace.
func guardedOnly(targets []model.RepoTarget) []model.RepoTarget {
	var out []model.RepoTarget
	for _, t := range targets {
		if t.Guarded {
			out = append(out, t)
		}
	}
	return out
}
