// Package mcp exposes pushwatch as MCP tools over stdio, so agent
// harnesses can trigger a sync or a dry-run scan without shelling out.
package mcp

import (
	"context"
	"fmt"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/pushwatch/internal/audit"
	"github.com/ppiankov/pushwatch/internal/config"
	"github.com/ppiankov/pushwatch/internal/leakscan"
	"github.com/ppiankov/pushwatch/internal/syncer"
)

// Config holds MCP server configuration.
type Config struct {
	ConfigPath string
}

// Server wraps the MCP SDK server around the sync pipeline.
type Server struct {
	mcpServer *mcpsdk.Server
	cfg       *config.Config
	scanner   *leakscan.Scanner
	syncer    *syncer.Syncer
	auditLog  *audit.Log
	mu        sync.Mutex
}

// New creates an MCP server with loaded configuration and tools.
func New(c Config) (*Server, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	scanner := leakscan.New()
	for _, r := range cfg.Scan.ExtraFilenames {
		scanner.AddFilenameRule(r.ID, r.Pattern)
	}
	for _, r := range cfg.Scan.ExtraPatterns {
		if err := scanner.AddContentRule(r.ID, r.Pattern); err != nil {
			return nil, fmt.Errorf("invalid extra pattern %q: %w", r.ID, err)
		}
	}
	for _, p := range cfg.Scan.Exclude {
		scanner.Exclude(p)
	}

	var auditLog *audit.Log
	if cfg.AuditLog != "" {
		auditLog, err = audit.Open(cfg.AuditLog)
		if err != nil {
			return nil, fmt.Errorf("failed to open sync log: %w", err)
		}
	}

	s := &Server{
		cfg:      cfg,
		scanner:  scanner,
		auditLog: auditLog,
		syncer: syncer.New(syncer.Options{
			Scanner:     scanner,
			Audit:       auditLog,
			PushTimeout: cfg.PushTimeout,
		}),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "pushwatch",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the sync log if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		return s.auditLog.Close()
	}
	return nil
}

// registerTools adds all pushwatch tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "pushwatch_sync",
		Description: "Commit and push pending changes across the configured repository targets. Guarded targets are scanned for secrets first; a match blocks that target's commit.",
	}, s.handleSync)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "pushwatch_scan",
		Description: "Scan a repository's staged changes against the secret rule table without committing (dry-run).",
	}, s.handleScan)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "pushwatch_audit",
		Description: "Return recent sync log entries and the hash-chain verification result.",
	}, s.handleAudit)
}
