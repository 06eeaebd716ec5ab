package pushwatch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/pushwatch/internal/config"
	"github.com/ppiankov/pushwatch/internal/gitx"
	"github.com/ppiankov/pushwatch/internal/leakscan"
	"github.com/ppiankov/pushwatch/internal/syncer"
)

// Client is an in-process commit guard and sync pipeline.
type Client struct {
	cfg     *config.Config
	scanner *leakscan.Scanner
	syncer  *syncer.Syncer
}

// New creates a Client with configuration loaded the same way the CLI
// loads it (config file, env override, compiled defaults).
func New(opts ...Option) (*Client, error) {
	c := &clientConfig{out: io.Discard}
	for _, o := range opts {
		o(c)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("pushwatch: load config: %w", err)
	}
	if len(c.targets) > 0 {
		cfg.Targets = c.targets
	}

	scanner := leakscan.New()
	for _, r := range cfg.Scan.ExtraFilenames {
		scanner.AddFilenameRule(r.ID, r.Pattern)
	}
	for _, r := range cfg.Scan.ExtraPatterns {
		if err := scanner.AddContentRule(r.ID, r.Pattern); err != nil {
			return nil, fmt.Errorf("pushwatch: extra pattern %q: %w", r.ID, err)
		}
	}
	for _, p := range cfg.Scan.Exclude {
		scanner.Exclude(p)
	}

	return &Client{
		cfg:     cfg,
		scanner: scanner,
		syncer: syncer.New(syncer.Options{
			Scanner:     scanner,
			Out:         c.out,
			PushTimeout: cfg.PushTimeout,
			NoPush:      c.noPush,
		}),
	}, nil
}

// ScanText evaluates arbitrary text (split on newlines) against the
// content rule table, attributing matches to the given name.
func (c *Client) ScanText(name, text string) Verdict {
	var lines []leakscan.Line
	for _, l := range strings.Split(text, "\n") {
		lines = append(lines, leakscan.Line{File: name, Text: l})
	}
	return Verdict(c.scanner.Scan(nil, lines))
}

// ScanFilenames evaluates file paths against the filename rule table.
func (c *Client) ScanFilenames(names []string) Verdict {
	return Verdict(c.scanner.Scan(names, nil))
}

// ScanStaged evaluates a repository's staged file names and added diff
// lines, exactly as the guarded sync path does.
func (c *Client) ScanStaged(ctx context.Context, dir string) (Verdict, error) {
	staged, err := gitx.StagedFiles(ctx, dir)
	if err != nil {
		return Verdict{}, fmt.Errorf("pushwatch: staged files: %w", err)
	}
	added, err := gitx.StagedAddedLines(ctx, dir)
	if err != nil {
		return Verdict{}, fmt.Errorf("pushwatch: staged diff: %w", err)
	}
	lines := make([]leakscan.Line, len(added))
	for i, a := range added {
		lines[i] = leakscan.Line{File: a.File, Text: a.Text}
	}
	return Verdict(c.scanner.Scan(staged, lines)), nil
}

// Sync runs the full pipeline over the configured targets and returns
// one result per target, in order.
func (c *Client) Sync(ctx context.Context) []Result {
	results := c.syncer.RunAll(ctx, c.cfg.Targets)
	out := make([]Result, len(results))
	for i, r := range results {
		out[i] = Result{
			Label:   r.Target.Label,
			Path:    r.Target.Path,
			Status:  Status(r.Status),
			Message: r.Message,
		}
	}
	return out
}
