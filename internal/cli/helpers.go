package cli

import (
	"fmt"

	"github.com/ppiankov/pushwatch/internal/config"
	"github.com/ppiankov/pushwatch/internal/leakscan"
)

// buildScanner creates a scanner with the built-in tables plus any
// operator overrides from config.
func buildScanner(cfg *config.Config) (*leakscan.Scanner, error) {
	s := leakscan.New()
	for _, r := range cfg.Scan.ExtraFilenames {
		s.AddFilenameRule(r.ID, r.Pattern)
	}
	for _, r := range cfg.Scan.ExtraPatterns {
		if err := s.AddContentRule(r.ID, r.Pattern); err != nil {
			return nil, fmt.Errorf("invalid extra pattern %q: %w", r.ID, err)
		}
	}
	for _, p := range cfg.Scan.Exclude {
		s.Exclude(p)
	}
	return s, nil
}
