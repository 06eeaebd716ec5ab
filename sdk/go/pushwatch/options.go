package pushwatch

import (
	"io"

	"github.com/ppiankov/pushwatch/internal/model"
)

type clientConfig struct {
	configPath string
	targets    []model.RepoTarget
	out        io.Writer
	noPush     bool
}

// Option customizes a Client.
type Option func(*clientConfig)

// WithConfigPath loads configuration from an explicit file instead of
// the default search order.
func WithConfigPath(path string) Option {
	return func(c *clientConfig) { c.configPath = path }
}

// WithTargets replaces the configured repository targets.
func WithTargets(targets ...Target) Option {
	return func(c *clientConfig) {
		c.targets = make([]model.RepoTarget, len(targets))
		for i, t := range targets {
			c.targets[i] = model.RepoTarget{Path: t.Path, Label: t.Label, Guarded: t.Guarded}
		}
	}
}

// WithOutput directs per-repository status lines to w.
func WithOutput(w io.Writer) Option {
	return func(c *clientConfig) { c.out = w }
}

// WithNoPush commits but never pushes, regardless of configured remotes.
func WithNoPush() Option {
	return func(c *clientConfig) { c.noPush = true }
}
