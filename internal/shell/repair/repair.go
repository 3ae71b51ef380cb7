// Package repair implements the external Dockerfile-repair collaborator: a
// single bounded call to a configurable textual-completion provider that
// returns a replacement Dockerfile. A failed call is terminal - retrying is
// an explicit second invocation by the caller, never automatic.
package repair

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// Configuration
// =============================================================================

// Providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Default models per provider.
const (
	DefaultOpenAIModel    = "gpt-4o"
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
)

// DefaultTimeout bounds a single repair call.
const DefaultTimeout = 90 * time.Second

// Config selects and authenticates the completion provider. It is
// constructed once at process entry and passed in - never read ambiently
// inside deeper logic.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Model resolution defaults.
func (c Config) model() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderAnthropic {
		return DefaultAnthropicModel
	}
	return DefaultOpenAIModel
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// =============================================================================
// Repairer Interface
// =============================================================================

// ErrMissingCredential means no API key was supplied for the provider.
var ErrMissingCredential = errors.New("no API key configured")

// Request carries everything the collaborator sees: the Dockerfile, the
// build context listing, dependency-manifest excerpts, and optionally the
// error output of a failed build.
type Request struct {
	Dockerfile      string
	Files           []string
	DependencyFiles map[string]string
	BuildError      string
}

// Repairer produces a replacement Dockerfile for a request. Implementations
// make exactly one provider call per Repair invocation.
type Repairer interface {
	Repair(ctx context.Context, req Request) (string, error)
}

// New selects a Repairer for the configured provider.
func New(cfg Config) (Repairer, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	switch cfg.Provider {
	case ProviderAnthropic:
		return newAnthropicRepairer(cfg), nil
	case ProviderOpenAI, "":
		return newOpenAIRepairer(cfg), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
