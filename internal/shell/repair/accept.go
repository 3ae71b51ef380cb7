package repair

import (
	"context"
	"errors"

	"github.com/artpar/firewatch/internal/core/dockerfile"
)

// =============================================================================
// Acceptance
// =============================================================================

var (
	// ErrEmptyResponse means the provider returned nothing usable.
	ErrEmptyResponse = errors.New("provider returned an empty response")
	// ErrNotDockerfile means the response carries no base-image directive
	// and is rejected as a replacement Dockerfile.
	ErrNotDockerfile = errors.New("response has no FROM instruction")
)

// Run performs one repair call and validates the result: the response is
// stripped of markdown fences, must be non-empty, and must contain a
// recognizable base-image directive. Each failure class is terminal for
// this phase - distinct error, no automatic retry.
func Run(ctx context.Context, r Repairer, req Request) (string, error) {
	raw, err := r.Repair(ctx, req)
	if err != nil {
		return "", err
	}
	fixed := dockerfile.CleanResponse(raw)
	if fixed == "" {
		return "", ErrEmptyResponse
	}
	if !dockerfile.HasBaseImage(fixed) {
		return "", ErrNotDockerfile
	}
	return fixed, nil
}
