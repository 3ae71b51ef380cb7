package extract

import (
	"regexp"
	"strings"
)

// =============================================================================
// Normalization Functions
// =============================================================================

// actorPrefixRegex matches the actor-interpolation prefix pattern
// "${{ github.actor }}-" with arbitrary whitespace inside the braces.
var actorPrefixRegex = regexp.MustCompile(`\$\{\{\s*github\.actor\s*\}\}-`)

// workspaceToken is the workspace-path placeholder used in context paths.
const workspaceToken = "${{ github.workspace }}"

// StripActorPrefix removes the "${{ github.actor }}-" prefix pattern from a
// raw identifier, yielding the canonical name.
//
// Example:
//
//	StripActorPrefix("${{ github.actor }}-orders") // returns "orders"
func StripActorPrefix(raw string) string {
	return actorPrefixRegex.ReplaceAllString(raw, "")
}

// NormalizeContext strips the workspace-path placeholder from a build
// context path, making it directory-relative.
//
// Behavior:
//   - "${{ github.workspace }}/svc" becomes "svc"
//   - "${{ github.workspace }}" alone becomes "."
func NormalizeContext(raw string) string {
	out := strings.ReplaceAll(raw, workspaceToken+"/", "")
	return strings.ReplaceAll(out, workspaceToken, ".")
}
