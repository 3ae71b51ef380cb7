// Package dockerfile contains pure functions for the small slice of
// Dockerfile syntax the analyzer cares about: EXPOSE directives and the
// presence of a base-image instruction. This is part of the Functional
// Core - all functions are pure with no I/O.
package dockerfile

import (
	"regexp"
	"strings"
)

// =============================================================================
// EXPOSE Parsing
// =============================================================================

// ExposedPorts scans Dockerfile content line-by-line and returns every port
// declared by an EXPOSE directive, in declaration order.
//
// The directive is matched case-insensitively. Each whitespace-separated
// token after it contributes its leading digit run, so protocol suffixes
// are ignored ("8080/tcp" yields "8080"). Malformed tokens are skipped.
//
// Example:
//
//	ExposedPorts("FROM nginx\nEXPOSE 80 443/tcp") // returns ["80", "443"]
func ExposedPorts(content string) []string {
	ports := []string{}
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || !strings.EqualFold(fields[0], "EXPOSE") {
			continue
		}
		for _, token := range fields[1:] {
			if port := leadingDigits(token); port != "" {
				ports = append(ports, port)
			}
		}
	}
	return ports
}

// leadingDigits returns the leading digit run of a token, if any.
func leadingDigits(token string) string {
	end := 0
	for end < len(token) && token[end] >= '0' && token[end] <= '9' {
		end++
	}
	return token[:end]
}

// =============================================================================
// Base Image Detection
// =============================================================================

// baseImageRegex matches a FROM instruction at the start of a line.
var baseImageRegex = regexp.MustCompile(`(?m)^FROM\s`)

// HasBaseImage reports whether the content contains a recognizable
// base-image directive. Used to decide whether repair output is accepted
// as a Dockerfile at all.
func HasBaseImage(content string) bool {
	return baseImageRegex.MatchString(content)
}

// =============================================================================
// Repair Response Cleaning
// =============================================================================

var (
	leadingFenceRegex  = regexp.MustCompile("^```(?:dockerfile|docker|Dockerfile)?[ \t]*\n")
	trailingFenceRegex = regexp.MustCompile("\n```[ \t]*$")
)

// CleanResponse strips a markdown code fence and surrounding whitespace from
// repair output, returning bare Dockerfile text.
func CleanResponse(text string) string {
	text = strings.TrimSpace(text)
	text = leadingFenceRegex.ReplaceAllString(text, "")
	text = trailingFenceRegex.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
