// Package report serializes extracted entities and findings to the fixed
// JSON shape the analyzer emits on stdout.
package report

import (
	"encoding/json"
	"io"

	"github.com/artpar/firewatch/internal/core/extract"
	"github.com/artpar/firewatch/internal/core/netcheck"
)

// =============================================================================
// Report Types
// =============================================================================

// BuildSummary is the trimmed Build view the report carries.
type BuildSummary struct {
	Name    string `json:"name"`
	Context string `json:"context"`
}

// Report is the single JSON object written to stdout.
type Report struct {
	ServicesCount int               `json:"services_count"`
	Services      []extract.Service `json:"services"`
	Builds        []BuildSummary    `json:"builds"`
	Issues        []netcheck.Issue  `json:"issues"`
}

// =============================================================================
// Report Construction
// =============================================================================

// Build assembles a Report. Collections are never nil so empty inputs
// serialize as [] rather than null.
func Build(services []extract.Service, builds []extract.Build, issues []netcheck.Issue) *Report {
	if services == nil {
		services = []extract.Service{}
	}
	if issues == nil {
		issues = []netcheck.Issue{}
	}
	summaries := make([]BuildSummary, 0, len(builds))
	for _, b := range builds {
		summaries = append(summaries, BuildSummary{Name: b.Name, Context: b.Context})
	}
	return &Report{
		ServicesCount: len(services),
		Services:      services,
		Builds:        summaries,
		Issues:        issues,
	}
}

// Encode writes the report as two-space-indented JSON. Output is
// deterministic: struct fields serialize in declaration order and map keys
// sort, so identical inputs yield byte-identical output.
func (r *Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
