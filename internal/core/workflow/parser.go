package workflow

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Parser Functions
// =============================================================================

// Parse parses a workflow YAML document into a Workflow tree.
// This is a pure function - no I/O, no side effects.
// Input: raw YAML string
// Output: Workflow struct or error
//
// Failure is limited to structurally broken input: invalid YAML or a top
// level that is not a mapping. Absent jobs or steps decode as empty
// collections, never as errors - the workflow format is sparse by design.
func Parse(yamlContent string) (*Workflow, error) {
	// Input validation
	if strings.TrimSpace(yamlContent) == "" {
		return nil, ErrEmptyInput
	}

	// Parse into a node first to validate the top-level shape
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(yamlContent), &root); err != nil {
		return nil, NewParseError("", "invalid YAML syntax", ErrInvalidYAML)
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, NewParseError("", "top level is not a mapping", ErrNotMapping)
	}

	var wf Workflow
	if err := yaml.Unmarshal([]byte(yamlContent), &wf); err != nil {
		return nil, NewParseError("", err.Error(), ErrInvalidYAML)
	}

	return &wf, nil
}
