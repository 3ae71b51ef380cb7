package workflow

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Workflow Types
// =============================================================================

// Workflow is the parsed in-memory tree of a deployment workflow document.
type Workflow struct {
	Name string `yaml:"name"`
	Jobs JobMap `yaml:"jobs"`
}

// Job is a single named job holding an ordered list of steps.
// Absent steps decode as an empty list - the format is sparse by design.
type Job struct {
	RunsOn string `yaml:"runs-on"`
	Steps  []Step `yaml:"steps"`
}

// Step is one entry in a job's step list.
type Step struct {
	Name string     `yaml:"name"`
	Uses string     `yaml:"uses"`
	With StepParams `yaml:"with"`
}

// StepParams is the "with" parameter map of a step. Scalar values are
// decoded as strings regardless of their YAML type, so `port: 5000` and
// `port: "5000"` read identically. Non-scalar values are skipped.
type StepParams map[string]string

// UnmarshalYAML decodes a step parameter mapping, keeping scalar values only.
// An explicit null decodes as an empty collection.
func (p *StepParams) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == 0 || isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("with must be a mapping, got %v", node.Kind)
	}
	params := make(StepParams, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		value := node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			continue
		}
		params[key.Value] = value.Value
	}
	*p = params
	return nil
}

// =============================================================================
// Ordered Job Decoding
// =============================================================================

// JobMap holds jobs keyed by name while preserving the document order of the
// jobs mapping. Map iteration order in Go is randomized, but extraction must
// visit jobs in declaration order so output is deterministic.
type JobMap struct {
	names []string
	jobs  map[string]Job
}

// UnmarshalYAML decodes the jobs mapping node, recording key order.
// An explicit null decodes as an empty collection.
func (m *JobMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == 0 || isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("jobs must be a mapping, got %v", node.Kind)
	}
	m.jobs = make(map[string]Job, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var job Job
		if err := node.Content[i+1].Decode(&job); err != nil {
			return fmt.Errorf("job %q: %w", name, err)
		}
		if _, exists := m.jobs[name]; !exists {
			m.names = append(m.names, name)
		}
		m.jobs[name] = job
	}
	return nil
}

// Names returns job names in document order.
func (m *JobMap) Names() []string {
	return m.names
}

// Get returns the job with the given name.
func (m *JobMap) Get(name string) (Job, bool) {
	job, ok := m.jobs[name]
	return job, ok
}

// Len returns the number of jobs.
func (m *JobMap) Len() int {
	return len(m.jobs)
}

// isNull reports whether a node is an explicit YAML null.
func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
