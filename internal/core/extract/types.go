// Package extract contains pure functions that scan a parsed workflow tree
// for deploy and build steps, normalizing them into Service and Build
// records. This is part of the Functional Core - all functions are pure
// with no I/O.
package extract

// =============================================================================
// Record Types
// =============================================================================

// Service represents one deployable unit declared in the workflow.
//
// Name is the join key for all cross-referencing. Two services sharing a
// name is undefined behavior: the last one declared wins.
type Service struct {
	Name            string            `json:"name"`
	NameRaw         string            `json:"name_raw"`
	Port            string            `json:"port"`
	HealthCheckPath string            `json:"health_check_path"`
	Context         string            `json:"context"`
	Image           string            `json:"image"`
	Env             map[string]string `json:"env"`
	Dependencies    []string          `json:"dependencies"`
	IngressHost     string            `json:"ingress_host"`
}

// Build represents one image-build unit. Used only to check that a
// Dockerfile exists at Context.
type Build struct {
	Name    string `json:"name"`
	Context string `json:"context"`
	Image   string `json:"image"`
}

// =============================================================================
// Step Classification
// =============================================================================

// StepKind classifies a workflow step by its action reference.
type StepKind int

const (
	// StepOther is any step that is neither a deploy nor a build action.
	StepOther StepKind = iota
	// StepDeploy is a service deployment step.
	StepDeploy
	// StepBuild is an image build step.
	StepBuild
)

// Action reference markers.
const (
	deployMarker = "kindling-deploy"
	buildMarker  = "kindling-build"
)
