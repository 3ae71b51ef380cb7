// Package netcheck cross-validates the network topology implied by a
// workflow: env-var URL references against declared services, declared
// ports against Dockerfile EXPOSE directives, and build contexts against
// on-disk Dockerfiles. Findings are data, not errors - validation always
// succeeds and returns an ordered Issue list.
package netcheck

// =============================================================================
// Issue Types
// =============================================================================

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IssueType identifies the kind of inconsistency found.
type IssueType string

const (
	// IssuePortMismatch is an env-var URL whose port differs from the
	// referenced service's declared port.
	IssuePortMismatch IssueType = "port_mismatch"
	// IssueDanglingRef is an env-var host that resolves to no declared
	// service or known infrastructure dependency.
	IssueDanglingRef IssueType = "dangling_ref"
	// IssueExposeMismatch is a declared port absent from the Dockerfile's
	// EXPOSE directives.
	IssueExposeMismatch IssueType = "expose_mismatch"
	// IssueMissingHealthCheck is a service without a health-check path.
	IssueMissingHealthCheck IssueType = "missing_health_check"
	// IssueMissingDockerfile is a build context without a Dockerfile.
	IssueMissingDockerfile IssueType = "missing_dockerfile"
)

// Issue is a single finding, attributed to the Service or Build it was
// detected on. Detail is reproducible deterministically from the inputs.
type Issue struct {
	Severity Severity  `json:"severity"`
	Service  string    `json:"service"`
	Type     IssueType `json:"type"`
	Detail   string    `json:"detail"`
}
