package netcheck

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/artpar/firewatch/internal/core/extract"
)

// =============================================================================
// Context Source
// =============================================================================

// ContextSource provides read access to build context directories. The
// validator never touches the filesystem directly; the imperative shell
// supplies an implementation backed by a context root.
type ContextSource interface {
	// ExposedPorts returns the ports a Dockerfile under the given context
	// declares via EXPOSE. An absent Dockerfile yields an empty list.
	ExposedPorts(context string) []string
	// HasDockerfile reports whether a Dockerfile exists under the context.
	HasDockerfile(context string) bool
}

// =============================================================================
// URL Reference Extraction
// =============================================================================

// schemeURLRegex captures host and port from a scheme-qualified URL for the
// schemes services commonly wire through env vars.
var schemeURLRegex = regexp.MustCompile(`(?:https?|redis|mongodb|amqp|grpc)://([^:/\s]+):(\d+)`)

// hostPortRegex captures a bare identifier:port pair when no scheme is
// present.
var hostPortRegex = regexp.MustCompile(`([a-zA-Z][\w.-]*):(\d+)`)

// infraSuffixes are well-known infrastructure dependency names. A host that
// ends in one of these but resolves to no declared service is a legitimate
// external dependency, not a dangling reference.
var infraSuffixes = []string{
	"redis", "postgres", "postgresql", "mongodb",
	"mongo", "mysql", "rabbitmq", "nats", "kafka",
}

// extractHostPort pulls a host:port reference out of an env value. Returns
// ok=false when the value carries no network reference.
func extractHostPort(value string) (host, port string, ok bool) {
	match := schemeURLRegex.FindStringSubmatch(value)
	if match == nil {
		match = hostPortRegex.FindStringSubmatch(value)
	}
	if match == nil {
		return "", "", false
	}
	return match[1], match[2], true
}

// isInfraDependency reports whether the host names a well-known
// infrastructure dependency.
func isInfraDependency(host string) bool {
	for _, suffix := range infraSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// =============================================================================
// Host Resolution
// =============================================================================

// resolveHost matches a cleaned host token against known service names.
// A host matches service sn when it equals sn exactly or ends with "-sn",
// which models the common "<project>-<service>" naming convention.
//
// When several services match by suffix the tie-break is deterministic:
// exact match wins, then the longest matching suffix, then the
// lexicographically smallest name.
func resolveHost(host string, names []string) (string, bool) {
	best := ""
	for _, name := range names {
		if host == name {
			return name, true
		}
		if !strings.HasSuffix(host, "-"+name) {
			continue
		}
		if len(name) > len(best) {
			best = name
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// =============================================================================
// Validator
// =============================================================================

// Validate cross-checks all services and builds and returns the ordered
// Issue list. Order is per-service processing order (extraction order, with
// env vars visited in sorted-key order), then per-build.
func Validate(services []extract.Service, builds []extract.Build, src ContextSource) []Issue {
	issues := []Issue{}

	// Name lookup. Duplicate names: last one wins.
	svcByName := make(map[string]extract.Service, len(services))
	for _, svc := range services {
		svcByName[svc.Name] = svc
	}
	names := make([]string, 0, len(svcByName))
	for name := range svcByName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, svc := range services {
		issues = append(issues, checkEnvReferences(svc, names, svcByName)...)
		issues = append(issues, checkExposedPorts(svc, src)...)
		if svc.HealthCheckPath == "" {
			issues = append(issues, Issue{
				Severity: SeverityInfo,
				Service:  svc.Name,
				Type:     IssueMissingHealthCheck,
				Detail:   "No health-check-path specified",
			})
		}
	}

	issues = append(issues, checkBuildContexts(builds, src)...)

	return issues
}

// checkEnvReferences validates every network reference a service's env vars
// carry against declared services and known infrastructure dependencies.
func checkEnvReferences(svc extract.Service, names []string, svcByName map[string]extract.Service) []Issue {
	var issues []Issue

	for _, envName := range sortedKeys(svc.Env) {
		host, port, ok := extractHostPort(svc.Env[envName])
		if !ok {
			continue
		}
		hostClean := extract.StripActorPrefix(host)

		targetName, resolved := resolveHost(hostClean, names)
		if resolved {
			declared := svcByName[targetName].Port
			if declared != "" && port != declared {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Service:  svc.Name,
					Type:     IssuePortMismatch,
					Detail: fmt.Sprintf(
						"Env %s references %s:%s but service '%s' declares port %s",
						envName, hostClean, port, targetName, declared,
					),
				})
			}
			continue
		}

		if !isInfraDependency(hostClean) {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Service:  svc.Name,
				Type:     IssueDanglingRef,
				Detail: fmt.Sprintf(
					"Env %s references '%s' which is not a declared service in the workflow",
					envName, hostClean,
				),
			})
		}
	}

	return issues
}

// checkExposedPorts compares a service's declared port against the EXPOSE
// directives of the Dockerfile in its build context. An empty exposed-port
// list produces no issue: absence of evidence is not evidence of mismatch.
func checkExposedPorts(svc extract.Service, src ContextSource) []Issue {
	if svc.Context == "" || svc.Port == "" {
		return nil
	}
	exposed := src.ExposedPorts(svc.Context)
	if len(exposed) == 0 || contains(exposed, svc.Port) {
		return nil
	}
	return []Issue{{
		Severity: SeverityWarning,
		Service:  svc.Name,
		Type:     IssueExposeMismatch,
		Detail: fmt.Sprintf(
			"Service declares port %s but Dockerfile EXPOSEs %s",
			svc.Port, strings.Join(exposed, ", "),
		),
	}}
}

// checkBuildContexts verifies every non-trivial build context holds a
// Dockerfile.
func checkBuildContexts(builds []extract.Build, src ContextSource) []Issue {
	var issues []Issue
	for _, build := range builds {
		if build.Context == "" || build.Context == "." {
			continue
		}
		if src.HasDockerfile(build.Context) {
			continue
		}
		issues = append(issues, Issue{
			Severity: SeverityError,
			Service:  build.Name,
			Type:     IssueMissingDockerfile,
			Detail:   fmt.Sprintf("No Dockerfile found at %s/Dockerfile", build.Context),
		})
	}
	return issues
}

// =============================================================================
// Helpers
// =============================================================================

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
