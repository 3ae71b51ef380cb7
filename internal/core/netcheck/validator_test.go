package netcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artpar/firewatch/internal/core/extract"
)

// =============================================================================
// Test Fakes
// =============================================================================

// fakeSource is an in-memory ContextSource.
type fakeSource struct {
	exposed     map[string][]string
	dockerfiles map[string]bool
}

func (f *fakeSource) ExposedPorts(context string) []string {
	if ports, ok := f.exposed[context]; ok {
		return ports
	}
	return []string{}
}

func (f *fakeSource) HasDockerfile(context string) bool {
	return f.dockerfiles[context]
}

func emptySource() *fakeSource {
	return &fakeSource{exposed: map[string][]string{}, dockerfiles: map[string]bool{}}
}

func svc(name, port, health string, env map[string]string) extract.Service {
	if env == nil {
		env = map[string]string{}
	}
	return extract.Service{
		Name:            name,
		NameRaw:         name,
		Port:            port,
		HealthCheckPath: health,
		Env:             env,
		Dependencies:    []string{},
	}
}

func issuesOfType(issues []Issue, t IssueType) []Issue {
	var out []Issue
	for _, issue := range issues {
		if issue.Type == t {
			out = append(out, issue)
		}
	}
	return out
}

// =============================================================================
// Validate Tests - Empty Input
// =============================================================================

func TestValidate_NoServicesNoBuilds(t *testing.T) {
	issues := Validate(nil, nil, emptySource())
	assert.NotNil(t, issues)
	assert.Empty(t, issues)
}

// =============================================================================
// Validate Tests - Port Mismatch
// =============================================================================

func TestValidate_PortMismatch(t *testing.T) {
	services := []extract.Service{
		svc("orders", "5000", "/healthz", nil),
		svc("gateway", "8080", "/healthz", map[string]string{
			"ORDERS_URL": "http://actor-orders:5001",
		}),
	}

	issues := Validate(services, nil, emptySource())
	mismatches := issuesOfType(issues, IssuePortMismatch)
	require.Len(t, mismatches, 1)

	issue := mismatches[0]
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Equal(t, "gateway", issue.Service)
	assert.Equal(t,
		"Env ORDERS_URL references actor-orders:5001 but service 'orders' declares port 5000",
		issue.Detail)
}

func TestValidate_PortMatch_NoIssue(t *testing.T) {
	services := []extract.Service{
		svc("orders", "5000", "/healthz", nil),
		svc("gateway", "8080", "/healthz", map[string]string{
			"ORDERS_URL": "http://orders:5000",
		}),
	}

	issues := Validate(services, nil, emptySource())
	assert.Empty(t, issuesOfType(issues, IssuePortMismatch))
}

func TestValidate_TargetWithoutDeclaredPort_NoComparison(t *testing.T) {
	services := []extract.Service{
		svc("orders", "", "/healthz", nil),
		svc("gateway", "8080", "/healthz", map[string]string{
			"ORDERS_URL": "http://orders:9999",
		}),
	}

	issues := Validate(services, nil, emptySource())
	assert.Empty(t, issuesOfType(issues, IssuePortMismatch))
	assert.Empty(t, issuesOfType(issues, IssueDanglingRef))
}

func TestValidate_ActorPrefixStrippedFromHost(t *testing.T) {
	services := []extract.Service{
		svc("orders", "5000", "/healthz", nil),
		svc("gateway", "8080", "/healthz", map[string]string{
			"ORDERS_URL": "http://${{ github.actor }}-orders:5001",
		}),
	}

	issues := Validate(services, nil, emptySource())
	mismatches := issuesOfType(issues, IssuePortMismatch)
	require.Len(t, mismatches, 1)
	assert.Contains(t, mismatches[0].Detail, "orders:5001")
}

// =============================================================================
// Validate Tests - Dangling References
// =============================================================================

func TestValidate_DanglingRef(t *testing.T) {
	services := []extract.Service{
		svc("gateway", "8080", "/healthz", map[string]string{
			"USERS_URL": "http://users:3000",
		}),
	}

	issues := Validate(services, nil, emptySource())
	dangling := issuesOfType(issues, IssueDanglingRef)
	require.Len(t, dangling, 1)

	issue := dangling[0]
	assert.Equal(t, SeverityWarning, issue.Severity)
	assert.Equal(t, "gateway", issue.Service)
	assert.Equal(t,
		"Env USERS_URL references 'users' which is not a declared service in the workflow",
		issue.Detail)
}

func TestValidate_InfraDependency_NoDanglingRef(t *testing.T) {
	services := []extract.Service{
		svc("myapp", "8080", "/healthz", map[string]string{
			"DB_URL": "redis://myapp-redis:6379",
		}),
	}

	issues := Validate(services, nil, emptySource())
	assert.Empty(t, issuesOfType(issues, IssueDanglingRef))
}

func TestValidate_AllInfraSuffixesRecognized(t *testing.T) {
	env := map[string]string{
		"A": "redis://x-redis:6379",
		"B": "mongodb://x-mongo:27017",
		"C": "amqp://x-rabbitmq:5672",
		"D": "x-postgres:5432",
		"E": "x-kafka:9092",
		"F": "x-nats:4222",
		"G": "mysql://x-mysql:3306",
	}
	services := []extract.Service{svc("app", "80", "/h", env)}

	issues := Validate(services, nil, emptySource())
	assert.Empty(t, issuesOfType(issues, IssueDanglingRef))
}

func TestValidate_EnvWithoutNetworkRef_Skipped(t *testing.T) {
	services := []extract.Service{
		svc("app", "80", "/h", map[string]string{
			"LOG_LEVEL": "debug",
			"WORKERS":   "4",
		}),
	}

	issues := Validate(services, nil, emptySource())
	assert.Empty(t, issuesOfType(issues, IssueDanglingRef))
	assert.Empty(t, issuesOfType(issues, IssuePortMismatch))
}

func TestValidate_BareHostPortFallback(t *testing.T) {
	services := []extract.Service{
		svc("orders", "5000", "/h", nil),
		svc("gateway", "80", "/h", map[string]string{
			"ORDERS_ADDR": "orders:5001",
		}),
	}

	issues := Validate(services, nil, emptySource())
	require.Len(t, issuesOfType(issues, IssuePortMismatch), 1)
}

// =============================================================================
// Validate Tests - Expose Mismatch
// =============================================================================

func TestValidate_ExposeMismatch(t *testing.T) {
	services := []extract.Service{
		{Name: "web", Port: "3000", Context: "services/web", HealthCheckPath: "/h",
			Env: map[string]string{}},
	}
	src := emptySource()
	src.exposed["services/web"] = []string{"8080"}

	issues := Validate(services, nil, src)
	mismatches := issuesOfType(issues, IssueExposeMismatch)
	require.Len(t, mismatches, 1)

	issue := mismatches[0]
	assert.Equal(t, SeverityWarning, issue.Severity)
	assert.Equal(t, "web", issue.Service)
	assert.Equal(t, "Service declares port 3000 but Dockerfile EXPOSEs 8080", issue.Detail)
}

func TestValidate_ExposeMatch_NoIssue(t *testing.T) {
	services := []extract.Service{
		{Name: "web", Port: "8080", Context: "services/web", HealthCheckPath: "/h",
			Env: map[string]string{}},
	}
	src := emptySource()
	src.exposed["services/web"] = []string{"8080", "9229"}

	issues := Validate(services, nil, src)
	assert.Empty(t, issuesOfType(issues, IssueExposeMismatch))
}

func TestValidate_NoDockerfile_NoExposeIssue(t *testing.T) {
	services := []extract.Service{
		{Name: "web", Port: "3000", Context: "services/web", HealthCheckPath: "/h",
			Env: map[string]string{}},
	}

	issues := Validate(services, nil, emptySource())
	assert.Empty(t, issuesOfType(issues, IssueExposeMismatch))
}

func TestValidate_NoContextOrPort_NoExposeCheck(t *testing.T) {
	services := []extract.Service{
		{Name: "a", Port: "", Context: "services/a", HealthCheckPath: "/h", Env: map[string]string{}},
		{Name: "b", Port: "3000", Context: "", HealthCheckPath: "/h", Env: map[string]string{}},
	}
	src := emptySource()
	src.exposed["services/a"] = []string{"8080"}

	issues := Validate(services, nil, src)
	assert.Empty(t, issuesOfType(issues, IssueExposeMismatch))
}

// =============================================================================
// Validate Tests - Health Check
// =============================================================================

func TestValidate_MissingHealthCheck(t *testing.T) {
	services := []extract.Service{svc("orders", "5000", "", nil)}

	issues := Validate(services, nil, emptySource())
	missing := issuesOfType(issues, IssueMissingHealthCheck)
	require.Len(t, missing, 1)

	issue := missing[0]
	assert.Equal(t, SeverityInfo, issue.Severity)
	assert.Equal(t, "orders", issue.Service)
	assert.Equal(t, "No health-check-path specified", issue.Detail)
}

func TestValidate_MissingHealthCheck_ExactlyOncePerService(t *testing.T) {
	services := []extract.Service{
		svc("orders", "5000", "", map[string]string{
			"BAD_URL": "http://ghost:1234",
		}),
	}

	issues := Validate(services, nil, emptySource())
	assert.Len(t, issuesOfType(issues, IssueMissingHealthCheck), 1)
	assert.Len(t, issuesOfType(issues, IssueDanglingRef), 1)
}

// =============================================================================
// Validate Tests - Build Contexts
// =============================================================================

func TestValidate_MissingDockerfile(t *testing.T) {
	builds := []extract.Build{{Name: "orders", Context: "services/orders"}}

	issues := Validate(nil, builds, emptySource())
	missing := issuesOfType(issues, IssueMissingDockerfile)
	require.Len(t, missing, 1)

	issue := missing[0]
	assert.Equal(t, SeverityError, issue.Severity)
	assert.Equal(t, "orders", issue.Service)
	assert.Equal(t, "No Dockerfile found at services/orders/Dockerfile", issue.Detail)
}

func TestValidate_DockerfilePresent_NoIssue(t *testing.T) {
	builds := []extract.Build{{Name: "orders", Context: "services/orders"}}
	src := emptySource()
	src.dockerfiles["services/orders"] = true

	issues := Validate(nil, builds, src)
	assert.Empty(t, issuesOfType(issues, IssueMissingDockerfile))
}

func TestValidate_TrivialBuildContext_Skipped(t *testing.T) {
	builds := []extract.Build{
		{Name: "root", Context: "."},
		{Name: "none", Context: ""},
	}

	issues := Validate(nil, builds, emptySource())
	assert.Empty(t, issuesOfType(issues, IssueMissingDockerfile))
}

// =============================================================================
// Validate Tests - Host Resolution
// =============================================================================

func TestResolveHost_ExactMatch(t *testing.T) {
	name, ok := resolveHost("orders", []string{"gateway", "orders"})
	assert.True(t, ok)
	assert.Equal(t, "orders", name)
}

func TestResolveHost_SuffixMatch(t *testing.T) {
	name, ok := resolveHost("user-orders", []string{"gateway", "orders"})
	assert.True(t, ok)
	assert.Equal(t, "orders", name)
}

func TestResolveHost_NoMatch(t *testing.T) {
	_, ok := resolveHost("users", []string{"gateway", "orders"})
	assert.False(t, ok)
}

func TestResolveHost_NoPartialWordMatch(t *testing.T) {
	// "xorders" does not end with "-orders" and is not an exact match
	_, ok := resolveHost("xorders", []string{"orders"})
	assert.False(t, ok)
}

func TestResolveHost_TieBreak_LongestSuffix(t *testing.T) {
	// Both "orders" and "api-orders" match "svc-api-orders" by suffix;
	// the longest name wins deterministically.
	name, ok := resolveHost("svc-api-orders", []string{"api-orders", "orders"})
	assert.True(t, ok)
	assert.Equal(t, "api-orders", name)

	// Same result regardless of candidate order
	name, ok = resolveHost("svc-api-orders", []string{"orders", "api-orders"})
	assert.True(t, ok)
	assert.Equal(t, "api-orders", name)
}

func TestResolveHost_ExactBeatsSuffix(t *testing.T) {
	name, ok := resolveHost("orders", []string{"orders", "s"})
	assert.True(t, ok)
	assert.Equal(t, "orders", name)
}

// =============================================================================
// Validate Tests - Determinism
// =============================================================================

func TestValidate_Deterministic(t *testing.T) {
	services := []extract.Service{
		svc("orders", "5000", "", nil),
		svc("gateway", "8080", "", map[string]string{
			"B_URL": "http://ghost-b:1",
			"A_URL": "http://ghost-a:2",
			"C_URL": "http://ghost-c:3",
		}),
	}
	builds := []extract.Build{{Name: "orders", Context: "services/orders"}}

	first := Validate(services, builds, emptySource())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Validate(services, builds, emptySource()))
	}

	// Env vars are visited in sorted-key order
	dangling := issuesOfType(first, IssueDanglingRef)
	require.Len(t, dangling, 3)
	assert.Contains(t, dangling[0].Detail, "ghost-a")
	assert.Contains(t, dangling[1].Detail, "ghost-b")
	assert.Contains(t, dangling[2].Detail, "ghost-c")
}

func TestValidate_DuplicateServiceName_LastWins(t *testing.T) {
	services := []extract.Service{
		svc("orders", "5000", "/h", nil),
		svc("orders", "6000", "/h", nil),
		svc("gateway", "80", "/h", map[string]string{
			"ORDERS_URL": "http://orders:6000",
		}),
	}

	issues := Validate(services, nil, emptySource())
	assert.Empty(t, issuesOfType(issues, IssuePortMismatch))
}
