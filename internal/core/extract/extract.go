package extract

import (
	"strings"

	"github.com/artpar/firewatch/internal/core/workflow"
)

// =============================================================================
// Step Classification
// =============================================================================

// Classify derives the step kind from its action reference.
func Classify(uses string) StepKind {
	switch {
	case strings.Contains(uses, deployMarker):
		return StepDeploy
	case strings.Contains(uses, buildMarker):
		return StepBuild
	default:
		return StepOther
	}
}

// =============================================================================
// Extractor Functions
// =============================================================================

// Services scans the workflow tree for deploy steps and returns one Service
// record per step, in job declaration order then step order.
func Services(wf *workflow.Workflow) []Service {
	services := []Service{}
	forEachStep(wf, func(step workflow.Step) {
		if Classify(step.Uses) != StepDeploy {
			return
		}
		nameRaw := step.With["name"]
		services = append(services, Service{
			Name:            StripActorPrefix(nameRaw),
			NameRaw:         nameRaw,
			Port:            step.With["port"],
			HealthCheckPath: step.With["health-check-path"],
			Context:         NormalizeContext(step.With["context"]),
			Image:           step.With["image"],
			Env:             parseNameValueList(step.With["env"]),
			Dependencies:    parseStringList(step.With["dependencies"]),
			IngressHost:     step.With["ingress-host"],
		})
	})
	return services
}

// Builds scans the workflow tree for build steps and returns one Build
// record per step, in job declaration order then step order.
func Builds(wf *workflow.Workflow) []Build {
	builds := []Build{}
	forEachStep(wf, func(step workflow.Step) {
		if Classify(step.Uses) != StepBuild {
			return
		}
		builds = append(builds, Build{
			Name:    step.With["name"],
			Context: NormalizeContext(step.With["context"]),
			Image:   step.With["image"],
		})
	})
	return builds
}

// forEachStep visits every step across every job in document order.
func forEachStep(wf *workflow.Workflow, visit func(workflow.Step)) {
	if wf == nil {
		return
	}
	for _, jobName := range wf.Jobs.Names() {
		job, ok := wf.Jobs.Get(jobName)
		if !ok {
			continue
		}
		for _, step := range job.Steps {
			visit(step)
		}
	}
}
