package repair

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// Prompts
// =============================================================================

// systemPrompt frames the pre-build analysis call.
const systemPrompt = `You are a Docker build expert. Your job is to fix Dockerfiles so they build
successfully. You will be given:
1. A Dockerfile
2. A listing of files in the build context
3. Key dependency/manifest files from the project

Common issues you should fix:
- Outdated or EOL base images (e.g. node:14 -> node:20-alpine, python:3.8 -> python:3.12)
- Missing or incorrect COPY sources (files referenced don't exist in the context)
- Wrong working directory or build context assumptions
- Missing build dependencies (e.g. gcc, make, git for native modules)
- Multi-stage builds referencing stages that don't produce the right artifacts
- Platform-specific issues (assume linux/amd64)
- Missing or wrong EXPOSE directives
- Package manager issues (lock file mismatches, wrong package manager)

Rules:
- Output ONLY the fixed Dockerfile content - no explanation, no markdown fences,
  no commentary before or after.
- If the Dockerfile looks correct and should build fine, output it unchanged.
- Preserve the intent and structure of the original as much as possible.
- Keep images small - prefer alpine variants when feasible.
- Do NOT change the application logic, only fix build issues.`

// retrySystemPrompt frames the post-failure call, which additionally sees
// the build error output.
const retrySystemPrompt = `You are a Docker build expert. A Docker build just failed. You will be given:
1. The Dockerfile that failed
2. The build error output
3. Files in the build context
4. Key dependency/manifest files

Fix the Dockerfile so it builds successfully. Common fixes:
- COPY/ADD source files don't exist -> fix paths or remove
- Base image doesn't exist or was removed -> update to current version
- Build commands fail -> add missing dependencies or fix commands
- Multi-stage COPY --from references wrong stage or path

Rules:
- Output ONLY the fixed Dockerfile content - no explanation, no markdown fences.
- Make minimal changes to fix the specific error.
- If you cannot determine a fix, output the original unchanged.`

// SystemPrompt returns the system prompt for a request. The presence of a
// build error selects the retry phase.
func SystemPrompt(req Request) string {
	if req.BuildError != "" {
		return retrySystemPrompt
	}
	return systemPrompt
}

// UserPrompt renders the request into the user message. Dependency files
// appear in sorted name order so the prompt is deterministic.
func UserPrompt(req Request) string {
	var parts []string

	parts = append(parts, "## Dockerfile\n```dockerfile\n"+req.Dockerfile+"\n```\n")

	if len(req.Files) > 0 {
		parts = append(parts, "## Files in build context\n```\n"+
			strings.Join(req.Files, "\n")+"\n```\n")
	}

	if len(req.DependencyFiles) > 0 {
		parts = append(parts, "## Dependency / manifest files\n")
		names := make([]string, 0, len(req.DependencyFiles))
		for name := range req.DependencyFiles {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("### %s\n```\n%s\n```\n", name, req.DependencyFiles[name]))
		}
	}

	if req.BuildError != "" {
		parts = append(parts, "## Build error output\n```\n"+req.BuildError+"\n```\n")
		parts = append(parts, "Fix the Dockerfile so this error is resolved.")
	} else {
		parts = append(parts, "Analyze this Dockerfile and fix any issues that would "+
			"prevent it from building. If it looks correct, return it unchanged.")
	}

	return strings.Join(parts, "\n")
}
