// Package contextfs is the imperative-shell view of build context
// directories: Dockerfile lookup for the validator and context gathering
// for the repair collaborator. All reads are bounded, local, and
// best-effort - a missing or unreadable file is meaningful input, not an
// error.
package contextfs

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/artpar/firewatch/internal/core/dockerfile"
)

// =============================================================================
// Source
// =============================================================================

// Source resolves build context paths against a root directory. It
// satisfies netcheck.ContextSource.
type Source struct {
	root string
}

// New creates a Source rooted at the given directory.
func New(root string) *Source {
	return &Source{root: root}
}

// Root returns the context root directory.
func (s *Source) Root() string {
	return s.root
}

// =============================================================================
// Dockerfile Lookup
// =============================================================================

// dockerfileNames are tried in order when locating a Dockerfile.
var dockerfileNames = []string{"Dockerfile", "dockerfile"}

// DockerfilePath locates the Dockerfile under root/context, trying the
// lowercase name as a fallback. Returns ok=false when neither exists.
func (s *Source) DockerfilePath(context string) (string, bool) {
	for _, name := range dockerfileNames {
		path := filepath.Join(s.root, context, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// HasDockerfile reports whether a Dockerfile exists under the context.
func (s *Source) HasDockerfile(context string) bool {
	_, ok := s.DockerfilePath(context)
	return ok
}

// ExposedPorts reads the context's Dockerfile and returns its EXPOSE ports.
// An absent or unreadable Dockerfile yields an empty list.
func (s *Source) ExposedPorts(context string) []string {
	path, ok := s.DockerfilePath(context)
	if !ok {
		return []string{}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return []string{}
	}
	return dockerfile.ExposedPorts(string(content))
}

// =============================================================================
// Repair Context Gathering
// =============================================================================

const (
	// maxListedFiles caps the context file listing sent to the repair
	// collaborator.
	maxListedFiles = 200
	// maxExcerptBytes caps each dependency-file excerpt.
	maxExcerptBytes = 2000
)

// skippedDirs are never descended into when listing context files.
var skippedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

// dependencyFileNames are the manifest files whose excerpts accompany a
// repair request.
var dependencyFileNames = []string{
	"package.json", "package-lock.json", "yarn.lock",
	"go.mod", "go.sum",
	"requirements.txt", "Pipfile", "pyproject.toml", "setup.py",
	"Gemfile", "Cargo.toml", "pom.xml", "build.gradle",
	"composer.json", "mix.exs",
	".nvmrc", ".node-version", ".python-version", ".tool-versions",
	"Makefile",
}

// ListFiles returns the relative paths of regular files under root/context
// in lexical order, capped at maxListedFiles. VCS and package-manager
// directories are skipped.
func (s *Source) ListFiles(context string) []string {
	base := filepath.Join(s.root, context)
	files := []string{}
	_ = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == ".DS_Store" {
			return nil
		}
		rel, relErr := filepath.Rel(base, path)
		if relErr != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if len(files) > maxListedFiles {
		files = files[:maxListedFiles]
	}
	return files
}

// DependencyExcerpts reads the well-known manifest files present under
// root/context, truncating each to maxExcerptBytes.
func (s *Source) DependencyExcerpts(context string) map[string]string {
	base := filepath.Join(s.root, context)
	excerpts := map[string]string{}
	for _, name := range dependencyFileNames {
		content, err := os.ReadFile(filepath.Join(base, name))
		if err != nil {
			continue
		}
		text := string(content)
		if len(text) > maxExcerptBytes {
			text = text[:maxExcerptBytes] + "\n... (truncated)"
		}
		excerpts[name] = text
	}
	return excerpts
}
