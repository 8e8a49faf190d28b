package depparser

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

var versionPrefix = "^~>=<"

// parsePackageJSON extracts production and development dependencies from a
// package.json document.
func parsePackageJSON(content string) ([]Dependency, []string) {
	var doc struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, []string{"invalid JSON in package.json: " + err.Error()}
	}

	var deps []Dependency
	for _, name := range sortedKeys(doc.Dependencies) {
		deps = append(deps, Dependency{
			Name:    name,
			Version: strings.TrimLeft(doc.Dependencies[name], versionPrefix),
		})
	}
	for _, name := range sortedKeys(doc.DevDependencies) {
		deps = append(deps, Dependency{
			Name:    name,
			Version: strings.TrimLeft(doc.DevDependencies[name], versionPrefix),
			Dev:     true,
		})
	}
	return deps, nil
}

var (
	requirementPinned = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)\s*[=<>!]+\s*(.+)$`)
	requirementBare   = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// parseRequirementsTxt extracts dependencies from a requirements.txt file.
// requirements.txt does not distinguish dev dependencies.
func parseRequirementsTxt(content string) ([]Dependency, []string) {
	var deps []Dependency
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// Strip environment markers, e.g. `; extra == "dev"`.
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}

		if m := requirementPinned.FindStringSubmatch(line); m != nil {
			deps = append(deps, Dependency{Name: m[1], Version: strings.TrimSpace(m[2]), Line: i + 1})
		} else if requirementBare.MatchString(line) {
			deps = append(deps, Dependency{Name: line, Version: "latest", Line: i + 1})
		}
	}
	return deps, nil
}

var (
	goVersionRe      = regexp.MustCompile(`(?m)^go\s+(\d+\.\d+(?:\.\d+)?)`)
	goRequireBlockRe = regexp.MustCompile(`require\s*\(([\s\S]*?)\)`)
	goRequireLineRe  = regexp.MustCompile(`(?m)^require\s+(\S+)\s+(\S+)`)
)

// parseGoMod extracts the Go version and required modules from a go.mod
// file. Indirect dependencies are kept; they still reveal the stack.
func parseGoMod(content string) ([]Dependency, []string) {
	var deps []Dependency

	if m := goVersionRe.FindStringSubmatch(content); m != nil {
		deps = append(deps, Dependency{Name: "go", Version: m[1], Line: lineOf(content, goVersionRe)})
	}

	for _, block := range goRequireBlockRe.FindAllStringSubmatch(content, -1) {
		for _, line := range strings.Split(block[1], "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "//") {
				continue
			}
			parts := strings.Fields(line)
			if len(parts) >= 2 {
				deps = append(deps, Dependency{Name: parts[0], Version: parts[1]})
			}
		}
	}

	for _, m := range goRequireLineRe.FindAllStringSubmatch(content, -1) {
		if m[1] == "(" {
			continue
		}
		deps = append(deps, Dependency{Name: m[1], Version: m[2]})
	}

	return deps, nil
}

var pyprojectDepRe = regexp.MustCompile(`^([a-zA-Z0-9_.-]+)\s*=\s*["']?([^"'\s]+)["']?`)

// parsePyprojectToml extracts poetry dependencies. The parsing is
// deliberately line-based: it handles the common `name = "version"` entries
// in the dependency sections and skips anything more elaborate.
func parsePyprojectToml(content string) ([]Dependency, []string) {
	var deps []Dependency
	inDeps := false
	inDevDeps := false

	for i, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "[tool.poetry.dependencies]":
			inDeps, inDevDeps = true, false
			continue
		case trimmed == "[tool.poetry.dev-dependencies]" || trimmed == "[tool.poetry.group.dev.dependencies]":
			inDeps, inDevDeps = false, true
			continue
		case strings.HasPrefix(trimmed, "["):
			inDeps, inDevDeps = false, false
			continue
		}

		if !inDeps && !inDevDeps {
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		m := pyprojectDepRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		name := m[1]
		if name == "python" {
			continue
		}
		deps = append(deps, Dependency{
			Name:    name,
			Version: strings.TrimLeft(m[2], versionPrefix),
			Line:    i + 1,
			Dev:     inDevDeps,
		})
	}
	return deps, nil
}

func lineOf(content string, re *regexp.Regexp) int {
	loc := re.FindStringIndex(content)
	if loc == nil {
		return 0
	}
	return 1 + strings.Count(content[:loc[0]], "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Manifest maps lose order on decode; sort for reproducible output.
	sort.Strings(keys)
	return keys
}
