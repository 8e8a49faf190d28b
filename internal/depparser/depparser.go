// Package depparser extracts dependency findings from package manager
// manifests at the root of a project tree: package.json, requirements.txt,
// go.mod and pyproject.toml. Every dependency is also classified into a
// technology category (framework, database, orm, service, testing) through
// the shared rule tables, so a package.json revealing both a framework and
// a database client yields findings in both categories.
package depparser

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/reposcope/reposcope/internal/findings"
	"github.com/reposcope/reposcope/internal/rules"
)

// Dependency is one manifest entry before it becomes findings.
type Dependency struct {
	Name    string
	Version string
	Line    int
	Dev     bool
}

// Analyzer parses dependency manifests and records findings.
type Analyzer struct {
	includeDev bool
	logger     hclog.Logger
}

// New creates an Analyzer. includeDev controls whether development
// dependencies produce findings.
func New(includeDev bool, logger hclog.Logger) *Analyzer {
	return &Analyzer{includeDev: includeDev, logger: logger}
}

// manifest binds a file name to its parser and the language it implies.
type manifest struct {
	name     string
	language string
	parse    func(content string) ([]Dependency, []string)
}

func (a *Analyzer) manifests() []manifest {
	return []manifest{
		{name: "package.json", language: "JavaScript/TypeScript", parse: parsePackageJSON},
		{name: "requirements.txt", language: "Python", parse: parseRequirementsTxt},
		{name: "go.mod", language: "Go", parse: parseGoMod},
		{name: "pyproject.toml", language: "Python", parse: parsePyprojectToml},
	}
}

// Analyze reads every known manifest at root and records dependency,
// language and categorized technology findings into the collector. Missing
// manifests are normal; unreadable or malformed ones become skip entries.
func (a *Analyzer) Analyze(root string, collector *findings.Collector) {
	for _, m := range a.manifests() {
		path := filepath.Join(root, m.name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			collector.Skip(m.name, "read error: "+err.Error())
			continue
		}

		deps, parseErrors := m.parse(string(data))
		for _, reason := range parseErrors {
			collector.Skip(m.name, reason)
		}
		if len(deps) == 0 && len(parseErrors) > 0 {
			continue
		}

		a.logger.Debug("parsed manifest", "manifest", m.name, "dependencies", len(deps))

		collector.Add(findings.Finding{
			Category:   findings.CategoryLanguage,
			Value:      m.language,
			SourcePath: m.name,
			LineNumber: 1,
			Confidence: findings.ConfidenceHigh,
		}, true)

		for _, dep := range deps {
			a.record(m.name, dep, collector)
		}
	}
}

func (a *Analyzer) record(source string, dep Dependency, collector *findings.Collector) {
	if dep.Dev && !a.includeDev {
		return
	}

	collector.Add(findings.Finding{
		Category:   findings.CategoryDependency,
		Value:      dep.Name,
		SourcePath: source,
		LineNumber: dep.Line,
		Confidence: findings.ConfidenceHigh,
		Version:    dep.Version,
		Dev:        dep.Dev,
	}, false)

	if category, display, ok := rules.CategorizeDependency(dep.Name); ok {
		collector.Add(findings.Finding{
			Category:   category,
			Value:      display,
			SourcePath: source,
			LineNumber: dep.Line,
			Confidence: findings.ConfidenceHigh,
			Version:    dep.Version,
		}, true)
	}
}
