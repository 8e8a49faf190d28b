// Package audit orchestrates the scan phases: it compiles the requested
// rule tables, runs the tree scanner, the dependency manifest analyzer and
// the compose discovery, and combines everything into one result.
package audit

import (
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/reposcope/reposcope/internal/compose"
	"github.com/reposcope/reposcope/internal/depparser"
	"github.com/reposcope/reposcope/internal/findings"
	"github.com/reposcope/reposcope/internal/gitmeta"
	"github.com/reposcope/reposcope/internal/rules"
	"github.com/reposcope/reposcope/internal/scanner"
	"github.com/reposcope/reposcope/pkg/shared/config"
	"github.com/reposcope/reposcope/pkg/shared/errors"
)

// Phase identifies one analysis pass over the target tree.
type Phase string

const (
	PhaseTech       Phase = "tech"
	PhaseRoutes     Phase = "routes"
	PhaseEnv        Phase = "env"
	PhaseSchema     Phase = "schema"
	PhaseDeps       Phase = "deps"
	PhaseContainers Phase = "containers"
)

// AllPhases returns every phase, in the order the scan command runs them.
func AllPhases() []Phase {
	return []Phase{PhaseTech, PhaseRoutes, PhaseEnv, PhaseSchema, PhaseDeps, PhaseContainers}
}

// Request holds the arguments for one audit run.
type Request struct {
	Root       string
	Phases     []Phase
	IncludeDev bool
	Options    scanner.Options
}

// Outcome is the combined result of an audit run. Services feeds the
// optional container diagram.
type Outcome struct {
	Result   *findings.Result
	Services []compose.Service
}

// Auditor runs audit requests against target trees.
type Auditor struct {
	cfg    *config.Config
	logger hclog.Logger
}

// New creates a new Auditor with the provided configuration and logger.
func New(cfg *config.Config, logger hclog.Logger) *Auditor {
	return &Auditor{cfg: cfg, logger: logger}
}

// contentTable assembles the rule table for the requested phases.
func contentTable(phases []Phase) []rules.Rule {
	var table []rules.Rule
	for _, phase := range phases {
		switch phase {
		case PhaseTech:
			table = append(table, rules.TechTable()...)
		case PhaseRoutes:
			table = append(table, rules.RouteTable()...)
		case PhaseEnv:
			table = append(table, rules.EnvTable()...)
		case PhaseSchema:
			table = append(table, rules.SchemaTable()...)
		}
	}
	return table
}

func hasPhase(phases []Phase, want Phase) bool {
	for _, p := range phases {
		if p == want {
			return true
		}
	}
	return false
}

// Run executes the requested phases and returns the combined outcome. The
// root path must be an existing directory; everything below it fails soft
// into the skip report.
func (a *Auditor) Run(req Request) (*Outcome, error) {
	info, err := os.Stat(req.Root)
	if err != nil {
		return nil, errors.NewNotFoundError(req.Root, err.Error())
	}
	if !info.IsDir() {
		return nil, errors.NewNotFoundError(req.Root, "not a directory")
	}

	collector := findings.NewCollector()
	meta := findings.NewMetadata(req.Root)
	meta.Git = gitmeta.Collect(req.Root)

	if table := contentTable(req.Phases); len(table) > 0 {
		ruleset, err := rules.Compile("audit", table)
		if err != nil {
			return nil, err
		}
		s := scanner.New(ruleset, req.Options, a.logger)
		if err := s.ScanInto(req.Root, collector); err != nil {
			return nil, err
		}
	}

	if hasPhase(req.Phases, PhaseDeps) {
		depparser.New(req.IncludeDev, a.logger).Analyze(req.Root, collector)
	}

	var services []compose.Service
	if hasPhase(req.Phases, PhaseContainers) {
		services = compose.Discover(req.Root, collector, a.logger)
	}

	result := collector.Result(meta)
	a.logger.Info("audit complete", "root", req.Root, "findings", len(result.Findings), "skipped", len(result.Skipped))

	return &Outcome{Result: result, Services: services}, nil
}
