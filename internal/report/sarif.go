package report

import (
	"fmt"
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/reposcope/reposcope/internal/findings"
)

const toolURI = "https://github.com/reposcope/reposcope"

// renderSarif writes the result as a SARIF 2.1.0 log with one rule per
// distinct rule id and one informational result per finding.
func renderSarif(w io.Writer, result *findings.Result) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create sarif report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("reposcope", toolURI)

	seenRules := make(map[string]struct{})
	for _, f := range result.Findings {
		ruleID := f.RuleID
		if ruleID == "" {
			ruleID = string(f.Category)
		}
		if _, ok := seenRules[ruleID]; !ok {
			seenRules[ruleID] = struct{}{}
			run.AddRule(ruleID).
				WithDescription(fmt.Sprintf("Detected %s convention", f.Category))
		}

		line := f.LineNumber
		if line < 1 {
			line = 1
		}
		run.CreateResultForRule(ruleID).
			WithLevel("note").
			WithMessage(sarif.NewTextMessage(fmt.Sprintf("%s: %s", f.Category, f.Value))).
			AddLocation(
				sarif.NewLocationWithPhysicalLocation(
					sarif.NewPhysicalLocation().
						WithArtifactLocation(sarif.NewSimpleArtifactLocation(f.SourcePath)).
						WithRegion(sarif.NewSimpleRegion(line, line)),
				),
			)
	}

	report.AddRun(run)
	return report.PrettyWrite(w)
}
