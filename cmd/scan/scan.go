package scan

import (
	stderrors "errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/internal/audit"
	"github.com/reposcope/reposcope/internal/report"
	"github.com/reposcope/reposcope/internal/scanner"
	"github.com/reposcope/reposcope/pkg/shared/artifacts"
	"github.com/reposcope/reposcope/pkg/shared/config"
	"github.com/reposcope/reposcope/pkg/shared/errors"
)

// RunOptionsScan holds the arguments for the scan command.
type RunOptionsScan struct {
	Format       string
	OutputPath   string
	NoDev        bool
	Diagram      bool
	VerboseSkips bool
	Jobs         int
	SaveArtifact bool
}

// Global variables for configuration and command arguments
var (
	AppConfig   *config.Config
	log         hclog.Logger
	scanOptions RunOptionsScan

	exampleScanUsage = `  # Scan a project and print JSON findings
  reposcope scan /path/to/project

  # Render markdown tables with the container diagram
  reposcope scan --format markdown --diagram /path/to/project

  # Exclude development dependencies and write the report to a file
  reposcope scan --no-dev --output /path/to/report.json /path/to/project

  # Run file matching on four workers
  reposcope scan -j 4 /path/to/project`
)

// Cmd represents the scan command.
var Cmd = &cobra.Command{
	Use:                   "scan [--format/-f FORMAT] [--output/-o PATH] [--no-dev] [--diagram] [-j JOBS] PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleScanUsage,
	Short:                 "Run every detection phase against a project tree",
	RunE:                  runScanCommand,
}

// Init initializes the global configuration and logger for the command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	log = l
}

func runScanCommand(cmd *cobra.Command, args []string) error {
	if err := validateScanArgs(&scanOptions, args); err != nil {
		log.Error("invalid scan arguments", "error", err)
		return errors.NewCommandError(fmt.Errorf("invalid scan arguments: %w", err), 1)
	}

	opts := scanner.OptionsFromConfig(AppConfig)
	opts.Jobs = scanOptions.Jobs

	a := audit.New(AppConfig, log)
	outcome, err := a.Run(audit.Request{
		Root:       args[0],
		Phases:     audit.AllPhases(),
		IncludeDev: !scanOptions.NoDev,
		Options:    opts,
	})
	if err != nil {
		log.Error("scan command failed", "error", err)
		return errors.NewCommandError(err, exitCodeFor(err))
	}

	if scanOptions.SaveArtifact {
		if _, err := artifacts.SaveArtifactJSON(AppConfig, log, "scan", outcome.Result); err != nil {
			log.Error("failed to write artifact", "error", err)
		}
	}

	if err := report.Write(scanOptions.OutputPath, outcome.Result, outcome.Services, report.Options{
		Format:       scanOptions.Format,
		Diagram:      scanOptions.Diagram,
		VerboseSkips: scanOptions.VerboseSkips,
	}); err != nil {
		log.Error("failed to write report", "error", err)
		return errors.NewCommandError(err, 2)
	}

	log.Info("scan command completed successfully",
		"findings", len(outcome.Result.Findings), "skipped", len(outcome.Result.Skipped))
	return nil
}

// exitCodeFor maps audit failures to the documented exit codes: a missing
// target is a usage error, anything else is internal.
func exitCodeFor(err error) int {
	var notFound *errors.NotFoundError
	if stderrors.As(err, &notFound) {
		return 1
	}
	return 2
}

func init() {
	Cmd.Flags().StringVarP(&scanOptions.Format, "format", "f", report.FormatJSON, "output format: json, markdown or sarif.")
	Cmd.Flags().StringVarP(&scanOptions.OutputPath, "output", "o", "", "the path to an output file or directory.")
	Cmd.Flags().BoolVar(&scanOptions.NoDev, "no-dev", false, "exclude development dependencies from the report.")
	Cmd.Flags().BoolVar(&scanOptions.Diagram, "diagram", false, "append a mermaid container diagram to markdown output.")
	Cmd.Flags().BoolVar(&scanOptions.VerboseSkips, "verbose-skips", false, "list every skipped file instead of only the count.")
	Cmd.Flags().IntVarP(&scanOptions.Jobs, "jobs", "j", 1, "number of concurrent file matching workers.")
	Cmd.Flags().BoolVar(&scanOptions.SaveArtifact, "artifact", false, "also save the JSON result as a timestamped artifact.")
}
