package routes

import (
	stderrors "errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/internal/audit"
	"github.com/reposcope/reposcope/internal/report"
	"github.com/reposcope/reposcope/internal/scanner"
	"github.com/reposcope/reposcope/pkg/shared/config"
	"github.com/reposcope/reposcope/pkg/shared/errors"
)

// RunOptionsRoutes holds the arguments for the routes command.
type RunOptionsRoutes struct {
	Format     string
	OutputPath string
	Jobs       int
}

var (
	AppConfig     *config.Config
	log           hclog.Logger
	routesOptions RunOptionsRoutes

	exampleRoutesUsage = `  # Catalog HTTP route declarations across a project
  reposcope routes /path/to/project

  # Render one markdown table per category
  reposcope routes --format markdown /path/to/project`
)

// Cmd represents the routes command.
var Cmd = &cobra.Command{
	Use:                   "routes [--format/-f FORMAT] [--output/-o PATH] [-j JOBS] PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleRoutesUsage,
	Short:                 "Catalog HTTP route declarations in a project tree",
	RunE:                  runRoutesCommand,
}

// Init initializes the global configuration and logger for the command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	log = l
}

func runRoutesCommand(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.NewCommandError(fmt.Errorf("exactly one target path must be specified"), 1)
	}
	if err := report.ValidateFormat(routesOptions.Format); err != nil {
		return errors.NewCommandError(err, 1)
	}
	if routesOptions.Jobs <= 0 {
		return errors.NewCommandError(fmt.Errorf("the 'jobs' flag must be a positive integer"), 1)
	}

	opts := scanner.OptionsFromConfig(AppConfig)
	opts.Jobs = routesOptions.Jobs

	a := audit.New(AppConfig, log)
	outcome, err := a.Run(audit.Request{
		Root:    args[0],
		Phases:  []audit.Phase{audit.PhaseRoutes},
		Options: opts,
	})
	if err != nil {
		log.Error("routes command failed", "error", err)
		var notFound *errors.NotFoundError
		if stderrors.As(err, &notFound) {
			return errors.NewCommandError(err, 1)
		}
		return errors.NewCommandError(err, 2)
	}

	if err := report.Write(routesOptions.OutputPath, outcome.Result, nil, report.Options{Format: routesOptions.Format}); err != nil {
		log.Error("failed to write report", "error", err)
		return errors.NewCommandError(err, 2)
	}

	log.Info("routes command completed successfully", "findings", len(outcome.Result.Findings))
	return nil
}

func init() {
	Cmd.Flags().StringVarP(&routesOptions.Format, "format", "f", report.FormatJSON, "output format: json, markdown or sarif.")
	Cmd.Flags().StringVarP(&routesOptions.OutputPath, "output", "o", "", "the path to an output file or directory.")
	Cmd.Flags().IntVarP(&routesOptions.Jobs, "jobs", "j", 1, "number of concurrent file matching workers.")
}
