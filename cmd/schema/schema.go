package schema

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

// RunOptionsSchema holds the arguments for the schema command.
type RunOptionsSchema struct {
	Format     string
	OutputPath string
	Jobs       int
}

var (
	AppConfig     *config.Config
	log           hclog.Logger
	schemaOptions RunOptionsSchema

	exampleSchemaUsage = `  # Report ORM usage and model declarations
  reposcope schema /path/to/project`
)

// Cmd represents the schema command.
var Cmd = &cobra.Command{
	Use:                   "schema [--format/-f FORMAT] [--output/-o PATH] [-j JOBS] PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleSchemaUsage,
	Short:                 "Detect ORM models and field declarations",
	RunE:                  runSchemaCommand,
}

// Init initializes the global configuration and logger for the command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	log = l
}

func runSchemaCommand(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.NewCommandError(fmt.Errorf("exactly one target path must be specified"), 1)
	}
	if err := report.ValidateFormat(schemaOptions.Format); err != nil {
		return errors.NewCommandError(err, 1)
	}
	if schemaOptions.Jobs <= 0 {
		return errors.NewCommandError(fmt.Errorf("the 'jobs' flag must be a positive integer"), 1)
	}

	opts := scanner.OptionsFromConfig(AppConfig)
	opts.Jobs = schemaOptions.Jobs

	a := audit.New(AppConfig, log)
	outcome, err := a.Run(audit.Request{
		Root:    args[0],
		Phases:  []audit.Phase{audit.PhaseSchema},
		Options: opts,
	})
	if err != nil {
		log.Error("schema command failed", "error", err)
		var notFound *errors.NotFoundError
		if stderrors.As(err, &notFound) {
			return errors.NewCommandError(err, 1)
		}
		return errors.NewCommandError(err, 2)
	}

	if err := report.Write(schemaOptions.OutputPath, outcome.Result, nil, report.Options{Format: schemaOptions.Format}); err != nil {
		log.Error("failed to write report", "error", err)
		return errors.NewCommandError(err, 2)
	}

	log.Info("schema command completed successfully", "findings", len(outcome.Result.Findings))
	return nil
}

func init() {
	Cmd.Flags().StringVarP(&schemaOptions.Format, "format", "f", report.FormatJSON, "output format: json, markdown or sarif.")
	Cmd.Flags().StringVarP(&schemaOptions.OutputPath, "output", "o", "", "the path to an output file or directory.")
	Cmd.Flags().IntVarP(&schemaOptions.Jobs, "jobs", "j", 1, "number of concurrent file matching workers.")
}
