package env

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

// RunOptionsEnv holds the arguments for the env command.
type RunOptionsEnv struct {
	Format     string
	OutputPath string
	Jobs       int
}

var (
	AppConfig  *config.Config
	log        hclog.Logger
	envOptions RunOptionsEnv

	exampleEnvUsage = `  # Report environment variable access sites and declarations
  reposcope env /path/to/project

  # Render markdown tables
  reposcope env --format markdown /path/to/project`
)

// Cmd represents the env command.
var Cmd = &cobra.Command{
	Use:                   "env [--format/-f FORMAT] [--output/-o PATH] [-j JOBS] PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleEnvUsage,
	Short:                 "Detect environment variable usage across a project tree",
	RunE:                  runEnvCommand,
}

// Init initializes the global configuration and logger for the command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	log = l
}

func runEnvCommand(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.NewCommandError(fmt.Errorf("exactly one target path must be specified"), 1)
	}
	if err := report.ValidateFormat(envOptions.Format); err != nil {
		return errors.NewCommandError(err, 1)
	}
	if envOptions.Jobs <= 0 {
		return errors.NewCommandError(fmt.Errorf("the 'jobs' flag must be a positive integer"), 1)
	}

	opts := scanner.OptionsFromConfig(AppConfig)
	opts.Jobs = envOptions.Jobs

	a := audit.New(AppConfig, log)
	outcome, err := a.Run(audit.Request{
		Root:    args[0],
		Phases:  []audit.Phase{audit.PhaseEnv},
		Options: opts,
	})
	if err != nil {
		log.Error("env command failed", "error", err)
		var notFound *errors.NotFoundError
		if stderrors.As(err, &notFound) {
			return errors.NewCommandError(err, 1)
		}
		return errors.NewCommandError(err, 2)
	}

	if err := report.Write(envOptions.OutputPath, outcome.Result, nil, report.Options{Format: envOptions.Format}); err != nil {
		log.Error("failed to write report", "error", err)
		return errors.NewCommandError(err, 2)
	}

	log.Info("env command completed successfully", "findings", len(outcome.Result.Findings))
	return nil
}

func init() {
	Cmd.Flags().StringVarP(&envOptions.Format, "format", "f", report.FormatJSON, "output format: json, markdown or sarif.")
	Cmd.Flags().StringVarP(&envOptions.OutputPath, "output", "o", "", "the path to an output file or directory.")
	Cmd.Flags().IntVarP(&envOptions.Jobs, "jobs", "j", 1, "number of concurrent file matching workers.")
}
