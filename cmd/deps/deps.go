package deps

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

// RunOptionsDeps holds the arguments for the deps command.
type RunOptionsDeps struct {
	Format     string
	OutputPath string
	NoDev      bool
}

var (
	AppConfig   *config.Config
	log         hclog.Logger
	depsOptions RunOptionsDeps

	exampleDepsUsage = `  # Report dependencies from every manifest in a project
  reposcope deps /path/to/project

  # Exclude development dependencies
  reposcope deps --no-dev /path/to/project`
)

// Cmd represents the deps command.
var Cmd = &cobra.Command{
	Use:                   "deps [--format/-f FORMAT] [--output/-o PATH] [--no-dev] PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleDepsUsage,
	Short:                 "Analyze dependency manifests and classify the stack",
	RunE:                  runDepsCommand,
}

// Init initializes the global configuration and logger for the command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	log = l
}

func runDepsCommand(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.NewCommandError(fmt.Errorf("exactly one target path must be specified"), 1)
	}
	if err := report.ValidateFormat(depsOptions.Format); err != nil {
		return errors.NewCommandError(err, 1)
	}

	a := audit.New(AppConfig, log)
	outcome, err := a.Run(audit.Request{
		Root:       args[0],
		Phases:     []audit.Phase{audit.PhaseDeps},
		IncludeDev: !depsOptions.NoDev,
		Options:    scanner.OptionsFromConfig(AppConfig),
	})
	if err != nil {
		log.Error("deps command failed", "error", err)
		var notFound *errors.NotFoundError
		if stderrors.As(err, &notFound) {
			return errors.NewCommandError(err, 1)
		}
		return errors.NewCommandError(err, 2)
	}

	if err := report.Write(depsOptions.OutputPath, outcome.Result, nil, report.Options{Format: depsOptions.Format}); err != nil {
		log.Error("failed to write report", "error", err)
		return errors.NewCommandError(err, 2)
	}

	log.Info("deps command completed successfully", "findings", len(outcome.Result.Findings))
	return nil
}

func init() {
	Cmd.Flags().StringVarP(&depsOptions.Format, "format", "f", report.FormatJSON, "output format: json, markdown or sarif.")
	Cmd.Flags().StringVarP(&depsOptions.OutputPath, "output", "o", "", "the path to an output file or directory.")
	Cmd.Flags().BoolVar(&depsOptions.NoDev, "no-dev", false, "exclude development dependencies from the report.")
}
