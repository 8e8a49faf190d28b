package containers

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

// RunOptionsContainers holds the arguments for the containers command.
type RunOptionsContainers struct {
	Format     string
	OutputPath string
	Diagram    bool
}

var (
	AppConfig        *config.Config
	log              hclog.Logger
	containerOptions RunOptionsContainers

	exampleContainersUsage = `  # Discover compose services and classify databases
  reposcope containers /path/to/project

  # Render markdown with a mermaid service diagram
  reposcope containers --format markdown --diagram /path/to/project`
)

// Cmd represents the containers command.
var Cmd = &cobra.Command{
	Use:                   "containers [--format/-f FORMAT] [--output/-o PATH] [--diagram] PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleContainersUsage,
	Short:                 "Discover containers declared in compose files",
	RunE:                  runContainersCommand,
}

// Init initializes the global configuration and logger for the command.
func Init(cfg *config.Config, l hclog.Logger) {
	AppConfig = cfg
	log = l
}

func runContainersCommand(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.NewCommandError(fmt.Errorf("exactly one target path must be specified"), 1)
	}
	if err := report.ValidateFormat(containerOptions.Format); err != nil {
		return errors.NewCommandError(err, 1)
	}
	if containerOptions.Diagram && containerOptions.Format != report.FormatMarkdown {
		return errors.NewCommandError(fmt.Errorf("the 'diagram' flag is only supported with markdown output"), 1)
	}

	a := audit.New(AppConfig, log)
	outcome, err := a.Run(audit.Request{
		Root:    args[0],
		Phases:  []audit.Phase{audit.PhaseContainers},
		Options: scanner.OptionsFromConfig(AppConfig),
	})
	if err != nil {
		log.Error("containers command failed", "error", err)
		var notFound *errors.NotFoundError
		if stderrors.As(err, &notFound) {
			return errors.NewCommandError(err, 1)
		}
		return errors.NewCommandError(err, 2)
	}

	if err := report.Write(containerOptions.OutputPath, outcome.Result, outcome.Services, report.Options{
		Format:  containerOptions.Format,
		Diagram: containerOptions.Diagram,
	}); err != nil {
		log.Error("failed to write report", "error", err)
		return errors.NewCommandError(err, 2)
	}

	log.Info("containers command completed successfully", "services", len(outcome.Services))
	return nil
}

func init() {
	Cmd.Flags().StringVarP(&containerOptions.Format, "format", "f", report.FormatJSON, "output format: json, markdown or sarif.")
	Cmd.Flags().StringVarP(&containerOptions.OutputPath, "output", "o", "", "the path to an output file or directory.")
	Cmd.Flags().BoolVar(&containerOptions.Diagram, "diagram", false, "append a mermaid service diagram to markdown output.")
}
