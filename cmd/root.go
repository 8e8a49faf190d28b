package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/cmd/containers"
	"github.com/reposcope/reposcope/cmd/deps"
	"github.com/reposcope/reposcope/cmd/env"
	"github.com/reposcope/reposcope/cmd/routes"
	"github.com/reposcope/reposcope/cmd/scan"
	"github.com/reposcope/reposcope/cmd/schema"
	"github.com/reposcope/reposcope/cmd/version"
	"github.com/reposcope/reposcope/pkg/shared/config"
	"github.com/reposcope/reposcope/pkg/shared/errors"
	"github.com/reposcope/reposcope/pkg/shared/logger"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "reposcope [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Reposcope detects technologies and conventions in a project tree.",
		Long: `Reposcope scans a project directory and reports detected technologies and
conventions: languages, frameworks, databases, ORMs, routes, environment
variables, model fields, dependencies and containers. Results render as
JSON, markdown tables, or SARIF for the documentation workflow consuming
them.
`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .reposcope.yml)")

	rootCmd.AddCommand(scan.Cmd)
	rootCmd.AddCommand(deps.Cmd)
	rootCmd.AddCommand(env.Cmd)
	rootCmd.AddCommand(routes.Cmd)
	rootCmd.AddCommand(schema.Cmd)
	rootCmd.AddCommand(containers.Cmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and maps failures to process exit codes:
// 0 success, 1 invalid arguments or target, 2 internal error.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "reposcope: %v\n", err)

		var cmdErr *errors.CommandError
		if stderrors.As(err, &cmdErr) {
			return cmdErr.ExitCode
		}
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = config.DefaultConfigFile
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(AppConfig, "core")
	scan.Init(AppConfig, log)
	deps.Init(AppConfig, log)
	env.Init(AppConfig, log)
	routes.Init(AppConfig, log)
	schema.Init(AppConfig, log)
	containers.Init(AppConfig, log)
}
