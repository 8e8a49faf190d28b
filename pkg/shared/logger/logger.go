package logger

import (
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/reposcope/reposcope/pkg/shared/config"
)

// NewLogger creates a new hclog.Logger instance based on the configuration
// and the provided name. The REPOSCOPE_LOG_LEVEL environment variable takes
// precedence over the configured level.
func NewLogger(cfg *config.Config, name string) hclog.Logger {
	var logLevel hclog.Level

	if logLevelEnv := os.Getenv("REPOSCOPE_LOG_LEVEL"); logLevelEnv != "" {
		logLevel = getLogLevel(strings.ToUpper(logLevelEnv))
	} else if cfg != nil && cfg.Logger.Level != "" {
		logLevel = getLogLevel(strings.ToUpper(cfg.Logger.Level))
	} else {
		logLevel = hclog.Info
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: true,
		Output:      os.Stderr,
		Level:       logLevel,
	})

	return logger
}

func getLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
