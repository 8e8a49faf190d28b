package scan

import (
	"fmt"

	"github.com/reposcope/reposcope/internal/report"
)

// validateScanArgs validates the arguments provided to the scan command.
func validateScanArgs(options *RunOptionsScan, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("exactly one target path must be specified")
	}

	if err := report.ValidateFormat(options.Format); err != nil {
		return err
	}

	if options.Jobs <= 0 {
		return fmt.Errorf("the 'jobs' flag must be a positive integer")
	}

	if options.Diagram && options.Format != report.FormatMarkdown {
		return fmt.Errorf("the 'diagram' flag is only supported with markdown output")
	}

	return nil
}
