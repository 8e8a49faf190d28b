package report

import (
	"fmt"
	"os"

	"github.com/reposcope/reposcope/internal/compose"
	"github.com/reposcope/reposcope/internal/findings"
	"github.com/reposcope/reposcope/pkg/shared/files"
)

// defaultFileName returns the report name used when the output path is a
// directory.
func defaultFileName(format string) string {
	switch format {
	case FormatMarkdown:
		return "scan-report.md"
	case FormatSarif:
		return "scan-report.sarif"
	default:
		return "scan-report.json"
	}
}

// Write renders the result to stdout, or to outputPath when set. A
// directory output path receives a generated report name.
func Write(outputPath string, result *findings.Result, services []compose.Service, opts Options) error {
	if outputPath == "" {
		return Render(os.Stdout, result, services, opts)
	}

	fullPath, folder, err := files.DetermineFileFullPath(outputPath, defaultFileName(opts.Format))
	if err != nil {
		return fmt.Errorf("failed to resolve output path %q: %w", outputPath, err)
	}
	if err := files.CreateFolderIfNotExists(folder); err != nil {
		return err
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", fullPath, err)
	}
	defer file.Close()

	return Render(file, result, services, opts)
}
