// Package report renders a scan result as JSON, markdown tables, or SARIF.
package report

import (
	"fmt"
	"io"

	"github.com/reposcope/reposcope/internal/compose"
	"github.com/reposcope/reposcope/internal/findings"
)

// Supported output formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatSarif    = "sarif"
)

// Options selects the serialization of a scan result.
type Options struct {
	Format       string
	Diagram      bool
	VerboseSkips bool
}

// ValidateFormat checks the --format flag value.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatMarkdown, FormatSarif:
		return nil
	}
	return fmt.Errorf("unsupported format %q: expected one of json, markdown, sarif", format)
}

// Render writes the result to w in the chosen format. The services slice
// feeds the optional mermaid container diagram in markdown output.
func Render(w io.Writer, result *findings.Result, services []compose.Service, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return renderJSON(w, result)
	case FormatMarkdown:
		return renderMarkdown(w, result, services, opts)
	case FormatSarif:
		return renderSarif(w, result)
	}
	return fmt.Errorf("unsupported format %q", opts.Format)
}
