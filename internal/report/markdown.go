package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/reposcope/reposcope/internal/compose"
	"github.com/reposcope/reposcope/internal/findings"
)

func renderMarkdown(w io.Writer, result *findings.Result, services []compose.Service, opts Options) error {
	var b strings.Builder

	b.WriteString("# Scan Report\n\n")
	fmt.Fprintf(&b, "- Root: `%s`\n", result.Meta.Root)
	fmt.Fprintf(&b, "- Run: %s\n", result.Meta.RunID)
	fmt.Fprintf(&b, "- Started: %s\n", result.Meta.StartedAt.Format(time.RFC3339))
	if git := result.Meta.Git; git != nil {
		if git.Branch != nil {
			fmt.Fprintf(&b, "- Branch: %s\n", *git.Branch)
		}
		if git.Commit != nil {
			fmt.Fprintf(&b, "- Commit: %s\n", *git.Commit)
		}
		if git.Remote != nil {
			fmt.Fprintf(&b, "- Remote: %s\n", *git.Remote)
		}
	}
	b.WriteString("\n")

	grouped := result.ByCategory()
	for _, category := range findings.Categories() {
		group := grouped[category]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", category)
		b.WriteString("| Category | Value | Source Path | Line |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, f := range group {
			line := "-"
			if f.LineNumber > 0 {
				line = fmt.Sprintf("%d", f.LineNumber)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", f.Category, escapeCell(f.Value), escapeCell(f.SourcePath), line)
		}
		b.WriteString("\n")
	}

	if opts.Diagram && len(services) > 0 {
		b.WriteString("## containers diagram\n\n")
		renderMermaid(&b, services)
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Skipped files: %d\n", len(result.Skipped))
	if opts.VerboseSkips {
		for _, skip := range result.Skipped {
			fmt.Fprintf(&b, "- %s: %s\n", skip.Path, skip.Reason)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// escapeCell keeps pipes in values from breaking table rows.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
