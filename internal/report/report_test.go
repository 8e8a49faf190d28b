package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposcope/reposcope/internal/compose"
	"github.com/reposcope/reposcope/internal/findings"
)

func fixtureResult() *findings.Result {
	c := findings.NewCollector()
	c.Add(findings.Finding{Category: findings.CategoryLanguage, Value: "Python", SourcePath: "requirements.txt", LineNumber: 1, Confidence: findings.ConfidenceHigh}, true)
	c.Add(findings.Finding{Category: findings.CategoryFramework, Value: "Flask", SourcePath: "app/main.py", LineNumber: 3, Confidence: findings.ConfidenceLow}, true)
	c.Add(findings.Finding{Category: findings.CategoryRoute, Value: "POST /login", SourcePath: "routes/auth.py", LineNumber: 14, Confidence: findings.ConfidenceMedium, RuleID: "route-decorator"}, false)
	c.Skip("assets/logo.png", "binary or non-UTF8 content")

	meta := findings.Metadata{
		Root:      "/srv/project",
		RunID:     "11111111-2222-3333-4444-555555555555",
		StartedAt: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC),
	}
	return c.Result(meta)
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, ValidateFormat(FormatJSON))
	assert.NoError(t, ValidateFormat(FormatMarkdown))
	assert.NoError(t, ValidateFormat(FormatSarif))
	assert.Error(t, ValidateFormat("xml"))
	assert.Error(t, ValidateFormat(""))
}

func TestRenderJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, fixtureResult(), nil, Options{Format: FormatJSON}))

	parsed, err := ParseResult(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, "/srv/project", parsed.Meta.Root)
	require.Len(t, parsed.Findings, 3)
	assert.Equal(t, fixtureResult().Findings, parsed.Findings)
	require.Len(t, parsed.Skipped, 1)
	assert.Equal(t, "assets/logo.png", parsed.Skipped[0].Path)
}

func TestRenderMarkdownTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, fixtureResult(), nil, Options{Format: FormatMarkdown}))
	out := buf.String()

	assert.Contains(t, out, "# Scan Report")
	assert.Contains(t, out, "- Root: `/srv/project`")
	assert.Contains(t, out, "| route | POST /login | routes/auth.py | 14 |")
	assert.Contains(t, out, "| framework | Flask | app/main.py | 3 |")
	assert.Contains(t, out, "Skipped files: 1")
	assert.NotContains(t, out, "assets/logo.png")

	// Category sections follow the fixed order.
	lang := strings.Index(out, "## language")
	framework := strings.Index(out, "## framework")
	route := strings.Index(out, "## route")
	require.True(t, lang >= 0 && framework >= 0 && route >= 0)
	assert.True(t, lang < framework && framework < route)
}

func TestRenderMarkdownVerboseSkips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, fixtureResult(), nil, Options{Format: FormatMarkdown, VerboseSkips: true}))
	assert.Contains(t, buf.String(), "- assets/logo.png: binary or non-UTF8 content")
}

func TestRenderMarkdownEscapesPipes(t *testing.T) {
	c := findings.NewCollector()
	c.Add(findings.Finding{Category: findings.CategoryEnvVariable, Value: "A|B", SourcePath: "x.py", LineNumber: 1}, false)
	result := c.Result(findings.Metadata{Root: "."})

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, result, nil, Options{Format: FormatMarkdown}))
	assert.Contains(t, buf.String(), `A\|B`)
}

func TestRenderMarkdownDiagram(t *testing.T) {
	services := []compose.Service{
		{Name: "api", Build: "./api", DependsOn: []string{"db"}},
		{Name: "db", Image: "postgres:15"},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, fixtureResult(), services, Options{Format: FormatMarkdown, Diagram: true}))
	out := buf.String()

	assert.Contains(t, out, "```mermaid")
	assert.Contains(t, out, "graph TB")
	assert.Contains(t, out, `db["db<br/>postgres:15"]`)
	assert.Contains(t, out, "api --> db")

	// Without the flag the diagram is absent even when services exist.
	buf.Reset()
	require.NoError(t, Render(&buf, fixtureResult(), services, Options{Format: FormatMarkdown}))
	assert.NotContains(t, buf.String(), "mermaid")
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(&buf, fixtureResult(), nil, Options{Format: "yaml"}))
}

func TestNodeID(t *testing.T) {
	assert.Equal(t, "api_gateway", nodeID("api-gateway"))
	assert.Equal(t, "db_1", nodeID("db.1"))
}
