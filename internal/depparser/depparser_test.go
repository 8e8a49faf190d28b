package depparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposcope/reposcope/internal/findings"
)

func writeManifest(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
}

func TestAnalyzeCategorizesManifestEntries(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "package.json", `{
    "dependencies": {
        "express": "^4.18.0",
        "pg": "8.11.1"
    },
    "devDependencies": {
        "jest": "29.0.0"
    }
}`)

	collector := findings.NewCollector()
	New(true, hclog.NewNullLogger()).Analyze(root, collector)
	result := collector.Result(findings.NewMetadata(root))
	byCat := result.ByCategory()

	require.Len(t, byCat[findings.CategoryLanguage], 1)
	assert.Equal(t, "JavaScript/TypeScript", byCat[findings.CategoryLanguage][0].Value)

	require.Len(t, byCat[findings.CategoryFramework], 1)
	assert.Equal(t, "Express.js", byCat[findings.CategoryFramework][0].Value)
	assert.Equal(t, "4.18.0", byCat[findings.CategoryFramework][0].Version)

	require.Len(t, byCat[findings.CategoryDatabase], 1)
	assert.Equal(t, "PostgreSQL", byCat[findings.CategoryDatabase][0].Value)

	require.Len(t, byCat[findings.CategoryTesting], 1)
	assert.Equal(t, "Jest", byCat[findings.CategoryTesting][0].Value)

	var names []string
	for _, f := range byCat[findings.CategoryDependency] {
		names = append(names, f.Value)
	}
	assert.Equal(t, []string{"express", "pg", "jest"}, names)
}

func TestAnalyzeSkipsDevDependenciesWhenExcluded(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "package.json", `{
    "dependencies": {"express": "4.18.0"},
    "devDependencies": {"jest": "29.0.0"}
}`)

	collector := findings.NewCollector()
	New(false, hclog.NewNullLogger()).Analyze(root, collector)
	byCat := collector.Result(findings.NewMetadata(root)).ByCategory()

	require.Len(t, byCat[findings.CategoryDependency], 1)
	assert.Equal(t, "express", byCat[findings.CategoryDependency][0].Value)
	assert.Empty(t, byCat[findings.CategoryTesting])
}

func TestAnalyzeMalformedManifestBecomesSkip(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "package.json", `{"dependencies": [`)

	collector := findings.NewCollector()
	New(true, hclog.NewNullLogger()).Analyze(root, collector)
	result := collector.Result(findings.NewMetadata(root))

	assert.Empty(t, result.Findings)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "package.json", result.Skipped[0].Path)
}

func TestAnalyzeIgnoresMissingManifests(t *testing.T) {
	collector := findings.NewCollector()
	New(true, hclog.NewNullLogger()).Analyze(t.TempDir(), collector)
	result := collector.Result(findings.NewMetadata("."))

	assert.Empty(t, result.Findings)
	assert.Empty(t, result.Skipped)
}
