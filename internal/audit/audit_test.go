package audit

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposcope/reposcope/internal/findings"
	"github.com/reposcope/reposcope/internal/scanner"
	"github.com/reposcope/reposcope/pkg/shared/config"
	"github.com/reposcope/reposcope/pkg/shared/errors"
)

func testAuditor(t *testing.T) (*Auditor, scanner.Options) {
	t.Helper()
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	return New(cfg, hclog.NewNullLogger()), scanner.OptionsFromConfig(cfg)
}

func writeTree(t *testing.T, root string, tree map[string]string) {
	t.Helper()
	for rel, content := range tree {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestRunFullAudit(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json": `{
    "dependencies": {"express": "^4.18.0", "pg": "8.11.1"}
}`,
		"src/server.js": "const app = express()\napp.post('/login', login)\nconst dsn = process.env.DATABASE_URL\n",
		"docker-compose.yml": `services:
    db:
        image: postgres:15
`,
		"node_modules/express/index.js": "app.get('/internal', h)\n",
	})

	auditor, opts := testAuditor(t)
	outcome, err := auditor.Run(Request{
		Root:       root,
		Phases:     AllPhases(),
		IncludeDev: true,
		Options:    opts,
	})
	require.NoError(t, err)

	byCat := outcome.Result.ByCategory()

	require.Len(t, byCat[findings.CategoryLanguage], 1)
	assert.Equal(t, "JavaScript/TypeScript", byCat[findings.CategoryLanguage][0].Value)

	// The framework shows up in both code and manifest; presence dedup
	// keeps one finding.
	require.Len(t, byCat[findings.CategoryFramework], 1)
	assert.Equal(t, "Express.js", byCat[findings.CategoryFramework][0].Value)

	var routes []string
	for _, f := range byCat[findings.CategoryRoute] {
		routes = append(routes, f.Value+" "+f.SourcePath)
	}
	assert.Equal(t, []string{"POST /login src/server.js"}, routes)

	require.Len(t, byCat[findings.CategoryEnvVariable], 1)
	assert.Equal(t, "DATABASE_URL", byCat[findings.CategoryEnvVariable][0].Value)

	require.Len(t, byCat[findings.CategoryDatabase], 1)
	assert.Equal(t, "PostgreSQL", byCat[findings.CategoryDatabase][0].Value)

	require.Len(t, byCat[findings.CategoryContainer], 1)
	assert.Equal(t, "db (postgres:15)", byCat[findings.CategoryContainer][0].Value)
	require.Len(t, outcome.Services, 1)
}

func TestRunSinglePhase(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.py":           "import os\ntoken = os.getenv(\"API_TOKEN\")\n",
		"requirements.txt": "flask==2.3.2\n",
	})

	auditor, opts := testAuditor(t)
	outcome, err := auditor.Run(Request{
		Root:    root,
		Phases:  []Phase{PhaseEnv},
		Options: opts,
	})
	require.NoError(t, err)

	byCat := outcome.Result.ByCategory()
	require.Len(t, byCat[findings.CategoryEnvVariable], 1)
	assert.Equal(t, "API_TOKEN", byCat[findings.CategoryEnvVariable][0].Value)
	assert.Empty(t, byCat[findings.CategoryDependency])
	assert.Empty(t, byCat[findings.CategoryFramework])
	assert.Nil(t, outcome.Services)
}

func TestRunMissingRoot(t *testing.T) {
	auditor, opts := testAuditor(t)
	_, err := auditor.Run(Request{
		Root:    filepath.Join(t.TempDir(), "nope"),
		Phases:  AllPhases(),
		Options: opts,
	})
	require.Error(t, err)

	var notFound *errors.NotFoundError
	assert.True(t, stderrors.As(err, &notFound))
}
