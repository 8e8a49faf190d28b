package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reposcope/reposcope/internal/findings"
)

const fixtureCompose = `services:
    api:
        build:
            context: ./api
        ports:
            - "8000:8000"
        depends_on:
            - db
            - cache
    db:
        image: postgres:15-alpine
    cache:
        image: docker.io/library/redis:7
    worker:
        build: ./api
`

func TestDiscoverReadsServicesAndClassifiesDatabases(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "docker-compose.yml"), []byte(fixtureCompose), 0o644))

	collector := findings.NewCollector()
	services := Discover(root, collector, hclog.NewNullLogger())

	require.Len(t, services, 4)
	assert.Equal(t, "api", services[0].Name)
	assert.Equal(t, "./api", services[0].Build)
	assert.Equal(t, []string{"db", "cache"}, services[0].DependsOn)
	assert.Equal(t, "postgres:15-alpine", services[1].Image)

	byCat := collector.Result(findings.NewMetadata(root)).ByCategory()

	var containers []string
	for _, f := range byCat[findings.CategoryContainer] {
		containers = append(containers, f.Value)
	}
	assert.Equal(t, []string{
		"api (build: ./api)",
		"cache (docker.io/library/redis:7)",
		"db (postgres:15-alpine)",
		"worker (build: ./api)",
	}, containers)

	var databases []string
	for _, f := range byCat[findings.CategoryDatabase] {
		databases = append(databases, f.Value)
	}
	assert.ElementsMatch(t, []string{"PostgreSQL", "Redis"}, databases)

	require.Len(t, byCat[findings.CategoryWorker], 1)
	assert.Equal(t, "worker", byCat[findings.CategoryWorker][0].Value)
}

func TestDiscoverDependsOnMappingForm(t *testing.T) {
	root := t.TempDir()
	content := `services:
    api:
        image: api:latest
        depends_on:
            db:
                condition: service_healthy
    db:
        image: mysql:8
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "compose.yaml"), []byte(content), 0o644))

	collector := findings.NewCollector()
	services := Discover(root, collector, hclog.NewNullLogger())

	require.Len(t, services, 2)
	assert.Equal(t, []string{"db"}, services[0].DependsOn)
}

func TestDiscoverMalformedFileBecomesSkip(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "docker-compose.yml"), []byte("services: [broken\n"), 0o644))

	collector := findings.NewCollector()
	services := Discover(root, collector, hclog.NewNullLogger())
	result := collector.Result(findings.NewMetadata(root))

	assert.Nil(t, services)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "docker-compose.yml", result.Skipped[0].Path)
}

func TestDiscoverWithoutComposeFile(t *testing.T) {
	collector := findings.NewCollector()
	services := Discover(t.TempDir(), collector, hclog.NewNullLogger())
	assert.Nil(t, services)
	assert.Empty(t, collector.Result(findings.NewMetadata(".")).Findings)
}

func TestClassifyImage(t *testing.T) {
	var tests = []struct {
		image string
		want  string
		ok    bool
	}{
		{"postgres:15", "PostgreSQL", true},
		{"docker.io/library/mysql:8.0", "MySQL", true},
		{"mariadb", "MySQL", true},
		{"mongo:7", "MongoDB", true},
		{"ghcr.io/org/api:latest", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		display, ok := classifyImage(tt.image)
		if display != tt.want || ok != tt.ok {
			t.Errorf("classifyImage(%q) = (%q, %v), want (%q, %v)", tt.image, display, ok, tt.want, tt.ok)
		}
	}
}
