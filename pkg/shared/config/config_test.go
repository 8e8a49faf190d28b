package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), ".reposcope.yml"))
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Logger.Level)
	assert.Equal(t, DefaultExcludeDirs(), cfg.Scanner.ExcludeDirs)
	assert.Equal(t, DefaultIncludeExtensions(), cfg.Scanner.IncludeExtensions)
	assert.Equal(t, int64(DefaultMaxFileSizeBytes), cfg.Scanner.MaxFileSizeBytes)
	assert.Equal(t, DefaultMaxDepth, cfg.Scanner.MaxDepth)
}

func TestLoadConfigOverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".reposcope.yml")
	content := `logger:
    level: DEBUG
scanner:
    exclude_dirs:
        - node_modules
        - tmp
    max_file_size_bytes: 1024
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logger.Level)
	assert.Equal(t, []string{"node_modules", "tmp"}, cfg.Scanner.ExcludeDirs)
	assert.Equal(t, int64(1024), cfg.Scanner.MaxFileSizeBytes)
	// Fields the file leaves out still get defaults.
	assert.Equal(t, DefaultIncludeExtensions(), cfg.Scanner.IncludeExtensions)
	assert.Equal(t, DefaultMaxDepth, cfg.Scanner.MaxDepth)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".reposcope.yml")
	require.NoError(t, os.WriteFile(path, []byte("scanner: [nope\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidateConfigPath(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, ValidateConfigPath(dir))
	assert.Error(t, ValidateConfigPath(filepath.Join(dir, "absent.yml")))

	file := filepath.Join(dir, "ok.yml")
	require.NoError(t, os.WriteFile(file, []byte("logger: {}\n"), 0o644))
	assert.NoError(t, ValidateConfigPath(file))
}

func TestSetThen(t *testing.T) {
	assert.Equal(t, "fallback", SetThen("", "fallback"))
	assert.Equal(t, "value", SetThen("value", "fallback"))
	assert.Equal(t, 42, SetThen(0, 42))
	assert.Equal(t, []string{"a"}, SetThen(nil, []string{"a"}))
	assert.Equal(t, []string{"b"}, SetThen([]string{"b"}, []string{"a"}))
}
