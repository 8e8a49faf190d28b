package config

// DefaultMaxFileSizeBytes bounds how much of any single file is read into
// memory. Files above the bound are skipped and reported, never fatal.
const DefaultMaxFileSizeBytes int64 = 2 * 1024 * 1024

// DefaultMaxDepth bounds directory traversal depth relative to the scan root.
const DefaultMaxDepth = 32

// DefaultConfigFile is the optional per-project configuration file name.
const DefaultConfigFile = ".reposcope.yml"

// DefaultExcludeDirs returns the directory names that are never descended
// into. Dependency and build trees are pruned both for performance and to
// avoid false positives inside vendored code.
func DefaultExcludeDirs() []string {
	return []string{
		"node_modules",
		".git",
		"venv",
		".venv",
		"__pycache__",
		"dist",
		"build",
		"vendor",
		"coverage",
	}
}

// DefaultIncludeExtensions returns the file suffixes read by default.
func DefaultIncludeExtensions() []string {
	return []string{
		".json", ".py", ".ts", ".tsx", ".js", ".jsx",
		".go", ".toml", ".yml", ".yaml", ".txt", ".env",
	}
}

// DefaultIncludeNames returns base names read regardless of extension,
// covering manifests and config files that carry no recognized suffix.
func DefaultIncludeNames() []string {
	return []string{
		"Dockerfile",
		".env.example",
		".env.sample",
		".env.template",
	}
}
