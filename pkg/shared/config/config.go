package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Config holds the application configuration loaded from an optional YAML file.
type Config struct {
	Logger  Logger  `yaml:"logger"`
	Scanner Scanner `yaml:"scanner"`
}

// Logger holds logging configuration.
type Logger struct {
	Level string `yaml:"level"`
}

// Scanner holds default traversal settings, overridable per invocation.
type Scanner struct {
	ExcludeDirs       []string `yaml:"exclude_dirs"`
	IncludeExtensions []string `yaml:"include_extensions"`
	IncludeNames      []string `yaml:"include_names"`
	MaxFileSizeBytes  int64    `yaml:"max_file_size_bytes"`
	MaxDepth          int      `yaml:"max_depth"`
	ArtifactsDir      string   `yaml:"artifacts_dir"`
}

// ValidateConfigPath checks that the given path points to a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the configuration file and fills unset fields with
// defaults. A missing file is not an error: the scanner has no required
// configuration and runs with built-in defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		applyDefaults(config)
		return config, nil
	}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config %q: %w", configPath, err)
	}
	applyDefaults(config)

	return config, nil
}

func applyDefaults(cfg *Config) {
	cfg.Logger.Level = SetThen(cfg.Logger.Level, "INFO")
	cfg.Scanner.ExcludeDirs = SetThen(cfg.Scanner.ExcludeDirs, DefaultExcludeDirs())
	cfg.Scanner.IncludeExtensions = SetThen(cfg.Scanner.IncludeExtensions, DefaultIncludeExtensions())
	cfg.Scanner.IncludeNames = SetThen(cfg.Scanner.IncludeNames, DefaultIncludeNames())
	cfg.Scanner.MaxFileSizeBytes = SetThen(cfg.Scanner.MaxFileSizeBytes, DefaultMaxFileSizeBytes)
	cfg.Scanner.MaxDepth = SetThen(cfg.Scanner.MaxDepth, DefaultMaxDepth)
	cfg.Scanner.ArtifactsDir = SetThen(cfg.Scanner.ArtifactsDir, ".")
}
