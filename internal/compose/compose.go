// Package compose discovers containers declared in docker-compose files and
// classifies database services by image name.
package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	yaml "gopkg.in/yaml.v2"

	"github.com/reposcope/reposcope/internal/findings"
)

// Service is one container declared in a compose file.
type Service struct {
	Name      string
	Image     string
	Build     string
	Ports     []string
	DependsOn []string
}

// composeFileNames are checked at the scan root, first hit wins.
var composeFileNames = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// databaseImages classifies services by image name prefix.
var databaseImages = map[string]string{
	"postgres":      "PostgreSQL",
	"mysql":         "MySQL",
	"mariadb":       "MySQL",
	"mongo":         "MongoDB",
	"redis":         "Redis",
	"elasticsearch": "Elasticsearch",
}

// workerHints mark background-job services by service or image name.
var workerHints = []string{"worker", "celery", "sidekiq", "consumer", "beat"}

type composeDoc struct {
	Services map[string]composeService `yaml:"services"`
}

type composeService struct {
	Image     string        `yaml:"image"`
	Build     interface{}   `yaml:"build"`
	Ports     []interface{} `yaml:"ports"`
	DependsOn interface{}   `yaml:"depends_on"`
}

// Discover reads the compose file at root, records container and database
// findings, and returns the declared services for diagram rendering. A
// missing compose file is normal; a malformed one becomes a skip entry.
func Discover(root string, collector *findings.Collector, logger hclog.Logger) []Service {
	name, data, ok := readComposeFile(root)
	if !ok {
		return nil
	}

	var doc composeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		collector.Skip(name, "invalid compose file: "+err.Error())
		return nil
	}

	serviceNames := make([]string, 0, len(doc.Services))
	for svcName := range doc.Services {
		serviceNames = append(serviceNames, svcName)
	}
	sort.Strings(serviceNames)

	var services []Service
	for _, svcName := range serviceNames {
		raw := doc.Services[svcName]
		svc := Service{
			Name:      svcName,
			Image:     raw.Image,
			Build:     buildContext(raw.Build),
			Ports:     stringify(raw.Ports),
			DependsOn: dependsOn(raw.DependsOn),
		}
		services = append(services, svc)

		value := svc.Name
		if svc.Image != "" {
			value = fmt.Sprintf("%s (%s)", svc.Name, svc.Image)
		} else if svc.Build != "" {
			value = fmt.Sprintf("%s (build: %s)", svc.Name, svc.Build)
		}
		collector.Add(findings.Finding{
			Category:   findings.CategoryContainer,
			Value:      value,
			SourcePath: name,
			LineNumber: 1,
			Confidence: findings.ConfidenceHigh,
		}, false)

		if display, ok := classifyImage(svc.Image); ok {
			collector.Add(findings.Finding{
				Category:   findings.CategoryDatabase,
				Value:      display,
				SourcePath: name,
				LineNumber: 1,
				Confidence: findings.ConfidenceHigh,
			}, true)
		}

		if isWorker(svc.Name, svc.Image) {
			collector.Add(findings.Finding{
				Category:   findings.CategoryWorker,
				Value:      svc.Name,
				SourcePath: name,
				LineNumber: 1,
				Confidence: findings.ConfidenceMedium,
			}, false)
		}
	}

	logger.Debug("compose discovery complete", "file", name, "services", len(services))
	return services
}

func readComposeFile(root string) (string, []byte, bool) {
	for _, name := range composeFileNames {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err == nil {
			return name, data, true
		}
	}
	return "", nil, false
}

func isWorker(name, image string) bool {
	haystack := strings.ToLower(name + " " + image)
	for _, hint := range workerHints {
		if strings.Contains(haystack, hint) {
			return true
		}
	}
	return false
}

func classifyImage(image string) (string, bool) {
	if image == "" {
		return "", false
	}
	base := image
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.Index(base, ":"); idx >= 0 {
		base = base[:idx]
	}
	for prefix, display := range databaseImages {
		if strings.HasPrefix(base, prefix) {
			return display, true
		}
	}
	return "", false
}

// buildContext normalizes the two compose build forms: a plain string
// context and a mapping with a context key.
func buildContext(v interface{}) string {
	switch b := v.(type) {
	case string:
		return b
	case map[interface{}]interface{}:
		if ctx, ok := b["context"].(string); ok {
			return ctx
		}
	}
	return ""
}

// dependsOn normalizes the list and mapping forms of depends_on.
func dependsOn(v interface{}) []string {
	var names []string
	switch d := v.(type) {
	case []interface{}:
		for _, item := range d {
			names = append(names, fmt.Sprint(item))
		}
	case map[interface{}]interface{}:
		for key := range d {
			names = append(names, fmt.Sprint(key))
		}
		sort.Strings(names)
	}
	return names
}

func stringify(items []interface{}) []string {
	var out []string
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	return out
}
