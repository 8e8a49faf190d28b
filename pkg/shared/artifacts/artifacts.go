package artifacts

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/reposcope/reposcope/pkg/shared/config"
	"github.com/reposcope/reposcope/pkg/shared/files"
)

// GetArtifactName builds an artifact file name.
// Example: scan_2025-09-15T08:28:46Z.reposcope-artifact.
func GetArtifactName(command string, t time.Time) string {
	ts := t.UTC().Format(time.RFC3339)
	return fmt.Sprintf("%s_%s.reposcope-artifact", command, ts)
}

// SaveArtifactJSON writes the provided result to <artifacts_dir>/<base>.json
// and returns the full path.
func SaveArtifactJSON(cfg *config.Config, logger hclog.Logger, command string, result interface{}) (string, error) {
	dir := cfg.Scanner.ArtifactsDir
	base := GetArtifactName(command, time.Now())
	path := filepath.Join(dir, base+".json")

	resultData, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		return path, fmt.Errorf("error marshaling the result data: %w", err)
	}

	if err := files.CreateFolderIfNotExists(dir); err != nil {
		return path, err
	}
	if err := files.WriteJsonFile(path, resultData); err != nil {
		return path, fmt.Errorf("error writing result to artifact file: %w", err)
	}
	logger.Info("artifact saved to file", "path", path)

	return path, nil
}
