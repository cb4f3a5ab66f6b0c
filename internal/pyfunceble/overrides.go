// Package pyfunceble materializes the project's custom PyFunceble
// configuration overrides into the resolved configuration directory.
package pyfunceble

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dead-hosts/launcher/internal/logfields"
	"github.com/dead-hosts/launcher/internal/storage"
)

// OverwriteFilename is the file PyFunceble reads for configuration overrides.
const OverwriteFilename = ".PyFunceble.overwrite.yaml"

// WriteOverrides writes the flattened custom configuration as YAML into the
// configuration directory and returns the written path. An empty mapping is
// written as-is so stale overrides from a previous run do not survive.
func WriteOverrides(configDir string, overrides map[string]any) (string, error) {
	if overrides == nil {
		overrides = map[string]any{}
	}

	data, err := yaml.Marshal(overrides)
	if err != nil {
		return "", fmt.Errorf("failed to marshal configuration overrides: %w", err)
	}

	path := filepath.Join(configDir, OverwriteFilename)
	if err := storage.NewFile(path).Write(data); err != nil {
		return "", err
	}

	slog.Debug("Wrote PyFunceble configuration overrides",
		logfields.Path(path),
		slog.Int("entries", len(overrides)))
	return path, nil
}
