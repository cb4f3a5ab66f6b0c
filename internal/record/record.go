// Package record manages the JSON-backed administration record (info.json)
// of a hosts-list monitoring project: it loads the stored state, migrates
// legacy field values into their canonical forms, fills missing fields with
// defaults, drops obsolete fields and persists the result.
package record

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dead-hosts/launcher/internal/config"
	"github.com/dead-hosts/launcher/internal/logfields"
	"github.com/dead-hosts/launcher/internal/storage"
)

// Manager owns the administration record for one project.
type Manager struct {
	settings *config.Settings
	infoFile *storage.File
	content  map[string]any

	configDir string
}

// New loads the administration file (or starts empty when absent), runs the
// full normalization pipeline, persists the result and resolves the
// PyFunceble configuration directory.
func New(settings *config.Settings) (*Manager, error) {
	m := &Manager{
		settings: settings,
		infoFile: storage.NewFile(settings.InfoFilePath()),
	}

	if err := m.load(); err != nil {
		return nil, err
	}

	slog.Debug("Administration file loaded",
		logfields.Path(m.infoFile.Path()),
		slog.Bool("existed", m.infoFile.Exists()),
		slog.Int("fields", len(m.content)))

	if err := m.Update(); err != nil {
		return nil, err
	}
	m.FillDefaults()
	m.Clean()
	if err := m.Persist(); err != nil {
		return nil, err
	}

	if optout, _ := m.content["platform_optout"].(bool); optout {
		m.configDir = settings.PyFuncebleConfigDir
	} else {
		m.configDir = filepath.Join(settings.TempDir, "pyfunceble", "config")
	}
	if err := os.MkdirAll(m.configDir, 0o750); err != nil {
		return nil, err
	}

	slog.Debug("Resolved PyFunceble configuration directory",
		logfields.ConfigDir(m.configDir))

	return m, nil
}

// Get returns the current value of a field.
func (m *Manager) Get(field string) (any, error) {
	value, ok := m.content[field]
	if !ok {
		return nil, &FieldNotFoundError{Field: field}
	}
	return value, nil
}

// Set inserts or overwrites a field. No type discipline is enforced here;
// values are normalized by the next Update pass.
func (m *Manager) Set(field string, value any) {
	m.content[field] = value
}

// ConfigDir returns the resolved PyFunceble configuration directory.
func (m *Manager) ConfigDir() string {
	return m.configDir
}

// InfoFilePath returns the administration file path.
func (m *Manager) InfoFilePath() string {
	return m.infoFile.Path()
}

// GetPingMentionText returns the space-joined mention list when pinging is
// enabled and at least one mention is configured, otherwise an empty string.
func (m *Manager) GetPingMentionText() string {
	enabled, _ := m.content["ping_enabled"].(bool)
	if !enabled {
		return ""
	}

	entries, ok := m.content["ping"].([]any)
	if !ok || len(entries) == 0 {
		return ""
	}

	mentions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if s, ok := entry.(string); ok {
			mentions = append(mentions, s)
		}
	}
	if len(mentions) == 0 {
		return ""
	}
	return strings.Join(mentions, " ")
}

// Close performs the final flush of the record. Callers must invoke it on
// every exit path; there is no finalizer-based save.
func (m *Manager) Close() error {
	return m.Persist()
}
