package record

import (
	"log/slog"
	"time"

	"github.com/dead-hosts/launcher/internal/config"
	"github.com/dead-hosts/launcher/internal/logfields"
)

// obsoleteFields were used by older schema versions and are removed whenever
// they are still present.
var obsoleteFields = []string{
	"arguments",
	"clean_list_file",
	"clean_original",
	"commit_autosave_message",
	"last_test",
	"list_name",
	"stable",
	"platform_shortname",
}

// FillDefaults inserts the default value of every schema field that is absent
// from the record. Default instants are 15 days before now (UTC), so a fresh
// record is immediately due for testing.
func (m *Manager) FillDefaults() {
	// Timestamp defaults are stored as instants, the same canonical form
	// Update produces; Persist turns them back into epoch-seconds floats.
	defaultInstant := time.Now().UTC().AddDate(0, 0, -15)

	defaults := map[string]any{
		"currently_under_test":         false,
		"custom_pyfunceble_config":     map[string]any{},
		"days_until_next_test":         float64(2),
		"finish_datetime":              defaultInstant,
		"finish_timestamp":             defaultInstant,
		"last_download_datetime":       defaultInstant,
		"last_download_timestamp":      defaultInstant,
		"latest_part_finish_datetime":  defaultInstant,
		"latest_part_finish_timestamp": defaultInstant,
		"latest_part_start_datetime":   defaultInstant,
		"latest_part_start_timestamp":  defaultInstant,
		"name":                         m.settings.Name,
		"repo":                         m.settings.Repo(),
		"platform_container_name":      ContainerNameFromProjectName(m.settings.Name),
		"platform_description":         "Imported from Dead-Hosts legacy infrastructure.",
		"own_management":               false,
		"ping":                         []any{},
		"ping_enabled":                 false,
		"raw_link":                     nil,
		"start_datetime":               defaultInstant,
		"start_timestamp":              defaultInstant,
		"live_update":                  true,
		"platform_container_id":        nil,
		"platform_remote_source_id":    nil,
		"platform_optout":              m.settings.Owner != config.CanonicalOwner,
	}

	for field, value := range defaults {
		if _, ok := m.content[field]; ok {
			continue
		}
		m.content[field] = value
		slog.Debug("Created missing field with default value", logfields.Field(field))
	}
}

// Clean removes fields that are no longer part of the schema.
func (m *Manager) Clean() {
	for _, field := range obsoleteFields {
		if _, ok := m.content[field]; !ok {
			continue
		}
		delete(m.content, field)
		slog.Debug("Deleted obsolete field", logfields.Field(field))
	}
}
