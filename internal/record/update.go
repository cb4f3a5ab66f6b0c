package record

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dead-hosts/launcher/internal/logfields"
	"github.com/dead-hosts/launcher/internal/storage"
	"github.com/dead-hosts/launcher/internal/util/maps"
)

// legacySiblingFiles are files older schema versions used to create next to
// the administration file. They are deleted whenever they still exist.
var legacySiblingFiles = []string{
	".administrators",
	"update_me.py",
	"admin.py",
}

var boolCoercedFields = []string{
	"currently_under_test",
	"ping_enabled",
}

// floatCoercedFields also covers last_download_timestamp. The legacy Python
// launcher dropped it from this list through a missing comma between two
// string literals; the field is a timestamp like its siblings and is coerced
// the same way.
var floatCoercedFields = []string{
	"days_until_next_test",
	"finish_timestamp",
	"last_download_timestamp",
	"latest_part_finish_timestamp",
	"latest_part_start_timestamp",
	"start_timestamp",
}

var timestampFields = []string{
	"finish_timestamp",
	"last_download_timestamp",
	"latest_part_finish_timestamp",
	"latest_part_start_timestamp",
	"start_timestamp",
}

var datetimeFields = []string{
	"finish_datetime",
	"last_download_datetime",
	"latest_part_finish_datetime",
	"latest_part_start_datetime",
	"start_datetime",
}

var identifierFields = []string{
	"platform_container_id",
	"platform_remote_source_id",
}

var epochZero = time.Unix(0, 0).UTC()

// maxEpochSeconds is 9999-12-31T23:59:59Z; anything outside [0, max] is
// treated as out of range and substituted with the epoch-zero instant.
const maxEpochSeconds = 253402300799

// Update runs the migration/normalization pass. It is applied on every
// construction and is idempotent: already-canonical values pass through
// unchanged.
func (m *Manager) Update() error {
	m.content["name"] = m.settings.Name

	toDelete := make([]*storage.File, 0, len(legacySiblingFiles)+1)
	for _, name := range legacySiblingFiles {
		toDelete = append(toDelete, storage.NewFile(filepath.Join(m.settings.WorkspaceDir, name)))
	}
	if listName, ok := m.content["list_name"].(string); ok && listName != "" {
		toDelete = append(toDelete, storage.NewFile(filepath.Join(m.settings.WorkspaceDir, listName)))
	}

	if raw, ok := m.content["ping"]; ok {
		m.content["ping"] = prefixMentions(raw)
	}

	if link, ok := m.content["raw_link"].(string); ok && link == "" {
		m.content["raw_link"] = nil
		slog.Debug("Cleared empty raw_link, empty string is not a valid link")
	}

	if raw, ok := m.content["custom_pyfunceble_config"]; ok {
		m.content["custom_pyfunceble_config"] = normalizeCustomConfig(raw)
	}

	for _, field := range boolCoercedFields {
		value, ok := m.content[field]
		if !ok {
			continue
		}
		if _, isBool := value.(bool); isBool {
			continue
		}
		coerced, err := boolFromInt(field, value)
		if err != nil {
			return err
		}
		m.content[field] = coerced
		slog.Debug("Coerced field to boolean", logfields.Field(field))
	}

	for _, field := range floatCoercedFields {
		value, ok := m.content[field]
		if !ok {
			continue
		}
		if _, isFloat := value.(float64); isFloat {
			continue
		}
		if _, isInstant := value.(time.Time); isInstant {
			// Already canonicalized by a previous pass.
			continue
		}
		coerced, err := floatValue(field, value)
		if err != nil {
			return err
		}
		m.content[field] = coerced
		slog.Debug("Coerced field to float", logfields.Field(field))
	}

	for _, field := range timestampFields {
		value, ok := m.content[field]
		if !ok {
			continue
		}
		if _, isInstant := value.(time.Time); isInstant {
			continue
		}
		seconds, _ := value.(float64)
		m.content[field] = instantFromEpoch(seconds)
	}

	for _, field := range datetimeFields {
		value, ok := m.content[field]
		if !ok {
			continue
		}
		if _, isInstant := value.(time.Time); isInstant {
			continue
		}
		if isTruthy(value) {
			m.content[field] = instantFromISO(value)
		} else {
			m.content[field] = epochZero
		}
	}

	for _, field := range identifierFields {
		value, ok := m.content[field]
		if !ok {
			continue
		}
		if _, isID := value.(uuid.UUID); isID {
			continue
		}
		if !isTruthy(value) {
			m.content[field] = nil
			continue
		}
		text, ok := value.(string)
		if !ok {
			return &MalformedRecordError{Field: field, Cause: fmt.Errorf("expected identifier string, got %T", value)}
		}
		id, err := uuid.Parse(text)
		if err != nil {
			return &MalformedRecordError{Field: field, Cause: err}
		}
		m.content[field] = id
		slog.Debug("Parsed stored identifier", logfields.Field(field))
	}

	m.content["repo"] = m.settings.Repo()

	name, _ := m.content["name"].(string)
	m.content["platform_container_name"] = ContainerNameFromProjectName(name)

	for _, file := range toDelete {
		if !file.Exists() {
			continue
		}
		if err := file.Delete(); err != nil {
			return err
		}
		slog.Debug("Deleted legacy sibling file", logfields.Path(file.Path()))
	}

	return nil
}

// ContainerNameFromProjectName derives the platform container name from the
// project name: lower-cased, spaces replaced with dashes, brackets, parens
// and dots removed, truncated to 128 characters.
func ContainerNameFromProjectName(name string) string {
	replacer := strings.NewReplacer(
		" ", "-",
		"[", "",
		"]", "",
		"(", "",
		")", "",
		".", "",
	)
	out := replacer.Replace(strings.ToLower(name))
	if runes := []rune(out); len(runes) > 128 {
		out = string(runes[:128])
	}
	return out
}

// prefixMentions guarantees every ping entry carries a leading "@" while
// preserving order. Entries already prefixed pass through unchanged.
func prefixMentions(raw any) []any {
	var entries []any
	switch v := raw.(type) {
	case []any:
		entries = v
	case []string:
		entries = make([]any, len(v))
		for i, s := range v {
			entries[i] = s
		}
	default:
		return []any{}
	}

	out := make([]any, 0, len(entries))
	for _, entry := range entries {
		mention, ok := entry.(string)
		if !ok {
			mention = fmt.Sprint(entry)
		}
		if !strings.HasPrefix(mention, "@") {
			mention = "@" + mention
		}
		out = append(out, mention)
	}
	return out
}

// normalizeCustomConfig guarantees custom_pyfunceble_config is a flat mapping.
func normalizeCustomConfig(raw any) map[string]any {
	if !isTruthy(raw) {
		return map[string]any{}
	}
	mapping, ok := maps.ToStringMap(raw)
	if !ok {
		return map[string]any{}
	}
	return maps.Flatten(mapping)
}

// isTruthy mirrors the loose truth semantics of the stored JSON values.
func isTruthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case int:
		return v != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

// boolFromInt coerces a stored value through integer truth.
func boolFromInt(field string, value any) (bool, error) {
	switch v := value.(type) {
	case float64:
		return int64(v) != 0, nil
	case int:
		return v != 0, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return false, &CoercionError{Field: field, Value: value, Cause: err}
		}
		return n != 0, nil
	default:
		return false, &CoercionError{Field: field, Value: value}
	}
}

// floatValue coerces a stored value to a floating-point number.
func floatValue(field string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, &CoercionError{Field: field, Value: value, Cause: err}
		}
		return f, nil
	default:
		return 0, &CoercionError{Field: field, Value: value}
	}
}

// instantFromEpoch interprets epoch seconds (UTC). Values outside the
// representable date range collapse to the epoch-zero instant.
func instantFromEpoch(seconds float64) time.Time {
	if seconds < 0 || seconds > maxEpochSeconds {
		return epochZero
	}
	sec := int64(seconds)
	nsec := int64((seconds - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}

var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// instantFromISO parses ISO-8601 text. Unparseable or non-string values
// collapse to the epoch-zero instant.
func instantFromISO(value any) time.Time {
	text, ok := value.(string)
	if !ok {
		return epochZero
	}
	for _, layout := range datetimeLayouts {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts.UTC()
		}
	}
	return epochZero
}
