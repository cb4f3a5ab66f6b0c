package record

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dead-hosts/launcher/internal/util/maps"
)

// load reads the administration file into the record. A missing file yields
// an empty record; invalid or non-object JSON is a MalformedRecordError.
func (m *Manager) load() error {
	if !m.infoFile.Exists() {
		m.content = map[string]any{}
		return nil
	}

	data, err := m.infoFile.Read()
	if err != nil {
		return err
	}

	var content map[string]any
	if err := json.Unmarshal(data, &content); err != nil {
		return &MalformedRecordError{Path: m.infoFile.Path(), Cause: err}
	}
	if content == nil {
		return &MalformedRecordError{Path: m.infoFile.Path(), Cause: errNotAnObject}
	}

	m.content = content
	return nil
}

var errNotAnObject = jsonTypeError("administration file does not hold a JSON object")

type jsonTypeError string

func (e jsonTypeError) Error() string { return string(e) }

// Persist serializes the record back to the administration file. Instants
// stored under *_timestamp keys become epoch-seconds floats, instants under
// *_datetime keys become ISO-8601 strings, identifiers become plain strings
// and every other value is deep-copied structurally. In-memory state is
// untouched.
func (m *Manager) Persist() error {
	out := make(map[string]any, len(m.content))

	for field, value := range m.content {
		switch {
		case strings.HasSuffix(field, "_timestamp"):
			if instant, ok := value.(time.Time); ok {
				out[field] = epochSeconds(instant)
				continue
			}
			out[field] = maps.DeepCopy(value)
		case strings.HasSuffix(field, "_datetime"):
			if instant, ok := value.(time.Time); ok {
				out[field] = instant.UTC().Format(time.RFC3339Nano)
				continue
			}
			out[field] = maps.DeepCopy(value)
		default:
			if id, ok := value.(uuid.UUID); ok {
				out[field] = id.String()
				continue
			}
			out[field] = maps.DeepCopy(value)
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	return m.infoFile.Write(append(data, '\n'))
}

// epochSeconds converts an instant to epoch seconds, clamping pre-epoch
// instants to zero. Whole seconds and the sub-second fraction are combined
// separately; UnixNano would overflow for instants past the year 2262.
func epochSeconds(instant time.Time) float64 {
	if instant.Before(epochZero) {
		return 0
	}
	return float64(instant.Unix()) + float64(instant.Nanosecond())/float64(time.Second)
}
