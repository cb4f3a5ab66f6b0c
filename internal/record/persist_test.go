package record

import (
	"encoding/json"
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readStored(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var stored map[string]any
	require.NoError(t, json.Unmarshal(data, &stored))
	return stored
}

func TestPersist_SerializationRules(t *testing.T) {
	settings := testSettings(t)
	writeInfoFile(t, settings, map[string]any{
		"start_timestamp":       float64(1700000000),
		"start_datetime":        "2023-11-14T22:13:20Z",
		"platform_container_id": "0b838c5e-68e9-4a5a-9392-41a05006b11d",
	})

	m, err := New(settings)
	require.NoError(t, err)
	require.NoError(t, m.Persist())

	stored := readStored(t, settings.InfoFilePath())

	// Instants under *_timestamp keys serialize to epoch-seconds floats.
	ts, ok := stored["start_timestamp"].(float64)
	require.True(t, ok, "start_timestamp stored as %T", stored["start_timestamp"])
	assert.InDelta(t, 1700000000, ts, 0.001)

	// Instants under *_datetime keys serialize to ISO-8601 text.
	dt, ok := stored["start_datetime"].(string)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339Nano, dt)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000), parsed.Unix())

	// Identifiers serialize to plain strings.
	assert.Equal(t, "0b838c5e-68e9-4a5a-9392-41a05006b11d", stored["platform_container_id"])
}

func TestPersist_PreEpochInstantStoredAsZero(t *testing.T) {
	settings := testSettings(t)
	m, err := New(settings)
	require.NoError(t, err)

	m.Set("finish_timestamp", time.Date(1912, 6, 23, 0, 0, 0, 0, time.UTC))
	require.NoError(t, m.Persist())

	stored := readStored(t, settings.InfoFilePath())
	assert.Equal(t, float64(0), stored["finish_timestamp"])
}

func TestPersist_FarFutureInstantRoundTrips(t *testing.T) {
	settings := testSettings(t)
	// Year 2286: within the accepted epoch range but past the point where
	// nanosecond arithmetic overflows.
	writeInfoFile(t, settings, map[string]any{"start_timestamp": float64(1e10)})

	m, err := New(settings)
	require.NoError(t, err)

	value, err := m.Get("start_timestamp")
	require.NoError(t, err)
	instant, ok := value.(time.Time)
	require.True(t, ok)
	assert.Equal(t, int64(1e10), instant.Unix())

	stored := readStored(t, settings.InfoFilePath())
	ts, ok := stored["start_timestamp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 1e10, ts, 0.001)
}

func TestPersist_UnknownFieldsPreservedVerbatim(t *testing.T) {
	settings := testSettings(t)
	writeInfoFile(t, settings, map[string]any{
		"some_future_field": map[string]any{"nested": []any{"kept", "as-is"}},
	})

	m, err := New(settings)
	require.NoError(t, err)
	require.NoError(t, m.Persist())

	stored := readStored(t, settings.InfoFilePath())
	assert.Equal(t, map[string]any{"nested": []any{"kept", "as-is"}}, stored["some_future_field"])
}

func TestPersist_RoundTrip(t *testing.T) {
	settings := testSettings(t)
	writeInfoFile(t, settings, map[string]any{
		"ping":                  []any{"alice"},
		"ping_enabled":          true,
		"start_timestamp":       float64(1700000000.25),
		"start_datetime":        "2023-11-14T22:13:20.25Z",
		"platform_container_id": "0b838c5e-68e9-4a5a-9392-41a05006b11d",
		"raw_link":              "https://example.org/hosts.txt",
	})

	first, err := New(settings)
	require.NoError(t, err)

	// A fresh manager over the persisted file must reproduce the same
	// logical record.
	second, err := New(settings)
	require.NoError(t, err)

	firstStart, err := first.Get("start_timestamp")
	require.NoError(t, err)
	secondStart, err := second.Get("start_timestamp")
	require.NoError(t, err)
	delta := firstStart.(time.Time).Sub(secondStart.(time.Time))
	assert.Less(t, math.Abs(delta.Seconds()), 1.0)

	firstID, err := first.Get("platform_container_id")
	require.NoError(t, err)
	secondID, err := second.Get("platform_container_id")
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	firstPing, err := first.Get("ping")
	require.NoError(t, err)
	secondPing, err := second.Get("ping")
	require.NoError(t, err)
	assert.Equal(t, firstPing, secondPing)

	link, err := second.Get("raw_link")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/hosts.txt", link)
}

func TestPersist_DoesNotMutateInMemoryState(t *testing.T) {
	settings := testSettings(t)
	writeInfoFile(t, settings, map[string]any{"start_timestamp": float64(1700000000)})

	m, err := New(settings)
	require.NoError(t, err)

	before, err := m.Get("start_timestamp")
	require.NoError(t, err)
	require.IsType(t, time.Time{}, before)

	require.NoError(t, m.Persist())

	after, err := m.Get("start_timestamp")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
