package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillDefaults_InsertsMissingFields(t *testing.T) {
	settings := testSettings(t)

	m, err := New(settings)
	require.NoError(t, err)

	for _, field := range []string{
		"currently_under_test",
		"custom_pyfunceble_config",
		"days_until_next_test",
		"finish_datetime",
		"finish_timestamp",
		"last_download_datetime",
		"last_download_timestamp",
		"latest_part_finish_datetime",
		"latest_part_finish_timestamp",
		"latest_part_start_datetime",
		"latest_part_start_timestamp",
		"name",
		"repo",
		"platform_container_name",
		"platform_description",
		"own_management",
		"ping",
		"ping_enabled",
		"raw_link",
		"start_datetime",
		"start_timestamp",
		"live_update",
		"platform_container_id",
		"platform_remote_source_id",
		"platform_optout",
	} {
		_, ok := m.content[field]
		assert.True(t, ok, "field %q missing after FillDefaults", field)
	}

	days, err := m.Get("days_until_next_test")
	require.NoError(t, err)
	assert.Equal(t, float64(2), days)

	liveUpdate, err := m.Get("live_update")
	require.NoError(t, err)
	assert.Equal(t, true, liveUpdate)
}

func TestFillDefaults_DoesNotOverwriteExistingValues(t *testing.T) {
	settings := testSettings(t)
	writeInfoFile(t, settings, map[string]any{
		"days_until_next_test": float64(7),
		"live_update":          false,
	})

	m, err := New(settings)
	require.NoError(t, err)

	days, err := m.Get("days_until_next_test")
	require.NoError(t, err)
	assert.Equal(t, float64(7), days)

	liveUpdate, err := m.Get("live_update")
	require.NoError(t, err)
	assert.Equal(t, false, liveUpdate)
}

func TestFillDefaults_DefaultInstantsAreFifteenDaysAgo(t *testing.T) {
	settings := testSettings(t)

	m, err := New(settings)
	require.NoError(t, err)

	value, err := m.Get("start_datetime")
	require.NoError(t, err)
	instant, ok := value.(time.Time)
	require.True(t, ok)

	expected := time.Now().UTC().AddDate(0, 0, -15)
	assert.WithinDuration(t, expected, instant, time.Minute)
}

func TestFillDefaults_TimestampDefaultsAreInstants(t *testing.T) {
	settings := testSettings(t)

	m, err := New(settings)
	require.NoError(t, err)

	for _, field := range timestampFields {
		value, err := m.Get(field)
		require.NoError(t, err)
		instant, ok := value.(time.Time)
		require.True(t, ok, "field %q defaulted as %T, want time.Time", field, value)

		expected := time.Now().UTC().AddDate(0, 0, -15)
		assert.WithinDuration(t, expected, instant, time.Minute)
	}
}

func TestFillDefaults_PlatformOptout(t *testing.T) {
	canonical := testSettings(t)
	m, err := New(canonical)
	require.NoError(t, err)

	optout, err := m.Get("platform_optout")
	require.NoError(t, err)
	assert.Equal(t, false, optout)

	external := testSettings(t)
	external.Owner = "funilrys"
	m, err = New(external)
	require.NoError(t, err)

	optout, err = m.Get("platform_optout")
	require.NoError(t, err)
	assert.Equal(t, true, optout)
}

func TestClean_RemovesObsoleteFields(t *testing.T) {
	settings := testSettings(t)
	writeInfoFile(t, settings, map[string]any{
		"arguments":               []any{"--ci"},
		"clean_list_file":         true,
		"clean_original":          false,
		"commit_autosave_message": "autosave",
		"last_test":               float64(0),
		"list_name":               "hosts",
		"stable":                  true,
		"platform_shortname":      "short",
	})

	m, err := New(settings)
	require.NoError(t, err)

	for _, field := range obsoleteFields {
		_, ok := m.content[field]
		assert.False(t, ok, "obsolete field %q still present", field)
	}
}

func TestClean_AbsentFieldsAreNoError(t *testing.T) {
	settings := testSettings(t)
	m, err := New(settings)
	require.NoError(t, err)

	// Clean on an already-clean record must be a no-op.
	m.Clean()
	_, err = m.Get("name")
	assert.NoError(t, err)
}
