package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultZones(t *testing.T) {
	zones := DefaultZones()

	z, ok := zones.Lookup("Europe/Stockholm")
	require.True(t, ok)
	assert.Equal(t, Zone{Country: "SE", City: "Stockholm"}, z)

	_, ok = zones.Lookup("Mars/Olympus_Mons")
	assert.False(t, ok)
	_, ok = zones.Lookup("")
	assert.False(t, ok)

	tz, ok := zones.DefaultTimezone("us")
	require.True(t, ok)
	assert.Equal(t, "America/New_York", tz)

	tz, ok = zones.DefaultTimezone("SA")
	require.True(t, ok)
	assert.Equal(t, "Asia/Riyadh", tz)
}

func TestLoadZones_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.yaml")
	doc := `
zones:
  Europe/Stockholm:
    country: se
    city: Göteborg
  Asia/Tashkent:
    country: UZ
    city: Tashkent
defaults:
  us: America/Chicago
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	zones, err := LoadZones(path)
	require.NoError(t, err)

	z, ok := zones.Lookup("Europe/Stockholm")
	require.True(t, ok)
	assert.Equal(t, Zone{Country: "SE", City: "Göteborg"}, z)

	z, ok = zones.Lookup("Asia/Tashkent")
	require.True(t, ok)
	assert.Equal(t, "UZ", z.Country)

	tz, _ := zones.DefaultTimezone("UZ")
	assert.Equal(t, "Asia/Tashkent", tz)
	tz, _ = zones.DefaultTimezone("US")
	assert.Equal(t, "America/Chicago", tz)

	_, ok = zones.Lookup("Asia/Riyadh")
	assert.True(t, ok, "built-in entries survive an override file")
}

func TestLoadZones_Errors(t *testing.T) {
	_, err := LoadZones(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zones: [unclosed"), 0o644))
	_, err = LoadZones(path)
	require.Error(t, err)

	zones, err := LoadZones("")
	require.NoError(t, err)
	_, ok := zones.Lookup("Asia/Riyadh")
	assert.True(t, ok)
}
