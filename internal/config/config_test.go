package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

// tempConfigPath returns a path to a config file inside a temp directory.
func tempConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.json")
}

// --- Defaults ---

func TestDefaults(t *testing.T) {
	d := Defaults()

	if d.Method == nil || *d.Method != -1 {
		t.Errorf("Defaults().Method = %v, want -1", d.Method)
	}
	if d.School == nil || *d.School != -1 {
		t.Errorf("Defaults().School = %v, want -1", d.School)
	}
	if d.TimeFormat != "24h" {
		t.Errorf("Defaults().TimeFormat = %q, want %q", d.TimeFormat, "24h")
	}
	if d.HasLocation() {
		t.Error("Defaults() should not carry a location")
	}
	if d.Offsets != (prayer.Offsets{}) {
		t.Errorf("Defaults().Offsets = %+v, want zero", d.Offsets)
	}
}

// --- Dir and Path with XDG ---

func TestDir_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-test", "salah-times"); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestDir_FallbackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/tmp/fake-home")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if want := filepath.Join("/tmp/fake-home", ".config", "salah-times"); dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

func TestPath_XDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	path, err := Path()
	if err != nil {
		t.Fatalf("Path() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-test", "salah-times", "config.json"); path != want {
		t.Errorf("Path() = %q, want %q", path, want)
	}
}

// --- LoadFrom ---

func TestLoadFrom_NonExistentFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg == nil || cfg.City != "" || cfg.Method != nil {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	path := tempConfigPath(t)
	data := `{
  "city": "Makkah",
  "country_code": "SA",
  "timezone": "Asia/Riyadh",
  "method": 4,
  "school": 0,
  "offsets": {"fajr": 10, "isha": -5},
  "summer_hour": true
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.City != "Makkah" || cfg.CountryCode != "SA" || cfg.Timezone != "Asia/Riyadh" {
		t.Errorf("unexpected location fields: %+v", cfg)
	}
	if cfg.Method == nil || *cfg.Method != 4 {
		t.Errorf("Method = %v, want 4", cfg.Method)
	}
	if cfg.School == nil || *cfg.School != 0 {
		t.Errorf("School = %v, want 0", cfg.School)
	}
	if cfg.Offsets.Fajr != 10 || cfg.Offsets.Isha != -5 {
		t.Errorf("Offsets = %+v", cfg.Offsets)
	}
	if !cfg.SummerHour {
		t.Error("SummerHour should be true")
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	path := tempConfigPath(t)
	if err := os.WriteFile(path, []byte("{invalid"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

// --- SaveTo / ResetAt ---

func TestSaveTo_CreatesDirectoryAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")
	cfg := &Config{City: "Malmö", CountryCode: "SE"}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("saved config should end with a newline")
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	if loaded.City != "Malmö" {
		t.Errorf("City = %q, want %q", loaded.City, "Malmö")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := tempConfigPath(t)
	method, school := 3, 1
	orig := &Config{
		City:          "Stockholm",
		CountryCode:   "SE",
		CityCode:      "SE.STOCKHOLM",
		Timezone:      "Europe/Stockholm",
		Latitude:      59.3293,
		Longitude:     18.0686,
		Method:        &method,
		School:        &school,
		Offsets:       prayer.Offsets{Fajr: 2, Dhuhr: -1, Asr: 3, Maghrib: 4, Isha: -5},
		ForceHourLess: true,
		TimeFormat:    "12h",
		Prayers:       "Fajr,Isha",
		DatasetDir:    "/srv/data",
		ZonesFile:     "/etc/salah/zones.yaml",
		CacheDir:      "/tmp/cache",
		APIURL:        "http://localhost:9999",
	}

	if err := orig.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}
	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	origJSON, _ := json.Marshal(orig)
	loadedJSON, _ := json.Marshal(loaded)
	if string(origJSON) != string(loadedJSON) {
		t.Errorf("round trip mismatch:\n got %s\nwant %s", loadedJSON, origJSON)
	}
}

func TestResetAt(t *testing.T) {
	path := tempConfigPath(t)
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ResetAt(path); err != nil {
		t.Fatalf("ResetAt() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file should be deleted")
	}
	if err := ResetAt(path); err != nil {
		t.Errorf("ResetAt() on missing file error: %v", err)
	}
}

// --- Set ---

func TestSet_Valid(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(c *Config) bool
	}{
		{"city", "Makkah", func(c *Config) bool { return c.City == "Makkah" }},
		{"country", "Saudi Arabia", func(c *Config) bool { return c.Country == "Saudi Arabia" }},
		{"country_code", "sa", func(c *Config) bool { return c.CountryCode == "SA" }},
		{"country_code", "", func(c *Config) bool { return c.CountryCode == "" }},
		{"city_code", "SA.MAKKAH", func(c *Config) bool { return c.CityCode == "SA.MAKKAH" }},
		{"timezone", "Asia/Riyadh", func(c *Config) bool { return c.Timezone == "Asia/Riyadh" }},
		{"latitude", "21.4225", func(c *Config) bool { return c.Latitude == 21.4225 }},
		{"longitude", "-180", func(c *Config) bool { return c.Longitude == -180 }},
		{"method", "0", func(c *Config) bool { return c.Method != nil && *c.Method == 0 }},
		{"school", "1", func(c *Config) bool { return c.School != nil && *c.School == 1 }},
		{"offset_fajr", "10", func(c *Config) bool { return c.Offsets.Fajr == 10 }},
		{"offset_dhuhr", "-30", func(c *Config) bool { return c.Offsets.Dhuhr == -30 }},
		{"offset_asr", "30", func(c *Config) bool { return c.Offsets.Asr == 30 }},
		{"offset_maghrib", "3", func(c *Config) bool { return c.Offsets.Maghrib == 3 }},
		{"offset_isha", "-5", func(c *Config) bool { return c.Offsets.Isha == -5 }},
		{"summer_hour", "true", func(c *Config) bool { return c.SummerHour }},
		{"force_hour_more", "1", func(c *Config) bool { return c.ForceHourMore }},
		{"force_hour_less", "true", func(c *Config) bool { return c.ForceHourLess }},
		{"time_format", "12h", func(c *Config) bool { return c.TimeFormat == "12h" }},
		{"prayers", "fajr, Maghrib,ISHA", func(c *Config) bool { return c.Prayers == "fajr, Maghrib,ISHA" }},
		{"dataset_dir", "/srv/data", func(c *Config) bool { return c.DatasetDir == "/srv/data" }},
		{"zones_file", "zones.yaml", func(c *Config) bool { return c.ZonesFile == "zones.yaml" }},
		{"cache_dir", "/tmp/c", func(c *Config) bool { return c.CacheDir == "/tmp/c" }},
		{"api_url", "http://x", func(c *Config) bool { return c.APIURL == "http://x" }},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &Config{}
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) error: %v", tt.key, tt.value, err)
			}
			if !tt.check(cfg) {
				t.Errorf("Set(%q, %q) did not apply: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestSet_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"country_code", "SAU"},
		{"latitude", "abc"},
		{"latitude", "91"},
		{"longitude", "181"},
		{"method", "x"},
		{"method", "24"},
		{"method", "-1"},
		{"school", "2"},
		{"offset_fajr", "31"},
		{"offset_isha", "-31"},
		{"offset_isha", "ten"},
		{"offset_sunrise", "5"},
		{"summer_hour", "maybe"},
		{"time_format", "military"},
		{"prayers", "Fajr,Midnight"},
		{"nonexistent", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := &Config{}
			if err := cfg.Set(tt.key, tt.value); err == nil {
				t.Errorf("Set(%q, %q) expected error, got nil", tt.key, tt.value)
			}
		})
	}
}

// --- Get ---

func TestGet_AllKeys(t *testing.T) {
	cfg := &Config{}
	for _, kv := range [][2]string{
		{"city", "Makkah"},
		{"country_code", "SA"},
		{"latitude", "21.4225"},
		{"method", "4"},
		{"offset_fajr", "-7"},
		{"force_hour_more", "true"},
		{"time_format", "12h"},
		{"api_url", "http://x"},
	} {
		if err := cfg.Set(kv[0], kv[1]); err != nil {
			t.Fatalf("Set(%q) error: %v", kv[0], err)
		}
		got, err := cfg.Get(kv[0])
		if err != nil {
			t.Fatalf("Get(%q) error: %v", kv[0], err)
		}
		if got != kv[1] {
			t.Errorf("Get(%q) = %q, want %q", kv[0], got, kv[1])
		}
	}
}

func TestGet_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	for _, key := range ValidKeys {
		got, err := cfg.Get(key)
		if err != nil {
			t.Errorf("Get(%q) error: %v", key, err)
			continue
		}
		switch {
		case strings.HasPrefix(key, "offset_"):
			if got != "0" {
				t.Errorf("Get(%q) = %q, want 0", key, got)
			}
		case key == "summer_hour" || strings.HasPrefix(key, "force_hour"):
			if got != "false" {
				t.Errorf("Get(%q) = %q, want false", key, got)
			}
		default:
			if got != "" {
				t.Errorf("Get(%q) = %q, want empty", key, got)
			}
		}
	}
}

func TestGet_UnknownKey(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.Get("bogus"); err == nil {
		t.Error("expected error for unknown key")
	}
	if _, err := cfg.Get("offset_sunrise"); err == nil {
		t.Error("expected error for sunrise offset")
	}
}

// --- Derived values ---

func TestSettings(t *testing.T) {
	method := 4
	cfg := &Config{
		Method:     &method,
		Offsets:    prayer.Offsets{Fajr: 10},
		SummerHour: true,
	}

	got := cfg.Settings()
	want := prayer.Settings{
		Method:  4,
		School:  -1,
		Offsets: prayer.Offsets{Fajr: 10},
		Flags:   prayer.Flags{ApplySummerHour: true},
	}
	if got != want {
		t.Errorf("Settings() = %+v, want %+v", got, want)
	}
}

func TestLocation(t *testing.T) {
	cfg := &Config{City: "Makkah", CountryCode: "SA", CityCode: "SA.MAKKAH", Timezone: "Asia/Riyadh", Latitude: 21.4}
	got := cfg.Location()
	if got.CountryCode != "SA" || got.CityCode != "SA.MAKKAH" || got.TimezoneName != "Asia/Riyadh" || got.Latitude != 21.4 {
		t.Errorf("Location() = %+v", got)
	}
	if !cfg.HasLocation() {
		t.Error("HasLocation() should be true")
	}
}

func TestSelectedPrayers(t *testing.T) {
	cfg := &Config{}
	if got := cfg.SelectedPrayers(); got != nil {
		t.Errorf("SelectedPrayers() = %v, want nil", got)
	}

	cfg.Prayers = "fajr, MAGHRIB"
	got := cfg.SelectedPrayers()
	if len(got) != 2 || got[0] != "Fajr" || got[1] != "Maghrib" {
		t.Errorf("SelectedPrayers() = %v", got)
	}
}

func TestMethodAndSchoolOrDefault(t *testing.T) {
	zero := 0
	cfg := &Config{Method: &zero}
	if got := cfg.MethodOrDefault(-1); got != 0 {
		t.Errorf("MethodOrDefault = %d, want 0", got)
	}
	if got := cfg.SchoolOrDefault(-1); got != -1 {
		t.Errorf("SchoolOrDefault = %d, want -1", got)
	}
}
