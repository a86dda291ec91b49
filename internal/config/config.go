// Package config provides persistent configuration for the salah-times CLI
// and the runtime configuration of the HTTP service.
//
// CLI configuration is stored as JSON at ~/.config/salah-times/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

const (
	configDirName  = "salah-times"
	configFileName = "config.json"

	// MaxOffset bounds per-prayer minute offsets accepted by `config set`.
	MaxOffset = 30
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"city", "country", "country_code", "city_code", "timezone",
	"latitude", "longitude",
	"method", "school",
	"offset_fajr", "offset_dhuhr", "offset_asr", "offset_maghrib", "offset_isha",
	"summer_hour", "force_hour_more", "force_hour_less",
	"time_format",
	"prayers",
	"dataset_dir", "zones_file",
	"cache_dir",
	"api_url",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults or auto-detect).
type Config struct {
	City          string         `json:"city,omitempty"`
	Country       string         `json:"country,omitempty"`
	CountryCode   string         `json:"country_code,omitempty"`
	CityCode      string         `json:"city_code,omitempty"`
	Timezone      string         `json:"timezone,omitempty"`
	Latitude      float64        `json:"latitude,omitempty"`
	Longitude     float64        `json:"longitude,omitempty"`
	Method        *int           `json:"method,omitempty"` // pointer so we can distinguish "not set" from 0
	School        *int           `json:"school,omitempty"` // pointer so we can distinguish "not set" from 0
	Offsets       prayer.Offsets `json:"offsets"`
	SummerHour    bool           `json:"summer_hour,omitempty"`
	ForceHourMore bool           `json:"force_hour_more,omitempty"`
	ForceHourLess bool           `json:"force_hour_less,omitempty"`
	TimeFormat    string         `json:"time_format,omitempty"` // "12h" or "24h"
	Prayers       string         `json:"prayers,omitempty"`     // comma-separated list
	DatasetDir    string         `json:"dataset_dir,omitempty"`
	ZonesFile     string         `json:"zones_file,omitempty"`
	CacheDir      string         `json:"cache_dir,omitempty"`
	APIURL        string         `json:"api_url,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	method := -1
	school := -1
	return Config{
		Method:     &method,
		School:     &school,
		TimeFormat: "24h",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// SaveTo writes the config to a specific file path, creating the directory
// if needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	if name, ok := strings.CutPrefix(key, "offset_"); ok {
		return c.setOffset(name, value)
	}

	switch key {
	case "city":
		c.City = value
	case "country":
		c.Country = value
	case "country_code":
		if value != "" && len(value) != 2 {
			return fmt.Errorf("invalid country_code %q: must be a two-letter ISO code", value)
		}
		c.CountryCode = strings.ToUpper(value)
	case "city_code":
		c.CityCode = value
	case "timezone":
		c.Timezone = value
	case "latitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: must be a number", value)
		}
		if v < -90 || v > 90 {
			return fmt.Errorf("invalid latitude %q: must be between -90 and 90", value)
		}
		c.Latitude = v
	case "longitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: must be a number", value)
		}
		if v < -180 || v > 180 {
			return fmt.Errorf("invalid longitude %q: must be between -180 and 180", value)
		}
		c.Longitude = v
	case "method":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid method %q: must be an integer", value)
		}
		if v < 0 || v > 23 {
			return fmt.Errorf("invalid method %q: must be between 0 and 23", value)
		}
		c.Method = &v
	case "school":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid school %q: must be an integer", value)
		}
		if v != 0 && v != 1 {
			return fmt.Errorf("invalid school %q: must be 0 (Shafi) or 1 (Hanafi)", value)
		}
		c.School = &v
	case "summer_hour", "force_hour_more", "force_hour_less":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: must be true or false", key, value)
		}
		*c.flag(key) = v
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		for _, n := range strings.Split(value, ",") {
			n = strings.TrimSpace(n)
			if _, ok := prayer.CanonicalName(n); !ok {
				return fmt.Errorf("invalid prayer name %q in prayers list", n)
			}
		}
		c.Prayers = value
	case "dataset_dir":
		c.DatasetDir = value
	case "zones_file":
		c.ZonesFile = value
	case "cache_dir":
		c.CacheDir = value
	case "api_url":
		c.APIURL = value
	default:
		return unknownKey(key)
	}

	return nil
}

func (c *Config) setOffset(name, value string) error {
	p := c.offset(name)
	if p == nil {
		return unknownKey("offset_" + name)
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid offset_%s %q: must be an integer", name, value)
	}
	if v < -MaxOffset || v > MaxOffset {
		return fmt.Errorf("invalid offset_%s %q: must be between %d and %d", name, value, -MaxOffset, MaxOffset)
	}
	*p = v
	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	if name, ok := strings.CutPrefix(key, "offset_"); ok {
		p := c.offset(name)
		if p == nil {
			return "", unknownKey(key)
		}
		return strconv.Itoa(*p), nil
	}

	switch key {
	case "city":
		return c.City, nil
	case "country":
		return c.Country, nil
	case "country_code":
		return c.CountryCode, nil
	case "city_code":
		return c.CityCode, nil
	case "timezone":
		return c.Timezone, nil
	case "latitude":
		if c.Latitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Latitude, 'f', -1, 64), nil
	case "longitude":
		if c.Longitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Longitude, 'f', -1, 64), nil
	case "method":
		if c.Method == nil {
			return "", nil
		}
		return strconv.Itoa(*c.Method), nil
	case "school":
		if c.School == nil {
			return "", nil
		}
		return strconv.Itoa(*c.School), nil
	case "summer_hour", "force_hour_more", "force_hour_less":
		return strconv.FormatBool(*c.flag(key)), nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "dataset_dir":
		return c.DatasetDir, nil
	case "zones_file":
		return c.ZonesFile, nil
	case "cache_dir":
		return c.CacheDir, nil
	case "api_url":
		return c.APIURL, nil
	default:
		return "", unknownKey(key)
	}
}

func (c *Config) offset(name string) *int {
	switch name {
	case "fajr":
		return &c.Offsets.Fajr
	case "dhuhr":
		return &c.Offsets.Dhuhr
	case "asr":
		return &c.Offsets.Asr
	case "maghrib":
		return &c.Offsets.Maghrib
	case "isha":
		return &c.Offsets.Isha
	default:
		return nil
	}
}

func (c *Config) flag(key string) *bool {
	switch key {
	case "summer_hour":
		return &c.SummerHour
	case "force_hour_more":
		return &c.ForceHourMore
	default:
		return &c.ForceHourLess
	}
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
}

// MethodOrDefault returns the method value, falling back to the given default.
func (c *Config) MethodOrDefault(def int) int {
	if c.Method != nil {
		return *c.Method
	}
	return def
}

// SchoolOrDefault returns the school value, falling back to the given default.
func (c *Config) SchoolOrDefault(def int) int {
	if c.School != nil {
		return *c.School
	}
	return def
}

// Location returns the configured location.
func (c *Config) Location() prayer.Location {
	return prayer.Location{
		Latitude:     c.Latitude,
		Longitude:    c.Longitude,
		City:         c.City,
		Country:      c.Country,
		CountryCode:  c.CountryCode,
		CityCode:     c.CityCode,
		TimezoneName: c.Timezone,
	}
}

// HasLocation reports whether enough location is configured to skip
// IP detection.
func (c *Config) HasLocation() bool {
	return c.CountryCode != "" || c.City != "" || c.Latitude != 0 || c.Longitude != 0
}

// Settings returns the configured resolution settings.
func (c *Config) Settings() prayer.Settings {
	return prayer.Settings{
		Method:  c.MethodOrDefault(-1),
		School:  c.SchoolOrDefault(-1),
		Offsets: c.Offsets,
		Flags: prayer.Flags{
			ApplySummerHour: c.SummerHour,
			ForceHourMore:   c.ForceHourMore,
			ForceHourLess:   c.ForceHourLess,
		},
	}
}

// SelectedPrayers returns the prayers list as canonical names, or nil for
// all six.
func (c *Config) SelectedPrayers() []string {
	if strings.TrimSpace(c.Prayers) == "" {
		return nil
	}
	var names []string
	for _, n := range strings.Split(c.Prayers, ",") {
		if name, ok := prayer.CanonicalName(strings.TrimSpace(n)); ok {
			names = append(names, name)
		}
	}
	return names
}
