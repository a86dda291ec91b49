package dataset

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Zone is the country and representative city an IANA timezone maps to.
type Zone struct {
	Country string `yaml:"country"`
	City    string `yaml:"city"`
}

// ZoneTable is a read-only lookup from timezone to Zone and from country
// code to its default timezone. Build it once at startup and share it.
type ZoneTable struct {
	zones    map[string]Zone
	defaults map[string]string
}

// zoneFile is the YAML shape accepted by LoadZones.
type zoneFile struct {
	Zones    map[string]Zone   `yaml:"zones"`
	Defaults map[string]string `yaml:"defaults"`
}

var builtinZones = map[string]Zone{
	"Asia/Riyadh":         {"SA", "Riyadh"},
	"Asia/Dubai":          {"AE", "Dubai"},
	"Asia/Qatar":          {"QA", "Doha"},
	"Asia/Kuwait":         {"KW", "Kuwait"},
	"Asia/Bahrain":        {"BH", "Manama"},
	"Asia/Muscat":         {"OM", "Muscat"},
	"Asia/Amman":          {"JO", "Amman"},
	"Asia/Baghdad":        {"IQ", "Baghdad"},
	"Asia/Beirut":         {"LB", "Beirut"},
	"Asia/Damascus":       {"SY", "Damascus"},
	"Asia/Jerusalem":      {"PS", "Jerusalem"},
	"Asia/Gaza":           {"PS", "Gaza"},
	"Asia/Tehran":         {"IR", "Tehran"},
	"Asia/Karachi":        {"PK", "Karachi"},
	"Asia/Kolkata":        {"IN", "New Delhi"},
	"Asia/Dhaka":          {"BD", "Dhaka"},
	"Asia/Jakarta":        {"ID", "Jakarta"},
	"Asia/Kuala_Lumpur":   {"MY", "Kuala Lumpur"},
	"Asia/Singapore":      {"SG", "Singapore"},
	"Europe/Istanbul":     {"TR", "Istanbul"},
	"Africa/Cairo":        {"EG", "Cairo"},
	"Africa/Casablanca":   {"MA", "Casablanca"},
	"Africa/Algiers":      {"DZ", "Algiers"},
	"Africa/Tunis":        {"TN", "Tunis"},
	"Africa/Tripoli":      {"LY", "Tripoli"},
	"Africa/Khartoum":     {"SD", "Khartoum"},
	"Africa/Mogadishu":    {"SO", "Mogadishu"},
	"Africa/Lagos":        {"NG", "Lagos"},
	"Europe/Stockholm":    {"SE", "Stockholm"},
	"Europe/Oslo":         {"NO", "Oslo"},
	"Europe/Copenhagen":   {"DK", "Copenhagen"},
	"Europe/Helsinki":     {"FI", "Helsinki"},
	"Europe/Berlin":       {"DE", "Berlin"},
	"Europe/Amsterdam":    {"NL", "Amsterdam"},
	"Europe/Brussels":     {"BE", "Brussels"},
	"Europe/Paris":        {"FR", "Paris"},
	"Europe/London":       {"GB", "London"},
	"Europe/Madrid":       {"ES", "Madrid"},
	"Europe/Rome":         {"IT", "Rome"},
	"Europe/Vienna":       {"AT", "Vienna"},
	"Europe/Zurich":       {"CH", "Zurich"},
	"Europe/Sarajevo":     {"BA", "Sarajevo"},
	"America/New_York":    {"US", "New York"},
	"America/Chicago":     {"US", "Chicago"},
	"America/Los_Angeles": {"US", "Los Angeles"},
	"America/Toronto":     {"CA", "Toronto"},
	"Australia/Sydney":    {"AU", "Sydney"},
}

// builtinDefaults picks one timezone for countries spanning several.
var builtinDefaults = map[string]string{
	"US": "America/New_York",
	"CA": "America/Toronto",
	"AU": "Australia/Sydney",
	"PS": "Asia/Jerusalem",
}

// DefaultZones returns the compiled-in zone table.
func DefaultZones() ZoneTable {
	t := ZoneTable{
		zones:    make(map[string]Zone, len(builtinZones)),
		defaults: make(map[string]string),
	}
	t.merge(zoneFile{Zones: builtinZones})
	t.merge(zoneFile{Defaults: builtinDefaults})
	return t
}

// LoadZones reads a YAML zone file and merges it over the built-in table.
// An empty path returns the built-in table.
func LoadZones(path string) (ZoneTable, error) {
	t := DefaultZones()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ZoneTable{}, fmt.Errorf("read zone file: %w", err)
	}
	var f zoneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return ZoneTable{}, fmt.Errorf("invalid zone file %s: %w", path, err)
	}
	t.merge(f)
	return t, nil
}

func (t *ZoneTable) merge(f zoneFile) {
	for tz, z := range f.Zones {
		z.Country = strings.ToUpper(strings.TrimSpace(z.Country))
		t.zones[tz] = z
		if _, ok := t.defaults[z.Country]; !ok && z.Country != "" {
			t.defaults[z.Country] = tz
		}
	}
	for cc, tz := range f.Defaults {
		t.defaults[strings.ToUpper(cc)] = tz
	}
}

// Lookup returns the zone for an IANA timezone name.
func (t ZoneTable) Lookup(timezone string) (Zone, bool) {
	if timezone == "" {
		return Zone{}, false
	}
	z, ok := t.zones[timezone]
	return z, ok
}

// DefaultTimezone returns the timezone used for a country code when the
// caller has none.
func (t ZoneTable) DefaultTimezone(countryCode string) (string, bool) {
	tz, ok := t.defaults[strings.ToUpper(countryCode)]
	return tz, ok
}
