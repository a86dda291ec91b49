// Package prayer holds the prayer-time value types and the pure adjustment
// pipeline applied to them: per-prayer minute offsets, the summer-hour window
// and the global force-hour shifts.
package prayer

// Times is one day's six prayer clock-times in 24-hour "HH:MM" form.
// It is a value: every stage of the pipeline returns a fresh copy.
type Times struct {
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
	Date    string `json:"date"`            // YYYY-MM-DD
	Hijri   string `json:"hijri,omitempty"` // display string, passed through opaquely
}

// Names lists the six markers in chronological order.
var Names = []string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"}

// ShortNames maps prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	"Fajr":    "F",
	"Sunrise": "S",
	"Dhuhr":   "D",
	"Asr":     "A",
	"Maghrib": "M",
	"Isha":    "I",
}

// Get returns the clock-time for the named prayer.
func (t Times) Get(name string) (string, bool) {
	switch name {
	case "Fajr":
		return t.Fajr, true
	case "Sunrise":
		return t.Sunrise, true
	case "Dhuhr":
		return t.Dhuhr, true
	case "Asr":
		return t.Asr, true
	case "Maghrib":
		return t.Maghrib, true
	case "Isha":
		return t.Isha, true
	default:
		return "", false
	}
}

// mapClocks returns a copy of t with fn applied to all six clock-times.
func (t Times) mapClocks(fn func(string) string) Times {
	t.Fajr = fn(t.Fajr)
	t.Sunrise = fn(t.Sunrise)
	t.Dhuhr = fn(t.Dhuhr)
	t.Asr = fn(t.Asr)
	t.Maghrib = fn(t.Maghrib)
	t.Isha = fn(t.Isha)
	return t
}

// Location describes where prayer times are requested for.
type Location struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	City         string  `json:"city,omitempty"`
	Country      string  `json:"country,omitempty"`
	CountryCode  string  `json:"countryCode,omitempty"`  // ISO alpha-2
	CityCode     string  `json:"cityCode,omitempty"`     // "CC.CITY"
	TimezoneName string  `json:"timezoneName,omitempty"` // IANA
}

// HasCoordinates reports whether a latitude/longitude pair was set.
func (l Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

// Offsets are signed minute adjustments per prayer. Sunrise is never offset.
type Offsets struct {
	Fajr    int `json:"fajr"`
	Dhuhr   int `json:"dhuhr"`
	Asr     int `json:"asr"`
	Maghrib int `json:"maghrib"`
	Isha    int `json:"isha"`
}

// Flags toggles the hour-level adjustments.
type Flags struct {
	ApplySummerHour bool `json:"applySummerHour"`
	ForceHourMore   bool `json:"forceHourMore"`
	ForceHourLess   bool `json:"forceHourLess"`
}

// Settings groups everything the caller controls about a resolution.
// Method and School of -1 let the remote API pick its default.
type Settings struct {
	Method  int     `json:"method"`
	School  int     `json:"school"`
	Offsets Offsets `json:"offsets"`
	Flags   Flags   `json:"flags"`
}

// DefaultSettings returns settings with API-default method and school and
// no adjustments.
func DefaultSettings() Settings {
	return Settings{Method: -1, School: -1}
}
