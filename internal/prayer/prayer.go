package prayer

import (
	"fmt"
	"strings"
	"time"
)

// Prayer is a single named marker anchored to a wall-clock instant.
type Prayer struct {
	Name string
	Time time.Time
}

// Schedule anchors the selected clock-times of t to date in loc.
// An empty selection means all six markers.
func (t Times) Schedule(date time.Time, loc *time.Location, selected []string) ([]Prayer, error) {
	if len(selected) == 0 {
		selected = Names
	}

	prayers := make([]Prayer, 0, len(selected))
	for _, name := range selected {
		raw, ok := t.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown prayer name: %s", name)
		}

		at, err := parseClock(raw, date, loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse time for %s (%q): %w", name, raw, err)
		}
		prayers = append(prayers, Prayer{Name: name, Time: at})
	}

	return prayers, nil
}

// CanonicalName matches name case-insensitively against Names.
func CanonicalName(name string) (string, bool) {
	for _, n := range Names {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return n, true
		}
	}
	return "", false
}

// NextPrayer returns the first prayer strictly after now, or nil once the
// day is over (the caller rolls over to tomorrow's Fajr).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the latest prayer at or before now, or nil before Fajr.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var current *Prayer
	for i := range prayers {
		if prayers[i].Time.After(now) {
			break
		}
		current = &prayers[i]
	}
	return current
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(p Prayer, now time.Time) time.Duration {
	return p.Time.Sub(now)
}

// FormatRemaining renders a duration as "Xh Ym", or "Ym" under an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// parseClock parses "15:02" or "15:02 (BST)" into an instant on date in loc.
func parseClock(raw string, date time.Time, loc *time.Location) (time.Time, error) {
	s := StripZoneSuffix(raw)

	h, m, ok := splitClock(s)
	if !ok || strings.Count(s, ":") != 1 {
		return time.Time{}, fmt.Errorf("invalid time format: %q", raw)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), h, m, 0, 0, loc), nil
}

// StripZoneSuffix drops anything after the first space, such as the " (BST)"
// the Al Adhan API appends to its timings.
func StripZoneSuffix(raw string) string {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}
	return s
}
