package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah-times/internal/display"
	"github.com/smokyabdulrahman/salah-times/internal/prayer"
	"github.com/smokyabdulrahman/salah-times/internal/resolver"
)

func runToday(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd)
	if err != nil {
		return err
	}

	date, err := e.baseDate()
	if err != nil {
		return err
	}
	res := e.resolveDay(cmd.Context(), date)

	prayers, err := e.schedule(res, e.cfg.SelectedPrayers())
	if err != nil {
		return err
	}

	// Current and next only make sense for today.
	now := e.now()
	var current, next *prayer.Prayer
	if sameDay(date, now) {
		current = prayer.CurrentPrayer(prayers, now)
		next = prayer.NextPrayer(prayers, now)
	}

	if FlagJSON {
		return printTodayJSON(cmd, e, res, prayers, current, next, now)
	}

	fmt.Fprint(cmd.OutOrStdout(), display.RenderDay(display.Day{
		Location: e.locationLabel(),
		Timezone: e.tz.String(),
		Date:     date,
		Hijri:    res.Times.Hijri,
		Source:   res.Source,
		Prayers:  prayers,
		Current:  current,
		Next:     next,
		Now:      now,
		Clock:    e.clock,
	}))
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Format(time.DateOnly) == b.Format(time.DateOnly)
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location todayJSONLocation `json:"location"`
	Date     todayJSONDate     `json:"date"`
	Source   string            `json:"source"`
	Timings  map[string]string `json:"timings"`
	Current  string            `json:"current,omitempty"`
	Next     *todayJSONNext    `json:"next,omitempty"`
}

type todayJSONLocation struct {
	City        string  `json:"city,omitempty"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"countryCode,omitempty"`
	Timezone    string  `json:"timezone"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
}

type todayJSONDate struct {
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri,omitempty"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

func jsonLocation(e *env) todayJSONLocation {
	return todayJSONLocation{
		City:        e.loc.City,
		Country:     e.loc.Country,
		CountryCode: e.loc.CountryCode,
		Timezone:    e.tz.String(),
		Latitude:    e.loc.Latitude,
		Longitude:   e.loc.Longitude,
	}
}

func timingsMap(prayers []prayer.Prayer, clock string) map[string]string {
	timings := make(map[string]string, len(prayers))
	for _, p := range prayers {
		timings[strings.ToLower(p.Name)] = p.Time.Format(clock)
	}
	return timings
}

func printTodayJSON(cmd *cobra.Command, e *env, res resolver.Result, prayers []prayer.Prayer, current, next *prayer.Prayer, now time.Time) error {
	out := todayJSON{
		Location: jsonLocation(e),
		Date: todayJSONDate{
			Gregorian: res.Times.Date,
			Hijri:     res.Times.Hijri,
		},
		Source:  res.Source,
		Timings: timingsMap(prayers, e.clock),
	}

	if current != nil {
		out.Current = strings.ToLower(current.Name)
	}
	if next != nil {
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(next.Name),
			Time:      next.Time.Format(e.clock),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, now)),
		}
	}

	return writeJSON(cmd, out)
}

func writeJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
