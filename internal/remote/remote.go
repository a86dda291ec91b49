// Package remote resolves prayer times from the Al Adhan API when no local
// dataset applies. It never fails: any problem yields a fixed placeholder day.
package remote

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/salah-times/internal/api"
	"github.com/smokyabdulrahman/salah-times/internal/cache"
	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

// FallbackHijri marks a placeholder day.
const FallbackHijri = "Loading..."

var errIncomplete = errors.New("API response is missing prayer timings")

// TimingsClient is the subset of the Al Adhan client the fetcher uses.
type TimingsClient interface {
	FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64, method, school int) (*api.Response, error)
	FetchByCity(ctx context.Context, date time.Time, city, country string, method, school int) (*api.Response, error)
}

// Fetcher calls the remote API through an optional cache.
type Fetcher struct {
	client TimingsClient
	store  cache.Store
	log    zerolog.Logger
	now    func() time.Time
}

// New builds a fetcher. store may be nil to disable caching.
func New(client TimingsClient, store cache.Store, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		store:  store,
		log:    log.With().Str("component", "remote").Logger(),
		now:    time.Now,
	}
}

// Fallback returns the placeholder day used whenever the API cannot answer.
func Fallback(date time.Time) prayer.Times {
	return prayer.Times{
		Fajr:    "05:30",
		Sunrise: "06:45",
		Dhuhr:   "12:15",
		Asr:     "15:30",
		Maghrib: "18:00",
		Isha:    "19:30",
		Date:    date.Format(time.DateOnly),
		Hijri:   FallbackHijri,
	}
}

// IsFallback reports whether t is the placeholder day.
func IsFallback(t prayer.Times) bool {
	return t.Hijri == FallbackHijri
}

// Fetch resolves today's times for loc.
func (f *Fetcher) Fetch(ctx context.Context, loc prayer.Location, s prayer.Settings) prayer.Times {
	return f.FetchFor(ctx, loc, s, f.today(loc))
}

// FetchFor resolves times for date. Only the per-prayer minute offsets are
// applied to API results; summer-hour and force-hour flags are ignored on
// this path.
func (f *Fetcher) FetchFor(ctx context.Context, loc prayer.Location, s prayer.Settings, date time.Time) prayer.Times {
	key := cache.Key{Date: date, Method: s.Method, School: s.School}
	byCity := !loc.HasCoordinates() && loc.City != ""
	if byCity {
		key.City, key.Country = loc.City, countryOf(loc)
	} else {
		key.Lat, key.Lon = loc.Latitude, loc.Longitude
	}

	entry, ok := f.load(ctx, key)
	if !ok {
		var err error
		entry, err = f.request(ctx, key, byCity)
		if err != nil {
			f.log.Warn().Err(err).Str("date", date.Format(time.DateOnly)).Msg("remote timings unavailable, using fallback")
			return Fallback(date)
		}
	}

	t := prayer.Times{
		Fajr:    prayer.StripZoneSuffix(entry.Timings.Fajr),
		Sunrise: prayer.StripZoneSuffix(entry.Timings.Sunrise),
		Dhuhr:   prayer.StripZoneSuffix(entry.Timings.Dhuhr),
		Asr:     prayer.StripZoneSuffix(entry.Timings.Asr),
		Maghrib: prayer.StripZoneSuffix(entry.Timings.Maghrib),
		Isha:    prayer.StripZoneSuffix(entry.Timings.Isha),
		Date:    date.Format(time.DateOnly),
		Hijri:   entry.Hijri,
	}
	return prayer.ApplyOffsets(t, s.Offsets)
}

func (f *Fetcher) load(ctx context.Context, key cache.Key) (*cache.Entry, bool) {
	if f.store == nil {
		return nil, false
	}
	entry, ok := f.store.LoadTimings(ctx, key)
	if ok && !entry.Timings.Complete() {
		return nil, false
	}
	if ok {
		f.log.Debug().Str("key", key.Hash()).Msg("timings cache hit")
	}
	return entry, ok
}

func (f *Fetcher) request(ctx context.Context, key cache.Key, byCity bool) (*cache.Entry, error) {
	var (
		resp *api.Response
		err  error
	)
	if byCity {
		resp, err = f.client.FetchByCity(ctx, key.Date, key.City, key.Country, key.Method, key.School)
	} else {
		resp, err = f.client.FetchByCoordinates(ctx, key.Date, key.Lat, key.Lon, key.Method, key.School)
	}
	if err != nil {
		return nil, err
	}
	if !resp.Data.Timings.Complete() {
		return nil, errIncomplete
	}

	entry := cache.NewEntry(key, resp)
	if f.store != nil {
		if err := f.store.SaveTimings(ctx, key, entry); err != nil {
			f.log.Debug().Err(err).Msg("failed to cache timings")
		}
	}
	return &entry, nil
}

// today is the current date in the location's timezone when it loads, else
// in UTC.
func (f *Fetcher) today(loc prayer.Location) time.Time {
	now := f.now().UTC()
	if loc.TimezoneName != "" {
		if tz, err := time.LoadLocation(loc.TimezoneName); err == nil {
			now = now.In(tz)
		}
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func countryOf(loc prayer.Location) string {
	if loc.Country != "" {
		return loc.Country
	}
	return loc.CountryCode
}
