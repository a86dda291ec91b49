// Package resolver runs the prayer-time pipeline: the local dataset path
// first, the remote API when no dataset answers.
package resolver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

// Result sources.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Locator finds and reads dataset files.
type Locator interface {
	Locate(countryCode, timezone, city string) (string, bool)
	ReadFile(name string) ([]byte, error)
}

// RemoteFetcher resolves times from the remote API. It never fails.
type RemoteFetcher interface {
	FetchFor(ctx context.Context, loc prayer.Location, s prayer.Settings, date time.Time) prayer.Times
}

// ResolveRequest asks for one day of times for a location.
type ResolveRequest struct {
	Location prayer.Location `json:"location"`
	Settings prayer.Settings `json:"settings"`
	Date     string          `json:"date,omitempty"` // YYYY-MM-DD, empty for today
}

// Result is a resolved day and the path that produced it.
type Result struct {
	Times  prayer.Times `json:"times"`
	Source string       `json:"source"`
}

// Service resolves prayer times.
type Service struct {
	locator Locator
	remote  RemoteFetcher
	log     zerolog.Logger
	group   singleflight.Group
	now     func() time.Time
}

// New builds a Service.
func New(locator Locator, remote RemoteFetcher, log zerolog.Logger) *Service {
	return &Service{
		locator: locator,
		remote:  remote,
		log:     log.With().Str("component", "resolver").Logger(),
		now:     time.Now,
	}
}

// Resolve returns times for req. Without a country code, or when the local
// path fails for any reason, the remote fetcher answers. Identical requests
// in flight at the same time share one resolution. The shared work ignores
// caller cancellation; the API client's timeout bounds it.
func (s *Service) Resolve(ctx context.Context, req ResolveRequest) Result {
	shared := context.WithoutCancel(ctx)
	v, _, _ := s.group.Do(fingerprint(req), func() (any, error) {
		return s.resolve(shared, req), nil
	})
	return v.(Result)
}

// ResolveDays resolves n consecutive days starting at req's date.
func (s *Service) ResolveDays(ctx context.Context, req ResolveRequest, n int) []Result {
	start, err := parseDate(req.Date, req.Location.TimezoneName, s.now())
	if err != nil {
		start = today(req.Location.TimezoneName, s.now())
	}

	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		day := req
		day.Date = start.AddDate(0, 0, i).Format(time.DateOnly)
		results = append(results, s.Resolve(ctx, day))
	}
	return results
}

func (s *Service) resolve(ctx context.Context, req ResolveRequest) Result {
	loc := req.Location
	date, err := parseDate(req.Date, loc.TimezoneName, s.now())
	if err != nil {
		s.log.Warn().Str("date", req.Date).Msg("ignoring invalid date, using today")
		date = today(loc.TimezoneName, s.now())
	}

	if strings.TrimSpace(loc.CountryCode) != "" {
		times, err := s.Local(ctx, LocalRequest{
			CountryCode: loc.CountryCode,
			Timezone:    loc.TimezoneName,
			Date:        date.Format(time.DateOnly),
			City:        cityOf(loc),
			Offsets:     req.Settings.Offsets,
			Flags:       req.Settings.Flags,
		})
		if err == nil {
			return Result{Times: times, Source: SourceLocal}
		}
		s.log.Debug().Err(err).Str("country", loc.CountryCode).Msg("local lookup failed, falling back to remote")
	}

	return Result{
		Times:  s.remote.FetchFor(ctx, loc, req.Settings, date),
		Source: SourceRemote,
	}
}

// cityOf prefers the city half of a "CC.CITY" code over the display name.
func cityOf(loc prayer.Location) string {
	if code := strings.TrimSpace(loc.CityCode); code != "" {
		if _, city, ok := strings.Cut(code, "."); ok {
			code = city
		}
		if code != "" {
			return strings.ReplaceAll(code, "_", " ")
		}
	}
	return loc.City
}

func fingerprint(req ResolveRequest) string {
	data, err := json.Marshal(req)
	if err != nil {
		data = []byte(fmt.Sprintf("%+v", req))
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
