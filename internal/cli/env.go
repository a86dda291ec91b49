package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/salah-times/internal/api"
	"github.com/smokyabdulrahman/salah-times/internal/cache"
	"github.com/smokyabdulrahman/salah-times/internal/config"
	"github.com/smokyabdulrahman/salah-times/internal/dataset"
	"github.com/smokyabdulrahman/salah-times/internal/geo"
	"github.com/smokyabdulrahman/salah-times/internal/logging"
	"github.com/smokyabdulrahman/salah-times/internal/prayer"
	"github.com/smokyabdulrahman/salah-times/internal/remote"
	"github.com/smokyabdulrahman/salah-times/internal/resolver"
)

// nowFunc is the clock the commands read. Tests pin it.
var nowFunc = time.Now

// detectLocation is swapped out in tests so they never reach ip-api.com.
var detectLocation = geo.DetectLocation

// env is everything a command needs to resolve prayer times.
type env struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   *cache.FileStore
	zones   dataset.ZoneTable
	locator *dataset.Locator
	svc     *resolver.Service

	datasetDir string
	loc        prayer.Location
	tz         *time.Location
	clock      string
}

// newEnv merges flags over config and builds the resolution pipeline.
// Cache failures only disable caching.
func newEnv(cmd *cobra.Command) (*env, error) {
	cfg := effectiveConfig(cmd)
	e := &env{
		cfg:   cfg,
		log:   cliLogger(cmd),
		clock: clockLayout(cfg.TimeFormat),
	}

	store, err := cache.New(cfg.CacheDir)
	if err != nil {
		e.log.Warn().Err(err).Msg("cache disabled")
	} else {
		e.store = store
	}

	e.zones, err = dataset.LoadZones(cfg.ZonesFile)
	if err != nil {
		return nil, err
	}

	e.datasetDir, err = datasetDir(cfg)
	if err != nil {
		return nil, err
	}
	e.locator = dataset.NewLocator(os.DirFS(e.datasetDir), e.zones)

	e.loc, err = resolveLocation(cmd.Context(), cfg, e.store)
	if err != nil {
		return nil, err
	}
	e.tz = e.timezone()

	// A nil *FileStore must not become a non-nil cache.Store.
	var timings cache.Store
	if e.store != nil {
		timings = e.store
	}
	client := api.NewClient().WithBaseURL(cfg.APIURL)
	e.svc = resolver.New(e.locator, remote.New(client, timings, e.log), e.log)

	return e, nil
}

// cliLogger writes human-readable logs to stderr. Only warnings show by
// default so command output stays clean.
func cliLogger(cmd *cobra.Command) zerolog.Logger {
	level := FlagLogLevel
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level == "" {
		level = "warn"
	}
	return logging.New(cmd.ErrOrStderr(), level, true)
}

func datasetDir(cfg *config.Config) (string, error) {
	if cfg.DatasetDir != "" {
		return cfg.DatasetDir, nil
	}
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// resolveLocation determines the effective location.
// Priority: CLI flags > config > cached geo > IP auto-detect.
func resolveLocation(ctx context.Context, cfg *config.Config, store *cache.FileStore) (prayer.Location, error) {
	if cfg.HasLocation() {
		return cfg.Location(), nil
	}

	if store != nil {
		if cached, ok := store.LoadGeo(); ok {
			return withTimezone(cached, cfg.Timezone), nil
		}
	}

	detected, err := detectLocation(ctx)
	if err != nil {
		return prayer.Location{}, fmt.Errorf("no location specified and auto-detection failed: %w", err)
	}

	if store != nil {
		_ = store.SaveGeo(detected) // best-effort
	}

	return withTimezone(detected, cfg.Timezone), nil
}

func withTimezone(loc prayer.Location, tz string) prayer.Location {
	if tz != "" {
		loc.TimezoneName = tz
	}
	return loc
}

// timezone picks the zone prayer times are anchored in: the location's own,
// then the country's default from the zone table, then the machine's.
// A country default is written back so the locator can use it too.
func (e *env) timezone() *time.Location {
	if e.loc.TimezoneName == "" && e.loc.CountryCode != "" {
		if tz, ok := e.zones.DefaultTimezone(e.loc.CountryCode); ok {
			e.loc.TimezoneName = tz
		}
	}
	if e.loc.TimezoneName != "" {
		if tz, err := time.LoadLocation(e.loc.TimezoneName); err == nil {
			return tz
		}
		e.log.Warn().Str("timezone", e.loc.TimezoneName).Msg("unknown timezone, using local time")
	}
	return time.Local
}

// now is the current instant in the prayer timezone.
func (e *env) now() time.Time {
	return nowFunc().In(e.tz)
}

// baseDate is --date when given, otherwise today.
func (e *env) baseDate() (time.Time, error) {
	if FlagDate == "" {
		return e.now(), nil
	}
	d, err := time.ParseInLocation(time.DateOnly, FlagDate, e.tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: must be YYYY-MM-DD", FlagDate)
	}
	return d, nil
}

func (e *env) request(date time.Time) resolver.ResolveRequest {
	return resolver.ResolveRequest{
		Location: e.loc,
		Settings: e.cfg.Settings(),
		Date:     date.Format(time.DateOnly),
	}
}

// resolveDay runs the pipeline for one calendar day.
func (e *env) resolveDay(ctx context.Context, date time.Time) resolver.Result {
	return e.svc.Resolve(ctx, e.request(date))
}

// schedule anchors a resolved day in the prayer timezone.
func (e *env) schedule(res resolver.Result, selected []string) ([]prayer.Prayer, error) {
	date, err := time.ParseInLocation(time.DateOnly, res.Times.Date, e.tz)
	if err != nil {
		return nil, fmt.Errorf("resolved day has invalid date %q: %w", res.Times.Date, err)
	}
	return res.Times.Schedule(date, e.tz, selected)
}

// locationLabel is "City, Country" when known, otherwise the best
// identifier available.
func (e *env) locationLabel() string {
	city := e.loc.City
	if city == "" {
		city = cityFromCode(e.loc.CityCode)
	}
	country := e.loc.Country
	if country == "" {
		country = e.loc.CountryCode
	}

	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	case country != "":
		return country
	case e.loc.HasCoordinates():
		return fmt.Sprintf("%.4f, %.4f", e.loc.Latitude, e.loc.Longitude)
	default:
		return ""
	}
}

// cityFromCode turns "SE.MALMO" or "NEW_YORK" into a city name.
func cityFromCode(code string) string {
	code = strings.TrimSpace(code)
	if _, city, ok := strings.Cut(code, "."); ok {
		code = city
	}
	return strings.ReplaceAll(code, "_", " ")
}

// clockLayout maps the time_format setting to a Go layout.
func clockLayout(format string) string {
	if format == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

// selectedPrayers returns the comma-separated override when given, else
// the configured list. Unknown names are an error.
func selectedPrayers(override string, cfg *config.Config) ([]string, error) {
	if strings.TrimSpace(override) == "" {
		return cfg.SelectedPrayers(), nil
	}
	var names []string
	for _, n := range strings.Split(override, ",") {
		name, ok := prayer.CanonicalName(n)
		if !ok {
			return nil, fmt.Errorf("unknown prayer %q (valid: %s)", strings.TrimSpace(n), strings.Join(prayer.Names, ", "))
		}
		names = append(names, name)
	}
	return names, nil
}
