package resolver

import (
	"context"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salah-times/internal/apperrors"
	"github.com/smokyabdulrahman/salah-times/internal/dataset"
	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

// LocalRequest asks the dataset path for one day of times. Flags are
// inlined so the JSON shape carries applySummerHour and friends at the top
// level.
type LocalRequest struct {
	CountryCode string         `json:"countryCode"`
	Timezone    string         `json:"timezone,omitempty"`
	Date        string         `json:"date,omitempty"` // YYYY-MM-DD, empty for today
	City        string         `json:"city,omitempty"`
	Offsets     prayer.Offsets `json:"offsets"`
	prayer.Flags
}

// Local resolves req from the dataset files and runs the full adjustment
// pipeline. Errors carry apperrors codes.
func (s *Service) Local(ctx context.Context, req LocalRequest) (prayer.Times, error) {
	if err := ctx.Err(); err != nil {
		return prayer.Times{}, err
	}

	cc := strings.TrimSpace(req.CountryCode)
	if cc == "" {
		return prayer.Times{}, apperrors.Wrap(apperrors.CodeCountryRequired, "country code required", nil)
	}

	date, err := parseDate(req.Date, req.Timezone, s.now())
	if err != nil {
		return prayer.Times{}, apperrors.Wrap(apperrors.CodeInvalidDate, "date must be YYYY-MM-DD", err)
	}

	name, ok := s.locator.Locate(cc, req.Timezone, req.City)
	if !ok {
		return prayer.Times{}, apperrors.Wrap(apperrors.CodeDatasetNotFound, "city dataset not found", nil)
	}

	raw, err := s.locator.ReadFile(name)
	if err != nil {
		return prayer.Times{}, apperrors.Wrap(apperrors.CodeDatasetReadFailed, "failed to read dataset", err)
	}

	times, ok := dataset.Parse(raw, dataset.MonthDay(date))
	if !ok {
		return prayer.Times{}, apperrors.Wrap(apperrors.CodeDateNotFound, "times for date not found", nil)
	}
	times.Date = date.Format(time.DateOnly)

	s.log.Debug().Str("dataset", name).Str("date", times.Date).Msg("resolved from local dataset")
	return prayer.Adjust(times, req.Offsets, req.Flags, date), nil
}

// parseDate reads a YYYY-MM-DD date as UTC midnight. Empty means today.
func parseDate(raw, timezone string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return today(timezone, now), nil
	}
	return time.Parse(time.DateOnly, raw)
}

// today is now's calendar day in timezone, or in UTC when it does not load,
// as UTC midnight.
func today(timezone string, now time.Time) time.Time {
	now = now.UTC()
	if timezone != "" {
		if tz, err := time.LoadLocation(timezone); err == nil {
			now = now.In(tz)
		}
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
