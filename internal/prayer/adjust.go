package prayer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// now is the clock used when Adjust gets a zero reference date.
var now = time.Now

// ShiftTime moves an "HH:MM" clock-time by delta minutes, wrapping around
// midnight in either direction. Input that does not parse as two integer
// fields is returned unchanged.
func ShiftTime(t string, delta int) string {
	h, m, ok := splitClock(t)
	if !ok {
		return t
	}
	total := ((h*60+m+delta)%minutesPerDay + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func splitClock(t string) (int, int, bool) {
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return h, m, true
}

// ApplyOffsets shifts the five offsettable prayers by their configured minutes.
func ApplyOffsets(t Times, o Offsets) Times {
	t.Fajr = ShiftTime(t.Fajr, o.Fajr)
	t.Dhuhr = ShiftTime(t.Dhuhr, o.Dhuhr)
	t.Asr = ShiftTime(t.Asr, o.Asr)
	t.Maghrib = ShiftTime(t.Maghrib, o.Maghrib)
	t.Isha = ShiftTime(t.Isha, o.Isha)
	return t
}

// ShiftAll moves all six clock-times, sunrise included, by delta minutes.
func ShiftAll(t Times, delta int) Times {
	return t.mapClocks(func(s string) string { return ShiftTime(s, delta) })
}

// LastSunday returns UTC midnight of the last Sunday in the given month.
func LastSunday(year int, month time.Month) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return last.AddDate(0, 0, -int(last.Weekday()))
}

// InSummerWindow reports whether ref's UTC calendar day lies strictly between
// the last Sunday of March and the last Sunday of October of its year.
func InSummerWindow(ref time.Time) bool {
	ref = ref.UTC()
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	start := LastSunday(day.Year(), time.March)
	end := LastSunday(day.Year(), time.October)
	return day.After(start) && day.Before(end)
}

// Adjust runs the full local adjustment pipeline in its fixed order:
// offsets, then the summer hour, then force-hour-more, then force-hour-less.
// Each stage works on the previous stage's output. A zero ref means now.
func Adjust(t Times, o Offsets, f Flags, ref time.Time) Times {
	if ref.IsZero() {
		ref = now()
	}

	t = ApplyOffsets(t, o)
	if f.ApplySummerHour && InSummerWindow(ref) {
		t = ShiftAll(t, 60)
	}
	if f.ForceHourMore {
		t = ShiftAll(t, 60)
	}
	if f.ForceHourLess {
		t = ShiftAll(t, -60)
	}
	return t
}
