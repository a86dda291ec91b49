package dataset

import (
	"strings"
	"time"

	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

const recordSeparator = "~~~~~"

// fieldCleaner strips the JS string-literal debris around time fields.
var fieldCleaner = strings.NewReplacer(`"`, "", "'", "", "`", "", ",", "")

// MonthDay returns the "MM-DD" key used by dataset records.
func MonthDay(date time.Time) string {
	return date.Format("01-02")
}

// Parse extracts the six clock-times recorded for mmdd. The first line
// containing "<mmdd>~~~~~" is the record; it must carry exactly six
// pipe-separated, non-empty fields or the lookup fails. Field contents are
// not validated as times. Date and Hijri are left empty.
func Parse(raw []byte, mmdd string) (prayer.Times, bool) {
	marker := mmdd + recordSeparator
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.Contains(line, marker) {
			return parseRecord(line)
		}
	}
	return prayer.Times{}, false
}

func parseRecord(line string) (prayer.Times, bool) {
	segments := strings.Split(line, recordSeparator)
	if len(segments) < 2 {
		return prayer.Times{}, false
	}

	fields := strings.Split(strings.TrimSpace(segments[1]), "|")
	if len(fields) != len(prayer.Names) {
		return prayer.Times{}, false
	}
	for i, f := range fields {
		fields[i] = strings.TrimSpace(fieldCleaner.Replace(f))
		if fields[i] == "" {
			return prayer.Times{}, false
		}
	}

	return prayer.Times{
		Fajr:    fields[0],
		Sunrise: fields[1],
		Dhuhr:   fields[2],
		Asr:     fields[3],
		Maghrib: fields[4],
		Isha:    fields[5],
	}, true
}
