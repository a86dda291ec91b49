package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

const julyDoc = "07-15~~~~~05:12|06:30|12:10|15:45|18:20|19:50"

func TestParse_Positional(t *testing.T) {
	got, ok := Parse([]byte(julyDoc), "07-15")
	require.True(t, ok)
	assert.Equal(t, prayer.Times{
		Fajr:    "05:12",
		Sunrise: "06:30",
		Dhuhr:   "12:10",
		Asr:     "15:45",
		Maghrib: "18:20",
		Isha:    "19:50",
	}, got)
}

func TestParse_Miss(t *testing.T) {
	_, ok := Parse([]byte(julyDoc), "07-16")
	assert.False(t, ok)
}

func TestParse_JSWrappedRecords(t *testing.T) {
	doc := "var wtimes = [\r\n" +
		"  \"07-14~~~~~05:11|06:29|12:10|15:45|18:21|19:51\",\r\n" +
		"  \"07-15~~~~~ 05:12 | 06:30 |12:10|15:45|18:20|19:50 \",\r\n" +
		"];\r\n"

	got, ok := Parse([]byte(doc), "07-15")
	require.True(t, ok)
	assert.Equal(t, "05:12", got.Fajr)
	assert.Equal(t, "06:30", got.Sunrise)
	assert.Equal(t, "19:50", got.Isha)
}

func TestParse_QuotedFields(t *testing.T) {
	doc := `07-15~~~~~"05:12","06:30"|'12:10'|15:45|18:20|19:50`
	_, ok := Parse([]byte(doc), "07-15")
	assert.False(t, ok, "five pipe fields must not parse")

	doc = `07-15~~~~~"05:12"|"06:30"|'12:10'|15:45,|18:20|` + "`19:50`"
	got, ok := Parse([]byte(doc), "07-15")
	require.True(t, ok)
	assert.Equal(t, "12:10", got.Dhuhr)
	assert.Equal(t, "15:45", got.Asr)
	assert.Equal(t, "19:50", got.Isha)
}

func TestParse_FailsClosed(t *testing.T) {
	tests := map[string]string{
		"too few fields":  "07-15~~~~~05:12|06:30|12:10",
		"too many fields": "07-15~~~~~05:12|06:30|12:10|15:45|18:20|19:50|23:00",
		"empty field":     "07-15~~~~~05:12||12:10|15:45|18:20|19:50",
		"empty body":      "07-15~~~~~",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := Parse([]byte(doc), "07-15")
			assert.False(t, ok)
			assert.Equal(t, prayer.Times{}, got)
		})
	}
}

func TestParse_FirstMatchingLineWins(t *testing.T) {
	doc := "07-15~~~~~01:00|02:00|03:00|04:00|05:00|06:00\n07-15~~~~~09:00|09:00|09:00|09:00|09:00|09:00"
	got, ok := Parse([]byte(doc), "07-15")
	require.True(t, ok)
	assert.Equal(t, "01:00", got.Fajr)
}

func TestParse_MalformedTimesPassThrough(t *testing.T) {
	got, ok := Parse([]byte("07-15~~~~~later|06:30|12:10|15:45|18:20|19:50"), "07-15")
	require.True(t, ok)
	assert.Equal(t, "later", got.Fajr)
}

func TestMonthDay(t *testing.T) {
	assert.Equal(t, "07-01", MonthDay(time.Date(2024, 7, 1, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "12-31", MonthDay(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
}
