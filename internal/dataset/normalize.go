package dataset

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeCity folds a city name into the token used in dataset file names:
// diacritics stripped, upper case, words joined by single underscores.
// "Malmö" and "malmo" both become "MALMO"; "New York" and "new-york" both
// become "NEW_YORK". The result is a fixed point of NormalizeCity.
func NormalizeCity(name string) string {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		name,
	)
	if err != nil {
		stripped = name
	}
	upper := cases.Upper(language.Und).String(stripped)

	var b strings.Builder
	b.Grow(len(upper))
	lastUnderscore := true
	for _, r := range upper {
		switch {
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		}
	}

	return strings.TrimRight(b.String(), "_")
}
