// Package dataset finds and reads the per-city prayer-time files that back the
// local resolution path.
//
// Files live under one directory per country, lower-case ISO code, named
// "wtimes-<cc>.<city>...js". City suffixes are inconsistent across the corpus
// (for example "wtimes-se.dalstorp_(15-14).js"), so cities are matched by
// prefix after normalization rather than exactly.
package dataset

import (
	"io/fs"
	"path"
	"strings"
)

const filePrefix = "wtimes-"

// Locator resolves a country, timezone and city to a dataset file path.
type Locator struct {
	fsys  fs.FS
	zones ZoneTable
}

// NewLocator returns a locator over the dataset tree rooted at fsys.
func NewLocator(fsys fs.FS, zones ZoneTable) *Locator {
	return &Locator{fsys: fsys, zones: zones}
}

// Zones returns the zone table the locator consults.
func (l *Locator) Zones() ZoneTable {
	return l.zones
}

// Locate returns the slash-separated path of the dataset file to use, or
// false when no candidate directory yields one. I/O errors are treated as
// misses.
func (l *Locator) Locate(countryCode, timezone, city string) (string, bool) {
	zone, hasZone := l.zones.Lookup(timezone)

	for _, cc := range l.candidates(countryCode, zone, hasZone) {
		names, err := l.datasetFiles(cc)
		if err != nil || len(names) == 0 {
			continue
		}
		prefix := filePrefix + cc + "."

		if city != "" {
			if name, ok := matchCity(names, prefix, NormalizeCity(city)); ok {
				return path.Join(cc, name), true
			}
		}
		if hasZone && strings.EqualFold(zone.Country, cc) {
			if name, ok := matchCity(names, prefix, NormalizeCity(zone.City)); ok {
				return path.Join(cc, name), true
			}
		}
		return path.Join(cc, names[0]), true
	}

	return "", false
}

// ReadFile reads a path returned by Locate.
func (l *Locator) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(l.fsys, name)
}

// candidates lists the country directories to search: the caller's country
// first, then the timezone's country when it differs.
func (l *Locator) candidates(countryCode string, zone Zone, hasZone bool) []string {
	var dirs []string
	if cc := strings.ToLower(strings.TrimSpace(countryCode)); cc != "" {
		dirs = append(dirs, cc)
	}
	if hasZone {
		cc := strings.ToLower(zone.Country)
		if cc != "" && (len(dirs) == 0 || dirs[0] != cc) {
			dirs = append(dirs, cc)
		}
	}
	return dirs
}

// datasetFiles lists the regular files in dir that carry the country prefix,
// in lexical order.
func (l *Locator) datasetFiles(cc string) ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, cc)
	if err != nil {
		return nil, err
	}

	prefix := filePrefix + cc + "."
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(strings.ToLower(e.Name()), prefix) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func matchCity(names []string, prefix, city string) (string, bool) {
	if city == "" {
		return "", false
	}
	for _, name := range names {
		rest := strings.ToUpper(name[len(prefix):])
		if strings.HasPrefix(rest, city) {
			return name, true
		}
	}
	return "", false
}
