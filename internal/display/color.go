// Package display renders prayer schedules for the terminal.
//
// Styling uses raw ANSI codes and honours NO_COLOR (https://no-color.org/).
// Color is off when stdout is not a terminal unless FORCE_COLOR is set.
package display

import (
	"os"
)

// Role names what a piece of text means on screen; each role has one style.
type Role int

const (
	Plain Role = iota
	Heading
	Muted
	Current
	Next
	Warning
	Local
)

const reset = "\033[0m"

var roleCodes = map[Role]string{
	Heading: "\033[1m",
	Muted:   "\033[2m",
	Current: "\033[90m",
	Next:    "\033[1m\033[36m",
	Warning: "\033[33m",
	Local:   "\033[32m",
}

var enabled = shouldEnable()

func shouldEnable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// SetEnabled overrides the detected color state. --json forces it off.
func SetEnabled(b bool) {
	enabled = b
}

// Enabled reports whether color output is active.
func Enabled() bool {
	return enabled
}

// Paint styles text for role. Plain text and disabled color pass through.
func Paint(role Role, text string) string {
	code, ok := roleCodes[role]
	if !enabled || !ok || text == "" {
		return text
	}
	return code + text + reset
}

// SourceLabel describes where a day's times came from.
func SourceLabel(source string) string {
	switch source {
	case "local":
		return Paint(Local, "local dataset")
	case "remote":
		return Paint(Warning, "remote API")
	default:
		return source
	}
}
