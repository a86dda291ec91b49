package cli

import (
	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

// TmuxArgs rewrites a tmux status-line invocation into CLI arguments.
// Plain flags run `next` in name-and-time format; --version and
// --list-methods keep their old single-binary meaning.
func TmuxArgs(args []string) []string {
	for _, a := range args {
		switch a {
		case "--version", "-version", "-v":
			return []string{"--version"}
		case "--list-methods", "-list-methods":
			return []string{"methods"}
		}
	}
	out := []string{"next", "--format", prayer.FormatNameAndTime}
	return append(out, args...)
}
