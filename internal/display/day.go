package display

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/smokyabdulrahman/salah-times/internal/prayer"
)

// Day is everything the today view shows.
type Day struct {
	Location string
	Timezone string
	Date     time.Time
	Hijri    string
	Source   string
	Prayers  []prayer.Prayer
	Current  *prayer.Prayer
	Next     *prayer.Prayer
	Now      time.Time
	Clock    string // Go time layout for prayer times
}

// RenderDay renders the today view.
func RenderDay(d Day) string {
	var sb strings.Builder

	sb.WriteString("\n  " + Paint(Heading, "Prayer Times") + "\n\n")
	if d.Location != "" {
		fmt.Fprintf(&sb, "  %s\n", d.Location)
	}
	if d.Timezone != "" {
		fmt.Fprintf(&sb, "  %s\n", d.Timezone)
	}
	fmt.Fprintf(&sb, "  %s\n", d.Date.Format("Monday 02 January 2006"))
	if d.Hijri != "" {
		fmt.Fprintf(&sb, "  %s\n", d.Hijri)
	}
	fmt.Fprintf(&sb, "  %s\n\n", Paint(Muted, "source: ")+SourceLabel(d.Source))

	width := 0
	for _, p := range d.Prayers {
		width = max(width, utf8.RuneCountInString(p.Name))
	}

	for _, p := range d.Prayers {
		line := fmt.Sprintf("  %-*s  %s", width, p.Name, p.Time.Format(d.Clock))
		switch {
		case d.Next != nil && p.Name == d.Next.Name:
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(p, d.Now))
			sb.WriteString(Paint(Next, line+"  <- next in "+remaining) + "\n")
		case d.Current != nil && p.Name == d.Current.Name:
			sb.WriteString(Paint(Current, line) + "\n")
		default:
			sb.WriteString(line + "\n")
		}
	}
	sb.WriteString("\n")

	return sb.String()
}
