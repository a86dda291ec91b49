package display

import (
	"strings"
	"unicode/utf8"
)

// Table renders an aligned text table. Widths count runes so city and
// Hijri month names with diacritics line up.
type Table struct {
	headers   []string
	rows      [][]string
	highlight int
	muted     map[int]bool
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, highlight: -1, muted: map[int]bool{}}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Highlight marks row idx (0-based) with the Next style.
func (t *Table) Highlight(idx int) {
	t.highlight = idx
}

// Mute marks row idx with the Muted style, e.g. for fallback days.
func (t *Table) Mute(idx int) {
	t.muted[idx] = true
}

// Render returns the table with a two-space left margin.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
		}
	}

	var sb strings.Builder
	sb.WriteString("  " + Paint(Heading, joinCells(t.headers, widths)) + "\n")

	rules := make([]string, len(widths))
	for i, w := range widths {
		rules[i] = strings.Repeat("─", w)
	}
	sb.WriteString("  " + Paint(Muted, strings.Join(rules, "  ")) + "\n")

	for i, row := range t.rows {
		line := joinCells(row, widths)
		switch {
		case i == t.highlight:
			line = Paint(Next, line)
		case t.muted[i]:
			line = Paint(Muted, line)
		}
		sb.WriteString("  " + line + "\n")
	}

	return sb.String()
}

// joinCells pads each cell to its column width. The last column is not
// padded.
func joinCells(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if i < len(widths)-1 {
			cell += strings.Repeat(" ", w-utf8.RuneCountInString(cell))
		}
		parts[i] = cell
	}
	return strings.Join(parts, "  ")
}
