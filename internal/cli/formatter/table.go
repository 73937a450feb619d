package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tableGap = "  "

// RenderTable lays out rows under headers. Columns are sized in display
// cells, so styled text and Hangul line up. Rows shorter than headers are
// padded with empty cells.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := columnWidths(headers, rows)

	var b strings.Builder
	writeTableRow(&b, headers, widths, StyleHeader.Render)

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("─", w)
	}
	writeTableRow(&b, rule, widths, StyleDim.Render)

	for _, row := range rows {
		writeTableRow(&b, row, widths, nil)
	}
	return b.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	measure := func(cells []string) {
		for i := range min(len(cells), len(widths)) {
			widths[i] = max(widths[i], lipgloss.Width(cells[i]))
		}
	}
	measure(headers)
	for _, row := range rows {
		measure(row)
	}
	return widths
}

// writeTableRow pads every cell but the last to its column width. style,
// when set, is applied to each cell before padding.
func writeTableRow(b *strings.Builder, cells []string, widths []int, style func(...string) string) {
	last := len(widths) - 1
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		pad := max(w-lipgloss.Width(cell), 0)
		if style != nil {
			cell = style(cell)
		}
		b.WriteString(cell)
		if i < last {
			b.WriteString(strings.Repeat(" ", pad) + tableGap)
		}
	}
	b.WriteByte('\n')
}
