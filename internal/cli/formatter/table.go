package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column is a table header. Right-aligned columns suit hours and money.
type Column struct {
	Title string
	Right bool
}

// Col and RCol are shorthands for left- and right-aligned columns.
func Col(title string) Column  { return Column{Title: title} }
func RCol(title string) Column { return Column{Title: title, Right: true} }

const colGap = 2

// RenderTable renders rows under a styled header and a rule. Widths are
// measured on visible text so styled cells line up. Missing cells render
// blank; extra cells are dropped.
func RenderTable(cols []Column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Title)
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}
	}

	var b strings.Builder
	header := make([]string, len(cols))
	rule := make([]string, len(cols))
	for i, c := range cols {
		header[i] = StyleHeader.Render(c.Title)
		rule[i] = StyleDim.Render(strings.Repeat("─", widths[i]))
	}
	writeRow(&b, cols, widths, header)
	writeRow(&b, cols, widths, rule)
	for _, row := range rows {
		writeRow(&b, cols, widths, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cols []Column, widths []int, cells []string) {
	last := len(cols) - 1
	for i, c := range cols {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell)))
		switch {
		case c.Right:
			b.WriteString(pad + cell)
		case i == last:
			b.WriteString(cell)
		default:
			b.WriteString(cell + pad)
		}
		if i < last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")
}
