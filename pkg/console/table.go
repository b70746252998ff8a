package console

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luca-della-vedova/rmf-workcell/pkg/styles"
)

// TableConfig describes a table to render.
type TableConfig struct {
	Title     string
	Headers   []string
	Rows      [][]string
	ShowTotal bool
	TotalRow  []string
}

// RenderTable renders a left-aligned text table. An empty config renders
// as the empty string.
func RenderTable(config TableConfig) string {
	if len(config.Headers) == 0 {
		return ""
	}

	widths := make([]int, len(config.Headers))
	for i, h := range config.Headers {
		widths[i] = lipgloss.Width(h)
	}
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	for _, row := range config.Rows {
		measure(row)
	}
	if config.ShowTotal {
		measure(config.TotalRow)
	}

	var b strings.Builder
	if config.Title != "" {
		b.WriteString(styles.BoldStyle.Render(config.Title))
		b.WriteString("\n")
	}

	writeRow := func(row []string, style lipgloss.Style) {
		cells := make([]string, 0, len(row))
		for i, cell := range row {
			if i < len(widths) {
				cell += strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			}
			cells = append(cells, style.Render(cell))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteString("\n")
	}

	writeRow(config.Headers, styles.BoldStyle)

	total := 0
	for _, w := range widths {
		total += w + 2
	}
	b.WriteString(styles.MutedStyle.Render(strings.Repeat("-", total-2)))
	b.WriteString("\n")

	plain := lipgloss.NewStyle()
	for _, row := range config.Rows {
		writeRow(row, plain)
	}
	if config.ShowTotal && len(config.TotalRow) > 0 {
		b.WriteString(styles.MutedStyle.Render(strings.Repeat("-", total-2)))
		b.WriteString("\n")
		writeRow(config.TotalRow, styles.BoldStyle)
	}

	return b.String()
}

// RenderTableAsJSON renders the table rows as a JSON array of objects
// keyed by header name. An empty config renders as "[]".
func RenderTableAsJSON(config TableConfig) (string, error) {
	items := make([]map[string]string, 0, len(config.Rows))
	for _, row := range config.Rows {
		item := make(map[string]string, len(config.Headers))
		for i, header := range config.Headers {
			if i < len(row) {
				item[header] = row[i]
			}
		}
		items = append(items, item)
	}

	out, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
