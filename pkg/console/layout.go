package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luca-della-vedova/rmf-workcell/pkg/styles"
)

// LayoutTitleBox renders a title between horizontal separators at the
// given width.
func LayoutTitleBox(title string, width int) string {
	if width <= 0 {
		width = 60
	}
	separator := styles.MutedStyle.Render(strings.Repeat("─", width))
	return separator + "\n" + styles.BoldStyle.Render(title) + "\n" + separator
}

// LayoutInfoSection renders a "Label: value" line with a styled label.
func LayoutInfoSection(label, value string) string {
	return styles.BoldStyle.Render(label+":") + " " + value
}

// LayoutEmphasisBox renders content inside a rounded border of the given
// color.
func LayoutEmphasisBox(content string, color lipgloss.AdaptiveColor) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
	return box.Render(content)
}

// LayoutJoinVertical joins sections with newlines. Empty leading and
// trailing output is avoided when no sections are given.
func LayoutJoinVertical(sections ...string) string {
	if len(sections) == 0 {
		return ""
	}
	return strings.Join(sections, "\n")
}

// RenderTitleBox renders a title box as individual lines, for callers that
// stream output line by line.
func RenderTitleBox(title string, width int) []string {
	return strings.Split(LayoutTitleBox(title, width), "\n")
}

// RenderErrorBox renders a bordered error heading as individual lines.
func RenderErrorBox(title string) []string {
	return strings.Split(LayoutEmphasisBox(styles.ErrorStyle.Render(title), styles.ColorError), "\n")
}

// RenderInfoSection renders free-form informational content, indented, as
// individual lines.
func RenderInfoSection(content string) []string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, "  "+line)
	}
	return out
}

// RenderComposedSections writes pre-rendered sections to stderr separated
// by blank lines.
func RenderComposedSections(sections ...string) {
	writeStderr(LayoutJoinVertical(sections...) + "\n")
}
