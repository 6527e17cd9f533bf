package tui

import (
	"fmt"
	"strings"
)

// renderTabs draws the numbered tab labels; the number is the tab's jump
// key.
func renderTabs(names []string, active int) string {
	parts := make([]string, 0, len(names))
	for i, name := range names {
		style := activeTheme.InactiveTab
		if i == active {
			style = activeTheme.ActiveTab
		}
		parts = append(parts, style.Render(fmt.Sprintf(" %d %s ", i+1, name)))
	}
	return strings.Join(parts, "  ")
}

type menuItem struct {
	label       string
	description string
}

// renderMenuItems renders a cursor list of width cells with each item's
// description right-aligned in the hint color. Labels give way to the
// description when the row is too narrow for both.
func renderMenuItems(items []menuItem, cursor, width int) string {
	t := &activeTheme
	lines := make([]string, 0, len(items))
	for i, item := range items {
		prefix, style := "  ", t.Normal
		if i == cursor {
			prefix, style = "> ", t.Selected
		}
		desc := item.description
		labelWidth := max(1, width-len(prefix)-visualWidth(desc)-1)
		label := visualTruncate(item.label, labelWidth)
		gap := max(1, width-len(prefix)-visualWidth(label)-visualWidth(desc))
		row := style.Render(prefix + label)
		if desc != "" {
			row += strings.Repeat(" ", gap) + t.HintText.Render(desc)
		}
		lines = append(lines, visualTruncate(row, width))
	}
	return strings.Join(lines, "\n")
}
