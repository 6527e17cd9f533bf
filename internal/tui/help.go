package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// ── Hint line ──────────────────────────────────────────────────────

// hint is one key/action pair on a help line.
type hint struct {
	key    string
	action string
	// core hints are kept when the line is too narrow for the full set.
	core bool
}

const hintGap = "  "

var (
	browseHints = []hint{
		{"↑/↓", "move", true},
		{"enter", "open", false},
		{"s", "search", true},
		{"/", "filter", true},
		{"i", "inspect", false},
		{"o", "open site", false},
		{"r", "reload", false},
		{"p", "sidebar", false},
		{"tab", "switch", false},
		{"?", "keys", true},
		{"q", "quit", true},
	}
	filterHints = []hint{
		{"type", "to filter", true},
		{"enter", "apply", true},
		{"esc", "clear", true},
	}
	searchHints = []hint{
		{"↑/↓", "move", true},
		{"enter", "show deals", true},
		{"esc", "close", true},
	}
	inspectHints = []hint{
		{"↑/↓", "scroll", true},
		{"^d/^u", "half", false},
		{"g/G", "top/bottom", false},
		{"esc", "close", true},
	}
	helpOverlayHints = []hint{
		{"↑/↓", "scroll", true},
		{"^d/^u", "half-page", false},
		{"g/G", "top/bottom", false},
		{"?/esc", "close", true},
	}
)

// restrictedHints swaps the enter hint for the way back to the full feed.
func restrictedHints() []hint {
	out := make([]hint, 0, len(browseHints))
	for _, h := range browseHints {
		if h.key == "enter" {
			h = hint{"esc", "all deals", true}
		}
		out = append(out, h)
	}
	return out
}

func (h hint) render() string {
	t := &activeTheme
	if h.action == "" {
		return t.DimText.Render(h.key)
	}
	return t.BoldPrimary.Render(h.key) + " " + t.DimText.Render(h.action)
}

// layoutHints renders hints on at most rows lines of width cells. When the
// full set does not fit, every core hint is kept and the others are added
// back in order while they still fit. A core set that overflows is cut
// after the last row.
func layoutHints(hints []hint, width, rows int) string {
	width = max(1, width)
	rows = max(1, rows)

	if lines := packHints(hints, width); len(lines) <= rows {
		return strings.Join(lines, "\n")
	}

	keep := make([]bool, len(hints))
	for i, h := range hints {
		keep[i] = h.core
	}
	for i, h := range hints {
		if h.core {
			continue
		}
		keep[i] = true
		if len(packHints(pickHints(hints, keep), width)) > rows {
			keep[i] = false
		}
	}

	lines := packHints(pickHints(hints, keep), width)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	return strings.Join(lines, "\n")
}

func pickHints(hints []hint, keep []bool) []hint {
	out := make([]hint, 0, len(hints))
	for i, h := range hints {
		if keep[i] {
			out = append(out, h)
		}
	}
	return out
}

// packHints fills lines greedily; a single hint wider than the line is
// truncated.
func packHints(hints []hint, width int) []string {
	var lines []string
	var line string
	lineWidth := 0
	gapWidth := len(hintGap)

	for _, h := range hints {
		part := h.render()
		partWidth := ansi.StringWidth(part)
		if partWidth > width {
			part = ansi.Truncate(part, width, "…")
			partWidth = ansi.StringWidth(part)
		}
		switch {
		case lineWidth == 0:
			line, lineWidth = part, partWidth
		case lineWidth+gapWidth+partWidth <= width:
			line += activeTheme.DimText.Render(hintGap) + part
			lineWidth += gapWidth + partWidth
		default:
			lines = append(lines, line)
			line, lineWidth = part, partWidth
		}
	}
	if lineWidth > 0 {
		lines = append(lines, line)
	}
	return lines
}

// ── Help overlay ───────────────────────────────────────────────────

type helpEntry struct {
	key  string
	desc string
}

// helpSection is one titled block of the help overlay. Notes are wrapped
// to the overlay width below the entries.
type helpSection struct {
	title   string
	entries []helpEntry
	notes   []string
}

const (
	helpMaxWidth  = 84
	helpIndent    = "  "
	helpFooterGap = 1
)

// helpBox returns the content size of the overlay box: body rows scroll,
// the footer row below them does not.
func helpBox(width, height int) (contentWidth, bodyHeight int) {
	frameW := activeTheme.HelpOverlay.GetHorizontalFrameSize()
	frameH := activeTheme.HelpOverlay.GetVerticalFrameSize()
	contentWidth = max(1, min(width-4, helpMaxWidth)-frameW)
	bodyHeight = max(1, height-4-frameH-1-helpFooterGap)
	return contentWidth, bodyHeight
}

func helpPageStep(width, height int) int {
	_, h := helpBox(width, height)
	return max(1, h/2)
}

// helpBodyLines lays the sections out in one column. Key cells share a
// single width across sections so descriptions line up down the page.
func helpBodyLines(sections []helpSection, width int) []string {
	t := &activeTheme
	keyWidth := 0
	for _, sec := range sections {
		for _, e := range sec.entries {
			keyWidth = max(keyWidth, ansi.StringWidth(e.key))
		}
	}
	inner := max(1, width-len(helpIndent))

	var lines []string
	for i, sec := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			helpIndent+t.BoldOnly.Render(sec.title),
			helpIndent+t.DimText.Render(strings.Repeat("─", min(inner, max(ansi.StringWidth(sec.title), 12)))),
		)
		for _, e := range sec.entries {
			k := t.BoldPrimary.Render(visualPad(e.key, keyWidth))
			lines = append(lines, visualTruncate(helpIndent+k+"  "+t.Normal.Render(e.desc), width))
		}
		for _, note := range sec.notes {
			for _, l := range wrapText(note, inner) {
				lines = append(lines, helpIndent+t.HintText.Render(l))
			}
		}
	}
	return lines
}

func helpMaxScroll(width, height int, sections []helpSection) int {
	w, h := helpBox(width, height)
	return max(0, len(helpBodyLines(sections, w))-h)
}

// renderHelpOverlay draws the scrolled body with a fixed hint footer and a
// position marker when the body does not fit.
func renderHelpOverlay(width, height, scroll int, sections []helpSection) string {
	contentWidth, bodyHeight := helpBox(width, height)
	lines := helpBodyLines(sections, contentWidth)
	if len(lines) == 0 {
		lines = []string{helpIndent + "No key help available"}
	}

	scroll = min(max(scroll, 0), max(0, len(lines)-bodyHeight))
	end := min(scroll+bodyHeight, len(lines))
	body := lines[scroll:end]

	footerWidth := max(1, contentWidth-len(helpIndent))
	footer := layoutHints(helpOverlayHints, footerWidth, 1)
	if len(lines) > bodyHeight {
		marker := fmt.Sprintf("%d-%d/%d", scroll+1, end, len(lines))
		if room := footerWidth - len(marker) - len(hintGap); room > 0 {
			footer = layoutHints(helpOverlayHints, room, 1)
			gap := footerWidth - ansi.StringWidth(footer) - len(marker)
			footer += strings.Repeat(" ", max(len(hintGap), gap)) + activeTheme.HintText.Render(marker)
		}
	}

	content := strings.Join(body, "\n") + strings.Repeat("\n", helpFooterGap+1) + helpIndent + footer
	box := activeTheme.HelpOverlay.Width(contentWidth).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
