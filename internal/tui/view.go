package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// View implements tea.Model by rendering the current screen state.
func (m Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	if m.ui.mouseCapture {
		v.MouseMode = tea.MouseModeCellMotion
	} else {
		v.MouseMode = tea.MouseModeNone
	}
	v.KeyboardEnhancements.ReportEventTypes = true

	switch {
	case m.overlays.showHelp:
		v.Content = m.renderHelp()
	case m.inspect.show:
		v.Content = m.renderInspect()
	case m.search.show:
		v.Content = m.renderSearchOverlay()
	case m.ui.loading && m.catalog.Empty():
		v.Content = m.renderLoading()
	case m.height == 0:
		// No size yet: render the page at its natural height.
		v.Content = strings.Join(append(m.headerRows(), m.statusRows()...), "\n")
	default:
		v.Content = m.page.render(m.headerRows(), m.statusRows())
	}
	return v
}

func (m Model) renderLoading() string {
	content := fmt.Sprintf("%s Loading deals...", m.ui.loadingSpinner.View())
	return lipgloss.Place(m.effectiveWidth(), max(1, m.height), lipgloss.Center, lipgloss.Center, content)
}

// headerRows renders the fixed rows above the page.
func (m Model) headerRows() []string {
	width := m.effectiveWidth()
	lines := []string{
		visualTruncate(renderBreadcrumb(m.breadcrumbParts()...), width),
		renderSeparator(width),
		m.renderTabBar(),
	}
	if m.filterInput.Focused() || m.filterInput.Value() != "" {
		// The filter replaces the separator so the header height is fixed.
		lines[1] = " " + visualTruncate(m.filterInput.View(), max(1, width-1))
	}
	return lines
}

func (m Model) renderTabBar() string {
	bar := renderTabs(m.tabNames, m.activeTab)
	if m.ui.loading {
		bar += "  " + m.ui.loadingSpinner.View()
	}
	return visualTruncate(bar, m.effectiveWidth())
}

// --- Status Bars ---

// statusRows renders the fixed rows below the page: the status bar and
// the key hints.
func (m Model) statusRows() []string {
	return []string{m.renderStatusBar(), m.renderHelpLine()}
}

func (m Model) renderStatusBar() string {
	width := m.effectiveWidth()
	if m.ui.loadErr != nil && m.catalog.Empty() {
		return activeTheme.ErrorBanner.Width(width).Render(
			visualTruncate("Load failed: "+m.ui.loadErr.Error()+" (r to retry)", max(1, width-2)))
	}

	var left string
	switch m.activeTabName() {
	case tabMerchants:
		left = fmt.Sprintf("%d merchants", len(m.merchants.visible))
		if len(m.merchants.visible) > 0 {
			left = fmt.Sprintf("%d/%d merchants", m.merchants.cursor+1, len(m.merchants.visible))
		}
	default:
		left = fmt.Sprintf("%d deals", len(m.feed.visible))
		if len(m.feed.visible) > 0 {
			left = fmt.Sprintf("%d/%d deals", m.feed.cursor+1, len(m.feed.visible))
		}
	}
	if m.ui.message != "" {
		left += " · " + m.ui.message
	}

	right := m.sidebarModeLabel()
	gap := max(1, width-2-visualWidth(left)-visualWidth(right))
	text := visualTruncate(left+strings.Repeat(" ", gap)+right, max(1, width-2))
	return activeTheme.StatusBar.Width(width).Render(text)
}

// sidebarModeLabel describes the sidebar positioning for the status bar.
func (m Model) sidebarModeLabel() string {
	if !m.page.wide {
		return "sidebar off"
	}
	if !m.sticky.Active() {
		return "sidebar"
	}
	return "sidebar " + m.sticky.State().Mode.String()
}

func (m Model) renderHelpLine() string {
	switch {
	case m.filterInput.Focused():
		return m.hintLine(filterHints)
	case m.feed.merchant != "" && m.activeTabName() == tabDeals:
		return m.hintLine(restrictedHints())
	}
	return m.hintLine(browseHints)
}

// hintLine renders hints on the single help row of the status area.
func (m Model) hintLine(hints []hint) string {
	return layoutHints(hints, m.effectiveWidth(), 1)
}

// --- Help ---

func (m Model) renderHelp() string {
	return renderHelpOverlay(m.width, m.height, m.overlays.helpScroll, m.helpSections())
}

func (m Model) helpOverlayMaxScroll() int {
	return helpMaxScroll(m.width, m.height, m.helpSections())
}

// helpSections lists every binding by context. The notes explain the
// sidebar, search and inspect behavior that key names alone do not.
func (m Model) helpSections() []helpSection {
	global := bindingsToHelpEntries(
		SharedKeys.Up, SharedKeys.Down, SharedKeys.Home, SharedKeys.End,
		SharedKeys.TabNext, SharedKeys.Tab1, SharedKeys.Tab2,
		SharedKeys.Help, SharedKeys.Back, SharedKeys.Quit,
	)
	global = append(global, helpEntry{"m", m.mouseModeHelpLabel()})

	return []helpSection{
		{title: "Global", entries: global},
		{
			title: "Browse",
			entries: bindingsToHelpEntries(
				SharedKeys.Enter, SharedKeys.Filter,
				PageKeys.Search, PageKeys.Inspect, PageKeys.Open, PageKeys.Reload,
			),
			notes: []string{
				"Enter on a coupon shows every deal from its merchant; esc returns to the full feed.",
			},
		},
		{
			title: "Page",
			entries: bindingsToHelpEntries(
				ScrollKeys.HalfDown, ScrollKeys.HalfUp, ScrollKeys.PageDown, ScrollKeys.PageUp,
				PageKeys.Sidebar,
			),
			notes: []string{
				"The merchant sidebar scrolls with the page and catches at the header and status bar.",
				fmt.Sprintf("It appears at %d columns and up unless toggled; below %d it is always hidden.", panelAutoThreshold, panelMinWidth),
			},
		},
		{
			title:   "Search",
			entries: bindingsToHelpEntries(SearchKeys.Up, SearchKeys.Down, SearchKeys.Select, SearchKeys.Close),
			notes: []string{
				"Matches merchant names first, then categories and websites; name prefixes rank highest.",
			},
		},
		{
			title:   "Inspect",
			entries: bindingsToHelpEntries(InspectKeys.Close),
			notes: []string{
				"Shows the merchant and its coupons as the normalized JSON the CMS returned.",
			},
		},
	}
}

func (m Model) mouseModeHelpLabel() string {
	if m.ui.mouseCapture {
		return "Mouse on (wheel/click)"
	}
	return "Copy mode (drag select)"
}
