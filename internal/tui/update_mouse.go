package tui

import (
	"fmt"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
)

// wheelStep is the number of rows one wheel notch scrolls.
const wheelStep = 3

// --- Mouse click handler ---

func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.overlays.showHelp || m.search.show || m.inspect.show || m.filterInput.Focused() {
		return m, nil
	}
	if msg.Button != tea.MouseLeft {
		return m, nil
	}

	// The last header row is the tab bar.
	if msg.Y == headerLines-1 {
		return m.handleTabClick(msg.X)
	}

	feedWidth, sideWidth := m.columnWidths()
	if sideWidth > 0 && msg.X >= feedWidth {
		return m, nil
	}
	if msg.Y < m.page.top || msg.Y >= m.page.height-m.page.bottom {
		return m, nil
	}

	line := m.page.scrollY + msg.Y - m.page.gridTop()
	idx := m.list.itemAt(line)
	if idx < 0 {
		return m, nil
	}

	cursor := m.feed.cursor
	if m.activeTabName() == tabMerchants {
		cursor = m.merchants.cursor
	}
	if idx == cursor {
		return m.handleEnter()
	}
	m.setCursor(idx)
	return m, nil
}

// handleTabClick switches to the tab label under column x.
func (m Model) handleTabClick(x int) (tea.Model, tea.Cmd) {
	pos := 0
	for i, name := range m.tabNames {
		w := visualWidth(fmt.Sprintf(" %d %s ", i+1, name))
		if x >= pos && x < pos+w {
			return m, m.switchTab(i)
		}
		pos += w + 2
	}
	return m, nil
}

// --- Mouse wheel handler ---

func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	if m.overlays.showHelp || m.search.show || m.filterInput.Focused() {
		return m, nil
	}

	if m.inspect.show {
		m.inspect.ensureViewport(m.effectiveWidth(), m.inspectViewHeight())
		scrollViewportByMouse(&m.inspect.viewport, msg.Button, wheelStep)
		return m, nil
	}

	switch msg.Button {
	case tea.MouseWheelUp:
		m.page.scrollBy(-wheelStep)
	case tea.MouseWheelDown:
		m.page.scrollBy(wheelStep)
	}
	return m, nil
}

func scrollViewportByMouse(vp *viewport.Model, btn tea.MouseButton, amount int) bool {
	switch btn {
	case tea.MouseWheelUp:
		vp.ScrollUp(amount)
		return true
	case tea.MouseWheelDown:
		vp.ScrollDown(amount)
		return true
	}
	return false
}
