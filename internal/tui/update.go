package tui

import (
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// Update implements tea.Model by dispatching messages to the appropriate handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.logMsg(msg)

	switch msg := msg.(type) {
	case frameMsg:
		// Frame callbacks only restyle the panel; the document is unchanged.
		m.page.runFrames(msg.at)
		return m, m.page.frameCmd()
	case spinner.TickMsg:
		if m.ui.loading || m.inspect.loading {
			var cmd tea.Cmd
			m.ui.loadingSpinner, cmd = m.ui.loadingSpinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	next, cmd := m.route(msg)
	nm, ok := next.(Model)
	if !ok {
		return next, cmd
	}
	if nm.exiting {
		nm.Close()
		return nm, cmd
	}
	nm.syncPage()
	if nm.cursorMoved {
		nm.cursorMoved = false
		nm.revealCursor()
	}
	return nm, tea.Batch(cmd, nm.page.frameCmd())
}

func (m Model) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.BackgroundColorMsg:
		// Terminal background detection is cross-cutting and is applied
		// before any view-specific routing.
		SetTheme(ThemeForBackground(msg.IsDark()))
		m.restyleInputsForTheme()
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.page.resize(msg.Width, msg.Height, m.sidebar.shouldShow(msg.Width))
		m.inspect.viewportReady = false
		return m, nil
	case catalogLoadedMsg:
		return m.handleCatalogLoaded(msg)
	case inspectReadyMsg:
		return m.handleInspectReady(msg)
	case websiteOpenedMsg:
		if msg.err != nil {
			m.ui.message = "Open failed: " + msg.err.Error()
		}
		return m, nil

	// Input messages
	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)
	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)
	case tea.KeyPressMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

// --- Root key gate ---

func (m Model) handleKeyMsg(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if !m.filterInput.Focused() && !m.search.show && key.Matches(msg, SharedKeys.Mouse) {
		m.toggleMouseCapture()
		return m, nil
	}

	if m.overlays.showHelp {
		return m.handleHelpKeys(msg)
	}

	if m.inspect.show {
		return m.handleInspectKeys(msg)
	}

	if m.search.show {
		return m.handleSearchKeys(msg)
	}

	if m.filterInput.Focused() {
		switch {
		case key.Matches(msg, FilterKeys.Cancel):
			if m.filterInput.Value() != "" {
				m.filterInput.SetValue("")
				m.applyActiveFilter()
			} else {
				m.filterInput.Blur()
			}
			return m, nil
		case key.Matches(msg, FilterKeys.Confirm):
			m.filterInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.applyActiveFilter()
			m.page.scrollTo(0)
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, SharedKeys.Quit):
		m.exiting = true
		return m, tea.Quit
	case key.Matches(msg, SharedKeys.Help):
		m.overlays.showHelp = true
		m.overlays.helpScroll = 0
		return m, nil
	case key.Matches(msg, SharedKeys.TabNext):
		return m, m.switchTab((m.activeTab + 1) % len(m.tabNames))
	case key.Matches(msg, SharedKeys.TabPrev):
		return m, m.switchTab((m.activeTab - 1 + len(m.tabNames)) % len(m.tabNames))
	case key.Matches(msg, SharedKeys.Tab1):
		return m, m.switchTab(0)
	case key.Matches(msg, SharedKeys.Tab2):
		return m, m.switchTab(1)
	case key.Matches(msg, SharedKeys.Filter):
		// Reinitialize before focus so a zero-valued input never reaches
		// the textinput cursor.
		m.filterInput = newFilterInput()
		m.filterInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, PageKeys.Search):
		return m, m.openSearch()
	case key.Matches(msg, PageKeys.Inspect):
		return m.openInspect()
	case key.Matches(msg, PageKeys.Open):
		return m.openWebsite()
	case key.Matches(msg, PageKeys.Reload):
		if m.ui.loading {
			return m, nil
		}
		return m.reload()
	case key.Matches(msg, PageKeys.Sidebar):
		m.sidebar.toggle(m.effectiveWidth())
		m.page.resize(m.effectiveWidth(), m.height, m.sidebar.shouldShow(m.effectiveWidth()))
		if m.sidebar.shouldShow(m.effectiveWidth()) {
			m.ui.message = "Sidebar shown"
		} else {
			m.ui.message = "Sidebar hidden"
		}
		return m, nil
	case key.Matches(msg, SharedKeys.Back):
		return m.handleBack()
	case key.Matches(msg, SharedKeys.Enter):
		return m.handleEnter()
	}

	return m.handleNavigationKeys(msg)
}

func (m Model) handleHelpKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	maxScroll := m.helpOverlayMaxScroll()
	pageStep := helpPageStep(m.width, m.height)
	switch {
	case key.Matches(msg, HelpOverlayKeys.Close):
		m.overlays.showHelp = false
		m.overlays.helpScroll = 0
	case key.Matches(msg, SharedKeys.Up):
		m.overlays.helpScroll = max(0, m.overlays.helpScroll-1)
	case key.Matches(msg, SharedKeys.Down):
		m.overlays.helpScroll = min(maxScroll, m.overlays.helpScroll+1)
	case key.Matches(msg, ScrollKeys.HalfUp), key.Matches(msg, ScrollKeys.PageUp):
		m.overlays.helpScroll = max(0, m.overlays.helpScroll-pageStep)
	case key.Matches(msg, ScrollKeys.HalfDown), key.Matches(msg, ScrollKeys.PageDown):
		m.overlays.helpScroll = min(maxScroll, m.overlays.helpScroll+pageStep)
	case key.Matches(msg, SharedKeys.Home):
		m.overlays.helpScroll = 0
	case key.Matches(msg, SharedKeys.End):
		m.overlays.helpScroll = maxScroll
	}
	return m, nil
}

// handleBack clears the filter first, then the merchant restriction.
func (m Model) handleBack() (tea.Model, tea.Cmd) {
	switch {
	case m.filterInput.Value() != "":
		m.filterInput.SetValue("")
		m.applyActiveFilter()
	case m.feed.merchant != "" && m.activeTabName() == tabDeals:
		m.feed.merchant = ""
		m.feed.cursor = 0
		m.applyFeedFilter()
		m.ui.message = "Showing all deals"
		m.page.scrollTo(0)
	default:
		m.ui.message = ""
	}
	return m, nil
}

// handleEnter opens the merchant under the cursor: on the Merchants tab it
// shows that merchant's deals, on the Deals tab it restricts the feed to
// the coupon's merchant.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.activeTabName() {
	case tabMerchants:
		if mc, ok := m.currentMerchant(); ok {
			return m.selectMerchant(mc.Slug, mc.Name)
		}
	case tabDeals:
		if m.feed.merchant != "" {
			return m, nil
		}
		if c, ok := m.currentCoupon(); ok && c.MerchantSlug != "" {
			return m.selectMerchant(c.MerchantSlug, m.catalog.MerchantName(c.MerchantSlug))
		}
	}
	return m, nil
}

func (m Model) handleNavigationKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, SharedKeys.Up):
		m.moveCursor(-navigationStepForKey(msg))
	case key.Matches(msg, SharedKeys.Down):
		m.moveCursor(navigationStepForKey(msg))
	case key.Matches(msg, SharedKeys.Home):
		m.setCursor(0)
		m.page.scrollTo(0)
	case key.Matches(msg, SharedKeys.End):
		m.setCursor(m.listLen() - 1)
		m.page.scrollTo(m.page.maxScroll())
	case key.Matches(msg, ScrollKeys.HalfDown):
		m.page.scrollBy(m.halfPage())
	case key.Matches(msg, ScrollKeys.HalfUp):
		m.page.scrollBy(-m.halfPage())
	case key.Matches(msg, ScrollKeys.PageDown):
		m.page.scrollBy(m.bandHeight())
	case key.Matches(msg, ScrollKeys.PageUp):
		m.page.scrollBy(-m.bandHeight())
	}
	return m, nil
}

// --- Cursor ---

func (m Model) listLen() int {
	if m.activeTabName() == tabMerchants {
		return len(m.merchants.visible)
	}
	return len(m.feed.visible)
}

func (m *Model) setCursor(i int) {
	i = clampCursor(i, m.listLen())
	if m.activeTabName() == tabMerchants {
		m.merchants.cursor = i
	} else {
		m.feed.cursor = i
	}
	m.cursorMoved = true
}

func (m *Model) moveCursor(delta int) {
	cursor := m.feed.cursor
	if m.activeTabName() == tabMerchants {
		cursor = m.merchants.cursor
	}
	m.setCursor(cursor + delta)
}
