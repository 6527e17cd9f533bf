package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/daptify14/dealit/internal/search"
)

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Merchant name..."
	ti.Prompt = "› "
	s := ti.Styles()
	s.Focused.Prompt = activeTheme.PrimaryFg
	s.Blurred.Prompt = activeTheme.PrimaryFg
	ti.SetStyles(s)
	ti.CharLimit = 80
	ti.SetWidth(36)
	return ti
}

// rebuildIndex replaces the merchant search index from the catalog.
func (m *Model) rebuildIndex() {
	limit := m.opts.SearchLimit
	if limit <= 0 {
		limit = search.DefaultLimit
	}
	m.index = search.New(m.catalog.SearchRecords(), search.WithLimit(limit))
	if m.search.show {
		m.refreshSearchResults()
	}
}

func (m *Model) openSearch() tea.Cmd {
	m.search = searchOverlay{show: true, input: newSearchInput()}
	m.search.input.Focus()
	return textinput.Blink
}

func (m *Model) closeSearch() {
	m.search.input.Blur()
	m.search = searchOverlay{}
}

func (m *Model) refreshSearchResults() {
	m.search.results = m.index.Search(m.search.input.Value())
	m.search.cursor = clampCursor(m.search.cursor, len(m.search.results))
}

func (m Model) handleSearchKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, SearchKeys.Close):
		m.closeSearch()
		return m, nil
	case key.Matches(msg, SearchKeys.Up):
		m.search.cursor = max(0, m.search.cursor-1)
		return m, nil
	case key.Matches(msg, SearchKeys.Down):
		m.search.cursor = clampCursor(m.search.cursor+1, len(m.search.results))
		return m, nil
	case key.Matches(msg, SearchKeys.Select):
		if m.search.cursor < len(m.search.results) {
			match := m.search.results[m.search.cursor]
			m.closeSearch()
			return m.selectMerchant(match.Slug, match.Name)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	m.refreshSearchResults()
	return m, cmd
}

// selectMerchant restricts the Deals feed to one merchant and shows it.
func (m Model) selectMerchant(slug, name string) (tea.Model, tea.Cmd) {
	m.feed.merchant = slug
	m.feed.cursor = 0
	cmd := m.switchTab(0)
	m.ui.message = fmt.Sprintf("Showing deals from %s (esc to clear)", name)
	m.page.scrollTo(0)
	return m, cmd
}

func (m Model) renderSearchOverlay() string {
	t := &activeTheme
	boxWidth := min(56, max(30, m.effectiveWidth()-4))
	inner := max(1, boxWidth-t.HelpOverlay.GetHorizontalFrameSize())
	var b strings.Builder
	b.WriteString(t.MenuTitle.Render(" Find merchant "))
	b.WriteString("\n\n")
	b.WriteString(m.search.input.View())
	b.WriteString("\n\n")

	switch {
	case strings.TrimSpace(m.search.input.Value()) == "":
		b.WriteString(t.HintText.Render(fmt.Sprintf("%d merchants indexed", m.index.Len())))
	case len(m.search.results) == 0:
		b.WriteString(t.DimText.Render("No merchants found"))
	default:
		items := make([]menuItem, len(m.search.results))
		for i, r := range m.search.results {
			items[i] = menuItem{label: r.Name, description: r.Slug}
		}
		b.WriteString(renderMenuItems(items, m.search.cursor, inner))
	}
	b.WriteString("\n\n")
	b.WriteString(layoutHints(searchHints, inner, 2))

	box := t.HelpOverlay.Width(boxWidth).Render(b.String())
	return lipgloss.Place(m.effectiveWidth(), max(1, m.height), lipgloss.Center, lipgloss.Center, box)
}
