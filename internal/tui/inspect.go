package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/daptify14/dealit/internal/cms"
)

// MerchantDocument is the normalized view of one merchant and its coupons,
// as printed by "dealit inspect" and shown in the inspect overlay.
type MerchantDocument struct {
	Merchant cms.Merchant `json:"merchant"`
	Coupons  []cms.Coupon `json:"coupons"`
}

// MarshalMerchant renders the normalized merchant document as indented JSON.
func MarshalMerchant(m cms.Merchant, coupons []cms.Coupon) (string, error) {
	if coupons == nil {
		coupons = []cms.Coupon{}
	}
	data, err := json.MarshalIndent(MerchantDocument{Merchant: m, Coupons: coupons}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding merchant %q: %w", m.Slug, err)
	}
	return string(data), nil
}

func (m Model) inspectCmd(merchant cms.Merchant) tea.Cmd {
	coupons := m.catalog.CouponsFor(merchant.Slug)
	return func() tea.Msg {
		doc, err := MarshalMerchant(merchant, coupons)
		if err != nil {
			return inspectReadyMsg{slug: merchant.Slug, err: err}
		}
		return inspectReadyMsg{slug: merchant.Slug, content: Highlight(doc, "merchant.json")}
	}
}

func (m Model) openInspect() (tea.Model, tea.Cmd) {
	merchant, ok := m.focusedMerchant()
	if !ok {
		m.ui.message = "No merchant to inspect"
		return m, nil
	}
	m.inspect = inspectView{show: true, slug: merchant.Slug, loading: true}
	return m, m.inspectCmd(merchant)
}

func (m Model) handleInspectReady(msg inspectReadyMsg) (tea.Model, tea.Cmd) {
	if !m.inspect.show || msg.slug != m.inspect.slug {
		return m, nil
	}
	m.inspect.loading = false
	if msg.err != nil {
		m.inspect = inspectView{}
		m.ui.message = "Inspect failed: " + msg.err.Error()
		return m, nil
	}
	m.inspect.content = msg.content
	m.inspect.viewportReady = false
	return m, nil
}

func (m Model) inspectViewHeight() int {
	return max(1, m.height-headerLines-statusLines)
}

func (m Model) handleInspectKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.inspect.ensureViewport(m.effectiveWidth(), m.inspectViewHeight())
	vp := &m.inspect.viewport
	switch {
	case key.Matches(msg, InspectKeys.Close):
		m.inspect = inspectView{}
	case key.Matches(msg, SharedKeys.Up):
		vp.ScrollUp(1)
	case key.Matches(msg, SharedKeys.Down):
		vp.ScrollDown(1)
	case key.Matches(msg, ScrollKeys.HalfUp):
		vp.HalfPageUp()
	case key.Matches(msg, ScrollKeys.HalfDown):
		vp.HalfPageDown()
	case key.Matches(msg, ScrollKeys.PageUp):
		vp.PageUp()
	case key.Matches(msg, ScrollKeys.PageDown):
		vp.PageDown()
	case key.Matches(msg, SharedKeys.Home):
		vp.GotoTop()
	case key.Matches(msg, SharedKeys.End):
		vp.GotoBottom()
	}
	return m, nil
}

func (m Model) renderInspect() string {
	var b strings.Builder
	b.WriteString(renderBreadcrumb(appName, "Inspect", m.inspect.slug))
	b.WriteString("\n")
	b.WriteString(renderSeparator(m.effectiveWidth()))
	b.WriteString("\n\n")
	if m.inspect.loading {
		b.WriteString(" " + m.ui.loadingSpinner.View() + " Rendering...")
	} else {
		m.inspect.ensureViewport(m.effectiveWidth(), m.inspectViewHeight())
		b.WriteString(m.inspect.viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(m.hintLine(inspectHints))
	return b.String()
}
