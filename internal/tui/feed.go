package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/daptify14/dealit/internal/cms"
)

// --- Filtering ---

func (m *Model) applyActiveFilter() {
	switch m.activeTabName() {
	case tabDeals:
		m.applyFeedFilter()
	case tabMerchants:
		m.applyMerchantsFilter()
	}
}

// applyFeedFilter rebuilds the visible coupon list from the merchant
// restriction and the fuzzy filter over "title merchant".
func (m *Model) applyFeedFilter() {
	m.feed.visible = nil
	if m.catalog == nil {
		m.feed.cursor = 0
		return
	}

	candidates := make([]int, 0, len(m.catalog.Coupons))
	for i, c := range m.catalog.Coupons {
		if m.feed.merchant != "" && c.MerchantSlug != m.feed.merchant {
			continue
		}
		candidates = append(candidates, i)
	}

	query := strings.TrimSpace(m.filterInput.Value())
	if query == "" {
		m.feed.visible = append(m.feed.visible, candidates...)
	} else {
		haystack := make([]string, len(candidates))
		for i, idx := range candidates {
			c := m.catalog.Coupons[idx]
			haystack[i] = c.Title + " " + m.catalog.MerchantName(c.MerchantSlug)
		}
		for _, match := range fuzzy.Find(query, haystack) {
			m.feed.visible = append(m.feed.visible, candidates[match.Index])
		}
	}
	m.feed.cursor = clampCursor(m.feed.cursor, len(m.feed.visible))
}

func (m *Model) applyMerchantsFilter() {
	m.merchants.visible = nil
	if m.catalog == nil {
		m.merchants.cursor = 0
		return
	}
	query := strings.TrimSpace(m.filterInput.Value())
	if query == "" {
		for i := range m.catalog.Merchants {
			m.merchants.visible = append(m.merchants.visible, i)
		}
	} else {
		names := make([]string, len(m.catalog.Merchants))
		for i, mc := range m.catalog.Merchants {
			names[i] = mc.Name
		}
		for _, match := range fuzzy.Find(query, names) {
			m.merchants.visible = append(m.merchants.visible, match.Index)
		}
	}
	m.merchants.cursor = clampCursor(m.merchants.cursor, len(m.merchants.visible))
}

func clampCursor(cursor, total int) int {
	if total <= 0 {
		return 0
	}
	return min(max(cursor, 0), total-1)
}

// currentCoupon returns the coupon under the feed cursor.
func (m Model) currentCoupon() (cms.Coupon, bool) {
	if m.catalog == nil || m.feed.cursor < 0 || m.feed.cursor >= len(m.feed.visible) {
		return cms.Coupon{}, false
	}
	return m.catalog.Coupons[m.feed.visible[m.feed.cursor]], true
}

// currentMerchant returns the merchant under the Merchants tab cursor.
func (m Model) currentMerchant() (cms.Merchant, bool) {
	if m.catalog == nil || m.merchants.cursor < 0 || m.merchants.cursor >= len(m.merchants.visible) {
		return cms.Merchant{}, false
	}
	return m.catalog.Merchants[m.merchants.visible[m.merchants.cursor]], true
}

// focusedMerchant is the merchant the sidebar describes.
func (m Model) focusedMerchant() (cms.Merchant, bool) {
	if m.activeTabName() == tabMerchants {
		return m.currentMerchant()
	}
	if m.feed.merchant != "" {
		return m.catalog.Merchant(m.feed.merchant)
	}
	if c, ok := m.currentCoupon(); ok {
		return m.catalog.Merchant(c.MerchantSlug)
	}
	return cms.Merchant{}, false
}

// --- Rendering ---

// listBlock is a rendered list with the line span of every item, used to
// keep the cursor item in view and for mouse hit-testing.
type listBlock struct {
	lines []string
	spans [][2]int // [start, end) line offsets per item
}

func (b *listBlock) add(lines ...string) {
	start := len(b.lines)
	b.lines = append(b.lines, lines...)
	b.spans = append(b.spans, [2]int{start, len(b.lines)})
}

// itemAt returns the item index covering line, or -1.
func (b listBlock) itemAt(line int) int {
	for i, s := range b.spans {
		if line >= s[0] && line < s[1] {
			return i
		}
	}
	return -1
}

func (m Model) renderFeed(width int, now time.Time) listBlock {
	var b listBlock
	title := fmt.Sprintf("Latest deals (%d)", len(m.feed.visible))
	if m.feed.merchant != "" && m.catalog != nil {
		title = fmt.Sprintf("Deals from %s (%d)", m.catalog.MerchantName(m.feed.merchant), len(m.feed.visible))
	}
	header := []string{
		" " + activeTheme.BoldOnly.Render(title),
		"",
	}

	if len(m.feed.visible) == 0 {
		lines := append(header, " "+activeTheme.DimText.Render(m.emptyFeedText()))
		return listBlock{lines: lines}
	}

	b.lines = header
	for i, idx := range m.feed.visible {
		b.add(m.renderCouponCard(m.catalog.Coupons[idx], i == m.feed.cursor, width, now)...)
	}
	return b
}

func (m Model) emptyFeedText() string {
	switch {
	case m.catalog.Empty() && m.ui.loadErr != nil:
		return "No deals loaded. Press r to retry."
	case m.catalog.Empty():
		return "No deals yet."
	case m.filterInput.Value() != "":
		return "No deals match the filter."
	default:
		return "This merchant has no deals."
	}
}

func (m Model) renderCouponCard(c cms.Coupon, selected bool, width int, now time.Time) []string {
	t := &activeTheme
	marker := "  "
	titleStyle := t.BoldOnly
	if selected {
		marker = t.PrimaryFg.Render("▌ ")
		titleStyle = t.Selected
	}

	badge := t.DealBadge.Render("DEAL")
	if c.Kind == cms.KindCode && c.Code != "" {
		badge = t.CodeBadge.Render(c.Code)
	}
	right := badge
	if c.Discount != "" {
		right = t.Discount.Render(c.Discount) + " " + badge
	}

	inner := max(1, width-2)
	titleWidth := max(1, inner-visualWidth(right)-1)
	lines := []string{
		marker + visualPad(titleStyle.Render(visualTruncate(c.Title, titleWidth)), titleWidth) + " " + right,
	}

	meta := []string{m.catalog.MerchantName(c.MerchantSlug)}
	switch {
	case c.Expired(now):
		meta = append(meta, t.Expired.Render("expired"))
	case !c.ExpiresAt.IsZero():
		meta = append(meta, "expires "+c.ExpiresAt.Format("2006-01-02"))
	}
	if c.Verified {
		meta = append(meta, t.Verified.Render("verified"))
	}
	if c.Uses > 0 {
		meta = append(meta, fmt.Sprintf("%d used", c.Uses))
	}
	lines = append(lines, "  "+visualTruncate(t.HintText.Render(strings.Join(meta, " · ")), inner))

	if c.Description != "" {
		desc := wrapText(c.Description, inner)
		if len(desc) > descriptionLines {
			desc = desc[:descriptionLines]
			desc[descriptionLines-1] = visualTruncate(desc[descriptionLines-1]+" …", inner)
		}
		for _, d := range desc {
			lines = append(lines, "  "+t.DimText.Render(d))
		}
	}
	return append(lines, "")
}

func (m Model) renderMerchantList(width int) listBlock {
	var b listBlock
	b.lines = []string{
		" " + activeTheme.BoldOnly.Render(fmt.Sprintf("Merchants (%d)", len(m.merchants.visible))),
		"",
	}
	if len(m.merchants.visible) == 0 {
		b.lines = append(b.lines, " "+activeTheme.DimText.Render("No merchants."))
		return b
	}
	for i, idx := range m.merchants.visible {
		mc := m.catalog.Merchants[idx]
		count := activeTheme.HintText.Render(fmt.Sprintf("%d deals", mc.CouponCount))
		nameWidth := max(1, width-4-visualWidth(count))
		name := visualPad(visualTruncate(mc.Name, nameWidth), nameWidth)
		row := "  " + name + " " + count
		if i == m.merchants.cursor {
			row = activeTheme.PrimaryFg.Render("▌ ") + activeTheme.Selected.Render(name) + " " + count
		}
		b.add(row)
	}
	return b
}
