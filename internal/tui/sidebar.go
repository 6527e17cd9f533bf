package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/daptify14/dealit/internal/cms"
)

// renderSidebar renders the merchant card shown next to the feed. Rich
// merchants produce a card taller than the viewport band; sparse ones fit
// inside it.
func (m Model) renderSidebar(width int, now time.Time) []string {
	t := &activeTheme
	inner := max(1, width-2)
	pad := func(s string) string { return " " + s }

	merchant, ok := m.focusedMerchant()
	if !ok {
		return []string{
			"",
			pad(t.DimText.Render("No merchant selected.")),
			pad(t.HintText.Render("s search merchants")),
		}
	}

	lines := []string{""}
	name := t.BoldPrimary.Render(visualTruncate(merchant.Name, inner))
	if merchant.Featured {
		name += " " + t.Featured.Render("★")
	}
	lines = append(lines, pad(name))

	var facts []string
	if merchant.Rating > 0 {
		facts = append(facts, fmt.Sprintf("rated %.1f", merchant.Rating))
	}
	facts = append(facts, fmt.Sprintf("%d deals", merchant.CouponCount))
	lines = append(lines, pad(t.HintText.Render(strings.Join(facts, " · "))))
	if merchant.Website != "" {
		lines = append(lines, pad(t.PrimaryFg.Render(visualTruncate(merchant.Website, inner))))
	}
	lines = append(lines, pad(renderSeparator(min(inner, 24))))

	if merchant.Description != "" {
		lines = append(lines, "")
		for _, l := range wrapText(merchant.Description, inner) {
			lines = append(lines, pad(t.Normal.Render(l)))
		}
	}

	if len(merchant.Categories) > 0 {
		lines = append(lines, "", pad(t.BoldOnly.Render("Categories")))
		for _, l := range wrapText(strings.Join(merchant.Categories, " · "), inner) {
			lines = append(lines, pad(t.DimText.Render(l)))
		}
	}

	coupons := m.catalog.CouponsFor(merchant.Slug)
	if len(coupons) > 0 {
		lines = append(lines, "", pad(t.BoldOnly.Render("Top deals")))
		for i, c := range coupons {
			if i == sidebarCouponLimit {
				lines = append(lines, pad(t.HintText.Render(fmt.Sprintf("+%d more", len(coupons)-i))))
				break
			}
			label := "• " + c.Title
			if c.Expired(now) {
				lines = append(lines, pad(t.DimText.Render(visualTruncate(label, inner))))
				continue
			}
			lines = append(lines, pad(visualTruncate(label, inner)))
		}
	}

	lines = append(lines, "", pad(t.HintText.Render("s search · i inspect · o open")))
	return lines
}
