package tui

// WARNING: github.com/charmbracelet/x/exp/golden is a pre-v1 experimental
// package. Its API may change in future releases. Pin the module version in
// go.mod and review changelogs before upgrading.

import (
	"testing"

	"github.com/charmbracelet/x/exp/golden"

	"github.com/daptify14/dealit/internal/sticky"
)

// TestGoldenPageRender snapshots the 40x20 test page under each sidebar
// placement. Rows 3-17 are the band between the chrome.
func TestGoldenPageRender(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *page)
	}{
		{
			name:  "short_static",
			setup: func(p *page) {},
		},
		{
			// Pinned 3 rows below the viewport top: doc line 13.
			name: "short_sticky",
			setup: func(p *page) {
				p.scrollTo(10)
				p.panel.SetStyle(sticky.Style{Position: sticky.PositionSticky, Top: 3})
			},
		},
		{
			name: "short_relative",
			setup: func(p *page) {
				p.scrollTo(10)
				p.panel.SetStyle(sticky.Style{Position: sticky.PositionRelative, TranslateY: 12})
			},
		},
		{
			// A 30-line panel caught with its last line on the band bottom.
			name: "tall_caught_bottom",
			setup: func(p *page) {
				c := p.content
				c.side = numbered("s", 30)
				p.setContent(c)
				p.scrollTo(30)
				p.panel.SetStyle(sticky.Style{Position: sticky.PositionRelative, TranslateY: 13})
			},
		},
		{
			name: "narrow",
			setup: func(p *page) {
				p.resize(40, 20, false)
			},
		},
		{
			name: "scrolled_to_footer",
			setup: func(p *page) {
				p.scrollTo(p.maxScroll())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPage()
			tt.setup(p)
			output := stripForGolden(p.render(numbered("H", 3), numbered("S", 2)))
			golden.RequireEqual(t, []byte(output))
		})
	}
}
