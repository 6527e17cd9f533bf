package tui

import (
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"

	"github.com/daptify14/dealit/internal/search"
)

// Tab names.
const (
	tabDeals     = "Deals"
	tabMerchants = "Merchants"
)

// feedTab holds the Deals tab's own state. Indices point into
// catalog.Coupons.
type feedTab struct {
	visible []int
	cursor  int
	// merchant restricts the feed to one merchant slug; empty shows all.
	merchant string
}

// merchantsTab holds the Merchants tab's own state. Indices point into
// catalog.Merchants.
type merchantsTab struct {
	visible []int
	cursor  int
}

// searchOverlay is the merchant search box opened with "s".
type searchOverlay struct {
	show    bool
	input   textinput.Model
	results []search.Match
	cursor  int
}

// inspectView shows the normalized JSON of one merchant.
type inspectView struct {
	show          bool
	slug          string
	content       string
	loading       bool
	viewport      viewport.Model
	viewportReady bool
	lastWidth     int
}

// ensureViewport creates or resizes the viewport to the given dimensions.
func (v *inspectView) ensureViewport(width, height int) {
	if !v.viewportReady || v.lastWidth != width {
		v.viewport = viewport.New()
		v.viewport.SetWidth(width)
		v.viewport.SetHeight(height)
		v.viewport.SetContent(v.content)
		v.viewportReady = true
		v.lastWidth = width
	}
	if v.viewport.Height() != height {
		v.viewport.SetHeight(height)
	}
}

// uiState groups transient UI fields (loading, messages, errors).
type uiState struct {
	message        string
	loadErr        error
	loading        bool
	loadingSpinner spinner.Model
	mouseCapture   bool
}

// overlayState groups fields for the help overlay.
type overlayState struct {
	showHelp   bool
	helpScroll int
}
