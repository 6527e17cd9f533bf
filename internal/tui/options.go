package tui

import (
	"log/slog"
	"time"

	"github.com/daptify14/dealit/internal/cms"
	"github.com/daptify14/dealit/internal/sticky"
)

// Options configures the TUI model.
type Options struct {
	// Service loads the merchant and coupon catalog.
	Service *cms.Service

	// Breadcrumb defines the navigation breadcrumb trail.
	// Example: ["dealit", "Deals"]
	Breadcrumb []string

	// PanelMode controls default sidebar visibility: "auto" (default), "show", "hide".
	// "auto" shows when terminal >= 110 columns, "show" always shows, "hide" never shows.
	PanelMode string

	// InitialTab sets the active tab when the TUI starts.
	// Valid values: "Deals", "Merchants" (case-insensitive).
	InitialTab string

	// Sticky reserves rows for the fixed header and status bar. Zero values
	// fall back to the rendered chrome heights.
	Sticky sticky.Options

	// Tuning overrides the sidebar easing constants.
	Tuning *sticky.Tuning

	// SearchLimit caps merchant search results (default 5).
	SearchLimit int

	// LoadTimeout bounds a single catalog load (default 15s).
	LoadTimeout time.Duration

	// DebugLog, when non-nil, receives structured JSON logs of every tea.Msg
	// processed by Update(). Set via the DEALIT_DEBUG environment variable.
	DebugLog *slog.Logger
}
