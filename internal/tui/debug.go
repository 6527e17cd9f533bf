package tui

import (
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
)

// logMsg logs a tea.Msg to the debug logger if one is configured.
// This is a no-op when debugLog is nil (the common case).
// Spinner ticks and animation frames are silently dropped to reduce noise.
func (m Model) logMsg(msg tea.Msg) {
	if m.debugLog == nil {
		return
	}
	switch msg.(type) {
	case spinner.TickMsg, frameMsg:
		return
	}
	m.debugLog.Info("msg",
		"type", fmt.Sprintf("%T", msg),
		"detail", formatMsgDetail(msg),
	)
}

// formatMsgDetail extracts key fields from known message types for readable log output.
// Unknown types log their type name only. Never %#v, which can leak secrets
// (e.g. tea.EnvMsg contains the full environment).
func formatMsgDetail(msg tea.Msg) string {
	switch msg := msg.(type) {
	// Bubbletea core messages
	case tea.KeyPressMsg:
		return msg.String()
	case tea.WindowSizeMsg:
		return fmt.Sprintf("%dx%d", msg.Width, msg.Height)
	case tea.MouseClickMsg:
		return fmt.Sprintf("x=%d y=%d", msg.X, msg.Y)
	case tea.MouseWheelMsg:
		return fmt.Sprintf("x=%d y=%d", msg.X, msg.Y)
	case tea.MouseReleaseMsg:
		return fmt.Sprintf("x=%d y=%d", msg.X, msg.Y)
	case tea.BackgroundColorMsg:
		return fmt.Sprintf("dark=%t", msg.IsDark())
	case tea.ColorProfileMsg:
		return fmt.Sprintf("profile=%d", msg.Profile)

	case catalogLoadedMsg:
		extra := ""
		if msg.catalog != nil {
			extra = fmt.Sprintf("merchants=%d coupons=%d", len(msg.catalog.Merchants), len(msg.catalog.Coupons))
		}
		return genErr(msg.gen, msg.err, extra)
	case inspectReadyMsg:
		if msg.err != nil {
			return fmt.Sprintf("slug=%q err=%q", msg.slug, msg.err.Error())
		}
		return fmt.Sprintf("slug=%q len=%d", msg.slug, len(msg.content))
	case websiteOpenedMsg:
		if msg.err != nil {
			return fmt.Sprintf("url=%q err=%q", msg.url, msg.err.Error())
		}
		return fmt.Sprintf("url=%q", msg.url)

	default:
		return ""
	}
}

func genErr(gen uint64, err error, extra string) string {
	if err != nil {
		return fmt.Sprintf("gen=%d err=%q %s", gen, err.Error(), extra)
	}
	return fmt.Sprintf("gen=%d %s", gen, extra)
}
