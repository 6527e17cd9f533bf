package tui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/daptify14/dealit/internal/sticky"
)

const sidebarHint = "s search · i inspect · o open"

// bandBottomRow is the last screen row between the header and the status
// area of a 24-row test terminal.
const bandBottomRow = 24 - statusLines - 1

func TestSidebarTallMerchantTracksScrollAndCatchesBottom(t *testing.T) {
	m := newTestModel()

	if m.sticky.State().Mode != sticky.ModeTall {
		t.Fatalf("mode = %v, want tall for the rich merchant", m.sticky.State().Mode)
	}
	if got := m.page.panelTop(); got != m.page.gridTop() {
		t.Fatalf("initial panelTop = %d, want gridTop %d", got, m.page.gridTop())
	}

	m, _ = sendKey(t, m, specialKey(tea.KeyPgDown))
	m = settle(m)
	m, _ = sendKey(t, m, specialKey(tea.KeyPgDown))
	m = settle(m)

	if m.page.scrollY != 2*m.bandHeight() {
		t.Fatalf("scrollY = %d, want %d", m.page.scrollY, 2*m.bandHeight())
	}
	bottom := m.page.panelTop() + len(m.page.content.side)
	if want := m.page.scrollY + m.height - statusLines; bottom != want {
		t.Fatalf("panel bottom = %d, want band bottom %d", bottom, want)
	}
	lines := screenLines(m)
	if !strings.Contains(lines[bandBottomRow], sidebarHint) {
		t.Fatalf("last band row should end the sidebar card, got %q", lines[bandBottomRow])
	}
	if !m.sticky.State().Converged() {
		t.Fatal("animation should have converged after settling")
	}
}

func TestSidebarTallMerchantHoldsOnSmallReverseScroll(t *testing.T) {
	m := newTestModel()
	m, _ = sendKey(t, m, specialKey(tea.KeyPgDown))
	m, _ = sendKey(t, m, specialKey(tea.KeyPgDown))
	m = settle(m)
	held := m.page.panelTop()

	m, _ = sendMsg(t, m, tea.MouseWheelMsg{Button: tea.MouseWheelUp, X: 10, Y: 10})
	m = settle(m)

	if got := m.page.panelTop(); got != held {
		t.Fatalf("panelTop moved from %d to %d on a small upward scroll", held, got)
	}
}

func TestSidebarTallMerchantCatchesTopOnScrollUp(t *testing.T) {
	m := newTestModel()
	m, _ = sendKey(t, m, specialKey(tea.KeyPgDown))
	m, _ = sendKey(t, m, specialKey(tea.KeyPgDown))
	m = settle(m)

	m, _ = sendKey(t, m, specialKey(tea.KeyPgUp))
	m = settle(m)

	if want := m.page.scrollY + headerLines; m.page.panelTop() != want {
		t.Fatalf("panelTop = %d, want band top %d", m.page.panelTop(), want)
	}

	m, _ = sendKey(t, m, runeKey("g"))
	m = settle(m)
	if m.page.panelTop() != m.page.gridTop() {
		t.Fatalf("panelTop = %d, want clamped to column top %d", m.page.panelTop(), m.page.gridTop())
	}
}

func TestSidebarShortMerchantPinsBelowHeader(t *testing.T) {
	m := newTestModel()
	// The last coupon belongs to the sparse merchant.
	m, _ = sendKey(t, m, runeKey("G"))
	m = settle(m)

	if m.sticky.State().Mode != sticky.ModeShort {
		t.Fatalf("mode = %v, want short for the sparse merchant", m.sticky.State().Mode)
	}
	st := m.page.panel.style
	if st.Position != sticky.PositionSticky || st.Top != headerLines {
		t.Fatalf("panel style = %+v, want sticky at %d", st, headerLines)
	}
	lines := screenLines(m)
	if !strings.Contains(lines[headerLines+1], "Bolt Books") {
		t.Fatalf("row %d should show the pinned merchant name, got %q", headerLines+1, lines[headerLines+1])
	}
}

func TestSidebarNarrowTerminalNeutralizes(t *testing.T) {
	m := newTestModel(WithSize(80, 24))

	if m.page.wide {
		t.Fatal("80 columns should be below the sidebar breakpoint")
	}
	if !m.page.panel.style.IsZero() || !m.page.column.style.IsZero() {
		t.Fatalf("styles should be cleared, got panel=%+v column=%+v", m.page.panel.style, m.page.column.style)
	}
	if m.sticky.State().Mode != sticky.ModeUnset {
		t.Fatalf("mode = %v, want unset", m.sticky.State().Mode)
	}
	out := m.View().Content
	assertRenderedLinesFitWidth(t, out, 80)
	if strings.Contains(out, sidebarHint) {
		t.Fatal("narrow view should not render the sidebar")
	}
}

func TestSidebarBreakpointFlipRecomputes(t *testing.T) {
	m := newTestModel(WithSize(80, 24))

	m, _ = sendMsg(t, m, tea.WindowSizeMsg{Width: 130, Height: 24})
	m = settle(m)
	if m.sticky.State().Mode != sticky.ModeTall {
		t.Fatalf("mode after widening = %v, want tall", m.sticky.State().Mode)
	}

	m, _ = sendKey(t, m, runeKey("p"))
	m = settle(m)
	if m.page.wide {
		t.Fatal("p should hide the sidebar")
	}
	if !m.page.panel.style.IsZero() {
		t.Fatalf("hidden sidebar should clear styles, got %+v", m.page.panel.style)
	}

	m, _ = sendKey(t, m, runeKey("p"))
	m = settle(m)
	if !m.page.wide || m.sticky.State().Mode != sticky.ModeTall {
		t.Fatalf("p again should restore the tall sidebar, wide=%v mode=%v", m.page.wide, m.sticky.State().Mode)
	}
}

func TestSidebarPanelModeHideNeverActivatesLayout(t *testing.T) {
	m := newTestModel(WithPanelMode("hide"), WithSize(160, 24))
	if m.page.wide {
		t.Fatal("panel mode hide should keep the page narrow")
	}
	if _, side := m.columnWidths(); side != 0 {
		t.Fatalf("side width = %d, want 0", side)
	}
}

func TestSidebarControllerReleasedOnQuit(t *testing.T) {
	m := newTestModel()
	if m.page.listenerCount() == 0 {
		t.Fatal("active controller should have listeners registered")
	}

	m, cmd := sendKey(t, m, runeKey("q"))
	if !isQuitCmd(cmd) {
		t.Fatal("q should quit")
	}
	if !m.Exited() {
		t.Fatal("Exited should report true after quit")
	}
	if n := m.page.listenerCount(); n != 0 {
		t.Fatalf("listenerCount after quit = %d, want 0", n)
	}
	if len(m.page.frames) != 0 {
		t.Fatalf("pending frames after quit = %d, want 0", len(m.page.frames))
	}
	if m.sticky.Active() {
		t.Fatal("controller should be inactive after quit")
	}
}

func TestSidebarStickyOffsetsFromOptions(t *testing.T) {
	m := newTestModel(WithOptions(func(o *Options) {
		o.Sticky = sticky.Options{TopOffset: 5, BottomOffset: 4}
	}))
	if m.page.top != 5 || m.page.bottom != 4 {
		t.Fatalf("page chrome = %d/%d, want 5/4", m.page.top, m.page.bottom)
	}
	if got := m.bandHeight(); got != 24-5-4 {
		t.Fatalf("bandHeight = %d, want %d", got, 24-5-4)
	}
}
