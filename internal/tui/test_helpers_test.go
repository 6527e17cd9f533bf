package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/daptify14/dealit/internal/cms"
)

// testNow is the fixed clock every test model runs on.
var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// ── Catalog Fixtures ────────────────────────────────────────────────

// stubSource serves fixed collections, or err for both.
type stubSource struct {
	merchants []cms.Merchant
	coupons   []cms.Coupon
	err       error
}

func (s *stubSource) Merchants(context.Context) ([]cms.Merchant, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.merchants, nil
}

func (s *stubSource) Coupons(context.Context) ([]cms.Coupon, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.coupons, nil
}

// sampleMerchants returns one rich merchant whose sidebar card is taller
// than a 24-row terminal band, and two sparse ones.
func sampleMerchants() []cms.Merchant {
	return []cms.Merchant{
		{
			ID:   "1",
			Slug: "acme-outdoors",
			Name: "Acme Outdoors",
			Description: "Acme Outdoors sells tents, sleeping bags, stoves, trail shoes and " +
				"everything else needed for a weekend in the hills. Members get free " +
				"shipping on orders over fifty dollars and early access to seasonal " +
				"sales. Returns are accepted for ninety days.",
			Website:    "acme-outdoors.example",
			Categories: []string{"Outdoors", "Camping", "Sports"},
			Featured:   true,
			Rating:     4.6,
		},
		{ID: "2", Slug: "bolt-books", Name: "Bolt Books"},
		{ID: "3", Slug: "cedar-coffee", Name: "Cedar Coffee", Website: "https://cedar.example", Categories: []string{"Food"}},
	}
}

// sampleCoupons returns 12 Acme coupons, 3 Cedar coupons and, last, one
// Bolt coupon. Every card renders as four lines.
func sampleCoupons() []cms.Coupon {
	var out []cms.Coupon
	for i := range 12 {
		out = append(out, cms.Coupon{
			ID:           fmt.Sprintf("a%d", i+1),
			Title:        fmt.Sprintf("Acme deal %d", i+1),
			Description:  "Save on outdoor gear.",
			Kind:         cms.KindDeal,
			Discount:     fmt.Sprintf("%d%% off", 10+i),
			MerchantSlug: "acme-outdoors",
		})
	}
	for i := range 3 {
		out = append(out, cms.Coupon{
			ID:           fmt.Sprintf("c%d", i+1),
			Title:        fmt.Sprintf("Cedar brew %d", i+1),
			Description:  "Coffee beans and brewing kits.",
			Kind:         cms.KindCode,
			Code:         fmt.Sprintf("BREW%d", i+1),
			MerchantSlug: "cedar-coffee",
			Verified:     true,
		})
	}
	out = append(out, cms.Coupon{
		ID:           "b1",
		Title:        "Bolt paperback sale",
		Description:  "Two for one on paperbacks.",
		Kind:         cms.KindDeal,
		MerchantSlug: "bolt-books",
		ExpiresAt:    testNow.Add(-24 * time.Hour),
	})
	return out
}

func sampleSource() *stubSource {
	return &stubSource{merchants: sampleMerchants(), coupons: sampleCoupons()}
}

// ── Model Builder ───────────────────────────────────────────────────

// testModelConfig holds configuration for building a test Model.
// Options populate this struct; newTestModel reads it once to construct
// the Model. This avoids order-dependent option footguns.
type testModelConfig struct {
	source   cms.Source
	tab      string
	panel    string
	width    int
	height   int
	unloaded bool
	opts     []func(*Options)
	postInit []func(*Model)
}

// TestModelOption configures a test Model via testModelConfig.
type TestModelOption func(*testModelConfig)

func WithTab(tab string) TestModelOption {
	return func(c *testModelConfig) { c.tab = tab }
}

func WithSize(w, h int) TestModelOption {
	return func(c *testModelConfig) { c.width = w; c.height = h }
}

func WithPanelMode(mode string) TestModelOption {
	return func(c *testModelConfig) { c.panel = mode }
}

func WithSource(src cms.Source) TestModelOption {
	return func(c *testModelConfig) { c.source = src }
}

// WithoutCatalog leaves the model in its initial loading state.
func WithoutCatalog() TestModelOption {
	return func(c *testModelConfig) { c.unloaded = true }
}

func WithOptions(fn func(*Options)) TestModelOption {
	return func(c *testModelConfig) { c.opts = append(c.opts, fn) }
}

func WithPostInit(fn func(*Model)) TestModelOption {
	return func(c *testModelConfig) { c.postInit = append(c.postInit, fn) }
}

// newTestModel creates a Model over the sample catalog (Deals tab, 120x24,
// panel auto) with the catalog loaded, the window sized and every pending
// animation frame run.
//
// Options are order-independent: the config struct is populated first, then the
// Model is built once from the final config.
func newTestModel(opts ...TestModelOption) Model {
	cfg := &testModelConfig{
		width:  120,
		height: 24,
		panel:  "auto",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	src := cfg.source
	if src == nil {
		src = sampleSource()
	}
	o := Options{
		Service:    cms.NewService(src, cms.WithClock(func() time.Time { return testNow })),
		PanelMode:  cfg.panel,
		InitialTab: cfg.tab,
	}
	for _, fn := range cfg.opts {
		fn(&o)
	}

	m := NewModel(o)
	m.now = func() time.Time { return testNow }

	if !cfg.unloaded {
		m = apply(m, m.loadCatalogCmd()())
	}
	if cfg.width > 0 {
		m = apply(m, tea.WindowSizeMsg{Width: cfg.width, Height: cfg.height})
	}
	for _, fn := range cfg.postInit {
		fn(&m)
	}
	return settle(m)
}

// apply runs msg through Update without a testing.T, for builders.
func apply(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// settle runs animation frames until the page host has none pending.
// Frame timestamps advance by one frame interval per frame.
func settle(m Model) Model {
	for range 500 {
		if len(m.page.frames) == 0 {
			break
		}
		at := testNow.Add(time.Duration(m.sticky.Stats().Frames+1) * frameInterval)
		m = apply(m, frameMsg{at: at})
	}
	return m
}

// ── Key Factories ───────────────────────────────────────────────────

// runeKey creates a tea.KeyPressMsg for a rune string (e.g., "j", "?", "G").
func runeKey(r string) tea.KeyPressMsg {
	runes := []rune(r)
	return tea.KeyPressMsg{Code: runes[0], Text: r}
}

// specialKey creates a tea.KeyPressMsg for a special key code (e.g., tea.KeyEsc).
func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// ctrlKey creates a tea.KeyPressMsg for a ctrl+key combo (e.g., ctrlKey('d') for ctrl+d).
func ctrlKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: tea.ModCtrl}
}

// shiftKey creates a tea.KeyPressMsg for a shift+key combo (e.g., shiftKey(tea.KeyTab) for shift+tab).
func shiftKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Mod: tea.ModShift}
}

// ── Dispatch Helpers ────────────────────────────────────────────────

// sendKey dispatches a tea.KeyPressMsg through Model.Update and asserts the
// returned value is a Model.
func sendKey(t *testing.T, m Model, key tea.KeyPressMsg) (Model, tea.Cmd) {
	t.Helper()
	result, cmd := m.Update(key)
	updated, ok := result.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want tui.Model", result)
	}
	return updated, cmd
}

// sendMsg dispatches any tea.Msg through Model.Update and asserts the
// returned value is a Model.
func sendMsg(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	result, cmd := m.Update(msg)
	updated, ok := result.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want tui.Model", result)
	}
	return updated, cmd
}

// typeText sends each rune of s as a key press.
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = sendKey(t, m, runeKey(string(r)))
	}
	return m
}

// ── Assertion Helpers ───────────────────────────────────────────────

// isQuitCmd checks whether a tea.Cmd produces a tea.QuitMsg.
func isQuitCmd(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if isQuitCmd(c) {
				return true
			}
		}
		return false
	}
	_, ok := msg.(tea.QuitMsg)
	return ok
}

// assertRenderedLinesFitWidth checks that no ANSI-aware line exceeds width.
func assertRenderedLinesFitWidth(t *testing.T, output string, width int) {
	t.Helper()
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	for i, line := range lines {
		if got := ansi.StringWidth(line); got > width {
			t.Fatalf("line %d width=%d exceeds maxWidth=%d: %q", i+1, got, width, line)
		}
	}
}

// screenLines renders the model and returns its plain-text rows.
func screenLines(m Model) []string {
	return strings.Split(ansi.Strip(m.View().Content), "\n")
}

// containsAny returns true if s contains any of the substrings.
func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// stripForGolden removes ANSI codes and trailing spaces so snapshots stay
// readable and independent of the color profile.
func stripForGolden(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
