package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/daptify14/dealit/internal/cms"
	"github.com/daptify14/dealit/internal/search"
	"github.com/daptify14/dealit/internal/sticky"
)

const defaultLoadTimeout = 15 * time.Second

// --- Model ---

// Model is the main TUI model for browsing deals.
type Model struct {
	service *cms.Service
	opts    Options
	gen     uint64 // generation counter for stale load detection
	now     func() time.Time

	catalog *cms.Catalog
	index   *search.Index

	activeTab int
	tabNames  []string

	feed      feedTab
	merchants merchantsTab

	// list is the last rendered left column, for hit-testing and keeping
	// the cursor in view.
	list listBlock

	filterInput textinput.Model
	search      searchOverlay
	inspect     inspectView
	overlays    overlayState

	sidebar sidebarState
	page    *page
	sticky  *sticky.Controller

	width  int
	height int

	ui       uiState
	debugLog *slog.Logger

	cursorMoved bool
	exiting     bool
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Prompt = "/ "
	s := ti.Styles()
	s.Focused.Prompt = activeTheme.PrimaryFg
	s.Blurred.Prompt = activeTheme.PrimaryFg
	ti.SetStyles(s)
	ti.CharLimit = 120
	ti.SetWidth(40)
	return ti
}

// NewModel creates a new deals TUI model with the given options.
func NewModel(opts Options) Model {
	if opts.Service == nil {
		panic("NewModel: Service must be provided")
	}

	tabs := []string{tabDeals, tabMerchants}
	initialTab := 0
	for i, name := range tabs {
		if strings.EqualFold(name, strings.TrimSpace(opts.InitialTab)) {
			initialTab = i
			break
		}
	}

	m := Model{
		service:     opts.Service,
		opts:        opts,
		now:         time.Now,
		debugLog:    opts.DebugLog,
		activeTab:   initialTab,
		tabNames:    tabs,
		filterInput: newFilterInput(),
		sidebar:     newSidebarState(opts.PanelMode),
		ui: uiState{
			loading:        true,
			loadingSpinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
			mouseCapture:   true,
		},
	}
	m.catalog = cms.NewCatalog(nil, nil, time.Time{})
	m.index = search.New(nil)

	m.page = newPage(m.topOffset(), m.bottomOffset())
	var copts []sticky.ControllerOption
	if opts.Tuning != nil {
		copts = append(copts, sticky.WithTuning(*opts.Tuning))
	}
	if opts.DebugLog != nil {
		copts = append(copts, sticky.WithLogger(opts.DebugLog))
	}
	m.sticky = sticky.New(m.page, copts...)
	m.sticky.Activate(m.page.column, m.page.panel, sticky.Options{
		TopOffset:    float64(m.topOffset()),
		BottomOffset: float64(m.bottomOffset()),
	})
	return m
}

// Init implements tea.Model by returning the initial command batch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.ui.loadingSpinner.Tick,
		tea.RequestBackgroundColor,
		m.loadCatalogCmd(),
		m.page.frameCmd(),
	)
}

// loadCatalogCmd fetches the catalog in the background.
func (m Model) loadCatalogCmd() tea.Cmd {
	svc := m.service
	gen := m.gen
	timeout := m.opts.LoadTimeout
	if timeout <= 0 {
		timeout = defaultLoadTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		cat, err := svc.Load(ctx)
		return catalogLoadedMsg{catalog: cat, err: err, gen: gen}
	}
}

func (m Model) reload() (Model, tea.Cmd) {
	m.gen++
	m.ui.loading = true
	m.ui.message = "Reloading..."
	return m, tea.Batch(m.ui.loadingSpinner.Tick, m.loadCatalogCmd())
}

func (m Model) handleCatalogLoaded(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	m.ui.loading = false
	m.ui.loadErr = msg.err
	if msg.catalog != nil {
		m.catalog = msg.catalog
	}
	if m.feed.merchant != "" {
		if _, ok := m.catalog.Merchant(m.feed.merchant); !ok {
			m.feed.merchant = ""
		}
	}
	m.applyFeedFilter()
	m.applyMerchantsFilter()
	m.rebuildIndex()

	switch {
	case msg.err != nil && !m.catalog.Empty():
		m.ui.message = "Load failed, showing last good catalog"
	case msg.err != nil:
		m.ui.message = ""
	default:
		m.ui.message = fmt.Sprintf("Loaded %d merchants, %d deals", len(m.catalog.Merchants), len(m.catalog.Coupons))
	}
	return m, nil
}

// --- Tab Switching ---

func (m *Model) switchTab(tab int) tea.Cmd {
	if tab < 0 || tab >= len(m.tabNames) {
		return nil
	}
	if tab != m.activeTab {
		m.page.scrollTo(0)
	}
	m.activeTab = tab
	m.ui.message = ""
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	m.applyActiveFilter()
	return nil
}

// --- Page sync ---

// clock returns the current time from the model clock.
func (m Model) clock() time.Time {
	if m.now == nil {
		return time.Now()
	}
	return m.now()
}

// syncPage re-renders the scrollable document into the page host. The
// host notifies the sidebar controller when the column or panel height
// changes.
func (m *Model) syncPage() {
	now := m.clock()
	feedWidth, sideWidth := m.columnWidths()

	var list listBlock
	if m.activeTabName() == tabMerchants {
		list = m.renderMerchantList(feedWidth)
	} else {
		list = m.renderFeed(feedWidth, now)
	}
	m.list = list

	c := pageContent{
		hero:      m.renderHero(),
		feed:      list.lines,
		footer:    m.renderPageFooter(now),
		feedWidth: feedWidth,
		sideWidth: sideWidth,
	}
	if sideWidth > 0 {
		c.side = m.renderSidebar(sideWidth, now)
	}
	m.page.setContent(c)
}

// revealCursor scrolls the page so the item under the cursor is inside
// the band.
func (m *Model) revealCursor() {
	cursor := m.feed.cursor
	if m.activeTabName() == tabMerchants {
		cursor = m.merchants.cursor
	}
	if cursor < 0 || cursor >= len(m.list.spans) {
		return
	}
	span := m.list.spans[cursor]
	top := m.page.gridTop()
	m.page.ensureVisible(top+span[0], top+span[1])
}

func (m Model) renderHero() []string {
	t := &activeTheme
	width := m.effectiveWidth()
	title := t.Hero.Render("dealit")
	summary := "Deals and coupons from your favorite merchants"
	if !m.catalog.Empty() {
		summary = fmt.Sprintf("%d merchants · %d deals", len(m.catalog.Merchants), len(m.catalog.Coupons))
	}
	lines := []string{
		"",
		" " + title + "  " + t.HintText.Render(visualTruncate(summary, max(1, width-12))),
	}
	if m.ui.loadErr != nil {
		note := "Could not reach the CMS: " + m.ui.loadErr.Error()
		if !m.catalog.Empty() {
			note = "Showing the last good catalog. " + note
		}
		lines = append(lines, " "+t.Notice.Render(visualTruncate(note, max(1, width-2))))
	}
	return append(lines, "")
}

func (m Model) renderPageFooter(now time.Time) []string {
	width := m.effectiveWidth()
	source := "no catalog"
	if m.catalog != nil && !m.catalog.LoadedAt.IsZero() {
		source = "loaded " + sinceLabel(m.catalog.LoadedAt, now)
	}
	return []string{
		"",
		renderSeparator(width),
		" " + activeTheme.HintText.Render(appName+" · "+source),
	}
}

// --- Generic utilities ---

// restyleInputsForTheme updates input prompt styles to match the current
// activeTheme without resetting their value, focus, or cursor state.
func (m *Model) restyleInputsForTheme() {
	for _, in := range []*textinput.Model{&m.filterInput, &m.search.input} {
		s := in.Styles()
		s.Focused.Prompt = activeTheme.PrimaryFg
		s.Blurred.Prompt = activeTheme.PrimaryFg
		in.SetStyles(s)
	}
}

func (m Model) activeTabName() string {
	if m.activeTab >= 0 && m.activeTab < len(m.tabNames) {
		return m.tabNames[m.activeTab]
	}
	return ""
}

// breadcrumbParts returns the breadcrumb trail for the current view.
func (m Model) breadcrumbParts() []string {
	if len(m.opts.Breadcrumb) > 0 {
		return m.opts.Breadcrumb
	}
	parts := []string{appName, m.activeTabName()}
	if m.feed.merchant != "" && m.activeTabName() == tabDeals {
		parts = append(parts, m.catalog.MerchantName(m.feed.merchant))
	}
	return parts
}

func (m *Model) toggleMouseCapture() {
	m.ui.mouseCapture = !m.ui.mouseCapture
	if m.ui.mouseCapture {
		m.ui.message = "Mouse capture enabled (wheel + click)"
		return
	}
	m.ui.message = "Mouse capture disabled (drag to select/copy)"
}

// Exited reports whether the user quit the TUI.
func (m Model) Exited() bool { return m.exiting }

// Close releases the sidebar controller. The model stops positioning the
// sidebar afterwards.
func (m Model) Close() {
	m.sticky.Deactivate()
}
