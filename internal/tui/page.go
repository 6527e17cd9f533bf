package tui

import (
	"math"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/daptify14/dealit/internal/sticky"
)

// frameInterval is the tick period of page animation frames.
const frameInterval = 16 * time.Millisecond

// pageContent is one rendering of the scrollable document.
type pageContent struct {
	hero   []string
	feed   []string
	side   []string
	footer []string

	feedWidth int
	sideWidth int
}

// page is the scrollable document shown between the fixed header and the
// status area. Screen row r shows document line scrollY+r; the first top
// rows and the last bottom rows are covered by chrome, so the document
// starts with top spacer rows and ends with bottom spacer rows.
//
// page implements sticky.Host. The sidebar column and panel are its two
// Elements. page is shared by pointer between Model copies and is only
// touched from Update, which bubbletea runs on one goroutine.
type page struct {
	width  int
	height int
	top    int
	bottom int
	wide   bool

	scrollY int
	content pageContent

	column *pageElement
	panel  *pageElement

	nextListener int
	listeners    map[sticky.Event]map[int]func()
	observers    map[*pageElement]map[int]func()

	frameSeq sticky.FrameID
	frames   map[sticky.FrameID]func(time.Time)
	ticking  bool
}

type elementKind int

const (
	elementColumn elementKind = iota
	elementPanel
)

// pageElement is the sidebar column or the sidebar panel.
type pageElement struct {
	page  *page
	kind  elementKind
	style sticky.Style
}

func newPage(top, bottom int) *page {
	p := &page{
		top:       max(0, top),
		bottom:    max(0, bottom),
		listeners: make(map[sticky.Event]map[int]func()),
		observers: make(map[*pageElement]map[int]func()),
		frames:    make(map[sticky.FrameID]func(time.Time)),
	}
	p.column = &pageElement{page: p, kind: elementColumn}
	p.panel = &pageElement{page: p, kind: elementPanel}
	return p
}

// --- Geometry ---

func (p *page) gridTop() int { return p.top + len(p.content.hero) }

func (p *page) gridHeight() int {
	if !p.wide {
		return len(p.content.feed)
	}
	return max(len(p.content.feed), len(p.content.side))
}

func (p *page) footerTop() int { return p.gridTop() + p.gridHeight() }

func (p *page) docHeight() int {
	return p.footerTop() + len(p.content.footer) + p.bottom
}

func (p *page) maxScroll() int {
	return max(0, p.docHeight()-p.height)
}

// panelTop returns the document line the sidebar panel starts at under
// its current style.
func (p *page) panelTop() int {
	gridTop := p.gridTop()
	st := p.panel.style
	switch st.Position {
	case sticky.PositionSticky:
		lo := gridTop
		hi := max(lo, gridTop+p.gridHeight()-len(p.content.side))
		return min(max(p.scrollY+int(math.Round(st.Top)), lo), hi)
	case sticky.PositionRelative:
		return gridTop + int(math.Round(st.TranslateY))
	default:
		return gridTop
	}
}

// Measure implements sticky.Element.
func (e *pageElement) Measure() sticky.Rect {
	p := e.page
	switch e.kind {
	case elementPanel:
		return sticky.Rect{Top: float64(p.gridTop()), Height: float64(len(p.content.side))}
	default:
		return sticky.Rect{Top: float64(p.gridTop()), Height: float64(p.gridHeight())}
	}
}

// SetStyle implements sticky.Element.
func (e *pageElement) SetStyle(s sticky.Style) { e.style = s }

// --- sticky.Host ---

func (p *page) ScrollY() float64        { return float64(p.scrollY) }
func (p *page) ViewportHeight() float64 { return float64(p.height) }
func (p *page) Matches() bool           { return p.wide }

func (p *page) Listen(ev sticky.Event, fn func()) func() {
	if fn == nil {
		return func() {}
	}
	p.nextListener++
	id := p.nextListener
	if p.listeners[ev] == nil {
		p.listeners[ev] = make(map[int]func())
	}
	p.listeners[ev][id] = fn
	return func() { delete(p.listeners[ev], id) }
}

func (p *page) Observe(el sticky.Element, fn func()) func() {
	pe, ok := el.(*pageElement)
	if !ok || pe.page != p || fn == nil {
		return func() {}
	}
	p.nextListener++
	id := p.nextListener
	if p.observers[pe] == nil {
		p.observers[pe] = make(map[int]func())
	}
	p.observers[pe][id] = fn
	return func() { delete(p.observers[pe], id) }
}

func (p *page) RequestFrame(fn func(time.Time)) sticky.FrameID {
	p.frameSeq++
	p.frames[p.frameSeq] = fn
	return p.frameSeq
}

func (p *page) CancelFrame(id sticky.FrameID) {
	delete(p.frames, id)
}

// listenerCount reports registered listeners and observers.
func (p *page) listenerCount() int {
	n := 0
	for _, ls := range p.listeners {
		n += len(ls)
	}
	for _, os := range p.observers {
		n += len(os)
	}
	return n
}

// --- Driving ---

func callInOrder(fns map[int]func()) {
	ids := make([]int, 0, len(fns))
	for id := range fns {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := fns[id]; ok {
			fn()
		}
	}
}

func (p *page) dispatch(ev sticky.Event) {
	callInOrder(p.listeners[ev])
}

func (p *page) notifySize(el *pageElement) {
	callInOrder(p.observers[el])
}

// resize applies a new viewport and breakpoint. It dispatches resize and,
// when the breakpoint flips, breakpoint.
func (p *page) resize(width, height int, wide bool) {
	if width == p.width && height == p.height && wide == p.wide {
		return
	}
	flipped := wide != p.wide
	p.width = width
	p.height = height
	p.wide = wide
	p.dispatch(sticky.EventResize)
	if flipped {
		p.dispatch(sticky.EventBreakpoint)
	}
	p.scrollTo(p.scrollY)
}

// setContent swaps the rendered document and notifies size observers of
// the elements whose height changed.
func (p *page) setContent(c pageContent) {
	prevCol := p.column.Measure()
	prevPanel := p.panel.Measure()
	p.content = c

	if p.column.Measure() != prevCol {
		p.notifySize(p.column)
	}
	if p.panel.Measure() != prevPanel {
		p.notifySize(p.panel)
	}
	p.scrollTo(p.scrollY)
}

// scrollTo clamps y to the document and dispatches scroll when the
// position moves.
func (p *page) scrollTo(y int) {
	y = min(max(y, 0), p.maxScroll())
	if y == p.scrollY {
		return
	}
	p.scrollY = y
	p.dispatch(sticky.EventScroll)
}

func (p *page) scrollBy(delta int) { p.scrollTo(p.scrollY + delta) }

// ensureVisible scrolls the least amount that brings document lines
// [from, to) inside the band between the chrome.
func (p *page) ensureVisible(from, to int) {
	bandTop := p.scrollY + p.top
	bandBottom := p.scrollY + p.height - p.bottom
	switch {
	case from < bandTop:
		p.scrollTo(from - p.top)
	case to > bandBottom:
		target := to - (p.height - p.bottom)
		// A block taller than the band shows its top.
		if to-from > bandBottom-bandTop {
			target = from - p.top
		}
		p.scrollTo(target)
	}
}

// runFrames runs every frame callback requested before this call.
func (p *page) runFrames(now time.Time) {
	p.ticking = false
	if len(p.frames) == 0 {
		return
	}
	ids := make([]sticky.FrameID, 0, len(p.frames))
	for id := range p.frames {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		fn, ok := p.frames[id]
		if !ok {
			continue
		}
		delete(p.frames, id)
		fn(now)
	}
}

// frameCmd returns a tick for the next frame when callbacks are pending
// and no tick is already in flight.
func (p *page) frameCmd() tea.Cmd {
	if len(p.frames) == 0 || p.ticking {
		return nil
	}
	p.ticking = true
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

// --- Rendering ---

// render composes the screen: header rows, the visible slice of the
// document, then the status rows.
func (p *page) render(header, status []string) string {
	lines := make([]string, 0, p.height)
	panelTop := p.panelTop()
	statusStart := p.height - p.bottom
	for r := range p.height {
		switch {
		case r < p.top:
			lines = append(lines, lineAt(header, r))
		case r >= statusStart:
			lines = append(lines, lineAt(status, r-statusStart))
		default:
			lines = append(lines, p.docLine(p.scrollY+r, panelTop))
		}
	}
	return strings.Join(lines, "\n")
}

func lineAt(lines []string, i int) string {
	if i >= 0 && i < len(lines) {
		return lines[i]
	}
	return ""
}

func (p *page) docLine(y, panelTop int) string {
	gridTop := p.gridTop()
	footerTop := p.footerTop()
	switch {
	case y < p.top:
		return ""
	case y < gridTop:
		return p.content.hero[y-p.top]
	case y < footerTop:
		feed := lineAt(p.content.feed, y-gridTop)
		if !p.wide || p.content.sideWidth == 0 {
			return feed
		}
		left := visualPad(visualTruncate(feed, p.content.feedWidth), p.content.feedWidth)
		gutter := activeTheme.DimText.Render("│")
		return left + gutter + visualTruncate(lineAt(p.content.side, y-panelTop), p.content.sideWidth)
	case y < footerTop+len(p.content.footer):
		return p.content.footer[y-footerTop]
	default:
		return ""
	}
}
