package tui

// --- Layout Calculations ---

// Chrome constants shared between rendering, the page host and
// mouse-hit-testing.
const (
	// headerLines is the fixed header above the page: breadcrumb +
	// separator + tab bar.
	headerLines = 3

	// statusLines is the fixed footer below the page: status bar + help
	// line.
	statusLines = 2

	// gutterWidth separates the feed column from the sidebar.
	gutterWidth = 1

	// descriptionLines caps the description shown on a feed card.
	descriptionLines = 2

	// sidebarCouponLimit caps the coupons listed in the sidebar card.
	sidebarCouponLimit = 8
)

func (m Model) effectiveWidth() int {
	if m.width == 0 {
		return 80
	}
	return m.width
}

// topOffset is the number of rows the fixed header covers.
func (m Model) topOffset() int {
	if m.opts.Sticky.TopOffset > 0 {
		return int(m.opts.Sticky.TopOffset)
	}
	return headerLines
}

// bottomOffset is the number of rows the fixed status area covers.
func (m Model) bottomOffset() int {
	if m.opts.Sticky.BottomOffset > 0 {
		return int(m.opts.Sticky.BottomOffset)
	}
	return statusLines
}

// columnWidths splits the page into feed and sidebar widths. The sidebar
// width is zero when it is hidden.
func (m Model) columnWidths() (feed, side int) {
	width := m.effectiveWidth()
	if !m.sidebar.shouldShow(width) {
		return width, 0
	}
	side = panelWidthFor(width)
	return max(1, width-side-gutterWidth), side
}

// bandHeight is the usable page height between the fixed header and the
// status area.
func (m Model) bandHeight() int {
	if m.height == 0 {
		return 0
	}
	return max(1, m.height-m.topOffset()-m.bottomOffset())
}

// halfPage is the scroll step for ^d/^u.
func (m Model) halfPage() int {
	return max(1, m.bandHeight()/2)
}
