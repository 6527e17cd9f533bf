package tui

// Sidebar breakpoint constants.
const (
	panelAutoThreshold = 110
	panelMinWidth      = 60
)

// sidebarState decides whether the merchant sidebar is laid out next to
// the feed. When it is, the page breakpoint matches and the sticky
// controller positions the sidebar.
type sidebarState struct {
	visible        bool
	manualOverride bool
}

func newSidebarState(mode string) sidebarState {
	var s sidebarState
	switch mode {
	case "show":
		s.manualOverride = true
		s.visible = true
	case "hide":
		s.manualOverride = true
		s.visible = false
	}
	return s
}

// shouldShow returns true if the sidebar should render at the given terminal width.
func (s *sidebarState) shouldShow(termWidth int) bool {
	if termWidth < panelMinWidth {
		return false
	}
	if s.manualOverride {
		return s.visible
	}
	return termWidth >= panelAutoThreshold
}

// toggle flips the sidebar visibility manually.
func (s *sidebarState) toggle(termWidth int) {
	if !s.manualOverride {
		s.manualOverride = true
		// First toggle: invert what auto-mode would do.
		s.visible = termWidth < panelAutoThreshold
	} else {
		s.visible = !s.visible
	}
}

// panelWidthFor computes the sidebar width (36%, min 30).
func panelWidthFor(width int) int {
	return max(width*36/100, 30)
}
