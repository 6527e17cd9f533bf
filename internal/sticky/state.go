// Package sticky positions a tall side panel inside a bounded column so it
// scrolls with the page but catches at the usable viewport edges.
//
// The positioning logic is a set of pure transition functions over
// RegionState (Recompute, Track, Step). Controller wires them to a Host
// (scroll, resize and breakpoint events plus frame scheduling) and is the
// only code that touches Elements.
package sticky

import "fmt"

// Mode is the positioning strategy chosen for the panel.
type Mode int

const (
	// ModeUnset means no layout pass has run yet.
	ModeUnset Mode = iota
	// ModeShort pins the panel at the top offset; the panel fits the band.
	ModeShort
	// ModeTall tracks scroll and catches the panel at the band edges.
	ModeTall
)

func (m Mode) String() string {
	switch m {
	case ModeUnset:
		return "unset"
	case ModeShort:
		return "short"
	case ModeTall:
		return "tall"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Options reserves space above and below the usable viewport band,
// e.g. for a fixed header and a status bar.
type Options struct {
	TopOffset    float64
	BottomOffset float64
}

// Metrics is one layout measurement in document space.
type Metrics struct {
	ColumnTop      float64
	ColumnBottom   float64
	PanelHeight    float64
	ViewportHeight float64
}

// RegionState is the positioning state of one column/panel pairing for one
// activation.
type RegionState struct {
	Mode Mode

	// Cached bounds, refreshed by Recompute only.
	ColumnTopDoc    float64
	ColumnBottomDoc float64
	PanelHeight     float64
	MinOffsetDoc    float64
	MaxOffsetDoc    float64
	MetricsReady    bool

	// CurrentOffsetDoc is the logical top edge of the panel. It persists
	// across scroll ticks.
	CurrentOffsetDoc float64

	// TargetOffset and CurrentOffset are column-relative translate values:
	// the logical target and the value currently rendered.
	TargetOffset  float64
	CurrentOffset float64

	// Placed is false until the first tall-mode placement, which snaps
	// instead of easing.
	Placed bool

	LastScrollY float64
}

// AvailableBand is the viewport height left after both offsets.
func AvailableBand(viewportHeight float64, opts Options) float64 {
	return viewportHeight - opts.TopOffset - opts.BottomOffset
}

// SelectMode picks ModeShort when the panel fits the available band.
func SelectMode(panelHeight, viewportHeight float64, opts Options) Mode {
	if panelHeight <= AvailableBand(viewportHeight, opts) {
		return ModeShort
	}
	return ModeTall
}

// Degenerate reports whether the column is too short to hold the panel.
func (s RegionState) Degenerate() bool {
	return s.MaxOffsetDoc <= s.MinOffsetDoc
}

// Converged reports whether the rendered offset has reached the target.
func (s RegionState) Converged() bool {
	return s.CurrentOffset == s.TargetOffset
}

// Recompute caches new layout bounds and selects the mode. A mode change
// discards every animation and placement value of the previous mode.
func Recompute(s RegionState, m Metrics, opts Options) RegionState {
	mode := SelectMode(m.PanelHeight, m.ViewportHeight, opts)
	if mode != s.Mode {
		s = RegionState{Mode: mode, LastScrollY: s.LastScrollY}
	}

	s.ColumnTopDoc = m.ColumnTop
	s.ColumnBottomDoc = m.ColumnBottom
	s.PanelHeight = m.PanelHeight
	s.MinOffsetDoc = m.ColumnTop
	s.MaxOffsetDoc = m.ColumnBottom - m.PanelHeight
	s.MetricsReady = true

	if s.Mode == ModeTall && s.Placed {
		s.CurrentOffsetDoc = s.clampOffset(s.CurrentOffsetDoc)
		s.TargetOffset = s.CurrentOffsetDoc - s.ColumnTopDoc
	}
	return s
}

// Track runs one tall-mode scroll tick against the cached bounds. It never
// measures layout. Outside ModeTall only LastScrollY is updated.
func Track(s RegionState, scrollY, viewportHeight float64, opts Options) RegionState {
	down := scrollY > s.LastScrollY
	up := scrollY < s.LastScrollY
	s.LastScrollY = scrollY

	if s.Mode != ModeTall || !s.MetricsReady {
		return s
	}

	// First placement starts from the column top and behaves as if the
	// page had been scrolled down to the current position.
	if !s.Placed {
		s.CurrentOffsetDoc = s.MinOffsetDoc
		down, up = true, false
	}

	s = s.catch(down, up, scrollY, viewportHeight, opts)
	if !s.Placed {
		s.CurrentOffset = s.TargetOffset
		s.Placed = true
	}
	return s
}

// Reconcile catches a placed tall-mode panel against the viewport after a
// re-measure. There is no scroll direction to go on, so whichever edge has
// opened a gap in the band is caught; a panel that already covers the band
// stays where it is.
func Reconcile(s RegionState, scrollY, viewportHeight float64, opts Options) RegionState {
	if s.Mode != ModeTall || !s.MetricsReady || !s.Placed {
		return s
	}
	return s.catch(true, true, scrollY, viewportHeight, opts)
}

// catch moves the logical offset so the panel edge trailing the scroll
// direction meets the band, then clamps it to the column.
func (s RegionState) catch(down, up bool, scrollY, viewportHeight float64, opts Options) RegionState {
	if s.Degenerate() {
		s.CurrentOffsetDoc = s.MinOffsetDoc
	} else {
		viewTop := scrollY + opts.TopOffset
		viewBottom := scrollY + viewportHeight - opts.BottomOffset

		switch {
		case down && s.CurrentOffsetDoc+s.PanelHeight < viewBottom:
			s.CurrentOffsetDoc = viewBottom - s.PanelHeight
		case up && s.CurrentOffsetDoc > viewTop:
			s.CurrentOffsetDoc = viewTop
		}
		s.CurrentOffsetDoc = s.clampOffset(s.CurrentOffsetDoc)
	}
	s.TargetOffset = s.CurrentOffsetDoc - s.ColumnTopDoc
	return s
}

func (s RegionState) clampOffset(v float64) float64 {
	if s.Degenerate() {
		return s.MinOffsetDoc
	}
	return min(max(v, s.MinOffsetDoc), s.MaxOffsetDoc)
}
