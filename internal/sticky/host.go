package sticky

import "time"

// Position is the positioning scheme applied to an element.
type Position int

const (
	// PositionStatic is normal flow with no inline override.
	PositionStatic Position = iota
	// PositionRelative keeps the element in flow; TranslateY shifts it
	// visually without affecting layout.
	PositionRelative
	// PositionSticky pins the element Top units below the viewport top
	// while its containing column is in view.
	PositionSticky
)

// Style is the inline positioning an Element carries. The zero Style
// means no override.
type Style struct {
	Position   Position
	Top        float64
	TranslateY float64
}

// IsZero reports whether s carries no positioning override.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Rect is an element's box in document space.
type Rect struct {
	Top    float64
	Height float64
}

// Bottom returns the document-space bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Element is a measurable, positionable box.
type Element interface {
	// Measure reads the element's current layout. Controller calls it
	// only from the recompute step.
	Measure() Rect
	SetStyle(Style)
}

// Event names a host-level notification.
type Event int

const (
	EventScroll Event = iota
	EventResize
	EventBreakpoint
)

func (e Event) String() string {
	switch e {
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	case EventBreakpoint:
		return "breakpoint"
	default:
		return "unknown"
	}
}

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// Host is the page environment a Controller runs in. All callbacks are
// delivered on a single goroutine.
type Host interface {
	ScrollY() float64
	ViewportHeight() float64
	// Matches reports whether the breakpoint condition that enables
	// positioning currently holds.
	Matches() bool

	Listen(ev Event, fn func()) (cancel func())
	// Observe calls fn after el changes size.
	Observe(el Element, fn func()) (cancel func())

	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}
