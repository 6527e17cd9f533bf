package sticky

import (
	"log/slog"
	"time"
)

// nominalFrame is the dt used for the first animation frame after idle.
const nominalFrame = 16 * time.Millisecond

// Stats counts controller work, for diagnostics and tests.
type Stats struct {
	Frames   int
	Measures int
	Tracks   int
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithTuning overrides the easing constants.
func WithTuning(t Tuning) ControllerOption {
	return func(c *Controller) { c.tuning = t }
}

// WithLogger logs mode transitions at debug level.
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) { c.logger = l }
}

// Controller keeps a panel positioned inside its column between Activate
// and Deactivate. It is not safe for concurrent use; the Host serializes
// every callback.
type Controller struct {
	host   Host
	tuning Tuning
	logger *slog.Logger

	column Element
	panel  Element
	opts   Options
	active bool

	state   RegionState
	cancels []func()

	frame       FrameID
	scrollDirty bool
	lastFrame   time.Time
	neutral     bool

	stats Stats
}

// New creates an inactive controller bound to host.
func New(host Host, opts ...ControllerOption) *Controller {
	c := &Controller{
		host:   host,
		tuning: DefaultTuning(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Active reports whether Activate is in effect.
func (c *Controller) Active() bool { return c.active }

// State returns a copy of the current region state.
func (c *Controller) State() RegionState { return c.state }

// Stats returns the work counters since construction.
func (c *Controller) Stats() Stats { return c.stats }

// Activate starts positioning panel within column. It is a no-op when
// either element is nil or the controller is already active.
func (c *Controller) Activate(column, panel Element, opts Options) {
	if c.active || column == nil || panel == nil || c.host == nil {
		return
	}
	c.column = column
	c.panel = panel
	c.opts = opts
	c.active = true
	c.state = RegionState{LastScrollY: c.host.ScrollY()}
	c.lastFrame = time.Time{}
	c.neutral = false

	c.cancels = append(c.cancels,
		c.host.Listen(EventScroll, c.onScroll),
		c.host.Listen(EventResize, c.invalidate),
		c.host.Listen(EventBreakpoint, c.onBreakpoint),
		c.host.Observe(column, c.invalidate),
		c.host.Observe(panel, c.invalidate),
	)
	c.schedule()
}

// Deactivate removes every listener, cancels the pending frame and clears
// inline positioning from both elements. Safe to call when inactive.
func (c *Controller) Deactivate() {
	if !c.active {
		return
	}
	if c.frame != 0 {
		c.host.CancelFrame(c.frame)
		c.frame = 0
	}
	for _, cancel := range c.cancels {
		if cancel != nil {
			cancel()
		}
	}
	c.cancels = nil
	c.clearStyles()
	c.active = false
	c.state = RegionState{}
	c.scrollDirty = false
	c.column = nil
	c.panel = nil
}

func (c *Controller) onScroll() {
	c.scrollDirty = true
	c.schedule()
}

func (c *Controller) invalidate() {
	c.state.MetricsReady = false
	c.schedule()
}

func (c *Controller) onBreakpoint() {
	c.state = RegionState{LastScrollY: c.state.LastScrollY}
	c.schedule()
}

// schedule requests a frame unless one is already pending, so an event
// storm collapses into one unit of work per frame.
func (c *Controller) schedule() {
	if !c.active || c.frame != 0 {
		return
	}
	c.frame = c.host.RequestFrame(c.onFrame)
}

func (c *Controller) onFrame(now time.Time) {
	c.frame = 0
	if !c.active {
		return
	}
	c.stats.Frames++

	if !c.host.Matches() {
		c.neutralize()
		return
	}
	c.neutral = false

	viewport := c.host.ViewportHeight()
	if !c.state.MetricsReady {
		c.measure(viewport)
	}

	switch c.state.Mode {
	case ModeShort:
		c.state = Track(c.state, c.host.ScrollY(), viewport, c.opts)
		c.scrollDirty = false
		c.column.SetStyle(Style{Position: PositionRelative})
		c.panel.SetStyle(Style{Position: PositionSticky, Top: c.opts.TopOffset})
		c.lastFrame = time.Time{}

	case ModeTall:
		if c.scrollDirty || !c.state.Placed {
			c.state = Track(c.state, c.host.ScrollY(), viewport, c.opts)
			c.stats.Tracks++
			c.scrollDirty = false
		}

		dt := nominalFrame
		if !c.lastFrame.IsZero() {
			dt = now.Sub(c.lastFrame)
		}
		var more bool
		c.state, more = Step(c.state, dt, c.tuning)

		c.column.SetStyle(Style{Position: PositionRelative})
		c.panel.SetStyle(Style{Position: PositionRelative, TranslateY: c.state.CurrentOffset})

		if more {
			c.lastFrame = now
			c.schedule()
		} else {
			c.lastFrame = time.Time{}
		}
	}
}

// measure is the only place that reads element layout.
func (c *Controller) measure(viewport float64) {
	col := c.column.Measure()
	pan := c.panel.Measure()
	c.stats.Measures++

	prev := c.state.Mode
	c.state = Recompute(c.state, Metrics{
		ColumnTop:      col.Top,
		ColumnBottom:   col.Bottom(),
		PanelHeight:    pan.Height,
		ViewportHeight: viewport,
	}, c.opts)
	c.state = Reconcile(c.state, c.host.ScrollY(), viewport, c.opts)

	if c.state.Mode != prev {
		c.panel.SetStyle(Style{})
		c.lastFrame = time.Time{}
		if c.logger != nil {
			c.logger.Debug("sticky mode change",
				"from", prev.String(),
				"to", c.state.Mode.String(),
				"panel", pan.Height,
				"band", AvailableBand(viewport, c.opts),
			)
		}
	}
}

func (c *Controller) neutralize() {
	if c.neutral {
		return
	}
	c.clearStyles()
	c.state = RegionState{LastScrollY: c.host.ScrollY()}
	c.scrollDirty = false
	c.lastFrame = time.Time{}
	c.neutral = true
}

func (c *Controller) clearStyles() {
	if c.panel != nil {
		c.panel.SetStyle(Style{})
	}
	if c.column != nil {
		c.column.SetStyle(Style{})
	}
}
