package sticky

import (
	"math"
	"time"
)

// Tuning holds the easing constants. The defaults were picked by eye for
// a 60Hz frame clock and can be re-tuned per platform.
type Tuning struct {
	// MaxFrameStep caps dt so a long pause does not become one jump.
	MaxFrameStep time.Duration

	// Distances above FarDistance use TauFar, above NearDistance TauMid,
	// everything else TauNear.
	FarDistance  float64
	NearDistance float64
	TauFar       time.Duration
	TauMid       time.Duration
	TauNear      time.Duration

	MinAlpha float64
	MaxAlpha float64

	// Epsilon is the remaining distance under which the animation snaps.
	Epsilon float64
}

// DefaultTuning returns the stock easing constants.
func DefaultTuning() Tuning {
	return Tuning{
		MaxFrameStep: 64 * time.Millisecond,
		FarDistance:  320,
		NearDistance: 160,
		TauFar:       45 * time.Millisecond,
		TauMid:       70 * time.Millisecond,
		TauNear:      90 * time.Millisecond,
		MinAlpha:     0.18,
		MaxAlpha:     0.65,
		Epsilon:      0.5,
	}
}

func (t Tuning) tau(distance float64) time.Duration {
	switch {
	case distance > t.FarDistance:
		return t.TauFar
	case distance > t.NearDistance:
		return t.TauMid
	default:
		return t.TauNear
	}
}

// Alpha is the smoothing factor for one frame of length dt at the given
// remaining distance.
func (t Tuning) Alpha(dt time.Duration, distance float64) float64 {
	if dt > t.MaxFrameStep {
		dt = t.MaxFrameStep
	}
	tau := t.tau(distance)
	if tau <= 0 {
		return t.MaxAlpha
	}
	a := 1 - math.Exp(-dt.Seconds()/tau.Seconds())
	return min(max(a, t.MinAlpha), t.MaxAlpha)
}

// Step advances CurrentOffset one frame towards TargetOffset and reports
// whether another frame is needed.
func Step(s RegionState, dt time.Duration, t Tuning) (RegionState, bool) {
	diff := s.TargetOffset - s.CurrentOffset
	if math.Abs(diff) < t.Epsilon {
		s.CurrentOffset = s.TargetOffset
		return s, false
	}

	s.CurrentOffset += diff * t.Alpha(dt, math.Abs(diff))

	if math.Abs(s.TargetOffset-s.CurrentOffset) < t.Epsilon {
		s.CurrentOffset = s.TargetOffset
		return s, false
	}
	return s, true
}
