package simulation

import "math"

const (
	minFrameMs   = 2.0
	maxFrameMs   = 100.0
	refFrameMs   = 1000.0 / 60
	maxNormDelta = 1.8
)

// Delta is the time step of one tick, in two units.
type Delta struct {
	// N is the step normalised to a 60 Hz frame, capped at 1.8.
	N float64
	// S is the step in seconds.
	S float64
}

// FrameDelta converts a raw frame interval in milliseconds into a Delta.
// The interval is clamped to [2, 100] ms first, so a stalled tab or a debugger
// pause never produces a huge step.
func FrameDelta(ms float64) Delta {
	ms = math.Max(minFrameMs, math.Min(maxFrameMs, ms))
	return Delta{
		N: math.Min(maxNormDelta, ms/refFrameMs),
		S: ms / 1000,
	}
}
