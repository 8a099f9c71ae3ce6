package entity

import "math"

const (
	basePerception = 52.0
	baseSeparation = 22.0
	baseMaxSpeed   = 2.0
	baseMaxForce   = 0.06
)

// Stats are the per-team boid parameters derived from the home base level.
type Stats struct {
	Perception float64
	SepR       float64
	MaxSpeed   float64
	MaxForce   float64
	Aura       float64
}

// BoidStats derives the stats for a base level. Monotone non-decreasing in level.
func BoidStats(level int) Stats {
	l := float64(level)
	return Stats{
		Perception: basePerception + l*2.5,
		SepR:       baseSeparation + math.Min(14, l*1.2),
		MaxSpeed:   baseMaxSpeed * (1 + math.Min(0.45, l*0.06)),
		MaxForce:   baseMaxForce * (1 + math.Min(0.4, l*0.05)),
		Aura:       1 + l*0.22,
	}
}
