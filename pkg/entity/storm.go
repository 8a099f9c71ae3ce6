package entity

import (
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

const (
	stormBaseRadius = 0.05
	stormDrift      = 16.0
	stormRepel      = 0.9
)

// Storm is a drifting circular hazard that pushes boids out.
type Storm struct {
	Pos    geometry.Vector2D
	Radius float64
	Phase  float64
	// Velocity is the phase drift rate in rad/s.
	Velocity float64
}

// NewStorm places a storm around the centre of the arena.
func NewStorm(width, height float64, src *rng.Source) *Storm {
	return &Storm{
		Pos: geometry.NewVector(
			width*0.5+src.Jitter(width*0.6),
			height*0.5+src.Jitter(height*0.4),
		),
		Radius:   math.Min(width, height) * (stormBaseRadius + src.Float64()*0.04),
		Phase:    src.Angle(),
		Velocity: 0.25 + src.Float64()*0.25,
	}
}

// Update drifts the storm and keeps it inside the arena.
func (s *Storm) Update(dtS, width, height float64) {
	s.Phase += s.Velocity * dtS

	drift := stormDrift * dtS
	s.Pos.X += math.Cos(s.Phase) * drift
	s.Pos.Y += math.Sin(s.Phase*0.9) * drift

	if s.Pos.X < 0 || s.Pos.X > width {
		s.Phase += math.Pi * 0.5
	}
	if s.Pos.Y < 0 || s.Pos.Y > height {
		s.Phase += math.Pi * 0.5
	}
	s.Pos = s.Pos.Clamp(0, 0, width, height)
}

// Repulsion returns the outward push on a point at p, and false when p is
// outside the storm or exactly at its centre.
func (s *Storm) Repulsion(p geometry.Vector2D) (geometry.Vector2D, bool) {
	d := p.Sub(s.Pos)
	d2 := d.LenSqr()
	if d2 == 0 || d2 >= s.Radius*s.Radius {
		return geometry.Vector2D{}, false
	}
	dist := math.Sqrt(d2)
	strength := (1 - dist/s.Radius) * stormRepel
	return d.Div(dist).Mul(strength), true
}
