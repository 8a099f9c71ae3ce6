package entity

import (
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/arena"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

// DotState is the lifecycle state of a dot.
type DotState int

const (
	Orbit DotState = iota
	Free
	Carried
)

func (s DotState) String() string {
	switch s {
	case Orbit:
		return "orbit"
	case Free:
		return "free"
	case Carried:
		return "carried"
	}
	return "unknown"
}

const (
	// OrbitSpeed is the angular speed of orbiting dots in rad/s.
	OrbitSpeed   = 1.0
	// CarryOffset is the distance a carried dot trails behind its carrier.
	CarryOffset  = 6.0
	freeFriction = 0.985
	bounceMargin = 8.0
)

// Dot is a collectible resource unit.
type Dot struct {
	Owner     Team
	State     DotState
	Angle     float64
	OrbFactor float64
	// ROrb is the cached orbit radius; zero means Radius·OrbFactor of the owner base.
	ROrb      float64
	Pos       geometry.Vector2D
	Vel       geometry.Vector2D
	Carrier   arena.Handle[Boid]
}

func orbFactor(src *rng.Source) float64 {
	return 0.66 + (src.Float64()*0.1 - 0.05)
}

// NewNeutralDot creates a free dot near the arena centre with a small random drift.
func NewNeutralDot(width, height float64, src *rng.Source) Dot {
	return Dot{
		Owner:     Neutral,
		State:     Free,
		Angle:     src.Angle(),
		OrbFactor: orbFactor(src),
		Pos: geometry.NewVector(
			width*0.5+src.Jitter(width*0.3),
			height*0.5+src.Jitter(height*0.4),
		),
		Vel: geometry.NewVector(src.Jitter(1.5), src.Jitter(1.5)),
	}
}

// NewOrbitingDot creates a dot already in orbit around base.
func NewOrbitingDot(base *Base, src *rng.Source) Dot {
	d := Dot{
		Owner:     base.Team,
		State:     Orbit,
		Angle:     src.Angle(),
		OrbFactor: orbFactor(src),
	}
	d.ROrb = base.Radius * d.OrbFactor
	d.Pos = d.orbitPos(base)
	return d
}

func (d *Dot) orbitPos(base *Base) geometry.Vector2D {
	r := d.ROrb
	if r == 0 {
		r = base.Radius * d.OrbFactor
	}
	return base.Pos.Add(geometry.NewVector(math.Cos(d.Angle)*r, math.Sin(d.Angle)*r))
}

// Update advances the dot according to its state.
func (d *Dot) Update(dtN, dtS float64, w *World) {
	switch d.State {
	case Orbit:
		d.updateOrbit(dtS, w)
	case Free:
		d.updateFree(dtN, w.Width, w.Height)
	case Carried:
		d.updateCarried(w)
	}
}

func (d *Dot) updateOrbit(dtS float64, w *World) {
	base := w.Base(d.Owner)
	if base == nil {
		return
	}
	dir := 1.0
	if d.Owner == Opponent {
		dir = -1
	}
	d.Angle += OrbitSpeed * dtS * dir
	d.Pos = d.orbitPos(base)
}

func (d *Dot) updateFree(dtN, width, height float64) {
	d.Vel = d.Vel.Mul(math.Pow(freeFriction, dtN))
	d.Pos = d.Pos.Add(d.Vel.Mul(dtN))

	if d.Pos.X < bounceMargin {
		d.Pos.X = bounceMargin
		d.Vel.X = math.Abs(d.Vel.X)
	} else if d.Pos.X > width-bounceMargin {
		d.Pos.X = width - bounceMargin
		d.Vel.X = -math.Abs(d.Vel.X)
	}
	if d.Pos.Y < bounceMargin {
		d.Pos.Y = bounceMargin
		d.Vel.Y = math.Abs(d.Vel.Y)
	} else if d.Pos.Y > height-bounceMargin {
		d.Pos.Y = height - bounceMargin
		d.Vel.Y = -math.Abs(d.Vel.Y)
	}
}

func (d *Dot) updateCarried(w *World) {
	carrier, ok := w.Boids.Get(d.Carrier)
	if !ok {
		d.State = Free
		d.Carrier = arena.Handle[Boid]{}
		return
	}
	offset := carrier.Vel
	if offset.Len() < 0.01 {
		offset = geometry.NewVector(1, 0)
	}
	d.Pos = carrier.Pos.Add(offset.WithLen(-CarryOffset))
}

// PickUp attaches the dot to carrier.
func (d *Dot) PickUp(carrier arena.Handle[Boid]) {
	d.State = Carried
	d.Carrier = carrier
}

// Drop frees the dot, flinging it along push at 2..4 px/tick with a little jitter.
func (d *Dot) Drop(push geometry.Vector2D, src *rng.Source) {
	d.State = Free
	d.Carrier = arena.Handle[Boid]{}
	d.Vel = push.WithLen(2 + src.Float64()*2)
	d.Vel.X += src.Jitter(1.2)
	d.Vel.Y += src.Jitter(1.2)
}

// Deposit puts the dot in orbit around base, transferring ownership to team.
func (d *Dot) Deposit(team Team, base *Base, src *rng.Source) {
	d.State = Orbit
	d.Owner = team
	d.Carrier = arena.Handle[Boid]{}
	d.OrbFactor = orbFactor(src)
	d.ROrb = base.Radius * d.OrbFactor
	d.Angle = src.Angle()
}
