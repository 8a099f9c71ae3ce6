package entity

import (
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/arena"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

// WrapMargin is how far past an edge a boid travels before reappearing on the other side.
const WrapMargin = 18.0

// DropStun is the stun applied when a boid loses the dot it carries.
const DropStun = 0.15

// Boid is one flock member.
type Boid struct {
	Team Team
	ID   int
	Pos  geometry.Vector2D
	Vel  geometry.Vector2D
	Acc  geometry.Vector2D
	// Carry is the dot being carried; the nil handle when empty-handed.
	Carry arena.Handle[Dot]
	// Stun > 0 disables interactions.
	Stun float64
}

// NewBoid spawns a boid in a ring around base with a random heading.
func NewBoid(team Team, id int, base *Base, src *rng.Source) Boid {
	radius := base.Radius*0.6 + src.Float64()*base.Radius*0.5
	return Boid{
		Team: team,
		ID:   id,
		Pos:  base.Pos.Add(geometry.FromAngle(src.Angle()).Mul(radius)),
		Vel:  geometry.FromAngle(src.Angle()).Mul(1 + src.Float64()),
	}
}

// Apply accumulates a steering force for the next Step.
func (b *Boid) Apply(force geometry.Vector2D) {
	b.Acc = b.Acc.Add(force)
}

// Step integrates one tick: stun decay, velocity clamp, motion and toroidal wrap.
func (b *Boid) Step(dtN float64, stats Stats, width, height float64) {
	if b.Stun > 0 {
		b.Stun -= dtN / 6
		if b.Stun < 0 {
			b.Stun = 0
		}
	}

	b.Vel = b.Vel.Add(b.Acc).Limit(stats.MaxSpeed)
	b.Pos = b.Pos.Add(b.Vel.Mul(dtN))
	b.Acc = geometry.Vector2D{}

	switch {
	case b.Pos.X < -WrapMargin:
		b.Pos.X = width + WrapMargin
	case b.Pos.X > width+WrapMargin:
		b.Pos.X = -WrapMargin
	}
	switch {
	case b.Pos.Y < -WrapMargin:
		b.Pos.Y = height + WrapMargin
	case b.Pos.Y > height+WrapMargin:
		b.Pos.Y = -WrapMargin
	}
}

// Carrying reports whether the boid holds a dot.
func (b *Boid) Carrying() bool { return !b.Carry.Nil() }

// PickUp records h as the carried dot.
func (b *Boid) PickUp(h arena.Handle[Dot]) { b.Carry = h }

// DropCarried releases the carried dot link and stuns the boid briefly.
// It is used both for forced drops and for deposits.
func (b *Boid) DropCarried() {
	b.Carry = arena.Handle[Dot]{}
	b.Stun = DropStun
}

// Stunned reports whether interactions are currently disabled.
func (b *Boid) Stunned() bool { return b.Stun > 0 }
