package entity

import (
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/arena"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
)

// World owns every entity of a match. Collections only grow within a match.
type World struct {
	Width  float64
	Height float64
	Boids  *arena.Arena[Boid]
	Dots   *arena.Arena[Dot]
	Bases  [2]*Base
	Storms []*Storm
}

// NewWorld returns an empty world with both bases placed.
func NewWorld(width, height float64) *World {
	return &World{
		Width:  width,
		Height: height,
		Boids:  arena.New[Boid](256),
		Dots:   arena.New[Dot](128),
		Bases: [2]*Base{
			NewBase(Player, width, height),
			NewBase(Opponent, width, height),
		},
	}
}

// Base returns the base of team, or nil for Neutral or an unknown team.
func (w *World) Base(t Team) *Base {
	if !t.Valid() {
		return nil
	}
	return w.Bases[t]
}

// Stats returns the current boid stats of team.
func (w *World) Stats(t Team) Stats {
	if b := w.Base(t); b != nil {
		return BoidStats(b.Level)
	}
	return BoidStats(1)
}

// Centre is the middle of the arena.
func (w *World) Centre() geometry.Vector2D {
	return geometry.NewVector(w.Width*0.5, w.Height*0.5)
}

// Resize moves the bases and rescales the orbit radius of every orbiting dot.
func (w *World) Resize(width, height float64) {
	w.Width, w.Height = width, height
	for _, b := range w.Bases {
		b.Resize(width, height)
	}
	for i := 0; i < w.Dots.Len(); i++ {
		d, _ := w.Dots.At(i)
		if d.State != Orbit {
			continue
		}
		if b := w.Base(d.Owner); b != nil {
			d.ROrb = b.Radius * d.OrbFactor
		}
	}
}

// CountTeam returns the number of boids of team and how many of them carry a dot.
func (w *World) CountTeam(t Team) (total, carriers int) {
	for i := 0; i < w.Boids.Len(); i++ {
		b, _ := w.Boids.At(i)
		if b.Team != t {
			continue
		}
		total++
		if b.Carrying() {
			carriers++
		}
	}
	return total, carriers
}

// CarriersNear counts boids of team carrying a dot within radius of p.
func (w *World) CarriersNear(t Team, p geometry.Vector2D, radius float64) int {
	r2 := radius * radius
	n := 0
	for i := 0; i < w.Boids.Len(); i++ {
		b, _ := w.Boids.At(i)
		if b.Team == t && b.Carrying() && b.Pos.DistanceSquaredTo(p) < r2 {
			n++
		}
	}
	return n
}
