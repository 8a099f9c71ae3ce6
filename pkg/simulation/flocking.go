package simulation

import (
	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/arena"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/spatial"
)

const (
	seekGain        = 1.4
	cohesionGain    = 0.9
	separationGain  = 1.6
	enemySepGain    = 1.05
	auraGain        = 0.8
	carrierAuraGain = 1.6
	stealReach      = 0.9
	depositReach    = 0.95
	threatReach     = 1.6
	defendOffset    = 0.6
	fallbackX       = 0.55
	fallbackY       = 0.5
)

// Goal is an optional steering target.
type Goal struct {
	Pos geometry.Vector2D
	Set bool
}

// At returns a set Goal at p.
func At(p geometry.Vector2D) Goal { return Goal{Pos: p, Set: true} }

// Steering gathers everything that decides where each boid heads this tick.
// Nil layers are skipped.
type Steering struct {
	// Goals holds the team-wide target per team.
	Goals      [2]Goal
	Waypoints  *Waypoints
	Dispersion *Dispersion
	Chaos      *Chaos
}

// Flock applies steering forces and resolves pickups, steals, deposits and
// forced drops for every boid. It keeps a spatial grid and a neighbour
// buffer across ticks.
type Flock struct {
	cfg    *Config
	grid   *spatial.Grid
	buf    []int
	src    *rng.Source
	logger log.Logger
}

// NewFlock returns a Flock using cfg interaction radii.
func NewFlock(cfg *Config, src *rng.Source, logger log.Logger) *Flock {
	return &Flock{
		cfg:    cfg,
		grid:   spatial.NewGrid(),
		buf:    make([]int, 0, 64),
		src:    src,
		logger: logger,
	}
}

// Grid exposes the neighbour index built by the last Update.
func (f *Flock) Grid() *spatial.Grid { return f.grid }

// Update steers every boid of w. Interaction events are passed to emit in
// boid order.
func (f *Flock) Update(w *entity.World, s *Steering, emit func(Event)) {
	avg := (w.Stats(entity.Player).Perception + w.Stats(entity.Opponent).Perception) / 2
	f.grid.SetCellSize(avg)
	f.grid.Rebuild(w.Boids.Len(), func(i int) geometry.Vector2D {
		b, _ := w.Boids.At(i)
		return b.Pos
	})

	for i := 0; i < w.Boids.Len(); i++ {
		f.steer(i, w, s, emit)
	}
}

func (f *Flock) steer(i int, w *entity.World, s *Steering, emit func(Event)) {
	b, h := w.Boids.At(i)
	stats := w.Stats(b.Team)
	f.buf = f.grid.Neighbors(i, stats.Perception, f.buf[:0])

	// 1. classic flocking
	f.flocking(b, w, stats)

	// 2. goal seeking
	if goal, ok := f.goalFor(b, w, s); ok {
		if s.Dispersion != nil {
			if off, dispersed := s.Dispersion.Offset(b.ID); dispersed {
				goal = goal.Add(off)
			}
		}
		b.Apply(goal.Sub(b.Pos).WithLen(stats.MaxSpeed).Sub(b.Vel).Limit(stats.MaxForce * seekGain))
	}

	// 3. enemy base aura
	if enemy := w.Base(b.Team.Other()); enemy != nil {
		d := enemy.Pos.Sub(b.Pos)
		dist := d.Len()
		if r := enemy.AuraRadius(); dist < r {
			push := d.Mul(-1).WithLen((1 - dist/r) * auraGain * enemy.Aura)
			if b.Carrying() {
				push = push.Mul(carrierAuraGain)
			}
			b.Apply(push)
		}
	}

	// 4. storms
	for _, st := range w.Storms {
		if push, ok := st.Repulsion(b.Pos); ok {
			b.Apply(push)
		}
	}

	// 5. scatter burst
	if s.Chaos != nil {
		if v, ok := s.Chaos.Velocity(b.ID); ok {
			b.Apply(chaosSteer(v, b.Vel, stats.MaxForce))
		}
	}

	// 6. interactions
	if b.Stunned() {
		return
	}
	if !b.Carrying() {
		f.tryPickup(b, h, w, emit)
	}
	f.tryDeposit(b, w, emit)
	f.dropIfOutnumbered(b, w, emit)
}

func (f *Flock) flocking(b *entity.Boid, w *entity.World, stats entity.Stats) {
	per2 := stats.Perception * stats.Perception
	sep2 := stats.SepR * stats.SepR

	count := 0
	var sumVel, sumPos, sumSep geometry.Vector2D
	for _, j := range f.buf {
		other, _ := w.Boids.At(j)
		d := other.Pos.Sub(b.Pos)
		d2 := d.LenSqr()
		if d2 > per2 || d2 == 0 {
			continue
		}
		push := d.Mul(-1).Div(max(1, d2))
		if other.Team == b.Team {
			count++
			sumVel = sumVel.Add(other.Vel)
			sumPos = sumPos.Add(other.Pos)
			if d2 < sep2 {
				sumSep = sumSep.Add(push)
			}
		} else {
			sumSep = sumSep.Add(push.Mul(enemySepGain))
		}
	}
	if count == 0 {
		return
	}

	n := float64(count)
	b.Apply(sumVel.Div(n).WithLen(stats.MaxSpeed).Sub(b.Vel).Limit(stats.MaxForce))
	b.Apply(sumPos.Div(n).Sub(b.Pos).WithLen(stats.MaxSpeed).Sub(b.Vel).Limit(stats.MaxForce).Mul(cohesionGain))
	b.Apply(sumSep.WithLen(stats.MaxSpeed).Sub(b.Vel).Limit(stats.MaxForce).Mul(separationGain))
}

// goalFor resolves the target of b. Carriers head home and player boids
// follow waypoints before the team goal. Without a goal a boid guards its
// base when enemy carriers are close, otherwise it drifts to the fallback.
func (f *Flock) goalFor(b *entity.Boid, w *entity.World, s *Steering) (geometry.Vector2D, bool) {
	home := w.Base(b.Team)
	if home == nil {
		return geometry.Vector2D{}, false
	}
	if b.Carrying() {
		return home.Pos, true
	}

	if b.Team == entity.Player {
		if s.Waypoints != nil {
			if p, ok := s.Waypoints.Next(b.ID, b.Pos); ok {
				return p, true
			}
		}
	}
	if g := s.Goals[b.Team]; g.Set {
		return g.Pos, true
	}

	if w.CarriersNear(b.Team.Other(), home.Pos, home.Radius*threatReach) > 0 {
		inward := 1.0
		if b.Team == entity.Opponent {
			inward = -1
		}
		return home.Pos.Add(geometry.NewVector(inward*home.Radius*defendOffset, 0)), true
	}
	return geometry.NewVector(b.Pos.X*fallbackX, b.Pos.Y*fallbackY), true
}

func (f *Flock) tryPickup(b *entity.Boid, h arena.Handle[entity.Boid], w *entity.World, emit func(Event)) {
	r2 := f.cfg.PickupRadius * f.cfg.PickupRadius
	best := -1
	bestD2 := r2
	for j := 0; j < w.Dots.Len(); j++ {
		d, _ := w.Dots.At(j)
		if d.State != entity.Free {
			continue
		}
		if d2 := d.Pos.DistanceSquaredTo(b.Pos); d2 < bestD2 {
			best, bestD2 = j, d2
		}
	}
	if best >= 0 {
		d, dh := w.Dots.At(best)
		b.PickUp(dh)
		d.PickUp(h)
		emit(Event{Kind: EventPickup, Team: b.Team, Pos: d.Pos})
		return
	}

	enemy := w.Base(b.Team.Other())
	if enemy == nil || len(enemy.Stock) == 0 {
		return
	}
	reach := enemy.Radius * stealReach
	if enemy.Pos.DistanceSquaredTo(b.Pos) >= reach*reach {
		return
	}
	dh, ok := enemy.Steal()
	if !ok {
		return
	}
	d, err := w.Dots.Lookup(dh)
	if err != nil {
		f.logger.Warnf("⚠️ stale stock entry in %s base: %v", enemy.Team, err)
		return
	}
	b.PickUp(dh)
	d.PickUp(h)
	emit(Event{Kind: EventSteal, Team: b.Team, Pos: d.Pos})
}

func (f *Flock) tryDeposit(b *entity.Boid, w *entity.World, emit func(Event)) {
	if !b.Carrying() {
		return
	}
	home := w.Base(b.Team)
	reach := home.Radius * depositReach
	if home.Pos.DistanceSquaredTo(b.Pos) >= reach*reach {
		return
	}
	dh := b.Carry
	d, err := w.Dots.Lookup(dh)
	if err != nil {
		f.logger.Warnf("⚠️ boid %d carried a stale dot: %v", b.ID, err)
		b.DropCarried()
		return
	}
	d.Deposit(b.Team, home, f.src)
	levelled := home.Deposit(dh)
	b.DropCarried()
	emit(Event{Kind: EventDeposit, Team: b.Team, Pos: b.Pos})
	if levelled {
		emit(Event{Kind: EventLevelUp, Team: b.Team, Pos: home.Pos, Count: home.Level})
	}
}

func (f *Flock) dropIfOutnumbered(b *entity.Boid, w *entity.World, emit func(Event)) {
	if !b.Carrying() {
		return
	}
	r2 := f.cfg.DropRadius * f.cfg.DropRadius
	enemies := 0
	for _, j := range f.buf {
		other, _ := w.Boids.At(j)
		if other.Team != b.Team && other.Pos.DistanceSquaredTo(b.Pos) < r2 {
			enemies++
		}
	}
	if enemies < f.cfg.DropEnemies {
		return
	}
	if d, ok := w.Dots.Get(b.Carry); ok {
		d.Drop(b.Vel, f.src)
	}
	b.DropCarried()
	emit(Event{Kind: EventDrop, Team: b.Team, Pos: b.Pos})
}
