// Package simulation runs a two-team skirmish: flocking boids ferry dots
// between bases, bases level up from deposits, and storms, waves and chaos
// bursts keep the field moving. A Match is single-threaded; front-ends drive
// it one Tick at a time and read Snapshot copies.
package simulation

import (
	"fmt"
	"math"
	"time"

	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/ai"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

// Input is what a front-end feeds into one tick.
type Input struct {
	Delta
	// Pointer is the player goal while Active.
	Pointer geometry.Vector2D
	Active  bool
}

// Option configures a Match.
type Option func(*Match)

// WithLogger sets the logger used for match diagnostics.
func WithLogger(l log.Logger) Option {
	return func(m *Match) { m.logger = l }
}

// WithSeed seeds the match random source, overriding Config.Seed.
func WithSeed(seed uint64) Option {
	return func(m *Match) { m.src = rng.New(seed) }
}

// WithSource injects a random source directly.
func WithSource(src *rng.Source) Option {
	return func(m *Match) { m.src = src }
}

// Match is one running skirmish.
type Match struct {
	cfg    *Config
	world  *entity.World
	src    *rng.Source
	logger log.Logger

	flock      *Flock
	opponent   *ai.Reactive
	planner    *ai.Planner
	waypoints  *Waypoints
	dispersion *Dispersion
	chaos      *Chaos

	// steer is the steering handed to the flock by the last Tick.
	steer Steering

	nextID    int
	cycle     float64
	elapsed   float64
	idle      float64
	ticks     uint64
	paused    bool
	autopilot bool
	driving   bool
	stats     [2]TeamStats
	events    []Event
	pending   []entity.Team
}

// NewMatch sets up a match in a width×height arena: both teams spawned, base
// stock filled, neutral dots and the opening storm placed.
func NewMatch(cfg *Config, width, height float64, opts ...Option) (*Match, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid arena size %gx%g", width, height)
	}
	m := &Match{
		cfg:       cfg,
		world:     entity.NewWorld(width, height),
		logger:    log.DiscardLogger,
		autopilot: cfg.AutoPilot,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.src == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		m.src = rng.New(seed)
	}

	opponent, err := ai.NewReactive(entity.Opponent, m.world, m.src, cfg.OpponentRules)
	if err != nil {
		return nil, fmt.Errorf("failed to build opponent controller: %w", err)
	}
	m.opponent = opponent
	m.planner = ai.NewPlanner(entity.Player, m.src)
	m.flock = NewFlock(cfg, m.src, m.logger)
	m.waypoints = NewWaypoints(cfg.MaxWaypoints, cfg.WaypointRadius, cfg.WaypointVisits)
	m.dispersion = NewDispersion(cfg)
	m.chaos = NewChaos(cfg)

	m.setup()
	m.logger.Infof("🚀 Match ready: %gx%g, %d boids, seed %d", width, height, m.world.Boids.Len(), m.src.Seed())
	return m, nil
}

// PerTeam is the opening boid count of the player team for an arena size.
func (cfg *Config) PerTeam(width, height float64) int {
	area := cfg.AreaPerBoid
	if cfg.ReducedMotion {
		area = cfg.ReducedAreaPerBoid
	}
	n := int(math.Floor(width * height / area))
	return max(cfg.MinPerTeam, min(cfg.MaxPerTeam, n))
}

func (m *Match) setup() {
	w := m.world
	perTeam := m.cfg.PerTeam(w.Width, w.Height)
	m.SpawnBoids(entity.Player, perTeam)
	m.SpawnBoids(entity.Opponent, int(math.Round(float64(perTeam)*m.cfg.OpponentRatio)))

	for _, base := range w.Bases {
		for len(base.Stock) < base.Desired {
			base.Stock = append(base.Stock, w.Dots.Insert(entity.NewOrbitingDot(base, m.src)))
		}
	}
	m.addNeutralDots(m.cfg.InitialNeutralDots)
	if !m.cfg.ReducedMotion {
		m.addStorm()
	}
}

// World exposes the entity state. Callers must not keep pointers across ticks.
func (m *Match) World() *entity.World { return m.world }

// Config returns the match configuration.
func (m *Match) Config() *Config { return m.cfg }

// Source returns the match random source.
func (m *Match) Source() *rng.Source { return m.src }

// Opponent returns the reactive controller of the opponent team.
func (m *Match) Opponent() *ai.Reactive { return m.opponent }

// Planner returns the player autopilot.
func (m *Match) Planner() *ai.Planner { return m.planner }

// Waypoints returns the player waypoint queue.
func (m *Match) Waypoints() *Waypoints { return m.waypoints }

// Chaos returns the scatter-burst state.
func (m *Match) Chaos() *Chaos { return m.chaos }

// Stats returns the interaction counters of team.
func (m *Match) Stats(t entity.Team) TeamStats {
	if !t.Valid() {
		return TeamStats{}
	}
	return m.stats[t]
}

// Ticks returns the number of simulated ticks.
func (m *Match) Ticks() uint64 { return m.ticks }

// Elapsed returns simulated seconds.
func (m *Match) Elapsed() float64 { return m.elapsed }

// Paused reports whether Tick is a no-op.
func (m *Match) Paused() bool { return m.paused }

// SetPaused freezes or resumes the match.
func (m *Match) SetPaused(p bool) {
	if m.paused != p {
		m.logger.Infof("⏯️ Match paused=%v at %.1fs", p, m.elapsed)
	}
	m.paused = p
}

// SetAutoPilot enables or disables the player autopilot.
func (m *Match) SetAutoPilot(on bool) {
	m.autopilot = on
	if !on {
		m.stopDriving()
	}
}

// Events returns the events emitted since the last Tick began, including
// those raised by direct calls such as LevelUpBase. The slice is reused.
func (m *Match) Events() []Event { return m.events }

// AutoPilot reports whether the autopilot is enabled, and whether it is
// steering the player team right now.
func (m *Match) AutoPilot() (enabled, driving bool) { return m.autopilot, m.driving }

// AddWaypoint queues a player waypoint at p.
func (m *Match) AddWaypoint(p geometry.Vector2D) {
	wp := m.waypoints.Add(p)
	m.logger.Debugf("📍 waypoint %d at %s", wp.ID, p)
}

// ClearWaypoints empties the waypoint queue.
func (m *Match) ClearWaypoints() { m.waypoints.Clear() }

// TriggerChaos starts a scatter burst now.
func (m *Match) TriggerChaos() {
	m.chaos.Trigger(m.world, m.src)
	m.emit(Event{Kind: EventChaos, Team: entity.Neutral, Pos: m.chaos.Centre()})
}

// Resize moves bases and orbits to new arena dimensions.
func (m *Match) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	m.world.Resize(width, height)
	m.logger.Debugf("📐 resized to %gx%g", width, height)
}

// SpawnBoids adds count boids of team around its base.
func (m *Match) SpawnBoids(t entity.Team, count int) {
	base := m.world.Base(t)
	if base == nil {
		return
	}
	for i := 0; i < count; i++ {
		m.world.Boids.Insert(entity.NewBoid(t, m.nextID, base, m.src))
		m.nextID++
	}
}

// LevelUpBase raises the level of team's base and applies the reinforcement
// side effects.
func (m *Match) LevelUpBase(t entity.Team) {
	base := m.world.Base(t)
	if base == nil {
		return
	}
	base.LevelUp()
	m.emit(Event{Kind: EventLevelUp, Team: t, Pos: base.Pos, Count: base.Level})
	m.levelUpEffects(t)
}

func (m *Match) levelUpEffects(t entity.Team) {
	w := m.world
	base := w.Base(t)

	n := m.cfg.ReinforcementBase + base.Level/2
	m.SpawnBoids(t, n)
	m.emit(Event{Kind: EventReinforce, Team: t, Pos: base.Pos, Count: n})

	if t == entity.Player && m.src.Chance(m.cfg.LevelUpCatchUpChance) {
		w.Bases[entity.Opponent].Desired += 2
		m.SpawnBoids(entity.Opponent, 3)
		m.emit(Event{Kind: EventReinforce, Team: entity.Opponent, Pos: w.Bases[entity.Opponent].Pos, Count: 3})
	}

	total := w.Bases[0].Level + w.Bases[1].Level
	if len(w.Storms) < min(m.cfg.MaxStorms, 2+total/3) {
		m.addStorm()
	}
	m.addNeutralDots(2)
	m.logger.Infof("⬆️ %s base reached level %d, %d boids on the field", t, base.Level, w.Boids.Len())
}

func (m *Match) waveCycle() {
	w := m.world
	p, o := w.Bases[entity.Player], w.Bases[entity.Opponent]
	if len(p.Stock)-len(o.Stock) > m.cfg.CatchUpThreshold {
		o.Desired += 2
		m.SpawnBoids(entity.Opponent, 2)
		m.emit(Event{Kind: EventWave, Team: entity.Opponent, Count: 2})
	} else {
		p.Desired++
		o.Desired++
		m.SpawnBoids(entity.Player, 1)
		m.SpawnBoids(entity.Opponent, 1)
		m.emit(Event{Kind: EventWave, Team: entity.Neutral, Count: 1})
	}
	p.Flash, o.Flash = 0.5, 0.5
	m.addNeutralDots(1)
	if len(w.Storms) < m.cfg.MaxWaveStorms && m.src.Chance(m.cfg.WaveStormChance) {
		m.addStorm()
	}
	m.logger.Debugf("🌊 wave at %.1fs: stock %d vs %d", m.elapsed, len(p.Stock), len(o.Stock))
}

func (m *Match) addNeutralDots(n int) {
	for i := 0; i < n; i++ {
		m.world.Dots.Insert(entity.NewNeutralDot(m.world.Width, m.world.Height, m.src))
	}
}

func (m *Match) addStorm() {
	st := entity.NewStorm(m.world.Width, m.world.Height, m.src)
	m.world.Storms = append(m.world.Storms, st)
	m.emit(Event{Kind: EventStorm, Team: entity.Neutral, Pos: st.Pos})
}

func (m *Match) emit(e Event) {
	if e.Team.Valid() {
		m.stats[e.Team].record(e.Kind)
	}
	m.events = append(m.events, e)
}

// flockEvent records e and queues the side effects of deposit level-ups,
// which run after every boid has been steered.
func (m *Match) flockEvent(e Event) {
	if e.Kind == EventLevelUp && m.cfg.DepositReinforcements {
		m.pending = append(m.pending, e.Team)
	}
	m.emit(e)
}

func (m *Match) stopDriving() {
	if m.driving {
		m.planner.Reset()
		m.logger.Debugf("🎮 autopilot released at %.1fs", m.elapsed)
	}
	m.driving = false
}

// Tick advances the match by one frame and returns the events it produced.
// The returned slice is reused by the next Tick.
func (m *Match) Tick(in Input) []Event {
	m.events = m.events[:0]
	if m.paused {
		return m.events
	}
	w := m.world
	m.ticks++
	m.elapsed += in.S
	if in.Active {
		m.idle = 0
	} else {
		m.idle += in.S
	}

	// 1. wave clock
	m.cycle += in.S
	if m.cycle >= m.cfg.WaveCycle {
		m.cycle = 0
		m.waveCycle()
	}

	// 2. decision layers
	prevMode := m.opponent.Mode
	if m.opponent.Update(in.S, w, ai.Input{Active: in.Active, X: in.Pointer.X}) && m.opponent.Mode != prevMode {
		m.emit(Event{Kind: EventModeChange, Team: entity.Opponent, Pos: m.opponent.Target, Detail: m.opponent.Mode.String()})
	}

	m.steer = Steering{}
	steer := &m.steer
	steer.Goals[entity.Opponent] = At(m.opponent.Target)
	switch {
	case in.Active:
		m.stopDriving()
		steer.Goals[entity.Player] = At(in.Pointer)
	case m.waypoints.Len() > 0:
		m.stopDriving()
		steer.Waypoints = m.waypoints
	case m.autopilot && m.idle > m.cfg.AutoPilotDelay:
		if !m.driving {
			m.logger.Debugf("🤖 autopilot engaged after %.1fs idle", m.idle)
		}
		m.driving = true
		prev := m.planner.Objective()
		target, replanned := m.planner.Update(in.S, w)
		steer.Goals[entity.Player] = At(target)
		if replanned && m.planner.Objective() != prev {
			m.emit(Event{Kind: EventObjective, Team: entity.Player, Pos: target, Detail: m.planner.Objective()})
		}
	default:
		m.stopDriving()
	}

	if m.cfg.Dispersion {
		m.dispersion.Update(in.S, w)
		steer.Dispersion = m.dispersion
	}
	if m.cfg.Chaos {
		if m.chaos.Update(in.S, m.idle, in.Active, w, m.src) {
			m.emit(Event{Kind: EventChaos, Team: entity.Neutral, Pos: m.chaos.Centre()})
			m.logger.Infof("💥 chaos burst at %s", m.chaos.Centre())
		}
		steer.Chaos = m.chaos
	}

	// 3. steering and interactions
	m.flock.Update(w, steer, m.flockEvent)

	// 4. integration
	for i := 0; i < w.Boids.Len(); i++ {
		b, _ := w.Boids.At(i)
		b.Step(in.N, w.Stats(b.Team), w.Width, w.Height)
	}
	for i := 0; i < w.Dots.Len(); i++ {
		d, _ := w.Dots.At(i)
		d.Update(in.N, in.S, w)
	}
	for _, st := range w.Storms {
		st.Update(in.S, w.Width, w.Height)
	}
	for _, base := range w.Bases {
		base.UpdateFlash(in.S)
	}

	// 5. deferred level-up side effects
	for _, t := range m.pending {
		m.levelUpEffects(t)
	}
	m.pending = m.pending[:0]
	return m.events
}
