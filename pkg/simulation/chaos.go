package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

const (
	chaosFalloff   = 500.0
	chaosMinSpeed  = 3.0
	chaosMaxSpeed  = 8.0
	chaosSpread    = math.Pi / 3
	chaosSteerGain = 4.0
)

// Chaos is the rare burst that scatters every boid away from a random point
// when the field has been idle for a while. The trigger rate grows
// quadratically from zero at MinGap to PeakRate at MaxGap since the last burst.
type Chaos struct {
	Duration float64
	MinGap   float64
	MaxGap   float64
	Idle     float64
	PeakRate float64

	active     bool
	timer      float64
	since      float64
	next       float64
	centre     geometry.Vector2D
	velocities map[int]geometry.Vector2D
}

// NewChaos builds a Chaos from cfg.
func NewChaos(cfg *Config) *Chaos {
	return &Chaos{
		Duration:   cfg.ChaosDuration,
		MinGap:     cfg.ChaosMinGap,
		MaxGap:     cfg.ChaosMaxGap,
		Idle:       cfg.ChaosIdle,
		PeakRate:   cfg.ChaosPeakRate,
		next:       cfg.ChaosMinGap + (cfg.ChaosMaxGap-cfg.ChaosMinGap)/3,
		velocities: make(map[int]geometry.Vector2D),
	}
}

// Probability is the per-second trigger rate right now.
func (c *Chaos) Probability() float64 {
	if c.since < c.MinGap {
		return 0
	}
	span := c.MaxGap - c.MinGap
	if span <= 0 {
		return c.PeakRate
	}
	tf := (c.since - c.MinGap) / span
	return math.Min(1, tf*tf) * c.PeakRate
}

// Update advances the burst clock. idle is the time since the last active
// input; active reports an input in progress. It reports whether a burst
// started this tick.
func (c *Chaos) Update(dtS, idle float64, active bool, w *entity.World, src *rng.Source) bool {
	c.since += dtS
	if c.active {
		c.timer += dtS
		if c.timer >= c.Duration {
			c.End()
		}
		return false
	}
	if idle <= c.Idle || active {
		return false
	}
	if src.Float64() < c.Probability()*dtS {
		c.Trigger(w, src)
		return true
	}
	return false
}

// Trigger starts a burst immediately.
func (c *Chaos) Trigger(w *entity.World, src *rng.Source) {
	c.active = true
	c.timer = 0
	c.since = 0
	c.next = src.Range(100, 140)
	c.centre = geometry.NewVector(
		src.Range(w.Width*0.2, w.Width*0.8),
		src.Range(w.Height*0.2, w.Height*0.8),
	)
	clear(c.velocities)

	for i := 0; i < w.Boids.Len(); i++ {
		b, _ := w.Boids.At(i)
		away := b.Pos.Sub(c.centre)
		dist := away.Len()
		speed := src.Range(chaosMinSpeed, chaosMaxSpeed) * (1 + math.Max(0, 1-dist/chaosFalloff))
		angle := math.Atan2(away.Y, away.X) + src.Range(-chaosSpread, chaosSpread)
		c.velocities[b.ID] = geometry.FromAngle(angle).Mul(speed)
	}
}

// End stops the burst and forgets the assigned velocities.
func (c *Chaos) End() {
	c.active = false
	c.timer = 0
	clear(c.velocities)
}

// Active reports whether a burst is running.
func (c *Chaos) Active() bool { return c.active }

// Centre is the point the current burst scatters from.
func (c *Chaos) Centre() geometry.Vector2D { return c.centre }

// Progress is the completed fraction of the current burst, in [0, 1).
func (c *Chaos) Progress() float64 {
	if !c.active || c.Duration <= 0 {
		return 0
	}
	return c.timer / c.Duration
}

// TimeToNext is the display estimate of the next burst.
func (c *Chaos) TimeToNext() float64 { return math.Max(0, c.next-c.since) }

// Velocity returns the scatter velocity assigned to boid id during a burst.
func (c *Chaos) Velocity(id int) (geometry.Vector2D, bool) {
	if !c.active {
		return geometry.Vector2D{}, false
	}
	v, ok := c.velocities[id]
	return v, ok
}

// chaosSteer pulls vel toward the burst velocity.
func chaosSteer(target, vel geometry.Vector2D, maxForce float64) geometry.Vector2D {
	return target.Sub(vel).Limit(maxForce * chaosSteerGain)
}
