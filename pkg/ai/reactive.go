// Package ai holds the two decision layers of a match: the reactive mode
// switch driving the opponent, and the strategic planner that can drive the
// player team when nobody is at the controls.
package ai

import (
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

const (
	// ReactiveInterval is the base time between mode decisions.
	ReactiveInterval = 2.5
	// ReactiveJitter is the maximum extra random delay added to ReactiveInterval.
	ReactiveJitter = 2.0
	threatRadius   = 1.4
	pushThreshold  = 0.55
)

// Input is what the reactive controller knows about the human player.
type Input struct {
	Active bool
	X      float64
}

// Reactive picks a Mode for its team on a jittered countdown and maps it to
// a target point. The zero timer means the first Update decides immediately.
type Reactive struct {
	Team   entity.Team
	Mode   Mode
	Target geometry.Vector2D

	rules []*Rule
	timer float64
	src   *rng.Source
}

// NewReactive builds a controller for team using rules, or DefaultRules when
// specs is empty.
func NewReactive(team entity.Team, w *entity.World, src *rng.Source, specs []RuleSpec) (*Reactive, error) {
	if len(specs) == 0 {
		specs = DefaultRules()
	}
	rules, err := CompileRules(specs)
	if err != nil {
		return nil, err
	}
	r := &Reactive{Team: team, Mode: Raid, rules: rules, src: src}
	if home := w.Base(team); home != nil {
		dir := 1.0
		if team == entity.Player {
			dir = -1
		}
		r.Target = geometry.NewVector(home.Pos.X-dir*home.Radius*0.8, home.Pos.Y)
	}
	return r, nil
}

// Rules returns the compiled rules in registration order.
func (r *Reactive) Rules() []*Rule { return r.rules }

// Timer returns the seconds left before the next decision.
func (r *Reactive) Timer() float64 { return r.timer }

// Env builds the rule environment from the current world.
func (r *Reactive) Env(w *entity.World, in Input) RuleEnv {
	home, enemy := w.Base(r.Team), w.Base(r.Team.Other())
	pushing := in.X > w.Width*pushThreshold
	if r.Team == entity.Player {
		pushing = in.X < w.Width*(1-pushThreshold)
	}
	return RuleEnv{
		HomeThreatened: w.CarriersNear(r.Team.Other(), home.Pos, home.Radius*threatRadius) > 0,
		PlayerPushing:  in.Active && pushing,
		RaidUnderway:   w.CarriersNear(r.Team, enemy.Pos, enemy.Radius*threatRadius) > 0,
		OwnStock:       len(home.Stock),
		EnemyStock:     len(enemy.Stock),
		src:            r.src,
	}
}

// Update counts the timer down by dtS and, when it expires, re-evaluates the
// rules and retargets. It reports whether a decision was taken.
func (r *Reactive) Update(dtS float64, w *entity.World, in Input) bool {
	r.timer -= dtS
	if r.timer > 0 {
		return false
	}
	r.timer = ReactiveInterval + r.src.Float64()*ReactiveJitter

	if rule, ok := Select(r.rules, r.Env(w, in)); ok {
		r.Mode = rule.Mode
	}
	r.Target = r.targetFor(r.Mode, w)
	return true
}

func (r *Reactive) targetFor(m Mode, w *entity.World) geometry.Vector2D {
	home, enemy := w.Base(r.Team), w.Base(r.Team.Other())
	// inward is the x direction from our base toward the middle of the field
	inward := 1.0
	if r.Team == entity.Opponent {
		inward = -1
	}

	switch m {
	case Defend:
		return geometry.NewVector(
			home.Pos.X+inward*home.Radius*0.2+r.src.Jitter(home.Radius*0.3),
			home.Pos.Y+r.src.Jitter(home.Radius*0.3),
		)
	case Intercept:
		return geometry.NewVector(
			w.Width*0.5+r.src.Jitter(w.Width*0.1),
			w.Height*0.5+r.src.Jitter(w.Height*0.2),
		)
	default:
		return geometry.NewVector(
			enemy.Pos.X-inward*enemy.Radius*0.1+r.src.Jitter(enemy.Radius*0.3),
			enemy.Pos.Y+r.src.Jitter(enemy.Radius*0.3),
		)
	}
}
