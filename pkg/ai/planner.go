package ai

import (
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/formation"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

// PlannerInterval is the time between two strategic decisions.
const PlannerInterval = 2.0

const (
	formationShare = 0.6
	carrierShare   = 0.3
)

// Planner is the strategic controller. It replans on its own timer and, every
// tick, returns the target the team should steer toward.
type Planner struct {
	Team     entity.Team
	Interval float64

	objectives []Objective
	current    Objective
	manager    StrategyManager
	pattern    *formation.Pattern
	elapsed    float64
	src        *rng.Source
}

// NewPlanner builds a planner for team. Without objectives it uses DefaultObjectives.
func NewPlanner(team entity.Team, src *rng.Source, objectives ...Objective) *Planner {
	if len(objectives) == 0 {
		objectives = DefaultObjectives()
	}
	return &Planner{
		Team:       team,
		Interval:   PlannerInterval,
		objectives: objectives,
		src:        src,
	}
}

// Objective names the current objective, or "" before the first decision.
func (p *Planner) Objective() string {
	if p.current == nil {
		return ""
	}
	return p.current.Name()
}

// Pattern returns the formation assigned at the last decision, or nil.
func (p *Planner) Pattern() *formation.Pattern { return p.pattern }

// Points returns the current strategy points.
func (p *Planner) Points() []StrategyPoint { return p.manager.Points() }

// Reset forgets the plan and restarts the decision timer.
func (p *Planner) Reset() {
	p.manager.Clear()
	p.current = nil
	p.pattern = nil
	p.elapsed = 0
}

// Update advances the decision timer by dt seconds, replanning when it
// expires, and returns the team target. replanned reports a new decision.
func (p *Planner) Update(dt float64, w *entity.World) (target geometry.Vector2D, replanned bool) {
	p.elapsed += dt
	var s *Situation
	if p.elapsed >= p.Interval {
		p.elapsed = 0
		s = NewSituation(w, p.Team, p.src)
		p.Decide(s)
		replanned = true
	}

	p.manager.Update(dt)

	centre := swarmCentre(w, p.Team)
	if p.current != nil {
		if best, ok := p.manager.Best(centre, p.current.Preferred(), true); ok {
			return best.Pos, replanned
		}
	}
	if s == nil {
		s = NewSituation(w, p.Team, p.src)
	}
	return p.Fallback(s, centre), replanned
}

// Decide selects the best objective for s and rebuilds the plan.
func (p *Planner) Decide(s *Situation) {
	p.manager.Clear()

	var best Objective
	bestScore := 0.0
	for _, o := range p.objectives {
		if score := o.Evaluate(s); score > bestScore {
			best, bestScore = o, score
		}
	}
	p.current = best
	p.pattern = nil
	if best == nil {
		return
	}
	p.pattern = best.Plan(s, &p.manager)
	p.assignFormation(s)
}

func (p *Planner) assignFormation(s *Situation) {
	if p.pattern == nil {
		return
	}
	available := make([]formation.Candidate, 0, len(s.Own))
	for _, b := range s.Own {
		if b.Stun == 0 {
			available = append(available, formation.Candidate{ID: b.ID, Stun: b.Stun, Carrying: b.Carrying()})
		}
	}
	size := min(int(math.Floor(float64(len(available))*formationShare)), formation.DefaultCapacity)
	p.pattern.Assign(available, size)
}

// Fallback is the deterministic target used when no strategy point applies.
func (p *Planner) Fallback(s *Situation, centre geometry.Vector2D) geometry.Vector2D {
	carriers := 0
	for _, b := range s.Own {
		if b.Carrying() {
			carriers++
		}
	}
	if float64(carriers) > float64(len(s.Own))*carrierShare {
		return s.Home.Pos
	}

	if d, ok := nearestSafeDot(centre, s.FreeDots, s.World.Storms); ok {
		return d.Pos
	}

	if len(s.Own) > len(s.Enemy) {
		for _, b := range s.Enemy {
			if b.Carrying() {
				return b.Pos
			}
		}
	}

	if len(s.EnemyBase.Stock) > 5 && len(s.Own) > 20 {
		return s.EnemyBase.Pos
	}
	return s.World.Centre()
}

func nearestSafeDot(from geometry.Vector2D, dots []*entity.Dot, storms []*entity.Storm) (*entity.Dot, bool) {
	var best *entity.Dot
	bestD := math.Inf(1)
	for _, d := range dots {
		safe := true
		for _, st := range storms {
			if d.Pos.DistanceTo(st.Pos) < st.Radius*stormSafeFactor {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}
		if dist := from.DistanceSquaredTo(d.Pos); dist < bestD {
			best, bestD = d, dist
		}
	}
	return best, best != nil
}

func swarmCentre(w *entity.World, team entity.Team) geometry.Vector2D {
	var sum geometry.Vector2D
	n := 0
	for i := 0; i < w.Boids.Len(); i++ {
		if b, _ := w.Boids.At(i); b.Team == team {
			sum = sum.Add(b.Pos)
			n++
		}
	}
	if n == 0 {
		return geometry.Vector2D{}
	}
	return sum.Div(float64(n))
}
