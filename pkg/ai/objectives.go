package ai

import (
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/formation"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

// ThreatKind classifies a Threat.
type ThreatKind int

const (
	EnemyThreat ThreatKind = iota
	BaseThreat
	StormThreat
)

// Threat is a scored danger source.
type Threat struct {
	Pos    geometry.Vector2D
	Danger float64
	Kind   ThreatKind
}

const (
	clusterRadius    = 50.0
	safeDanger       = 0.3
	predictHorizon   = 2.0
	predictMargin    = 50.0
	framesPerSecond  = 60.0
	stormSafeFactor  = 1.5
	underAttackRange = 2.5
	defendersRange   = 3.0
)

// Situation is the planner's view of the world at decision time. Boid and
// dot pointers are only valid until the world arenas grow.
type Situation struct {
	World          *entity.World
	Team           entity.Team
	Home           *entity.Base
	EnemyBase      *entity.Base
	Own            []*entity.Boid
	Enemy          []*entity.Boid
	FreeDots       []*entity.Dot
	Threats        []Threat
	StockAdvantage int
	BoidAdvantage  int
	Src            *rng.Source
}

// NewSituation gathers everything the objectives need for team.
func NewSituation(w *entity.World, team entity.Team, src *rng.Source) *Situation {
	s := &Situation{
		World:     w,
		Team:      team,
		Home:      w.Base(team),
		EnemyBase: w.Base(team.Other()),
		Src:       src,
	}
	for i := 0; i < w.Boids.Len(); i++ {
		b, _ := w.Boids.At(i)
		if b.Team == team {
			s.Own = append(s.Own, b)
		} else {
			s.Enemy = append(s.Enemy, b)
		}
	}
	for i := 0; i < w.Dots.Len(); i++ {
		if d, _ := w.Dots.At(i); d.State == entity.Free {
			s.FreeDots = append(s.FreeDots, d)
		}
	}
	s.StockAdvantage = len(s.Home.Stock) - len(s.EnemyBase.Stock)
	s.BoidAdvantage = len(s.Own) - len(s.Enemy)
	s.Threats = s.assessThreats()
	return s
}

func (s *Situation) assessThreats() []Threat {
	threats := make([]Threat, 0, len(s.Enemy)+1+len(s.World.Storms))
	r2 := clusterRadius * clusterRadius
	for _, e := range s.Enemy {
		group := 0
		for _, o := range s.Enemy {
			if e.Pos.DistanceSquaredTo(o.Pos) < r2 {
				group++
			}
		}
		threats = append(threats, Threat{Pos: e.Pos, Danger: float64(group) / 10, Kind: EnemyThreat})
	}
	threats = append(threats, Threat{
		Pos:    s.EnemyBase.Pos,
		Danger: 0.7 + float64(s.EnemyBase.Level)*0.1,
		Kind:   BaseThreat,
	})
	for _, st := range s.World.Storms {
		threats = append(threats, Threat{Pos: st.Pos, Danger: 0.5, Kind: StormThreat})
	}
	return threats
}

// NearestThreat returns the closest threat to pos.
func (s *Situation) NearestThreat(pos geometry.Vector2D) (Threat, bool) {
	var best Threat
	bestD := math.Inf(1)
	for _, t := range s.Threats {
		if d := t.Pos.DistanceSquaredTo(pos); d < bestD {
			best, bestD = t, d
		}
	}
	return best, !math.IsInf(bestD, 1)
}

func countNear(boids []*entity.Boid, p geometry.Vector2D, radius float64) int {
	r2 := radius * radius
	n := 0
	for _, b := range boids {
		if b.Pos.DistanceSquaredTo(p) < r2 {
			n++
		}
	}
	return n
}

// Objective is one strategic intent the planner can adopt. Evaluate returns
// a score; the highest positive score wins and earlier registration breaks
// ties. Plan fills the manager and returns the formation to assign, or nil.
type Objective interface {
	Name() string
	Preferred() PointType
	Evaluate(s *Situation) float64
	Plan(s *Situation, m *StrategyManager) *formation.Pattern
}

// DefaultObjectives returns defend, raid, collect and intercept.
func DefaultObjectives() []Objective {
	return []Objective{DefendObjective{}, RaidObjective{}, CollectObjective{}, InterceptObjective{}}
}

// DefendObjective holds the home base when stock is bleeding or the base is swarmed.
type DefendObjective struct{}

func (DefendObjective) Name() string         { return "defend" }
func (DefendObjective) Preferred() PointType { return Guard }

func (DefendObjective) Evaluate(s *Situation) float64 {
	attacked := countNear(s.Enemy, s.Home.Pos, s.Home.Radius*underAttackRange) > 5
	if s.StockAdvantage < -5 || attacked {
		return 4
	}
	return 0
}

func (DefendObjective) Plan(s *Situation, m *StrategyManager) *formation.Pattern {
	base := s.Home
	m.Add(NewStrategyPoint(base.Pos, Guard, 3, base.Radius*2))
	for i := 0; i < 4; i++ {
		angle := float64(i) / 4 * math.Pi * 2
		pos := base.Pos.Add(geometry.NewVectorPolar(base.Radius*2.5, angle))
		m.Add(NewStrategyPoint(pos, Patrol, 2, 50))
	}
	return formation.New(formation.Circle, base.Pos)
}

// RaidObjective hits the enemy base when ahead on both stock and numbers.
type RaidObjective struct{}

func (RaidObjective) Name() string         { return "raid" }
func (RaidObjective) Preferred() PointType { return Attack }

func (RaidObjective) Evaluate(s *Situation) float64 {
	if s.StockAdvantage > 8 && s.BoidAdvantage > 10 {
		return 3
	}
	return 0
}

func (RaidObjective) Plan(s *Situation, m *StrategyManager) *formation.Pattern {
	base := s.EnemyBase
	if countNear(s.Enemy, base.Pos, base.Radius*defendersRange) < 5 {
		m.Add(NewStrategyPoint(base.Pos, Attack, 3, base.Radius))
		return formation.New(formation.Pincer, base.Pos)
	}
	feint := base.Pos.Add(geometry.NewVectorPolar(base.Radius*3, s.Src.Angle()))
	m.Add(NewStrategyPoint(feint, Attack, 2, 100))
	return formation.New(formation.Split, base.Pos)
}

// CollectObjective gathers loose dots, preferring the ones away from danger.
type CollectObjective struct{}

func (CollectObjective) Name() string         { return "collect" }
func (CollectObjective) Preferred() PointType { return Gather }

func (CollectObjective) Evaluate(s *Situation) float64 {
	if len(s.FreeDots) > 2 {
		return 2
	}
	return 0
}

func (CollectObjective) Plan(s *Situation, m *StrategyManager) *formation.Pattern {
	var safe []*entity.Dot
	for _, d := range s.FreeDots {
		if t, ok := s.NearestThreat(d.Pos); !ok || t.Danger < safeDanger {
			safe = append(safe, d)
		}
	}
	targets := safe
	if len(targets) == 0 {
		targets = s.FreeDots
	}
	for i := 0; i < min(3, len(targets)); i++ {
		m.Add(NewStrategyPoint(targets[i].Pos, Gather, 2-float64(i)*0.5, 40))
	}
	if len(targets) == 0 {
		return nil
	}
	return formation.New(formation.VFormation, targets[0].Pos)
}

// InterceptObjective cuts off enemy carriers, or patrols the centre when there are none.
type InterceptObjective struct{}

func (InterceptObjective) Name() string         { return "intercept" }
func (InterceptObjective) Preferred() PointType { return InterceptPoint }

// Evaluate always applies so the planner has a fallback.
func (InterceptObjective) Evaluate(*Situation) float64 { return 1 }

func (InterceptObjective) Plan(s *Situation, m *StrategyManager) *formation.Pattern {
	var carriers []*entity.Boid
	for _, b := range s.Enemy {
		if b.Carrying() {
			carriers = append(carriers, b)
		}
	}
	if len(carriers) == 0 {
		centre := s.World.Centre()
		m.Add(NewStrategyPoint(centre, Patrol, 1, 100))
		return formation.New(formation.Swarm, centre)
	}
	for i := 0; i < min(2, len(carriers)); i++ {
		m.Add(NewStrategyPoint(PredictIntercept(carriers[i], s.World.Width, s.World.Height), InterceptPoint, 3-float64(i), 60))
	}
	return formation.New(formation.Diamond, carriers[0].Pos)
}

// PredictIntercept extrapolates b two seconds ahead at 60 ticks/s and keeps
// the result 50 px inside the arena.
func PredictIntercept(b *entity.Boid, width, height float64) geometry.Vector2D {
	future := b.Pos.Add(b.Vel.Mul(predictHorizon * framesPerSecond))
	return future.Clamp(predictMargin, predictMargin, width-predictMargin, height-predictMargin)
}
