package ai

import (
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
)

// PointType tags the intent of a StrategyPoint.
type PointType int

const (
	Gather PointType = iota
	Patrol
	Guard
	Attack
	InterceptPoint
)

func (t PointType) String() string {
	switch t {
	case Gather:
		return "gather"
	case Patrol:
		return "patrol"
	case Guard:
		return "defend"
	case Attack:
		return "attack"
	case InterceptPoint:
		return "intercept"
	}
	return "unknown"
}

// StrategyPoint is a weighted place of interest emitted by the planner.
type StrategyPoint struct {
	Pos      geometry.Vector2D
	Type     PointType
	Priority float64
	Radius   float64
	// Duration is the lifespan in seconds; zero lives until replaced.
	Duration float64
	Elapsed  float64
	Active   bool
}

// NewStrategyPoint returns an active point without a lifespan.
func NewStrategyPoint(pos geometry.Vector2D, t PointType, priority, radius float64) StrategyPoint {
	return StrategyPoint{Pos: pos, Type: t, Priority: priority, Radius: radius, Active: true}
}

// Update ages the point and deactivates it once its lifespan is over.
func (p *StrategyPoint) Update(dt float64) {
	if p.Duration <= 0 {
		return
	}
	p.Elapsed += dt
	if p.Elapsed >= p.Duration {
		p.Active = false
	}
}

// Influence decays linearly from Priority at the point to zero at twice its radius.
func (p *StrategyPoint) Influence(pos geometry.Vector2D) float64 {
	d := p.Pos.DistanceTo(pos)
	reach := p.Radius * 2
	if d > reach || reach <= 0 {
		return 0
	}
	return max(0, 1-d/reach) * p.Priority
}

// InRange reports whether pos lies within the point radius.
func (p *StrategyPoint) InRange(pos geometry.Vector2D) bool {
	return p.Pos.DistanceTo(pos) <= p.Radius
}

const (
	// ManagerCapacity is the number of points a StrategyManager keeps.
	ManagerCapacity = 5
	preferredBonus  = 1.5
)

// StrategyManager is a bounded FIFO of strategy points.
type StrategyManager struct {
	points []StrategyPoint
}

// Add appends p, evicting the oldest point when over capacity.
func (m *StrategyManager) Add(p StrategyPoint) {
	m.points = append(m.points, p)
	if len(m.points) > ManagerCapacity {
		m.points = append(m.points[:0], m.points[1:]...)
	}
}

// Update ages every point and drops the inactive ones.
func (m *StrategyManager) Update(dt float64) {
	kept := m.points[:0]
	for i := range m.points {
		m.points[i].Update(dt)
		if m.points[i].Active {
			kept = append(kept, m.points[i])
		}
	}
	m.points = kept
}

// Points returns the active points, oldest first.
func (m *StrategyManager) Points() []StrategyPoint { return m.points }

// Len returns the number of points held.
func (m *StrategyManager) Len() int { return len(m.points) }

// Clear drops every point.
func (m *StrategyManager) Clear() { m.points = m.points[:0] }

// Best returns the point with the highest influence at pos. Points of the
// preferred type get a 1.5x bonus. ok is false when nothing scores above zero.
func (m *StrategyManager) Best(pos geometry.Vector2D, preferred PointType, usePreferred bool) (StrategyPoint, bool) {
	var best StrategyPoint
	bestScore := 0.0
	found := false
	for i := range m.points {
		p := &m.points[i]
		if !p.Active {
			continue
		}
		score := p.Influence(pos)
		if usePreferred && p.Type == preferred {
			score *= preferredBonus
		}
		if score > bestScore {
			best, bestScore, found = *p, score, true
		}
	}
	return best, found
}
