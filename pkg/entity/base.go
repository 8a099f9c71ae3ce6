package entity

import (
	"math"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/arena"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
)

const (
	baseRadiusRatio = 0.11
	playerBaseX     = 0.18
	opponentBaseX   = 0.82
	// InitialDesired is the starting stock target of a base.
	InitialDesired = 14
	levelUpBonus   = 3
)

// Base is a team's home. Its stock is the ordered list of dots orbiting it.
type Base struct {
	Team     Team
	Pos      geometry.Vector2D
	Radius   float64
	Aura     float64
	Level    int
	Progress float64
	Stock    []arena.Handle[Dot]
	Desired  int
	Flash    float64
}

// NewBase places the base for team in a width×height arena.
func NewBase(team Team, width, height float64) *Base {
	b := &Base{
		Team:    team,
		Aura:    1,
		Level:   1,
		Desired: InitialDesired,
	}
	b.Resize(width, height)
	return b
}

// Resize recomputes radius and position for new arena dimensions.
func (b *Base) Resize(width, height float64) {
	b.Radius = math.Min(width, height) * baseRadiusRatio
	x := playerBaseX
	if b.Team == Opponent {
		x = opponentBaseX
	}
	b.Pos = geometry.NewVector(width*x, height*0.5)
}

// LevelUp raises the level and its derived values.
func (b *Base) LevelUp() {
	b.Level++
	b.Aura = 1 + float64(b.Level)*0.22
	b.Desired += levelUpBonus
	b.Flash = 0.6
}

// AddProgress adds amount and reports whether the level threshold was crossed.
// At most one unit is subtracted per call.
func (b *Base) AddProgress(amount float64) bool {
	b.Progress += amount
	if b.Progress >= 1 {
		b.Progress--
		return true
	}
	return false
}

// Deposit adds h to the stock and advances progress. It reports whether the
// base levelled up as a result.
func (b *Base) Deposit(h arena.Handle[Dot]) bool {
	b.Stock = append(b.Stock, h)
	b.Flash = math.Min(0.45, b.Flash+0.35)

	gain := 1 / math.Max(6, float64(8-min(5, b.Level)))
	if b.AddProgress(gain) {
		b.LevelUp()
		return true
	}
	return false
}

// Steal pops the most recently added stock entry.
func (b *Base) Steal() (arena.Handle[Dot], bool) {
	n := len(b.Stock)
	if n == 0 {
		return arena.Handle[Dot]{}, false
	}
	h := b.Stock[n-1]
	b.Stock = b.Stock[:n-1]
	return h, true
}

// UpdateFlash decays the visual flash.
func (b *Base) UpdateFlash(dtS float64) {
	b.Flash = math.Max(0, b.Flash-dtS*0.9)
}

// AuraRadius is the radius inside which enemy boids are repelled.
func (b *Base) AuraRadius() float64 {
	return b.Radius * (1 + 0.2*b.Aura)
}
