package ai

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
)

func TestStrategyPoint_Influence(t *testing.T) {
	p := NewStrategyPoint(geometry.NewVector(0, 0), Gather, 2, 50)
	tests := []struct {
		at   geometry.Vector2D
		want float64
	}{
		{geometry.NewVector(0, 0), 2},
		{geometry.NewVector(50, 0), 1},
		{geometry.NewVector(100, 0), 0},
		{geometry.NewVector(150, 0), 0},
	}
	for _, tt := range tests {
		if got := p.Influence(tt.at); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Influence(%v) = %v; want %v", tt.at, got, tt.want)
		}
	}
	if !p.InRange(geometry.NewVector(50, 0)) || p.InRange(geometry.NewVector(51, 0)) {
		t.Error("InRange boundary mismatch")
	}
}

func TestStrategyPoint_Lifespan(t *testing.T) {
	p := NewStrategyPoint(geometry.Vector2D{}, Patrol, 1, 10)
	p.Update(100)
	if !p.Active {
		t.Error("a point without duration never expires")
	}
	p.Duration = 1
	p.Update(0.5)
	if !p.Active {
		t.Error("expired too early")
	}
	p.Update(0.5)
	if p.Active {
		t.Error("should expire once elapsed reaches duration")
	}
}

func TestStrategyManager_EvictsOldest(t *testing.T) {
	var m StrategyManager
	for i := 0; i < 7; i++ {
		m.Add(NewStrategyPoint(geometry.NewVector(float64(i), 0), Patrol, 1, 10))
	}
	if m.Len() != ManagerCapacity {
		t.Fatalf("Len = %d; want %d", m.Len(), ManagerCapacity)
	}
	if first := m.Points()[0].Pos.X; first != 2 {
		t.Errorf("oldest kept point x = %v; want 2", first)
	}
}

func TestStrategyManager_UpdateDropsInactive(t *testing.T) {
	var m StrategyManager
	short := NewStrategyPoint(geometry.NewVector(1, 0), Patrol, 1, 10)
	short.Duration = 1
	m.Add(short)
	m.Add(NewStrategyPoint(geometry.NewVector(2, 0), Patrol, 1, 10))

	m.Update(2)
	if m.Len() != 1 || m.Points()[0].Pos.X != 2 {
		t.Errorf("points after update = %+v", m.Points())
	}
}

func TestStrategyManager_BestPrefersType(t *testing.T) {
	var m StrategyManager
	m.Add(NewStrategyPoint(geometry.NewVector(0, 0), Patrol, 1.2, 50))
	m.Add(NewStrategyPoint(geometry.NewVector(0, 0), Gather, 1, 50))

	best, ok := m.Best(geometry.Vector2D{}, Gather, false)
	if !ok || best.Type != Patrol {
		t.Errorf("without preference got %v; want patrol", best.Type)
	}
	best, _ = m.Best(geometry.Vector2D{}, Gather, true)
	if best.Type != Gather {
		t.Errorf("with gather preference got %v; want gather", best.Type)
	}
	if _, ok := m.Best(geometry.NewVector(1000, 0), Gather, true); ok {
		t.Error("no point should score that far away")
	}
}
