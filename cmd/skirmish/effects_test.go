package main

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

func TestEffects_Expire(t *testing.T) {
	var fx Effects
	p := geometry.NewVector(10, 10)
	fx.Tap(p)
	fx.Pulse(p)
	if fx.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", fx.Len())
	}

	fx.Update(0.5) // tap lives 0.45s, pulse 0.7s
	if fx.Len() != 1 {
		t.Errorf("after 0.5s Len() = %d; want 1", fx.Len())
	}
	fx.Update(0.5)
	if fx.Len() != 0 {
		t.Errorf("after 1s Len() = %d; want 0", fx.Len())
	}
}

func TestEffect_GrowsAndFades(t *testing.T) {
	e := effect{from: 0, to: 100, lifetime: 1, alphaPeak: 1}
	e.elapsed = 0.25
	if r := e.radius(); r != 25 {
		t.Errorf("radius() = %v; want 25", r)
	}
	if a := e.alpha(); a != 0.75 {
		t.Errorf("alpha() = %v; want 0.75", a)
	}
}

func TestEffects_HoldThrottles(t *testing.T) {
	var fx Effects
	p := geometry.NewVector(0, 0)
	for i := 0; i < 13; i++ { // just over 0.2s at 60 fps
		fx.Hold(p, 1.0/60)
	}
	if fx.Len() != 1 {
		t.Errorf("Len() = %d; want a single ripple per 0.2s", fx.Len())
	}
}

func TestEffects_FromEvents(t *testing.T) {
	var fx Effects
	fx.FromEvents([]simulation.Event{
		{Kind: simulation.EventPickup, Team: entity.Player},
		{Kind: simulation.EventLevelUp, Team: entity.Player},
		{Kind: simulation.EventChaos, Team: entity.Neutral},
	})
	// each explosion is two rings, pickups make none
	if fx.Len() != 4 {
		t.Errorf("Len() = %d; want 4", fx.Len())
	}
}

func TestToasts(t *testing.T) {
	var ts Toasts
	ts.FromEvents([]simulation.Event{
		{Kind: simulation.EventLevelUp, Team: entity.Opponent},
		{Kind: simulation.EventDeposit, Team: entity.Player},
		{Kind: simulation.EventChaos},
	})
	lines := ts.Lines()
	if len(lines) != 2 || lines[0] != "Opponent leveled up" || lines[1] != "CHAOS!" {
		t.Fatalf("Lines() = %q", lines)
	}
	ts.Update(1.6)
	if lines := ts.Lines(); len(lines) != 1 {
		t.Errorf("after 1.6s Lines() = %q; want only the level-up", lines)
	}
	for i := 0; i < 6; i++ {
		ts.Push("x", 1)
	}
	if n := len(ts.Lines()); n != 4 {
		t.Errorf("toast queue holds %d; want 4", n)
	}
}

func TestAdvantage(t *testing.T) {
	tests := []struct {
		diff int
		want float64
	}{
		{0, 0},
		{7, 0.5},
		{-14, -1},
		{40, 1},
	}
	for _, tt := range tests {
		if got := advantage(tt.diff); got != tt.want {
			t.Errorf("advantage(%d) = %v; want %v", tt.diff, got, tt.want)
		}
	}
}
