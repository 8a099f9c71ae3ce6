package main

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

func TestRunStats_Record(t *testing.T) {
	rs := runStats{firstLevelUp: [2]int{-1, -1}, firstChaos: -1}
	rs.record(10, []simulation.Event{
		{Kind: simulation.EventLevelUp, Team: entity.Opponent},
		{Kind: simulation.EventWave, Team: entity.Opponent},
	})
	rs.record(20, []simulation.Event{
		{Kind: simulation.EventLevelUp, Team: entity.Opponent},
		{Kind: simulation.EventLevelUp, Team: entity.Player},
		{Kind: simulation.EventChaos, Team: entity.Neutral},
		{Kind: simulation.EventStorm, Team: entity.Neutral},
	})

	if rs.firstLevelUp != [2]int{20, 10} {
		t.Errorf("firstLevelUp = %v; want [20 10]", rs.firstLevelUp)
	}
	if rs.firstChaos != 20 || rs.waves != 1 || rs.storms != 1 {
		t.Errorf("chaos/waves/storms = %d/%d/%d; want 20/1/1", rs.firstChaos, rs.waves, rs.storms)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name  string
		ticks []int
		want  int
	}{
		{"empty", nil, -1},
		{"single", []int{7}, 7},
		{"odd", []int{9, 1, 5}, 5},
		{"even takes upper", []int{4, 1, 3, 2}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.ticks); got != tt.want {
				t.Errorf("median(%v) = %d; want %d", tt.ticks, got, tt.want)
			}
		})
	}
}

func TestRunMatch_Deterministic(t *testing.T) {
	cfg := simulation.DefaultConfig()
	a, err := runMatch(cfg, 1, 7, 240, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	b, err := runMatch(cfg, 1, 7, 240, 800, 600)
	if err != nil {
		t.Fatal(err)
	}
	if a.report.Summary() != b.report.Summary() {
		t.Errorf("same seed gave different matches:\n%s\n%s", a.report.Summary(), b.report.Summary())
	}
	if a.report.Tick != 240 {
		t.Errorf("Tick = %d; want 240", a.report.Tick)
	}
}
