package simulation

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
)

// EventKind classifies what happened during a tick.
type EventKind int

const (
	EventPickup EventKind = iota
	EventSteal
	EventDeposit
	EventDrop
	EventLevelUp
	EventWave
	EventReinforce
	EventStorm
	EventChaos
	EventModeChange
	EventObjective
)

var eventNames = [...]string{
	"pickup", "steal", "deposit", "drop", "level-up", "wave",
	"reinforce", "storm", "chaos", "mode", "objective",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return eventNames[k]
}

// Event is emitted by Tick for front-ends (sound cues, HUD, logs).
type Event struct {
	Kind EventKind
	Team entity.Team
	Pos  geometry.Vector2D
	// Count is the number of spawned boids for reinforce and wave events,
	// the new level for level-up events.
	Count int
	// Detail carries the new mode or objective name.
	Detail string
}

func (e Event) String() string {
	switch e.Kind {
	case EventModeChange, EventObjective:
		return fmt.Sprintf("%s %s %s", e.Team, e.Kind, e.Detail)
	case EventLevelUp, EventReinforce, EventWave:
		return fmt.Sprintf("%s %s %d", e.Team, e.Kind, e.Count)
	}
	return fmt.Sprintf("%s %s at %s", e.Team, e.Kind, e.Pos)
}

// TeamStats counts interactions of one team over a match.
type TeamStats struct {
	Pickups  int `json:"pickups"`
	Steals   int `json:"steals"`
	Deposits int `json:"deposits"`
	Drops    int `json:"drops"`
	LevelUps int `json:"levelUps"`
}

func (s *TeamStats) record(k EventKind) {
	switch k {
	case EventPickup:
		s.Pickups++
	case EventSteal:
		s.Steals++
	case EventDeposit:
		s.Deposits++
	case EventDrop:
		s.Drops++
	case EventLevelUp:
		s.LevelUps++
	}
}
