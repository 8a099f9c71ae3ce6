// Package report summarises a match snapshot for humans and tools.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

// TeamReport is one side of a Report.
type TeamReport struct {
	Team     string               `json:"team"`
	Level    int                  `json:"level"`
	Progress float64              `json:"progress"`
	Stock    int                  `json:"stock"`
	Desired  int                  `json:"desired"`
	Boids    int                  `json:"boids"`
	Carriers int                  `json:"carriers"`
	Stats    simulation.TeamStats `json:"stats"`
}

// Report is the state of a match at one tick.
type Report struct {
	Seed         uint64        `json:"seed"`
	Tick         uint64        `json:"tick"`
	Elapsed      float64       `json:"elapsed"`
	Width        float64       `json:"width"`
	Height       float64       `json:"height"`
	Teams        [2]TeamReport `json:"teams"`
	Storms       int           `json:"storms"`
	FreeDots     int           `json:"freeDots"`
	OpponentMode string        `json:"opponentMode"`
	Objective    string        `json:"objective,omitempty"`
	Leader       string        `json:"leader"`
}

// Build summarises snap.
func Build(snap *simulation.Snapshot) Report {
	boids, carriers := snap.Counts()
	r := Report{
		Seed:         snap.Seed,
		Tick:         snap.Tick,
		Elapsed:      snap.Elapsed,
		Width:        snap.Width,
		Height:       snap.Height,
		Storms:       len(snap.Storms),
		OpponentMode: snap.OpponentMode,
		Objective:    snap.Objective,
	}
	for _, d := range snap.Dots {
		if d.State == entity.Free {
			r.FreeDots++
		}
	}
	for i, b := range snap.Bases {
		r.Teams[i] = TeamReport{
			Team:     b.Team.String(),
			Level:    b.Level,
			Progress: b.Progress,
			Stock:    b.Stock,
			Desired:  b.Desired,
			Boids:    boids[i],
			Carriers: carriers[i],
			Stats:    snap.Stats[i],
		}
	}
	r.Leader = leader(r.Teams)
	return r
}

// leader ranks by level, then progress, then stock.
func leader(t [2]TeamReport) string {
	p, o := t[entity.Player], t[entity.Opponent]
	switch {
	case p.Level != o.Level:
		if p.Level > o.Level {
			return p.Team
		}
		return o.Team
	case p.Progress != o.Progress:
		if p.Progress > o.Progress {
			return p.Team
		}
		return o.Team
	case p.Stock != o.Stock:
		if p.Stock > o.Stock {
			return p.Team
		}
		return o.Team
	}
	return "draw"
}

// JSON is the indented JSON form, the one copied to the clipboard.
func (r Report) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return b, nil
}

// Summary is a key=value text form, one line per team.
func (r Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "seed=%d tick=%d elapsed=%.1fs arena=%gx%g storms=%d free_dots=%d opponent_mode=%s leader=%s\n",
		r.Seed, r.Tick, r.Elapsed, r.Width, r.Height, r.Storms, r.FreeDots, r.OpponentMode, r.Leader)
	for _, t := range r.Teams {
		fmt.Fprintf(&sb, "  %-8s level=%d progress=%.2f stock=%d/%d boids=%d carriers=%d pickups=%d steals=%d deposits=%d drops=%d level_ups=%d\n",
			t.Team, t.Level, t.Progress, t.Stock, t.Desired, t.Boids, t.Carriers,
			t.Stats.Pickups, t.Stats.Steals, t.Stats.Deposits, t.Stats.Drops, t.Stats.LevelUps)
	}
	return sb.String()
}
