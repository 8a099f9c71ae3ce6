package simulation

import (
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
)

// BoidView is the render state of one boid.
type BoidView struct {
	ID       int               `json:"id"`
	Team     entity.Team       `json:"team"`
	Pos      geometry.Vector2D `json:"pos"`
	Vel      geometry.Vector2D `json:"vel"`
	Carrying bool              `json:"carrying,omitempty"`
	Stunned  bool              `json:"stunned,omitempty"`
}

// DotView is the render state of one dot.
type DotView struct {
	Owner entity.Team       `json:"owner"`
	State entity.DotState   `json:"state"`
	Pos   geometry.Vector2D `json:"pos"`
}

// BaseView is the render state of one base.
type BaseView struct {
	Team       entity.Team       `json:"team"`
	Pos        geometry.Vector2D `json:"pos"`
	Radius     float64           `json:"radius"`
	AuraRadius float64           `json:"auraRadius"`
	Level      int               `json:"level"`
	Progress   float64           `json:"progress"`
	Stock      int               `json:"stock"`
	Desired    int               `json:"desired"`
	Flash      float64           `json:"flash"`
}

// StormView is the render state of one storm.
type StormView struct {
	Pos    geometry.Vector2D `json:"pos"`
	Radius float64           `json:"radius"`
	Phase  float64           `json:"phase"`
}

// WaypointView is the render state of one waypoint.
type WaypointView struct {
	Pos    geometry.Vector2D `json:"pos"`
	Radius float64           `json:"radius"`
	Active bool              `json:"active"`
	Visits int               `json:"visits"`
}

// Snapshot is a deep copy of everything a front-end draws. It shares no
// memory with the Match, so it may cross goroutines.
type Snapshot struct {
	Tick          uint64            `json:"tick"`
	Elapsed       float64           `json:"elapsed"`
	Seed          uint64            `json:"seed"`
	Width         float64           `json:"width"`
	Height        float64           `json:"height"`
	Paused        bool              `json:"paused"`
	Boids         []BoidView        `json:"boids"`
	Dots          []DotView         `json:"dots"`
	Bases         [2]BaseView       `json:"bases"`
	Storms        []StormView       `json:"storms"`
	Waypoints     []WaypointView    `json:"waypoints,omitempty"`
	OpponentMode  string            `json:"opponentMode"`
	Objective     string            `json:"objective,omitempty"`
	AutoPilot     bool              `json:"autoPilot"`
	Driving       bool              `json:"driving"`
	Dispersed     int               `json:"dispersed"`
	Chaos         bool              `json:"chaos"`
	ChaosCentre   geometry.Vector2D `json:"chaosCentre"`
	ChaosProgress float64           `json:"chaosProgress"`
	NextChaos     float64           `json:"nextChaos"`
	Stats         [2]TeamStats      `json:"stats"`

	// Formation holds the advisory slots of the autopilot plan while it
	// drives. No steering force points at them.
	Formation []geometry.Vector2D `json:"formation,omitempty"`
}

// Counts returns boids per team and carriers per team.
func (s *Snapshot) Counts() (boids, carriers [2]int) {
	for _, b := range s.Boids {
		if !b.Team.Valid() {
			continue
		}
		boids[b.Team]++
		if b.Carrying {
			carriers[b.Team]++
		}
	}
	return boids, carriers
}

// StockDiff is player stock minus opponent stock.
func (s *Snapshot) StockDiff() int { return s.Bases[0].Stock - s.Bases[1].Stock }

// Snapshot copies the current state.
func (m *Match) Snapshot() *Snapshot {
	w := m.world
	s := &Snapshot{
		Tick:          m.ticks,
		Elapsed:       m.elapsed,
		Seed:          m.src.Seed(),
		Width:         w.Width,
		Height:        w.Height,
		Paused:        m.paused,
		Boids:         make([]BoidView, 0, w.Boids.Len()),
		Dots:          make([]DotView, 0, w.Dots.Len()),
		Storms:        make([]StormView, 0, len(w.Storms)),
		OpponentMode:  m.opponent.Mode.String(),
		Objective:     m.planner.Objective(),
		AutoPilot:     m.autopilot,
		Driving:       m.driving,
		Dispersed:     m.dispersion.Len(),
		Chaos:         m.chaos.Active(),
		ChaosCentre:   m.chaos.Centre(),
		ChaosProgress: m.chaos.Progress(),
		NextChaos:     m.chaos.TimeToNext(),
		Stats:         m.stats,
	}
	for i := 0; i < w.Boids.Len(); i++ {
		b, _ := w.Boids.At(i)
		s.Boids = append(s.Boids, BoidView{
			ID:       b.ID,
			Team:     b.Team,
			Pos:      b.Pos,
			Vel:      b.Vel,
			Carrying: b.Carrying(),
			Stunned:  b.Stunned(),
		})
	}
	for i := 0; i < w.Dots.Len(); i++ {
		d, _ := w.Dots.At(i)
		s.Dots = append(s.Dots, DotView{Owner: d.Owner, State: d.State, Pos: d.Pos})
	}
	for i, b := range w.Bases {
		s.Bases[i] = BaseView{
			Team:       b.Team,
			Pos:        b.Pos,
			Radius:     b.Radius,
			AuraRadius: b.AuraRadius(),
			Level:      b.Level,
			Progress:   b.Progress,
			Stock:      len(b.Stock),
			Desired:    b.Desired,
			Flash:      b.Flash,
		}
	}
	for _, st := range w.Storms {
		s.Storms = append(s.Storms, StormView{Pos: st.Pos, Radius: st.Radius, Phase: st.Phase})
	}
	for _, wp := range m.waypoints.All() {
		s.Waypoints = append(s.Waypoints, WaypointView{Pos: wp.Pos, Radius: wp.Radius, Active: wp.Active, Visits: wp.Visits()})
	}
	if p := m.planner.Pattern(); m.driving && p != nil {
		for i := 0; i < p.Len(); i++ {
			s.Formation = append(s.Formation, p.Slot(i))
		}
	}
	return s
}
