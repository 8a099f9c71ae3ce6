package ai

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/arena"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/formation"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

func populate(w *entity.World, team entity.Team, n int, at geometry.Vector2D) {
	for i := 0; i < n; i++ {
		w.Boids.Insert(entity.Boid{Team: team, ID: w.Boids.Len(), Pos: at.Add(geometry.NewVector(float64(i%10)*7, float64(i/10)*7))})
	}
}

func fillStock(w *entity.World, team entity.Team, n int) {
	src := rng.New(99)
	base := w.Bases[team]
	for i := 0; i < n; i++ {
		base.Stock = append(base.Stock, w.Dots.Insert(entity.NewOrbitingDot(base, src)))
	}
}

func addFreeDots(w *entity.World, at ...geometry.Vector2D) {
	for _, p := range at {
		w.Dots.Insert(entity.Dot{Owner: entity.Neutral, State: entity.Free, Pos: p})
	}
}

func TestPlanner_ObjectiveSelection(t *testing.T) {
	tests := []struct {
		name  string
		setup func(w *entity.World)
		want  string
		shape formation.Type
	}{
		{
			name: "stock deficit defends",
			setup: func(w *entity.World) {
				populate(w, entity.Player, 10, geometry.NewVector(400, 300))
				fillStock(w, entity.Opponent, 6)
			},
			want:  "defend",
			shape: formation.Circle,
		},
		{
			name: "swarmed base defends",
			setup: func(w *entity.World) {
				populate(w, entity.Player, 10, geometry.NewVector(400, 300))
				populate(w, entity.Opponent, 6, w.Bases[entity.Player].Pos)
			},
			want:  "defend",
			shape: formation.Circle,
		},
		{
			name: "strong lead raids",
			setup: func(w *entity.World) {
				populate(w, entity.Player, 30, geometry.NewVector(400, 300))
				populate(w, entity.Opponent, 5, geometry.NewVector(500, 500))
				fillStock(w, entity.Player, 9)
			},
			want:  "raid",
			shape: formation.Pincer,
		},
		{
			name: "loose dots are collected",
			setup: func(w *entity.World) {
				populate(w, entity.Player, 10, geometry.NewVector(400, 300))
				addFreeDots(w, geometry.NewVector(100, 100), geometry.NewVector(120, 500), geometry.NewVector(500, 80))
			},
			want:  "collect",
			shape: formation.VFormation,
		},
		{
			name: "nothing else intercepts",
			setup: func(w *entity.World) {
				populate(w, entity.Player, 10, geometry.NewVector(400, 300))
			},
			want:  "intercept",
			shape: formation.Swarm,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := entity.NewWorld(testW, testH)
			tt.setup(w)
			p := NewPlanner(entity.Player, rng.New(1))
			p.Decide(NewSituation(w, entity.Player, rng.New(1)))

			if got := p.Objective(); got != tt.want {
				t.Fatalf("objective = %q; want %q", got, tt.want)
			}
			if p.Pattern() == nil || p.Pattern().Type != tt.shape {
				t.Errorf("pattern = %v; want %v", p.Pattern(), tt.shape)
			}
			if n := len(p.Points()); n == 0 || n > ManagerCapacity {
				t.Errorf("points = %d; want 1..%d", n, ManagerCapacity)
			}
		})
	}
}

func TestPlanner_DefendPlanShape(t *testing.T) {
	w := entity.NewWorld(testW, testH)
	populate(w, entity.Player, 10, geometry.NewVector(400, 300))
	fillStock(w, entity.Opponent, 10)

	p := NewPlanner(entity.Player, rng.New(1))
	p.Decide(NewSituation(w, entity.Player, rng.New(1)))

	pts := p.Points()
	if len(pts) != 5 {
		t.Fatalf("defend points = %d; want 5", len(pts))
	}
	base := w.Bases[entity.Player]
	if pts[0].Type != Guard || pts[0].Priority != 3 || pts[0].Radius != base.Radius*2 {
		t.Errorf("guard point = %+v", pts[0])
	}
	for _, sp := range pts[1:] {
		if sp.Type != Patrol || sp.Radius != 50 {
			t.Errorf("patrol point = %+v", sp)
		}
	}
	// 10 available boids → 6 formation members
	if got := p.Pattern().Len(); got != 6 {
		t.Errorf("formation size = %d; want 6", got)
	}
}

func TestPlanner_InterceptPredictsCarriers(t *testing.T) {
	w := entity.NewWorld(testW, testH)
	populate(w, entity.Player, 10, geometry.NewVector(400, 300))
	dots := arena.New[entity.Dot](1)
	w.Boids.Insert(entity.Boid{
		Team:  entity.Opponent,
		Pos:   geometry.NewVector(500, 300),
		Vel:   geometry.NewVector(1, 0),
		Carry: dots.Insert(entity.Dot{}),
	})

	p := NewPlanner(entity.Player, rng.New(1))
	p.Decide(NewSituation(w, entity.Player, rng.New(1)))
	if p.Objective() != "intercept" || p.Pattern().Type != formation.Diamond {
		t.Fatalf("objective = %s pattern = %v", p.Objective(), p.Pattern().Type)
	}
	pt := p.Points()[0]
	if want := geometry.NewVector(620, 300); !pt.Pos.Eq(want) || pt.Type != InterceptPoint {
		t.Errorf("intercept point = %+v; want at %v", pt, want)
	}

	fast := entity.Boid{Pos: geometry.NewVector(900, 300), Vel: geometry.NewVector(5, 5)}
	if got := PredictIntercept(&fast, testW, testH); !got.Eq(geometry.NewVector(testW-50, testH-50)) {
		t.Errorf("PredictIntercept clamp = %v", got)
	}
}

func TestPlanner_UpdateTimerAndFallback(t *testing.T) {
	w := entity.NewWorld(testW, testH)
	populate(w, entity.Player, 10, geometry.NewVector(400, 300))

	p := NewPlanner(entity.Player, rng.New(1))
	target, replanned := p.Update(0.5, w)
	if replanned {
		t.Fatal("should not replan before the interval")
	}
	if !target.Eq(w.Centre()) {
		t.Errorf("fallback target = %v; want centre %v", target, w.Centre())
	}

	_, replanned = p.Update(PlannerInterval, w)
	if !replanned || p.Objective() != "intercept" {
		t.Errorf("replanned = %v objective = %q", replanned, p.Objective())
	}

	p.Reset()
	if p.Objective() != "" || len(p.Points()) != 0 {
		t.Error("Reset should forget the plan")
	}
}

func TestPlanner_FallbackOrder(t *testing.T) {
	w := entity.NewWorld(testW, testH)
	populate(w, entity.Player, 10, geometry.NewVector(400, 300))
	p := NewPlanner(entity.Player, rng.New(1))

	// storm-covered dot is ignored, the other one is chosen
	w.Storms = append(w.Storms, &entity.Storm{Pos: geometry.NewVector(420, 310), Radius: 40})
	addFreeDots(w, geometry.NewVector(430, 310), geometry.NewVector(700, 100))
	s := NewSituation(w, entity.Player, rng.New(1))
	if got := p.Fallback(s, geometry.NewVector(420, 310)); !got.Eq(geometry.NewVector(700, 100)) {
		t.Errorf("fallback = %v; want the storm-free dot", got)
	}

	// many carriers head home
	for i := 0; i < 4; i++ {
		b, _ := w.Boids.At(i)
		b.Carry = w.Dots.HandleAt(0)
	}
	s = NewSituation(w, entity.Player, rng.New(1))
	if got := p.Fallback(s, geometry.Vector2D{}); !got.Eq(w.Bases[entity.Player].Pos) {
		t.Errorf("fallback = %v; want home base", got)
	}
}
