package ai

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/arena"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/rng"
)

const (
	testW = 1000.0
	testH = 600.0
)

func carrier(team entity.Team, pos geometry.Vector2D) entity.Boid {
	dots := arena.New[entity.Dot](1)
	return entity.Boid{Team: team, Pos: pos, Carry: dots.Insert(entity.Dot{})}
}

func TestReactive_InitialState(t *testing.T) {
	w := entity.NewWorld(testW, testH)
	r, err := NewReactive(entity.Opponent, w, rng.New(1), nil)
	if err != nil {
		t.Fatalf("NewReactive: %v", err)
	}
	home := w.Bases[entity.Opponent]
	if r.Mode != Raid {
		t.Errorf("initial mode = %v; want raid", r.Mode)
	}
	if want := geometry.NewVector(home.Pos.X-home.Radius*0.8, home.Pos.Y); !r.Target.Eq(want) {
		t.Errorf("initial target = %v; want %v", r.Target, want)
	}
	if len(r.Rules()) != len(DefaultRules()) {
		t.Errorf("rules = %d; want defaults", len(r.Rules()))
	}
}

func TestReactive_TimerCountdown(t *testing.T) {
	w := entity.NewWorld(testW, testH)
	r, _ := NewReactive(entity.Opponent, w, rng.New(2), nil)

	if !r.Update(0.016, w, Input{}) {
		t.Fatal("first update should decide immediately")
	}
	if tm := r.Timer(); tm < ReactiveInterval || tm > ReactiveInterval+ReactiveJitter {
		t.Fatalf("timer = %v; want in [%v, %v]", tm, ReactiveInterval, ReactiveInterval+ReactiveJitter)
	}
	if r.Update(1, w, Input{}) {
		t.Error("should not decide before the timer expires")
	}
	if !r.Update(ReactiveInterval+ReactiveJitter, w, Input{}) {
		t.Error("should decide once the timer expires")
	}
}

func TestReactive_DefendsWhenThreatened(t *testing.T) {
	w := entity.NewWorld(testW, testH)
	home := w.Bases[entity.Opponent]
	w.Boids.Insert(carrier(entity.Player, home.Pos.Add(geometry.NewVector(home.Radius, 0))))

	r, _ := NewReactive(entity.Opponent, w, rng.New(3), nil)
	r.Update(0, w, Input{Active: true, X: testW * 0.9})
	if r.Mode != Defend {
		t.Fatalf("mode = %v; want defend", r.Mode)
	}
	wantX := home.Pos.X - home.Radius*0.2
	if math.Abs(r.Target.X-wantX) > home.Radius*0.15+1e-9 || math.Abs(r.Target.Y-home.Pos.Y) > home.Radius*0.15+1e-9 {
		t.Errorf("defend target %v too far from (%v, %v)", r.Target, wantX, home.Pos.Y)
	}
}

func TestReactive_InterceptsPushingPlayer(t *testing.T) {
	w := entity.NewWorld(testW, testH)
	r, _ := NewReactive(entity.Opponent, w, rng.New(4), nil)

	r.Update(0, w, Input{Active: true, X: testW * 0.7})
	if r.Mode != Intercept {
		t.Fatalf("mode = %v; want intercept", r.Mode)
	}
	if math.Abs(r.Target.X-testW/2) > testW*0.05+1e-9 || math.Abs(r.Target.Y-testH/2) > testH*0.1+1e-9 {
		t.Errorf("intercept target %v too far from the centre", r.Target)
	}

	// inactive input at the same x does not count as pushing
	r2, _ := NewReactive(entity.Opponent, w, rng.New(4), []RuleSpec{
		{Name: "push", Mode: "intercept", Score: "PlayerPushing ? 1.0 : 0.0"},
	})
	r2.Update(0, w, Input{Active: false, X: testW * 0.7})
	if r2.Mode != Raid {
		t.Errorf("mode = %v; want unchanged raid", r2.Mode)
	}
}

func TestReactive_RaidTarget(t *testing.T) {
	w := entity.NewWorld(testW, testH)
	r, _ := NewReactive(entity.Opponent, w, rng.New(5), []RuleSpec{{Name: "always", Mode: "raid", Score: "1.0"}})
	r.Update(0, w, Input{})

	enemy := w.Bases[entity.Player]
	wantX := enemy.Pos.X + enemy.Radius*0.1
	if math.Abs(r.Target.X-wantX) > enemy.Radius*0.15+1e-9 {
		t.Errorf("raid target x = %v; want near %v", r.Target.X, wantX)
	}
}

func TestNewReactive_RejectsBadRules(t *testing.T) {
	w := entity.NewWorld(testW, testH)
	if _, err := NewReactive(entity.Opponent, w, rng.New(1), []RuleSpec{{Name: "x", Mode: "raid", Score: "("}}); err == nil {
		t.Error("expected an error for a malformed rule")
	}
}
