package engine

import (
	"context"
	"testing"
	"time"

	"github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

const frameTimeout = 5 * time.Second

func newTestHost(t *testing.T) (*Host, context.Context) {
	t.Helper()
	ctx := context.Background()
	h, err := Start(ctx, log.DiscardLogger, simulation.DefaultConfig(), 800, 600, simulation.WithSeed(42))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { _ = h.Stop(ctx) })
	return h, ctx
}

// waitFrame reads frames until one satisfies ok.
func waitFrame(t *testing.T, h *Host, ok func(*Frame) bool) *Frame {
	t.Helper()
	deadline := time.After(frameTimeout)
	for {
		select {
		case f := <-h.Frames:
			if ok(f) {
				return f
			}
		case <-deadline:
			t.Fatal("timed out waiting for frame")
			return nil
		}
	}
}

func hasEvent(f *Frame, k simulation.EventKind) bool {
	for _, e := range f.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

func TestMatchActor_Tick(t *testing.T) {
	h, ctx := newTestHost(t)

	for i := 0; i < 3; i++ {
		if err := h.Tick(ctx, 16*time.Millisecond); err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
	}
	f := waitFrame(t, h, func(f *Frame) bool { return f.Snapshot.Tick == 3 })
	if f.Snapshot.Seed != 42 {
		t.Errorf("Seed = %d; want 42", f.Snapshot.Seed)
	}
	if f.Snapshot.Width != 800 || f.Snapshot.Height != 600 {
		t.Errorf("arena = %gx%g; want 800x600", f.Snapshot.Width, f.Snapshot.Height)
	}
}

func TestMatchActor_LevelUpCommand(t *testing.T) {
	h, ctx := newTestHost(t)

	if err := h.Send(ctx, LevelUpCommand(entity.Opponent)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	f := waitFrame(t, h, func(f *Frame) bool { return hasEvent(f, simulation.EventLevelUp) })
	if lvl := f.Snapshot.Bases[entity.Opponent].Level; lvl != 2 {
		t.Errorf("opponent level = %d; want 2", lvl)
	}
	if !hasEvent(f, simulation.EventReinforce) {
		t.Error("level-up frame should carry the reinforcement event")
	}
}

func TestMatchActor_PauseAndStatus(t *testing.T) {
	h, ctx := newTestHost(t)

	_ = h.Tick(ctx, 16*time.Millisecond)
	_ = h.Pause(ctx, true)
	_ = h.Tick(ctx, 16*time.Millisecond)
	_ = h.Tick(ctx, 16*time.Millisecond)

	status, err := h.Status(ctx, frameTimeout)
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	f := status.GetFields()
	if !f["paused"].GetBoolValue() {
		t.Error("status should report paused")
	}
	if tick := f["tick"].GetNumberValue(); tick != 1 {
		t.Errorf("tick = %v; want 1 (paused ticks do not count)", tick)
	}

	_ = h.Send(ctx, PauseCommand(false))
	_ = h.Tick(ctx, 16*time.Millisecond)
	waitFrame(t, h, func(f *Frame) bool { return f.Snapshot.Tick == 2 && !f.Snapshot.Paused })
}

func TestMatchActor_BadCommandIgnored(t *testing.T) {
	h, ctx := newTestHost(t)

	_ = h.Send(ctx, SpawnCommand(entity.Player, 0))
	_ = h.Send(ctx, SpawnCommand(entity.Player, 5))

	before := simulation.DefaultConfig().PerTeam(800, 600)
	f := waitFrame(t, h, func(f *Frame) bool {
		boids, _ := f.Snapshot.Counts()
		return boids[entity.Player] != before
	})
	if boids, _ := f.Snapshot.Counts(); boids[entity.Player] != before+5 {
		t.Errorf("player boids = %d; want %d", boids[entity.Player], before+5)
	}
}
