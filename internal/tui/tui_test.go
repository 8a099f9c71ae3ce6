package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/internal/engine"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

func TestViewport_CellRoundTrip(t *testing.T) {
	v := NewViewport(80, 26, 800, 480)
	if v.Rows != 24 {
		t.Fatalf("Rows = %d; want 24 (two HUD rows reserved)", v.Rows)
	}
	tests := []struct {
		p      geometry.Vector2D
		x, y   int
		inside bool
	}{
		{geometry.Vector2D{X: 0, Y: 0}, 0, 0, true},
		{geometry.Vector2D{X: 799, Y: 479}, 79, 23, true},
		{geometry.Vector2D{X: 405, Y: 245}, 40, 12, true},
		{geometry.Vector2D{X: -1, Y: 10}, -1, 0, false},
		{geometry.Vector2D{X: 800, Y: 10}, 80, 0, false},
	}
	for _, tt := range tests {
		x, y, ok := v.Cell(tt.p)
		if x != tt.x || y != tt.y || ok != tt.inside {
			t.Errorf("Cell(%v) = %d,%d,%v; want %d,%d,%v", tt.p, x, y, ok, tt.x, tt.y, tt.inside)
		}
		if ok {
			if cx, cy, _ := v.Cell(v.World(x, y)); cx != x || cy != y {
				t.Errorf("World(%d,%d) maps back to %d,%d", x, y, cx, cy)
			}
		}
	}
}

func TestArrow(t *testing.T) {
	tests := []struct {
		vel  geometry.Vector2D
		want rune
	}{
		{geometry.Vector2D{X: 1, Y: 0}, '→'},
		{geometry.Vector2D{X: 0, Y: 1}, '↓'},
		{geometry.Vector2D{X: -1, Y: 0}, '←'},
		{geometry.Vector2D{X: 0, Y: -1}, '↑'},
		{geometry.Vector2D{X: 1, Y: -1}, '↗'},
		{geometry.Vector2D{X: 1, Y: -0.1}, '→'},
	}
	for _, tt := range tests {
		if got := Arrow(tt.vel); got != tt.want {
			t.Errorf("Arrow(%v) = %q; want %q", tt.vel, got, tt.want)
		}
	}
}

func TestDraw_SimulationScreen(t *testing.T) {
	m, err := simulation.NewMatch(simulation.DefaultConfig(), 800, 480, simulation.WithSeed(3))
	if err != nil {
		t.Fatal(err)
	}
	snap := m.Snapshot()
	snap.Paused = true

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 26)

	Draw(screen, snap, 5, 5, true)

	v := NewViewport(80, 26, 800, 480)
	bx, by, _ := v.Cell(snap.Bases[entity.Player].Pos)
	if r, _, _, _ := screen.GetContent(bx, by); r != '1' {
		t.Errorf("player base centre shows %q; want level '1'", r)
	}
	if r, _, _, _ := screen.GetContent(5, 5); r != '×' {
		t.Errorf("cursor cell shows %q; want '×'", r)
	}

	var hud strings.Builder
	for x := 0; x < 80; x++ {
		r, _, _, _ := screen.GetContent(x, 24)
		hud.WriteRune(r)
	}
	if !strings.HasPrefix(hud.String(), "P L1 ") {
		t.Errorf("status row = %q", hud.String())
	}
}

func TestController_HandleKey(t *testing.T) {
	v := NewViewport(40, 22, 400, 200)
	c := NewController(v, true)
	key := func(k tcell.Key, r rune) *tcell.EventKey { return tcell.NewEventKey(k, r, tcell.ModNone) }
	cmd := func(t *testing.T, msgs []any) string {
		t.Helper()
		if len(msgs) != 1 {
			t.Fatalf("got %d messages; want 1", len(msgs))
		}
		return msgs[0].(*structpb.Struct).GetFields()["cmd"].GetStringValue()
	}
	toAny := func(t *testing.T, k *tcell.EventKey) []any {
		msgs, quit := c.HandleKey(k)
		if quit {
			t.Fatal("unexpected quit")
		}
		out := make([]any, len(msgs))
		for i, m := range msgs {
			out[i] = m
		}
		return out
	}

	if msgs := toAny(t, key(tcell.KeyLeft, 0)); len(msgs) != 0 || c.X != 19 {
		t.Errorf("moving without holding: %d msgs, X=%d", len(msgs), c.X)
	}
	if got := cmd(t, toAny(t, key(tcell.KeyRune, ' '))); got != engine.CmdPointer || !c.Holding {
		t.Errorf("space -> %q holding=%v", got, c.Holding)
	}
	if got := cmd(t, toAny(t, key(tcell.KeyUp, 0))); got != engine.CmdPointer {
		t.Errorf("moving while holding -> %q", got)
	}
	if got := cmd(t, toAny(t, key(tcell.KeyRune, 'a'))); got != engine.CmdAutoPilot || c.AutoPilot {
		t.Errorf("a -> %q autopilot=%v", got, c.AutoPilot)
	}
	if got := cmd(t, toAny(t, key(tcell.KeyRune, 'p'))); got != engine.CmdPause || !c.Paused {
		t.Errorf("p -> %q paused=%v", got, c.Paused)
	}
	if _, quit := c.HandleKey(key(tcell.KeyRune, 'q')); !quit {
		t.Error("q should quit")
	}
	for i := 0; i < 50; i++ {
		c.HandleKey(key(tcell.KeyRight, 0))
	}
	if c.X != v.Cols-1 {
		t.Errorf("cursor X = %d; want clamped to %d", c.X, v.Cols-1)
	}
}
