// Package engine hosts a skirmish Match inside a goakt actor. Front-ends drive
// it with proto messages and read frames from a buffered channel:
//
//   - *durationpb.Duration advances the match by one frame of that length
//   - *wrapperspb.BoolValue pauses (true) or resumes (false)
//   - *structpb.Struct carries a command built by the *Command constructors
//   - *emptypb.Empty asks for a status summary
package engine

import (
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

// maxPendingEvents bounds the events kept for a front-end that stopped reading.
const maxPendingEvents = 512

// Frame is what the actor pushes to the front-end after every handled message.
type Frame struct {
	Snapshot *simulation.Snapshot
	// Events produced since the previous delivered frame.
	Events []simulation.Event
}

// MatchActor owns the authoritative match state.
type MatchActor struct {
	cfg           *simulation.Config
	width, height float64
	opts          []simulation.Option
	frames        chan<- *Frame

	match   *simulation.Match
	input   simulation.Input
	pending []simulation.Event

	// --- Benchmark Stats ---
	tickCount   int
	cmdCount    int
	dropped     int
	lastLogTime time.Time
}

// NewMatchActor creates the actor; the match itself is built in PreStart.
func NewMatchActor(frames chan<- *Frame, cfg *simulation.Config, width, height float64, opts ...simulation.Option) *MatchActor {
	return &MatchActor{
		cfg:         cfg,
		width:       width,
		height:      height,
		opts:        opts,
		frames:      frames,
		lastLogTime: time.Now(),
	}
}

func (a *MatchActor) PreStart(ctx *actor.Context) error {
	logger := ctx.ActorSystem().Logger()
	opts := append([]simulation.Option{simulation.WithLogger(logger)}, a.opts...)
	m, err := simulation.NewMatch(a.cfg, a.width, a.height, opts...)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	a.match = m
	logger.Info("Match actor is ready...")
	return nil
}

func (a *MatchActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Info("Match started. Waiting for ticks...")
		a.pushFrame()

	case *durationpb.Duration:
		a.tickCount++
		a.logBenchmarks(ctx)
		in := a.input
		in.Delta = simulation.FrameDelta(float64(msg.AsDuration().Microseconds()) / 1000)
		a.queue(a.match.Tick(in))
		a.pushFrame()

	case *wrapperspb.BoolValue:
		a.match.SetPaused(msg.GetValue())
		a.pushFrame()

	case *structpb.Struct:
		a.cmdCount++
		cmd, err := DecodeCommand(msg)
		if err != nil {
			ctx.Logger().Warnf("⚠️ dropped command: %v", err)
			return
		}
		a.apply(cmd)

	case *emptypb.Empty:
		status, err := a.status()
		if err != nil {
			ctx.Err(err)
			return
		}
		ctx.Response(status)

	default:
		ctx.Unhandled()
	}
}

func (a *MatchActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Match stopped after %d ticks", a.match.Ticks())
	return nil
}

func (a *MatchActor) apply(cmd Command) {
	m := a.match
	before := len(m.Events())
	switch cmd.Kind {
	case CmdPointer:
		a.input.Pointer = geometry.Vector2D{X: cmd.X, Y: cmd.Y}
		a.input.Active = cmd.Active
		return
	case CmdWaypoint:
		m.AddWaypoint(geometry.Vector2D{X: cmd.X, Y: cmd.Y})
	case CmdClearWaypoints:
		m.ClearWaypoints()
	case CmdPause:
		m.SetPaused(cmd.On)
	case CmdAutoPilot:
		m.SetAutoPilot(cmd.On)
	case CmdResize:
		m.Resize(cmd.X, cmd.Y)
	case CmdLevelUp:
		m.LevelUpBase(cmd.Team)
	case CmdSpawn:
		m.SpawnBoids(cmd.Team, cmd.Count)
	case CmdChaos:
		m.TriggerChaos()
	}
	a.queue(m.Events()[before:])
	a.pushFrame()
}

// queue keeps a copy of events because Match reuses its event slice.
func (a *MatchActor) queue(events []simulation.Event) {
	a.pending = append(a.pending, events...)
	if over := len(a.pending) - maxPendingEvents; over > 0 {
		a.pending = append(a.pending[:0], a.pending[over:]...)
	}
}

func (a *MatchActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(a.lastLogTime) >= time.Second {
		boids, carriers := a.match.Snapshot().Counts()
		ctx.Logger().Infof("📊 TICK RATE: %d/sec (cmds: %d, dropped frames: %d) | Boids: %d/%d | Carriers: %d/%d",
			a.tickCount, a.cmdCount, a.dropped, boids[0], boids[1], carriers[0], carriers[1])
		a.tickCount = 0
		a.cmdCount = 0
		a.dropped = 0
		a.lastLogTime = time.Now()
	}
}

func (a *MatchActor) pushFrame() {
	if a.frames == nil {
		return
	}
	f := &Frame{Snapshot: a.match.Snapshot(), Events: a.pending}
	select {
	case a.frames <- f:
		a.pending = nil
	default:
		// front-end busy, events stay queued for the next frame
		a.dropped++
	}
}

func (a *MatchActor) status() (*structpb.Struct, error) {
	m := a.match
	snap := m.Snapshot()
	boids, carriers := snap.Counts()
	enabled, driving := m.AutoPilot()
	w := m.World()
	return structpb.NewStruct(map[string]any{
		"tick":             float64(m.Ticks()),
		"elapsed":          m.Elapsed(),
		"paused":           m.Paused(),
		"autopilot":        enabled,
		"driving":          driving,
		"opponentMode":     snap.OpponentMode,
		"playerBoids":      boids[entity.Player],
		"opponentBoids":    boids[entity.Opponent],
		"playerCarriers":   carriers[entity.Player],
		"opponentCarriers": carriers[entity.Opponent],
		"playerLevel":      w.Bases[entity.Player].Level,
		"opponentLevel":    w.Bases[entity.Opponent].Level,
		"stockDiff":        snap.StockDiff(),
	})
}
