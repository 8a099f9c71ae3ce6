package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

// FrameBuffer is the capacity of the frame channel handed to the actor.
const FrameBuffer = 10

// Host bundles the actor system, the match actor and its frame channel.
type Host struct {
	System actor.ActorSystem
	PID    *actor.PID
	Frames <-chan *Frame
}

// Start boots an actor system and spawns a match actor in it.
func Start(ctx context.Context, logger log.Logger, cfg *simulation.Config, width, height float64, opts ...simulation.Option) (*Host, error) {
	if logger == nil {
		logger = log.DiscardLogger
	}
	system, err := actor.NewActorSystem("SwarmSkirmish",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	frames := make(chan *Frame, FrameBuffer)
	pid, err := system.Spawn(ctx, "match", NewMatchActor(frames, cfg, width, height, opts...))
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn match: %w", err)
	}
	return &Host{System: system, PID: pid, Frames: frames}, nil
}

// Tick asks the match to advance by dt.
func (h *Host) Tick(ctx context.Context, dt time.Duration) error {
	return actor.Tell(ctx, h.PID, durationpb.New(dt))
}

// Pause freezes or resumes the match.
func (h *Host) Pause(ctx context.Context, on bool) error {
	return actor.Tell(ctx, h.PID, wrapperspb.Bool(on))
}

// Send delivers any message, typically a command struct.
func (h *Host) Send(ctx context.Context, msg proto.Message) error {
	return actor.Tell(ctx, h.PID, msg)
}

// Status asks the match for its summary.
func (h *Host) Status(ctx context.Context, timeout time.Duration) (*structpb.Struct, error) {
	resp, err := actor.Ask(ctx, h.PID, &emptypb.Empty{}, timeout)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	status, ok := resp.(*structpb.Struct)
	if !ok {
		return nil, fmt.Errorf("unexpected status reply %T", resp)
	}
	return status, nil
}

// Stop shuts the actor system down.
func (h *Host) Stop(ctx context.Context) error {
	return h.System.Stop(ctx)
}
