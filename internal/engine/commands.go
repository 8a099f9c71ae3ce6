package engine

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
)

// Command kinds carried in the "cmd" field of a command struct.
const (
	CmdPointer        = "pointer"
	CmdWaypoint       = "waypoint"
	CmdClearWaypoints = "clearWaypoints"
	CmdPause          = "pause"
	CmdAutoPilot      = "autopilot"
	CmdResize         = "resize"
	CmdLevelUp        = "levelUp"
	CmdSpawn          = "spawn"
	CmdChaos          = "chaos"
)

var (
	// ErrUnknownCommand is returned for a struct whose "cmd" field names no command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidCommand is returned when a known command is missing or has malformed arguments.
	ErrInvalidCommand = errors.New("invalid command")
)

// Command is a decoded control message for the match actor.
type Command struct {
	Kind   string
	X, Y   float64
	Active bool
	On     bool
	Team   entity.Team
	Count  int
}

func command(kind string, fields map[string]*structpb.Value) *structpb.Struct {
	if fields == nil {
		fields = make(map[string]*structpb.Value, 1)
	}
	fields["cmd"] = structpb.NewStringValue(kind)
	return &structpb.Struct{Fields: fields}
}

// PointerCommand moves (or releases, when active is false) the player goal.
func PointerCommand(x, y float64, active bool) *structpb.Struct {
	return command(CmdPointer, map[string]*structpb.Value{
		"x":      structpb.NewNumberValue(x),
		"y":      structpb.NewNumberValue(y),
		"active": structpb.NewBoolValue(active),
	})
}

// WaypointCommand queues a waypoint for the player team.
func WaypointCommand(x, y float64) *structpb.Struct {
	return command(CmdWaypoint, map[string]*structpb.Value{
		"x": structpb.NewNumberValue(x),
		"y": structpb.NewNumberValue(y),
	})
}

// ClearWaypointsCommand drops every queued waypoint.
func ClearWaypointsCommand() *structpb.Struct { return command(CmdClearWaypoints, nil) }

// PauseCommand freezes or resumes the match.
func PauseCommand(on bool) *structpb.Struct {
	return command(CmdPause, map[string]*structpb.Value{"on": structpb.NewBoolValue(on)})
}

// AutoPilotCommand enables or disables the idle autopilot.
func AutoPilotCommand(on bool) *structpb.Struct {
	return command(CmdAutoPilot, map[string]*structpb.Value{"on": structpb.NewBoolValue(on)})
}

// ResizeCommand changes the arena size.
func ResizeCommand(width, height float64) *structpb.Struct {
	return command(CmdResize, map[string]*structpb.Value{
		"x": structpb.NewNumberValue(width),
		"y": structpb.NewNumberValue(height),
	})
}

// LevelUpCommand forces a level-up of the team's base.
func LevelUpCommand(t entity.Team) *structpb.Struct {
	return command(CmdLevelUp, map[string]*structpb.Value{"team": structpb.NewNumberValue(float64(t))})
}

// SpawnCommand adds count boids to a team.
func SpawnCommand(t entity.Team, count int) *structpb.Struct {
	return command(CmdSpawn, map[string]*structpb.Value{
		"team":  structpb.NewNumberValue(float64(t)),
		"count": structpb.NewNumberValue(float64(count)),
	})
}

// ChaosCommand sets off a chaos burst immediately.
func ChaosCommand() *structpb.Struct { return command(CmdChaos, nil) }

// DecodeCommand turns a command struct back into a Command.
func DecodeCommand(s *structpb.Struct) (Command, error) {
	f := s.GetFields()
	kind := f["cmd"].GetStringValue()
	cmd := Command{Kind: kind}

	number := func(key string) (float64, error) {
		v, ok := f[key]
		if !ok {
			return 0, fmt.Errorf("%w: %s needs %q", ErrInvalidCommand, kind, key)
		}
		if _, ok := v.GetKind().(*structpb.Value_NumberValue); !ok {
			return 0, fmt.Errorf("%w: %s.%s is not a number", ErrInvalidCommand, kind, key)
		}
		return v.GetNumberValue(), nil
	}
	team := func() (entity.Team, error) {
		n, err := number("team")
		if err != nil {
			return 0, err
		}
		t := entity.Team(int(n))
		if !t.Valid() {
			return 0, fmt.Errorf("%w: %s has no team %v", ErrInvalidCommand, kind, n)
		}
		return t, nil
	}

	var err error
	switch kind {
	case CmdPointer:
		if cmd.X, err = number("x"); err != nil {
			return cmd, err
		}
		if cmd.Y, err = number("y"); err != nil {
			return cmd, err
		}
		cmd.Active = f["active"].GetBoolValue()
	case CmdWaypoint, CmdResize:
		if cmd.X, err = number("x"); err != nil {
			return cmd, err
		}
		if cmd.Y, err = number("y"); err != nil {
			return cmd, err
		}
	case CmdPause, CmdAutoPilot:
		cmd.On = f["on"].GetBoolValue()
	case CmdLevelUp:
		if cmd.Team, err = team(); err != nil {
			return cmd, err
		}
	case CmdSpawn:
		if cmd.Team, err = team(); err != nil {
			return cmd, err
		}
		n, err := number("count")
		if err != nil {
			return cmd, err
		}
		if n < 1 {
			return cmd, fmt.Errorf("%w: spawn count %v", ErrInvalidCommand, n)
		}
		cmd.Count = int(n)
	case CmdClearWaypoints, CmdChaos:
	default:
		return cmd, fmt.Errorf("%w: %q", ErrUnknownCommand, kind)
	}
	return cmd, nil
}
