package tui

import (
	"github.com/gdamore/tcell/v2"
	"google.golang.org/protobuf/proto"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/internal/engine"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
)

// Controller keeps the keyboard cursor and the toggles driven from the
// terminal, and converts key events into engine messages.
type Controller struct {
	X, Y      int
	Holding   bool
	Paused    bool
	AutoPilot bool
	view      Viewport
}

// NewController centres the cursor on the field.
func NewController(v Viewport, autopilot bool) *Controller {
	return &Controller{X: v.Cols / 2, Y: v.Rows / 2, AutoPilot: autopilot, view: v}
}

// Resize keeps the cursor inside a new viewport.
func (c *Controller) Resize(v Viewport) {
	c.view = v
	c.X = max(0, min(v.Cols-1, c.X))
	c.Y = max(0, min(v.Rows-1, c.Y))
}

func (c *Controller) pointer() proto.Message {
	p := c.view.World(c.X, c.Y)
	return engine.PointerCommand(p.X, p.Y, c.Holding)
}

// HandleKey returns the messages for one key press and whether the user asked to quit.
func (c *Controller) HandleKey(ev *tcell.EventKey) (msgs []proto.Message, quit bool) {
	moved := false
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyUp:
		c.Y, moved = max(0, c.Y-1), true
	case tcell.KeyDown:
		c.Y, moved = min(c.view.Rows-1, c.Y+1), true
	case tcell.KeyLeft:
		c.X, moved = max(0, c.X-1), true
	case tcell.KeyRight:
		c.X, moved = min(c.view.Cols-1, c.X+1), true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return nil, true
		case ' ':
			c.Holding = !c.Holding
			return []proto.Message{c.pointer()}, false
		case 'w':
			p := c.view.World(c.X, c.Y)
			return []proto.Message{engine.WaypointCommand(p.X, p.Y)}, false
		case 'c':
			return []proto.Message{engine.ClearWaypointsCommand()}, false
		case 'a':
			c.AutoPilot = !c.AutoPilot
			return []proto.Message{engine.AutoPilotCommand(c.AutoPilot)}, false
		case 'l':
			return []proto.Message{engine.LevelUpCommand(entity.Player)}, false
		case 'L':
			return []proto.Message{engine.LevelUpCommand(entity.Opponent)}, false
		case 's':
			return []proto.Message{engine.SpawnCommand(entity.Player, 5)}, false
		case 'x':
			return []proto.Message{engine.ChaosCommand()}, false
		case 'p':
			c.Paused = !c.Paused
			return []proto.Message{engine.PauseCommand(c.Paused)}, false
		}
	}
	if moved && c.Holding {
		return []proto.Message{c.pointer()}, false
	}
	return nil, false
}
