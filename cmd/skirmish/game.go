package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/proto"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/internal/engine"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/internal/report"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/internal/sound"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/ui"
)

// doubleTap is the longest gap between two presses that toggles pause.
const doubleTap = 280 * time.Millisecond

type Game struct {
	ctx    context.Context
	host   *engine.Host
	logger log.Logger
	sound  *sound.Manager
	last   *simulation.Snapshot

	// UI Controls
	panel *ui.UIPanel

	// Widget references for easy access
	widgetAutoPilot     *ui.Checkbox
	widgetSound         *ui.Checkbox
	widgetShowAuras     *ui.Checkbox
	widgetShowWaypoints *ui.Checkbox
	widgetShowPerf      *ui.Checkbox
	widgetSpeed         *ui.Slider

	effects Effects
	toasts  Toasts

	paused     bool
	dragging   bool
	lastPress  time.Time
	lastUpdate time.Time
	layoutW    int
	layoutH    int
	resizeW    int
	resizeH    int

	// Timing instrumentation
	lastUpdateDuration time.Duration
	lastDrawDuration   time.Duration
	updateAvg          float64 // Rolling average in ms
	drawAvg            float64 // Rolling average in ms
}

func newGame(ctx context.Context, host *engine.Host, cfg *simulation.Config, snd *sound.Manager, logger log.Logger) *Game {
	loadSprites()
	if err := loadFonts(); err != nil {
		logger.Warnf("falling back to the debug font: %v", err)
	}

	g := &Game{
		ctx:     ctx,
		host:    host,
		logger:  logger,
		sound:   snd,
		layoutW: int(cfg.Width),
		layoutH: int(cfg.Height),
		resizeW: int(cfg.Width),
		resizeH: int(cfg.Height),
		last: &simulation.Snapshot{ // Avoid nil pointer before the first frame
			Width:  cfg.Width,
			Height: cfg.Height,
		},
	}

	panel := ui.NewUIPanel(10, 10, 220, 420)

	panel.AddSection("Match")
	g.widgetAutoPilot = panel.AddCheckbox("Autopilot", cfg.AutoPilot)
	g.widgetAutoPilot.OnChange = func(on bool) { g.send(engine.AutoPilotCommand(on)) }
	g.widgetSpeed = panel.AddSlider("Speed", 0.25, 2, 1)
	g.widgetSpeed.Step = 0.25
	panel.AddButton("Clear waypoints", func() { g.send(engine.ClearWaypointsCommand()) })
	panel.AddButton("Copy report", g.copyReport)
	panel.EndSection()

	panel.AddSection("Sandbox")
	panel.AddButton("Level up player", func() { g.send(engine.LevelUpCommand(entity.Player)) })
	panel.AddButton("Level up opponent", func() { g.send(engine.LevelUpCommand(entity.Opponent)) })
	panel.AddButton("Spawn 5 player", func() { g.send(engine.SpawnCommand(entity.Player, 5)) })
	panel.AddButton("Chaos now", func() { g.send(engine.ChaosCommand()) })
	panel.EndSection()

	panel.AddSection("Visualization")
	g.widgetShowAuras = panel.AddCheckbox("Show auras", true)
	g.widgetShowWaypoints = panel.AddCheckbox("Show waypoints", true)
	g.widgetShowPerf = panel.AddCheckbox("Show timings", false)
	g.widgetSound = panel.AddCheckbox("Sound", true)
	g.widgetSound.OnChange = func(on bool) { g.sound.SetMuted(!on) }
	panel.EndSection()
	panel.SetCollapsed(1, true)

	g.panel = panel
	return g
}

func (g *Game) send(msg proto.Message) {
	if err := g.host.Send(g.ctx, msg); err != nil {
		g.logger.Warnf("failed to send command: %v", err)
	}
}

func (g *Game) copyReport() {
	b, err := report.Build(g.last).JSON()
	if err == nil {
		err = clipboard.WriteAll(string(b))
	}
	if err != nil {
		g.logger.Warnf("copy report: %v", err)
		g.toasts.Push("clipboard unavailable", 1.5)
		return
	}
	g.toasts.Push("report copied", 1.2)
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	if err := g.host.Pause(g.ctx, g.paused); err != nil {
		g.logger.Warnf("failed to pause: %v", err)
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.lastUpdateDuration = time.Since(start)
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(g.lastUpdateDuration.Microseconds())/1000.0*0.05
	}()

	dt := time.Second / 60
	if !g.lastUpdate.IsZero() {
		dt = start.Sub(g.lastUpdate)
	}
	g.lastUpdate = start
	dtS := dt.Seconds()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// 1. Update UI Panel
	over := g.panel.Update()

	// 2. Drain every pending frame so no event is skipped
	for drained := false; !drained; {
		select {
		case f := <-g.host.Frames:
			g.last = f.Snapshot
			g.sound.PlayEvents(f.Events)
			g.effects.FromEvents(f.Events)
			g.toasts.FromEvents(f.Events)
		default:
			drained = true
		}
	}

	g.handleKeys()
	g.handlePointer(over, dtS)

	if g.layoutW != g.resizeW || g.layoutH != g.resizeH {
		g.resizeW, g.resizeH = g.layoutW, g.layoutH
		g.send(engine.ResizeCommand(float64(g.layoutW), float64(g.layoutH)))
	}

	g.effects.Update(dtS)
	g.toasts.Update(dtS)

	// 3. Trigger Simulation Step
	scaled := time.Duration(float64(dt) * g.widgetSpeed.Value)
	if err := g.host.Tick(g.ctx, scaled); err != nil {
		return fmt.Errorf("failed to tick match: %w", err)
	}
	return nil
}

func (g *Game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyReport()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.panel.Visible = !g.panel.Visible
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.send(engine.ChaosCommand())
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.send(engine.ClearWaypointsCommand())
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.widgetAutoPilot.Value = !g.widgetAutoPilot.Value
		g.send(engine.AutoPilotCommand(g.widgetAutoPilot.Value))
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.widgetSound.Value = !g.widgetSound.Value
		g.sound.SetMuted(!g.widgetSound.Value)
	}
}

// handlePointer turns mouse and touch input into pointer commands. Presses
// that start on the panel never reach the arena.
func (g *Game) handlePointer(over bool, dtS float64) {
	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	justPressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)

	if touches := ebiten.AppendTouchIDs(nil); len(touches) > 0 {
		x, y = ebiten.TouchPosition(touches[0])
		pressed = true
		justPressed = inpututil.TouchPressDuration(touches[0]) == 1
		over = g.panel.Contains(float64(x), float64(y))
	}
	p := geometry.NewVector(float64(x), float64(y))

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) && !over {
		g.send(engine.WaypointCommand(p.X, p.Y))
		g.effects.Tap(p)
	}

	switch {
	case justPressed && !over:
		now := time.Now()
		if now.Sub(g.lastPress) < doubleTap {
			g.togglePause()
			g.effects.Pulse(p)
		} else {
			g.effects.Tap(p)
		}
		g.lastPress = now
		g.dragging = true
		g.send(engine.PointerCommand(p.X, p.Y, true))
	case pressed && g.dragging:
		g.effects.Hold(p, dtS)
		g.send(engine.PointerCommand(p.X, p.Y, true))
	case !pressed && g.dragging:
		g.dragging = false
		g.send(engine.PointerCommand(p.X, p.Y, false))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.lastDrawDuration = time.Since(start)
		g.drawAvg = g.drawAvg*0.95 + float64(g.lastDrawDuration.Microseconds())/1000.0*0.05
	}()
	snap := g.last

	// 1. Arena from the last known snapshot
	drawBackground(screen, snap)
	drawStorms(screen, snap.Storms)
	for _, b := range snap.Bases {
		drawBase(screen, b, g.widgetShowAuras.Value)
	}
	if g.widgetShowWaypoints.Value {
		drawWaypoints(screen, snap.Waypoints)
	}
	drawDots(screen, snap.Dots)
	drawBoids(screen, snap)
	drawChaos(screen, snap)
	g.effects.Draw(screen)

	// 2. Stats bar and status line
	drawStatsBar(screen, snap)
	drawHUD(screen, snap)

	// 3. Draw UI Panel
	g.panel.Draw(screen)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if snap.Paused {
		if titleFace != nil {
			drawCentred(screen, "PAUSED", float64(w)/2, float64(h)/2-12, freeColor)
		}
		msg := "double tap or P to resume"
		ebitenutil.DebugPrintAt(screen, msg, w/2-len(msg)*3, h/2+8)
	}
	for i, line := range g.toasts.Lines() {
		if titleFace != nil {
			drawCentred(screen, line, float64(w)/2, float64(h)/4+float64(i)*30, freeColor)
			continue
		}
		ebitenutil.DebugPrintAt(screen, line, w/2-len(line)*3, h/4+i*18)
	}

	if g.widgetShowPerf.Value {
		// Display timing breakdown for performance analysis
		msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nUpdate: %.2fms\nDraw:   %.2fms\nTotal:  %.2fms\nFX:     %d",
			ebiten.ActualFPS(),
			ebiten.ActualTPS(),
			g.updateAvg,
			g.drawAvg,
			g.updateAvg+g.drawAvg,
			g.effects.Len())
		ebitenutil.DebugPrintAt(screen, msg, w-150, 10)
	} else {
		ebitenutil.DebugPrintAt(screen, strings.Join([]string{"H panel", "P pause", "C copy"}, "  "), w-160, 10)
	}
}

// Layout follows the window so the arena always fills it.
func (g *Game) Layout(w, h int) (int, int) {
	if w > 0 && h > 0 {
		g.layoutW, g.layoutH = w, h
	}
	return g.layoutW, g.layoutH
}
