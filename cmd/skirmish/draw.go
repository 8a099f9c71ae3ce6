package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

const dotRadius = 3.0

// advantage maps the stock difference to [-1,1], positive when the player leads.
func advantage(stockDiff int) float64 {
	return max(-1, min(1, float64(stockDiff)/14))
}

func drawBackground(screen *ebiten.Image, snap *simulation.Snapshot) {
	screen.Fill(bgDark)
	w, h := snap.Width, snap.Height
	vector.FillRect(screen, 0, float32(h/2), float32(w), float32(h/2), fade(bgLight, 0.6), false)

	t := advantage(snap.StockDiff())
	r := math.Min(w, h)
	drawSprite(screen, glowSprite, w*0.25, h*0.5, r*2, playerColor, float32(0.08+0.14*max(0, t)))
	drawSprite(screen, glowSprite, w*0.75, h*0.5, r*2, opponentColor, float32(0.08+0.14*max(0, -t)))
}

func drawStorms(screen *ebiten.Image, storms []simulation.StormView) {
	for _, s := range storms {
		x, y := float32(s.Pos.X), float32(s.Pos.Y)
		vector.StrokeCircle(screen, x, y, float32(s.Radius), 14, fade(stormColor, 0.06), true)
		vector.StrokeCircle(screen, x, y, float32(s.Radius*0.65), 3, fade(stormColor, 0.08), true)
	}
}

// strokeArc approximates an arc with line segments, starting at angle from.
func strokeArc(screen *ebiten.Image, cx, cy, r, from, sweep float64, width float32, c color.Color) {
	steps := max(4, int(math.Abs(sweep)*r/6))
	px, py := cx+math.Cos(from)*r, cy+math.Sin(from)*r
	for i := 1; i <= steps; i++ {
		a := from + sweep*float64(i)/float64(steps)
		x, y := cx+math.Cos(a)*r, cy+math.Sin(a)*r
		vector.StrokeLine(screen, float32(px), float32(py), float32(x), float32(y), width, c, true)
		px, py = x, y
	}
}

func drawBase(screen *ebiten.Image, b simulation.BaseView, showAura bool) {
	c := teamColor(b.Team)
	drawSprite(screen, glowSprite, b.Pos.X, b.Pos.Y, b.Radius*2, freeColor, float32(0.06+b.Flash*0.4))
	if showAura {
		vector.StrokeCircle(screen,
			float32(b.Pos.X), float32(b.Pos.Y), float32(b.AuraRadius),
			10, fade(c, 0.16), true)
	}
	vector.StrokeCircle(screen,
		float32(b.Pos.X), float32(b.Pos.Y), float32(b.Radius),
		1, fade(c, 0.35), true)
	if b.Progress > 0 {
		strokeArc(screen, b.Pos.X, b.Pos.Y, b.Radius*0.86,
			-math.Pi/2, 2*math.Pi*b.Progress, 4, fade(c, 0.9))
	}
	label := fmt.Sprintf("L%d %d/%d", b.Level, b.Stock, b.Desired)
	ebitenutil.DebugPrintAt(screen, label, int(b.Pos.X)-len(label)*3, int(b.Pos.Y+b.Radius)+4)
}

func drawWaypoints(screen *ebiten.Image, wps []simulation.WaypointView) {
	for i, wp := range wps {
		a := 0.35
		if wp.Active {
			a = 0.9
		}
		x, y := float32(wp.Pos.X), float32(wp.Pos.Y)
		vector.StrokeCircle(screen, x, y, float32(wp.Radius), 1.5, fade(playerColor, a), true)
		vector.StrokeLine(screen, x-5, y, x+5, y, 1, fade(playerColor, a), true)
		vector.StrokeLine(screen, x, y-5, x, y+5, 1, fade(playerColor, a), true)
		if i > 0 {
			prev := wps[i-1].Pos
			vector.StrokeLine(screen, float32(prev.X), float32(prev.Y), x, y, 1, fade(playerColor, 0.2), true)
		}
	}
}

func drawDots(screen *ebiten.Image, dots []simulation.DotView) {
	for _, d := range dots {
		if d.State == entity.Carried {
			continue
		}
		c := freeColor
		if d.State != entity.Free {
			c = teamColor(d.Owner)
		}
		drawSprite(screen, dotSprite, d.Pos.X, d.Pos.Y, dotRadius*2, c, 1)
		if d.State == entity.Free {
			drawSprite(screen, glowSprite, d.Pos.X, d.Pos.Y, 16, c, 0.25)
		}
	}
}

func drawBoids(screen *ebiten.Image, snap *simulation.Snapshot) {
	for _, b := range snap.Boids {
		level := 1
		if b.Team.Valid() {
			level = snap.Bases[b.Team].Level
		}
		size := 7.5 + math.Min(4, float64(level)*0.4)
		angle := math.Atan2(b.Vel.Y, b.Vel.X)
		alpha := float32(1)
		if b.Stunned {
			alpha = 0.55
		}
		drawBoid(screen, b.Pos.X, b.Pos.Y, angle, size, teamColor(b.Team), alpha)

		if b.Carrying {
			tx := b.Pos.X - math.Cos(angle)*size*0.9
			ty := b.Pos.Y - math.Sin(angle)*size*0.9
			vector.StrokeLine(screen, float32(b.Pos.X), float32(b.Pos.Y), float32(tx), float32(ty),
				1.5, fade(freeColor, 0.35), true)
			drawSprite(screen, dotSprite, tx, ty, dotRadius*2, teamColor(b.Team), 1)
		}
		if b.Stunned {
			drawSprite(screen, glowSprite, b.Pos.X, b.Pos.Y, 16, freeColor, 0.35)
		}
	}
}

func drawChaos(screen *ebiten.Image, snap *simulation.Snapshot) {
	if !snap.Chaos {
		return
	}
	r := math.Min(snap.Width, snap.Height) * (0.1 + 0.4*snap.ChaosProgress)
	vector.StrokeCircle(screen,
		float32(snap.ChaosCentre.X), float32(snap.ChaosCentre.Y), float32(r),
		2, fade(freeColor, 0.5*(1-snap.ChaosProgress)), true)
}

// drawStatsBar splits a bar by each side's stock.
func drawStatsBar(screen *ebiten.Image, snap *simulation.Snapshot) {
	player := float32(snap.Bases[entity.Player].Stock)
	opponent := float32(snap.Bases[entity.Opponent].Stock)
	total := player + opponent

	// Avoid divide by zero when both stores are empty
	if total == 0 {
		return
	}

	barWidth := float32(200.0)
	barHeight := float32(14.0)
	marginBottom := float32(10.0)

	screenW := float32(screen.Bounds().Dx())
	screenH := float32(screen.Bounds().Dy())
	x := (screenW - barWidth) / 2
	y := screenH - barHeight - marginBottom - 16

	playerW := barWidth * player / total
	vector.FillRect(screen, x, y, playerW, barHeight, playerColor, true)
	vector.FillRect(screen, x+playerW, y, barWidth-playerW, barHeight, opponentColor, true)

	playerMsg := fmt.Sprintf("%d", int(player))
	ebitenutil.DebugPrintAt(screen, playerMsg, int(x), int(y+barHeight+2))

	opponentMsg := fmt.Sprintf("%d", int(opponent))
	// A simple hack to align right: subtract estimated text width (approx 6px per char)
	ebitenutil.DebugPrintAt(screen, opponentMsg, int(x+barWidth)-len(opponentMsg)*6, int(y+barHeight+2))
}

func drawHUD(screen *ebiten.Image, snap *simulation.Snapshot) {
	mode := "manual"
	switch {
	case snap.Driving:
		mode = "autopilot (driving)"
	case snap.AutoPilot:
		mode = "autopilot"
	}
	msg := fmt.Sprintf("t=%.0fs  you: %s  opponent: %s", snap.Elapsed, mode, snap.OpponentMode)
	if snap.Objective != "" {
		msg += "  objective: " + snap.Objective
	}
	if !snap.Chaos && snap.NextChaos > 0 {
		msg += fmt.Sprintf("  chaos in %.0fs", snap.NextChaos)
	}
	ebitenutil.DebugPrintAt(screen, msg, 10, screen.Bounds().Dy()-20)
}
