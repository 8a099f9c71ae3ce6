// Package tui draws match snapshots as terminal cells with tcell and turns
// key presses into match commands.
package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

// hudRows is the number of status rows under the field.
const hudRows = 2

var (
	teamStyle = [2]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue),
		tcell.StyleDefault.Foreground(tcell.ColorOrangeRed),
	}
	auraStyle = [2]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.NewRGBColor(20, 40, 90)),
		tcell.StyleDefault.Foreground(tcell.NewRGBColor(90, 30, 20)),
	}
	neutralStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stormStyle    = tcell.StyleDefault.Foreground(tcell.ColorMediumPurple)
	waypointStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	cursorStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	hudStyle      = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	pausedStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// arrows indexes heading octants starting east, clockwise in screen space.
var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

// Viewport maps world coordinates onto the terminal field above the HUD.
type Viewport struct {
	Cols, Rows    int
	Width, Height float64
}

// NewViewport sizes the field for a terminal of cols×rows cells.
func NewViewport(cols, rows int, width, height float64) Viewport {
	return Viewport{Cols: cols, Rows: max(1, rows-hudRows), Width: width, Height: height}
}

// Cell returns the cell holding world point p, and false when p is off the field.
func (v Viewport) Cell(p geometry.Vector2D) (x, y int, ok bool) {
	if v.Width <= 0 || v.Height <= 0 {
		return 0, 0, false
	}
	x = int(math.Floor(p.X / v.Width * float64(v.Cols)))
	y = int(math.Floor(p.Y / v.Height * float64(v.Rows)))
	return x, y, x >= 0 && y >= 0 && x < v.Cols && y < v.Rows
}

// World returns the world point at the centre of cell (x, y).
func (v Viewport) World(x, y int) geometry.Vector2D {
	return geometry.Vector2D{
		X: (float64(x) + 0.5) * v.Width / float64(v.Cols),
		Y: (float64(y) + 0.5) * v.Height / float64(v.Rows),
	}
}

// Arrow picks the glyph pointing along vel.
func Arrow(vel geometry.Vector2D) rune {
	a := math.Atan2(vel.Y, vel.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return arrows[int(math.Round(a/(math.Pi/4)))%8]
}

// Draw renders snap onto screen. cursor is the cell of the keyboard goal.
func Draw(screen tcell.Screen, snap *simulation.Snapshot, cursorX, cursorY int, pointerActive bool) {
	screen.Clear()
	cols, rows := screen.Size()
	v := NewViewport(cols, rows, snap.Width, snap.Height)

	for _, b := range snap.Bases {
		drawBase(screen, v, b)
	}
	for _, st := range snap.Storms {
		drawDisc(screen, v, st.Pos, st.Radius, '░', stormStyle)
	}
	for _, wp := range snap.Waypoints {
		if x, y, ok := v.Cell(wp.Pos); ok && wp.Active {
			screen.SetContent(x, y, '+', nil, waypointStyle)
		}
	}
	for _, d := range snap.Dots {
		if d.State == entity.Orbit {
			continue
		}
		style := neutralStyle
		if d.Owner.Valid() {
			style = teamStyle[d.Owner]
		}
		if x, y, ok := v.Cell(d.Pos); ok {
			screen.SetContent(x, y, '•', nil, style)
		}
	}
	for _, b := range snap.Boids {
		x, y, ok := v.Cell(b.Pos)
		if !ok || !b.Team.Valid() {
			continue
		}
		style := teamStyle[b.Team]
		r := Arrow(b.Vel)
		switch {
		case b.Carrying:
			r = '◆'
			style = style.Bold(true)
		case b.Stunned:
			style = style.Dim(true)
		}
		screen.SetContent(x, y, r, nil, style)
	}
	for _, b := range snap.Bases {
		if x, y, ok := v.Cell(b.Pos); ok && b.Team.Valid() {
			screen.SetContent(x, y, rune('0'+min(9, b.Level)), nil, teamStyle[b.Team].Reverse(true))
		}
	}

	if pointerActive {
		screen.SetContent(cursorX, cursorY, '×', nil, cursorStyle)
	} else {
		screen.SetContent(cursorX, cursorY, ' ', nil, cursorStyle)
	}
	drawHUD(screen, v, snap)
	screen.Show()
}

func drawBase(screen tcell.Screen, v Viewport, b simulation.BaseView) {
	if !b.Team.Valid() {
		return
	}
	drawDisc(screen, v, b.Pos, b.AuraRadius, '·', auraStyle[b.Team])
	drawDisc(screen, v, b.Pos, b.Radius, '▒', teamStyle[b.Team])
}

// drawDisc fills every cell whose centre lies inside the circle.
func drawDisc(screen tcell.Screen, v Viewport, centre geometry.Vector2D, radius float64, r rune, style tcell.Style) {
	x0, y0, _ := v.Cell(centre.Sub(geometry.Vector2D{X: radius, Y: radius}))
	x1, y1, _ := v.Cell(centre.Add(geometry.Vector2D{X: radius, Y: radius}))
	r2 := radius * radius
	for y := max(0, y0); y <= min(v.Rows-1, y1); y++ {
		for x := max(0, x0); x <= min(v.Cols-1, x1); x++ {
			if v.World(x, y).DistanceSquaredTo(centre) <= r2 {
				screen.SetContent(x, y, r, nil, style)
			}
		}
	}
}

// StatusLine is the first HUD row.
func StatusLine(snap *simulation.Snapshot) string {
	boids, carriers := snap.Counts()
	p, o := snap.Bases[entity.Player], snap.Bases[entity.Opponent]
	return fmt.Sprintf("P L%d %d/%d stock, %d boids (%d carrying) | O L%d %d/%d stock, %d boids (%d carrying) | %s",
		p.Level, p.Stock, p.Desired, boids[entity.Player], carriers[entity.Player],
		o.Level, o.Stock, o.Desired, boids[entity.Opponent], carriers[entity.Opponent],
		snap.OpponentMode)
}

// HelpLine is the second HUD row.
func HelpLine(snap *simulation.Snapshot) string {
	pilot := "off"
	switch {
	case snap.Driving:
		pilot = "driving: " + snap.Objective
	case snap.AutoPilot:
		pilot = "on"
	}
	return fmt.Sprintf("t=%.0fs autopilot %s | arrows move, space hold, w waypoint, c clear, a autopilot, l level, x chaos, p pause, q quit",
		snap.Elapsed, pilot)
}

func drawHUD(screen tcell.Screen, v Viewport, snap *simulation.Snapshot) {
	putString(screen, 0, v.Rows, StatusLine(snap), hudStyle)
	putString(screen, 0, v.Rows+1, HelpLine(snap), hudStyle)
	if snap.Paused {
		msg := " PAUSED "
		putString(screen, max(0, (v.Cols-len(msg))/2), v.Rows/2, msg, pausedStyle)
	}
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
