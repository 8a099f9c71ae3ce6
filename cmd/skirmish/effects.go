package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/simulation"
)

type effectKind int

const (
	effectTap effectKind = iota
	effectPulse
	effectHold
	effectExplosion
)

// effect is a ring that grows and fades where something happened.
type effect struct {
	kind      effectKind
	pos       geometry.Vector2D
	from, to  float64 // radius at birth and death
	width     float32
	lifetime  float64 // seconds
	elapsed   float64
	clr       color.RGBA
	alphaPeak float64
}

func (e *effect) progress() float64 {
	if e.lifetime <= 0 {
		return 1
	}
	return min(1, e.elapsed/e.lifetime)
}

func (e *effect) radius() float64 { return e.from + (e.to-e.from)*e.progress() }

func (e *effect) alpha() float64 { return e.alphaPeak * (1 - e.progress()) }

// Effects holds the transient rings drawn over the arena.
type Effects struct {
	list []effect
	// holdAge throttles the ripples left while the pointer is held.
	holdAge float64
}

func (fx *Effects) add(e effect) { fx.list = append(fx.list, e) }

// Tap is the ripple for a single press.
func (fx *Effects) Tap(p geometry.Vector2D) {
	fx.add(effect{kind: effectTap, pos: p, from: 4, to: 42, width: 2, lifetime: 0.45, clr: playerColor, alphaPeak: 0.9})
}

// Pulse marks a double press, the pause toggle.
func (fx *Effects) Pulse(p geometry.Vector2D) {
	fx.add(effect{kind: effectPulse, pos: p, from: 10, to: 90, width: 4, lifetime: 0.7, clr: freeColor, alphaPeak: 0.8})
}

// Hold leaves a faint ripple at most every 0.2s while the pointer drags.
func (fx *Effects) Hold(p geometry.Vector2D, dtS float64) {
	fx.holdAge += dtS
	if fx.holdAge < 0.2 {
		return
	}
	fx.holdAge = 0
	fx.add(effect{kind: effectHold, pos: p, from: 2, to: 22, width: 1.5, lifetime: 0.35, clr: opponentColor, alphaPeak: 0.5})
}

// Explosion bursts at p in the colour of team t.
func (fx *Effects) Explosion(p geometry.Vector2D, t entity.Team, size float64) {
	c := teamColor(t)
	fx.add(effect{kind: effectExplosion, pos: p, from: size * 0.2, to: size, width: 3, lifetime: 0.6, clr: c, alphaPeak: 1})
	fx.add(effect{kind: effectExplosion, pos: p, from: 0, to: size * 0.6, width: 1.5, lifetime: 0.4, clr: freeColor, alphaPeak: 0.6})
}

// FromEvents spawns the rings that accompany match events.
func (fx *Effects) FromEvents(events []simulation.Event) {
	for _, e := range events {
		switch e.Kind {
		case simulation.EventLevelUp:
			fx.Explosion(e.Pos, e.Team, 120)
		case simulation.EventSteal:
			fx.Explosion(e.Pos, e.Team, 18)
		case simulation.EventDrop:
			fx.Explosion(e.Pos, e.Team, 40)
		case simulation.EventChaos:
			fx.Explosion(e.Pos, entity.Neutral, 160)
		}
	}
}

// Update ages every ring and drops the expired ones.
func (fx *Effects) Update(dtS float64) {
	kept := fx.list[:0]
	for _, e := range fx.list {
		e.elapsed += dtS
		if e.elapsed < e.lifetime {
			kept = append(kept, e)
		}
	}
	fx.list = kept
}

// Len is the number of live rings.
func (fx *Effects) Len() int { return len(fx.list) }

func (fx *Effects) Draw(screen *ebiten.Image) {
	for i := range fx.list {
		e := &fx.list[i]
		vector.StrokeCircle(screen,
			float32(e.pos.X), float32(e.pos.Y),
			float32(e.radius()), e.width,
			fade(e.clr, e.alpha()), true)
	}
}

// toast is a short centred message.
type toast struct {
	text string
	left float64
}

// Toasts queues messages and shows the newest for a while.
type Toasts struct {
	list []toast
}

// Push shows text for seconds.
func (ts *Toasts) Push(text string, seconds float64) {
	ts.list = append(ts.list, toast{text: text, left: seconds})
	if len(ts.list) > 4 {
		ts.list = ts.list[len(ts.list)-4:]
	}
}

// FromEvents raises toasts for the events worth reading.
func (ts *Toasts) FromEvents(events []simulation.Event) {
	for _, e := range events {
		switch e.Kind {
		case simulation.EventLevelUp:
			if e.Team == entity.Player {
				ts.Push("LEVEL UP!", 1.8)
			} else {
				ts.Push("Opponent leveled up", 1.8)
			}
		case simulation.EventChaos:
			ts.Push("CHAOS!", 1.5)
		case simulation.EventModeChange:
			ts.Push("Opponent: "+e.Detail, 1.2)
		}
	}
}

func (ts *Toasts) Update(dtS float64) {
	kept := ts.list[:0]
	for _, t := range ts.list {
		t.left -= dtS
		if t.left > 0 {
			kept = append(kept, t)
		}
	}
	ts.list = kept
}

// Lines are the live messages, oldest first.
func (ts *Toasts) Lines() []string {
	out := make([]string, len(ts.list))
	for i, t := range ts.list {
		out[i] = t.text
	}
	return out
}
