package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lao-tseu-is-alive/go-swarm-skirmish/pkg/entity"
)

var (
	bgDark        = color.RGBA{R: 0x07, G: 0x10, B: 0x17, A: 0xff}
	bgLight       = color.RGBA{R: 0x0a, G: 0x14, B: 0x1c, A: 0xff}
	playerColor   = color.RGBA{R: 0x7a, G: 0xe4, B: 0xff, A: 0xff}
	opponentColor = color.RGBA{R: 0xff, G: 0x7a, B: 0xdf, A: 0xff}
	freeColor     = color.RGBA{R: 0xf2, G: 0xf7, B: 0xff, A: 0xff}
	stormColor    = color.RGBA{R: 0xc8, G: 0xd2, B: 0xff, A: 0xff}
)

// Pre-rendered sprites for batched drawing, built on the first frame.
var (
	whiteImage *ebiten.Image
	dotSprite  *ebiten.Image
	glowSprite *ebiten.Image
)

func teamColor(t entity.Team) color.RGBA {
	switch t {
	case entity.Player:
		return playerColor
	case entity.Opponent:
		return opponentColor
	}
	return freeColor
}

// fade scales c to alpha a in [0,1], premultiplied as ebiten expects.
func fade(c color.RGBA, a float64) color.RGBA {
	a = max(0, min(1, a))
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func loadSprites() {
	if whiteImage != nil {
		return
	}
	whiteImage = ebiten.NewImage(3, 3)
	whiteImage.Fill(color.White)

	// Legend:
	// . = Transparent
	// W = White core
	// S = Soft rim
	dotSprite = generateSprite([]string{
		".SSS.",
		"SWWWS",
		"SWWWS",
		"SWWWS",
		".SSS.",
	}, map[rune]color.RGBA{
		'W': {R: 255, G: 255, B: 255, A: 255},
		'S': {R: 120, G: 120, B: 120, A: 120},
	})

	glowSprite = generateGlow(32)
}

// generateSprite converts an ASCII grid into an Ebiten image
func generateSprite(design []string, palette map[rune]color.RGBA) *ebiten.Image {
	h := len(design)
	w := len(design[0])
	img := ebiten.NewImage(w, h)

	for y, row := range design {
		for x, char := range row {
			if col, ok := palette[char]; ok {
				img.Set(x, y, col)
			}
		}
	}
	return img
}

// generateGlow is a white radial falloff of the given diameter, tinted at draw time.
func generateGlow(size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	c := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-c, float64(y)-c) / c
			if d >= 1 {
				continue
			}
			a := uint8(255 * (1 - d) * (1 - d))
			img.Set(x, y, color.RGBA{R: a, G: a, B: a, A: a})
		}
	}
	return img
}

// drawSprite centres img at (x,y), scaled to diameter and tinted by c.
func drawSprite(screen, img *ebiten.Image, x, y, diameter float64, c color.RGBA, alpha float32) {
	op := &ebiten.DrawImageOptions{}
	w := float64(img.Bounds().Dx())
	op.GeoM.Translate(-w/2, -w/2)
	op.GeoM.Scale(diameter/w, diameter/w)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(alpha)
	op.Blend = ebiten.BlendLighter
	screen.DrawImage(img, op)
}

// drawBoid fills the dart shape of a boid: tip, right wing, notch, left wing.
func drawBoid(screen *ebiten.Image, x, y, angle, size float64, c color.RGBA, alpha float32) {
	const wing = 4.0
	cos, sin := math.Cos(angle), math.Sin(angle)
	// local frame: +x forward, +y right
	point := func(fx, fy float64) (float32, float32) {
		return float32(x + fx*cos - fy*sin), float32(y + fx*sin + fy*cos)
	}
	tipX, tipY := point(size, 0)
	rightX, rightY := point(-size*0.8, wing)
	notchX, notchY := point(-size*0.4, 0)
	leftX, leftY := point(-size*0.8, -wing)

	r := float32(c.R) / 255 * alpha
	g := float32(c.G) / 255 * alpha
	b := float32(c.B) / 255 * alpha
	vertex := func(dx, dy float32) ebiten.Vertex {
		return ebiten.Vertex{
			DstX: dx, DstY: dy,
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: alpha,
		}
	}
	vertices := []ebiten.Vertex{
		vertex(tipX, tipY),
		vertex(rightX, rightY),
		vertex(notchX, notchY),
		vertex(leftX, leftY),
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	screen.DrawTriangles(vertices, indices, whiteImage, &ebiten.DrawTrianglesOptions{})
}
