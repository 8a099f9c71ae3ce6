package ui

import "github.com/hajimehoshi/ebiten/v2"

// Cursor is the mouse state a widget reacts to during one update.
type Cursor struct {
	X, Y    float64
	Pressed bool
}

// ReadCursor samples the ebiten mouse.
func ReadCursor() Cursor {
	mx, my := ebiten.CursorPosition()
	return Cursor{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}

// In reports whether the cursor lies inside the rectangle.
func (c Cursor) In(x, y, w, h float64) bool {
	return c.X >= x && c.X <= x+w && c.Y >= y && c.Y <= y+h
}
