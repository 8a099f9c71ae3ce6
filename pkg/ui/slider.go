package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider is a horizontal value picker. A drag that starts inside the bar
// keeps tracking the cursor until the button is released.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	// Step rounds the value when positive.
	Step     float64
	X, Y     float64
	W, H     float64
	OnChange func(float64)
	dragging bool
}

// NewSlider creates a slider of width w with the default bar height.
func NewSlider(x, y, w float64, label string, min, max, value float64) *Slider {
	s := &Slider{Label: label, Min: min, Max: max, X: x, Y: y, W: w, H: 12}
	s.Value = s.clamp(value)
	return s
}

func (s *Slider) clamp(v float64) float64 {
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Ratio is the value position along the bar, in [0, 1].
func (s *Slider) Ratio() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}

// Handle reacts to the cursor and reports whether the value changed.
func (s *Slider) Handle(c Cursor) bool {
	if !c.Pressed {
		s.dragging = false
		return false
	}
	if !s.dragging && !c.In(s.X, s.Y, s.W, s.H) {
		return false
	}
	s.dragging = true
	v := s.clamp(s.Min + (c.X-s.X)/s.W*(s.Max-s.Min))
	if v == s.Value {
		return false
	}
	s.Value = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
	return true
}

// Update checks for mouse interaction
func (s *Slider) Update() { s.Handle(ReadCursor()) }

// Draw renders the slider
func (s *Slider) Draw(screen *ebiten.Image) {
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*s.Ratio()), float32(s.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.2f", s.Value), int(s.X+s.W-40), int(s.Y-15))
}
