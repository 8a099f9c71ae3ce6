package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	margin        = 10.0
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Handle(c Cursor) bool
	Draw(screen *ebiten.Image)
	GetHeight() float64
	// place moves the widget to the top of its slot.
	place(x, y float64)
	label() (text string, beside bool)
}

// SliderWrapper wraps Slider to implement UIWidget
type SliderWrapper struct {
	*Slider
}

func (s *SliderWrapper) GetHeight() float64 {
	return s.H + 25 // Slider height + label space
}

func (s *SliderWrapper) place(x, y float64) { s.X, s.Y = x, y+15 }

func (s *SliderWrapper) label() (string, bool) { return s.Label, false }

// CheckboxWrapper wraps Checkbox to implement UIWidget
type CheckboxWrapper struct {
	*Checkbox
}

func (c *CheckboxWrapper) GetHeight() float64 {
	return c.Size + 8 // Checkbox size + small margin
}

func (c *CheckboxWrapper) place(x, y float64) { c.X, c.Y = x, y }

func (c *CheckboxWrapper) label() (string, bool) { return c.Label, true }

// ButtonWrapper wraps Button to implement UIWidget
type ButtonWrapper struct {
	*Button
}

func (b *ButtonWrapper) GetHeight() float64 { return b.Height + 6 }

func (b *ButtonWrapper) place(x, y float64) { b.X, b.Y = x, y }

// label is empty because the button prints its own.
func (b *ButtonWrapper) label() (string, bool) { return "", false }

// UIPanel manages a collection of UI widgets in a scrollable panel of
// collapsible sections.
type UIPanel struct {
	Title         string
	X, Y          float64 // Panel position
	Width, Height float64 // Panel dimensions
	Widgets       []UIWidget
	ScrollOffset  float64 // Current scroll position
	Visible       bool

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA
	TextColor   color.RGBA

	sections []PanelSection
	headerY  []float64
	widgetY  []float64
	shown    []bool
	clicked  bool
}

// PanelSection represents a collapsible section in the panel
type PanelSection struct {
	Title      string
	StartIndex int // Widget index where this section starts
	EndIndex   int // Widget index where this section ends (exclusive)
	Collapsed  bool
}

// NewUIPanel creates a new UI panel
func NewUIPanel(x, y, width, height float64) *UIPanel {
	return &UIPanel{
		Title:       "Controls",
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Visible:     true,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
		TextColor:   color.RGBA{R: 220, G: 220, B: 220, A: 255},
	}
}

// AddSection opens a section; widgets added until EndSection belong to it.
func (p *UIPanel) AddSection(title string) {
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
		EndIndex:   -1,
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	}
}

// Sections returns the sections for inspection.
func (p *UIPanel) Sections() []PanelSection { return p.sections }

// SetCollapsed folds or unfolds section i.
func (p *UIPanel) SetCollapsed(i int, collapsed bool) {
	if i >= 0 && i < len(p.sections) {
		p.sections[i].Collapsed = collapsed
	}
}

func (p *UIPanel) add(w UIWidget) {
	p.Widgets = append(p.Widgets, w)
	p.layout()
}

// AddSlider adds a slider widget to the panel
func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	slider := NewSlider(p.X+margin, p.Y, p.Width-2*margin, label, min, max, value)
	p.add(&SliderWrapper{slider})
	return slider
}

// AddCheckbox adds a checkbox widget to the panel
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	checkbox := NewCheckbox(p.X+margin, p.Y, label, value)
	p.add(&CheckboxWrapper{checkbox})
	return checkbox
}

// AddButton adds a full-width button to the panel
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	button := NewButton(p.X+margin, p.Y, p.Width-2*margin, 24, label, onClick)
	p.add(&ButtonWrapper{button})
	return button
}

func (p *UIPanel) sectionEnd(i int) int {
	if end := p.sections[i].EndIndex; end >= 0 {
		return end
	}
	return len(p.Widgets)
}

// layout assigns slot positions from the scroll offset and collapsed state.
func (p *UIPanel) layout() {
	p.headerY = p.headerY[:0]
	p.widgetY = append(p.widgetY[:0], make([]float64, len(p.Widgets))...)
	p.shown = append(p.shown[:0], make([]bool, len(p.Widgets))...)

	y := p.Y + titleHeight - p.ScrollOffset
	for i, section := range p.sections {
		p.headerY = append(p.headerY, y)
		y += sectionHeight
		if section.Collapsed {
			continue
		}
		for w := section.StartIndex; w < p.sectionEnd(i) && w < len(p.Widgets); w++ {
			widget := p.Widgets[w]
			p.widgetY[w] = y
			p.shown[w] = y >= p.Y+titleHeight-5 && y+widget.GetHeight() <= p.Y+p.Height+5
			widget.place(p.X+margin, y)
			y += widget.GetHeight()
		}
	}
}

// ContentHeight is the height of everything in the panel, unscrolled.
func (p *UIPanel) ContentHeight() float64 {
	height := titleHeight + float64(len(p.sections))*sectionHeight
	for i, section := range p.sections {
		if section.Collapsed {
			continue
		}
		for w := section.StartIndex; w < p.sectionEnd(i) && w < len(p.Widgets); w++ {
			height += p.Widgets[w].GetHeight()
		}
	}
	return height
}

// Contains reports whether a screen point lies on the visible panel.
func (p *UIPanel) Contains(x, y float64) bool {
	return p.Visible && Cursor{X: x, Y: y}.In(p.X, p.Y, p.Width, p.Height)
}

// Scroll moves the content by dy wheel notches, clamped to the content.
func (p *UIPanel) Scroll(dy float64) {
	if dy == 0 {
		return
	}
	p.ScrollOffset -= dy * 20
	maxScroll := max(0, p.ContentHeight()-p.Height+40)
	p.ScrollOffset = max(0, min(maxScroll, p.ScrollOffset))
}

// Handle routes the cursor to headers and shown widgets. It reports whether
// the cursor is over the panel, so callers can ignore the click elsewhere.
func (p *UIPanel) Handle(c Cursor) bool {
	if !p.Visible {
		return false
	}
	p.layout()

	if !c.Pressed {
		p.clicked = false
	} else if !p.clicked {
		for i, hy := range p.headerY {
			if c.In(p.X+5, hy, p.Width-10, sectionHeight-5) {
				p.clicked = true
				p.sections[i].Collapsed = !p.sections[i].Collapsed
				p.layout()
				break
			}
		}
	}

	for i, widget := range p.Widgets {
		if p.shown[i] {
			widget.Handle(c)
		}
	}
	return p.Contains(c.X, c.Y)
}

// Update handles input for all widgets
func (p *UIPanel) Update() bool {
	_, dy := ebiten.Wheel()
	c := ReadCursor()
	if p.Contains(c.X, c.Y) {
		p.Scroll(dy)
	}
	return p.Handle(c)
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	if !p.Visible {
		return
	}
	p.layout()

	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+margin), int(p.Y+5))

	sectionBG := color.RGBA{R: 60, G: 60, B: 70, A: 255}
	for i, section := range p.sections {
		hy := p.headerY[i]
		if hy < p.Y+titleHeight-5 || hy > p.Y+p.Height-sectionHeight {
			continue
		}
		vector.FillRect(screen,
			float32(p.X+5), float32(hy),
			float32(p.Width-10), sectionHeight-5,
			sectionBG, true)
		marker := "- "
		if section.Collapsed {
			marker = "+ "
		}
		ebitenutil.DebugPrintAt(screen, marker+section.Title, int(p.X+margin), int(hy+2))
	}

	for i, widget := range p.Widgets {
		if !p.shown[i] {
			continue
		}
		if text, beside := widget.label(); text != "" {
			if beside {
				ebitenutil.DebugPrintAt(screen, text, int(p.X+margin+24), int(p.widgetY[i]))
			} else {
				ebitenutil.DebugPrintAt(screen, text, int(p.X+margin), int(p.widgetY[i]-2))
			}
		}
		widget.Draw(screen)
	}
}
