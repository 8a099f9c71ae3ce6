package main

import (
	"bytes"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
)

// titleFace is the large face for toasts and the pause overlay; nil when the
// font failed to load, in which case callers fall back to the debug font.
var titleFace *text.GoTextFace

func loadFonts() error {
	if titleFace != nil {
		return nil
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return err
	}
	titleFace = &text.GoTextFace{Source: src, Size: 22}
	return nil
}

// drawCentred prints s centred on (x,y) in the title face.
func drawCentred(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.LineSpacing = titleFace.Size * 1.3
	text.Draw(screen, s, titleFace, op)
}
