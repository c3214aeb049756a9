package render

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var placeholderBG = color.RGBA{R: 245, G: 245, B: 245, A: 255}

// Placeholder returns a plain w x h image with text centred on it, shown while no chart exists.
func Placeholder(w, h int, text string) image.Image {
	if w <= 0 || h <= 0 {
		w, h = DefaultWidth, DefaultHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBG), image.Point{}, draw.Src)
	if strings.TrimSpace(text) == "" {
		return img
	}
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 90, G: 90, B: 90, A: 255}), Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := (w - tw) / 2
	if x < 4 {
		x = 4
	}
	y := h/2 + face.Metrics().Ascent.Ceil()/2
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
	return img
}
