package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	placeholderBackground = color.RGBA{R: 249, G: 250, B: 251, A: 255}
	placeholderBorder     = color.RGBA{R: 209, G: 213, B: 219, A: 255}
	placeholderText       = color.RGBA{R: 107, G: 114, B: 128, A: 255}
)

// placeholderImage draws a light panel with a dashed border and centred text.
func placeholderImage(w, h int, text string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBackground), image.Point{}, draw.Src)

	const inset, dash = 8, 6
	for x := inset; x < w-inset; x++ {
		if (x/dash)%2 == 0 {
			img.SetRGBA(x, inset, placeholderBorder)
			img.SetRGBA(x, h-inset-1, placeholderBorder)
		}
	}
	for y := inset; y < h-inset; y++ {
		if (y/dash)%2 == 0 {
			img.SetRGBA(inset, y, placeholderBorder)
			img.SetRGBA(w-inset-1, y, placeholderBorder)
		}
	}

	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(placeholderText), Face: face}
	tw := dr.MeasureString(text).Ceil()
	x := (w - tw) / 2
	y := (h + face.Metrics().Ascent.Ceil()) / 2
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)

	return img
}
