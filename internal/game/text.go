package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Debug font cell size.
const (
	glyphW = 6
	glyphH = 16
)

// textCache renders debug-font strings once and scales them on draw.
type textCache struct {
	images map[string]*ebiten.Image
}

func newTextCache() *textCache {
	return &textCache{images: map[string]*ebiten.Image{}}
}

func (c *textCache) image(s string) *ebiten.Image {
	if img, ok := c.images[s]; ok {
		return img
	}
	img := ebiten.NewImage(max(1, len(s)*glyphW), glyphH)
	ebitenutil.DebugPrint(img, s)
	c.images[s] = img
	return img
}

// drawCentered draws s centered on cx with its top at y.
func (c *textCache) drawCentered(dst *ebiten.Image, s string, cx, y, scale float64, clr color.Color, alpha float64) {
	if s == "" || alpha <= 0 {
		return
	}
	img := c.image(s)
	w := float64(len(s)*glyphW) * scale

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx-w/2, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(clamp01(alpha)))
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(img, op)
}

// textHeight is the drawn height of one line at scale.
func textHeight(scale float64) float64 {
	return glyphH * scale
}
