package game

import (
	"image/color"
	"math"

	"github.com/crazy3lf/colorconv"
)

// hueColor converts a hue in degrees (any range) to a saturated color.
func hueColor(hue, s, v float64) color.RGBA {
	r, g, b, err := colorconv.HSVToRGB(math.Mod(math.Mod(hue, 360)+360, 360), s, v)
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
