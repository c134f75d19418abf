package game

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// flash is the full-screen white overlay of the spell. It implements
// spell.Overlay.
type flash struct {
	opacity float64
	fade    *gween.Tween
	removed bool
}

func newFlash(opacity float64) *flash {
	return &flash{opacity: opacity}
}

// FadeOut eases the opacity down to zero over d.
func (f *flash) FadeOut(d time.Duration) {
	f.fade = gween.New(float32(f.opacity), 0, float32(d.Seconds()), ease.OutQuad)
}

// Remove drops the overlay whether or not the fade has finished.
func (f *flash) Remove() {
	f.removed = true
}

func (f *flash) update(dt float64) {
	if f.fade == nil {
		return
	}
	v, done := f.fade.Update(float32(dt))
	f.opacity = clamp01(float64(v))
	if done {
		f.fade = nil
	}
}

func (f *flash) draw(dst *ebiten.Image) {
	if f.removed || f.opacity <= 0 {
		return
	}
	b := dst.Bounds()
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: uint8(f.opacity * 255)}
	vector.DrawFilledRect(dst, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), white, false)
}
