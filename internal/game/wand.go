package game

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	wandLength    = 150.0
	wandThickness = 8.0
	wandTilt      = 0.35 // radians clockwise from vertical at rest
	wandHitPad    = 24.0
	wandFadeOut   = 0.4 // seconds
)

var (
	wandShaft  = color.RGBA{R: 0x5a, G: 0x3a, B: 0x22, A: 0xff}
	wandHandle = color.RGBA{R: 0x3b, G: 0x24, B: 0x14, A: 0xff}
	wandLocked = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	wandGlow   = color.RGBA{R: 0xff, G: 0xf7, B: 0xc0, A: 0xff}
)

// flourishStep is one keyframe of the swish-and-flick.
type flourishStep struct {
	to       float64 // rotation offset, radians
	fraction float64 // share of the whole flourish
	easing   ease.TweenFunc
}

// The flick lands at 50% of the flourish, where the burst fires.
var flourish = []flourishStep{
	{to: -0.5, fraction: 0.36, easing: ease.InOutSine},
	{to: 0.7, fraction: 0.14, easing: ease.InQuad},
	{to: 0, fraction: 0.50, easing: ease.OutElastic},
}

type rect struct {
	Left, Top, Width, Height float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.Left && x <= r.Left+r.Width && y >= r.Top && y <= r.Top+r.Height
}

// wand is pivoted at its handle end and rotates about it.
type wand struct {
	pivotX, pivotY float64
	offset         float64 // flourish rotation on top of wandTilt
	alpha          float64
	locked         bool
	hidden         bool
	glow           float64

	steps []*gween.Tween
	step  int
	fade  *gween.Tween
}

func newWand() *wand {
	return &wand{alpha: 1, locked: true}
}

// place centers the wand for a width×height window.
func (w *wand) place(width, height int) {
	w.pivotX = float64(width)/2 - 40
	w.pivotY = float64(height)*0.62 + wandLength/2
}

func (w *wand) angle() float64 { return wandTilt + w.offset }

func (w *wand) endpoints() (x0, y0, x1, y1 float64) {
	a := w.angle()
	return w.pivotX, w.pivotY, w.pivotX + wandLength*math.Sin(a), w.pivotY - wandLength*math.Cos(a)
}

// bounds is the axis-aligned box around the rotated wand.
func (w *wand) bounds() rect {
	x0, y0, x1, y1 := w.endpoints()
	pad := wandThickness / 2
	left, right := math.Min(x0, x1)-pad, math.Max(x0, x1)+pad
	top, bottom := math.Min(y0, y1)-pad, math.Max(y0, y1)+pad
	return rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// tip is where the spell leaves the wand, taken from the current bounds.
func (w *wand) tip(offsetX float64) (float64, float64) {
	b := w.bounds()
	return b.Left + b.Width/2 + offsetX, b.Top
}

// hit reports whether (x, y) lands on the padded box around the wand in
// its current pose.
func (w *wand) hit(x, y float64) bool {
	if w.hidden {
		return false
	}
	b := w.bounds()
	b.Left -= wandHitPad
	b.Top -= wandHitPad
	b.Width += 2 * wandHitPad
	b.Height += 2 * wandHitPad
	return b.contains(x, y)
}

// cast starts the swish-and-flick over d.
func (w *wand) cast(d time.Duration) {
	total := d.Seconds()
	from := w.offset
	w.steps = w.steps[:0]
	for _, s := range flourish {
		w.steps = append(w.steps, gween.New(float32(from), float32(s.to), float32(total*s.fraction), s.easing))
		from = s.to
	}
	w.step = 0
}

func (w *wand) flourishing() bool { return w.step < len(w.steps) }

// hide fades the wand out for good.
func (w *wand) hide() {
	if w.hidden {
		return
	}
	w.hidden = true
	w.fade = gween.New(float32(w.alpha), 0, wandFadeOut, ease.InQuad)
}

func (w *wand) update(dt, level float64) {
	if w.flourishing() {
		v, done := w.steps[w.step].Update(float32(dt))
		w.offset = float64(v)
		if done {
			w.step++
		}
	}
	if w.fade != nil {
		v, done := w.fade.Update(float32(dt))
		w.alpha = clamp01(float64(v))
		if done {
			w.fade = nil
		}
	}
	w.glow = level
}

func (w *wand) draw(dst *ebiten.Image, t float64) {
	if w.alpha <= 0 {
		return
	}
	x0, y0, x1, y1 := w.endpoints()

	shaft, handle := wandShaft, wandHandle
	if w.locked {
		shaft, handle = wandLocked, wandLocked
	}

	// handle takes the bottom third
	hx := x0 + (x1-x0)/3
	hy := y0 + (y1-y0)/3
	vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), wandThickness*0.7, withAlpha(shaft, w.alpha), true)
	vector.StrokeLine(dst, float32(x0), float32(y0), float32(hx), float32(hy), wandThickness, withAlpha(handle, w.alpha), true)

	if w.locked {
		return
	}

	// tip sparkle breathes on its own and swells with the sound
	r := 3 + 1.5*math.Sin(t*5) + w.glow*18
	vector.DrawFilledCircle(dst, float32(x1), float32(y1), float32(r+6), withAlpha(wandGlow, 0.25*w.alpha), true)
	vector.DrawFilledCircle(dst, float32(x1), float32(y1), float32(r), withAlpha(wandGlow, 0.9*w.alpha), true)
}

func withAlpha(c color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * clamp01(alpha))}
}
