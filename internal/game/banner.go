package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/iburimskiy/wand-fireworks/internal/countdown"
)

const (
	labelScale    = 2.0
	timerScale    = 6.0
	secondsScale  = 8.0
	revealScale   = 4.0
	hintScale     = 2.0
	contentScale  = 5.0
	contentRise   = 24.0
	contentFadeIn = 1.2 // seconds
	hintText      = "Click the wand"
)

var (
	textWhite  = color.RGBA{R: 0xf5, G: 0xf0, B: 0xe6, A: 0xff}
	textAccent = color.RGBA{R: 0xee, G: 0xba, B: 0x30, A: 0xff}
)

// banner draws the countdown above the wand.
type banner struct {
	display countdown.Display
}

func (b *banner) draw(dst *ebiten.Image, text *textCache, t float64) {
	w := float64(dst.Bounds().Dx())
	cx := w / 2
	y := float64(dst.Bounds().Dy()) * 0.12

	d := b.display
	if d.Celebrate {
		// pulse and cycle hue like the page's reveal animation
		scale := revealScale + 0.3*math.Sin(t*3)
		text.drawCentered(dst, d.Text, cx, y, scale, hueColor(t*90, 0.45, 1), 1)
		return
	}

	text.drawCentered(dst, d.Label, cx, y, labelScale, textWhite, 0.85)
	y += textHeight(labelScale) + 6
	if d.Emphasis {
		text.drawCentered(dst, d.Text, cx, y, secondsScale, textAccent, 1)
		return
	}
	text.drawCentered(dst, d.Text, cx, y, timerScale, textWhite, 1)
}

// hint invites the click once the wand unlocks.
type hint struct {
	visible bool
}

func (h *hint) draw(dst *ebiten.Image, text *textCache, x, y, t float64) {
	if !h.visible {
		return
	}
	text.drawCentered(dst, hintText, x, y, hintScale, textWhite, 0.6+0.4*math.Sin(t*4))
}

// content is the message hidden until the spell lands.
type content struct {
	message  string
	revealed bool
	alpha    float64
	rise     float64
	fadeIn   *gween.Tween
	riseIn   *gween.Tween
}

func (c *content) reveal() {
	if c.revealed {
		return
	}
	c.revealed = true
	c.rise = contentRise
	c.fadeIn = gween.New(0, 1, contentFadeIn, ease.OutCubic)
	c.riseIn = gween.New(contentRise, 0, contentFadeIn, ease.OutCubic)
}

func (c *content) update(dt float64) {
	if c.fadeIn != nil {
		v, done := c.fadeIn.Update(float32(dt))
		c.alpha = clamp01(float64(v))
		if done {
			c.fadeIn = nil
		}
	}
	if c.riseIn != nil {
		v, done := c.riseIn.Update(float32(dt))
		c.rise = float64(v)
		if done {
			c.riseIn = nil
		}
	}
}

func (c *content) draw(dst *ebiten.Image, text *textCache, t float64) {
	if !c.revealed {
		return
	}
	b := dst.Bounds()
	y := float64(b.Dy())*0.42 + c.rise
	// soft gold glow behind the message
	glow := 0.35 + 0.15*math.Sin(t*2)
	text.drawCentered(dst, c.message, float64(b.Dx())/2+2, y+2, contentScale, textAccent, c.alpha*glow)
	text.drawCentered(dst, c.message, float64(b.Dx())/2, y, contentScale, textWhite, c.alpha)
}
