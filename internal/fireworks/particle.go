package fireworks

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/wand-fireworks/internal/config"
)

// Random is the source of uniform values in [0,1). *rand.Rand satisfies it.
type Random interface {
	Float64() float64
}

// Particle is a single fading spark. It belongs to the Firework that
// spawned it.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Color  color.RGBA
	Alpha  float64
	Decay  float64

	gravity float64
}

func newParticle(x, y float64, c color.RGBA, fast bool, cfg *config.Fireworks, rng Random) *Particle {
	angle := rng.Float64() * 2 * math.Pi
	var speed float64
	if fast {
		speed = cfg.FastSpeedMin + rng.Float64()*cfg.FastSpeedSpan
	} else {
		speed = rng.Float64() * cfg.SlowSpeedMax
	}
	return &Particle{
		X:       x,
		Y:       y,
		VX:      math.Cos(angle) * speed,
		VY:      math.Sin(angle) * speed,
		Size:    cfg.SizeMin + rng.Float64()*cfg.SizeSpan,
		Color:   c,
		Alpha:   1,
		Decay:   cfg.DecayMin + rng.Float64()*cfg.DecaySpan,
		gravity: cfg.Gravity,
	}
}

// Update advances one tick: gravity, motion, fade.
func (p *Particle) Update() {
	p.VY += p.gravity
	p.X += p.VX
	p.Y += p.VY
	p.Alpha -= p.Decay
}

// Dead reports whether the particle has fully faded.
func (p *Particle) Dead() bool { return p.Alpha <= 0 }

// Draw fills a circle at the particle position. The opacity is baked into
// the color, so nothing on dst outlives the call.
func (p *Particle) Draw(dst *ebiten.Image) {
	vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), float32(p.Size), fade(p.Color, p.Alpha), true)
}

// fade scales c by alpha, clamped to [0,1].
func fade(c color.RGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * alpha)}
}
