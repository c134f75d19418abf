package fireworks

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/wand-fireworks/internal/config"
)

// Firework is either a rising shell that explodes at its apex or a spell
// burst that explodes where it is created.
type Firework struct {
	X, Y             float64
	TargetX, TargetY float64
	VX, VY           float64
	Color            color.RGBA
	Size             float64

	spell     bool
	exploded  bool
	particles []*Particle

	cfg *config.Fireworks
	rng Random
}

// NewShell launches a normal firework from a random spot along the bottom
// edge of a width×height surface.
func NewShell(width, height float64, cfg *config.Fireworks, rng Random) *Firework {
	x := rng.Float64() * width
	return NewShellFrom(x, height, x, height/2, cfg, rng)
}

// NewShellFrom launches a normal firework from (x, y). The target only
// documents the intended burst height; the launch velocity is random.
func NewShellFrom(x, y, targetX, targetY float64, cfg *config.Fireworks, rng Random) *Firework {
	f := &Firework{
		X:       x,
		Y:       y,
		TargetX: targetX,
		TargetY: targetY,
		Size:    cfg.ShellSize,
		cfg:     cfg,
		rng:     rng,
	}
	f.VX = rng.Float64()*cfg.DriftRange - cfg.DriftRange/2
	f.VY = -(rng.Float64()*cfg.LiftRange + cfg.LiftMin)
	f.Color = cfg.Palette[pick(rng, len(cfg.Palette))]
	return f
}

// NewBurst creates a spell firework that has already exploded at (x, y).
func NewBurst(x, y float64, cfg *config.Fireworks, rng Random) *Firework {
	f := &Firework{
		X:       x,
		Y:       y,
		TargetX: x,
		TargetY: y,
		Size:    cfg.ShellSize,
		spell:   true,
		cfg:     cfg,
		rng:     rng,
	}
	angle := rng.Float64() * 2 * math.Pi
	speed := cfg.FastSpeedMin + rng.Float64()*cfg.FastSpeedSpan
	f.VX = math.Cos(angle) * speed
	f.VY = math.Sin(angle) * speed
	f.Explode(true)
	return f
}

// Exploded reports whether the firework has burst.
func (f *Firework) Exploded() bool { return f.exploded }

// Spell reports whether this is a spell burst.
func (f *Firework) Spell() bool { return f.spell }

// Particles returns the live particles. The slice is owned by f.
func (f *Firework) Particles() []*Particle { return f.particles }

// Done reports whether f has burst and every particle has faded.
func (f *Firework) Done() bool { return f.exploded && len(f.particles) == 0 }

// Explode bursts f into particles at its current position. Only the first
// call has any effect.
func (f *Firework) Explode(spell bool) {
	if f.exploded {
		return
	}
	f.exploded = true

	n := f.cfg.ShellParticles
	if spell {
		n = f.cfg.BurstParticles
	}
	f.particles = make([]*Particle, 0, n)
	for i := 0; i < n; i++ {
		c := f.Color
		if spell {
			c = f.cfg.SpellPalette[pick(f.rng, len(f.cfg.SpellPalette))]
		}
		f.particles = append(f.particles, newParticle(f.X, f.Y, c, spell, f.cfg, f.rng))
	}
}

// Update rises the shell until its apex, then advances the particles and
// drops the ones that have faded.
func (f *Firework) Update() {
	if !f.exploded {
		f.VY += f.cfg.Gravity
		f.X += f.VX
		f.Y += f.VY
		if f.VY >= 0 {
			f.Explode(false)
		}
	}

	live := f.particles[:0]
	for _, p := range f.particles {
		p.Update()
		if !p.Dead() {
			live = append(live, p)
		}
	}
	clear(f.particles[len(live):])
	f.particles = live
}

func (f *Firework) Draw(dst *ebiten.Image) {
	if !f.exploded {
		vector.DrawFilledCircle(dst, float32(f.X), float32(f.Y), float32(f.Size), f.Color, true)
	}
	for _, p := range f.particles {
		p.Draw(dst)
	}
}

func pick(rng Random, n int) int {
	i := int(rng.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
