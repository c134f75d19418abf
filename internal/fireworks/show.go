package fireworks

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/wand-fireworks/internal/config"
)

// Show is the animation loop state: the active fireworks and the one-way
// enabled flag that turns on ambient launches.
type Show struct {
	cfg           *config.Fireworks
	rng           Random
	width, height float64
	fireworks     []*Firework
	enabled       bool
	launched      int
}

func NewShow(cfg *config.Fireworks, rng Random, width, height float64) *Show {
	return &Show{cfg: cfg, rng: rng, width: width, height: height}
}

// Resize updates the launch area for new shells.
func (s *Show) Resize(width, height float64) {
	s.width, s.height = width, height
}

// Enable turns on ambient launches. There is no way back.
func (s *Show) Enable() { s.enabled = true }

func (s *Show) Enabled() bool { return s.enabled }

// Launch adds f to the active set.
func (s *Show) Launch(f *Firework) {
	s.fireworks = append(s.fireworks, f)
	s.launched++
}

// Fireworks returns the active set in launch order. The slice is owned by s.
func (s *Show) Fireworks() []*Firework { return s.fireworks }

func (s *Show) Len() int { return len(s.fireworks) }

// Launched counts every firework ever added, ambient or spell.
func (s *Show) Launched() int { return s.launched }

// Step runs one tick: maybe launch a shell, update everything, drop the
// fireworks that are done.
func (s *Show) Step() {
	if s.enabled && s.rng.Float64() < s.cfg.SpawnChance {
		s.Launch(NewShell(s.width, s.height, s.cfg, s.rng))
	}

	live := s.fireworks[:0]
	for _, f := range s.fireworks {
		f.Update()
		if !f.Done() {
			live = append(live, f)
		}
	}
	clear(s.fireworks[len(live):])
	s.fireworks = live
}

// Draw paints the trailing fade over dst and then every active firework.
// dst is expected to persist between frames.
func (s *Show) Draw(dst *ebiten.Image) {
	b := dst.Bounds()
	veil := color.NRGBA{A: uint8(s.cfg.FadeAlpha * 255)}
	vector.DrawFilledRect(dst, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), veil, false)

	for _, f := range s.fireworks {
		f.Draw(dst)
	}
}
