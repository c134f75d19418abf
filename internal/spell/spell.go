// Package spell runs the wand cast: sound, flourish, burst, flash and the
// content reveal, in that order, at most once.
package spell

//go:generate go tool mockgen -destination=./mocks/sound_mock.go -package=mocks . Sound

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/iburimskiy/wand-fireworks/internal/config"
	"github.com/iburimskiy/wand-fireworks/internal/fireworks"
	"github.com/iburimskiy/wand-fireworks/internal/schedule"
)

type State int

const (
	NotCast State = iota
	Casting
	Cast
)

func (s State) String() string {
	switch s {
	case NotCast:
		return "not-cast"
	case Casting:
		return "casting"
	case Cast:
		return "cast"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Gate reports whether the wand may be used yet.
type Gate interface {
	Revealed() bool
}

// Sound plays the spell sound. Playback errors never stop the cast.
type Sound interface {
	Play() error
}

// Overlay is a full-screen flash.
type Overlay interface {
	FadeOut(d time.Duration)
	Remove()
}

// Stage owns the visuals the cast drives.
type Stage interface {
	HideHint()
	CastWand()
	// WandTip is read when the burst fires, not at click time.
	WandTip() (x, y float64)
	HideWand()
	ShowFlash(opacity float64) Overlay
	RevealContent()
}

type Controller struct {
	cfg       config.Spell
	gate      Gate
	sound     Sound
	stage     Stage
	queue     *schedule.Queue
	show      *fireworks.Show
	fireworks *config.Fireworks
	rng       fireworks.Random
	state     State
}

func New(cfg config.Spell, fw *config.Fireworks, rng fireworks.Random, gate Gate, sound Sound, stage Stage, queue *schedule.Queue, show *fireworks.Show) *Controller {
	return &Controller{
		cfg:       cfg,
		gate:      gate,
		sound:     sound,
		stage:     stage,
		queue:     queue,
		show:      show,
		fireworks: fw,
		rng:       rng,
	}
}

func (c *Controller) State() State { return c.state }

// Activate starts the cast. It returns false, doing nothing, while the
// countdown is still running or once a cast has started.
func (c *Controller) Activate() bool {
	if !c.gate.Revealed() {
		slog.Debug("wand is locked")
		return false
	}
	if c.state != NotCast {
		return false
	}
	c.state = Casting
	slog.Info("casting spell")

	c.stage.HideHint()
	if err := c.sound.Play(); err != nil {
		slog.Warn("spell sound not played", "err", err)
	}
	c.stage.CastWand()
	c.queue.After(c.cfg.FlickDelay, c.flick)
	return true
}

// flick fires at the midpoint of the flourish.
func (c *Controller) flick() {
	x, y := c.stage.WandTip()
	c.show.Launch(fireworks.NewBurst(x, y, c.fireworks, c.rng))
	slog.Debug("spell burst", "x", x, "y", y)

	flash := c.stage.ShowFlash(c.cfg.FlashOpacity)
	c.queue.NextFrame(func() { flash.FadeOut(c.cfg.FlashFade) })
	c.queue.After(c.cfg.FlashLifetime, flash.Remove)

	c.stage.HideWand()
	c.queue.After(c.cfg.RevealDelay, c.reveal)
}

func (c *Controller) reveal() {
	c.stage.RevealContent()
	c.show.Enable()
	c.state = Cast
	slog.Info("content revealed, fireworks enabled")
}
