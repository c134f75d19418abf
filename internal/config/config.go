package config

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"time"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Sound level tap
	VisualRingSize  = 8192
	SmoothingFactor = 0.6
	LevelWindow     = 2048
)

// ErrInvalid is returned by Validate for any out-of-range setting.
var ErrInvalid = errors.New("invalid config")

// Fireworks holds the particle engine tunables.
type Fireworks struct {
	Gravity     float64
	SpawnChance float64 // per tick, once fireworks are enabled
	FadeAlpha   float64 // opacity of the trailing-fade rectangle

	ShellParticles int
	BurstParticles int
	ShellSize      float64

	// Shell launch velocity: x in [-DriftRange/2, DriftRange/2), y in [-(LiftMin+LiftRange), -LiftMin)
	DriftRange float64
	LiftMin    float64
	LiftRange  float64

	SlowSpeedMax  float64
	FastSpeedMin  float64
	FastSpeedSpan float64
	SizeMin       float64
	SizeSpan      float64
	DecayMin      float64
	DecaySpan     float64

	Palette      []color.RGBA
	SpellPalette []color.RGBA
}

// Countdown holds the reveal gate settings.
type Countdown struct {
	Target      string // hh:mm:ss, today
	Interval    time.Duration
	WaitLabel   string
	RevealLabel string
}

// Spell holds the cast sequence timings.
type Spell struct {
	WandDuration  time.Duration
	FlickDelay    time.Duration
	RevealDelay   time.Duration
	FlashOpacity  float64
	FlashFade     time.Duration
	FlashLifetime time.Duration
	TipOffsetX    float64
	SoundPath     string
	PickSound     bool
}

// Config is the full set of tunables.
type Config struct {
	Width, Height int
	Title         string
	Message       string
	LogLevel      string

	Fireworks Fireworks
	Countdown Countdown
	Spell     Spell
}

// Default returns the stock show: a 23:59:58 reveal, 4% spawn chance and
// the maroon/gold palette.
func Default() Config {
	return Config{
		Width:    WindowWidth,
		Height:   WindowHeight,
		Title:    "Expecto Patronum - click the wand when the countdown ends, Esc/Q: Quit",
		Message:  "Happy New Year!",
		LogLevel: "info",
		Fireworks: Fireworks{
			Gravity:        0.05,
			SpawnChance:    0.04,
			FadeAlpha:      0.1,
			ShellParticles: 50,
			BurstParticles: 100,
			ShellSize:      2,
			DriftRange:     3,
			LiftMin:        3,
			LiftRange:      3,
			SlowSpeedMax:   3,
			FastSpeedMin:   2,
			FastSpeedSpan:  5,
			SizeMin:        1,
			SizeSpan:       2,
			DecayMin:       0.01,
			DecaySpan:      0.01,
			Palette: []color.RGBA{
				{R: 0x74, G: 0x00, B: 0x01, A: 0xff},
				{R: 0xee, G: 0xba, B: 0x30, A: 0xff},
				{R: 0xd3, G: 0xa6, B: 0x25, A: 0xff},
				{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
				{R: 0x9c, G: 0x92, B: 0xac, A: 0xff},
			},
			SpellPalette: []color.RGBA{
				{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
				{R: 0xff, G: 0xf7, B: 0x00, A: 0xff},
				{R: 0x00, G: 0xf2, B: 0xfe, A: 0xff},
			},
		},
		Countdown: Countdown{
			Target:      "23:59:58",
			Interval:    time.Second,
			WaitLabel:   "Magic Awakening In",
			RevealLabel: "Expecto Patronum!",
		},
		Spell: Spell{
			WandDuration:  2500 * time.Millisecond,
			FlickDelay:    1250 * time.Millisecond,
			RevealDelay:   300 * time.Millisecond,
			FlashOpacity:  0.9,
			FlashFade:     800 * time.Millisecond,
			FlashLifetime: time.Second,
			TipOffsetX:    20,
			SoundPath:     "expecto.mp3",
		},
	}
}

// RegisterFlags binds the tunable subset of c to fs. Defaults are taken
// from the current values of c.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "window width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "window height in pixels")
	fs.StringVar(&c.Message, "message", c.Message, "content revealed after the spell")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")

	fs.StringVar(&c.Countdown.Target, "target", c.Countdown.Target, "reveal time of day (hh:mm:ss, local)")
	fs.StringVar(&c.Countdown.RevealLabel, "reveal-label", c.Countdown.RevealLabel, "label shown once the countdown ends")

	fs.StringVar(&c.Spell.SoundPath, "sound", c.Spell.SoundPath, "spell sound file (mp3, wav, flac)")
	fs.BoolVar(&c.Spell.PickSound, "pick-sound", c.Spell.PickSound, "choose the spell sound with a file dialog")
	fs.DurationVar(&c.Spell.WandDuration, "wand-duration", c.Spell.WandDuration, "length of the wand flourish")
	fs.DurationVar(&c.Spell.FlickDelay, "flick-delay", c.Spell.FlickDelay, "delay from click to the spell burst")
	fs.DurationVar(&c.Spell.RevealDelay, "reveal-delay", c.Spell.RevealDelay, "delay from the burst to the content reveal")

	fs.Float64Var(&c.Fireworks.SpawnChance, "spawn-chance", c.Fireworks.SpawnChance, "per-frame chance of a new firework")
	fs.Float64Var(&c.Fireworks.Gravity, "gravity", c.Fireworks.Gravity, "downward acceleration per frame")
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Fireworks.SpawnChance < 0 || c.Fireworks.SpawnChance > 1:
		return fmt.Errorf("%w: spawn chance %v not in [0,1]", ErrInvalid, c.Fireworks.SpawnChance)
	case c.Fireworks.FadeAlpha <= 0 || c.Fireworks.FadeAlpha > 1:
		return fmt.Errorf("%w: fade alpha %v not in (0,1]", ErrInvalid, c.Fireworks.FadeAlpha)
	case c.Fireworks.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive", ErrInvalid)
	case c.Fireworks.ShellParticles <= 0 || c.Fireworks.BurstParticles <= 0:
		return fmt.Errorf("%w: particle counts must be positive", ErrInvalid)
	case c.Fireworks.DecayMin <= 0 || c.Fireworks.DecaySpan < 0:
		return fmt.Errorf("%w: decay range must be positive", ErrInvalid)
	case len(c.Fireworks.Palette) == 0 || len(c.Fireworks.SpellPalette) == 0:
		return fmt.Errorf("%w: empty palette", ErrInvalid)
	case c.Countdown.Interval <= 0:
		return fmt.Errorf("%w: countdown interval must be positive", ErrInvalid)
	case c.Spell.WandDuration <= 0 || c.Spell.FlickDelay <= 0 || c.Spell.RevealDelay < 0:
		return fmt.Errorf("%w: spell timings must be positive", ErrInvalid)
	case c.Spell.FlickDelay > c.Spell.WandDuration:
		return fmt.Errorf("%w: flick delay %v past wand duration %v", ErrInvalid, c.Spell.FlickDelay, c.Spell.WandDuration)
	case c.Spell.FlashOpacity <= 0 || c.Spell.FlashOpacity > 1:
		return fmt.Errorf("%w: flash opacity %v not in (0,1]", ErrInvalid, c.Spell.FlashOpacity)
	case c.Spell.FlashFade <= 0 || c.Spell.FlashLifetime <= 0:
		return fmt.Errorf("%w: flash timings must be positive", ErrInvalid)
	}
	if _, err := ParseClock(c.Countdown.Target); err != nil {
		return err
	}
	return nil
}

// ParseClock parses an hh:mm:ss time of day.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, fmt.Errorf("%w: target %q: %v", ErrInvalid, s, err)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}
