package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/wand-fireworks/internal/config"
	"github.com/iburimskiy/wand-fireworks/internal/countdown"
	"github.com/iburimskiy/wand-fireworks/internal/fireworks"
	"github.com/iburimskiy/wand-fireworks/internal/schedule"
	"github.com/iburimskiy/wand-fireworks/internal/spell"
)

// Sound is the spell sound with a loudness readout for the wand glow.
type Sound interface {
	spell.Sound
	Level() float64
}

// Game is the ebiten surface: one Update is one animation tick.
type Game struct {
	cfg   config.Config
	sound Sound
	debug bool

	queue     *schedule.Queue
	show      *fireworks.Show
	countdown *countdown.Controller
	spell     *spell.Controller

	// viz
	canvas        *ebiten.Image
	width, height int
	time          float64
	text          *textCache
	wand          *wand
	flash         *flash
	banner        *banner
	hint          *hint
	content       *content
}

func New(cfg config.Config, sound Sound) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	offset, err := config.ParseClock(cfg.Countdown.Target)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:     cfg,
		sound:   sound,
		debug:   strings.EqualFold(cfg.LogLevel, "debug"),
		queue:   schedule.New(),
		width:   cfg.Width,
		height:  cfg.Height,
		text:    newTextCache(),
		wand:    newWand(),
		banner:  &banner{},
		hint:    &hint{},
		content: &content{message: cfg.Message},
	}
	g.wand.place(g.width, g.height)

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	g.show = fireworks.NewShow(&g.cfg.Fireworks, rng, float64(g.width), float64(g.height))

	target := countdown.TargetToday(time.Now(), offset)
	g.countdown = countdown.New(countdown.Options{
		Target:      target,
		Interval:    cfg.Countdown.Interval,
		WaitLabel:   cfg.Countdown.WaitLabel,
		RevealLabel: cfg.Countdown.RevealLabel,
	}, stage{g})
	g.spell = spell.New(g.cfg.Spell, &g.cfg.Fireworks, rng, g.countdown, sound, stage{g}, g.queue, g.show)

	slog.Info("countdown started", "target", target.Format(time.DateTime), "sound", cfg.Spell.SoundPath)
	g.countdown.Start(g.queue)
	return g, nil
}

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	g.time += dt
	g.queue.Advance(time.Duration(dt * float64(time.Second)))

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	// Cast on a click over the wand, or Space/Enter
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mouseX, mouseY := ebiten.CursorPosition()
		if g.wand.hit(float64(mouseX), float64(mouseY)) {
			g.spell.Activate()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.spell.Activate()
	}

	g.wand.update(dt, g.sound.Level())
	g.content.update(dt)
	if g.flash != nil {
		g.flash.update(dt)
		if g.flash.removed {
			g.flash = nil
		}
	}

	g.show.Step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(g.width, g.height)
	}

	// Fireworks fade on their own persistent surface
	g.show.Draw(g.canvas)
	screen.DrawImage(g.canvas, nil)

	g.content.draw(screen, g.text, g.time)
	g.banner.draw(screen, g.text, g.time)
	g.wand.draw(screen, g.time)

	b := g.wand.bounds()
	g.hint.draw(screen, g.text, float64(g.width)/2, b.Top+b.Height+wandHitPad, g.time)

	if g.flash != nil {
		g.flash.draw(screen)
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  fireworks %d  spell %s", ebiten.ActualTPS(), g.show.Len(), g.spell.State()), 12, 12)
	}
}

// Layout follows the window size. A resize drops the canvas, so the next
// frame starts from a cleared surface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if g.canvas != nil {
			g.canvas.Deallocate()
			g.canvas = nil
		}
		g.show.Resize(float64(g.width), float64(g.height))
		g.wand.place(g.width, g.height)
	}
	return g.width, g.height
}
