package game

import (
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/wand-fireworks/internal/config"
	"github.com/iburimskiy/wand-fireworks/internal/spell"
)

type silentSound struct{ plays int }

func (s *silentSound) Play() error {
	s.plays++
	return nil
}

func (s *silentSound) Level() float64 { return 0 }

func newTestGame(t *testing.T, target string) (*Game, *silentSound) {
	t.Helper()
	cfg := config.Default()
	cfg.Countdown.Target = target
	sound := &silentSound{}
	g, err := New(cfg, sound)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g, sound
}

// step runs the non-drawing half of Update.
func step(g *Game, d time.Duration) {
	const frame = time.Second / 60
	dt := frame.Seconds()
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		g.queue.Advance(frame)
		g.wand.update(dt, 0)
		g.content.update(dt)
		if g.flash != nil {
			g.flash.update(dt)
			if g.flash.removed {
				g.flash = nil
			}
		}
		g.show.Step()
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Fireworks.SpawnChance = 2
	if _, err := New(cfg, &silentSound{}); err == nil {
		t.Fatal("New accepted spawn chance 2")
	}
}

func TestWandTipFollowsBounds(t *testing.T) {
	w := newWand()
	w.place(1024, 640)

	b := w.bounds()
	x, y := w.tip(20)
	if x != b.Left+b.Width/2+20 || y != b.Top {
		t.Errorf("tip = (%v,%v), want (%v,%v)", x, y, b.Left+b.Width/2+20, b.Top)
	}

	// rotating the wand moves the tip
	w.offset = 0.7
	x2, y2 := w.tip(20)
	if x2 == x && y2 == y {
		t.Error("tip did not move with the wand")
	}
}

func TestWandHitArea(t *testing.T) {
	w := newWand()
	w.place(800, 600)
	b := w.bounds()

	if !w.hit(b.Left+b.Width/2, b.Top+b.Height/2) {
		t.Error("center of wand not a hit")
	}
	if w.hit(0, 0) {
		t.Error("corner of window counted as a hit")
	}

	// the hit area follows the rotated wand
	w.offset = 0.7
	r := w.bounds()
	tipX, tipY := r.Left+r.Width-1, r.Top+1
	if !w.hit(tipX, tipY) {
		t.Error("tip of the flicked wand not a hit")
	}
	w.offset = 0
	if w.hit(tipX, tipY) {
		t.Error("flicked tip position still a hit at rest")
	}
	w.hide()
	if w.hit(b.Left+b.Width/2, b.Top+b.Height/2) {
		t.Error("hidden wand still clickable")
	}
}

func TestWandFlourishSettles(t *testing.T) {
	w := newWand()
	w.place(800, 600)
	w.cast(2500 * time.Millisecond)

	minOffset, maxOffset := 0.0, 0.0
	for i := 0; i < 60*3; i++ {
		w.update(1.0/60, 0)
		minOffset = math.Min(minOffset, w.offset)
		maxOffset = math.Max(maxOffset, w.offset)
	}
	if w.flourishing() {
		t.Fatal("flourish still running after 3s")
	}
	if minOffset > -0.45 || maxOffset < 0.65 {
		t.Errorf("flourish range [%v, %v], want swish to -0.5 and flick to 0.7", minOffset, maxOffset)
	}
	if math.Abs(w.offset) > 0.01 {
		t.Errorf("wand did not settle: offset %v", w.offset)
	}
}

func TestWandHideFadesOut(t *testing.T) {
	w := newWand()
	w.hide()
	for i := 0; i < 60; i++ {
		w.update(1.0/60, 0)
	}
	if w.alpha != 0 {
		t.Errorf("alpha = %v after fade, want 0", w.alpha)
	}
}

func TestFlashFadeAndRemove(t *testing.T) {
	f := newFlash(0.9)
	f.update(0.1)
	if f.opacity != 0.9 {
		t.Fatalf("opacity changed before FadeOut: %v", f.opacity)
	}
	f.FadeOut(800 * time.Millisecond)
	f.update(0.4)
	if f.opacity <= 0 || f.opacity >= 0.9 {
		t.Errorf("mid-fade opacity = %v", f.opacity)
	}
	f.update(0.4)
	if f.opacity > 0.001 {
		t.Errorf("opacity after fade = %v, want 0", f.opacity)
	}
	f.Remove()
	if !f.removed {
		t.Error("Remove did not mark the flash")
	}
}

func TestCountdownLocksWand(t *testing.T) {
	g, sound := newTestGame(t, "23:59:59")
	now := time.Now()
	if now.Hour() == 23 && now.Minute() == 59 {
		t.Skip("too close to the target")
	}

	if g.countdown.Revealed() {
		t.Fatal("countdown revealed before target")
	}
	if !g.wand.locked || g.hint.visible {
		t.Errorf("waiting: locked=%v hint=%v", g.wand.locked, g.hint.visible)
	}
	if g.spell.Activate() {
		t.Error("cast while locked")
	}
	if sound.plays != 0 {
		t.Error("sound played while locked")
	}
}

func TestCastThroughStage(t *testing.T) {
	g, sound := newTestGame(t, "00:00:00")

	if !g.countdown.Revealed() {
		t.Fatal("countdown with a past target should reveal at start")
	}
	if g.wand.locked || !g.hint.visible {
		t.Fatalf("revealed: locked=%v hint=%v", g.wand.locked, g.hint.visible)
	}
	if d := g.banner.display; !d.Celebrate || d.Text != g.cfg.Countdown.RevealLabel {
		t.Errorf("banner = %+v", d)
	}

	if !g.spell.Activate() {
		t.Fatal("Activate failed")
	}
	if sound.plays != 1 || g.hint.visible || !g.wand.flourishing() {
		t.Errorf("after click: plays=%d hint=%v flourishing=%v", sound.plays, g.hint.visible, g.wand.flourishing())
	}

	step(g, 1300*time.Millisecond)
	if g.flash == nil {
		t.Fatal("no flash after the flick")
	}
	if !g.wand.hidden {
		t.Error("wand not hidden after the flick")
	}
	if g.show.Launched() != 1 {
		t.Errorf("launched %d, want the spell burst", g.show.Launched())
	}

	step(g, 1500*time.Millisecond)
	if g.flash != nil {
		t.Error("flash still present after its lifetime")
	}
	if !g.content.revealed || !g.show.Enabled() || g.spell.State() != spell.Cast {
		t.Errorf("content=%v enabled=%v state=%v", g.content.revealed, g.show.Enabled(), g.spell.State())
	}
	if g.content.alpha < 0.99 {
		t.Errorf("content alpha = %v after fade-in", g.content.alpha)
	}

	g.spell.Activate()
	if sound.plays != 1 {
		t.Errorf("second activation played sound again")
	}
}

func TestDebugOverlayIgnoresLevelCase(t *testing.T) {
	for _, level := range []string{"debug", "DEBUG", "Debug"} {
		cfg := config.Default()
		cfg.Countdown.Target = "00:00:00"
		cfg.LogLevel = level
		g, err := New(cfg, &silentSound{})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if !g.debug {
			t.Errorf("log level %q: debug overlay off", level)
		}
	}

	g, _ := newTestGame(t, "00:00:00")
	if g.debug {
		t.Error("debug overlay on at the default level")
	}
}

func TestLayoutResizeDropsCanvas(t *testing.T) {
	g, _ := newTestGame(t, "00:00:00")
	before := g.wand.bounds()

	w, h := g.Layout(1280, 720)
	if w != 1280 || h != 720 {
		t.Fatalf("Layout = %dx%d", w, h)
	}
	if g.canvas != nil {
		t.Error("canvas kept across resize")
	}
	if g.wand.bounds() == before {
		t.Error("wand not re-placed on resize")
	}
}
