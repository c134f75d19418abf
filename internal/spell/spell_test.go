package spell_test

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/iburimskiy/wand-fireworks/internal/config"
	"github.com/iburimskiy/wand-fireworks/internal/fireworks"
	"github.com/iburimskiy/wand-fireworks/internal/schedule"
	"github.com/iburimskiy/wand-fireworks/internal/spell"
	"github.com/iburimskiy/wand-fireworks/internal/spell/mocks"
)

type gate bool

func (g *gate) Revealed() bool { return bool(*g) }

type event struct {
	name string
	at   time.Duration
}

type fakeOverlay struct {
	stage   *fakeStage
	opacity float64
	fadeFor time.Duration
	removed bool
}

func (o *fakeOverlay) FadeOut(d time.Duration) {
	o.fadeFor = d
	o.stage.record("fade")
}

func (o *fakeOverlay) Remove() {
	o.removed = true
	o.stage.record("remove-flash")
}

type fakeStage struct {
	q      *schedule.Queue
	events []event
	tipX   float64
	tipY   float64
	flash  *fakeOverlay
}

func (s *fakeStage) record(name string) {
	s.events = append(s.events, event{name: name, at: s.q.Now()})
}

func (s *fakeStage) HideHint() { s.record("hide-hint") }
func (s *fakeStage) CastWand() { s.record("cast-wand") }
func (s *fakeStage) HideWand() { s.record("hide-wand") }

func (s *fakeStage) WandTip() (float64, float64) {
	s.record("tip")
	return s.tipX, s.tipY
}

func (s *fakeStage) ShowFlash(opacity float64) spell.Overlay {
	s.record("flash")
	s.flash = &fakeOverlay{stage: s, opacity: opacity}
	return s.flash
}

func (s *fakeStage) RevealContent() { s.record("reveal") }

func (s *fakeStage) names() []string {
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.name)
	}
	return out
}

func (s *fakeStage) at(name string) (time.Duration, bool) {
	for _, e := range s.events {
		if e.name == name {
			return e.at, true
		}
	}
	return 0, false
}

type fixture struct {
	cfg   config.Config
	gate  *gate
	sound *mocks.MockSound
	stage *fakeStage
	queue *schedule.Queue
	show  *fireworks.Show
	ctl   *spell.Controller
}

func newFixture(t *testing.T, revealed bool) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{cfg: config.Default()}
	g := gate(revealed)
	f.gate = &g
	f.sound = mocks.NewMockSound(ctrl)
	f.queue = schedule.New()
	f.stage = &fakeStage{q: f.queue, tipX: 400, tipY: 220}
	rng := rand.New(rand.NewPCG(11, 12))
	f.show = fireworks.NewShow(&f.cfg.Fireworks, rng, 800, 600)
	f.ctl = spell.New(f.cfg.Spell, &f.cfg.Fireworks, rng, f.gate, f.sound, f.stage, f.queue, f.show)
	return f
}

// run advances the queue in 10ms frames.
func (f *fixture) run(d time.Duration) {
	const frame = 10 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		f.queue.Advance(frame)
	}
}

func TestLockedWandDoesNothing(t *testing.T) {
	f := newFixture(t, false)
	f.sound.EXPECT().Play().Times(0)

	if f.ctl.Activate() {
		t.Fatal("Activate succeeded while locked")
	}
	f.run(3 * time.Second)
	if len(f.stage.events) != 0 || f.ctl.State() != spell.NotCast {
		t.Errorf("locked activation changed state: %v %v", f.stage.names(), f.ctl.State())
	}
	if f.show.Enabled() {
		t.Error("fireworks enabled without a cast")
	}
}

func TestCastSequence(t *testing.T) {
	f := newFixture(t, true)
	f.sound.EXPECT().Play().Return(nil).Times(1)

	if !f.ctl.Activate() {
		t.Fatal("Activate failed")
	}
	if f.ctl.State() != spell.Casting {
		t.Fatalf("state = %v, want casting", f.ctl.State())
	}
	if got := f.stage.names(); !slices.Equal(got, []string{"hide-hint", "cast-wand"}) {
		t.Fatalf("immediate steps = %v", got)
	}

	// move the wand before the flick; the burst must use the later tip
	f.stage.tipX, f.stage.tipY = 410, 180

	f.run(1240 * time.Millisecond)
	if f.show.Len() != 0 {
		t.Fatal("burst fired before the flick")
	}
	f.run(20 * time.Millisecond)

	if f.show.Len() != 1 {
		t.Fatalf("show has %d fireworks after flick, want 1", f.show.Len())
	}
	burst := f.show.Fireworks()[0]
	if !burst.Spell() || !burst.Exploded() {
		t.Error("flick launched a non-spell firework")
	}
	if burst.X != 410 || burst.Y != 180 {
		t.Errorf("burst at (%v,%v), want wand tip (410,180)", burst.X, burst.Y)
	}
	if f.stage.flash == nil || f.stage.flash.opacity != f.cfg.Spell.FlashOpacity {
		t.Fatalf("flash not shown at %v", f.cfg.Spell.FlashOpacity)
	}
	if f.show.Enabled() {
		t.Error("fireworks enabled before the reveal delay")
	}

	f.run(2 * time.Second)

	want := []string{"hide-hint", "cast-wand", "tip", "flash", "hide-wand", "fade", "reveal", "remove-flash"}
	if got := f.stage.names(); !slices.Equal(got, want) {
		t.Fatalf("sequence = %v, want %v", got, want)
	}

	flickAt, _ := f.stage.at("flash")
	if flickAt != f.cfg.Spell.FlickDelay {
		t.Errorf("flick at %v, want %v", flickAt, f.cfg.Spell.FlickDelay)
	}
	fadeAt, _ := f.stage.at("fade")
	if fadeAt <= flickAt {
		t.Errorf("fade at %v, not after the flash frame %v", fadeAt, flickAt)
	}
	revealAt, _ := f.stage.at("reveal")
	if revealAt != flickAt+f.cfg.Spell.RevealDelay {
		t.Errorf("reveal at %v, want %v", revealAt, flickAt+f.cfg.Spell.RevealDelay)
	}
	removeAt, _ := f.stage.at("remove-flash")
	if removeAt != flickAt+f.cfg.Spell.FlashLifetime {
		t.Errorf("flash removed at %v, want %v", removeAt, flickAt+f.cfg.Spell.FlashLifetime)
	}
	if f.stage.flash.fadeFor != f.cfg.Spell.FlashFade || !f.stage.flash.removed {
		t.Errorf("flash fade=%v removed=%v", f.stage.flash.fadeFor, f.stage.flash.removed)
	}

	if !f.show.Enabled() || f.ctl.State() != spell.Cast {
		t.Errorf("after reveal enabled=%v state=%v", f.show.Enabled(), f.ctl.State())
	}
}

func TestSecondActivationIsNoop(t *testing.T) {
	f := newFixture(t, true)
	f.sound.EXPECT().Play().Return(nil).Times(1)

	f.ctl.Activate()
	if f.ctl.Activate() {
		t.Error("second Activate during the cast succeeded")
	}
	f.run(3 * time.Second)
	events := len(f.stage.events)
	launched := f.show.Launched()

	if f.ctl.Activate() {
		t.Error("Activate after the cast succeeded")
	}
	f.run(3 * time.Second)
	if len(f.stage.events) != events {
		t.Errorf("extra stage events: %v", f.stage.names()[events:])
	}
	if f.show.Launched() != launched {
		t.Errorf("extra spell burst launched")
	}
}

func TestSoundFailureDoesNotBlockCast(t *testing.T) {
	f := newFixture(t, true)
	f.sound.EXPECT().Play().Return(errors.New("open expecto.mp3: no such file or directory"))

	if !f.ctl.Activate() {
		t.Fatal("Activate failed")
	}
	f.run(3 * time.Second)

	if f.ctl.State() != spell.Cast || !f.show.Enabled() {
		t.Errorf("cast did not complete after sound error: state=%v", f.ctl.State())
	}
}
