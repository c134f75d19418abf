package game

import (
	"github.com/iburimskiy/wand-fireworks/internal/countdown"
	"github.com/iburimskiy/wand-fireworks/internal/spell"
)

// stage hands the game's visual elements to the countdown and the spell.
type stage struct {
	g *Game
}

var (
	_ countdown.View = stage{}
	_ spell.Stage    = stage{}
)

func (s stage) Render(d countdown.Display) { s.g.banner.display = d }

func (s stage) SetLocked(locked bool) { s.g.wand.locked = locked }

func (s stage) SetHintVisible(visible bool) { s.g.hint.visible = visible }

func (s stage) HideHint() { s.g.hint.visible = false }

func (s stage) CastWand() { s.g.wand.cast(s.g.cfg.Spell.WandDuration) }

func (s stage) WandTip() (float64, float64) { return s.g.wand.tip(s.g.cfg.Spell.TipOffsetX) }

func (s stage) HideWand() { s.g.wand.hide() }

func (s stage) ShowFlash(opacity float64) spell.Overlay {
	f := newFlash(opacity)
	s.g.flash = f
	return f
}

func (s stage) RevealContent() { s.g.content.reveal() }
