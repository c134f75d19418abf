package countdown

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/iburimskiy/wand-fireworks/internal/schedule"
)

// State of the reveal gate. WAITING only ever moves to REVEALED.
type State int

const (
	Waiting State = iota
	Revealed
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Revealed:
		return "revealed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Clock returns the current wall time.
type Clock func() time.Time

// Display is what the banner shows for one tick.
type Display struct {
	Label     string
	Text      string
	Emphasis  bool // seconds-only, drawn larger in the accent color
	Celebrate bool // terminal label with its animation
}

// View receives the presentation changes of each tick.
type View interface {
	Render(Display)
	SetLocked(locked bool)
	SetHintVisible(visible bool)
}

type Options struct {
	Target      time.Time
	Interval    time.Duration
	WaitLabel   string
	RevealLabel string
	Clock       Clock
}

// Controller counts down to a fixed target and unlocks the wand once.
type Controller struct {
	opts    Options
	view    View
	state   State
	display Display
	ticker  schedule.Handle
	ticks   int
}

func New(opts Options, view View) *Controller {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	return &Controller{opts: opts, view: view}
}

// TargetToday places the time of day offset on now's calendar date.
func TargetToday(now time.Time, offset time.Duration) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Add(offset)
}

func (c *Controller) State() State { return c.state }

// Revealed reports whether the countdown has finished.
func (c *Controller) Revealed() bool { return c.state == Revealed }

func (c *Controller) Display() Display { return c.display }

// Ticks counts how many times the countdown has been evaluated.
func (c *Controller) Ticks() int { return c.ticks }

// Start evaluates once right away and then on every interval until the
// target passes.
func (c *Controller) Start(q *schedule.Queue) {
	c.tick()
	if c.state == Revealed {
		return
	}
	c.ticker = q.Every(c.opts.Interval, c.tick)
}

func (c *Controller) tick() {
	if c.state == Revealed {
		return
	}
	c.ticks++

	remaining := c.opts.Target.Sub(c.opts.Clock())
	if remaining > 0 {
		c.display = waitingDisplay(c.opts.WaitLabel, remaining)
		c.view.Render(c.display)
		c.view.SetLocked(true)
		c.view.SetHintVisible(false)
		return
	}

	c.state = Revealed
	c.display = Display{Text: c.opts.RevealLabel, Celebrate: true}
	c.view.Render(c.display)
	c.view.SetLocked(false)
	c.view.SetHintVisible(true)
	c.ticker.Stop()
	slog.Info("countdown finished", "target", c.opts.Target.Format(time.TimeOnly))
}

func waitingDisplay(label string, remaining time.Duration) Display {
	minutes, seconds := split(remaining)
	if minutes > 0 {
		return Display{Label: label, Text: fmt.Sprintf("%02d:%02d", minutes, seconds)}
	}
	return Display{Label: label, Text: fmt.Sprintf("%02d", seconds), Emphasis: true}
}

// split truncates d into the minutes and seconds within the current hour.
func split(d time.Duration) (minutes, seconds int) {
	minutes = int(d/time.Minute) % 60
	seconds = int(d/time.Second) % 60
	return minutes, seconds
}
