package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/wand-fireworks/internal/config"
)

// ErrUnsupported is returned for files that are not mp3, wav or flac.
var ErrUnsupported = errors.New("unsupported sound file")

// Player plays the spell sound through the system speaker.
type Player struct {
	path string

	mu       sync.Mutex
	initRate beep.SampleRate
	initDone bool
	level    float64

	// swapped from the speaker goroutine, outside mu
	tap atomic.Pointer[levelTap]
}

func NewPlayer(path string) *Player {
	return &Player{path: path}
}

// Path is the sound file the player decodes on each Play.
func (p *Player) Path() string { return p.path }

// Play decodes the sound file and starts playback. It returns as soon as
// the sound is queued on the speaker.
func (p *Player) Play() error {
	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("open sound: %w", err)
	}

	streamer, format, err := decode(f, p.path)
	if err != nil {
		_ = f.Close()
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bufferSize := format.SampleRate.N(time.Second / 20)
	if !p.initDone || p.initRate != format.SampleRate {
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
		p.initRate = format.SampleRate
	}

	t := newLevelTap(streamer, config.VisualRingSize)
	p.tap.Store(t)

	slog.Debug("playing spell sound", "path", p.path, "rate", int(format.SampleRate))
	speaker.Play(beep.Seq(t, beep.Callback(func() {
		p.finished(t)
		_ = streamer.Close()
	})))
	return nil
}

// finished drops t once its sound has played out, unless a newer Play
// already replaced it.
func (p *Player) finished(t *levelTap) {
	p.tap.CompareAndSwap(t, nil)
}

// Level returns the smoothed loudness of what is currently playing, in
// [0,1]. It is meant to be called once per frame.
func (p *Player) Level() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	var mag float64
	if t := p.tap.Load(); t != nil {
		// compress hard so quiet passages still show
		mag = math.Pow(rms(t.snapshot(config.LevelWindow)), 0.3)
	}
	p.level = config.SmoothingFactor*p.level + (1-config.SmoothingFactor)*mag
	return clamp01(p.level)
}

// decode picks the decoder by file extension. The returned streamer owns f.
func decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
