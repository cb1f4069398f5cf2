package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/sakina-app/core/internal/audio"
)

const resampleQuality = 4

// Player plays mp3 verse recordings through the system speaker. A resampler
// sits between the decoder and the speaker so playback speed can change
// without reloading the stream.
type Player struct {
	mu sync.Mutex

	state      State
	streamer   beep.StreamSeekCloser
	format     beep.Format
	resampler  *beep.Resampler
	ctrl       *beep.Ctrl
	file       *os.File
	handle     audio.Handle
	speed      float64
	baseRatio  float64
	finishedCh chan struct{}
}

var (
	speakerInitOnce sync.Once
	speakerRate     beep.SampleRate
	speakerInitErr  error
)

// New creates a stopped player.
func New() *Player {
	return &Player{
		state:      Stopped,
		speed:      1.0,
		finishedCh: make(chan struct{}, 1),
	}
}

// Load stops any current stream and prepares the handle for playback.
// On return the stream is decoded and buffered; Start begins output.
func (p *Player) Load(h audio.Handle) error {
	p.Stop()

	if strings.ToLower(filepath.Ext(h.Path)) != ".mp3" {
		return fmt.Errorf("unsupported format: %s", filepath.Ext(h.Path))
	}

	f, err := os.Open(h.Path)
	if err != nil {
		return err
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return err
	}

	speakerInitOnce.Do(func() {
		speakerRate = format.SampleRate
		speakerInitErr = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	if speakerInitErr != nil {
		streamer.Close()
		f.Close()
		return speakerInitErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.file = f
	p.streamer = streamer
	p.format = format
	p.handle = h
	p.baseRatio = float64(format.SampleRate) / float64(speakerRate)
	p.resampler = beep.ResampleRatio(resampleQuality, p.baseRatio*p.speed, streamer)
	p.finishedCh = make(chan struct{}, 1)

	return nil
}

// Start begins output of the loaded stream.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.resampler == nil {
		return fmt.Errorf("no stream loaded")
	}
	if p.state != Stopped {
		return nil
	}

	p.ctrl = &beep.Ctrl{Streamer: p.resampler}
	finished := p.finishedCh

	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		select {
		case finished <- struct{}{}:
		default:
		}
	})))

	p.state = Playing
	return nil
}

// Pause pauses output.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Playing || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.state = Paused
}

// Resume resumes paused output.
func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != Paused || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	p.state = Playing
}

// Stop stops output and releases the loaded stream.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil && p.state == Stopped {
		return
	}

	speaker.Clear()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}

	p.ctrl = nil
	p.resampler = nil
	p.handle = audio.Handle{}
	p.state = Stopped
}

// SetSpeed changes the playback rate without interrupting output.
// The caller clamps the ratio; the player applies it as given.
func (p *Player) SetSpeed(ratio float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.speed = ratio
	if p.resampler == nil {
		return
	}
	speaker.Lock()
	p.resampler.SetRatio(p.baseRatio * ratio)
	speaker.Unlock()
}

// SeekTo moves to an absolute position in the loaded stream, clamped to its
// length.
func (p *Player) SeekTo(pos time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return
	}

	n := p.format.SampleRate.N(pos)
	if n < 0 {
		n = 0
	}
	if maxN := p.streamer.Len(); n > maxN {
		n = maxN
	}

	speaker.Lock()
	_ = p.streamer.Seek(n)
	speaker.Unlock()
}

// State returns the transport state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Position returns the position within the loaded stream.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

// Duration returns the length of the loaded stream. Falls back to the
// handle's catalog duration when no stream is loaded.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streamer == nil {
		return p.handle.Duration
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// FinishedChan returns the channel signalled when the loaded stream ends
// naturally. Replaced on every Load; callers should grab it after Load.
func (p *Player) FinishedChan() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.finishedCh
}
