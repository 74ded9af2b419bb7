// Package audio synthesizes the built-in sound library and plays it through
// the beep speaker. Every operation degrades to silence when no output
// device is available.
package audio

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/blockstage/constants"
)

// Player mixes library sounds into one speaker stream
type Player struct {
	mu          sync.Mutex
	cfg         Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	initialized bool

	// active counts sounds not yet drained; decremented from the speaker
	// goroutine so it is atomic rather than guarded by mu
	active     atomic.Int32
	generation atomic.Uint64
}

// NewPlayer creates a player; Initialize opens the device
func NewPlayer(cfg Config) *Player {
	cfg.Normalize()
	return &Player{
		cfg:   cfg,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the speaker. A disabled config stays silent.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(p.rate, p.rate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup stops every sound and detaches from the speaker
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.clear()
	p.initialized = false
}

// Play starts a library sound at volume 0..100 scaled by the master volume.
// Unknown names are ignored.
func (p *Player) Play(name string, volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	gain := min(max(volume, 0), 100) / 100 * p.cfg.MasterVolume
	s, ok := NewSound(name, gain, p.rate)
	if !ok {
		log.Printf("audio: unknown sound %q", name)
		return
	}

	gen := p.generation.Load()
	p.active.Add(1)
	done := beep.Callback(func() {
		if p.generation.Load() == gen {
			p.active.Add(-1)
		}
	})

	speaker.Lock()
	p.mixer.Add(beep.Seq(s, done))
	speaker.Unlock()
}

// IsPlaying reports whether any started sound is still audible
func (p *Player) IsPlaying() bool {
	return p.active.Load() > 0
}

// StopAll silences every playing sound
func (p *Player) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.clear()
}

func (p *Player) clear() {
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.generation.Add(1)
	p.active.Store(0)
}
