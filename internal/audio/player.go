// Package audio plays short synthesized effects for game cues through the
// system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes cue sounds into the speaker. A Player that failed to
// initialise stays silent. Safe for concurrent use.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	log         *log.Logger
	initialized bool
}

// NewPlayer creates a silent player; call Init to open the speaker.
func NewPlayer(logger *log.Logger) *Player {
	return &Player{mixer: &beep.Mixer{}, log: logger}
}

// Init opens the speaker. On failure the error is logged and returned and
// the player keeps working as a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		if p.log != nil {
			p.log.Warn("audio disabled", "err", err)
		}
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether sounds reach the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues the sounds of the given cues.
func (p *Player) Play(cues []core.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	seen := make(map[string]bool, len(cues))
	for _, c := range cues {
		// One copy per tick; a chain of bombs would otherwise clip.
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		if s := Sound(c.Name, sampleRate); s != nil {
			speaker.Lock()
			p.mixer.Add(s)
			speaker.Unlock()
		}
	}
}

// Close stops every playing sound.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	p.mixer.Clear()
	p.initialized = false
}
