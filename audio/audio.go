// Package audio plays short synthesized tones through the system speaker.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ReeCocho/Snek/config"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// gain applied to every tone; sine output at full scale is harsh on headphones.
const gain = 0.25

// Player owns the speaker. A disabled Player accepts every call and plays nothing.
type Player struct {
	mu     sync.Mutex
	sr     beep.SampleRate
	mixer  *beep.Mixer
	play   func(beep.Streamer)
	log    *zap.Logger
	played int
	closed bool
}

// NewPlayer initialises the speaker at cfg.SampleRate with a 100ms buffer when audio is
// enabled.
func NewPlayer(cfg config.AudioConfig, log *zap.Logger) (*Player, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Player{sr: beep.SampleRate(cfg.SampleRate), log: log}
	if !cfg.Enabled {
		log.Debug("audio disabled")
		return p, nil
	}
	if err := speaker.Init(p.sr, p.sr.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker at %d Hz: %w", cfg.SampleRate, err)
	}
	p.mixer = &beep.Mixer{}
	speaker.Play(p.mixer)
	p.play = func(s beep.Streamer) {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
	log.Debug("audio started", zap.Int("sample_rate", cfg.SampleRate))
	return p, nil
}

// Enabled reports whether tones reach the speaker.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.play != nil && !p.closed
}

// Beep plays a sine tone of freq Hz for d without blocking.
func (p *Player) Beep(freq float64, d time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.play == nil || p.closed {
		return nil
	}
	s, err := tone(p.sr, freq, d)
	if err != nil {
		return err
	}
	p.play(s)
	p.played++
	return nil
}

// Played returns the number of tones handed to the speaker.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// Close silences pending tones and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	if p.mixer != nil {
		speaker.Clear()
		speaker.Close()
	}
}

func tone(sr beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.1f Hz: %w", freq, err)
	}
	return &effects.Volume{
		Streamer: beep.Take(sr.N(d), sine),
		Base:     2,
		Volume:   math.Log2(gain),
	}, nil
}
