// Package audio implements the engine's audio collaborator on top of
// beep. It receives per-frame emitter deltas and mixes synthesized voices
// into a PCM stream; the engine never sees device buffers.
package audio

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/kinetic/engine"
)

// Config holds the audio output parameters
type Config struct {
	SampleRate int           `yaml:"sample_rate"`
	PumpPeriod time.Duration `yaml:"pump_period"` // Interval between PCM writes
	OneShotLen time.Duration `yaml:"one_shot"`    // Length of non-looping voices
}

// DefaultConfig returns sensible output parameters
func DefaultConfig() Config {
	return Config{
		SampleRate: 44100,
		PumpPeriod: 20 * time.Millisecond,
		OneShotLen: 300 * time.Millisecond,
	}
}

// voice is one playing emitter: a stoppable oscillator behind a volume stage
type voice struct {
	vol     *effects.Volume
	stopped atomic.Bool
}

// Stream implements beep.Streamer; a stopped voice drains out of the mixer
func (v *voice) Stream(samples [][2]float64) (int, bool) {
	if v.stopped.Load() {
		return 0, false
	}
	return v.vol.Stream(samples)
}

func (v *voice) Err() error {
	return nil
}

// Player implements engine.AudioSink. Voices are keyed by entity; the pump
// goroutine mixes them into 16-bit little-endian stereo PCM on the writer.
type Player struct {
	mu     sync.Mutex
	cfg    Config
	rate   beep.SampleRate
	mixer  beep.Mixer
	voices map[engine.Entity]*voice

	out     io.Writer
	stopCh  chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

// NewPlayer creates a player writing PCM to out
func NewPlayer(out io.Writer, cfg Config) *Player {
	if cfg.SampleRate <= 0 {
		cfg = DefaultConfig()
	}
	return &Player{
		cfg:    cfg,
		rate:   beep.SampleRate(cfg.SampleRate),
		voices: make(map[engine.Entity]*voice),
		out:    out,
		stopCh: make(chan struct{}),
	}
}

// Start launches the pump goroutine
func (p *Player) Start() {
	p.wg.Add(1)
	go p.pump()
}

// Stop halts the pump and drops all voices
func (p *Player) Stop() {
	p.stopped.Do(func() {
		close(p.stopCh)
		p.wg.Wait()
	})
}

// Apply implements engine.AudioSink
func (p *Player) Apply(deltas []engine.EmitterDelta) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, d := range deltas {
		switch d.Action {
		case engine.EmitterStart:
			p.startLocked(d)
		case engine.EmitterStop:
			if v, ok := p.voices[d.Entity]; ok {
				v.stopped.Store(true)
				delete(p.voices, d.Entity)
			}
		case engine.EmitterVolume:
			if v, ok := p.voices[d.Entity]; ok {
				applyVolume(v.vol, d.Volume)
			}
		}
	}
}

// Voices returns the number of live voices
func (p *Player) Voices() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.voices)
}

func (p *Player) startLocked(d engine.EmitterDelta) {
	// Restarting a playing emitter replaces its voice
	if v, ok := p.voices[d.Entity]; ok {
		v.stopped.Store(true)
	}

	samples := p.rate.N(p.cfg.OneShotLen)
	if d.Loop {
		samples = 0
	}
	osc := newOscillator(freqFor(d.Sound), p.rate, samples)
	vol := &effects.Volume{Streamer: osc, Base: 2}
	applyVolume(vol, d.Volume)

	v := &voice{vol: vol}
	p.voices[d.Entity] = v
	p.mixer.Add(v)
}

// pump streams the mixer to the output writer in fixed-size chunks
func (p *Player) pump() {
	defer p.wg.Done()

	n := p.rate.N(p.cfg.PumpPeriod)
	if n < 64 {
		n = 64
	}
	buf := make([][2]float64, n)
	pcm := make([]byte, n*4)

	ticker := time.NewTicker(p.cfg.PumpPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.mu.Lock()
			p.mixer.Stream(buf)
			p.mu.Unlock()

			floatToPCM(buf, pcm)
			if _, err := p.out.Write(pcm); err != nil {
				return // Output gone: silent mode from here on
			}
		}
	}
}

// applyVolume maps linear 0..1 volume onto the exponential volume stage
func applyVolume(vol *effects.Volume, v float64) {
	if v <= 0 {
		vol.Silent = true
		return
	}
	vol.Silent = false
	if v > 1 {
		v = 1
	}
	vol.Volume = math.Log2(v)
}

// floatToPCM converts stereo float samples to s16le bytes with clipping
func floatToPCM(in [][2]float64, out []byte) {
	for i, s := range in {
		for ch := 0; ch < 2; ch++ {
			f := s[ch]
			if f > 1 {
				f = 1
			} else if f < -1 {
				f = -1
			}
			binary.LittleEndian.PutUint16(out[i*4+ch*2:], uint16(int16(f*32767)))
		}
	}
}
