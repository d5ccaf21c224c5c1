package audio

import (
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/gopxl/beep"
)

// oscillator generates a sine wave, optionally bounded in length.
// Sounds in the core are synthesized; real sample playback belongs to a
// richer audio collaborator.
type oscillator struct {
	freq     float64
	phase    float64
	rate     beep.SampleRate
	remain   int  // Samples left, ignored when infinite
	infinite bool
}

// newOscillator creates a sine streamer of the given duration in samples.
// samples <= 0 means loop forever (until the owning voice is stopped).
func newOscillator(freq float64, rate beep.SampleRate, samples int) *oscillator {
	return &oscillator{
		freq:     freq,
		rate:     rate,
		remain:   samples,
		infinite: samples <= 0,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	step := o.freq / float64(o.rate)
	for i := range samples {
		if !o.infinite && o.remain <= 0 {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += step
		if o.phase >= 1 {
			o.phase -= 1
		}
		if !o.infinite {
			o.remain--
		}
	}
	return len(samples), true
}

func (o *oscillator) Err() error {
	return nil
}

// baseFrequencies maps well-known sound names to tones
var baseFrequencies = map[string]float64{
	"collision": 220,
	"spawn":     440,
	"destroy":   110,
	"pickup":    660,
	"alarm":     880,
}

// freqFor resolves a sound name to a tone. Unknown names hash to a stable
// frequency in the 200-800 Hz band so every sound is audible and distinct.
func freqFor(sound string) float64 {
	if f, ok := baseFrequencies[sound]; ok {
		return f
	}
	return 200 + float64(xxhash.Sum64String(sound)%600)
}
