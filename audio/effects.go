package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/asteroid-forge/parameter"
)

// oscillator generates a raw sine wave of fixed length
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewOscillator creates a sine oscillator
func NewOscillator(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so zero volume becomes silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CueFrequency maps a cell count to the cue pitch
// One octave per CueCellsPerOctave cells, capped at CueMaxFreq
func CueFrequency(cells int) float64 {
	if cells < 0 {
		cells = 0
	}
	f := parameter.CueBaseFreq * math.Pow(2, float64(cells)/parameter.CueCellsPerOctave)
	return math.Min(f, parameter.CueMaxFreq)
}

// CreateCue generates the regeneration tone for a shape of the given size
func CreateCue(cells int, rate beep.SampleRate, volume float64) beep.Streamer {
	osc := NewOscillator(CueFrequency(cells), parameter.CueDuration, rate)
	shaped := NewEnvelope(osc, parameter.CueDuration, parameter.CueAttack, parameter.CueRelease, rate)
	return newVolume(shaped, volume)
}
