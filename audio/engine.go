package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/asteroid-forge/parameter"
)

// Engine plays regeneration cues through the system speaker
// Implements engine.AudioPlayer
type Engine struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	mixer   *beep.Mixer
	volume  float64
	running atomic.Bool
	muted   atomic.Bool
}

// NewEngine creates an audio engine; Start opens the device
func NewEngine() *Engine {
	return &Engine{
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		mixer:  &beep.Mixer{},
		volume: parameter.CueVolume,
	}
}

// Start initializes the speaker and begins mixing
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running.Load() {
		return fmt.Errorf("audio engine already running")
	}
	if err := speaker.Init(e.rate, e.rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(e.mixer)
	e.running.Store(true)
	return nil
}

// Stop silences and closes the speaker
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running.Load() {
		return
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	e.running.Store(false)
}

// Play queues a cue for a shape with the given cell count
// Returns false when not running or muted
func (e *Engine) Play(cells int) bool {
	if !e.running.Load() || e.muted.Load() {
		return false
	}
	cue := CreateCue(cells, e.rate, e.volume)
	speaker.Lock()
	e.mixer.Add(cue)
	speaker.Unlock()
	return true
}

// ToggleMute flips mute state and returns the new state
func (e *Engine) ToggleMute() bool {
	for {
		old := e.muted.Load()
		if e.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsMuted reports mute state
func (e *Engine) IsMuted() bool {
	return e.muted.Load()
}

// IsRunning reports whether the speaker is open
func (e *Engine) IsRunning() bool {
	return e.running.Load()
}
