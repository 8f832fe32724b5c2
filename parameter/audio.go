package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Regeneration Cue
const (
	CueDuration = 120 * time.Millisecond
	CueAttack   = 5 * time.Millisecond
	CueRelease  = 60 * time.Millisecond

	// CueBaseFreq is the pitch of an empty shape; pitch rises with cell count
	CueBaseFreq = 220.0

	// CueMaxFreq caps the pitch for very large shapes
	CueMaxFreq = 1760.0

	// CueCellsPerOctave is the cell count that raises the pitch one octave
	CueCellsPerOctave = 200.0

	// CueVolume is the linear gain applied to the cue
	CueVolume = 0.4
)
