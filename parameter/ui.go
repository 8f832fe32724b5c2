package parameter

// Tuning steps applied per keypress in the sandbox
const (
	FrequencyStep float32 = 0.01
	AmplitudeStep float32 = 0.2
	RadiusStep    float32 = 1.0
)

// Layout & Margins
const (
	// BottomMargin reserves the status bar line
	BottomMargin = 1

	// CellColumns is the number of terminal columns per lattice cell (aspect correction)
	CellColumns = 2
)

// UI Symbols
const (
	AudioStr    = "♫ "
	SelectedStr = "▶"
	CellRune    = '█'
)
