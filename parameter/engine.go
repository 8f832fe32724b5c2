package parameter

import "time"

// Loop & Engine Timing
const (
	// GameUpdateInterval is the world update (regeneration check) and redraw interval
	GameUpdateInterval = 50 * time.Millisecond
)

// Regeneration
const (
	// RegenerationWorkers bounds concurrent per-instance generation
	RegenerationWorkers = 4

	// StoreInitialCapacity is the starting entity slice capacity of a component store
	StoreInitialCapacity = 64

	// GenerateTimeSmoothing is the moving-average weight of the latest generation time
	GenerateTimeSmoothing = 0.2
)
