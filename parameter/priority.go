package parameter

// System Execution Priorities (lower runs first)
const (
	PriorityRegeneration = 100
)
