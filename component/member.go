package component

import (
	"github.com/lixenwraith/asteroid-forge/core"
)

// MemberComponent provides O(1) anchor resolution from any child entity
type MemberComponent struct {
	AnchorID core.Entity
}

// ChildrenComponent resides on the anchor and owns its generated children
// Sprites and Surface are replaced wholesale, never diffed
type ChildrenComponent struct {
	Sprites []core.Entity
	Surface core.Entity // 0 if none
}
