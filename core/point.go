package core

// Point represents a 2D lattice coordinate
type Point struct {
	X, Y int
}

// Vec3 is a float position used by presentation primitives
type Vec3 struct {
	X, Y, Z float32
}
