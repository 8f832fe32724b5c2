package core

// Area represents a rectangular target region
type Area struct {
	X, Y          int // Top-left corner
	Width, Height int // Dimensions (minimum 1x1)
}

// Contains reports whether p lies inside the area
func (a Area) Contains(p Point) bool {
	return p.X >= a.X && p.X < a.X+a.Width && p.Y >= a.Y && p.Y < a.Y+a.Height
}
