// Package geom provides integer world coordinates and axis-aligned boxes.
package geom

// Point is a cell coordinate in world space. The world is unbounded in
// every direction, so both components may be negative.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// ManhattanDistance returns |dx| + |dy| between p and o.
func (p Point) ManhattanDistance(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Neighbors returns the four orthogonally adjacent points in the order
// west, east, north, south.
func (p Point) Neighbors() [4]Point {
	return [4]Point{
		{X: p.X - 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y},
		{X: p.X, Y: p.Y - 1},
		{X: p.X, Y: p.Y + 1},
	}
}

// Adjacent reports whether o is one orthogonal step away from p.
func (p Point) Adjacent(o Point) bool {
	return p.ManhattanDistance(o) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
