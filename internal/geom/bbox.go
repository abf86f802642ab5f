package geom

// BoundingBox is an axis-aligned rectangle in world space. Right and Bottom
// are exclusive, so a single cell at (x, y) is {x, x+1, y, y+1}.
//
// Boxes are not validated. Intersection results for a box with Right <= Left
// or Bottom <= Top follow the same comparisons as for any other box.
type BoundingBox struct {
	Left, Right int
	Top, Bottom int
}

// Rect builds the box covering w by h cells with its top-left corner at (x, y).
func Rect(x, y, w, h int) BoundingBox {
	return BoundingBox{Left: x, Right: x + w, Top: y, Bottom: y + h}
}

// Intersects returns true if the two boxes overlap. Boxes that only share
// an edge or a corner do not intersect.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Left < o.Right &&
		b.Right > o.Left &&
		b.Top < o.Bottom &&
		b.Bottom > o.Top
}

// Contains returns true if the point lies inside the box.
func (b BoundingBox) Contains(p Point) bool {
	return p.X >= b.Left && p.X < b.Right && p.Y >= b.Top && p.Y < b.Bottom
}

// Width returns Right - Left.
func (b BoundingBox) Width() int { return b.Right - b.Left }

// Height returns Bottom - Top.
func (b BoundingBox) Height() int { return b.Bottom - b.Top }

// Enclosing returns the smallest box covering every given point, or false
// if no points are given.
func Enclosing(points ...Point) (BoundingBox, bool) {
	if len(points) == 0 {
		return BoundingBox{}, false
	}
	b := BoundingBox{
		Left:   points[0].X,
		Right:  points[0].X + 1,
		Top:    points[0].Y,
		Bottom: points[0].Y + 1,
	}
	for _, p := range points[1:] {
		b.Left = min(b.Left, p.X)
		b.Right = max(b.Right, p.X+1)
		b.Top = min(b.Top, p.Y)
		b.Bottom = max(b.Bottom, p.Y+1)
	}
	return b, true
}
