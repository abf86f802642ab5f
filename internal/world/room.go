package world

import (
	"iter"

	"github.com/samdwyer/cavediver/internal/geom"
)

// Room is a walled rectangle. The outermost ring of cells is wall, the
// inside is floor, and any cell listed in Doors is floor even on the ring.
type Room struct {
	X, Y          int          // Top-left corner position
	Width, Height int          // Dimensions including the walls
	Doors         []geom.Point // Openings in the wall
}

// Center returns the center coordinates of the room.
func (r Room) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the room.
func (r Room) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Bounds returns the box covering the room and its walls.
func (r Room) Bounds() geom.BoundingBox {
	return geom.Rect(r.X, r.Y, r.Width, r.Height)
}

// IsWall returns true if (x, y) lies on the room's wall ring and is not a door.
func (r Room) IsWall(x, y int) bool {
	if !r.Contains(x, y) {
		return false
	}
	edge := x == r.X || x == r.X+r.Width-1 || y == r.Y || y == r.Y+r.Height-1
	if !edge {
		return false
	}
	for _, d := range r.Doors {
		if d.X == x && d.Y == y {
			return false
		}
	}
	return true
}

// Tiles yields every cell of the room row by row.
func (r Room) Tiles() iter.Seq2[geom.Point, Tile] {
	return func(yield func(geom.Point, Tile) bool) {
		for y := r.Y; y < r.Y+r.Height; y++ {
			for x := r.X; x < r.X+r.Width; x++ {
				tile := Floor
				if r.IsWall(x, y) {
					tile = Wall
				}
				if !yield(geom.Pt(x, y), tile) {
					return
				}
			}
		}
	}
}
