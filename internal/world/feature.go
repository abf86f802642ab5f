package world

import (
	"iter"

	"github.com/samdwyer/cavediver/internal/geom"
)

// Feature is a piece of static level geometry.
type Feature interface {
	// Tiles yields every cell the feature occupies with its tile value.
	// A feature may yield the same cell more than once; the last value wins.
	Tiles() iter.Seq2[geom.Point, Tile]
	// Bounds returns the world-space box the feature covers.
	Bounds() geom.BoundingBox
}

// Tree is a single blocking cell.
type Tree struct {
	X, Y int
}

// Tiles yields the tree's own cell as a wall.
func (t Tree) Tiles() iter.Seq2[geom.Point, Tile] {
	return func(yield func(geom.Point, Tile) bool) {
		yield(geom.Pt(t.X, t.Y), Wall)
	}
}

// Bounds returns the single cell the tree stands on.
func (t Tree) Bounds() geom.BoundingBox {
	return geom.Rect(t.X, t.Y, 1, 1)
}

// Corridor is an L-shaped walkable passage between two points. It runs
// horizontally first unless VerticalFirst is set.
type Corridor struct {
	From, To      geom.Point
	VerticalFirst bool
}

// Tiles yields every floor cell along the corridor.
func (c Corridor) Tiles() iter.Seq2[geom.Point, Tile] {
	return func(yield func(geom.Point, Tile) bool) {
		if c.VerticalFirst {
			if !vertical(c.From.Y, c.To.Y, c.From.X, yield) {
				return
			}
			horizontal(c.From.X, c.To.X, c.To.Y, yield)
			return
		}
		if !horizontal(c.From.X, c.To.X, c.From.Y, yield) {
			return
		}
		vertical(c.From.Y, c.To.Y, c.To.X, yield)
	}
}

// Bounds returns the box covering both legs of the corridor.
func (c Corridor) Bounds() geom.BoundingBox {
	b, _ := geom.Enclosing(c.From, c.To)
	return b
}

func horizontal(x1, x2, y int, yield func(geom.Point, Tile) bool) bool {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if !yield(geom.Pt(x, y), Floor) {
			return false
		}
	}
	return true
}

func vertical(y1, y2, x int, yield func(geom.Point, Tile) bool) bool {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if !yield(geom.Pt(x, y), Floor) {
			return false
		}
	}
	return true
}
