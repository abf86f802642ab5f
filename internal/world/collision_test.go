package world

import (
	"context"
	"iter"
	"testing"

	"github.com/samdwyer/cavediver/internal/geom"
)

// cellFeature claims a single cell with a fixed tile.
type cellFeature struct {
	p    geom.Point
	tile Tile
}

func (c cellFeature) Tiles() iter.Seq2[geom.Point, Tile] {
	return func(yield func(geom.Point, Tile) bool) { yield(c.p, c.tile) }
}

func (c cellFeature) Bounds() geom.BoundingBox { return geom.Rect(c.p.X, c.p.Y, 1, 1) }

func TestCollisionMapMissingIsWalkable(t *testing.T) {
	m := BuildCollisionMap(context.Background(), nil)

	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	if _, ok := m.Tile(geom.Pt(3, 3)); ok {
		t.Error("Tile() on empty map should report no entry")
	}
	if !m.Walkable(geom.Pt(-100, 42)) {
		t.Error("Walkable() for a missing entry should be true")
	}
}

func TestCollisionMapLastWriteWins(t *testing.T) {
	c := geom.Pt(5, 5)

	tests := []struct {
		name     string
		features []Feature
		want     bool
	}{
		{"wall then floor", []Feature{cellFeature{c, Wall}, cellFeature{c, Floor}}, true},
		{"floor then wall", []Feature{cellFeature{c, Floor}, cellFeature{c, Wall}}, false},
		{"tree then corridor", []Feature{Tree{X: 5, Y: 5}, Corridor{From: geom.Pt(0, 5), To: geom.Pt(9, 5)}}, true},
		{"corridor then tree", []Feature{Corridor{From: geom.Pt(0, 5), To: geom.Pt(9, 5)}, Tree{X: 5, Y: 5}}, false},
	}

	for _, tt := range tests {
		m := BuildCollisionMap(context.Background(), tt.features)
		tile, ok := m.Tile(c)
		if !ok {
			t.Errorf("%s: Tile(%v) missing", tt.name, c)
			continue
		}
		if tile.Walkable != tt.want {
			t.Errorf("%s: Tile(%v).Walkable = %v, want %v", tt.name, c, tile.Walkable, tt.want)
		}
	}
}

func TestRoomTiles(t *testing.T) {
	room := Room{X: 2, Y: 2, Width: 5, Height: 4, Doors: []geom.Point{geom.Pt(4, 2)}}
	m := BuildCollisionMap(context.Background(), []Feature{room})

	if m.Len() != 20 {
		t.Errorf("Len() = %d, want 20", m.Len())
	}

	tests := []struct {
		p    geom.Point
		want bool
	}{
		{geom.Pt(2, 2), false}, // corner
		{geom.Pt(6, 3), false}, // right wall
		{geom.Pt(3, 5), false}, // bottom wall
		{geom.Pt(3, 3), true},  // interior
		{geom.Pt(5, 4), true},  // interior
		{geom.Pt(4, 2), true},  // door
		{geom.Pt(1, 1), true},  // outside, no entry
	}
	for _, tt := range tests {
		if got := m.Walkable(tt.p); got != tt.want {
			t.Errorf("Walkable(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestCorridorOpensDoorway(t *testing.T) {
	room := Room{X: 0, Y: 0, Width: 6, Height: 6}
	corridor := Corridor{From: geom.Pt(3, 3), To: geom.Pt(12, 3)}

	m := BuildCollisionMap(context.Background(), []Feature{room, corridor})

	if !m.Walkable(geom.Pt(5, 3)) {
		t.Error("corridor declared after the room should open the wall at (5,3)")
	}
	if m.Walkable(geom.Pt(5, 2)) {
		t.Error("wall next to the doorway should stay blocked")
	}
}

func TestCorridorTiles(t *testing.T) {
	tests := []struct {
		name     string
		corridor Corridor
		elbow    geom.Point
	}{
		{"horizontal first", Corridor{From: geom.Pt(0, 0), To: geom.Pt(3, 2)}, geom.Pt(3, 0)},
		{"vertical first", Corridor{From: geom.Pt(0, 0), To: geom.Pt(3, 2), VerticalFirst: true}, geom.Pt(0, 2)},
	}

	for _, tt := range tests {
		seen := map[geom.Point]bool{}
		for p, tile := range tt.corridor.Tiles() {
			if !tile.Walkable {
				t.Errorf("%s: corridor tile %v is not walkable", tt.name, p)
			}
			seen[p] = true
		}
		if !seen[tt.elbow] {
			t.Errorf("%s: corridor does not pass through elbow %v", tt.name, tt.elbow)
		}
		if !seen[tt.corridor.From] || !seen[tt.corridor.To] {
			t.Errorf("%s: corridor does not include both end points", tt.name)
		}
	}
}

func TestTreeBounds(t *testing.T) {
	tree := Tree{X: 15, Y: 15}
	want := geom.BoundingBox{Left: 15, Right: 16, Top: 15, Bottom: 16}
	if got := tree.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
}
