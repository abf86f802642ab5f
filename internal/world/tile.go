// Package world provides static level geometry and the collision map built from it.
package world

// DefaultWalkable is the walkability of any cell the collision map has no
// entry for. Open ground is the norm; features record where it differs.
const DefaultWalkable = true

// Tile is the static state of a single world cell.
type Tile struct {
	Walkable bool
}

var (
	// Wall blocks movement.
	Wall = Tile{Walkable: false}
	// Floor can be walked on.
	Floor = Tile{Walkable: true}
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t.Walkable
}
