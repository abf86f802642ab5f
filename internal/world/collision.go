package world

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavediver/internal/geom"
	"github.com/samdwyer/cavediver/internal/telemetry"
)

// CollisionMap records the static tiles of a level. Cells with no entry
// take DefaultWalkable. The map is never modified after it is built, so it
// is safe to read from any goroutine.
type CollisionMap struct {
	tiles map[geom.Point]Tile
}

// BuildCollisionMap inserts every feature's tiles in declaration order.
// When two features claim the same cell the later one wins.
func BuildCollisionMap(ctx context.Context, features []Feature) *CollisionMap {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.build_collision")
	defer span.End()

	m := &CollisionMap{tiles: make(map[geom.Point]Tile)}
	writes := 0
	for _, f := range features {
		for p, tile := range f.Tiles() {
			m.tiles[p] = tile
			writes++
		}
	}

	span.SetAttributes(
		attribute.Int("world.features", len(features)),
		attribute.Int("world.tile_writes", writes),
		attribute.Int("world.tiles", len(m.tiles)),
	)
	return m
}

// Tile returns the recorded tile at p and whether one exists.
func (m *CollisionMap) Tile(p geom.Point) (Tile, bool) {
	t, ok := m.tiles[p]
	return t, ok
}

// Walkable returns true if p can be occupied.
func (m *CollisionMap) Walkable(p geom.Point) bool {
	if t, ok := m.tiles[p]; ok {
		return t.IsPassable()
	}
	return DefaultWalkable
}

// Len returns the number of recorded tiles.
func (m *CollisionMap) Len() int {
	return len(m.tiles)
}
