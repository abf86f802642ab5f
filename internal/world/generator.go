package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavediver/internal/geom"
	"github.com/samdwyer/cavediver/internal/telemetry"
)

const (
	// Default generated area dimensions
	DefaultWidth  = 120
	DefaultHeight = 60

	// BSP parameters
	minRoomSize = 8  // Minimum room dimension, walls included
	maxRoomSize = 15 // Maximum room dimension
	minLeafSize = 10 // Minimum BSP leaf size before stopping split
)

// Layout is a generated level: rooms followed by the corridors joining them.
type Layout struct {
	Width     int
	Height    int
	Rooms     []Room
	Corridors []Corridor
}

// Start returns the center of the first room, or the middle of the area
// when no room was generated.
func (l *Layout) Start() geom.Point {
	if len(l.Rooms) == 0 {
		return geom.Pt(l.Width/2, l.Height/2)
	}
	return geom.Pt(l.Rooms[0].Center())
}

// RandomPointInRoom returns a random interior point of the given room.
func (l *Layout) RandomPointInRoom(rng *rand.Rand, roomIndex int) (geom.Point, bool) {
	if roomIndex < 0 || roomIndex >= len(l.Rooms) {
		return geom.Point{}, false
	}
	room := l.Rooms[roomIndex]
	x := room.X + 1 + rng.Intn(room.Width-2)
	y := room.Y + 1 + rng.Intn(room.Height-2)
	return geom.Pt(x, y), true
}

// Generator lays out rooms with binary space partitioning.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator drawing from rng. The same seed always
// produces the same layout.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate creates a layout of the given size.
func (g *Generator) Generate(ctx context.Context, width, height int) *Layout {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()

	layout := &Layout{Width: width, Height: height}

	// Start BSP with the entire area as root
	root := &bspNode{
		x:      0,
		y:      0,
		width:  width,
		height: height,
	}

	g.splitNode(root)
	g.createRooms(root, layout)
	g.connectRooms(root, layout)

	span.SetAttributes(
		attribute.Int("world.width", width),
		attribute.Int("world.height", height),
		attribute.Int("world.room_count", len(layout.Rooms)),
		attribute.Int("world.corridor_count", len(layout.Corridors)),
		attribute.Int64("world.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return layout
}

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// splitNode recursively splits a BSP node.
func (g *Generator) splitNode(node *bspNode) {
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	var splitHorizontally bool
	if node.width > node.height && node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else if node.height >= minLeafSize*2 {
		splitHorizontally = true
	} else if node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else {
		return
	}

	size := node.width
	if splitHorizontally {
		size = node.height
	}
	lo, hi := minLeafSize, size-minLeafSize
	if hi <= lo {
		return
	}
	splitPos := lo + g.rng.Intn(hi-lo+1)

	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	g.splitNode(node.left)
	g.splitNode(node.right)
}

// createRooms places one room in every leaf of the BSP tree.
func (g *Generator) createRooms(node *bspNode, layout *Layout) {
	if node == nil {
		return
	}

	if !node.isLeaf() {
		g.createRooms(node.left, layout)
		g.createRooms(node.right, layout)
		return
	}

	roomWidth := minRoomSize + g.rng.Intn(max(1, min(maxRoomSize-minRoomSize+1, node.width-minRoomSize+1)))
	roomHeight := minRoomSize + g.rng.Intn(max(1, min(maxRoomSize-minRoomSize+1, node.height-minRoomSize+1)))

	// Leave a one cell gap to the leaf edge
	roomWidth = min(roomWidth, node.width-2)
	roomHeight = min(roomHeight, node.height-2)
	if roomWidth < minRoomSize || roomHeight < minRoomSize {
		return
	}

	room := Room{
		X:      node.x + 1 + g.rng.Intn(max(1, node.width-roomWidth-1)),
		Y:      node.y + 1 + g.rng.Intn(max(1, node.height-roomHeight-1)),
		Width:  roomWidth,
		Height: roomHeight,
	}
	node.room = &room
	layout.Rooms = append(layout.Rooms, room)
}

// connectRooms joins sibling subtrees with a corridor, bottom up.
func (g *Generator) connectRooms(node *bspNode, layout *Layout) {
	if node == nil || node.isLeaf() {
		return
	}

	g.connectRooms(node.left, layout)
	g.connectRooms(node.right, layout)

	leftRoom := findRoom(node.left)
	rightRoom := findRoom(node.right)
	if leftRoom == nil || rightRoom == nil {
		return
	}

	layout.Corridors = append(layout.Corridors, Corridor{
		From:          geom.Pt(leftRoom.Center()),
		To:            geom.Pt(rightRoom.Center()),
		VerticalFirst: g.rng.Intn(2) == 1,
	})
}

// findRoom returns any room from a subtree, preferring the left side.
func findRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := findRoom(node.left); room != nil {
		return room
	}
	return findRoom(node.right)
}
