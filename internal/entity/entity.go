// Package entity provides the things that populate a level: static
// features, the player and hostile agents.
package entity

import (
	"fmt"

	"github.com/samdwyer/cavediver/internal/gamedata"
	"github.com/samdwyer/cavediver/internal/geom"
	"github.com/samdwyer/cavediver/internal/world"
)

// Kind tags which variant an Entity holds.
type Kind int

const (
	KindRoom Kind = iota
	KindTree
	KindCorridor
	KindAgent
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRoom:
		return "room"
	case KindTree:
		return "tree"
	case KindCorridor:
		return "corridor"
	case KindAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// Entity is one member of a level's entity list. Exactly the field named
// by Kind is meaningful.
type Entity struct {
	Kind     Kind
	Room     world.Room
	Tree     world.Tree
	Corridor world.Corridor
	Agent    *Agent
}

// NewRoom wraps a room.
func NewRoom(r world.Room) Entity { return Entity{Kind: KindRoom, Room: r} }

// NewTree wraps a tree.
func NewTree(t world.Tree) Entity { return Entity{Kind: KindTree, Tree: t} }

// NewCorridor wraps a corridor.
func NewCorridor(c world.Corridor) Entity { return Entity{Kind: KindCorridor, Corridor: c} }

// NewAgentEntity wraps an agent.
func NewAgentEntity(a *Agent) Entity { return Entity{Kind: KindAgent, Agent: a} }

// FromFeatureDef builds a static entity from level data.
func FromFeatureDef(def gamedata.FeatureDef) (Entity, error) {
	if err := def.Validate(); err != nil {
		return Entity{}, err
	}
	switch def.Kind {
	case "room":
		return NewRoom(def.Room()), nil
	case "tree":
		return NewTree(def.Tree()), nil
	case "corridor":
		return NewCorridor(def.Corridor()), nil
	default:
		return Entity{}, fmt.Errorf("unknown feature kind %q", def.Kind)
	}
}

// Static returns the entity as collision geometry. Agents are not static
// and report false.
func (e Entity) Static() (world.Feature, bool) {
	switch e.Kind {
	case KindRoom:
		return e.Room, true
	case KindTree:
		return e.Tree, true
	case KindCorridor:
		return e.Corridor, true
	default:
		return nil, false
	}
}

// Bounds returns the world box used to cull the entity. With showPaths an
// agent's box grows to cover its current path.
func (e Entity) Bounds(showPaths bool) geom.BoundingBox {
	switch e.Kind {
	case KindRoom:
		return e.Room.Bounds()
	case KindTree:
		return e.Tree.Bounds()
	case KindCorridor:
		return e.Corridor.Bounds()
	case KindAgent:
		return e.Agent.Bounds(showPaths)
	default:
		return geom.BoundingBox{}
	}
}

// StaticFeatures collects the collision geometry of a list of entities in
// order.
func StaticFeatures(entities []Entity) []world.Feature {
	features := make([]world.Feature, 0, len(entities))
	for _, e := range entities {
		if f, ok := e.Static(); ok {
			features = append(features, f)
		}
	}
	return features
}
