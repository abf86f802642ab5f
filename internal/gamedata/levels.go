package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/cavediver/internal/geom"
	"github.com/samdwyer/cavediver/internal/world"
)

// ErrUnknownLevel is returned when a level id is not in levels.json.
var ErrUnknownLevel = errors.New("unknown level")

const levelsFile = "levels.json"

// PointDef is a world position in level data.
type PointDef struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point converts the definition to a geom.Point.
func (p PointDef) Point() geom.Point {
	return geom.Pt(p.X, p.Y)
}

// FeatureDef is one piece of static geometry. Kind selects which of the
// remaining fields are used:
//   - "room": X, Y, Width, Height, Doors
//   - "tree": X, Y
//   - "corridor": From, To, VerticalFirst
type FeatureDef struct {
	Kind          string     `json:"kind"`
	X             int        `json:"x"`
	Y             int        `json:"y"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	Doors         []PointDef `json:"doors"`
	From          PointDef   `json:"from"`
	To            PointDef   `json:"to"`
	VerticalFirst bool       `json:"verticalFirst"`
}

// Validate checks the fields used by the definition's kind.
func (f FeatureDef) Validate() error {
	switch f.Kind {
	case "room":
		if f.Width < 1 || f.Height < 1 {
			return fmt.Errorf("room at (%d,%d) has size %dx%d", f.X, f.Y, f.Width, f.Height)
		}
	case "tree", "corridor":
	default:
		return fmt.Errorf("unknown feature kind %q", f.Kind)
	}
	return nil
}

// Room converts a "room" definition.
func (f FeatureDef) Room() world.Room {
	doors := make([]geom.Point, len(f.Doors))
	for i, d := range f.Doors {
		doors[i] = d.Point()
	}
	return world.Room{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height, Doors: doors}
}

// Tree converts a "tree" definition.
func (f FeatureDef) Tree() world.Tree {
	return world.Tree{X: f.X, Y: f.Y}
}

// Corridor converts a "corridor" definition.
func (f FeatureDef) Corridor() world.Corridor {
	return world.Corridor{From: f.From.Point(), To: f.To.Point(), VerticalFirst: f.VerticalFirst}
}

// SpawnDef places an agent of the given type.
type SpawnDef struct {
	Agent string `json:"agent"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// LevelDef is a hand-built level.
type LevelDef struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Player   PointDef     `json:"player"`
	Features []FeatureDef `json:"features"` // in declaration order
	Spawns   []SpawnDef   `json:"spawns"`
}

// LevelsFile represents the structure of levels.json.
type LevelsFile struct {
	Levels []LevelDef `json:"levels"`
}

// Level is a loaded level with the checksum of the data it came from.
type Level struct {
	LevelDef
	Checksum uint64
}

// LoadLevel loads the level with the given id from the embedded levels.json.
func LoadLevel(id string) (*Level, error) {
	file, err := Load[LevelsFile](levelsFile)
	if err != nil {
		return nil, err
	}
	sum, err := Checksum(levelsFile)
	if err != nil {
		return nil, err
	}
	for _, def := range file.Levels {
		if def.ID == id {
			return &Level{LevelDef: def, Checksum: sum}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, id)
}

// LevelIDs lists the ids of every embedded level.
func LevelIDs() ([]string, error) {
	file, err := Load[LevelsFile](levelsFile)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(file.Levels))
	for i, def := range file.Levels {
		ids[i] = def.ID
	}
	return ids, nil
}
