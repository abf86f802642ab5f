package game

import (
	"github.com/samdwyer/cavediver/internal/entity"
	"github.com/samdwyer/cavediver/internal/geom"
)

// Snapshot is an immutable copy of the observable game state taken at the
// end of a tick. It is safe to read from other goroutines.
type Snapshot struct {
	Session  string           `json:"session"`
	Level    string           `json:"level"`
	Checksum uint64           `json:"checksum"`
	Tick     uint64           `json:"tick"`
	State    string           `json:"state"`
	Player   PlayerSnapshot   `json:"player"`
	Agents   []AgentSnapshot  `json:"agents"`
	Camera   geom.BoundingBox `json:"camera"`
}

// PlayerSnapshot is the player's part of a Snapshot.
type PlayerSnapshot struct {
	X         int `json:"x"`
	Y         int `json:"y"`
	Health    int `json:"health"`
	MaxHealth int `json:"maxHealth"`
}

// AgentSnapshot is one agent's part of a Snapshot.
type AgentSnapshot struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	X        int          `json:"x"`
	Y        int          `json:"y"`
	Health   int          `json:"health"`
	Cooldown int          `json:"cooldown"`
	Path     []geom.Point `json:"path,omitempty"`
}

func (g *Game) takeSnapshot() *Snapshot {
	s := &Snapshot{
		Session:  g.session,
		Level:    g.level.ID,
		Checksum: g.level.Checksum,
		Tick:     g.tick,
		State:    g.state.String(),
		Player: PlayerSnapshot{
			X:         g.player.Pos.X,
			Y:         g.player.Pos.Y,
			Health:    g.player.Health.Current(),
			MaxHealth: g.player.Health.Max(),
		},
		Camera: g.camera.View(),
	}
	for _, e := range g.entities {
		if e.Kind != entity.KindAgent {
			continue
		}
		a := e.Agent
		s.Agents = append(s.Agents, AgentSnapshot{
			ID:       a.ID(),
			Name:     a.Name,
			X:        a.Pos.X,
			Y:        a.Pos.Y,
			Health:   a.Health.Current(),
			Cooldown: a.Cooldown(),
			Path:     append([]geom.Point(nil), a.Path()...),
		})
	}
	return s
}
