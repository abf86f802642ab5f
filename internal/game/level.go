package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/samdwyer/cavediver/internal/entity"
	"github.com/samdwyer/cavediver/internal/gamedata"
	"github.com/samdwyer/cavediver/internal/geom"
	"github.com/samdwyer/cavediver/internal/world"
)

// Level is the content a run starts from.
type Level struct {
	ID       string
	Name     string
	Checksum uint64 // fingerprint of the level data
	Player   geom.Point
	Entities []entity.Entity // static features first, then agents
}

// buildLevel loads the configured level, or generates one.
func buildLevel(ctx context.Context, cfg Config, rng *rand.Rand, agents *gamedata.AgentRegistry) (*Level, error) {
	if cfg.Level == LevelGenerated {
		return generateLevel(ctx, rng, agents, cfg.AI), nil
	}
	return loadLevel(cfg.Level, agents, cfg.AI.MoveCooldown)
}

// loadLevel builds a hand-made level from levels.json.
func loadLevel(id string, agents *gamedata.AgentRegistry, cooldown int) (*Level, error) {
	def, err := gamedata.LoadLevel(id)
	if errors.Is(err, gamedata.ErrUnknownLevel) {
		if ids, idsErr := gamedata.LevelIDs(); idsErr == nil {
			return nil, fmt.Errorf("load level: %w (choose one of: %s, %s)", err, strings.Join(ids, ", "), LevelGenerated)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}

	lvl := &Level{
		ID:       def.ID,
		Name:     def.Name,
		Checksum: def.Checksum,
		Player:   def.Player.Point(),
	}
	for i, f := range def.Features {
		e, err := entity.FromFeatureDef(f)
		if err != nil {
			return nil, fmt.Errorf("level %s feature %d: %w", id, i, err)
		}
		lvl.Entities = append(lvl.Entities, e)
	}
	for _, s := range def.Spawns {
		agent := agents.GetByID(s.Agent)
		if agent == nil {
			return nil, fmt.Errorf("level %s: unknown agent %q", id, s.Agent)
		}
		a := entity.NewAgent(agent, geom.Pt(s.X, s.Y), cooldown)
		lvl.Entities = append(lvl.Entities, entity.NewAgentEntity(a))
	}
	return lvl, nil
}

// generateLevel lays out a BSP dungeon, puts the player in the first room
// and one random agent in every other room. Agents listed in ai.Exclude are
// never drawn.
func generateLevel(ctx context.Context, rng *rand.Rand, agents *gamedata.AgentRegistry, ai AIConfig) *Level {
	layout := world.NewGenerator(rng).Generate(ctx, world.DefaultWidth, world.DefaultHeight)

	lvl := &Level{
		ID:       LevelGenerated,
		Name:     "the depths",
		Checksum: layoutChecksum(layout),
		Player:   layout.Start(),
	}
	for _, r := range layout.Rooms {
		lvl.Entities = append(lvl.Entities, entity.NewRoom(r))
	}
	for _, c := range layout.Corridors {
		lvl.Entities = append(lvl.Entities, entity.NewCorridor(c))
	}
	allow := gamedata.Excluding(ai.Exclude...)
	for i := 1; i < len(layout.Rooms); i++ {
		def := agents.SpawnRandom(rng, allow)
		if def == nil {
			break
		}
		p, ok := layout.RandomPointInRoom(rng, i)
		if !ok {
			continue
		}
		lvl.Entities = append(lvl.Entities, entity.NewAgentEntity(entity.NewAgent(def, p, ai.MoveCooldown)))
	}
	return lvl
}

// layoutChecksum fingerprints a generated layout so runs with the same seed
// can be matched up.
func layoutChecksum(l *world.Layout) uint64 {
	h := xxhash.New()
	fmt.Fprintf(h, "%dx%d", l.Width, l.Height)
	for _, r := range l.Rooms {
		fmt.Fprintf(h, "|r%d,%d,%d,%d", r.X, r.Y, r.Width, r.Height)
	}
	for _, c := range l.Corridors {
		fmt.Fprintf(h, "|c%d,%d,%d,%d,%t", c.From.X, c.From.Y, c.To.X, c.To.Y, c.VerticalFirst)
	}
	return h.Sum64()
}
