package entity

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"

	"github.com/samdwyer/cavediver/internal/gamedata"
	"github.com/samdwyer/cavediver/internal/geom"
	"github.com/samdwyer/cavediver/internal/pathfind"
	"github.com/samdwyer/cavediver/internal/telemetry"
)

// DefaultMoveCooldown is the number of ticks an agent waits between steps
// when neither its definition nor the game config say otherwise.
const DefaultMoveCooldown = 10

// Agent is a hostile creature that hunts the player.
type Agent struct {
	Def    *gamedata.AgentDef // Reference to the agent definition
	Name   string             // Display name
	Symbol rune               // Display symbol
	Color  tcell.Color        // Display colour
	Pos    geom.Point
	Health Health

	attack       int
	moveCooldown int
	cooldown     int
	path         []geom.Point
}

// NewAgent creates an agent from its definition. A definition without a
// cooldown uses defaultCooldown.
func NewAgent(def *gamedata.AgentDef, pos geom.Point, defaultCooldown int) *Agent {
	cooldown := def.MoveCooldown
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &Agent{
		Def:          def,
		Name:         def.Name,
		Symbol:       def.GlyphRune(),
		Color:        def.TCellColor(),
		Pos:          pos,
		Health:       NewHealth(def.HP),
		attack:       max(1, def.Attack),
		moveCooldown: cooldown,
	}
}

// ID returns the agent's type identifier.
func (a *Agent) ID() string {
	return a.Def.ID
}

// Path returns the agent's current path, or nil. The slice must not be
// modified.
func (a *Agent) Path() []geom.Point {
	return a.path
}

// Cooldown returns the ticks left before the agent acts again.
func (a *Agent) Cooldown() int {
	return a.cooldown
}

// Bounds returns the cell the agent stands on, grown to cover its path
// when withPath is set.
func (a *Agent) Bounds(withPath bool) geom.BoundingBox {
	if withPath && len(a.path) > 0 {
		b, _ := geom.Enclosing(append([]geom.Point{a.Pos}, a.path...)...)
		return b
	}
	return geom.Rect(a.Pos.X, a.Pos.Y, 1, 1)
}

// Outcome reports what an agent did during one update.
type Outcome struct {
	Searched bool            // a path search ran this tick
	Search   pathfind.Result // valid when Searched
	Moved    bool
	Attacked bool
	Damage   int
}

// Update runs one tick of the agent. While cooling down it only counts
// down. Otherwise it searches a fresh path to target, steps one cell along
// it without entering target, and attacks player when adjacent afterwards.
func (a *Agent) Update(ctx context.Context, player *Player, walkable pathfind.Walkable, opts pathfind.Options) Outcome {
	var out Outcome
	if a.cooldown > 0 {
		a.cooldown--
		return out
	}
	a.cooldown = a.moveCooldown

	target := player.Pos
	out.Searched = true
	out.Search = a.search(ctx, target, walkable, opts)
	if !out.Search.Found {
		a.path = nil
		return out
	}
	a.path = out.Search.Path

	// path[0] is where we stand and the last cell is the player.
	if len(a.path) > 2 {
		a.Pos = a.path[1]
		a.path = a.path[1:]
		out.Moved = true
	}
	if len(a.path) <= 1 {
		a.path = nil
	}

	if a.Pos.Adjacent(target) && player.Health.IsAlive() {
		out.Damage = player.Health.TakeDamage(a.attack)
		out.Attacked = true
	}
	return out
}

func (a *Agent) search(ctx context.Context, target geom.Point, walkable pathfind.Walkable, opts pathfind.Options) pathfind.Result {
	tracer := telemetry.Tracer("ai")
	ctx, span := tracer.Start(ctx, "ai.pathfind")
	defer span.End()

	res := pathfind.Search(a.Pos, target, walkable, opts)

	attrs := []attribute.KeyValue{
		attribute.String("agent", a.ID()),
		attribute.Bool("found", res.Found),
		attribute.Bool("exhausted", res.Exhausted),
	}
	span.SetAttributes(append(attrs,
		attribute.Int("distance", a.Pos.ManhattanDistance(target)),
		attribute.Int("expanded", res.Expanded),
		attribute.Int("path_length", len(res.Path)),
	)...)

	aiMetrics.searches.Add(ctx, 1, metric.WithAttributes(attrs...))
	aiMetrics.expanded.Record(ctx, int64(res.Expanded), metric.WithAttributes(attrs...))
	return res
}

type searchMetrics struct {
	searches metric.Int64Counter
	expanded metric.Int64Histogram
}

// aiMetrics records through the global meter provider, which forwards to
// the provider telemetry.Setup installs.
var aiMetrics = newSearchMetrics(telemetry.Meter("ai"))

func newSearchMetrics(meter metric.Meter) searchMetrics {
	noop := metricnoop.NewMeterProvider().Meter("cavediver/ai")

	searches, err := meter.Int64Counter("ai.pathfind.searches",
		metric.WithDescription("Path searches run by agents"))
	if err != nil {
		searches, _ = noop.Int64Counter("ai.pathfind.searches")
	}
	expanded, err := meter.Int64Histogram("ai.pathfind.expanded",
		metric.WithDescription("Nodes expanded per path search"))
	if err != nil {
		expanded, _ = noop.Int64Histogram("ai.pathfind.expanded")
	}
	return searchMetrics{searches: searches, expanded: expanded}
}
