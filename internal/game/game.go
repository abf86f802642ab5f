package game

import (
	"context"
	"errors"
	"iter"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/cavediver/internal/entity"
	"github.com/samdwyer/cavediver/internal/gamedata"
	"github.com/samdwyer/cavediver/internal/geom"
	"github.com/samdwyer/cavediver/internal/pathfind"
	"github.com/samdwyer/cavediver/internal/telemetry"
	"github.com/samdwyer/cavediver/internal/ui"
	"github.com/samdwyer/cavediver/internal/view"
	"github.com/samdwyer/cavediver/internal/world"
)

// Size used when the game runs without a screen.
const (
	headlessWidth  = 80
	headlessHeight = 24
)

// Glyphs and colours of the world.
var (
	wallCell     = view.Cell{Rune: '#', Fg: tcell.ColorGray}
	floorCell    = view.Cell{Rune: '.', Fg: tcell.ColorDarkGray}
	treeCell     = view.Cell{Rune: 'T', Fg: tcell.ColorGreen}
	pathRune     = '·'
	pathGradient = gamedata.Gradient("#FFD54F", "#FF7043", 8)
)

// Game holds the entire game state.
type Game struct {
	cfg      Config
	log      logr.Logger
	screen   *ui.Screen // nil when headless
	renderer *ui.Renderer
	copyText func(string) error

	session   string
	level     *Level
	collision *world.CollisionMap
	entities  []entity.Entity
	player    *entity.Player
	camera    *view.Camera
	frame     *view.Frame
	activity  *ui.ActivityLog
	fps       *ui.FPSCounter
	termW     int
	termH     int
	state     State
	showPaths bool
	running   bool
	tick      uint64

	snapshot atomic.Pointer[Snapshot]
}

// New creates a game for the configured level. screen may be nil, in which
// case the game can be stepped with Update and Draw but not Run.
func New(ctx context.Context, cfg Config, logger logr.Logger, screen *ui.Screen) (*Game, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	agents, err := gamedata.LoadAgentRegistry()
	if err != nil {
		return nil, err
	}
	level, err := buildLevel(ctx, cfg, rng, agents)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:       cfg,
		log:       logger.WithName("game"),
		screen:    screen,
		copyText:  clipboard.WriteAll,
		session:   telemetry.SessionID(),
		level:     level,
		entities:  level.Entities,
		player:    entity.NewPlayer(level.Player),
		camera:    view.NewCamera(0, 0, 0, 0),
		fps:       ui.NewFPSCounter(time.Now()),
		termW:     headlessWidth,
		termH:     headlessHeight,
		state:     StatePlaying,
		showPaths: cfg.AI.ShowPaths,
		running:   true,
	}
	if screen != nil {
		g.renderer = ui.NewRenderer(screen)
		g.termW, g.termH = screen.Size()
	}
	g.collision = world.BuildCollisionMap(ctx, entity.StaticFeatures(g.entities))
	g.frame = view.NewFrame(g.termW, g.termH)
	g.activity = ui.NewActivityLog(ui.LogWidth(g.termW), ui.DefaultLogEntries)
	g.camera.Follow(g.player.Pos, g.termW, g.termH)

	g.activity.Add(ui.T(ui.MsgWelcome, level.Name))
	g.publish()

	span.SetAttributes(
		attribute.String("level.id", level.ID),
		attribute.Int64("level.seed", seed),
		attribute.Int("level.entities", len(g.entities)),
		attribute.Int("level.agent_types", agents.Count()),
		attribute.Int("level.tiles", g.collision.Len()),
		attribute.Int("player.start_x", level.Player.X),
		attribute.Int("player.start_y", level.Player.Y),
	)
	g.log.Info("level ready", "level", level.ID, "seed", seed,
		"entities", len(g.entities), "checksum", level.Checksum)
	return g, nil
}

// Run executes the main game loop until the player quits or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	if g.screen == nil {
		return errors.New("game has no screen")
	}
	defer g.Close()

	for g.running {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.Draw()
		g.renderer.Present(g.frame)
		g.fps.Tick(time.Now())

		ev := g.screen.PollEvent(g.cfg.TickInterval())
		g.Update(ctx, intentFor(ev))
	}
	return nil
}

// Update advances the game by one tick. Phases run in a fixed order:
// static features, the player, agents in declaration order, the camera.
// Agents path toward where the player stands after the player phase.
func (g *Game) Update(ctx context.Context, in Intent) {
	switch in.Kind {
	case IntentQuit:
		g.running = false
		return
	case IntentResize:
		g.termW, g.termH = in.W, in.H
		if g.screen != nil {
			g.screen.Sync()
		}
	case IntentCopyFrame:
		g.copyFrame()
	case IntentTogglePaths:
		g.showPaths = !g.showPaths
		if g.showPaths {
			g.activity.Add(ui.T(ui.MsgPathsShown))
		} else {
			g.activity.Add(ui.T(ui.MsgPathsHidden))
		}
	}

	if g.state == StatePlaying {
		if in.Kind == IntentMove && !g.player.AttemptMove(in.DX, in.DY, g.playerWalkable) {
			g.activity.Add(ui.T(ui.MsgBlocked))
		}
		g.updateAgents(ctx)
	}

	g.camera.Follow(g.player.Pos, g.termW, g.termH)
	g.tick++
	g.publish()
}

func (g *Game) updateAgents(ctx context.Context) {
	opts := pathfind.Options{MaxExpansions: g.cfg.AI.SearchBudget}
	for _, e := range g.entities {
		if e.Kind != entity.KindAgent {
			continue
		}
		a := e.Agent
		out := a.Update(ctx, g.player, g.agentWalkable(a), opts)
		if out.Searched && out.Search.Exhausted {
			g.log.V(1).Info("search budget exhausted", "agent", a.ID(),
				"x", a.Pos.X, "y", a.Pos.Y, "expanded", out.Search.Expanded)
		}
		if !out.Attacked {
			continue
		}
		g.activity.Add(ui.T(ui.MsgAgentHits, a.Name, out.Damage))
		if !g.player.Health.IsAlive() {
			g.state = StateDead
			g.activity.Add(ui.T(ui.MsgPlayerDied))
			g.log.Info("player died", "tick", g.tick, "killer", a.ID())
			return
		}
	}
}

// playerWalkable blocks walls and cells held by agents.
func (g *Game) playerWalkable(p geom.Point) bool {
	return g.collision.Walkable(p) && g.agentAt(p) == nil
}

// agentWalkable returns the walkability seen by self: walls and the other
// agents block it.
func (g *Game) agentWalkable(self *entity.Agent) pathfind.Walkable {
	return func(p geom.Point) bool {
		if !g.collision.Walkable(p) {
			return false
		}
		other := g.agentAt(p)
		return other == nil || other == self
	}
}

func (g *Game) agentAt(p geom.Point) *entity.Agent {
	for _, e := range g.entities {
		if e.Kind == entity.KindAgent && e.Agent.Pos == p {
			return e.Agent
		}
	}
	return nil
}

// Draw renders the current state into the frame.
func (g *Game) Draw() {
	g.frame.Resize(g.termW, g.termH)
	g.frame.SetOrigin(g.camera.X, g.camera.Y)

	visible := g.camera.View()
	for _, e := range g.entities {
		if !visible.Intersects(e.Bounds(g.showPaths)) {
			continue
		}
		g.drawEntity(e)
	}
	g.frame.SetWorld(g.player.Pos.X, g.player.Pos.Y,
		view.Cell{Rune: g.player.Symbol, Fg: tcell.ColorYellow})

	ui.DrawHUD(g.frame, ui.HUD{
		Health: g.player.Health.String(),
		Weapon: ui.T(ui.MsgStartingWeapon),
		FPS:    g.fps.FPS(),
		Log:    g.activity,
	})
}

func (g *Game) drawEntity(e entity.Entity) {
	switch e.Kind {
	case entity.KindRoom:
		g.drawTiles(e.Room.Tiles())
	case entity.KindCorridor:
		g.drawTiles(e.Corridor.Tiles())
	case entity.KindTree:
		g.frame.SetWorld(e.Tree.X, e.Tree.Y, treeCell)
	case entity.KindAgent:
		a := e.Agent
		if g.showPaths {
			g.drawPath(a.Path())
		}
		g.frame.SetWorld(a.Pos.X, a.Pos.Y, view.Cell{Rune: a.Symbol, Fg: a.Color})
	}
}

func (g *Game) drawTiles(tiles iter.Seq2[geom.Point, world.Tile]) {
	for p, t := range tiles {
		c := floorCell
		if !t.IsPassable() {
			c = wallCell
		}
		g.frame.SetWorld(p.X, p.Y, c)
	}
}

// drawPath marks the cells between an agent and its target, fading toward
// the target.
func (g *Game) drawPath(path []geom.Point) {
	if len(path) < 3 {
		return
	}
	steps := path[1 : len(path)-1]
	for i, p := range steps {
		c := pathGradient[min(i, len(pathGradient)-1)]
		g.frame.SetWorld(p.X, p.Y, view.Cell{Rune: pathRune, Fg: c})
	}
}

func (g *Game) copyFrame() {
	if err := g.copyText(g.frame.String()); err != nil {
		g.log.Error(err, "copy frame to clipboard")
		g.activity.Add(ui.T(ui.MsgClipboardFailed, err.Error()))
		return
	}
	g.activity.Add(ui.T(ui.MsgFrameCopied))
}

func (g *Game) publish() {
	g.snapshot.Store(g.takeSnapshot())
}

// Snapshot returns the state published at the end of the last tick. It may
// be called from any goroutine.
func (g *Game) Snapshot() *Snapshot {
	return g.snapshot.Load()
}

// Collision returns the level's collision map. It is never modified after
// New returns.
func (g *Game) Collision() *world.CollisionMap {
	return g.collision
}

// SearchBudget returns the configured per-search expansion limit.
func (g *Game) SearchBudget() int {
	return g.cfg.AI.SearchBudget
}

// State returns the current game state.
func (g *Game) State() State {
	return g.state
}

// Running reports whether the loop should keep going.
func (g *Game) Running() bool {
	return g.running
}

// Frame returns the frame drawn by the last Draw.
func (g *Game) Frame() *view.Frame {
	return g.frame
}

// Player returns the player.
func (g *Game) Player() *entity.Player {
	return g.player
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}
