package entity

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/samdwyer/cavediver/internal/gamedata"
	"github.com/samdwyer/cavediver/internal/geom"
	"github.com/samdwyer/cavediver/internal/pathfind"
	"github.com/samdwyer/cavediver/internal/world"
)

func open(geom.Point) bool { return true }

func testAgentDef(cooldown int) *gamedata.AgentDef {
	return &gamedata.AgentDef{
		ID:           "goblin",
		Name:         "Goblin",
		Glyph:        "G",
		Color:        "#4CAF50",
		HP:           10,
		Attack:       1,
		MoveCooldown: cooldown,
	}
}

func TestHealth(t *testing.T) {
	h := NewHealth(10)
	if got := h.TakeDamage(3); got != 3 {
		t.Errorf("TakeDamage(3) = %d, want 3", got)
	}
	if got := h.TakeDamage(20); got != 7 {
		t.Errorf("TakeDamage(20) = %d, want 7", got)
	}
	if h.IsAlive() {
		t.Error("IsAlive() = true after lethal damage")
	}
	if got := h.TakeDamage(-1); got != 0 {
		t.Errorf("TakeDamage(-1) = %d, want 0", got)
	}
	if got := h.String(); got != "0/10" {
		t.Errorf("String() = %q, want %q", got, "0/10")
	}
}

func TestPlayerAttemptMove(t *testing.T) {
	wall := geom.Pt(11, 10)
	walkable := func(p geom.Point) bool { return p != wall }

	p := NewPlayer(geom.Pt(10, 10))
	if p.Symbol != '@' {
		t.Errorf("Symbol = %q, want '@'", p.Symbol)
	}
	if p.Health.Current() != PlayerMaxHP {
		t.Errorf("Health = %d, want %d", p.Health.Current(), PlayerMaxHP)
	}

	if p.AttemptMove(1, 0, walkable) {
		t.Error("AttemptMove into wall succeeded")
	}
	if p.Pos != geom.Pt(10, 10) {
		t.Errorf("Pos = %v after blocked move, want (10,10)", p.Pos)
	}
	if !p.AttemptMove(0, -1, walkable) {
		t.Error("AttemptMove onto open cell failed")
	}
	if p.Pos != geom.Pt(10, 9) {
		t.Errorf("Pos = %v, want (10,9)", p.Pos)
	}
}

func TestNewAgentDefaults(t *testing.T) {
	a := NewAgent(testAgentDef(0), geom.Pt(1, 1), 7)
	if a.moveCooldown != 7 {
		t.Errorf("moveCooldown = %d, want default 7", a.moveCooldown)
	}
	if a.Symbol != 'G' {
		t.Errorf("Symbol = %q, want 'G'", a.Symbol)
	}
	if a.Health.Max() != 10 {
		t.Errorf("Health.Max() = %d, want 10", a.Health.Max())
	}

	b := NewAgent(testAgentDef(3), geom.Pt(1, 1), 7)
	if b.moveCooldown != 3 {
		t.Errorf("moveCooldown = %d, want 3 from definition", b.moveCooldown)
	}
}

func TestAgentRespectsCooldown(t *testing.T) {
	ctx := context.Background()
	a := NewAgent(testAgentDef(3), geom.Pt(0, 0), DefaultMoveCooldown)
	player := NewPlayer(geom.Pt(10, 0))

	// First update acts immediately, then waits three ticks.
	var moves []bool
	for range 8 {
		out := a.Update(ctx, player, open, pathfind.Options{})
		moves = append(moves, out.Moved)
	}
	want := []bool{true, false, false, false, true, false, false, false}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("tick %d: Moved = %v, want %v", i, moves[i], want[i])
		}
	}
	if a.Pos != geom.Pt(2, 0) {
		t.Errorf("Pos = %v, want (2,0)", a.Pos)
	}
}

func TestAgentStepsAlongPath(t *testing.T) {
	ctx := context.Background()
	a := NewAgent(testAgentDef(1), geom.Pt(0, 0), DefaultMoveCooldown)
	player := NewPlayer(geom.Pt(4, 0))

	out := a.Update(ctx, player, open, pathfind.Options{})
	if !out.Searched || !out.Search.Found {
		t.Fatalf("Update() = %+v, want a successful search", out)
	}
	if a.Pos != geom.Pt(1, 0) {
		t.Errorf("Pos = %v, want (1,0)", a.Pos)
	}
	path := a.Path()
	if len(path) != 4 || path[0] != a.Pos || path[len(path)-1] != player.Pos {
		t.Errorf("Path() = %v, want 4 cells from agent to player", path)
	}
}

func TestAgentNeverStepsOntoPlayer(t *testing.T) {
	ctx := context.Background()
	a := NewAgent(testAgentDef(1), geom.Pt(0, 0), DefaultMoveCooldown)
	player := NewPlayer(geom.Pt(3, 0))

	for range 20 {
		a.Update(ctx, player, open, pathfind.Options{})
		if a.Pos == player.Pos {
			t.Fatalf("agent stepped onto the player at %v", a.Pos)
		}
	}
	if a.Pos != geom.Pt(2, 0) {
		t.Errorf("Pos = %v, want (2,0) next to the player", a.Pos)
	}
}

func TestAgentAttacksWhenAdjacent(t *testing.T) {
	ctx := context.Background()
	a := NewAgent(testAgentDef(1), geom.Pt(0, 0), DefaultMoveCooldown)
	player := NewPlayer(geom.Pt(2, 0))

	out := a.Update(ctx, player, open, pathfind.Options{})
	if !out.Moved || !out.Attacked || out.Damage != 1 {
		t.Errorf("Update() = %+v, want move then attack for 1", out)
	}
	if got := player.Health.Current(); got != PlayerMaxHP-1 {
		t.Errorf("player health = %d, want %d", got, PlayerMaxHP-1)
	}

	// Cooling down: no attack.
	out = a.Update(ctx, player, open, pathfind.Options{})
	if out.Attacked {
		t.Error("agent attacked during cooldown")
	}
}

func TestAgentUnreachableTarget(t *testing.T) {
	ctx := context.Background()
	a := NewAgent(testAgentDef(1), geom.Pt(0, 0), DefaultMoveCooldown)
	player := NewPlayer(geom.Pt(5, 5))

	out := a.Update(ctx, player, open, pathfind.Options{MaxExpansions: 1})
	if out.Search.Found {
		t.Fatal("search found a path within one expansion")
	}
	if !out.Search.Exhausted {
		t.Error("Exhausted = false, want true")
	}
	if a.Pos != geom.Pt(0, 0) || a.Path() != nil {
		t.Errorf("agent moved to %v with path %v, want to stay put", a.Pos, a.Path())
	}
}

func TestAgentBounds(t *testing.T) {
	ctx := context.Background()
	a := NewAgent(testAgentDef(1), geom.Pt(0, 0), DefaultMoveCooldown)

	if got, want := a.Bounds(true), geom.Rect(0, 0, 1, 1); got != want {
		t.Errorf("Bounds(true) without path = %v, want %v", got, want)
	}

	a.Update(ctx, NewPlayer(geom.Pt(0, 5)), open, pathfind.Options{})
	if got, want := a.Bounds(false), geom.Rect(0, 1, 1, 1); got != want {
		t.Errorf("Bounds(false) = %v, want %v", got, want)
	}
	if got, want := a.Bounds(true), geom.Rect(0, 1, 1, 5); got != want {
		t.Errorf("Bounds(true) = %v, want %v", got, want)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindRoom, "room"},
		{KindTree, "tree"},
		{KindCorridor, "corridor"},
		{KindAgent, "agent"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestStaticFeatures(t *testing.T) {
	agent := NewAgent(testAgentDef(1), geom.Pt(3, 3), DefaultMoveCooldown)
	entities := []Entity{
		NewRoom(world.Room{X: 0, Y: 0, Width: 5, Height: 5}),
		NewAgentEntity(agent),
		NewTree(world.Tree{X: 2, Y: 2}),
		NewCorridor(world.Corridor{From: geom.Pt(4, 2), To: geom.Pt(8, 2)}),
	}

	features := StaticFeatures(entities)
	if len(features) != 3 {
		t.Fatalf("StaticFeatures() returned %d features, want 3", len(features))
	}
	if _, ok := features[1].(world.Tree); !ok {
		t.Errorf("features[1] = %T, want world.Tree", features[1])
	}

	m := world.BuildCollisionMap(context.Background(), features)
	if m.Walkable(geom.Pt(2, 2)) {
		t.Error("tree cell is walkable")
	}
	if !m.Walkable(geom.Pt(4, 2)) {
		t.Error("corridor did not open the east wall")
	}
}

func TestEntityBounds(t *testing.T) {
	if got, want := NewTree(world.Tree{X: 4, Y: 7}).Bounds(false), geom.Rect(4, 7, 1, 1); got != want {
		t.Errorf("tree Bounds() = %v, want %v", got, want)
	}
	room := world.Room{X: 2, Y: 2, Width: 50, Height: 55}
	if got, want := NewRoom(room).Bounds(false), geom.Rect(2, 2, 50, 55); got != want {
		t.Errorf("room Bounds() = %v, want %v", got, want)
	}
}

func TestFromFeatureDef(t *testing.T) {
	e, err := FromFeatureDef(gamedata.FeatureDef{Kind: "tree", X: 15, Y: 15})
	if err != nil {
		t.Fatalf("FromFeatureDef(tree) error = %v", err)
	}
	if e.Kind != KindTree || e.Tree != (world.Tree{X: 15, Y: 15}) {
		t.Errorf("FromFeatureDef(tree) = %+v", e)
	}

	if _, err := FromFeatureDef(gamedata.FeatureDef{Kind: "lava"}); err == nil {
		t.Error("FromFeatureDef(lava) error = nil, want error")
	}
}

func TestAgentSearchRecordsMetrics(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(ctx)

	saved := aiMetrics
	aiMetrics = newSearchMetrics(mp.Meter("test"))
	defer func() { aiMetrics = saved }()

	a := NewAgent(testAgentDef(1), geom.Pt(0, 0), DefaultMoveCooldown)
	if out := a.Update(ctx, NewPlayer(geom.Pt(4, 0)), open, pathfind.Options{}); !out.Searched {
		t.Fatalf("Update() = %+v, want a search", out)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	found := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			found[m.Name] = true
			if m.Name != "ai.pathfind.searches" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok || len(sum.DataPoints) != 1 {
				t.Fatalf("searches data = %#v, want one int64 sum point", m.Data)
			}
			dp := sum.DataPoints[0]
			if dp.Value != 1 {
				t.Errorf("searches = %d, want 1", dp.Value)
			}
			if v, ok := dp.Attributes.Value("found"); !ok || !v.AsBool() {
				t.Errorf("searches attributes = %v, want found=true", dp.Attributes)
			}
		}
	}
	for _, name := range []string{"ai.pathfind.searches", "ai.pathfind.expanded"} {
		if !found[name] {
			t.Errorf("metric %s not collected", name)
		}
	}
}
