package debugserver

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/samdwyer/cavediver/internal/game"
	"github.com/samdwyer/cavediver/internal/geom"
	"github.com/samdwyer/cavediver/internal/world"
)

type fakeSource struct {
	snap   *game.Snapshot
	m      *world.CollisionMap
	budget int
}

func (f *fakeSource) Snapshot() *game.Snapshot       { return f.snap }
func (f *fakeSource) Collision() *world.CollisionMap { return f.m }
func (f *fakeSource) SearchBudget() int              { return f.budget }

func newSource() *fakeSource {
	room := world.Room{X: 0, Y: 0, Width: 6, Height: 6}
	return &fakeSource{
		snap: &game.Snapshot{
			Level:  "glade",
			Tick:   3,
			State:  "playing",
			Player: game.PlayerSnapshot{X: 2, Y: 2, Health: 100, MaxHealth: 100},
			Agents: []game.AgentSnapshot{{ID: "goblin", X: 4, Y: 4}},
		},
		m:      world.BuildCollisionMap(context.Background(), []world.Feature{room}),
		budget: 1000,
	}
}

func get(t *testing.T, h http.Handler, url string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("GET %s: decode %q: %v", url, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestHealthz(t *testing.T) {
	h := Routes(newSource(), logr.Discard())
	var body map[string]string
	if code := get(t, h, "/healthz", &body); code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", code)
	}
	if body["status"] != "ok" || body["session"] == "" {
		t.Errorf("GET /healthz body = %v", body)
	}
}

func TestSnapshot(t *testing.T) {
	src := newSource()
	h := Routes(src, logr.Discard())

	var snap game.Snapshot
	if code := get(t, h, "/snapshot", &snap); code != http.StatusOK {
		t.Fatalf("GET /snapshot = %d, want 200", code)
	}
	if snap.Tick != 3 || snap.Player.X != 2 || len(snap.Agents) != 1 {
		t.Errorf("GET /snapshot = %+v", snap)
	}

	src.snap = nil
	if code := get(t, h, "/snapshot", nil); code != http.StatusServiceUnavailable {
		t.Errorf("GET /snapshot without state = %d, want 503", code)
	}
}

func TestTile(t *testing.T) {
	h := Routes(newSource(), logr.Discard())
	tests := []struct {
		x, y     int
		walkable bool
		known    bool
	}{
		{0, 0, false, true},
		{2, 3, true, true},
		{40, 40, true, false},
		{-1, 2, true, false},
	}
	for _, tt := range tests {
		var got TileResponse
		url := fmt.Sprintf("/tiles/%d/%d", tt.x, tt.y)
		if code := get(t, h, url, &got); code != http.StatusOK {
			t.Fatalf("GET %s = %d, want 200", url, code)
		}
		if got.Walkable != tt.walkable || got.Known != tt.known {
			t.Errorf("GET %s = %+v, want walkable %v known %v", url, got, tt.walkable, tt.known)
		}
	}

	if code := get(t, h, "/tiles/a/1", nil); code != http.StatusBadRequest {
		t.Errorf("GET /tiles/a/1 = %d, want 400", code)
	}
}

func TestPath(t *testing.T) {
	h := Routes(newSource(), logr.Discard())

	var got PathResponse
	if code := get(t, h, "/path?sx=1&sy=1&gx=4&gy=4", &got); code != http.StatusOK {
		t.Fatalf("GET /path = %d, want 200", code)
	}
	if !got.Found || len(got.Path) != 7 {
		t.Errorf("GET /path = %+v, want a 7 cell path", got)
	}
	if got.Path[0] != geom.Pt(1, 1) || got.Path[len(got.Path)-1] != geom.Pt(4, 4) {
		t.Errorf("path runs %v to %v", got.Path[0], got.Path[len(got.Path)-1])
	}

	// The room's walls seal it in.
	if code := get(t, h, "/path?sx=1&sy=1&gx=20&gy=20", &got); code != http.StatusOK {
		t.Fatalf("GET /path = %d, want 200", code)
	}
	if got.Found {
		t.Errorf("found a path out of a sealed room: %v", got.Path)
	}

	if code := get(t, h, "/path?sx=1&sy=1&gx=4", nil); code != http.StatusBadRequest {
		t.Errorf("GET /path without gy = %d, want 400", code)
	}
}

func TestStartAndShutdown(t *testing.T) {
	s := New("127.0.0.1:0", newSource(), logr.Discard())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	addr, err := s.Start(ctx)
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	resp, err := http.Get("http://" + addr.String() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /healthz = %d, want 200", resp.StatusCode)
	}

	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestRespondJSONLogsEncodeFailure(t *testing.T) {
	var logged []string
	logger := funcr.New(func(prefix, args string) {
		logged = append(logged, args)
	}, funcr.Options{})
	h := &handler{src: newSource(), log: logger}

	rec := httptest.NewRecorder()
	h.respondJSON(rec, http.StatusOK, math.Inf(1))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(logged) != 1 {
		t.Fatalf("logged %d lines, want 1: %q", len(logged), logged)
	}
	if !strings.Contains(logged[0], "encode response") || !strings.Contains(logged[0], "unsupported value") {
		t.Errorf("log line = %q, want the encode error", logged[0])
	}
}
