package debugserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"

	"github.com/samdwyer/cavediver/internal/geom"
	"github.com/samdwyer/cavediver/internal/pathfind"
	"github.com/samdwyer/cavediver/internal/telemetry"
)

type handler struct {
	src Source
	log logr.Logger
}

// TileResponse describes one world cell.
type TileResponse struct {
	X        int  `json:"x"`
	Y        int  `json:"y"`
	Walkable bool `json:"walkable"`
	Known    bool `json:"known"` // false when the cell has no collision entry
}

// PathResponse is the result of a path query.
type PathResponse struct {
	Found     bool         `json:"found"`
	Path      []geom.Point `json:"path"`
	Expanded  int          `json:"expanded"`
	Exhausted bool         `json:"exhausted"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"session": telemetry.SessionID(),
	})
}

func (h *handler) snapshot(w http.ResponseWriter, r *http.Request) {
	s := h.src.Snapshot()
	if s == nil {
		h.respondError(w, http.StatusServiceUnavailable, "no snapshot yet")
		return
	}
	h.respondJSON(w, http.StatusOK, s)
}

func (h *handler) tile(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.Atoi(chi.URLParam(r, "x"))
	y, errY := strconv.Atoi(chi.URLParam(r, "y"))
	if errX != nil || errY != nil {
		h.respondError(w, http.StatusBadRequest, "invalid coordinates")
		return
	}

	p := geom.Pt(x, y)
	_, known := h.src.Collision().Tile(p)
	h.respondJSON(w, http.StatusOK, TileResponse{
		X:        x,
		Y:        y,
		Walkable: h.src.Collision().Walkable(p),
		Known:    known,
	})
}

// path searches between two points on the game's collision map. An
// unbounded game budget is capped at maxQueryExpansions.
func (h *handler) path(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var coords [4]int
	for i, key := range []string{"sx", "sy", "gx", "gy"} {
		v, err := strconv.Atoi(q.Get(key))
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid or missing "+key)
			return
		}
		coords[i] = v
	}

	budget := h.src.SearchBudget()
	if budget <= 0 {
		budget = maxQueryExpansions
	}
	res := pathfind.Search(
		geom.Pt(coords[0], coords[1]),
		geom.Pt(coords[2], coords[3]),
		h.src.Collision().Walkable,
		pathfind.Options{MaxExpansions: budget},
	)
	h.respondJSON(w, http.StatusOK, PathResponse{
		Found:     res.Found,
		Path:      res.Path,
		Expanded:  res.Expanded,
		Exhausted: res.Exhausted,
	})
}

// maxQueryExpansions limits path queries when the game sets no budget.
const maxQueryExpansions = 100000

// respondJSON writes data as a JSON response. The status line is already
// sent when encoding fails, so the error is only logged.
func (h *handler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error(err, "encode response", "status", status)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
