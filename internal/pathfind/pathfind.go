// Package pathfind implements A* search over the 4-connected world grid.
//
// The search is a pure function of its inputs. Walkability is supplied by
// the caller, so the same search runs against a collision map, a rendered
// frame or an open field.
package pathfind

import (
	"github.com/zyedidia/generic/heap"

	"github.com/samdwyer/cavediver/internal/geom"
)

// Walkable reports whether a cell may be entered.
type Walkable func(geom.Point) bool

// Options bounds a search.
type Options struct {
	// MaxExpansions caps how many nodes are expanded before giving up.
	// Zero means unbounded, which never terminates for an unreachable
	// goal in an unbounded walkable world.
	MaxExpansions int
}

// Result is the outcome of a search.
type Result struct {
	Path      []geom.Point // start to goal inclusive, nil when not Found
	Found     bool
	Expanded  int  // nodes popped and expanded
	Exhausted bool // stopped by MaxExpansions rather than an empty frontier
}

// node is a frontier entry. The same point may be queued several times
// with different scores; older entries are expanded again when popped.
type node struct {
	p geom.Point
	f int
}

// FindPath returns a shortest 4-directional path from start to goal, or
// false if the goal cannot be reached. start == goal yields [start]. The
// start cell itself is never checked against walkable.
//
// Among several shortest paths the one returned is unspecified.
func FindPath(start, goal geom.Point, walkable Walkable) ([]geom.Point, bool) {
	r := Search(start, goal, walkable, Options{})
	return r.Path, r.Found
}

// Search runs A* with unit edge cost and the Manhattan heuristic.
//
// There is no closed set: a neighbor whose best known cost improves is
// pushed again even if it was expanded before.
func Search(start, goal geom.Point, walkable Walkable, opts Options) Result {
	frontier := heap.New[node](func(a, b node) bool { return a.f < b.f })
	gScore := map[geom.Point]int{start: 0}
	cameFrom := map[geom.Point]geom.Point{}

	frontier.Push(node{p: start, f: start.ManhattanDistance(goal)})

	var res Result
	for {
		current, ok := frontier.Pop()
		if !ok {
			return res
		}

		if current.p == goal {
			res.Path = reconstruct(cameFrom, start, goal)
			res.Found = true
			return res
		}

		if opts.MaxExpansions > 0 && res.Expanded >= opts.MaxExpansions {
			res.Exhausted = true
			return res
		}
		res.Expanded++

		g := gScore[current.p]
		for _, next := range current.p.Neighbors() {
			if !walkable(next) {
				continue
			}
			tentative := g + 1
			if best, seen := gScore[next]; seen && tentative >= best {
				continue
			}
			cameFrom[next] = current.p
			gScore[next] = tentative
			frontier.Push(node{p: next, f: tentative + next.ManhattanDistance(goal)})
		}
	}
}

// reconstruct follows parent links from goal back to start and reverses them.
func reconstruct(cameFrom map[geom.Point]geom.Point, start, goal geom.Point) []geom.Point {
	path := []geom.Point{goal}
	for p := goal; p != start; {
		p = cameFrom[p]
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
