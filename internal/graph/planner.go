package graph

import (
	"errors"
	"fmt"
	"sort"

	dgraph "github.com/dominikbraun/graph"

	"github.com/rbeiter/tw2002-client/internal/database"
)

// Direction selects which way warps are traversed from the target.
type Direction int

const (
	// Forward computes hop distance from the target to a candidate by
	// following warps as they point.
	Forward Direction = iota
	// Reverse computes the shortest route that ends at the target, walking
	// edges backward from it.
	Reverse
)

// Planner answers least-hop route queries over the known warp graph. The
// graph is a read-only snapshot of the store at load time; ingestion only
// ever adds edges, so a snapshot can never contain a warp that later turns
// out to be wrong.
type Planner struct {
	adjacency    map[int]map[int]dgraph.Edge[int]
	predecessors map[int]map[int]dgraph.Edge[int]
}

// Load builds a planner from every warp in the store.
func Load(store *database.Store) (*Planner, error) {
	warps, err := store.AllWarps()
	if err != nil {
		return nil, err
	}

	g := dgraph.New(dgraph.IntHash, dgraph.Directed())
	for _, w := range warps {
		if err := addVertex(g, w.Source); err != nil {
			return nil, err
		}
		if err := addVertex(g, w.Destination); err != nil {
			return nil, err
		}
		if err := g.AddEdge(w.Source, w.Destination); err != nil && !errors.Is(err, dgraph.ErrEdgeAlreadyExists) {
			return nil, fmt.Errorf("failed to add warp %d->%d: %w", w.Source, w.Destination, err)
		}
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, fmt.Errorf("failed to build adjacency map: %w", err)
	}
	predecessors, err := g.PredecessorMap()
	if err != nil {
		return nil, fmt.Errorf("failed to build predecessor map: %w", err)
	}

	return &Planner{adjacency: adjacency, predecessors: predecessors}, nil
}

func addVertex(g dgraph.Graph[int, int], v int) error {
	if err := g.AddVertex(v); err != nil && !errors.Is(err, dgraph.ErrVertexAlreadyExists) {
		return fmt.Errorf("failed to add sector %d: %w", v, err)
	}
	return nil
}

// ShortestRoute finds the least-hop route between target and the nearest of
// the candidate sectors. Every warp costs one hop. The returned route is in
// warp-travel order: for Reverse queries that is candidate first, target
// last; for Forward queries target first. When the target itself is a
// candidate the route is the single-element zero-hop path. The boolean is
// false when no candidate is reachable.
func (p *Planner) ShortestRoute(target int, candidates []int, dir Direction) ([]int, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	wanted := make(map[int]bool, len(candidates))
	for _, c := range candidates {
		wanted[c] = true
	}
	if wanted[target] {
		return []int{target}, true
	}

	neighbors := p.adjacency
	if dir == Reverse {
		neighbors = p.predecessors
	}

	// breadth-first walk outward from the target; the first candidate seen
	// is at minimal hop count. Neighbors are visited in sector order so a
	// tie between equally near candidates resolves the same way every run.
	parent := map[int]int{target: target}
	frontier := []int{target}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		for _, next := range sortedKeys(neighbors[current]) {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current
			if wanted[next] {
				return p.assemble(parent, target, next, dir), true
			}
			frontier = append(frontier, next)
		}
	}

	return nil, false
}

// assemble walks the parent chain from the found candidate back to the
// target and orders the route in warp-travel direction.
func (p *Planner) assemble(parent map[int]int, target, found int, dir Direction) []int {
	route := []int{found}
	for current := found; current != target; {
		current = parent[current]
		route = append(route, current)
	}

	if dir == Forward {
		// the walk discovered target -> ... -> found along forward edges;
		// reverse the backtracked chain to get travel order
		for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
			route[i], route[j] = route[j], route[i]
		}
	}
	return route
}

func sortedKeys(m map[int]dgraph.Edge[int]) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Hops returns the hop count of a route returned by ShortestRoute.
func Hops(route []int) int {
	if len(route) == 0 {
		return 0
	}
	return len(route) - 1
}
