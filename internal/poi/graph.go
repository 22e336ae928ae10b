package poi

import (
	"math"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// Edge is an undirected route, recorded once.
type Edge struct {
	Source   int     `json:"source"`
	Target   int     `json:"target"`
	Distance float64 `json:"distance"`
}

type Graph struct {
	Nodes []POI  `json:"nodes"`
	Edges []Edge `json:"edges"`
}

func (g *Graph) Node(id int) (*POI, bool) {
	if id < 0 || id >= len(g.Nodes) {
		return nil, false
	}
	return &g.Nodes[id], true
}

func (g *Graph) HasEdge(a, b int) bool {
	n, ok := g.Node(a)
	if !ok {
		return false
	}
	return slices.Contains(n.Connections, b)
}

func (g *Graph) distance(a, b int) float64 {
	return g.Nodes[a].Position.Dist(g.Nodes[b].Position)
}

// AddEdge links a and b in both directions. It reports false for self loops,
// unknown ids and existing edges.
func (g *Graph) AddEdge(a, b int) bool {
	if a == b || g.HasEdge(a, b) {
		return false
	}
	if _, ok := g.Node(a); !ok {
		return false
	}
	if _, ok := g.Node(b); !ok {
		return false
	}
	g.Nodes[a].Connections = append(g.Nodes[a].Connections, b)
	g.Nodes[b].Connections = append(g.Nodes[b].Connections, a)
	g.Edges = append(g.Edges, Edge{Source: a, Target: b, Distance: g.distance(a, b)})
	return true
}

func (g *Graph) EdgeDistance(a, b int) (float64, bool) {
	for _, e := range g.Edges {
		if (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a) {
			return e.Distance, true
		}
	}
	return 0, false
}

// Components groups node ids by breadth-first traversal of the edges.
func (g *Graph) Components() [][]int {
	visited := mapset.New[int]()
	var out [][]int
	for start := range g.Nodes {
		if visited.Has(start) {
			continue
		}
		visited.Put(start)
		comp := []int{start}
		for head := 0; head < len(comp); head++ {
			for _, n := range g.Nodes[comp[head]].Connections {
				if visited.Has(n) {
					continue
				}
				visited.Put(n)
				comp = append(comp, n)
			}
		}
		out = append(out, comp)
	}
	return out
}

// Connected reports whether every node is reachable from every other.
func (g *Graph) Connected() bool {
	return len(g.Components()) <= 1
}

func (g *Graph) CountByType() map[LocationType]int {
	out := make(map[LocationType]int)
	for _, n := range g.Nodes {
		out[n.Type]++
	}
	return out
}

// Initial returns the starting POI, if one was placed.
func (g *Graph) Initial() (*POI, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].IsInitial {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// ShortestDistances runs Floyd–Warshall over the edge list. Unreachable
// pairs hold +Inf.
func ShortestDistances(g *Graph) [][]float64 {
	n := len(g.Nodes)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = math.Inf(1)
			}
		}
	}
	for _, e := range g.Edges {
		if e.Distance < dist[e.Source][e.Target] {
			dist[e.Source][e.Target] = e.Distance
			dist[e.Target][e.Source] = e.Distance
		}
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if math.IsInf(dist[i][k], 1) {
				continue
			}
			for j := 0; j < n; j++ {
				if d := dist[i][k] + dist[k][j]; d < dist[i][j] {
					dist[i][j] = d
				}
			}
		}
	}
	return dist
}

// relaxEdge folds a new edge (a, b, w) into an all-pairs table.
func relaxEdge(dist [][]float64, a, b int, w float64) {
	n := len(dist)
	da := slices.Clone(dist[a])
	db := slices.Clone(dist[b])
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			best := dist[i][j]
			if d := da[i] + w + db[j]; d < best {
				best = d
			}
			if d := db[i] + w + da[j]; d < best {
				best = d
			}
			dist[i][j] = best
		}
	}
}
