package poi

import (
	"math"
	"sort"

	"github.com/appengine-ltd/worldforge/internal/rng"
)

type ConnectOptions struct {
	MaxConnectionDistance float64
	ShortcutIterations    int
	// MinDetourRatio stops the shortcut pass once the worst remaining
	// detour is no worse than this. Zero always adds the worst pair.
	MinDetourRatio float64
}

// Connect wires the placed POIs into a single connected route network:
// isolated nodes link to their nearest neighbour, each node then gains 1-3
// nearby links, components are merged through their closest pair, and
// finally the worst detours get direct shortcuts.
func Connect(g *Graph, src *rng.Source, opts ConnectOptions) {
	if len(g.Nodes) < 2 {
		return
	}
	linkIsolated(g)
	linkNearby(g, src, opts.MaxConnectionDistance)
	mergeComponents(g)
	addShortcuts(g, opts.ShortcutIterations, opts.MinDetourRatio)
}

func (g *Graph) byDistance(from int) []int {
	out := make([]int, 0, len(g.Nodes)-1)
	for i := range g.Nodes {
		if i != from {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return g.distance(from, out[a]) < g.distance(from, out[b])
	})
	return out
}

func linkIsolated(g *Graph) {
	for i := range g.Nodes {
		if len(g.Nodes[i].Connections) > 0 {
			continue
		}
		g.AddEdge(i, g.byDistance(i)[0])
	}
}

func linkNearby(g *Graph, src *rng.Source, maxDist float64) {
	for i := range g.Nodes {
		want := src.IntRange(1, 3)
		added := 0
		for _, j := range g.byDistance(i) {
			if added >= want || g.distance(i, j) > maxDist {
				break
			}
			if g.AddEdge(i, j) {
				added++
			}
		}
	}
}

func mergeComponents(g *Graph) {
	for {
		comps := g.Components()
		if len(comps) <= 1 {
			return
		}
		label := make([]int, len(g.Nodes))
		for ci, comp := range comps {
			for _, id := range comp {
				label[id] = ci
			}
		}
		bestA, bestB, bestD := -1, -1, math.Inf(1)
		for a := range g.Nodes {
			for b := a + 1; b < len(g.Nodes); b++ {
				if label[a] == label[b] {
					continue
				}
				if d := g.distance(a, b); d < bestD {
					bestA, bestB, bestD = a, b, d
				}
			}
		}
		g.AddEdge(bestA, bestB)
	}
}

func addShortcuts(g *Graph, iterations int, minRatio float64) {
	rounds := min(iterations, len(g.Nodes))
	if rounds <= 0 {
		return
	}
	dist := ShortestDistances(g)
	for r := 0; r < rounds; r++ {
		bestA, bestB, bestRatio := -1, -1, 0.0
		for a := range g.Nodes {
			for b := a + 1; b < len(g.Nodes); b++ {
				if g.HasEdge(a, b) {
					continue
				}
				straight := g.distance(a, b)
				if straight <= 0 {
					continue
				}
				if ratio := dist[a][b] / straight; ratio > bestRatio {
					bestA, bestB, bestRatio = a, b, ratio
				}
			}
		}
		if bestA < 0 || bestRatio <= minRatio {
			return
		}
		g.AddEdge(bestA, bestB)
		relaxEdge(dist, bestA, bestB, g.distance(bestA, bestB))
	}
}
