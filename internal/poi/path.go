package poi

import (
	goastar "github.com/beefsack/go-astar"
)

type pathNode struct {
	g     *Graph
	id    int
	nodes []*pathNode
}

func (n *pathNode) PathNeighbors() []goastar.Pather {
	conns := n.g.Nodes[n.id].Connections
	out := make([]goastar.Pather, 0, len(conns))
	for _, c := range conns {
		out = append(out, n.nodes[c])
	}
	return out
}

func (n *pathNode) PathNeighborCost(to goastar.Pather) float64 {
	return n.g.distance(n.id, to.(*pathNode).id)
}

func (n *pathNode) PathEstimatedCost(to goastar.Pather) float64 {
	return n.g.distance(n.id, to.(*pathNode).id)
}

// FindPath returns the POI ids of a shortest route from start to goal,
// inclusive, or nil when either id is unknown or no route exists.
func FindPath(g *Graph, start, goal int) []int {
	if _, ok := g.Node(start); !ok {
		return nil
	}
	if _, ok := g.Node(goal); !ok {
		return nil
	}
	if start == goal {
		return []int{start}
	}
	nodes := make([]*pathNode, len(g.Nodes))
	for i := range nodes {
		nodes[i] = &pathNode{g: g, id: i, nodes: nodes}
	}
	path, _, found := goastar.Path(nodes[start], nodes[goal])
	if !found {
		return nil
	}
	out := make([]int, len(path))
	for i, p := range path {
		out[len(path)-1-i] = p.(*pathNode).id
	}
	return out
}

// PathLength sums the edge distances along path. ok is false if two
// consecutive ids are not linked.
func PathLength(g *Graph, path []int) (float64, bool) {
	total := 0.0
	for i := 1; i < len(path); i++ {
		d, ok := g.EdgeDistance(path[i-1], path[i])
		if !ok {
			return 0, false
		}
		total += d
	}
	return total, true
}
