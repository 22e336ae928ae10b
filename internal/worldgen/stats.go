package worldgen

import (
	"math"
	"sort"
)

type Stats struct {
	Centers    int            `json:"centers"`
	Corners    int            `json:"corners"`
	Edges      int            `json:"edges"`
	Land       int            `json:"land"`
	Ocean      int            `json:"ocean"`
	Lakes      int            `json:"lakes"`
	Coast      int            `json:"coast"`
	Rivers     int            `json:"rivers"`
	RiverEdges int            `json:"river_edges"`
	ElevP10    float64        `json:"elev_p10"`
	ElevP50    float64        `json:"elev_p50"`
	ElevP90    float64        `json:"elev_p90"`
	Biomes     map[string]int `json:"biomes"`
	POIs       int            `json:"pois"`
	POITypes   map[string]int `json:"poi_types"`
	Routes     int            `json:"routes"`
}

// ComputeStats summarises a world. Elevation percentiles cover land cells
// only.
func ComputeStats(w *World) Stats {
	s := Stats{Biomes: make(map[string]int), POITypes: make(map[string]int)}
	if w.Mesh != nil {
		m := w.Mesh
		s.Centers, s.Corners, s.Edges = len(m.Centers), len(m.Corners), len(m.Edges)
		var elev []float64
		for i := range m.Centers {
			c := &m.Centers[i]
			switch {
			case c.Ocean:
				s.Ocean++
			case c.Water:
				s.Lakes++
			default:
				s.Land++
				elev = append(elev, c.Elevation)
			}
			if c.Coast {
				s.Coast++
			}
			if c.Biome != "" {
				s.Biomes[c.Biome]++
			}
		}
		sort.Float64s(elev)
		s.ElevP10 = roundFloat(percentileSorted(elev, 0.10), 3)
		s.ElevP50 = roundFloat(percentileSorted(elev, 0.50), 3)
		s.ElevP90 = roundFloat(percentileSorted(elev, 0.90), 3)
		s.RiverEdges = len(m.RiverEdges())
	}
	s.Rivers = len(w.Rivers)
	if w.Graph != nil {
		s.POIs = len(w.Graph.Nodes)
		s.Routes = len(w.Graph.Edges)
		for t, n := range w.Graph.CountByType() {
			s.POITypes[string(t)] = n
		}
	}
	return s
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func roundFloat(v float64, precision int) float64 {
	p := math.Pow(10, float64(precision))
	return math.Round(v*p) / p
}
