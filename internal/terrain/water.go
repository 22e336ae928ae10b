package terrain

import (
	"github.com/appengine-ltd/worldforge/internal/mesh"
	"github.com/appengine-ltd/worldforge/internal/rng"
)

// AssignWater classifies every center as ocean, lake or land, then pushes
// the flags down to corners.
//
// Frame cells are always ocean. Any water cell joined to the ocean through
// other water cells becomes ocean too, so no bay is left as a lake.
func AssignWater(m *mesh.Mesh, shape Shape, src *rng.Source, lakeProbability float64) {
	for i := range m.Centers {
		c := &m.Centers[i]
		c.Ocean = c.Border || shape.IsOcean(c.Point)
		c.Water = c.Ocean
		c.Coast = false
	}
	for i := range m.Centers {
		c := &m.Centers[i]
		if c.Ocean {
			continue
		}
		if src.Chance(lakeProbability) {
			c.Water = true
		}
	}

	queue := make([]int, 0, len(m.Centers))
	for i := range m.Centers {
		if m.Centers[i].Ocean {
			queue = append(queue, i)
		}
	}
	for head := 0; head < len(queue); head++ {
		for _, n := range m.Centers[queue[head]].Neighbors {
			nc := &m.Centers[n]
			if nc.Water && !nc.Ocean {
				nc.Ocean = true
				queue = append(queue, n)
			}
		}
	}

	for i := range m.Centers {
		c := &m.Centers[i]
		if c.Water {
			continue
		}
		for _, n := range c.Neighbors {
			if m.Centers[n].Water {
				c.Coast = true
				break
			}
		}
	}

	for i := range m.Corners {
		q := &m.Corners[i]
		q.Ocean, q.Water, q.Coast = false, false, false
		for _, c := range q.Touches {
			tc := &m.Centers[c]
			q.Ocean = q.Ocean || tc.Ocean
			q.Water = q.Water || tc.Water
			q.Coast = q.Coast || tc.Coast
		}
	}
}
