package mesh

import (
	"errors"
	"fmt"
)

// Validate checks the cross references between centers, corners and edges and
// returns every violation joined into one error.
func Validate(m *Mesh) error {
	var errs []error
	nc, nq := len(m.Centers), len(m.Corners)

	for i := range m.Centers {
		c := &m.Centers[i]
		if c.ID != i {
			errs = append(errs, fmt.Errorf("center %d: id %d out of place", i, c.ID))
		}
		for _, q := range c.Corners {
			if q < 0 || q >= nq {
				errs = append(errs, fmt.Errorf("center %d: corner %d out of range", i, q))
				continue
			}
			if !containsID(m.Corners[q].Touches, i) {
				errs = append(errs, fmt.Errorf("center %d: corner %d does not touch it", i, q))
			}
		}
		for _, n := range c.Neighbors {
			if n < 0 || n >= nc {
				errs = append(errs, fmt.Errorf("center %d: neighbor %d out of range", i, n))
				continue
			}
			if !containsID(m.Centers[n].Neighbors, i) {
				errs = append(errs, fmt.Errorf("center %d: neighbor %d is not symmetric", i, n))
			}
		}
	}

	for i := range m.Corners {
		q := &m.Corners[i]
		if q.ID != i {
			errs = append(errs, fmt.Errorf("corner %d: id %d out of place", i, q.ID))
		}
		for _, c := range q.Touches {
			if c < 0 || c >= nc {
				errs = append(errs, fmt.Errorf("corner %d: center %d out of range", i, c))
				continue
			}
			if !containsID(m.Centers[c].Corners, i) {
				errs = append(errs, fmt.Errorf("corner %d: touching center %d does not list it", i, c))
			}
		}
		for _, a := range q.Adjacent {
			if a < 0 || a >= nq {
				errs = append(errs, fmt.Errorf("corner %d: adjacent %d out of range", i, a))
				continue
			}
			if !containsID(m.Corners[a].Adjacent, i) {
				errs = append(errs, fmt.Errorf("corner %d: adjacent %d is not symmetric", i, a))
			}
		}
		for _, e := range q.Protrudes {
			if e < 0 || e >= len(m.Edges) {
				errs = append(errs, fmt.Errorf("corner %d: edge %d out of range", i, e))
				continue
			}
			if m.Edges[e].V0 != i && m.Edges[e].V1 != i {
				errs = append(errs, fmt.Errorf("corner %d: protruding edge %d does not end here", i, e))
				continue
			}
			if other := m.OtherCorner(e, i); !containsID(q.Adjacent, other) {
				errs = append(errs, fmt.Errorf("corner %d: edge %d leads to %d, which is not adjacent", i, e, other))
			}
		}
		if !q.Border && len(q.Touches) > 0 && (len(q.Adjacent) < 1 || len(q.Touches) < 2) {
			errs = append(errs, fmt.Errorf("corner %d: interior corner with %d adjacent and %d touching",
				i, len(q.Adjacent), len(q.Touches)))
		}
	}

	for i := range m.Edges {
		e := &m.Edges[i]
		if e.V0 < 0 || e.V0 >= nq || e.V1 < 0 || e.V1 >= nq {
			errs = append(errs, fmt.Errorf("edge %d: corner out of range", i))
			continue
		}
		for _, d := range []int{e.D0, e.D1} {
			if d == NoID {
				continue
			}
			if d < 0 || d >= nc {
				errs = append(errs, fmt.Errorf("edge %d: center %d out of range", i, d))
				continue
			}
			cs := m.Centers[d].Corners
			if !containsID(cs, e.V0) || !containsID(cs, e.V1) {
				errs = append(errs, fmt.Errorf("edge %d: center %d misses an endpoint", i, d))
			}
		}
	}
	return errors.Join(errs...)
}
