package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/appengine-ltd/worldforge/internal/fsutil"
	"github.com/appengine-ltd/worldforge/internal/geom"
	"github.com/appengine-ltd/worldforge/internal/mesh"
	"github.com/appengine-ltd/worldforge/internal/poi"
	"github.com/appengine-ltd/worldforge/internal/terrain"
	"github.com/appengine-ltd/worldforge/internal/worldgen"
)

const SnapshotVersion = 1

var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

// POIRecord is a POI keyed by a stable string id instead of its index.
type POIRecord struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Type               string     `json:"type"`
	Position           geom.Point `json:"position"`
	Center             int        `json:"center"`
	Description        string     `json:"description,omitempty"`
	Appearance         string     `json:"appearance,omitempty"`
	KeyCharacteristics []string   `json:"key_characteristics,omitempty"`
	LoreHistory        string     `json:"lore_history,omitempty"`
	Culture            string     `json:"culture,omitempty"`
	IsInitial          bool       `json:"is_initial,omitempty"`
}

type RouteRecord struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
}

// Snapshot is the on-disk form of a world. Mesh elements reference each
// other by arena index; POIs and routes use stable string ids.
type Snapshot struct {
	Version int             `json:"version"`
	Config  worldgen.Config `json:"config"`
	Mesh    *mesh.Mesh      `json:"mesh"`
	Rivers  []terrain.River `json:"rivers,omitempty"`
	POIs    []POIRecord     `json:"pois"`
	Routes  []RouteRecord   `json:"routes"`
	Report  poi.Report      `json:"report"`
}

// StableIDs names POIs "poi-<type>-<n>", numbering each type from 1 in
// node order.
func StableIDs(g *poi.Graph) []string {
	seen := make(map[poi.LocationType]int)
	out := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		seen[n.Type]++
		out[i] = fmt.Sprintf("poi-%s-%d", n.Type, seen[n.Type])
	}
	return out
}

func FromWorld(w *worldgen.World) Snapshot {
	s := Snapshot{
		Version: SnapshotVersion,
		Config:  w.Config,
		Mesh:    w.Mesh,
		Rivers:  w.Rivers,
		Report:  w.Report,
	}
	if w.Graph == nil {
		return s
	}
	ids := StableIDs(w.Graph)
	for i, n := range w.Graph.Nodes {
		s.POIs = append(s.POIs, POIRecord{
			ID:                 ids[i],
			Name:               n.Name,
			Type:               string(n.Type),
			Position:           n.Position,
			Center:             n.Center,
			Description:        n.Description,
			Appearance:         n.Appearance,
			KeyCharacteristics: n.KeyCharacteristics,
			LoreHistory:        n.LoreHistory,
			Culture:            n.Culture,
			IsInitial:          n.IsInitial,
		})
	}
	for _, e := range w.Graph.Edges {
		s.Routes = append(s.Routes, RouteRecord{From: ids[e.Source], To: ids[e.Target], Distance: e.Distance})
	}
	return s
}

// World rehydrates the snapshot: string ids become node indices again,
// connection lists are rebuilt from the routes, and the mesh is checked.
func (s Snapshot) World() (*worldgen.World, error) {
	if s.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}
	if s.Mesh == nil {
		return nil, errors.New("snapshot has no mesh")
	}
	if err := mesh.Validate(s.Mesh); err != nil {
		return nil, fmt.Errorf("validate mesh: %w", err)
	}

	g := &poi.Graph{}
	index := make(map[string]int, len(s.POIs))
	for i, r := range s.POIs {
		if _, dup := index[r.ID]; dup {
			return nil, fmt.Errorf("duplicate poi id %q", r.ID)
		}
		if s.Mesh.Center(r.Center) == nil {
			return nil, fmt.Errorf("poi %q: center %d out of range", r.ID, r.Center)
		}
		index[r.ID] = i
		g.Nodes = append(g.Nodes, poi.POI{
			ID:                 i,
			Name:               r.Name,
			Type:               poi.LocationType(r.Type),
			Position:           r.Position,
			Center:             r.Center,
			Description:        r.Description,
			Appearance:         r.Appearance,
			KeyCharacteristics: r.KeyCharacteristics,
			LoreHistory:        r.LoreHistory,
			Culture:            r.Culture,
			IsInitial:          r.IsInitial,
		})
	}
	for _, r := range s.Routes {
		a, ok := index[r.From]
		if !ok {
			return nil, fmt.Errorf("route from unknown poi %q", r.From)
		}
		b, ok := index[r.To]
		if !ok {
			return nil, fmt.Errorf("route to unknown poi %q", r.To)
		}
		if !g.AddEdge(a, b) {
			return nil, fmt.Errorf("invalid route %q -> %q", r.From, r.To)
		}
	}

	w := &worldgen.World{
		Config: s.Config,
		Mesh:   s.Mesh,
		Graph:  g,
		Report: s.Report,
		Rivers: s.Rivers,
	}
	w.Stats = worldgen.ComputeStats(w)
	return w, nil
}

// Save writes the snapshot atomically through a temp file in the target
// directory.
func Save(path string, s Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return fsutil.WriteFileAtomic(path, data)
}

func Load(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return s, nil
}
