package store

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/appengine-ltd/worldforge/internal/fsutil"
	"github.com/appengine-ltd/worldforge/internal/geom"
	"github.com/appengine-ltd/worldforge/internal/worldgen"
)

// GeoJSON exports cells, rivers, POIs and routes as one feature collection
// in map coordinates. Every feature carries a "layer" property.
func GeoJSON(w *worldgen.World) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	m := w.Mesh

	for i := range m.Centers {
		c := &m.Centers[i]
		poly := m.Polygon(i)
		if len(poly) < 3 {
			continue
		}
		ring := make([][]float64, 0, len(poly)+1)
		for _, p := range poly {
			ring = append(ring, coord(p))
		}
		ring = append(ring, coord(poly[0]))
		f := geojson.NewPolygonFeature([][][]float64{ring})
		f.SetProperty("layer", "cell")
		f.SetProperty("id", c.ID)
		f.SetProperty("biome", c.Biome)
		f.SetProperty("elevation", c.Elevation)
		f.SetProperty("moisture", c.Moisture)
		f.SetProperty("ocean", c.Ocean)
		f.SetProperty("water", c.Water)
		f.SetProperty("coast", c.Coast)
		fc.AddFeature(f)
	}

	for _, e := range m.RiverEdges() {
		edge := m.Edges[e]
		f := geojson.NewLineStringFeature([][]float64{
			coord(m.Corners[edge.V0].Point),
			coord(m.Corners[edge.V1].Point),
		})
		f.SetProperty("layer", "river")
		f.SetProperty("width", edge.River)
		fc.AddFeature(f)
	}

	if w.Graph != nil {
		ids := StableIDs(w.Graph)
		for i, n := range w.Graph.Nodes {
			f := geojson.NewPointFeature(coord(n.Position))
			f.SetProperty("layer", "poi")
			f.SetProperty("id", ids[i])
			f.SetProperty("name", n.Name)
			f.SetProperty("type", string(n.Type))
			f.SetProperty("initial", n.IsInitial)
			f.SetProperty("connections", len(n.Connections))
			fc.AddFeature(f)
		}
		for _, e := range w.Graph.Edges {
			f := geojson.NewLineStringFeature([][]float64{
				coord(w.Graph.Nodes[e.Source].Position),
				coord(w.Graph.Nodes[e.Target].Position),
			})
			f.SetProperty("layer", "route")
			f.SetProperty("from", ids[e.Source])
			f.SetProperty("to", ids[e.Target])
			f.SetProperty("distance", e.Distance)
			fc.AddFeature(f)
		}
	}
	return fc.MarshalJSON()
}

func WriteGeoJSON(path string, w *worldgen.World) error {
	data, err := GeoJSON(w)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data)
}

func coord(p geom.Point) []float64 {
	return []float64{p.X, p.Y}
}
