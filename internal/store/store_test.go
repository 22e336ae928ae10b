package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	geojson "github.com/paulmach/go.geojson"

	"github.com/appengine-ltd/worldforge/internal/worldgen"
)

func testWorld(t *testing.T) *worldgen.World {
	t.Helper()
	cfg := worldgen.DefaultConfig()
	cfg.Seed = 17
	cfg.NumPoints = 300
	w, err := worldgen.Generate(context.Background(), cfg, worldgen.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return w
}

func TestSnapshotSaveLoadRehydrate(t *testing.T) {
	w := testWorld(t)
	path := filepath.Join(t.TempDir(), "worlds", "w.json")
	if err := Save(path, FromWorld(w)); err != nil {
		t.Fatalf("save: %v", err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := s.World()
	if err != nil {
		t.Fatalf("rehydrate: %v", err)
	}
	if len(got.Mesh.Centers) != len(w.Mesh.Centers) || len(got.Mesh.Edges) != len(w.Mesh.Edges) {
		t.Fatalf("expected mesh sizes to survive, got %d/%d", len(got.Mesh.Centers), len(got.Mesh.Edges))
	}
	if len(got.Graph.Nodes) != len(w.Graph.Nodes) || len(got.Graph.Edges) != len(w.Graph.Edges) {
		t.Fatalf("expected graph sizes to survive")
	}
	for i, n := range got.Graph.Nodes {
		orig := w.Graph.Nodes[i]
		if n.Name != orig.Name || n.Type != orig.Type || n.IsInitial != orig.IsInitial || len(n.Connections) != len(orig.Connections) {
			t.Fatalf("POI %d changed across save/load: %+v vs %+v", i, n, orig)
		}
	}
	if len(got.Graph.Nodes) >= 2 && !got.Graph.Connected() {
		t.Fatalf("expected rehydrated graph to stay connected")
	}
	if got.Stats.Land != w.Stats.Land {
		t.Fatalf("expected stats to be recomputed identically, got %d vs %d", got.Stats.Land, w.Stats.Land)
	}
}

func TestStableIDs(t *testing.T) {
	w := testWorld(t)
	ids := StableIDs(w.Graph)
	seen := map[string]bool{}
	for i, id := range ids {
		if !strings.HasPrefix(id, "poi-"+string(w.Graph.Nodes[i].Type)+"-") {
			t.Fatalf("expected id with type prefix, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestRehydrateRejectsBrokenSnapshots(t *testing.T) {
	w := testWorld(t)

	s := FromWorld(w)
	s.Version = 99
	if _, err := s.World(); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected version error, got %v", err)
	}

	s = FromWorld(w)
	if len(s.Routes) == 0 {
		t.Skip("world has no routes")
	}
	s.Routes = append(s.Routes, RouteRecord{From: s.POIs[0].ID, To: "poi-dragon-1"})
	if _, err := s.World(); err == nil {
		t.Fatalf("expected unknown route endpoint error")
	}

	s = FromWorld(w)
	s.POIs = append(s.POIs, s.POIs[0])
	if _, err := s.World(); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestGeoJSONLayers(t *testing.T) {
	w := testWorld(t)
	data, err := GeoJSON(w)
	if err != nil {
		t.Fatalf("geojson: %v", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("parse geojson: %v", err)
	}
	layers := map[string]int{}
	for _, f := range fc.Features {
		layer, _ := f.PropertyString("layer")
		layers[layer]++
		if layer == "cell" {
			ring := f.Geometry.Polygon[0]
			first, last := ring[0], ring[len(ring)-1]
			if first[0] != last[0] || first[1] != last[1] {
				t.Fatalf("expected closed polygon ring")
			}
		}
	}
	if layers["cell"] == 0 || layers["poi"] != len(w.Graph.Nodes) || layers["route"] != len(w.Graph.Edges) {
		t.Fatalf("unexpected layer counts %v", layers)
	}
	if layers["river"] != w.Stats.RiverEdges {
		t.Fatalf("expected %d river features, got %d", w.Stats.RiverEdges, layers["river"])
	}
}

func TestWriteGeoJSON(t *testing.T) {
	w := testWorld(t)
	path := filepath.Join(t.TempDir(), "out", "world.geojson")
	if err := WriteGeoJSON(path, w); err != nil {
		t.Fatalf("write: %v", err)
	}
}
