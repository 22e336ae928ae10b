package terrain

import (
	"math"
	"testing"

	"github.com/appengine-ltd/worldforge/internal/geom"
	"github.com/appengine-ltd/worldforge/internal/mesh"
	"github.com/appengine-ltd/worldforge/internal/rng"
)

func testMesh(t *testing.T, seed int64, n int) *mesh.Mesh {
	t.Helper()
	bounds := geom.NewRect(800, 600)
	pts := mesh.Relax(mesh.SamplePoints(rng.New(seed), n, bounds), bounds, 2)
	m, err := mesh.Build(pts, bounds)
	if err != nil {
		t.Fatalf("build mesh: %v", err)
	}
	return m
}

func runTerrain(t *testing.T, seed int64, n int, shapeName string) (*mesh.Mesh, []River) {
	t.Helper()
	m := testMesh(t, seed, n)
	src := rng.New(seed)
	AssignElevation(m, src.Derive("elevation"))
	shape, ok := NewShape(shapeName, m.Bounds, ShapeParams{
		IslandFactor:          1.6,
		IslandCount:           3,
		NoiseSeed:             seed,
		NoiseScale:            0.004,
		NoiseIntensity:        0.5,
		CoastalNoiseFrequency: 0.02,
	}, src.Derive("shape"))
	if !ok {
		t.Fatalf("expected shape %q to resolve", shapeName)
	}
	AssignWater(m, shape, src.Derive("water"), 0.1)
	rivers := AssignRivers(m, 20)
	AssignMoisture(m)
	AssignBiomes(m)
	return m, rivers
}

func TestElevationBorderZeroAndRange(t *testing.T) {
	m, _ := runTerrain(t, 1, 400, ShapeRadial)
	for _, q := range m.Corners {
		if q.Border && q.Elevation != 0 {
			t.Fatalf("expected border corner %d at elevation 0, got %f", q.ID, q.Elevation)
		}
		if q.Elevation < 0 || q.Elevation > 1 {
			t.Fatalf("expected corner elevation in [0,1], got %f", q.Elevation)
		}
	}
	sawTop := false
	for _, c := range m.Centers {
		if c.Elevation < 0 || c.Elevation > 1 {
			t.Fatalf("expected center elevation in [0,1], got %f", c.Elevation)
		}
		for _, q := range c.Corners {
			if m.Corners[q].Elevation == 1 {
				sawTop = true
			}
		}
	}
	if !sawTop {
		t.Fatalf("expected normalized elevation to reach 1")
	}
}

func TestMoistureRange(t *testing.T) {
	for _, shape := range []string{ShapeRadial, ShapeComplex} {
		m, _ := runTerrain(t, 3, 300, shape)
		for _, q := range m.Corners {
			if q.Moisture < 0 || q.Moisture > 1 {
				t.Fatalf("%s: expected corner moisture in [0,1], got %f", shape, q.Moisture)
			}
		}
		for _, c := range m.Centers {
			if c.Moisture < 0 || c.Moisture > 1 {
				t.Fatalf("%s: expected center moisture in [0,1], got %f", shape, c.Moisture)
			}
		}
	}
}

func TestOceanClosure(t *testing.T) {
	for _, shape := range []string{ShapeRadial, ShapeComplex} {
		m := testMesh(t, 5, 300)
		src := rng.New(5)
		AssignElevation(m, src.Derive("elevation"))
		s, _ := NewShape(shape, m.Bounds, ShapeParams{IslandFactor: 1.5, IslandCount: 2, NoiseSeed: 5, NoiseScale: 0.004, NoiseIntensity: 0.5, CoastalNoiseFrequency: 0.02}, src.Derive("shape"))
		AssignWater(m, s, src.Derive("water"), 0.4)
		for _, c := range m.Centers {
			if c.Border && !c.Ocean {
				t.Fatalf("%s: expected border center %d to be ocean", shape, c.ID)
			}
			if !c.Water || c.Ocean {
				continue
			}
			for _, n := range c.Neighbors {
				if m.Centers[n].Ocean {
					t.Fatalf("%s: lake %d touches ocean %d", shape, c.ID, n)
				}
			}
		}
		for _, c := range m.Centers {
			if c.Water {
				continue
			}
			wantCoast := false
			for _, n := range c.Neighbors {
				wantCoast = wantCoast || m.Centers[n].Water
			}
			if c.Coast != wantCoast {
				t.Fatalf("%s: center %d expected coast=%v, got %v", shape, c.ID, wantCoast, c.Coast)
			}
		}
	}
}

func TestCornerFlagsFollowTouchingCenters(t *testing.T) {
	m, _ := runTerrain(t, 8, 200, ShapeRadial)
	for _, q := range m.Corners {
		ocean := false
		for _, c := range q.Touches {
			ocean = ocean || m.Centers[c].Ocean
		}
		if q.Ocean != ocean {
			t.Fatalf("corner %d: expected ocean=%v, got %v", q.ID, ocean, q.Ocean)
		}
	}
}

func TestRiversDescendWithoutCycles(t *testing.T) {
	m, rivers := runTerrain(t, 11, 500, ShapeRadial)
	if len(rivers) == 0 {
		t.Fatalf("expected at least one river")
	}
	for ri, r := range rivers {
		seen := map[int]bool{}
		for k, q := range r.Corners {
			if seen[q] {
				t.Fatalf("river %d revisits corner %d", ri, q)
			}
			seen[q] = true
			if k > 0 && m.Corners[q].Elevation >= m.Corners[r.Corners[k-1]].Elevation {
				t.Fatalf("river %d does not descend at step %d", ri, k)
			}
		}
		for k, e := range r.Edges {
			edge := m.Edges[e]
			if m.Corners[edge.V0].Elevation == m.Corners[edge.V1].Elevation {
				t.Fatalf("river edge %d is flat", e)
			}
			if edge.River < 1 || edge.River > maxRiverWidth {
				t.Fatalf("expected river width in [1,%d], got %d", maxRiverWidth, edge.River)
			}
			if m.Corners[r.Corners[k]].River == 0 {
				t.Fatalf("expected river corner %d flagged", r.Corners[k])
			}
		}
	}
}

func TestRiverCountBoundedByCandidates(t *testing.T) {
	m := testMesh(t, 2, 30)
	AssignElevation(m, rng.New(2))
	AssignWater(m, NewRadialShape(m.Bounds, ShapeParams{IslandFactor: 2}, nil), rng.New(2), 0)
	rivers := AssignRivers(m, 10000)
	if len(rivers) > len(m.Corners) {
		t.Fatalf("expected rivers bounded by corners, got %d", len(rivers))
	}
}

func TestRadialFourPointsYieldsOcean(t *testing.T) {
	bounds := geom.NewRect(800, 600)
	pts := mesh.SamplePoints(rng.New(4), 4, bounds)
	m, err := mesh.Build(pts, bounds)
	if err != nil {
		t.Fatalf("build mesh: %v", err)
	}
	AssignElevation(m, rng.New(4))
	AssignWater(m, NewRadialShape(bounds, ShapeParams{IslandFactor: 1.0}, nil), rng.New(4), 0.1)
	ocean := 0
	for _, c := range m.Centers {
		if c.Ocean {
			ocean++
		}
	}
	if ocean == 0 {
		t.Fatalf("expected at least one ocean center")
	}
}

func TestUnknownShapeFallsBackToRadial(t *testing.T) {
	s, ok := NewShape("archipelago", geom.NewRect(100, 100), ShapeParams{IslandFactor: 2}, rng.New(1))
	if ok {
		t.Fatalf("expected unknown shape to report ok=false")
	}
	if _, isRadial := s.(radialShape); !isRadial {
		t.Fatalf("expected radial fallback, got %T", s)
	}
}

func TestComplexShapeDeterministic(t *testing.T) {
	bounds := geom.NewRect(800, 600)
	params := ShapeParams{IslandFactor: 1.5, IslandCount: 4, NoiseSeed: 77, NoiseScale: 0.004, NoiseIntensity: 0.6, CoastalNoiseFrequency: 0.02}
	a := NewComplexShape(bounds, params, rng.New(9))
	b := NewComplexShape(bounds, params, rng.New(9))
	for x := 0.0; x < 800; x += 37 {
		for y := 0.0; y < 600; y += 41 {
			p := geom.Pt(x, y)
			if a.IsOcean(p) != b.IsOcean(p) {
				t.Fatalf("expected same classification at %+v", p)
			}
		}
	}
	if !a.IsOcean(geom.Pt(0, 0)) {
		t.Fatalf("expected map corner to be ocean")
	}
}

func TestBiomeTable(t *testing.T) {
	cases := []struct {
		e, m float64
		want Label
	}{
		{0.9, 0.6, Snow},
		{0.9, 0.4, Tundra},
		{0.9, 0.2, Bare},
		{0.9, 0.1, Scorched},
		{0.7, 0.7, Taiga},
		{0.7, 0.4, Shrubland},
		{0.7, 0.1, TemperateDesert},
		{0.5, 0.9, TemperateRainForest},
		{0.5, 0.6, TemperateDeciduousForest},
		{0.5, 0.2, Grassland},
		{0.5, 0.1, TemperateDesert},
		{0.1, 0.7, TropicalRainForest},
		{0.1, 0.4, TropicalSeasonalForest},
		{0.1, 0.2, Grassland},
		{0.1, 0.05, SubtropicalDesert},
	}
	for _, tc := range cases {
		if got := Biome(tc.e, tc.m); got != tc.want {
			t.Fatalf("Biome(%v,%v): expected %s, got %s", tc.e, tc.m, tc.want, got)
		}
		if Biome(tc.e, tc.m) != Biome(tc.e, tc.m) {
			t.Fatalf("expected deterministic biome for (%v,%v)", tc.e, tc.m)
		}
	}
}

func TestClassifyCenterWater(t *testing.T) {
	if got := ClassifyCenter(&mesh.Center{Ocean: true, Water: true}); got != Ocean {
		t.Fatalf("expected OCEAN, got %s", got)
	}
	if got := ClassifyCenter(&mesh.Center{Water: true, Elevation: 0.9}); got != Lake {
		t.Fatalf("expected LAKE, got %s", got)
	}
}

// cornerChain links corners 0..n-1 in a line with one edge per link. The
// listed corners are water; riverEdges marks edge i (corner i to i+1).
func cornerChain(n int, water []int, riverEdges []int) *mesh.Mesh {
	m := &mesh.Mesh{Bounds: geom.NewRect(100, 100)}
	for i := 0; i < n; i++ {
		m.Corners = append(m.Corners, mesh.Corner{ID: i, Point: geom.Pt(float64(i)*10, 50)})
	}
	for i := 0; i+1 < n; i++ {
		m.Corners[i].Adjacent = append(m.Corners[i].Adjacent, i+1)
		m.Corners[i+1].Adjacent = append(m.Corners[i+1].Adjacent, i)
		m.Edges = append(m.Edges, mesh.Edge{ID: i, D0: mesh.NoID, D1: mesh.NoID, V0: i, V1: i + 1})
	}
	for _, q := range water {
		m.Corners[q].Water = true
	}
	for _, e := range riverEdges {
		m.Edges[e].River = 1
	}
	return m
}

func expectMoisture(t *testing.T, m *mesh.Mesh, want []float64) {
	t.Helper()
	for i, w := range want {
		if got := m.Corners[i].Moisture; math.Abs(got-w) > 1e-9 {
			t.Fatalf("corner %d: expected moisture %.5f, got %.5f", i, w, got)
		}
	}
}

func TestMoistureDecaysPerHopAndDriesInland(t *testing.T) {
	m := cornerChain(3, []int{0}, nil)
	m.Centers = []mesh.Center{{ID: 0, Corners: []int{1, 2}}}
	AssignMoisture(m)
	expectMoisture(t, m, []float64{1, 0.9 * 0.8, 0.81 * 0.8})
	if got := m.Centers[0].Moisture; math.Abs(got-(0.72+0.648)/2) > 1e-9 {
		t.Fatalf("expected center to average its corners, got %.5f", got)
	}
}

func TestMoistureRiverBonusBeforeScaling(t *testing.T) {
	m := cornerChain(5, []int{0}, []int{3})
	AssignMoisture(m)
	expectMoisture(t, m, []float64{
		1,
		0.9 * 0.8,
		0.81 * 0.8,
		(0.729 + 0.2) * 0.8,
		(0.6561 + 0.2) * 0.8,
	})

	// The bonus clamps at 1 before dry corners are scaled.
	m = cornerChain(2, []int{0}, []int{0})
	AssignMoisture(m)
	expectMoisture(t, m, []float64{1, 0.8})
}

func TestMoistureTakesNearestWaterSource(t *testing.T) {
	m := cornerChain(7, []int{0, 6}, nil)
	AssignMoisture(m)
	expectMoisture(t, m, []float64{
		1,
		0.9 * 0.8,
		0.81 * 0.8,
		0.729 * 0.8,
		0.81 * 0.8,
		0.9 * 0.8,
		1,
	})
}
