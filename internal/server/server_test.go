package server

import (
	"encoding/json"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	geojson "github.com/paulmach/go.geojson"

	"github.com/appengine-ltd/worldforge/internal/worldgen"
)

func testServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	base := worldgen.DefaultConfig()
	base.NumPoints = 250
	base.Width = 400
	base.Height = 300
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(New(base, opts).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func createWorld(t *testing.T, ts *httptest.Server, body string) worldSummary {
	t.Helper()
	resp, err := http.Post(ts.URL+"/worlds", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, data)
	}
	var out worldSummary
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if resp.Header.Get("Location") != "/worlds/"+out.ID {
		t.Fatalf("expected Location header for %s, got %q", out.ID, resp.Header.Get("Location"))
	}
	return out
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestCreateAndFetchWorld(t *testing.T) {
	ts := testServer(t, Options{})
	sum := createWorld(t, ts, `{"seed": 42, "poi_counts": {"town": 2}}`)
	if sum.Seed != 42 || sum.Stats.Centers != 250 {
		t.Fatalf("unexpected summary %+v", sum)
	}

	resp := get(t, ts.URL+"/worlds/"+sum.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var snap struct {
		Config worldgen.Config   `json:"config"`
		POIs   []json.RawMessage `json:"pois"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Config.POICounts["town"] != 2 || snap.Config.POICounts["castle"] != 2 {
		t.Fatalf("expected request counts merged over defaults, got %v", snap.Config.POICounts)
	}
	if len(snap.POIs) != sum.Stats.POIs {
		t.Fatalf("expected %d POIs, got %d", sum.Stats.POIs, len(snap.POIs))
	}

	resp = get(t, ts.URL+"/worlds")
	var list []worldSummary
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].ID != sum.ID {
		t.Fatalf("expected one listed world, got %+v", list)
	}
}

func TestBaseConfigIsNotMutated(t *testing.T) {
	base := worldgen.DefaultConfig()
	base.NumPoints = 100
	s := New(base, Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()
	createWorld(t, ts, `{"poi_counts": {"town": 9}}`)
	if s.base.POICounts["town"] != 5 {
		t.Fatalf("expected base town count 5, got %d", s.base.POICounts["town"])
	}
}

func TestGeoJSONAndMapEndpoints(t *testing.T) {
	ts := testServer(t, Options{})
	sum := createWorld(t, ts, `{"seed": 3}`)

	resp := get(t, ts.URL+"/worlds/"+sum.ID+"/geojson")
	data, _ := io.ReadAll(resp.Body)
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("parse geojson: %v", err)
	}
	if len(fc.Features) == 0 {
		t.Fatalf("expected features")
	}

	resp = get(t, ts.URL+"/worlds/"+sum.ID+"/map.png?mode=elevation&scale=0.5")
	if resp.Header.Get("Content-Type") != "image/png" {
		t.Fatalf("expected png, got %q", resp.Header.Get("Content-Type"))
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 150 {
		t.Fatalf("expected 200x150, got %v", img.Bounds())
	}

	for _, q := range []string{"?mode=sepia", "?scale=0", "?scale=abc"} {
		if resp := get(t, ts.URL+"/worlds/"+sum.ID+"/map.png"+q); resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, resp.StatusCode)
		}
	}
}

func TestPathEndpoint(t *testing.T) {
	ts := testServer(t, Options{})
	sum := createWorld(t, ts, `{"seed": 11}`)
	if sum.Stats.POIs < 2 {
		t.Skip("not enough POIs placed")
	}
	resp := get(t, ts.URL+"/worlds/"+sum.ID)
	var snap struct {
		POIs []struct {
			ID string `json:"id"`
		} `json:"pois"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	from, to := snap.POIs[0].ID, snap.POIs[len(snap.POIs)-1].ID

	resp = get(t, ts.URL+"/worlds/"+sum.ID+"/path?from="+from+"&to="+to)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out pathResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode path: %v", err)
	}
	if len(out.Path) < 2 || out.Path[0] != from || out.Path[len(out.Path)-1] != to || out.Distance <= 0 {
		t.Fatalf("unexpected path %+v", out)
	}

	if resp := get(t, ts.URL+"/worlds/"+sum.ID+"/path?from="+from+"&to=poi-dragon-1"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown poi, got %d", resp.StatusCode)
	}
}

func TestErrorsAndDelete(t *testing.T) {
	ts := testServer(t, Options{})
	if resp := get(t, ts.URL+"/worlds/nope"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	resp, err := http.Post(ts.URL+"/worlds", "application/json", strings.NewReader(`{"seed":`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad json, got %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/worlds", "application/json", strings.NewReader(`{"num_points": 2}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for too few points, got %d", resp.StatusCode)
	}

	sum := createWorld(t, ts, "")
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/worlds/"+sum.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if resp := get(t, ts.URL+"/worlds/"+sum.ID); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestSnapshotDirSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	first := testServer(t, Options{Dir: dir})
	sum := createWorld(t, first, `{"seed": 8}`)
	first.Close()

	second := testServer(t, Options{Dir: dir})
	resp := get(t, second.URL+"/worlds/"+sum.ID+"/geojson")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected world loaded from disk, got %d", resp.StatusCode)
	}
}

func TestEvictsOldestWorld(t *testing.T) {
	ts := testServer(t, Options{MaxWorlds: 2})
	a := createWorld(t, ts, `{"seed": 1, "num_points": 60}`)
	createWorld(t, ts, `{"seed": 2, "num_points": 60}`)
	createWorld(t, ts, `{"seed": 3, "num_points": 60}`)
	if resp := get(t, ts.URL+"/worlds/"+a.ID); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected oldest world evicted, got %d", resp.StatusCode)
	}
}

func TestRestartDoesNotReuseSavedIDs(t *testing.T) {
	dir := t.TempDir()
	first := testServer(t, Options{Dir: dir})
	old := createWorld(t, first, `{"seed": 8, "num_points": 120}`)
	first.Close()

	second := testServer(t, Options{Dir: dir})
	fresh := createWorld(t, second, `{"seed": 8, "num_points": 300}`)
	if fresh.ID == old.ID {
		t.Fatalf("expected a new id after restart, got %s twice", old.ID)
	}

	resp := get(t, second.URL+"/worlds/"+old.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected saved world %s, got %d", old.ID, resp.StatusCode)
	}
	var snap struct {
		Config worldgen.Config `json:"config"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Config.NumPoints != 120 {
		t.Fatalf("expected saved world to keep 120 points, got %d", snap.Config.NumPoints)
	}
}

func TestHighestSavedIDSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"w8-3.json", "w2-11.json", "notes.txt", "w9-40.tmp", "x-99.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if got := highestSavedID(dir); got != 11 {
		t.Fatalf("expected 11, got %d", got)
	}
	if got := highestSavedID(filepath.Join(dir, "missing")); got != 0 {
		t.Fatalf("expected 0 for missing dir, got %d", got)
	}
}

func TestRejectsOversizedRequests(t *testing.T) {
	ts := testServer(t, Options{MaxPoints: 500, MaxExtent: 1000})
	for _, body := range []string{
		`{"num_points": 501}`,
		`{"width": 100000}`,
		`{"height": 1001}`,
		`{"width": -5}`,
	} {
		resp, err := http.Post(ts.URL+"/worlds", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", body, resp.StatusCode)
		}
	}
	createWorld(t, ts, `{"num_points": 500, "width": 1000, "height": 1000}`)
}

func TestDefaultLimitsApply(t *testing.T) {
	s := New(worldgen.DefaultConfig(), Options{})
	if s.opts.MaxPoints != defaultMaxPoints || s.opts.MaxExtent != defaultMaxExtent {
		t.Fatalf("expected default limits, got %d/%g", s.opts.MaxPoints, s.opts.MaxExtent)
	}
}

func TestMapPixelLimit(t *testing.T) {
	ts := testServer(t, Options{})
	sum := createWorld(t, ts, `{"seed": 5, "num_points": 200, "width": 4096, "height": 4096}`)
	if resp := get(t, ts.URL+"/worlds/"+sum.ID+"/map.png?scale=2"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized map, got %d", resp.StatusCode)
	}
}
