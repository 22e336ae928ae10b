package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"github.com/appengine-ltd/worldforge/internal/poi"
	"github.com/appengine-ltd/worldforge/internal/render"
	"github.com/appengine-ltd/worldforge/internal/store"
	"github.com/appengine-ltd/worldforge/internal/worldgen"
)

const (
	defaultMaxWorlds = 32
	defaultMaxPoints = 20000
	defaultMaxExtent = 4096
	maxRequestBytes  = 1 << 20
	maxMapScale      = 4
	maxMapPixels     = 1 << 24
)

type Options struct {
	Logger *slog.Logger
	// Dir, when set, keeps a snapshot of every generated world on disk and
	// serves worlds from it after a restart.
	Dir       string
	MaxWorlds int
	// MaxPoints and MaxExtent bound what a single request may ask to
	// generate. Zero selects the defaults.
	MaxPoints int
	MaxExtent float64
}

// Server keeps generated worlds in memory and serves them over HTTP.
type Server struct {
	base   worldgen.Config
	opts   Options
	logger *slog.Logger

	mu     sync.RWMutex
	worlds map[string]*worldgen.World
	order  []string
	next   int
}

func New(base worldgen.Config, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxWorlds <= 0 {
		opts.MaxWorlds = defaultMaxWorlds
	}
	if opts.MaxPoints <= 0 {
		opts.MaxPoints = defaultMaxPoints
	}
	if opts.MaxExtent <= 0 {
		opts.MaxExtent = defaultMaxExtent
	}
	s := &Server{
		base:   base,
		opts:   opts,
		logger: opts.Logger,
		worlds: make(map[string]*worldgen.World),
	}
	if opts.Dir != "" {
		s.next = highestSavedID(opts.Dir)
	}
	return s
}

// highestSavedID returns the largest counter among w<seed>-<n>.json files
// in dir, so ids handed out after a restart never collide with saved worlds.
func highestSavedID(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	highest := 0
	for _, e := range entries {
		id, ok := strings.CutSuffix(e.Name(), ".json")
		if !ok || e.IsDir() || !validID(id) {
			continue
		}
		if n := idCounter(id); n > highest {
			highest = n
		}
	}
	return highest
}

func idCounter(id string) int {
	i := strings.LastIndex(id, "-")
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return 0
	}
	return n
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/worlds", s.listWorlds).Methods(http.MethodGet)
	router.HandleFunc("/worlds", s.createWorld).Methods(http.MethodPost)
	router.HandleFunc("/worlds/{id}", s.getWorld).Methods(http.MethodGet)
	router.HandleFunc("/worlds/{id}", s.deleteWorld).Methods(http.MethodDelete)
	router.HandleFunc("/worlds/{id}/geojson", s.getGeoJSON).Methods(http.MethodGet)
	router.HandleFunc("/worlds/{id}/map.png", s.getMap).Methods(http.MethodGet)
	router.HandleFunc("/worlds/{id}/path", s.getPath).Methods(http.MethodGet)
	return router
}

type worldSummary struct {
	ID         string         `json:"id"`
	Seed       int64          `json:"seed"`
	Stats      worldgen.Stats `json:"stats"`
	Shortfalls []string       `json:"shortfalls,omitempty"`
}

func summarize(id string, w *worldgen.World) worldSummary {
	out := worldSummary{ID: id, Seed: w.Config.Seed, Stats: w.Stats}
	for _, t := range w.Report.Shortfalls() {
		out.Shortfalls = append(out.Shortfalls, string(t))
	}
	return out
}

func (s *Server) createWorld(res http.ResponseWriter, req *http.Request) {
	cfg := cloneConfig(s.base)
	body, err := io.ReadAll(io.LimitReader(req.Body, maxRequestBytes))
	if err != nil {
		writeError(res, http.StatusBadRequest, "read body: %v", err)
		return
	}
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &cfg); err != nil {
			writeError(res, http.StatusBadRequest, "parse config: %v", err)
			return
		}
	}

	if err := s.checkLimits(cfg); err != nil {
		writeError(res, http.StatusUnprocessableEntity, "%v", err)
		return
	}

	w, err := worldgen.Generate(req.Context(), cfg, worldgen.Options{Logger: s.logger})
	if err != nil {
		if req.Context().Err() != nil {
			return
		}
		writeError(res, http.StatusUnprocessableEntity, "generate world: %v", err)
		return
	}
	id := s.put(w)
	if s.opts.Dir != "" {
		if err := store.Save(s.snapshotPath(id), store.FromWorld(w)); err != nil {
			s.logger.Warn("persist world failed", "id", id, "error", err)
		}
	}
	s.logger.Info("world generated", "id", id, "seed", cfg.Seed, "pois", w.Stats.POIs)
	res.Header().Set("Location", "/worlds/"+id)
	writeJSON(res, http.StatusCreated, summarize(id, w))
}

func (s *Server) checkLimits(cfg worldgen.Config) error {
	if cfg.NumPoints > s.opts.MaxPoints {
		return fmt.Errorf("num_points %d exceeds limit %d", cfg.NumPoints, s.opts.MaxPoints)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %gx%g", cfg.Width, cfg.Height)
	}
	if cfg.Width > s.opts.MaxExtent || cfg.Height > s.opts.MaxExtent {
		return fmt.Errorf("map %gx%g exceeds limit %g", cfg.Width, cfg.Height, s.opts.MaxExtent)
	}
	return nil
}

func (s *Server) listWorlds(res http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	out := make([]worldSummary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, summarize(id, s.worlds[id]))
	}
	s.mu.RUnlock()
	writeJSON(res, http.StatusOK, out)
}

func (s *Server) getWorld(res http.ResponseWriter, req *http.Request) {
	w, ok := s.lookup(res, req)
	if !ok {
		return
	}
	writeJSON(res, http.StatusOK, store.FromWorld(w))
}

func (s *Server) deleteWorld(res http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	s.mu.Lock()
	_, ok := s.worlds[id]
	if ok {
		s.removeLocked(id)
	}
	s.mu.Unlock()
	if s.opts.Dir != "" {
		if err := os.Remove(s.snapshotPath(id)); err == nil {
			ok = true
		}
	}
	if !ok {
		writeError(res, http.StatusNotFound, "world %q not found", id)
		return
	}
	res.WriteHeader(http.StatusNoContent)
}

func (s *Server) getGeoJSON(res http.ResponseWriter, req *http.Request) {
	w, ok := s.lookup(res, req)
	if !ok {
		return
	}
	data, err := store.GeoJSON(w)
	if err != nil {
		writeError(res, http.StatusInternalServerError, "encode geojson: %v", err)
		return
	}
	res.Header().Set("Content-Type", "application/geo+json")
	res.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = res.Write(data)
}

func (s *Server) getMap(res http.ResponseWriter, req *http.Request) {
	w, ok := s.lookup(res, req)
	if !ok {
		return
	}
	opts := render.DefaultOptions()
	q := req.URL.Query()
	switch m := render.Mode(q.Get("mode")); m {
	case "":
	case render.ModeBiome, render.ModeElevation:
		opts.Mode = m
	default:
		writeError(res, http.StatusBadRequest, "unknown mode %q", m)
		return
	}
	if raw := q.Get("scale"); raw != "" {
		scale, err := strconv.ParseFloat(raw, 64)
		if err != nil || scale <= 0 || scale > maxMapScale {
			writeError(res, http.StatusBadRequest, "scale must be in (0, %d]", maxMapScale)
			return
		}
		opts.Scale = scale
	}
	opts.Labels = q.Get("labels") != "0"
	if px := (w.Config.Width * opts.Scale) * (w.Config.Height * opts.Scale); px > maxMapPixels {
		writeError(res, http.StatusBadRequest, "map of %.0f pixels exceeds limit %d, lower scale", px, maxMapPixels)
		return
	}

	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, w, opts); err != nil {
		writeError(res, http.StatusInternalServerError, "render map: %v", err)
		return
	}
	res.Header().Set("Content-Type", "image/png")
	res.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = res.Write(buf.Bytes())
}

type pathResponse struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Path     []string `json:"path"`
	Distance float64  `json:"distance"`
}

// getPath resolves ?from=&to= stable POI ids and returns the shortest route.
func (s *Server) getPath(res http.ResponseWriter, req *http.Request) {
	w, ok := s.lookup(res, req)
	if !ok {
		return
	}
	q := req.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	ids := store.StableIDs(w.Graph)
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	a, okA := index[from]
	b, okB := index[to]
	if !okA || !okB {
		writeError(res, http.StatusBadRequest, "unknown poi in from=%q to=%q", from, to)
		return
	}
	path := poi.FindPath(w.Graph, a, b)
	if path == nil {
		writeError(res, http.StatusNotFound, "no route from %q to %q", from, to)
		return
	}
	dist, _ := poi.PathLength(w.Graph, path)
	out := pathResponse{From: from, To: to, Distance: dist}
	for _, n := range path {
		out.Path = append(out.Path, ids[n])
	}
	writeJSON(res, http.StatusOK, out)
}

func (s *Server) put(w *worldgen.World) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var id string
	for {
		s.next++
		id = fmt.Sprintf("w%d-%d", w.Config.Seed, s.next)
		if !s.onDisk(id) {
			break
		}
	}
	s.worlds[id] = w
	s.order = append(s.order, id)
	for len(s.order) > s.opts.MaxWorlds {
		s.removeLocked(s.order[0])
	}
	return id
}

func (s *Server) removeLocked(id string) {
	delete(s.worlds, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// lookup finds the world named in the route, falling back to the snapshot
// directory. It writes the error response itself.
func (s *Server) lookup(res http.ResponseWriter, req *http.Request) (*worldgen.World, bool) {
	id := mux.Vars(req)["id"]
	s.mu.RLock()
	w, ok := s.worlds[id]
	s.mu.RUnlock()
	if ok {
		return w, true
	}
	if s.opts.Dir != "" && validID(id) {
		snap, err := store.Load(s.snapshotPath(id))
		if err == nil {
			if w, err = snap.World(); err == nil {
				return w, true
			}
		}
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("load snapshot failed", "id", id, "error", err)
		}
	}
	writeError(res, http.StatusNotFound, "world %q not found", id)
	return nil, false
}

func (s *Server) onDisk(id string) bool {
	if s.opts.Dir == "" {
		return false
	}
	_, err := os.Stat(s.snapshotPath(id))
	return err == nil
}

func (s *Server) snapshotPath(id string) string {
	return filepath.Join(s.opts.Dir, id+".json")
}

func validID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if !(r == '-' || r == 'w' || (r >= '0' && r <= '9')) {
			return false
		}
	}
	return true
}

func cloneConfig(c worldgen.Config) worldgen.Config {
	counts := make(map[string]int, len(c.POICounts))
	for k, v := range c.POICounts {
		counts[k] = v
	}
	c.POICounts = counts
	return c
}

func writeJSON(res http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}
	res.Header().Set("Content-Type", "application/json")
	res.Header().Set("Content-Length", strconv.Itoa(len(data)))
	res.WriteHeader(status)
	_, _ = res.Write(data)
}

func writeError(res http.ResponseWriter, status int, format string, args ...any) {
	writeJSON(res, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}
