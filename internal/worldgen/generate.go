package worldgen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/appengine-ltd/worldforge/internal/geom"
	"github.com/appengine-ltd/worldforge/internal/lore"
	"github.com/appengine-ltd/worldforge/internal/mesh"
	"github.com/appengine-ltd/worldforge/internal/poi"
	"github.com/appengine-ltd/worldforge/internal/rng"
	"github.com/appengine-ltd/worldforge/internal/terrain"
)

type Options struct {
	Logger *slog.Logger
	// Lore overrides the generator chosen from Config.Lore.
	Lore lore.Generator
}

// World is the complete output of one generation run.
type World struct {
	Config Config          `json:"config"`
	Mesh   *mesh.Mesh      `json:"mesh"`
	Graph  *poi.Graph      `json:"graph"`
	Report poi.Report      `json:"report"`
	Rivers []terrain.River `json:"rivers"`
	Stats  Stats           `json:"stats"`
}

// Generate runs the full pipeline. Every random draw comes from streams
// derived from cfg.Seed, so equal configs produce equal worlds. The context
// only bounds the lore call, which runs after the graph is complete.
func Generate(ctx context.Context, cfg Config, opts Options) (*World, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src := rng.New(cfg.Seed)
	bounds := geom.NewRect(cfg.Width, cfg.Height)

	stage := func(name string, start time.Time) {
		logger.Debug("stage done", "stage", name, "took", time.Since(start))
	}

	start := time.Now()
	pts := mesh.SamplePoints(src.Derive("points"), cfg.NumPoints, bounds)
	pts = mesh.Relax(pts, bounds, cfg.RelaxationIterations)
	m, err := mesh.Build(pts, bounds)
	if err != nil {
		return nil, fmt.Errorf("build mesh: %w", err)
	}
	stage("mesh", start)

	start = time.Now()
	terrain.AssignElevation(m, src.Derive("elevation"))
	stage("elevation", start)

	start = time.Now()
	noiseSeed := cfg.NoiseSeed
	if noiseSeed == 0 {
		noiseSeed = src.Derive("noise").Seed()
	}
	shape, ok := terrain.NewShape(cfg.IslandShape, bounds, terrain.ShapeParams{
		IslandFactor:          cfg.IslandFactor,
		IslandCount:           cfg.IslandCount,
		NoiseSeed:             noiseSeed,
		NoiseScale:            cfg.NoiseScale,
		NoiseIntensity:        cfg.NoiseIntensity,
		CoastalNoiseFrequency: cfg.CoastalNoiseFrequency,
	}, src.Derive("shape"))
	if !ok {
		logger.Warn("unknown island shape, using radial", "shape", cfg.IslandShape, "known", terrain.ShapeNames())
	}
	terrain.AssignWater(m, shape, src.Derive("water"), cfg.LakeProbability)
	stage("water", start)

	start = time.Now()
	rivers := terrain.AssignRivers(m, cfg.RiverCount)
	stage("rivers", start)

	start = time.Now()
	terrain.AssignMoisture(m)
	terrain.AssignBiomes(m)
	stage("moisture+biomes", start)

	start = time.Now()
	graph, report := poi.Place(m, src.Derive("placement"), poi.PlaceOptions{
		Counts:      cfg.LocationCounts(),
		Initial:     cfg.InitialType(),
		MinDistance: cfg.EffectiveMinPOIDistance(),
	})
	for _, t := range report.Shortfalls() {
		logger.Info("placed fewer POIs than requested",
			"type", t, "requested", report.Requested[t], "placed", report.Placed[t])
	}
	stage("placement", start)

	start = time.Now()
	poi.Connect(graph, src.Derive("connect"), poi.ConnectOptions{
		MaxConnectionDistance: cfg.EffectiveMaxConnectionDistance(),
		ShortcutIterations:    cfg.ShortcutIterations,
		MinDetourRatio:        cfg.MinDetourRatio,
	})
	stage("connect", start)

	start = time.Now()
	gen := opts.Lore
	if gen == nil && cfg.Lore.Enabled {
		gen = lore.HTTPGenerator{
			Endpoint: cfg.Lore.Endpoint,
			Timeout:  time.Duration(cfg.Lore.TimeoutSeconds) * time.Second,
		}
	}
	lore.Enrich(ctx, gen, graph, logger)
	stage("lore", start)

	w := &World{
		Config: cfg,
		Mesh:   m,
		Graph:  graph,
		Report: report,
		Rivers: rivers,
	}
	w.Stats = ComputeStats(w)
	logger.Debug("world generated",
		"seed", cfg.Seed, "centers", w.Stats.Centers, "land", w.Stats.Land, "pois", w.Stats.POIs, "routes", w.Stats.Routes)
	return w, nil
}
