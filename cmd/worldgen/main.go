package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/appengine-ltd/worldforge/internal/render"
	"github.com/appengine-ltd/worldforge/internal/store"
	"github.com/appengine-ltd/worldforge/internal/worldgen"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		configPath  string
		outDir      string
		name        string
		seed        int64
		points      int
		shape       string
		mapMode     string
		mapScale    float64
		overrides   = overrideFlag{}
		writeConfig bool
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "config JSON (default: user config dir)")
	flag.StringVar(&outDir, "out", "out", "output directory")
	flag.StringVar(&name, "name", "", "output file prefix (defaults to world-<seed>)")
	flag.Int64Var(&seed, "seed", 0, "seed override")
	flag.IntVar(&points, "points", 0, "point count override")
	flag.StringVar(&shape, "shape", "", "island shape override: radial or complex")
	flag.StringVar(&mapMode, "map", string(render.ModeBiome), "map colouring: biome or elevation")
	flag.Float64Var(&mapScale, "scale", 1, "map image scale")
	flag.Var(&overrides, "set", "config override key=value (repeatable), e.g. poi.town=3")
	flag.BoolVar(&writeConfig, "write-config", false, "save the effective config to -config and exit")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("worldgen %s (%s) %s\n", version, commit, date)
		return
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if strings.TrimSpace(configPath) == "" {
		p, err := worldgen.DefaultConfigPath()
		if err != nil {
			die(fmt.Sprintf("resolve config path: %v", err))
		}
		configPath = p
	}
	cfg, err := worldgen.LoadConfig(configPath)
	if err != nil {
		die(fmt.Sprintf("load config: %v", err))
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if points > 0 {
		cfg.NumPoints = points
	}
	if shape != "" {
		cfg.IslandShape = shape
	}
	cfg = cfg.FromMap(overrides)

	if writeConfig {
		if err := worldgen.SaveConfig(configPath, cfg); err != nil {
			die(fmt.Sprintf("save config: %v", err))
		}
		fmt.Printf("wrote %s\n", configPath)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	w, err := worldgen.Generate(ctx, cfg, worldgen.Options{Logger: logger})
	if err != nil {
		die(fmt.Sprintf("generate world: %v", err))
	}

	if strings.TrimSpace(name) == "" {
		name = fmt.Sprintf("world-%d", cfg.Seed)
	}
	base := filepath.Join(outDir, name)
	if err := store.Save(base+".json", store.FromWorld(w)); err != nil {
		die(fmt.Sprintf("write snapshot: %v", err))
	}
	if err := store.WriteGeoJSON(base+".geojson", w); err != nil {
		die(fmt.Sprintf("write geojson: %v", err))
	}
	opts := render.DefaultOptions()
	opts.Mode = render.Mode(mapMode)
	opts.Scale = mapScale
	if err := render.WritePNG(base+".png", w, opts); err != nil {
		die(fmt.Sprintf("write map: %v", err))
	}

	fmt.Println(summary(w, base))
}

// overrideFlag collects repeated -set key=value pairs.
type overrideFlag map[string]string

func (o overrideFlag) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (o overrideFlag) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", raw)
	}
	o[key] = strings.TrimSpace(value)
	return nil
}

func die(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
