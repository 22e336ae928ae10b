//go:build cgo

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/appengine-ltd/worldforge/internal/store"
	"github.com/appengine-ltd/worldforge/internal/viewer"
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
		configPath   string
		snapshotPath string
		seed         int64
		width        int
		height       int
		verbose      bool
		showVersion  bool
	)

	flag.StringVar(&configPath, "config", "", "config JSON (default: user config dir)")
	flag.StringVar(&snapshotPath, "load", "", "open a saved world snapshot instead of generating")
	flag.Int64Var(&seed, "seed", 0, "seed override")
	flag.IntVar(&width, "width", 1280, "window width")
	flag.IntVar(&height, "height", 800, "window height")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("worldview %s (%s) %s\n", version, commit, date)
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	regenerate := func(ctx context.Context, seed int64) (*worldgen.World, error) {
		next := cfg
		next.Seed = seed
		return worldgen.Generate(ctx, next, worldgen.Options{Logger: logger})
	}

	var w *worldgen.World
	if snapshotPath != "" {
		s, err := store.Load(snapshotPath)
		if err != nil {
			die(fmt.Sprintf("load snapshot: %v", err))
		}
		if w, err = s.World(); err != nil {
			die(fmt.Sprintf("open snapshot: %v", err))
		}
		cfg = w.Config
	} else if w, err = regenerate(ctx, cfg.Seed); err != nil {
		die(fmt.Sprintf("generate world: %v", err))
	}

	err = viewer.Run(ctx, w, viewer.Options{
		Width:      int32(width),
		Height:     int32(height),
		Regenerate: regenerate,
		Logger:     logger,
	})
	if err != nil && ctx.Err() == nil {
		die(err.Error())
	}
}

func die(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
