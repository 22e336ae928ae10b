package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/appengine-ltd/worldforge/internal/server"
	"github.com/appengine-ltd/worldforge/internal/worldgen"
)

func main() {
	var (
		addr       string
		configPath string
		dataDir    string
		maxWorlds  int
		maxPoints  int
		maxExtent  float64
		verbose    bool
	)

	flag.StringVar(&addr, "addr", ":3333", "listen address")
	flag.StringVar(&configPath, "config", "", "base config JSON (default: user config dir)")
	flag.StringVar(&dataDir, "data", "", "directory for world snapshots (memory only when empty)")
	flag.IntVar(&maxWorlds, "max-worlds", 32, "worlds kept in memory")
	flag.IntVar(&maxPoints, "max-points", 20000, "largest num_points a request may ask for")
	flag.Float64Var(&maxExtent, "max-extent", 4096, "largest width or height a request may ask for")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

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

	srv := &http.Server{
		Addr: addr,
		Handler: server.New(cfg, server.Options{
			Logger:    logger,
			Dir:       dataDir,
			MaxWorlds: maxWorlds,
			MaxPoints: maxPoints,
			MaxExtent: maxExtent,
		}).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", addr, "config", configPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		die(err.Error())
	}
}

func die(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
