//go:build cgo

package viewer

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/worldforge/internal/geom"
	"github.com/appengine-ltd/worldforge/internal/render"
	"github.com/appengine-ltd/worldforge/internal/terrain"
	"github.com/appengine-ltd/worldforge/internal/worldgen"
)

const (
	hudHeight  = 34
	mapPadding = 12
	pickRadius = 10
)

var (
	colorBG     = rl.NewColor(18, 22, 28, 255)
	colorText   = rl.NewColor(222, 226, 230, 255)
	colorMuted  = rl.NewColor(150, 158, 166, 255)
	colorRoute  = rl.NewColor(70, 52, 30, 200)
	colorPath   = rl.NewColor(250, 214, 90, 255)
	colorSelect = rl.NewColor(255, 255, 255, 255)
)

// Regenerate builds a fresh world for the given seed.
type Regenerate func(ctx context.Context, seed int64) (*worldgen.World, error)

type Options struct {
	Width      int32
	Height     int32
	Regenerate Regenerate
	Logger     *slog.Logger
}

type mapViewer struct {
	opts   Options
	world  *worldgen.World
	view   Viewport
	fitted bool
	mode   render.Mode
	rivers bool
	routes bool
	sel    selection
	status string
}

// Run opens a window on w and blocks until it is closed.
// Keys: arrows pan, +/- or wheel zoom, M toggles biome/elevation,
// V rivers, T routes, N next seed, F refit. Click two POIs to trace a route.
func Run(ctx context.Context, w *worldgen.World, opts Options) error {
	if w == nil || w.Mesh == nil {
		return fmt.Errorf("no world to show")
	}
	if opts.Width <= 0 {
		opts.Width = 1280
	}
	if opts.Height <= 0 {
		opts.Height = 800
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	v := &mapViewer{
		opts:   opts,
		world:  w,
		mode:   render.ModeBiome,
		rivers: true,
		routes: true,
		sel:    newSelection(),
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(opts.Width, opts.Height, "worldforge")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		v.update(ctx)
		rl.BeginDrawing()
		rl.ClearBackground(colorBG)
		v.draw()
		rl.EndDrawing()
	}
	return nil
}

func (v *mapViewer) mapArea() geom.Rect {
	return geom.Rect{
		Min: geom.Pt(0, hudHeight),
		Max: geom.Pt(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())),
	}
}

func (v *mapViewer) refit() {
	if view, ok := FitViewport(v.world.Mesh.Bounds, v.mapArea(), mapPadding); ok {
		v.view = view
		v.fitted = true
	}
}

func (v *mapViewer) update(ctx context.Context) {
	if !v.fitted || rl.IsWindowResized() || rl.IsKeyPressed(rl.KeyF) {
		v.refit()
	}
	step := float64(400 * rl.GetFrameTime())
	if rl.IsKeyDown(rl.KeyLeft) {
		v.view = v.view.Pan(step, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		v.view = v.view.Pan(-step, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.view = v.view.Pan(0, step)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.view = v.view.Pan(0, -step)
	}

	mouse := rl.GetMousePosition()
	anchor := geom.Pt(float64(mouse.X), float64(mouse.Y))
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		v.view = v.view.ZoomAt(1+0.1*float64(wheel), anchor)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.view = v.view.ZoomAt(1.25, v.mapArea().Center())
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.view = v.view.ZoomAt(0.8, v.mapArea().Center())
	}

	if rl.IsKeyPressed(rl.KeyM) {
		if v.mode == render.ModeBiome {
			v.mode = render.ModeElevation
		} else {
			v.mode = render.ModeBiome
		}
	}
	if rl.IsKeyPressed(rl.KeyV) {
		v.rivers = !v.rivers
	}
	if rl.IsKeyPressed(rl.KeyT) {
		v.routes = !v.routes
	}
	if rl.IsKeyPressed(rl.KeyN) && v.opts.Regenerate != nil {
		v.regenerate(ctx, v.world.Config.Seed+1)
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		radius := pickRadius / v.view.Zoom
		if id, ok := nearestPOI(v.world.Graph, v.view.ToWorld(anchor), radius); ok {
			v.sel = v.sel.pick(v.world.Graph, id)
			v.status = v.selectionStatus()
		}
	}
}

func (v *mapViewer) regenerate(ctx context.Context, seed int64) {
	w, err := v.opts.Regenerate(ctx, seed)
	if err != nil {
		v.opts.Logger.Warn("regenerate failed", "seed", seed, "error", err)
		v.status = "regenerate failed: " + err.Error()
		return
	}
	v.world = w
	v.sel = newSelection()
	v.status = fmt.Sprintf("seed %d", seed)
	v.refit()
}

func (v *mapViewer) selectionStatus() string {
	g := v.world.Graph
	switch {
	case v.sel.from >= 0 && v.sel.to < 0:
		return "from " + g.Nodes[v.sel.from].Name
	case v.sel.to >= 0 && v.sel.path == nil:
		return fmt.Sprintf("no route from %s to %s", g.Nodes[v.sel.from].Name, g.Nodes[v.sel.to].Name)
	case v.sel.to >= 0:
		return fmt.Sprintf("%s -> %s: %d stops, %.0f units",
			g.Nodes[v.sel.from].Name, g.Nodes[v.sel.to].Name, len(v.sel.path), v.sel.length)
	}
	return ""
}

func (v *mapViewer) vec(p geom.Point) rl.Vector2 {
	s := v.view.ToScreen(p)
	return rl.NewVector2(float32(s.X), float32(s.Y))
}

func (v *mapViewer) draw() {
	m := v.world.Mesh
	for i := range m.Centers {
		c := &m.Centers[i]
		clr := v.cellColor(c.Water, c.Elevation, terrain.ClassifyCenter(c))
		screen := make([]geom.Point, 0, len(c.Corners))
		for _, p := range m.Polygon(i) {
			screen = append(screen, v.view.ToScreen(p))
		}
		for _, tri := range fanTriangles(screen) {
			rl.DrawTriangle(
				rl.NewVector2(float32(tri[0].X), float32(tri[0].Y)),
				rl.NewVector2(float32(tri[1].X), float32(tri[1].Y)),
				rl.NewVector2(float32(tri[2].X), float32(tri[2].Y)),
				clr,
			)
		}
	}

	if v.rivers {
		river := render.BiomeColor(terrain.Lake)
		for _, e := range m.RiverEdges() {
			edge := m.Edges[e]
			width := float32(v.view.Zoom) * (0.6 + 0.4*float32(edge.River))
			rl.DrawLineEx(v.vec(m.Corners[edge.V0].Point), v.vec(m.Corners[edge.V1].Point), width, river)
		}
	}

	g := v.world.Graph
	if g != nil {
		for _, e := range g.Edges {
			a, b := v.vec(g.Nodes[e.Source].Position), v.vec(g.Nodes[e.Target].Position)
			switch {
			case v.sel.onPath(e.Source, e.Target):
				rl.DrawLineEx(a, b, 4, colorPath)
			case v.routes:
				rl.DrawLineEx(a, b, 1.5, colorRoute)
			}
		}
		for i, n := range g.Nodes {
			pos := v.vec(n.Position)
			r := float32(5)
			if n.IsInitial {
				r = 7
			}
			rl.DrawCircleV(pos, r, render.POIColor(n.Type))
			if i == v.sel.from || i == v.sel.to {
				rl.DrawCircleLines(int32(pos.X), int32(pos.Y), r+3, colorSelect)
			}
			if v.view.Zoom >= 1.2 {
				rl.DrawText(n.Name, int32(pos.X)+8, int32(pos.Y)-6, 12, colorText)
			}
		}
	}
	v.drawHUD()
}

func (v *mapViewer) cellColor(water bool, elevation float64, label terrain.Label) color.RGBA {
	if v.mode == render.ModeElevation {
		if water {
			return render.BiomeColor(terrain.Ocean)
		}
		shade := uint8(60 + 190*geom.Clamp(elevation, 0, 1))
		return rl.NewColor(shade, shade, shade, 255)
	}
	clr := render.BiomeColor(label)
	if !water {
		clr = render.ShadeByElevation(clr, elevation)
	}
	return clr
}

func (v *mapViewer) drawHUD() {
	width := int32(rl.GetScreenWidth())
	rl.DrawRectangle(0, 0, width, hudHeight, colorBG)
	s := v.world.Stats
	info := fmt.Sprintf("seed %d  cells %d  land %d  rivers %d  POIs %d  routes %d  [%s]",
		v.world.Config.Seed, s.Centers, s.Land, s.Rivers, s.POIs, s.Routes, v.mode)
	rl.DrawText(info, 10, 10, 16, colorText)
	if v.status != "" {
		rl.DrawText(v.status, width-int32(rl.MeasureText(v.status, 16))-10, 10, 16, colorMuted)
	}
}
