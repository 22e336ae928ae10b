package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"github.com/appengine-ltd/worldforge/internal/terrain"
	"github.com/appengine-ltd/worldforge/internal/worldgen"
)

type Mode string

const (
	ModeBiome     Mode = "biome"
	ModeElevation Mode = "elevation"
)

type Options struct {
	Scale  float64
	Mode   Mode
	Rivers bool
	Routes bool
	POIs   bool
	Labels bool
}

func DefaultOptions() Options {
	return Options{Scale: 1, Mode: ModeBiome, Rivers: true, Routes: true, POIs: true, Labels: true}
}

// Draw paints the world into a new image sized to the map bounds times
// opts.Scale.
func Draw(w *worldgen.World, opts Options) (image.Image, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	m := w.Mesh
	width := int(m.Bounds.Width()*opts.Scale + 0.5)
	height := int(m.Bounds.Height()*opts.Scale + 0.5)
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	grad, err := elevationGradient()
	if err != nil {
		return nil, fmt.Errorf("build gradient: %w", err)
	}

	dc := gg.NewContext(width, height)
	dc.Scale(opts.Scale, opts.Scale)
	dc.Translate(-m.Bounds.Min.X, -m.Bounds.Min.Y)
	dc.SetColor(BiomeColor(terrain.Ocean))
	dc.Clear()

	for i := range m.Centers {
		c := &m.Centers[i]
		poly := m.Polygon(i)
		if len(poly) < 3 {
			continue
		}
		var fill color.RGBA
		switch {
		case opts.Mode == ModeElevation && !c.Water:
			fill = toRGBA(grad.At(0.2 + 0.8*c.Elevation))
		case opts.Mode == ModeElevation:
			fill = toRGBA(grad.At(0))
		default:
			fill = BiomeColor(terrain.ClassifyCenter(c))
			if !c.Water {
				fill = ShadeByElevation(fill, c.Elevation)
			}
		}
		dc.NewSubPath()
		dc.MoveTo(poly[0].X, poly[0].Y)
		for _, p := range poly[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetLineWidth(0.6)
		dc.Stroke()
	}

	if opts.Rivers {
		dc.SetLineCapRound()
		dc.SetColor(BiomeColor(terrain.Lake))
		for _, e := range m.RiverEdges() {
			edge := m.Edges[e]
			a, b := m.Corners[edge.V0].Point, m.Corners[edge.V1].Point
			dc.SetLineWidth(0.8 + 0.5*float64(edge.River))
			dc.DrawLine(a.X, a.Y, b.X, b.Y)
			dc.Stroke()
		}
	}

	g := w.Graph
	if g != nil && opts.Routes {
		dc.SetRGBA(0.25, 0.18, 0.1, 0.8)
		dc.SetLineWidth(1.5)
		dc.SetDash(4, 3)
		for _, e := range g.Edges {
			a, b := g.Nodes[e.Source].Position, g.Nodes[e.Target].Position
			dc.DrawLine(a.X, a.Y, b.X, b.Y)
			dc.Stroke()
		}
		dc.SetDash()
	}
	if g != nil && opts.POIs {
		for _, n := range g.Nodes {
			r := 4.0
			if n.IsInitial {
				r = 6
			}
			dc.SetColor(POIColor(n.Type))
			dc.DrawCircle(n.Position.X, n.Position.Y, r)
			dc.FillPreserve()
			dc.SetRGBA(0, 0, 0, 0.8)
			dc.SetLineWidth(1)
			dc.Stroke()
			if opts.Labels && n.Name != "" {
				dc.SetRGBA(0.05, 0.05, 0.05, 0.9)
				dc.DrawStringAnchored(n.Name, n.Position.X, n.Position.Y-r-2, 0.5, 0)
			}
		}
	}
	return dc.Image(), nil
}

func EncodePNG(out io.Writer, w *worldgen.World, opts Options) error {
	img, err := Draw(w, opts)
	if err != nil {
		return err
	}
	return png.Encode(out, img)
}

func WritePNG(path string, w *worldgen.World, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, w, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
