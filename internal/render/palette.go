package render

import (
	"image/color"

	"github.com/mazznoer/colorgrad"

	"github.com/appengine-ltd/worldforge/internal/poi"
	"github.com/appengine-ltd/worldforge/internal/terrain"
)

var biomeColors = map[terrain.Label]color.RGBA{
	terrain.Ocean:                    {R: 54, G: 74, B: 112, A: 255},
	terrain.Lake:                     {R: 86, G: 124, B: 160, A: 255},
	terrain.Snow:                     {R: 236, G: 238, B: 240, A: 255},
	terrain.Tundra:                   {R: 187, G: 187, B: 170, A: 255},
	terrain.Bare:                     {R: 136, G: 136, B: 136, A: 255},
	terrain.Scorched:                 {R: 85, G: 85, B: 85, A: 255},
	terrain.Taiga:                    {R: 153, G: 170, B: 119, A: 255},
	terrain.Shrubland:                {R: 136, G: 153, B: 119, A: 255},
	terrain.TemperateDesert:          {R: 201, G: 210, B: 155, A: 255},
	terrain.TemperateRainForest:      {R: 68, G: 136, B: 85, A: 255},
	terrain.TemperateDeciduousForest: {R: 103, G: 148, B: 89, A: 255},
	terrain.Grassland:                {R: 136, G: 170, B: 85, A: 255},
	terrain.TropicalRainForest:       {R: 51, G: 119, B: 85, A: 255},
	terrain.TropicalSeasonalForest:   {R: 85, G: 153, B: 68, A: 255},
	terrain.SubtropicalDesert:        {R: 210, G: 185, B: 139, A: 255},
}

func BiomeColor(label terrain.Label) color.RGBA {
	if c, ok := biomeColors[label]; ok {
		return c
	}
	return color.RGBA{R: 96, G: 105, B: 110, A: 255}
}

// ShadeByElevation darkens lowlands and lightens peaks.
func ShadeByElevation(c color.RGBA, elevation float64) color.RGBA {
	f := 0.75 + 0.45*elevation
	scale := func(v uint8) uint8 {
		out := float64(v) * f
		if out > 255 {
			out = 255
		}
		return uint8(out)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

func POIColor(t poi.LocationType) color.RGBA {
	switch t {
	case poi.Town:
		return color.RGBA{R: 232, G: 196, B: 84, A: 255}
	case poi.Castle:
		return color.RGBA{R: 196, G: 72, B: 64, A: 255}
	case poi.Forest:
		return color.RGBA{R: 40, G: 96, B: 48, A: 255}
	case poi.Mountain:
		return color.RGBA{R: 120, G: 110, B: 100, A: 255}
	case poi.Lake:
		return color.RGBA{R: 120, G: 190, B: 230, A: 255}
	case poi.Cave:
		return color.RGBA{R: 70, G: 60, B: 80, A: 255}
	case poi.Ruins:
		return color.RGBA{R: 170, G: 150, B: 120, A: 255}
	case poi.Camp:
		return color.RGBA{R: 220, G: 130, B: 60, A: 255}
	case poi.Oasis:
		return color.RGBA{R: 80, G: 200, B: 170, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
}

// elevationGradient runs from shallow water blue through lowland green to
// mountain grey and snow.
func elevationGradient() (colorgrad.Gradient, error) {
	grad := colorgrad.NewGradient()
	grad.Colors(
		color.RGBA{R: 40, G: 60, B: 110, A: 255},
		color.RGBA{R: 90, G: 150, B: 80, A: 255},
		color.RGBA{R: 200, G: 190, B: 120, A: 255},
		color.RGBA{R: 130, G: 120, B: 110, A: 255},
		color.RGBA{R: 245, G: 245, B: 245, A: 255},
	)
	return grad.Build()
}

func toRGBA(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
