package terrain

import "github.com/appengine-ltd/worldforge/internal/mesh"

type Label string

const (
	Ocean                    Label = "OCEAN"
	Lake                     Label = "LAKE"
	Snow                     Label = "SNOW"
	Tundra                   Label = "TUNDRA"
	Bare                     Label = "BARE"
	Scorched                 Label = "SCORCHED"
	Taiga                    Label = "TAIGA"
	Shrubland                Label = "SHRUBLAND"
	TemperateDesert          Label = "TEMPERATE_DESERT"
	TemperateRainForest      Label = "TEMPERATE_RAIN_FOREST"
	TemperateDeciduousForest Label = "TEMPERATE_DECIDUOUS_FOREST"
	Grassland                Label = "GRASSLAND"
	TropicalRainForest       Label = "TROPICAL_RAIN_FOREST"
	TropicalSeasonalForest   Label = "TROPICAL_SEASONAL_FOREST"
	SubtropicalDesert        Label = "SUBTROPICAL_DESERT"
)

// Labels lists every biome in display order.
var Labels = []Label{
	Ocean, Lake,
	Snow, Tundra, Bare, Scorched,
	Taiga, Shrubland, TemperateDesert,
	TemperateRainForest, TemperateDeciduousForest, Grassland,
	TropicalRainForest, TropicalSeasonalForest, SubtropicalDesert,
}

// Biome maps a land cell's elevation and moisture to its label.
func Biome(elevation, moisture float64) Label {
	e, m := elevation, moisture
	switch {
	case e > 0.8:
		switch {
		case m > 0.5:
			return Snow
		case m > 0.33:
			return Tundra
		case m > 0.16:
			return Bare
		default:
			return Scorched
		}
	case e > 0.6:
		switch {
		case m > 0.66:
			return Taiga
		case m > 0.33:
			return Shrubland
		default:
			return TemperateDesert
		}
	case e > 0.3:
		switch {
		case m > 0.83:
			return TemperateRainForest
		case m > 0.5:
			return TemperateDeciduousForest
		case m > 0.16:
			return Grassland
		default:
			return TemperateDesert
		}
	default:
		switch {
		case m > 0.66:
			return TropicalRainForest
		case m > 0.33:
			return TropicalSeasonalForest
		case m > 0.16:
			return Grassland
		default:
			return SubtropicalDesert
		}
	}
}

func ClassifyCenter(c *mesh.Center) Label {
	switch {
	case c.Ocean:
		return Ocean
	case c.Water:
		return Lake
	default:
		return Biome(c.Elevation, c.Moisture)
	}
}

func AssignBiomes(m *mesh.Mesh) {
	for i := range m.Centers {
		m.Centers[i].Biome = string(ClassifyCenter(&m.Centers[i]))
	}
}
