package poi

import (
	"github.com/appengine-ltd/worldforge/internal/mesh"
	"github.com/appengine-ltd/worldforge/internal/terrain"
)

// Rule scores how well a cell suits a location type.
type Rule struct {
	Suitability  map[terrain.Label]float64
	MinElevation float64
	MaxElevation float64
	MinMoisture  float64
	MaxMoisture  float64
	RequireCoast bool
	// CoastBonus multiplies the score of coastal cells; 0 means no bonus.
	CoastBonus float64
	// MinDistanceFactor scales the base spacing between POIs of this type.
	MinDistanceFactor float64
}

const castleSpacing = 3.0

var DefaultRules = map[LocationType]Rule{
	Town: {
		Suitability: map[terrain.Label]float64{
			terrain.Grassland:                1.0,
			terrain.TemperateDeciduousForest: 0.8,
			terrain.TropicalSeasonalForest:   0.7,
			terrain.Shrubland:                0.5,
			terrain.TemperateDesert:          0.3,
			terrain.SubtropicalDesert:        0.2,
		},
		MaxElevation:      0.7,
		MaxMoisture:       1,
		CoastBonus:        1.3,
		MinDistanceFactor: 1,
	},
	Castle: {
		Suitability: map[terrain.Label]float64{
			terrain.Grassland:                0.8,
			terrain.Shrubland:                1.0,
			terrain.TemperateDeciduousForest: 0.6,
			terrain.Taiga:                    0.5,
			terrain.Bare:                     0.4,
		},
		MinElevation:      0.3,
		MaxElevation:      0.9,
		MaxMoisture:       1,
		MinDistanceFactor: castleSpacing,
	},
	Forest: {
		Suitability: map[terrain.Label]float64{
			terrain.TemperateDeciduousForest: 1.0,
			terrain.TemperateRainForest:      1.0,
			terrain.TropicalRainForest:       0.9,
			terrain.TropicalSeasonalForest:   0.9,
			terrain.Taiga:                    0.8,
		},
		MaxElevation:      1,
		MinMoisture:       0.3,
		MaxMoisture:       1,
		MinDistanceFactor: 1,
	},
	Mountain: {
		Suitability: map[terrain.Label]float64{
			terrain.Snow:     1.0,
			terrain.Tundra:   0.9,
			terrain.Bare:     0.9,
			terrain.Scorched: 0.8,
			terrain.Taiga:    0.4,
		},
		MinElevation:      0.6,
		MaxElevation:      1,
		MaxMoisture:       1,
		MinDistanceFactor: 1.5,
	},
	Cave: {
		Suitability: map[terrain.Label]float64{
			terrain.Bare:            1.0,
			terrain.Scorched:        0.9,
			terrain.Shrubland:       0.7,
			terrain.TemperateDesert: 0.6,
			terrain.Taiga:           0.5,
		},
		MinElevation:      0.4,
		MaxElevation:      1,
		MaxMoisture:       1,
		MinDistanceFactor: 1,
	},
	Ruins: {
		Suitability: map[terrain.Label]float64{
			terrain.Grassland:          0.8,
			terrain.TemperateDesert:    0.9,
			terrain.SubtropicalDesert:  1.0,
			terrain.Shrubland:          0.7,
			terrain.TropicalRainForest: 0.6,
		},
		MaxElevation:      1,
		MaxMoisture:       1,
		MinDistanceFactor: 1,
	},
	Camp: {
		Suitability: map[terrain.Label]float64{
			terrain.Grassland:                0.9,
			terrain.Shrubland:                0.8,
			terrain.TemperateDeciduousForest: 0.7,
			terrain.Taiga:                    0.6,
			terrain.Tundra:                   0.4,
		},
		MaxElevation:      0.85,
		MaxMoisture:       1,
		CoastBonus:        1.1,
		MinDistanceFactor: 0.75,
	},
	Oasis: {
		Suitability: map[terrain.Label]float64{
			terrain.SubtropicalDesert: 1.0,
			terrain.TemperateDesert:   0.8,
		},
		MaxElevation:      0.6,
		MaxMoisture:       0.5,
		MinDistanceFactor: 1,
	},
	Lake: {
		MaxElevation:      1,
		MaxMoisture:       1,
		MinDistanceFactor: 1,
	},
}

// Score returns 0 when the cell is disqualified. The random multiplier is
// applied by the caller.
func (r Rule) Score(c *mesh.Center) float64 {
	if c.Water {
		return 0
	}
	suit := r.Suitability[terrain.ClassifyCenter(c)]
	if suit <= 0 {
		return 0
	}
	if c.Elevation < r.MinElevation || c.Elevation > r.MaxElevation {
		return 0
	}
	if c.Moisture < r.MinMoisture || c.Moisture > r.MaxMoisture {
		return 0
	}
	if r.RequireCoast && !c.Coast {
		return 0
	}
	if c.Coast && r.CoastBonus > 0 {
		suit *= r.CoastBonus
	}
	return suit
}
