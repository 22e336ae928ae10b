package worldgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/appengine-ltd/worldforge/internal/fsutil"
	"github.com/appengine-ltd/worldforge/internal/poi"
)

type LoreConfig struct {
	Enabled        bool   `json:"enabled"`
	Endpoint       string `json:"endpoint,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

type Config struct {
	Seed                  int64          `json:"seed"`
	Width                 float64        `json:"width"`
	Height                float64        `json:"height"`
	NumPoints             int            `json:"num_points"`
	IslandFactor          float64        `json:"island_factor"`
	RelaxationIterations  int            `json:"relaxation_iterations"`
	LakeProbability       float64        `json:"lake_probability"`
	RiverCount            int            `json:"river_count"`
	IslandShape           string         `json:"island_shape"`
	NoiseSeed             int64          `json:"noise_seed,omitempty"`
	NoiseScale            float64        `json:"noise_scale"`
	NoiseIntensity        float64        `json:"noise_intensity"`
	IslandCount           int            `json:"island_count"`
	CoastalNoiseFrequency float64        `json:"coastal_noise_frequency"`
	// POICounts requests POIs per type. LoadConfig and FromMap merge keys
	// into the defaults; assigning the map in Go replaces them, so
	// {"town": 1} alone yields a lone town with nothing to connect to.
	POICounts             map[string]int `json:"poi_counts"`
	InitialLocation       string         `json:"initial_location,omitempty"`
	MinPOIDistance        float64        `json:"min_poi_distance,omitempty"`
	MaxConnectionDistance float64        `json:"max_connection_distance,omitempty"`
	ShortcutIterations    int            `json:"shortcut_iterations"`
	MinDetourRatio        float64        `json:"min_detour_ratio"`
	Lore                  LoreConfig     `json:"lore"`
}

func DefaultConfig() Config {
	return Config{
		Seed:                  1,
		Width:                 800,
		Height:                600,
		NumPoints:             1000,
		IslandFactor:          2,
		RelaxationIterations:  2,
		LakeProbability:       0.1,
		RiverCount:            30,
		IslandShape:           "radial",
		NoiseScale:            0.004,
		NoiseIntensity:        0.5,
		IslandCount:           3,
		CoastalNoiseFrequency: 0.02,
		POICounts: map[string]int{
			"town":     5,
			"castle":   2,
			"forest":   3,
			"mountain": 3,
			"lake":     2,
			"cave":     2,
			"ruins":    2,
			"camp":     3,
			"oasis":    1,
		},
		InitialLocation:    "town",
		ShortcutIterations: 3,
		MinDetourRatio:     0,
		Lore:               LoreConfig{TimeoutSeconds: 20},
	}
}

// LoadConfig overlays the JSON file at path on DefaultConfig. A missing file
// yields the defaults. poi_counts entries merge into the default counts.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func SaveConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, append(data, '\n'))
}

// FromMap applies flag-style string overrides. Values that fail to parse
// leave the current setting untouched. POI counts use "poi.<type>" keys.
func (c Config) FromMap(values map[string]string) Config {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := strings.TrimSpace(values[key])
		k := strings.ToLower(strings.TrimSpace(key))
		if name, ok := strings.CutPrefix(k, "poi."); ok {
			if n, err := strconv.Atoi(raw); err == nil {
				counts := make(map[string]int, len(c.POICounts)+1)
				for t, v := range c.POICounts {
					counts[t] = v
				}
				counts[name] = n
				c.POICounts = counts
			}
			continue
		}
		switch k {
		case "seed":
			setInt64(&c.Seed, raw)
		case "width":
			setFloat(&c.Width, raw)
		case "height":
			setFloat(&c.Height, raw)
		case "num_points":
			setInt(&c.NumPoints, raw)
		case "island_factor":
			setFloat(&c.IslandFactor, raw)
		case "relaxation_iterations":
			setInt(&c.RelaxationIterations, raw)
		case "lake_probability":
			setFloat(&c.LakeProbability, raw)
		case "river_count":
			setInt(&c.RiverCount, raw)
		case "island_shape":
			if raw != "" {
				c.IslandShape = strings.ToLower(raw)
			}
		case "noise_seed":
			setInt64(&c.NoiseSeed, raw)
		case "noise_scale":
			setFloat(&c.NoiseScale, raw)
		case "noise_intensity":
			setFloat(&c.NoiseIntensity, raw)
		case "island_count":
			setInt(&c.IslandCount, raw)
		case "coastal_noise_frequency":
			setFloat(&c.CoastalNoiseFrequency, raw)
		case "initial_location":
			c.InitialLocation = raw
		case "min_poi_distance":
			setFloat(&c.MinPOIDistance, raw)
		case "max_connection_distance":
			setFloat(&c.MaxConnectionDistance, raw)
		case "shortcut_iterations":
			setInt(&c.ShortcutIterations, raw)
		case "min_detour_ratio":
			setFloat(&c.MinDetourRatio, raw)
		case "lore.enabled":
			if b, err := strconv.ParseBool(raw); err == nil {
				c.Lore.Enabled = b
			}
		case "lore.endpoint":
			c.Lore.Endpoint = raw
		case "lore.timeout_seconds":
			setInt(&c.Lore.TimeoutSeconds, raw)
		}
	}
	return c
}

func setInt(dst *int, raw string) {
	if v, err := strconv.Atoi(raw); err == nil {
		*dst = v
	}
}

func setInt64(dst *int64, raw string) {
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*dst = v
	}
}

func setFloat(dst *float64, raw string) {
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*dst = v
	}
}

// LocationCounts resolves POI count keys through poi.ParseLocationType.
// Keys that match no type are kept verbatim so the placement report shows
// them as requested but never placed.
func (c Config) LocationCounts() map[poi.LocationType]int {
	out := make(map[poi.LocationType]int, len(c.POICounts))
	for key, n := range c.POICounts {
		if n <= 0 {
			continue
		}
		t, ok := poi.ParseLocationType(key)
		if !ok {
			t = poi.LocationType(strings.ToLower(strings.TrimSpace(key)))
		}
		out[t] += n
	}
	return out
}

func (c Config) InitialType() poi.LocationType {
	t, ok := poi.ParseLocationType(c.InitialLocation)
	if !ok {
		return ""
	}
	return t
}

func (c Config) EffectiveMinPOIDistance() float64 {
	if c.MinPOIDistance > 0 {
		return c.MinPOIDistance
	}
	return 0.08 * math.Min(c.Width, c.Height)
}

func (c Config) EffectiveMaxConnectionDistance() float64 {
	if c.MaxConnectionDistance > 0 {
		return c.MaxConnectionDistance
	}
	return 0.25 * math.Max(c.Width, c.Height)
}
