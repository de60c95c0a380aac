// Package colorize maps terrain segmentation results to semantic categories
// and per-vertex colors using environment-specific palettes.
package colorize

import (
	"sort"
	"strings"

	"github.com/Alp-0zturk/Text-to-mesh/internal/analysis"
)

// RGBA is a color with float channels in [0,1].
type RGBA struct {
	R, G, B, A float64
}

// Thresholds drive the cluster-to-category decision. All values compare
// against normalized feature means in [0,1].
type Thresholds struct {
	WaterLine     float64 // Height at or below assigns water
	WaterSlopeMax float64
	SnowLine      float64 // Height at or above assigns snow
	SnowSlopeMax  float64
	RockRoughness float64 // Roughness at or above assigns rock
	VegHeightMin  float64
	VegHeightMax  float64
	VegRoughMax   float64
}

// Profile bundles a palette with category thresholds for one environment.
type Profile struct {
	Name       string
	Palette    map[Category]RGBA
	Thresholds Thresholds
	keywords   []string
}

// Profile names, usable as config overrides and CLI arguments.
const (
	EnvAlpine   = "alpine"
	EnvDesert   = "desert"
	EnvForest   = "forest"
	EnvTropical = "tropical"
	EnvTundra   = "tundra"
	EnvVolcanic = "volcanic"
	EnvDefault  = "default"
)

var profiles = map[string]*Profile{
	EnvAlpine: {
		Name: EnvAlpine,
		Palette: map[Category]RGBA{
			CategoryWater:      {0.15, 0.45, 0.75, 0.85},
			CategoryTerrain:    {0.45, 0.35, 0.25, 1},
			CategoryVegetation: {0.2, 0.6, 0.3, 1},
			CategoryRock:       {0.6, 0.6, 0.65, 1},
			CategorySnow:       {0.95, 0.95, 1.0, 1},
			CategoryOther:      {0.5, 0.5, 0.5, 1},
		},
		Thresholds: Thresholds{
			WaterLine: 0.2, WaterSlopeMax: 0.3,
			SnowLine: 0.7, SnowSlopeMax: 0.6,
			RockRoughness: 0.65,
			VegHeightMin:  0.25, VegHeightMax: 0.7, VegRoughMax: 0.45,
		},
		keywords: []string{"alpine", "mountain", "highland", "peak", "snow", "glacier"},
	},
	EnvDesert: {
		Name: EnvDesert,
		Palette: map[Category]RGBA{
			CategoryWater:      {0.2, 0.5, 0.8, 0.85},
			CategoryTerrain:    {0.85, 0.7, 0.45, 1},
			CategoryVegetation: {0.4, 0.6, 0.2, 1},
			CategoryRock:       {0.7, 0.5, 0.3, 1},
			CategorySnow:       {0.9, 0.9, 0.9, 1},
			CategoryOther:      {0.6, 0.55, 0.45, 1},
		},
		Thresholds: Thresholds{
			WaterLine: 0.1, WaterSlopeMax: 0.2,
			SnowLine: 0.9, SnowSlopeMax: 0.4,
			RockRoughness: 0.7,
			VegHeightMin:  0.2, VegHeightMax: 0.55, VegRoughMax: 0.4,
		},
		keywords: []string{"desert", "sand", "dune", "arid", "dry", "oasis"},
	},
	EnvForest: {
		Name: EnvForest,
		Palette: map[Category]RGBA{
			CategoryWater:      {0.1, 0.3, 0.6, 0.85},
			CategoryTerrain:    {0.3, 0.2, 0.1, 1},
			CategoryVegetation: {0.15, 0.5, 0.2, 1},
			CategoryRock:       {0.4, 0.4, 0.4, 1},
			CategorySnow:       {0.8, 0.8, 0.85, 1},
			CategoryOther:      {0.35, 0.3, 0.25, 1},
		},
		Thresholds: Thresholds{
			WaterLine: 0.25, WaterSlopeMax: 0.3,
			SnowLine: 0.85, SnowSlopeMax: 0.5,
			RockRoughness: 0.7,
			VegHeightMin:  0.15, VegHeightMax: 0.75, VegRoughMax: 0.45,
		},
		keywords: []string{"forest", "woodland", "tree", "jungle", "canopy"},
	},
	EnvTropical: {
		Name: EnvTropical,
		Palette: map[Category]RGBA{
			CategoryWater:      {0.0, 0.7, 0.9, 0.8},
			CategoryTerrain:    {0.6, 0.4, 0.2, 1},
			CategoryVegetation: {0.1, 0.8, 0.3, 1},
			CategoryRock:       {0.3, 0.3, 0.3, 1},
			CategorySnow:       {1.0, 1.0, 1.0, 1},
			CategoryOther:      {0.5, 0.45, 0.35, 1},
		},
		Thresholds: Thresholds{
			WaterLine: 0.3, WaterSlopeMax: 0.35,
			SnowLine: 0.95, SnowSlopeMax: 0.4,
			RockRoughness: 0.7,
			VegHeightMin:  0.2, VegHeightMax: 0.8, VegRoughMax: 0.48,
		},
		keywords: []string{"tropical", "palm", "beach", "island", "turquoise"},
	},
	EnvTundra: {
		Name: EnvTundra,
		Palette: map[Category]RGBA{
			CategoryWater:      {0.2, 0.4, 0.6, 0.85},
			CategoryTerrain:    {0.5, 0.4, 0.3, 1},
			CategoryVegetation: {0.4, 0.5, 0.2, 1},
			CategoryRock:       {0.5, 0.5, 0.6, 1},
			CategorySnow:       {0.9, 0.95, 1.0, 1},
			CategoryOther:      {0.45, 0.45, 0.45, 1},
		},
		Thresholds: Thresholds{
			WaterLine: 0.2, WaterSlopeMax: 0.3,
			SnowLine: 0.55, SnowSlopeMax: 0.7,
			RockRoughness: 0.65,
			VegHeightMin:  0.2, VegHeightMax: 0.45, VegRoughMax: 0.4,
		},
		keywords: []string{"tundra", "arctic", "frozen", "polar", "cold"},
	},
	EnvVolcanic: {
		Name: EnvVolcanic,
		Palette: map[Category]RGBA{
			CategoryWater:      {0.1, 0.2, 0.4, 0.9},
			CategoryTerrain:    {0.3, 0.15, 0.1, 1},
			CategoryVegetation: {0.2, 0.4, 0.15, 1},
			CategoryRock:       {0.2, 0.2, 0.2, 1},
			CategorySnow:       {0.85, 0.85, 0.9, 1},
			CategoryOther:      {0.25, 0.2, 0.2, 1},
		},
		Thresholds: Thresholds{
			WaterLine: 0.15, WaterSlopeMax: 0.25,
			SnowLine: 0.9, SnowSlopeMax: 0.4,
			RockRoughness: 0.55,
			VegHeightMin:  0.15, VegHeightMax: 0.5, VegRoughMax: 0.35,
		},
		keywords: []string{"volcanic", "lava", "crater", "ash", "basalt"},
	},
	EnvDefault: {
		Name: EnvDefault,
		Palette: map[Category]RGBA{
			CategoryWater:      {0.2, 0.6, 1.0, 0.85},
			CategoryTerrain:    {0.6, 0.4, 0.2, 1},
			CategoryVegetation: {0.2, 0.8, 0.3, 1},
			CategoryRock:       {0.5, 0.5, 0.5, 1},
			CategorySnow:       {0.9, 0.9, 1.0, 1},
			CategoryOther:      {0.5, 0.5, 0.5, 1},
		},
		Thresholds: Thresholds{
			WaterLine: 0.2, WaterSlopeMax: 0.3,
			SnowLine: 0.75, SnowSlopeMax: 0.55,
			RockRoughness: 0.65,
			VegHeightMin:  0.25, VegHeightMax: 0.7, VegRoughMax: 0.45,
		},
	},
}

// detectOrder fixes the keyword matching precedence.
var detectOrder = []string{EnvAlpine, EnvDesert, EnvForest, EnvTropical, EnvTundra, EnvVolcanic}

// ProfileNames returns every known environment name, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfileByName returns the named profile, or the default profile when the
// name is unknown or empty.
func ProfileByName(name string) *Profile {
	if p, ok := profiles[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p
	}
	return profiles[EnvDefault]
}

// DetectProfile resolves an environment profile from a free-text hint, then
// from the fallback profile name (usually derived from prompt analysis, ""
// or unknown skips it), then from bulk feature statistics, and finally the
// default profile. It never fails.
func DetectProfile(hint, fallback string, stats map[string]analysis.Summary) *Profile {
	lower := strings.ToLower(hint)
	for _, name := range detectOrder {
		for _, kw := range profiles[name].keywords {
			if strings.Contains(lower, kw) {
				return profiles[name]
			}
		}
	}
	if p, ok := profiles[strings.ToLower(strings.TrimSpace(fallback))]; ok {
		return p
	}
	if p := profileFromStats(stats); p != nil {
		return p
	}
	return profiles[EnvDefault]
}

// profileFromStats guesses an environment from aggregate terrain shape.
func profileFromStats(stats map[string]analysis.Summary) *Profile {
	if stats == nil {
		return nil
	}
	height, ok := stats["height"]
	if !ok {
		return nil
	}
	rough := stats["roughness"]

	switch {
	case height.Mean > 0.6 && rough.Mean < 0.4:
		return profiles[EnvAlpine]
	case rough.Mean > 0.7:
		return profiles[EnvVolcanic]
	case height.Mean < 0.3 && rough.Mean < 0.3:
		return profiles[EnvDesert]
	}
	return nil
}
