// Package prompt extracts scene structure from free-text terrain descriptions.
package prompt

import (
	"math"
	"sort"
	"strings"
)

// Scene element categories recognized in descriptions.
var sceneCategories = map[string][]string{
	"landscape_features": {"mountain", "hill", "valley", "plateau", "cliff", "rock", "boulder", "highland", "canyon"},
	"water_features":     {"lake", "pond", "river", "stream", "spring", "waterfall", "pool", "hot spring", "oasis"},
	"vegetation":         {"flower", "grass", "tree", "bush", "forest", "lupine", "tundra", "moss"},
	"weather":            {"fog", "mist", "cloud", "rain", "snow", "sunny", "storm", "clear"},
	"time_of_day":        {"sunrise", "sunset", "morning", "evening", "noon", "dusk", "dawn"},
	"atmosphere":         {"quiet", "peaceful", "calm", "serene", "dramatic", "moody", "misty"},
	"colors":             {"blue", "green", "white", "aqua", "turquoise", "golden", "pink", "purple", "bright"},
	"textures":           {"rough", "smooth", "crisp", "soft", "sharp", "jagged"},
}

// Keywords used to count distinct semantic elements when estimating the
// cluster count.
var clusterElementKeywords = map[string][]string{
	"water":      {"water", "lake", "river", "stream", "pond", "spring"},
	"vegetation": {"tree", "forest", "grass", "flower", "vegetation", "bush"},
	"terrain":    {"mountain", "hill", "terrain", "ground", "landscape"},
	"rock":       {"rock", "stone", "cliff", "boulder"},
	"snow":       {"snow", "ice", "frozen"},
}

// SceneAnalysis summarizes structure extracted from a description.
type SceneAnalysis struct {
	Elements     map[string][]string // Category name to matched keywords
	Environment  string              // Coarse environment kind (mountain, water, ...)
	TerrainType  string              // Heightmap synthesis type for the terrain package
	Complexity   float64             // 0..1 scene richness score
	ClusterCount int                 // Expected segmentation cluster count
}

// Analyze extracts scene elements and derived parameters from a description.
// It is a total function; empty or unrecognized text yields neutral defaults.
func Analyze(text string) SceneAnalysis {
	lower := strings.ToLower(text)

	elements := make(map[string][]string)
	for category, keywords := range sceneCategories {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				elements[category] = append(elements[category], kw)
			}
		}
	}

	a := SceneAnalysis{
		Elements:     elements,
		Environment:  environmentKind(elements),
		TerrainType:  terrainType(elements),
		Complexity:   complexity(elements),
		ClusterCount: clusterCount(lower),
	}
	return a
}

// HasRockFeatures reports whether the description mentions rocky landscape
// features worth stamping onto the heightmap.
func (a SceneAnalysis) HasRockFeatures() bool {
	for _, want := range []string{"rock", "boulder", "cliff"} {
		if containsKeyword(a.Elements["landscape_features"], want) {
			return true
		}
	}
	return false
}

// profileHints maps the coarse environment kind to a color palette profile.
// The neutral "terrain" kind is absent so palette detection can fall back to
// feature statistics instead.
var profileHints = map[string]string{
	"mixed_landscape": "alpine",
	"geothermal":      "volcanic",
	"mountain":        "alpine",
	"water":           "tropical",
	"tundra":          "tundra",
	"vegetation":      "forest",
}

// ProfileHint returns the palette profile name implied by the scene's
// environment kind, or "" when the scene is too neutral to imply one.
func (a SceneAnalysis) ProfileHint() string {
	return profileHints[a.Environment]
}

// environmentKind classifies the overall scene from matched elements.
func environmentKind(elements map[string][]string) string {
	hasWater := len(elements["water_features"]) > 0
	hasMountains := containsKeyword(elements["landscape_features"], "mountain")
	hasVegetation := len(elements["vegetation"]) > 0
	hasHotSpring := containsKeyword(elements["water_features"], "hot spring")
	hasTundra := containsKeyword(elements["vegetation"], "tundra")

	switch {
	case hasWater && hasMountains && hasVegetation:
		return "mixed_landscape"
	case hasHotSpring:
		return "geothermal"
	case hasMountains:
		return "mountain"
	case hasWater:
		return "water"
	case hasTundra:
		return "tundra"
	case hasVegetation:
		return "vegetation"
	default:
		return "terrain"
	}
}

// terrainType picks the heightmap synthesis type from landscape keywords.
func terrainType(elements map[string][]string) string {
	features := elements["landscape_features"]
	for _, want := range []string{"canyon", "plateau", "valley", "mountain", "hill"} {
		if containsKeyword(features, want) {
			if want == "hill" {
				return "hills"
			}
			return want
		}
	}
	return "default"
}

// complexity scores scene richness from element counts plus bonuses for
// meaningful combinations.
func complexity(elements map[string][]string) float64 {
	total := 0
	for _, kws := range elements {
		total += len(kws)
	}

	bonus := 0.0
	if len(elements["water_features"]) > 0 && len(elements["landscape_features"]) > 0 {
		bonus += 0.2
	}
	if len(elements["weather"]) > 0 && len(elements["time_of_day"]) > 0 {
		bonus += 0.1
	}
	if len(elements["atmosphere"]) > 0 && len(elements["colors"]) > 0 {
		bonus += 0.1
	}

	return math.Min(1.0, math.Log(1+float64(total))/4+bonus)
}

// clusterCount estimates the expected number of segmentation clusters from
// the count of distinct semantic elements mentioned. Bounded to [3, 8].
func clusterCount(lower string) int {
	count := 0

	// Sorted iteration keeps the scan order stable
	names := make([]string, 0, len(clusterElementKeywords))
	for name := range clusterElementKeywords {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, kw := range clusterElementKeywords[name] {
			if strings.Contains(lower, kw) {
				count++
				break
			}
		}
	}

	n := count + 2
	if n < 3 {
		n = 3
	}
	if n > 8 {
		n = 8
	}
	return n
}

func containsKeyword(kws []string, want string) bool {
	for _, kw := range kws {
		if kw == want {
			return true
		}
	}
	return false
}
