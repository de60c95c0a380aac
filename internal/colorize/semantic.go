package colorize

import "github.com/Alp-0zturk/Text-to-mesh/internal/analysis"

// Category is a semantic terrain class assigned to a whole cluster.
type Category int

// Semantic categories in priority order. When a cluster satisfies several
// category tests the earlier constant wins.
const (
	CategoryWater Category = iota
	CategorySnow
	CategoryRock
	CategoryVegetation
	CategoryTerrain
	CategoryOther
)

// String returns the category name used in reports and manifests.
func (c Category) String() string {
	switch c {
	case CategoryWater:
		return "water"
	case CategorySnow:
		return "snow"
	case CategoryRock:
		return "rock"
	case CategoryVegetation:
		return "vegetation"
	case CategoryTerrain:
		return "terrain"
	default:
		return "other"
	}
}

// Feature column positions in analysis.FeatureNames order.
const (
	featHeight    = 0
	featRoughness = 2
	featSlope     = 3
)

// MapClusters assigns one semantic category to every cluster by comparing
// its mean features against the profile thresholds. Tests run in priority
// order so a low flat cluster becomes water even when it would also pass the
// vegetation band. Empty clusters map to CategoryOther.
func MapClusters(res *analysis.Result, p *Profile) []Category {
	means := res.ClusterMeans()
	sizes := res.ClusterSizes()
	th := p.Thresholds

	out := make([]Category, len(means))
	for i, m := range means {
		if sizes[i] == 0 {
			out[i] = CategoryOther
			continue
		}
		h, rough, slope := m[featHeight], m[featRoughness], m[featSlope]
		switch {
		case h <= th.WaterLine && slope <= th.WaterSlopeMax:
			out[i] = CategoryWater
		case h >= th.SnowLine && slope <= th.SnowSlopeMax:
			out[i] = CategorySnow
		case rough >= th.RockRoughness:
			out[i] = CategoryRock
		case h >= th.VegHeightMin && h <= th.VegHeightMax && rough <= th.VegRoughMax:
			out[i] = CategoryVegetation
		default:
			out[i] = CategoryTerrain
		}
	}
	return out
}
