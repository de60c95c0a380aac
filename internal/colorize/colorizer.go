package colorize

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Alp-0zturk/Text-to-mesh/internal/analysis"
	"github.com/Alp-0zturk/Text-to-mesh/internal/config"
	"github.com/Alp-0zturk/Text-to-mesh/internal/logger"
	"github.com/Alp-0zturk/Text-to-mesh/internal/terrain"
)

// noiseSeedOffset decorrelates color noise from the clustering RNG stream.
const noiseSeedOffset = 0x1000

// CategoryStat summarizes one semantic category for the report.
type CategoryStat struct {
	Color      RGBA
	Count      int
	Percentage float64
}

// Report is the diagnostic summary of one colorization run.
type Report struct {
	Environment  string
	ClusterCount int
	Vertices     int
	Categories   map[string]CategoryStat
	Features     map[string]analysis.Summary
}

// Colorizer turns segmentation results into per-vertex colors. Safe for
// concurrent use on distinct meshes.
type Colorizer struct {
	profile *Profile
	cfg     config.ColorConfig
	seed    int64
}

// NewColorizer builds a colorizer for one environment profile.
func NewColorizer(p *Profile, cfg config.ColorConfig, seed int64) *Colorizer {
	return &Colorizer{profile: p, cfg: cfg, seed: seed}
}

// Colorize produces one RGBA per mesh vertex, in vertex order, together with
// the run report. Effects layer in a fixed order on top of the palette base
// color and every channel is clamped to [0,1] at the end.
func (c *Colorizer) Colorize(mesh *terrain.Mesh, res *analysis.Result) ([]RGBA, *Report, error) {
	if err := mesh.Validate(); err != nil {
		return nil, nil, err
	}

	categories := MapClusters(res, c.profile)
	normals := terrain.VertexNormals(mesh)
	heightRanges := clusterHeightRanges(res)
	wet := wetness(res, categories, c.cfg.WetRadius)
	rng := rand.New(rand.NewSource(c.seed + noiseSeedOffset))

	colors := make([]RGBA, len(mesh.Vertices))
	for i := range mesh.Vertices {
		cat := categories[res.Labels[i]]
		col := c.profile.Palette[cat]

		col = c.applyHeight(col, res.Features.Height[i], heightRanges[res.Labels[i]])
		col = c.applyLighting(col, normals[i])
		col = c.applyCurvature(col, res.Features.Curvature[i])
		col = c.applyRoughness(col, res.Features.Roughness[i])
		if cat != CategoryWater {
			col = c.applyWetness(col, wet[i])
		}
		col = c.applyNoise(col, rng)

		colors[i] = clampColor(col)
	}

	report := c.buildReport(res, categories)
	logger.Debug("colorization complete",
		zap.String("environment", c.profile.Name),
		zap.Int("vertices", len(colors)))
	return colors, report, nil
}

// heightRange is one cluster's observed normalized height span.
type heightRange struct {
	min, span float64
}

func clusterHeightRanges(res *analysis.Result) []heightRange {
	ranges := make([]heightRange, res.ClusterCount)
	for i := range ranges {
		ranges[i].min = math.Inf(1)
	}
	maxs := make([]float64, res.ClusterCount)
	for i := range maxs {
		maxs[i] = math.Inf(-1)
	}
	for v, l := range res.Labels {
		h := res.Features.Height[v]
		if h < ranges[l].min {
			ranges[l].min = h
		}
		if h > maxs[l] {
			maxs[l] = h
		}
	}
	for l := range ranges {
		ranges[l].span = maxs[l] - ranges[l].min
	}
	return ranges
}

// applyHeight brightens vertices near the top of their cluster's height span
// and darkens those near the bottom.
func (c *Colorizer) applyHeight(col RGBA, h float64, r heightRange) RGBA {
	rel := 0.5
	if r.span > 1e-12 {
		rel = (h - r.min) / r.span
	}
	factor := 1 + c.cfg.HeightGain*(rel-0.5)*2
	return scaleColor(col, factor)
}

// lightDir is a fixed sun direction, high overhead with a slight tilt.
var lightDir = r3.Vector{X: 0.3, Y: 0.9, Z: 0.3}.Normalize()

func (c *Colorizer) applyLighting(col RGBA, normal r3.Vector) RGBA {
	intensity := normal.Dot(lightDir)
	if intensity < c.cfg.AmbientMin {
		intensity = c.cfg.AmbientMin
	}
	if intensity > 1 {
		intensity = 1
	}
	return scaleColor(col, intensity)
}

func (c *Colorizer) applyCurvature(col RGBA, curv float64) RGBA {
	return scaleColor(col, 1-c.cfg.Curvature*curv)
}

// applyRoughness desaturates rough surfaces slightly, in HSV space.
func (c *Colorizer) applyRoughness(col RGBA, rough float64) RGBA {
	cc := colorful.Color{R: clamp01(col.R), G: clamp01(col.G), B: clamp01(col.B)}
	h, s, v := cc.Hsv()
	out := colorful.Hsv(h, s*(1-c.cfg.Roughness*rough), v)
	return RGBA{out.R, out.G, out.B, col.A}
}

// applyWetness darkens vertices near water and shifts them toward blue.
func (c *Colorizer) applyWetness(col RGBA, wet float64) RGBA {
	if wet <= 0 {
		return col
	}
	out := scaleColor(col, 1-c.cfg.Wetness*wet*0.3)
	out.B += 0.1 * wet
	return out
}

func (c *Colorizer) applyNoise(col RGBA, rng *rand.Rand) RGBA {
	col.R += rng.NormFloat64() * c.cfg.ColorNoise
	col.G += rng.NormFloat64() * c.cfg.ColorNoise
	col.B += rng.NormFloat64() * c.cfg.ColorNoise
	return col
}

// wetness returns a per-vertex factor in [0,1]: 1 adjacent to water, fading
// to 0 at the hop radius. Computed with a multi-source BFS from all
// water-category vertices over the adjacency graph.
func wetness(res *analysis.Result, categories []Category, radius int) []float64 {
	out := make([]float64, len(res.Labels))
	if radius <= 0 {
		return out
	}

	dist := make([]int, len(res.Labels))
	for i := range dist {
		dist[i] = -1
	}
	var queue []int32
	for v, l := range res.Labels {
		if categories[l] == CategoryWater {
			dist[v] = 0
			queue = append(queue, int32(v))
		}
	}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if dist[v] >= radius {
			continue
		}
		for _, nb := range res.Graph.Neighbors(int(v)) {
			if dist[nb] < 0 {
				dist[nb] = dist[v] + 1
				queue = append(queue, nb)
			}
		}
	}

	for v, d := range dist {
		if d > 0 && d <= radius {
			out[v] = 1 - float64(d-1)/float64(radius)
		}
	}
	return out
}

func (c *Colorizer) buildReport(res *analysis.Result, categories []Category) *Report {
	counts := make(map[string]int)
	for _, l := range res.Labels {
		counts[categories[l].String()]++
	}

	stats := make(map[string]CategoryStat, len(counts))
	total := len(res.Labels)
	for _, cat := range categories {
		name := cat.String()
		if _, ok := stats[name]; ok {
			continue
		}
		stats[name] = CategoryStat{
			Color:      c.profile.Palette[cat],
			Count:      counts[name],
			Percentage: float64(counts[name]) / float64(total) * 100,
		}
	}

	return &Report{
		Environment:  c.profile.Name,
		ClusterCount: res.ClusterCount,
		Vertices:     total,
		Categories:   stats,
		Features:     res.Features.Summaries(),
	}
}

func scaleColor(col RGBA, f float64) RGBA {
	return RGBA{col.R * f, col.G * f, col.B * f, col.A}
}

func clampColor(col RGBA) RGBA {
	return RGBA{clamp01(col.R), clamp01(col.G), clamp01(col.B), clamp01(col.A)}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
