package terrain

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// NoiseOptions controls heightmap synthesis.
type NoiseOptions struct {
	Scale       float64 // Noise sampling scale across the grid
	Octaves     int     // fBm octave count
	Persistence float64 // Amplitude falloff per octave
	Lacunarity  float64 // Frequency gain per octave
	Seed        int64
}

// DefaultNoiseOptions returns the standard synthesis parameters.
func DefaultNoiseOptions(seed int64) NoiseOptions {
	return NoiseOptions{
		Scale:       50,
		Octaves:     6,
		Persistence: 0.5,
		Lacunarity:  2.0,
		Seed:        seed,
	}
}

// GenerateHeightmap synthesizes a heightmap of the given resolution using
// layered Perlin noise shaped by the terrain type. Output heights are roughly
// in [-1, 1] and deterministic per seed.
func GenerateHeightmap(width, depth int, terrainType Type, opts NoiseOptions) (*Heightmap, error) {
	if width < 2 || depth < 2 {
		return nil, ErrInvalidGridSize
	}
	if opts.Octaves < 1 {
		opts.Octaves = 1
	}

	// Separate noise sources per layer so stacked layers decorrelate.
	base := perlin.NewPerlin(2, 2, 1, opts.Seed)
	mid := perlin.NewPerlin(2, 2, 1, opts.Seed+1)
	high := perlin.NewPerlin(2, 2, 1, opts.Seed+2)

	hm := &Heightmap{
		Values: make([][]float64, depth),
		Width:  width,
		Depth:  depth,
	}

	for zi := range depth {
		hm.Values[zi] = make([]float64, width)
		for xi := range width {
			x := float64(zi) / float64(depth) * opts.Scale
			y := float64(xi) / float64(width) * opts.Scale

			var h float64
			switch terrainType {
			case TypeMountain:
				// Three stacked frequency bands for craggy relief
				h = fbm(base, x, y, opts)*0.5 +
					fbm(mid, x*2, y*2, NoiseOptions{Scale: opts.Scale, Octaves: 4, Persistence: 0.3, Lacunarity: 2.5})*0.3 +
					fbm(high, x*4, y*4, NoiseOptions{Scale: opts.Scale, Octaves: 2, Persistence: 0.2, Lacunarity: 3.0})*0.2
			case TypeHills:
				h = fbm(base, x, y, NoiseOptions{Scale: opts.Scale, Octaves: 4, Persistence: 0.4, Lacunarity: 2.0}) * 0.3
			case TypeValley:
				riverMask := math.Exp(-(math.Pow(x-opts.Scale/2, 2) + math.Pow(y-opts.Scale/2, 2)) / math.Pow(opts.Scale/4, 2))
				h = -fbm(base, x, y, opts)*0.4 - riverMask*0.3
			case TypePlateau:
				h = math.Max(fbm(base, x, y, NoiseOptions{Scale: opts.Scale, Octaves: 2, Persistence: 0.3, Lacunarity: 2.0})*0.2, 0.1)
			case TypeCanyon:
				canyonMask := math.Exp(-math.Pow(x-opts.Scale/2, 2) / math.Pow(opts.Scale/8, 2))
				h = fbm(base, x, y, NoiseOptions{Scale: opts.Scale, Octaves: 4, Persistence: 0.4, Lacunarity: 2.0})*0.3 - canyonMask*0.6
			default:
				h = fbm(base, x, y, opts) * 0.5
			}

			hm.Values[zi][xi] = h
		}
	}

	return hm, nil
}

// fbm sums noise octaves with per-octave amplitude falloff and frequency gain.
func fbm(p *perlin.Perlin, x, y float64, opts NoiseOptions) float64 {
	var sum, amp, norm float64
	amp = 1
	freq := 1.0
	for range opts.Octaves {
		sum += p.Noise2D(x*freq*0.02, y*freq*0.02) * amp
		norm += amp
		amp *= opts.Persistence
		freq *= opts.Lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// ApplyErosion runs a droplet-based hydraulic erosion pass over the heightmap.
// Material is removed along the steepest descent and half of it deposited on
// the receiving cell. Deterministic per seed.
func ApplyErosion(hm *Heightmap, iterations int, rate float64, seed int64) {
	if iterations <= 0 || hm.Width < 3 || hm.Depth < 3 {
		return
	}
	rng := rand.New(rand.NewSource(seed))

	for range iterations {
		drops := hm.Width * hm.Depth / 10
		for range drops {
			x := 1 + rng.Intn(hm.Width-2)
			z := 1 + rng.Intn(hm.Depth-2)

			maxSlope := 0.0
			dx, dz := 0, 0
			for nz := z - 1; nz <= z+1; nz++ {
				for nx := x - 1; nx <= x+1; nx++ {
					if nx == x && nz == z {
						continue
					}
					dist := math.Hypot(float64(nx-x), float64(nz-z))
					slope := (hm.Values[z][x] - hm.Values[nz][nx]) / dist
					if slope > maxSlope {
						maxSlope = slope
						dx, dz = nx-x, nz-z
					}
				}
			}

			if maxSlope > 0 {
				hm.Values[z][x] -= rate * maxSlope
				nz, nx := z+dz, x+dx
				if nz >= 0 && nz < hm.Depth && nx >= 0 && nx < hm.Width {
					hm.Values[nz][nx] += rate * maxSlope * 0.5
				}
			}
		}
	}
}

// FeatureKind selects the kind of local feature stamped onto a heightmap.
type FeatureKind int

// Feature kinds.
const (
	FeatureRocks FeatureKind = iota
	FeatureCraters
)

// AddFeatures stamps randomly placed rock bumps or crater depressions onto
// the heightmap. Density is features per cell; deterministic per seed.
func AddFeatures(hm *Heightmap, kind FeatureKind, density float64, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	count := int(float64(hm.Width*hm.Depth) * density)

	for range count {
		cx := rng.Intn(hm.Width)
		cz := rng.Intn(hm.Depth)

		var radius, amount float64
		switch kind {
		case FeatureCraters:
			radius = 3 + rng.Float64()*5
			amount = -(0.5 + rng.Float64())
		default:
			radius = 2 + rng.Float64()*3
			amount = 0.5 + rng.Float64()*1.5
		}

		minX := maxInt(0, int(float64(cx)-radius))
		maxX := minInt(hm.Width, int(float64(cx)+radius))
		minZ := maxInt(0, int(float64(cz)-radius))
		maxZ := minInt(hm.Depth, int(float64(cz)+radius))

		for nz := minZ; nz < maxZ; nz++ {
			for nx := minX; nx < maxX; nx++ {
				dist := math.Hypot(float64(nx-cx), float64(nz-cz))
				if dist < radius {
					falloff := 1 - dist/radius
					hm.Values[nz][nx] += amount * falloff * falloff
				}
			}
		}
	}
}

// SlopeMap returns the Sobel gradient magnitude of the heightmap.
func SlopeMap(hm *Heightmap) [][]float64 {
	slope := make([][]float64, hm.Depth)
	for z := range hm.Depth {
		slope[z] = make([]float64, hm.Width)
		for x := range hm.Width {
			gx := sobelAt(hm, x, z, false)
			gz := sobelAt(hm, x, z, true)
			slope[z][x] = math.Hypot(gx, gz)
		}
	}
	return slope
}

// sobelAt applies a 3x3 Sobel kernel at (x, z); vertical selects the Z-axis
// kernel. Border samples are clamped.
func sobelAt(hm *Heightmap, x, z int, vertical bool) float64 {
	kernel := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}

	var sum float64
	for kz := -1; kz <= 1; kz++ {
		for kx := -1; kx <= 1; kx++ {
			sz := clampInt(z+kz, 0, hm.Depth-1)
			sx := clampInt(x+kx, 0, hm.Width-1)
			w := kernel[kz+1][kx+1]
			if vertical {
				w = kernel[kx+1][kz+1]
			}
			sum += hm.Values[sz][sx] * w
		}
	}
	return sum
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
