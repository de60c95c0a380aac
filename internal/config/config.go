// Package config handles generator configuration loading and management.
package config

// Config holds all generator settings.
type Config struct {
	Seed       int64            `yaml:"seed"`
	Generation GenerationConfig `yaml:"generation"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Color      ColorConfig      `yaml:"color"`
	Export     ExportConfig     `yaml:"export"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GenerationConfig holds terrain synthesis settings.
type GenerationConfig struct {
	GridSize    int     `yaml:"grid_size"`    // Heightmap resolution per side
	NoiseScale  float64 `yaml:"noise_scale"`  // Perlin sampling scale
	Octaves     int     `yaml:"octaves"`      // fBm octave count
	Persistence float64 `yaml:"persistence"`  // Amplitude falloff per octave
	Lacunarity  float64 `yaml:"lacunarity"`   // Frequency gain per octave
	Erosion     bool    `yaml:"erosion"`      // Apply hydraulic erosion pass
	ErosionIter int     `yaml:"erosion_iter"` // Erosion iterations
	MeshWidth   float64 `yaml:"mesh_width"`   // World-space width of the mesh
	MeshDepth   float64 `yaml:"mesh_depth"`   // World-space depth of the mesh
	HeightScale float64 `yaml:"height_scale"` // Vertical exaggeration
	WorldScale  float64 `yaml:"world_scale"`  // Uniform scale applied on export
}

// AnalysisConfig holds segmentation settings.
type AnalysisConfig struct {
	ClusterHint        int     `yaml:"cluster_hint"`        // 0 = derive from prompt
	SmoothingIter      int     `yaml:"smoothing_iter"`      // Spatial smoother iteration cap
	SmoothingMajority  float64 `yaml:"smoothing_majority"`  // Neighbor fraction required to relabel
	ConsensusThreshold float64 `yaml:"consensus_threshold"` // Co-association agreement fraction
	HierarchicalMax    int     `yaml:"hierarchical_max"`    // Vertex cap for the hierarchical method
	WeightKMeans       float64 `yaml:"weight_kmeans"`
	WeightDensity      float64 `yaml:"weight_density"`
	WeightHierarchical float64 `yaml:"weight_hierarchical"`
	WeightHeight       float64 `yaml:"weight_height"`
}

// ColorConfig holds colorization settings.
type ColorConfig struct {
	Environment string  `yaml:"environment"`  // Profile override; "" = detect from prompt
	HeightGain  float64 `yaml:"height_gain"`  // Height brightness influence
	AmbientMin  float64 `yaml:"ambient_min"`  // Lighting intensity floor
	Curvature   float64 `yaml:"curvature"`    // Crevice darkening strength
	Roughness   float64 `yaml:"roughness"`    // Desaturation strength
	Wetness     float64 `yaml:"wetness"`      // Darkening near water
	WetRadius   int     `yaml:"wet_radius"`   // Graph hops for wetness falloff
	ColorNoise  float64 `yaml:"color_noise"`  // Per-vertex random variation
}

// ExportConfig holds output settings.
type ExportConfig struct {
	OutputDir       string `yaml:"output_dir"`
	CollisionStride int    `yaml:"collision_stride"` // Grid decimation step for collision mesh
	WriteManifest   bool   `yaml:"write_manifest"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Seed: 42,
		Generation: GenerationConfig{
			GridSize:    64,
			NoiseScale:  50,
			Octaves:     6,
			Persistence: 0.5,
			Lacunarity:  2.0,
			Erosion:     false,
			ErosionIter: 40,
			MeshWidth:   50,
			MeshDepth:   50,
			HeightScale: 8,
			WorldScale:  10,
		},
		Analysis: AnalysisConfig{
			ClusterHint:        0,
			SmoothingIter:      3,
			SmoothingMajority:  0.6,
			ConsensusThreshold: 0.5,
			HierarchicalMax:    5000,
			WeightKMeans:       1.0,
			WeightDensity:      1.2,
			WeightHierarchical: 0.8,
			WeightHeight:       1.5,
		},
		Color: ColorConfig{
			Environment: "",
			HeightGain:  0.2,
			AmbientMin:  0.4,
			Curvature:   0.15,
			Roughness:   0.1,
			Wetness:     0.3,
			WetRadius:   3,
			ColorNoise:  0.05,
		},
		Export: ExportConfig{
			OutputDir:       "output",
			CollisionStride: 4,
			WriteManifest:   true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
