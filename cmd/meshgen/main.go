// meshgen turns a short text description into a colored terrain mesh with
// Unity-ready metadata.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Alp-0zturk/Text-to-mesh/internal/analysis"
	"github.com/Alp-0zturk/Text-to-mesh/internal/colorize"
	"github.com/Alp-0zturk/Text-to-mesh/internal/config"
	"github.com/Alp-0zturk/Text-to-mesh/internal/export"
	"github.com/Alp-0zturk/Text-to-mesh/internal/logger"
	"github.com/Alp-0zturk/Text-to-mesh/internal/prompt"
	"github.com/Alp-0zturk/Text-to-mesh/internal/terrain"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "analyze":
		cmdAnalyze(args)
	case "profiles":
		cmdProfiles()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshgen - text to colored terrain mesh generator

Usage:
  meshgen <command> [options]

Commands:
  generate "<description>" [flags]  Generate, segment and color a terrain mesh
  analyze <file.obj> [flags]        Re-run segmentation and coloring on an OBJ
  profiles                          List environment color profiles

Flags:
  -config path   Config file location
  -o dir         Output directory
  -env name      Force an environment profile
  -seed n        Random seed
  -grid n        Heightmap resolution
  -erosion       Enable hydraulic erosion
  -debug         Verbose logging

Examples:
  meshgen generate "a snowy mountain lake surrounded by forest"
  meshgen generate "desert dunes" -env desert -seed 7
  meshgen analyze output/terrain.obj -env volcanic`)
}

// setup splits one leading positional argument from the flags, then loads
// config and the logger.
func setup(args []string) (string, *config.Config) {
	var positional string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		positional = args[0]
		args = args[1:]
	}
	config.ParseArgs(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return positional, cfg
}

func cmdGenerate(args []string) {
	text, cfg := setup(args)
	defer logger.Sync()
	if text == "" {
		fmt.Fprintln(os.Stderr, `Usage: meshgen generate "<description>" [flags]`)
		os.Exit(1)
	}

	logger.Info("generating terrain", zap.String("prompt", text), zap.Int64("seed", cfg.Seed))
	start := time.Now()

	scene := prompt.Analyze(text)
	logger.Info("scene analysis",
		zap.String("terrain", scene.TerrainType),
		zap.String("environment", scene.Environment),
		zap.Int("clusters", scene.ClusterCount),
		zap.Float64("complexity", scene.Complexity))

	hm, mesh := buildTerrain(cfg, scene, text)
	_, top := mesh.Bounds()
	logger.Info("terrain built",
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("faces", len(mesh.Faces)),
		zap.Float64("peak_height", top.Y),
		zap.Float64("mean_slope", meanSlope(hm)),
		zap.Duration("elapsed", time.Since(start)))

	colors, report := segmentAndColor(cfg, mesh, text, scene.ProfileHint(), scene.ClusterCount)

	writeOutputs(cfg, hm, mesh, colors, report, text)
	logger.Info("done", zap.Duration("total", time.Since(start)))
}

func cmdAnalyze(args []string) {
	path, cfg := setup(args)
	defer logger.Sync()
	if path == "" {
		fmt.Fprintln(os.Stderr, "Usage: meshgen analyze <file.obj> [flags]")
		os.Exit(1)
	}

	mesh, _, err := export.ReadOBJFile(path)
	if err != nil {
		logger.Error("failed to read mesh", zap.String("path", path), zap.Error(err))
		os.Exit(1)
	}
	logger.Info("mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("faces", len(mesh.Faces)))

	colors, report := segmentAndColor(cfg, mesh, cfg.Color.Environment, "", 0)

	out := strings.TrimSuffix(path, filepath.Ext(path)) + "_colored.obj"
	if err := export.WriteOBJFile(out, mesh, colors); err != nil {
		logger.Error("failed to write mesh", zap.Error(err))
		os.Exit(1)
	}
	printReport(report)
	fmt.Printf("\nColored mesh written to %s\n", out)
}

func cmdProfiles() {
	fmt.Println("Environment profiles:")
	for _, name := range colorize.ProfileNames() {
		p := colorize.ProfileByName(name)
		fmt.Printf("  %-9s water<%.2f snow>%.2f rock-roughness>%.2f\n",
			name, p.Thresholds.WaterLine, p.Thresholds.SnowLine, p.Thresholds.RockRoughness)
	}
}

func buildTerrain(cfg *config.Config, scene prompt.SceneAnalysis, text string) (*terrain.Heightmap, *terrain.Mesh) {
	gen := cfg.Generation
	opts := terrain.NoiseOptions{
		Scale:       gen.NoiseScale,
		Octaves:     gen.Octaves,
		Persistence: gen.Persistence,
		Lacunarity:  gen.Lacunarity,
		Seed:        cfg.Seed,
	}

	hm, err := terrain.GenerateHeightmap(gen.GridSize, gen.GridSize, terrain.ParseType(scene.TerrainType), opts)
	if err != nil {
		logger.Error("heightmap generation failed", zap.Error(err))
		os.Exit(1)
	}
	if gen.Erosion {
		terrain.ApplyErosion(hm, gen.ErosionIter, 0.1, cfg.Seed)
	}
	// Feature density scales with scene richness, a few stamps per thousand cells
	density := 0.002 + 0.004*scene.Complexity
	if scene.HasRockFeatures() {
		terrain.AddFeatures(hm, terrain.FeatureRocks, density, cfg.Seed)
	}
	if strings.Contains(strings.ToLower(text), "crater") {
		terrain.AddFeatures(hm, terrain.FeatureCraters, density, cfg.Seed+1)
	}

	mesh, err := terrain.MeshFromHeightmap(hm, terrain.MeshOptions{
		Width:       gen.MeshWidth,
		Depth:       gen.MeshDepth,
		HeightScale: gen.HeightScale,
		WorldScale:  gen.WorldScale,
	})
	if err != nil {
		logger.Error("mesh construction failed", zap.Error(err))
		os.Exit(1)
	}
	return hm, mesh
}

func meanSlope(hm *terrain.Heightmap) float64 {
	slopes := terrain.SlopeMap(hm)
	var sum float64
	for _, row := range slopes {
		for _, s := range row {
			sum += s
		}
	}
	return sum / float64(hm.Width*hm.Depth)
}

func segmentAndColor(cfg *config.Config, mesh *terrain.Mesh, hint, profileHint string, clusterHint int) ([]colorize.RGBA, *colorize.Report) {
	res, err := analysis.NewAnalyzer(cfg.Analysis, cfg.Seed).Analyze(mesh, clusterHint)
	if err != nil {
		logger.Error("segmentation failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("segmentation", zap.Int("clusters", res.ClusterCount))

	var profile *colorize.Profile
	if cfg.Color.Environment != "" {
		profile = colorize.ProfileByName(cfg.Color.Environment)
	} else {
		profile = colorize.DetectProfile(hint, profileHint, res.Features.Summaries())
	}
	logger.Info("environment profile", zap.String("name", profile.Name))

	colors, report, err := colorize.NewColorizer(profile, cfg.Color, cfg.Seed).Colorize(mesh, res)
	if err != nil {
		logger.Error("colorization failed", zap.Error(err))
		os.Exit(1)
	}
	return colors, report
}

func writeOutputs(cfg *config.Config, hm *terrain.Heightmap, mesh *terrain.Mesh, colors []colorize.RGBA, report *colorize.Report, text string) {
	outDir := cfg.Export.OutputDir
	meshPath := filepath.Join(outDir, "terrain.obj")
	if err := export.WriteOBJFile(meshPath, mesh, colors); err != nil {
		logger.Error("failed to write mesh", zap.Error(err))
		os.Exit(1)
	}

	collisionPath := ""
	if cfg.Export.CollisionStride > 1 {
		gen := cfg.Generation
		collision, err := terrain.CollisionMesh(hm, terrain.MeshOptions{
			Width:       gen.MeshWidth,
			Depth:       gen.MeshDepth,
			HeightScale: gen.HeightScale,
			WorldScale:  gen.WorldScale,
		}, cfg.Export.CollisionStride)
		if err != nil {
			logger.Warn("collision mesh skipped", zap.Error(err))
		} else {
			collisionPath = filepath.Join(outDir, "terrain_collision.obj")
			if err := export.WriteOBJFile(collisionPath, collision, nil); err != nil {
				logger.Error("failed to write collision mesh", zap.Error(err))
				os.Exit(1)
			}
		}
	}

	if cfg.Export.WriteManifest {
		collisionRef := ""
		if collisionPath != "" {
			collisionRef = filepath.Base(collisionPath)
		}
		manifest := export.BuildManifest(text, report, filepath.Base(meshPath), collisionRef)
		if err := manifest.WriteFile(filepath.Join(outDir, "terrain.json")); err != nil {
			logger.Error("failed to write manifest", zap.Error(err))
			os.Exit(1)
		}
	}

	printReport(report)
	fmt.Printf("\nOutput written to %s\n", outDir)
}

func printReport(r *colorize.Report) {
	fmt.Printf("\nEnvironment: %s\n", r.Environment)
	fmt.Printf("Clusters:    %d\n", r.ClusterCount)
	fmt.Printf("Vertices:    %d\n", r.Vertices)
	fmt.Println("Categories:")
	for _, name := range sortedKeys(r.Categories) {
		s := r.Categories[name]
		fmt.Printf("  %-11s %6d vertices  %5.1f%%\n", name, s.Count, s.Percentage)
	}
}

func sortedKeys(m map[string]colorize.CategoryStat) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
