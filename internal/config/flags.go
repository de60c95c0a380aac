package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagSeed    = flag.Int64("seed", -1, "Random seed (-1 = use config)")
	flagOutput  = flag.String("o", "", "Output directory")
	flagEnv     = flag.String("env", "", "Environment profile override (alpine, desert, ...)")
	flagGrid    = flag.Int("grid", 0, "Heightmap grid resolution")
	flagErosion = flag.Bool("erosion", false, "Enable hydraulic erosion")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ParseArgs parses an explicit argument slice, used by subcommands that strip
// their own positional arguments first.
func ParseArgs(args []string) {
	_ = flag.CommandLine.Parse(args)
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed >= 0 {
		cfg.Seed = *flagSeed
	}
	if *flagOutput != "" {
		cfg.Export.OutputDir = *flagOutput
	}
	if *flagEnv != "" {
		cfg.Color.Environment = *flagEnv
	}
	if *flagGrid > 0 {
		cfg.Generation.GridSize = *flagGrid
	}
	if *flagErosion {
		cfg.Generation.Erosion = true
	}
}
