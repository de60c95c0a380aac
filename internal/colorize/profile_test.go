package colorize

import (
	"testing"

	"github.com/Alp-0zturk/Text-to-mesh/internal/analysis"
)

func TestDetectProfileKeywords(t *testing.T) {
	tests := []struct {
		hint string
		want string
	}{
		{"a snowy mountain peak with a glacier", EnvAlpine},
		{"rolling sand dunes near an oasis", EnvDesert},
		{"dense jungle canopy", EnvForest},
		{"palm trees on a beach island", EnvTropical},
		{"frozen arctic plain", EnvTundra},
		{"black basalt with lava flows", EnvVolcanic},
		{"xyzzy", EnvDefault},
		{"", EnvDefault},
	}
	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			if got := DetectProfile(tt.hint, "", nil); got.Name != tt.want {
				t.Errorf("DetectProfile(%q) = %s, want %s", tt.hint, got.Name, tt.want)
			}
		})
	}
}

func TestDetectProfileFromStats(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		rough  float64
		want   string
	}{
		{"high and smooth", 0.8, 0.2, EnvAlpine},
		{"very rough", 0.4, 0.8, EnvVolcanic},
		{"low and flat", 0.2, 0.2, EnvDesert},
		{"unremarkable", 0.5, 0.5, EnvDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := map[string]analysis.Summary{
				"height":    {Mean: tt.height},
				"roughness": {Mean: tt.rough},
			}
			if got := DetectProfile("", "", stats); got.Name != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.Name)
			}
		})
	}
}

func TestDetectProfileHintWinsOverStats(t *testing.T) {
	stats := map[string]analysis.Summary{
		"height":    {Mean: 0.8},
		"roughness": {Mean: 0.2},
	}
	if got := DetectProfile("dry desert", "", stats); got.Name != EnvDesert {
		t.Errorf("hint should take precedence, got %s", got.Name)
	}
}

func TestDetectProfileFallback(t *testing.T) {
	tests := []struct {
		name     string
		hint     string
		fallback string
		want     string
	}{
		{"scene kind fills in", "steaming hot spring in a barren field", EnvVolcanic, EnvVolcanic},
		{"keyword beats fallback", "dry desert", EnvVolcanic, EnvDesert},
		{"empty fallback skipped", "xyzzy", "", EnvDefault},
		{"unknown fallback skipped", "xyzzy", "no-such-biome", EnvDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectProfile(tt.hint, tt.fallback, nil); got.Name != tt.want {
				t.Errorf("DetectProfile(%q, %q) = %s, want %s", tt.hint, tt.fallback, got.Name, tt.want)
			}
		})
	}
}

func TestDetectProfileFallbackBeatsStats(t *testing.T) {
	stats := map[string]analysis.Summary{
		"height":    {Mean: 0.8},
		"roughness": {Mean: 0.2},
	}
	if got := DetectProfile("xyzzy", EnvTropical, stats); got.Name != EnvTropical {
		t.Errorf("fallback should take precedence over stats, got %s", got.Name)
	}
}

func TestProfileByName(t *testing.T) {
	if got := ProfileByName("Volcanic "); got.Name != EnvVolcanic {
		t.Errorf("expected volcanic, got %s", got.Name)
	}
	if got := ProfileByName("no-such-biome"); got.Name != EnvDefault {
		t.Errorf("unknown name should resolve to default, got %s", got.Name)
	}
}

func TestProfilesComplete(t *testing.T) {
	cats := []Category{
		CategoryWater, CategorySnow, CategoryRock,
		CategoryVegetation, CategoryTerrain, CategoryOther,
	}
	for _, name := range ProfileNames() {
		p := ProfileByName(name)
		for _, cat := range cats {
			if _, ok := p.Palette[cat]; !ok {
				t.Errorf("profile %s: missing palette entry for %s", name, cat)
			}
		}
		if p.Thresholds.WaterLine >= p.Thresholds.SnowLine {
			t.Errorf("profile %s: water line above snow line", name)
		}
	}
}
