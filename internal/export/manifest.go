package export

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Alp-0zturk/Text-to-mesh/internal/analysis"
	"github.com/Alp-0zturk/Text-to-mesh/internal/colorize"
)

// Material mirrors the fields a Unity Standard-shader material needs.
type Material struct {
	Name       string     `json:"name"`
	Shader     string     `json:"shader"`
	Color      [4]float64 `json:"color"`
	Metallic   float64    `json:"metallic"`
	Smoothness float64    `json:"smoothness"`
}

// PhysicsMaterial mirrors a Unity physic material asset.
type PhysicsMaterial struct {
	Name            string  `json:"name"`
	Friction        float64 `json:"friction"`
	Bounciness      float64 `json:"bounciness"`
	FrictionCombine string  `json:"frictionCombine"`
	BounceCombine   string  `json:"bounceCombine"`
}

var materials = map[string]Material{
	"default":    {Name: "DefaultMaterial", Shader: "Standard", Color: [4]float64{0.5, 0.5, 0.5, 1}, Metallic: 0, Smoothness: 0.5},
	"terrain":    {Name: "TerrainMaterial", Shader: "Standard", Color: [4]float64{0.3, 0.6, 0.3, 1}, Metallic: 0, Smoothness: 0.3},
	"rock":       {Name: "RockMaterial", Shader: "Standard", Color: [4]float64{0.5, 0.5, 0.5, 1}, Metallic: 0.1, Smoothness: 0.2},
	"snow":       {Name: "SnowMaterial", Shader: "Standard", Color: [4]float64{0.9, 0.9, 0.9, 1}, Metallic: 0, Smoothness: 0.8},
	"water":      {Name: "WaterMaterial", Shader: "Standard", Color: [4]float64{0, 0.3, 0.8, 0.8}, Metallic: 0, Smoothness: 1},
	"sand":       {Name: "SandMaterial", Shader: "Standard", Color: [4]float64{0.8, 0.7, 0.5, 1}, Metallic: 0, Smoothness: 0.1},
	"vegetation": {Name: "ForestMaterial", Shader: "Standard", Color: [4]float64{0.2, 0.5, 0.2, 1}, Metallic: 0, Smoothness: 0.4},
}

var physicsMaterials = map[string]PhysicsMaterial{
	"default":    {Name: "DefaultPhysicsMaterial", Friction: 0.6, Bounciness: 0, FrictionCombine: "Average", BounceCombine: "Average"},
	"vegetation": {Name: "GrassPhysicsMaterial", Friction: 0.8, Bounciness: 0.1, FrictionCombine: "Average", BounceCombine: "Average"},
	"rock":       {Name: "RockPhysicsMaterial", Friction: 0.4, Bounciness: 0.2, FrictionCombine: "Average", BounceCombine: "Average"},
	"sand":       {Name: "SandPhysicsMaterial", Friction: 0.9, Bounciness: 0, FrictionCombine: "Average", BounceCombine: "Average"},
	"water":      {Name: "WaterPhysicsMaterial", Friction: 0.1, Bounciness: 0, FrictionCombine: "Average", BounceCombine: "Average"},
	"snow":       {Name: "SnowPhysicsMaterial", Friction: 0.7, Bounciness: 0.3, FrictionCombine: "Average", BounceCombine: "Average"},
}

// MaterialFor resolves the render material of a semantic category. Terrain
// in a desert environment renders as sand; unknown categories fall back to
// the default material.
func MaterialFor(category, environment string) Material {
	if category == "terrain" {
		if environment == colorize.EnvDesert {
			return materials["sand"]
		}
		return materials["terrain"]
	}
	if m, ok := materials[category]; ok {
		return m
	}
	return materials["default"]
}

// PhysicsMaterialFor resolves the physics material of a semantic category.
func PhysicsMaterialFor(category, environment string) PhysicsMaterial {
	if category == "terrain" {
		if environment == colorize.EnvDesert {
			return physicsMaterials["sand"]
		}
		return physicsMaterials["default"]
	}
	if m, ok := physicsMaterials[category]; ok {
		return m
	}
	return physicsMaterials["default"]
}

// LegendEntry describes one semantic category in the manifest.
type LegendEntry struct {
	Color           colorize.RGBA `json:"color"`
	VertexCount     int           `json:"vertexCount"`
	Percentage      float64       `json:"percentage"`
	Material        string        `json:"material"`
	PhysicsMaterial string        `json:"physicsMaterial"`
}

// AssetRef names one exported file with a stable GUID, the way Unity meta
// files reference assets.
type AssetRef struct {
	File string `json:"file"`
	GUID string `json:"guid"`
}

// Manifest is the JSON companion document written next to the mesh files.
type Manifest struct {
	GUID             string                      `json:"guid"`
	Prompt           string                      `json:"prompt,omitempty"`
	Environment      string                      `json:"environment"`
	CreatedAt        time.Time                   `json:"createdAt"`
	Mesh             AssetRef                    `json:"mesh"`
	Collision        *AssetRef                   `json:"collision,omitempty"`
	ClusterCount     int                         `json:"clusterCount"`
	VertexCount      int                         `json:"vertexCount"`
	Legend           map[string]LegendEntry      `json:"legend"`
	Features         map[string]analysis.Summary `json:"features"`
	Materials        map[string]Material         `json:"materials"`
	PhysicsMaterials map[string]PhysicsMaterial  `json:"physicsMaterials"`
}

// BuildManifest assembles a manifest from a colorization report. Pass an
// empty collisionFile to omit the collision asset.
func BuildManifest(prompt string, report *colorize.Report, meshFile, collisionFile string) *Manifest {
	m := &Manifest{
		GUID:             uuid.NewString(),
		Prompt:           prompt,
		Environment:      report.Environment,
		CreatedAt:        time.Now().UTC(),
		Mesh:             AssetRef{File: meshFile, GUID: uuid.NewString()},
		ClusterCount:     report.ClusterCount,
		VertexCount:      report.Vertices,
		Legend:           make(map[string]LegendEntry, len(report.Categories)),
		Features:         report.Features,
		Materials:        make(map[string]Material),
		PhysicsMaterials: make(map[string]PhysicsMaterial),
	}
	if collisionFile != "" {
		m.Collision = &AssetRef{File: collisionFile, GUID: uuid.NewString()}
	}

	for name, stat := range report.Categories {
		mat := MaterialFor(name, report.Environment)
		phys := PhysicsMaterialFor(name, report.Environment)
		m.Legend[name] = LegendEntry{
			Color:           stat.Color,
			VertexCount:     stat.Count,
			Percentage:      stat.Percentage,
			Material:        mat.Name,
			PhysicsMaterial: phys.Name,
		}
		m.Materials[mat.Name] = mat
		m.PhysicsMaterials[phys.Name] = phys
	}
	return m
}

// Write encodes the manifest as indented JSON.
func (m *Manifest) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// WriteFile writes the manifest to path, creating parent directories.
func (m *Manifest) WriteFile(path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.Write(f)
}
