// Package terrain provides procedural heightmap synthesis and mesh construction.
package terrain

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"
)

// Terrain generation errors.
var (
	ErrInvalidMesh     = errors.New("invalid mesh: empty or degenerate geometry")
	ErrInvalidGridSize = errors.New("invalid grid size: must be at least 2")
)

// Type selects the heightmap synthesis formula.
type Type int

// Terrain type constants.
const (
	TypeDefault Type = iota
	TypeMountain
	TypeHills
	TypeValley
	TypePlateau
	TypeCanyon
)

// String returns a human-readable terrain type name.
func (t Type) String() string {
	switch t {
	case TypeMountain:
		return "mountain"
	case TypeHills:
		return "hills"
	case TypeValley:
		return "valley"
	case TypePlateau:
		return "plateau"
	case TypeCanyon:
		return "canyon"
	case TypeDefault:
		return "default"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// ParseType maps a terrain type name to its constant. Unknown names map to
// TypeDefault.
func ParseType(name string) Type {
	switch name {
	case "mountain":
		return TypeMountain
	case "hills":
		return TypeHills
	case "valley":
		return TypeValley
	case "plateau":
		return TypePlateau
	case "canyon":
		return TypeCanyon
	default:
		return TypeDefault
	}
}

// Heightmap holds a grid of terrain heights indexed as Values[z][x].
type Heightmap struct {
	Values [][]float64
	Width  int // Samples in X direction
	Depth  int // Samples in Z direction
}

// Mesh holds triangle mesh geometry. Faces index into Vertices.
type Mesh struct {
	Vertices []r3.Vector
	Faces    [][3]int
}

// Validate checks the mesh for structural problems. A mesh with zero vertices
// or a face index outside the vertex range is invalid.
func (m *Mesh) Validate() error {
	if m == nil || len(m.Vertices) == 0 {
		return ErrInvalidMesh
	}
	n := len(m.Vertices)
	for _, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("%w: face index %d out of range [0,%d)", ErrInvalidMesh, idx, n)
			}
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) Bounds() (min, max r3.Vector) {
	if len(m.Vertices) == 0 {
		return r3.Vector{}, r3.Vector{}
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return min, max
}
