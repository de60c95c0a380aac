package terrain

import (
	"github.com/golang/geo/r3"
)

// MeshOptions controls heightmap-to-mesh conversion.
type MeshOptions struct {
	Width       float64 // World-space extent in X
	Depth       float64 // World-space extent in Z
	HeightScale float64 // Vertical exaggeration applied to heights
	WorldScale  float64 // Uniform scale applied to the final vertices
}

// DefaultMeshOptions returns the standard conversion parameters.
func DefaultMeshOptions() MeshOptions {
	return MeshOptions{
		Width:       50,
		Depth:       50,
		HeightScale: 8,
		WorldScale:  10,
	}
}

// MeshFromHeightmap builds a Y-up triangle mesh from a heightmap. The grid is
// centered on the origin; each grid cell contributes two triangles.
func MeshFromHeightmap(hm *Heightmap, opts MeshOptions) (*Mesh, error) {
	if hm == nil || hm.Width < 2 || hm.Depth < 2 {
		return nil, ErrInvalidGridSize
	}
	if opts.WorldScale == 0 {
		opts.WorldScale = 1
	}

	w, d := hm.Width, hm.Depth
	mesh := &Mesh{
		Vertices: make([]r3.Vector, 0, w*d),
		Faces:    make([][3]int, 0, 2*(w-1)*(d-1)),
	}

	for zi := range d {
		for xi := range w {
			x := (float64(xi)/float64(w-1) - 0.5) * opts.Width
			z := (float64(zi)/float64(d-1) - 0.5) * opts.Depth
			y := hm.Values[zi][xi] * opts.HeightScale

			mesh.Vertices = append(mesh.Vertices, r3.Vector{
				X: x * opts.WorldScale,
				Y: y * opts.WorldScale,
				Z: z * opts.WorldScale,
			})
		}
	}

	for zi := range d - 1 {
		for xi := range w - 1 {
			v0 := zi*w + xi
			v1 := zi*w + xi + 1
			v2 := (zi+1)*w + xi
			v3 := (zi+1)*w + xi + 1

			mesh.Faces = append(mesh.Faces, [3]int{v0, v1, v2}, [3]int{v1, v3, v2})
		}
	}

	return mesh, nil
}

// FaceNormal returns the (unnormalized) normal of face f.
func FaceNormal(m *Mesh, f [3]int) r3.Vector {
	a := m.Vertices[f[0]]
	b := m.Vertices[f[1]]
	c := m.Vertices[f[2]]
	return b.Sub(a).Cross(c.Sub(a))
}

// VertexNormals computes smooth per-vertex normals by accumulating incident
// face normals. Accumulation is area weighted since face normals are not
// normalized before summing. Vertices with no faces get the up vector.
func VertexNormals(m *Mesh) []r3.Vector {
	normals := make([]r3.Vector, len(m.Vertices))

	for _, f := range m.Faces {
		n := FaceNormal(m, f)
		for _, idx := range f {
			normals[idx] = normals[idx].Add(n)
		}
	}

	up := r3.Vector{Y: 1}
	for i, n := range normals {
		if n.Norm() < 1e-12 {
			normals[i] = up
			continue
		}
		normals[i] = n.Normalize()
	}
	return normals
}

// CollisionMesh builds a decimated copy of a grid mesh for physics use by
// sampling every stride-th grid vertex. The heightmap must be the one the
// visual mesh was built from.
func CollisionMesh(hm *Heightmap, opts MeshOptions, stride int) (*Mesh, error) {
	if stride < 1 {
		stride = 1
	}

	coarse := &Heightmap{
		Width: (hm.Width-1)/stride + 1,
		Depth: (hm.Depth-1)/stride + 1,
	}
	if coarse.Width < 2 || coarse.Depth < 2 {
		return nil, ErrInvalidGridSize
	}

	coarse.Values = make([][]float64, coarse.Depth)
	for zi := range coarse.Depth {
		coarse.Values[zi] = make([]float64, coarse.Width)
		for xi := range coarse.Width {
			sz := minInt(zi*stride, hm.Depth-1)
			sx := minInt(xi*stride, hm.Width-1)
			coarse.Values[zi][xi] = hm.Values[sz][sx]
		}
	}

	return MeshFromHeightmap(coarse, opts)
}
