package analysis

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/Alp-0zturk/Text-to-mesh/internal/terrain"
)

// FeatureNames lists the per-vertex descriptors in matrix column order.
var FeatureNames = []string{
	"height",
	"curvature",
	"roughness",
	"slope",
	"radial",
	"degree",
	"cluster_coef",
	"boundary",
}

// Features holds per-vertex descriptors. Every slice has one entry per mesh
// vertex and is min-max normalized to [0,1]; a descriptor that is constant
// across the mesh is set to 0.5 everywhere to keep clustering stable.
type Features struct {
	Height      []float64
	Curvature   []float64
	Roughness   []float64
	Slope       []float64
	Radial      []float64
	Degree      []float64
	ClusterCoef []float64
	Boundary    []float64
}

// VertexCount returns the number of vertices the features describe.
func (f *Features) VertexCount() int {
	return len(f.Height)
}

// columns returns the descriptor slices in FeatureNames order.
func (f *Features) columns() [][]float64 {
	return [][]float64{
		f.Height, f.Curvature, f.Roughness, f.Slope,
		f.Radial, f.Degree, f.ClusterCoef, f.Boundary,
	}
}

// Vector returns the combined feature vector of vertex i.
func (f *Features) Vector(i int) []float64 {
	cols := f.columns()
	v := make([]float64, len(cols))
	for c, col := range cols {
		v[c] = col[i]
	}
	return v
}

// Matrix returns one row per vertex in FeatureNames column order.
func (f *Features) Matrix() [][]float64 {
	n := f.VertexCount()
	rows := make([][]float64, n)
	for i := range n {
		rows[i] = f.Vector(i)
	}
	return rows
}

// Summary holds aggregate statistics of one descriptor.
type Summary struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Summaries returns per-descriptor aggregate statistics keyed by feature name.
func (f *Features) Summaries() map[string]Summary {
	out := make(map[string]Summary, len(FeatureNames))
	for c, col := range f.columns() {
		mean, std := stat.MeanStdDev(col, nil)
		if math.IsNaN(std) {
			std = 0
		}
		min, max := math.Inf(1), math.Inf(-1)
		for _, v := range col {
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
		out[FeatureNames[c]] = Summary{Mean: mean, Std: std, Min: min, Max: max}
	}
	return out
}

// ExtractFeatures derives the full per-vertex descriptor set from mesh
// geometry and the adjacency graph. Fails fast on an empty mesh.
func ExtractFeatures(mesh *terrain.Mesh, g *Graph, normals []r3.Vector) (*Features, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}

	n := len(mesh.Vertices)
	f := &Features{
		Height:      make([]float64, n),
		Curvature:   curvature(mesh, g),
		Roughness:   roughness(mesh, g, normals),
		Slope:       slope(mesh, g),
		Radial:      make([]float64, n),
		Degree:      make([]float64, n),
		ClusterCoef: g.ClusteringCoefficients(),
		Boundary:    BoundaryDistances(g, mesh.Faces),
	}

	centroid := meshCentroid(mesh)
	for i, v := range mesh.Vertices {
		f.Height[i] = v.Y
		f.Radial[i] = math.Hypot(v.X-centroid.X, v.Z-centroid.Z)
		f.Degree[i] = float64(g.Degree(i))
	}

	for _, col := range f.columns() {
		normalizeMinMax(col)
	}
	return f, nil
}

// normalizeMinMax rescales values to [0,1] in place. A constant column maps
// to 0.5 everywhere rather than producing NaN.
func normalizeMinMax(values []float64) {
	if len(values) == 0 {
		return
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	span := max - min
	if span < 1e-12 {
		for i := range values {
			values[i] = 0.5
		}
		return
	}
	for i := range values {
		values[i] = (values[i] - min) / span
	}
}

// curvature measures how far each vertex sits off the plane fitted through
// its neighbors. The plane normal is the eigenvector of the smallest
// eigenvalue of the neighbor covariance matrix.
func curvature(mesh *terrain.Mesh, g *Graph) []float64 {
	n := len(mesh.Vertices)
	out := make([]float64, n)

	for i := range n {
		nbrs := g.Neighbors(i)
		if len(nbrs) < 3 {
			continue
		}

		var cx, cy, cz float64
		for _, nb := range nbrs {
			p := mesh.Vertices[nb]
			cx += p.X
			cy += p.Y
			cz += p.Z
		}
		k := float64(len(nbrs))
		cx /= k
		cy /= k
		cz /= k

		var cov [6]float64 // xx, xy, xz, yy, yz, zz
		for _, nb := range nbrs {
			p := mesh.Vertices[nb]
			dx, dy, dz := p.X-cx, p.Y-cy, p.Z-cz
			cov[0] += dx * dx
			cov[1] += dx * dy
			cov[2] += dx * dz
			cov[3] += dy * dy
			cov[4] += dy * dz
			cov[5] += dz * dz
		}
		for j := range cov {
			cov[j] /= k
		}

		sym := mat.NewSymDense(3, []float64{
			cov[0], cov[1], cov[2],
			cov[1], cov[3], cov[4],
			cov[2], cov[4], cov[5],
		})

		var eigen mat.EigenSym
		if !eigen.Factorize(sym, true) {
			continue
		}

		var vecs mat.Dense
		eigen.VectorsTo(&vecs)

		// Eigenvalues are ascending; column 0 is the plane normal
		normal := r3.Vector{X: vecs.At(0, 0), Y: vecs.At(1, 0), Z: vecs.At(2, 0)}
		offset := mesh.Vertices[i].Sub(r3.Vector{X: cx, Y: cy, Z: cz})
		out[i] = math.Abs(offset.Dot(normal))
	}
	return out
}

// roughness measures angular variance of the face normals meeting at each
// vertex.
func roughness(mesh *terrain.Mesh, g *Graph, vertexNormals []r3.Vector) []float64 {
	n := len(mesh.Vertices)
	out := make([]float64, n)

	incident := make([][]r3.Vector, n)
	for _, f := range mesh.Faces {
		fn := terrain.FaceNormal(mesh, f)
		if fn.Norm() < 1e-12 {
			continue
		}
		fn = fn.Normalize()
		for _, idx := range f {
			incident[idx] = append(incident[idx], fn)
		}
	}

	for i := range n {
		faces := incident[i]
		if len(faces) < 2 {
			continue
		}
		ref := vertexNormals[i]
		var sum float64
		for _, fn := range faces {
			d := math.Max(-1, math.Min(1, fn.Dot(ref)))
			sum += math.Acos(d)
		}
		out[i] = sum / float64(len(faces))
	}
	return out
}

// slope measures the mean magnitude of the height gradient towards each
// graph neighbor.
func slope(mesh *terrain.Mesh, g *Graph) []float64 {
	n := len(mesh.Vertices)
	out := make([]float64, n)

	for i := range n {
		nbrs := g.Neighbors(i)
		if len(nbrs) == 0 {
			continue
		}
		p := mesh.Vertices[i]
		var sum float64
		valid := 0
		for _, nbi := range nbrs {
			nb := mesh.Vertices[nbi]
			horiz := math.Hypot(nb.X-p.X, nb.Z-p.Z)
			if horiz < 1e-12 {
				continue
			}
			sum += math.Abs(nb.Y-p.Y) / horiz
			valid++
		}
		if valid > 0 {
			out[i] = sum / float64(valid)
		}
	}
	return out
}

func meshCentroid(mesh *terrain.Mesh) r3.Vector {
	var c r3.Vector
	for _, v := range mesh.Vertices {
		c = c.Add(v)
	}
	return c.Mul(1 / float64(len(mesh.Vertices)))
}
