package analysis

import (
	"sort"
)

// Graph is a vertex adjacency graph stored as index-based edge lists.
// Vertices are adjacent when they co-occur in a face. The graph is built once
// from mesh connectivity and read-only afterwards.
type Graph struct {
	adj [][]int32
}

// BuildGraph derives the adjacency graph from face connectivity.
// Neighbor lists are sorted so traversal order is deterministic.
func BuildGraph(vertexCount int, faces [][3]int) *Graph {
	seen := make([]map[int32]struct{}, vertexCount)

	addEdge := func(a, b int) {
		if a == b {
			return
		}
		if seen[a] == nil {
			seen[a] = make(map[int32]struct{}, 8)
		}
		seen[a][int32(b)] = struct{}{}
	}

	for _, f := range faces {
		addEdge(f[0], f[1])
		addEdge(f[1], f[0])
		addEdge(f[0], f[2])
		addEdge(f[2], f[0])
		addEdge(f[1], f[2])
		addEdge(f[2], f[1])
	}

	g := &Graph{adj: make([][]int32, vertexCount)}
	for i, set := range seen {
		if len(set) == 0 {
			continue
		}
		nbrs := make([]int32, 0, len(set))
		for n := range set {
			nbrs = append(nbrs, n)
		}
		sort.Slice(nbrs, func(a, b int) bool { return nbrs[a] < nbrs[b] })
		g.adj[i] = nbrs
	}
	return g
}

// VertexCount returns the number of vertices in the graph.
func (g *Graph) VertexCount() int {
	return len(g.adj)
}

// Neighbors returns the sorted neighbor list of vertex i.
func (g *Graph) Neighbors(i int) []int32 {
	return g.adj[i]
}

// Degree returns the neighbor count of vertex i.
func (g *Graph) Degree(i int) int {
	return len(g.adj[i])
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, nbrs := range g.adj {
		total += len(nbrs)
	}
	return total / 2
}

// HasEdge reports whether vertices a and b are adjacent.
func (g *Graph) HasEdge(a, b int32) bool {
	nbrs := g.adj[a]
	idx := sort.Search(len(nbrs), func(i int) bool { return nbrs[i] >= b })
	return idx < len(nbrs) && nbrs[idx] == b
}

// ClusteringCoefficients returns the local clustering coefficient of each
// vertex: the fraction of its neighbor pairs that are themselves connected.
// Vertices with fewer than two neighbors get 0.
func (g *Graph) ClusteringCoefficients() []float64 {
	coeffs := make([]float64, len(g.adj))
	for i, nbrs := range g.adj {
		k := len(nbrs)
		if k < 2 {
			continue
		}
		links := 0
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				if g.HasEdge(nbrs[a], nbrs[b]) {
					links++
				}
			}
		}
		coeffs[i] = 2 * float64(links) / float64(k*(k-1))
	}
	return coeffs
}

// BoundaryDistances returns per-vertex BFS hop counts to the nearest boundary
// vertex. A boundary vertex lies on an edge used by exactly one face. Closed
// meshes with no boundary, and meshes with no faces at all, yield all zeros
// by convention so the feature stays numerically safe.
func BoundaryDistances(g *Graph, faces [][3]int) []float64 {
	n := g.VertexCount()
	dist := make([]float64, n)

	boundary := boundaryVertices(n, faces)
	if len(boundary) == 0 {
		return dist
	}

	// Multi-source BFS from all boundary vertices
	const unvisited = -1
	hops := make([]int, n)
	for i := range hops {
		hops[i] = unvisited
	}

	queue := make([]int32, 0, len(boundary))
	for _, b := range boundary {
		hops[b] = 0
		queue = append(queue, b)
	}

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, nb := range g.adj[v] {
			if hops[nb] == unvisited {
				hops[nb] = hops[v] + 1
				queue = append(queue, nb)
			}
		}
	}

	// Unreachable vertices (disconnected components without boundary) stay 0
	for i, h := range hops {
		if h > 0 {
			dist[i] = float64(h)
		}
	}
	return dist
}

// boundaryVertices finds vertices incident to an edge that appears in exactly
// one face. Returned sorted ascending.
func boundaryVertices(vertexCount int, faces [][3]int) []int32 {
	type edge struct{ a, b int32 }
	counts := make(map[edge]int)

	norm := func(a, b int) edge {
		if a > b {
			a, b = b, a
		}
		return edge{int32(a), int32(b)}
	}

	for _, f := range faces {
		counts[norm(f[0], f[1])]++
		counts[norm(f[1], f[2])]++
		counts[norm(f[0], f[2])]++
	}

	onBoundary := make([]bool, vertexCount)
	for e, c := range counts {
		if c == 1 {
			onBoundary[e.a] = true
			onBoundary[e.b] = true
		}
	}

	var result []int32
	for i, b := range onBoundary {
		if b {
			result = append(result, int32(i))
		}
	}
	return result
}
