// Package export writes generated meshes and their metadata to disk.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"github.com/Alp-0zturk/Text-to-mesh/internal/colorize"
	"github.com/Alp-0zturk/Text-to-mesh/internal/terrain"
)

// WriteOBJ writes the mesh as Wavefront OBJ. When colors is non-nil it must
// hold one entry per vertex and each vertex line carries the vertex-color
// extension (v x y z r g b) understood by Unity importers and most DCC
// tools. Alpha is not representable in OBJ and is dropped.
func WriteOBJ(w io.Writer, mesh *terrain.Mesh, colors []colorize.RGBA) error {
	if err := mesh.Validate(); err != nil {
		return err
	}
	if colors != nil && len(colors) != len(mesh.Vertices) {
		return fmt.Errorf("export: %d colors for %d vertices", len(colors), len(mesh.Vertices))
	}

	bw := bufio.NewWriter(w)
	for i, v := range mesh.Vertices {
		if colors != nil {
			c := colors[i]
			fmt.Fprintf(bw, "v %.6f %.6f %.6f %.4f %.4f %.4f\n", v.X, v.Y, v.Z, c.R, c.G, c.B)
		} else {
			fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z)
		}
	}
	for _, f := range mesh.Faces {
		fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	return bw.Flush()
}

// WriteOBJFile writes the mesh to path, creating parent directories.
func WriteOBJFile(path string, mesh *terrain.Mesh, colors []colorize.RGBA) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteOBJ(f, mesh, colors)
}

// ReadOBJ parses an OBJ stream back into a mesh, recovering vertex colors
// when present. Faces with more than three indices are fan triangulated;
// texture and normal references (f a/b/c) are ignored.
func ReadOBJ(r io.Reader) (*terrain.Mesh, []colorize.RGBA, error) {
	mesh := &terrain.Mesh{}
	var colors []colorize.RGBA
	hasColors := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("export: line %d: short vertex line", lineNo)
			}
			coords, err := parseFloats(fields[1:])
			if err != nil {
				return nil, nil, fmt.Errorf("export: line %d: %w", lineNo, err)
			}
			mesh.Vertices = append(mesh.Vertices, r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]})
			if len(coords) >= 6 {
				colors = append(colors, colorize.RGBA{R: coords[3], G: coords[4], B: coords[5], A: 1})
				hasColors = true
			} else {
				colors = append(colors, colorize.RGBA{A: 1})
			}
		case "f":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("export: line %d: short face line", lineNo)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				ref := strings.SplitN(tok, "/", 2)[0]
				n, err := strconv.Atoi(ref)
				if err != nil {
					return nil, nil, fmt.Errorf("export: line %d: bad face index %q", lineNo, tok)
				}
				if n < 0 {
					n = len(mesh.Vertices) + 1 + n
				}
				idx = append(idx, n-1)
			}
			for i := 2; i < len(idx); i++ {
				mesh.Faces = append(mesh.Faces, [3]int{idx[0], idx[i-1], idx[i]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	if err := mesh.Validate(); err != nil {
		return nil, nil, err
	}
	if !hasColors {
		colors = nil
	}
	return mesh, colors, nil
}

// ReadOBJFile parses the OBJ at path.
func ReadOBJFile(path string) (*terrain.Mesh, []colorize.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadOBJ(f)
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", s)
		}
		out[i] = v
	}
	return out, nil
}

func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		return os.MkdirAll(dir, 0o755)
	}
	return nil
}
