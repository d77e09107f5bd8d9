// Package meshio supplies per-individual vertex arrays: OBJ parsing for
// meshes on disk and an HTTP client for a mesh-generation service. Only
// vertex positions matter here; faces and UVs come from the static assets,
// since every mesh shares the same topology.
package meshio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"bodyrig/internal/mathutil"
)

// ParseOBJVertices reads "v x y z" lines from an OBJ document in order.
// All other statements (faces, normals, texcoords) are ignored.
func ParseOBJVertices(r io.Reader) ([]mathutil.Vec3, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var verts []mathutil.Vec3
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !strings.HasPrefix(line, "v ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("meshio: line %d: malformed vertex: %q", lineNo, line)
		}
		var v mathutil.Vec3
		for i := 0; i < 3; i++ {
			f, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("meshio: line %d: bad coordinate %q: %w", lineNo, fields[i+1], err)
			}
			v[i] = f
		}
		verts = append(verts, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("meshio: scan: %w", err)
	}
	return verts, nil
}

// ReadOBJFile parses the vertices of an OBJ file on disk.
func ReadOBJFile(path string) ([]mathutil.Vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: open %s: %w", path, err)
	}
	defer f.Close()
	return ParseOBJVertices(f)
}

// WriteOBJVertices writes a vertex-only OBJ document, one "v" line per
// vertex. Used by the mesh fetch tool to persist generated meshes.
func WriteOBJVertices(w io.Writer, verts []mathutil.Vec3) error {
	bw := bufio.NewWriter(w)
	for _, v := range verts {
		if _, err := fmt.Fprintf(bw, "v %g %g %g\n", v[0], v[1], v[2]); err != nil {
			return fmt.Errorf("meshio: write: %w", err)
		}
	}
	return bw.Flush()
}
