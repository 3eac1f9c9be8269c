package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-obj/engine/model"
)

// LoadOBJ opens and parses a Wavefront geometry file.
//
// Parameters:
//   - path: the .obj file path
//   - opts: parse options (logger, verbose, initial capacity)
//
// Returns:
//   - *model.Geometry: the parsed geometry, owned by the caller
//   - error: a wrapped ErrOpenFile if the file cannot be opened, or a read error
func LoadOBJ(path string, opts ...ParseOption) (*model.Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenFile, path, err)
	}
	defer f.Close()

	g, err := ParseOBJ(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return g, nil
}

// ParseOBJ parses a Wavefront geometry file from r.
//
// Recognized lines are v, vt, vn, usemtl, f and mtllib; everything else is ignored. A face
// line must hold three i/j/k corners. Any other shape is reported as
// "Error: Expected 9 values for face, got N", where N is the number of indices read before
// the first mismatch, and the line is skipped. Only the first three corners of a longer face
// line are kept. Negative (relative) indices are converted to absolute 1-based indices.
//
// Each face is tagged with the argument of the most recent usemtl line, or "" before the first one.
//
// Parameters:
//   - r: the geometry file contents
//   - opts: parse options (logger, verbose, initial capacity)
//
// Returns:
//   - *model.Geometry: the parsed geometry, owned by the caller
//   - error: error if reading r fails
func ParseOBJ(r io.Reader, opts ...ParseOption) (*model.Geometry, error) {
	cfg := newParseConfig(opts)

	g := model.NewGeometry(cfg.initialCapacity)
	if cfg.verbose {
		logAllocation(cfg, g)
		g.Positions.SetGrowCallback(growLogger[model.Position](cfg, "positions"))
		g.TexCoords.SetGrowCallback(growLogger[model.TexCoord](cfg, "texture coordinates"))
		g.Normals.SetGrowCallback(growLogger[model.Normal](cfg, "normals"))
		g.Faces.SetGrowCallback(growLogger[model.Face](cfg, "faces"))
	}

	cfg.verbosef("Reading geometry")
	currentMaterial := ""

	sc := newLineScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")

		switch {
		case strings.HasPrefix(line, "v "):
			var p model.Position
			fmt.Sscanf(line, "v %f %f %f", &p[0], &p[1], &p[2])
			g.Positions.Append(p)
		case strings.HasPrefix(line, "vt "):
			var t model.TexCoord
			fmt.Sscanf(line, "vt %f %f", &t[0], &t[1])
			g.TexCoords.Append(t)
		case strings.HasPrefix(line, "vn "):
			var n model.Normal
			fmt.Sscanf(line, "vn %f %f %f", &n[0], &n[1], &n[2])
			g.Normals.Append(n)
		case strings.HasPrefix(line, "usemtl "):
			fmt.Sscanf(line, "usemtl %s", &currentMaterial)
		case strings.HasPrefix(line, "mtllib "):
			var lib string
			if n, _ := fmt.Sscanf(line, "mtllib %s", &lib); n == 1 {
				g.MaterialLibs = append(g.MaterialLibs, lib)
			}
		case strings.HasPrefix(line, "f "):
			face, n := scanFace(line)
			if n != 9 {
				cfg.logger.Printf("Error: Expected 9 values for face, got %d", n)
				g.SkippedFaces++
				continue
			}
			resolveRelative(&face, g)
			face.Material = currentMaterial
			g.Faces.Append(face)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read geometry: %w", err)
	}

	c := g.Capacities()
	cfg.verbosef("Finished reading geometry: %d positions, %d texture coordinates, %d normals, %d faces (%d skipped)",
		c.Positions, c.TexCoords, c.Normals, c.Faces, g.SkippedFaces)
	return g, nil
}

// scanFace reads the nine indices of a face line. It returns the number of indices read
// before the first mismatch, or -1 when the line ends before the first index.
func scanFace(line string) (model.Face, int) {
	var f model.Face
	a, b, c := &f.Corners[0], &f.Corners[1], &f.Corners[2]
	n, err := fmt.Sscanf(line, "f %d/%d/%d %d/%d/%d %d/%d/%d",
		&a.PositionIndex, &a.TexCoordIndex, &a.NormalIndex,
		&b.PositionIndex, &b.TexCoordIndex, &b.NormalIndex,
		&c.PositionIndex, &c.TexCoordIndex, &c.NormalIndex,
	)
	if n == 0 && (errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)) {
		return f, -1
	}
	return f, n
}

// resolveRelative rewrites negative indices, which count back from the most recent element,
// into absolute 1-based indices.
func resolveRelative(f *model.Face, g *model.Geometry) {
	for i := range f.Corners {
		c := &f.Corners[i]
		if c.PositionIndex < 0 {
			c.PositionIndex += g.Positions.Len() + 1
		}
		if c.TexCoordIndex < 0 {
			c.TexCoordIndex += g.TexCoords.Len() + 1
		}
		if c.NormalIndex < 0 {
			c.NormalIndex += g.Normals.Len() + 1
		}
	}
}

func logAllocation(cfg *parseConfig, g *model.Geometry) {
	c := g.Capacities()
	cfg.verbosef("Allocated %d bytes for positions", c.PositionsCap*int(unsafe.Sizeof(model.Position{})))
	cfg.verbosef("Allocated %d bytes for texture coordinates", c.TexCoordsCap*int(unsafe.Sizeof(model.TexCoord{})))
	cfg.verbosef("Allocated %d bytes for normals", c.NormalsCap*int(unsafe.Sizeof(model.Normal{})))
	cfg.verbosef("Allocated %d bytes for faces", c.FacesCap*int(unsafe.Sizeof(model.Face{})))
}

func growLogger[T any](cfg *parseConfig, what string) func(oldCap, newCap int) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	return func(oldCap, newCap int) {
		cfg.verbosef("Reallocated %s: capacity %d -> %d (%d bytes)", what, oldCap, newCap, newCap*size)
	}
}
