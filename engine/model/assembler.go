package model

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-obj/common"
)

// VertexLayout selects the shape of an interleaved vertex record.
type VertexLayout int

const (
	// LayoutColor is a 6-float record: position (3) + diffuse color (3).
	LayoutColor VertexLayout = iota
	// LayoutColorNormal is a 9-float record: position (3) + diffuse color (3) + normal (3).
	LayoutColorNormal
)

// Stride returns the number of float32 values in one record.
//
// Returns:
//   - int: 6 for LayoutColor, 9 for LayoutColorNormal
func (l VertexLayout) Stride() int {
	if l == LayoutColorNormal {
		return 9
	}
	return 6
}

// StrideBytes returns the size of one record in bytes.
//
// Returns:
//   - uint64: the record size in bytes
func (l VertexLayout) StrideBytes() uint64 {
	if l == LayoutColorNormal {
		return uint64((&GPUColorNormalVertex{}).Size())
	}
	return uint64((&GPUColorVertex{}).Size())
}

// Attributes describes the float attributes of one record, in shader location order.
// Location 0 is the position, 1 the diffuse color and 2 the normal.
//
// Returns:
//   - []common.VertexAttribute: the attribute descriptors
func (l VertexLayout) Attributes() []common.VertexAttribute {
	if l == LayoutColorNormal {
		return colorNormalVertexAttributes()
	}
	return colorVertexAttributes()
}

// String returns the flag name of the layout.
func (l VertexLayout) String() string {
	switch l {
	case LayoutColor:
		return "color"
	case LayoutColorNormal:
		return "color-normal"
	default:
		return fmt.Sprintf("VertexLayout(%d)", int(l))
	}
}

// PipelineKey returns the render pipeline key used for models assembled with this layout.
func (l VertexLayout) PipelineKey() string {
	return "obj_" + l.String()
}

// ParseVertexLayout converts a layout name ("color" or "color-normal") into a VertexLayout.
//
// Parameters:
//   - s: the layout name
//
// Returns:
//   - VertexLayout: the parsed layout
//   - error: error if the name is unknown
func ParseVertexLayout(s string) (VertexLayout, error) {
	switch s {
	case "color":
		return LayoutColor, nil
	case "color-normal":
		return LayoutColorNormal, nil
	}
	return LayoutColor, fmt.Errorf("unknown vertex layout %q", s)
}

// FaceLookup selects how the assembler finds the face that owns a position slot.
// Both strategies select the same face.
type FaceLookup int

const (
	// FaceLookupScan scans every face for every position. O(positions * faces).
	FaceLookupScan FaceLookup = iota
	// FaceLookupIndexed builds a position to face table once. O(positions + faces).
	FaceLookupIndexed
)

// String returns the flag name of the strategy.
func (f FaceLookup) String() string {
	switch f {
	case FaceLookupScan:
		return "scan"
	case FaceLookupIndexed:
		return "indexed"
	default:
		return fmt.Sprintf("FaceLookup(%d)", int(f))
	}
}

// ParseFaceLookup converts a strategy name ("scan" or "indexed") into a FaceLookup.
//
// Parameters:
//   - s: the strategy name
//
// Returns:
//   - FaceLookup: the parsed strategy
//   - error: error if the name is unknown
func ParseFaceLookup(s string) (FaceLookup, error) {
	switch s {
	case "scan":
		return FaceLookupScan, nil
	case "indexed":
		return FaceLookupIndexed, nil
	}
	return FaceLookupScan, fmt.Errorf("unknown face lookup %q", s)
}

// Attributes is the output of the assembler: one interleaved record per position slot and
// a flat triangle index list with three entries per face.
type Attributes struct {
	// Layout is the record shape of Vertices.
	Layout VertexLayout

	// Vertices holds VertexCount() records of Layout.Stride() floats each.
	Vertices []float32

	// Indices holds the 0-based position index of every face corner.
	Indices []uint32
}

// VertexCount returns the number of records in Vertices.
func (a *Attributes) VertexCount() int {
	return len(a.Vertices) / a.Layout.Stride()
}

// Record returns the floats of record i.
//
// Parameters:
//   - i: the 0-based record index
//
// Returns:
//   - []float32: a view of the record inside Vertices
func (a *Attributes) Record(i int) []float32 {
	stride := a.Layout.Stride()
	return a.Vertices[i*stride : (i+1)*stride]
}

// VertexBytes serializes all records into a little-endian byte buffer for GPU upload.
//
// Returns:
//   - []byte: VertexCount() * Layout.StrideBytes() bytes
func (a *Attributes) VertexBytes() []byte {
	n := a.VertexCount()
	buf := make([]byte, 0, uint64(n)*a.Layout.StrideBytes())
	for i := 0; i < n; i++ {
		r := a.Record(i)
		switch a.Layout {
		case LayoutColorNormal:
			v := GPUColorNormalVertex{
				Position: [3]float32{r[0], r[1], r[2]},
				Color:    [3]float32{r[3], r[4], r[5]},
				Normal:   [3]float32{r[6], r[7], r[8]},
			}
			buf = append(buf, v.Marshal()...)
		default:
			v := GPUColorVertex{
				Position: [3]float32{r[0], r[1], r[2]},
				Color:    [3]float32{r[3], r[4], r[5]},
			}
			buf = append(buf, v.Marshal()...)
		}
	}
	return buf
}

// IndexBytes returns the index list as bytes for GPU upload.
//
// Returns:
//   - []byte: 4 bytes per index, or nil when there are no indices
func (a *Attributes) IndexBytes() []byte {
	return common.SliceToBytes(a.Indices)
}

// Assemble builds the interleaved vertex records and the index list for a geometry.
//
// Record i holds position i, followed by the diffuse color of the material of the face that
// owns position i+1, followed (for LayoutColorNormal) by a normal. The owning face is the last
// face in file order with a corner referencing the position. When no face owns the position,
// or the owner's material has no entry in the table, the color slot keeps its previous
// contents, which is zero in the freshly allocated buffer used here.
//
// The normal takes its x component from the first corner's normal, its y component from the
// second corner's and its z component from the third corner's. Consumers relying on real
// per-vertex normals should not use LayoutColorNormal.
//
// Parameters:
//   - g: the parsed geometry
//   - materials: the table face material tags are resolved against
//   - layout: the record shape
//   - lookup: the face selection strategy
//
// Returns:
//   - *Attributes: the assembled records and indices
func Assemble(g *Geometry, materials common.MaterialTable, layout VertexLayout, lookup FaceLookup) *Attributes {
	dst := make([]float32, g.Positions.Len()*layout.Stride())
	attrs, _ := AssembleInto(dst, g, materials, layout, lookup)
	return attrs
}

// AssembleInto is Assemble writing into a caller-provided buffer. Slots that the assembler does
// not write (unmatched colors and normals) keep whatever dst already held.
//
// Parameters:
//   - dst: destination buffer, at least positions * layout.Stride() floats long
//   - g: the parsed geometry
//   - materials: the table face material tags are resolved against
//   - layout: the record shape
//   - lookup: the face selection strategy
//
// Returns:
//   - *Attributes: the assembled records (aliasing dst) and indices
//   - error: error if dst is too short
func AssembleInto(dst []float32, g *Geometry, materials common.MaterialTable, layout VertexLayout, lookup FaceLookup) (*Attributes, error) {
	positions := g.Positions.Items()
	faces := g.Faces.Items()
	normals := g.Normals.Items()
	stride := layout.Stride()

	need := len(positions) * stride
	if len(dst) < need {
		return nil, fmt.Errorf("destination holds %d floats, %d positions with layout %s need %d", len(dst), len(positions), layout, need)
	}
	dst = dst[:need]

	diffuse := make(map[string][3]float32, len(materials))
	for _, m := range materials {
		diffuse[m.Name] = m.Diffuse
	}

	var owners []int
	if lookup == FaceLookupIndexed {
		owners = indexFaceOwners(len(positions), faces)
	}

	for i, p := range positions {
		rec := dst[i*stride : (i+1)*stride]
		copy(rec[0:3], p[:])

		var owner int
		if lookup == FaceLookupIndexed {
			owner = owners[i]
		} else {
			owner = scanFaceOwner(i+1, faces)
		}
		if owner < 0 {
			continue
		}
		face := faces[owner]

		if kd, ok := diffuse[face.Material]; ok {
			copy(rec[3:6], kd[:])
		}

		if layout == LayoutColorNormal {
			for axis, c := range face.Corners {
				if c.NormalIndex >= 1 && c.NormalIndex <= len(normals) {
					rec[6+axis] = normals[c.NormalIndex-1][axis]
				}
			}
		}
	}

	indices := make([]uint32, 0, len(faces)*3)
	for _, f := range faces {
		for _, c := range f.Corners {
			indices = append(indices, uint32(c.PositionIndex-1))
		}
	}

	return &Attributes{
		Layout:   layout,
		Vertices: dst,
		Indices:  indices,
	}, nil
}

// scanFaceOwner returns the index of the last face referencing positionIndex, or -1.
func scanFaceOwner(positionIndex int, faces []Face) int {
	owner := -1
	for j, f := range faces {
		if f.HasPosition(positionIndex) {
			owner = j
		}
	}
	return owner
}

// indexFaceOwners maps every 0-based position slot to the index of the last face referencing it, or -1.
func indexFaceOwners(positionCount int, faces []Face) []int {
	owners := make([]int, positionCount)
	for i := range owners {
		owners[i] = -1
	}
	for j, f := range faces {
		for _, c := range f.Corners {
			if c.PositionIndex >= 1 && c.PositionIndex <= positionCount {
				owners[c.PositionIndex-1] = j
			}
		}
	}
	return owners
}
