package model

import (
	"github.com/Carmen-Shannon/oxy-obj/common"
	"github.com/go-gl/mathgl/mgl32"
)

// --- Geometry Primitives ---

// Position is a vertex position (x, y, z) in model space.
type Position = mgl32.Vec3

// TexCoord is a texture coordinate (u, v).
type TexCoord = mgl32.Vec2

// Normal is a vertex normal (x, y, z). Normals are stored as read and are not normalized.
type Normal = mgl32.Vec3

// Corner is one vertex use of a face. All indices are 1-based references into the
// geometry's position, texture coordinate and normal sequences, exactly as they appear in the file.
type Corner struct {
	// PositionIndex references Geometry.Positions (1-based).
	PositionIndex int

	// TexCoordIndex references Geometry.TexCoords (1-based).
	TexCoordIndex int

	// NormalIndex references Geometry.Normals (1-based).
	NormalIndex int
}

// Face is a triangle of three corners tagged with the material that was active when the face was declared.
type Face struct {
	// Corners are the three vertex uses of the triangle in declaration order.
	Corners [3]Corner

	// Material is the argument of the most recent usemtl directive before this face, or "" if none preceded it.
	Material string
}

// HasPosition reports whether any corner of the face references the given 1-based position index.
//
// Parameters:
//   - positionIndex: the 1-based position index to look for
//
// Returns:
//   - bool: true if one of the three corners references positionIndex
func (f Face) HasPosition(positionIndex int) bool {
	for _, c := range f.Corners {
		if c.PositionIndex == positionIndex {
			return true
		}
	}
	return false
}

// --- Import Types ---

// Capacities reports the element count and allocated capacity of each geometry sequence.
type Capacities struct {
	Positions, PositionsCap int
	TexCoords, TexCoordsCap int
	Normals, NormalsCap     int
	Faces, FacesCap         int
}

// Geometry holds the parsed contents of a geometry file. It is exclusively owned by the
// code that loaded it and is released once its data has been assembled and uploaded.
type Geometry struct {
	// Positions are the v entries in file order.
	Positions *common.Growable[Position]

	// TexCoords are the vt entries in file order.
	TexCoords *common.Growable[TexCoord]

	// Normals are the vn entries in file order.
	Normals *common.Growable[Normal]

	// Faces are the accepted f entries in file order.
	Faces *common.Growable[Face]

	// MaterialLibs are the mtllib file names referenced by the geometry, in file order.
	MaterialLibs []string

	// SkippedFaces counts face lines that were rejected because they did not hold nine indices.
	SkippedFaces int
}

// NewGeometry creates an empty Geometry whose four sequences start at the given capacity.
//
// Parameters:
//   - initialCapacity: the starting capacity of every sequence
//
// Returns:
//   - *Geometry: the empty geometry
func NewGeometry(initialCapacity int) *Geometry {
	return &Geometry{
		Positions: common.NewGrowable[Position](initialCapacity),
		TexCoords: common.NewGrowable[TexCoord](initialCapacity),
		Normals:   common.NewGrowable[Normal](initialCapacity),
		Faces:     common.NewGrowable[Face](initialCapacity),
	}
}

// Capacities returns the current size and capacity of every sequence.
//
// Returns:
//   - Capacities: the per-sequence counts
func (g *Geometry) Capacities() Capacities {
	return Capacities{
		Positions: g.Positions.Len(), PositionsCap: g.Positions.Cap(),
		TexCoords: g.TexCoords.Len(), TexCoordsCap: g.TexCoords.Cap(),
		Normals: g.Normals.Len(), NormalsCap: g.Normals.Cap(),
		Faces: g.Faces.Len(), FacesCap: g.Faces.Cap(),
	}
}

// Bounds computes the axis-aligned bounding box of all positions.
// An empty geometry yields two zero vectors.
//
// Returns:
//   - mgl32.Vec3: the minimum corner
//   - mgl32.Vec3: the maximum corner
func (g *Geometry) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	positions := g.Positions.Items()
	if len(positions) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo, hi := positions[0], positions[0]
	for _, p := range positions[1:] {
		for axis := 0; axis < 3; axis++ {
			lo[axis] = min(lo[axis], p[axis])
			hi[axis] = max(hi[axis], p[axis])
		}
	}
	return lo, hi
}

// Release drops the storage of all four sequences. The Geometry must not be assembled again afterwards.
func (g *Geometry) Release() {
	g.Positions.Release()
	g.TexCoords.Release()
	g.Normals.Release()
	g.Faces.Release()
}

// ImportedModel represents a model loaded from an external format before assembly.
// This is the universal format that loader backends (Wavefront, glTF) produce.
type ImportedModel struct {
	// Name is the model identifier.
	Name string

	// Geometry holds positions, normals and material-tagged faces.
	Geometry *Geometry

	// Materials is the material table the faces' material tags are resolved against.
	Materials common.MaterialTable
}
