package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-obj/common"
	"github.com/Carmen-Shannon/oxy-obj/engine/model"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct {
	initialCapacity int
}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
// Triangle primitives are flattened into one Geometry. Each primitive's faces are tagged with
// its material name and every material's base color becomes the diffuse color, so glTF
// models render through the same assembler path as Wavefront models.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Parameters:
//   - initialCapacity: the starting capacity of the produced geometry sequences
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend(initialCapacity int) gltfLoaderBackend {
	return &gltfLoaderBackendImpl{initialCapacity: initialCapacity}
}

func (b *gltfLoaderBackendImpl) Load(path string) (*model.ImportedModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenFile, path, err)
	}
	f.Close()

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode glTF file %s: %w", path, err)
	}
	return b.importDocument(modelName(path), doc)
}

func (b *gltfLoaderBackendImpl) LoadReader(name string, r io.Reader) (*model.ImportedModel, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode glTF stream %q: %w", name, err)
	}
	return b.importDocument(name, doc)
}

// importDocument converts every triangle primitive of doc into faces of a single Geometry.
func (b *gltfLoaderBackendImpl) importDocument(name string, doc *gltf.Document) (*model.ImportedModel, error) {
	g := model.NewGeometry(b.initialCapacity)
	materials := gltfMaterials(doc)

	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			if err := appendPrimitive(g, doc, prim, materials); err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
			}
		}
	}

	if g.Faces.Len() == 0 {
		return nil, fmt.Errorf("no triangle primitives found in %q", name)
	}

	return &model.ImportedModel{
		Name:      name,
		Geometry:  g,
		Materials: materials,
	}, nil
}

// appendPrimitive adds the primitive's positions and normals to g and one face per triangle.
// Face indices are 1-based and offset by the elements already in g.
func appendPrimitive(g *model.Geometry, doc *gltf.Document, prim *gltf.Primitive, materials common.MaterialTable) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if normalIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(doc, doc.Accessors[normalIdx], nil)
		if err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	materialName := ""
	if prim.Material != nil && int(*prim.Material) < len(materials) {
		materialName = materials[*prim.Material].Name
	}

	positionBase := g.Positions.Len()
	normalBase := g.Normals.Len()
	g.Positions.Reserve(len(positions))
	g.Normals.Reserve(len(normals))
	g.Faces.Reserve(len(indices) / 3)
	for _, p := range positions {
		g.Positions.Append(model.Position(p))
	}
	for _, n := range normals {
		g.Normals.Append(model.Normal(n))
	}

	for t := 0; t+2 < len(indices); t += 3 {
		var face model.Face
		for c := 0; c < 3; c++ {
			idx := int(indices[t+c])
			face.Corners[c].PositionIndex = positionBase + idx + 1
			if normals != nil {
				face.Corners[c].NormalIndex = normalBase + idx + 1
			}
		}
		face.Material = materialName
		g.Faces.Append(face)
	}
	return nil
}

// gltfMaterials maps glTF materials onto material library records. Faces reference materials
// by name, so names are made unique: the first material with a given name keeps it, while
// unnamed materials and later duplicates get "<name>_<index>" ("material_<index>" when unnamed).
func gltfMaterials(doc *gltf.Document) common.MaterialTable {
	taken := make(map[string]bool, len(doc.Materials))
	keeps := make([]bool, len(doc.Materials))
	for i, m := range doc.Materials {
		if m.Name != "" && !taken[m.Name] {
			taken[m.Name] = true
			keeps[i] = true
		}
	}

	table := make(common.MaterialTable, len(doc.Materials))
	for i, m := range doc.Materials {
		name := m.Name
		if !keeps[i] {
			name = uniqueMaterialName(common.Coalesce(m.Name, "material"), i, taken)
		}
		im := common.ImportedMaterial{
			Name:         name,
			Diffuse:      [3]float32{1, 1, 1},
			Dissolve:     1,
			Illumination: 2,
		}
		if pbr := m.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				c := *pbr.BaseColorFactor
				im.Diffuse = [3]float32{float32(c[0]), float32(c[1]), float32(c[2])}
				im.Dissolve = float32(c[3])
			}
			if pbr.BaseColorTexture != nil {
				im.DiffuseMap = gltfImageURI(doc, int(pbr.BaseColorTexture.Index))
			}
		}
		table[i] = im
	}
	return table
}

// uniqueMaterialName returns "<base>_<index>", extended with underscores until it is not taken,
// and marks it taken.
func uniqueMaterialName(base string, index int, taken map[string]bool) string {
	name := fmt.Sprintf("%s_%d", base, index)
	for taken[name] {
		name += "_"
	}
	taken[name] = true
	return name
}

func gltfImageURI(doc *gltf.Document, textureIndex int) string {
	if textureIndex < 0 || textureIndex >= len(doc.Textures) {
		return ""
	}
	src := doc.Textures[textureIndex].Source
	if src == nil || int(*src) >= len(doc.Images) {
		return ""
	}
	return doc.Images[*src].URI
}
