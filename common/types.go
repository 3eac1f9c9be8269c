// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// MaxMaterials is the fixed capacity of a MaterialTable produced by the material loader.
const MaxMaterials = 100

// ImportedMaterial represents a single named material record from a material library (.mtl).
// Property lines in the library mutate the most recently declared material, so every field
// not mentioned by the file keeps its zero value.
type ImportedMaterial struct {
	// Name is the material identifier declared by newmtl. Lookups match it exactly.
	Name string

	// Ambient is the Ka color triple.
	Ambient [3]float32

	// Diffuse is the Kd color triple. This is the only property transferred to the GPU.
	Diffuse [3]float32

	// Specular is the Ks color triple.
	Specular [3]float32

	// SpecularExponent is the Ns shininess value.
	SpecularExponent float32

	// OpticalDensity is the Ni index of refraction.
	OpticalDensity float32

	// Dissolve is the d transparency factor (1.0 = opaque).
	Dissolve float32

	// Illumination is the illum model selector.
	Illumination int

	// DiffuseMap is the map_Kd texture file name, as written in the library.
	DiffuseMap string
}

// MaterialTable is an ordered list of imported materials in declaration order.
type MaterialTable []ImportedMaterial

// Lookup finds the material with the given name using exact, case-sensitive comparison.
// The whole table is scanned and the last matching entry wins, so a redeclared name
// resolves to its final declaration.
//
// Parameters:
//   - name: the material name to search for
//
// Returns:
//   - *ImportedMaterial: the matching material, or nil when no entry matches
//   - bool: true if a match was found
func (t MaterialTable) Lookup(name string) (*ImportedMaterial, bool) {
	var found *ImportedMaterial
	for i := range t {
		if t[i].Name == name {
			found = &t[i]
		}
	}
	return found, found != nil
}

// Names returns the material names in declaration order.
//
// Returns:
//   - []string: the names of all materials in the table
func (t MaterialTable) Names() []string {
	names := make([]string, len(t))
	for i := range t {
		names[i] = t[i].Name
	}
	return names
}

// VertexAttribute describes one float attribute inside an interleaved vertex record.
// Both renderer backends translate it into their native vertex layout description.
type VertexAttribute struct {
	// Location is the shader input location the attribute feeds.
	Location uint32

	// Components is the number of float32 components (2, 3 or 4).
	Components int

	// Offset is the byte offset of the attribute inside the record.
	Offset int
}
