package loader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-obj/common"
)

// LoadMTL opens and parses a Wavefront material library.
//
// Parameters:
//   - path: the .mtl file path
//   - opts: parse options (logger, verbose)
//
// Returns:
//   - common.MaterialTable: the materials in declaration order
//   - error: a wrapped ErrOpenFile if the file cannot be opened, or a read error
func LoadMTL(path string, opts ...ParseOption) (common.MaterialTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenFile, path, err)
	}
	defer f.Close()

	table, err := ParseMTL(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return table, nil
}

// ParseMTL parses a Wavefront material library from r.
//
// A newmtl line starts a new material and every following property line (Ka, Kd, Ks, Ns,
// Ni, d, illum, map_Kd) updates it. Property lines before the first newmtl are ignored.
// Numeric fields are assigned left to right until the first one that does not parse; the
// remaining fields keep their previous values. At most common.MaxMaterials materials are
// kept; each extra newmtl is logged and its property lines are ignored.
//
// Parameters:
//   - r: the material library contents
//   - opts: parse options (logger, verbose)
//
// Returns:
//   - common.MaterialTable: the materials in declaration order
//   - error: error if reading r fails
func ParseMTL(r io.Reader, opts ...ParseOption) (common.MaterialTable, error) {
	cfg := newParseConfig(opts)
	table := make(common.MaterialTable, 0, common.MaxMaterials)
	var current *common.ImportedMaterial

	sc := newLineScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")

		if strings.HasPrefix(line, "newmtl ") {
			if len(table) == common.MaxMaterials {
				current = nil
				cfg.logger.Printf("Error: material limit %d reached, ignoring %q", common.MaxMaterials, line)
				continue
			}
			table = append(table, common.ImportedMaterial{})
			current = &table[len(table)-1]
			fmt.Sscanf(line, "newmtl %s", &current.Name)
			continue
		}
		if current == nil {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Ka "):
			fmt.Sscanf(line, "Ka %f %f %f", &current.Ambient[0], &current.Ambient[1], &current.Ambient[2])
		case strings.HasPrefix(line, "Kd "):
			fmt.Sscanf(line, "Kd %f %f %f", &current.Diffuse[0], &current.Diffuse[1], &current.Diffuse[2])
		case strings.HasPrefix(line, "Ks "):
			fmt.Sscanf(line, "Ks %f %f %f", &current.Specular[0], &current.Specular[1], &current.Specular[2])
		case strings.HasPrefix(line, "Ns "):
			fmt.Sscanf(line, "Ns %f", &current.SpecularExponent)
		case strings.HasPrefix(line, "Ni "):
			fmt.Sscanf(line, "Ni %f", &current.OpticalDensity)
		case strings.HasPrefix(line, "d "):
			fmt.Sscanf(line, "d %f", &current.Dissolve)
		case strings.HasPrefix(line, "illum "):
			fmt.Sscanf(line, "illum %d", &current.Illumination)
		case strings.HasPrefix(line, "map_Kd "):
			fmt.Sscanf(line, "map_Kd %s", &current.DiffuseMap)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read material library: %w", err)
	}

	cfg.verbosef("Parsed %d materials", len(table))
	return table, nil
}
