package common

import "path/filepath"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// ResolveSibling resolves name against the directory containing path.
// Absolute names and empty names are returned unchanged.
//
// Parameters:
//   - path: a file path whose directory is used as the base
//   - name: the file name referenced from inside that file (e.g. an mtllib entry)
//
// Returns:
//   - string: the resolved path
func ResolveSibling(path, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(filepath.Dir(path), name)
}
