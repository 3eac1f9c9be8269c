package common

import (
	"unsafe"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the input data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// NextCapacity returns the capacity a doubling sequence reaches after holding n elements,
// starting from initial. This is the smallest initial*2^k that is >= n.
//
// Parameters:
//   - initial: the starting capacity (values < 1 are treated as 1)
//   - n: the number of elements the sequence must hold
//
// Returns:
//   - int: the resulting capacity
func NextCapacity(initial, n int) int {
	c := max(initial, 1)
	for c < n {
		c *= 2
	}
	return c
}
