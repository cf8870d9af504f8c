// Package rtabi defines the ABI constants shared between the compiler and the VM loader.
// These values must be kept in sync with the VM's image format.
package rtabi

import "math"

// Cell layout
const (
	// CellSize is the VM's fixed addressable storage unit in bytes.
	// Every scalar (int, bool, char element slot, offset) occupies one cell.
	CellSize = 4

	// CellShift is log2(CellSize).
	CellShift = 2
)

// Size field limits. The loader stores sizes and offsets in signed 32-bit fields.
const (
	// MaxStorageBytes is the largest total byte size a single global may occupy.
	MaxStorageBytes = math.MaxInt32

	// MaxArrayLength is the largest declarable fixed array length.
	MaxArrayLength = math.MaxInt32
)

// Data section layout
const (
	// DataAlign is the alignment of every global in the data section.
	DataAlign = CellSize

	// IVEntrySize is the size of one indirection vector slot (an offset to a sub-array).
	IVEntrySize = CellSize
)

// Align rounds n up to a multiple of CellSize.
func Align(n int64) int64 {
	return (n + CellSize - 1) &^ (CellSize - 1)
}

// CellsOfString returns the number of cells needed to store a character array
// of length n together with its terminator.
func CellsOfString(n int64) int64 {
	return Align(n+1) / CellSize
}
