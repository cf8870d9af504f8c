package types

import (
	"fmt"

	"github.com/pkg/errors"
	"modernc.org/mathutil"

	"github.com/you-not-fish/cellc/internal/rtabi"
)

var (
	// ErrStorageOverflow is returned when a layout does not fit the VM's
	// signed 32-bit size fields.
	ErrStorageOverflow = errors.New("storage size overflows 32-bit range")

	// ErrNotContiguous is returned when a layout is requested for a type
	// without a static footprint.
	ErrNotContiguous = errors.New("type is not contiguously stored")

	// ErrRecursiveType is returned when a struct contains itself by value.
	ErrRecursiveType = errors.New("struct contains itself")
)

// StorageInfo describes the memory footprint of a contiguously stored type.
// Bytes is always IVSize + DataSize.
type StorageInfo struct {
	Base     Type  // the type the layout was computed for
	Bytes    int32 // total bytes to allocate
	IVSize   int32 // bytes of indirection vectors
	DataSize int32 // bytes of final-dimension data
}

func (si StorageInfo) String() string {
	return fmt.Sprintf("%s: bytes=%d iv=%d data=%d", si.Base, si.Bytes, si.IVSize, si.DataSize)
}

// storageNode is a work item of the layout traversal. A descend node visits
// typ; a completion node (descend == false) combines the results of an
// array level once its element subtree is done, or closes a struct.
type storageNode struct {
	descend bool
	typ     Type
}

// ivFrame is a partial indirection vector total. Frames of array levels are
// arrayLike; a frame that saw a scalar or a struct is irregular.
type ivFrame struct {
	arrayLike bool
	size      int64
}

// layout holds the traversal state of one ComputeStorage call.
type layout struct {
	base  Type
	q     []storageNode
	bytes []int64
	ivs   []ivFrame

	open map[*Struct]bool // structs on the current path
}

// ComputeStorage computes the footprint of a fixed-length array or struct.
//
// The type graph is walked iteratively, so nesting depth is bounded only by
// memory. Every addition and multiplication is overflow checked and running
// totals are kept within the 32-bit range; on failure no partial result is
// returned and the error wraps ErrStorageOverflow.
func ComputeStorage(t Type) (StorageInfo, error) {
	if !IsContiguouslyStored(t) {
		return StorageInfo{}, errors.Wrapf(ErrNotContiguous, "layout of %s", t)
	}

	l := &layout{
		base:  t,
		q:     []storageNode{{descend: true, typ: Unqualified(t)}},
		bytes: []int64{0},
		ivs:   []ivFrame{{arrayLike: true}},
	}

	for len(l.q) > 0 {
		n := l.q[len(l.q)-1]
		l.q = l.q[:len(l.q)-1]

		var err error
		switch t := n.typ.(type) {
		case *Struct:
			if n.descend {
				err = l.visit(t)
			} else {
				delete(l.open, t)
			}
		case *Array:
			if n.descend {
				err = l.visit(t)
			} else {
				err = l.complete(t)
			}
		default:
			err = l.visit(t)
		}
		if err != nil {
			return StorageInfo{}, err
		}
	}

	if !l.topIV().arrayLike {
		l.popIV()
	}
	data := l.popBytes()
	iv := l.popIV().size
	if len(l.bytes) != 0 || len(l.ivs) != 0 {
		panic("types: unbalanced layout stacks for " + t.String())
	}
	if data <= 0 {
		panic("types: empty layout for " + t.String())
	}

	total, err := l.add(data, iv)
	if err != nil {
		return StorageInfo{}, err
	}
	return StorageInfo{Base: t, Bytes: int32(total), IVSize: int32(iv), DataSize: int32(data)}, nil
}

// visit handles a descend node.
func (l *layout) visit(t Type) error {
	t = Unqualified(t)

	if !IsContiguouslyStored(t) {
		// scalar leaf: one cell, and the enclosing frame becomes irregular
		sum, err := l.add(l.bytes[len(l.bytes)-1], rtabi.CellSize)
		if err != nil {
			return err
		}
		l.bytes[len(l.bytes)-1] = sum
		if l.topIV().arrayLike {
			l.ivs = append(l.ivs, ivFrame{})
		}
		return nil
	}

	switch t := t.(type) {
	case *Array:
		if IsCharArray(t) {
			// Strings are never indirected.
			size, err := l.mul(rtabi.CellsOfString(int64(t.len)), rtabi.CellSize)
			if err != nil {
				return err
			}
			sum, err := l.add(l.bytes[len(l.bytes)-1], size)
			if err != nil {
				return err
			}
			l.bytes[len(l.bytes)-1] = sum
			return nil
		}
		l.q = append(l.q, storageNode{descend: false, typ: t}, storageNode{descend: true, typ: t.elem})
		l.bytes = append(l.bytes, 0)
		l.ivs = append(l.ivs, ivFrame{arrayLike: true})

	case *Struct:
		if l.open[t] {
			return errors.Wrapf(ErrRecursiveType, "layout of %s: %s", l.base, t.name)
		}
		if l.open == nil {
			l.open = make(map[*Struct]bool)
		}
		l.open[t] = true
		l.q = append(l.q, storageNode{descend: false, typ: t})
		for _, f := range t.fields {
			l.q = append(l.q, storageNode{descend: true, typ: f.Type()})
		}
		if l.topIV().arrayLike {
			l.ivs = append(l.ivs, ivFrame{})
		}
	}
	return nil
}

// complete combines a finished array level of length L into its parent:
// the element bytes and iv are multiplied by L, and unless the element was a
// leaf scalar, L more iv slots address the sub-arrays.
func (l *layout) complete(a *Array) error {
	length := int64(a.len)

	bytes, err := l.mul(l.popBytes(), length)
	if err != nil {
		return err
	}
	if l.bytes[len(l.bytes)-1], err = l.add(l.bytes[len(l.bytes)-1], bytes); err != nil {
		return err
	}

	innermost := false
	child := l.popIV()
	if !child.arrayLike {
		innermost = true
		child = l.popIV()
	}
	if !l.topIV().arrayLike {
		l.popIV()
	}

	childIV, err := l.mul(child.size, length)
	if err != nil {
		return err
	}
	top := &l.ivs[len(l.ivs)-1]
	if top.size, err = l.add(top.size, childIV); err != nil {
		return err
	}
	if !innermost {
		slots, err := l.mul(length, rtabi.IVEntrySize)
		if err != nil {
			return err
		}
		if top.size, err = l.add(top.size, slots); err != nil {
			return err
		}
	}
	return nil
}

func (l *layout) topIV() ivFrame {
	return l.ivs[len(l.ivs)-1]
}

func (l *layout) popIV() ivFrame {
	f := l.ivs[len(l.ivs)-1]
	l.ivs = l.ivs[:len(l.ivs)-1]
	return f
}

func (l *layout) popBytes() int64 {
	b := l.bytes[len(l.bytes)-1]
	l.bytes = l.bytes[:len(l.bytes)-1]
	return b
}

// add returns a + b, failing if the sum leaves the 32-bit size range.
func (l *layout) add(a, b int64) (int64, error) {
	sum, ovf := mathutil.AddOverflowInt64(a, b)
	if ovf || sum > rtabi.MaxStorageBytes {
		return 0, errors.Wrapf(ErrStorageOverflow, "layout of %s: %d + %d", l.base, a, b)
	}
	return sum, nil
}

// mul returns a * b, failing if the product leaves the 32-bit size range.
func (l *layout) mul(a, b int64) (int64, error) {
	prod, ovf := mathutil.MulOverflowInt64(a, b)
	if ovf || prod > rtabi.MaxStorageBytes {
		return 0, errors.Wrapf(ErrStorageOverflow, "layout of %s: %d * %d", l.base, a, b)
	}
	return prod, nil
}

// SizeOfArrayLiteral returns the bytes of a one-dimensional fixed array
// literal: whole cells for a char array including its terminator, one cell
// per element otherwise.
func SizeOfArrayLiteral(a *Array) (int32, error) {
	cells := int64(a.Len())
	if IsCharArray(a) {
		cells = rtabi.CellsOfString(cells)
	}
	size, ovf := mathutil.MulOverflowInt64(cells, rtabi.CellSize)
	if ovf || size > rtabi.MaxStorageBytes {
		return 0, errors.Wrapf(ErrStorageOverflow, "array literal %s", a)
	}
	return int32(size), nil
}

// OffsetOf returns the byte offset of field n of s: the sum of the sizes of
// the preceding fields, skipping methods. n == s.NumFields() is valid and
// yields the size of the whole struct.
func OffsetOf(s *Struct, n int) (int32, error) {
	return offsetOf(s, n, ComputeStorage)
}

// SizeOfStruct returns the total field size of s, equal to
// OffsetOf(s, s.NumFields()).
func SizeOfStruct(s *Struct) (int32, error) {
	return OffsetOf(s, s.NumFields())
}

func offsetOf(s *Struct, n int, storage func(Type) (StorageInfo, error)) (int32, error) {
	if n < 0 || n > len(s.fields) {
		panic(fmt.Sprintf("types: field index %d out of range for %s", n, s.name))
	}

	var off int64
	for _, f := range s.fields[:n] {
		size, err := fieldSize(f.Type(), storage)
		if err != nil {
			return 0, errors.Wrapf(err, "offset of %s.%s", s.name, f.Name())
		}
		sum, ovf := mathutil.AddOverflowInt64(off, int64(size))
		if ovf || sum > rtabi.MaxStorageBytes {
			return 0, errors.Wrapf(ErrStorageOverflow, "offset of field %d in %s", n, s.name)
		}
		off = sum
	}
	return int32(off), nil
}

// fieldSize returns the bytes a struct field occupies: one cell for a
// scalar, the literal size for a flat array, the full layout otherwise.
func fieldSize(t Type, storage func(Type) (StorageInfo, error)) (int32, error) {
	if !IsContiguouslyStored(t) {
		return rtabi.CellSize, nil
	}
	if a, ok := Unqualified(t).(*Array); ok && (IsCharArray(a) || !IsContiguouslyStored(a.elem)) {
		return SizeOfArrayLiteral(a)
	}
	info, err := storage(t)
	if err != nil {
		return 0, err
	}
	return info.Bytes, nil
}
