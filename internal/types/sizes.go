package types

import (
	"sync"

	"github.com/you-not-fish/cellc/internal/rtabi"
)

// Sizes answers size and offset queries, memoizing layouts by type identity.
// A Sizes is safe for concurrent use. The zero value is not usable; use
// NewSizes.
type Sizes struct {
	mu      sync.Mutex
	storage map[Type]storageResult
}

type storageResult struct {
	info StorageInfo
	err  error
}

// NewSizes returns an empty Sizes cache.
func NewSizes() *Sizes {
	return &Sizes{storage: make(map[Type]storageResult)}
}

// Storage returns the layout of a contiguously stored type.
// Results, including failures, are computed once per type.
func (s *Sizes) Storage(t Type) (StorageInfo, error) {
	key := Unqualified(t)

	s.mu.Lock()
	r, ok := s.storage[key]
	s.mu.Unlock()
	if ok {
		return r.info, r.err
	}

	info, err := ComputeStorage(key)

	s.mu.Lock()
	s.storage[key] = storageResult{info: info, err: err}
	s.mu.Unlock()
	return info, err
}

// Sizeof returns the bytes a value of type t occupies: one cell for scalars,
// the full layout for contiguously stored types.
func (s *Sizes) Sizeof(t Type) (int32, error) {
	if !IsContiguouslyStored(t) {
		return rtabi.CellSize, nil
	}
	info, err := s.Storage(t)
	return info.Bytes, err
}

// Offsetof returns the byte offset of field n of st, as OffsetOf does, using
// the cache for nested layouts.
func (s *Sizes) Offsetof(st *Struct, n int) (int32, error) {
	return offsetOf(st, n, s.Storage)
}

// StructSize returns the total field size of st.
func (s *Sizes) StructSize(st *Struct) (int32, error) {
	return s.Offsetof(st, st.NumFields())
}
