package types

import (
	"fmt"
	"sync"
)

// An Interner creates composite types so that structurally equal types are
// the same pointer. Types from different Interners must not be mixed.
//
// An Interner is safe for concurrent use.
type Interner struct {
	mu     sync.Mutex
	consts map[Type]*Qualified
	arrays map[arrayKey]*Array
}

type arrayKey struct {
	elem  Type
	len   int32
	fixed bool
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{
		consts: make(map[Type]*Qualified),
		arrays: make(map[arrayKey]*Array),
	}
}

// constBasic holds the const-qualified basic types, shared by every
// Interner so that predeclared objects can use them.
var constBasic = func() []*Qualified {
	qs := make([]*Qualified, len(Typ))
	for i, b := range Typ {
		qs[i] = &Qualified{base: b}
	}
	return qs
}()

// Const returns the const-qualified form of base.
// Qualifying an already const type returns it unchanged.
func (in *Interner) Const(base Type) Type {
	switch b := base.(type) {
	case *Qualified:
		return b
	case *Basic:
		return constBasic[b.kind]
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if q := in.consts[base]; q != nil {
		return q
	}
	q := &Qualified{base: base}
	in.consts[base] = q
	return q
}

// Array returns the fixed-length array type [n]elem.
// It panics if n is negative; callers validate lengths first.
func (in *Interner) Array(elem Type, n int32) *Array {
	if n < 0 {
		panic(fmt.Sprintf("types: negative array length %d", n))
	}
	return in.array(arrayKey{elem: elem, len: n, fixed: true})
}

// UnsizedArray returns the array type []elem with no fixed length.
func (in *Interner) UnsizedArray(elem Type) *Array {
	return in.array(arrayKey{elem: elem})
}

func (in *Interner) array(key arrayKey) *Array {
	in.mu.Lock()
	defer in.mu.Unlock()
	if a := in.arrays[key]; a != nil {
		return a
	}
	a := &Array{elem: key.elem, len: key.len, fixed: key.fixed}
	in.arrays[key] = a
	return a
}

// NewStruct creates a new struct type with the given name. The members are
// set later with SetBody.
func NewStruct(name string) *Struct {
	return &Struct{name: name}
}

// NewFunc creates a function signature. A nil result means void.
// Signatures belong to their declaration and are not shared.
func NewFunc(params []*Var, result Type) *Func {
	if result == nil {
		result = Typ[Void]
	}
	return &Func{params: params, result: result}
}
