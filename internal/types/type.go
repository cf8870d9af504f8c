// Package types implements the type system for cellc.
// Types form a closed set of variants (Basic, Qualified, Array, Struct, Func)
// and are created through an Interner, so type equality is pointer identity.
package types

// Type is the interface implemented by all types.
type Type interface {
	// String returns a human-readable representation of the type.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}
