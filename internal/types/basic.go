package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	Int32 // 32-bit signed integer, spelled "int"
	Bool
	Char
	Void
)

// Basic represents a primitive type: int, bool, char, or void.
type Basic struct {
	typ
	kind BasicKind
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Basic types are singletons, so they need no interning.
var Typ = []*Basic{
	Invalid: {kind: Invalid, name: "invalid type"},
	Int32:   {kind: Int32, name: "int"},
	Bool:    {kind: Bool, name: "bool"},
	Char:    {kind: Char, name: "char"},
	Void:    {kind: Void, name: "void"},
}
