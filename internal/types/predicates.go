package types

// Capability predicates look through a top-level const qualifier. The As*
// accessors narrow a type once the matching predicate holds; calling one on
// the wrong kind of type is a programming error and panics.

// Unqualified returns t without a top-level const qualifier.
func Unqualified(t Type) Type {
	if q, ok := t.(*Qualified); ok {
		return q.base
	}
	return t
}

// IsConst reports whether t is const-qualified.
func IsConst(t Type) bool {
	_, ok := t.(*Qualified)
	return ok
}

// IsPrimitive reports whether t is a basic type.
func IsPrimitive(t Type) bool {
	_, ok := Unqualified(t).(*Basic)
	return ok
}

// IsKind reports whether t is the basic type of the given kind.
func IsKind(t Type, kind BasicKind) bool {
	b, ok := Unqualified(t).(*Basic)
	return ok && b.kind == kind
}

// IsInt32 reports whether t is int, ignoring qualifiers.
func IsInt32(t Type) bool { return IsKind(t, Int32) }

// IsBool reports whether t is bool, ignoring qualifiers.
func IsBool(t Type) bool { return IsKind(t, Bool) }

// IsVoid reports whether t is void.
func IsVoid(t Type) bool { return IsKind(t, Void) }

// IsArray reports whether t is an array type.
func IsArray(t Type) bool {
	_, ok := Unqualified(t).(*Array)
	return ok
}

// IsStruct reports whether t is a struct type.
func IsStruct(t Type) bool {
	_, ok := Unqualified(t).(*Struct)
	return ok
}

// IsFunction reports whether t is a function signature.
func IsFunction(t Type) bool {
	_, ok := t.(*Func)
	return ok
}

// IsCharArray reports whether t is an array of char; the element may be
// const-qualified.
func IsCharArray(t Type) bool {
	a, ok := Unqualified(t).(*Array)
	return ok && IsKind(a.elem, Char)
}

// IsContiguouslyStored reports whether t has a statically computable
// footprint: a fixed-length array or a struct.
func IsContiguouslyStored(t Type) bool {
	switch t := Unqualified(t).(type) {
	case *Array:
		return t.fixed
	case *Struct:
		return true
	}
	return false
}

// HasUniformContents reports whether every element of the contiguously
// stored type t has the same type, which holds for arrays only.
func HasUniformContents(t Type) bool {
	return IsArray(t)
}

// AsArray narrows t to its array type.
func AsArray(t Type) *Array {
	a, ok := Unqualified(t).(*Array)
	if !ok {
		panic("types: " + t.String() + " is not an array")
	}
	return a
}

// AsStruct narrows t to its struct type.
func AsStruct(t Type) *Struct {
	s, ok := Unqualified(t).(*Struct)
	if !ok {
		panic("types: " + t.String() + " is not a struct")
	}
	return s
}

// AsFunction narrows t to its function signature.
func AsFunction(t Type) *Func {
	f, ok := t.(*Func)
	if !ok {
		panic("types: " + t.String() + " is not a function")
	}
	return f
}

// AsBasic narrows t to its basic type.
func AsBasic(t Type) *Basic {
	b, ok := Unqualified(t).(*Basic)
	if !ok {
		panic("types: " + t.String() + " is not a basic type")
	}
	return b
}
