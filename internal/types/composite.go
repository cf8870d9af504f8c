package types

import (
	"strconv"
	"strings"
)

// Qualified represents a const-qualified type: const Base.
type Qualified struct {
	typ
	base Type
}

// Base returns the unqualified type.
func (q *Qualified) Base() Type {
	return q.base
}

// String implements Type.
func (q *Qualified) String() string {
	return "const " + q.base.String()
}

// Array represents an array type [N]Elem, or []Elem when the length is not
// fixed. Only fixed-length arrays are contiguously stored.
type Array struct {
	typ
	elem  Type
	len   int32
	fixed bool
}

// Elem returns the array element type.
func (a *Array) Elem() Type {
	return a.elem
}

// HasFixedLength reports whether the array length is statically known.
func (a *Array) HasFixedLength() bool {
	return a.fixed
}

// Len returns the fixed array length.
// It panics if the array has no fixed length.
func (a *Array) Len() int32 {
	if !a.fixed {
		panic("types: Len of unsized array " + a.String())
	}
	return a.len
}

// String implements Type.
func (a *Array) String() string {
	if !a.fixed {
		return "[]" + a.elem.String()
	}
	return "[" + strconv.Itoa(int(a.len)) + "]" + a.elem.String()
}

// Struct represents a named, field-ordered aggregate. Its body holds the
// declared fields (*Var) and methods (*FuncObj) in declaration order.
// Struct types are nominal: every NewStruct call creates a distinct type.
type Struct struct {
	typ
	name   string
	body   []Object
	fields []*Var // fields of body, in order
}

// Name returns the declared struct name.
func (s *Struct) Name() string {
	return s.name
}

// SetBody sets the struct members. It is called once the member types are
// resolved. Objects other than fields and methods are ignored.
func (s *Struct) SetBody(body []Object) {
	s.body = body
	s.fields = s.fields[:0]
	for _, m := range body {
		if f, ok := m.(*Var); ok && f.IsField() {
			f.index = len(s.fields)
			s.fields = append(s.fields, f)
		}
	}
}

// Body returns all members in declaration order.
func (s *Struct) Body() []Object {
	return s.body
}

// NumFields returns the number of fields, excluding methods.
func (s *Struct) NumFields() int {
	return len(s.fields)
}

// Field returns the i'th field, skipping methods.
func (s *Struct) Field(i int) *Var {
	return s.fields[i]
}

// Fields returns all fields in declaration order.
func (s *Struct) Fields() []*Var {
	return s.fields
}

// FieldIndex returns the index of the field with the given name, or -1.
func (s *Struct) FieldIndex(name string) int {
	for i, f := range s.fields {
		if f.Name() == name {
			return i
		}
	}
	return -1
}

// LookupMethod returns the method with the given name, or nil.
func (s *Struct) LookupMethod(name string) *FuncObj {
	for _, m := range s.body {
		if fn, ok := m.(*FuncObj); ok && fn.Name() == name {
			return fn
		}
	}
	return nil
}

// String implements Type.
func (s *Struct) String() string {
	return s.name
}

// Describe returns the struct with its members spelled out.
func (s *Struct) Describe() string {
	var buf strings.Builder
	buf.WriteString("struct ")
	buf.WriteString(s.name)
	buf.WriteString(" {")
	for i, m := range s.body {
		if i > 0 {
			buf.WriteString(";")
		}
		buf.WriteString(" ")
		switch m := m.(type) {
		case *Var:
			buf.WriteString(m.Name())
			buf.WriteString(" ")
			buf.WriteString(m.Type().String())
		case *FuncObj:
			buf.WriteString("func ")
			buf.WriteString(m.Name())
			if sig := m.Signature(); sig != nil {
				buf.WriteString(sig.signatureString())
			}
		}
	}
	buf.WriteString(" }")
	return buf.String()
}

// Func represents a function signature.
type Func struct {
	typ
	params []*Var
	result Type // Typ[Void] when the function returns nothing
}

// Params returns the parameter list.
func (f *Func) Params() []*Var {
	return f.params
}

// NumParams returns the number of parameters.
func (f *Func) NumParams() int {
	return len(f.params)
}

// Param returns the parameter at index i.
func (f *Func) Param(i int) *Var {
	return f.params[i]
}

// Result returns the result type.
func (f *Func) Result() Type {
	return f.result
}

// String implements Type.
func (f *Func) String() string {
	return "func" + f.signatureString()
}

func (f *Func) signatureString() string {
	var buf strings.Builder
	buf.WriteString("(")
	for i, p := range f.params {
		if i > 0 {
			buf.WriteString(", ")
		}
		if p.Name() != "" {
			buf.WriteString(p.Name())
			buf.WriteString(" ")
		}
		buf.WriteString(p.Type().String())
	}
	buf.WriteString(")")
	if f.result != Typ[Void] {
		buf.WriteString(" ")
		buf.WriteString(f.result.String())
	}
	return buf.String()
}
