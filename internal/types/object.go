package types

import "github.com/you-not-fish/cellc/internal/syntax"

// Object represents a declared entity: variable, field, parameter, type name,
// or function. Objects implement syntax.Symbol so that names can be bound to
// them directly.
type Object interface {
	Name() string    // object name
	Type() Type      // object type
	Pos() syntax.Pos // declaration position
	Parent() *Scope  // enclosing scope

	setParent(*Scope) // internal: set parent scope
	aObject()         // marker method to restrict implementations
}

// object is the base struct for all objects.
type object struct {
	name   string
	typ    Type
	pos    syntax.Pos
	parent *Scope
}

func (o *object) Name() string       { return o.name }
func (o *object) Type() Type         { return o.typ }
func (o *object) Pos() syntax.Pos    { return o.pos }
func (o *object) Parent() *Scope     { return o.parent }
func (o *object) setParent(s *Scope) { o.parent = s }
func (*object) aObject()             {}

// VarKind distinguishes the roles a Var can play.
type VarKind int

const (
	GlobalVar VarKind = iota // package-level variable
	ParamVar                 // function parameter
	FieldVar                 // struct field
)

// Var represents a variable, parameter, or struct field.
// Its type is the declared type and may be const-qualified.
type Var struct {
	object
	kind  VarKind
	index int // field index within its struct; -1 otherwise
}

// NewVar creates a new global variable object.
func NewVar(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, index: -1}
}

// NewParam creates a new parameter object.
func NewParam(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, kind: ParamVar, index: -1}
}

// NewField creates a new struct field object.
// Its index is assigned when the field becomes part of a struct body.
func NewField(pos syntax.Pos, name string, typ Type) *Var {
	return &Var{object: object{name: name, typ: typ, pos: pos}, kind: FieldVar, index: -1}
}

// Kind returns the variable kind.
func (v *Var) Kind() VarKind {
	return v.kind
}

// IsField reports whether this variable is a struct field.
func (v *Var) IsField() bool {
	return v.kind == FieldVar
}

// Index returns the field index, or -1 if v is not a field of a struct.
func (v *Var) Index() int {
	return v.index
}

// SetType sets the variable's type.
// This is called during type checking once the type is resolved.
func (v *Var) SetType(typ Type) {
	v.typ = typ
}

// TypeName represents a declared type name.
type TypeName struct {
	object
}

// NewTypeName creates a new type name object.
func NewTypeName(pos syntax.Pos, name string, typ Type) *TypeName {
	return &TypeName{object: object{name: name, typ: typ, pos: pos}}
}

// SetType sets the type associated with the type name.
// This is used during type checking once the declaration is resolved.
func (t *TypeName) SetType(typ Type) {
	t.typ = typ
}

// FuncObj represents a declared function or struct method.
type FuncObj struct {
	object
	recv *Struct // owning struct for methods, nil for global functions
}

// NewFuncObj creates a new function object. The signature may be nil and set
// later with SetSignature.
func NewFuncObj(pos syntax.Pos, name string, sig *Func) *FuncObj {
	f := &FuncObj{object: object{name: name, pos: pos}}
	if sig != nil {
		f.typ = sig
	}
	return f
}

// NewMethod creates a function object declared inside a struct body.
func NewMethod(pos syntax.Pos, name string, recv *Struct, sig *Func) *FuncObj {
	f := NewFuncObj(pos, name, sig)
	f.recv = recv
	return f
}

// Signature returns the function signature, or nil if not yet resolved.
func (f *FuncObj) Signature() *Func {
	sig, _ := f.typ.(*Func)
	return sig
}

// SetSignature sets the function signature.
func (f *FuncObj) SetSignature(sig *Func) {
	f.typ = sig
}

// Recv returns the owning struct of a method, or nil.
func (f *FuncObj) Recv() *Struct {
	return f.recv
}

// IsGlobal reports whether f is a package-level function.
func (f *FuncObj) IsGlobal() bool {
	return f.recv == nil
}
