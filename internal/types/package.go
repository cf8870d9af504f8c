package types

import "github.com/you-not-fish/cellc/internal/syntax"

// Package represents a checked cellc package.
type Package struct {
	name    string
	scope   *Scope
	globals []*Var     // package-level variables in declaration order
	funcs   []*FuncObj // package-level functions in declaration order
	structs []*Struct  // declared struct types in declaration order
}

// NewPackage creates a new package with the given name.
func NewPackage(name string) *Package {
	return &Package{
		name:  name,
		scope: NewScope(Universe, syntax.NoPos, "package "+name),
	}
}

// Name returns the package name.
func (p *Package) Name() string {
	return p.name
}

// Scope returns the package-level scope.
func (p *Package) Scope() *Scope {
	return p.scope
}

// Globals returns the package-level variables in declaration order.
func (p *Package) Globals() []*Var {
	return p.globals
}

// Funcs returns the package-level functions in declaration order.
func (p *Package) Funcs() []*FuncObj {
	return p.funcs
}

// Structs returns the declared struct types in declaration order.
func (p *Package) Structs() []*Struct {
	return p.structs
}

// AddGlobal records a package-level variable.
func (p *Package) AddGlobal(v *Var) {
	p.globals = append(p.globals, v)
}

// AddFunc records a package-level function.
func (p *Package) AddFunc(f *FuncObj) {
	p.funcs = append(p.funcs, f)
}

// AddStruct records a declared struct type.
func (p *Package) AddStruct(s *Struct) {
	p.structs = append(p.structs, s)
}

// String returns the package name.
func (p *Package) String() string {
	return p.name
}
