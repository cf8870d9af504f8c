package types2

import (
	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
)

// Checker is the type checker.
type Checker struct {
	conf *Config
	info *Info
	pkg  *types.Package
	in   *types.Interner

	scope *types.Scope // package scope

	// Type declarations whose type is resolved on first use, and the
	// ones currently being resolved.
	pending   map[*types.TypeName]*syntax.TypeDecl
	resolving []*types.TypeName

	// Structs that contain themselves by value. They have no layout.
	recursive map[*types.Struct]bool

	// Error tracking
	errors int        // error count
	first  *TypeError // first error
}

func (c *Checker) reset() {
	c.errors = 0
	c.first = nil
}

func (c *Checker) err() error {
	if c.errors > 0 {
		return c.first
	}
	return nil
}

// lookup looks up a name in the current scope chain.
func (c *Checker) lookup(name string) types.Object {
	obj, _ := c.scope.LookupParent(name)
	return obj
}

// declare declares an object in the package scope and binds name to it.
// Reports an error if the name is already declared.
func (c *Checker) declare(name *syntax.Name, obj types.Object) bool {
	if existing := c.scope.Insert(obj); existing != nil {
		c.errorf(name.Pos(), Redeclared, "%s redeclared in this block (previous declaration at %s)", name.Value, existing.Pos())
		return false
	}
	name.Sym = obj
	if c.info != nil {
		c.info.Defs[name] = obj
	}
	return true
}

// resolve returns the object a name refers to, binding it on first use.
// Reports an error if the name is undefined.
func (c *Checker) resolve(name *syntax.Name) types.Object {
	if obj, ok := name.Sym.(types.Object); ok {
		return obj
	}
	obj := c.lookup(name.Value)
	if obj == nil {
		c.errorf(name.Pos(), Undefined, "undefined: %s", name.Value)
		return nil
	}
	name.Sym = obj
	if c.info != nil {
		c.info.Uses[name] = obj
	}
	return obj
}
