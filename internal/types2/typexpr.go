package types2

import (
	"github.com/you-not-fish/cellc/internal/sema"
	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
)

// typ evaluates a type expression. It returns nil after reporting an
// error if e does not denote a valid type.
func (c *Checker) typ(e syntax.Expr) types.Type {
	switch e := e.(type) {
	case *syntax.Name:
		return c.typeName(e)
	case *syntax.ArrayType:
		return c.arrayType(e)
	case *syntax.ConstType:
		base := c.typ(e.Base)
		if base == nil {
			return nil
		}
		return c.in.Const(base)
	case *syntax.ParenExpr:
		return c.typ(e.X)
	case *syntax.StructType:
		c.errorf(e.Pos(), UnsupportedConstruct, "unsupported construct: anonymous struct type")
		return nil
	}
	c.errorf(e.Pos(), NotAType, "%s is not a type", syntax.ExprString(e))
	return nil
}

// typeName resolves a type name, resolving its declaration first if it is
// still pending.
func (c *Checker) typeName(name *syntax.Name) types.Type {
	obj := c.resolve(name)
	if obj == nil {
		return nil
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		c.errorf(name.Pos(), NotAType, "%s is not a type", name.Value)
		return nil
	}
	c.typeDecl(tn)
	if t := tn.Type(); t != nil && t != types.Typ[types.Invalid] {
		return t
	}
	c.invalidRef(name.Pos(), "invalid type %s", name.Value)
	return nil
}

// arrayType resolves [N]Elem or []Elem.
func (c *Checker) arrayType(e *syntax.ArrayType) types.Type {
	elem := c.typ(e.Elem)
	if elem == nil {
		return nil
	}
	if types.IsVoid(elem) {
		c.errorf(e.Elem.Pos(), InvalidUseOfVoid, "invalid use of void as array element")
		return nil
	}
	if types.IsArray(elem) && !types.AsArray(elem).HasFixedLength() {
		c.errorf(e.Elem.Pos(), InvalidArrayLength, "array element %s needs a fixed length", elem)
		return nil
	}

	if e.Len == nil {
		return c.in.UnsizedArray(elem)
	}
	n, ok := c.arrayLength(e.Len)
	if !ok {
		return nil
	}
	return c.in.Array(elem, n)
}

// arrayLength evaluates an array length, which must be a positive
// compile-time constant.
func (c *Checker) arrayLength(e syntax.Expr) (int32, bool) {
	x, ok := c.expr(e)
	if !ok {
		return 0, false
	}
	n, ok := sema.ConstantInt32(x)
	if !ok || !types.IsInt32(x.Type()) {
		c.errorf(e.Pos(), InvalidArrayLength, "array length %s must be a constant integer", syntax.ExprString(e))
		return 0, false
	}
	if n <= 0 {
		c.errorf(e.Pos(), InvalidArrayLength, "array length must be positive, got %d", n)
		return 0, false
	}
	return n, true
}

// invalidRef reports a reference to a declaration that failed to check.
// Within one batch the failure itself was already reported, so the
// reference is only reported when it is the first error.
func (c *Checker) invalidRef(pos syntax.Pos, format string, args ...interface{}) {
	if c.errors == 0 {
		c.errorf(pos, InvalidDecl, format, args...)
	}
}
