package types2

import (
	"math"
	"strconv"

	"github.com/you-not-fish/cellc/internal/rtabi"
	"github.com/you-not-fish/cellc/internal/sema"
	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
)

// expr lowers a syntax expression to a typed expression. On failure it has
// reported at least one error and returns false.
func (c *Checker) expr(e syntax.Expr) (sema.Expr, bool) {
	switch e := e.(type) {
	case *syntax.BasicLit:
		switch e.Kind {
		case syntax.IntLit:
			return c.intLit(e, e.Value, e)
		case syntax.StringLit:
			return c.stringLit(e)
		}
	case *syntax.Name:
		return c.name(e)
	case *syntax.Operation:
		if e.Y == nil {
			return c.unary(e)
		}
		return c.binary(e)
	case *syntax.CallExpr:
		return c.call(e)
	case *syntax.IndexExpr:
		return c.index(e)
	case *syntax.IncDecExpr:
		return c.incDec(e)
	case *syntax.ParenExpr:
		return c.expr(e.X)
	}
	c.errorf(e.Pos(), UnsupportedConstruct, "unsupported construct: %s", describe(e))
	return nil, false
}

// describe names an expression kind the analyzer does not support.
func describe(e syntax.Expr) string {
	switch e := e.(type) {
	case *syntax.BasicLit:
		return e.Kind.String() + " literal " + e.Value
	case *syntax.SelectorExpr:
		return "selector " + syntax.ExprString(e)
	case *syntax.TernaryExpr:
		return "conditional expression"
	case *syntax.StructInit:
		return "struct initializer outside a variable declaration"
	case *syntax.ArrayType, *syntax.ConstType, *syntax.StructType:
		return "type " + syntax.ExprString(e) + " used as expression"
	}
	return syntax.ExprString(e)
}

// intLit analyzes an integer literal with the given text.
func (c *Checker) intLit(src syntax.Node, text string, lit *syntax.BasicLit) (sema.Expr, bool) {
	v, err := strconv.ParseInt(text, 0, 64)
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		c.errorf(lit.Pos(), IntLiteralOutOfRange, "integer literal %s out of range", text)
		return nil, false
	}
	return sema.NewConstValue(src, types.Typ[types.Int32], int32(v)), true
}

// stringLit analyzes a string literal. Its type is a const char array
// holding the contents and the terminator.
func (c *Checker) stringLit(lit *syntax.BasicLit) (sema.Expr, bool) {
	n := int64(len(lit.Value)) + 1
	if n > rtabi.MaxArrayLength {
		c.errorf(lit.Pos(), LiteralTooLarge, "literal too large: %d bytes", n)
		return nil, false
	}
	typ := c.in.Array(c.in.Const(types.Typ[types.Char]), int32(n))
	return sema.NewString(lit, typ, lit.Value), true
}

// name analyzes a name reference, which must denote a variable.
func (c *Checker) name(e *syntax.Name) (sema.Expr, bool) {
	obj := c.resolve(e)
	if obj == nil {
		return nil, false
	}
	v, ok := obj.(*types.Var)
	if !ok {
		c.errorf(e.Pos(), UnsupportedConstruct, "unsupported construct: %s is not a variable", e.Value)
		return nil, false
	}
	if t := v.Type(); t == nil || t == types.Typ[types.Invalid] {
		c.invalidRef(e.Pos(), "invalid variable %s", e.Value)
		return nil, false
	}
	return sema.NewVar(e, v), true
}

// binary analyzes a binary operation. Logical operators test both
// operands; all others require int operands.
func (c *Checker) binary(e *syntax.Operation) (sema.Expr, bool) {
	x, ok := c.expr(e.X)
	if !ok {
		return nil, false
	}
	y, ok := c.expr(e.Y)
	if !ok {
		return nil, false
	}

	purpose := Operand
	if e.Op.IsLogical() {
		purpose = Test
	}
	if x, ok = c.coerce(coercion{purpose: purpose, expr: x}); !ok {
		return nil, false
	}
	if y, ok = c.coerce(coercion{purpose: purpose, expr: y}); !ok {
		return nil, false
	}
	if x.Type() != y.Type() {
		panic("types2: internal error: operand types " + x.Type().String() + " and " + y.Type().String() + " differ after coercion")
	}

	typ := x.Type()
	if e.Op.IsComparison() || e.Op.IsLogical() {
		typ = types.Typ[types.Bool]
	}
	return sema.NewBinary(e, typ, e.Op, x, y), true
}

// unary analyzes !x, -x and ~x.
func (c *Checker) unary(e *syntax.Operation) (sema.Expr, bool) {
	// A negated literal is a single literal so that the smallest int is
	// expressible.
	if lit, ok := e.X.(*syntax.BasicLit); ok && e.Op == syntax.Sub && lit.Kind == syntax.IntLit {
		return c.intLit(e, "-"+lit.Value, lit)
	}

	x, ok := c.expr(e.X)
	if !ok {
		return nil, false
	}
	purpose := Operand
	if e.Op == syntax.Not {
		purpose = Test
	}
	if x, ok = c.coerce(coercion{purpose: purpose, expr: x}); !ok {
		return nil, false
	}
	return sema.NewUnary(e, x.Type(), e.Op, x), true
}

// index analyzes a[i]. Constant indices are checked against the array
// length when it is known; all other checks are left to the runtime.
func (c *Checker) index(e *syntax.IndexExpr) (sema.Expr, bool) {
	base, ok := c.expr(e.X)
	if !ok {
		return nil, false
	}
	if !types.IsArray(base.Type()) {
		c.errorf(e.X.Pos(), CannotIndexType, "cannot index type %s", base.Type())
		return nil, false
	}
	elem := types.AsArray(base.Type()).Elem()
	if lv, ok := sema.AsLValue(base); ok && types.IsConst(lv.StoredType()) {
		elem = c.in.Const(elem)
	}
	if base, ok = c.coerce(coercion{purpose: RValue, expr: base}); !ok {
		return nil, false
	}

	idx, ok := c.coerce(coercion{purpose: Index, node: e.Index})
	if !ok {
		return nil, false
	}
	if v, ok := sema.ConstantInt32(idx); ok {
		if v < 0 {
			c.errorf(e.Index.Pos(), IndexMustBePositive, "index must be positive, got %d", v)
			return nil, false
		}
		if a := types.AsArray(base.Type()); a.HasFixedLength() && v >= a.Len() {
			c.errorf(e.Index.Pos(), IndexOutOfBounds, "index %d out of bounds for %s", v, a)
			return nil, false
		}
	}
	return sema.NewIndex(e, elem, base, idx), true
}

// incDec analyzes ++x, --x, x++ and x--. The operand must be a mutable
// int location.
func (c *Checker) incDec(e *syntax.IncDecExpr) (sema.Expr, bool) {
	x, ok := c.expr(e.X)
	if !ok {
		return nil, false
	}
	lv, ok := sema.AsLValue(x)
	if !ok {
		c.errorf(e.Pos(), IllegalLValue, "illegal lvalue: cannot %s %s", incDecVerb(e.Op), exprString(e.X))
		return nil, false
	}
	if types.IsConst(lv.StoredType()) {
		c.errorf(e.Pos(), LValueIsConst, "lvalue is const: cannot %s %s", incDecVerb(e.Op), exprString(e.X))
		return nil, false
	}
	if !types.IsInt32(lv.StoredType()) {
		c.errorf(e.Pos(), UnsupportedConstruct, "unsupported construct: %s of %s", incDecVerb(e.Op), lv.StoredType())
		return nil, false
	}
	return sema.NewIncDec(e, types.Typ[types.Int32], e.Op, lv, e.Postfix), true
}

func incDecVerb(op syntax.Token) string {
	if op == syntax.Inc {
		return "increment"
	}
	return "decrement"
}
