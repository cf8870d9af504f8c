package types2

import (
	"github.com/you-not-fish/cellc/internal/sema"
	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
)

// Purpose names the context an expression is used in. Each purpose has its
// own implicit conversion rules.
type Purpose int

const (
	Arg        Purpose = iota // function argument
	Assignment                // variable initializer
	Operand                   // arithmetic, bitwise, or comparison operand
	Test                      // logical operand
	Index                     // array index
	RValue                    // indexed array base
)

var purposeNames = [...]string{
	Arg:        "argument",
	Assignment: "assignment",
	Operand:    "expression",
	Test:       "test",
	Index:      "index",
	RValue:     "rvalue",
}

func (p Purpose) String() string {
	return purposeNames[p]
}

// A coercion asks for an expression to be converted for a purpose. Either
// expr is set, or node is analyzed first. The target type is only needed
// by Arg and Assignment; the other purposes imply it.
type coercion struct {
	purpose Purpose
	expr    sema.Expr
	node    syntax.Expr
	to      types.Type
}

// coerce applies the conversion rules of req.purpose. On failure it reports
// an error and returns false; the caller must treat the expression as
// invalid.
func (c *Checker) coerce(req coercion) (sema.Expr, bool) {
	x := req.expr
	if x == nil {
		var ok bool
		if x, ok = c.expr(req.node); !ok {
			return nil, false
		}
	}

	switch req.purpose {
	case Arg, Assignment:
		to := types.Unqualified(req.to)
		if s, ok := x.(*sema.String); ok && types.IsCharArray(to) {
			a := types.AsArray(to)
			if a.HasFixedLength() && int64(s.StoredLen()) > int64(a.Len()) {
				c.errorf(s.Src().Pos(), LiteralTooLarge, "literal too large: %d bytes do not fit %s", s.StoredLen(), to)
				return nil, false
			}
			return x, true
		}
		if x.Type() != to {
			c.mismatch(x, to, req.purpose)
			return nil, false
		}
		// Arrays are passed by reference, so a const array only reaches a
		// const target.
		if lv, ok := sema.AsLValue(x); ok && types.IsArray(to) && types.IsConst(lv.StoredType()) && !types.IsConst(req.to) {
			c.errorf(x.Src().Pos(), TypeMismatch, "type mismatch: cannot use %s (type %s) as %s in %s",
				exprString(x.Src()), lv.StoredType(), to, req.purpose)
			return nil, false
		}
		return x, true

	case Operand, Index:
		if types.IsInt32(x.Type()) {
			return x, true
		}
		c.mismatch(x, types.Typ[types.Int32], req.purpose)
		return nil, false

	case Test:
		switch {
		case types.IsBool(x.Type()):
			return x, true
		case types.IsInt32(x.Type()):
			zero := sema.NewConstValue(x.Src(), types.Typ[types.Int32], 0)
			return sema.NewBinary(x.Src(), types.Typ[types.Bool], syntax.Neq, x, zero), true
		}
		c.mismatch(x, types.Typ[types.Bool], req.purpose)
		return nil, false

	case RValue:
		return x, true
	}
	panic("types2: unknown coercion purpose")
}

func (c *Checker) mismatch(x sema.Expr, to types.Type, purpose Purpose) {
	c.errorf(x.Src().Pos(), TypeMismatch, "type mismatch: cannot use %s (type %s) as %s in %s",
		exprString(x.Src()), x.Type(), to, purpose)
}
