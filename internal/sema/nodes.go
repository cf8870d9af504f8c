// Package sema defines the typed expression tree produced by semantic
// analysis. Every node carries its resolved type and the syntax node it was
// built from.
package sema

import (
	"math"

	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
)

// Expr is the interface implemented by all typed expressions.
type Expr interface {
	// Type returns the type of the value the expression produces.
	// It never carries a top-level const qualifier.
	Type() types.Type

	// Src returns the syntax node the expression was built from.
	Src() syntax.Node

	aExpr()
}

// LValue is implemented by expressions that denote a storage location.
// Only Var and Index are lvalues.
type LValue interface {
	Expr

	// StoredType returns the declared type of the location, including any
	// const qualifier.
	StoredType() types.Type

	aLValue()
}

type expr struct {
	src syntax.Node
	typ types.Type
}

func (e *expr) Type() types.Type { return e.typ }
func (e *expr) Src() syntax.Node { return e.src }
func (*expr) aExpr()             {}

// ConstValue is a 32-bit integer constant.
type ConstValue struct {
	expr
	Value int32
}

// NewConstValue returns an int constant of type typ.
func NewConstValue(src syntax.Node, typ types.Type, v int32) *ConstValue {
	return &ConstValue{expr: expr{src: src, typ: typ}, Value: v}
}

// Var is a reference to a variable or parameter.
type Var struct {
	expr
	Obj *types.Var
}

// NewVar returns a reference to obj. Its value type is the declared type
// without qualifiers.
func NewVar(src syntax.Node, obj *types.Var) *Var {
	return &Var{expr: expr{src: src, typ: types.Unqualified(obj.Type())}, Obj: obj}
}

func (v *Var) StoredType() types.Type { return v.Obj.Type() }
func (*Var) aLValue()                 {}

// NamedFunction is a direct reference to a global function, only valid as
// the callee of a Call.
type NamedFunction struct {
	expr
	Func *types.FuncObj
}

// NewNamedFunction returns a reference to fn; its type is fn's signature.
func NewNamedFunction(src syntax.Node, fn *types.FuncObj) *NamedFunction {
	return &NamedFunction{expr: expr{src: src, typ: fn.Signature()}, Func: fn}
}

// Binary is a binary operation. Both operands have the same type.
type Binary struct {
	expr
	Op syntax.Token
	X  Expr
	Y  Expr
}

// NewBinary returns the operation x op y of type typ.
func NewBinary(src syntax.Node, typ types.Type, op syntax.Token, x, y Expr) *Binary {
	return &Binary{expr: expr{src: src, typ: typ}, Op: op, X: x, Y: y}
}

// Unary is a prefix operation: -x, ~x, or !x.
type Unary struct {
	expr
	Op syntax.Token
	X  Expr
}

// NewUnary returns the operation op x of type typ.
func NewUnary(src syntax.Node, typ types.Type, op syntax.Token, x Expr) *Unary {
	return &Unary{expr: expr{src: src, typ: typ}, Op: op, X: x}
}

// Call is a call of a global function.
type Call struct {
	expr
	Fun  *NamedFunction
	Args []Expr // coerced to the parameter types
}

// NewCall returns a call of fun with the given arguments; its type is the
// function's result type.
func NewCall(src syntax.Node, fun *NamedFunction, args []Expr) *Call {
	return &Call{expr: expr{src: src, typ: types.AsFunction(fun.Type()).Result()}, Fun: fun, Args: args}
}

// Index is an array element access X[Index].
type Index struct {
	expr
	X      Expr
	Index  Expr
	stored types.Type
}

// NewIndex returns the element access base[index]. elem is the declared
// element type of the array and may be const-qualified.
func NewIndex(src syntax.Node, elem types.Type, base, index Expr) *Index {
	return &Index{expr: expr{src: src, typ: types.Unqualified(elem)}, X: base, Index: index, stored: elem}
}

func (x *Index) StoredType() types.Type { return x.stored }
func (*Index) aLValue()                 {}

// IncDec is ++x, --x, x++ or x--.
type IncDec struct {
	expr
	Op      syntax.Token // syntax.Inc or syntax.Dec
	X       LValue
	Postfix bool
}

// NewIncDec returns the increment or decrement of x.
func NewIncDec(src syntax.Node, typ types.Type, op syntax.Token, x LValue, postfix bool) *IncDec {
	return &IncDec{expr: expr{src: src, typ: typ}, Op: op, X: x, Postfix: postfix}
}

// String is a string literal. Its type is [n]const char where n is the
// stored length including the terminator.
type String struct {
	expr
	Value string
}

// NewString returns a string literal of type typ.
func NewString(src syntax.Node, typ types.Type, value string) *String {
	return &String{expr: expr{src: src, typ: typ}, Value: value}
}

// StoredLen returns the literal length including its terminator.
func (s *String) StoredLen() int {
	return len(s.Value) + 1
}

// StructInit is a validated struct initializer. Values has one entry per
// field in declaration order; a nil entry asks the backend for the field's
// default value.
type StructInit struct {
	expr
	Struct *types.Struct
	Values []Expr
}

// NewStructInit returns an initializer for st.
func NewStructInit(src syntax.Node, st *types.Struct, values []Expr) *StructInit {
	return &StructInit{expr: expr{src: src, typ: st}, Struct: st, Values: values}
}

// AsLValue returns e as an LValue if it denotes a storage location.
func AsLValue(e Expr) (LValue, bool) {
	lv, ok := e.(LValue)
	return lv, ok
}

// ConstantInt32 reports the value of e if it is a compile-time integer
// constant: a ConstValue, or unary minus or bitwise not applied to one.
// A negation that does not fit 32 bits is not a constant.
func ConstantInt32(e Expr) (int32, bool) {
	switch e := e.(type) {
	case *ConstValue:
		return e.Value, true
	case *Unary:
		v, ok := ConstantInt32(e.X)
		if !ok {
			return 0, false
		}
		switch e.Op {
		case syntax.Sub:
			if v == math.MinInt32 {
				return 0, false
			}
			return -v, true
		case syntax.Tilde:
			return ^v, true
		}
	}
	return 0, false
}
