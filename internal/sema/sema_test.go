package sema

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
)

var (
	intType  = types.Typ[types.Int32]
	boolType = types.Typ[types.Bool]
)

func src() syntax.Node { return &syntax.Name{Value: "_"} }

func constInt(v int32) *ConstValue { return NewConstValue(src(), intType, v) }

func TestConstantInt32(t *testing.T) {
	x := NewVar(src(), types.NewVar(syntax.NoPos, "x", intType))

	tests := []struct {
		name string
		e    Expr
		want int32
		ok   bool
	}{
		{"literal", constInt(42), 42, true},
		{"neg", NewUnary(src(), intType, syntax.Sub, constInt(7)), -7, true},
		{"not", NewUnary(src(), intType, syntax.Tilde, constInt(0)), -1, true},
		{"neg_neg", NewUnary(src(), intType, syntax.Sub, NewUnary(src(), intType, syntax.Sub, constInt(3))), 3, true},
		{"neg_min", NewUnary(src(), intType, syntax.Sub, constInt(math.MinInt32)), 0, false},
		{"logical_not", NewUnary(src(), boolType, syntax.Not, constInt(1)), 0, false},
		{"var", x, 0, false},
		{"neg_var", NewUnary(src(), intType, syntax.Sub, x), 0, false},
		{"binary", NewBinary(src(), intType, syntax.Add, constInt(1), constInt(2)), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ConstantInt32(tt.e)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ConstantInt32 = %d, %v; want %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLValues(t *testing.T) {
	in := types.NewInterner()
	cint := in.Const(intType)

	obj := types.NewVar(syntax.NoPos, "limit", cint)
	v := NewVar(src(), obj)
	if v.Type() != intType {
		t.Errorf("Var.Type() = %s, want int", v.Type())
	}
	if v.StoredType() != cint {
		t.Errorf("Var.StoredType() = %s, want const int", v.StoredType())
	}

	arr := types.NewVar(syntax.NoPos, "a", in.Array(cint, 4))
	idx := NewIndex(src(), cint, NewVar(src(), arr), constInt32(1))
	if idx.Type() != intType || idx.StoredType() != cint {
		t.Errorf("Index types = %s / %s", idx.Type(), idx.StoredType())
	}

	for _, e := range []Expr{v, idx} {
		if _, ok := AsLValue(e); !ok {
			t.Errorf("%s is not an lvalue", ExprString(e))
		}
	}
	for _, e := range []Expr{constInt32(1), NewString(src(), in.Array(in.Const(types.Typ[types.Char]), 3), "hi")} {
		if _, ok := AsLValue(e); ok {
			t.Errorf("%s is an lvalue", ExprString(e))
		}
	}
}

func constInt32(v int32) Expr { return constInt(v) }

func TestExprString(t *testing.T) {
	in := types.NewInterner()
	x := types.NewVar(syntax.NoPos, "x", intType)
	a := types.NewVar(syntax.NoPos, "a", in.Array(intType, 3))
	p := types.NewParam(syntax.NoPos, "p", intType)
	f := types.NewFuncObj(syntax.NoPos, "f", types.NewFunc([]*types.Var{p}, intType))
	fn := NewNamedFunction(src(), f)

	tests := []struct {
		e    Expr
		want string
	}{
		{NewBinary(src(), intType, syntax.Add, NewVar(src(), x), constInt(1)), "(+ x 1)"},
		{NewUnary(src(), boolType, syntax.Not, NewVar(src(), x)), "(! x)"},
		{NewCall(src(), fn, []Expr{constInt(2)}), "(call f 2)"},
		{NewIndex(src(), intType, NewVar(src(), a), NewVar(src(), x)), "(index a x)"},
		{NewIncDec(src(), intType, syntax.Inc, NewVar(src(), x), true), "(post++ x)"},
		{NewIncDec(src(), intType, syntax.Dec, NewVar(src(), x), false), "(pre-- x)"},
		{NewString(src(), in.Array(in.Const(types.Typ[types.Char]), 3), "hi"), `"hi"`},
	}

	for _, tt := range tests {
		if got := ExprString(tt.e); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}

func TestCallType(t *testing.T) {
	f := types.NewFuncObj(syntax.NoPos, "g", types.NewFunc(nil, nil))
	call := NewCall(src(), NewNamedFunction(src(), f), nil)
	if !types.IsVoid(call.Type()) {
		t.Errorf("call type = %s, want void", call.Type())
	}
}

func TestFprint(t *testing.T) {
	in := types.NewInterner()
	st := types.NewStruct("Point")
	st.SetBody([]types.Object{
		types.NewField(syntax.NoPos, "x", intType),
		types.NewField(syntax.NoPos, "y", intType),
		types.NewField(syntax.NoPos, "name", in.Array(types.Typ[types.Char], 8)),
	})
	str := NewString(src(), in.Array(in.Const(types.Typ[types.Char]), 3), "pt")
	init := NewStructInit(src(), st, []Expr{constInt(1), nil, str})

	var buf bytes.Buffer
	Fprint(&buf, init)

	want := strings.Join([]string{
		"StructInit Point",
		"  x:",
		"    ConstValue 1 <int>",
		"  y:",
		"    <default>",
		"  name:",
		`    String "pt" <[3]const char>`,
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("Fprint:\n%s\nwant:\n%s", got, want)
	}
	if got := ExprString(init); got != `{x: 1, y: _, name: "pt"}` {
		t.Errorf("String = %s", got)
	}
	if str.StoredLen() != 3 {
		t.Errorf("StoredLen = %d, want 3", str.StoredLen())
	}
}

func TestFprintNested(t *testing.T) {
	x := types.NewVar(syntax.NoPos, "x", intType)
	e := NewBinary(src(), boolType, syntax.Lss, NewVar(src(), x), NewUnary(src(), intType, syntax.Sub, constInt(1)))

	var buf bytes.Buffer
	Fprint(&buf, e)
	want := "Binary < <bool>\n  Var x <int>\n  Unary - <int>\n    ConstValue 1 <int>\n"
	if got := buf.String(); got != want {
		t.Errorf("Fprint:\n%s\nwant:\n%s", got, want)
	}
}
