package types2

import (
	"strings"
	"testing"

	"github.com/you-not-fish/cellc/internal/sema"
	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
)

// parseSrc parses a complete file, failing the test on syntax errors.
func parseSrc(t *testing.T, src string) *syntax.File {
	t.Helper()
	var errs []string
	p := syntax.NewParser("test.cell", strings.NewReader(src), func(pos syntax.Pos, msg string) {
		errs = append(errs, pos.String()+": "+msg)
	})
	file := p.Parse()
	if len(errs) > 0 {
		t.Fatalf("parse errors:\n%s", strings.Join(errs, "\n"))
	}
	return file
}

// parseAndCheck parses source code and runs the type checker.
// Returns the package, the recorded info, and all reported errors.
func parseAndCheck(t *testing.T, src string) (*types.Package, *Info, []*TypeError) {
	t.Helper()
	file := parseSrc(t, src)

	var errs []*TypeError
	conf := &Config{
		Error: func(err *TypeError) { errs = append(errs, err) },
		Sizes: types.NewSizes(),
	}
	info := &Info{}
	pkg, err := Check("test.cell", file, conf, info)
	if (err == nil) != (len(errs) == 0) {
		t.Fatalf("Check returned %v with %d reported errors", err, len(errs))
	}
	if err != nil && err != errs[0] {
		t.Fatalf("Check returned %v, want first error %v", err, errs[0])
	}
	return pkg, info, errs
}

func errorList(errs []*TypeError) string {
	var lines []string
	for _, e := range errs {
		lines = append(lines, e.Code.String()+" "+e.Error())
	}
	return strings.Join(lines, "\n")
}

// expectNoErrors checks that the source code type-checks without errors.
func expectNoErrors(t *testing.T, src string) (*types.Package, *Info) {
	t.Helper()
	pkg, info, errs := parseAndCheck(t, src)
	if len(errs) > 0 {
		t.Errorf("unexpected errors:\n%s", errorList(errs))
	}
	return pkg, info
}

// expectCodes checks that type-checking reports exactly the given error
// codes, in order.
func expectCodes(t *testing.T, src string, codes ...Code) []*TypeError {
	t.Helper()
	_, _, errs := parseAndCheck(t, src)
	if len(errs) != len(codes) {
		t.Fatalf("got %d errors, want %v:\n%s", len(errs), codes, errorList(errs))
	}
	for i, code := range codes {
		if errs[i].Code != code {
			t.Errorf("error %d: got %s, want %s:\n%s", i, errs[i].Code, code, errorList(errs))
		}
	}
	return errs
}

func TestDeclarations(t *testing.T) {
	pkg, info := expectNoErrors(t, `
package main

type Point struct {
	x int
	y int
	label [8]char
	func norm() int
}

type Row [4]int

var origin Point = {x: 0, y: 0, label: "origin"}
var grid [3]Row
var count int = 10
var ready bool = true
var greeting []char = "hello"

func add(a int, b int) int
func reset()
`)

	if got := pkg.Name(); got != "main" {
		t.Errorf("package name = %s, want main", got)
	}

	var names []string
	for _, g := range pkg.Globals() {
		names = append(names, g.Name()+" "+g.Type().String())
	}
	want := "origin Point, grid [3][4]int, count int, ready bool, greeting []char"
	if got := strings.Join(names, ", "); got != want {
		t.Errorf("globals = %s, want %s", got, want)
	}

	if len(pkg.Funcs()) != 2 || pkg.Funcs()[0].Signature().String() != "func(a int, b int) int" {
		t.Errorf("funcs = %v", pkg.Funcs())
	}
	if !types.IsVoid(pkg.Funcs()[1].Signature().Result()) {
		t.Errorf("reset result = %s, want void", pkg.Funcs()[1].Signature().Result())
	}

	pt := types.AsStruct(pkg.Scope().Lookup("Point").Type())
	if pt.NumFields() != 3 || len(pt.Body()) != 4 {
		t.Errorf("Point has %d fields and %d members", pt.NumFields(), len(pt.Body()))
	}
	if m := pt.LookupMethod("norm"); m == nil || m.Recv() != pt || m.IsGlobal() {
		t.Errorf("norm method = %v", m)
	}
	if len(pkg.Structs()) != 1 || pkg.Structs()[0] != pt {
		t.Errorf("structs = %v", pkg.Structs())
	}

	// Globals without an initializer have no entry.
	if len(info.Inits) != 4 {
		t.Errorf("got %d initializers, want 4", len(info.Inits))
	}
	init := info.Inits[pkg.Globals()[0]]
	if got := sema.ExprString(init); got != `{x: 0, y: 0, label: "origin"}` {
		t.Errorf("origin initializer = %s", got)
	}
}

func TestForwardReferences(t *testing.T) {
	pkg, _ := expectNoErrors(t, `
package main

var p Pair
var cells [2]Cells

type Pair struct {
	left Cell
	right Cell
}

type Cells [3]Cell
type Cell int
`)
	if got := pkg.Globals()[1].Type().String(); got != "[2][3]int" {
		t.Errorf("cells type = %s, want [2][3]int", got)
	}
}

func TestNameBinding(t *testing.T) {
	file := parseSrc(t, `
package main

type T struct { a int }
var n int
var t T = {a: 1}
func f(x int) int
`)
	info := &Info{}
	pkg, err := Check("test.cell", file, &Config{Sizes: types.NewSizes()}, info)
	if err != nil {
		t.Fatal(err)
	}

	n := pkg.Scope().Lookup("n")
	decl := file.Decls[1].(*syntax.VarDecl)
	if decl.Name.Sym != n || info.Defs[decl.Name] != n {
		t.Errorf("n not bound to its declaration")
	}

	tdecl := file.Decls[2].(*syntax.VarDecl)
	if tname := tdecl.Type.(*syntax.Name); tname.Sym != pkg.Scope().Lookup("T") || info.Uses[tname] == nil {
		t.Errorf("type name T not bound")
	}
	pair := tdecl.Value.(*syntax.StructInit).Pairs[0]
	if f, ok := pair.Name.Sym.(*types.Var); !ok || !f.IsField() || f.Name() != "a" {
		t.Errorf("initializer key bound to %v, want field a", pair.Name.Sym)
	}

	fdecl := file.Decls[3].(*syntax.FuncDecl)
	if p, ok := fdecl.Params[0].Name.Sym.(*types.Var); !ok || p.Kind() != types.ParamVar {
		t.Errorf("parameter bound to %v", fdecl.Params[0].Name.Sym)
	}
}

func TestDeclarationErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		codes []Code
	}{
		{"redeclared", "var x int\nvar x bool", []Code{Redeclared}},
		{"redeclared_type", "type x int\nfunc x()", []Code{Redeclared}},
		{"undefined_type", "var x Foo", []Code{Undefined}},
		{"not_a_type", "var y int\nvar x y", []Code{NotAType}},
		{"zero_length", "var a [0]int", []Code{InvalidArrayLength}},
		{"negative_length", "var a [-1]int", []Code{InvalidArrayLength}},
		{"variable_length", "var n int\nvar a [n]int", []Code{InvalidArrayLength}},
		{"bool_length", "var a [true]int", []Code{InvalidArrayLength}},
		{"huge_length", "var a [2147483648]int", []Code{IntLiteralOutOfRange}},
		{"unsized_global", "var a []int", []Code{InvalidArrayLength}},
		{"unsized_char_global", "var s []char", []Code{InvalidArrayLength}},
		{"unsized_elem", "var a [2][]int", []Code{InvalidArrayLength}},
		{"unsized_field", "type S struct { a []int }", []Code{InvalidArrayLength}},
		{"void_var", "var v void", []Code{InvalidUseOfVoid}},
		{"void_param", "func f(a void)", []Code{InvalidUseOfVoid}},
		{"void_field", "type S struct { v void; n int }", []Code{InvalidUseOfVoid}},
		{"void_elem", "var a [2]void", []Code{InvalidUseOfVoid}},
		{"empty_struct", "type E struct {}", []Code{EmptyStruct}},
		{"methods_only", "type E struct { func m() }", []Code{EmptyStruct}},
		{"duplicate_member", "type S struct { a int; a bool }", []Code{Redeclared}},
		{"duplicate_method", "type S struct { a int; func a() }", []Code{Redeclared}},
		{"duplicate_param", "func f(a int, a int)", []Code{Redeclared}},
		{"anonymous_struct", "var s struct { a int }", []Code{UnsupportedConstruct}},
		{"self_recursive", "type S struct { s S }", []Code{InvalidRecursiveType}},
		{"mutual_recursive", "type A struct { b B }\ntype B struct { a [2]A }", []Code{InvalidRecursiveType}},
		{"contains_recursive", "type A struct { a A }\ntype C struct { a A }\nvar c C\nvar cs [2]C", []Code{InvalidRecursiveType}},
		{"alias_cycle", "type X Y\ntype Y X", []Code{InvalidRecursiveType}},
		{"overflow_global", "var big [65536][65536]int", []Code{StorageTooLarge}},
		{"overflow_struct", "type Huge struct { a [1073741824]int }\nvar h Huge", []Code{StorageTooLarge}},
		{"bad_init", "var b bool = 1", []Code{TypeMismatch}},
		{"const_bool_to_int", "var x int = true", []Code{TypeMismatch}},
		{"init_too_large", `var s [2]char = "hi"`, []Code{LiteralTooLarge}},
		{"method_not_global", "type S struct { a int; func m() int }\nvar n int = m()", []Code{Undefined}},
		{"init_needs_struct", "var n int = {a: 1}", []Code{StructInitNeedsStruct}},
		{"init_fields", "type T struct { a int }\nvar t T = {a: 1, a: 2, b: 3}", []Code{StructInitAppearsTwice, StructFieldNotFound}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectCodes(t, "package main\n"+tt.src+"\n", tt.codes...)
		})
	}
}

func TestRecursiveTypeMessage(t *testing.T) {
	errs := expectCodes(t, "package main\ntype A struct { b B }\ntype B struct { a A }\n", InvalidRecursiveType)
	if !strings.Contains(errs[0].Msg, "A -> B -> A") {
		t.Errorf("message = %q, want the cycle spelled out", errs[0].Msg)
	}
}

func TestInvalidInitializerNotRecorded(t *testing.T) {
	file := parseSrc(t, "package main\ntype T struct { a int }\nvar t T = {a: 1, a: 2}\nvar u T = {a: 3}\n")
	info := &Info{}
	pkg, err := Check("test.cell", file, nil, info)
	if err == nil {
		t.Fatal("expected an error")
	}
	if te, ok := err.(*TypeError); !ok || te.Code != StructInitAppearsTwice {
		t.Fatalf("err = %v, want appears twice", err)
	}
	if _, ok := info.Inits[pkg.Globals()[0]]; ok {
		t.Errorf("invalid initializer of t was recorded")
	}
	if _, ok := info.Inits[pkg.Globals()[1]]; !ok {
		t.Errorf("initializer of u was not recorded")
	}
}

func TestIncrementalDecls(t *testing.T) {
	var errs []*TypeError
	conf := &Config{Error: func(err *TypeError) { errs = append(errs, err) }}
	c := NewChecker(conf, types.NewPackage("repl"), &Info{})

	parse := func(src string) []syntax.Decl {
		p := syntax.NewParser("repl", strings.NewReader(src), func(pos syntax.Pos, msg string) {
			t.Fatalf("parse error: %s", msg)
		})
		return p.ParseDecls()
	}

	if err := c.Decls(parse("type T struct { a int; s [4]char }\n")); err != nil {
		t.Fatal(err)
	}
	if err := c.Decls(parse("var t T = {a: 1, s: \"abc\"}\n")); err != nil {
		t.Fatal(err)
	}
	err := c.Decls(parse("var t int\n"))
	if te, ok := err.(*TypeError); !ok || te.Code != Redeclared {
		t.Fatalf("err = %v, want redeclared", err)
	}

	// A failed declaration is reported again when a later batch uses it.
	c.Decls(parse("var bad Missing\n"))
	errs = nil
	if _, err := c.Expr(parseExprSrc(t, "bad")); err == nil {
		t.Fatal("expected an error for a variable with an invalid type")
	}
	if len(errs) != 1 || errs[0].Code != InvalidDecl {
		t.Errorf("errors = %s", errorList(errs))
	}

	if len(c.Package().Globals()) != 2 {
		t.Errorf("got %d globals, want 2", len(c.Package().Globals()))
	}
}

func TestRecursiveStructAcrossBatches(t *testing.T) {
	var errs []*TypeError
	conf := &Config{Error: func(err *TypeError) { errs = append(errs, err) }}
	c := NewChecker(conf, types.NewPackage("repl"), &Info{})

	batches := []struct {
		src  string
		code Code
	}{
		{"type A struct { a A }\n", InvalidRecursiveType},
		{"var x A\n", InvalidDecl},
		{"var xs [2]A\n", InvalidDecl},
		{"type B struct { n int; as [2]A }\n", InvalidDecl},
		{"var y B\n", InvalidDecl},
	}
	for _, b := range batches {
		errs = nil
		decls := syntax.NewParser("repl", strings.NewReader(b.src), nil).ParseDecls()
		c.Decls(decls)
		if len(errs) != 1 || errs[0].Code != b.code {
			t.Errorf("%q: errors = %s, want one %s", b.src, errorList(errs), b.code)
		}
	}

	if n := len(c.Package().Structs()); n != 0 {
		t.Errorf("%d recursive structs registered", n)
	}
	for _, v := range c.Package().Globals() {
		if v.Type() != types.Typ[types.Invalid] {
			t.Errorf("%s has type %s, want invalid", v.Name(), v.Type())
		}
	}
}
