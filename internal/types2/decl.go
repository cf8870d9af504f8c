package types2

import (
	"strings"

	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
)

// checkDecls type-checks a batch of top-level declarations.
func (c *Checker) checkDecls(decls []syntax.Decl) {
	// Phase 1: Collect all top-level declarations
	col := c.collectDecls(decls)

	// Phase 2: Resolve type declarations in source order
	for _, tn := range col.types {
		c.typeDecl(tn)
	}

	// Phase 3: Reject structs that contain themselves, then register and
	// check the layout of the others
	c.checkCycles(col.types)
	for _, tn := range col.types {
		st, ok := tn.Type().(*types.Struct)
		if !ok {
			continue
		}
		if c.recursive[st] {
			c.invalidRef(tn.Pos(), "struct %s contains an invalid recursive type", st.Name())
			continue
		}
		c.pkg.AddStruct(st)
		if st.NumFields() > 0 {
			if _, err := c.conf.Sizes.Storage(st); err != nil {
				c.errorf(tn.Pos(), StorageTooLarge, "struct %s is too large: %v", st.Name(), err)
			}
		}
	}

	// Phase 4: Check function signatures
	for _, d := range col.funcs {
		if sig := c.signature(d.decl); sig != nil {
			d.obj.SetSignature(sig)
		}
	}

	// Phase 5: Check variable declarations and their initializers
	for _, d := range col.vars {
		c.varDecl(d.obj, d.decl)
	}
}

// typeDecl resolves the type of a declared type name.
func (c *Checker) typeDecl(tn *types.TypeName) {
	decl, ok := c.pending[tn]
	if !ok {
		return
	}

	for i, r := range c.resolving {
		if r == tn {
			c.cycleError(c.resolving[i:])
			tn.SetType(types.Typ[types.Invalid])
			delete(c.pending, tn)
			return
		}
	}
	c.resolving = append(c.resolving, tn)
	defer func() { c.resolving = c.resolving[:len(c.resolving)-1] }()

	if st, ok := tn.Type().(*types.Struct); ok {
		// A struct naming itself resolves to the struct; containment
		// cycles are reported by checkCycles.
		delete(c.pending, tn)
		c.structBody(st, decl.Type.(*syntax.StructType))
		return
	}

	typ := c.typ(decl.Type)
	delete(c.pending, tn)
	if typ == nil {
		typ = types.Typ[types.Invalid]
	}
	tn.SetType(typ)
}

func (c *Checker) cycleError(cycle []*types.TypeName) {
	names := make([]string, 0, len(cycle)+1)
	for _, tn := range cycle {
		names = append(names, tn.Name())
	}
	names = append(names, cycle[0].Name())
	c.errorf(cycle[0].Pos(), InvalidRecursiveType, "invalid recursive type %s", strings.Join(names, " -> "))
}

// structBody resolves the members of a struct declaration.
func (c *Checker) structBody(st *types.Struct, e *syntax.StructType) {
	var body []types.Object
	seen := make(map[string]bool)

	for _, m := range e.Body {
		switch m := m.(type) {
		case *syntax.Field:
			name := m.Name.Value
			if seen[name] {
				c.errorf(m.Name.Pos(), Redeclared, "duplicate member %s in struct %s", name, st.Name())
				continue
			}
			seen[name] = true

			t := c.typ(m.Type)
			switch {
			case t == nil:
				t = types.Typ[types.Invalid]
			case types.IsVoid(t):
				c.errorf(m.Type.Pos(), InvalidUseOfVoid, "invalid use of void for field %s", name)
				t = types.Typ[types.Invalid]
			case types.IsArray(t) && !types.AsArray(t).HasFixedLength():
				c.errorf(m.Type.Pos(), InvalidArrayLength, "field %s needs a fixed array length", name)
				t = types.Typ[types.Invalid]
			}
			f := types.NewField(m.Pos(), name, t)
			m.Name.Sym = f
			c.recordDef(m.Name, f)
			body = append(body, f)

		case *syntax.FuncDecl:
			name := m.Name.Value
			if seen[name] {
				c.errorf(m.Name.Pos(), Redeclared, "duplicate member %s in struct %s", name, st.Name())
				continue
			}
			seen[name] = true

			fn := types.NewMethod(m.Name.Pos(), name, st, c.signature(m))
			m.Name.Sym = fn
			c.recordDef(m.Name, fn)
			body = append(body, fn)
		}
	}

	st.SetBody(body)
	if st.NumFields() == 0 {
		c.errorf(e.Pos(), EmptyStruct, "struct %s has no fields", st.Name())
	}
}

// checkCycles reports structs that contain themselves by value, directly
// or through arrays and other structs. Such structs, and every struct
// containing one, are marked recursive.
func (c *Checker) checkCycles(tns []*types.TypeName) {
	const (
		white = iota
		grey
		black
	)
	color := make(map[*types.Struct]int)
	decl := make(map[*types.Struct]*types.TypeName)
	for _, tn := range tns {
		if st, ok := tn.Type().(*types.Struct); ok {
			decl[st] = tn
		}
	}

	var path []*types.Struct
	var visit func(st *types.Struct)
	visit = func(st *types.Struct) {
		color[st] = grey
		path = append(path, st)
		for _, f := range st.Fields() {
			t := containedStruct(f.Type())
			if t == nil {
				continue
			}
			switch color[t] {
			case white:
				visit(t)
			case grey:
				i := len(path) - 1
				for path[i] != t {
					i--
				}
				var cycle []*types.TypeName
				for _, s := range path[i:] {
					c.recursive[s] = true
					if tn := decl[s]; tn != nil {
						cycle = append(cycle, tn)
					}
				}
				if len(cycle) > 0 {
					c.cycleError(cycle)
				}
			}
			if c.recursive[t] {
				c.recursive[st] = true
			}
		}
		path = path[:len(path)-1]
		color[st] = black
	}

	for _, tn := range tns {
		if st, ok := tn.Type().(*types.Struct); ok && color[st] == white {
			visit(st)
		}
	}
}

// containedStruct returns the struct stored inline by a value of type t,
// looking through arrays, or nil.
func containedStruct(t types.Type) *types.Struct {
	for {
		a, ok := types.Unqualified(t).(*types.Array)
		if !ok {
			break
		}
		t = a.Elem()
	}
	st, _ := types.Unqualified(t).(*types.Struct)
	return st
}

// signature resolves a function or method signature. It returns nil if a
// parameter or result type is invalid.
func (c *Checker) signature(decl *syntax.FuncDecl) *types.Func {
	ok := true
	params := make([]*types.Var, 0, len(decl.Params))
	seen := make(map[string]bool)
	for _, p := range decl.Params {
		t := c.typ(p.Type)
		switch {
		case t == nil:
			ok = false
			continue
		case types.IsVoid(t):
			c.errorf(p.Type.Pos(), InvalidUseOfVoid, "invalid use of void for parameter %s", p.Name.Value)
			ok = false
			continue
		}
		if seen[p.Name.Value] {
			c.errorf(p.Name.Pos(), Redeclared, "duplicate parameter %s in %s", p.Name.Value, decl.Name.Value)
			ok = false
			continue
		}
		seen[p.Name.Value] = true

		param := types.NewParam(p.Pos(), p.Name.Value, t)
		p.Name.Sym = param
		c.recordDef(p.Name, param)
		params = append(params, param)
	}

	var result types.Type
	if decl.Result != nil {
		if result = c.typ(decl.Result); result == nil {
			ok = false
		}
	}
	if !ok {
		return nil
	}
	return types.NewFunc(params, result)
}

// varDecl checks a global variable declaration.
func (c *Checker) varDecl(obj *types.Var, decl *syntax.VarDecl) {
	t := c.typ(decl.Type)
	switch {
	case t == nil:
		obj.SetType(types.Typ[types.Invalid])
		return
	case types.IsVoid(t):
		c.errorf(decl.Type.Pos(), InvalidUseOfVoid, "invalid use of void for variable %s", obj.Name())
		obj.SetType(types.Typ[types.Invalid])
		return
	}
	obj.SetType(t)

	if a, ok := types.Unqualified(t).(*types.Array); ok && !a.HasFixedLength() {
		// An unsized char array takes its length from a string initializer.
		if lit, ok := decl.Value.(*syntax.BasicLit); !ok || lit.Kind != syntax.StringLit || !types.IsCharArray(a) {
			c.errorf(decl.Type.Pos(), InvalidArrayLength, "variable %s needs a fixed array length", obj.Name())
			return
		}
	}

	if st := containedStruct(t); st != nil && c.recursive[st] {
		c.invalidRef(decl.Type.Pos(), "variable %s has invalid recursive type %s", obj.Name(), st.Name())
		obj.SetType(types.Typ[types.Invalid])
		return
	}

	if types.IsContiguouslyStored(t) && !types.IsStruct(t) {
		if _, err := c.conf.Sizes.Storage(t); err != nil {
			c.errorf(decl.Type.Pos(), StorageTooLarge, "variable %s is too large: %v", obj.Name(), err)
			return
		}
	}

	if decl.Value == nil {
		return
	}
	if x, ok := c.initializer(t, decl.Value); ok && c.info != nil {
		c.info.Inits[obj] = x
	}
}

// recordDef records a defining identifier that is not declared in the
// package scope.
func (c *Checker) recordDef(name *syntax.Name, obj types.Object) {
	if c.info != nil {
		c.info.Defs[name] = obj
	}
}
