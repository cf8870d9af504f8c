package types2

import (
	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
)

// declInfo pairs a collected object with its declaration.
type declInfo[O types.Object, D syntax.Decl] struct {
	obj  O
	decl D
}

// collected holds the objects declared by one batch of declarations.
type collected struct {
	types []*types.TypeName
	funcs []declInfo[*types.FuncObj, *syntax.FuncDecl]
	vars  []declInfo[*types.Var, *syntax.VarDecl]
}

// collectDecls creates placeholder objects for all top-level declarations
// in the package scope, so that declarations may refer to each other in
// any order.
func (c *Checker) collectDecls(decls []syntax.Decl) *collected {
	col := new(collected)
	for _, d := range decls {
		switch decl := d.(type) {
		case *syntax.TypeDecl:
			if tn := c.collectTypeDecl(decl); tn != nil {
				col.types = append(col.types, tn)
			}
		case *syntax.FuncDecl:
			obj := types.NewFuncObj(decl.Name.Pos(), decl.Name.Value, nil)
			if c.declare(decl.Name, obj) {
				c.pkg.AddFunc(obj)
				col.funcs = append(col.funcs, declInfo[*types.FuncObj, *syntax.FuncDecl]{obj, decl})
			}
		case *syntax.VarDecl:
			obj := types.NewVar(decl.Name.Pos(), decl.Name.Value, nil)
			if c.declare(decl.Name, obj) {
				c.pkg.AddGlobal(obj)
				col.vars = append(col.vars, declInfo[*types.Var, *syntax.VarDecl]{obj, decl})
			}
		}
	}
	return col
}

// collectTypeDecl collects a type declaration. Struct types are created
// right away so that other declarations can name them before their bodies
// are resolved; all other types are resolved on first use.
func (c *Checker) collectTypeDecl(decl *syntax.TypeDecl) *types.TypeName {
	tn := types.NewTypeName(decl.Name.Pos(), decl.Name.Value, nil)
	if _, ok := decl.Type.(*syntax.StructType); ok {
		tn.SetType(types.NewStruct(decl.Name.Value))
	}
	if !c.declare(decl.Name, tn) {
		return nil
	}
	c.pending[tn] = decl
	return tn
}
