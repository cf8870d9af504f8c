package types2

import (
	"github.com/you-not-fish/cellc/internal/sema"
	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
)

// call analyzes a call. Only direct calls of global functions by name are
// supported, with exactly one argument per parameter.
func (c *Checker) call(e *syntax.CallExpr) (sema.Expr, bool) {
	name, ok := e.Fun.(*syntax.Name)
	if !ok {
		c.errorf(e.Fun.Pos(), CalleeNotFunction, "callee is not a function: %s", exprString(e.Fun))
		return nil, false
	}
	obj := c.resolve(name)
	if obj == nil {
		return nil, false
	}
	fn, ok := obj.(*types.FuncObj)
	if !ok || !fn.IsGlobal() {
		c.errorf(e.Fun.Pos(), CalleeNotFunction, "callee is not a function: %s", name.Value)
		return nil, false
	}
	sig := fn.Signature()
	if sig == nil {
		c.invalidRef(e.Fun.Pos(), "invalid function %s", name.Value)
		return nil, false
	}

	if len(e.Args) != sig.NumParams() {
		c.errorf(e.Pos(), ArgCountNotSupported, "argument count not supported: %s takes %d arguments, got %d",
			name.Value, sig.NumParams(), len(e.Args))
		return nil, false
	}

	args := make([]sema.Expr, len(e.Args))
	for i, a := range e.Args {
		x, ok := c.coerce(coercion{purpose: Arg, node: a, to: sig.Param(i).Type()})
		if !ok {
			return nil, false
		}
		args[i] = x
	}
	return sema.NewCall(e, sema.NewNamedFunction(name, fn), args), true
}
