package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses an AST in depth-first order.
// If visitor returns false, children are not visited.
func Walk(node Node, v Visitor) {
	if node == nil || !v(node) {
		return
	}

	switch n := node.(type) {
	case *File:
		Walk(n.PkgName, v)
		for _, d := range n.Decls {
			Walk(d, v)
		}

	case *TypeDecl:
		Walk(n.Name, v)
		walkExpr(n.Type, v)

	case *VarDecl:
		Walk(n.Name, v)
		walkExpr(n.Type, v)
		walkExpr(n.Value, v)

	case *FuncDecl:
		Walk(n.Name, v)
		for _, p := range n.Params {
			Walk(p, v)
		}
		walkExpr(n.Result, v)

	case *Field:
		if n.Name != nil {
			Walk(n.Name, v)
		}
		walkExpr(n.Type, v)

	case *Name, *BasicLit:
		// leaves

	case *Operation:
		walkExpr(n.X, v)
		walkExpr(n.Y, v)

	case *IncDecExpr:
		walkExpr(n.X, v)

	case *CallExpr:
		walkExpr(n.Fun, v)
		for _, a := range n.Args {
			walkExpr(a, v)
		}

	case *IndexExpr:
		walkExpr(n.X, v)
		walkExpr(n.Index, v)

	case *SelectorExpr:
		walkExpr(n.X, v)
		Walk(n.Sel, v)

	case *ParenExpr:
		walkExpr(n.X, v)

	case *TernaryExpr:
		walkExpr(n.Cond, v)
		walkExpr(n.X, v)
		walkExpr(n.Y, v)

	case *StructInit:
		for _, nv := range n.Pairs {
			Walk(nv, v)
		}

	case *NameValue:
		Walk(n.Name, v)
		walkExpr(n.Value, v)

	case *ArrayType:
		walkExpr(n.Len, v)
		walkExpr(n.Elem, v)

	case *ConstType:
		walkExpr(n.Base, v)

	case *StructType:
		for _, m := range n.Body {
			Walk(m, v)
		}
	}
}

// walkExpr walks an optional expression.
func walkExpr(e Expr, v Visitor) {
	if e != nil {
		Walk(e, v)
	}
}

// Inspect traverses an AST and calls f for each node.
// It is a convenience wrapper around Walk.
func Inspect(node Node, f func(Node) bool) {
	Walk(node, f)
}
