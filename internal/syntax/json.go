package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *File:
		return map[string]interface{}{
			"type":    "File",
			"pos":     n.pos.String(),
			"package": n.PkgName.Value,
			"decls":   mapSlice(n.Decls, func(d Decl) interface{} { return toJSON(d) }),
		}

	case *TypeDecl:
		return map[string]interface{}{
			"type":    "TypeDecl",
			"pos":     n.pos.String(),
			"name":    n.Name.Value,
			"typedef": exprJSON(n.Type),
		}

	case *VarDecl:
		m := map[string]interface{}{
			"type":    "VarDecl",
			"pos":     n.pos.String(),
			"name":    n.Name.Value,
			"vartype": exprJSON(n.Type),
		}
		if n.Value != nil {
			m["value"] = toJSON(n.Value)
		}
		return m

	case *FuncDecl:
		m := map[string]interface{}{
			"type":   "FuncDecl",
			"pos":    n.pos.String(),
			"name":   n.Name.Value,
			"params": mapSlice(n.Params, func(f *Field) interface{} { return toJSON(f) }),
		}
		if n.Result != nil {
			m["result"] = toJSON(n.Result)
		}
		return m

	case *Field:
		m := map[string]interface{}{
			"type": "Field",
			"pos":  n.pos.String(),
		}
		if n.Name != nil {
			m["name"] = n.Name.Value
		}
		m["fieldtype"] = exprJSON(n.Type)
		return m

	case *Name:
		return map[string]interface{}{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *BasicLit:
		return map[string]interface{}{
			"type":  "BasicLit",
			"pos":   n.pos.String(),
			"kind":  n.Kind.String(),
			"value": n.Value,
		}

	case *Operation:
		m := map[string]interface{}{
			"type": "Operation",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
		}
		if n.Y != nil {
			m["y"] = toJSON(n.Y)
		}
		return m

	case *IncDecExpr:
		return map[string]interface{}{
			"type":    "IncDecExpr",
			"pos":     n.pos.String(),
			"op":      n.Op.String(),
			"postfix": n.Postfix,
			"x":       toJSON(n.X),
		}

	case *CallExpr:
		return map[string]interface{}{
			"type": "CallExpr",
			"pos":  n.pos.String(),
			"fun":  toJSON(n.Fun),
			"args": mapSlice(n.Args, exprJSON),
		}

	case *IndexExpr:
		return map[string]interface{}{
			"type":  "IndexExpr",
			"pos":   n.pos.String(),
			"x":     toJSON(n.X),
			"index": toJSON(n.Index),
		}

	case *SelectorExpr:
		return map[string]interface{}{
			"type": "SelectorExpr",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
			"sel":  n.Sel.Value,
		}

	case *ParenExpr:
		return map[string]interface{}{
			"type": "ParenExpr",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *TernaryExpr:
		return map[string]interface{}{
			"type": "TernaryExpr",
			"pos":  n.pos.String(),
			"cond": toJSON(n.Cond),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *StructInit:
		return map[string]interface{}{
			"type":  "StructInit",
			"pos":   n.pos.String(),
			"pairs": mapSlice(n.Pairs, func(nv *NameValue) interface{} { return toJSON(nv) }),
		}

	case *NameValue:
		return map[string]interface{}{
			"type":  "NameValue",
			"pos":   n.pos.String(),
			"name":  n.Name.Value,
			"value": toJSON(n.Value),
		}

	case *ArrayType:
		return map[string]interface{}{
			"type": "ArrayType",
			"pos":  n.pos.String(),
			"len":  exprJSON(n.Len),
			"elem": toJSON(n.Elem),
		}

	case *ConstType:
		return map[string]interface{}{
			"type": "ConstType",
			"pos":  n.pos.String(),
			"base": toJSON(n.Base),
		}

	case *StructType:
		return map[string]interface{}{
			"type": "StructType",
			"pos":  n.pos.String(),
			"body": mapSlice(n.Body, toJSON),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

// exprJSON converts an optional expression; a nil Expr becomes null.
func exprJSON(e Expr) interface{} {
	if e == nil {
		return nil
	}
	return toJSON(e)
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
