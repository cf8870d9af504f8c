package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// child prints a labelled sub-node one level deeper.
func (p *printer) child(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		p.printf("File %s\n", n.pos)
		p.indent++
		p.printf("Package: %s\n", n.PkgName.Value)
		for _, d := range n.Decls {
			p.print(d)
		}
		p.indent--

	case *TypeDecl:
		p.printf("TypeDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name.Value)
		p.child("Type", n.Type)
		p.indent--

	case *VarDecl:
		p.printf("VarDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name.Value)
		if n.Type != nil {
			p.printf("Type: %s\n", ExprString(n.Type))
		}
		if n.Value != nil {
			p.child("Value", n.Value)
		}
		p.indent--

	case *FuncDecl:
		p.printf("FuncDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name.Value)
		if len(n.Params) > 0 {
			p.printf("Params:\n")
			p.indent++
			for _, f := range n.Params {
				p.printf("%s %s\n", f.Name.Value, ExprString(f.Type))
			}
			p.indent--
		}
		if n.Result != nil {
			p.printf("Result: %s\n", ExprString(n.Result))
		}
		p.indent--

	case *Field:
		p.printf("Field %s\n", n.pos)
		p.indent++
		if n.Name != nil {
			p.printf("Name: %s\n", n.Name.Value)
		}
		p.printf("Type: %s\n", ExprString(n.Type))
		p.indent--

	case *Name:
		p.printf("Name %s %q\n", n.pos, n.Value)

	case *BasicLit:
		p.printf("BasicLit %s %s %q\n", n.pos, n.Kind, n.Value)

	case *Operation:
		if n.Y == nil {
			p.printf("UnaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.print(n.X)
			p.indent--
		} else {
			p.printf("BinaryOp %s %s\n", n.pos, n.Op)
			p.indent++
			p.child("X", n.X)
			p.child("Y", n.Y)
			p.indent--
		}

	case *IncDecExpr:
		kind := "prefix"
		if n.Postfix {
			kind = "postfix"
		}
		p.printf("IncDec %s %s %s\n", n.pos, n.Op, kind)
		p.indent++
		p.print(n.X)
		p.indent--

	case *CallExpr:
		p.printf("CallExpr %s\n", n.pos)
		p.indent++
		p.child("Fun", n.Fun)
		if len(n.Args) > 0 {
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent--
		}
		p.indent--

	case *IndexExpr:
		p.printf("IndexExpr %s\n", n.pos)
		p.indent++
		p.child("X", n.X)
		p.child("Index", n.Index)
		p.indent--

	case *SelectorExpr:
		p.printf("SelectorExpr %s\n", n.pos)
		p.indent++
		p.child("X", n.X)
		p.printf("Sel: %s\n", n.Sel.Value)
		p.indent--

	case *ParenExpr:
		p.printf("ParenExpr %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *TernaryExpr:
		p.printf("TernaryExpr %s\n", n.pos)
		p.indent++
		p.child("Cond", n.Cond)
		p.child("X", n.X)
		p.child("Y", n.Y)
		p.indent--

	case *StructInit:
		p.printf("StructInit %s\n", n.pos)
		p.indent++
		for _, nv := range n.Pairs {
			p.print(nv)
		}
		p.indent--

	case *NameValue:
		p.printf("NameValue %s %s\n", n.pos, n.Name.Value)
		p.indent++
		p.print(n.Value)
		p.indent--

	case *ArrayType, *ConstType, *StructType:
		p.printf("%s %s\n", ExprString(n.(Expr)), n.Pos())
		if st, ok := n.(*StructType); ok {
			p.indent++
			for _, m := range st.Body {
				p.print(m)
			}
			p.indent--
		}

	default:
		p.printf("<%T>\n", node)
	}
}

// ExprString returns the source form of an expression or type expression.
func ExprString(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr) {
	switch x := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Name:
		b.WriteString(x.Value)
	case *BasicLit:
		if x.Kind == StringLit {
			b.WriteString(strconv.Quote(x.Value))
		} else {
			b.WriteString(x.Value)
		}
	case *Operation:
		if x.Y == nil {
			b.WriteString(x.Op.String())
			writeExpr(b, x.X)
			return
		}
		writeExpr(b, x.X)
		b.WriteString(" " + x.Op.String() + " ")
		writeExpr(b, x.Y)
	case *IncDecExpr:
		if !x.Postfix {
			b.WriteString(x.Op.String())
		}
		writeExpr(b, x.X)
		if x.Postfix {
			b.WriteString(x.Op.String())
		}
	case *CallExpr:
		writeExpr(b, x.Fun)
		b.WriteByte('(')
		for i, a := range x.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, a)
		}
		b.WriteByte(')')
	case *IndexExpr:
		writeExpr(b, x.X)
		b.WriteByte('[')
		writeExpr(b, x.Index)
		b.WriteByte(']')
	case *SelectorExpr:
		writeExpr(b, x.X)
		b.WriteString("." + x.Sel.Value)
	case *ParenExpr:
		b.WriteByte('(')
		writeExpr(b, x.X)
		b.WriteByte(')')
	case *TernaryExpr:
		writeExpr(b, x.Cond)
		b.WriteString(" ? ")
		writeExpr(b, x.X)
		b.WriteString(" : ")
		writeExpr(b, x.Y)
	case *StructInit:
		b.WriteByte('{')
		for i, nv := range x.Pairs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(nv.Name.Value + ": ")
			writeExpr(b, nv.Value)
		}
		b.WriteByte('}')
	case *ArrayType:
		b.WriteByte('[')
		if x.Len != nil {
			writeExpr(b, x.Len)
		}
		b.WriteByte(']')
		writeExpr(b, x.Elem)
	case *ConstType:
		b.WriteString("const ")
		writeExpr(b, x.Base)
	case *StructType:
		b.WriteString("struct{...}")
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}
