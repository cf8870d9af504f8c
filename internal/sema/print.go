package sema

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes an indented tree representation of e to w.
//
// Format:
//
//	Binary + <int>
//	  Var x <int>
//	  ConstValue 1 <int>
func Fprint(w io.Writer, e Expr) {
	p := &printer{w: w}
	p.print(e)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) children(xs ...Expr) {
	p.indent++
	for _, x := range xs {
		p.print(x)
	}
	p.indent--
}

func (p *printer) print(e Expr) {
	switch e := e.(type) {
	case nil:
		p.line("<default>")
	case *ConstValue:
		p.line("ConstValue %d <%s>", e.Value, e.Type())
	case *Var:
		p.line("Var %s <%s>", e.Obj.Name(), e.StoredType())
	case *NamedFunction:
		p.line("NamedFunction %s <%s>", e.Func.Name(), e.Type())
	case *Binary:
		p.line("Binary %s <%s>", e.Op, e.Type())
		p.children(e.X, e.Y)
	case *Unary:
		p.line("Unary %s <%s>", e.Op, e.Type())
		p.children(e.X)
	case *Call:
		p.line("Call %s <%s>", e.Fun.Func.Name(), e.Type())
		p.children(e.Args...)
	case *Index:
		p.line("Index <%s>", e.StoredType())
		p.children(e.X, e.Index)
	case *IncDec:
		fix := "prefix"
		if e.Postfix {
			fix = "postfix"
		}
		p.line("IncDec %s %s <%s>", e.Op, fix, e.Type())
		p.children(e.X)
	case *String:
		p.line("String %s <%s>", strconv.Quote(e.Value), e.Type())
	case *StructInit:
		p.line("StructInit %s", e.Struct.Name())
		p.indent++
		for i, v := range e.Values {
			p.line("%s:", e.Struct.Field(i).Name())
			p.children(v)
		}
		p.indent--
	default:
		p.line("<%T>", e)
	}
}

// ExprString returns a compact one-line form of e, such as (+ x 1).
func ExprString(e Expr) string {
	var b strings.Builder
	write(&b, e)
	return b.String()
}

func write(b *strings.Builder, e Expr) {
	switch e := e.(type) {
	case nil:
		b.WriteString("_")
	case *ConstValue:
		b.WriteString(strconv.Itoa(int(e.Value)))
	case *Var:
		b.WriteString(e.Obj.Name())
	case *NamedFunction:
		b.WriteString(e.Func.Name())
	case *Binary:
		b.WriteString("(" + e.Op.String() + " ")
		write(b, e.X)
		b.WriteString(" ")
		write(b, e.Y)
		b.WriteString(")")
	case *Unary:
		b.WriteString("(" + e.Op.String() + " ")
		write(b, e.X)
		b.WriteString(")")
	case *Call:
		b.WriteString("(call " + e.Fun.Func.Name())
		for _, a := range e.Args {
			b.WriteString(" ")
			write(b, a)
		}
		b.WriteString(")")
	case *Index:
		b.WriteString("(index ")
		write(b, e.X)
		b.WriteString(" ")
		write(b, e.Index)
		b.WriteString(")")
	case *IncDec:
		op := "pre" + e.Op.String()
		if e.Postfix {
			op = "post" + e.Op.String()
		}
		b.WriteString("(" + op + " ")
		write(b, e.X)
		b.WriteString(")")
	case *String:
		b.WriteString(strconv.Quote(e.Value))
	case *StructInit:
		b.WriteString("{")
		for i, v := range e.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e.Struct.Field(i).Name() + ": ")
			write(b, v)
		}
		b.WriteString("}")
	default:
		fmt.Fprintf(b, "<%T>", e)
	}
}
