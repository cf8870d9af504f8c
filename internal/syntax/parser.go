package syntax

import "io"

// Maximum number of errors before aborting parse.
const maxErrors = 10

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser performs syntax analysis on cellc source.
type Parser struct {
	scanner *Scanner

	tok Token
	lit string
	pos Pos

	errh   func(pos Pos, msg string)
	errcnt int
	first  error
	abort  bool
}

// NewParser creates a new Parser for the given source.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	scanErrh := func(line, col uint32, msg string) {
		if errh != nil {
			errh(NewPos(filename, line, col), msg)
		}
	}

	p := &Parser{
		scanner: NewScanner(filename, src, scanErrh),
		errh:    errh,
	}
	p.next()
	return p
}

// SetASIEnabled passes the ASI setting to the underlying scanner.
func (p *Parser) SetASIEnabled(enabled bool) {
	p.scanner.SetASIEnabled(enabled)
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) next() {
	p.scanner.Next()
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.pos = p.scanner.Pos()
}

func (p *Parser) got(tok Token) bool {
	if p.tok == tok {
		p.next()
		return true
	}
	return false
}

func (p *Parser) want(tok Token) {
	if !p.got(tok) {
		p.syntaxError("expected " + tok.String())
		p.advance()
	}
}

// ----------------------------------------------------------------------------
// Error handling

func (p *Parser) syntaxError(msg string) {
	p.syntaxErrorAt(p.pos, msg)
}

func (p *Parser) syntaxErrorAt(pos Pos, msg string) {
	if p.abort {
		return
	}
	if p.errcnt == 0 {
		p.first = &SyntaxError{Pos: pos, Msg: msg}
	}
	p.errcnt++

	if p.errh != nil {
		p.errh(pos, msg)
	}

	if p.errcnt >= maxErrors {
		p.abort = true
		if p.errh != nil {
			p.errh(pos, "too many errors; aborting parse")
		}
		p.tok = _EOF
	}
}

// syncTokens are the tokens error recovery stops at.
var syncTokens = map[Token]bool{
	_Semi:    true,
	_Rbrace:  true,
	_Rparen:  true,
	_Rbrack:  true,
	_Package: true,
	_Type:    true,
	_Var:     true,
	_Func:    true,
	_EOF:     true,
}

// advance skips tokens until a synchronization point and consumes it.
func (p *Parser) advance() {
	for p.tok != _EOF && !syncTokens[p.tok] {
		p.next()
	}
	if p.tok != _EOF {
		p.next()
	}
}

// Errors returns the number of errors encountered during parsing.
func (p *Parser) Errors() int {
	return p.errcnt
}

// FirstError returns the first error encountered, or nil if none.
func (p *Parser) FirstError() error {
	return p.first
}

// ----------------------------------------------------------------------------
// Parsing entry points

// Parse parses a complete source file.
func (p *Parser) Parse() *File {
	f := &File{}
	f.pos = p.pos

	p.want(_Package)
	f.PkgName = p.name()
	p.want(_Semi)

	f.Decls = p.declList()
	return f
}

// ParseDecls parses a sequence of declarations without a package clause.
// It is used for interactive input.
func (p *Parser) ParseDecls() []Decl {
	return p.declList()
}

// ParseExpr parses a single expression followed by EOF.
func (p *Parser) ParseExpr() Expr {
	x := p.expr()
	p.got(_Semi)
	if p.tok != _EOF {
		p.syntaxError("unexpected " + p.tok.String() + " after expression")
	}
	return x
}

func (p *Parser) declList() []Decl {
	var list []Decl
	for !p.abort && p.tok != _EOF {
		if p.got(_Semi) {
			continue
		}
		if d := p.decl(); d != nil {
			list = append(list, d)
		}
	}
	return list
}

func (p *Parser) name() *Name {
	n := &Name{Value: "_"}
	n.pos = p.pos
	if p.tok != _Name {
		p.syntaxError("expected identifier")
		return n
	}
	n.Value = p.lit
	p.next()
	return n
}

// ----------------------------------------------------------------------------
// Declarations

func (p *Parser) decl() Decl {
	switch p.tok {
	case _Type:
		return p.typeDecl()
	case _Var:
		return p.varDecl()
	case _Func:
		d := p.funcDecl()
		p.want(_Semi)
		return d
	}
	p.syntaxError("expected declaration")
	p.advance()
	return nil
}

// typeDecl parses: type Name Type
func (p *Parser) typeDecl() *TypeDecl {
	d := &TypeDecl{}
	d.pos = p.pos

	p.want(_Type)
	d.Name = p.name()
	d.Type = p.type_()
	p.want(_Semi)
	return d
}

// varDecl parses: var Name Type [= Value]
func (p *Parser) varDecl() *VarDecl {
	d := &VarDecl{}
	d.pos = p.pos

	p.want(_Var)
	d.Name = p.name()
	if p.tok == _Assign {
		p.syntaxError("missing variable type")
	} else {
		d.Type = p.type_()
	}
	if p.got(_Assign) {
		d.Value = p.expr()
	}
	p.want(_Semi)
	return d
}

// funcDecl parses: func Name(params) [Result]
func (p *Parser) funcDecl() *FuncDecl {
	d := &FuncDecl{}
	d.pos = p.pos

	p.want(_Func)
	d.Name = p.name()
	d.Params = p.paramList()
	if p.tok != _Semi && p.tok != _Lbrace && p.tok != _Rbrace && p.tok != _EOF {
		d.Result = p.type_()
	}
	if p.tok == _Lbrace {
		p.syntaxError("function bodies are not supported")
		p.skipBraces()
	}
	return d
}

// skipBraces skips a balanced {...} group.
func (p *Parser) skipBraces() {
	depth := 0
	for p.tok != _EOF {
		switch p.tok {
		case _Lbrace:
			depth++
		case _Rbrace:
			depth--
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}

func (p *Parser) paramList() []*Field {
	p.want(_Lparen)

	var params []*Field
	for p.tok != _Rparen && p.tok != _EOF {
		f := &Field{}
		f.pos = p.pos
		f.Name = p.name()
		f.Type = p.type_()
		params = append(params, f)
		if !p.got(_Comma) {
			break
		}
	}

	p.want(_Rparen)
	return params
}

// ----------------------------------------------------------------------------
// Types

func (p *Parser) type_() Expr {
	switch p.tok {
	case _Name:
		return p.name()

	case _Const:
		ct := &ConstType{}
		ct.pos = p.pos
		p.next()
		ct.Base = p.type_()
		return ct

	case _Lbrack:
		at := &ArrayType{}
		at.pos = p.pos
		p.next()
		if p.tok != _Rbrack {
			at.Len = p.expr()
		}
		p.want(_Rbrack)
		at.Elem = p.type_()
		return at

	case _Struct:
		return p.structType()
	}

	p.syntaxError("expected type")
	n := &Name{Value: "_"}
	n.pos = p.pos
	return n
}

// structType parses struct { name Type; func m(...) R; ... }
func (p *Parser) structType() Expr {
	st := &StructType{}
	st.pos = p.pos

	p.want(_Struct)
	p.want(_Lbrace)
	for !p.abort && p.tok != _Rbrace && p.tok != _EOF {
		if p.got(_Semi) {
			continue
		}
		if p.tok == _Func {
			st.Body = append(st.Body, p.funcDecl())
		} else {
			f := &Field{}
			f.pos = p.pos
			f.Name = p.name()
			f.Type = p.type_()
			st.Body = append(st.Body, f)
		}
		if p.tok != _Rbrace {
			p.want(_Semi)
		}
	}
	p.want(_Rbrace)
	return st
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression, including the conditional operator.
func (p *Parser) expr() Expr {
	x := p.binaryExpr(0)
	if p.tok != _Question {
		return x
	}

	t := &TernaryExpr{Cond: x}
	t.pos = x.Pos()
	p.next()
	t.X = p.expr()
	p.want(_Colon)
	t.Y = p.expr()
	return t
}

// binaryExpr parses a binary expression whose operators bind tighter than prec.
func (p *Parser) binaryExpr(prec int) Expr {
	x := p.unaryExpr()
	for {
		oprec := p.tok.Precedence()
		if oprec <= prec {
			return x
		}

		op := &Operation{Op: p.tok, X: x}
		op.pos = x.Pos()
		p.next()
		op.Y = p.binaryExpr(oprec)
		x = op
	}
}

func (p *Parser) unaryExpr() Expr {
	switch p.tok {
	case _Not, _Sub, _Tilde:
		op := &Operation{Op: p.tok}
		op.pos = p.pos
		p.next()
		op.X = p.unaryExpr()
		return op

	case _Inc, _Dec:
		x := &IncDecExpr{Op: p.tok}
		x.pos = p.pos
		p.next()
		x.X = p.unaryExpr()
		return x
	}
	return p.primaryExpr()
}

// primaryExpr parses an operand followed by calls, index, selector, and
// postfix increment or decrement.
func (p *Parser) primaryExpr() Expr {
	x := p.operand()
	for {
		switch p.tok {
		case _Lparen:
			call := &CallExpr{Fun: x}
			call.pos = x.Pos()
			p.next()
			if p.tok != _Rparen {
				call.Args = p.exprList()
			}
			p.want(_Rparen)
			x = call

		case _Lbrack:
			idx := &IndexExpr{X: x}
			idx.pos = x.Pos()
			p.next()
			idx.Index = p.expr()
			p.want(_Rbrack)
			x = idx

		case _Dot:
			sel := &SelectorExpr{X: x}
			sel.pos = x.Pos()
			p.next()
			sel.Sel = p.name()
			x = sel

		case _Inc, _Dec:
			id := &IncDecExpr{Op: p.tok, X: x, Postfix: true}
			id.pos = x.Pos()
			p.next()
			x = id

		default:
			return x
		}
	}
}

func (p *Parser) operand() Expr {
	switch p.tok {
	case _Name:
		return p.name()

	case _Literal:
		lit := &BasicLit{Value: p.lit, Kind: p.scanner.LitKind()}
		lit.pos = p.pos
		p.next()
		return lit

	case _Lparen:
		paren := &ParenExpr{}
		paren.pos = p.pos
		p.next()
		paren.X = p.expr()
		p.want(_Rparen)
		return paren

	case _Lbrace:
		return p.structInit()
	}

	p.syntaxError("expected operand")
	n := &Name{Value: "_"}
	n.pos = p.pos
	return n
}

// structInit parses { name: value, ... }
func (p *Parser) structInit() Expr {
	init := &StructInit{}
	init.pos = p.pos

	p.want(_Lbrace)
	for p.tok != _Rbrace && p.tok != _EOF {
		nv := &NameValue{}
		nv.pos = p.pos
		nv.Name = p.name()
		p.want(_Colon)
		nv.Value = p.expr()
		init.Pairs = append(init.Pairs, nv)
		if !p.got(_Comma) {
			p.got(_Semi) // newline before the closing brace
			break
		}
	}
	p.want(_Rbrace)
	return init
}

func (p *Parser) exprList() []Expr {
	list := []Expr{p.expr()}
	for p.got(_Comma) {
		list = append(list, p.expr())
	}
	return list
}
