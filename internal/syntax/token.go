// Package syntax implements lexical analysis for cellc source files.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF   Token = iota // end of file
	_Error              // lexical error

	// Literals
	_Name    // identifier: foo, Point
	_Literal // literal value (used with LitKind)

	// Operators (ordered by precedence, low to high)
	_Assign // =

	// Logical operators
	_OrOr   // ||
	_AndAnd // &&

	// Comparison operators
	_Eql // ==
	_Neq // !=
	_Lss // <
	_Leq // <=
	_Gtr // >
	_Geq // >=

	// Additive operators
	_Add // +
	_Sub // -
	_Or  // |
	_Xor // ^

	// Multiplicative operators
	_Mul  // *
	_Div  // /
	_Rem  // %
	_And  // &
	_Shl  // <<
	_Shr  // >>
	_Ushr // >>>

	// Unary operators
	_Not   // !
	_Tilde // ~
	_Inc   // ++
	_Dec   // --

	// Delimiters
	_Lparen   // (
	_Rparen   // )
	_Lbrack   // [
	_Rbrack   // ]
	_Lbrace   // {
	_Rbrace   // }
	_Comma    // ,
	_Semi     // ;
	_Colon    // :
	_Dot      // .
	_Question // ?

	// Keywords
	_Const
	_Func
	_Package
	_Struct
	_Type
	_Var

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",

	_Name:    "NAME",
	_Literal: "LITERAL",

	_Assign: "=",

	_OrOr:   "||",
	_AndAnd: "&&",

	_Eql: "==",
	_Neq: "!=",
	_Lss: "<",
	_Leq: "<=",
	_Gtr: ">",
	_Geq: ">=",

	_Add: "+",
	_Sub: "-",
	_Or:  "|",
	_Xor: "^",

	_Mul:  "*",
	_Div:  "/",
	_Rem:  "%",
	_And:  "&",
	_Shl:  "<<",
	_Shr:  ">>",
	_Ushr: ">>>",

	_Not:   "!",
	_Tilde: "~",
	_Inc:   "++",
	_Dec:   "--",

	_Lparen:   "(",
	_Rparen:   ")",
	_Lbrack:   "[",
	_Rbrack:   "]",
	_Lbrace:   "{",
	_Rbrace:   "}",
	_Comma:    ",",
	_Semi:     ";",
	_Colon:    ":",
	_Dot:      ".",
	_Question: "?",

	_Const:   "const",
	_Func:    "func",
	_Package: "package",
	_Struct:  "struct",
	_Type:    "type",
	_Var:     "var",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the operator precedence for binary operators.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: ||
//	2: &&
//	3: == != < <= > >=
//	4: + - | ^
//	5: * / % & << >> >>>
func (t Token) Precedence() int {
	switch t {
	case _OrOr:
		return 1
	case _AndAnd:
		return 2
	case _Eql, _Neq, _Lss, _Leq, _Gtr, _Geq:
		return 3
	case _Add, _Sub, _Or, _Xor:
		return 4
	case _Mul, _Div, _Rem, _And, _Shl, _Shr, _Ushr:
		return 5
	}
	return 0
}

// IsLogical reports whether t is a short-circuit logical operator.
func (t Token) IsLogical() bool {
	return t == _OrOr || t == _AndAnd
}

// IsComparison reports whether t is an equality or ordering operator.
func (t Token) IsComparison() bool {
	return t.Precedence() == 3
}

// IsArithmetic reports whether t is an arithmetic, bitwise, or shift operator.
func (t Token) IsArithmetic() bool {
	p := t.Precedence()
	return p == 4 || p == 5
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Const && t <= _Var
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _Dec
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// Exported operator tokens for type checker access
const (
	OrOr   Token = _OrOr   // ||
	AndAnd Token = _AndAnd // &&
	Eql    Token = _Eql    // ==
	Neq    Token = _Neq    // !=
	Lss    Token = _Lss    // <
	Leq    Token = _Leq    // <=
	Gtr    Token = _Gtr    // >
	Geq    Token = _Geq    // >=
	Add    Token = _Add    // +
	Sub    Token = _Sub    // -
	Or     Token = _Or     // |
	Xor    Token = _Xor    // ^
	Mul    Token = _Mul    // *
	Div    Token = _Div    // /
	Rem    Token = _Rem    // %
	And    Token = _And    // &
	Shl    Token = _Shl    // <<
	Shr    Token = _Shr    // >>
	Ushr   Token = _Ushr   // >>>
	Not    Token = _Not    // !
	Tilde  Token = _Tilde  // ~
	Inc    Token = _Inc    // ++
	Dec    Token = _Dec    // --
)

// LitKind represents the kind of a literal token.
type LitKind uint8

const (
	IntLit    LitKind = iota // 123, 0x1F, 0o77, 0b1010
	FloatLit                 // 3.14, 1e10 (scanned, never analyzed)
	StringLit                // "hello", "line\n"
)

// litKindNames maps literal kinds to their string representation.
var litKindNames = [...]string{
	IntLit:    "int",
	FloatLit:  "float",
	StringLit: "string",
}

// String returns the string representation of the literal kind.
func (k LitKind) String() string {
	if k <= StringLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

// keywords maps keyword strings to their token type.
// Predeclared identifiers (int, bool, char, void, true, false) are not
// keywords; they are scanned as _Name and bound in the Universe.
var keywords = map[string]Token{
	"const":   _Const,
	"func":    _Func,
	"package": _Package,
	"struct":  _Struct,
	"type":    _Type,
	"var":     _Var,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
