package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Scanner tokenizes cellc source.
type Scanner struct {
	source

	tok    Token
	lit    string
	kind   LitKind // valid when tok == _Literal
	tokPos Pos

	// nlsemi is set when a newline after the current token ends a declaration.
	nlsemi     bool
	asiEnabled bool

	litBuf strings.Builder
}

// NewScanner creates a Scanner for src.
// errh is called for each lexical error; if nil, errors are silently ignored.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{
		source:     *newSource(filename, src, errh),
		asiEnabled: true,
	}
}

// SetASIEnabled enables or disables automatic semicolon insertion.
func (s *Scanner) SetASIEnabled(enabled bool) {
	s.asiEnabled = enabled
}

// Next advances to the next token.
func (s *Scanner) Next() {
	nlsemi := s.nlsemi
	s.nlsemi = false

redo:
	for isWhitespace(s.ch) {
		s.nextch()
	}

	if s.asiEnabled && nlsemi && (s.ch == '\n' || s.ch < 0) {
		s.tokPos = s.pos()
		s.tok = _Semi
		if s.ch == '\n' {
			s.lit = "newline"
			s.nextch()
		} else {
			s.lit = "EOF"
		}
		return
	}

	if s.ch == '\n' {
		s.nextch()
		goto redo
	}

	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.ident()

	case isDigit(s.ch):
		s.number()

	case s.ch == '"':
		s.stdString()

	case isOperatorStart(s.ch):
		if s.operator() {
			goto redo // comment
		}

	default:
		s.error(fmt.Sprintf("unexpected character %q", s.ch))
		s.nextch()
		goto redo
	}

	switch s.tok {
	case _Name, _Literal, _Rparen, _Rbrack, _Rbrace, _Inc, _Dec:
		s.nlsemi = true
	}
}

// Token returns the current token type.
func (s *Scanner) Token() Token { return s.tok }

// Literal returns the current token's literal text.
func (s *Scanner) Literal() string { return s.lit }

// LitKind returns the current literal's kind (only valid when Token() is a literal).
func (s *Scanner) LitKind() LitKind { return s.kind }

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos { return s.tokPos }

func (s *Scanner) ident() {
	s.litBuf.Reset()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = LookupKeyword(s.lit)
}

// number scans an integer literal in decimal, hex (0x), octal (0o), or binary (0b)
// form. Float syntax is recognized only so that it can be rejected later with a
// precise diagnostic.
func (s *Scanner) number() {
	s.litBuf.Reset()
	s.kind = IntLit
	s.tok = _Literal

	if s.ch == '0' {
		s.take()
		switch lower(s.ch) {
		case 'x':
			s.take()
			s.digits(isHexDigit, "hex")
		case 'o':
			s.take()
			s.digits(isOctalDigit, "octal")
		case 'b':
			s.take()
			s.digits(isBinaryDigit, "binary")
			if isDigit(s.ch) {
				s.error("invalid binary digit")
			}
		default:
			for isDigit(s.ch) {
				s.take()
			}
			s.fraction()
		}
	} else {
		for isDigit(s.ch) {
			s.take()
		}
		s.fraction()
	}

	s.lit = s.litBuf.String()
}

func (s *Scanner) take() {
	s.litBuf.WriteRune(s.ch)
	s.nextch()
}

func (s *Scanner) digits(valid func(rune) bool, base string) {
	if !valid(s.ch) {
		s.error("invalid " + base + " digit")
		return
	}
	for valid(s.ch) {
		s.take()
	}
}

func (s *Scanner) fraction() {
	if s.ch == '.' && isDigit(s.peek()) {
		s.kind = FloatLit
		s.take()
		for isDigit(s.ch) {
			s.take()
		}
	}
	if lower(s.ch) == 'e' {
		s.kind = FloatLit
		s.take()
		if s.ch == '+' || s.ch == '-' {
			s.take()
		}
		if !isDigit(s.ch) {
			s.error("exponent has no digits")
			return
		}
		for isDigit(s.ch) {
			s.take()
		}
	}
}

// stdString scans a double-quoted string. The literal holds the decoded bytes.
func (s *Scanner) stdString() {
	s.nextch() // opening "
	var b strings.Builder

	s.tok = _Literal
	s.kind = StringLit
	for {
		switch {
		case s.ch == '"':
			s.nextch()
			s.lit = b.String()
			return
		case s.ch == '\\':
			if c, ok := s.escape(); ok {
				b.WriteByte(c)
			}
		case s.ch == '\n' || s.ch < 0:
			s.error("string not terminated")
			s.lit = b.String()
			return
		default:
			b.WriteRune(s.ch)
			s.nextch()
		}
	}
}

// escape scans an escape sequence and returns the byte it denotes.
func (s *Scanner) escape() (byte, bool) {
	s.nextch() // backslash

	c := s.ch
	switch c {
	case 'n':
		s.nextch()
		return '\n', true
	case 't':
		s.nextch()
		return '\t', true
	case 'r':
		s.nextch()
		return '\r', true
	case '\\', '"':
		s.nextch()
		return byte(c), true
	case '0':
		s.nextch()
		return 0, true
	case 'x':
		s.nextch()
		var v byte
		for i := 0; i < 2; i++ {
			if !isHexDigit(s.ch) {
				s.error("invalid hex escape")
				return 0, false
			}
			v = v*16 + hexValue(s.ch)
			s.nextch()
		}
		return v, true
	}
	s.error(fmt.Sprintf("unknown escape sequence: \\%c", c))
	s.nextch()
	return 0, false
}

func hexValue(r rune) byte {
	if isDigit(r) {
		return byte(r - '0')
	}
	return byte(lower(r) - 'a' + 10)
}

// operator scans an operator or delimiter. It reports true if it consumed a
// comment instead, in which case no token was produced.
func (s *Scanner) operator() bool {
	ch := s.ch
	s.nextch()

	// two-rune operators made of a doubled rune
	doubled := func(single, double Token) {
		if s.ch == ch {
			s.nextch()
			s.tok = double
		} else {
			s.tok = single
		}
	}

	switch ch {
	case '+':
		doubled(_Add, _Inc)
	case '-':
		doubled(_Sub, _Dec)
	case '&':
		doubled(_And, _AndAnd)
	case '|':
		doubled(_Or, _OrOr)
	case '*':
		s.tok = _Mul
	case '/':
		switch s.ch {
		case '/':
			for s.ch != '\n' && s.ch >= 0 {
				s.nextch()
			}
			return true
		case '*':
			s.blockComment()
			return true
		}
		s.tok = _Div
	case '%':
		s.tok = _Rem
	case '^':
		s.tok = _Xor
	case '~':
		s.tok = _Tilde
	case '?':
		s.tok = _Question
	case '<':
		switch s.ch {
		case '=':
			s.nextch()
			s.tok = _Leq
		case '<':
			s.nextch()
			s.tok = _Shl
		default:
			s.tok = _Lss
		}
	case '>':
		switch s.ch {
		case '=':
			s.nextch()
			s.tok = _Geq
		case '>':
			s.nextch()
			s.tok = _Shr
			if s.ch == '>' {
				s.nextch()
				s.tok = _Ushr
			}
		default:
			s.tok = _Gtr
		}
	case '=':
		doubled(_Assign, _Eql)
	case '!':
		if s.ch == '=' {
			s.nextch()
			s.tok = _Neq
		} else {
			s.tok = _Not
		}
	case ':':
		s.tok = _Colon
	case '(':
		s.tok = _Lparen
	case ')':
		s.tok = _Rparen
	case '[':
		s.tok = _Lbrack
	case ']':
		s.tok = _Rbrack
	case '{':
		s.tok = _Lbrace
	case '}':
		s.tok = _Rbrace
	case ',':
		s.tok = _Comma
	case ';':
		s.tok = _Semi
	case '.':
		s.tok = _Dot
	}
	s.lit = s.tok.String()
	return false
}

func (s *Scanner) blockComment() {
	s.nextch() // '*'
	for s.ch >= 0 {
		if s.ch == '*' && s.peek() == '/' {
			s.nextch()
			s.nextch()
			return
		}
		s.nextch()
	}
	s.error("comment not terminated")
}
