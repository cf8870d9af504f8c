package syntax

import (
	"io"
	"unicode/utf8"
)

// source reads a whole file into memory and hands out one rune at a time,
// keeping the 1-based line and column of the current rune.
type source struct {
	buf      []byte
	filename string
	line     uint32
	col      uint32

	ch   rune // current rune; -1 before the first rune and at EOF
	offs int  // byte offset of the next rune in buf

	errh func(line, col uint32, msg string)
}

// newSource creates a source reading all of src.
// errh may be nil, in which case errors are dropped.
func newSource(filename string, src io.Reader, errh func(line, col uint32, msg string)) *source {
	s := &source{filename: filename, line: 1, ch: -1, errh: errh}

	buf, err := io.ReadAll(src)
	if err != nil {
		s.error("error reading source file: " + err.Error())
		return s
	}
	s.buf = buf
	s.nextch()
	return s
}

// nextch advances to the next rune. After it returns, (line, col) is the
// position of s.ch.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, w := utf8.DecodeRune(s.buf[s.offs:])
	if r == utf8.RuneError && w == 1 {
		s.error("invalid UTF-8 encoding")
	}
	s.ch = r
	s.offs += w
}

// peek returns the rune after s.ch without consuming anything.
func (s *source) peek() rune {
	if s.offs >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.buf[s.offs:])
	return r
}

func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

func (s *source) error(msg string) {
	if s.errh != nil {
		s.errh(s.line, s.col, msg)
	}
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= lower(r) && lower(r) <= 'f'
}

func isOctalDigit(r rune) bool {
	return '0' <= r && r <= '7'
}

func isBinaryDigit(r rune) bool {
	return r == '0' || r == '1'
}

// lower folds an ASCII letter to lower case; other runes are returned with
// bit 0x20 set, which never turns a non-letter into a letter we test for.
func lower(r rune) rune {
	return ('a' - 'A') | r
}

// isWhitespace excludes '\n', which may trigger semicolon insertion.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

func isOperatorStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '&', '|', '^', '<', '>', '=', '!', '~', '?', ':',
		'(', ')', '[', ']', '{', '}', ',', ';', '.':
		return true
	}
	return false
}
