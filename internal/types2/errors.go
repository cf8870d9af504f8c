// Package types2 implements semantic analysis for cellc: declaration
// checking, expression lowering to the typed tree of package sema, implicit
// coercions, and struct initializer validation.
package types2

import (
	"fmt"

	"github.com/you-not-fish/cellc/internal/syntax"
)

// Code identifies the kind of a TypeError.
type Code int

const (
	_ Code = iota

	// Expression analysis
	TypeMismatch
	UnsupportedConstruct
	CalleeNotFunction
	ArgCountNotSupported
	IllegalLValue
	LValueIsConst
	IntLiteralOutOfRange
	IndexMustBePositive
	IndexOutOfBounds
	CannotIndexType
	LiteralTooLarge

	// Struct initializers
	StructInitNeedsStruct
	StructInitAppearsTwice
	StructInitNeedsStringLit
	StructInitNeedsConstInt
	StructUnsupportedType
	StructFieldNotFound

	// Declarations
	Undefined
	Redeclared
	NotAType
	InvalidArrayLength
	InvalidUseOfVoid
	InvalidRecursiveType
	EmptyStruct
	StorageTooLarge
	InvalidDecl
)

var codeNames = [...]string{
	TypeMismatch:             "TYPE_MISMATCH",
	UnsupportedConstruct:     "UNSUPPORTED_CONSTRUCT",
	CalleeNotFunction:        "CALLEE_NOT_FUNCTION",
	ArgCountNotSupported:     "ARGCOUNT_NOT_SUPPORTED",
	IllegalLValue:            "ILLEGAL_LVALUE",
	LValueIsConst:            "LVALUE_IS_CONST",
	IntLiteralOutOfRange:     "INT_LITERAL_OUT_OF_RANGE",
	IndexMustBePositive:      "INDEX_MUST_BE_POSITIVE",
	IndexOutOfBounds:         "INDEX_OUT_OF_BOUNDS",
	CannotIndexType:          "CANNOT_INDEX_TYPE",
	LiteralTooLarge:          "LITERAL_TOO_LARGE",
	StructInitNeedsStruct:    "STRUCT_INIT_NEEDS_STRUCT",
	StructInitAppearsTwice:   "STRUCT_INIT_APPEARS_TWICE",
	StructInitNeedsStringLit: "STRUCT_INIT_NEEDS_STRING_LIT",
	StructInitNeedsConstInt:  "STRUCT_INIT_NEEDS_CONST_INT",
	StructUnsupportedType:    "STRUCT_UNSUPPORTED_TYPE",
	StructFieldNotFound:      "STRUCT_FIELD_NOT_FOUND",
	Undefined:                "UNDEFINED",
	Redeclared:               "REDECLARED",
	NotAType:                 "NOT_A_TYPE",
	InvalidArrayLength:       "INVALID_ARRAY_LENGTH",
	InvalidUseOfVoid:         "INVALID_USE_OF_VOID",
	InvalidRecursiveType:     "INVALID_RECURSIVE_TYPE",
	EmptyStruct:              "EMPTY_STRUCT",
	StorageTooLarge:          "STORAGE_TOO_LARGE",
	InvalidDecl:              "INVALID_DECL",
}

func (c Code) String() string {
	if c > 0 && int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// TypeError represents a semantic error.
type TypeError struct {
	Pos  syntax.Pos
	Code Code
	Msg  string
}

// Error implements the error interface.
func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorHandler is a function called for each type error.
type ErrorHandler func(err *TypeError)

// errorf reports a type checking error at the given position.
func (c *Checker) errorf(pos syntax.Pos, code Code, format string, args ...interface{}) {
	err := &TypeError{Pos: pos, Code: code, Msg: fmt.Sprintf(format, args...)}

	if c.errors == 0 {
		c.first = err
	}
	c.errors++

	if c.conf.Error != nil {
		c.conf.Error(err)
	}
}

// exprString returns the source form of n for use in messages.
func exprString(n syntax.Node) string {
	if e, ok := n.(syntax.Expr); ok {
		return syntax.ExprString(e)
	}
	return fmt.Sprintf("%T", n)
}
