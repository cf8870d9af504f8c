// Package syntax implements lexical and syntactic analysis for cellc source files.
package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// All nodes implement Node. Expressions (including type expressions) further
// implement Expr, and top-level declarations implement Decl.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Decl is the interface for all declaration nodes.
type Decl interface {
	Node
	aDecl()
}

// Symbol is the entity a Name was bound to by name resolution.
// It is implemented by the objects of package types.
type Symbol interface {
	Name() string
	Pos() Pos
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// SetPos sets the node position. It is used by code that synthesizes trees
// without going through the parser.
func (n *node) SetPos(pos Pos) { n.pos = pos }

type expr struct{ node }

func (*expr) aExpr() {}

type decl struct{ node }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Files and Declarations

// File represents a complete source file.
type File struct {
	node
	PkgName *Name  // package name
	Decls   []Decl // top-level declarations
}

// TypeDecl represents a type declaration: type Name Type
type TypeDecl struct {
	decl
	Name *Name
	Type Expr
}

// VarDecl represents a global variable declaration: var Name Type [= Value]
type VarDecl struct {
	decl
	Name  *Name
	Type  Expr
	Value Expr // initializer, nil if none; may be a *StructInit
}

// FuncDecl represents a function signature: func Name(Params) [Result]
// Function bodies are compiled elsewhere; only the signature is analyzed here.
// Inside a struct body a FuncDecl declares a method.
type FuncDecl struct {
	decl
	Name   *Name
	Params []*Field
	Result Expr // nil for void
}

// Field represents a named field in a struct body or parameter list.
type Field struct {
	node
	Name *Name
	Type Expr
}

// ----------------------------------------------------------------------------
// Expressions

// Name represents an identifier.
type Name struct {
	expr
	Value string
	Sym   Symbol // bound symbol, nil until resolved
}

// BasicLit represents a literal value.
type BasicLit struct {
	expr
	Value string  // literal text; decoded contents for strings
	Kind  LitKind // IntLit, FloatLit, StringLit
}

// Operation represents a unary or binary operation.
// For unary operations, Y is nil.
type Operation struct {
	expr
	Op Token
	X  Expr
	Y  Expr
}

// IncDecExpr represents ++X, --X, X++ or X--.
type IncDecExpr struct {
	expr
	Op      Token // Inc or Dec
	X       Expr
	Postfix bool
}

// CallExpr represents a function call: Fun(Args...)
type CallExpr struct {
	expr
	Fun  Expr
	Args []Expr
}

// IndexExpr represents an index expression: X[Index]
type IndexExpr struct {
	expr
	X     Expr
	Index Expr
}

// SelectorExpr represents a selector expression: X.Sel
type SelectorExpr struct {
	expr
	X   Expr
	Sel *Name
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr
}

// TernaryExpr represents Cond ? X : Y.
type TernaryExpr struct {
	expr
	Cond Expr
	X    Expr
	Y    Expr
}

// StructInit represents a named struct initializer: { name: value, ... }
type StructInit struct {
	expr
	Pairs []*NameValue
}

// NameValue is one name: value entry of a StructInit.
type NameValue struct {
	node
	Name  *Name
	Value Expr
}

// ----------------------------------------------------------------------------
// Type Expressions

// ArrayType represents [Len]Elem, or []Elem when Len is nil.
type ArrayType struct {
	expr
	Len  Expr
	Elem Expr
}

// ConstType represents a const-qualified type: const Base
type ConstType struct {
	expr
	Base Expr
}

// StructType represents struct { members }.
// Body holds *Field and *FuncDecl entries in declaration order.
type StructType struct {
	expr
	Body []Node
}
