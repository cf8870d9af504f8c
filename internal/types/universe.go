package types

import "github.com/you-not-fish/cellc/internal/syntax"

// Universe is the root scope containing all predeclared objects.
var Universe *Scope

// Predeclared objects accessible via the Universe scope.
var (
	universeInt  *TypeName
	universeBool *TypeName
	universeChar *TypeName
	universeVoid *TypeName

	universeTrue  *Var
	universeFalse *Var
)

func init() {
	Universe = NewScope(nil, syntax.NoPos, "universe")

	defPredeclaredTypes()
	defPredeclaredConsts()
}

// defPredeclaredTypes defines int, bool, char, void in Universe.
func defPredeclaredTypes() {
	for _, kind := range []BasicKind{Int32, Bool, Char, Void} {
		typ := Typ[kind]
		obj := NewTypeName(syntax.NoPos, typ.name, typ)
		Universe.Insert(obj)

		switch kind {
		case Int32:
			universeInt = obj
		case Bool:
			universeBool = obj
		case Char:
			universeChar = obj
		case Void:
			universeVoid = obj
		}
	}
}

// defPredeclaredConsts defines true and false as const bool variables.
func defPredeclaredConsts() {
	universeTrue = NewVar(syntax.NoPos, "true", constBasic[Bool])
	Universe.Insert(universeTrue)

	universeFalse = NewVar(syntax.NoPos, "false", constBasic[Bool])
	Universe.Insert(universeFalse)
}

// Predeclared type accessors
func UniverseInt() *TypeName  { return universeInt }
func UniverseBool() *TypeName { return universeBool }
func UniverseChar() *TypeName { return universeChar }
func UniverseVoid() *TypeName { return universeVoid }

// Predeclared constant accessors
func UniverseTrue() *Var  { return universeTrue }
func UniverseFalse() *Var { return universeFalse }
