package types2

import (
	"github.com/you-not-fish/cellc/internal/sema"
	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
)

// Config specifies the configuration for type checking.
type Config struct {
	// Error is called for each type error.
	// If nil, errors are silently ignored.
	Error ErrorHandler

	// Interner creates composite types. Types of one compilation must all
	// come from the same Interner. If nil, a new Interner is used.
	Interner *types.Interner

	// Sizes provides storage layouts.
	// If nil, the checker uses a cache of its own.
	Sizes *types.Sizes
}

// Info holds the results of type checking.
type Info struct {
	// Defs maps defining identifiers to their declared objects.
	Defs map[*syntax.Name]types.Object

	// Uses maps referencing identifiers to their referenced objects.
	Uses map[*syntax.Name]types.Object

	// Inits maps global variables to their typed initializers.
	// Globals without an initializer have no entry.
	Inits map[*types.Var]sema.Expr
}

func (info *Info) init() {
	if info.Defs == nil {
		info.Defs = make(map[*syntax.Name]types.Object)
	}
	if info.Uses == nil {
		info.Uses = make(map[*syntax.Name]types.Object)
	}
	if info.Inits == nil {
		info.Inits = make(map[*types.Var]sema.Expr)
	}
}

// Check type-checks a parsed file.
// It returns the package for the file and the first error encountered, if any.
func Check(filename string, file *syntax.File, conf *Config, info *Info) (*types.Package, error) {
	pkgName := "main"
	if file.PkgName != nil {
		pkgName = file.PkgName.Value
	}
	c := NewChecker(conf, types.NewPackage(pkgName), info)
	err := c.Decls(file.Decls)
	return c.pkg, err
}

// NewChecker returns a checker that adds declarations to pkg. A Checker can
// be fed declarations and expressions incrementally, as an interactive
// session does.
func NewChecker(conf *Config, pkg *types.Package, info *Info) *Checker {
	if conf == nil {
		conf = &Config{}
	}
	if conf.Interner == nil {
		conf.Interner = types.NewInterner()
	}
	if conf.Sizes == nil {
		conf.Sizes = types.NewSizes()
	}
	if info != nil {
		info.init()
	}
	return &Checker{
		conf:      conf,
		info:      info,
		pkg:       pkg,
		in:        conf.Interner,
		scope:     pkg.Scope(),
		pending:   make(map[*types.TypeName]*syntax.TypeDecl),
		recursive: make(map[*types.Struct]bool),
	}
}

// Package returns the package being checked.
func (c *Checker) Package() *types.Package {
	return c.pkg
}

// Decls checks a list of top-level declarations and adds them to the
// package. It returns the first error reported while checking them.
func (c *Checker) Decls(decls []syntax.Decl) error {
	c.reset()
	c.checkDecls(decls)
	return c.err()
}

// Expr analyzes a standalone expression in package scope.
func (c *Checker) Expr(e syntax.Expr) (sema.Expr, error) {
	c.reset()
	x, ok := c.expr(e)
	if err := c.err(); err != nil {
		return nil, err
	}
	if !ok {
		panic("types2: analysis failed without a diagnostic")
	}
	return x, nil
}

// Initializer analyzes e as the initializer of a value of type to.
func (c *Checker) Initializer(to types.Type, e syntax.Expr) (sema.Expr, error) {
	c.reset()
	x, ok := c.initializer(to, e)
	if err := c.err(); err != nil {
		return x, err
	}
	if !ok {
		panic("types2: initializer failed without a diagnostic")
	}
	return x, nil
}
