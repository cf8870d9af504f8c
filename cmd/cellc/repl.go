package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"
	"github.com/pkg/errors"

	"github.com/you-not-fish/cellc/internal/codegen"
	"github.com/you-not-fish/cellc/internal/sema"
	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
	"github.com/you-not-fish/cellc/internal/types2"
)

const (
	promptMain = "cell> "
	replFile   = "<repl>"
)

const replHelp = `Enter a declaration (type, var, func) to add it to the session,
or an expression to print its analyzed tree.

Commands:
  :layout   print storage layouts of the session's declarations
  :data     print the data section listing
  :help     show this message
  :quit     leave the session`

// session is an interactive checking session. Declarations accumulate in
// one package; each expression is analyzed against them.
type session struct {
	checker *types2.Checker
	info    *types2.Info
	sizes   *types.Sizes

	out, errOut io.Writer
}

func newSession(out, errOut io.Writer) *session {
	s := &session{
		info:   &types2.Info{},
		sizes:  types.NewSizes(),
		out:    out,
		errOut: errOut,
	}
	conf := &types2.Config{
		Error: func(err *types2.TypeError) {
			fmt.Fprintln(s.errOut, formatTypeError(err))
		},
		Sizes: s.sizes,
	}
	s.checker = types2.NewChecker(conf, types.NewPackage("repl"), s.info)
	return s
}

// isDecl reports whether line starts a declaration.
func isDecl(line string) bool {
	for _, kw := range []string{"type", "var", "func"} {
		if rest, ok := strings.CutPrefix(line, kw); ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
			return true
		}
	}
	return false
}

// eval handles one line of input. It returns false once the session
// should end.
func (s *session) eval(line string) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return true
	case strings.HasPrefix(line, ":"):
		return s.command(line)
	}

	var parseErrs []string
	p := syntax.NewParser(replFile, strings.NewReader(line), func(pos syntax.Pos, msg string) {
		parseErrs = append(parseErrs, fmt.Sprintf("%s: %s", pos, msg))
	})

	start := time.Now()
	if isDecl(line) {
		decls := p.ParseDecls()
		if s.reportSyntax(parseErrs) {
			return true
		}
		if err := s.checker.Decls(decls); err != nil {
			tracer.Print(errors.Wrap(err, "decls"))
		}
		phase("decls", start)
		return true
	}

	x := p.ParseExpr()
	if s.reportSyntax(parseErrs) {
		return true
	}
	e, err := s.checker.Expr(x)
	phase("expr", start)
	if err != nil {
		tracer.Print(errors.Wrap(err, "expr"))
		return true
	}
	sema.Fprint(s.out, e)
	return true
}

func (s *session) reportSyntax(errs []string) bool {
	for _, e := range errs {
		fmt.Fprintln(s.errOut, e)
	}
	return len(errs) > 0
}

func (s *session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return false
	case ":help":
		fmt.Fprintln(s.out, replHelp)
	case ":layout":
		if err := codegen.WriteLayouts(s.out, s.checker.Package(), s.sizes); err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
		}
	case ":data":
		plan, err := codegen.PlanData(s.checker.Package(), s.info.Inits, s.sizes)
		if err == nil {
			err = plan.WriteListing(s.out)
		}
		if err != nil {
			fmt.Fprintf(s.errOut, "error: %v\n", err)
		}
	default:
		fmt.Fprintf(s.errOut, "unknown command %s. Type :help for a list.\n", cmd)
	}
	return true
}

// runREPL reads lines from the terminal until EOF or :quit.
func runREPL() int {
	fmt.Printf("cellc %s interactive session. Type :help for help.\n", Version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	s := newSession(os.Stdout, os.Stderr)
	for {
		line, err := ln.Prompt(promptMain)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}

		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		if !s.eval(line) {
			return 0
		}
	}
}
