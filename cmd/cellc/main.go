// Package main implements the cellc front end entry point.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/you-not-fish/cellc/internal/codegen"
	"github.com/you-not-fish/cellc/internal/sema"
	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
	"github.com/you-not-fish/cellc/internal/types2"
)

// Compiler flags
var (
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	noASI      = flag.Bool("no-asi", false, "Disable automatic semicolon insertion")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	astFormat  = flag.String("ast-format", "text", "AST output format (text or json)")
	emitTyped  = flag.Bool("emit-typed", false, "Output typed global initializers")
	emitLayout = flag.Bool("emit-layout", false, "Output storage layouts")
	emitData   = flag.Bool("emit-data", false, "Output data section listing (default)")
	output     = flag.String("o", "", "Output file")
	repl       = flag.Bool("repl", false, "Start an interactive session")
	version    = flag.Bool("version", false, "Print version")
	trace      = flag.Bool("trace", false, "Output timing trace")
)

// Version information
const Version = "0.1.0-dev"

// tracer logs phase timings to stderr when -trace is set.
var tracer = log.New(io.Discard, "", 0)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "cellc %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: cellc [options] <file.cell>\n")
		fmt.Fprintf(os.Stderr, "       cellc -repl\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("cellc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	if *trace {
		tracer = log.New(os.Stderr, "trace: ", log.Lmicroseconds)
	}

	if *repl {
		os.Exit(runREPL())
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: cellc [options] <file.cell>")
		os.Exit(1)
	}

	filename := args[0]

	switch {
	case *emitTokens:
		os.Exit(runEmitTokens(filename))
	case *emitAST:
		os.Exit(runEmitAST(filename))
	case *emitTyped:
		os.Exit(runEmitTyped(filename))
	case *emitLayout:
		os.Exit(runEmitLayout(filename))
	default:
		os.Exit(runEmitData(filename, *output))
	}
}

// phase logs the duration of a front end phase started at start.
func phase(name string, start time.Time) {
	tracer.Printf("%-8s %v", name, time.Since(start))
}

func countNodes(n syntax.Node) int {
	count := 0
	syntax.Inspect(n, func(syntax.Node) bool {
		count++
		return true
	})
	return count
}

// formatTypeError renders err with its diagnostic code.
func formatTypeError(err *types2.TypeError) string {
	return fmt.Sprintf("%s [%s]", err, err.Code)
}

// unit is a parsed and checked source file.
type unit struct {
	file  *syntax.File
	pkg   *types.Package
	info  *types2.Info
	sizes *types.Sizes
}

// load parses and type-checks filename. Diagnostics go to stderr; the
// returned error is non-nil if any were reported and is only traced.
func load(filename string) (*unit, error) {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return nil, err
	}
	defer f.Close()

	var parseErrs []string
	parseErrh := func(pos syntax.Pos, msg string) {
		parseErrs = append(parseErrs, fmt.Sprintf("%s: %s", pos, msg))
	}

	start := time.Now()
	p := syntax.NewParser(filename, f, parseErrh)
	if *noASI {
		p.SetASIEnabled(false)
	}
	ast := p.Parse()
	phase("parse", start)
	if *trace {
		tracer.Printf("%d syntax nodes", countNodes(ast))
	}

	for _, e := range parseErrs {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(parseErrs) > 0 {
		return nil, errors.Errorf("%s: %d syntax errors", filename, len(parseErrs))
	}

	var typeErrs []string
	conf := &types2.Config{
		Error: func(err *types2.TypeError) {
			typeErrs = append(typeErrs, formatTypeError(err))
		},
		Sizes: types.NewSizes(),
	}
	info := &types2.Info{}

	start = time.Now()
	pkg, _ := types2.Check(filename, ast, conf, info)
	phase("check", start)

	for _, e := range typeErrs {
		fmt.Fprintln(os.Stderr, e)
	}
	if len(typeErrs) > 0 {
		return nil, errors.Errorf("%s: %d type errors", filename, len(typeErrs))
	}
	return &unit{file: ast, pkg: pkg, info: info, sizes: conf.Sizes}, nil
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	var errs []string
	errh := func(pos syntax.Pos, msg string) {
		errs = append(errs, fmt.Sprintf("%s: %s", pos, msg))
	}

	p := syntax.NewParser(filename, f, errh)
	if *noASI {
		p.SetASIEnabled(false)
	}
	ast := p.Parse()

	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}

	switch *astFormat {
	case "json":
		if err := syntax.FprintJSON(os.Stdout, ast); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	default:
		syntax.Fprint(os.Stdout, ast)
	}

	if len(errs) > 0 {
		return 1
	}
	return 0
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	var errs []string
	errh := func(line, col uint32, msg string) {
		errs = append(errs, fmt.Sprintf("%s:%d:%d: %s", filename, line, col, msg))
	}

	s := syntax.NewScanner(filename, f, errh)
	if *noASI {
		s.SetASIEnabled(false)
	}

	fmt.Printf("%-20s %-12s %s\n", "POSITION", "TOKEN", "LITERAL")
	fmt.Printf("%-20s %-12s %s\n", strings.Repeat("-", 20), strings.Repeat("-", 12), strings.Repeat("-", 20))

	for {
		s.Next()
		tok := s.Token()
		fmt.Printf("%-20s %-12s %s\n", s.Pos(), tok, formatLiteral(s.Literal()))
		if tok.IsEOF() {
			break
		}
	}

	if len(errs) > 0 {
		fmt.Println()
		fmt.Println("Errors:")
		for _, e := range errs {
			fmt.Printf("  %s\n", e)
		}
		return 1
	}
	return 0
}

// formatLiteral formats a literal for display, escaping special characters.
func formatLiteral(lit string) string {
	if lit == "" {
		return `""`
	}

	var b strings.Builder
	b.WriteRune('"')
	for _, r := range lit {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case 0:
			b.WriteString(`\0`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteRune('"')
	return b.String()
}

// runEmitTyped prints the analyzed initializer tree of every global.
func runEmitTyped(filename string) int {
	u, err := load(filename)
	if err != nil {
		tracer.Print(err)
		return 1
	}

	for _, v := range u.pkg.Globals() {
		fmt.Printf("var %s %s\n", v.Name(), v.Type())
		if init := u.info.Inits[v]; init != nil {
			sema.Fprint(os.Stdout, init)
		}
	}
	return 0
}

// runEmitLayout prints the storage layout of every struct and global type.
func runEmitLayout(filename string) int {
	u, err := load(filename)
	if err != nil {
		tracer.Print(err)
		return 1
	}

	start := time.Now()
	err = codegen.WriteLayouts(os.Stdout, u.pkg, u.sizes)
	phase("layout", start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// runEmitData lays out the data section and writes its listing to
// outFile, or stdout if outFile is empty.
func runEmitData(filename, outFile string) int {
	u, err := load(filename)
	if err != nil {
		tracer.Print(err)
		return 1
	}

	start := time.Now()
	plan, err := codegen.PlanData(u.pkg, u.info.Inits, u.sizes)
	phase("plan", start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if err := writeListing(plan, outFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func writeListing(plan *codegen.Plan, outFile string) error {
	if outFile == "" {
		return plan.WriteListing(os.Stdout)
	}
	out, err := os.Create(outFile)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := plan.WriteListing(out); err != nil {
		out.Close()
		return errors.Wrapf(err, "write %s", outFile)
	}
	return out.Close()
}
