package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/you-not-fish/cellc/internal/syntax"
)

const pointSrc = `package main

type Point struct {
	x int
	y int
	label [8]char
}

var count int = 7
var origin Point = {x: 1, label: "o"}
var grid [2][3]int
`

func TestRunEmitDataListing(t *testing.T) {
	filename := writeTempCellFile(t, pointSrc)
	code, out, errOut := captureOutput(t, func() int {
		return runEmitData(filename, "")
	})

	if code != 0 {
		t.Fatalf("runEmitData exit=%d\nstderr:\n%s\nstdout:\n%s", code, errOut, out)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
	for _, want := range []string{
		"; data section: package main, 3 globals, 56 bytes",
		"@0 count int size=4",
		"@4 origin Point size=20 iv=0 data=20",
		`  init {x: 1, y: _, label: "o"}`,
		"@24 grid [2][3]int size=32 iv=8 data=24",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestRunEmitDataOutputFile(t *testing.T) {
	filename := writeTempCellFile(t, pointSrc)
	outFile := filepath.Join(t.TempDir(), "out.lst")
	code, out, errOut := captureOutput(t, func() int {
		return runEmitData(filename, outFile)
	})

	if code != 0 {
		t.Fatalf("runEmitData exit=%d\nstderr:\n%s", code, errOut)
	}
	if out != "" {
		t.Fatalf("listing written to stdout:\n%s", out)
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "; data section: package main") {
		t.Fatalf("output file:\n%s", data)
	}
}

func TestRunEmitLayout(t *testing.T) {
	filename := writeTempCellFile(t, pointSrc)
	code, out, errOut := captureOutput(t, func() int {
		return runEmitLayout(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitLayout exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{
		"struct Point size=20 iv=0 data=20",
		"  label [8]char +8",
		"type [2][3]int size=32 iv=8 data=24",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("layout output missing %q:\n%s", want, out)
		}
	}
}

func TestRunEmitTyped(t *testing.T) {
	src := `package main

var k int = 3
var n int = k + 1
var s [4]char = "ab"
`
	filename := writeTempCellFile(t, src)
	code, out, errOut := captureOutput(t, func() int {
		return runEmitTyped(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitTyped exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{
		"var n int",
		"Binary + <int>",
		"  Var k <int>",
		"  ConstValue 1 <int>",
		`String "ab"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("typed output missing %q:\n%s", want, out)
		}
	}
}

func TestTypeErrorsReportCode(t *testing.T) {
	src := `package main

var b bool
var n int = b + 1
var m int = nope
`
	filename := writeTempCellFile(t, src)
	code, out, errOut := captureOutput(t, func() int {
		return runEmitData(filename, "")
	})

	if code != 1 {
		t.Fatalf("runEmitData exit=%d, want 1\nstdout:\n%s", code, out)
	}
	if out != "" {
		t.Errorf("listing produced despite errors:\n%s", out)
	}
	for _, want := range []string{"[TYPE_MISMATCH]", "undefined: nope [UNDEFINED]"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr missing %q:\n%s", want, errOut)
		}
	}
}

func TestSyntaxErrorStopsCheck(t *testing.T) {
	filename := writeTempCellFile(t, "package main\n\nvar = 3\n")
	code, _, errOut := captureOutput(t, func() int {
		return runEmitLayout(filename)
	})

	if code != 1 {
		t.Fatalf("exit=%d, want 1", code)
	}
	if errOut == "" || strings.Contains(errOut, "[") {
		t.Errorf("want only syntax errors on stderr, got:\n%s", errOut)
	}
}

func TestRunEmitTokens(t *testing.T) {
	filename := writeTempCellFile(t, "package main\nvar s []char = \"a\\n\"\n")
	code, out, errOut := captureOutput(t, func() int {
		return runEmitTokens(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitTokens exit=%d\nstderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, "POSITION") || !strings.Contains(out, `"a\n"`) {
		t.Errorf("token output:\n%s", out)
	}
}

func TestRunEmitASTJSON(t *testing.T) {
	filename := writeTempCellFile(t, "package main\nvar x int = 1\n")
	old := *astFormat
	*astFormat = "json"
	defer func() { *astFormat = old }()

	code, out, errOut := captureOutput(t, func() int {
		return runEmitAST(filename)
	})

	if code != 0 {
		t.Fatalf("runEmitAST exit=%d\nstderr:\n%s", code, errOut)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("want JSON output, got:\n%s", out)
	}
}

func TestMissingFile(t *testing.T) {
	code, _, errOut := captureOutput(t, func() int {
		return runEmitTyped(filepath.Join(t.TempDir(), "missing.cell"))
	})
	if code != 1 {
		t.Fatalf("exit=%d, want 1", code)
	}
	if !strings.HasPrefix(errOut, "error: ") || strings.Count(errOut, "\n") != 1 {
		t.Errorf("stderr:\n%s", errOut)
	}
}

func TestCountNodes(t *testing.T) {
	parse := func(src string) *syntax.File {
		p := syntax.NewParser("test.cell", strings.NewReader(src), func(pos syntax.Pos, msg string) {
			t.Fatalf("%s: %s", pos, msg)
		})
		return p.Parse()
	}
	one := countNodes(parse("package main\nvar x int = 1\n"))
	two := countNodes(parse("package main\nvar x int = 1\nvar y int = x + 2\n"))
	if one < 4 || two <= one {
		t.Errorf("countNodes = %d and %d", one, two)
	}
}

func TestFormatLiteral(t *testing.T) {
	tests := []struct {
		lit  string
		want string
	}{
		{"", `""`},
		{"abc", `"abc"`},
		{"a\nb", `"a\nb"`},
		{"q\"\\", `"q\"\\"`},
		{"\x00", `"\0"`},
	}
	for _, tt := range tests {
		if got := formatLiteral(tt.lit); got != tt.want {
			t.Errorf("formatLiteral(%q) = %s, want %s", tt.lit, got, tt.want)
		}
	}
}

func TestSessionIncremental(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newSession(&out, &errOut)

	for _, line := range []string{
		"type Pair struct { a int; b int }",
		"var x int",
		"var p Pair = {b: 2}",
		"x + 1",
	} {
		if !s.eval(line) {
			t.Fatalf("eval(%q) ended the session", line)
		}
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected errors:\n%s", errOut.String())
	}
	want := "Binary + <int>\n  Var x <int>\n  ConstValue 1 <int>\n"
	if out.String() != want {
		t.Errorf("expression tree:\n%s\nwant:\n%s", out.String(), want)
	}

	out.Reset()
	s.eval(":data")
	for _, want := range []string{"@0 x int size=4", "@4 p Pair size=8 iv=0 data=8", "  init {a: _, b: 2}"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf(":data missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	s.eval(":layout")
	if !strings.Contains(out.String(), "struct Pair size=8 iv=0 data=8") {
		t.Errorf(":layout output:\n%s", out.String())
	}
}

func TestSessionErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newSession(&out, &errOut)

	s.eval("y + 1")
	if !strings.Contains(errOut.String(), "undefined: y [UNDEFINED]") {
		t.Errorf("stderr:\n%s", errOut.String())
	}

	errOut.Reset()
	s.eval("var x int")
	s.eval("var x int")
	if !strings.Contains(errOut.String(), "[REDECLARED]") {
		t.Errorf("redeclaration not reported:\n%s", errOut.String())
	}

	errOut.Reset()
	s.eval("x +")
	if errOut.Len() == 0 || strings.Contains(errOut.String(), "[") {
		t.Errorf("want a syntax error, got:\n%s", errOut.String())
	}

	errOut.Reset()
	s.eval(":bogus")
	if !strings.Contains(errOut.String(), "unknown command :bogus") {
		t.Errorf("stderr:\n%s", errOut.String())
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if s.eval(":quit") {
		t.Error(":quit did not end the session")
	}
}

func TestSessionRecursiveStruct(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newSession(&out, &errOut)

	s.eval("type A struct { a A }")
	if !strings.Contains(errOut.String(), "[INVALID_RECURSIVE_TYPE]") {
		t.Fatalf("stderr:\n%s", errOut.String())
	}
	errOut.Reset()
	s.eval("var x A")
	if !strings.Contains(errOut.String(), "[INVALID_DECL]") {
		t.Errorf("stderr:\n%s", errOut.String())
	}
	s.eval("type P struct { n int }")
	s.eval("var p P")

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.eval(":layout")
		s.eval(":data")
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal(":layout and :data did not return")
	}

	if strings.Contains(out.String(), "struct A") {
		t.Errorf("recursive struct listed:\n%s", out.String())
	}
	for _, want := range []string{"struct P size=4 iv=0 data=4", " p P size=4"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestIsDecl(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"var x int", true},
		{"type T struct { a int }", true},
		{"func f() int", true},
		{"variable + 1", false},
		{"types", false},
		{"f(1)", false},
	}
	for _, tt := range tests {
		if got := isDecl(tt.line); got != tt.want {
			t.Errorf("isDecl(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func writeTempCellFile(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, "input.cell")
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureOutput(t *testing.T, fn func() int) (code int, stdout string, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stderr: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
