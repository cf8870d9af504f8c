package codegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
	"github.com/you-not-fish/cellc/internal/types2"
)

const testSrc = `
package main

type Point struct {
	x int
	y int
	func len() int
	label [8]char
}

var count int = 7
var origin Point = {x: 1, label: "o"}
var grid [2][3]int
var greeting []char = "hello"
var flag bool
`

// checkPackage parses and checks src, failing the test on any error.
func checkPackage(t *testing.T, src string) (*types.Package, *types2.Info, *types.Sizes) {
	t.Helper()
	p := syntax.NewParser("test.cell", strings.NewReader(src), func(pos syntax.Pos, msg string) {
		t.Fatalf("%s: %s", pos, msg)
	})
	file := p.Parse()

	sizes := types.NewSizes()
	info := &types2.Info{}
	pkg, err := types2.Check("test.cell", file, &types2.Config{Sizes: sizes}, info)
	if err != nil {
		t.Fatal(err)
	}
	return pkg, info, sizes
}

func TestPlanData(t *testing.T) {
	pkg, info, sizes := checkPackage(t, testSrc)
	plan, err := PlanData(pkg, info.Inits, sizes)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		addr int32
		size int32
	}{
		{"count", 0, 4},
		{"origin", 4, 20},
		{"grid", 24, 32},
		{"greeting", 56, 8},
		{"flag", 64, 4},
	}
	for _, tt := range tests {
		g := plan.Lookup(tt.name)
		if g == nil {
			t.Fatalf("no placement for %s", tt.name)
		}
		if g.Addr != tt.addr || g.Size != tt.size {
			t.Errorf("%s: addr=%d size=%d, want addr=%d size=%d", tt.name, g.Addr, g.Size, tt.addr, tt.size)
		}
		if g.Addr%4 != 0 {
			t.Errorf("%s: address %d is not cell aligned", tt.name, g.Addr)
		}
	}
	if plan.Size != 68 {
		t.Errorf("Size = %d, want 68", plan.Size)
	}

	origin := plan.Lookup("origin")
	if len(origin.Fields) != 3 || origin.Fields[0] != 0 || origin.Fields[1] != 4 || origin.Fields[2] != 8 {
		t.Errorf("origin field offsets = %v, want [0 4 8]", origin.Fields)
	}
	if grid := plan.Lookup("grid"); grid.Layout == nil || grid.Layout.IVSize != 8 || grid.Layout.DataSize != 24 {
		t.Errorf("grid layout = %v", grid.Layout)
	}
	if plan.Lookup("flag").Init != nil || plan.Lookup("flag").Layout != nil {
		t.Errorf("flag has an initializer or layout")
	}
	if plan.Lookup("missing") != nil {
		t.Errorf("Lookup of an undeclared global succeeded")
	}
}

func TestWriteListing(t *testing.T) {
	pkg, info, sizes := checkPackage(t, testSrc)
	plan, err := PlanData(pkg, info.Inits, sizes)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := plan.WriteListing(&buf); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"; data section: package main, 5 globals, 68 bytes",
		"@0 count int size=4",
		"  init 7",
		"@4 origin Point size=20 iv=0 data=20",
		"  field x +0",
		"  field y +4",
		"  field label +8",
		`  init {x: 1, y: _, label: "o"}`,
		"@24 grid [2][3]int size=32 iv=8 data=24",
		"@56 greeting []char size=8",
		`  init "hello"`,
		"@64 flag bool size=4",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("listing:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteLayouts(t *testing.T) {
	pkg, _, sizes := checkPackage(t, testSrc+"var other [2][3]int\nvar names [3][10]char\n")

	var buf bytes.Buffer
	if err := WriteLayouts(&buf, pkg, sizes); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"struct Point size=20 iv=0 data=20",
		"  x int +0",
		"  y int +4",
		"  label [8]char +8",
		"  func len",
		"type [2][3]int size=32 iv=8 data=24",
		"type [3][10]char size=48 iv=12 data=36",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("layouts:\n%s\nwant:\n%s", got, want)
	}
}

func TestPlanDataNilSizes(t *testing.T) {
	pkg, info, _ := checkPackage(t, "package p\nvar a [4]int\nvar b int\n")
	plan, err := PlanData(pkg, info.Inits, nil)
	if err != nil {
		t.Fatal(err)
	}
	if b := plan.Lookup("b"); b.Addr != 16 {
		t.Errorf("b at %d, want 16", b.Addr)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errWrite }

var errWrite = &writeError{}

type writeError struct{}

func (*writeError) Error() string { return "write failed" }

func TestWriteListingError(t *testing.T) {
	pkg, info, sizes := checkPackage(t, testSrc)
	plan, err := PlanData(pkg, info.Inits, sizes)
	if err != nil {
		t.Fatal(err)
	}
	if err := plan.WriteListing(failWriter{}); err != errWrite {
		t.Errorf("err = %v, want the write error", err)
	}
}
