package codegen

import (
	"io"

	"github.com/you-not-fish/cellc/internal/types"
)

// WriteLayouts writes the storage layout of every declared struct and of
// every distinct contiguously stored global type of pkg.
func WriteLayouts(w io.Writer, pkg *types.Package, sizes *types.Sizes) error {
	if sizes == nil {
		sizes = types.NewSizes()
	}
	e := &emitter{w: w}

	for _, st := range pkg.Structs() {
		info, err := sizes.Storage(st)
		if err != nil {
			return err
		}
		e.emit("struct %s size=%d iv=%d data=%d", st.Name(), info.Bytes, info.IVSize, info.DataSize)
		for i, f := range st.Fields() {
			off, err := sizes.Offsetof(st, i)
			if err != nil {
				return err
			}
			e.emitInst("%s %s +%d", f.Name(), f.Type(), off)
		}
		for _, m := range st.Body() {
			if fn, ok := m.(*types.FuncObj); ok {
				e.emitInst("func %s", fn.Name())
			}
		}
	}

	seen := make(map[types.Type]bool)
	for _, g := range pkg.Globals() {
		t := types.Unqualified(g.Type())
		if !types.IsContiguouslyStored(t) || types.IsStruct(t) || seen[t] {
			continue
		}
		seen[t] = true
		info, err := sizes.Storage(t)
		if err != nil {
			return err
		}
		e.emit("type %s size=%d iv=%d data=%d", t, info.Bytes, info.IVSize, info.DataSize)
	}
	return e.err
}
