// Package codegen lays out the data section of a checked package: every
// global gets a cell-aligned address and a footprint computed from its
// storage layout, and the result can be written as a textual listing.
package codegen

import (
	"io"

	"github.com/pkg/errors"
	"modernc.org/mathutil"

	"github.com/you-not-fish/cellc/internal/rtabi"
	"github.com/you-not-fish/cellc/internal/sema"
	"github.com/you-not-fish/cellc/internal/types"
)

// Global is the placement of one global variable.
type Global struct {
	Var  *types.Var
	Addr int32 // byte address in the data section
	Size int32 // bytes reserved

	// Layout is set for contiguously stored globals.
	Layout *types.StorageInfo

	// Fields holds the field offsets of a struct global, in field order.
	Fields []int32

	// Init is the typed initializer, or nil for a zero value.
	Init sema.Expr
}

// Plan is a laid out data section.
type Plan struct {
	Package *types.Package
	Globals []*Global
	Size    int32 // total bytes
}

// PlanData assigns addresses to the globals of pkg in declaration order.
// inits holds the typed initializers reported by the checker.
func PlanData(pkg *types.Package, inits map[*types.Var]sema.Expr, sizes *types.Sizes) (*Plan, error) {
	if sizes == nil {
		sizes = types.NewSizes()
	}

	p := &Plan{Package: pkg}
	var addr int64
	for _, v := range pkg.Globals() {
		g := &Global{Var: v, Addr: int32(addr), Init: inits[v]}
		if err := g.measure(sizes); err != nil {
			return nil, errors.Wrapf(err, "global %s", v.Name())
		}

		next, ovf := mathutil.AddOverflowInt64(addr, int64(g.Size))
		if ovf || rtabi.Align(next) > rtabi.MaxStorageBytes {
			return nil, errors.Wrapf(types.ErrStorageOverflow, "data section at global %s", v.Name())
		}
		addr = rtabi.Align(next)
		p.Globals = append(p.Globals, g)
	}
	p.Size = int32(addr)
	return p, nil
}

// measure computes the footprint of g.
func (g *Global) measure(sizes *types.Sizes) error {
	t := g.Var.Type()
	switch {
	case types.IsContiguouslyStored(t):
		info, err := sizes.Storage(t)
		if err != nil {
			return err
		}
		g.Layout = &info
		g.Size = info.Bytes

		if st, ok := types.Unqualified(t).(*types.Struct); ok {
			g.Fields = make([]int32, st.NumFields())
			for i := range g.Fields {
				if g.Fields[i], err = sizes.Offsetof(st, i); err != nil {
					return err
				}
			}
		}

	case types.IsArray(t):
		// Unsized char arrays take their length from a string initializer.
		s, ok := g.Init.(*sema.String)
		if !ok {
			return errors.Errorf("unsized array %s has no string initializer", t)
		}
		g.Size = int32(rtabi.CellsOfString(int64(len(s.Value))) * rtabi.CellSize)

	default:
		g.Size = rtabi.CellSize
	}
	return nil
}

// Lookup returns the placement of the named global, or nil.
func (p *Plan) Lookup(name string) *Global {
	for _, g := range p.Globals {
		if g.Var.Name() == name {
			return g
		}
	}
	return nil
}

// WriteListing writes the data section listing:
//
//	; data section: package main, 2 globals, 24 bytes
//	@0 count int size=4
//	  init 7
//	@4 origin Point size=20 iv=0 data=20
//	  field x +0
//	  ...
func (p *Plan) WriteListing(w io.Writer) error {
	e := &emitter{w: w}
	e.emitComment("data section: package %s, %d globals, %d bytes", p.Package.Name(), len(p.Globals), p.Size)

	for _, g := range p.Globals {
		if g.Layout != nil {
			e.emit("%s %s %s size=%d iv=%d data=%d", addrName(g.Addr), g.Var.Name(), g.Var.Type(),
				g.Size, g.Layout.IVSize, g.Layout.DataSize)
		} else {
			e.emit("%s %s %s size=%d", addrName(g.Addr), g.Var.Name(), g.Var.Type(), g.Size)
		}
		if len(g.Fields) > 0 {
			st := types.AsStruct(g.Var.Type())
			for i, off := range g.Fields {
				e.emitInst("field %s +%d", st.Field(i).Name(), off)
			}
		}
		if g.Init != nil {
			e.emitInst("init %s", sema.ExprString(g.Init))
		}
	}
	return e.err
}
