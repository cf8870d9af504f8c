package types2

import (
	"github.com/you-not-fish/cellc/internal/sema"
	"github.com/you-not-fish/cellc/internal/syntax"
	"github.com/you-not-fish/cellc/internal/types"
)

// initializer analyzes the initializer of a value of type to.
func (c *Checker) initializer(to types.Type, e syntax.Expr) (sema.Expr, bool) {
	if si, ok := e.(*syntax.StructInit); ok {
		x, ok := c.structInit(to, si)
		if x == nil {
			return nil, false
		}
		return x, ok
	}
	return c.coerce(coercion{purpose: Assignment, node: e, to: to})
}

// structInit validates a named struct initializer against the fields of
// to. Unlike expressions, it does not stop at the first error: every field
// and every unmatched entry is checked. The returned initializer has one
// value per field, nil where the field was not given; it is only valid if
// ok is true.
func (c *Checker) structInit(to types.Type, e *syntax.StructInit) (*sema.StructInit, bool) {
	if !types.IsStruct(to) {
		c.errorf(e.Pos(), StructInitNeedsStruct, "struct initializer needs aggregate type, got %s", to)
		return nil, false
	}
	st := types.AsStruct(to)

	pending := make([]*syntax.NameValue, len(e.Pairs))
	copy(pending, e.Pairs)
	values := make([]sema.Expr, st.NumFields())
	ok := true

	for i, f := range st.Fields() {
		var match *syntax.NameValue
		rest := pending[:0]
		for _, nv := range pending {
			switch {
			case nv.Name.Value != f.Name():
				rest = append(rest, nv)
			case match == nil:
				match = nv
				nv.Name.Sym = f
			default:
				c.errorf(nv.Value.Pos(), StructInitAppearsTwice, "field %s appears twice in initializer", f.Name())
				ok = false
			}
		}
		pending = rest
		if match == nil {
			continue
		}

		v, vok := c.expr(match.Value)
		if !vok {
			ok = false
			continue
		}
		switch ft := f.Type(); {
		case types.IsCharArray(ft):
			s, isString := v.(*sema.String)
			if !isString {
				c.errorf(match.Value.Pos(), StructInitNeedsStringLit, "field %s needs string literal", f.Name())
				ok = false
				continue
			}
			if a := types.AsArray(ft); int64(s.StoredLen()) > int64(a.Len()) {
				c.errorf(match.Value.Pos(), LiteralTooLarge, "literal too large: %d bytes do not fit field %s of type %s", s.StoredLen(), f.Name(), a)
				ok = false
				continue
			}
		case types.IsInt32(ft):
			if _, isConst := sema.ConstantInt32(v); !isConst || !types.IsInt32(v.Type()) {
				c.errorf(match.Value.Pos(), StructInitNeedsConstInt, "field %s needs constant integer", f.Name())
				ok = false
				continue
			}
		default:
			c.errorf(f.Pos(), StructUnsupportedType, "field %s has unsupported field type %s", f.Name(), ft)
			ok = false
			continue
		}
		values[i] = v
	}

	for _, nv := range pending {
		c.errorf(nv.Pos(), StructFieldNotFound, "field %s not found in %s", nv.Name.Value, st.Name())
		ok = false
	}
	return sema.NewStructInit(e, st, values), ok
}
