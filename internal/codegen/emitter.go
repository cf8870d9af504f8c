package codegen

import (
	"fmt"
	"io"
)

// emitter wraps an io.Writer with helpers for emitting listing text.
// After the first write error all output is dropped and the error is kept.
type emitter struct {
	w   io.Writer
	err error // first write error
}

// emit writes a formatted line to the output (no indentation).
func (e *emitter) emit(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format+"\n", args...)
}

// emitComment writes a comment line.
func (e *emitter) emitComment(format string, args ...interface{}) {
	e.emit("; "+format, args...)
}

// emitInst writes an indented line.
func (e *emitter) emitInst(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, "  "+format+"\n", args...)
}

// addrName returns the listing label for a data address: @N.
func addrName(addr int32) string {
	return fmt.Sprintf("@%d", addr)
}
