package codegen

import (
	"fmt"
	"strings"
)

// emitter accumulates one translation unit's assembly text and hands
// out unique labels; every Generate call on a fresh unit gets its own
// emitter rather than a package-level label counter, per the
// explicit-state redesign of the generator's global mutable state.
type emitter struct {
	buf      strings.Builder
	labelNum int
}

func newEmitter() *emitter { return &emitter{} }

func (e *emitter) line(s string) {
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
}

func (e *emitter) linef(format string, args ...any) {
	e.line(fmt.Sprintf(format, args...))
}

// label allocates a fresh label name scoped to this unit, prefixed for
// readability in the emitted text (e.g. "L_if_else3").
func (e *emitter) label(prefix string) string {
	e.labelNum++
	return fmt.Sprintf("L_%s%d", prefix, e.labelNum)
}

func (e *emitter) String() string { return e.buf.String() }
