package codegen

import "github.com/ilcc/ilc/internal/types"

// localEnv assigns dense local-variable-table slots for one method:
// parameters first (in declaration order), then each var/array
// declaration encountered while walking the body in source order. A
// real occupies two consecutive slots; everything else occupies one.
type localEnv struct {
	slots   map[string]int
	types   map[string]types.Type
	next    int
	maxSlot int
}

func newLocalEnv() *localEnv {
	return &localEnv{slots: make(map[string]int), types: make(map[string]types.Type)}
}

// allocate assigns the next free slot(s) to name and records its type.
func (l *localEnv) allocate(name string, t types.Type) int {
	slot := l.next
	l.slots[name] = slot
	l.types[name] = t
	l.next += slotWidth(t)
	if l.next > l.maxSlot {
		l.maxSlot = l.next
	}
	return slot
}

func (l *localEnv) slot(name string) (int, bool) {
	s, ok := l.slots[name]
	return s, ok
}

func (l *localEnv) typeOf(name string) (types.Type, bool) {
	t, ok := l.types[name]
	return t, ok
}

// limit reports the conservative .limit locals value: at least 5 slots,
// per spec §4.5.
func (l *localEnv) limit() int {
	if l.maxSlot < 5 {
		return 5
	}
	return l.maxSlot
}
