package table

import (
	"math"

	"github.com/wasicap/wasicap/wasierr"
)

// Handle is an opaque non-negative capability reference, unique among live
// entries within one table. A handle value is reused only after an explicit
// Remove frees its slot.
type Handle uint32

// Entry is a resource owned by the table. Concrete variants are the file,
// directory and cipher-session entries; call sites dispatch on the concrete
// type after resolving a handle.
type Entry interface {
	entry()
}

// Base can be embedded by entry variants to satisfy Entry.
type Base struct{}

func (Base) entry() {}

// Table maps handles to resource entries. It performs no rights checks:
// rights stored on a resolved entry are checked by the caller before the
// operation proceeds. All operations are synchronous and touch nothing
// beyond the table itself.
type Table struct {
	entries map[Handle]Entry
}

// New creates an empty table.
func New() *Table {
	return &Table{
		entries: make(map[Handle]Entry, 8),
	}
}

// InsertAt installs or replaces the entry at an exact handle value. Used for
// reserved slots such as the standard streams.
func (t *Table) InsertAt(h Handle, e Entry) {
	t.entries[h] = e
}

// Push installs the entry at the lowest free handle value and returns it.
func (t *Table) Push(e Entry) (Handle, error) {
	for h := Handle(0); ; h++ {
		if _, occupied := t.entries[h]; !occupied {
			t.entries[h] = e
			return h, nil
		}
		if h == math.MaxUint32 {
			return 0, wasierr.TableExhausted()
		}
	}
}

// Get returns the entry behind h.
func (t *Table) Get(h Handle) (Entry, error) {
	e, ok := t.entries[h]
	if !ok {
		return nil, wasierr.InvalidHandle(wasierr.PhaseTable, uint32(h))
	}
	return e, nil
}

// Remove detaches and returns ownership of the entry; the caller finalizes
// any underlying OS objects.
func (t *Table) Remove(h Handle) (Entry, error) {
	e, ok := t.entries[h]
	if !ok {
		return nil, wasierr.InvalidHandle(wasierr.PhaseTable, uint32(h))
	}
	delete(t.entries, h)
	return e, nil
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Each iterates over live entries until fn returns false. Iteration order is
// unspecified.
func (t *Table) Each(fn func(Handle, Entry) bool) {
	for h, e := range t.entries {
		if !fn(h, e) {
			return
		}
	}
}
