package wasi

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/wasicap/wasicap/guestmem"
	"github.com/wasicap/wasicap/wasierr"
)

// StringArray holds the argument or environment vector of a guest instance.
// Entries are validated on push and immutable afterwards; the guest reads
// them through the WriteToGuest marshaling, each element NUL-terminated.
type StringArray struct {
	elems    []string
	byteSize uint32 // cumulative length including NUL terminators
}

// Push validates and appends one element. Elements must be valid UTF-8,
// contain no interior NUL, and the cumulative NUL-terminated size must stay
// representable in a u32.
func (a *StringArray) Push(s string) error {
	if !utf8.ValidString(s) {
		return wasierr.StringArray("element is not valid UTF-8")
	}
	if strings.ContainsRune(s, 0) {
		return wasierr.StringArray("element contains interior NUL")
	}
	needed := uint64(len(s)) + 1
	if uint64(a.byteSize)+needed > math.MaxUint32 {
		return wasierr.StringArray("cumulative size exceeds address space")
	}
	if uint64(len(a.elems))+1 > math.MaxUint32/4 {
		return wasierr.StringArray("too many elements")
	}
	a.elems = append(a.elems, s)
	a.byteSize += uint32(needed)
	return nil
}

// Count returns the number of elements.
func (a *StringArray) Count() uint32 {
	return uint32(len(a.elems))
}

// ByteSize returns the flattened size of all elements including their NUL
// terminators, as reported to the guest's sizes-get query.
func (a *StringArray) ByteSize() uint32 {
	return a.byteSize
}

// Elements returns the elements in push order.
func (a *StringArray) Elements() []string {
	return a.elems
}

// WriteToGuest flattens the array into guest memory: one u32 pointer per
// element at offsetsPtr, the NUL-terminated bytes packed at dataPtr. The
// guest is expected to have sized both buffers from Count and ByteSize.
func (a *StringArray) WriteToGuest(v *guestmem.View, offsetsPtr, dataPtr uint32) error {
	cursor := dataPtr
	for _, s := range a.elems {
		if err := v.WriteUint32(offsetsPtr, cursor); err != nil {
			return err
		}
		offsetsPtr += 4
		buf := make([]byte, len(s)+1)
		copy(buf, s)
		if err := v.WriteBytes(cursor, buf); err != nil {
			return err
		}
		cursor += uint32(len(buf))
	}
	return nil
}
