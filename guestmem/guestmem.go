package guestmem

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/wasicap/wasicap"
	"github.com/wasicap/wasicap/wasierr"
)

// iovecSize is the guest-side size of one (offset, length) descriptor.
const iovecSize = 8

// IOVec is one scatter/gather descriptor: a contiguous region of guest
// linear memory.
type IOVec struct {
	Offset uint32
	Length uint32
}

// View is a bounds-checked accessor over guest linear memory. It is the only
// sanctioned path for crossing the trust boundary: no other component may
// construct a host byte slice from a guest-supplied offset.
//
// Bounds are validated on every single access. The guest may grow or rewrite
// its memory between calls, so no offset, length or slice may be cached
// across host calls.
type View struct {
	mem wasicap.Memory
}

// New creates a view over mem. Pass wazero's api.Module Memory() directly.
func New(mem wasicap.Memory) *View {
	return &View{mem: mem}
}

// Size returns the guest memory size in bytes at this instant.
func (v *View) Size() uint32 {
	return v.mem.Size()
}

// Bytes returns a validated mutable slice over guest memory. Writes through
// the slice are visible to the guest. A zero length yields an empty slice
// without touching memory.
func (v *View) Bytes(offset, length uint32) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	size := v.mem.Size()
	if uint64(offset)+uint64(length) > uint64(size) {
		return nil, wasierr.OutOfBounds(offset, length, size)
	}
	b, ok := v.mem.Read(offset, length)
	if !ok {
		return nil, wasierr.OutOfBounds(offset, length, size)
	}
	return b, nil
}

// WriteBytes copies data into a validated destination range.
func (v *View) WriteBytes(offset uint32, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	size := v.mem.Size()
	if uint64(offset)+uint64(len(data)) > uint64(size) {
		return wasierr.OutOfBounds(offset, uint32(len(data)), size)
	}
	if !v.mem.Write(offset, data) {
		return wasierr.OutOfBounds(offset, uint32(len(data)), size)
	}
	return nil
}

// ReadUint32 decodes a little-endian u32 at offset.
func (v *View) ReadUint32(offset uint32) (uint32, error) {
	b, err := v.Bytes(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// WriteUint32 encodes a little-endian u32 at offset.
func (v *View) WriteUint32(offset uint32, value uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], value)
	return v.WriteBytes(offset, b[:])
}

// WriteUint64 encodes a little-endian u64 at offset.
func (v *View) WriteUint64(offset uint32, value uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], value)
	return v.WriteBytes(offset, b[:])
}

// ReadString decodes a UTF-8 string from a validated range.
func (v *View) ReadString(offset, length uint32) (string, error) {
	b, err := v.Bytes(offset, length)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", wasierr.MalformedSequence(wasierr.PhaseMemory, b)
	}
	return string(b), nil
}

// ReadIOVecs decodes count scatter/gather descriptors from a guest array at
// ptr. Each descriptor's region is independently bounds-checked so that a
// later Bytes call on it can only fail if the guest shrinks memory in the
// meantime, which the per-access validation catches anyway.
func (v *View) ReadIOVecs(ptr, count uint32) ([]IOVec, error) {
	if count == 0 {
		return nil, nil
	}
	if count > ^uint32(0)/iovecSize {
		return nil, wasierr.OutOfBounds(ptr, count, v.mem.Size())
	}
	raw, err := v.Bytes(ptr, count*iovecSize)
	if err != nil {
		return nil, err
	}
	iovs := make([]IOVec, count)
	for i := range iovs {
		iovs[i] = IOVec{
			Offset: binary.LittleEndian.Uint32(raw[i*iovecSize:]),
			Length: binary.LittleEndian.Uint32(raw[i*iovecSize+4:]),
		}
		if _, err := v.Bytes(iovs[i].Offset, iovs[i].Length); err != nil {
			return nil, err
		}
	}
	return iovs, nil
}
