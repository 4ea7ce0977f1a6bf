// Package guestmem provides the bounds-checked view over guest linear
// memory: the only sanctioned path between guest offsets and host byte
// slices.
//
// Every accessor validates its range against the memory size at the moment
// of the call, with overflow-safe arithmetic on guest-controlled lengths.
// Failures surface as out-of-bounds errors in the wasierr taxonomy and are
// reported to the guest as EFAULT.
//
// Bytes returns a live view, not a copy, so bulk transforms such as the AEAD
// host calls can mutate guest buffers in place while staying inside the
// checked boundary.
package guestmem
