// Package caps defines the rights masks used to gate every operation on a
// guest handle.
//
// A handle carries a pair of bitsets: base rights, permitting operations
// directly on the handle, and inheriting rights, bounding what any resource
// derived beneath it may receive. Derivation always intersects the request
// with the parent's inheriting set, so rights narrow and never widen:
//
//	granted := parent.Narrow(requested)
//
// The bit layout follows the WASI preview1 rights encoding so guest-visible
// fdstat results can report them unchanged.
package caps
