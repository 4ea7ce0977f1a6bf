// Package wasierr provides the structured error taxonomy of the host-call
// layer and its mapping to guest-facing numeric codes.
//
// Errors carry a Phase (which layer failed) and a Kind (what failed). Kinds
// form a closed taxonomy mirrored one-to-one onto WASI errno values by
// ToErrno; Is matches on Kind so callers can classify a failure without
// knowing its origin:
//
//	if wasierr.IsKind(err, wasierr.KindInvalidHandle) { ... }
//
// The distinction between KindNotSupported (a valid request naming an
// unregistered capability), KindNotImplemented (a recognized entry point
// that is deliberately unfinished) and KindInvalidArgument (a malformed
// request) is load-bearing: guests probe for optional functionality by
// telling these codes apart.
package wasierr
