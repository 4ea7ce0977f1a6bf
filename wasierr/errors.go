package wasierr

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates which layer the error originated in
type Phase string

const (
	PhaseTable  Phase = "table"  // capability table operations
	PhaseMemory Phase = "memory" // guest memory marshaling
	PhaseCtx    Phase = "ctx"    // context construction and lookups
	PhaseCrypto Phase = "crypto" // AEAD protocol
	PhaseHost   Phase = "host"   // host module dispatch
)

// Kind categorizes the error and determines the guest-facing errno
type Kind string

const (
	KindInvalidHandle     Kind = "invalid_handle"     // handle absent from the table
	KindInvalidArgument   Kind = "invalid_argument"   // malformed lengths or crypto parameters
	KindNotSupported      Kind = "not_supported"      // valid request, unregistered capability
	KindNotImplemented    Kind = "not_implemented"    // recognized entry point, deliberately unfinished
	KindMalformedSequence Kind = "malformed_sequence" // invalid UTF-8 from the guest
	KindOutOfBounds       Kind = "out_of_bounds"      // guest memory range violation
	KindTableExhausted    Kind = "table_exhausted"    // no free handle slot
	KindNotCapable        Kind = "not_capable"        // rights mask does not permit the operation
	KindStringArray       Kind = "string_array"       // invalid arg/env entry at build time
)

// Error is the structured error type used throughout the layer
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on Kind, ignoring Phase, so call sites can test the taxonomy
// without caring which layer produced the failure.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Convenience constructors for the error taxonomy

// InvalidHandle reports a lookup of a handle absent from a table.
func InvalidHandle(phase Phase, handle uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Detail: fmt.Sprintf("handle %d", handle),
	}
}

// InvalidArgument reports malformed parameters.
func InvalidArgument(phase Phase, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: detail,
	}
}

// NotSupported reports a request naming an unregistered capability.
func NotSupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotSupported,
		Detail: what,
	}
}

// NotImplemented reports an entry point that is recognized at the protocol
// level but deliberately unfinished. Distinct from NotSupported.
func NotImplemented(op string) *Error {
	return &Error{
		Phase:  PhaseCrypto,
		Kind:   KindNotImplemented,
		Detail: op,
	}
}

// MalformedSequence reports invalid UTF-8 supplied by the guest.
func MalformedSequence(phase Phase, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindMalformedSequence,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// OutOfBounds reports a guest memory range that exceeds the addressable size
// or overflows address arithmetic.
func OutOfBounds(offset, length, size uint32) *Error {
	return &Error{
		Phase:  PhaseMemory,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("range [%d, %d+%d) exceeds memory size %d", offset, offset, length, size),
	}
}

// TableExhausted reports that no representable handle slot remains.
func TableExhausted() *Error {
	return &Error{
		Phase:  PhaseTable,
		Kind:   KindTableExhausted,
		Detail: "no free handle",
	}
}

// NotCapable reports an operation the handle's rights mask does not permit.
func NotCapable(phase Phase, missing string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotCapable,
		Detail: fmt.Sprintf("rights do not include %s", missing),
	}
}

// StringArray reports an invalid argument or environment entry.
func StringArray(detail string) *Error {
	return &Error{
		Phase:  PhaseCtx,
		Kind:   KindStringArray,
		Detail: detail,
	}
}

// Wrap attaches phase and kind to an underlying error.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
