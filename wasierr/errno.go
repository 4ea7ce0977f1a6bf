package wasierr

import "errors"

// Errno is the numeric error code returned to the guest in place of success.
// Values follow the WASI preview1 errno encoding. No Go error ever crosses
// the guest boundary: every failure is recovered at the host-call boundary
// and mapped to one of these codes.
type Errno uint16

const (
	ErrnoSuccess Errno = 0
	ErrnoBadf    Errno = 8  // invalid handle
	ErrnoFault   Errno = 21 // out-of-bounds guest memory access
	ErrnoIlseq   Errno = 25 // malformed byte sequence
	ErrnoInval   Errno = 28 // invalid argument
	ErrnoIO      Errno = 29 // unclassified host failure
	ErrnoNfile   Errno = 41 // handle table exhausted
	ErrnoNosys   Errno = 52 // recognized but unimplemented
	ErrnoNotsup  Errno = 58 // unregistered capability
	// ErrnoNotcapable is WASI's dedicated code for rights violations.
	ErrnoNotcapable Errno = 76
)

func (e Errno) String() string {
	switch e {
	case ErrnoSuccess:
		return "ESUCCESS"
	case ErrnoBadf:
		return "EBADF"
	case ErrnoFault:
		return "EFAULT"
	case ErrnoIlseq:
		return "EILSEQ"
	case ErrnoInval:
		return "EINVAL"
	case ErrnoIO:
		return "EIO"
	case ErrnoNfile:
		return "ENFILE"
	case ErrnoNosys:
		return "ENOSYS"
	case ErrnoNotsup:
		return "ENOTSUP"
	case ErrnoNotcapable:
		return "ENOTCAPABLE"
	default:
		return "E?"
	}
}

var kindErrnos = map[Kind]Errno{
	KindInvalidHandle:     ErrnoBadf,
	KindInvalidArgument:   ErrnoInval,
	KindNotSupported:      ErrnoNotsup,
	KindNotImplemented:    ErrnoNosys,
	KindMalformedSequence: ErrnoIlseq,
	KindOutOfBounds:       ErrnoFault,
	KindTableExhausted:    ErrnoNfile,
	KindNotCapable:        ErrnoNotcapable,
	KindStringArray:       ErrnoInval,
}

// ToErrno maps any error to its guest-facing code. Errors outside the
// taxonomy map to EIO rather than escaping the boundary.
func ToErrno(err error) Errno {
	if err == nil {
		return ErrnoSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		if code, ok := kindErrnos[e.Kind]; ok {
			return code
		}
	}
	return ErrnoIO
}
