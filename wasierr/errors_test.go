package wasierr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Message(t *testing.T) {
	err := InvalidArgument(PhaseCrypto, "key length %d", 15)
	msg := err.Error()
	if !strings.Contains(msg, "[crypto]") {
		t.Fatalf("Expected phase in message, got %q", msg)
	}
	if !strings.Contains(msg, "invalid_argument") {
		t.Fatalf("Expected kind in message, got %q", msg)
	}
	if !strings.Contains(msg, "key length 15") {
		t.Fatalf("Expected formatted detail, got %q", msg)
	}
}

func TestError_WrapUnwrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := Wrap(PhaseCtx, KindInvalidArgument, cause, "open /tmp/x")

	if !errors.Is(err, cause) {
		t.Fatal("Expected wrapped cause to be matchable")
	}
	if !strings.Contains(err.Error(), "caused by: underlying failure") {
		t.Fatalf("Expected cause in message, got %q", err.Error())
	}
}

func TestError_IsMatchesOnKind(t *testing.T) {
	a := InvalidHandle(PhaseTable, 7)
	b := InvalidHandle(PhaseCrypto, 99)
	if !errors.Is(a, b) {
		t.Fatal("Same kind across phases should match")
	}
	if errors.Is(a, NotCapable(PhaseTable, "fd_read")) {
		t.Fatal("Different kinds should not match")
	}
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", TableExhausted())
	if !IsKind(err, KindTableExhausted) {
		t.Fatal("Expected kind to be found through wrapping")
	}
	if IsKind(err, KindInvalidHandle) {
		t.Fatal("Wrong kind should not match")
	}
	if IsKind(errors.New("plain"), KindInvalidHandle) {
		t.Fatal("Plain error should not match any kind")
	}
	if IsKind(nil, KindInvalidHandle) {
		t.Fatal("nil should not match any kind")
	}
}

func TestMalformedSequence_TruncatesPreview(t *testing.T) {
	data := make([]byte, 128)
	for i := range data {
		data[i] = 0xff
	}
	err := MalformedSequence(PhaseMemory, data)
	// 32 bytes hex-encoded is 64 characters.
	if strings.Count(err.Error(), "ff") > 32 {
		t.Fatalf("Preview not truncated: %q", err.Error())
	}
}

func TestToErrno(t *testing.T) {
	cases := []struct {
		err  error
		want Errno
	}{
		{nil, ErrnoSuccess},
		{InvalidHandle(PhaseTable, 3), ErrnoBadf},
		{InvalidArgument(PhaseCrypto, "bad nonce"), ErrnoInval},
		{NotSupported(PhaseCrypto, "A256GCM"), ErrnoNotsup},
		{NotImplemented("crypto_hkdf"), ErrnoNosys},
		{MalformedSequence(PhaseMemory, []byte{0xff}), ErrnoIlseq},
		{OutOfBounds(10, 20, 16), ErrnoFault},
		{TableExhausted(), ErrnoNfile},
		{NotCapable(PhaseCtx, "path_open"), ErrnoNotcapable},
		{StringArray("interior NUL"), ErrnoInval},
		{errors.New("unclassified"), ErrnoIO},
		{fmt.Errorf("wrapped: %w", OutOfBounds(0, 1, 0)), ErrnoFault},
	}
	for _, c := range cases {
		if got := ToErrno(c.err); got != c.want {
			t.Fatalf("ToErrno(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}

func TestErrno_String(t *testing.T) {
	if ErrnoBadf.String() != "EBADF" {
		t.Fatalf("Expected EBADF, got %s", ErrnoBadf)
	}
	if ErrnoNotcapable.String() != "ENOTCAPABLE" {
		t.Fatalf("Expected ENOTCAPABLE, got %s", ErrnoNotcapable)
	}
	if Errno(999).String() != "E?" {
		t.Fatalf("Expected E? for unknown code, got %s", Errno(999))
	}
}
