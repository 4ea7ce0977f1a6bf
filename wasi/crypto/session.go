package crypto

import (
	"crypto/aes"
	"crypto/cipher"

	"github.com/wasicap/wasicap/table"
)

// Spec is the static size specification of an algorithm, resolved once at
// session-open time.
type Spec struct {
	KeySize   uint32
	BlockSize uint32
	NonceSize uint32
	TagSize   uint32
}

// Session is the table entry behind an AEAD handle: an algorithm bound to
// the guest-memory location of its key.
//
// The key bytes are never copied into the session. They are re-read from
// guest memory on every use, since the guest may rewrite its memory between
// calls. A session carries no streaming state: each encrypt or decrypt is a
// complete, self-contained transformation.
type Session struct {
	table.Base
	alg    string
	keyPtr uint32
	keyLen uint32
	spec   *Spec
	engine func(key []byte) (cipher.AEAD, error)
}

// Algorithm returns the name the session was opened with.
func (s *Session) Algorithm() string { return s.alg }

// Spec returns the session's size specification.
func (s *Session) Spec() *Spec { return s.spec }

// algorithm is a statically registered descriptor.
type algorithm struct {
	name   string
	spec   Spec
	engine func(key []byte) (cipher.AEAD, error)
}

// implemented is the static registry, matched by exact name. Only the
// AES-128-GCM family is currently wired.
var implemented = []*algorithm{
	{
		name:   "A128GCM",
		spec:   Spec{KeySize: 16, BlockSize: 16, NonceSize: 12, TagSize: 16},
		engine: newAESGCM,
	},
}

func newAESGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
