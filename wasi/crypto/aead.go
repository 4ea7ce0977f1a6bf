package crypto

import (
	"crypto/cipher"

	"github.com/wasicap/wasicap/guestmem"
	"github.com/wasicap/wasicap/table"
	"github.com/wasicap/wasicap/wasi"
	"github.com/wasicap/wasicap/wasierr"
)

// Open decodes and resolves the requested algorithm, validates the key
// length against the algorithm's declared key size, and installs a cipher
// session at a fresh handle. A failed Open leaves no partial session behind.
func Open(c *wasi.Ctx, v *guestmem.View, algPtr, algLen, keyPtr, keyLen uint32) (table.Handle, error) {
	name, err := v.ReadString(algPtr, algLen)
	if err != nil {
		return 0, err
	}

	var impl *algorithm
	for _, a := range implemented {
		if a.name == name {
			impl = a
			break
		}
	}
	if impl == nil {
		return 0, wasierr.NotSupported(wasierr.PhaseCrypto, name)
	}

	if keyLen != impl.spec.KeySize {
		return 0, wasierr.InvalidArgument(wasierr.PhaseCrypto,
			"key length %d, %s requires %d", keyLen, impl.name, impl.spec.KeySize)
	}

	return c.Table().Push(&Session{
		alg:    impl.name,
		keyPtr: keyPtr,
		keyLen: keyLen,
		spec:   &impl.spec,
		engine: impl.engine,
	})
}

// Encrypt transforms the scattered plaintext regions to ciphertext in place,
// in iovec order, and writes the authentication tag to the guest-supplied
// location. The key is re-read from its recorded guest-memory location on
// every call.
func Encrypt(c *wasi.Ctx, v *guestmem.View, aead uint32, noncePtr, nonceLen, aadPtr, aadLen, dataPtr, dataCount, tagPtr, tagLen uint32) error {
	se, err := sessionFor(c, aead)
	if err != nil {
		return err
	}
	engine, nonce, aad, iovs, err := se.prepare(v, noncePtr, nonceLen, aadPtr, aadLen, dataPtr, dataCount, tagPtr, tagLen)
	if err != nil {
		return err
	}

	plaintext, err := gather(v, iovs)
	if err != nil {
		return err
	}
	sealed := engine.Seal(nil, nonce, plaintext, aad)
	ciphertext, tag := sealed[:len(plaintext)], sealed[len(plaintext):]

	if err := scatter(v, iovs, ciphertext); err != nil {
		return err
	}
	return v.WriteBytes(tagPtr, tag)
}

// Decrypt mirrors Encrypt with the tag supplied rather than produced. If the
// tag does not authenticate the ciphertext and additional data, it fails
// with invalid_argument and the data regions are left untouched; the caller
// must not trust the buffer contents after any failure.
func Decrypt(c *wasi.Ctx, v *guestmem.View, aead uint32, noncePtr, nonceLen, aadPtr, aadLen, dataPtr, dataCount, tagPtr, tagLen uint32) error {
	se, err := sessionFor(c, aead)
	if err != nil {
		return err
	}
	engine, nonce, aad, iovs, err := se.prepare(v, noncePtr, nonceLen, aadPtr, aadLen, dataPtr, dataCount, tagPtr, tagLen)
	if err != nil {
		return err
	}
	tag, err := v.Bytes(tagPtr, tagLen)
	if err != nil {
		return err
	}

	ciphertext, err := gather(v, iovs)
	if err != nil {
		return err
	}
	plaintext, err := engine.Open(nil, nonce, append(ciphertext, tag...), aad)
	if err != nil {
		return wasierr.InvalidArgument(wasierr.PhaseCrypto, "authentication failed")
	}
	return scatter(v, iovs, plaintext)
}

// Close removes the session from the registry. No other cleanup is needed:
// the session never held key bytes.
func Close(c *wasi.Ctx, aead uint32) error {
	if _, err := sessionFor(c, aead); err != nil {
		return err
	}
	_, err := c.Table().Remove(table.Handle(aead))
	return err
}

func sessionFor(c *wasi.Ctx, aead uint32) (*Session, error) {
	e, err := c.Table().Get(table.Handle(aead))
	if err != nil {
		return nil, err
	}
	se, ok := e.(*Session)
	if !ok {
		return nil, wasierr.InvalidHandle(wasierr.PhaseCrypto, aead)
	}
	return se, nil
}

// prepare re-reads the key, validates nonce and tag lengths against the
// session's spec, constructs a fresh engine bound to (algorithm, key), and
// decodes the data iovecs. Shared by Encrypt and Decrypt.
func (s *Session) prepare(v *guestmem.View, noncePtr, nonceLen, aadPtr, aadLen, dataPtr, dataCount, tagPtr, tagLen uint32) (engine cipher.AEAD, nonce, aad []byte, iovs []guestmem.IOVec, err error) {
	key, err := v.Bytes(s.keyPtr, s.keyLen)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if nonceLen != s.spec.NonceSize {
		return nil, nil, nil, nil, wasierr.InvalidArgument(wasierr.PhaseCrypto,
			"nonce length %d, %s requires %d", nonceLen, s.alg, s.spec.NonceSize)
	}
	nonce, err = v.Bytes(noncePtr, nonceLen)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	aad, err = v.Bytes(aadPtr, aadLen)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if tagLen != s.spec.TagSize {
		return nil, nil, nil, nil, wasierr.InvalidArgument(wasierr.PhaseCrypto,
			"tag length %d, %s requires %d", tagLen, s.alg, s.spec.TagSize)
	}
	if _, err = v.Bytes(tagPtr, tagLen); err != nil {
		return nil, nil, nil, nil, err
	}
	iovs, err = v.ReadIOVecs(dataPtr, dataCount)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	// Iovecs may alias, so the summed length is not bounded by the memory
	// size on its own. The staging buffer is sized to the sum; cap it before
	// gather allocates.
	var total uint64
	for _, iov := range iovs {
		total += uint64(iov.Length)
	}
	if total > uint64(v.Size()) {
		return nil, nil, nil, nil, wasierr.InvalidArgument(wasierr.PhaseCrypto,
			"data length %d exceeds guest memory size %d", total, v.Size())
	}
	e, err := s.engine(key)
	if err != nil {
		return nil, nil, nil, nil, wasierr.Wrap(wasierr.PhaseCrypto, wasierr.KindInvalidArgument, err, "engine construction")
	}
	return e, nonce, aad, iovs, nil
}

// gather copies the scattered regions into one contiguous buffer, in iovec
// order. Order matters: cipher state advances across the whole stream.
func gather(v *guestmem.View, iovs []guestmem.IOVec) ([]byte, error) {
	var total uint64
	for _, iov := range iovs {
		total += uint64(iov.Length)
	}
	buf := make([]byte, 0, total)
	for _, iov := range iovs {
		region, err := v.Bytes(iov.Offset, iov.Length)
		if err != nil {
			return nil, err
		}
		buf = append(buf, region...)
	}
	return buf, nil
}

// scatter writes the transformed bytes back over the same regions, mutating
// the guest buffers in place through the bounds-checked view.
func scatter(v *guestmem.View, iovs []guestmem.IOVec, data []byte) error {
	for _, iov := range iovs {
		n := int(iov.Length)
		if err := v.WriteBytes(iov.Offset, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
