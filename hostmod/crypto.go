package hostmod

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wasicap/wasicap/guestmem"
	"github.com/wasicap/wasicap/wasi"
	"github.com/wasicap/wasicap/wasi/crypto"
)

// CryptoModule is the import namespace of the crypto host calls.
const CryptoModule = "wasi_ephemeral_crypto"

// InstantiateCrypto registers the AEAD, MAC and HKDF host calls on r, bound
// to wc. Every exported function returns an errno; no Go error or panic
// crosses the guest boundary from this layer.
func InstantiateCrypto(ctx context.Context, r wazero.Runtime, wc *wasi.Ctx) (api.Module, error) {
	log := wc.Logger()
	b := r.NewHostModuleBuilder(CryptoModule)

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		algPtr, algLen, keyPtr, keyLen, openedPtr uint32) uint32 {
		log.Debug("crypto_aead_open",
			zap.Uint32("algorithm_ptr", algPtr),
			zap.Uint32("algorithm_len", algLen))
		v := guestmem.New(mod.Memory())
		h, err := crypto.Open(wc, v, algPtr, algLen, keyPtr, keyLen)
		if err != nil {
			return errno(err)
		}
		if err := v.WriteUint32(openedPtr, uint32(h)); err != nil {
			// The handle cannot reach the guest; a failed open must not
			// leave a session behind.
			_ = crypto.Close(wc, uint32(h))
			return errno(err)
		}
		return errnoSuccess
	}).Export("crypto_aead_open")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		aead, noncePtr, nonceLen, aadPtr, aadLen, dataPtr, dataCount, tagPtr, tagLen uint32) uint32 {
		log.Debug("crypto_aead_encrypt", zap.Uint32("aead", aead))
		v := guestmem.New(mod.Memory())
		return errno(crypto.Encrypt(wc, v, aead, noncePtr, nonceLen, aadPtr, aadLen, dataPtr, dataCount, tagPtr, tagLen))
	}).Export("crypto_aead_encrypt")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		aead, noncePtr, nonceLen, aadPtr, aadLen, dataPtr, dataCount, tagPtr, tagLen uint32) uint32 {
		log.Debug("crypto_aead_decrypt", zap.Uint32("aead", aead))
		v := guestmem.New(mod.Memory())
		return errno(crypto.Decrypt(wc, v, aead, noncePtr, nonceLen, aadPtr, aadLen, dataPtr, dataCount, tagPtr, tagLen))
	}).Export("crypto_aead_decrypt")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context,
		aead uint32) uint32 {
		log.Debug("crypto_aead_close", zap.Uint32("aead", aead))
		return errno(crypto.Close(wc, aead))
	}).Export("crypto_aead_close")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		algPtr, algLen, keyPtr, keyLen, openedPtr uint32) uint32 {
		log.Debug("crypto_mac_open", zap.Uint32("algorithm_ptr", algPtr))
		return errno(crypto.MacOpen(wc, guestmem.New(mod.Memory()), algPtr, algLen, keyPtr, keyLen, openedPtr))
	}).Export("crypto_mac_open")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		mac, dataPtr, dataLen uint32) uint32 {
		log.Debug("crypto_mac_update", zap.Uint32("mac", mac))
		return errno(crypto.MacUpdate(wc, guestmem.New(mod.Memory()), mac, dataPtr, dataLen))
	}).Export("crypto_mac_update")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		mac, digestPtr, digestLen uint32) uint32 {
		log.Debug("crypto_mac_digest", zap.Uint32("mac", mac))
		return errno(crypto.MacDigest(wc, guestmem.New(mod.Memory()), mac, digestPtr, digestLen))
	}).Export("crypto_mac_digest")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context,
		mac uint32) uint32 {
		log.Debug("crypto_mac_close", zap.Uint32("mac", mac))
		return errno(crypto.MacClose(wc, mac))
	}).Export("crypto_mac_close")

	b.NewFunctionBuilder().WithFunc(func(_ context.Context, mod api.Module,
		algPtr, algLen, op, inputPtr, inputLen, outputPtr, outputLen uint32) uint32 {
		log.Debug("crypto_hkdf", zap.Uint32("algorithm_ptr", algPtr), zap.Uint32("op", op))
		return errno(crypto.HKDF(wc, guestmem.New(mod.Memory()), algPtr, algLen, op, inputPtr, inputLen, outputPtr, outputLen))
	}).Export("crypto_hkdf")

	return b.Instantiate(ctx)
}
