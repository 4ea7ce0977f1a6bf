package crypto

import (
	"github.com/wasicap/wasicap/guestmem"
	"github.com/wasicap/wasicap/wasi"
	"github.com/wasicap/wasicap/wasierr"
)

// The MAC and key-derivation entry points are accepted at the protocol level
// but deliberately unfinished. They fail with not_implemented, which guests
// can tell apart from not_supported (a valid request naming an unregistered
// algorithm). A silent no-op here would mask the difference.

// MacOpen always fails with not_implemented.
func MacOpen(_ *wasi.Ctx, _ *guestmem.View, _, _, _, _, _ uint32) error {
	return wasierr.NotImplemented("crypto_mac_open")
}

// MacUpdate always fails with not_implemented.
func MacUpdate(_ *wasi.Ctx, _ *guestmem.View, _, _, _ uint32) error {
	return wasierr.NotImplemented("crypto_mac_update")
}

// MacDigest always fails with not_implemented.
func MacDigest(_ *wasi.Ctx, _ *guestmem.View, _, _, _ uint32) error {
	return wasierr.NotImplemented("crypto_mac_digest")
}

// MacClose always fails with not_implemented.
func MacClose(_ *wasi.Ctx, _ uint32) error {
	return wasierr.NotImplemented("crypto_mac_close")
}

// HKDF always fails with not_implemented.
func HKDF(_ *wasi.Ctx, _ *guestmem.View, _, _, _, _, _, _, _ uint32) error {
	return wasierr.NotImplemented("crypto_hkdf")
}
