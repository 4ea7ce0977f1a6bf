// Package hostmod binds the host-call layer to wazero as importable host
// modules.
//
// Two namespaces are exported: wasi_ephemeral_crypto (the AEAD protocol plus
// the recognized-but-unimplemented MAC and HKDF entry points) and a
// context-backed subset of wasi_snapshot_preview1 (argument and environment
// vectors, randomness, clocks). Every host function takes i32 offsets into
// the calling module's linear memory, crosses the trust boundary through a
// fresh guestmem.View, and returns a WASI errno; failures never propagate as
// Go errors or panics into the guest.
//
// The embedder must serialize host calls per context: the layer has no
// internal locking and host calls must not reenter (see the root package
// documentation).
package hostmod
