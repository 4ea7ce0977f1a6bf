// Package crypto implements the AEAD host-call protocol on top of the
// capability table and the guest memory view.
//
// The per-handle state machine is Closed -> Open (via Open) -> Closed (via
// Close). Encrypt and Decrypt are stateless while the session is open: each
// call is a complete AEAD transformation with no cross-call streaming state.
//
// A session binds an algorithm to the guest-memory location of its key, not
// to the key bytes: the key is re-read through the bounds-checked view on
// every operation, because the guest may rewrite its memory between calls.
// Ciphertext and plaintext flow through the same view, mutating the guest's
// scattered data regions in place in iovec order.
//
// The protocol fails closed: a decrypt whose tag does not authenticate
// returns invalid_argument, and nothing the guest buffers then hold may be
// treated as plaintext.
package crypto
