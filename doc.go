// Package wasicap is a capability-secured host-call layer for WebAssembly
// guests running under wazero.
//
// Every guest request arrives as a numeric handle plus offsets into the
// guest's linear memory. The layer validates the handle's rights, translates
// guest offsets into host-visible byte ranges through a bounds-checked view,
// performs the operation against host facilities, and marshals results back
// into guest memory. The guest never gains access beyond what it was
// explicitly provisioned.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	wasicap/         Root package with the Memory, File and Dir interfaces
//	├── caps/        Rights bitmasks (base vs inheriting) and helpers
//	├── table/       The capability table mapping handles to resource entries
//	├── guestmem/    Bounds-checked guest memory view, the only trust-boundary crossing
//	├── wasi/        Per-instance context, builder, file/dir entries, clocks, randomness
//	│   ├── stdio/   Platform stdin/stdout/stderr as File-capable objects
//	│   └── crypto/  AEAD host-call protocol and cipher session registry
//	├── wasierr/     Structured error types and guest-facing errno mapping
//	└── hostmod/     wazero host module bindings for the guest-facing ABI
//
// # Quick Start
//
// Build a context and register the host modules on a wazero runtime:
//
//	wc, err := wasi.NewBuilder().
//	    Arg("program").
//	    Env("HOME", "/home/user").
//	    InheritStdio().
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r := wazero.NewRuntime(ctx)
//	defer r.Close(ctx)
//
//	if _, err := hostmod.InstantiateCrypto(ctx, r, wc); err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := hostmod.InstantiateCore(ctx, r, wc); err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// Host calls against one context must be serialized by the embedder: the
// layer itself has no suspension points and no internal locking, and a host
// call must never trigger another host call against the same context while
// the first is in progress. Guest memory bounds are re-validated on every
// access because the guest may grow or rewrite its memory between calls.
package wasicap
