// Package wasi provides the per-instance context: the root of ownership for
// everything a guest may touch.
//
// A Ctx is constructed once through a Builder and holds exactly one
// capability table, one randomness source, two clock sources with a recorded
// creation timestamp, and the immutable argument and environment vectors.
// Builder option methods accumulate configuration; Build is the only
// fallible terminal operation:
//
//	wc, err := wasi.NewBuilder().
//	    Arg("program").
//	    Env("HOME", "/home/user").
//	    InheritStdio().
//	    PreopenedDir(root, "/").
//	    Build()
//
// The standard streams occupy reserved handles 0 through 2 with
// deliberately restrictive rights: read-only stdin, append-only stdout and
// stderr. Preopened directories receive full directory and file rights and
// form the guest's filesystem access roots; anything opened beneath them is
// rights-narrowed through OpenFileAt.
//
// Randomness and clocks are injected dependencies with documented default
// factories (crypto/rand.Reader, host system clocks). There is no implicit
// process-wide source.
package wasi
