// Package table implements the capability table: the single source of truth
// for what a guest handle refers to.
//
// A table maps opaque integer handles to typed resource entries. Entries are
// installed either at an explicit reserved slot (InsertAt, used for the
// standard streams at handles 0 through 2) or at the lowest currently free
// slot (Push). Remove detaches the entry and transfers ownership back to the
// caller, which is responsible for flushing or closing any underlying OS
// object.
//
// The table deliberately knows nothing about rights: callers resolve a
// handle, then check the rights mask stored on the entry before acting.
package table
