// Package stdio exposes the host process's standard streams as File-capable
// objects with a character-device filetype, for binding to the reserved
// handles 0 through 2.
//
// The rights installed on those handles are decided by the context builder,
// not here; these objects merely refuse the direction they do not support.
package stdio
