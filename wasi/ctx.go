package wasi

import (
	"io"

	"go.uber.org/zap"

	"github.com/wasicap/wasicap"
	"github.com/wasicap/wasicap/caps"
	"github.com/wasicap/wasicap/table"
	"github.com/wasicap/wasicap/wasierr"
)

// Ctx is the per-guest-instance root: it owns the argument and environment
// vectors, the randomness source, the clock sources, and the capability
// table. All other entities of the layer are reachable only through it.
//
// After Build a Ctx is logically immutable except for its table contents,
// the randomness source's internal state, and clock reads. Host calls
// against one Ctx must be serialized by the embedder and must never reenter.
type Ctx struct {
	args   *StringArray
	env    *StringArray
	random io.Reader
	clocks *Clocks
	tbl    *table.Table
	log    *zap.Logger
}

// Table returns the capability table.
func (c *Ctx) Table() *table.Table { return c.tbl }

// Args returns the argument vector.
func (c *Ctx) Args() *StringArray { return c.args }

// Env returns the environment vector.
func (c *Ctx) Env() *StringArray { return c.env }

// Random returns the randomness source.
func (c *Ctx) Random() io.Reader { return c.random }

// Clocks returns the clock sources.
func (c *Ctx) Clocks() *Clocks { return c.clocks }

// Logger returns the context's logger, a no-op logger unless injected.
func (c *Ctx) Logger() *zap.Logger { return c.log }

// File resolves h to a file entry. A handle absent from the table, or bound
// to a different variant, fails with invalid_handle.
func (c *Ctx) File(h table.Handle) (*FileEntry, error) {
	e, err := c.tbl.Get(h)
	if err != nil {
		return nil, err
	}
	fe, ok := e.(*FileEntry)
	if !ok {
		return nil, wasierr.InvalidHandle(wasierr.PhaseCtx, uint32(h))
	}
	return fe, nil
}

// Dir resolves h to a directory entry.
func (c *Ctx) Dir(h table.Handle) (*DirEntry, error) {
	e, err := c.tbl.Get(h)
	if err != nil {
		return nil, err
	}
	de, ok := e.(*DirEntry)
	if !ok {
		return nil, wasierr.InvalidHandle(wasierr.PhaseCtx, uint32(h))
	}
	return de, nil
}

// InsertFileAt installs a file entry at an exact handle value.
func (c *Ctx) InsertFileAt(h table.Handle, file wasicap.File, rights caps.HandleRights) {
	c.tbl.InsertAt(h, NewFileEntry(rights, file))
}

// InsertDirAt installs a directory entry at an exact handle value.
func (c *Ctx) InsertDirAt(h table.Handle, dir wasicap.Dir, rights caps.HandleRights, path string) {
	c.tbl.InsertAt(h, NewDirEntry(rights, path, dir))
}

// PushFile installs a file entry at the lowest free handle.
func (c *Ctx) PushFile(file wasicap.File, rights caps.HandleRights) (table.Handle, error) {
	return c.tbl.Push(NewFileEntry(rights, file))
}

// OpenFileAt opens path beneath the directory handle dh and installs the
// resulting file at a fresh handle. The granted rights are the intersection
// of the requested rights with the directory's inheriting rights; a derived
// resource can never exceed its parent.
func (c *Ctx) OpenFileAt(dh table.Handle, path string, requested caps.HandleRights) (table.Handle, error) {
	de, err := c.Dir(dh)
	if err != nil {
		return 0, err
	}
	if err := de.Require(caps.PathOpen); err != nil {
		return 0, err
	}
	granted := de.Rights().Narrow(requested)
	f, err := de.Dir().OpenFile(path)
	if err != nil {
		return 0, wasierr.Wrap(wasierr.PhaseCtx, wasierr.KindInvalidArgument, err, "open "+path)
	}
	h, err := c.tbl.Push(NewFileEntry(granted, f))
	if err != nil {
		f.Close()
		return 0, err
	}
	return h, nil
}
