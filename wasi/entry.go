package wasi

import (
	"github.com/wasicap/wasicap"
	"github.com/wasicap/wasicap/caps"
	"github.com/wasicap/wasicap/table"
	"github.com/wasicap/wasicap/wasierr"
)

// FileEntry is the table entry behind a file handle. It owns the underlying
// open host object exclusively and carries the rights mask gating every
// operation on the handle.
type FileEntry struct {
	table.Base
	rights caps.HandleRights
	file   wasicap.File
}

// NewFileEntry creates a file entry with the given rights.
func NewFileEntry(rights caps.HandleRights, file wasicap.File) *FileEntry {
	return &FileEntry{rights: rights, file: file}
}

// Rights returns the entry's rights masks.
func (e *FileEntry) Rights() caps.HandleRights { return e.rights }

// File returns the underlying host object.
func (e *FileEntry) File() wasicap.File { return e.file }

// Require fails with not_capable unless the base rights include need.
func (e *FileEntry) Require(need caps.Rights) error {
	if !e.rights.Base.Contains(need) {
		return wasierr.NotCapable(wasierr.PhaseCtx, need.String())
	}
	return nil
}

// Close finalizes the underlying host object. Called by the owner after the
// entry has been removed from the table.
func (e *FileEntry) Close() error {
	return e.file.Close()
}

// DirEntry is the table entry behind a directory handle. Path is the
// guest-visible path recorded when the directory was provisioned, used when
// re-opening descendants.
type DirEntry struct {
	table.Base
	rights caps.HandleRights
	path   string
	dir    wasicap.Dir
}

// NewDirEntry creates a directory entry.
func NewDirEntry(rights caps.HandleRights, path string, dir wasicap.Dir) *DirEntry {
	return &DirEntry{rights: rights, path: path, dir: dir}
}

// Rights returns the entry's rights masks.
func (e *DirEntry) Rights() caps.HandleRights { return e.rights }

// Path returns the guest-visible path of the directory.
func (e *DirEntry) Path() string { return e.path }

// Dir returns the underlying host directory.
func (e *DirEntry) Dir() wasicap.Dir { return e.dir }

// Require fails with not_capable unless the base rights include need.
func (e *DirEntry) Require(need caps.Rights) error {
	if !e.rights.Base.Contains(need) {
		return wasierr.NotCapable(wasierr.PhaseCtx, need.String())
	}
	return nil
}

// Close finalizes the underlying host directory.
func (e *DirEntry) Close() error {
	return e.dir.Close()
}
