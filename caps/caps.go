package caps

import "strings"

// Rights is a bitset of operations a handle permits, using the WASI preview1
// rights encoding. A single set covers both file and directory operations;
// which bits are meaningful depends on the entry variant behind the handle.
type Rights uint64

const (
	FDDatasync Rights = 1 << iota
	FDRead
	FDSeek
	FDFdstatSetFlags
	FDSync
	FDTell
	FDWrite
	FDAdvise
	FDAllocate
	PathCreateDirectory
	PathCreateFile
	PathLinkSource
	PathLinkTarget
	PathOpen
	FDReaddir
	PathReadlink
	PathRenameSource
	PathRenameTarget
	PathFilestatGet
	PathFilestatSetSize
	PathFilestatSetTimes
	FDFilestatGet
	FDFilestatSetSize
	FDFilestatSetTimes
	PathSymlink
	PathRemoveDirectory
	PathUnlinkFile
	PollFDReadwrite
	SockShutdown
)

// AllFileRights are the rights meaningful on a regular file handle.
const AllFileRights = FDDatasync | FDRead | FDSeek | FDFdstatSetFlags |
	FDSync | FDTell | FDWrite | FDAdvise | FDAllocate | FDFilestatGet |
	FDFilestatSetSize | FDFilestatSetTimes | PollFDReadwrite

// AllDirRights are the rights meaningful on a directory handle.
const AllDirRights = FDDatasync | FDFdstatSetFlags | FDSync |
	PathCreateDirectory | PathCreateFile | PathLinkSource | PathLinkTarget |
	PathOpen | FDReaddir | PathReadlink | PathRenameSource | PathRenameTarget |
	PathFilestatGet | PathFilestatSetSize | PathFilestatSetTimes |
	FDFilestatGet | FDFilestatSetTimes | PathSymlink | PathRemoveDirectory |
	PathUnlinkFile

// CharacterDeviceRights are the rights meaningful on a character device such
// as an inherited standard stream. No seek, no tell.
const CharacterDeviceRights = FDRead | FDWrite | FDFdstatSetFlags |
	FDFilestatGet | PollFDReadwrite

// Contains reports whether every bit of need is present in r.
func (r Rights) Contains(need Rights) bool {
	return r&need == need
}

var rightNames = []struct {
	bit  Rights
	name string
}{
	{FDDatasync, "fd_datasync"},
	{FDRead, "fd_read"},
	{FDSeek, "fd_seek"},
	{FDFdstatSetFlags, "fd_fdstat_set_flags"},
	{FDSync, "fd_sync"},
	{FDTell, "fd_tell"},
	{FDWrite, "fd_write"},
	{FDAdvise, "fd_advise"},
	{FDAllocate, "fd_allocate"},
	{PathCreateDirectory, "path_create_directory"},
	{PathCreateFile, "path_create_file"},
	{PathLinkSource, "path_link_source"},
	{PathLinkTarget, "path_link_target"},
	{PathOpen, "path_open"},
	{FDReaddir, "fd_readdir"},
	{PathReadlink, "path_readlink"},
	{PathRenameSource, "path_rename_source"},
	{PathRenameTarget, "path_rename_target"},
	{PathFilestatGet, "path_filestat_get"},
	{PathFilestatSetSize, "path_filestat_set_size"},
	{PathFilestatSetTimes, "path_filestat_set_times"},
	{FDFilestatGet, "fd_filestat_get"},
	{FDFilestatSetSize, "fd_filestat_set_size"},
	{FDFilestatSetTimes, "fd_filestat_set_times"},
	{PathSymlink, "path_symlink"},
	{PathRemoveDirectory, "path_remove_directory"},
	{PathUnlinkFile, "path_unlink_file"},
	{PollFDReadwrite, "poll_fd_readwrite"},
	{SockShutdown, "sock_shutdown"},
}

func (r Rights) String() string {
	if r == 0 {
		return "none"
	}
	var names []string
	for _, rn := range rightNames {
		if r&rn.bit != 0 {
			names = append(names, rn.name)
		}
	}
	return strings.Join(names, "|")
}

// HandleRights pairs the rights exercisable directly on a handle with the
// rights grantable to resources derived beneath it.
type HandleRights struct {
	Base       Rights
	Inheriting Rights
}

// Narrow intersects requested rights with the parent's inheriting set.
// Rights only ever narrow along a derivation chain.
func (r HandleRights) Narrow(requested HandleRights) HandleRights {
	return HandleRights{
		Base:       requested.Base & r.Inheriting,
		Inheriting: requested.Inheriting & r.Inheriting,
	}
}
