package wasicap

// Memory is the guest's linear memory as exposed by the embedding runtime.
// wazero's api.Memory satisfies it directly.
//
// Read returns a view over the underlying memory, not a copy: writes through
// the returned slice are visible to the guest. Both Read and Write report
// false when the range is out of bounds of the current memory size.
type Memory interface {
	Read(offset, byteCount uint32) ([]byte, bool)
	Write(offset uint32, v []byte) bool
	Size() uint32
}

// Filetype classifies the object behind a file handle, using the WASI
// preview1 encoding.
type Filetype uint8

const (
	FiletypeUnknown Filetype = iota
	FiletypeBlockDevice
	FiletypeCharacterDevice
	FiletypeDirectory
	FiletypeRegularFile
	FiletypeSocketDgram
	FiletypeSocketStream
	FiletypeSymbolicLink
)

func (f Filetype) String() string {
	switch f {
	case FiletypeBlockDevice:
		return "block_device"
	case FiletypeCharacterDevice:
		return "character_device"
	case FiletypeDirectory:
		return "directory"
	case FiletypeRegularFile:
		return "regular_file"
	case FiletypeSocketDgram:
		return "socket_dgram"
	case FiletypeSocketStream:
		return "socket_stream"
	case FiletypeSymbolicLink:
		return "symbolic_link"
	default:
		return "unknown"
	}
}

// File is an open host object reachable through a file handle. Concrete
// implementations (OS files, standard streams, test doubles) live outside
// the capability layer; the layer only stores them in table entries and
// gates access through rights masks.
type File interface {
	Filetype() Filetype
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// Dir is an open host directory. OpenFile resolves a path relative to this
// directory; the caller is responsible for rights narrowing before the call.
type Dir interface {
	OpenFile(path string) (File, error)
	Close() error
}
