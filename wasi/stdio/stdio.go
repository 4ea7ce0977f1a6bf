package stdio

import (
	"errors"
	"os"

	"github.com/wasicap/wasicap"
)

var errWrongDirection = errors.New("stdio: stream does not support this direction")

// stream adapts one of the process's standard streams to wasicap.File.
// Close is a no-op: the process streams outlive any guest instance.
type stream struct {
	f        *os.File
	readable bool
}

func (s *stream) Filetype() wasicap.Filetype {
	return wasicap.FiletypeCharacterDevice
}

func (s *stream) Read(p []byte) (int, error) {
	if !s.readable {
		return 0, errWrongDirection
	}
	return s.f.Read(p)
}

func (s *stream) Write(p []byte) (int, error) {
	if s.readable {
		return 0, errWrongDirection
	}
	return s.f.Write(p)
}

func (s *stream) Close() error {
	return nil
}

// Stdin returns the process's standard input as a File-capable object.
func Stdin() wasicap.File {
	return &stream{f: os.Stdin, readable: true}
}

// Stdout returns the process's standard output.
func Stdout() wasicap.File {
	return &stream{f: os.Stdout}
}

// Stderr returns the process's standard error.
func Stderr() wasicap.File {
	return &stream{f: os.Stderr}
}
