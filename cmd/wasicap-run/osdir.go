package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wasicap/wasicap"
)

// osDir adapts a host directory to wasicap.Dir for preopens. Paths are
// resolved relative to the root and may not escape it.
type osDir struct {
	root string
}

func newOSDir(root string) *osDir {
	return &osDir{root: root}
}

func (d *osDir) OpenFile(path string) (wasicap.File, error) {
	clean := filepath.Clean("/" + path)
	if strings.HasPrefix(clean, "/..") {
		return nil, fmt.Errorf("path %q escapes preopen root", path)
	}
	f, err := os.Open(filepath.Join(d.root, clean))
	if err != nil {
		return nil, err
	}
	return &osFile{f: f}, nil
}

func (d *osDir) Close() error {
	return nil
}

type osFile struct {
	f *os.File
}

func (f *osFile) Filetype() wasicap.Filetype { return wasicap.FiletypeRegularFile }
func (f *osFile) Read(p []byte) (int, error) { return f.f.Read(p) }
func (f *osFile) Write(p []byte) (int, error) {
	return f.f.Write(p)
}
func (f *osFile) Close() error { return f.f.Close() }

// memFile serves -stdin data to the guest.
type memFile struct {
	r *bytes.Reader
}

func newMemFile(data []byte) *memFile {
	return &memFile{r: bytes.NewReader(data)}
}

func (f *memFile) Filetype() wasicap.Filetype { return wasicap.FiletypeCharacterDevice }
func (f *memFile) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *memFile) Write(p []byte) (int, error) {
	return 0, fmt.Errorf("stdin is read-only")
}
func (f *memFile) Close() error { return nil }
