package wasi

import (
	"bytes"
	"errors"
	"testing"

	"github.com/wasicap/wasicap"
	"github.com/wasicap/wasicap/caps"
	"github.com/wasicap/wasicap/table"
	"github.com/wasicap/wasicap/wasierr"
)

// sliceMemory backs a guest linear memory with a plain byte slice.
type sliceMemory []byte

func (m sliceMemory) Size() uint32 {
	return uint32(len(m))
}

func (m sliceMemory) Read(offset, byteCount uint32) ([]byte, bool) {
	if uint64(offset)+uint64(byteCount) > uint64(len(m)) {
		return nil, false
	}
	return m[offset : offset+byteCount], true
}

func (m sliceMemory) Write(offset uint32, v []byte) bool {
	if uint64(offset)+uint64(len(v)) > uint64(len(m)) {
		return false
	}
	copy(m[offset:], v)
	return true
}

type fakeFile struct {
	name   string
	closed bool
}

func (f *fakeFile) Filetype() wasicap.Filetype  { return wasicap.FiletypeRegularFile }
func (f *fakeFile) Read(p []byte) (int, error)  { return 0, nil }
func (f *fakeFile) Write(p []byte) (int, error) { return len(p), nil }
func (f *fakeFile) Close() error {
	f.closed = true
	return nil
}

type fakeDir struct {
	files  map[string]*fakeFile
	closed bool
}

func (d *fakeDir) OpenFile(path string) (wasicap.File, error) {
	f, ok := d.files[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return f, nil
}

func (d *fakeDir) Close() error {
	d.closed = true
	return nil
}

func TestBuilder_Build(t *testing.T) {
	c, err := NewBuilder().
		Arg("prog").
		Arg("--flag").
		Env("HOME", "/home/guest").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := c.Args().Elements(); len(got) != 2 || got[0] != "prog" || got[1] != "--flag" {
		t.Fatalf("Unexpected args: %v", got)
	}
	if got := c.Env().Elements(); len(got) != 1 || got[0] != "HOME=/home/guest" {
		t.Fatalf("Unexpected env: %v", got)
	}
	// No stdio configured means an empty table.
	if c.Table().Len() != 0 {
		t.Fatalf("Expected empty table, got %d entries", c.Table().Len())
	}
	// Defaults are installed.
	if c.Random() == nil || c.Clocks() == nil || c.Logger() == nil {
		t.Fatal("Expected default random, clocks and logger")
	}
}

func TestBuilder_BuildValidatesArgs(t *testing.T) {
	_, err := NewBuilder().Arg("ok").Arg("bad\xff").Build()
	if !wasierr.IsKind(err, wasierr.KindStringArray) {
		t.Fatalf("Expected string_array, got %v", err)
	}

	_, err = NewBuilder().Env("KEY", "has\x00nul").Build()
	if !wasierr.IsKind(err, wasierr.KindStringArray) {
		t.Fatalf("Expected string_array, got %v", err)
	}
}

func TestBuilder_StdioRights(t *testing.T) {
	c, err := NewBuilder().
		Stdin(&fakeFile{name: "in"}).
		Stdout(&fakeFile{name: "out"}).
		Stderr(&fakeFile{name: "err"}).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	stdin, err := c.File(0)
	if err != nil {
		t.Fatalf("File(0) failed: %v", err)
	}
	if err := stdin.Require(caps.FDRead); err != nil {
		t.Fatalf("stdin should be readable: %v", err)
	}
	if err := stdin.Require(caps.FDWrite); !wasierr.IsKind(err, wasierr.KindNotCapable) {
		t.Fatalf("stdin write should be not_capable, got %v", err)
	}

	for _, h := range []table.Handle{1, 2} {
		f, err := c.File(h)
		if err != nil {
			t.Fatalf("File(%d) failed: %v", h, err)
		}
		if err := f.Require(caps.FDWrite); err != nil {
			t.Fatalf("Handle %d should be writable: %v", h, err)
		}
		if err := f.Require(caps.FDRead); !wasierr.IsKind(err, wasierr.KindNotCapable) {
			t.Fatalf("Handle %d read should be not_capable, got %v", h, err)
		}
	}
}

func TestBuilder_Preopens(t *testing.T) {
	dir := &fakeDir{files: map[string]*fakeFile{}}
	c, err := NewBuilder().
		Stdin(&fakeFile{}).
		Stdout(&fakeFile{}).
		Stderr(&fakeFile{}).
		PreopenedDir(dir, "/data").
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// First preopen lands just above the standard streams.
	de, err := c.Dir(3)
	if err != nil {
		t.Fatalf("Dir(3) failed: %v", err)
	}
	if de.Path() != "/data" {
		t.Fatalf("Expected path /data, got %q", de.Path())
	}
	if !de.Rights().Base.Contains(caps.PathOpen) {
		t.Fatal("Preopen should carry path_open")
	}
	if !de.Rights().Inheriting.Contains(caps.AllFileRights) {
		t.Fatal("Preopen should pass down full file rights")
	}
}

func TestCtx_HandleVariants(t *testing.T) {
	dir := &fakeDir{}
	c, err := NewBuilder().PreopenedDir(dir, "/").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// The preopen is the only entry, at handle 0.
	if _, err := c.Dir(0); err != nil {
		t.Fatalf("Dir(0) failed: %v", err)
	}
	// Resolving it as the wrong variant is an invalid handle, not a rights
	// failure.
	if _, err := c.File(0); !wasierr.IsKind(err, wasierr.KindInvalidHandle) {
		t.Fatalf("Expected invalid_handle, got %v", err)
	}
	if _, err := c.Dir(99); !wasierr.IsKind(err, wasierr.KindInvalidHandle) {
		t.Fatalf("Expected invalid_handle, got %v", err)
	}
}

func TestCtx_OpenFileAtNarrows(t *testing.T) {
	dir := &fakeDir{files: map[string]*fakeFile{
		"notes.txt": {name: "notes.txt"},
	}}
	c, err := NewBuilder().PreopenedDir(dir, "/").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	requested := caps.HandleRights{
		Base:       caps.FDRead | caps.FDWrite | caps.FDSeek,
		Inheriting: caps.FDRead,
	}
	h, err := c.OpenFileAt(0, "notes.txt", requested)
	if err != nil {
		t.Fatalf("OpenFileAt failed: %v", err)
	}

	fe, err := c.File(h)
	if err != nil {
		t.Fatalf("File(%d) failed: %v", h, err)
	}
	parent, _ := c.Dir(0)
	// Granted rights never exceed what the parent can pass down.
	if !parent.Rights().Inheriting.Contains(fe.Rights().Base) {
		t.Fatalf("Granted base %s escapes parent inheriting", fe.Rights().Base)
	}
	if !parent.Rights().Inheriting.Contains(fe.Rights().Inheriting) {
		t.Fatalf("Granted inheriting %s escapes parent inheriting", fe.Rights().Inheriting)
	}
	// The preopen passes down everything, so here granted == requested.
	if fe.Rights() != requested {
		t.Fatalf("Expected %+v, got %+v", requested, fe.Rights())
	}
}

func TestCtx_OpenFileAtRequiresPathOpen(t *testing.T) {
	dir := &fakeDir{files: map[string]*fakeFile{"f": {}}}
	c, err := NewBuilder().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// Install a directory without path_open.
	c.InsertDirAt(5, dir, caps.HandleRights{Base: caps.FDReaddir}, "/ro")

	_, err = c.OpenFileAt(5, "f", caps.HandleRights{Base: caps.FDRead})
	if !wasierr.IsKind(err, wasierr.KindNotCapable) {
		t.Fatalf("Expected not_capable, got %v", err)
	}
}

func TestCtx_OpenFileAtMissing(t *testing.T) {
	dir := &fakeDir{files: map[string]*fakeFile{}}
	c, err := NewBuilder().PreopenedDir(dir, "/").Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	_, err = c.OpenFileAt(0, "absent", caps.HandleRights{Base: caps.FDRead})
	if !wasierr.IsKind(err, wasierr.KindInvalidArgument) {
		t.Fatalf("Expected invalid_argument, got %v", err)
	}
}

func TestBuilder_RandomOverride(t *testing.T) {
	src := bytes.NewReader([]byte{1, 2, 3, 4})
	c, err := NewBuilder().Random(src).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	buf := make([]byte, 4)
	if _, err := c.Random().Read(buf); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(buf, []byte{1, 2, 3, 4}) {
		t.Fatalf("Expected injected bytes, got %v", buf)
	}
}
