package caps

import (
	"strings"
	"testing"
)

func TestRights_Contains(t *testing.T) {
	r := FDRead | FDWrite | FDSeek

	if !r.Contains(FDRead) {
		t.Fatal("Expected FDRead to be contained")
	}
	if !r.Contains(FDRead | FDWrite) {
		t.Fatal("Expected FDRead|FDWrite to be contained")
	}
	if r.Contains(PathOpen) {
		t.Fatal("PathOpen should not be contained")
	}
	if r.Contains(FDRead | PathOpen) {
		t.Fatal("Partial match should not count as contained")
	}

	// The empty set is contained in everything, including itself.
	if !r.Contains(0) {
		t.Fatal("Empty set should be contained")
	}
	if !Rights(0).Contains(0) {
		t.Fatal("Empty set should contain itself")
	}
}

func TestRights_PreviewEncoding(t *testing.T) {
	// The bit positions follow the preview1 rights layout.
	cases := []struct {
		right Rights
		bit   uint
	}{
		{FDDatasync, 0},
		{FDRead, 1},
		{FDWrite, 6},
		{PathOpen, 13},
		{FDReaddir, 14},
		{PollFDReadwrite, 27},
		{SockShutdown, 28},
	}
	for _, c := range cases {
		if c.right != 1<<c.bit {
			t.Fatalf("Expected bit %d, got %#x", c.bit, uint64(c.right))
		}
	}
}

func TestRights_String(t *testing.T) {
	if got := Rights(0).String(); got != "none" {
		t.Fatalf("Expected 'none', got %q", got)
	}
	if got := FDRead.String(); got != "fd_read" {
		t.Fatalf("Expected 'fd_read', got %q", got)
	}
	got := (FDRead | PathOpen).String()
	if !strings.Contains(got, "fd_read") || !strings.Contains(got, "path_open") {
		t.Fatalf("Expected both names in %q", got)
	}
}

func TestHandleRights_Narrow(t *testing.T) {
	parent := HandleRights{
		Base:       AllDirRights,
		Inheriting: FDRead | FDWrite | FDSeek,
	}

	// A derived handle gets exactly the intersection of what it asked for
	// with what the parent can pass down.
	got := parent.Narrow(HandleRights{
		Base:       FDRead | FDTell,
		Inheriting: FDWrite | PathOpen,
	})
	if got.Base != FDRead {
		t.Fatalf("Expected base fd_read, got %s", got.Base)
	}
	if got.Inheriting != FDWrite {
		t.Fatalf("Expected inheriting fd_write, got %s", got.Inheriting)
	}

	// The parent's own base rights never leak into the child.
	got = parent.Narrow(HandleRights{Base: PathUnlinkFile})
	if got.Base != 0 || got.Inheriting != 0 {
		t.Fatalf("Expected empty rights, got %s / %s", got.Base, got.Inheriting)
	}
}

func TestHandleRights_NarrowNeverWidens(t *testing.T) {
	parent := HandleRights{Inheriting: FDRead | FDSeek}
	child := parent.Narrow(HandleRights{
		Base:       AllFileRights,
		Inheriting: AllFileRights | AllDirRights,
	})
	if !parent.Inheriting.Contains(child.Base) {
		t.Fatalf("Child base %s escapes parent inheriting %s", child.Base, parent.Inheriting)
	}
	if !parent.Inheriting.Contains(child.Inheriting) {
		t.Fatalf("Child inheriting %s escapes parent inheriting %s", child.Inheriting, parent.Inheriting)
	}
}
