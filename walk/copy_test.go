package walk_test

import (
	"bytes"
	"testing"

	"github.com/jmgilman/go/fsutil/billyfs"
	"github.com/jmgilman/go/fsutil/core"
	"github.com/jmgilman/go/fsutil/fspath"
	"github.com/jmgilman/go/fsutil/walk"
)

func TestCopyTreeAcrossHosts(t *testing.T) {
	src := billyfs.NewMemory()
	files := map[string][]byte{
		"/root/a.txt":   []byte("alpha"),
		"/root/c/d.txt": []byte("delta"),
	}
	for name, content := range files {
		if err := src.MkdirAll(fspath.ParseFile(name).Dir().String()); err != nil {
			t.Fatalf("MkdirAll for %s: setup failed: %v", name, err)
		}
		if err := src.WriteFile(name, content, core.Overwrite); err != nil {
			t.Fatalf("WriteFile(%s): setup failed: %v", name, err)
		}
	}

	dst := billyfs.NewMemory()
	err := walk.CopyTree(src, dst, fspath.ParseDir("/root"), fspath.ParseDir("/mirror"), core.Overwrite)
	if err != nil {
		t.Fatalf("CopyTree: got error %v, want nil", err)
	}

	for name, content := range files {
		mirrored := "/mirror" + name[len("/root"):]
		got, err := dst.ReadFile(mirrored)
		if err != nil {
			t.Fatalf("ReadFile(%q): got error %v, want nil", mirrored, err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("ReadFile(%q) = %q, want %q", mirrored, got, content)
		}
	}
}

func TestCopyTreePolicyForwarded(t *testing.T) {
	src := billyfs.NewMemory()
	if err := src.MkdirAll("/root"); err != nil {
		t.Fatalf("MkdirAll(/root): setup failed: %v", err)
	}
	if err := src.WriteFile("/root/a.txt", []byte("new"), core.Overwrite); err != nil {
		t.Fatalf("WriteFile: setup failed: %v", err)
	}

	dst := billyfs.NewMemory()
	if err := dst.MkdirAll("/mirror"); err != nil {
		t.Fatalf("MkdirAll(/mirror): setup failed: %v", err)
	}
	if err := dst.WriteFile("/mirror/a.txt", []byte("old"), core.Overwrite); err != nil {
		t.Fatalf("WriteFile: setup failed: %v", err)
	}

	err := walk.CopyTree(src, dst, fspath.ParseDir("/root"), fspath.ParseDir("/mirror"), core.NoClobber)
	if err == nil {
		t.Fatal("CopyTree(no-clobber onto existing file): got nil error, want ErrExist")
	}

	got, err := dst.ReadFile("/mirror/a.txt")
	if err != nil {
		t.Fatalf("ReadFile: got error %v, want nil", err)
	}
	if !bytes.Equal(got, []byte("old")) {
		t.Errorf("no-clobber destination overwritten: got %q, want %q", got, "old")
	}
}
