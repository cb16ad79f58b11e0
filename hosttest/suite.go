// Package hosttest provides a conformance test suite for validating
// core.Host implementations against their documented contracts.
//
// Host packages import the suite and run it against a factory:
//
//	func TestHost(t *testing.T) {
//	    hosttest.Suite(t, func(t *testing.T) (core.Host, string) {
//	        return myhost.New(), t.TempDir()
//	    }, hosttest.POSIXConfig())
//	}
//
// The factory returns a fresh host plus a base directory the suite may
// freely populate. The config declares capability gaps so backends without
// permissions, FIFOs or symlinks skip the corresponding subtests instead
// of failing them.
package hosttest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jmgilman/go/fsutil/core"
)

// Config declares the behavior characteristics of a host under test.
type Config struct {
	// SupportsPermissions indicates SetWritable works rather than
	// returning ErrUnsupported.
	SupportsPermissions bool

	// SupportsFIFO indicates Mkfifo works rather than returning
	// ErrUnsupported.
	SupportsFIFO bool

	// SupportsSymlinks indicates the host can create symbolic links and
	// resolves them during enumeration.
	SupportsSymlinks bool

	// SkipTests lists subtest names to skip (e.g. "ByteIO/NoClobber").
	SkipTests []string
}

// POSIXConfig returns the configuration for full-featured local hosts.
func POSIXConfig() Config {
	return Config{SupportsPermissions: true, SupportsFIFO: true, SupportsSymlinks: true}
}

// MemoryConfig returns the configuration for in-memory hosts without a
// permission or FIFO model.
func MemoryConfig() Config {
	return Config{SupportsSymlinks: true}
}

// Factory returns a fresh host and a writable base directory for one test.
type Factory func(t *testing.T) (core.Host, string)

// symlinker is the optional link-creation capability, discovered by type
// assertion on hosts configured with symlink support.
type symlinker interface {
	Symlink(target, link string) error
}

// Suite runs all applicable conformance tests against hosts produced by
// the factory.
func Suite(t *testing.T, newHost Factory, cfg Config) {
	shouldSkip := func(name string) bool {
		for _, skip := range cfg.SkipTests {
			if skip == name {
				return true
			}
		}
		return false
	}
	run := func(name string, fn func(t *testing.T, host core.Host, base string)) {
		t.Run(name, func(t *testing.T) {
			if shouldSkip(name) {
				t.Skip("Skipped by host configuration")
				return
			}
			host, base := newHost(t)
			fn(t, host, base)
		})
	}

	run("ByteIO", testByteIO)
	run("Enumerate", testEnumerate)
	run("Stat", testStat)
	run("Manage", testManage)
	run("UniqueName", testUniqueName)
	if cfg.SupportsPermissions {
		run("Permissions", testPermissions)
	}
	if cfg.SupportsFIFO {
		run("FIFO", testFIFO)
	}
	if cfg.SupportsSymlinks {
		run("Symlinks", testSymlinks)
	}
}

func testByteIO(t *testing.T, host core.Host, base string) {
	name := base + "/io.txt"

	if err := host.WriteFile(name, []byte("one"), core.Overwrite); err != nil {
		t.Fatalf("WriteFile(%q, overwrite): got error %v, want nil", name, err)
	}
	got, err := host.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile(%q): got error %v, want nil", name, err)
	}
	if !bytes.Equal(got, []byte("one")) {
		t.Errorf("ReadFile(%q) = %q, want %q", name, got, "one")
	}

	if err := host.WriteFile(name, []byte("two"), core.Overwrite); err != nil {
		t.Fatalf("WriteFile(%q, overwrite existing): got error %v, want nil", name, err)
	}
	if got, _ = host.ReadFile(name); !bytes.Equal(got, []byte("two")) {
		t.Errorf("ReadFile(%q) after overwrite = %q, want %q", name, got, "two")
	}

	if err := host.WriteFile(name, []byte("three"), core.Append); err != nil {
		t.Fatalf("WriteFile(%q, append): got error %v, want nil", name, err)
	}
	if got, _ = host.ReadFile(name); !bytes.Equal(got, []byte("twothree")) {
		t.Errorf("ReadFile(%q) after append = %q, want %q", name, got, "twothree")
	}

	if err := host.WriteFile(name, []byte("x"), core.NoClobber); !errors.Is(err, core.ErrExist) {
		t.Errorf("WriteFile(%q, no-clobber existing): error = %v, want ErrExist", name, err)
	}

	if _, err := host.ReadFile(base + "/absent.txt"); !errors.Is(err, core.ErrNotExist) {
		t.Errorf("ReadFile(absent): error = %v, want ErrNotExist", err)
	}
}

func testEnumerate(t *testing.T, host core.Host, base string) {
	if err := host.MkdirAll(base + "/sub"); err != nil {
		t.Fatalf("MkdirAll(sub): setup failed: %v", err)
	}
	for _, name := range []string{"/a.txt", "/b.txt"} {
		if err := host.WriteFile(base+name, []byte("x"), core.Overwrite); err != nil {
			t.Fatalf("WriteFile(%s): setup failed: %v", name, err)
		}
	}

	entries, err := host.Enumerate(base+"/*", false)
	if err != nil {
		t.Fatalf("Enumerate(%s/*): got error %v, want nil", base, err)
	}
	if len(entries) != 3 {
		t.Fatalf("Enumerate(%s/*): %d entries, want 3: %v", base, len(entries), entries)
	}

	kinds := make(map[string]core.EntryKind, len(entries))
	for _, e := range entries {
		kinds[e.Path] = e.Kind
	}
	if kinds[base+"/a.txt"] != core.EntryFile {
		t.Errorf("Enumerate: a.txt kind = %v, want file", kinds[base+"/a.txt"])
	}
	if kinds[base+"/sub"] != core.EntryDir {
		t.Errorf("Enumerate: sub kind = %v, want directory", kinds[base+"/sub"])
	}

	// Same snapshot, same order.
	again, err := host.Enumerate(base+"/*", false)
	if err != nil {
		t.Fatalf("Enumerate(%s/*) second call: got error %v, want nil", base, err)
	}
	if len(again) != len(entries) {
		t.Fatalf("Enumerate: second call returned %d entries, want %d", len(again), len(entries))
	}
	for i := range entries {
		if again[i] != entries[i] {
			t.Errorf("Enumerate: entry[%d] = %v on repeat, want %v", i, again[i], entries[i])
		}
	}
}

func testStat(t *testing.T, host core.Host, base string) {
	if err := host.WriteFile(base+"/f", []byte("x"), core.Overwrite); err != nil {
		t.Fatalf("WriteFile(f): setup failed: %v", err)
	}

	kind, err := host.Stat(base + "/f")
	if err != nil {
		t.Fatalf("Stat(f): got error %v, want nil", err)
	}
	if kind != core.EntryFile {
		t.Errorf("Stat(f): kind = %v, want file", kind)
	}

	kind, err = host.Stat(base)
	if err != nil {
		t.Fatalf("Stat(base): got error %v, want nil", err)
	}
	if kind != core.EntryDir {
		t.Errorf("Stat(base): kind = %v, want directory", kind)
	}

	if _, err := host.Stat(base + "/absent"); !errors.Is(err, core.ErrNotExist) {
		t.Errorf("Stat(absent): error = %v, want ErrNotExist", err)
	}
}

func testManage(t *testing.T, host core.Host, base string) {
	nested := base + "/a/b/c"
	if err := host.MkdirAll(nested); err != nil {
		t.Fatalf("MkdirAll(%q): got error %v, want nil", nested, err)
	}
	if kind, err := host.Stat(nested); err != nil || kind != core.EntryDir {
		t.Fatalf("Stat(%q) after MkdirAll: kind=%v err=%v, want directory", nested, kind, err)
	}
	if err := host.MkdirAll(nested); err != nil {
		t.Errorf("MkdirAll(%q) on existing: got error %v, want nil", nested, err)
	}

	if err := host.WriteFile(nested+"/f", []byte("x"), core.Overwrite); err != nil {
		t.Fatalf("WriteFile(f): setup failed: %v", err)
	}
	if err := host.Remove(nested + "/f"); err != nil {
		t.Errorf("Remove(f): got error %v, want nil", err)
	}
	if _, err := host.Stat(nested + "/f"); !errors.Is(err, core.ErrNotExist) {
		t.Errorf("Stat(f) after Remove: error = %v, want ErrNotExist", err)
	}

	if err := host.WriteFile(nested+"/g", []byte("x"), core.Overwrite); err != nil {
		t.Fatalf("WriteFile(g): setup failed: %v", err)
	}
	if err := host.RemoveAll(base + "/a"); err != nil {
		t.Errorf("RemoveAll(a): got error %v, want nil", err)
	}
	if err := host.RemoveAll(base + "/a"); err != nil {
		t.Errorf("RemoveAll(a) on absent: got error %v, want nil", err)
	}
}

func testUniqueName(t *testing.T, host core.Host, base string) {
	first, err := host.UniqueName(base, "scratch-*.tmp")
	if err != nil {
		t.Fatalf("UniqueName: got error %v, want nil", err)
	}
	second, err := host.UniqueName(base, "scratch-*.tmp")
	if err != nil {
		t.Fatalf("UniqueName second call: got error %v, want nil", err)
	}
	if first == second {
		t.Errorf("UniqueName returned %q twice", first)
	}
	if _, err := host.Stat(first); !errors.Is(err, core.ErrNotExist) {
		t.Errorf("UniqueName created %q; want name only", first)
	}

	// The returned name must be creatable under no-clobber semantics.
	if err := host.WriteFile(first, nil, core.NoClobber); err != nil {
		t.Errorf("WriteFile(unique, no-clobber): got error %v, want nil", err)
	}
}

func testPermissions(t *testing.T, host core.Host, base string) {
	name := base + "/perm.txt"
	if err := host.WriteFile(name, []byte("x"), core.Overwrite); err != nil {
		t.Fatalf("WriteFile(perm.txt): setup failed: %v", err)
	}

	writable, err := host.Writable(name)
	if err != nil {
		t.Fatalf("Writable(perm.txt): got error %v, want nil", err)
	}
	if !writable {
		t.Fatalf("Writable(perm.txt) = false on a fresh file, want true")
	}

	if err := host.SetWritable(name, false); err != nil {
		t.Fatalf("SetWritable(perm.txt, false): got error %v, want nil", err)
	}
	if writable, _ = host.Writable(name); writable {
		t.Errorf("Writable(perm.txt) = true after clearing flag, want false")
	}

	if err := host.SetWritable(name, true); err != nil {
		t.Fatalf("SetWritable(perm.txt, true): got error %v, want nil", err)
	}
	if writable, _ = host.Writable(name); !writable {
		t.Errorf("Writable(perm.txt) = false after restoring flag, want true")
	}

	if _, err := host.Writable(base + "/absent"); !errors.Is(err, core.ErrNotExist) {
		t.Errorf("Writable(absent): error = %v, want ErrNotExist", err)
	}
}

func testSymlinks(t *testing.T, host core.Host, base string) {
	sl, ok := host.(symlinker)
	if !ok {
		t.Fatal("host configured with symlink support but exposes no Symlink method")
	}

	target := base + "/target.txt"
	if err := host.WriteFile(target, []byte("x"), core.Overwrite); err != nil {
		t.Fatalf("WriteFile(target.txt): setup failed: %v", err)
	}
	if err := sl.Symlink(target, base+"/link"); err != nil {
		t.Fatalf("Symlink: setup failed: %v", err)
	}

	unresolved, err := host.Enumerate(base+"/*", false)
	if err != nil {
		t.Fatalf("Enumerate(no follow): got error %v, want nil", err)
	}
	var sawLink bool
	for _, e := range unresolved {
		if e.Kind == core.EntrySymlink {
			sawLink = true
		}
	}
	if !sawLink {
		t.Error("Enumerate(no follow): no symlink entry reported")
	}

	resolved, err := host.Enumerate(base+"/*", true)
	if err != nil {
		t.Fatalf("Enumerate(follow): got error %v, want nil", err)
	}
	for _, e := range resolved {
		if e.Kind == core.EntrySymlink {
			t.Errorf("Enumerate(follow): entry %q still reported as symlink", e.Path)
		}
	}

	kind, err := host.Stat(base + "/link")
	if err != nil {
		t.Fatalf("Stat(link): got error %v, want nil", err)
	}
	if kind != core.EntryFile {
		t.Errorf("Stat(link): kind = %v, want the target's kind (file)", kind)
	}
}

func testFIFO(t *testing.T, host core.Host, base string) {
	name := base + "/pipe"
	if err := host.Mkfifo(name); err != nil {
		t.Fatalf("Mkfifo(%q): got error %v, want nil", name, err)
	}
	if _, err := host.Stat(name); err != nil {
		t.Errorf("Stat(pipe): got error %v, want nil", err)
	}
	if err := host.Remove(name); err != nil {
		t.Errorf("Remove(pipe): got error %v, want nil", err)
	}
}
