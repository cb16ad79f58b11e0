// Package billyfs implements the core.Host contract over a go-billy
// filesystem. It provides both a local host (rooted osfs) and an
// in-memory host (memfs), the latter being the workhorse for hermetic
// tests higher up the stack.
//
// billy has no permission or FIFO model on every backend; the host
// surfaces those gaps as core.ErrUnsupported and discovers optional
// capabilities (Chmod, symlinks) by interface assertion, the same way
// optional interfaces are discovered on core.Host consumers.
package billyfs

import (
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/core"
)

const writeBit = 0o200

// Host adapts a billy.Filesystem to core.Host.
type Host struct {
	bfs billy.Filesystem
}

// New returns a host over an existing billy filesystem.
func New(bfs billy.Filesystem) *Host {
	return &Host{bfs: bfs}
}

// NewMemory returns a host over a fresh in-memory filesystem.
func NewMemory() *Host {
	return &Host{bfs: memfs.New()}
}

// NewLocal returns a host over the local filesystem rooted at root.
func NewLocal(root string) *Host {
	return &Host{bfs: osfs.New(root)}
}

// Unwrap returns the underlying billy.Filesystem.
func (h *Host) Unwrap() billy.Filesystem {
	return h.bfs
}

// normalize cleans incoming host-syntax names for billy, which dislikes
// trailing slashes on directory paths.
func normalize(name string) string {
	return path.Clean(strings.ReplaceAll(name, "\\", "/"))
}

// ReadFile reads the named file and returns its contents.
func (h *Host) ReadFile(name string) ([]byte, error) {
	f, err := h.bfs.Open(normalize(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// WriteFile writes data to the named file under the given policy.
func (h *Host) WriteFile(name string, data []byte, policy core.WritePolicy) error {
	flag := os.O_WRONLY | os.O_CREATE
	switch policy {
	case core.Overwrite:
		flag |= os.O_TRUNC
	case core.Append:
		flag |= os.O_APPEND
	case core.NoClobber:
		flag |= os.O_EXCL
	default:
		return errors.Newf(core.CodeInvalidOption, "unrecognized write policy %d", policy)
	}
	f, err := h.bfs.OpenFile(normalize(name), flag, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Writable reports whether the named file carries the owner write flag.
// Backends without a permission model report everything writable.
func (h *Host) Writable(name string) (bool, error) {
	info, err := h.bfs.Stat(normalize(name))
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&writeBit != 0, nil
}

// SetWritable toggles the owner write flag where the backend supports
// Chmod, and reports ErrUnsupported where it does not (memfs).
func (h *Host) SetWritable(name string, writable bool) error {
	name = normalize(name)
	ch, ok := h.bfs.(billy.Change)
	if !ok {
		return core.ErrUnsupported
	}
	info, err := h.bfs.Stat(name)
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	if writable {
		mode |= writeBit
	} else {
		mode &^= writeBit
	}
	return ch.Chmod(name, mode)
}

// Enumerate lists the immediate entries matching a dir/* wildcard. billy
// has no EvalSymlinks, so following resolves link targets manually via
// Readlink against the entry's directory; dangling links are omitted.
func (h *Host) Enumerate(pattern string, follow bool) ([]core.HostEntry, error) {
	dir := wildcardDir(pattern)
	infos, err := h.bfs.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	out := make([]core.HostEntry, 0, len(infos))
	for _, info := range infos {
		full := path.Join(dir, info.Name())
		if info.Mode()&fs.ModeSymlink != 0 {
			if !follow {
				out = append(out, core.HostEntry{Path: full, Kind: core.EntrySymlink})
				continue
			}
			he, ok, err := h.resolveLink(dir, full)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, he)
			}
			continue
		}
		kind := core.EntryFile
		if info.IsDir() {
			kind = core.EntryDir
		}
		out = append(out, core.HostEntry{Path: full, Kind: kind})
	}
	return out, nil
}

// Stat reports the kind of the named path, following symlinks.
func (h *Host) Stat(name string) (core.EntryKind, error) {
	info, err := h.bfs.Stat(normalize(name))
	if err != nil {
		return core.EntryFile, err
	}
	if info.IsDir() {
		return core.EntryDir, nil
	}
	return core.EntryFile, nil
}

// MkdirAll creates the named directory and any missing parents.
func (h *Host) MkdirAll(name string) error {
	return h.bfs.MkdirAll(normalize(name), 0o755)
}

// Remove removes the named file or empty directory.
func (h *Host) Remove(name string) error {
	return h.bfs.Remove(normalize(name))
}

// RemoveAll removes the named path and any children it contains.
func (h *Host) RemoveAll(name string) error {
	return util.RemoveAll(h.bfs, normalize(name))
}

// UniqueName derives a currently unused path inside dir from pattern.
func (h *Host) UniqueName(dir, pattern string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	for range 10 {
		token := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		base := pattern + token
		if strings.Contains(pattern, "*") {
			base = strings.Replace(pattern, "*", token, 1)
		}
		full := path.Join(normalize(dir), base)
		_, err := h.lstat(full)
		if os.IsNotExist(err) {
			return full, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", errors.Newf(errors.CodeInternal,
		"could not derive a unique name in %q from pattern %q", dir, pattern)
}

// Mkfifo reports FIFOs as unsupported; no billy backend models them.
func (h *Host) Mkfifo(string) error {
	return core.ErrUnsupported
}

// Symlink creates a symbolic link where the backend supports it, for test
// fixtures and callers that hold a billyfs host directly.
func (h *Host) Symlink(target, link string) error {
	sl, ok := h.bfs.(billy.Symlink)
	if !ok {
		return core.ErrUnsupported
	}
	return sl.Symlink(target, normalize(link))
}

func (h *Host) lstat(name string) (fs.FileInfo, error) {
	if sl, ok := h.bfs.(billy.Symlink); ok {
		return sl.Lstat(name)
	}
	return h.bfs.Stat(name)
}

// resolveLink follows one symlink entry to its target's path and kind.
func (h *Host) resolveLink(dir, full string) (core.HostEntry, bool, error) {
	sl, ok := h.bfs.(billy.Symlink)
	if !ok {
		return core.HostEntry{}, false, nil
	}
	target, err := sl.Readlink(full)
	if err != nil {
		return core.HostEntry{}, false, err
	}
	if !strings.HasPrefix(target, "/") {
		target = path.Join(dir, target)
	}
	info, err := h.bfs.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return core.HostEntry{}, false, nil
		}
		return core.HostEntry{}, false, err
	}
	kind := core.EntryFile
	if info.IsDir() {
		kind = core.EntryDir
	}
	return core.HostEntry{Path: target, Kind: kind}, true, nil
}

// wildcardDir strips the trailing match-all segment from a dir/* pattern.
func wildcardDir(pattern string) string {
	pattern = strings.TrimSuffix(pattern, "*")
	if pattern == "" {
		return "."
	}
	if pattern != "/" {
		pattern = strings.TrimSuffix(pattern, "/")
	}
	return pattern
}
