// Package osfs implements the core.Host contract over the local
// filesystem using package os.
package osfs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/core"
)

// writeBit is the owner write permission flag queried and toggled by the
// permission oracle.
const writeBit = 0o200

// Host is the package os backed host. The zero value is usable; New is
// provided for symmetry with other host packages.
type Host struct{}

// New returns a local-filesystem host.
func New() *Host {
	return &Host{}
}

// ReadFile reads the named file and returns its contents.
func (h *Host) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.FromSlash(name))
}

// WriteFile writes data to the named file under the given policy.
func (h *Host) WriteFile(name string, data []byte, policy core.WritePolicy) error {
	name = filepath.FromSlash(name)
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
	f, err := os.OpenFile(name, flag, 0o644)
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
func (h *Host) Writable(name string) (bool, error) {
	info, err := os.Stat(filepath.FromSlash(name))
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&writeBit != 0, nil
}

// SetWritable toggles the owner write flag on the named file, leaving the
// remaining permission bits alone.
func (h *Host) SetWritable(name string, writable bool) error {
	name = filepath.FromSlash(name)
	info, err := os.Stat(name)
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	if writable {
		mode |= writeBit
	} else {
		mode &^= writeBit
	}
	return os.Chmod(name, mode)
}

// Enumerate lists the immediate entries matching a directory wildcard of
// the form dir/*. With follow set, symlinks are resolved with
// EvalSymlinks and reported under their target path and kind; dangling
// symlinks are omitted. Entries come back in os.ReadDir order (sorted by
// name), which is stable for an unchanged directory.
func (h *Host) Enumerate(pattern string, follow bool) ([]core.HostEntry, error) {
	dir := wildcardDir(pattern)
	ents, err := os.ReadDir(filepath.FromSlash(dir))
	if err != nil {
		return nil, err
	}

	out := make([]core.HostEntry, 0, len(ents))
	for _, e := range ents {
		full := joinSlash(dir, e.Name())
		if follow {
			he, ok, err := resolveEntry(full)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, he)
			}
			continue
		}
		kind := core.EntryFile
		switch {
		case e.Type()&fs.ModeSymlink != 0:
			kind = core.EntrySymlink
		case e.IsDir():
			kind = core.EntryDir
		}
		out = append(out, core.HostEntry{Path: full, Kind: kind})
	}
	return out, nil
}

// Stat reports the kind of the named path, following symlinks.
func (h *Host) Stat(name string) (core.EntryKind, error) {
	info, err := os.Stat(filepath.FromSlash(name))
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
	return os.MkdirAll(filepath.FromSlash(name), 0o755)
}

// Remove removes the named file or empty directory.
func (h *Host) Remove(name string) error {
	return os.Remove(filepath.FromSlash(name))
}

// RemoveAll removes the named path and any children it contains.
func (h *Host) RemoveAll(name string) error {
	return os.RemoveAll(filepath.FromSlash(name))
}

// Symlink creates a symbolic link at link pointing to target.
func (h *Host) Symlink(target, link string) error {
	return os.Symlink(filepath.FromSlash(target), filepath.FromSlash(link))
}

// UniqueName derives a currently unused path inside dir from pattern,
// substituting a random token for a "*" in the pattern or appending one.
// Collisions against concurrent creators remain possible; creators should
// pass NoClobber (or O_EXCL semantics) when materializing the path.
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
		full := filepath.Join(filepath.FromSlash(dir), base)
		if _, err := os.Lstat(full); os.IsNotExist(err) {
			return filepath.ToSlash(full), nil
		} else if err != nil {
			return "", err
		}
	}
	return "", errors.Newf(errors.CodeInternal,
		"could not derive a unique name in %q from pattern %q", dir, pattern)
}

// resolveEntry resolves one entry to its real target. Dangling symlinks
// report ok=false rather than failing the whole enumeration.
func resolveEntry(full string) (core.HostEntry, bool, error) {
	resolved, err := filepath.EvalSymlinks(filepath.FromSlash(full))
	if err != nil {
		if os.IsNotExist(err) {
			return core.HostEntry{}, false, nil
		}
		return core.HostEntry{}, false, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return core.HostEntry{}, false, err
	}
	kind := core.EntryFile
	if info.IsDir() {
		kind = core.EntryDir
	}
	return core.HostEntry{Path: filepath.ToSlash(resolved), Kind: kind}, true, nil
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

func joinSlash(dir, name string) string {
	if dir == "." {
		return name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}
