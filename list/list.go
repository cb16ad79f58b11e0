// Package list enumerates the immediate entries of a directory as
// structured paths.
//
// Listing delegates the actual enumeration to a host Enumerator driven by
// a wildcard path derived from the directory; the package's own job is
// input validation, symlink-resolution bookkeeping and the mapping of host
// entries back into fspath values.
package list

import (
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/core"
	"github.com/jmgilman/go/fsutil/fspath"
)

// Entry is one directory entry: a structured path plus its kind.
// Entries are transient values produced by listing and walking; they are
// not persisted anywhere.
type Entry struct {
	Path fspath.Path
	Kind core.EntryKind
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Kind == core.EntryDir }

// Lister lists directory contents through a host enumerator.
type Lister struct {
	host core.Enumerator
}

// New returns a Lister backed by the given host enumerator.
func New(host core.Enumerator) *Lister {
	return &Lister{host: host}
}

// List returns the immediate entries of dir.
//
// dir must be a concrete directory-form path: wildcard input fails with
// WILDCARD_NOT_ALLOWED, file-form input with INVALID_COMPOSITION. The
// wildcard driving the host enumeration is derived internally.
//
// When follow is true, symlink entries are resolved to their real targets
// (which may lie outside dir) and the result is deduplicated by resolved
// identity. When follow is false, entries are returned as seen: symlinks
// verbatim with kind EntrySymlink, directories normalized to
// directory-form paths.
//
// Entry order is host-dependent but stable for one call against an
// unchanged directory.
func (l *Lister) List(dir fspath.Path, follow bool) ([]Entry, error) {
	if dir.IsWildcard() {
		return nil, errors.Newf(core.CodeWildcardNotAllowed,
			"cannot list wildcard path %q, want a concrete directory", dir.String())
	}
	if dir.Form() != fspath.Directory {
		return nil, errors.Newf(core.CodeInvalidComposition,
			"cannot list file-form path %q, want a directory", dir.String())
	}
	dir, err := fspath.Canonicalize(dir)
	if err != nil {
		return nil, err
	}

	pattern, err := fspath.Wildcard(dir)
	if err != nil {
		return nil, err
	}

	raw, err := l.host.Enumerate(pattern.String(), follow)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw))
	if follow {
		seen := make(map[string]struct{}, len(raw))
		for _, he := range raw {
			if _, dup := seen[he.Path]; dup {
				continue
			}
			seen[he.Path] = struct{}{}
			entries = append(entries, fromHost(he))
		}
		return entries, nil
	}
	for _, he := range raw {
		entries = append(entries, fromHost(he))
	}
	return entries, nil
}

// fromHost maps a host entry into a structured Entry. Directories become
// directory-form paths; files and unresolved symlinks keep their file-form
// rendering.
func fromHost(he core.HostEntry) Entry {
	if he.Kind == core.EntryDir {
		return Entry{Path: fspath.ParseDir(he.Path), Kind: core.EntryDir}
	}
	return Entry{Path: fspath.ParseFile(he.Path), Kind: he.Kind}
}
