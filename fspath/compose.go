package fspath

import (
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/core"
)

// MergeDirectory folds several paths into a single directory-form path
// with left-to-right override semantics. The first element seeds the
// accumulated components and kind; each later element either replaces the
// accumulation outright (absolute kind) or appends its components
// (relative kind). Name/type/version fields of the inputs are discarded.
// The result is canonicalized.
//
// Merging no paths yields the empty path. Wildcard inputs are rejected
// with INVALID_COMPOSITION.
func MergeDirectory(paths ...Path) (Path, error) {
	if err := rejectWildcards(paths); err != nil {
		return Path{}, err
	}
	if len(paths) == 0 {
		return Path{}, nil
	}
	kind := paths[0].kind
	acc := cloneComponents(paths[0].dirs)
	for _, p := range paths[1:] {
		if p.kind == Absolute {
			kind = Absolute
			acc = cloneComponents(p.dirs)
			continue
		}
		acc = append(acc, p.dirs...)
	}
	return Canonicalize(Path{kind: kind, dirs: acc})
}

// MergeFile folds the paths as MergeDirectory does, then attaches the last
// element's name, type and version to the folded directory, producing a
// file-form path. The last element contributes its directory components to
// the fold like every other element; they are not discarded with its file
// fields. MergeFile(a, sub/c.txt) is a/sub/c.txt, never a/c.txt.
//
// Merging no paths yields the empty file-form path; a file result cannot
// be conjured from nothing, so the empty case mirrors MergeDirectory
// rather than failing. Wildcard inputs are rejected with
// INVALID_COMPOSITION.
func MergeFile(paths ...Path) (Path, error) {
	if err := rejectWildcards(paths); err != nil {
		return Path{}, err
	}
	if len(paths) == 0 {
		return Path{form: File}, nil
	}
	last := paths[len(paths)-1]
	folded := make([]Path, 0, len(paths))
	folded = append(folded, paths[:len(paths)-1]...)
	folded = append(folded, last.Dir())
	dir, err := MergeDirectory(folded...)
	if err != nil {
		return Path{}, err
	}
	dir.form = File
	dir.name = last.name
	dir.typ = last.typ
	dir.version = last.version
	return dir, nil
}

// Wildcard derives the match-all wildcard variant of dir, used to drive
// host enumeration of dir's immediate entries. The result is opaque: it is
// accepted only by a host Enumerator and rejected by canonicalization,
// merging and listing.
//
// Fails with WILDCARD_NOT_ALLOWED if dir is itself already a wildcard.
func Wildcard(dir Path) (Path, error) {
	if dir.wild {
		return Path{}, errors.Newf(core.CodeWildcardNotAllowed,
			"path %q is already a wildcard, want a concrete directory", dir.String())
	}
	w := dir
	w.dirs = cloneComponents(dir.dirs)
	w.form = File
	w.name = MatchAll
	w.typ = MatchAll
	w.version = ""
	w.wild = true
	return w, nil
}

func rejectWildcards(paths []Path) error {
	for _, p := range paths {
		if p.wild {
			return errors.Newf(core.CodeInvalidComposition,
				"cannot merge wildcard path %q", p.String())
		}
	}
	return nil
}
