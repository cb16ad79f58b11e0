// Package walk drives recursive directory traversal with configurable
// directory-visit ordering, filtering and pruning.
//
// Three orderings are supported. DirsNone visits files only. DirsDepthFirst
// visits a directory after its contents and always descends, regardless of
// the filter. DirsBreadthFirst evaluates the filter on the directory first
// and, when the filter rejects it, prunes the entire subtree without
// descending; that is the one place the filter controls traversal shape
// rather than just visits.
//
// Traversal is synchronous and carries no snapshot isolation: concurrent
// filesystem mutation may yield a partial view, which is inherent to live
// traversal rather than masked here.
package walk

import (
	"strings"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/core"
	"github.com/jmgilman/go/fsutil/fspath"
	"github.com/jmgilman/go/fsutil/list"
)

// Mode selects how (and whether) directories themselves are visited.
type Mode int

const (
	// DirsDepthFirst visits a directory after all of its contents.
	// This is the default mode.
	DirsDepthFirst Mode = iota
	// DirsBreadthFirst visits a directory before its contents, and prunes
	// the whole subtree when the filter rejects the directory.
	DirsBreadthFirst
	// DirsNone visits files only; directories are descended into but
	// never passed to the visitor.
	DirsNone
)

// MissingPolicy selects the treatment of an absent traversal root.
type MissingPolicy int

const (
	// MissingError fails with DIRECTORY_NOT_FOUND when the root is absent.
	// This is the default policy.
	MissingError MissingPolicy = iota
	// MissingIgnore silently performs no visits when the root is absent.
	MissingIgnore
)

// VisitFunc receives each visited entry. A non-nil return aborts the
// traversal and propagates to the Walk caller.
type VisitFunc func(list.Entry) error

// Options configures a traversal. The zero value visits directories
// depth-first, accepts every entry, fails on a missing root and does not
// follow symlinks.
type Options struct {
	// Directories selects the directory-visit ordering.
	Directories Mode

	// Test filters entries. A nil Test accepts everything. In
	// DirsBreadthFirst mode a rejected directory is pruned entirely; in
	// every other mode Test only suppresses individual visits.
	Test func(list.Entry) bool

	// IfMissing selects the treatment of an absent root.
	IfMissing MissingPolicy

	// FollowSymlinks resolves symlink entries to their targets during
	// listing.
	FollowSymlinks bool
}

// Walk traverses the tree rooted at dir, applying opts.Test and visit per
// the configured ordering. A root that is a plain file is visited directly
// (subject to the filter). Malformed option values fail with
// INVALID_OPTION before any filesystem access.
func Walk(host core.Host, dir fspath.Path, visit VisitFunc, opts Options) error {
	switch opts.Directories {
	case DirsDepthFirst, DirsBreadthFirst, DirsNone:
	default:
		return errors.Newf(core.CodeInvalidOption,
			"unrecognized directories mode %d", opts.Directories)
	}
	switch opts.IfMissing {
	case MissingError, MissingIgnore:
	default:
		return errors.Newf(core.CodeInvalidOption,
			"unrecognized if-missing policy %d", opts.IfMissing)
	}
	if dir.IsWildcard() {
		return errors.Newf(core.CodeWildcardNotAllowed,
			"cannot walk wildcard path %q", dir.String())
	}
	dir, err := fspath.Canonicalize(dir)
	if err != nil {
		return err
	}

	w := &walker{
		lister: list.New(host),
		visit:  visit,
		opts:   opts,
	}

	// Stat without the directory-form trailing slash: the root may turn
	// out to be a plain file.
	name := strings.TrimSuffix(dir.String(), "/")
	if name == "" {
		name = dir.String()
	}
	kind, err := host.Stat(name)
	if errors.Is(err, core.ErrNotExist) {
		if opts.IfMissing == MissingIgnore {
			return nil
		}
		return errors.Newf(core.CodeDirectoryNotFound,
			"traversal root %q does not exist", name)
	}
	if err != nil {
		return err
	}

	root := list.Entry{Path: dir, Kind: kind}
	if kind != core.EntryDir {
		root.Path = fspath.ParseFile(name)
	}
	return w.entry(root)
}

type walker struct {
	lister *list.Lister
	visit  VisitFunc
	opts   Options
}

func (w *walker) test(e list.Entry) bool {
	return w.opts.Test == nil || w.opts.Test(e)
}

// entry dispatches one entry per the traversal state machine.
func (w *walker) entry(e list.Entry) error {
	if e.Kind != core.EntryDir {
		if w.test(e) {
			return w.visit(e)
		}
		return nil
	}

	switch w.opts.Directories {
	case DirsNone:
		return w.descend(e)
	case DirsBreadthFirst:
		if !w.test(e) {
			return nil // prune: never descend into a rejected directory
		}
		if err := w.visit(e); err != nil {
			return err
		}
		return w.descend(e)
	default: // DirsDepthFirst: contents before self, descend unconditionally
		if err := w.descend(e); err != nil {
			return err
		}
		if w.test(e) {
			return w.visit(e)
		}
		return nil
	}
}

func (w *walker) descend(dir list.Entry) error {
	children, err := w.lister.List(dir.Path, w.opts.FollowSymlinks)
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := w.entry(c); err != nil {
			return err
		}
	}
	return nil
}
