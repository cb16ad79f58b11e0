package walk

import (
	"strings"

	"github.com/jmgilman/go/fsutil/core"
	"github.com/jmgilman/go/fsutil/fspath"
	"github.com/jmgilman/go/fsutil/list"
)

// CopyTree copies every file under fromDir on src into toDir on dst,
// preserving the relative directory structure. Existing destination files
// are handled per policy. Source and destination may be different hosts,
// which makes this the bridge between backends (e.g. seeding an in-memory
// host from disk).
//
// The traversal is files-only and does not follow symlinks.
func CopyTree(src, dst core.Host, fromDir, toDir fspath.Path, policy core.WritePolicy) error {
	from, err := fspath.Canonicalize(fromDir)
	if err != nil {
		return err
	}
	to, err := fspath.Canonicalize(toDir)
	if err != nil {
		return err
	}
	prefix := from.String()

	return Walk(src, from, func(e list.Entry) error {
		rel := strings.TrimPrefix(e.Path.String(), prefix)
		target, err := fspath.MergeFile(to, fspath.ParseFile(rel))
		if err != nil {
			return err
		}
		return core.CopyFile(src, dst, e.Path.String(), target.String(), policy)
	}, Options{Directories: DirsNone})
}
