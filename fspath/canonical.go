package fspath

import (
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/core"
)

const (
	self   = "."
	parent = ".."
)

// Canonicalize reduces the path's component sequence to normal form.
//
// Components are scanned left to right against an output stack:
//
//   - "." is dropped.
//   - ".." cancels against a preceding real component.
//   - ".." with nothing to cancel against (at the root of an absolute
//     path, or leading in a relative path) is kept verbatim.
//   - everything else is kept verbatim.
//
// Kind, form and the name/type/version fields are preserved unchanged.
// Canonicalize is idempotent. Wildcard paths are rejected with
// WILDCARD_NOT_ALLOWED.
func Canonicalize(p Path) (Path, error) {
	if p.wild {
		return Path{}, errors.Newf(core.CodeWildcardNotAllowed,
			"cannot canonicalize wildcard path %q", p.String())
	}
	out := make([]string, 0, len(p.dirs))
	for _, c := range p.dirs {
		switch c {
		case self, "":
			// dropped
		case parent:
			if n := len(out); n > 0 && out[n-1] != parent {
				out = out[:n-1]
			} else {
				out = append(out, parent)
			}
		default:
			out = append(out, c)
		}
	}
	q := p
	q.dirs = out
	return q, nil
}
