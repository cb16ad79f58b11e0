package fspath

import "strings"

// Kind distinguishes absolute from relative paths.
type Kind int

const (
	// Relative paths are resolved against some other directory.
	// The zero Path is relative.
	Relative Kind = iota
	// Absolute paths are anchored at the filesystem root.
	Absolute
)

// String returns a string representation of the Kind.
func (k Kind) String() string {
	if k == Absolute {
		return "absolute"
	}
	return "relative"
}

// Form distinguishes paths denoting a directory from paths denoting a file.
type Form int

const (
	// Directory form: the path names a directory and carries no
	// name/type/version suffix. The zero Path is directory form.
	Directory Form = iota
	// File form: the path names a file within its directory components.
	File
)

// String returns a string representation of the Form.
func (f Form) String() string {
	if f == File {
		return "file"
	}
	return "directory"
}

// MatchAll is the match-all token used in the name and type fields of
// wildcard paths.
const MatchAll = "*"

// Path is an immutable structured filesystem path: an absolute/relative
// kind, an ordered sequence of directory components, and for file-form
// paths a name, a type (extension) and an optional version suffix.
//
// The zero value is the empty path: relative, directory form, no
// components. Path values are created by the Parse functions, by
// Canonicalize, or by composition; they are never mutated after
// construction.
type Path struct {
	kind    Kind
	form    Form
	dirs    []string
	name    string
	typ     string
	version string
	wild    bool
}

// NewDir constructs a directory-form path from explicit components.
// Components are stored verbatim; use Canonicalize to normalize.
func NewDir(kind Kind, components ...string) Path {
	return Path{kind: kind, dirs: cloneComponents(components)}
}

// NewFile constructs a file-form path inside dir with the given name and
// type. The dir argument must be directory form.
func NewFile(dir Path, name, typ string) Path {
	p := dir
	p.dirs = cloneComponents(dir.dirs)
	p.form = File
	p.name = name
	p.typ = typ
	return p
}

// ParseDir parses host syntax into a directory-form path. Both forward and
// backward slashes separate components; a leading separator marks the path
// absolute. Empty components are dropped. ParseDir("") is the empty path.
func ParseDir(s string) Path {
	kind, comps := splitComponents(s)
	return Path{kind: kind, dirs: comps}
}

// ParseFile parses host syntax into a file-form path. The final component
// becomes the name/type pair, split at the last dot; a leading dot (hidden
// files) belongs to the name. A trailing separator yields an empty name.
func ParseFile(s string) Path {
	kind, comps := splitComponents(s)
	p := Path{kind: kind, form: File}
	if strings.HasSuffix(s, "/") || strings.HasSuffix(s, "\\") || len(comps) == 0 {
		p.dirs = comps
		return p
	}
	base := comps[len(comps)-1]
	p.dirs = comps[:len(comps)-1]
	if idx := strings.LastIndex(base, "."); idx > 0 {
		p.name, p.typ = base[:idx], base[idx+1:]
	} else {
		p.name = base
	}
	return p
}

// Kind returns whether the path is absolute or relative.
func (p Path) Kind() Kind { return p.kind }

// Form returns whether the path denotes a directory or a file.
func (p Path) Form() Form { return p.form }

// Components returns a copy of the directory component sequence.
func (p Path) Components() []string { return cloneComponents(p.dirs) }

// Name returns the file name portion of a file-form path, without type.
func (p Path) Name() string { return p.name }

// Type returns the file type (extension) of a file-form path.
func (p Path) Type() string { return p.typ }

// Version returns the version suffix of a file-form path, or "".
func (p Path) Version() string { return p.version }

// WithVersion returns a copy of the path carrying the given version suffix.
// The version is preserved by canonicalization and composition but is not
// rendered by String; hosts that version files consume it directly.
func (p Path) WithVersion(version string) Path {
	p.dirs = cloneComponents(p.dirs)
	p.version = version
	return p
}

// IsWildcard reports whether the path is a wildcard variant. Wildcard
// paths are produced only by Wildcard and accepted only by host
// enumeration.
func (p Path) IsWildcard() bool { return p.wild }

// IsEmpty reports whether the path has no components and no name.
func (p Path) IsEmpty() bool {
	return len(p.dirs) == 0 && p.name == "" && p.typ == ""
}

// Base returns the final name.type segment of a file-form path, or "" for
// directory-form paths.
func (p Path) Base() string {
	if p.form != File || p.name == "" && p.typ == "" {
		return ""
	}
	if p.typ == "" {
		return p.name
	}
	return p.name + "." + p.typ
}

// Dir returns the directory-form path holding p's components, dropping any
// name/type/version fields.
func (p Path) Dir() Path {
	return Path{kind: p.kind, dirs: cloneComponents(p.dirs)}
}

// Equal reports canonical equality: two paths are equal iff their
// canonicalized component sequences, kind, form and file fields all match.
// Wildcard paths compare by their raw structure.
func (p Path) Equal(q Path) bool {
	if p.wild || q.wild {
		return p.wild == q.wild && rawEqual(p, q)
	}
	pc, err := Canonicalize(p)
	if err != nil {
		return false
	}
	qc, err := Canonicalize(q)
	if err != nil {
		return false
	}
	return rawEqual(pc, qc)
}

// String renders the path in host syntax with forward slashes. Directory
// form renders with a trailing slash (except the empty relative path, which
// renders as ""). Wildcard paths render with a trailing match-all segment.
func (p Path) String() string {
	var b strings.Builder
	if p.kind == Absolute {
		b.WriteByte('/')
	}
	for i, c := range p.dirs {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(c)
	}
	if p.form == Directory {
		if len(p.dirs) > 0 {
			b.WriteByte('/')
		}
		return b.String()
	}
	if len(p.dirs) > 0 {
		b.WriteByte('/')
	}
	if p.wild && p.name == MatchAll && p.typ == MatchAll {
		b.WriteString(MatchAll)
		return b.String()
	}
	b.WriteString(p.Base())
	return b.String()
}

func rawEqual(p, q Path) bool {
	if p.kind != q.kind || p.form != q.form {
		return false
	}
	if p.name != q.name || p.typ != q.typ || p.version != q.version {
		return false
	}
	if len(p.dirs) != len(q.dirs) {
		return false
	}
	for i := range p.dirs {
		if p.dirs[i] != q.dirs[i] {
			return false
		}
	}
	return true
}

func cloneComponents(comps []string) []string {
	if len(comps) == 0 {
		return nil
	}
	out := make([]string, len(comps))
	copy(out, comps)
	return out
}

// splitComponents tears host syntax into a kind marker and non-empty
// components. Backslashes are treated as separators so Windows-style input
// parses on any host.
func splitComponents(s string) (Kind, []string) {
	s = strings.ReplaceAll(s, "\\", "/")
	kind := Relative
	if strings.HasPrefix(s, "/") {
		kind = Absolute
	}
	var comps []string
	for _, c := range strings.Split(s, "/") {
		if c != "" {
			comps = append(comps, c)
		}
	}
	return kind, comps
}
