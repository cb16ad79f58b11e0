package core

// EntryKind discriminates the kind of a directory entry.
type EntryKind int

const (
	// EntryFile is a regular file (or, when symlinks are being followed,
	// a symlink whose resolved target is a regular file).
	EntryFile EntryKind = iota
	// EntryDir is a directory.
	EntryDir
	// EntrySymlink is a symbolic link that has not been resolved.
	// Hosts only report this kind when enumeration is asked not to follow
	// symlinks.
	EntrySymlink
)

// String returns a string representation of the EntryKind.
func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryDir:
		return "directory"
	case EntrySymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// WritePolicy controls how a write treats an existing destination.
// The policy is forwarded verbatim to the host's raw write primitive.
type WritePolicy int

const (
	// Overwrite truncates an existing destination before writing.
	Overwrite WritePolicy = iota
	// Append appends to an existing destination.
	Append
	// NoClobber rejects the write with ErrExist when the destination
	// already exists.
	NoClobber
)

// String returns a string representation of the WritePolicy.
func (p WritePolicy) String() string {
	switch p {
	case Overwrite:
		return "overwrite"
	case Append:
		return "append"
	case NoClobber:
		return "no-clobber"
	default:
		return "unknown"
	}
}

// HostEntry is one directory entry as reported by a host's Enumerate.
// Path is host syntax (forward slashes); when enumeration follows symlinks
// the path is the resolved target, which may lie outside the enumerated
// directory.
type HostEntry struct {
	Path string
	Kind EntryKind
}

// ByteIO defines raw byte file I/O.
//
// ReadFile and WriteFile operate on whole contents; there is no streaming
// surface at this layer.
type ByteIO interface {
	// ReadFile reads the named file and returns its contents.
	// A successful call returns err == nil, not err == EOF.
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to the named file, creating it if necessary.
	// The policy determines the treatment of an existing destination:
	// Overwrite truncates, Append appends, NoClobber fails with ErrExist.
	WriteFile(name string, data []byte, policy WritePolicy) error
}

// Permissions defines the OS write-permission oracle.
//
// Only the write flag is modeled; the full permission-bit representation
// remains a host responsibility.
type Permissions interface {
	// Writable reports whether the named file carries a write permission
	// flag for the current user. Returns ErrNotExist if the file is absent.
	Writable(name string) (bool, error)

	// SetWritable sets or clears the write permission flag on the named
	// file. Hosts without permission support return ErrUnsupported.
	SetWritable(name string, writable bool) error
}

// Enumerator defines directory enumeration against a wildcard pattern.
type Enumerator interface {
	// Enumerate returns the immediate entries matching pattern, a
	// directory wildcard of the form dir/*. When follow is true, symlink
	// entries are resolved to their real targets and reported with the
	// target's path and kind; when false, symlinks are reported verbatim
	// with kind EntrySymlink.
	//
	// Entry order is host-dependent but stable for a single call against
	// an unchanged directory.
	Enumerate(pattern string, follow bool) ([]HostEntry, error)

	// Stat reports the kind of the named path, following symlinks.
	// Returns ErrNotExist if the path is absent.
	Stat(name string) (EntryKind, error)
}

// Manager defines structural operations used for parent creation and
// temporary-resource cleanup.
type Manager interface {
	// MkdirAll creates the named directory along with any missing parents.
	// It is a no-op if the directory already exists.
	MkdirAll(name string) error

	// Remove removes the named file or empty directory.
	Remove(name string) error

	// RemoveAll removes the named path and any children it contains.
	// It returns nil if the path does not exist.
	RemoveAll(name string) error
}

// TempHost defines the per-OS temporary-resource primitives.
type TempHost interface {
	// UniqueName returns a path inside dir that does not currently exist,
	// derived from pattern. If pattern contains a "*", the unique portion
	// replaces it; otherwise the unique portion is appended.
	//
	// Nothing is created; the caller creates the resource at the returned
	// path. Uniqueness is best-effort against concurrent creators.
	UniqueName(dir, pattern string) (string, error)

	// Mkfifo creates a named pipe at the given path.
	// Hosts without FIFO support return ErrUnsupported.
	Mkfifo(name string) error
}

// Host is the full collaborator contract consumed by the utility layer.
type Host interface {
	ByteIO
	Permissions
	Enumerator
	Manager
	TempHost
}
