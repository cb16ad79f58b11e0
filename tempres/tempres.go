// Package tempres manages the lifecycle of temporary files, directories
// and FIFOs with guaranteed cleanup.
//
// A Manager threads its base directory explicitly through every call: the
// process-wide default is captured once at startup and can be overridden
// per Manager or per call, so there is no hidden mutable global. The
// scoped With* helpers follow a strict acquire/use/release discipline: the
// resource exists before the body runs and is released on every exit path,
// including a body error, which is propagated after cleanup.
//
// Unique names come from the host's per-OS UniqueName primitive; naming
// itself is not this package's concern.
package tempres

import (
	"errors"
	"os"

	"github.com/jmgilman/go/fsutil/core"
	"github.com/jmgilman/go/fsutil/fspath"
)

// defaultBaseDir is the process-wide initial base directory, captured once
// at startup.
var defaultBaseDir = os.TempDir()

// Manager creates temporary resources inside a base directory.
type Manager struct {
	host core.Host
	dir  string
}

// Option configures a Manager.
type Option func(*Manager)

// WithBaseDir overrides the base directory for all resources created by
// the Manager.
func WithBaseDir(dir string) Option {
	return func(m *Manager) { m.dir = dir }
}

// NewManager returns a Manager creating resources under the process
// default temporary directory unless overridden.
func NewManager(host core.Host, opts ...Option) *Manager {
	m := &Manager{host: host, dir: defaultBaseDir}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BaseDir returns the directory new resources are created in.
func (m *Manager) BaseDir() string { return m.dir }

// Resource is an acquired temporary file, directory or FIFO. Release
// removes it; Release is idempotent and safe on every exit path.
type Resource struct {
	host     core.Host
	path     fspath.Path
	tree     bool
	released bool
}

// Path returns the structured path of the resource.
func (r *Resource) Path() fspath.Path { return r.path }

// Release deletes the resource. Directories are removed with their
// contents. Calling Release more than once is a no-op after the first.
func (r *Resource) Release() error {
	if r.released {
		return nil
	}
	r.released = true
	if r.tree {
		return r.host.RemoveAll(r.path.String())
	}
	err := r.host.Remove(r.path.String())
	if errors.Is(err, core.ErrNotExist) {
		return nil
	}
	return err
}

// CreateFile creates an empty uniquely named file derived from pattern and
// returns its guard. The caller owns Release.
func (m *Manager) CreateFile(pattern string) (*Resource, error) {
	return m.CreateFileIn(m.dir, pattern)
}

// CreateFileIn is CreateFile with an explicit base directory for this one
// resource.
func (m *Manager) CreateFileIn(dir, pattern string) (*Resource, error) {
	name, err := m.host.UniqueName(dir, pattern)
	if err != nil {
		return nil, err
	}
	if err := m.host.WriteFile(name, nil, core.NoClobber); err != nil {
		return nil, err
	}
	return &Resource{host: m.host, path: fspath.ParseFile(name)}, nil
}

// CreateDir creates a uniquely named directory derived from pattern and
// returns its guard. Release removes the directory with everything in it.
func (m *Manager) CreateDir(pattern string) (*Resource, error) {
	return m.CreateDirIn(m.dir, pattern)
}

// CreateDirIn is CreateDir with an explicit base directory.
func (m *Manager) CreateDirIn(dir, pattern string) (*Resource, error) {
	name, err := m.host.UniqueName(dir, pattern)
	if err != nil {
		return nil, err
	}
	if err := m.host.MkdirAll(name); err != nil {
		return nil, err
	}
	return &Resource{host: m.host, path: fspath.ParseDir(name), tree: true}, nil
}

// CreateFIFO creates a uniquely named named pipe derived from pattern and
// returns its guard. Hosts without FIFO support fail with ErrUnsupported.
func (m *Manager) CreateFIFO(pattern string) (*Resource, error) {
	return m.CreateFIFOIn(m.dir, pattern)
}

// CreateFIFOIn is CreateFIFO with an explicit base directory.
func (m *Manager) CreateFIFOIn(dir, pattern string) (*Resource, error) {
	name, err := m.host.UniqueName(dir, pattern)
	if err != nil {
		return nil, err
	}
	if err := m.host.Mkfifo(name); err != nil {
		return nil, err
	}
	return &Resource{host: m.host, path: fspath.ParseFile(name)}, nil
}

// WithFile runs fn against a fresh temporary file and releases the file on
// every exit path. A release failure is reported only when fn itself
// succeeded.
func (m *Manager) WithFile(pattern string, fn func(fspath.Path) error) error {
	r, err := m.CreateFile(pattern)
	if err != nil {
		return err
	}
	return runScoped(r, fn)
}

// WithDir runs fn against a fresh temporary directory, releasing the
// directory and its contents on every exit path.
func (m *Manager) WithDir(pattern string, fn func(fspath.Path) error) error {
	r, err := m.CreateDir(pattern)
	if err != nil {
		return err
	}
	return runScoped(r, fn)
}

// WithFIFO runs fn against a fresh named pipe, releasing it on every exit
// path.
func (m *Manager) WithFIFO(pattern string, fn func(fspath.Path) error) error {
	r, err := m.CreateFIFO(pattern)
	if err != nil {
		return err
	}
	return runScoped(r, fn)
}

func runScoped(r *Resource, fn func(fspath.Path) error) (err error) {
	defer func() {
		rerr := r.Release()
		if err == nil {
			err = rerr
		}
	}()
	return fn(r.Path())
}
