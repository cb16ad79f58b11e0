//go:build unix

package osfs

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Mkfifo creates a named pipe at the given path.
func (h *Host) Mkfifo(name string) error {
	return unix.Mkfifo(filepath.FromSlash(name), 0o600)
}
