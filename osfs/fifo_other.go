//go:build !unix

package osfs

import "github.com/jmgilman/go/fsutil/core"

// Mkfifo reports FIFOs as unsupported on this platform.
func (h *Host) Mkfifo(string) error {
	return core.ErrUnsupported
}
