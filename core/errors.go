package core

import (
	stderrors "errors"
	"io/fs"

	"github.com/jmgilman/go/errors"
)

var (
	// ErrNotExist is returned when a file or directory does not exist.
	// Re-exported from io/fs for convenience.
	ErrNotExist = fs.ErrNotExist

	// ErrExist is returned when a file or directory already exists.
	// Re-exported from io/fs for convenience.
	ErrExist = fs.ErrExist

	// ErrPermission is returned when permission is denied.
	// Re-exported from io/fs for convenience.
	ErrPermission = fs.ErrPermission

	// ErrUnsupported is returned when an operation is not supported by the
	// host. For example, FIFO creation on an in-memory host or permission
	// flags on a backend without a permission model.
	ErrUnsupported = stderrors.New("operation not supported")
)

// Error codes for the utility layer, carried on structured errors from
// github.com/jmgilman/go/errors. Codes double as a stable taxonomy for
// callers that dispatch on failure kind rather than message text.
const (
	// CodeInvalidComposition indicates a path merge was handed input it
	// cannot compose. Indicates a logic error upstream; never recoverable.
	CodeInvalidComposition errors.ErrorCode = "INVALID_COMPOSITION"

	// CodeWildcardNotAllowed indicates a wildcard path was passed where a
	// concrete path was required. Never recoverable.
	CodeWildcardNotAllowed errors.ErrorCode = "WILDCARD_NOT_ALLOWED"

	// CodeEncodingFailed indicates text decode/encode failed under the
	// declared encoding and the automatic UTF-8 fallback. Recoverable:
	// the caller may retry exactly once with an explicit override.
	CodeEncodingFailed errors.ErrorCode = "ENCODING_FAILED"

	// CodeNotWritable indicates the write destination exists without a
	// write permission flag. Recoverable: the caller may force the flag
	// and retry.
	CodeNotWritable errors.ErrorCode = "NOT_WRITABLE"

	// CodeDirectoryNotFound indicates a traversal root is absent under the
	// error missing-policy.
	CodeDirectoryNotFound errors.ErrorCode = "DIRECTORY_NOT_FOUND"

	// CodeInvalidOption indicates a malformed option value. Indicates a
	// programmer error; never recoverable.
	CodeInvalidOption errors.ErrorCode = "INVALID_OPTION"
)

// Recoverable reports whether err offers a structured retry path: encoding
// failures (retry with an explicit override encoding) and unwritable
// destinations (force the write flag and retry). All other failures are
// terminal for the call that produced them.
func Recoverable(err error) bool {
	switch errors.GetCode(err) {
	case CodeEncodingFailed, CodeNotWritable:
		return true
	default:
		return false
	}
}
