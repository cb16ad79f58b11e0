// Package textio reads and writes file contents as text while tolerating
// unknown or inconsistent encodings and unwritable destinations.
//
// Reads and writes run a two-stage fallback: the declared encoding first,
// then one automatic retry as UTF-8. When both stages fail the error
// carries code ENCODING_FAILED and the attempted encodings in its context;
// the caller may make exactly one more attempt with an explicit override
// through ReadTextAs or WriteTextAs. Writes additionally precheck the
// destination's write flag and surface a recoverable NOT_WRITABLE failure
// that the caller can clear with ForceWritable before retrying. Those two
// structured retries are the only recovery paths: nothing ever degrades to
// a silently wrong result.
package textio

import (
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/core"
	"github.com/jmgilman/go/fsutil/fspath"
)

// Attempt records one encoding attempt during a read or write. Attempts
// only live inside the context of a failed call's error.
type Attempt struct {
	Encoding string
	Err      error
}

// ReadText reads the file at path and decodes it as declared, retrying
// once as UTF-8 when the declared encoding fails (and was not already
// UTF-8). When both stages fail the returned error is recoverable with
// code ENCODING_FAILED; ReadTextAs is the override-and-retry entry point.
func ReadText(host core.ByteIO, path fspath.Path, declared string) (string, error) {
	data, err := host.ReadFile(path.String())
	if err != nil {
		return "", err
	}

	s, derr := decode(data, declared)
	if derr == nil {
		return s, nil
	}
	if errors.GetCode(derr) == core.CodeInvalidOption {
		return "", derr
	}
	attempts := []Attempt{{Encoding: declared, Err: derr}}

	if !isUTF8Name(declared) {
		s, ferr := decode(data, UTF8)
		if ferr == nil {
			return s, nil
		}
		attempts = append(attempts, Attempt{Encoding: UTF8, Err: ferr})
	}

	return "", encodingFailure("reading", path, attempts)
}

// ReadTextAs reads the file at path under exactly the override encoding,
// with no fallback. This is the single permitted retry after a
// recoverable ENCODING_FAILED from ReadText; a failure here is terminal
// for the operation.
func ReadTextAs(host core.ByteIO, path fspath.Path, override string) (string, error) {
	data, err := host.ReadFile(path.String())
	if err != nil {
		return "", err
	}
	s, derr := decode(data, override)
	if derr != nil {
		return "", errors.WithContext(derr, "path", path.String())
	}
	return s, nil
}

// WriteText encodes s as declared and writes it to path, creating missing
// parent directories. An existing destination without a write flag fails
// with recoverable NOT_WRITABLE before anything is encoded; ForceWritable
// is the recovery entry point. Encoding runs the same declared-then-UTF-8
// fallback as ReadText, with WriteTextAs as the override entry point. The
// policy is forwarded verbatim to the host write primitive.
func WriteText(host core.Host, path fspath.Path, s, declared string, policy core.WritePolicy) error {
	if err := checkWritable(host, path); err != nil {
		return err
	}

	data, eerr := encode(s, declared)
	if eerr != nil {
		if errors.GetCode(eerr) == core.CodeInvalidOption {
			return eerr
		}
		attempts := []Attempt{{Encoding: declared, Err: eerr}}
		if isUTF8Name(declared) {
			return encodingFailure("writing", path, attempts)
		}
		var ferr error
		data, ferr = encode(s, UTF8)
		if ferr != nil {
			attempts = append(attempts, Attempt{Encoding: UTF8, Err: ferr})
			return encodingFailure("writing", path, attempts)
		}
	}

	return deliver(host, path, data, policy)
}

// WriteTextAs writes s to path under exactly the override encoding, with
// no fallback. The writable precheck still applies. A failure here is
// terminal for the operation.
func WriteTextAs(host core.Host, path fspath.Path, s, override string, policy core.WritePolicy) error {
	if err := checkWritable(host, path); err != nil {
		return err
	}
	data, eerr := encode(s, override)
	if eerr != nil {
		return errors.WithContext(eerr, "path", path.String())
	}
	return deliver(host, path, data, policy)
}

// ForceWritable sets the write flag on path so a WriteText call that
// failed with NOT_WRITABLE can be retried.
func ForceWritable(host core.Permissions, path fspath.Path) error {
	return host.SetWritable(path.String(), true)
}

// checkWritable surfaces a recoverable NOT_WRITABLE when the destination
// exists without a write flag. An absent destination passes.
func checkWritable(host core.Host, path fspath.Path) error {
	writable, err := host.Writable(path.String())
	if errors.Is(err, core.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !writable {
		return errors.WithContext(
			errors.Newf(core.CodeNotWritable,
				"destination %q exists without write permission", path.String()),
			"path", path.String())
	}
	return nil
}

// deliver ensures parents exist and hands the encoded bytes to the host.
func deliver(host core.Host, path fspath.Path, data []byte, policy core.WritePolicy) error {
	if parent := path.Dir(); !parent.IsEmpty() {
		if err := host.MkdirAll(parent.String()); err != nil {
			return err
		}
	}
	return host.WriteFile(path.String(), data, policy)
}

// encodingFailure builds the recoverable ENCODING_FAILED error carrying
// the attempted encodings.
func encodingFailure(op string, path fspath.Path, attempts []Attempt) error {
	names := make([]string, len(attempts))
	for i, a := range attempts {
		names[i] = a.Encoding
	}
	err := errors.Newf(core.CodeEncodingFailed,
		"%s %q failed under %v; supply an override encoding to retry",
		op, path.String(), names)
	return errors.WithContextMap(err, map[string]interface{}{
		"path":      path.String(),
		"attempted": names,
	})
}
