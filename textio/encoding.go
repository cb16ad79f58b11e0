package textio

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/core"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// UTF8 is the canonical name of the fallback encoding used by the
// automatic retry stage.
const UTF8 = "utf-8"

// Lookup resolves an encoding name to its x/text implementation. Names are
// matched case-insensitively against the WHATWG encoding index, so the
// usual aliases ("latin1", "shift_jis", "utf-16le", ...) all resolve. The
// empty name resolves to UTF-8.
//
// An unrecognized name fails with INVALID_OPTION: it is a caller mistake,
// not a property of the file being read.
func Lookup(name string) (encoding.Encoding, error) {
	if isUTF8Name(name) {
		return unicode.UTF8, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, core.CodeInvalidOption,
			"unrecognized encoding name %q", name)
	}
	return enc, nil
}

// Detect recommends an encoding name for raw file content: a recognized
// byte-order mark wins, then UTF-8 validity, then Latin-1 (which decodes
// any byte sequence) as the recommendation of last resort.
func Detect(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return "utf-16le"
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return "utf-16be"
	case utf8.Valid(data):
		return UTF8
	default:
		return "iso-8859-1"
	}
}

func isUTF8Name(name string) bool {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// decode interprets data under the named encoding. Decoding is strict: a
// replacement rune materializing in the output means the input did not
// decode under this encoding, and the call fails rather than returning
// mojibake. The returned string covers exactly the consumed input bytes.
func decode(data []byte, name string) (string, error) {
	enc, err := Lookup(name)
	if err != nil {
		return "", err
	}
	if isUTF8Name(name) {
		// Fast path; also the strictness check, since the UTF-8 decoder
		// would otherwise substitute replacement runes silently.
		if !utf8.Valid(data) {
			return "", errors.Newf(core.CodeEncodingFailed,
				"content is not valid %s", UTF8)
		}
		return string(data), nil
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", errors.Wrapf(err, core.CodeEncodingFailed,
			"decoding as %s failed", name)
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		return "", errors.Newf(core.CodeEncodingFailed,
			"content does not decode under %s", name)
	}
	return string(out), nil
}

// encode renders s under the named encoding. Unrepresentable runes fail
// the call; nothing is substituted silently.
func encode(s string, name string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, errors.Newf(core.CodeEncodingFailed,
			"input string is not valid %s", UTF8)
	}
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if isUTF8Name(name) {
		return []byte(s), nil
	}
	out, _, err := transform.Bytes(enc.NewEncoder(), []byte(s))
	if err != nil {
		return nil, errors.Wrapf(err, core.CodeEncodingFailed,
			"encoding as %s failed", name)
	}
	return out, nil
}
