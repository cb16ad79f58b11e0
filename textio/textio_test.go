package textio_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/billyfs"
	"github.com/jmgilman/go/fsutil/core"
	"github.com/jmgilman/go/fsutil/fspath"
	"github.com/jmgilman/go/fsutil/osfs"
	"github.com/jmgilman/go/fsutil/textio"
)

func TestRoundTripUTF8(t *testing.T) {
	host := billyfs.NewMemory()
	path := fspath.ParseFile("/docs/note.txt")
	content := "héllo wörld — ≤≥ 日本語\n"

	require.NoError(t, textio.WriteText(host, path, content, textio.UTF8, core.Overwrite))

	got, err := textio.ReadText(host, path, textio.UTF8)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestWriteCreatesParents(t *testing.T) {
	host := billyfs.NewMemory()
	path := fspath.ParseFile("/a/b/c/deep.txt")

	require.NoError(t, textio.WriteText(host, path, "x", textio.UTF8, core.Overwrite))

	kind, err := host.Stat("/a/b/c")
	require.NoError(t, err)
	assert.Equal(t, core.EntryDir, kind)
}

func TestWritePolicyForwarded(t *testing.T) {
	host := billyfs.NewMemory()
	path := fspath.ParseFile("/f.txt")

	require.NoError(t, textio.WriteText(host, path, "one", textio.UTF8, core.Overwrite))

	err := textio.WriteText(host, path, "two", textio.UTF8, core.NoClobber)
	assert.ErrorIs(t, err, core.ErrExist)

	require.NoError(t, textio.WriteText(host, path, "+two", textio.UTF8, core.Append))
	got, err := textio.ReadText(host, path, textio.UTF8)
	require.NoError(t, err)
	assert.Equal(t, "one+two", got)
}

// A declared fixed-width encoding that fails on the raw bytes must fall
// back to UTF-8 automatically when the content is valid UTF-8.
func TestReadFallsBackToUTF8(t *testing.T) {
	host := billyfs.NewMemory()
	path := fspath.ParseFile("/odd.txt")
	// Five bytes: an odd byte count cannot decode as UTF-16.
	require.NoError(t, host.WriteFile(path.String(), []byte("hello"), core.Overwrite))

	got, err := textio.ReadText(host, path, "utf-16le")
	require.NoError(t, err, "automatic UTF-8 fallback should succeed without caller intervention")
	assert.Equal(t, "hello", got)
}

func TestReadSurfacesRecoverableEncodingError(t *testing.T) {
	host := billyfs.NewMemory()
	path := fspath.ParseFile("/latin.txt")
	// 0xE9 is "é" in Latin-1 and invalid as UTF-8.
	require.NoError(t, host.WriteFile(path.String(), []byte{'c', 'a', 'f', 0xE9}, core.Overwrite))

	_, err := textio.ReadText(host, path, textio.UTF8)
	require.Error(t, err)
	assert.Equal(t, core.CodeEncodingFailed, errors.GetCode(err))
	assert.True(t, core.Recoverable(err), "encoding failure must offer the override retry")

	var perr errors.PlatformError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Context(), "attempted")

	// The caller-directed retry with the right encoding succeeds.
	got, err := textio.ReadTextAs(host, path, "iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}

func TestReadOverrideFailureIsTerminal(t *testing.T) {
	host := billyfs.NewMemory()
	path := fspath.ParseFile("/junk.bin")
	require.NoError(t, host.WriteFile(path.String(), []byte{0xFF, 0xFE, 0xFD}, core.Overwrite))

	_, err := textio.ReadTextAs(host, path, "utf-8")
	require.Error(t, err)
	assert.Equal(t, core.CodeEncodingFailed, errors.GetCode(err))
}

func TestReadNeverReturnsMojibake(t *testing.T) {
	host := billyfs.NewMemory()
	path := fspath.ParseFile("/bad.sjis")
	// 0x39 is not a valid Shift-JIS trail byte after the 0x81 lead, and the
	// final 0x81 is a truncated lead; a lenient decoder would substitute
	// replacement runes for both.
	require.NoError(t, host.WriteFile(path.String(), []byte{0x81, 0x39, 0x81}, core.Overwrite))

	_, err := textio.ReadText(host, path, "shift_jis")
	require.Error(t, err)
	assert.Equal(t, core.CodeEncodingFailed, errors.GetCode(err))
}

func TestWriteFallsBackToUTF8(t *testing.T) {
	host := billyfs.NewMemory()
	path := fspath.ParseFile("/arrow.txt")
	// U+2192 has no representation in a windows-1252 repertoire, so the
	// declared encoding fails and the UTF-8 fallback takes over.
	require.NoError(t, textio.WriteText(host, path, "a → b", "windows-1252", core.Overwrite))

	got, err := textio.ReadText(host, path, textio.UTF8)
	require.NoError(t, err)
	assert.Equal(t, "a → b", got)
}

func TestWriteNonUTF8Encoding(t *testing.T) {
	host := billyfs.NewMemory()
	path := fspath.ParseFile("/latin.txt")

	require.NoError(t, textio.WriteTextAs(host, path, "café", "iso-8859-1", core.Overwrite))

	raw, err := host.ReadFile(path.String())
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9}, raw)

	got, err := textio.ReadText(host, path, "iso-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}

func TestUnknownEncodingNameIsInvalidOption(t *testing.T) {
	host := billyfs.NewMemory()
	path := fspath.ParseFile("/f.txt")
	require.NoError(t, host.WriteFile(path.String(), []byte("x"), core.Overwrite))

	_, err := textio.ReadText(host, path, "no-such-encoding")
	require.Error(t, err)
	assert.Equal(t, core.CodeInvalidOption, errors.GetCode(err))
	assert.False(t, core.Recoverable(err))
}

func TestWritePermissionRecovery(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission flags not meaningful on windows")
	}
	host := osfs.New()
	base := t.TempDir()
	path := fspath.ParseFile(base + "/locked.txt")

	require.NoError(t, textio.WriteText(host, path, "v1", textio.UTF8, core.Overwrite))
	require.NoError(t, host.SetWritable(path.String(), false))
	t.Cleanup(func() { _ = host.SetWritable(path.String(), true) })

	err := textio.WriteText(host, path, "v2", textio.UTF8, core.Overwrite)
	require.Error(t, err)
	assert.Equal(t, core.CodeNotWritable, errors.GetCode(err))
	assert.True(t, core.Recoverable(err), "permission failure must offer the force-writable retry")

	// Recovery: force the write flag and retry.
	require.NoError(t, textio.ForceWritable(host, path))
	require.NoError(t, textio.WriteText(host, path, "v2", textio.UTF8, core.Overwrite))

	got, err := textio.ReadText(host, path, textio.UTF8)
	require.NoError(t, err)
	assert.Equal(t, "v2", got)
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"UTF8BOM", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "utf-8"},
		{"UTF16LEBOM", []byte{0xFF, 0xFE, 'h', 0x00}, "utf-16le"},
		{"UTF16BEBOM", []byte{0xFE, 0xFF, 0x00, 'h'}, "utf-16be"},
		{"PlainASCII", []byte("hello"), "utf-8"},
		{"ValidUTF8", []byte("héllo"), "utf-8"},
		{"Binary", []byte{0x80, 0xFF, 0x00}, "iso-8859-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textio.Detect(tt.data))
		})
	}
}
