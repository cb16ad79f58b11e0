package list_test

import (
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fsutil/core"
	"github.com/jmgilman/go/fsutil/fspath"
	"github.com/jmgilman/go/fsutil/list"
)

// stubEnumerator records the pattern it was asked for and replays canned
// entries.
type stubEnumerator struct {
	entries     []core.HostEntry
	err         error
	gotPattern  string
	gotFollow   bool
	enumerateds int
}

func (s *stubEnumerator) Enumerate(pattern string, follow bool) ([]core.HostEntry, error) {
	s.gotPattern = pattern
	s.gotFollow = follow
	s.enumerateds++
	return s.entries, s.err
}

func (s *stubEnumerator) Stat(string) (core.EntryKind, error) {
	return core.EntryDir, nil
}

func TestListDerivesWildcardPattern(t *testing.T) {
	stub := &stubEnumerator{}
	l := list.New(stub)

	if _, err := l.List(fspath.ParseDir("/a/b"), false); err != nil {
		t.Fatalf("List(/a/b): got error %v, want nil", err)
	}
	if got, want := stub.gotPattern, "/a/b/*"; got != want {
		t.Errorf("List(/a/b): enumerated pattern %q, want %q", got, want)
	}
	if stub.gotFollow {
		t.Error("List(/a/b, follow=false): host asked to follow symlinks")
	}
}

func TestListMapsEntries(t *testing.T) {
	stub := &stubEnumerator{entries: []core.HostEntry{
		{Path: "/a/f.txt", Kind: core.EntryFile},
		{Path: "/a/sub", Kind: core.EntryDir},
		{Path: "/a/link", Kind: core.EntrySymlink},
	}}
	l := list.New(stub)

	got, err := l.List(fspath.ParseDir("/a"), false)
	if err != nil {
		t.Fatalf("List(/a): got error %v, want nil", err)
	}
	if len(got) != 3 {
		t.Fatalf("List(/a): %d entries, want 3", len(got))
	}

	if !got[0].Path.Equal(fspath.ParseFile("/a/f.txt")) || got[0].Kind != core.EntryFile {
		t.Errorf("entry[0] = %q (%v), want /a/f.txt (file)", got[0].Path, got[0].Kind)
	}
	if got[1].Path.Form() != fspath.Directory {
		t.Errorf("entry[1]: form = %v, want directory-form path", got[1].Path.Form())
	}
	if !got[1].IsDir() {
		t.Errorf("entry[1]: IsDir() = false, want true")
	}
	if got[2].Kind != core.EntrySymlink {
		t.Errorf("entry[2]: kind = %v, want symlink (unresolved)", got[2].Kind)
	}
}

func TestListFollowDeduplicatesResolvedTargets(t *testing.T) {
	// Two symlinks resolving to the same target plus the target itself
	// must collapse to one entry.
	stub := &stubEnumerator{entries: []core.HostEntry{
		{Path: "/elsewhere/target.txt", Kind: core.EntryFile},
		{Path: "/a/plain.txt", Kind: core.EntryFile},
		{Path: "/elsewhere/target.txt", Kind: core.EntryFile},
	}}
	l := list.New(stub)

	got, err := l.List(fspath.ParseDir("/a"), true)
	if err != nil {
		t.Fatalf("List(/a, follow): got error %v, want nil", err)
	}
	if len(got) != 2 {
		t.Fatalf("List(/a, follow): %d entries, want 2 after dedup: %v", len(got), got)
	}
	if !got[0].Path.Equal(fspath.ParseFile("/elsewhere/target.txt")) {
		t.Errorf("entry[0] = %q, want resolved target outside dir", got[0].Path)
	}
}

func TestListRejectsWildcard(t *testing.T) {
	w, err := fspath.Wildcard(fspath.ParseDir("/a"))
	if err != nil {
		t.Fatalf("Wildcard(/a): got error %v, want nil", err)
	}
	stub := &stubEnumerator{}
	l := list.New(stub)

	_, err = l.List(w, false)
	if err == nil {
		t.Fatal("List(wildcard): got nil error, want WILDCARD_NOT_ALLOWED")
	}
	if code := errors.GetCode(err); code != core.CodeWildcardNotAllowed {
		t.Errorf("List(wildcard): code = %q, want %q", code, core.CodeWildcardNotAllowed)
	}
	if stub.enumerateds != 0 {
		t.Error("List(wildcard): host enumeration ran despite invalid input")
	}
}

// A directory mistakenly parsed with ParseFile must fail instead of
// silently enumerating the parent directory.
func TestListRejectsFileFormPath(t *testing.T) {
	stub := &stubEnumerator{}
	l := list.New(stub)

	_, err := l.List(fspath.ParseFile("/a/b"), false)
	if err == nil {
		t.Fatal("List(file-form): got nil error, want INVALID_COMPOSITION")
	}
	if code := errors.GetCode(err); code != core.CodeInvalidComposition {
		t.Errorf("List(file-form): code = %q, want %q", code, core.CodeInvalidComposition)
	}
	if stub.enumerateds != 0 {
		t.Error("List(file-form): host enumeration ran despite invalid input")
	}
}

func TestListPropagatesHostError(t *testing.T) {
	stub := &stubEnumerator{err: core.ErrNotExist}
	l := list.New(stub)

	_, err := l.List(fspath.ParseDir("/gone"), false)
	if !errors.Is(err, core.ErrNotExist) {
		t.Errorf("List(/gone): error = %v, want ErrNotExist", err)
	}
}
