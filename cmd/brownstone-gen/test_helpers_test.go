package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

// minimalSpecJSON returns a spec that passes validateSpec and generates
// without extra imports.
func minimalSpecJSON() string {
	return `{
  "package": "fib",
  "arrays": [
    { "name": "Squares", "elem": "int", "len": 5, "form": "index", "expr": "i * i" }
  ]
}`
}

// fullSpecJSON exercises every form plus a fallible array with args and an
// extra import.
func fullSpecJSON() string {
	return `{
  "package": "fib",
  "imports": { "extra": [ { "path": "strconv" } ] },
  "arrays": [
    { "name": "Squares", "elem": "int", "len": 5, "form": "index", "expr": "i * i" },
    { "name": "Hellos", "elem": "string", "len": 3, "expr": "\"hello\"" },
    { "name": "Fibonacci", "doc": "Fibonacci returns the first eight Fibonacci numbers.", "elem": "int", "len": 8, "form": "prefix",
      "body": "if len(prefix) < 2 {\nreturn 1\n}\nreturn prefix[len(prefix)-1] + prefix[len(prefix)-2]" },
    { "name": "ParseAll", "elem": "int", "len": 4, "form": "index", "args": "fields []string", "fallible": true,
      "body": "return strconv.Atoi(fields[i])" }
  ]
}`
}

//
// -----------------------------------------------------------------------------
// Small helpers
// -----------------------------------------------------------------------------

// writeTempFile writes a file under dir/name and returns its full path.
func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// readFileString reads a file and returns its contents as string (fatal on error).
func readFileString(t *testing.T, p string) string {
	t.Helper()
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	return string(b)
}

// requireErrorContains asserts err is non-nil and its message contains wantSub.
func requireErrorContains(t *testing.T, err error, wantSub string) {
	t.Helper()
	require.Error(t, err)
	require.Contains(t, fmt.Sprint(err), wantSub)
}

//
// -----------------------------------------------------------------------------
// writeFileAtomic() seam helpers
// -----------------------------------------------------------------------------

// fakeTempFile is a controllable file-like object for writeFileAtomic tests.
type fakeTempFile struct {
	fileName string
	writeErr error
	closeErr error
	closed   bool
}

func (f *fakeTempFile) Name() string { return f.fileName }

func (f *fakeTempFile) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return len(p), nil
}

func (f *fakeTempFile) Close() error {
	f.closed = true
	return f.closeErr
}

// overrideWriteSeams replaces the writeFileAtomic seams for the duration of
// the test. Pass nil for any seam you don't want to override.
func overrideWriteSeams(
	t *testing.T,
	createFn func(string, string) (tempFile, error),
	removeFn func(path string) error,
	chmodFn func(path string, mode os.FileMode) error,
	renameFn func(oldpath, newpath string) error,
) {
	t.Helper()

	origCreate, origRemove, origChmod, origRename := createTempFile, removeFile, chmodFile, renameFile
	t.Cleanup(func() {
		createTempFile, removeFile, chmodFile, renameFile = origCreate, origRemove, origChmod, origRename
	})

	if createFn != nil {
		createTempFile = createFn
	}
	if removeFn != nil {
		removeFile = removeFn
	}
	if chmodFn != nil {
		chmodFile = chmodFn
	}
	if renameFn != nil {
		renameFile = renameFn
	}
}
