package filewriter

import (
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_Hello(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	require.NoError(t, WriteFile(path, "SGVsbG8="))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("Hello"), got)
}

func TestWriteFile_RoundTripsArbitraryBytes(t *testing.T) {
	dir := t.TempDir()

	payloads := [][]byte{
		{},
		{0x00},
		{0xff, 0xfe, 0xfd},
		[]byte("OSI layer 7"),
		bytesOfLen(4096),
	}

	for i, want := range payloads {
		path := filepath.Join(dir, "payload-"+string(rune('a'+i)))
		encoded := base64.StdEncoding.EncodeToString(want)

		require.NoError(t, WriteFile(path, encoded), "payload %d", i)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want, got, "payload %d", i)
	}
}

func TestWriteFile_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, os.WriteFile(path, []byte("a much longer previous content"), 0644))

	require.NoError(t, WriteFile(path, "SGVsbG8="))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello", string(got), "file should be truncated before writing")
}

func TestWriteFile_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	require.NoError(t, WriteFile(path, "T1NJIG1vZGVs"))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, "T1NJIG1vZGVs"))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "OSI model", string(second))
}

func TestWriteFile_InvalidBase64DoesNotCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	err := WriteFile(path, "not-valid-base64!!")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDecode))
	assert.Equal(t, KindDecode, KindOf(err))
	assert.True(t, strings.HasPrefix(err.Error(), "failed to decode base64: "), err.Error())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "file must not be created on decode error")
}

func TestWriteFile_InvalidBase64LeavesExistingFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	require.NoError(t, os.WriteFile(path, []byte("keep me"), 0644))

	for _, bad := range []string{"SGVsbG8", "SGVs*G8=", "SGVsbG8=\n", "SGVs\r\nbG8=", "SGVsbG9="} {
		err := WriteFile(path, bad)
		require.Error(t, err, "input %q", bad)
		assert.True(t, errors.Is(err, ErrDecode), "input %q", bad)
	}

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(got))
}

func TestWriteFile_MissingParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent-dir", "out.bin")

	err := WriteFile(path, "SGVsbG8=")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCreate))
	assert.False(t, errors.Is(err, ErrWrite))
	assert.True(t, strings.HasPrefix(err.Error(), "failed to create file: "), err.Error())
	assert.True(t, errors.Is(err, os.ErrNotExist), "underlying cause should be preserved")

	_, statErr := os.Stat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(statErr), "parent directory must not be created")
}

func TestWriteFile_PathIsDirectory(t *testing.T) {
	dir := t.TempDir()

	err := WriteFile(dir, "SGVsbG8=")
	require.Error(t, err)
	assert.Equal(t, KindCreate, KindOf(err))

	info, statErr := os.Stat(dir)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestWriteFile_NoWritePermission(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permission bits are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0555))
	defer os.Chmod(dir, 0755)

	err := WriteFile(filepath.Join(dir, "out.bin"), "SGVsbG8=")
	require.Error(t, err)
	kind := KindOf(err)
	assert.True(t, kind == KindCreate || kind == KindWrite, "got kind %q", kind)
}

// failingWriter accepts n bytes and then fails.
type failingWriter struct {
	f      *os.File
	budget int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) <= w.budget {
		w.budget -= len(p)
		return w.f.Write(p)
	}
	n, _ := w.f.Write(p[:w.budget])
	w.budget = 0
	return n, errors.New("no space left on device")
}

func (w *failingWriter) Close() error { return w.f.Close() }

func TestWriteFile_PartialWriteLeavesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")

	orig := createFile
	createFile = func(p string) (io.WriteCloser, error) {
		f, err := os.Create(p)
		if err != nil {
			return nil, err
		}
		return &failingWriter{f: f, budget: 2}, nil
	}
	defer func() { createFile = orig }()

	err := WriteFile(path, "SGVsbG8=")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWrite))
	assert.Equal(t, "failed to write file: no space left on device", err.Error())

	got, readErr := os.ReadFile(path)
	require.NoError(t, readErr, "partial file is not cleaned up")
	assert.Equal(t, "He", string(got))
}

type closeErrWriter struct{ io.Writer }

func (closeErrWriter) Close() error { return errors.New("close failed") }

func TestWriteFile_CloseErrorIsWriteError(t *testing.T) {
	orig := createFile
	createFile = func(string) (io.WriteCloser, error) {
		return closeErrWriter{io.Discard}, nil
	}
	defer func() { createFile = orig }()

	err := WriteFile("ignored", "SGVsbG8=")
	require.Error(t, err)
	assert.Equal(t, KindWrite, KindOf(err))
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("boom")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func bytesOfLen(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}
