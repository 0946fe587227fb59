package http_test

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/filegate"
	filegatehttp "github.com/sagarc03/filegate/http"
)

const testSecret = "0123456789abcdef"

var fixedModTime = time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)

// bigContent spans several read chunks and is not a multiple of the chunk size.
var bigContent = bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz012345"), 3*1024+7)

func writeFiles(t *testing.T, dir string) {
	t.Helper()

	files := map[string][]byte{
		"digits.txt":      []byte("0123456789"),
		"index.html":      []byte("<h1>home</h1>"),
		"css/site.css":    []byte("body{color:red}"),
		"docs/index.html": []byte("<h1>docs</h1>"),
		"notes.md":        []byte("# notes"),
		"empty.txt":       nil,
		"big.bin":         bigContent,
	}

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
		require.NoError(t, os.Chtimes(path, fixedModTime, fixedModTime))
	}
}

func newServeConfig(t *testing.T, modify func(*filegate.Options)) *filegate.ServeConfig {
	t.Helper()

	dir := t.TempDir()
	writeFiles(t, dir)

	opts := filegate.Options{
		Root:         dir,
		Mount:        "/static",
		Extensions:   []string{".html", ".css", ".txt", ".bin"},
		CacheControl: "public, max-age=60",
		ETag:         true,
		LastModified: true,
		IndexFiles:   []string{"index.html"},
	}
	if modify != nil {
		modify(&opts)
	}

	cfg, err := filegate.NewServeConfig(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	return cfg
}

func newHandler(t *testing.T, modify func(*filegate.Options)) *filegatehttp.Handler {
	t.Helper()
	return filegatehttp.NewHandler(&filegatehttp.HandlerConfig{}, newServeConfig(t, modify))
}

// MockFileSystem is a mock implementation of filegate.FileSystem
type MockFileSystem struct {
	mock.Mock
}

func (m *MockFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

func (m *MockFileSystem) Open(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadSeekCloser), args.Error(1)
}

type fakeInfo struct {
	name string
	size int64
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return f.size }
func (f fakeInfo) Mode() fs.FileMode  { return 0o644 }
func (f fakeInfo) ModTime() time.Time { return fixedModTime }
func (f fakeInfo) IsDir() bool        { return false }
func (f fakeInfo) Sys() any           { return nil }

// failingReader fails every read after the first n bytes.
type failingReader struct {
	*bytes.Reader
	n int
}

func (r *failingReader) Read(p []byte) (int, error) {
	pos := int(r.Size()) - r.Len()
	if pos >= r.n {
		return 0, io.ErrClosedPipe
	}
	if len(p) > r.n-pos {
		p = p[:r.n-pos]
	}
	return r.Reader.Read(p)
}

func (r *failingReader) Close() error { return nil }
