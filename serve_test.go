package filegate_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/filegate"
)

func TestNewServeConfig_Defaults(t *testing.T) {
	fx := newFixture(t)
	opts := defaultOptions(fx.root)
	opts.Mount = "assets/"
	cfg := newServeConfig(t, opts)

	realRoot, err := filepath.EvalSymlinks(fx.root)
	require.NoError(t, err)

	assert.Equal(t, realRoot, cfg.Root())
	assert.Equal(t, "/assets/", cfg.Mount())
	assert.Equal(t, filegate.ModeProduction, cfg.Mode())
	assert.Equal(t, "public, max-age=60", cfg.CacheControl())
	assert.True(t, cfg.ETagEnabled())
	assert.True(t, cfg.LastModifiedEnabled())
	assert.False(t, cfg.SigningEnabled())
	assert.False(t, cfg.Debug())
	assert.Equal(t, []string{"index.html", "index.htm"}, cfg.IndexFiles())
}

func TestNewServeConfig_RelativeRoot(t *testing.T) {
	fx := newFixture(t)
	t.Chdir(fx.base)

	opts := defaultOptions("public")
	cfg := newServeConfig(t, opts)

	realRoot, err := filepath.EvalSymlinks(fx.root)
	require.NoError(t, err)
	assert.Equal(t, realRoot, cfg.Root())
}

func TestNewServeConfig_Errors(t *testing.T) {
	fx := newFixture(t)

	tests := []struct {
		name   string
		modify func(*filegate.Options)
	}{
		{
			name:   "empty root",
			modify: func(o *filegate.Options) { o.Root = "" },
		},
		{
			name:   "missing root",
			modify: func(o *filegate.Options) { o.Root = filepath.Join(fx.base, "missing") },
		},
		{
			name:   "root is a file",
			modify: func(o *filegate.Options) { o.Root = fx.outside },
		},
		{
			name:   "empty mount",
			modify: func(o *filegate.Options) { o.Mount = "" },
		},
		{
			name:   "slash mount",
			modify: func(o *filegate.Options) { o.Mount = "/" },
		},
		{
			name:   "invalid mode",
			modify: func(o *filegate.Options) { o.Mode = "staging" },
		},
		{
			name:   "index file with separator",
			modify: func(o *filegate.Options) { o.IndexFiles = []string{"sub/index.html"} },
		},
		{
			name:   "index file dot dot",
			modify: func(o *filegate.Options) { o.IndexFiles = []string{".."} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions(fx.root)
			tt.modify(&opts)

			cfg, err := filegate.NewServeConfig(opts)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestNewServeConfig_CopiesSlices(t *testing.T) {
	fx := newFixture(t)
	opts := defaultOptions(fx.root)
	cfg := newServeConfig(t, opts)

	opts.IndexFiles[0] = "changed.html"
	assert.Equal(t, []string{"index.html", "index.htm"}, cfg.IndexFiles())

	got := cfg.IndexFiles()
	got[0] = "changed.html"
	assert.Equal(t, []string{"index.html", "index.htm"}, cfg.IndexFiles())
}

// memFS serves a single in-memory file and records Close calls.
type memFS struct {
	content string
	fails   bool
	closed  bool
}

func (m *memFS) Stat(_ context.Context, name string) (fs.FileInfo, error) {
	if name != "a.txt" {
		return nil, fs.ErrNotExist
	}
	return fileInfo{size: int64(len(m.content)), modTime: fixedModTime}, nil
}

func (m *memFS) Open(_ context.Context, name string) (io.ReadSeekCloser, error) {
	if m.fails {
		return nil, errors.New("disk on fire")
	}
	return nopCloser{strings.NewReader(m.content)}, nil
}

func (m *memFS) Close() error {
	m.closed = true
	return nil
}

type nopCloser struct{ io.ReadSeeker }

func (nopCloser) Close() error { return nil }

func TestNewServeConfig_CustomFileSystem(t *testing.T) {
	fx := newFixture(t)
	mem := &memFS{content: "in memory"}

	opts := defaultOptions(fx.root)
	opts.FileSystem = mem
	cfg, err := filegate.NewServeConfig(opts)
	require.NoError(t, err)

	target, err := cfg.Resolve(context.Background(), "/static/a.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(9), target.Info.Size())

	// Files on disk are invisible through a custom FileSystem.
	_, err = cfg.Resolve(context.Background(), "/static/css/site.css")
	assert.ErrorIs(t, err, filegate.ErrNotFound)

	f, err := cfg.Open(context.Background(), target)
	require.NoError(t, err)
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "in memory", string(content))

	require.NoError(t, cfg.Close())
	assert.False(t, mem.closed)
}

func TestServeConfig_OpenError(t *testing.T) {
	fx := newFixture(t)
	mem := &memFS{content: "in memory", fails: true}

	opts := defaultOptions(fx.root)
	opts.FileSystem = mem
	cfg := newServeConfig(t, opts)

	target, err := cfg.Resolve(context.Background(), "/static/a.txt")
	require.NoError(t, err)

	_, err = cfg.Open(context.Background(), target)
	assert.ErrorIs(t, err, filegate.ErrInternal)
	assert.False(t, filegate.IsFallthrough(err))
}

func TestServeConfig_Close(t *testing.T) {
	fx := newFixture(t)
	cfg, err := filegate.NewServeConfig(defaultOptions(fx.root))
	require.NoError(t, err)

	require.NoError(t, cfg.Close())

	// The root stays on disk.
	_, err = os.Stat(fx.root)
	assert.NoError(t, err)
}
