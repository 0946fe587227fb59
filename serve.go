package filegate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sagarc03/filegate/filesystem"
)

// FileSystem provides read access to the files under the serving root.
// Names are slash-separated and relative to the root ("." is the root itself).
//
// Implementations must be safe for concurrent use and must confine every
// name to the root.
type FileSystem interface {
	// Stat returns file information without following the name outside the root.
	Stat(ctx context.Context, name string) (fs.FileInfo, error)

	// Open opens a file for reading. Each call returns an independent handle
	// with its own read offset. The caller closes it.
	Open(ctx context.Context, name string) (io.ReadSeekCloser, error)
}

// Options configures NewServeConfig.
type Options struct {
	// Root is the directory to serve. It must exist.
	Root string
	// Mount is the URL prefix the engine is responsible for, e.g. "/assets".
	Mount string
	// Extensions lists the file extensions that may be served. Case and a
	// missing leading dot are normalized.
	Extensions []string
	// CacheControl is sent verbatim as the Cache-Control header when set.
	CacheControl string
	// ETag enables ETag generation and If-None-Match handling.
	ETag bool
	// LastModified enables Last-Modified and If-Modified-Since handling.
	LastModified bool
	// Secret enables signed URLs when non-empty.
	Secret []byte
	// Allow and Deny are matched against the canonical filesystem path of
	// the resolved file, root included, not against the request path. A
	// pattern that also occurs in the root path matches every file.
	Allow []Pattern
	Deny  []Pattern
	// IndexFiles are probed in order when a path resolves to a directory.
	IndexFiles []string
	// Mode selects how internal errors are reported. Defaults to production.
	Mode DeploymentMode
	// Debug logs the reason for every fallthrough.
	Debug bool
	// FileSystem overrides the os.Root backed filesystem opened on Root.
	FileSystem FileSystem
}

// ServeConfig is the immutable configuration shared by all requests.
type ServeConfig struct {
	root         string
	mount        string
	extensions   map[string]struct{}
	cacheControl string
	etag         bool
	lastModified bool
	signer       *Signer
	allow        []Pattern
	deny         []Pattern
	indexFiles   []string
	mode         DeploymentMode
	debug        bool
	fs           FileSystem
	closer       io.Closer
}

// NewServeConfig validates opts and builds a ServeConfig. The root is made
// absolute and its symlinks are evaluated once, here.
func NewServeConfig(opts Options) (*ServeConfig, error) {
	root, err := canonicalRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	mount, err := normalizeMount(opts.Mount)
	if err != nil {
		return nil, err
	}

	mode := opts.Mode
	if mode == "" {
		mode = ModeProduction
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("new serve config: invalid deployment mode: %s", mode)
	}

	for _, name := range opts.IndexFiles {
		if !isPlainFileName(name) {
			return nil, fmt.Errorf("new serve config: invalid index file name: %q", name)
		}
	}

	extensions := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = normalizeExtension(ext)
		if ext == "" {
			continue
		}
		extensions[ext] = struct{}{}
	}

	cfg := &ServeConfig{
		root:         root,
		mount:        mount,
		extensions:   extensions,
		cacheControl: opts.CacheControl,
		etag:         opts.ETag,
		lastModified: opts.LastModified,
		allow:        slices.Clone(opts.Allow),
		deny:         slices.Clone(opts.Deny),
		indexFiles:   slices.Clone(opts.IndexFiles),
		mode:         mode,
		debug:        opts.Debug,
		fs:           opts.FileSystem,
	}

	if len(opts.Secret) > 0 {
		cfg.signer = NewSigner(opts.Secret)
	}

	if cfg.fs == nil {
		store, err := filesystem.Open(root)
		if err != nil {
			return nil, fmt.Errorf("new serve config: %w", err)
		}
		cfg.fs = store
		cfg.closer = store
	}

	return cfg, nil
}

// Close releases the filesystem opened by NewServeConfig. A FileSystem passed
// in Options is left alone.
func (c *ServeConfig) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *ServeConfig) Root() string { return c.root }

// Mount returns the normalized mount prefix, always ending in "/".
func (c *ServeConfig) Mount() string { return c.mount }

func (c *ServeConfig) CacheControl() string { return c.cacheControl }

func (c *ServeConfig) ETagEnabled() bool { return c.etag }

func (c *ServeConfig) LastModifiedEnabled() bool { return c.lastModified }

func (c *ServeConfig) Mode() DeploymentMode { return c.mode }

func (c *ServeConfig) Debug() bool { return c.debug }

func (c *ServeConfig) SigningEnabled() bool { return c.signer != nil }

func (c *ServeConfig) IndexFiles() []string { return slices.Clone(c.indexFiles) }

// Open opens a resolved target for streaming.
func (c *ServeConfig) Open(ctx context.Context, t Target) (io.ReadSeekCloser, error) {
	f, err := c.fs.Open(ctx, t.Name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", t.Name, ErrInternal, err)
	}
	return f, nil
}

func canonicalRoot(dir string) (string, error) {
	if dir == "" {
		return "", errors.New("new serve config: root directory is required")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("new serve config: resolve root: %w", err)
	}

	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("new serve config: resolve root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("new serve config: stat root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("new serve config: root is not a directory: %s", dir)
	}

	return root, nil
}

func normalizeMount(mount string) (string, error) {
	trimmed := strings.Trim(mount, "/")
	if trimmed == "" {
		return "", fmt.Errorf("new serve config: mount must be a non-empty path segment: %q", mount)
	}
	return "/" + trimmed + "/", nil
}
