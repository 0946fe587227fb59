package filegate

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Resolve maps an escaped URL path to a regular file under the root.
//
// The path is matched against the mount, percent-decoded exactly once,
// joined with the root and cleaned. The cleaned result must still lie under
// the root; that check is the only traversal defense and runs after all
// normalization. Directories resolve to the first existing index file.
//
// Every error returned satisfies IsFallthrough. A directory without an index
// file is indistinguishable from a missing file.
func (c *ServeConfig) Resolve(ctx context.Context, escapedPath string) (Target, error) {
	rest, ok := c.stripMount(escapedPath)
	if !ok {
		return Target{}, ErrNotMounted
	}

	decoded, err := url.PathUnescape(rest)
	if err != nil {
		return Target{}, fmt.Errorf("decode path: %w", ErrMalformedPath)
	}

	if strings.IndexByte(decoded, 0) >= 0 {
		return Target{}, fmt.Errorf("NUL byte in path: %w", ErrMalformedPath)
	}

	full := filepath.Join(c.root, filepath.FromSlash(strings.TrimLeft(decoded, "/")))
	if !hasPathPrefix(full, c.root) {
		return Target{}, fmt.Errorf("path escapes root: %w", ErrNotFound)
	}

	name, err := relativeName(c.root, full)
	if err != nil {
		return Target{}, fmt.Errorf("relative name: %w", ErrNotFound)
	}

	info, err := c.fs.Stat(ctx, name)
	if err != nil {
		return Target{}, fmt.Errorf("stat %s: %w: %w", name, ErrNotFound, err)
	}

	if info.IsDir() {
		return c.resolveIndex(ctx, full, name)
	}

	if !info.Mode().IsRegular() {
		return Target{}, fmt.Errorf("%s is not a regular file: %w", name, ErrNotFound)
	}

	return Target{
		Path:  full,
		Name:  name,
		Info:  info,
		Index: c.isIndexName(path.Base(name)),
	}, nil
}

func (c *ServeConfig) resolveIndex(ctx context.Context, dir, dirName string) (Target, error) {
	for _, index := range c.indexFiles {
		name := path.Join(dirName, index)

		info, err := c.fs.Stat(ctx, name)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		return Target{
			Path:  filepath.Join(dir, index),
			Name:  name,
			Info:  info,
			Index: true,
		}, nil
	}

	return Target{}, fmt.Errorf("no index file in %s: %w", dirName, ErrNotFound)
}

// stripMount returns the part of p after the mount prefix. The bare mount
// without its trailing slash also matches and yields "".
func (c *ServeConfig) stripMount(p string) (string, bool) {
	if p == strings.TrimSuffix(c.mount, "/") {
		return "", true
	}
	return strings.CutPrefix(p, c.mount)
}

func (c *ServeConfig) isIndexName(base string) bool {
	return slices.Contains(c.indexFiles, base)
}
