package filegate

import (
	"fmt"
	"io/fs"
)

// Target is a file that a request resolved to. It is computed per request
// and never cached.
type Target struct {
	// Path is the canonical absolute filesystem path, always under the root.
	Path string
	// Name is the slash-separated path relative to the root.
	Name string
	// Info is the stat result read while resolving.
	Info fs.FileInfo
	// Index is true when the file is one of the configured index files.
	Index bool
}

// ByteRange is a single satisfiable byte range of a file.
type ByteRange struct {
	Start  int64
	Length int64
}

// End returns the inclusive offset of the last byte in the range.
func (r ByteRange) End() int64 {
	return r.Start + r.Length - 1
}

// ContentRange formats the range as a Content-Range header value.
func (r ByteRange) ContentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End(), size)
}

type DeploymentMode string

const (
	ModeDevelopment DeploymentMode = "development"
	ModeProduction  DeploymentMode = "production"
)

func (m DeploymentMode) IsValid() bool {
	switch m {
	case ModeDevelopment, ModeProduction:
		return true
	default:
		return false
	}
}

func ParseDeploymentMode(s string) (DeploymentMode, error) {
	switch s {
	case "dev":
		return ModeDevelopment, nil
	case "prod":
		return ModeProduction, nil
	}

	mode := DeploymentMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid deployment mode: %s (valid modes: development, production)", s)
	}
	return mode, nil
}
