package filegate

import (
	"crypto/subtle"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

// ETag returns the weak validator for a file: W/"<size>-<mtime seconds>".
// Two files with the same size and mtime second collide.
func ETag(info fs.FileInfo) string {
	return fmt.Sprintf(`W/"%d-%d"`, info.Size(), info.ModTime().Unix())
}

// LastModified formats the modification time as an HTTP date.
func LastModified(info fs.FileInfo) string {
	return info.ModTime().UTC().Format(http.TimeFormat)
}

// NotModified reports whether the client's cached copy is current.
//
// If-None-Match is checked first and a match short-circuits. If-Modified-Since
// is checked afterwards; an unparseable date is ignored. Each check only runs
// when its validator is enabled.
func (c *ServeConfig) NotModified(h http.Header, info fs.FileInfo) bool {
	if c.etag {
		if inm := h.Get("If-None-Match"); inm != "" && etagMatches(inm, ETag(info)) {
			return true
		}
	}

	if c.lastModified {
		if ims := h.Get("If-Modified-Since"); ims != "" {
			since, err := http.ParseTime(ims)
			if err == nil && !info.ModTime().Truncate(time.Second).After(since) {
				return true
			}
		}
	}

	return false
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(etag)) == 1 {
			return true
		}
	}
	return false
}
