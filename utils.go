package filegate

import (
	"path/filepath"
	"runtime"
	"strings"
)

// caseInsensitiveFS is true on platforms whose default filesystems compare
// names without regard to case.
var caseInsensitiveFS = runtime.GOOS == "darwin" || runtime.GOOS == "windows"

// hasPathPrefix reports whether p is root or lies below it. Both must be
// clean absolute paths. The comparison is purely syntactic.
func hasPathPrefix(p, root string) bool {
	equal := func(a, b string) bool {
		if caseInsensitiveFS {
			return strings.EqualFold(a, b)
		}
		return a == b
	}

	if equal(p, root) {
		return true
	}

	prefix := root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}

	return len(p) > len(prefix) && equal(p[:len(prefix)], prefix)
}

// relativeName converts a path under root into the slash-separated name used
// by FileSystem.
func relativeName(root, p string) (string, error) {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// isPlainFileName reports whether name is a single path element.
func isPlainFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.ContainsRune(name, 0)
}

// normalizeExtension lower-cases ext and makes sure it starts with a dot.
func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
