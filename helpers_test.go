package filegate_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sagarc03/filegate"
)

// fixedModTime is applied to every fixture file so validators are stable.
var fixedModTime = time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)

// writeTree creates files under dir. A name ending in "/" creates an empty
// directory.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		require.NoError(t, os.Chtimes(path, fixedModTime, fixedModTime))
	}
}

// fixture is a served root next to a file that must never be reachable.
type fixture struct {
	base    string
	root    string
	outside string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "public")
	require.NoError(t, os.MkdirAll(root, 0o755))

	outside := filepath.Join(base, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("top secret"), 0o644))

	writeTree(t, root, map[string]string{
		"index.html":        "<h1>home</h1>",
		"css/site.css":      "body{color:red}",
		"js/app.js":         "console.log(1)",
		"docs/index.html":   "<h1>docs</h1>",
		"docs/guide.txt":    "guide",
		"notes.md":          "# notes",
		"private/key.txt":   "private",
		"backup/site.bak":   "old",
		"digits.txt":        "0123456789",
		"empty/":            "",
		"UPPER/STYLE.CSS":   "p{}",
		"with space/a.txt":  "spaced",
		"100%.txt":          "literal percent",
		"reports/q3.pdf":    "%PDF-1.4",
		"reports/index.htm": "<p>reports</p>",
	})

	return fixture{base: base, root: root, outside: outside}
}

func defaultOptions(root string) filegate.Options {
	return filegate.Options{
		Root:         root,
		Mount:        "/static",
		Extensions:   []string{".html", ".htm", ".css", ".js", ".txt", ".pdf"},
		CacheControl: "public, max-age=60",
		ETag:         true,
		LastModified: true,
		IndexFiles:   []string{"index.html", "index.htm"},
	}
}

func newServeConfig(t *testing.T, opts filegate.Options) *filegate.ServeConfig {
	t.Helper()

	cfg, err := filegate.NewServeConfig(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cfg.Close() })

	return cfg
}
