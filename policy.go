package filegate

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
)

// Authorize decides whether a resolved target may be served for method.
//
// Checks run in order: extension, deny list, allow list, method, signature.
// Index files skip the extension check. Only a failed signature returns
// ErrUnauthorized; every other rejection satisfies IsFallthrough.
func (c *ServeConfig) Authorize(method string, t Target, query url.Values) error {
	if !t.Index {
		ext := normalizeExtension(filepath.Ext(t.Path))
		if _, ok := c.extensions[ext]; !ok {
			return fmt.Errorf("extension %q not allowed: %w", ext, ErrForbidden)
		}
	}

	if matchAny(c.deny, t.Path) {
		return fmt.Errorf("path matches deny list: %w", ErrForbidden)
	}

	if len(c.allow) > 0 && !matchAny(c.allow, t.Path) {
		return fmt.Errorf("path does not match allow list: %w", ErrForbidden)
	}

	if method != http.MethodGet && method != http.MethodHead {
		return fmt.Errorf("method %s: %w", method, ErrMethodNotAllowed)
	}

	if c.signer != nil {
		if err := c.signer.Verify(t.Path, query); err != nil {
			return err
		}
	}

	return nil
}
