// Package filegate provides a request-time file serving engine that exposes a
// subset of a filesystem directory over HTTP.
//
// Filegate sits in front of an ordinary directory and decides, per request,
// whether a URL path maps to a file it is willing to serve. Requests it does
// not want are handed back to the caller so another handler can deal with them.
//
// # Key Components
//
//   - ServeConfig: Immutable configuration built once by NewServeConfig
//   - Resolve: Maps a URL path to a regular file strictly inside the root
//   - Authorize: Extension, allow/deny and method checks plus signed URLs
//   - NotModified: ETag and Last-Modified conditional request evaluation
//   - ParseRange: Single byte-range parsing for partial responses
//   - Signer: HMAC-SHA256 signed, time-limited URLs
//
// # Fallthrough
//
// Every rejection except a failed signature check is a fallthrough: the
// request is not for us and should be passed on. Use IsFallthrough to tell
// them apart from ErrUnauthorized and internal errors.
//
// # Example Usage
//
//	cfg, err := filegate.NewServeConfig(filegate.Options{
//	    Root:       "./public",
//	    Mount:      "/assets",
//	    Extensions: []string{".css", ".js", ".png"},
//	    ETag:       true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer func() { _ = cfg.Close() }()
//
//	target, err := cfg.Resolve(ctx, r.URL.EscapedPath())
//	if filegate.IsFallthrough(err) {
//	    next.ServeHTTP(w, r)
//	    return
//	}
//
// See the http package for the net/http handler built on top of this package.
package filegate
