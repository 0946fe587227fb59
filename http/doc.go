// Package http provides the net/http front end for filegate.
//
// Handler runs each request through path resolution, access policy,
// conditional evaluation and streaming, and hands every request it does not
// take to the next handler.
//
// # Features
//
//   - Path traversal safe resolution under a mount prefix
//   - Extension whitelist and allow/deny patterns
//   - HMAC-SHA256 signed, expiring URLs (401 on failure)
//   - Weak ETag and Last-Modified conditional requests
//   - Single byte-range responses, streamed in fixed-size chunks
//   - Standalone router with CORS, request logging and Prometheus metrics
//
// # Fallthrough
//
// Use Middleware to put filegate in front of another handler:
//
//	handler := http.NewHandler(&http.HandlerConfig{}, serveCfg)
//	mux.Handle("/", handler.Middleware(app))
//
// The application sees the reason through filegate.RejectionFromContext and
// may render its own 404 or 403 page.
//
// Or call Serve directly when the caller wants to decide:
//
//	handled, err := handler.Serve(w, r)
//	if !handled {
//	    // err is a fallthrough reason, or an internal error in development mode
//	}
//
// # Standalone
//
// Router serves the engine on its own. Requests that fall through get an HTML
// 404 page, or 400/403/405 when HandlerConfig.FallbackDetail is set.
package http
