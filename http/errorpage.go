package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/sagarc03/filegate"
)

const errorPageHTML = `<html>
<head><title>%[1]d %[2]s</title></head>
<body>
<center><h1>%[1]d %[2]s</h1></center>
<hr><center>filegate</center>
</body>
</html>`

// NotFoundHandler is the end of the chain for a standalone server. It answers
// 404, or with detail the status matching the fallthrough reason.
func NotFoundHandler(detail bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := http.StatusNotFound
		if detail {
			code = RejectionStatus(filegate.RejectionFromContext(r.Context()))
		}
		if code == http.StatusMethodNotAllowed {
			w.Header().Set("Allow", "GET, HEAD")
		}
		writeErrorPage(w, code)
	})
}

func writeErrorPage(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, fmt.Sprintf(errorPageHTML, code, http.StatusText(code)))
}
