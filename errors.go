package filegate

import "errors"

var (
	// ErrNotMounted is returned when a request path is outside the mount prefix
	ErrNotMounted = errors.New("path not under mount")
	// ErrMalformedPath is returned when a request path cannot be decoded safely
	ErrMalformedPath = errors.New("malformed path")
	// ErrNotFound is returned when no servable file exists for a path
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the access policy rejects a file
	ErrForbidden = errors.New("forbidden")
	// ErrMethodNotAllowed is returned for methods other than GET and HEAD
	ErrMethodNotAllowed = errors.New("method not allowed")
	// ErrUnauthorized is returned when a signed URL fails verification
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)

// IsFallthrough reports whether err means the request should be handed to
// the next handler instead of being answered here.
func IsFallthrough(err error) bool {
	return errors.Is(err, ErrNotMounted) ||
		errors.Is(err, ErrMalformedPath) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrMethodNotAllowed)
}
