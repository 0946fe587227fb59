package keybackend

import "errors"

// ErrEmptySecret is returned when a secret file contains no key material.
var ErrEmptySecret = errors.New("signing secret is empty")
