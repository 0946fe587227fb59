package filegate

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

const (
	// SignatureParam is the query parameter carrying the hex signature.
	SignatureParam = "sig"
	// ExpiresParam is the query parameter carrying the Unix expiry time.
	ExpiresParam = "exp"
)

var digitsRegex = regexp.MustCompile(`^[0-9]+$`)

// Signer creates and verifies HMAC-SHA256 signed, time-limited URLs.
//
// The signed message is the resolved filesystem path followed by the decimal
// expiry timestamp, so a signature is only valid for the exact file it was
// issued for.
type Signer struct {
	secret []byte
	now    func() time.Time
}

// NewSigner creates a Signer using secret as the HMAC key.
func NewSigner(secret []byte) *Signer {
	return &Signer{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
}

// Sign returns the hex signature and expiry string for path.
func (s *Signer) Sign(path string, expires time.Time) (sig, exp string) {
	exp = strconv.FormatInt(expires.Unix(), 10)
	return hex.EncodeToString(s.mac(path, exp)), exp
}

// Verify checks the sig and exp query parameters for path.
//
// The following are rejected with ErrUnauthorized:
//  1. Missing sig or exp
//  2. exp that is not an all-digit decimal number
//  3. sig that is not valid hex
//  4. exp in the past
//  5. sig that does not match the expected HMAC (constant-time comparison)
func (s *Signer) Verify(path string, query url.Values) error {
	sig := query.Get(SignatureParam)
	exp := query.Get(ExpiresParam)

	if sig == "" || exp == "" {
		return fmt.Errorf("missing signature parameters: %w", ErrUnauthorized)
	}

	if !digitsRegex.MatchString(exp) {
		return fmt.Errorf("invalid exp format: %w", ErrUnauthorized)
	}

	expiresAt, err := strconv.ParseInt(exp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid exp value: %w", ErrUnauthorized)
	}

	got, err := hex.DecodeString(sig)
	if err != nil {
		return fmt.Errorf("invalid sig encoding: %w", ErrUnauthorized)
	}

	if expiresAt < s.now().Unix() {
		return fmt.Errorf("signature expired: %w", ErrUnauthorized)
	}

	if !hmac.Equal(got, s.mac(path, exp)) {
		return fmt.Errorf("signature mismatch: %w", ErrUnauthorized)
	}

	return nil
}

func (s *Signer) mac(path, exp string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(path))
	h.Write([]byte(exp))
	return h.Sum(nil)
}

// SignURL resolves escapedPath and returns it with sig and exp query
// parameters valid until expires. The path must resolve to a servable file.
func (c *ServeConfig) SignURL(ctx context.Context, escapedPath string, expires time.Time) (string, error) {
	if c.signer == nil {
		return "", errors.New("sign url: signing secret is not configured")
	}

	t, err := c.Resolve(ctx, escapedPath)
	if err != nil {
		return "", fmt.Errorf("sign url: %w", err)
	}

	sig, exp := c.signer.Sign(t.Path, expires)
	query := url.Values{
		SignatureParam: []string{sig},
		ExpiresParam:   []string{exp},
	}

	return escapedPath + "?" + query.Encode(), nil
}
