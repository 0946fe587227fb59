package keybackend

import (
	"bytes"
	"fmt"
	"os"
)

// LoadSecretFromFile reads a signing secret from a file. Surrounding
// whitespace, including the trailing newline most editors add, is removed:
//
//	$ openssl rand -hex 32 > /etc/filegate/secret
func LoadSecretFromFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return nil, fmt.Errorf("read secret file: %w", err)
	}

	secret := bytes.TrimSpace(data)
	if len(secret) == 0 {
		return nil, fmt.Errorf("read secret file %s: %w", path, ErrEmptySecret)
	}

	return secret, nil
}
