// Package keybackend loads the key material used to sign URLs.
package keybackend

import (
	"log/slog"
)

// MinSecretLength is the shortest secret accepted without a warning.
const MinSecretLength = 16

// SecretConfig holds configuration for loading the signing secret.
type SecretConfig struct {
	Secret string `mapstructure:"secret" yaml:"secret"`           // Inline secret from config
	File   string `mapstructure:"secret_file" yaml:"secret_file"` // Path to a file containing the secret
}

// LoadSecret returns the signing secret described by cfg. The file takes
// precedence over the inline value. A nil secret with a nil error means
// signing is disabled.
func LoadSecret(cfg SecretConfig) ([]byte, error) {
	var secret []byte

	if cfg.File != "" {
		fileSecret, err := LoadSecretFromFile(cfg.File)
		if err != nil {
			return nil, err
		}
		secret = fileSecret
	} else if cfg.Secret != "" {
		secret = []byte(cfg.Secret)
	}

	if secret != nil && len(secret) < MinSecretLength {
		slog.Warn("signing secret is shorter than recommended", "length", len(secret), "min", MinSecretLength)
	}

	return secret, nil
}
