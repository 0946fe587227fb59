// Package config provides configuration loading and validation for filegate.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (FILEGATE_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	opts, err := cfg.ServeOptions()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	serveCfg, err := filegate.NewServeConfig(opts)
//
// # Environment Variables
//
// All config keys map to environment variables with FILEGATE_ prefix:
//   - server.port → FILEGATE_SERVER_PORT
//   - serve.root → FILEGATE_SERVE_ROOT
//   - signing.secret_file → FILEGATE_SIGNING_SECRET_FILE
//
// # Configuration Structure
//
// The Config struct contains:
//   - Env: development or production, selects error detail and log format
//   - Server: port, fallback detail, metrics path
//   - Serve: root, mount, extensions, validators, index files, allow/deny lists
//   - Signing: inline secret or secret file, default URL lifetime
//   - CORS: cross-origin resource sharing settings
//   - Log: logging level
//
// Allow and deny entries are substrings unless prefixed with "re:", in which
// case they are regular expressions.
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Mount must start with "/" and not be "/" alone
//   - Index file names must not contain path separators
//   - Log level must be debug, info, warn, or error
package config
