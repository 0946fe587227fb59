package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/filegate"
	filegatehttp "github.com/sagarc03/filegate/http"
	"github.com/sagarc03/filegate/keybackend"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for filegate.
type Config struct {
	Env     string                  `mapstructure:"env" yaml:"env" validate:"required,oneof=development production dev prod"`
	Server  ServerConfig            `mapstructure:"server" yaml:"server"`
	Serve   ServeConfig             `mapstructure:"serve" yaml:"serve"`
	Signing SigningConfig           `mapstructure:"signing" yaml:"signing"`
	CORS    filegatehttp.CORSConfig `mapstructure:"cors" yaml:"cors"`
	Log     LogConfig               `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           int    `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	FallbackDetail bool   `mapstructure:"fallback_detail" yaml:"fallback_detail"`
	MetricsPath    string `mapstructure:"metrics_path" yaml:"metrics_path" validate:"omitempty,startswith=/"`
}

// ServeConfig holds the file serving configuration.
type ServeConfig struct {
	Root         string   `mapstructure:"root" yaml:"root" validate:"required"`
	Mount        string   `mapstructure:"mount" yaml:"mount" validate:"required,startswith=/,ne=/"`
	Extensions   []string `mapstructure:"extensions" yaml:"extensions" validate:"dive,required"`
	CacheControl string   `mapstructure:"cache_control" yaml:"cache_control"`
	ETag         bool     `mapstructure:"etag" yaml:"etag"`
	LastModified bool     `mapstructure:"last_modified" yaml:"last_modified"`
	IndexFiles   []string `mapstructure:"index_files" yaml:"index_files" validate:"dive,required,excludesall=/\\"`
	Allow        []string `mapstructure:"allow" yaml:"allow"`
	Deny         []string `mapstructure:"deny" yaml:"deny"`
	Debug        bool     `mapstructure:"debug" yaml:"debug"`
}

// SigningConfig holds signed URL configuration.
type SigningConfig struct {
	keybackend.SecretConfig `mapstructure:",squash" yaml:",inline"`
	TTL                     int `mapstructure:"ttl" yaml:"ttl" validate:"min=1"` // seconds
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// DefaultExtensions are the file types served when none are configured.
var DefaultExtensions = []string{
	".html", ".htm", ".css", ".js", ".mjs", ".json", ".map", ".txt", ".xml",
	".svg", ".png", ".jpg", ".jpeg", ".gif", ".webp", ".avif", ".ico",
	".woff", ".woff2", ".ttf", ".otf", ".pdf", ".wasm", ".mp3", ".mp4", ".webm",
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"root":        "serve.root",
	"mount":       "serve.mount",
	"debug":       "serve.debug",
	"port":        "server.port",
	"secret-file": "signing.secret_file",
	"ttl":         "signing.ttl",
	"log-level":   "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		// Use custom mapping if it exists, otherwise use flag name as-is
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")

	v.SetDefault("server.port", 5708)
	v.SetDefault("server.fallback_detail", false)
	v.SetDefault("server.metrics_path", "")

	v.SetDefault("serve.root", "./public")
	v.SetDefault("serve.mount", "/static")
	v.SetDefault("serve.extensions", DefaultExtensions)
	v.SetDefault("serve.cache_control", "public, max-age=3600")
	v.SetDefault("serve.etag", true)
	v.SetDefault("serve.last_modified", true)
	v.SetDefault("serve.index_files", []string{"index.html"})
	v.SetDefault("serve.allow", []string{})
	v.SetDefault("serve.deny", []string{})
	v.SetDefault("serve.debug", false)

	v.SetDefault("signing.secret", "")
	v.SetDefault("signing.secret_file", "")
	v.SetDefault("signing.ttl", 3600) // seconds

	v.SetDefault("cors.enabled", false)

	v.SetDefault("log.level", "info")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("FILEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Mode returns the deployment mode selected by Env.
func (c *Config) Mode() (filegate.DeploymentMode, error) {
	return filegate.ParseDeploymentMode(c.Env)
}

// ServeOptions converts the configuration into filegate.Options. It parses
// the allow and deny patterns and loads the signing secret.
func (c *Config) ServeOptions() (filegate.Options, error) {
	mode, err := c.Mode()
	if err != nil {
		return filegate.Options{}, err
	}

	allow, err := filegate.ParsePatterns(c.Serve.Allow)
	if err != nil {
		return filegate.Options{}, fmt.Errorf("parse allow list: %w", err)
	}

	deny, err := filegate.ParsePatterns(c.Serve.Deny)
	if err != nil {
		return filegate.Options{}, fmt.Errorf("parse deny list: %w", err)
	}

	secret, err := keybackend.LoadSecret(c.Signing.SecretConfig)
	if err != nil {
		return filegate.Options{}, fmt.Errorf("load signing secret: %w", err)
	}

	return filegate.Options{
		Root:         c.Serve.Root,
		Mount:        c.Serve.Mount,
		Extensions:   c.Serve.Extensions,
		CacheControl: c.Serve.CacheControl,
		ETag:         c.Serve.ETag,
		LastModified: c.Serve.LastModified,
		Secret:       secret,
		Allow:        allow,
		Deny:         deny,
		IndexFiles:   c.Serve.IndexFiles,
		Mode:         mode,
		Debug:        c.Serve.Debug,
	}, nil
}

// HandlerConfig returns the HTTP handler configuration.
func (c *Config) HandlerConfig() filegatehttp.HandlerConfig {
	return filegatehttp.HandlerConfig{
		FallbackDetail: c.Server.FallbackDetail,
		MetricsPath:    c.Server.MetricsPath,
		CORS:           c.CORS,
	}
}

// Redacted returns a copy safe to print, with the inline secret masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.Signing.Secret != "" {
		out.Signing.Secret = "REDACTED"
	}
	return out
}
