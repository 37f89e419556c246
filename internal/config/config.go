// Package config loads the service configuration from defaults, an optional
// config file, environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tracker/internal/auth"
)

// EnvPrefix namespaces environment variables, e.g. TRACKER_ADDR.
const EnvPrefix = "TRACKER"

// ErrInvalid is returned by Validate when required settings are missing.
var ErrInvalid = errors.New("invalid configuration")

// Config is the fully resolved service configuration.
type Config struct {
	Addr         string `mapstructure:"addr"`
	DatabaseURL  string `mapstructure:"database_url"`
	Secret       string `mapstructure:"secret"`
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
	CookieSecure bool   `mapstructure:"cookie_secure"`

	Argon2 Argon2Config `mapstructure:"argon2"`
	OIDC   OIDCConfig   `mapstructure:"oidc"`
}

// Argon2Config tunes the password hasher.
type Argon2Config struct {
	Memory      uint32 `mapstructure:"memory"`
	Iterations  uint32 `mapstructure:"iterations"`
	Parallelism uint8  `mapstructure:"parallelism"`
}

// OIDCConfig configures optional single sign-on.
type OIDCConfig struct {
	Issuer       string `mapstructure:"issuer"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// Enabled reports whether every SSO setting is present.
func (o OIDCConfig) Enabled() bool {
	return o.Issuer != "" && o.ClientID != "" && o.ClientSecret != "" && o.RedirectURL != ""
}

// Params converts the settings into hasher parameters.
func (a Argon2Config) Params() auth.Argon2Params {
	p := auth.DefaultArgon2Params()
	p.Memory = a.Memory
	p.Iterations = a.Iterations
	p.Parallelism = a.Parallelism
	return p
}

// Load resolves the configuration. configFile may be empty. Flags that were
// explicitly set on the command line take precedence over everything else.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Bare names used by existing deployments.
	_ = v.BindEnv("database_url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("secret", EnvPrefix+"_SECRET", "SECRET")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	if flags != nil {
		// --log-level binds to log_level and so on.
		flags.VisitAll(func(f *pflag.Flag) {
			if f.Name == "config" {
				return
			}
			_ = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
		})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := auth.DefaultArgon2Params()
	v.SetDefault("addr", ":8080")
	v.SetDefault("database_url", "")
	v.SetDefault("secret", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "auto")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("argon2.memory", d.Memory)
	v.SetDefault("argon2.iterations", d.Iterations)
	v.SetDefault("argon2.parallelism", d.Parallelism)
	v.SetDefault("oidc.issuer", "")
	v.SetDefault("oidc.client_id", "")
	v.SetDefault("oidc.client_secret", "")
	v.SetDefault("oidc.redirect_url", "")
}

// Validate reports every missing or malformed setting needed to serve.
func (c *Config) Validate() error {
	var problems []string
	if c.DatabaseURL == "" {
		problems = append(problems, "database_url is required")
	}
	if c.Secret == "" {
		problems = append(problems, "secret is required")
	}
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log_format %q must be auto, text or json", c.LogFormat))
	}
	if c.Argon2.Memory == 0 || c.Argon2.Iterations == 0 || c.Argon2.Parallelism == 0 {
		problems = append(problems, "argon2 memory, iterations and parallelism must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
