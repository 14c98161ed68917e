// Package config manages application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	httpclient "yttranscript/http"
	"yttranscript/internal/logging"
	"yttranscript/youtube"
)

// EnvPrefix prefixes every environment override, e.g. YTTRANSCRIPT_HTTP_TIMEOUT.
const EnvPrefix = "YTTRANSCRIPT"

// Config holds all application configuration.
type Config struct {
	// Default caption language; empty means the first listed track.
	Lang string
	// Default output format for the fetch command.
	Format string

	HTTP   HTTPConfig
	Log    logging.Config
	Server ServerConfig
}

// HTTPConfig holds outbound HTTP settings.
type HTTPConfig struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	Cookies           bool
	FailureThreshold  int
	RecoveryTimeout   time.Duration
	MaxBodyBytes      int64
}

// ServerConfig holds HTTP API server configuration.
type ServerConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from defaults, an optional YAML file and
// environment variables, in increasing priority. With an empty path,
// yttranscript.yaml is looked up in the working directory and in
// $HOME/.config/yttranscript; not finding one is not an error. An explicit
// path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("yttranscript")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "yttranscript"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("lang", "")
	v.SetDefault("format", string(youtube.FormatPlainText))

	rl := httpclient.DefaultRateLimiterConfig()
	cb := httpclient.DefaultCircuitBreakerConfig()
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.requestsPerSecond", rl.RequestsPerSecond)
	v.SetDefault("http.burst", rl.Burst)
	v.SetDefault("http.cookies", true)
	v.SetDefault("http.failureThreshold", cb.FailureThreshold)
	v.SetDefault("http.recoveryTimeout", cb.RecoveryTimeout.String())
	v.SetDefault("http.maxBodyBytes", httpclient.DefaultMaxBodyBytes)

	lc := logging.DefaultConfig()
	v.SetDefault("log.level", lc.Level)
	v.SetDefault("log.format", lc.Format)
	v.SetDefault("log.output", lc.Output)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.readTimeout", "30s")
	v.SetDefault("server.writeTimeout", "60s")
	v.SetDefault("server.shutdownTimeout", "10s")
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if _, err := youtube.ParseFormatName(c.Format); err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must be non-negative")
	}
	if c.HTTP.RequestsPerSecond < 0 {
		return fmt.Errorf("http.requestsPerSecond must be non-negative")
	}
	if c.HTTP.Burst < 0 {
		return fmt.Errorf("http.burst must be non-negative")
	}
	if c.HTTP.FailureThreshold < 0 {
		return fmt.Errorf("http.failureThreshold must be non-negative")
	}
	if c.HTTP.RecoveryTimeout < 0 {
		return fmt.Errorf("http.recoveryTimeout must be non-negative")
	}
	if c.HTTP.MaxBodyBytes < 0 {
		return fmt.Errorf("http.maxBodyBytes must be non-negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must be set")
	}
	return nil
}

// HTTPClientConfig translates the http section into a client configuration.
func (c *Config) HTTPClientConfig() *httpclient.Config {
	cfg := httpclient.DefaultConfig()
	cfg.Timeout = c.HTTP.Timeout
	cfg.EnableCookies = c.HTTP.Cookies
	cfg.MaxBodyBytes = c.HTTP.MaxBodyBytes
	cfg.RateLimiter.RequestsPerSecond = c.HTTP.RequestsPerSecond
	cfg.RateLimiter.Burst = c.HTTP.Burst
	cfg.CircuitBreaker.FailureThreshold = c.HTTP.FailureThreshold
	cfg.CircuitBreaker.RecoveryTimeout = c.HTTP.RecoveryTimeout
	return cfg
}
