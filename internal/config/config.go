package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bassista/go_touchline/internal/logger"
	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Remote RemoteConfig
	Cache  CacheConfig
	Misc   MiscConfig
}

type ServerConfig struct {
	Port               int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	ShutDownTimeout    time.Duration
	RequestTimeout     time.Duration
	CORSAllowedOrigins string
	RateLimitPerSec    float64 // per client IP, 0 disables the limiter
	RateBurst          int
}

// RemoteConfig describes the vendor API account.
type RemoteConfig struct {
	BaseURL         string
	Username        string
	Password        string
	HTTPTimeout     time.Duration
	RateLimitPerSec float64 // outbound, 0 disables throttling
	RateBurst       int
}

type CacheConfig struct {
	ValiditySecs  int
	ModuleListTTL time.Duration // 0 keeps the module list until an explicit refresh
}

type MiscConfig struct {
	GinMode  string
	LogLevel string
}

// Validity returns the snapshot validity window.
func (c CacheConfig) Validity() time.Duration {
	return time.Duration(c.ValiditySecs) * time.Second
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.idle_timeout", 120*time.Second)
	viper.SetDefault("server.shutdown_timeout", 5*time.Second)
	viper.SetDefault("server.request_timeout", 20*time.Second)
	viper.SetDefault("server.cors_allowed_origins", "*")
	viper.SetDefault("server.rate_limit_per_sec", 10)
	viper.SetDefault("server.rate_burst", 20)

	viper.SetDefault("remote.base_url", "https://roth-touchlinesl.com/api/v1")
	viper.SetDefault("remote.username", "")
	viper.SetDefault("remote.password", "")
	viper.SetDefault("remote.http_timeout", 15*time.Second)
	viper.SetDefault("remote.rate_limit_per_sec", 2)
	viper.SetDefault("remote.rate_burst", 4)

	viper.SetDefault("cache.validity_secs", 30)
	viper.SetDefault("cache.module_list_ttl", 0)

	viper.SetDefault("misc.gin_mode", "release")
	viper.SetDefault("misc.log_level", "info")
}

// LoadConfig reads config.yaml from TOUCHLINE_CONFIG_PATH (default ./config).
// A .env file is loaded first; TOUCHLINE_* variables override file values, e.g.
// TOUCHLINE_REMOTE_PASSWORD for remote.password, and PORT overrides server.port.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WithComponent("config").Warnf("cannot load .env: %v", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(getEnvOrDefault("TOUCHLINE_CONFIG_PATH", "./config"))

	viper.SetEnvPrefix("TOUCHLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		logger.WithComponent("config").Info("no config file found, using defaults and env vars")
	}

	return build()
}

func build() (*Config, error) {
	port, err := getEnvOrViperPort("PORT", "server.port")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               port,
			ReadTimeout:        viper.GetDuration("server.read_timeout"),
			WriteTimeout:       viper.GetDuration("server.write_timeout"),
			IdleTimeout:        viper.GetDuration("server.idle_timeout"),
			ShutDownTimeout:    viper.GetDuration("server.shutdown_timeout"),
			RequestTimeout:     viper.GetDuration("server.request_timeout"),
			CORSAllowedOrigins: viper.GetString("server.cors_allowed_origins"),
			RateLimitPerSec:    viper.GetFloat64("server.rate_limit_per_sec"),
			RateBurst:          viper.GetInt("server.rate_burst"),
		},
		Remote: RemoteConfig{
			BaseURL:         viper.GetString("remote.base_url"),
			Username:        viper.GetString("remote.username"),
			Password:        viper.GetString("remote.password"),
			HTTPTimeout:     viper.GetDuration("remote.http_timeout"),
			RateLimitPerSec: viper.GetFloat64("remote.rate_limit_per_sec"),
			RateBurst:       viper.GetInt("remote.rate_burst"),
		},
		Cache: CacheConfig{
			ValiditySecs:  viper.GetInt("cache.validity_secs"),
			ModuleListTTL: viper.GetDuration("cache.module_list_ttl"),
		},
		Misc: MiscConfig{
			GinMode:  viper.GetString("misc.gin_mode"),
			LogLevel: viper.GetString("misc.log_level"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return errors.New("server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return errors.New("server.write_timeout must be positive")
	}
	if c.Server.IdleTimeout <= 0 {
		return errors.New("server.idle_timeout must be positive")
	}
	if c.Server.ShutDownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("server.request_timeout must be positive")
	}
	if c.Server.RateLimitPerSec < 0 {
		return errors.New("server.rate_limit_per_sec cannot be negative")
	}
	if c.Server.RateLimitPerSec > 0 && c.Server.RateBurst < 1 {
		return errors.New("server.rate_burst must be at least 1")
	}

	u, err := url.Parse(c.Remote.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("remote.base_url must be an absolute URL, got %q", c.Remote.BaseURL)
	}
	if c.Remote.Username == "" {
		return errors.New("remote.username is required")
	}
	if c.Remote.Password == "" {
		return errors.New("remote.password is required")
	}
	if c.Remote.HTTPTimeout <= 0 {
		return errors.New("remote.http_timeout must be positive")
	}
	if c.Remote.RateLimitPerSec < 0 {
		return errors.New("remote.rate_limit_per_sec cannot be negative")
	}
	if c.Remote.RateBurst < 1 {
		return errors.New("remote.rate_burst must be at least 1")
	}

	if c.Cache.ValiditySecs < 0 {
		return errors.New("cache.validity_secs cannot be negative")
	}
	if c.Cache.ModuleListTTL < 0 {
		return errors.New("cache.module_list_ttl cannot be negative")
	}

	if c.Misc.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.Misc.LogLevel); err != nil {
			return fmt.Errorf("misc.log_level: %w", err)
		}
	}
	return nil
}

// Watch reloads the config file on change and passes every valid result to
// onChange. It returns false when no config file is in use.
func Watch(onChange func(*Config)) bool {
	if viper.ConfigFileUsed() == "" {
		return false
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		logger.WithComponent("config").Infof("config file changed: %s", e.Name)
		cfg, err := build()
		if err != nil {
			logger.WithComponent("config").Warnf("ignoring invalid config: %v", err)
			return
		}
		onChange(cfg)
	})
	viper.WatchConfig()
	return true
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvOrViperPort(envKey, viperKey string) (int, error) {
	if v := os.Getenv(envKey); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", envKey, v, err)
		}
		return port, nil
	}
	return viper.GetInt(viperKey), nil
}
