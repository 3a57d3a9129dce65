package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	WordPress WordPressConfig `toml:"wordpress"`
	Server    ServerConfig    `toml:"server"`
	Cache     CacheConfig     `toml:"cache"`
}

// WordPressConfig holds the upstream REST API settings.
type WordPressConfig struct {
	// BaseURL is the REST root, e.g. https://example.com/wp-json/wp/v2.
	// Empty is allowed; every content request then fails with a
	// configuration error.
	BaseURL           string `toml:"base_url"`
	PostsPath         string `toml:"posts_path"`
	TimeoutSeconds    int    `toml:"timeout_seconds"`
	RevalidateSeconds int    `toml:"revalidate_seconds"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Path of the SQLite file. Relative paths are resolved against the data
	// directory by the caller.
	Path                 string `toml:"path"`
	PurgeIntervalMinutes int    `toml:"purge_interval_minutes"`
}

// Timeout returns the upstream request timeout.
func (c WordPressConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Revalidate returns how long a cached response stays fresh.
func (c WordPressConfig) Revalidate() time.Duration {
	return time.Duration(c.RevalidateSeconds) * time.Second
}

// PurgeInterval returns how often stale cache rows are removed.
func (c CacheConfig) PurgeInterval() time.Duration {
	return time.Duration(c.PurgeIntervalMinutes) * time.Minute
}

const defaultConfigContent = `[wordpress]
base_url = ""                     # REST root, or set WORDPRESS_API_URL / NEXT_PUBLIC_BASE_URL
posts_path = "/article"           # collection path of posts
timeout_seconds = 30
revalidate_seconds = 3600         # how long a cached response is served

[server]
host = "localhost"
port = 8080

[cache]
enabled = true
path = "cache.db"
purge_interval_minutes = 60
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. A .env file in
// the working directory is loaded first; variables already set in the
// environment win over it. Environment variables override values from the
// file with highest priority.
func Load(path string) (*Config, error) {
	loadDotEnv(".env")

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg, md)
	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load env file", "path", path, "error", err)
	}
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// validateExplicit checks values that were explicitly set in the TOML file.
// This catches cases like "port = 0" which would otherwise be silently
// replaced by the default value.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("wordpress", "timeout_seconds") && cfg.WordPress.TimeoutSeconds < 1 {
		return fmt.Errorf("invalid wordpress.timeout_seconds %d: must be >= 1", cfg.WordPress.TimeoutSeconds)
	}
	if md.IsDefined("wordpress", "revalidate_seconds") && cfg.WordPress.RevalidateSeconds < 1 {
		return fmt.Errorf("invalid wordpress.revalidate_seconds %d: must be >= 1", cfg.WordPress.RevalidateSeconds)
	}
	if md.IsDefined("cache", "purge_interval_minutes") && cfg.Cache.PurgeIntervalMinutes < 1 {
		return fmt.Errorf("invalid cache.purge_interval_minutes %d: must be >= 1", cfg.Cache.PurgeIntervalMinutes)
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields.
func applyDefaults(cfg *Config, md toml.MetaData) {
	if cfg.WordPress.PostsPath == "" {
		cfg.WordPress.PostsPath = "/article"
	}
	if cfg.WordPress.TimeoutSeconds == 0 {
		cfg.WordPress.TimeoutSeconds = 30
	}
	if cfg.WordPress.RevalidateSeconds == 0 {
		cfg.WordPress.RevalidateSeconds = 3600
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	// A missing bool decodes as false, so the metadata tells "enabled = false"
	// apart from an omitted key.
	if !md.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = true
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = "cache.db"
	}
	if cfg.Cache.PurgeIntervalMinutes == 0 {
		cfg.Cache.PurgeIntervalMinutes = 60
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
//
// Priority for wordpress.base_url:
//  1. NEXT_PUBLIC_BASE_URL (highest)
//  2. WORDPRESS_API_URL
//  3. the config file
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WORDPRESS_API_URL"); v != "" {
		cfg.WordPress.BaseURL = v
	}
	if v := os.Getenv("NEXT_PUBLIC_BASE_URL"); v != "" {
		cfg.WordPress.BaseURL = v
	}
	cfg.WordPress.BaseURL = strings.TrimSpace(cfg.WordPress.BaseURL)
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	if !strings.HasPrefix(cfg.WordPress.PostsPath, "/") {
		return fmt.Errorf("invalid wordpress.posts_path %q: must start with \"/\"", cfg.WordPress.PostsPath)
	}

	if cfg.WordPress.BaseURL == "" {
		slog.Warn("wordpress.base_url is empty: set it in the config file or via WORDPRESS_API_URL or NEXT_PUBLIC_BASE_URL")
		return nil
	}
	u, err := url.Parse(cfg.WordPress.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid wordpress.base_url %q: must be an absolute http(s) URL", cfg.WordPress.BaseURL)
	}

	return nil
}
