package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures everything stories reads from its config file and
// environment.
type Config struct {
	Endpoint       string
	Schema         string
	DefaultTerm    string
	RequestTimeout time.Duration
	StorageDriver  string
	StoragePath    string // empty uses the driver's default location
	LogPath        string
	LogLevel       string
	Theme          string
}

const (
	defaultConfigPath     = "~/.config/stories/config.toml"
	defaultEndpoint       = "https://hn.algolia.com/api/v1/search?query="
	defaultSchema         = "stories"
	defaultTerm           = "React"
	defaultRequestTimeout = 5 * time.Second
	defaultStorageDriver  = "toml"
	defaultLogPath        = "~/.local/state/stories/stories.log"
	defaultLogLevel       = "info"

	envPrefix = "STORIES"
)

// Load locates and parses the config file, falling back to defaults when
// it is missing. STORIES_* environment variables override file values
// (STORIES_STORAGE_DRIVER for storage.driver).
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(resolved); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		v.SetConfigFile(resolved)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg := Config{
		Endpoint:       strings.TrimSpace(v.GetString("endpoint")),
		Schema:         strings.TrimSpace(v.GetString("schema")),
		DefaultTerm:    v.GetString("default_term"),
		RequestTimeout: v.GetDuration("request_timeout"),
		StorageDriver:  strings.TrimSpace(v.GetString("storage.driver")),
		StoragePath:    strings.TrimSpace(v.GetString("storage.path")),
		LogPath:        strings.TrimSpace(v.GetString("log.path")),
		LogLevel:       strings.TrimSpace(v.GetString("log.level")),
		Theme:          strings.TrimSpace(v.GetString("theme")),
	}

	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Schema == "" {
		cfg.Schema = defaultSchema
	}
	if cfg.DefaultTerm == "" {
		cfg.DefaultTerm = defaultTerm
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.StorageDriver == "" {
		cfg.StorageDriver = defaultStorageDriver
	}
	if cfg.StoragePath != "" {
		cfg.StoragePath = mustExpand(cfg.StoragePath)
	}
	if cfg.LogPath == "" {
		cfg.LogPath = defaultLogPath
	}
	cfg.LogPath = mustExpand(cfg.LogPath)
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint", defaultEndpoint)
	v.SetDefault("schema", defaultSchema)
	v.SetDefault("default_term", defaultTerm)
	v.SetDefault("request_timeout", defaultRequestTimeout)
	v.SetDefault("storage.driver", defaultStorageDriver)
	v.SetDefault("storage.path", "")
	v.SetDefault("log.path", defaultLogPath)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("theme", "")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
