package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultBaseURL     = "https://e621.net"
	defaultUserAgent   = "glimpse/1.0 (terminal image-board client)"
	defaultSearchLimit = 50
	defaultTickMs      = 50
)

type Config struct {
	BaseURL     string `koanf:"base_url"`
	UserAgent   string `koanf:"user_agent"`
	DownloadDir string `koanf:"download_dir"`
	SearchLimit int    `koanf:"search_limit"`

	// ImageProtocol overrides terminal graphics detection:
	// "kitty", "sixel", or "none". Empty means auto-detect.
	ImageProtocol string `koanf:"image_protocol"`

	// TickMs is the animation refresh interval in milliseconds.
	TickMs int `koanf:"tick_ms"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	// Normalize base URL (remove trailing slash)
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	cfg.DownloadDir = expandPath(cfg.DownloadDir)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = "downloads"
	}
	if cfg.SearchLimit <= 0 || cfg.SearchLimit > 320 {
		cfg.SearchLimit = defaultSearchLimit
	}
	if cfg.TickMs <= 0 {
		cfg.TickMs = defaultTickMs
	}
}

// TickInterval returns the animation refresh interval.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/glimpse/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "glimpse", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
