package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/pictures",
			expected: filepath.Join(home, "pictures"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/srv/downloads",
			expected: "/srv/downloads",
		},
		{
			name:     "relative path unchanged",
			input:    "downloads",
			expected: "downloads",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml (highest priority)
	if last := paths[len(paths)-1]; last != "config.toml" {
		t.Errorf("last config path = %q, want %q", last, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "glimpse", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name  string
		in    Config
		check func(t *testing.T, cfg Config)
	}{
		{
			name: "empty config gets all defaults",
			in:   Config{},
			check: func(t *testing.T, cfg Config) {
				if cfg.BaseURL != defaultBaseURL {
					t.Errorf("BaseURL = %q", cfg.BaseURL)
				}
				if cfg.SearchLimit != defaultSearchLimit {
					t.Errorf("SearchLimit = %d", cfg.SearchLimit)
				}
				if cfg.DownloadDir != "downloads" {
					t.Errorf("DownloadDir = %q", cfg.DownloadDir)
				}
				if cfg.TickMs != defaultTickMs {
					t.Errorf("TickMs = %d", cfg.TickMs)
				}
			},
		},
		{
			name: "explicit values preserved",
			in: Config{
				BaseURL:     "https://board.example",
				SearchLimit: 100,
				TickMs:      100,
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.BaseURL != "https://board.example" {
					t.Errorf("BaseURL = %q", cfg.BaseURL)
				}
				if cfg.SearchLimit != 100 {
					t.Errorf("SearchLimit = %d", cfg.SearchLimit)
				}
				if cfg.TickInterval() != 100*time.Millisecond {
					t.Errorf("TickInterval() = %v", cfg.TickInterval())
				}
			},
		},
		{
			name: "out-of-range limit clamped to default",
			in:   Config{SearchLimit: 9999},
			check: func(t *testing.T, cfg Config) {
				if cfg.SearchLimit != defaultSearchLimit {
					t.Errorf("SearchLimit = %d, want %d", cfg.SearchLimit, defaultSearchLimit)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			applyDefaults(&cfg)
			tt.check(t, cfg)
		})
	}
}
