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

type Config struct {
	Reciter    string `koanf:"reciter"`     // default reciter catalog id
	CatalogURL string `koanf:"catalog_url"` // recitation catalog endpoint; empty uses the built-in default
	CacheDir   string `koanf:"cache_dir"`   // audio cache directory override

	// Playback settings
	Playback PlaybackConfig `koanf:"playback"`

	// Reading-progress settings
	Reading ReadingConfig `koanf:"reading"`
}

// PlaybackConfig holds recitation playback configuration.
type PlaybackConfig struct {
	Continuous            *bool   `koanf:"continuous"`              // auto-advance through the queue (default: true)
	SpeedMin              float64 `koanf:"speed_min"`               // lowest supported speed (default: 0.5)
	SpeedMax              float64 `koanf:"speed_max"`               // highest supported speed (default: 2.0)
	ResolveTimeoutSeconds int     `koanf:"resolve_timeout_seconds"` // audio resolution bound (default: 15)
}

// ReadingConfig holds dwell-tracking configuration.
type ReadingConfig struct {
	DwellThresholdSeconds float64 `koanf:"dwell_threshold_seconds"` // uninterrupted visibility before a verse counts as read (default: 3)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
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

	// Expand ~ in cache_dir
	if cfg.CacheDir != "" {
		cfg.CacheDir = expandPath(cfg.CacheDir)
	}

	// Normalize catalog URL (remove trailing slash)
	cfg.CatalogURL = strings.TrimSuffix(cfg.CatalogURL, "/")

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/sakina/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sakina", "config.toml"))
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

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.SpeedMin <= 0 {
		cfg.SpeedMin = 0.5
	}
	if cfg.SpeedMax <= cfg.SpeedMin {
		cfg.SpeedMax = 2.0
	}
	if cfg.ResolveTimeoutSeconds <= 0 {
		cfg.ResolveTimeoutSeconds = 15
	}
	if cfg.Continuous == nil {
		enabled := true
		cfg.Continuous = &enabled
	}

	return cfg
}

// ResolveTimeout returns the resolution bound as a duration.
func (c PlaybackConfig) ResolveTimeout() time.Duration {
	return time.Duration(c.ResolveTimeoutSeconds) * time.Second
}

// DwellThreshold returns the dwell threshold with the default applied.
func (c *Config) DwellThreshold() time.Duration {
	secs := c.Reading.DwellThresholdSeconds
	if secs <= 0 {
		secs = 3
	}
	return time.Duration(secs * float64(time.Second))
}
