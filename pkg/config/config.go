// Package config loads argwheel settings from TOML and the environment.
//
// Precedence, lowest first: built-in defaults ([Default]), the TOML file,
// environment variables. A missing file is not an error; unknown keys are.
//
// Example file:
//
//	[layout]
//	radius = 300
//	per_level_increment = 0.15
//
//	[palette]
//	support = "#3fa34d"
//	attack = "#d1495b"
//
//	[server]
//	addr = ":8080"
//	datasets = "./data"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/argwheel/pkg/errors"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/color"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/layout"
)

// AppName is used for config, cache and data directories.
const AppName = "argwheel"

// Backend names for caches and session stores.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the full application configuration.
type Config struct {
	Layout  layout.Config `toml:"layout"`
	Render  RenderConfig  `toml:"render"`
	Palette PaletteConfig `toml:"palette"`
	Server  ServerConfig  `toml:"server"`
	Cache   CacheConfig   `toml:"cache"`
	Session SessionConfig `toml:"session"`
}

// RenderConfig holds output defaults.
type RenderConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Labels bool    `toml:"labels"`
}

// PaletteConfig holds fill colors as hex strings.
type PaletteConfig struct {
	Thesis              string  `toml:"thesis"`
	Support             string  `toml:"support"`
	Attack              string  `toml:"attack"`
	MaxBrightnessFactor float64 `toml:"max_brightness_factor"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr     string `toml:"addr"`
	Datasets string `toml:"datasets"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

// SessionConfig selects and configures the view session store.
type SessionConfig struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: layout.DefaultConfig(),
		Render: RenderConfig{Width: 640, Height: 640},
		Palette: PaletteConfig{
			Thesis:              color.DefaultThesis,
			Support:             color.DefaultSupport,
			Attack:              color.DefaultAttack,
			MaxBrightnessFactor: color.DefaultMaxBrightnessFactor,
		},
		Server: ServerConfig{Addr: ":8080", Datasets: "./data"},
		Cache: CacheConfig{
			Backend:  BackendFile,
			RedisURL: "redis://localhost:6379/0",
			TTL:      7 * 24 * time.Hour,
		},
		Session: SessionConfig{
			Backend:  BackendMemory,
			RedisURL: "redis://localhost:6379/0",
			TTL:      24 * time.Hour,
		},
	}
}

// Load reads the TOML file at path over the defaults and applies the
// environment. An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		default:
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %s", path, undecoded[0])
			}
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	c.Server.Addr = getenv("ARGWHEEL_ADDR", c.Server.Addr)
	c.Server.Datasets = getenv("ARGWHEEL_DATASETS", c.Server.Datasets)
	c.Cache.Backend = getenv("ARGWHEEL_CACHE", c.Cache.Backend)
	c.Session.Backend = getenv("ARGWHEEL_SESSIONS", c.Session.Backend)
	if url := os.Getenv("REDIS_URL"); url != "" {
		c.Cache.RedisURL = url
		c.Session.RedisURL = url
	}
	c.Session.TTL = time.Duration(getenvInt("ARGWHEEL_SESSION_TTL_SECONDS", int(c.Session.TTL/time.Second))) * time.Second
}

// Validate reports values that cannot work.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout")
	}
	if _, err := c.ColorPalette(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette")
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render size must be positive, got %gx%g", c.Render.Width, c.Render.Height)
	}
	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Session.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown session backend %q", c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "session ttl must be positive")
	}
	return nil
}

// ColorPalette parses the palette section.
func (c Config) ColorPalette() (color.Palette, error) {
	p := c.Palette
	return color.ParsePalette(p.Thesis, p.Support, p.Attack, p.MaxBrightnessFactor)
}

// LayoutFor returns the layout geometry sized for a width x height frame.
func (c Config) LayoutFor(width, height float64) layout.Config {
	if width <= 0 || height <= 0 {
		width, height = c.Render.Width, c.Render.Height
	}
	return c.Layout.WithRadius(width, height)
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns $XDG_CONFIG_HOME/argwheel/config.toml, falling back to
// the platform config directory.
func DefaultPath() string {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName, "config.toml")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, "config.toml")
}

// CacheDir returns the cache directory using XDG standard (~/.cache/argwheel/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// SessionDir returns the directory for file-backed sessions
// (~/.local/state/argwheel/sessions).
func SessionDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, AppName, "sessions"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", AppName, "sessions"), nil
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
