package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/matzehuels/argwheel/pkg/config"
)

func typeName(v any) string { return fmt.Sprintf("%T", v) }

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"xdg default", "", filepath.Join("/tmp/custom-cache", appName)},
		{"configured", "/var/cache/wheel", "/var/cache/wheel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Cache.Dir = tt.dir
			got, err := cacheDir(cfg)
			if err != nil {
				t.Fatalf("cacheDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("cacheDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewCacheBackends(t *testing.T) {
	c := New(io.Discard, LogInfo)
	dir := t.TempDir()
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		backend string
		noCache bool
		want    string
	}{
		{"no-cache flag", config.BackendFile, true, "cache.NullCache"},
		{"none", config.BackendNone, false, "cache.NullCache"},
		{"file", config.BackendFile, false, "*cache.FileCache"},
		{"redis", config.BackendRedis, false, "*cache.RedisCache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Cache.Backend = tt.backend
			cfg.Cache.Dir = dir
			cfg.Cache.RedisURL = "redis://" + mr.Addr()
			ch, err := c.newCache(cfg, tt.noCache)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer ch.Close()
			if got := typeName(ch); got != tt.want {
				t.Errorf("newCache() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewSessionStore(t *testing.T) {
	cfg := config.Default()
	cfg.Session.Backend = config.BackendFile
	cfg.Session.Dir = t.TempDir()

	store, err := newSessionStore(cfg)
	if err != nil {
		t.Fatalf("newSessionStore() error: %v", err)
	}
	defer store.Close()
	if got := typeName(store); got != "*session.FileStore" {
		t.Errorf("newSessionStore() = %s, want *session.FileStore", got)
	}

	cfg.Session.Backend = config.BackendMemory
	mem, err := newSessionStore(cfg)
	if err != nil {
		t.Fatalf("newSessionStore() error: %v", err)
	}
	defer mem.Close()
	if got := typeName(mem); got != "*session.MemoryStore" {
		t.Errorf("newSessionStore() = %s, want *session.MemoryStore", got)
	}
}
