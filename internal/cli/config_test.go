package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("default cache backend = %q, want file", cfg.Cache.Backend)
	}
	if cfg.Store.Backend != StoreBackendFile {
		t.Errorf("default store backend = %q, want file", cfg.Store.Backend)
	}
	if cfg.Output.Format != "tsv" {
		t.Errorf("default format = %q, want tsv", cfg.Output.Format)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[cache]
backend = "redis"
redis_addr = "redis.internal:6379"
key_prefix = "team-a:"

[output]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("cache backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.RedisAddr != "redis.internal:6379" {
		t.Errorf("redis addr = %q", cfg.Cache.RedisAddr)
	}
	if cfg.Cache.KeyPrefix != "team-a:" {
		t.Errorf("key prefix = %q", cfg.Cache.KeyPrefix)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("format = %q, want json", cfg.Output.Format)
	}

	// Unspecified sections keep their defaults
	if cfg.Store.Backend != StoreBackendFile {
		t.Errorf("store backend = %q, want default file", cfg.Store.Backend)
	}
}

func TestLoadConfigInvalidBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"memcached\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject unknown cache backend")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadConfig() should fail for a missing file")
	}
}
