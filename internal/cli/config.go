package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mhalvors/golevels/pkg/summary"
)

// Cache backend selectors for the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendOff   = "off"
)

// Store backend selectors for the config file.
const (
	StoreBackendFile  = "file"
	StoreBackendMongo = "mongo"
)

// Config is the user configuration loaded from
// ~/.config/golevels/config.toml. Every field has a working default, so the
// file is optional.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Output OutputConfig `toml:"output"`
}

// CacheConfig selects and configures the stage cache backend.
type CacheConfig struct {
	// Backend is one of file, redis, off.
	Backend string `toml:"backend"`

	// RedisAddr is the host:port of the Redis server (redis backend only).
	RedisAddr string `toml:"redis_addr"`

	// KeyPrefix namespaces cache keys on shared backends.
	KeyPrefix string `toml:"key_prefix"`
}

// StoreConfig selects and configures the summary archive backend.
type StoreConfig struct {
	// Backend is one of file, mongo.
	Backend string `toml:"backend"`

	// MongoURI is the connection string (mongo backend only).
	MongoURI string `toml:"mongo_uri"`

	// Dir overrides the archive directory (file backend only).
	Dir string `toml:"dir"`
}

// OutputConfig sets output defaults for the compute command.
type OutputConfig struct {
	// Format is the default serialization (tsv or json).
	Format string `toml:"format"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{
			Backend:   CacheBackendFile,
			RedisAddr: "localhost:6379",
		},
		Store: StoreConfig{
			Backend:  StoreBackendFile,
			MongoURI: "mongodb://localhost:27017",
		},
		Output: OutputConfig{
			Format: summary.FormatTSV,
		},
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadUserConfig loads the config file from its standard location, falling
// back to defaults when the file does not exist.
func loadUserConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return LoadConfig(path)
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendOff:
	default:
		return fmt.Errorf("invalid cache backend %q (must be file, redis, or off)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreBackendFile, StoreBackendMongo:
	default:
		return fmt.Errorf("invalid store backend %q (must be file or mongo)", c.Store.Backend)
	}
	if c.Output.Format != summary.FormatTSV && c.Output.Format != summary.FormatJSON {
		return fmt.Errorf("invalid output format %q (must be tsv or json)", c.Output.Format)
	}
	return nil
}
