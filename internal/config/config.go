package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "tetrator.yaml"

// EnvPrefix prefixes every environment override, e.g. TETRATOR_LOG_LEVEL.
const EnvPrefix = "TETRATOR_"

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config is the runtime configuration shared by every command.
type Config struct {
	LogLevel      string       `yaml:"log_level" mapstructure:"log_level"`
	MaxResultBits uint64       `yaml:"max_result_bits" mapstructure:"max_result_bits"`
	MaxInputSize  int          `yaml:"max_input_size" mapstructure:"max_input_size"`
	Cache         CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Server        ServerConfig `yaml:"server" mapstructure:"server"`
	Batch         BatchConfig  `yaml:"batch" mapstructure:"batch"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	Backend  string        `yaml:"backend" mapstructure:"backend"`
	Size     int           `yaml:"size" mapstructure:"size"`
	RedisURL string        `yaml:"redis_url" mapstructure:"redis_url"`
	Prefix   string        `yaml:"prefix" mapstructure:"prefix"`
	TTL      time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}

type BatchConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		LogLevel: "info",
		// 2^^5 needs 65537 bits; anything past a gigabit is refused.
		MaxResultBits: 1 << 30,
		MaxInputSize:  4096,
		Cache: CacheConfig{
			Backend: CacheMemory,
			Size:    256,
			Prefix:  "tetrator:result:",
		},
		Server: ServerConfig{Addr: ":8080"},
		Batch:  BatchConfig{Workers: 4},
	}
}

// Load reads the YAML file at path over the defaults, then applies environment overrides.
// A missing file is not an error when path is DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var raw map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if err := decode(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
		// No config file: defaults only.
	default:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	if err := decode(envOverrides(os.Environ()), &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment override: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be fixed up silently.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache backend %q requires cache.redis_url", CacheRedis)
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	return nil
}

// decode merges raw onto cfg; keys absent from raw keep their current value.
func decode(raw map[string]any, cfg *Config) error {
	if len(raw) == 0 {
		return nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// envOverrides maps TETRATOR_* variables onto config keys.
// Nested keys use a double underscore: TETRATOR_CACHE__REDIS_URL -> cache.redis_url.
func envOverrides(environ []string) map[string]any {
	out := map[string]any{}
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		path := strings.Split(strings.ToLower(strings.TrimPrefix(name, EnvPrefix)), "__")
		if !knownKey(path) {
			continue
		}
		node := out
		for _, part := range path[:len(path)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[part] = child
			}
			node = child
		}
		node[path[len(path)-1]] = value
	}
	return out
}

var knownKeys = map[string]bool{
	"log_level":       true,
	"max_result_bits": true,
	"max_input_size":  true,
	"cache.backend":   true,
	"cache.size":      true,
	"cache.redis_url": true,
	"cache.prefix":    true,
	"cache.ttl":       true,
	"server.addr":     true,
	"batch.workers":   true,
}

// knownKey filters unrelated TETRATOR_* variables so they do not trip ErrorUnused.
func knownKey(path []string) bool {
	return knownKeys[strings.Join(path, ".")]
}
