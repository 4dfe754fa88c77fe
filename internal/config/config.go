package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/kumarlokesh/detective-quest/internal/game"
)

// EnvPrefix prefixes every environment override, e.g. DETECTIVE_GAME_TIER
const EnvPrefix = "DETECTIVE"

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
}

// GameConfig holds game related configuration
type GameConfig struct {
	Tier     string `mapstructure:"tier"`
	CaseFile string `mapstructure:"case_file"`
	MinClues int    `mapstructure:"min_clues"`
}

// LogConfig holds logging related configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds HTTP server related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SessionConfig holds session store related configuration
type SessionConfig struct {
	Backend  string         `mapstructure:"backend"`
	TTL      time.Duration  `mapstructure:"ttl"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Memcache MemcacheConfig `mapstructure:"memcache"`
	File     FileConfig     `mapstructure:"file"`
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	DB       int    `mapstructure:"db"`
	Password string `mapstructure:"password"`
}

// Addr returns the redis address
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// MemcacheConfig holds memcached connection settings
type MemcacheConfig struct {
	Servers []string `mapstructure:"servers"`
}

// FileConfig holds settings for the journal backed session store
type FileConfig struct {
	Path string `mapstructure:"path"`
}

// Session store backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendMemcache = "memcache"
	BackendFile     = "file"
)

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("game.tier", string(game.TierMaster))
	v.SetDefault("game.case_file", "")
	v.SetDefault("game.min_clues", game.DefaultThreshold)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)

	// Session defaults
	v.SetDefault("session.backend", BackendMemory)
	v.SetDefault("session.ttl", "1h")
	v.SetDefault("session.redis.host", "localhost")
	v.SetDefault("session.redis.port", 6379)
	v.SetDefault("session.redis.db", 0)
	v.SetDefault("session.redis.password", "")
	v.SetDefault("session.memcache.servers", []string{"localhost:11211"})
	v.SetDefault("session.file.path", "data/sessions.journal")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := game.ParseTier(c.Game.Tier); err != nil {
		return fmt.Errorf("invalid game tier: %w", err)
	}
	if c.Game.MinClues < 1 {
		return fmt.Errorf("min_clues must be at least 1, got %d", c.Game.MinClues)
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Session.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Session.Redis.Host == "" {
			return fmt.Errorf("redis host is required")
		}
	case BackendMemcache:
		if len(c.Session.Memcache.Servers) == 0 {
			return fmt.Errorf("at least one memcache server is required")
		}
	case BackendFile:
		if c.Session.File.Path == "" {
			return fmt.Errorf("session journal path is required")
		}
	default:
		return fmt.Errorf("unknown session backend: %q", c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}

	return nil
}

// Tier returns the parsed game tier
func (c *Config) Tier() game.Tier {
	t, err := game.ParseTier(c.Game.Tier)
	if err != nil {
		return game.TierMaster
	}
	return t
}
