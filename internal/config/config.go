// Package config loads and validates frontier configuration via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/JakeFAU/crawl-frontier/internal/queue"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Job     JobConfig     `mapstructure:"job"`
	Journal JournalConfig `mapstructure:"journal"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// RedisConfig locates the shared store every worker coordinates through.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JobConfig identifies the logical crawl and its frontier behavior. Name is
// used verbatim in the collection key patterns, so independent jobs sharing
// one Redis instance never collide.
type JobConfig struct {
	Name     string `mapstructure:"name"`
	Strategy string `mapstructure:"strategy"`
	Persist  bool   `mapstructure:"persist"`
}

// JournalConfig controls the optional Postgres session journal. An empty
// DSN disables journaling.
type JournalConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// QueueKey returns the Redis key of the job's request queue.
func (j JobConfig) QueueKey() string {
	return fmt.Sprintf("frontier:%s:requests", j.Name)
}

// DupeFilterKey returns the Redis key of the job's seen-set.
func (j JobConfig) DupeFilterKey() string {
	return fmt.Sprintf("frontier:%s:dupefilter", j.Name)
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FRONTIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("job.name", "default")
	v.SetDefault("job.strategy", queue.StrategyPriority)
	v.SetDefault("job.persist", false)
	// Empty defaults keep these keys visible to AutomaticEnv; without
	// them Unmarshal never consults FRONTIER_REDIS_PASSWORD or
	// FRONTIER_JOURNAL_DSN when no config file mentions the keys.
	v.SetDefault("journal.dsn", "")
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr must be set")
	}
	if c.Job.Name == "" {
		return fmt.Errorf("job.name must be set")
	}
	switch c.Job.Strategy {
	case queue.StrategyFIFO, queue.StrategyLIFO, queue.StrategyPriority:
	default:
		return fmt.Errorf("job.strategy must be one of fifo, lifo, priority")
	}
	return nil
}
