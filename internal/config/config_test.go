package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "default", cfg.Job.Name)
	assert.Equal(t, "priority", cfg.Job.Strategy)
	assert.False(t, cfg.Job.Persist)
	assert.Empty(t, cfg.Journal.DSN)
	assert.True(t, cfg.Logging.Development)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frontier.yaml")
	content := []byte(`
server:
  port: 9090
redis:
  addr: redis.internal:6379
  db: 2
job:
  name: books
  strategy: fifo
  persist: true
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "books", cfg.Job.Name)
	assert.Equal(t, "fifo", cfg.Job.Strategy)
	assert.True(t, cfg.Job.Persist)
}

func TestLoad_EnvOnlyKeys(t *testing.T) {
	t.Setenv("FRONTIER_REDIS_ADDR", "redis.prod:6379")
	t.Setenv("FRONTIER_REDIS_PASSWORD", "s3cret")
	t.Setenv("FRONTIER_JOURNAL_DSN", "postgres://frontier@db/frontier")
	t.Setenv("FRONTIER_JOB_NAME", "env-job")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "redis.prod:6379", cfg.Redis.Addr)
	assert.Equal(t, "s3cret", cfg.Redis.Password, "password must load from env without a config file")
	assert.Equal(t, "postgres://frontier@db/frontier", cfg.Journal.DSN, "journal dsn must load from env without a config file")
	assert.Equal(t, "env-job", cfg.Job.Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server: ServerConfig{Port: 8080},
			Redis:  RedisConfig{Addr: "localhost:6379"},
			Job:    JobConfig{Name: "default", Strategy: "fifo"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing redis addr", func(t *testing.T) {
		cfg := base()
		cfg.Redis.Addr = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing job name", func(t *testing.T) {
		cfg := base()
		cfg.Job.Name = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad strategy", func(t *testing.T) {
		cfg := base()
		cfg.Job.Strategy = "round-robin"
		assert.Error(t, cfg.Validate())
	})
}

func TestJobKeys(t *testing.T) {
	job := JobConfig{Name: "books"}
	assert.Equal(t, "frontier:books:requests", job.QueueKey())
	assert.Equal(t, "frontier:books:dupefilter", job.DupeFilterKey())
}
