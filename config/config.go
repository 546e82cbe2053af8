package config

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var conf atomic.Pointer[ServerConfig]

// Get returns the active configuration snapshot. Reloads publish a
// fresh snapshot rather than mutating the previous one, so a caller may
// hold the returned pointer for as long as it likes.
func Get() *ServerConfig {
	return conf.Load()
}

// ServerConfig is the top-level configuration for the gateway.
type ServerConfig struct {
	Bind      string           `mapstructure:"bind"`
	Port      int              `mapstructure:"port"`
	Redis     *RedisConfig     `mapstructure:"redis"`
	WebSocket *WebSocketConfig `mapstructure:"websocket"`
	LogConfig *LogConfig       `mapstructure:"logger"`
}

// RedisConfig describes the upstream Redis server and the connection
// pool sitting in front of it.
type RedisConfig struct {
	Addr             string   `mapstructure:"addr"`
	Password         string   `mapstructure:"password"`
	Database         int      `mapstructure:"database"`
	PoolCapacity     int      `mapstructure:"pool_capacity"`
	ConnectTimeoutMS int      `mapstructure:"connect_timeout_ms"`
	ReadTimeoutMS    int      `mapstructure:"read_timeout_ms"`
	WriteTimeoutMS   int      `mapstructure:"write_timeout_ms"`
	BorrowTimeoutMS  int      `mapstructure:"borrow_timeout_ms"`
	ReadReplicaAddrs []string `mapstructure:"read_replica_addrs"`
}

// WebSocketConfig bounds the command dispatcher behind /ws.
type WebSocketConfig struct {
	WorkerPoolSize  int `mapstructure:"worker_pool_size"`
	ReadBufferSize  int `mapstructure:"read_buffer_size"`
	WriteBufferSize int `mapstructure:"write_buffer_size"`
}

// LogConfig configures the zap logger and its file rotation.
type LogConfig struct {
	Mode       string `mapstructure:"mode"`
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// Init loads the configuration file, applies defaults and environment
// overrides (REDISGATE_*), and publishes a new snapshot whenever the
// file changes on disk.
func Init(configFile string) error {
	setDefaults()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("redisgate")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine, the defaults stand on their own.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if err := reload(); err != nil {
		return err
	}

	viper.WatchConfig()
	viper.OnConfigChange(func(in fsnotify.Event) {
		_ = reload()
	})

	return nil
}

// reload unmarshals viper's current state into a fresh struct and swaps
// it in. Snapshots handed out earlier are never written to again, so
// goroutines reading them race with nothing during a live reload.
func reload() error {
	next := new(ServerConfig)
	if err := viper.Unmarshal(next); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	conf.Store(next)
	return nil
}

func setDefaults() {
	viper.SetDefault("bind", "0.0.0.0")
	viper.SetDefault("port", 8080)

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.database", 0)
	viper.SetDefault("redis.pool_capacity", 10)
	viper.SetDefault("redis.connect_timeout_ms", 5000)
	viper.SetDefault("redis.read_timeout_ms", 5000)
	viper.SetDefault("redis.write_timeout_ms", 5000)
	viper.SetDefault("redis.borrow_timeout_ms", 0)

	viper.SetDefault("websocket.worker_pool_size", 64)
	viper.SetDefault("websocket.read_buffer_size", 1024)
	viper.SetDefault("websocket.write_buffer_size", 1024)

	viper.SetDefault("logger.mode", "dev")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.filename", "redisgate.log")
	viper.SetDefault("logger.max_size", 100)
	viper.SetDefault("logger.max_age", 30)
	viper.SetDefault("logger.max_backups", 7)
}

// Address returns the host:port pair the HTTP server binds to.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// ConnectTimeout returns the dial timeout as a duration.
func (c *RedisConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutMS) * time.Millisecond
}

// ReadTimeout returns the per-read timeout as a duration.
func (c *RedisConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutMS) * time.Millisecond
}

// WriteTimeout returns the per-write timeout as a duration.
func (c *RedisConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutMS) * time.Millisecond
}

// BorrowTimeout returns the pool borrow timeout, or nil when callers
// should block indefinitely for a connection.
func (c *RedisConfig) BorrowTimeout() *time.Duration {
	if c.BorrowTimeoutMS <= 0 {
		return nil
	}

	timeout := time.Duration(c.BorrowTimeoutMS) * time.Millisecond
	return &timeout
}
