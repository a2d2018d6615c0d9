package config

import (
	"time"

	"github.com/spf13/viper"

	pkgconfig "github.com/Kazeyhaya/orkcord/pkg/config"
)

type Config struct {
	Server    ServerConfig
	WebSocket WebSocketConfig
	History   HistoryConfig
	Feed      FeedConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WebSocketConfig struct {
	PingInterval   time.Duration `mapstructure:"ping_interval"`
	PongWait       time.Duration `mapstructure:"pong_wait"`
	WriteWait      time.Duration `mapstructure:"write_wait"`
	MaxMessageSize int64         `mapstructure:"max_message_size"`
	SendBuffer     int           `mapstructure:"send_buffer"`
}

// HistoryConfig selects the channel history backend. "memory" keeps a bounded
// in-process log; "redis" keeps the same bounded window in Redis so it
// survives a restart.
type HistoryConfig struct {
	Backend  string
	Capacity int
}

type FeedConfig struct {
	DefaultLimit int `mapstructure:"default_limit"`
	MaxLimit     int `mapstructure:"max_limit"`
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string `mapstructure:"db_name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	FilePath        string `mapstructure:"file_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("websocket.ping_interval", 30*time.Second)
	v.SetDefault("websocket.pong_wait", 60*time.Second)
	v.SetDefault("websocket.write_wait", 10*time.Second)
	v.SetDefault("websocket.max_message_size", int64(4096))
	v.SetDefault("websocket.send_buffer", 256)

	v.SetDefault("history.backend", "memory")
	v.SetDefault("history.capacity", 100)

	v.SetDefault("feed.default_limit", 30)
	v.SetDefault("feed.max_limit", 100)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.file_path", "orkcord.db")

	v.SetDefault("redis.address", "localhost:6379")

	v.SetDefault("log.level", "info")
}
