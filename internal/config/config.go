package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "KANBANFLOW"

type Config struct {
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBLogLevel string

	BlobBackend string
	RedisHost   string
	RedisPort   string
	RedisDB     int

	ListenAddr string
	GinMode    string

	LogLevel      string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_path", "kanbanflow.db")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "")
	v.SetDefault("db_user", "kanbanflow")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "kanbanflow")
	v.SetDefault("db_log_level", "warn")
	v.SetDefault("blob_backend", "database")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("listen_addr", "127.0.0.1:8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_max_size_mb", 10)
	v.SetDefault("log_max_backups", 3)
	v.SetDefault("log_max_age_days", 28)
}

// Load reads configuration from defaults, an optional config file and
// KANBANFLOW_* environment variables, in increasing order of precedence.
// An empty path falls back to KANBANFLOW_CONFIG.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		DBDriver:      strings.ToLower(v.GetString("db_driver")),
		DBPath:        v.GetString("db_path"),
		DBHost:        v.GetString("db_host"),
		DBPort:        v.GetString("db_port"),
		DBUser:        v.GetString("db_user"),
		DBPassword:    v.GetString("db_password"),
		DBName:        v.GetString("db_name"),
		DBLogLevel:    strings.ToLower(v.GetString("db_log_level")),
		BlobBackend:   strings.ToLower(v.GetString("blob_backend")),
		RedisHost:     v.GetString("redis_host"),
		RedisPort:     v.GetString("redis_port"),
		RedisDB:       v.GetInt("redis_db"),
		ListenAddr:    v.GetString("listen_addr"),
		GinMode:       v.GetString("gin_mode"),
		LogLevel:      strings.ToLower(v.GetString("log_level")),
		LogFile:       v.GetString("log_file"),
		LogMaxSizeMB:  v.GetInt("log_max_size_mb"),
		LogMaxBackups: v.GetInt("log_max_backups"),
		LogMaxAgeDays: v.GetInt("log_max_age_days"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no component can honor
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("db_path is required for the sqlite driver")
		}
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}

	switch c.BlobBackend {
	case "database", "redis":
	default:
		return fmt.Errorf("unsupported blob_backend %q", c.BlobBackend)
	}

	switch c.DBLogLevel {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("unsupported db_log_level %q", c.DBLogLevel)
	}
	return nil
}

// RedisAddr joins the redis host and port
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
