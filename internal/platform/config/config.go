package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME" env-default:"doodle"`
	HTTPPort    string `yaml:"http_port" env:"HTTP_PORT" env-default:"8080"`
	Timezone    string `yaml:"timezone" env:"TIMEZONE" env-default:"UTC"`

	Storage StorageConfig `yaml:"storage"`
	Redis   RedisConfig   `yaml:"redis"`
	Log     LogConfig     `yaml:"log"`

	EnableVoteEvents bool `yaml:"enable_vote_events" env:"ENABLE_VOTE_EVENTS" env-default:"false"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

type StorageConfig struct {
	Backend     string `yaml:"backend" env:"BLOB_BACKEND" env-default:"file"`
	FileDir     string `yaml:"file_dir" env:"FILE_STORE_DIR" env-default:"data/meta"`
	PostgresDSN string `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
	SQLitePath  string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"doodle.db"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password  string `yaml:"password" env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"doodle:voteset:"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Load reads the YAML file named by CONFIG_PATH when set; environment
// variables override file values either way.
func Load() (Config, error) {
	var cfg Config
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config from env: %w", err)
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	switch cfg.Storage.Backend {
	case BackendMemory, BackendFile, BackendPostgres, BackendSQLite, BackendRedis:
	default:
		return Config{}, fmt.Errorf("unknown BLOB_BACKEND %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Backend == BackendPostgres && strings.TrimSpace(cfg.Storage.PostgresDSN) == "" {
		return Config{}, fmt.Errorf("POSTGRES_DSN is required for the postgres backend")
	}
	return cfg, nil
}
