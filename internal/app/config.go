package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/yungbote/coursebridge-backend/internal/data/db"
)

type Config struct {
	Port    string `mapstructure:"PORT"`
	LogMode string `mapstructure:"LOG_MODE"`

	DBDriver         string `mapstructure:"DB_DRIVER"`
	SQLitePath       string `mapstructure:"SQLITE_PATH"`
	PostgresHost     string `mapstructure:"POSTGRES_HOST"`
	PostgresPort     string `mapstructure:"POSTGRES_PORT"`
	PostgresUser     string `mapstructure:"POSTGRES_USER"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresName     string `mapstructure:"POSTGRES_NAME"`
	PostgresSSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	DBMaxOpenConns   int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns   int    `mapstructure:"DB_MAX_IDLE_CONNS"`

	RedisAddr             string `mapstructure:"REDIS_ADDR"`
	RedisPassword         string `mapstructure:"REDIS_PASSWORD"`
	RedisDB               int    `mapstructure:"REDIS_DB"`
	CourseCacheTTLSeconds int    `mapstructure:"COURSE_CACHE_TTL_SECONDS"`

	MetricsEnabled bool   `mapstructure:"METRICS_ENABLED"`
	OtelEnabled    bool   `mapstructure:"OTEL_ENABLED"`
	ServiceName    string `mapstructure:"SERVICE_NAME"`
	Environment    string `mapstructure:"APP_ENV"`
	Version        string `mapstructure:"APP_VERSION"`

	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var configDefaults = map[string]any{
	"PORT":                     "8080",
	"LOG_MODE":                 "development",
	"DB_DRIVER":                "postgres",
	"SQLITE_PATH":              "",
	"POSTGRES_HOST":            "localhost",
	"POSTGRES_PORT":            "5432",
	"POSTGRES_USER":            "postgres",
	"POSTGRES_PASSWORD":        "",
	"POSTGRES_NAME":            "coursebridge",
	"POSTGRES_SSLMODE":         "disable",
	"DB_MAX_OPEN_CONNS":        25,
	"DB_MAX_IDLE_CONNS":        10,
	"REDIS_ADDR":               "",
	"REDIS_PASSWORD":           "",
	"REDIS_DB":                 0,
	"COURSE_CACHE_TTL_SECONDS": 600,
	"METRICS_ENABLED":          true,
	"OTEL_ENABLED":             false,
	"SERVICE_NAME":             "coursebridge-backend",
	"APP_ENV":                  "development",
	"APP_VERSION":              "dev",
	"CORS_ALLOWED_ORIGINS":     "",
}

// LoadConfig reads the process environment, a .env file in the working directory and an
// optional app.env in path. Real environment variables win over both files.
func LoadConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	if strings.TrimSpace(path) != "" {
		v.AddConfigPath(filepath.Clean(path))
	}
	for key, val := range configDefaults {
		v.SetDefault(key, val)
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read app.env: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.CourseCacheTTLSeconds < 0 {
		return fmt.Errorf("COURSE_CACHE_TTL_SECONDS must be >= 0")
	}
	return nil
}

func (c Config) Addr() string {
	port := strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

func (c Config) Postgres() db.PostgresConfig {
	return db.PostgresConfig{
		Host:         c.PostgresHost,
		Port:         c.PostgresPort,
		User:         c.PostgresUser,
		Password:     c.PostgresPassword,
		Name:         c.PostgresName,
		SSLMode:      c.PostgresSSLMode,
		MaxOpenConns: c.DBMaxOpenConns,
		MaxIdleConns: c.DBMaxIdleConns,
	}
}

func (c Config) CourseCacheTTL() time.Duration {
	return time.Duration(c.CourseCacheTTLSeconds) * time.Second
}

func (c Config) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
