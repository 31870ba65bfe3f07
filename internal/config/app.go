package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c HTTPClient) Timeout() time.Duration {
	return secondsOr(c.TimeoutSeconds, 10*time.Second)
}

type ExchangeRateAPI struct {
	BaseURL string `mapstructure:"base_url"`
	Base    string `mapstructure:"base"`
}

type Scheduler struct {
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec"`
}

func (s Scheduler) RefreshInterval() time.Duration {
	return secondsOr(s.RefreshIntervalSec, 5*time.Minute)
}

type Rates struct {
	FallbackEnabled bool `mapstructure:"fallback_enabled"`
}

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Locks struct {
	Store            string `mapstructure:"store"`
	OpTimeoutSeconds int    `mapstructure:"op_timeout_seconds"`
	CacheTTLSeconds  int    `mapstructure:"cache_ttl_seconds"`
	CacheMaxItems    int64  `mapstructure:"cache_max_items"`
}

func (l Locks) OpTimeout() time.Duration {
	return secondsOr(l.OpTimeoutSeconds, 5*time.Second)
}

func (l Locks) CacheTTL() time.Duration {
	return secondsOr(l.CacheTTLSeconds, time.Minute)
}

type Auth struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	DbServer        DbServer        `mapstructure:"db_server"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	Scheduler       Scheduler       `mapstructure:"scheduler"`
	Rates           Rates           `mapstructure:"rates"`
	Locks           Locks           `mapstructure:"locks"`
	Auth            Auth            `mapstructure:"auth"`
	Logging         Logging         `mapstructure:"logging"`
}

var (
	ErrJWTSecretRequired = errors.New("auth.jwt_secret is required")
	ErrUnknownStore      = errors.New("locks.store must be postgres or memory")
)

func Init() (*AppConfig, error) {
	return Load("config.yaml")
}

// Load reads path and the environment. A missing .env is fine, secrets may
// come from the real environment.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("exchange_rate_api.base_url", "https://api.exchangerate-api.com/v4/latest")
	v.SetDefault("exchange_rate_api.base", "USD")
	v.SetDefault("scheduler.refresh_interval_sec", 300)
	v.SetDefault("rates.fallback_enabled", true)
	v.SetDefault("locks.store", StorePostgres)
	v.SetDefault("locks.op_timeout_seconds", 5)
	v.SetDefault("locks.cache_ttl_seconds", 60)
	v.SetDefault("locks.cache_max_items", 10000)
	v.SetDefault("logging.level", "info")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("exchange_rate_api.base_url", "EXCHANGE_RATE_API_BASE_URL")
	_ = v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("locks.store", "LOCKS_STORE")

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, ErrJWTSecretRequired
	}
	switch cfg.Locks.Store {
	case StorePostgres, StoreMemory:
	default:
		return nil, ErrUnknownStore
	}

	return &cfg, nil
}

func secondsOr(sec int, def time.Duration) time.Duration {
	if sec <= 0 {
		return def
	}
	return time.Duration(sec) * time.Second
}
