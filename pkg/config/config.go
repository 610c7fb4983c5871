package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App         AppConfig
	Redis       RedisConfig
	Session     SessionConfig
	Collections CollectionsConfig
	Upstream    UpstreamConfig
	JWT         JWTConfig
	AuthLimit   AuthRateLimitConfig
	CORS        CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHOPFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPFRONT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SHOPFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
	ConnectTries int           `envconfig:"SHOPFRONT_REDIS_CONNECT_TRIES" default:"5"`
}

type SessionConfig struct {
	TTL time.Duration `envconfig:"SHOPFRONT_SESSION_TTL" default:"720h"`
}

type CollectionsConfig struct {
	RecentlyViewedCap int `envconfig:"SHOPFRONT_RECENTLY_VIEWED_CAP" default:"10"`
}

type UpstreamConfig struct {
	BaseURL string        `envconfig:"SHOPFRONT_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"SHOPFRONT_UPSTREAM_TIMEOUT" default:"10s"`
}

func (u UpstreamConfig) validate() error {
	if !strings.HasPrefix(u.BaseURL, "http://") && !strings.HasPrefix(u.BaseURL, "https://") {
		return fmt.Errorf("%s must be an absolute http(s) url", EnvUpstreamURL)
	}
	return nil
}

type JWTConfig struct {
	Secret string `envconfig:"SHOPFRONT_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"SHOPFRONT_JWT_ISSUER" required:"true"`
}

type AuthRateLimitConfig struct {
	LoginWindow time.Duration `envconfig:"SHOPFRONT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginLimit  int           `envconfig:"SHOPFRONT_AUTH_RATE_LIMIT_LOGIN_LIMIT" default:"10"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHOPFRONT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}
