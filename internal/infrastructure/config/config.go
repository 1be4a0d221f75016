package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
	"github.com/techchallenge/fastfood-identity/internal/infrastructure/db"
	"github.com/techchallenge/fastfood-identity/internal/infrastructure/db/redis"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth     AuthConfig
	Store    StoreConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
}

// AuthConfig holds the raw token and hashing settings. The expiration stays a
// string so a malformed value surfaces as a configuration error.
type AuthConfig struct {
	SecurityKey       string `env:"SECURITY_KEY"`
	JWTKey            string `env:"JWT_KEY"`
	JWTIssuer         string `env:"JWT_ISSUER"`
	JWTAudience       string `env:"JWT_AUDIENCE"`
	ExpirationMinutes string `env:"JWT_EXPIRATION_MINUTES"`
}

type StoreConfig struct {
	Driver      string `env:"STORE_DRIVER, default=postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	Migrate     bool   `env:"DB_MIGRATE,   default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB,  default=fastfood"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type ThrottleConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=10"`
	Window      time.Duration `env:"LOGIN_WINDOW,       default=1m"`
	TrustProxy  bool          `env:"TRUST_PROXY,        default=false"`
}

// LoadDotEnv reads a .env file into the process environment when one exists.
// Variables already set are not overridden.
func LoadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil
		}
		return fmt.Errorf("load .env file: %w", err)
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// AuthConfig converts the raw settings into the domain configuration and
// validates it. Any missing or malformed value is domain.ErrConfiguration.
func (c *Config) AuthConfig() (domain.AuthConfig, error) {
	raw := strings.TrimSpace(c.Auth.ExpirationMinutes)
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		return domain.AuthConfig{}, fmt.Errorf("%w: JWT_EXPIRATION_MINUTES %q is not an integer", domain.ErrConfiguration, raw)
	}

	cfg := domain.AuthConfig{
		HashSecret:        c.Auth.SecurityKey,
		SigningKey:        c.Auth.JWTKey,
		Issuer:            c.Auth.JWTIssuer,
		Audience:          c.Auth.JWTAudience,
		ExpirationMinutes: minutes,
	}
	if err := cfg.Validate(); err != nil {
		return domain.AuthConfig{}, err
	}
	return cfg, nil
}

func (c *Config) DBConfig() db.Config {
	return db.Config{
		Driver:        c.Store.Driver,
		PostgresURL:   c.Store.DatabaseURL,
		Migrate:       c.Store.Migrate,
		MongoURI:      c.Mongo.URI,
		MongoDatabase: c.Mongo.Database,
	}
}

func (c *Config) RedisConfig() redis.Config {
	return redis.Config{Addr: c.Redis.Addr, DB: c.Redis.DB}
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
