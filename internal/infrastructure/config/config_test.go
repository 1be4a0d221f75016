package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techchallenge/fastfood-identity/internal/core/domain"
)

func validEnv() map[string]string {
	return map[string]string{
		"SECURITY_KEY":           "k1",
		"JWT_KEY":                "signing-key",
		"JWT_ISSUER":             "TestIssuer",
		"JWT_AUDIENCE":           "TestAudience",
		"JWT_EXPIRATION_MINUTES": "60",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogPretty)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.True(t, cfg.Store.Migrate)
	assert.Empty(t, cfg.Store.DatabaseURL)
	assert.Equal(t, "fastfood", cfg.Mongo.Database)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 10, cfg.Throttle.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.Throttle.Window)
	assert.False(t, cfg.Throttle.TrustProxy)
	assert.False(t, cfg.RedisConfig().Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	env := validEnv()
	env["STORE_DRIVER"] = "mongo"
	env["MONGO_URI"] = "mongodb://localhost:27017"
	env["REDIS_ADDR"] = "localhost:6379"
	env["LOGIN_WINDOW"] = "30s"
	env["DB_MIGRATE"] = "false"
	env["TRUST_PROXY"] = "true"

	cfg, err := load(context.Background(), envconfig.MapLookuper(env))
	require.NoError(t, err)

	dbCfg := cfg.DBConfig()
	assert.Equal(t, "mongo", dbCfg.Driver)
	assert.Equal(t, "mongodb://localhost:27017", dbCfg.MongoURI)
	assert.False(t, dbCfg.Migrate)
	assert.True(t, cfg.RedisConfig().Enabled())
	assert.Equal(t, 30*time.Second, cfg.Throttle.Window)
	assert.True(t, cfg.Throttle.TrustProxy)
}

func TestConfig_AuthConfig(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(validEnv()))
	require.NoError(t, err)

	auth, err := cfg.AuthConfig()
	require.NoError(t, err)
	assert.Equal(t, domain.AuthConfig{
		HashSecret:        "k1",
		SigningKey:        "signing-key",
		Issuer:            "TestIssuer",
		Audience:          "TestAudience",
		ExpirationMinutes: 60,
	}, auth)
}

func TestConfig_AuthConfig_Errors(t *testing.T) {
	cases := map[string]func(map[string]string){
		"missing expiration":   func(env map[string]string) { delete(env, "JWT_EXPIRATION_MINUTES") },
		"malformed expiration": func(env map[string]string) { env["JWT_EXPIRATION_MINUTES"] = "sixty" },
		"zero expiration":      func(env map[string]string) { env["JWT_EXPIRATION_MINUTES"] = "0" },
		"missing security key": func(env map[string]string) { delete(env, "SECURITY_KEY") },
		"missing signing key":  func(env map[string]string) { delete(env, "JWT_KEY") },
		"missing issuer":       func(env map[string]string) { delete(env, "JWT_ISSUER") },
		"missing audience":     func(env map[string]string) { delete(env, "JWT_AUDIENCE") },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			env := validEnv()
			mutate(env)
			cfg, err := load(context.Background(), envconfig.MapLookuper(env))
			require.NoError(t, err)

			_, err = cfg.AuthConfig()
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FASTFOOD_DOTENV_PROBE=loaded\n"), 0o600))
	t.Setenv("FASTFOOD_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("FASTFOOD_DOTENV_PROBE"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("FASTFOOD_DOTENV_PROBE"))
}
