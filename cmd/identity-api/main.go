package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/techchallenge/fastfood-identity/internal/api"
	"github.com/techchallenge/fastfood-identity/internal/core/domain"
	"github.com/techchallenge/fastfood-identity/internal/core/ports"
	"github.com/techchallenge/fastfood-identity/internal/core/service"
	"github.com/techchallenge/fastfood-identity/internal/infrastructure/config"
	"github.com/techchallenge/fastfood-identity/internal/infrastructure/db"
	redisstore "github.com/techchallenge/fastfood-identity/internal/infrastructure/db/redis"
	infrahttp "github.com/techchallenge/fastfood-identity/internal/infrastructure/http"
	"github.com/techchallenge/fastfood-identity/pkg/logger"
)

// @title                       Fast-food Identity API
// @version                     1.0
// @description                 Authentication and registration for staff and customers.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		event := logger.Get().Fatal().Err(err)
		if errors.Is(err, domain.ErrConfiguration) {
			event = event.Str("hint", "check SECURITY_KEY and the JWT_* settings")
		}
		event.Msg("identity api stopped")
	}
}

func run(ctx context.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "identity-api",
		Env:     cfg.Env,
	})

	// Authentication cannot work without its secrets; refuse to start.
	authCfg, err := cfg.AuthConfig()
	if err != nil {
		return err
	}

	handle, err := db.Open(ctx, cfg.DBConfig(), log)
	if err != nil {
		return err
	}
	defer func() {
		if err := handle.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("close identity store")
		}
	}()

	checks := map[string]ports.Pinger{}
	if p, ok := handle.Store.(ports.Pinger); ok {
		checks["store"] = p
	}

	var limiter ports.LoginLimiter
	if redisCfg := cfg.RedisConfig(); redisCfg.Enabled() {
		client, err := redisstore.Connect(ctx, redisCfg)
		if err != nil {
			log.Warn().Err(err).Msg("login throttle disabled: redis unreachable")
		} else {
			defer client.Close()
			l := redisstore.NewLoginLimiter(client, cfg.Throttle.MaxAttempts, cfg.Throttle.Window)
			limiter = l
			checks["redis"] = l
			log.Info().Str("addr", redisCfg.Addr).Msg("login throttle enabled")
		}
	}

	authService := service.NewAuthService(handle.Store, authCfg, log.With().Str("component", "auth").Logger())

	e := api.NewRouter(api.Deps{
		AuthService: authService,
		Verifier:    authService.Tokens(),
		Limiter:     limiter,
		Checks:      checks,
		TrustProxy:  cfg.Throttle.TrustProxy,
		Log:         log,
	})

	return infrahttp.Serve(ctx, e, ":"+cfg.Port, log)
}
