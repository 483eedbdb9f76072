// Package server initializes and runs the credential service. It validates
// configuration, selects the storage backend, wires the authentication
// service, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/credkeeper/credkeeper/internal/logging"
	"github.com/credkeeper/credkeeper/internal/server/config"
	"github.com/credkeeper/credkeeper/internal/server/httpapi"
	"github.com/credkeeper/credkeeper/internal/server/passwd"
	"github.com/credkeeper/credkeeper/internal/server/ratelimit"
	"github.com/credkeeper/credkeeper/internal/server/services"
	"github.com/credkeeper/credkeeper/internal/server/shared/db"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	authService *services.AuthService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	s := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(s)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	var rm db.RepositoryManager
	if cfg.DatabaseDSN != "" {
		var err error
		rm, err = db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	} else {
		logger.Warn(ctx, "no database DSN configured, using in-memory store")
		rm = db.NewInMemoryRepositoryManager()
	}

	var limiter ratelimit.Limiter = ratelimit.NoopLimiter{}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis config error: %w", err)
		}
		limiter = ratelimit.NewRedisLimiter(redis.NewClient(opts), cfg.LoginAttemptLimit, cfg.LoginAttemptWindow)
	}

	hasher, err := passwd.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	as := services.NewAuthService(rm, hasher, limiter, logger, cfg)

	return &App{config: cfg, logger: logger, authService: as}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s, err := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.authService)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
