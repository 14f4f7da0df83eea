// Package server initializes and runs the API server. It connects the
// storage backends, applies schema migrations, wires the HTTP routes
// and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sangamlabs/sangam/internal/logging"
	"github.com/sangamlabs/sangam/internal/server/auth"
	"github.com/sangamlabs/sangam/internal/server/config"
	"github.com/sangamlabs/sangam/internal/server/httpapi"
	"github.com/sangamlabs/sangam/internal/server/persistence"
	chatrepo "github.com/sangamlabs/sangam/internal/server/repositories/chat"
	interestrepo "github.com/sangamlabs/sangam/internal/server/repositories/interests"
	userrepo "github.com/sangamlabs/sangam/internal/server/repositories/users"
	"github.com/sangamlabs/sangam/internal/server/services"
)

type App struct {
	config *config.Config
	logger *zap.Logger
	fiber  *fiber.App
	pg     *persistence.Postgres
	redis  *persistence.Redis
}

func NewApp(cfg *config.Config) (*App, error) {
	logger, err := logging.NewZap(cfg.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	ctx := context.Background()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, cfg.Postgres, logger); err != nil {
			return nil, err
		}
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rdb := persistence.NewRedis(cfg.Redis, logger)

	users := userrepo.NewPostgresRepository(pg.Pool)
	chats := chatrepo.NewPostgresRepository(pg.Pool)
	interests := interestrepo.NewPostgresRepository(pg.Pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())

	userService := services.NewUserService(users, tokens, cfg)
	chatService := services.NewChatService(chats, users)
	interestService := services.NewInterestService(interests, users, rdb.Client, cfg, logging.NewZapLogger(logger))
	mediaService := services.NewMediaService(users, cfg)
	deviceService := services.NewDeviceService(rdb.Client)

	fiberApp := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})

	httpapi.RegisterMiddlewares(fiberApp, logger, cfg.App.RequestTimeout())
	httpapi.RegisterRoutes(fiberApp, httpapi.RouteConfig{
		Health:         httpapi.NewHealthHandler(rdb),
		Users:          httpapi.NewUsersHandler(userService),
		Chat:           httpapi.NewChatHandler(chatService),
		Interests:      httpapi.NewInterestsHandler(interestService),
		Media:          httpapi.NewMediaHandler(mediaService, deviceService),
		AuthMiddleware: auth.NewMiddleware(tokens),
	})

	return &App{config: cfg, logger: logger, fiber: fiberApp, pg: pg, redis: rdb}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info("starting app", zap.String("addr", app.config.App.Addr()))

	app.initSignalHandler(cancelFunc)

	go func() {
		if err := app.fiber.Listen(app.config.App.Addr()); err != nil {
			app.logger.Error("listen failed", zap.Error(err))
			cancelFunc()
		}
	}()

	<-ctx.Done()

	app.logger.Info("shutting down")
	if err := app.fiber.Shutdown(); err != nil {
		app.logger.Error("shutdown failed", zap.Error(err))
	}
	app.pg.Close()
	app.redis.Close()
	_ = app.logger.Sync()
}
