// Package container wires the application together with Uber FX.
package container

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	accountapp "github.com/mealforge/mealforge/internal/application/account"
	historyapp "github.com/mealforge/mealforge/internal/application/history"
	recipeapp "github.com/mealforge/mealforge/internal/application/recipe"
	"github.com/mealforge/mealforge/internal/infrastructure/ai/gemini"
	"github.com/mealforge/mealforge/internal/infrastructure/cache"
	"github.com/mealforge/mealforge/internal/infrastructure/config"
	"github.com/mealforge/mealforge/internal/infrastructure/http/apiserver"
	"github.com/mealforge/mealforge/internal/infrastructure/images"
	"github.com/mealforge/mealforge/internal/infrastructure/persistence/mongodb"
	"github.com/mealforge/mealforge/internal/infrastructure/security"
	"github.com/mealforge/mealforge/internal/ports/inbound"
	"github.com/mealforge/mealforge/internal/ports/outbound"
	"github.com/mealforge/mealforge/pkg/logger"
)

// Module provides every dependency of the API server.
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatastoreModule,
	RepositoryModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.IsDevelopment(),
		})
	},
)

var DatastoreModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*mongo.Database, error) {
		return mongodb.Connect(context.Background(), cfg, log)
	},
	func(cfg *config.Config, log *zap.Logger) (*redis.Client, error) {
		return cache.NewRedisClient(context.Background(), &cfg.Redis, log)
	},
)

var RepositoryModule = fx.Provide(
	fx.Annotate(mongodb.NewCredentialRepository, fx.As(new(outbound.CredentialRepository))),
	fx.Annotate(mongodb.NewRecipeRepository, fx.As(new(outbound.RecipeRepository))),
	fx.Annotate(mongodb.NewHistoryRepository, fx.As(new(outbound.HistoryRepository))),
	fx.Annotate(cache.NewRecipeCache, fx.As(new(outbound.RecipeCache))),
)

var ServiceModule = fx.Provide(
	security.NewTokenService,
	fx.Annotate(gemini.NewClient, fx.As(new(outbound.RecipeGenerator))),
	func(cfg *config.Config, log *zap.Logger) outbound.ImageResolver {
		return images.NewChain(log,
			images.NewGoogleSearch(cfg.Images.GoogleKey, cfg.Images.GoogleCX, cfg.Images.GoogleBaseURL),
			images.NewUnsplash(cfg.Images.UnsplashKey, cfg.Images.UnsplashBaseURL),
			images.NewPlaceholder(),
		)
	},
	fx.Annotate(accountapp.NewService, fx.As(new(inbound.AccountService))),
	fx.Annotate(recipeapp.NewService, fx.As(new(inbound.RecipeService))),
	fx.Annotate(historyapp.NewService, fx.As(new(inbound.HistoryService))),
)

var HTTPModule = fx.Provide(
	apiserver.New,
)

// LifecycleModule starts the HTTP server and closes external
// connections on shutdown.
var LifecycleModule = fx.Invoke(
	func(lc fx.Lifecycle, srv *apiserver.Server, db *mongo.Database, redisClient *redis.Client, log *zap.Logger) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				go func() {
					if err := srv.Start(); err != nil {
						log.Error("server stopped", zap.Error(err))
					}
				}()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				if err := srv.Shutdown(ctx); err != nil {
					log.Warn("server shutdown failed", zap.Error(err))
				}
				if redisClient != nil {
					if err := redisClient.Close(); err != nil {
						log.Warn("redis close failed", zap.Error(err))
					}
				}
				return mongodb.Disconnect(ctx, db)
			},
		})
	},
)
