package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/showroom/internal/config"
	"github.com/mx-space/showroom/internal/database"
	"github.com/mx-space/showroom/internal/middleware"
	pkgredis "github.com/mx-space/showroom/internal/pkg/redis"
	"github.com/mx-space/showroom/internal/pkg/response"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	store  database.Store
	cache  *pkgredis.Client
	logger *zap.Logger
}

// New initializes the application: store → optional Redis cache → routes.
// An unreachable store or cache never stops startup.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx := context.Background()
	store := database.Open(ctx, cfg.Store, logger)

	var cache *pkgredis.Client
	if cfg.Cache.Enable {
		rc, err := pkgredis.Connect(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.Warn("response cache disabled", zap.Error(err))
		} else {
			cache = rc
			if n, err := middleware.PurgeHTTPCache(ctx, rc.Raw(), cfg.Cache.KeyPrefix); err != nil {
				logger.Warn("purge stale cached responses failed", zap.Error(err))
			} else if n > 0 {
				logger.Info("purged stale cached responses", zap.Int64("keys", n))
			}
		}
	}

	return newApp(logger, cfg, store, cache), nil
}

func newApp(logger *zap.Logger, cfg *config.AppConfig, store database.Store, cache *pkgredis.Client) *App {
	setGinMode(cfg)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		response.InternalError(c, errors.New(http.StatusText(http.StatusInternalServerError)))
	}))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(corsMiddleware(cfg))

	a := &App{cfg: cfg, router: router, store: store, cache: cache, logger: logger}
	a.registerRoutes()
	return a
}

// Addr returns the listen address.
func (a *App) Addr() string { return a.cfg.Addr() }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown releases the store and cache connections.
func (a *App) Shutdown(ctx context.Context) {
	if err := a.store.Close(ctx); err != nil {
		a.logger.Warn("close document store", zap.Error(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("close redis", zap.Error(err))
	}
}
