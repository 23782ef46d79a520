package app

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/showroom/internal/config"
	"github.com/mx-space/showroom/internal/middleware"
	"github.com/mx-space/showroom/internal/modules/content/blog"
	"github.com/mx-space/showroom/internal/modules/content/car"
	"github.com/mx-space/showroom/internal/modules/system/core/health"
	"github.com/mx-space/showroom/internal/pkg/response"
)

const (
	apiPrefix     = "/api"
	bannerMessage = "Car Dealership API is running"
	helloMessage  = "Hello from the backend API!"
)

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{"message": bannerMessage})
	})

	healthOpts := health.Options{
		Store:   a.store,
		HasURL:  config.EnvPresent(config.EnvDatabaseURL),
		HasName: config.EnvPresent(config.EnvDatabaseName),
	}
	if a.cache != nil {
		healthOpts.Cache = a.cache
	}
	health.NewHandler(healthOpts, a.logger).RegisterRoutes(r)

	api := r.Group(apiPrefix)
	api.GET("/hello", func(c *gin.Context) {
		response.OK(c, gin.H{"message": helloMessage})
	})

	content := api.Group("")
	content.Use(middleware.HTTPCache(a.cache.Raw(), middleware.HTTPCacheOptions{
		TTL:       a.cfg.Cache.TTL,
		KeyPrefix: a.cfg.Cache.KeyPrefix,
		Disable:   a.cache == nil,
	}))
	car.NewHandler(car.NewService(a.store, a.cfg.Collections.Cars, a.logger)).RegisterRoutes(content)
	blog.NewHandler(blog.NewService(a.store, a.cfg.Collections.Blogs, a.logger)).RegisterRoutes(content)
}
