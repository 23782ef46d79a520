package app

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mx-space/showroom/internal/config"
	"github.com/mx-space/showroom/internal/middleware"
)

func setGinMode(cfg *config.AppConfig) {
	switch {
	case cfg.Env == "test":
		gin.SetMode(gin.TestMode)
	case cfg.IsDev():
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}

// corsMiddleware allows every origin with credentials unless allowed_origins
// narrows it down.
func corsMiddleware(cfg *config.AppConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.ShowroomCacheHeader, middleware.RequestIDHeader},
		AllowCredentials: true,
		AllowOriginFunc:  func(string) bool { return true },
	}
	if allowList := cfg.AllowedOrigins; len(allowList) > 0 {
		corsConfig.AllowOriginFunc = func(origin string) bool {
			return originAllowed(allowList, origin)
		}
	}
	return cors.New(corsConfig)
}

// originAllowed matches the origin's host[:port] against entries such as
// "shop.example.com", "*.example.com", "localhost:*" or "*".
func originAllowed(allowList []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	for _, entry := range allowList {
		switch {
		case entry == "*", entry == host:
			return true
		case strings.HasPrefix(entry, "*.") && strings.HasSuffix(host, entry[1:]):
			return true
		case strings.HasSuffix(entry, ":*") && strings.HasPrefix(host, strings.TrimSuffix(entry, "*")):
			return true
		}
	}
	return false
}
