package car

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/showroom/internal/middleware"
	"github.com/mx-space/showroom/internal/pkg/response"
)

// Handler handles car listing HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts car routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cars", h.list)
}

// list GET /api/cars
func (h *Handler) list(c *gin.Context) {
	cars, fallback := h.svc.List(c.Request.Context())
	if fallback {
		middleware.SkipCache(c)
	}
	response.OK(c, cars)
}
