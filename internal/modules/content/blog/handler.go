package blog

import (
	"github.com/gin-gonic/gin"
	"github.com/mx-space/showroom/internal/middleware"
	"github.com/mx-space/showroom/internal/pkg/response"
)

// Handler handles blog HTTP requests.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/blogs", h.list)
}

// list GET /api/blogs
func (h *Handler) list(c *gin.Context) {
	posts, fallback := h.svc.List(c.Request.Context())
	if fallback {
		middleware.SkipCache(c)
	}
	response.OK(c, posts)
}
