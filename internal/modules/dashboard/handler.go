package dashboard

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wordpy/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, staffMW gin.HandlerFunc) {
	dash := rg.Group("/dashboard", staffMW)
	dash.GET("/stats", h.stats)
	dash.GET("/recent", h.recent)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, stats)
}

func (h *Handler) recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	recent, err := h.svc.Recent(limit)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, recent)
}
