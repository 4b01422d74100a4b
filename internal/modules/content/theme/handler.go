package theme

import (
	"net/http"

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
	themes := rg.Group("/themes")
	themes.GET("/active", h.active)
	themes.GET("/active.css", h.ServeCSS)

	staff := themes.Group("", staffMW)
	staff.GET("", h.list)
	staff.GET("/:id", h.get)
	staff.POST("", h.create)
	staff.PUT("/:id", h.update)
	staff.PATCH("/:id", h.update)
	staff.POST("/:id/activate", h.activate)
	staff.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	themes, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": themes})
}

func (h *Handler) get(c *gin.Context) {
	theme, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if theme == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, theme)
}

func (h *Handler) active(c *gin.Context) {
	theme, err := h.svc.Resolve()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if theme == nil {
		response.OK(c, gin.H{"data": nil})
		return
	}
	response.OK(c, theme)
}

// ServeCSS writes the resolved theme stylesheet. Also mounted at the
// site root as /theme.css for direct <link> use.
func (h *Handler) ServeCSS(c *gin.Context) {
	theme, err := h.svc.Resolve()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(CSS(theme)))
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateThemeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	theme, err := h.svc.Create(&dto)
	if err != nil {
		if err.Error() == "theme name already exists" {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, theme)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateThemeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	theme, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if theme == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, theme)
}

func (h *Handler) activate(c *gin.Context) {
	theme, err := h.svc.Activate(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if theme == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, theme)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
