package section

import (
	"github.com/gin-gonic/gin"
	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, staffMW gin.HandlerFunc) {
	sections := rg.Group("/sections", staffMW)
	sections.GET("", h.list)
	sections.GET("/types", h.types)
	sections.GET("/:id", h.get)
	sections.POST("", h.create)
	sections.PUT("/:id", h.update)
	sections.PATCH("/:id", h.update)
	sections.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	sections, err := h.svc.List(c.Query("type"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": sections})
}

func (h *Handler) types(c *gin.Context) {
	response.OK(c, gin.H{"data": models.SectionTypes})
}

func (h *Handler) get(c *gin.Context) {
	sec, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if sec == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, gin.H{"data": sec, "variant": sec.Variant()})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateSectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sec, err := h.svc.Create(&dto)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.Created(c, sec)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateSectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	sec, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	if sec == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, sec)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
