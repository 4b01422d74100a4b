package page

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wordpy/core/internal/middleware"
	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, staffMW gin.HandlerFunc) {
	pages := rg.Group("/pages")
	pages.GET("", h.list)
	pages.GET("/menu", h.menu)
	pages.GET("/:slug", h.get)

	staff := pages.Group("", staffMW)
	staff.POST("", h.create)
	staff.PUT("/:slug", h.update)
	staff.PATCH("/:slug", h.update)
	staff.DELETE("/:slug", h.delete)
	staff.GET("/:slug/sections", h.sections)
	staff.POST("/:slug/sections", h.attachSection)
	staff.PUT("/:slug/sections/:bindingId", h.reorderSection)
	staff.DELETE("/:slug/sections/:bindingId", h.detachSection)
}

func (h *Handler) list(c *gin.Context) {
	pages, err := h.svc.List(middleware.IsAuthenticated(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": pages})
}

func (h *Handler) menu(c *gin.Context) {
	pages, err := h.svc.Menu()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": pages})
}

func (h *Handler) get(c *gin.Context) {
	page, err := h.resolvePage(c)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if page == nil {
		response.NotFound(c)
		return
	}
	composed, err := h.svc.Compose(page)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, composed)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if err.Error() == "slug already exists" {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, page)
}

func (h *Handler) update(c *gin.Context) {
	page, err := h.resolvePage(c)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if page == nil {
		response.NotFound(c)
		return
	}
	var dto UpdatePageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	updated, err := h.svc.Update(page.ID, &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, updated)
}

func (h *Handler) delete(c *gin.Context) {
	page, err := h.resolvePage(c)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if page == nil {
		response.NotFound(c)
		return
	}
	if err := h.svc.Delete(page.ID); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) sections(c *gin.Context) {
	page, err := h.resolvePage(c)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if page == nil {
		response.NotFound(c)
		return
	}
	bindings, err := h.svc.Sections(page.ID, false)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": bindings})
}

func (h *Handler) attachSection(c *gin.Context) {
	page, err := h.resolvePage(c)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if page == nil {
		response.NotFound(c)
		return
	}
	var dto AttachSectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	binding, err := h.svc.AttachSection(page.ID, &dto)
	if err != nil {
		switch err.Error() {
		case "section not found":
			response.NotFoundMsg(c, err.Error())
		case "section already attached at this position":
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, binding)
}

func (h *Handler) reorderSection(c *gin.Context) {
	page, bindingID, ok := h.resolveBinding(c)
	if !ok {
		return
	}
	var dto ReorderSectionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	binding, err := h.svc.ReorderSection(page.ID, bindingID, &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if binding == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, binding)
}

func (h *Handler) detachSection(c *gin.Context) {
	page, bindingID, ok := h.resolveBinding(c)
	if !ok {
		return
	}
	if err := h.svc.DetachSection(page.ID, bindingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// resolvePage looks the page up by slug first, then by ID. Staff requests
// see unpublished pages.
func (h *Handler) resolvePage(c *gin.Context) (*models.PageModel, error) {
	identifier := c.Param("slug")
	isStaff := middleware.IsAuthenticated(c)
	page, err := h.svc.GetBySlug(identifier, isStaff)
	if err != nil {
		return nil, err
	}
	if page == nil {
		page, err = h.svc.GetByID(identifier)
		if err != nil {
			return nil, err
		}
		if page != nil && !isStaff && !page.IsPublished {
			page = nil
		}
	}
	return page, nil
}

func (h *Handler) resolveBinding(c *gin.Context) (*models.PageModel, uint, bool) {
	page, err := h.resolvePage(c)
	if err != nil {
		response.InternalError(c, err)
		return nil, 0, false
	}
	if page == nil {
		response.NotFound(c)
		return nil, 0, false
	}
	raw := c.Param("bindingId")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid section binding id")
		return nil, 0, false
	}
	return page, uint(id), true
}
