package registry

import (
	"errors"

	"github.com/gin-gonic/gin"
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
	mods := rg.Group("/modules")
	mods.GET("", h.list)

	staff := mods.Group("", staffMW)
	staff.POST("", h.register)
	staff.GET("/:identifier", h.get)
	staff.PUT("/:identifier", h.update)
	staff.PATCH("/:identifier", h.update)
	staff.DELETE("/:identifier", h.unregister)
	staff.POST("/:identifier/activate", h.activate)
	staff.POST("/:identifier/deactivate", h.deactivate)

	staff.GET("/:identifier/settings", h.listSettings)
	staff.PUT("/:identifier/settings/:key", h.setSetting)
	staff.DELETE("/:identifier/settings/:key", h.deleteSetting)

	staff.GET("/:identifier/permissions", h.listPermissions)
	staff.PUT("/:identifier/permissions", h.grantPermission)
	staff.DELETE("/:identifier/permissions/:userID", h.revokePermission)
}

type settingDTO struct {
	Value     string `json:"value"`
	ValueType string `json:"value_type"`
}

func (h *Handler) list(c *gin.Context) {
	includeInactive := c.Query("all") == "true" || c.Query("all") == "1"
	mods, err := h.svc.List(includeInactive)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": mods})
}

func (h *Handler) register(c *gin.Context) {
	var dto CreateModuleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	mod, err := h.svc.Register(dto)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.Created(c, mod)
}

func (h *Handler) get(c *gin.Context) {
	mod, err := h.resolve(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if mod == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, mod)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateModuleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	mod, err := h.resolve(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if mod == nil {
		response.NotFound(c)
		return
	}
	updated, err := h.svc.Update(mod.ID, dto)
	if err != nil {
		if errors.Is(err, ErrCoreModule) {
			response.ForbiddenMsg(c, err.Error())
			return
		}
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.OK(c, updated)
}

func (h *Handler) activate(c *gin.Context) {
	h.toggle(c, true)
}

func (h *Handler) deactivate(c *gin.Context) {
	h.toggle(c, false)
}

func (h *Handler) toggle(c *gin.Context, active bool) {
	mod, err := h.resolve(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if mod == nil {
		response.NotFound(c)
		return
	}
	updated, err := h.svc.Activate(mod.ID, active)
	if err != nil {
		if errors.Is(err, ErrCoreModule) {
			response.ForbiddenMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, updated)
}

func (h *Handler) unregister(c *gin.Context) {
	mod, err := h.resolve(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if mod == nil {
		response.NotFound(c)
		return
	}
	if err := h.svc.Unregister(mod.ID); err != nil {
		if errors.Is(err, ErrCoreModule) {
			response.ForbiddenMsg(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listSettings(c *gin.Context) {
	mod, err := h.resolve(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if mod == nil {
		response.NotFound(c)
		return
	}
	settings, err := h.svc.ListSettings(mod.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": settings})
}

func (h *Handler) setSetting(c *gin.Context) {
	var dto settingDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	mod, err := h.resolve(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if mod == nil {
		response.NotFound(c)
		return
	}
	setting, err := h.svc.SetSetting(mod.ID, c.Param("key"), dto.Value, dto.ValueType)
	if err != nil {
		if errors.Is(err, ErrValueMismatch) || errors.Is(err, ErrInvalidValueType) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, setting)
}

func (h *Handler) deleteSetting(c *gin.Context) {
	mod, err := h.resolve(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if mod == nil {
		response.NotFound(c)
		return
	}
	if err := h.svc.DeleteSetting(mod.ID, c.Param("key")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) listPermissions(c *gin.Context) {
	mod, err := h.resolve(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if mod == nil {
		response.NotFound(c)
		return
	}
	perms, err := h.svc.ListPermissions(mod.ID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": perms})
}

func (h *Handler) grantPermission(c *gin.Context) {
	var dto PermissionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	mod, err := h.resolve(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if mod == nil {
		response.NotFound(c)
		return
	}
	perm, err := h.svc.GrantPermission(mod.ID, dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, perm)
}

func (h *Handler) revokePermission(c *gin.Context) {
	mod, err := h.resolve(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if mod == nil {
		response.NotFound(c)
		return
	}
	if err := h.svc.RevokePermission(mod.ID, c.Param("userID")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) resolve(identifier string) (*models.ModuleModel, error) {
	mod, err := h.svc.ByName(identifier)
	if err != nil || mod != nil {
		return mod, err
	}
	return h.svc.ByID(identifier)
}
