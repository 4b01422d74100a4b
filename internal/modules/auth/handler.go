package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/wordpy/core/internal/middleware"
	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, staffMW gin.HandlerFunc) {
	a := rg.Group("/auth")
	a.POST("/register", h.register)
	a.POST("/login", h.login)

	me := a.Group("", authMW)
	me.GET("/profile", h.profile)
	me.PUT("/profile", h.updateProfile)
	me.PATCH("/profile", h.updateProfile)
	me.GET("/sessions", h.sessions)
	me.DELETE("/sessions/:sessionID", h.revokeSession)
	me.POST("/logout", h.logout)
	me.POST("/logout-others", h.logoutOthers)

	users := rg.Group("/users", staffMW)
	users.GET("", h.listUsers)
	users.POST("/:userID/staff", h.setStaff)
	users.POST("/:userID/active", h.setActive)
}

type toggleDTO struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, u)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, u, err := h.svc.Login(&dto, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.UnprocessableEntity(c, err.Error())
		case errors.Is(err, ErrAccountDisabled):
			response.ForbiddenMsg(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, gin.H{"token": token, "user": u})
}

func (h *Handler) profile(c *gin.Context) {
	u, err := h.svc.Profile(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, u)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.UpdateProfile(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.UnprocessableEntity(c, err.Error())
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, u)
}

func (h *Handler) sessions(c *gin.Context) {
	sessions, err := h.svc.Sessions(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": sessions, "current": middleware.CurrentSessionID(c)})
}

func (h *Handler) revokeSession(c *gin.Context) {
	if err := h.svc.RevokeSession(middleware.CurrentUserID(c), c.Param("sessionID")); err != nil {
		response.NotFoundMsg(c, err.Error())
		return
	}
	response.NoContent(c)
}

func (h *Handler) logout(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	sessionID := middleware.CurrentSessionID(c)
	if sessionID != "" {
		if err := h.svc.RevokeSession(userID, sessionID); err != nil {
			response.InternalError(c, err)
			return
		}
	}
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) logoutOthers(c *gin.Context) {
	err := h.svc.RevokeOtherSessions(middleware.CurrentUserID(c), middleware.CurrentSessionID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.svc.ListUsers()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": users})
}

func (h *Handler) setStaff(c *gin.Context) {
	h.toggleUser(c, h.svc.SetStaff)
}

func (h *Handler) setActive(c *gin.Context) {
	h.toggleUser(c, h.svc.SetActive)
}

func (h *Handler) toggleUser(c *gin.Context, apply func(userID string, enabled bool) (*models.UserModel, error)) {
	var dto toggleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := apply(c.Param("userID"), *dto.Enabled)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, u)
}
