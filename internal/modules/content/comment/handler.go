package comment

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/wordpy/core/internal/middleware"
	"github.com/wordpy/core/internal/pkg/pagination"
	"github.com/wordpy/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, optionalMW, staffMW gin.HandlerFunc) {
	comments := rg.Group("/comments")
	comments.GET("/post/:postId", h.listForPost)
	comments.POST("", optionalMW, h.create)

	staff := comments.Group("", staffMW)
	staff.GET("/pending", h.listPending)
	staff.PATCH("/:id/approve", h.approve)
	staff.DELETE("/:id", h.delete)
}

func (h *Handler) listForPost(c *gin.Context) {
	q := pagination.FromContext(c)
	comments, pag, err := h.svc.ListForPost(c.Param("postId"), q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, comments, pag)
}

func (h *Handler) listPending(c *gin.Context) {
	q := pagination.FromContext(c)
	comments, pag, err := h.svc.ListPending(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, comments, pag)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCommentDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyContent), errors.Is(err, ErrAuthorRequired):
			response.BadRequest(c, err.Error())
		case errors.Is(err, ErrCommentsDisabled), errors.Is(err, ErrCommentsNotAllowed):
			response.ForbiddenMsg(c, err.Error())
		default:
			response.UnprocessableEntity(c, err.Error())
		}
		return
	}
	if comment == nil {
		response.NotFoundMsg(c, "post not found")
		return
	}
	response.Created(c, comment)
}

func (h *Handler) approve(c *gin.Context) {
	comment, err := h.svc.Approve(c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if comment == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, comment)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
