package post

import (
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, staffMW gin.HandlerFunc) {
	posts := rg.Group("/posts")
	posts.GET("", h.list)
	posts.GET("/tags", h.tags)
	posts.GET("/:identifier", h.get)

	staff := posts.Group("", staffMW)
	staff.POST("", h.create)
	staff.PUT("/:identifier", h.update)
	staff.PATCH("/:identifier", h.update)
	staff.DELETE("/:identifier", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	if c.Query("size") == "" {
		q.Size = h.svc.DefaultPageSize()
	}
	lq := ListQuery{}
	if v := c.Query("category"); v != "" {
		lq.Category = &v
	}
	if v := c.Query("tag"); v != "" {
		lq.Tag = &v
	}
	if v := c.Query("status"); v != "" {
		lq.Status = &v
	}
	if v := c.Query("search"); v != "" {
		lq.Search = &v
	}

	posts, pag, err := h.svc.List(q, lq, isStaffRequest(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, posts, pag)
}

func (h *Handler) get(c *gin.Context) {
	isStaff := isStaffRequest(c)
	post, err := h.svc.GetByIdentifier(c.Param("identifier"), isStaff)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}

	if !isStaff && post.IsPublished() {
		if err := h.svc.IncrementViews(post.ID); err == nil {
			post.Views++
		}
	}

	related, err := h.svc.Related(post)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": post, "related": related})
}

func (h *Handler) tags(c *gin.Context) {
	tags, err := h.svc.Tags()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": tags})
}

func (h *Handler) create(c *gin.Context) {
	var dto CreatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		if err.Error() == "slug already exists" {
			response.Conflict(c, err.Error())
			return
		}
		response.UnprocessableEntity(c, err.Error())
		return
	}
	response.Created(c, post)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdatePostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.svc.Update(c.Param("identifier"), &dto)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	if post == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, post)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("identifier")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// isStaffRequest reports whether the caller authenticated at all; route
// wiring ensures staff middleware gates mutating endpoints.
func isStaffRequest(c *gin.Context) bool {
	return middleware.IsAuthenticated(c)
}
