package order

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/wordpy/core/internal/middleware"
	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/pagination"
	"github.com/wordpy/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, staffMW gin.HandlerFunc) {
	orders := rg.Group("/orders", authMW)
	orders.POST("/checkout", h.checkout)
	orders.GET("", h.listMine)
	orders.GET("/:identifier", h.get)

	staff := orders.Group("", staffMW)
	staff.GET("/all", h.listAll)
	staff.PATCH("/:identifier/status", h.updateStatus)
	staff.PATCH("/:identifier/payment-status", h.updatePaymentStatus)
}

type statusDTO struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) checkout(c *gin.Context) {
	var dto CheckoutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ord, err := h.svc.Checkout(middleware.CurrentUserID(c), dto)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			response.BadRequest(c, err.Error())
		case errors.Is(err, ErrInsufficientStock):
			response.UnprocessableEntity(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.Created(c, ord)
}

func (h *Handler) listMine(c *gin.Context) {
	q := pagination.FromContext(c)
	orders, pag, err := h.svc.ListForUser(middleware.CurrentUserID(c), q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, orders, pag)
}

func (h *Handler) listAll(c *gin.Context) {
	q := pagination.FromContext(c)
	orders, pag, err := h.svc.ListAll(q, c.Query("status"), c.Query("payment_status"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, orders, pag)
}

func (h *Handler) get(c *gin.Context) {
	ord, err := h.resolve(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if ord == nil || !h.canView(c, ord) {
		response.NotFound(c)
		return
	}
	response.OK(c, ord)
}

func (h *Handler) updateStatus(c *gin.Context) {
	h.patchStatus(c, h.svc.UpdateStatus)
}

func (h *Handler) updatePaymentStatus(c *gin.Context) {
	h.patchStatus(c, h.svc.UpdatePaymentStatus)
}

func (h *Handler) patchStatus(c *gin.Context, apply func(id, status string) (*models.OrderModel, error)) {
	var dto statusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	ord, err := h.resolve(c.Param("identifier"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if ord == nil {
		response.NotFound(c)
		return
	}
	updated, err := apply(ord.ID, dto.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, updated)
}

// canView hides other users' orders from non-staff callers. Staff checks are
// enforced by route wiring for mutating endpoints; reads allow owners too.
func (h *Handler) canView(c *gin.Context, ord *models.OrderModel) bool {
	userID := middleware.CurrentUserID(c)
	if ord.UserID != nil && *ord.UserID == userID {
		return true
	}
	return h.svc.IsStaff(userID)
}

func (h *Handler) resolve(identifier string) (*models.OrderModel, error) {
	ord, err := h.svc.ByNumber(identifier)
	if err != nil || ord != nil {
		return ord, err
	}
	return h.svc.ByID(identifier)
}
