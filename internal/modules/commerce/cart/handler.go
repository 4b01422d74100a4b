package cart

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	cart := rg.Group("/cart", authMW)
	cart.GET("", h.get)
	cart.POST("/items", h.addItem)
	cart.PUT("/items/:itemID", h.updateItem)
	cart.DELETE("/items/:itemID", h.removeItem)
	cart.DELETE("", h.clear)
}

type addItemDTO struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateItemDTO struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handler) get(c *gin.Context) {
	cart, err := h.svc.ActiveCart(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cartPayload(cart, ""))
}

func (h *Handler) addItem(c *gin.Context) {
	var dto addItemDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if dto.Quantity == 0 {
		dto.Quantity = 1
	}

	cart, message, err := h.svc.AddItem(middleware.CurrentUserID(c), dto.ProductID, dto.Quantity)
	if err != nil {
		h.writeCartError(c, err)
		return
	}
	response.OK(c, cartPayload(cart, message))
}

func (h *Handler) updateItem(c *gin.Context) {
	itemID, ok := h.parseItemID(c)
	if !ok {
		return
	}
	var dto updateItemDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	cart, message, err := h.svc.UpdateItem(middleware.CurrentUserID(c), itemID, *dto.Quantity)
	if err != nil {
		h.writeCartError(c, err)
		return
	}
	response.OK(c, cartPayload(cart, message))
}

func (h *Handler) removeItem(c *gin.Context) {
	itemID, ok := h.parseItemID(c)
	if !ok {
		return
	}
	cart, err := h.svc.RemoveItem(middleware.CurrentUserID(c), itemID)
	if err != nil {
		h.writeCartError(c, err)
		return
	}
	response.OK(c, cartPayload(cart, "item removed from cart"))
}

func (h *Handler) clear(c *gin.Context) {
	cart, err := h.svc.Clear(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, cartPayload(cart, "cart cleared"))
}

func (h *Handler) parseItemID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("itemID"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid item id")
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) writeCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(c)
	case errors.Is(err, ErrInvalidQuantity):
		response.BadRequest(c, err.Error())
	case errors.Is(err, ErrProductUnavailable), errors.Is(err, ErrOutOfStock):
		response.UnprocessableEntity(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func cartPayload(cart *models.CartModel, message string) gin.H {
	payload := gin.H{
		"data":        cart,
		"total_items": cart.TotalItems(),
		"subtotal":    cart.Subtotal(),
	}
	if message != "" {
		payload["message"] = message
	}
	return payload
}
