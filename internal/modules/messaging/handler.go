package messaging

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/wordpy/core/internal/middleware"
	"github.com/wordpy/core/internal/pkg/pagination"
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
	msg := rg.Group("/messaging", authMW)

	msg.GET("/conversations", h.listConversations)
	msg.POST("/conversations", h.startConversation)
	msg.GET("/conversations/:id", h.getConversation)
	msg.GET("/conversations/:id/messages", h.listMessages)
	msg.POST("/conversations/:id/messages", h.send)
	msg.POST("/conversations/:id/read", h.markConversationRead)

	msg.POST("/messages/:id/read", h.markMessageRead)
	msg.GET("/unread-count", h.totalUnread)
	msg.GET("/notifications", h.notifications)

	msg.GET("/blocked", h.listBlocked)
	msg.POST("/blocked", h.block)
	msg.DELETE("/blocked/:userID", h.unblock)
}

type startConversationDTO struct {
	ParticipantIDs []string `json:"participant_ids" binding:"required"`
	Title          string   `json:"title"`
	IsGroup        bool     `json:"is_group"`
}

type sendMessageDTO struct {
	Content    string  `json:"content" binding:"required"`
	Attachment string  `json:"attachment"`
	ReplyToID  *string `json:"reply_to_id"`
}

type blockDTO struct {
	UserID string `json:"user_id" binding:"required"`
	Reason string `json:"reason"`
}

func (h *Handler) listConversations(c *gin.Context) {
	summaries, err := h.svc.ListConversations(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": summaries})
}

func (h *Handler) startConversation(c *gin.Context) {
	var dto startConversationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	conv, err := h.svc.StartConversation(middleware.CurrentUserID(c), dto.ParticipantIDs, dto.Title, dto.IsGroup)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, conv)
}

func (h *Handler) getConversation(c *gin.Context) {
	conv, err := h.svc.ConversationByID(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if conv == nil {
		response.NotFound(c)
		return
	}
	unread, err := h.svc.UnreadCount(conv.ID, middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": conv, "unread_count": unread})
}

func (h *Handler) listMessages(c *gin.Context) {
	q := pagination.FromContext(c)
	msgs, pag, err := h.svc.Messages(c.Param("id"), middleware.CurrentUserID(c), q)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Paged(c, msgs, pag)
}

func (h *Handler) send(c *gin.Context) {
	var dto sendMessageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	msg, err := h.svc.Send(c.Param("id"), middleware.CurrentUserID(c), dto.Content, dto.Attachment, dto.ReplyToID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, msg)
}

func (h *Handler) markConversationRead(c *gin.Context) {
	count, err := h.svc.MarkConversationRead(c.Param("id"), middleware.CurrentUserID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, gin.H{"marked_read": count})
}

func (h *Handler) markMessageRead(c *gin.Context) {
	if err := h.svc.MarkMessageRead(c.Param("id"), middleware.CurrentUserID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) totalUnread(c *gin.Context) {
	count, err := h.svc.TotalUnread(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"unread_count": count})
}

func (h *Handler) notifications(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true" || c.Query("unread") == "1"
	notifs, err := h.svc.Notifications(middleware.CurrentUserID(c), unreadOnly)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": notifs})
}

func (h *Handler) listBlocked(c *gin.Context) {
	blocks, err := h.svc.ListBlocked(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"data": blocks})
}

func (h *Handler) block(c *gin.Context) {
	var dto blockDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	block, err := h.svc.Block(middleware.CurrentUserID(c), dto.UserID, dto.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Created(c, block)
}

func (h *Handler) unblock(c *gin.Context) {
	err := h.svc.Unblock(middleware.CurrentUserID(c), c.Param("userID"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(c)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, ErrRecipientNotFound):
		response.NotFound(c)
	case errors.Is(err, ErrNotParticipant):
		response.ForbiddenMsg(c, err.Error())
	case errors.Is(err, ErrBlocked):
		response.ForbiddenMsg(c, err.Error())
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrNoRecipients),
		errors.Is(err, ErrGroupNeedsTitle), errors.Is(err, ErrSelfBlock):
		response.BadRequest(c, err.Error())
	default:
		response.UnprocessableEntity(c, err.Error())
	}
}
