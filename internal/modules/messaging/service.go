package messaging

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/pagination"
	"github.com/wordpy/core/internal/pkg/response"
)

var (
	ErrEmptyMessage      = errors.New("message content is required")
	ErrNotParticipant    = errors.New("not a participant of this conversation")
	ErrBlocked           = errors.New("recipient has blocked you")
	ErrNoRecipients      = errors.New("a conversation needs at least one other participant")
	ErrSelfBlock         = errors.New("cannot block yourself")
	ErrGroupNeedsTitle   = errors.New("group conversations need a title")
	ErrRecipientNotFound = errors.New("recipient not found")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ConversationSummary pairs a conversation with the caller's unread count
// and the latest message for list rendering.
type ConversationSummary struct {
	Conversation models.ConversationModel `json:"conversation"`
	UnreadCount  int64                    `json:"unread_count"`
	LastMessage  *models.MessageModel     `json:"last_message,omitempty"`
}

// StartConversation opens a conversation between the caller and the given
// participants. A direct conversation with exactly one other user is
// deduplicated: if one already exists it is returned instead of creating a
// second thread between the same pair.
func (s *Service) StartConversation(creatorID string, participantIDs []string, title string, isGroup bool) (*models.ConversationModel, error) {
	others := dedupe(participantIDs, creatorID)
	if len(others) == 0 {
		return nil, ErrNoRecipients
	}
	if isGroup && strings.TrimSpace(title) == "" {
		return nil, ErrGroupNeedsTitle
	}
	if !isGroup && len(others) > 1 {
		isGroup = true
		if strings.TrimSpace(title) == "" {
			return nil, ErrGroupNeedsTitle
		}
	}

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("id IN ?", others).Count(&count).Error; err != nil {
		return nil, err
	}
	if count != int64(len(others)) {
		return nil, ErrRecipientNotFound
	}

	if !isGroup {
		blocked, err := s.pairBlocked(creatorID, others[0])
		if err != nil {
			return nil, err
		}
		if blocked {
			return nil, ErrBlocked
		}
		existing, err := s.findDirectConversation(creatorID, others[0])
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	conv := &models.ConversationModel{
		Title:       strings.TrimSpace(title),
		IsGroup:     isGroup,
		CreatedByID: &creatorID,
	}
	memberIDs := append([]string{creatorID}, others...)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		for _, id := range memberIDs {
			if err := tx.Exec(
				"INSERT INTO conversation_participants (conversation_id, user_id) VALUES (?, ?)",
				conv.ID, id,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ConversationByID(conv.ID, creatorID)
}

// findDirectConversation locates the non-group conversation whose two
// participants are exactly a and b.
func (s *Service) findDirectConversation(a, b string) (*models.ConversationModel, error) {
	var ids []string
	err := s.db.Raw(`
		SELECT c.id FROM conversations c
		WHERE c.is_group = ?
		  AND c.deleted_at IS NULL
		  AND EXISTS (SELECT 1 FROM conversation_participants p WHERE p.conversation_id = c.id AND p.user_id = ?)
		  AND EXISTS (SELECT 1 FROM conversation_participants p WHERE p.conversation_id = c.id AND p.user_id = ?)
		  AND (SELECT COUNT(*) FROM conversation_participants p WHERE p.conversation_id = c.id) = 2
	`, false, a, b).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return s.ConversationByID(ids[0], a)
}

// ConversationByID loads a conversation with participants, only for callers
// who belong to it.
func (s *Service) ConversationByID(id, userID string) (*models.ConversationModel, error) {
	ok, err := s.isParticipant(id, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var conv models.ConversationModel
	err = s.db.Preload("Participants").Where("id = ?", id).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns the caller's conversations, most recently active
// first, each with its unread count and latest message.
func (s *Service) ListConversations(userID string) ([]ConversationSummary, error) {
	var convs []models.ConversationModel
	err := s.db.Preload("Participants").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Order("conversations.updated_at DESC").
		Find(&convs).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		unread, err := s.UnreadCount(conv.ID, userID)
		if err != nil {
			return nil, err
		}
		var last models.MessageModel
		lastErr := s.db.Where("conversation_id = ?", conv.ID).
			Order("created_at DESC").First(&last).Error
		summary := ConversationSummary{Conversation: conv, UnreadCount: unread}
		if lastErr == nil {
			summary.LastMessage = &last
		} else if !errors.Is(lastErr, gorm.ErrRecordNotFound) {
			return nil, lastErr
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// pairBlocked reports whether a block exists between the two users in
// either direction.
func (s *Service) pairBlocked(a, b string) (bool, error) {
	var count int64
	err := s.db.Model(&models.BlockedUserModel{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// Send posts a message to a conversation. Delivery is refused when a block
// exists between the sender and any other participant, in either direction.
// Each recipient gets a notification row.
func (s *Service) Send(conversationID, senderID, content, attachment string, replyToID *string) (*models.MessageModel, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyMessage
	}
	ok, err := s.isParticipant(conversationID, senderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotParticipant
	}

	recipients, err := s.otherParticipants(conversationID, senderID)
	if err != nil {
		return nil, err
	}
	if len(recipients) > 0 {
		var blocked int64
		if err := s.db.Model(&models.BlockedUserModel{}).
			Where("(blocker_id IN ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id IN ?)",
				recipients, senderID, senderID, recipients).
			Count(&blocked).Error; err != nil {
			return nil, err
		}
		if blocked > 0 {
			return nil, ErrBlocked
		}
	}

	if replyToID != nil {
		var count int64
		if err := s.db.Model(&models.MessageModel{}).
			Where("id = ? AND conversation_id = ?", *replyToID, conversationID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, errors.New("reply target not found in this conversation")
		}
	}

	msg := &models.MessageModel{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		Attachment:     attachment,
		ReplyToID:      replyToID,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		for _, rid := range recipients {
			notif := models.MessageNotificationModel{UserID: rid, MessageID: msg.ID}
			if err := tx.Create(&notif).Error; err != nil {
				return err
			}
		}
		// Bump the thread so conversation lists sort by latest activity.
		return tx.Model(&models.ConversationModel{}).
			Where("id = ?", conversationID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// Messages pages through a conversation's history, oldest first within the
// page window.
func (s *Service) Messages(conversationID, userID string, q pagination.Query) ([]models.MessageModel, response.Pagination, error) {
	ok, err := s.isParticipant(conversationID, userID)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	if !ok {
		return nil, response.Pagination{}, ErrNotParticipant
	}
	query := s.db.Model(&models.MessageModel{}).Preload("Sender").Preload("ReplyTo").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC")
	var msgs []models.MessageModel
	pag, err := pagination.Paginate(query, q, &msgs)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return msgs, pag, nil
}

// MarkConversationRead marks every unread message the caller did not send.
// The boolean flag, the timestamp and the per-user receipt move together so
// bulk reads leave the same trail as single reads.
func (s *Service) MarkConversationRead(conversationID, userID string) (int64, error) {
	ok, err := s.isParticipant(conversationID, userID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNotParticipant
	}

	var unread []models.MessageModel
	if err := s.db.Where("conversation_id = ? AND sender_id <> ? AND is_read = ?",
		conversationID, userID, false).Find(&unread).Error; err != nil {
		return 0, err
	}
	if len(unread) == 0 {
		return 0, nil
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, msg := range unread {
			if err := markRead(tx, &msg, userID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int64(len(unread)), nil
}

// MarkMessageRead marks a single message as read by the caller.
func (s *Service) MarkMessageRead(messageID, userID string) error {
	var msg models.MessageModel
	err := s.db.Where("id = ?", messageID).First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return gorm.ErrRecordNotFound
	}
	if err != nil {
		return err
	}
	ok, err := s.isParticipant(msg.ConversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotParticipant
	}
	if msg.SenderID == userID {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return markRead(tx, &msg, userID, time.Now())
	})
}

// markRead flips the message flag, records the timestamp once, writes the
// (message, user) receipt idempotently and settles the notification row.
func markRead(tx *gorm.DB, msg *models.MessageModel, userID string, at time.Time) error {
	updates := map[string]interface{}{"is_read": true}
	if msg.ReadAt == nil {
		updates["read_at"] = at
	}
	if err := tx.Model(&models.MessageModel{}).
		Where("id = ?", msg.ID).Updates(updates).Error; err != nil {
		return err
	}

	var existing int64
	if err := tx.Model(&models.MessageReadReceiptModel{}).
		Where("message_id = ? AND user_id = ?", msg.ID, userID).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing == 0 {
		receipt := models.MessageReadReceiptModel{MessageID: msg.ID, UserID: userID, ReadAt: at}
		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}
	}

	return tx.Model(&models.MessageNotificationModel{}).
		Where("message_id = ? AND user_id = ? AND is_read = ?", msg.ID, userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": at}).Error
}

// UnreadCount counts messages in a conversation the caller has not read and
// did not send.
func (s *Service) UnreadCount(conversationID, userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.MessageModel{}).
		Where("conversation_id = ? AND sender_id <> ? AND is_read = ?", conversationID, userID, false).
		Count(&count).Error
	return count, err
}

// TotalUnread counts the caller's unread messages across all conversations.
func (s *Service) TotalUnread(userID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.MessageModel{}).
		Joins("JOIN conversation_participants cp ON cp.conversation_id = messages.conversation_id").
		Where("cp.user_id = ? AND messages.sender_id <> ? AND messages.is_read = ?", userID, userID, false).
		Count(&count).Error
	return count, err
}

// Notifications lists the caller's message notifications, unread first.
func (s *Service) Notifications(userID string, unreadOnly bool) ([]models.MessageNotificationModel, error) {
	q := s.db.Preload("Message").Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var notifs []models.MessageNotificationModel
	if err := q.Order("is_read ASC, created_at DESC").Find(&notifs).Error; err != nil {
		return nil, err
	}
	return notifs, nil
}

// Block prevents blockedID from messaging userID. Blocking twice is a no-op.
func (s *Service) Block(userID, blockedID, reason string) (*models.BlockedUserModel, error) {
	if userID == blockedID {
		return nil, ErrSelfBlock
	}
	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("id = ?", blockedID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrRecipientNotFound
	}

	var existing models.BlockedUserModel
	err := s.db.Where("blocker_id = ? AND blocked_id = ?", userID, blockedID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	block := &models.BlockedUserModel{BlockerID: userID, BlockedID: blockedID, Reason: reason}
	if err := s.db.Create(block).Error; err != nil {
		return nil, err
	}
	return block, nil
}

// Unblock removes a block the caller placed.
func (s *Service) Unblock(userID, blockedID string) error {
	res := s.db.Where("blocker_id = ? AND blocked_id = ?", userID, blockedID).
		Delete(&models.BlockedUserModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListBlocked returns the users the caller has blocked.
func (s *Service) ListBlocked(userID string) ([]models.BlockedUserModel, error) {
	var blocks []models.BlockedUserModel
	err := s.db.Where("blocker_id = ?", userID).Order("created_at DESC").Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (s *Service) isParticipant(conversationID, userID string) (bool, error) {
	var count int64
	err := s.db.Table("conversation_participants").
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *Service) otherParticipants(conversationID, excludeID string) ([]string, error) {
	var ids []string
	err := s.db.Table("conversation_participants").
		Where("conversation_id = ? AND user_id <> ?", conversationID, excludeID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func dedupe(ids []string, exclude string) []string {
	seen := map[string]struct{}{exclude: {}}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
