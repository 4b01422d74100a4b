package models

import "time"

// ConversationModel is a chat thread. Direct (non-group) conversations are
// deduplicated on their two participants; group conversations are not.
type ConversationModel struct {
	Base
	Title        string      `json:"title"`
	IsGroup      bool        `json:"is_group"   gorm:"default:false"`
	CreatedByID  *string     `json:"created_by_id" gorm:"index"`
	CreatedBy    *UserModel  `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Participants []UserModel `json:"participants,omitempty" gorm:"many2many:conversation_participants;joinForeignKey:ConversationID;joinReferences:UserID"`

	Messages []MessageModel `json:"messages,omitempty" gorm:"foreignKey:ConversationID"`
}

func (ConversationModel) TableName() string { return "conversations" }

// MessageModel is one message in a conversation, ordered by creation time.
type MessageModel struct {
	Base
	ConversationID string        `json:"conversation_id" gorm:"index;not null"`
	SenderID       string        `json:"sender_id"       gorm:"index;not null"`
	Sender         *UserModel    `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Content        string        `json:"content"         gorm:"type:text;not null"`
	IsRead         bool          `json:"is_read"         gorm:"default:false;index"`
	ReadAt         *time.Time    `json:"read_at"`
	Attachment     string        `json:"attachment"`
	ReplyToID      *string       `json:"reply_to_id"     gorm:"index"`
	ReplyTo        *MessageModel `json:"reply_to,omitempty" gorm:"foreignKey:ReplyToID"`
}

func (MessageModel) TableName() string { return "messages" }

// MessageReadReceiptModel records when a specific user read a specific
// message; one row per (message, user).
type MessageReadReceiptModel struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	MessageID string    `json:"message_id" gorm:"type:char(36);uniqueIndex:uniq_message_reader;index;not null"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);uniqueIndex:uniq_message_reader;not null"`
	ReadAt    time.Time `json:"read_at"`
}

func (MessageReadReceiptModel) TableName() string { return "message_read_receipts" }

// BlockedUserModel is a directed block: blocker refuses messages from
// blocked. The pair is unique.
type BlockedUserModel struct {
	ID        uint      `json:"id"         gorm:"primaryKey;autoIncrement"`
	BlockerID string    `json:"blocker_id" gorm:"type:char(36);uniqueIndex:uniq_blocker_blocked;index;not null"`
	BlockedID string    `json:"blocked_id" gorm:"type:char(36);uniqueIndex:uniq_blocker_blocked;index;not null"`
	Reason    string    `json:"reason"     gorm:"type:text"`
	CreatedAt time.Time `json:"created"`
}

func (BlockedUserModel) TableName() string { return "blocked_users" }

// MessageNotificationModel queues an unread-message notification per
// recipient.
type MessageNotificationModel struct {
	ID        uint          `json:"id"         gorm:"primaryKey;autoIncrement"`
	UserID    string        `json:"user_id"    gorm:"type:char(36);index;not null"`
	MessageID string        `json:"message_id" gorm:"type:char(36);index;not null"`
	Message   *MessageModel `json:"message,omitempty" gorm:"foreignKey:MessageID"`
	IsRead    bool          `json:"is_read"    gorm:"default:false;index"`
	ReadAt    *time.Time    `json:"read_at"`
	CreatedAt time.Time     `json:"created"`
}

func (MessageNotificationModel) TableName() string { return "message_notifications" }
