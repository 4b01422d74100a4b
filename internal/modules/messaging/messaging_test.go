package messaging

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpy/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.ConversationModel{},
		&models.MessageModel{},
		&models.MessageReadReceiptModel{},
		&models.BlockedUserModel{},
		&models.MessageNotificationModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.UserModel {
	t.Helper()
	u := &models.UserModel{
		Username: username,
		Name:     username,
		Mail:     fmt.Sprintf("%s@example.com", username),
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestDirectConversationDeduplicated(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	first, err := svc.StartConversation(alice.ID, []string{bob.ID}, "", false)
	require.NoError(t, err)
	require.Len(t, first.Participants, 2)

	// The same pair, started from either side, lands in the same thread.
	second, err := svc.StartConversation(bob.ID, []string{alice.ID}, "", false)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.ConversationModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGroupConversationsAreNotDeduplicated(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	g1, err := svc.StartConversation(alice.ID, []string{bob.ID, carol.ID}, "Project A", true)
	require.NoError(t, err)
	g2, err := svc.StartConversation(alice.ID, []string{bob.ID, carol.ID}, "Project B", true)
	require.NoError(t, err)
	assert.NotEqual(t, g1.ID, g2.ID)

	_, err = svc.StartConversation(alice.ID, []string{bob.ID, carol.ID}, "", false)
	assert.ErrorIs(t, err, ErrGroupNeedsTitle)
}

func TestSendAndUnreadCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	conv, err := svc.StartConversation(alice.ID, []string{bob.ID}, "", false)
	require.NoError(t, err)

	_, err = svc.Send(conv.ID, alice.ID, "hello", "", nil)
	require.NoError(t, err)
	_, err = svc.Send(conv.ID, alice.ID, "are you there?", "", nil)
	require.NoError(t, err)

	// Unread counts exclude the caller's own messages.
	bobUnread, err := svc.UnreadCount(conv.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), bobUnread)

	aliceUnread, err := svc.UnreadCount(conv.ID, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, aliceUnread)

	total, err := svc.TotalUnread(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	notifs, err := svc.Notifications(bob.ID, true)
	require.NoError(t, err)
	assert.Len(t, notifs, 2)
}

func TestSendRejectsEmptyAndOutsiders(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	mallory := seedUser(t, db, "mallory")

	conv, err := svc.StartConversation(alice.ID, []string{bob.ID}, "", false)
	require.NoError(t, err)

	_, err = svc.Send(conv.ID, alice.ID, "   ", "", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.Send(conv.ID, mallory.ID, "let me in", "", nil)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestBlockPreventsDelivery(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	conv, err := svc.StartConversation(alice.ID, []string{bob.ID}, "", false)
	require.NoError(t, err)

	_, err = svc.Block(bob.ID, alice.ID, "spam")
	require.NoError(t, err)

	_, err = svc.Send(conv.ID, alice.ID, "hello?", "", nil)
	assert.ErrorIs(t, err, ErrBlocked)

	// The block cuts both ways while it stands.
	_, err = svc.Send(conv.ID, bob.ID, "do not contact me", "", nil)
	assert.ErrorIs(t, err, ErrBlocked)

	require.NoError(t, svc.Unblock(bob.ID, alice.ID))
	_, err = svc.Send(conv.ID, alice.ID, "sorry", "", nil)
	require.NoError(t, err)
}

func TestBlockPreventsDirectConversation(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.Block(bob.ID, alice.ID, "spam")
	require.NoError(t, err)

	_, err = svc.StartConversation(alice.ID, []string{bob.ID}, "", false)
	assert.ErrorIs(t, err, ErrBlocked)
	_, err = svc.StartConversation(bob.ID, []string{alice.ID}, "", false)
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestBlockValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.Block(alice.ID, alice.ID, "")
	assert.ErrorIs(t, err, ErrSelfBlock)

	_, err = svc.Block(alice.ID, "nobody", "")
	assert.ErrorIs(t, err, ErrRecipientNotFound)

	first, err := svc.Block(alice.ID, bob.ID, "spam")
	require.NoError(t, err)
	again, err := svc.Block(alice.ID, bob.ID, "still spam")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	blocks, err := svc.ListBlocked(alice.ID)
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
}

func TestMarkConversationReadWritesReceipts(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	conv, err := svc.StartConversation(alice.ID, []string{bob.ID}, "", false)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Send(conv.ID, alice.ID, fmt.Sprintf("msg %d", i), "", nil)
		require.NoError(t, err)
	}

	marked, err := svc.MarkConversationRead(conv.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), marked)

	// Bulk mark-read leaves the same trail as reading one by one: flags,
	// timestamps, receipts and settled notifications.
	var msgs []models.MessageModel
	require.NoError(t, db.Where("conversation_id = ?", conv.ID).Find(&msgs).Error)
	for _, msg := range msgs {
		assert.True(t, msg.IsRead)
		assert.NotNil(t, msg.ReadAt)
	}

	var receipts int64
	require.NoError(t, db.Model(&models.MessageReadReceiptModel{}).
		Where("user_id = ?", bob.ID).Count(&receipts).Error)
	assert.Equal(t, int64(3), receipts)

	unreadNotifs, err := svc.Notifications(bob.ID, true)
	require.NoError(t, err)
	assert.Empty(t, unreadNotifs)

	unread, err := svc.UnreadCount(conv.ID, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	// Re-marking is idempotent on receipts.
	marked, err = svc.MarkConversationRead(conv.ID, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, marked)
}

func TestMarkMessageRead(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	conv, err := svc.StartConversation(alice.ID, []string{bob.ID}, "", false)
	require.NoError(t, err)
	msg, err := svc.Send(conv.ID, alice.ID, "ping", "", nil)
	require.NoError(t, err)

	require.NoError(t, svc.MarkMessageRead(msg.ID, bob.ID))

	var got models.MessageModel
	require.NoError(t, db.First(&got, "id = ?", msg.ID).Error)
	assert.True(t, got.IsRead)

	var receipts int64
	require.NoError(t, db.Model(&models.MessageReadReceiptModel{}).
		Where("message_id = ? AND user_id = ?", msg.ID, bob.ID).Count(&receipts).Error)
	assert.Equal(t, int64(1), receipts)

	// Reading your own message does nothing.
	require.NoError(t, svc.MarkMessageRead(msg.ID, alice.ID))
	require.NoError(t, db.Model(&models.MessageReadReceiptModel{}).
		Where("message_id = ?", msg.ID).Count(&receipts).Error)
	assert.Equal(t, int64(1), receipts)
}

func TestListConversationsSummaries(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	direct, err := svc.StartConversation(alice.ID, []string{bob.ID}, "", false)
	require.NoError(t, err)
	_, err = svc.StartConversation(alice.ID, []string{bob.ID, carol.ID}, "Team", true)
	require.NoError(t, err)

	_, err = svc.Send(direct.ID, bob.ID, "latest", "", nil)
	require.NoError(t, err)

	summaries, err := svc.ListConversations(alice.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	var found bool
	for _, s := range summaries {
		if s.Conversation.ID == direct.ID {
			found = true
			assert.Equal(t, int64(1), s.UnreadCount)
			require.NotNil(t, s.LastMessage)
			assert.Equal(t, "latest", s.LastMessage.Content)
		}
	}
	assert.True(t, found)

	// Outsiders see nothing.
	conv, err := svc.ConversationByID(direct.ID, carol.ID)
	require.NoError(t, err)
	assert.Nil(t, conv)
}
