package comment

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/modules/content/settings"
	"github.com/wordpy/core/internal/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db       *gorm.DB
	svc      *Service
	settings *settings.Service
	user     *models.UserModel
	post     *models.PostModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.CategoryModel{},
		&models.PostModel{},
		&models.CommentModel{},
		&models.SiteSettingsModel{},
	))

	user := &models.UserModel{Username: "alice", Name: "Alice", Mail: "alice@example.com", IsActive: true}
	require.NoError(t, db.Create(user).Error)

	post := &models.PostModel{
		Title: "Post", Slug: "post", AuthorID: user.ID,
		Content: "body", Status: models.PostStatusPublished, AllowComments: true,
	}
	require.NoError(t, db.Create(post).Error)

	settingsSvc := settings.NewService(db)
	return &fixture{
		db:       db,
		svc:      NewService(db, settingsSvc),
		settings: settingsSvc,
		user:     user,
		post:     post,
	}
}

func TestAuthenticatedCommentsAutoApproved(t *testing.T) {
	f := newFixture(t)

	comment, err := f.svc.Create(f.user.ID, &CreateCommentDTO{PostID: f.post.ID, Content: "hi"})
	require.NoError(t, err)
	assert.True(t, comment.IsApproved)
	require.NotNil(t, comment.AuthorID)
	assert.Equal(t, f.user.ID, *comment.AuthorID)
}

func TestAnonymousCommentsGatedByModerationPolicy(t *testing.T) {
	f := newFixture(t)

	pending, err := f.svc.Create("", &CreateCommentDTO{
		PostID: f.post.ID, Content: "hi", AuthorName: "Bob", AuthorEmail: "bob@example.com",
	})
	require.NoError(t, err)
	assert.False(t, pending.IsApproved)

	off := false
	_, err = f.settings.Update(&settings.UpdateSettingsDTO{CommentsRequireApproval: &off})
	require.NoError(t, err)

	approved, err := f.svc.Create("", &CreateCommentDTO{
		PostID: f.post.ID, Content: "hi again", AuthorName: "Bob", AuthorEmail: "bob@example.com",
	})
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
}

func TestAnonymousCommentRequiresNameAndEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create("", &CreateCommentDTO{PostID: f.post.ID, Content: "hi"})
	assert.ErrorIs(t, err, ErrAuthorRequired)
}

func TestRejectsEmptyContent(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.user.ID, &CreateCommentDTO{PostID: f.post.ID, Content: "   "})
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestRejectsWhenPostDisallowsComments(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Model(f.post).Update("allow_comments", false).Error)

	_, err := f.svc.Create(f.user.ID, &CreateCommentDTO{PostID: f.post.ID, Content: "hi"})
	assert.ErrorIs(t, err, ErrCommentsNotAllowed)
}

func TestRejectsWhenCommentsGloballyDisabled(t *testing.T) {
	f := newFixture(t)
	off := false
	_, err := f.settings.Update(&settings.UpdateSettingsDTO{CommentsEnabled: &off})
	require.NoError(t, err)

	_, err = f.svc.Create(f.user.ID, &CreateCommentDTO{PostID: f.post.ID, Content: "hi"})
	assert.ErrorIs(t, err, ErrCommentsDisabled)
}

func TestThreadedReplies(t *testing.T) {
	f := newFixture(t)

	parent, err := f.svc.Create(f.user.ID, &CreateCommentDTO{PostID: f.post.ID, Content: "parent"})
	require.NoError(t, err)

	reply, err := f.svc.Create(f.user.ID, &CreateCommentDTO{
		PostID: f.post.ID, Content: "reply", ParentID: &parent.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)

	comments, _, err := f.svc.ListForPost(f.post.ID, paginationQuery())
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Len(t, comments[0].Replies, 1)
	assert.Equal(t, "reply", comments[0].Replies[0].Content)
}

func paginationQuery() pagination.Query {
	return pagination.Query{Page: 1, Size: 10}
}

func TestApprove(t *testing.T) {
	f := newFixture(t)

	pending, err := f.svc.Create("", &CreateCommentDTO{
		PostID: f.post.ID, Content: "hi", AuthorName: "Bob", AuthorEmail: "bob@example.com",
	})
	require.NoError(t, err)

	approved, err := f.svc.Approve(pending.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
}
