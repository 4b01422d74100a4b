package post

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/pagination"
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
		&models.CategoryModel{},
		&models.PostModel{},
	))
	return db
}

func newTestAuthor(t *testing.T, db *gorm.DB) *models.UserModel {
	t.Helper()
	u := &models.UserModel{Username: "author", Name: "Author", Mail: "author@example.com", IsStaff: true, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestCreateAppliesDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestAuthor(t, db)

	long := strings.Repeat("x", 300)
	post, err := svc.Create(author.ID, &CreatePostDTO{
		Title:   "Hello World",
		Content: long,
	})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", post.Slug)
	assert.Len(t, post.Excerpt, 200)
	assert.Equal(t, "Hello World", post.MetaTitle)
	assert.Equal(t, post.Excerpt, post.MetaDescription)
	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.True(t, post.AllowComments)
	assert.Nil(t, post.PublishedAt)
}

func TestDefaultsNeverOverwritePopulatedFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestAuthor(t, db)

	post, err := svc.Create(author.ID, &CreatePostDTO{
		Title:           "Hello World",
		Slug:            "custom-slug",
		Content:         "body",
		Excerpt:         "custom excerpt",
		MetaTitle:       "custom meta",
		MetaDescription: "custom description",
	})
	require.NoError(t, err)

	newTitle := "Another Title"
	updated, err := svc.Update(post.ID, &UpdatePostDTO{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, "custom-slug", updated.Slug)
	assert.Equal(t, "custom excerpt", updated.Excerpt)
	assert.Equal(t, "custom meta", updated.MetaTitle)
	assert.Equal(t, "custom description", updated.MetaDescription)
}

func TestPublishSetsPublishedAtOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestAuthor(t, db)

	post, err := svc.Create(author.ID, &CreatePostDTO{Title: "Draft", Content: "body"})
	require.NoError(t, err)
	require.Nil(t, post.PublishedAt)

	published := string(models.PostStatusPublished)
	updated, err := svc.Update(post.ID, &UpdatePostDTO{Status: &published})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	first := *updated.PublishedAt

	again, err := svc.Update(post.ID, &UpdatePostDTO{Status: &published})
	require.NoError(t, err)
	assert.Equal(t, first.Unix(), again.PublishedAt.Unix())
}

func TestSlugConflictRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestAuthor(t, db)

	_, err := svc.Create(author.ID, &CreatePostDTO{Title: "Hello World", Content: "a"})
	require.NoError(t, err)

	_, err = svc.Create(author.ID, &CreatePostDTO{Title: "Hello World", Content: "b"})
	assert.EqualError(t, err, "slug already exists")
}

func TestIncrementViews(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestAuthor(t, db)

	post, err := svc.Create(author.ID, &CreatePostDTO{Title: "Views", Content: "body", Status: "published"})
	require.NoError(t, err)

	require.NoError(t, svc.IncrementViews(post.ID))
	require.NoError(t, svc.IncrementViews(post.ID))

	got, err := svc.GetByID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Views)
}

func TestListVisibilityAndRelated(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	author := newTestAuthor(t, db)

	cat := models.CategoryModel{Name: "News", Slug: "news"}
	require.NoError(t, db.Create(&cat).Error)

	published1, err := svc.Create(author.ID, &CreatePostDTO{Title: "One", Content: "a", Status: "published", CategoryID: &cat.ID})
	require.NoError(t, err)
	_, err = svc.Create(author.ID, &CreatePostDTO{Title: "Two", Content: "b", Status: "published", CategoryID: &cat.ID})
	require.NoError(t, err)
	_, err = svc.Create(author.ID, &CreatePostDTO{Title: "Hidden", Content: "c", CategoryID: &cat.ID})
	require.NoError(t, err)

	public, _, err := svc.List(pagination.Query{Page: 1, Size: 10}, ListQuery{}, false)
	require.NoError(t, err)
	assert.Len(t, public, 2)

	all, _, err := svc.List(pagination.Query{Page: 1, Size: 10}, ListQuery{}, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	related, err := svc.Related(published1)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "two", related[0].Slug)
}
