package settings

import (
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
	require.NoError(t, db.AutoMigrate(&models.SiteSettingsModel{}))
	return db
}

func TestGetCreatesSingletonOnFirstAccess(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	row, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, uint(models.SiteSettingsID), row.ID)
	assert.Equal(t, "My Site", row.SiteName)
	assert.True(t, row.CommentsEnabled)
	assert.True(t, row.CommentsRequireApproval)
	assert.Equal(t, 10, row.PostsPerPage)

	again, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, row.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.SiteSettingsModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	name := "WordPy"
	perPage := 25
	disabled := false
	row, err := svc.Update(&UpdateSettingsDTO{
		SiteName:        &name,
		PostsPerPage:    &perPage,
		CommentsEnabled: &disabled,
	})
	require.NoError(t, err)
	assert.Equal(t, "WordPy", row.SiteName)
	assert.Equal(t, 25, row.PostsPerPage)
	assert.False(t, row.CommentsEnabled)
}

func TestUpdateRejectsInvalidPostsPerPage(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	zero := 0
	_, err := svc.Update(&UpdateSettingsDTO{PostsPerPage: &zero})
	assert.EqualError(t, err, "posts_per_page must be at least 1")
}

func TestUpdateClearsReferencesWithEmptyString(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	empty := ""
	row, err := svc.Update(&UpdateSettingsDTO{ActiveThemeID: &empty, HomePageID: &empty})
	require.NoError(t, err)
	assert.Nil(t, row.ActiveThemeID)
	assert.Nil(t, row.HomePageID)
}
