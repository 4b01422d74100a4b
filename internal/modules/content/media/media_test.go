package media

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpy/core/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestInferType(t *testing.T) {
	cases := map[string]models.MediaType{
		"photo.JPG":    models.MediaImage,
		"clip.webm":    models.MediaVideo,
		"report.pdf":   models.MediaDocument,
		"archive.zip":  models.MediaOther,
		"no-extension": models.MediaOther,
	}
	for name, want := range cases {
		assert.Equal(t, want, InferType(name), "file %q", name)
	}
}

func TestRecordCapturesTypeAndSize(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}, &models.MediaModel{}))

	user := models.UserModel{Username: "up", Name: "Uploader", Mail: "up@example.com"}
	require.NoError(t, db.Create(&user).Error)

	svc := NewService(db)
	item, err := svc.Record(user.ID, "", "banner.png", "/api/v1/media/file/banner.png", 2048)
	require.NoError(t, err)
	assert.Equal(t, models.MediaImage, item.FileType)
	assert.Equal(t, int64(2048), item.FileSize)
	assert.Equal(t, "banner.png", item.Title)
}
