package theme

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/modules/content/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServices(t *testing.T) (*gorm.DB, *Service, *settings.Service) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ThemeModel{}, &models.SiteSettingsModel{}))

	settingsSvc := settings.NewService(db)
	return db, NewService(db, settingsSvc), settingsSvc
}

func activeCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.ThemeModel{}).Where("is_active = ?", true).Count(&n).Error)
	return n
}

func TestSavingActiveThemeClearsSiblings(t *testing.T) {
	db, svc, _ := newTestServices(t)

	first, err := svc.Create(&CreateThemeDTO{Name: "First", IsActive: true, IsDefault: true})
	require.NoError(t, err)

	second, err := svc.Create(&CreateThemeDTO{Name: "Second", IsActive: true})
	require.NoError(t, err)

	assert.Equal(t, int64(1), activeCount(t, db))

	got, err := svc.GetByID(first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.True(t, got.IsDefault)

	got, err = svc.GetByID(second.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestActivate(t *testing.T) {
	db, svc, _ := newTestServices(t)

	a, err := svc.Create(&CreateThemeDTO{Name: "A", IsActive: true})
	require.NoError(t, err)
	b, err := svc.Create(&CreateThemeDTO{Name: "B"})
	require.NoError(t, err)

	_, err = svc.Activate(b.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1), activeCount(t, db))
	got, err := svc.GetByID(a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestResolutionOrder(t *testing.T) {
	_, svc, settingsSvc := newTestServices(t)

	resolved, err := svc.Resolve()
	require.NoError(t, err)
	assert.Nil(t, resolved)

	def, err := svc.Create(&CreateThemeDTO{Name: "Default", IsDefault: true})
	require.NoError(t, err)

	resolved, err = svc.Resolve()
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, def.ID, resolved.ID)

	active, err := svc.Create(&CreateThemeDTO{Name: "Active", IsActive: true})
	require.NoError(t, err)

	resolved, err = svc.Resolve()
	require.NoError(t, err)
	assert.Equal(t, active.ID, resolved.ID)

	pinned, err := svc.Create(&CreateThemeDTO{Name: "Pinned"})
	require.NoError(t, err)
	_, err = settingsSvc.Update(&settings.UpdateSettingsDTO{ActiveThemeID: &pinned.ID})
	require.NoError(t, err)

	resolved, err = svc.Resolve()
	require.NoError(t, err)
	assert.Equal(t, pinned.ID, resolved.ID)
}

func TestCSSRendering(t *testing.T) {
	theme := &models.ThemeModel{
		PrimaryColor: "#112233",
		FontFamily:   "serif",
		CustomCSS:    ".hero { padding: 0; }",
	}

	css := CSS(theme)
	assert.Contains(t, css, "--primary-color: #112233;")
	assert.Contains(t, css, "--heading-font-family: serif;")
	assert.Contains(t, css, ".hero { padding: 0; }")
	assert.True(t, strings.HasPrefix(css, ":root {"))
}

func TestCSSWithoutTheme(t *testing.T) {
	assert.Equal(t, NoThemeCSS, CSS(nil))
}
