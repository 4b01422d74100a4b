package registry

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
	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.ModuleModel{},
		&models.ModuleSettingsModel{},
		&models.ModulePermissionModel{},
	))
	return db
}

func TestRegisterDefaults(t *testing.T) {
	svc := NewService(newTestDB(t))

	mod, err := svc.Register(CreateModuleDTO{DisplayName: "Photo Gallery"})
	require.NoError(t, err)
	assert.Equal(t, "photo-gallery", mod.Name)
	assert.Equal(t, "/photo-gallery", mod.URLPrefix)
	assert.True(t, mod.IsActive)
	assert.False(t, mod.IsCore)

	_, err = svc.Register(CreateModuleDTO{DisplayName: "Gallery", Name: "photo-gallery"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestCoreModuleCannotBeDeactivated(t *testing.T) {
	svc := NewService(newTestDB(t))

	core, err := svc.Register(CreateModuleDTO{DisplayName: "Content", IsCore: true})
	require.NoError(t, err)

	_, err = svc.Activate(core.ID, false)
	assert.ErrorIs(t, err, ErrCoreModule)

	inactive := false
	_, err = svc.Update(core.ID, UpdateModuleDTO{IsActive: &inactive})
	assert.ErrorIs(t, err, ErrCoreModule)

	assert.ErrorIs(t, svc.Unregister(core.ID), ErrCoreModule)

	plain, err := svc.Register(CreateModuleDTO{DisplayName: "Optional"})
	require.NoError(t, err)
	toggled, err := svc.Activate(plain.ID, false)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
}

func TestListHonorsActiveFilter(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.Register(CreateModuleDTO{DisplayName: "Shop", MenuOrder: 2})
	require.NoError(t, err)
	blog, err := svc.Register(CreateModuleDTO{DisplayName: "Blog", MenuOrder: 1})
	require.NoError(t, err)
	_, err = svc.Activate(blog.ID, false)
	require.NoError(t, err)

	active, err := svc.List(false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Shop", active[0].DisplayName)

	all, err := svc.List(true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Blog", all[0].DisplayName)
}

func TestSettingsValidateOnWrite(t *testing.T) {
	svc := NewService(newTestDB(t))
	mod, err := svc.Register(CreateModuleDTO{DisplayName: "Shop"})
	require.NoError(t, err)

	_, err = svc.SetSetting(mod.ID, "per_page", "abc", models.SettingTypeInteger)
	assert.ErrorIs(t, err, ErrValueMismatch)

	_, err = svc.SetSetting(mod.ID, "enabled", "maybe", models.SettingTypeBoolean)
	assert.ErrorIs(t, err, ErrValueMismatch)

	_, err = svc.SetSetting(mod.ID, "layout", "{broken", models.SettingTypeJSON)
	assert.ErrorIs(t, err, ErrValueMismatch)

	_, err = svc.SetSetting(mod.ID, "x", "1", "float")
	assert.ErrorIs(t, err, ErrInvalidValueType)

	// Nothing malformed ever reaches storage.
	settings, err := svc.ListSettings(mod.ID)
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestSettingValueConversion(t *testing.T) {
	svc := NewService(newTestDB(t))
	mod, err := svc.Register(CreateModuleDTO{DisplayName: "Shop"})
	require.NoError(t, err)

	_, err = svc.SetSetting(mod.ID, "per_page", "24", models.SettingTypeInteger)
	require.NoError(t, err)
	_, err = svc.SetSetting(mod.ID, "enabled", "Yes", models.SettingTypeBoolean)
	require.NoError(t, err)
	_, err = svc.SetSetting(mod.ID, "layout", `{"columns": 3}`, models.SettingTypeJSON)
	require.NoError(t, err)
	_, err = svc.SetSetting(mod.ID, "title", "Storefront", "")
	require.NoError(t, err)

	v, err := svc.SettingValue(mod.ID, "per_page", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(24), v)

	v, err = svc.SettingValue(mod.ID, "enabled", nil)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = svc.SettingValue(mod.ID, "layout", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"columns": float64(3)}, v)

	v, err = svc.SettingValue(mod.ID, "title", nil)
	require.NoError(t, err)
	assert.Equal(t, "Storefront", v)

	v, err = svc.SettingValue(mod.ID, "missing", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", v)
}

func TestSetSettingUpserts(t *testing.T) {
	svc := NewService(newTestDB(t))
	mod, err := svc.Register(CreateModuleDTO{DisplayName: "Shop"})
	require.NoError(t, err)

	first, err := svc.SetSetting(mod.ID, "per_page", "12", models.SettingTypeInteger)
	require.NoError(t, err)
	second, err := svc.SetSetting(mod.ID, "per_page", "24", models.SettingTypeInteger)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "24", second.Value)

	settings, err := svc.ListSettings(mod.ID)
	require.NoError(t, err)
	assert.Len(t, settings, 1)
}

func TestPermissions(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	mod, err := svc.Register(CreateModuleDTO{DisplayName: "Shop"})
	require.NoError(t, err)

	user := &models.UserModel{Username: "editor", Name: "Editor", Mail: "editor@example.com", IsActive: true}
	require.NoError(t, db.Create(user).Error)

	canEdit := true
	perm, err := svc.GrantPermission(mod.ID, PermissionDTO{UserID: user.ID, CanEdit: &canEdit})
	require.NoError(t, err)
	assert.True(t, perm.CanView)
	assert.True(t, perm.CanEdit)
	assert.False(t, perm.CanDelete)

	// Re-granting updates the same row.
	canDelete := true
	again, err := svc.GrantPermission(mod.ID, PermissionDTO{UserID: user.ID, CanDelete: &canDelete})
	require.NoError(t, err)
	assert.Equal(t, perm.ID, again.ID)
	assert.True(t, again.CanDelete)
	assert.True(t, again.CanEdit)

	// Users without a row fall back to view-only.
	fallback, err := svc.Permission(mod.ID, "someone-else")
	require.NoError(t, err)
	assert.True(t, fallback.CanView)
	assert.False(t, fallback.CanEdit)

	require.NoError(t, svc.RevokePermission(mod.ID, user.ID))
	assert.ErrorIs(t, svc.RevokePermission(mod.ID, user.ID), gorm.ErrRecordNotFound)
}

func TestUnregisterCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)
	mod, err := svc.Register(CreateModuleDTO{DisplayName: "Shop"})
	require.NoError(t, err)

	_, err = svc.SetSetting(mod.ID, "per_page", "10", models.SettingTypeInteger)
	require.NoError(t, err)

	require.NoError(t, svc.Unregister(mod.ID))

	gone, err := svc.ByID(mod.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var settings int64
	require.NoError(t, db.Model(&models.ModuleSettingsModel{}).Count(&settings).Error)
	assert.Zero(t, settings)
}
