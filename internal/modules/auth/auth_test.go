package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}, &models.UserSession{}))
	return db
}

func TestFirstRegisteredUserIsStaff(t *testing.T) {
	svc := NewService(newTestDB(t))

	first, err := svc.Register(&RegisterDTO{
		Username: "Admin", Password: "secret123", Mail: "admin@example.com",
	})
	require.NoError(t, err)
	assert.True(t, first.IsStaff)
	assert.Equal(t, "admin", first.Username)

	second, err := svc.Register(&RegisterDTO{
		Username: "reader", Password: "secret123", Mail: "reader@example.com",
	})
	require.NoError(t, err)
	assert.False(t, second.IsStaff)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.Register(&RegisterDTO{
		Username: "alice", Password: "secret123", Mail: "alice@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Register(&RegisterDTO{
		Username: "ALICE", Password: "secret123", Mail: "other@example.com",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.Register(&RegisterDTO{
		Username: "alice2", Password: "secret123", Mail: "Alice@example.com",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginIssuesSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	u, err := svc.Register(&RegisterDTO{
		Username: "alice", Password: "secret123", Mail: "alice@example.com",
	})
	require.NoError(t, err)

	token, logged, err := svc.Login(
		&LoginDTO{Username: "alice", Password: "secret123"}, "127.0.0.1", "tests")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, u.ID, logged.ID)
	assert.NotNil(t, logged.LastLoginTime)

	sessions, err := session.ListActive(db, u.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	_, _, err = svc.Login(&LoginDTO{Username: "alice", Password: "wrong"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(&LoginDTO{Username: "nobody", Password: "secret123"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRefusesDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	u, err := svc.Register(&RegisterDTO{
		Username: "alice", Password: "secret123", Mail: "alice@example.com",
	})
	require.NoError(t, err)

	_, err = svc.SetActive(u.ID, false)
	require.NoError(t, err)

	_, _, err = svc.Login(&LoginDTO{Username: "alice", Password: "secret123"}, "", "")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestDisablingAccountRevokesSessions(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	u, err := svc.Register(&RegisterDTO{
		Username: "alice", Password: "secret123", Mail: "alice@example.com",
	})
	require.NoError(t, err)
	_, _, err = svc.Login(&LoginDTO{Username: "alice", Password: "secret123"}, "", "")
	require.NoError(t, err)

	_, err = svc.SetActive(u.ID, false)
	require.NoError(t, err)

	sessions, err := session.ListActive(db, u.ID)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db)

	u, err := svc.Register(&RegisterDTO{
		Username: "alice", Password: "secret123", Mail: "alice@example.com",
	})
	require.NoError(t, err)

	newPassword := "differentpw"
	name := "Alice L"
	updated, err := svc.UpdateProfile(u.ID, &UpdateProfileDTO{
		Name:     &name,
		Password: &newPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice L", updated.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte(newPassword)))

	short := "abc"
	_, err = svc.UpdateProfile(u.ID, &UpdateProfileDTO{Password: &short})
	require.Error(t, err)
}

func TestSetStaffToggle(t *testing.T) {
	svc := NewService(newTestDB(t))

	_, err := svc.Register(&RegisterDTO{
		Username: "admin", Password: "secret123", Mail: "admin@example.com",
	})
	require.NoError(t, err)
	u, err := svc.Register(&RegisterDTO{
		Username: "bob", Password: "secret123", Mail: "bob@example.com",
	})
	require.NoError(t, err)
	require.False(t, u.IsStaff)

	promoted, err := svc.SetStaff(u.ID, true)
	require.NoError(t, err)
	assert.True(t, promoted.IsStaff)
}
