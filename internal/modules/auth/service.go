package auth

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already registered")
)

const sessionTTL = 30 * 24 * time.Hour

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	Mail     string `json:"mail" binding:"required,email"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileDTO struct {
	Name     *string `json:"name"`
	Mail     *string `json:"mail"`
	Avatar   *string `json:"avatar"`
	Password *string `json:"password"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register creates a new account. The first account on a fresh install
// becomes staff automatically; everyone after that signs up as a regular
// user.
func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	username := strings.ToLower(strings.TrimSpace(dto.Username))
	mail := strings.ToLower(strings.TrimSpace(dto.Mail))

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}
	if err := s.db.Model(&models.UserModel{}).Where("mail = ?", mail).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.Model(&models.UserModel{}).Count(&total).Error; err != nil {
		return nil, err
	}

	name := dto.Name
	if name == "" {
		name = username
	}
	u := &models.UserModel{
		Username: username,
		Name:     name,
		Mail:     mail,
		Password: string(hash),
		IsStaff:  total == 0,
		IsActive: true,
	}
	if err := s.db.Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues a session-bound token.
func (s *Service) Login(dto *LoginDTO, ip, ua string) (string, *models.UserModel, error) {
	var u models.UserModel
	err := s.db.Where("username = ?", strings.ToLower(strings.TrimSpace(dto.Username))).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(dto.Password)) != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return "", nil, ErrAccountDisabled
	}

	token, _, err := session.Issue(s.db, u.ID, ip, ua, sessionTTL)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	s.db.Model(&u).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	})
	u.LastLoginTime = &now
	u.LastLoginIP = ip
	return token, &u, nil
}

// Profile loads the caller's account.
func (s *Service) Profile(userID string) (*models.UserModel, error) {
	var u models.UserModel
	err := s.db.Where("id = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile applies the non-nil fields; a new password is re-hashed.
func (s *Service) UpdateProfile(userID string, dto *UpdateProfileDTO) (*models.UserModel, error) {
	u, err := s.Profile(userID)
	if err != nil || u == nil {
		return u, err
	}
	if dto.Name != nil {
		u.Name = *dto.Name
	}
	if dto.Mail != nil {
		mail := strings.ToLower(strings.TrimSpace(*dto.Mail))
		var count int64
		if err := s.db.Model(&models.UserModel{}).
			Where("mail = ? AND id <> ?", mail, userID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailTaken
		}
		u.Mail = mail
	}
	if dto.Avatar != nil {
		u.Avatar = *dto.Avatar
	}
	if dto.Password != nil {
		if len(*dto.Password) < 6 {
			return nil, errors.New("password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.Password = string(hash)
	}
	if err := s.db.Save(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// Sessions lists the caller's active sessions.
func (s *Service) Sessions(userID string) ([]models.UserSession, error) {
	return session.ListActive(s.db, userID)
}

// RevokeSession ends one of the caller's sessions.
func (s *Service) RevokeSession(userID, sessionID string) error {
	return session.Revoke(s.db, userID, sessionID)
}

// RevokeOtherSessions ends every session except the current one.
func (s *Service) RevokeOtherSessions(userID, keepSessionID string) error {
	return session.RevokeAllExcept(s.db, userID, keepSessionID)
}

// SetStaff toggles the staff flag on an account.
func (s *Service) SetStaff(userID string, isStaff bool) (*models.UserModel, error) {
	u, err := s.Profile(userID)
	if err != nil || u == nil {
		return u, err
	}
	if err := s.db.Model(u).Update("is_staff", isStaff).Error; err != nil {
		return nil, err
	}
	u.IsStaff = isStaff
	return u, nil
}

// SetActive enables or disables an account. Disabling also revokes its
// sessions so outstanding tokens stop working.
func (s *Service) SetActive(userID string, isActive bool) (*models.UserModel, error) {
	u, err := s.Profile(userID)
	if err != nil || u == nil {
		return u, err
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(u).Update("is_active", isActive).Error; err != nil {
			return err
		}
		if !isActive {
			now := time.Now()
			return tx.Model(&models.UserSession{}).
				Where("user_id = ? AND revoked_at IS NULL", userID).
				Update("revoked_at", now).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.IsActive = isActive
	return u, nil
}

// ListUsers returns all accounts for the admin user list.
func (s *Service) ListUsers() ([]models.UserModel, error) {
	var users []models.UserModel
	err := s.db.Order("created_at ASC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
