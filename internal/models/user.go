package models

import "time"

// UserModel represents a registered account. Staff accounts can reach the
// dashboard and moderation endpoints.
type UserModel struct {
	Base
	Username      string     `json:"username"        gorm:"uniqueIndex;not null"`
	Name          string     `json:"name"`
	Mail          string     `json:"mail"            gorm:"index"`
	Avatar        string     `json:"avatar"`
	Password      string     `json:"-"               gorm:"not null"`
	IsStaff       bool       `json:"is_staff"        gorm:"default:false"`
	IsActive      bool       `json:"is_active"       gorm:"default:true;index"`
	LastLoginTime *time.Time `json:"last_login_time"`
	LastLoginIP   string     `json:"last_login_ip"`
}

func (UserModel) TableName() string { return "users" }

// DisplayName returns the human-facing name, falling back to the username.
func (u UserModel) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
