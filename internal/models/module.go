package models

import "time"

// ModuleModel is a registered platform module that can be toggled per site.
// Core modules cannot be deactivated.
type ModuleModel struct {
	Base
	Name        string `json:"name"        gorm:"uniqueIndex;not null"`
	DisplayName string `json:"display_name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Icon        string `json:"icon"`
	IsActive    bool   `json:"is_active"   gorm:"default:true;index"`
	IsCore      bool   `json:"is_core"     gorm:"default:false"`
	MenuOrder   int    `json:"menu_order"  gorm:"default:0"`
	URLPrefix   string `json:"url_prefix"`

	Settings []ModuleSettingsModel `json:"settings,omitempty" gorm:"foreignKey:ModuleID"`
}

func (ModuleModel) TableName() string { return "modules" }

// Value types accepted by module settings.
const (
	SettingTypeString  = "string"
	SettingTypeInteger = "integer"
	SettingTypeBoolean = "boolean"
	SettingTypeJSON    = "json"
)

// ModuleSettingsModel is a typed key/value setting scoped to a module.
// Keys are unique within a module.
type ModuleSettingsModel struct {
	ID        uint      `json:"id"        gorm:"primaryKey;autoIncrement"`
	ModuleID  string    `json:"module_id" gorm:"type:char(36);uniqueIndex:uniq_module_key;index;not null"`
	Key       string    `json:"key"       gorm:"uniqueIndex:uniq_module_key;not null"`
	Value     string    `json:"value"     gorm:"type:text"`
	ValueType string    `json:"value_type" gorm:"default:'string'"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

func (ModuleSettingsModel) TableName() string { return "module_settings" }

// ModulePermissionModel grants a user per-module access flags; one row per
// (module, user).
type ModulePermissionModel struct {
	ID        uint       `json:"id"        gorm:"primaryKey;autoIncrement"`
	ModuleID  string     `json:"module_id" gorm:"type:char(36);uniqueIndex:uniq_module_user;index;not null"`
	UserID    string     `json:"user_id"   gorm:"type:char(36);uniqueIndex:uniq_module_user;index;not null"`
	User      *UserModel `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CanView   bool       `json:"can_view"   gorm:"default:true"`
	CanCreate bool       `json:"can_create" gorm:"default:false"`
	CanEdit   bool       `json:"can_edit"   gorm:"default:false"`
	CanDelete bool       `json:"can_delete" gorm:"default:false"`
	CreatedAt time.Time  `json:"created"`
	UpdatedAt time.Time  `json:"modified"`
}

func (ModulePermissionModel) TableName() string { return "module_permissions" }
