package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/slug"
)

var (
	ErrCoreModule       = errors.New("core modules cannot be deactivated")
	ErrInvalidValueType = errors.New("invalid value type")
	ErrValueMismatch    = errors.New("value does not match its declared type")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateModuleDTO struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IsActive    *bool  `json:"is_active"`
	IsCore      bool   `json:"is_core"`
	MenuOrder   int    `json:"menu_order"`
	URLPrefix   string `json:"url_prefix"`
}

type UpdateModuleDTO struct {
	DisplayName *string `json:"display_name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	IsActive    *bool   `json:"is_active"`
	MenuOrder   *int    `json:"menu_order"`
	URLPrefix   *string `json:"url_prefix"`
}

type PermissionDTO struct {
	UserID    string `json:"user_id" binding:"required"`
	CanView   *bool  `json:"can_view"`
	CanCreate *bool  `json:"can_create"`
	CanEdit   *bool  `json:"can_edit"`
	CanDelete *bool  `json:"can_delete"`
}

func (s *Service) Register(dto CreateModuleDTO) (*models.ModuleModel, error) {
	mod := &models.ModuleModel{
		Name:        dto.Name,
		DisplayName: dto.DisplayName,
		Description: dto.Description,
		Icon:        dto.Icon,
		IsActive:    true,
		IsCore:      dto.IsCore,
		MenuOrder:   dto.MenuOrder,
		URLPrefix:   dto.URLPrefix,
	}
	if dto.IsActive != nil {
		mod.IsActive = *dto.IsActive
	}
	if mod.Name == "" {
		mod.Name = slug.Make(mod.DisplayName)
	}
	if mod.URLPrefix == "" {
		mod.URLPrefix = "/" + mod.Name
	}

	var count int64
	if err := s.db.Model(&models.ModuleModel{}).Where("name = ?", mod.Name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("module %q is already registered", mod.Name)
	}
	if err := s.db.Create(mod).Error; err != nil {
		return nil, err
	}
	return mod, nil
}

func (s *Service) Update(id string, dto UpdateModuleDTO) (*models.ModuleModel, error) {
	mod, err := s.ByID(id)
	if err != nil || mod == nil {
		return mod, err
	}
	if dto.DisplayName != nil {
		mod.DisplayName = *dto.DisplayName
	}
	if dto.Description != nil {
		mod.Description = *dto.Description
	}
	if dto.Icon != nil {
		mod.Icon = *dto.Icon
	}
	if dto.IsActive != nil {
		if !*dto.IsActive && mod.IsCore {
			return nil, ErrCoreModule
		}
		mod.IsActive = *dto.IsActive
	}
	if dto.MenuOrder != nil {
		mod.MenuOrder = *dto.MenuOrder
	}
	if dto.URLPrefix != nil {
		mod.URLPrefix = *dto.URLPrefix
	}
	if err := s.db.Save(mod).Error; err != nil {
		return nil, err
	}
	return mod, nil
}

func (s *Service) ByID(id string) (*models.ModuleModel, error) {
	var mod models.ModuleModel
	err := s.db.Preload("Settings").Where("id = ?", id).First(&mod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mod, nil
}

func (s *Service) ByName(name string) (*models.ModuleModel, error) {
	var mod models.ModuleModel
	err := s.db.Preload("Settings").Where("name = ?", name).First(&mod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mod, nil
}

// List returns modules in menu order. Inactive ones are included only when
// requested.
func (s *Service) List(includeInactive bool) ([]models.ModuleModel, error) {
	q := s.db.Model(&models.ModuleModel{})
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	var mods []models.ModuleModel
	if err := q.Order("menu_order ASC, display_name ASC").Find(&mods).Error; err != nil {
		return nil, err
	}
	return mods, nil
}

// Activate toggles a module on or off. Core modules refuse deactivation.
func (s *Service) Activate(id string, active bool) (*models.ModuleModel, error) {
	mod, err := s.ByID(id)
	if err != nil || mod == nil {
		return mod, err
	}
	if !active && mod.IsCore {
		return nil, ErrCoreModule
	}
	if err := s.db.Model(mod).Update("is_active", active).Error; err != nil {
		return nil, err
	}
	mod.IsActive = active
	return mod, nil
}

func (s *Service) Unregister(id string) error {
	mod, err := s.ByID(id)
	if err != nil {
		return err
	}
	if mod == nil {
		return gorm.ErrRecordNotFound
	}
	if mod.IsCore {
		return ErrCoreModule
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("module_id = ?", id).Delete(&models.ModuleSettingsModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id = ?", id).Delete(&models.ModulePermissionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ModuleModel{}, "id = ?", id).Error
	})
}

// SetSetting upserts a typed setting. The value is validated against the
// declared type before it is stored, so reads never meet a malformed value.
func (s *Service) SetSetting(moduleID, key, value, valueType string) (*models.ModuleSettingsModel, error) {
	if valueType == "" {
		valueType = models.SettingTypeString
	}
	if err := validateSettingValue(value, valueType); err != nil {
		return nil, err
	}

	var setting models.ModuleSettingsModel
	err := s.db.Where("module_id = ? AND `key` = ?", moduleID, key).First(&setting).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		setting = models.ModuleSettingsModel{
			ModuleID:  moduleID,
			Key:       key,
			Value:     value,
			ValueType: valueType,
		}
		if err := s.db.Create(&setting).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		setting.Value = value
		setting.ValueType = valueType
		if err := s.db.Save(&setting).Error; err != nil {
			return nil, err
		}
	}
	return &setting, nil
}

// Setting returns the stored row for a key, or nil when unset.
func (s *Service) Setting(moduleID, key string) (*models.ModuleSettingsModel, error) {
	var setting models.ModuleSettingsModel
	err := s.db.Where("module_id = ? AND `key` = ?", moduleID, key).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// SettingValue converts a stored setting to its declared Go type: int64 for
// integer, bool for boolean, any decoded JSON value for json, string
// otherwise. Unset keys yield the given fallback.
func (s *Service) SettingValue(moduleID, key string, fallback interface{}) (interface{}, error) {
	setting, err := s.Setting(moduleID, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return fallback, nil
	}
	switch setting.ValueType {
	case models.SettingTypeInteger:
		return strconv.ParseInt(setting.Value, 10, 64)
	case models.SettingTypeBoolean:
		return parseBool(setting.Value), nil
	case models.SettingTypeJSON:
		var out interface{}
		if err := json.Unmarshal([]byte(setting.Value), &out); err != nil {
			return nil, err
		}
		return out, nil
	default:
		return setting.Value, nil
	}
}

func (s *Service) ListSettings(moduleID string) ([]models.ModuleSettingsModel, error) {
	var settings []models.ModuleSettingsModel
	err := s.db.Where("module_id = ?", moduleID).Order("`key` ASC").Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *Service) DeleteSetting(moduleID, key string) error {
	res := s.db.Where("module_id = ? AND `key` = ?", moduleID, key).
		Delete(&models.ModuleSettingsModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GrantPermission upserts a user's access flags for a module.
func (s *Service) GrantPermission(moduleID string, dto PermissionDTO) (*models.ModulePermissionModel, error) {
	var perm models.ModulePermissionModel
	err := s.db.Where("module_id = ? AND user_id = ?", moduleID, dto.UserID).First(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		perm = models.ModulePermissionModel{
			ModuleID: moduleID,
			UserID:   dto.UserID,
			CanView:  true,
		}
	} else if err != nil {
		return nil, err
	}
	if dto.CanView != nil {
		perm.CanView = *dto.CanView
	}
	if dto.CanCreate != nil {
		perm.CanCreate = *dto.CanCreate
	}
	if dto.CanEdit != nil {
		perm.CanEdit = *dto.CanEdit
	}
	if dto.CanDelete != nil {
		perm.CanDelete = *dto.CanDelete
	}
	if err := s.db.Save(&perm).Error; err != nil {
		return nil, err
	}
	return &perm, nil
}

func (s *Service) RevokePermission(moduleID, userID string) error {
	res := s.db.Where("module_id = ? AND user_id = ?", moduleID, userID).
		Delete(&models.ModulePermissionModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Service) ListPermissions(moduleID string) ([]models.ModulePermissionModel, error) {
	var perms []models.ModulePermissionModel
	err := s.db.Preload("User").Where("module_id = ?", moduleID).Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}

// Permission returns the user's flags for a module. Users without a row get
// view-only access when the module is active.
func (s *Service) Permission(moduleID, userID string) (*models.ModulePermissionModel, error) {
	var perm models.ModulePermissionModel
	err := s.db.Where("module_id = ? AND user_id = ?", moduleID, userID).First(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ModulePermissionModel{ModuleID: moduleID, UserID: userID, CanView: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &perm, nil
}

func validateSettingValue(value, valueType string) error {
	switch valueType {
	case models.SettingTypeString:
		return nil
	case models.SettingTypeInteger:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrValueMismatch, value)
		}
		return nil
	case models.SettingTypeBoolean:
		switch strings.ToLower(value) {
		case "true", "false", "1", "0", "yes", "no":
			return nil
		}
		return fmt.Errorf("%w: %q is not a boolean", ErrValueMismatch, value)
	case models.SettingTypeJSON:
		if !json.Valid([]byte(value)) {
			return fmt.Errorf("%w: %q is not valid json", ErrValueMismatch, value)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidValueType, valueType)
	}
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}
