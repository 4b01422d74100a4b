package theme

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/modules/content/settings"
	"gorm.io/gorm"
)

type CreateThemeDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
	AccentColor    *string `json:"accent_color"`

	TextColor      *string `json:"text_color"`
	HeadingColor   *string `json:"heading_color"`
	LinkColor      *string `json:"link_color"`
	LinkHoverColor *string `json:"link_hover_color"`

	BackgroundColor  *string `json:"background_color"`
	SecondaryBgColor *string `json:"secondary_bg_color"`

	HeaderBgColor   *string `json:"header_bg_color"`
	HeaderTextColor *string `json:"header_text_color"`
	FooterBgColor   *string `json:"footer_bg_color"`
	FooterTextColor *string `json:"footer_text_color"`

	ButtonBgColor      *string `json:"button_bg_color"`
	ButtonTextColor    *string `json:"button_text_color"`
	ButtonHoverBgColor *string `json:"button_hover_bg_color"`

	FontFamily        *string `json:"font_family"`
	HeadingFontFamily *string `json:"heading_font_family"`
	FontSizeBase      *string `json:"font_size_base"`
	LineHeight        *string `json:"line_height"`

	BorderRadius *string `json:"border_radius"`
	BoxShadow    *string `json:"box_shadow"`

	CustomCSS *string `json:"custom_css"`

	IsActive  bool `json:"is_active"`
	IsDefault bool `json:"is_default"`
}

type UpdateThemeDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`

	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
	AccentColor    *string `json:"accent_color"`

	TextColor      *string `json:"text_color"`
	HeadingColor   *string `json:"heading_color"`
	LinkColor      *string `json:"link_color"`
	LinkHoverColor *string `json:"link_hover_color"`

	BackgroundColor  *string `json:"background_color"`
	SecondaryBgColor *string `json:"secondary_bg_color"`

	HeaderBgColor   *string `json:"header_bg_color"`
	HeaderTextColor *string `json:"header_text_color"`
	FooterBgColor   *string `json:"footer_bg_color"`
	FooterTextColor *string `json:"footer_text_color"`

	ButtonBgColor      *string `json:"button_bg_color"`
	ButtonTextColor    *string `json:"button_text_color"`
	ButtonHoverBgColor *string `json:"button_hover_bg_color"`

	FontFamily        *string `json:"font_family"`
	HeadingFontFamily *string `json:"heading_font_family"`
	FontSizeBase      *string `json:"font_size_base"`
	LineHeight        *string `json:"line_height"`

	BorderRadius *string `json:"border_radius"`
	BoxShadow    *string `json:"box_shadow"`

	CustomCSS *string `json:"custom_css"`

	IsActive  *bool `json:"is_active"`
	IsDefault *bool `json:"is_default"`
}

type Service struct {
	db       *gorm.DB
	settings *settings.Service
}

func NewService(db *gorm.DB, settingsSvc *settings.Service) *Service {
	return &Service{db: db, settings: settingsSvc}
}

func (s *Service) List() ([]models.ThemeModel, error) {
	var themes []models.ThemeModel
	return themes, s.db.Order("name ASC").Find(&themes).Error
}

func (s *Service) GetByID(id string) (*models.ThemeModel, error) {
	var theme models.ThemeModel
	if err := s.db.First(&theme, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &theme, nil
}

func (s *Service) Create(dto *CreateThemeDTO) (*models.ThemeModel, error) {
	name := strings.TrimSpace(dto.Name)
	var count int64
	s.db.Model(&models.ThemeModel{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("theme name already exists")
	}

	theme := models.ThemeModel{
		Name:        name,
		Description: dto.Description,
		IsActive:    dto.IsActive,
		IsDefault:   dto.IsDefault,
	}
	applyOptionalFields(&theme, optionalFields{
		PrimaryColor: dto.PrimaryColor, SecondaryColor: dto.SecondaryColor, AccentColor: dto.AccentColor,
		TextColor: dto.TextColor, HeadingColor: dto.HeadingColor,
		LinkColor: dto.LinkColor, LinkHoverColor: dto.LinkHoverColor,
		BackgroundColor: dto.BackgroundColor, SecondaryBgColor: dto.SecondaryBgColor,
		HeaderBgColor: dto.HeaderBgColor, HeaderTextColor: dto.HeaderTextColor,
		FooterBgColor: dto.FooterBgColor, FooterTextColor: dto.FooterTextColor,
		ButtonBgColor: dto.ButtonBgColor, ButtonTextColor: dto.ButtonTextColor, ButtonHoverBgColor: dto.ButtonHoverBgColor,
		FontFamily: dto.FontFamily, HeadingFontFamily: dto.HeadingFontFamily,
		FontSizeBase: dto.FontSizeBase, LineHeight: dto.LineHeight,
		BorderRadius: dto.BorderRadius, BoxShadow: dto.BoxShadow,
		CustomCSS: dto.CustomCSS,
	})

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&theme).Error; err != nil {
			return err
		}
		return clearSiblingFlags(tx, &theme)
	})
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

func (s *Service) Update(id string, dto *UpdateThemeDTO) (*models.ThemeModel, error) {
	theme, err := s.GetByID(id)
	if err != nil || theme == nil {
		return theme, err
	}

	if dto.Name != nil {
		theme.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Description != nil {
		theme.Description = *dto.Description
	}
	applyOptionalFields(theme, optionalFields{
		PrimaryColor: dto.PrimaryColor, SecondaryColor: dto.SecondaryColor, AccentColor: dto.AccentColor,
		TextColor: dto.TextColor, HeadingColor: dto.HeadingColor,
		LinkColor: dto.LinkColor, LinkHoverColor: dto.LinkHoverColor,
		BackgroundColor: dto.BackgroundColor, SecondaryBgColor: dto.SecondaryBgColor,
		HeaderBgColor: dto.HeaderBgColor, HeaderTextColor: dto.HeaderTextColor,
		FooterBgColor: dto.FooterBgColor, FooterTextColor: dto.FooterTextColor,
		ButtonBgColor: dto.ButtonBgColor, ButtonTextColor: dto.ButtonTextColor, ButtonHoverBgColor: dto.ButtonHoverBgColor,
		FontFamily: dto.FontFamily, HeadingFontFamily: dto.HeadingFontFamily,
		FontSizeBase: dto.FontSizeBase, LineHeight: dto.LineHeight,
		BorderRadius: dto.BorderRadius, BoxShadow: dto.BoxShadow,
		CustomCSS: dto.CustomCSS,
	})
	if dto.IsActive != nil {
		theme.IsActive = *dto.IsActive
	}
	if dto.IsDefault != nil {
		theme.IsDefault = *dto.IsDefault
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(theme).Error; err != nil {
			return err
		}
		return clearSiblingFlags(tx, theme)
	})
	if err != nil {
		return nil, err
	}
	return theme, nil
}

// Activate flags the theme active and clears the flag everywhere else.
func (s *Service) Activate(id string) (*models.ThemeModel, error) {
	theme, err := s.GetByID(id)
	if err != nil || theme == nil {
		return theme, err
	}
	theme.IsActive = true
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(theme).Update("is_active", true).Error; err != nil {
			return err
		}
		return clearSiblingFlags(tx, theme)
	})
	if err != nil {
		return nil, err
	}
	return theme, nil
}

func (s *Service) Delete(id string) error {
	return s.db.Delete(&models.ThemeModel{}, "id = ?", id).Error
}

// Resolve returns the effective theme: the settings reference wins, then
// the active flag, then the default flag, then none.
func (s *Service) Resolve() (*models.ThemeModel, error) {
	cfg, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	if cfg.ActiveThemeID != nil {
		if theme, err := s.GetByID(*cfg.ActiveThemeID); err != nil {
			return nil, err
		} else if theme != nil {
			return theme, nil
		}
	}

	var theme models.ThemeModel
	err = s.db.Where("is_active = ?", true).First(&theme).Error
	if err == nil {
		return &theme, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = s.db.Where("is_default = ?", true).First(&theme).Error
	if err == nil {
		return &theme, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return nil, nil
}

// clearSiblingFlags drops active/default flags on every other row for
// each flag the saved theme carries. Runs inside the save transaction so
// the at-most-one invariant holds even across concurrent saves.
func clearSiblingFlags(tx *gorm.DB, theme *models.ThemeModel) error {
	if theme.IsActive {
		if err := tx.Model(&models.ThemeModel{}).
			Where("id <> ? AND is_active = ?", theme.ID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
	}
	if theme.IsDefault {
		if err := tx.Model(&models.ThemeModel{}).
			Where("id <> ? AND is_default = ?", theme.ID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
	}
	return nil
}

type optionalFields struct {
	PrimaryColor, SecondaryColor, AccentColor          *string
	TextColor, HeadingColor, LinkColor, LinkHoverColor *string
	BackgroundColor, SecondaryBgColor                  *string
	HeaderBgColor, HeaderTextColor                     *string
	FooterBgColor, FooterTextColor                     *string
	ButtonBgColor, ButtonTextColor, ButtonHoverBgColor *string
	FontFamily, HeadingFontFamily, FontSizeBase        *string
	LineHeight, BorderRadius, BoxShadow, CustomCSS     *string
}

func applyOptionalFields(theme *models.ThemeModel, f optionalFields) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&theme.PrimaryColor, f.PrimaryColor)
	set(&theme.SecondaryColor, f.SecondaryColor)
	set(&theme.AccentColor, f.AccentColor)
	set(&theme.TextColor, f.TextColor)
	set(&theme.HeadingColor, f.HeadingColor)
	set(&theme.LinkColor, f.LinkColor)
	set(&theme.LinkHoverColor, f.LinkHoverColor)
	set(&theme.BackgroundColor, f.BackgroundColor)
	set(&theme.SecondaryBgColor, f.SecondaryBgColor)
	set(&theme.HeaderBgColor, f.HeaderBgColor)
	set(&theme.HeaderTextColor, f.HeaderTextColor)
	set(&theme.FooterBgColor, f.FooterBgColor)
	set(&theme.FooterTextColor, f.FooterTextColor)
	set(&theme.ButtonBgColor, f.ButtonBgColor)
	set(&theme.ButtonTextColor, f.ButtonTextColor)
	set(&theme.ButtonHoverBgColor, f.ButtonHoverBgColor)
	set(&theme.FontFamily, f.FontFamily)
	set(&theme.HeadingFontFamily, f.HeadingFontFamily)
	set(&theme.FontSizeBase, f.FontSizeBase)
	set(&theme.LineHeight, f.LineHeight)
	set(&theme.BorderRadius, f.BorderRadius)
	set(&theme.BoxShadow, f.BoxShadow)
	set(&theme.CustomCSS, f.CustomCSS)
}
