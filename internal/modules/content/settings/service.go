package settings

import (
	"errors"
	"fmt"

	"github.com/wordpy/core/internal/models"
	"gorm.io/gorm"
)

type UpdateSettingsDTO struct {
	SiteName                *string `json:"site_name"`
	SiteDescription         *string `json:"site_description"`
	SiteLogo                *string `json:"site_logo"`
	Favicon                 *string `json:"favicon"`
	FooterText              *string `json:"footer_text"`
	FacebookURL             *string `json:"facebook_url"`
	TwitterURL              *string `json:"twitter_url"`
	InstagramURL            *string `json:"instagram_url"`
	LinkedInURL             *string `json:"linkedin_url"`
	YouTubeURL              *string `json:"youtube_url"`
	GoogleAnalyticsID       *string `json:"google_analytics_id"`
	MetaKeywords            *string `json:"meta_keywords"`
	CommentsEnabled         *bool   `json:"comments_enabled"`
	CommentsRequireApproval *bool   `json:"comments_require_approval"`
	PostsPerPage            *int    `json:"posts_per_page"`
	HomePageID              *string `json:"home_page_id"`
	ActiveThemeID           *string `json:"active_theme_id"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns the singleton settings row, creating it with defaults on
// first access.
func (s *Service) Get() (*models.SiteSettingsModel, error) {
	var row models.SiteSettingsModel
	err := s.db.First(&row, "id = ?", models.SiteSettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.SiteSettingsModel{
			ID:                      models.SiteSettingsID,
			SiteName:                "My Site",
			CommentsEnabled:         true,
			CommentsRequireApproval: true,
			PostsPerPage:            10,
		}
		if createErr := s.db.Create(&row).Error; createErr != nil {
			return nil, createErr
		}
		return &row, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) Update(dto *UpdateSettingsDTO) (*models.SiteSettingsModel, error) {
	row, err := s.Get()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.SiteName != nil {
		updates["site_name"] = *dto.SiteName
	}
	if dto.SiteDescription != nil {
		updates["site_description"] = *dto.SiteDescription
	}
	if dto.SiteLogo != nil {
		updates["site_logo"] = *dto.SiteLogo
	}
	if dto.Favicon != nil {
		updates["site_favicon"] = *dto.Favicon
	}
	if dto.FooterText != nil {
		updates["footer_text"] = *dto.FooterText
	}
	if dto.FacebookURL != nil {
		updates["facebook_url"] = *dto.FacebookURL
	}
	if dto.TwitterURL != nil {
		updates["twitter_url"] = *dto.TwitterURL
	}
	if dto.InstagramURL != nil {
		updates["instagram_url"] = *dto.InstagramURL
	}
	if dto.LinkedInURL != nil {
		updates["linkedin_url"] = *dto.LinkedInURL
	}
	if dto.YouTubeURL != nil {
		updates["youtube_url"] = *dto.YouTubeURL
	}
	if dto.GoogleAnalyticsID != nil {
		updates["google_analytics_id"] = *dto.GoogleAnalyticsID
	}
	if dto.MetaKeywords != nil {
		updates["meta_keywords"] = *dto.MetaKeywords
	}
	if dto.CommentsEnabled != nil {
		updates["comments_enabled"] = *dto.CommentsEnabled
	}
	if dto.CommentsRequireApproval != nil {
		updates["comments_require_approval"] = *dto.CommentsRequireApproval
	}
	if dto.PostsPerPage != nil {
		if *dto.PostsPerPage < 1 {
			return nil, fmt.Errorf("posts_per_page must be at least 1")
		}
		updates["posts_per_page"] = *dto.PostsPerPage
	}
	if dto.HomePageID != nil {
		updates["home_page_id"] = nullableID(*dto.HomePageID)
	}
	if dto.ActiveThemeID != nil {
		updates["active_theme_id"] = nullableID(*dto.ActiveThemeID)
	}

	if len(updates) == 0 {
		return row, nil
	}
	if err := s.db.Model(row).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get()
}

// nullableID maps an empty string to NULL so references can be cleared.
func nullableID(id string) interface{} {
	if id == "" {
		return nil
	}
	return id
}
