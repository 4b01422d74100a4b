package models

// SiteSettingsID pins the singleton settings row.
const SiteSettingsID uint = 1

// SiteSettingsModel is an application-enforced singleton row holding
// site-wide configuration. It is get-or-created on first access.
type SiteSettingsModel struct {
	ID              uint   `json:"-"                gorm:"primaryKey"`
	SiteName        string `json:"site_name"        gorm:"default:'My Site'"`
	SiteDescription string `json:"site_description" gorm:"type:text"`
	SiteLogo        string `json:"site_logo"`
	SiteFavicon     string `json:"site_favicon"`
	FooterText      string `json:"footer_text"      gorm:"type:text"`

	FacebookURL  string `json:"facebook_url"`
	TwitterURL   string `json:"twitter_url"`
	InstagramURL string `json:"instagram_url"`
	LinkedinURL  string `json:"linkedin_url"`
	YoutubeURL   string `json:"youtube_url"`

	GoogleAnalyticsID string `json:"google_analytics_id"`
	MetaKeywords      string `json:"meta_keywords" gorm:"type:text"`

	CommentsEnabled         bool `json:"comments_enabled"         gorm:"default:true"`
	CommentsRequireApproval bool `json:"comments_require_approval" gorm:"default:true"`

	PostsPerPage int `json:"posts_per_page" gorm:"default:10"`

	HomePageID *string    `json:"home_page_id"`
	HomePage   *PageModel `json:"home_page,omitempty" gorm:"foreignKey:HomePageID"`

	ActiveThemeID *string     `json:"active_theme_id"`
	ActiveTheme   *ThemeModel `json:"active_theme,omitempty" gorm:"foreignKey:ActiveThemeID"`
}

func (SiteSettingsModel) TableName() string { return "site_settings" }
