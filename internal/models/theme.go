package models

// ThemeModel is a named palette/typography/layout configuration. At most
// one theme is flagged active and at most one is flagged default; the
// theme service enforces the invariant transactionally on save.
type ThemeModel struct {
	Base
	Name        string `json:"name"        gorm:"uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:text"`

	PrimaryColor   string `json:"primary_color"   gorm:"type:varchar(7);default:'#3498db'"`
	SecondaryColor string `json:"secondary_color" gorm:"type:varchar(7);default:'#2c3e50'"`
	AccentColor    string `json:"accent_color"    gorm:"type:varchar(7);default:'#e74c3c'"`

	TextColor      string `json:"text_color"       gorm:"type:varchar(7);default:'#333333'"`
	HeadingColor   string `json:"heading_color"    gorm:"type:varchar(7);default:'#2c3e50'"`
	LinkColor      string `json:"link_color"       gorm:"type:varchar(7);default:'#3498db'"`
	LinkHoverColor string `json:"link_hover_color" gorm:"type:varchar(7);default:'#2980b9'"`

	BackgroundColor  string `json:"background_color"   gorm:"type:varchar(7);default:'#ffffff'"`
	SecondaryBgColor string `json:"secondary_bg_color" gorm:"type:varchar(7);default:'#f5f5f5'"`

	HeaderBgColor   string `json:"header_bg_color"   gorm:"type:varchar(7);default:'#2c3e50'"`
	HeaderTextColor string `json:"header_text_color" gorm:"type:varchar(7);default:'#ffffff'"`
	FooterBgColor   string `json:"footer_bg_color"   gorm:"type:varchar(7);default:'#34495e'"`
	FooterTextColor string `json:"footer_text_color" gorm:"type:varchar(7);default:'#ffffff'"`

	ButtonBgColor      string `json:"button_bg_color"       gorm:"type:varchar(7);default:'#3498db'"`
	ButtonTextColor    string `json:"button_text_color"     gorm:"type:varchar(7);default:'#ffffff'"`
	ButtonHoverBgColor string `json:"button_hover_bg_color" gorm:"type:varchar(7);default:'#2980b9'"`

	FontFamily        string `json:"font_family"         gorm:"default:'-apple-system, BlinkMacSystemFont, ''Segoe UI'', Roboto, Oxygen, Ubuntu, Cantarell, sans-serif'"`
	HeadingFontFamily string `json:"heading_font_family"`
	FontSizeBase      string `json:"font_size_base"      gorm:"type:varchar(10);default:'16px'"`
	LineHeight        string `json:"line_height"         gorm:"type:varchar(10);default:'1.6'"`

	BorderRadius string `json:"border_radius" gorm:"type:varchar(10);default:'8px'"`
	BoxShadow    string `json:"box_shadow"    gorm:"default:'0 2px 5px rgba(0,0,0,0.1)'"`

	CustomCSS string `json:"custom_css" gorm:"type:text"`

	IsActive  bool `json:"is_active"  gorm:"default:false;index"`
	IsDefault bool `json:"is_default" gorm:"default:false;index"`
}

func (ThemeModel) TableName() string { return "themes" }
