package models

// SectionType tags a reusable content block with its rendering behavior.
type SectionType string

const (
	SectionHero           SectionType = "hero"
	SectionText           SectionType = "text"
	SectionTextImage      SectionType = "text_image"
	SectionImageGallery   SectionType = "image_gallery"
	SectionCards          SectionType = "cards"
	SectionTestimonials   SectionType = "testimonials"
	SectionCTA            SectionType = "cta"
	SectionFeatures       SectionType = "features"
	SectionBannerCarousel SectionType = "banner_carousel"
	SectionHTML           SectionType = "html"
)

// SectionTypes lists every valid section type tag.
var SectionTypes = []SectionType{
	SectionHero, SectionText, SectionTextImage, SectionImageGallery,
	SectionCards, SectionTestimonials, SectionCTA, SectionFeatures,
	SectionBannerCarousel, SectionHTML,
}

// ValidSectionType reports whether t is a known section type.
func ValidSectionType(t SectionType) bool {
	for _, known := range SectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// SectionModel is a reusable content block attachable to multiple pages.
// The row carries the union of all type-specific fields; Variant resolves
// the tagged subset the section's type actually uses.
type SectionModel struct {
	Base
	Name        string      `json:"name"         gorm:"not null"`
	SectionType SectionType `json:"section_type" gorm:"type:varchar(20);default:'text';index"`

	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Content  string `json:"content" gorm:"type:longtext"`

	Image         string `json:"image"`
	ImagePosition string `json:"image_position" gorm:"type:varchar(10);default:'right'"`

	ButtonText string `json:"button_text"`
	ButtonLink string `json:"button_link"`

	BackgroundColor string `json:"background_color" gorm:"type:varchar(20);default:'white'"`
	CustomCSSClass  string `json:"custom_css_class"`

	CustomHTML string `json:"custom_html" gorm:"type:text"`
}

func (SectionModel) TableName() string { return "sections" }

// SectionVariant is a tagged view of a section carrying only the fields its
// type needs; the renderer switches on Type.
type SectionVariant struct {
	Type            SectionType `json:"type"`
	Title           string      `json:"title,omitempty"`
	Subtitle        string      `json:"subtitle,omitempty"`
	Content         string      `json:"content,omitempty"`
	Image           string      `json:"image,omitempty"`
	ImagePosition   string      `json:"image_position,omitempty"`
	ButtonText      string      `json:"button_text,omitempty"`
	ButtonLink      string      `json:"button_link,omitempty"`
	BackgroundColor string      `json:"background_color,omitempty"`
	CustomCSSClass  string      `json:"custom_css_class,omitempty"`
	CustomHTML      string      `json:"custom_html,omitempty"`
}

// Variant resolves the type-specific field subset for rendering.
func (s SectionModel) Variant() SectionVariant {
	v := SectionVariant{
		Type:            s.SectionType,
		BackgroundColor: s.BackgroundColor,
		CustomCSSClass:  s.CustomCSSClass,
	}
	switch s.SectionType {
	case SectionHTML:
		v.CustomHTML = s.CustomHTML
	case SectionHero, SectionCTA:
		v.Title = s.Title
		v.Subtitle = s.Subtitle
		v.Content = s.Content
		v.Image = s.Image
		v.ButtonText = s.ButtonText
		v.ButtonLink = s.ButtonLink
	case SectionTextImage:
		v.Title = s.Title
		v.Subtitle = s.Subtitle
		v.Content = s.Content
		v.Image = s.Image
		v.ImagePosition = s.ImagePosition
		v.ButtonText = s.ButtonText
		v.ButtonLink = s.ButtonLink
	case SectionImageGallery, SectionBannerCarousel:
		v.Title = s.Title
		v.Content = s.Content
		v.Image = s.Image
	default:
		// text, cards, testimonials, features
		v.Title = s.Title
		v.Subtitle = s.Subtitle
		v.Content = s.Content
	}
	return v
}

// PageSectionModel binds a section onto a page with explicit ordering.
// A section can appear on many pages; (page, section, order) is unique.
type PageSectionModel struct {
	ID        uint          `json:"id"         gorm:"primaryKey;autoIncrement"`
	PageID    string        `json:"page_id"    gorm:"type:char(36);uniqueIndex:uniq_page_section_order;index;not null"`
	SectionID string        `json:"section_id" gorm:"type:char(36);uniqueIndex:uniq_page_section_order;index;not null"`
	Section   *SectionModel `json:"section,omitempty" gorm:"foreignKey:SectionID"`
	Order     int           `json:"order"      gorm:"column:order_num;uniqueIndex:uniq_page_section_order;default:0"`
	IsActive  bool          `json:"is_active"  gorm:"default:true"`
}

func (PageSectionModel) TableName() string { return "page_sections" }
