package models

// PageModel is a static page. Pages can be composed from reusable sections
// via PageSectionModel.
type PageModel struct {
	Base
	Title         string     `json:"title"          gorm:"not null"`
	Slug          string     `json:"slug"           gorm:"uniqueIndex;not null"`
	Content       string     `json:"content"        gorm:"type:longtext"`
	AuthorID      string     `json:"author_id"      gorm:"index;not null"`
	Author        *UserModel `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	FeaturedImage string     `json:"featured_image"`
	IsPublished   bool       `json:"is_published"   gorm:"default:true;index"`
	ShowInMenu    bool       `json:"show_in_menu"   gorm:"default:false"`
	MenuOrder     int        `json:"menu_order"     gorm:"default:0"`

	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`

	PageSections []PageSectionModel `json:"page_sections,omitempty" gorm:"foreignKey:PageID"`
}

func (PageModel) TableName() string { return "pages" }
