package page

type CreatePageDTO struct {
	Title           string `json:"title" binding:"required"`
	Slug            string `json:"slug"`
	Content         string `json:"content"`
	FeaturedImage   string `json:"featured_image"`
	IsPublished     *bool  `json:"is_published"`
	ShowInMenu      bool   `json:"show_in_menu"`
	MenuOrder       int    `json:"menu_order"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
}

type UpdatePageDTO struct {
	Title           *string `json:"title"`
	Slug            *string `json:"slug"`
	Content         *string `json:"content"`
	FeaturedImage   *string `json:"featured_image"`
	IsPublished     *bool   `json:"is_published"`
	ShowInMenu      *bool   `json:"show_in_menu"`
	MenuOrder       *int    `json:"menu_order"`
	MetaTitle       *string `json:"meta_title"`
	MetaDescription *string `json:"meta_description"`
}

type AttachSectionDTO struct {
	SectionID string `json:"section_id" binding:"required"`
	Order     int    `json:"order"`
	IsActive  *bool  `json:"is_active"`
}

type ReorderSectionDTO struct {
	Order    int   `json:"order"`
	IsActive *bool `json:"is_active"`
}
