package post

import "time"

type CreatePostDTO struct {
	Title           string     `json:"title" binding:"required"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content" binding:"required"`
	Excerpt         string     `json:"excerpt"`
	FeaturedImage   string     `json:"featured_image"`
	CategoryID      *string    `json:"category_id"`
	Tags            []string   `json:"tags"`
	Status          string     `json:"status"`
	AllowComments   *bool      `json:"allow_comments"`
	PublishedAt     *time.Time `json:"published_at"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	MetaKeywords    string     `json:"meta_keywords"`
}

type UpdatePostDTO struct {
	Title           *string    `json:"title"`
	Slug            *string    `json:"slug"`
	Content         *string    `json:"content"`
	Excerpt         *string    `json:"excerpt"`
	FeaturedImage   *string    `json:"featured_image"`
	CategoryID      *string    `json:"category_id"`
	Tags            []string   `json:"tags"`
	Status          *string    `json:"status"`
	AllowComments   *bool      `json:"allow_comments"`
	PublishedAt     *time.Time `json:"published_at"`
	MetaTitle       *string    `json:"meta_title"`
	MetaDescription *string    `json:"meta_description"`
	MetaKeywords    *string    `json:"meta_keywords"`
}

// ListQuery holds optional post list filters.
type ListQuery struct {
	Category *string
	Tag      *string
	Status   *string
	Search   *string
}
