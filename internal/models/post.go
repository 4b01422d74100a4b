package models

import "time"

// PostStatus is the publication state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusScheduled PostStatus = "scheduled"
)

// PostModel is a blog post.
type PostModel struct {
	Base
	Title         string         `json:"title"          gorm:"not null"`
	Slug          string         `json:"slug"           gorm:"uniqueIndex;not null"`
	AuthorID      string         `json:"author_id"      gorm:"index;not null"`
	Author        *UserModel     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Content       string         `json:"content"        gorm:"type:longtext"`
	Excerpt       string         `json:"excerpt"        gorm:"type:text"`
	FeaturedImage string         `json:"featured_image"`
	CategoryID    *string        `json:"category_id"    gorm:"index"`
	Category      *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Tags          StringArray    `json:"tags"           gorm:"type:json"`
	Status        PostStatus     `json:"status"         gorm:"type:varchar(10);default:'draft';index"`
	AllowComments bool           `json:"allow_comments" gorm:"default:true"`
	Views         int64          `json:"views"          gorm:"default:0"`
	PublishedAt   *time.Time     `json:"published_at"   gorm:"index"`

	// SEO metadata, defaulted from title/excerpt when left blank.
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	MetaKeywords    string `json:"meta_keywords"`
}

func (PostModel) TableName() string { return "posts" }

// IsPublished reports whether the post is publicly visible.
func (p PostModel) IsPublished() bool { return p.Status == PostStatusPublished }
