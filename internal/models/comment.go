package models

// CommentModel is a comment on a post. The author is either a registered
// user (AuthorID set) or an anonymous name/email pair.
type CommentModel struct {
	Base
	PostID      string         `json:"post_id"      gorm:"index;not null"`
	Post        *PostModel     `json:"post,omitempty" gorm:"foreignKey:PostID"`
	AuthorID    *string        `json:"author_id"    gorm:"index"`
	Author      *UserModel     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	AuthorName  string         `json:"author_name"`
	AuthorEmail string         `json:"author_email"`
	Content     string         `json:"content"      gorm:"type:text;not null"`
	ParentID    *string        `json:"parent_id"    gorm:"index"`
	Replies     []CommentModel `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
	IsApproved  bool           `json:"is_approved"  gorm:"default:false;index"`
}

func (CommentModel) TableName() string { return "comments" }

// AuthorDisplayName resolves the visible author name for the comment.
func (c CommentModel) AuthorDisplayName() string {
	if c.Author != nil {
		return c.Author.DisplayName()
	}
	return c.AuthorName
}
