package comment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/modules/content/settings"
	"github.com/wordpy/core/internal/pkg/pagination"
	"github.com/wordpy/core/internal/pkg/response"
	"gorm.io/gorm"
)

var (
	ErrEmptyContent       = errors.New("comment content is required")
	ErrCommentsDisabled   = errors.New("comments are disabled")
	ErrCommentsNotAllowed = errors.New("this post does not allow comments")
	ErrAuthorRequired     = errors.New("author name and email are required")
)

type CreateCommentDTO struct {
	PostID      string  `json:"post_id" binding:"required"`
	Content     string  `json:"content"`
	AuthorName  string  `json:"author_name"`
	AuthorEmail string  `json:"author_email"`
	ParentID    *string `json:"parent_id"`
}

type Service struct {
	db       *gorm.DB
	settings *settings.Service
}

func NewService(db *gorm.DB, settingsSvc *settings.Service) *Service {
	return &Service{db: db, settings: settingsSvc}
}

// ListForPost returns approved top-level comments for a post with their
// replies preloaded.
func (s *Service) ListForPost(postID string, q pagination.Query) ([]models.CommentModel, response.Pagination, error) {
	tx := s.db.Model(&models.CommentModel{}).
		Preload("Replies", "is_approved = ?", true).
		Where("post_id = ? AND parent_id IS NULL AND is_approved = ?", postID, true).
		Order("created_at ASC")

	var comments []models.CommentModel
	pag, err := pagination.Paginate(tx, q, &comments)
	return comments, pag, err
}

// ListPending returns comments awaiting moderation.
func (s *Service) ListPending(q pagination.Query) ([]models.CommentModel, response.Pagination, error) {
	tx := s.db.Model(&models.CommentModel{}).
		Where("is_approved = ?", false).
		Order("created_at ASC")

	var comments []models.CommentModel
	pag, err := pagination.Paginate(tx, q, &comments)
	return comments, pag, err
}

// Create submits a comment. Authenticated authors are auto-approved;
// anonymous submissions are gated by the global moderation policy.
func (s *Service) Create(userID string, dto *CreateCommentDTO) (*models.CommentModel, error) {
	content := strings.TrimSpace(dto.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	cfg, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	if !cfg.CommentsEnabled {
		return nil, ErrCommentsDisabled
	}

	var post models.PostModel
	if err := s.db.First(&post, "id = ?", dto.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !post.AllowComments {
		return nil, ErrCommentsNotAllowed
	}

	if dto.ParentID != nil {
		var count int64
		s.db.Model(&models.CommentModel{}).
			Where("id = ? AND post_id = ?", *dto.ParentID, post.ID).
			Count(&count)
		if count == 0 {
			return nil, fmt.Errorf("parent comment not found")
		}
	}

	comment := models.CommentModel{
		PostID:   post.ID,
		Content:  content,
		ParentID: dto.ParentID,
	}
	if userID != "" {
		comment.AuthorID = &userID
		comment.IsApproved = true
	} else {
		comment.AuthorName = strings.TrimSpace(dto.AuthorName)
		comment.AuthorEmail = strings.TrimSpace(dto.AuthorEmail)
		if comment.AuthorName == "" || comment.AuthorEmail == "" {
			return nil, ErrAuthorRequired
		}
		comment.IsApproved = !cfg.CommentsRequireApproval
	}

	return &comment, s.db.Create(&comment).Error
}

// Approve marks a pending comment as approved.
func (s *Service) Approve(id string) (*models.CommentModel, error) {
	var comment models.CommentModel
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, s.db.Model(&comment).Update("is_approved", true).Error
}

// Delete removes a comment and its direct replies.
func (s *Service) Delete(id string) error {
	if err := s.db.Delete(&models.CommentModel{}, "parent_id = ?", id).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.CommentModel{}, "id = ?", id).Error
}
