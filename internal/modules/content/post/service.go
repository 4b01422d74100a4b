package post

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/pagination"
	"github.com/wordpy/core/internal/pkg/response"
	"github.com/wordpy/core/internal/pkg/slug"
	"gorm.io/gorm"
)

const (
	excerptMaxLen     = 200
	relatedPostsLimit = 3
)

// Service handles post business logic.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// DefaultPageSize reads the configured posts_per_page, falling back to
// the global pagination default.
func (s *Service) DefaultPageSize() int {
	var settings models.SiteSettingsModel
	if err := s.db.First(&settings, "id = ?", models.SiteSettingsID).Error; err != nil {
		return pagination.DefaultSize
	}
	if settings.PostsPerPage < 1 || settings.PostsPerPage > pagination.MaxSize {
		return pagination.DefaultSize
	}
	return settings.PostsPerPage
}

// List returns a paginated list of posts. Non-staff callers only see
// published posts.
func (s *Service) List(q pagination.Query, lq ListQuery, isStaff bool) ([]models.PostModel, response.Pagination, error) {
	tx := s.db.Model(&models.PostModel{}).
		Preload("Category").
		Preload("Author")

	if !isStaff {
		tx = tx.Where("status = ?", models.PostStatusPublished).
			Order("published_at DESC")
	} else {
		tx = tx.Order("created_at DESC")
	}
	if isStaff && lq.Status != nil {
		tx = tx.Where("status = ?", *lq.Status)
	}
	if lq.Category != nil {
		tx = tx.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", *lq.Category)
	}
	if lq.Tag != nil {
		tx = tx.Where("tags LIKE ?", fmt.Sprintf("%%%q%%", *lq.Tag))
	}
	if lq.Search != nil {
		pattern := "%" + strings.TrimSpace(*lq.Search) + "%"
		tx = tx.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}

	var posts []models.PostModel
	pag, err := pagination.Paginate(tx, q, &posts)
	return posts, pag, err
}

// GetBySlug fetches a single post by slug.
func (s *Service) GetBySlug(slugValue string, isStaff bool) (*models.PostModel, error) {
	var post models.PostModel
	tx := s.db.Preload("Category").Preload("Author").Where("slug = ?", slugValue)
	if !isStaff {
		tx = tx.Where("status = ?", models.PostStatusPublished)
	}
	if err := tx.First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetByID fetches a single post by ID.
func (s *Service) GetByID(id string) (*models.PostModel, error) {
	var post models.PostModel
	if err := s.db.Preload("Category").Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetByIdentifier fetches a post by ID first, then falls back to slug.
func (s *Service) GetByIdentifier(identifier string, isStaff bool) (*models.PostModel, error) {
	if post, err := s.GetByID(identifier); err != nil {
		return nil, err
	} else if post != nil {
		if !isStaff && !post.IsPublished() {
			return nil, nil
		}
		return post, nil
	}
	return s.GetBySlug(identifier, isStaff)
}

// IncrementViews bumps the view counter with an atomic update expression.
func (s *Service) IncrementViews(id string) error {
	return s.db.Model(&models.PostModel{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// Related returns up to three other published posts from the same category.
func (s *Service) Related(post *models.PostModel) ([]models.PostModel, error) {
	if post == nil || post.CategoryID == nil {
		return nil, nil
	}
	var posts []models.PostModel
	err := s.db.Where("category_id = ? AND id <> ? AND status = ?",
		*post.CategoryID, post.ID, models.PostStatusPublished).
		Order("created_at DESC").
		Limit(relatedPostsLimit).
		Find(&posts).Error
	return posts, err
}

func (s *Service) Create(authorID string, dto *CreatePostDTO) (*models.PostModel, error) {
	post := models.PostModel{
		Title:           strings.TrimSpace(dto.Title),
		Slug:            strings.TrimSpace(dto.Slug),
		AuthorID:        authorID,
		Content:         dto.Content,
		Excerpt:         dto.Excerpt,
		FeaturedImage:   dto.FeaturedImage,
		CategoryID:      dto.CategoryID,
		Tags:            models.StringArray(dto.Tags),
		Status:          models.PostStatusDraft,
		AllowComments:   true,
		PublishedAt:     dto.PublishedAt,
		MetaTitle:       dto.MetaTitle,
		MetaDescription: dto.MetaDescription,
		MetaKeywords:    dto.MetaKeywords,
	}
	if dto.Status != "" {
		status, err := parseStatus(dto.Status)
		if err != nil {
			return nil, err
		}
		post.Status = status
	}
	if dto.AllowComments != nil {
		post.AllowComments = *dto.AllowComments
	}
	applyDefaults(&post)
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	var count int64
	s.db.Model(&models.PostModel{}).Where("slug = ?", post.Slug).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("slug already exists")
	}

	return &post, s.db.Create(&post).Error
}

func (s *Service) Update(id string, dto *UpdatePostDTO) (*models.PostModel, error) {
	post, err := s.GetByID(id)
	if err != nil || post == nil {
		return post, err
	}

	if dto.Title != nil {
		post.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Slug != nil {
		post.Slug = strings.TrimSpace(*dto.Slug)
	}
	if dto.Content != nil {
		post.Content = *dto.Content
	}
	if dto.Excerpt != nil {
		post.Excerpt = *dto.Excerpt
	}
	if dto.FeaturedImage != nil {
		post.FeaturedImage = *dto.FeaturedImage
	}
	if dto.CategoryID != nil {
		post.CategoryID = dto.CategoryID
	}
	if dto.Tags != nil {
		post.Tags = models.StringArray(dto.Tags)
	}
	if dto.Status != nil {
		status, err := parseStatus(*dto.Status)
		if err != nil {
			return nil, err
		}
		post.Status = status
	}
	if dto.AllowComments != nil {
		post.AllowComments = *dto.AllowComments
	}
	if dto.PublishedAt != nil {
		post.PublishedAt = dto.PublishedAt
	}
	if dto.MetaTitle != nil {
		post.MetaTitle = *dto.MetaTitle
	}
	if dto.MetaDescription != nil {
		post.MetaDescription = *dto.MetaDescription
	}
	if dto.MetaKeywords != nil {
		post.MetaKeywords = *dto.MetaKeywords
	}

	applyDefaults(post)
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	return post, s.db.Save(post).Error
}

func (s *Service) Delete(id string) error {
	return s.db.Delete(&models.PostModel{}, "id = ?", id).Error
}

// Tags returns the distinct set of tags used by published posts.
func (s *Service) Tags() ([]string, error) {
	var posts []models.PostModel
	if err := s.db.Select("tags").
		Where("status = ?", models.PostStatusPublished).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var tags []string
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				tags = append(tags, t)
			}
		}
	}
	return tags, nil
}

// applyDefaults fills blank derived fields. Populated fields are never
// overwritten, so re-saving is idempotent.
func applyDefaults(post *models.PostModel) {
	if post.Slug == "" {
		post.Slug = slug.Make(post.Title)
	}
	if post.Excerpt == "" {
		post.Excerpt = truncateRunes(post.Content, excerptMaxLen)
	}
	if post.MetaTitle == "" {
		post.MetaTitle = post.Title
	}
	if post.MetaDescription == "" {
		post.MetaDescription = post.Excerpt
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func parseStatus(raw string) (models.PostStatus, error) {
	switch models.PostStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case models.PostStatusDraft:
		return models.PostStatusDraft, nil
	case models.PostStatusPublished:
		return models.PostStatusPublished, nil
	case models.PostStatusScheduled:
		return models.PostStatusScheduled, nil
	default:
		return "", fmt.Errorf("invalid status %q", raw)
	}
}
