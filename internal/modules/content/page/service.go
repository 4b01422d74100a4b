package page

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/modules/processing/markdown"
	"github.com/wordpy/core/internal/pkg/slug"
	"gorm.io/gorm"
)

// ComposedPage is a page body rendered to HTML together with its ordered,
// active section variants.
type ComposedPage struct {
	Page     *models.PageModel       `json:"page"`
	HTML     string                  `json:"html"`
	Sections []models.SectionVariant `json:"sections"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns pages; non-staff callers only see published ones.
func (s *Service) List(isStaff bool) ([]models.PageModel, error) {
	tx := s.db.Order("menu_order ASC, title ASC")
	if !isStaff {
		tx = tx.Where("is_published = ?", true)
	}
	var pages []models.PageModel
	return pages, tx.Find(&pages).Error
}

// Menu returns published pages flagged for the navigation menu.
func (s *Service) Menu() ([]models.PageModel, error) {
	var pages []models.PageModel
	err := s.db.Where("is_published = ? AND show_in_menu = ?", true, true).
		Order("menu_order ASC, title ASC").
		Find(&pages).Error
	return pages, err
}

func (s *Service) GetByID(id string) (*models.PageModel, error) {
	var page models.PageModel
	if err := s.db.First(&page, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (s *Service) GetBySlug(slugValue string, isStaff bool) (*models.PageModel, error) {
	var page models.PageModel
	tx := s.db.Where("slug = ?", slugValue)
	if !isStaff {
		tx = tx.Where("is_published = ?", true)
	}
	if err := tx.First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (s *Service) Create(authorID string, dto *CreatePageDTO) (*models.PageModel, error) {
	page := models.PageModel{
		Title:           strings.TrimSpace(dto.Title),
		Slug:            strings.TrimSpace(dto.Slug),
		Content:         dto.Content,
		AuthorID:        authorID,
		FeaturedImage:   dto.FeaturedImage,
		IsPublished:     true,
		ShowInMenu:      dto.ShowInMenu,
		MenuOrder:       dto.MenuOrder,
		MetaTitle:       dto.MetaTitle,
		MetaDescription: dto.MetaDescription,
	}
	if dto.IsPublished != nil {
		page.IsPublished = *dto.IsPublished
	}
	applyDefaults(&page)

	var count int64
	s.db.Model(&models.PageModel{}).Where("slug = ?", page.Slug).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("slug already exists")
	}

	return &page, s.db.Create(&page).Error
}

func (s *Service) Update(id string, dto *UpdatePageDTO) (*models.PageModel, error) {
	page, err := s.GetByID(id)
	if err != nil || page == nil {
		return page, err
	}

	if dto.Title != nil {
		page.Title = strings.TrimSpace(*dto.Title)
	}
	if dto.Slug != nil {
		page.Slug = strings.TrimSpace(*dto.Slug)
	}
	if dto.Content != nil {
		page.Content = *dto.Content
	}
	if dto.FeaturedImage != nil {
		page.FeaturedImage = *dto.FeaturedImage
	}
	if dto.IsPublished != nil {
		page.IsPublished = *dto.IsPublished
	}
	if dto.ShowInMenu != nil {
		page.ShowInMenu = *dto.ShowInMenu
	}
	if dto.MenuOrder != nil {
		page.MenuOrder = *dto.MenuOrder
	}
	if dto.MetaTitle != nil {
		page.MetaTitle = *dto.MetaTitle
	}
	if dto.MetaDescription != nil {
		page.MetaDescription = *dto.MetaDescription
	}

	applyDefaults(page)
	return page, s.db.Save(page).Error
}

func (s *Service) Delete(id string) error {
	if err := s.db.Delete(&models.PageSectionModel{}, "page_id = ?", id).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.PageModel{}, "id = ?", id).Error
}

// AttachSection binds a section to the page at the given order slot.
func (s *Service) AttachSection(pageID string, dto *AttachSectionDTO) (*models.PageSectionModel, error) {
	page, err := s.GetByID(pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}

	var sectionCount int64
	s.db.Model(&models.SectionModel{}).Where("id = ?", dto.SectionID).Count(&sectionCount)
	if sectionCount == 0 {
		return nil, fmt.Errorf("section not found")
	}

	var conflict int64
	s.db.Model(&models.PageSectionModel{}).
		Where("page_id = ? AND section_id = ? AND order_num = ?", pageID, dto.SectionID, dto.Order).
		Count(&conflict)
	if conflict > 0 {
		return nil, fmt.Errorf("section already attached at this position")
	}

	ps := models.PageSectionModel{
		PageID:    pageID,
		SectionID: dto.SectionID,
		Order:     dto.Order,
		IsActive:  true,
	}
	if dto.IsActive != nil {
		ps.IsActive = *dto.IsActive
	}
	return &ps, s.db.Create(&ps).Error
}

// DetachSection removes a page/section binding by its row ID.
func (s *Service) DetachSection(pageID string, bindingID uint) error {
	res := s.db.Delete(&models.PageSectionModel{}, "id = ? AND page_id = ?", bindingID, pageID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReorderSection moves a binding to a new order slot or toggles it.
func (s *Service) ReorderSection(pageID string, bindingID uint, dto *ReorderSectionDTO) (*models.PageSectionModel, error) {
	var ps models.PageSectionModel
	if err := s.db.First(&ps, "id = ? AND page_id = ?", bindingID, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]interface{}{"order_num": dto.Order}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if err := s.db.Model(&ps).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &ps, nil
}

// Sections returns the page's bindings in ascending order, optionally
// filtered to the active ones.
func (s *Service) Sections(pageID string, activeOnly bool) ([]models.PageSectionModel, error) {
	tx := s.db.Preload("Section").
		Where("page_id = ?", pageID).
		Order("order_num ASC")
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}
	var bindings []models.PageSectionModel
	return bindings, tx.Find(&bindings).Error
}

// Compose renders the page body to HTML and resolves the ordered active
// section variants.
func (s *Service) Compose(page *models.PageModel) (*ComposedPage, error) {
	html, err := markdown.Render(page.Content)
	if err != nil {
		return nil, err
	}

	bindings, err := s.Sections(page.ID, true)
	if err != nil {
		return nil, err
	}

	variants := make([]models.SectionVariant, 0, len(bindings))
	for _, b := range bindings {
		if b.Section == nil {
			continue
		}
		variants = append(variants, b.Section.Variant())
	}

	return &ComposedPage{Page: page, HTML: html, Sections: variants}, nil
}

func applyDefaults(page *models.PageModel) {
	if page.Slug == "" {
		page.Slug = slug.Make(page.Title)
	}
	if page.MetaTitle == "" {
		page.MetaTitle = page.Title
	}
}
