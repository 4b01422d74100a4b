package section

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wordpy/core/internal/models"
	"gorm.io/gorm"
)

type CreateSectionDTO struct {
	Name            string `json:"name" binding:"required"`
	SectionType     string `json:"section_type" binding:"required"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	Content         string `json:"content"`
	Image           string `json:"image"`
	ImagePosition   string `json:"image_position"`
	ButtonText      string `json:"button_text"`
	ButtonLink      string `json:"button_link"`
	BackgroundColor string `json:"background_color"`
	CustomCSSClass  string `json:"custom_css_class"`
	CustomHTML      string `json:"custom_html"`
}

type UpdateSectionDTO struct {
	Name            *string `json:"name"`
	SectionType     *string `json:"section_type"`
	Title           *string `json:"title"`
	Subtitle        *string `json:"subtitle"`
	Content         *string `json:"content"`
	Image           *string `json:"image"`
	ImagePosition   *string `json:"image_position"`
	ButtonText      *string `json:"button_text"`
	ButtonLink      *string `json:"button_link"`
	BackgroundColor *string `json:"background_color"`
	CustomCSSClass  *string `json:"custom_css_class"`
	CustomHTML      *string `json:"custom_html"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(sectionType string) ([]models.SectionModel, error) {
	tx := s.db.Order("name ASC")
	if sectionType != "" {
		tx = tx.Where("section_type = ?", sectionType)
	}
	var sections []models.SectionModel
	return sections, tx.Find(&sections).Error
}

func (s *Service) GetByID(id string) (*models.SectionModel, error) {
	var sec models.SectionModel
	if err := s.db.First(&sec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sec, nil
}

func (s *Service) Create(dto *CreateSectionDTO) (*models.SectionModel, error) {
	sectionType := strings.ToLower(strings.TrimSpace(dto.SectionType))
	if !models.ValidSectionType(models.SectionType(sectionType)) {
		return nil, fmt.Errorf("invalid section type %q", dto.SectionType)
	}

	sec := models.SectionModel{
		Name:            strings.TrimSpace(dto.Name),
		SectionType:     models.SectionType(sectionType),
		Title:           dto.Title,
		Subtitle:        dto.Subtitle,
		Content:         dto.Content,
		Image:           dto.Image,
		ImagePosition:   dto.ImagePosition,
		ButtonText:      dto.ButtonText,
		ButtonLink:      dto.ButtonLink,
		BackgroundColor: dto.BackgroundColor,
		CustomCSSClass:  dto.CustomCSSClass,
		CustomHTML:      dto.CustomHTML,
	}
	return &sec, s.db.Create(&sec).Error
}

func (s *Service) Update(id string, dto *UpdateSectionDTO) (*models.SectionModel, error) {
	sec, err := s.GetByID(id)
	if err != nil || sec == nil {
		return sec, err
	}

	if dto.SectionType != nil {
		sectionType := strings.ToLower(strings.TrimSpace(*dto.SectionType))
		if !models.ValidSectionType(models.SectionType(sectionType)) {
			return nil, fmt.Errorf("invalid section type %q", *dto.SectionType)
		}
		sec.SectionType = models.SectionType(sectionType)
	}
	if dto.Name != nil {
		sec.Name = strings.TrimSpace(*dto.Name)
	}
	if dto.Title != nil {
		sec.Title = *dto.Title
	}
	if dto.Subtitle != nil {
		sec.Subtitle = *dto.Subtitle
	}
	if dto.Content != nil {
		sec.Content = *dto.Content
	}
	if dto.Image != nil {
		sec.Image = *dto.Image
	}
	if dto.ImagePosition != nil {
		sec.ImagePosition = *dto.ImagePosition
	}
	if dto.ButtonText != nil {
		sec.ButtonText = *dto.ButtonText
	}
	if dto.ButtonLink != nil {
		sec.ButtonLink = *dto.ButtonLink
	}
	if dto.BackgroundColor != nil {
		sec.BackgroundColor = *dto.BackgroundColor
	}
	if dto.CustomCSSClass != nil {
		sec.CustomCSSClass = *dto.CustomCSSClass
	}
	if dto.CustomHTML != nil {
		sec.CustomHTML = *dto.CustomHTML
	}

	return sec, s.db.Save(sec).Error
}

// Delete removes the section and any page attachments pointing at it.
func (s *Service) Delete(id string) error {
	if err := s.db.Delete(&models.PageSectionModel{}, "section_id = ?", id).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.SectionModel{}, "id = ?", id).Error
}
