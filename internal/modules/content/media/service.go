package media

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/wordpy/core/internal/models"
	"github.com/wordpy/core/internal/pkg/pagination"
	"github.com/wordpy/core/internal/pkg/response"
	"gorm.io/gorm"
)

type UpdateMediaDTO struct {
	Title   *string `json:"title"`
	AltText *string `json:"alt_text"`
	Caption *string `json:"caption"`
}

var imageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".svg": true, ".bmp": true, ".ico": true,
}

var videoExts = map[string]bool{
	".mp4": true, ".webm": true, ".mov": true, ".avi": true, ".mkv": true,
}

var documentExts = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true, ".txt": true, ".csv": true, ".md": true,
}

// InferType derives the media type from the file extension.
func InferType(fileName string) models.MediaType {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch {
	case imageExts[ext]:
		return models.MediaImage
	case videoExts[ext]:
		return models.MediaVideo
	case documentExts[ext]:
		return models.MediaDocument
	default:
		return models.MediaOther
	}
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(q pagination.Query, fileType string) ([]models.MediaModel, response.Pagination, error) {
	tx := s.db.Model(&models.MediaModel{}).Order("created_at DESC")
	if fileType != "" {
		tx = tx.Where("file_type = ?", fileType)
	}
	var items []models.MediaModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

func (s *Service) GetByID(id string) (*models.MediaModel, error) {
	var item models.MediaModel
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Record persists a media row; file type and size are captured at save
// time, not recomputed on read.
func (s *Service) Record(uploadedByID, title, fileName, fileURL string, size int64) (*models.MediaModel, error) {
	if strings.TrimSpace(title) == "" {
		title = fileName
	}
	item := models.MediaModel{
		Title:        title,
		FileName:     fileName,
		FileURL:      fileURL,
		FileType:     InferType(fileName),
		FileSize:     size,
		UploadedByID: &uploadedByID,
	}
	return &item, s.db.Create(&item).Error
}

func (s *Service) Update(id string, dto *UpdateMediaDTO) (*models.MediaModel, error) {
	item, err := s.GetByID(id)
	if err != nil || item == nil {
		return item, err
	}
	updates := map[string]interface{}{}
	if dto.Title != nil {
		updates["title"] = *dto.Title
	}
	if dto.AltText != nil {
		updates["alt_text"] = *dto.AltText
	}
	if dto.Caption != nil {
		updates["caption"] = *dto.Caption
	}
	return item, s.db.Model(item).Updates(updates).Error
}

func (s *Service) Delete(id string) (*models.MediaModel, error) {
	item, err := s.GetByID(id)
	if err != nil || item == nil {
		return item, err
	}
	return item, s.db.Delete(item).Error
}
