package models

// MediaType classifies an uploaded file by its extension.
type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaDocument MediaType = "document"
	MediaOther    MediaType = "other"
)

// MediaModel is an entry in the media library. FileType and FileSize are
// derived at upload time and never recomputed.
type MediaModel struct {
	Base
	Title        string     `json:"title"     gorm:"not null"`
	FileName     string     `json:"file_name" gorm:"not null"`
	FileURL      string     `json:"file_url"  gorm:"not null"`
	FileType     MediaType  `json:"file_type" gorm:"type:varchar(20);index"`
	FileSize     int64      `json:"file_size" gorm:"default:0"`
	UploadedByID *string    `json:"uploaded_by_id" gorm:"index"`
	UploadedBy   *UserModel `json:"uploaded_by,omitempty" gorm:"foreignKey:UploadedByID"`
	AltText      string     `json:"alt_text"`
	Caption      string     `json:"caption" gorm:"type:text"`
}

func (MediaModel) TableName() string { return "media" }
