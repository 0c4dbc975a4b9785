package models

type Upload struct {
	BaseModel
	UserID      string        `gorm:"not null;index" json:"user_id"`
	Purpose     UploadPurpose `gorm:"type:varchar(20);not null" json:"purpose"`
	FileName    string        `gorm:"not null" json:"file_name"`
	Path        string        `gorm:"not null;uniqueIndex" json:"path"`
	ContentType string        `json:"content_type"`
	Size        int64         `json:"size"`
	URL         string        `json:"url"`
}
