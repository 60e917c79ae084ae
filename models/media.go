package models

type Media struct {
	Model
	FileName string `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath string `gorm:"type:varchar(255);not null" json:"file_path"`
	MimeType string `gorm:"type:varchar(100);not null" json:"mime_type"`
	Size     int64  `gorm:"not null" json:"size"`
}
