package models

type Product struct {
	Model
	CategoryID  uint     `gorm:"not null;index" json:"-"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"category"`
	MediaID     *uint    `json:"-"`
	Media       *Media   `gorm:"foreignKey:MediaID" json:"media,omitempty"`
	Name        string   `gorm:"type:varchar(255);not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Price       float64  `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int      `gorm:"not null;default:0" json:"stock"`
	IsActive    bool     `gorm:"not null;default:true" json:"is_active"`
}
