package models

// Menu adalah entri navigasi dashboard, self-referential maksimal 3 level.
type Menu struct {
	Model
	ParentID *uint  `gorm:"index" json:"-"`
	Parent   *Menu  `gorm:"foreignKey:ParentID" json:"-"`
	Children []Menu `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Name     string `gorm:"type:varchar(100);not null" json:"name"`
	Path     string `gorm:"type:varchar(255)" json:"path"`
	Icon     string `gorm:"type:varchar(100)" json:"icon"`
	Sort     int    `gorm:"not null;default:0" json:"sort"`
}

const MaxMenuDepth = 3
