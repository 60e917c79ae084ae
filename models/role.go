package models

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type Role struct {
	Model
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(255)" json:"description"`
	Menus       []Menu `gorm:"many2many:menu_accesses;" json:"menus,omitempty"`
}
