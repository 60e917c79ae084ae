package models

const (
	TableAvailable   = "AVAILABLE"
	TableOccupied    = "OCCUPIED"
	TableReserved    = "RESERVED"
	TableMaintenance = "MAINTENANCE"
)

type Table struct {
	Model
	Number   string `gorm:"type:varchar(50);uniqueIndex;not null" json:"number"`
	Capacity int    `gorm:"not null;default:2" json:"capacity"`
	Status   string `gorm:"type:varchar(20);not null;default:'AVAILABLE'" json:"status"`
}
