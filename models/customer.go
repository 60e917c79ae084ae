package models

type Customer struct {
	Model
	Name          string `gorm:"type:varchar(255);not null" json:"name"`
	Phone         string `gorm:"type:varchar(30)" json:"phone"`
	Email         string `gorm:"type:varchar(255)" json:"email"`
	LoyaltyPoints int    `gorm:"not null;default:0" json:"loyalty_points"`
}
