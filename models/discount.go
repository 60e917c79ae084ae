package models

import "time"

const (
	DiscountPercentage = "PERCENTAGE"
	DiscountFixed      = "FIXED"
)

type Discount struct {
	Model
	Code        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"type:varchar(255)" json:"name"`
	Type        string    `gorm:"type:varchar(20);not null" json:"type"`
	Value       float64   `gorm:"type:decimal(12,2);not null" json:"value"`
	MinPurchase float64   `gorm:"type:decimal(12,2);not null;default:0" json:"min_purchase"`
	MaxDiscount float64   `gorm:"type:decimal(12,2);not null;default:0" json:"max_discount"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	UsageLimit  *int      `json:"usage_limit,omitempty"`
	UsageCount  int       `gorm:"not null;default:0" json:"usage_count"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
}

// ComputeAmount menghitung nominal potongan untuk subtotal tertentu.
// Tipe PERCENTAGE dibatasi MaxDiscount (jika > 0), tipe FIXED dibatasi subtotal.
func (d *Discount) ComputeAmount(subtotal float64) float64 {
	var amount float64
	switch d.Type {
	case DiscountPercentage:
		amount = subtotal * d.Value / 100
		if d.MaxDiscount > 0 && amount > d.MaxDiscount {
			amount = d.MaxDiscount
		}
	case DiscountFixed:
		amount = d.Value
		if amount > subtotal {
			amount = subtotal
		}
	}
	return amount
}
