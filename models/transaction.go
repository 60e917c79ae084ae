package models

import "time"

const (
	TransactionCompleted = "COMPLETED"
	TransactionRefunded  = "REFUNDED"
)

const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentQRIS     = "QRIS"
	PaymentTransfer = "TRANSFER"
)

var PaymentMethods = []string{PaymentCash, PaymentCard, PaymentQRIS, PaymentTransfer}

func IsValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

type Transaction struct {
	Model
	OrderID      uint      `gorm:"not null;index" json:"-"`
	Order        Order     `gorm:"foreignKey:OrderID" json:"order"`
	Method       string    `gorm:"type:varchar(20);not null" json:"method"`
	AmountPaid   float64   `gorm:"type:decimal(12,2);not null" json:"amount_paid"`
	ChangeAmount float64   `gorm:"type:decimal(12,2);not null;default:0" json:"change_amount"`
	Status       string    `gorm:"type:varchar(20);not null;default:'COMPLETED'" json:"status"`
	Notes        string    `gorm:"type:text" json:"notes"`
	PaidAt       time.Time `gorm:"not null" json:"paid_at"`
}
