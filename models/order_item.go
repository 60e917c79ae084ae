package models

const (
	OrderItemPending   = "PENDING"
	OrderItemPreparing = "PREPARING"
	OrderItemReady     = "READY"
	OrderItemServed    = "SERVED"
	OrderItemCancelled = "CANCELLED"
)

type OrderItem struct {
	Model
	OrderID   uint    `gorm:"not null;index" json:"-"`
	Order     Order   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductID uint    `gorm:"not null" json:"-"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"type:decimal(12,2);not null" json:"price"`
	Notes     string  `gorm:"type:text" json:"notes"`
	Status    string  `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
}

// Subtotal harga item = snapshot harga x kuantitas.
func (oi *OrderItem) Subtotal() float64 {
	return oi.Price * float64(oi.Quantity)
}
