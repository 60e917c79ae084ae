package models

const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderPreparing = "PREPARING"
	OrderReady     = "READY"
	OrderServed    = "SERVED"
	OrderCompleted = "COMPLETED"
	OrderCancelled = "CANCELLED"
)

const (
	OrderDineIn   = "DINE_IN"
	OrderTakeaway = "TAKEAWAY"
)

// TaxRate adalah pajak tetap 10% atas (subtotal - diskon).
const TaxRate = 0.10

// orderTransitions adalah adjacency map status order; transisi di luar map ditolak.
var orderTransitions = map[string][]string{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderServed, OrderCancelled},
	OrderServed:    {OrderCompleted},
	OrderCompleted: {},
	OrderCancelled: {},
}

// CanTransitionOrder memeriksa apakah perpindahan status order diizinkan.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus true untuk status akhir (COMPLETED/CANCELLED).
func IsTerminalOrderStatus(status string) bool {
	return status == OrderCompleted || status == OrderCancelled
}

// ActiveOrderStatuses adalah status yang masih menahan meja.
var ActiveOrderStatuses = []string{
	OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderServed,
}

type Order struct {
	Model
	OrderNumber    string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"order_number"`
	TableID        *uint       `gorm:"index" json:"-"`
	Table          *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	CustomerID     *uint       `gorm:"index" json:"-"`
	Customer       *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	DiscountID     *uint       `json:"-"`
	Discount       *Discount   `gorm:"foreignKey:DiscountID" json:"discount,omitempty"`
	Type           string      `gorm:"type:varchar(20);not null;default:'DINE_IN'" json:"type"`
	Status         string      `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Subtotal       float64     `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	DiscountAmount float64     `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	TaxAmount      float64     `gorm:"type:decimal(12,2);not null;default:0" json:"tax_amount"`
	Total          float64     `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	Notes          string      `gorm:"type:text" json:"notes"`
	Items          []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// Recalculate menghitung ulang subtotal, pajak, dan total dari item yang
// tidak dibatalkan. DiscountAmount tidak dihitung ulang di sini.
func (o *Order) Recalculate() {
	var subtotal float64
	for _, item := range o.Items {
		if item.Status != OrderItemCancelled {
			subtotal += item.Price * float64(item.Quantity)
		}
	}
	o.Subtotal = subtotal
	if o.DiscountAmount > o.Subtotal {
		o.DiscountAmount = o.Subtotal
	}
	o.TaxAmount = (o.Subtotal - o.DiscountAmount) * TaxRate
	o.Total = o.Subtotal - o.DiscountAmount + o.TaxAmount
}
