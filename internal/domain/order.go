package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every status an order may hold. Any status may be set
// to any other by an admin; only membership in this set is checked.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentPending || s == PaymentPaid || s == PaymentFailed
}

type PaymentMethod string

const (
	PaymentBkash PaymentMethod = "bkash"
	PaymentCOD   PaymentMethod = "cod"
)

// Label returns the human-facing name used in notifications.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentBkash:
		return "bKash"
	case PaymentCOD:
		return "Cash on Delivery"
	default:
		return string(m)
	}
}

type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
}

type Delivery struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
}

type Payment struct {
	Method        PaymentMethod `json:"method"`
	TransactionID string        `json:"transactionId,omitempty"`
	Status        PaymentStatus `json:"status"`
}

// OrderItem is a snapshot of a catalog product at order time; its price and
// name never change even if the live product does.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Category  string  `json:"category"`
}

// Totals are supplied by the client and stored as given.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DeliveryCharge float64 `json:"deliveryCharge"`
	Total          float64 `json:"total"`
}

type Order struct {
	ID          uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber string      `json:"orderNumber" gorm:"size:16;not null;uniqueIndex"`
	Customer    Customer    `json:"customer" gorm:"serializer:json"`
	Delivery    Delivery    `json:"delivery" gorm:"serializer:json"`
	Payment     Payment     `json:"payment" gorm:"serializer:json"`
	Items       []OrderItem `json:"items" gorm:"serializer:json"`
	Totals      Totals      `json:"totals" gorm:"serializer:json"`
	Status      OrderStatus `json:"status" gorm:"size:16;not null;default:'pending';index"`
	OrderNotes  string      `json:"orderNotes,omitempty"`
	AdminNotes  string      `json:"adminNotes"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
