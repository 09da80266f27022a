package services

import (
	"time"

	"perfume-shop/internal/domain"
)

// NewTestOrder builds a normalized order the way validation would emit it,
// ready to be passed to OrderService.Create.
func NewTestOrder() *domain.Order {
	return &domain.Order{
		Customer: domain.Customer{
			FirstName: "Ayesha",
			LastName:  "Rahman",
			Phone:     "01712345678",
			Email:     "ayesha@example.com",
		},
		Delivery: domain.Delivery{
			Address: "House 12, Road 5",
			City:    "Dhaka",
		},
		Payment: domain.Payment{Method: domain.PaymentCOD},
		Items: []domain.OrderItem{
			{ProductID: "1", Name: "Midnight Oud", Price: 50, Quantity: 2, Category: "woody"},
			{ProductID: "4", Name: "Citrus Veil", Price: 30, Quantity: 1, Category: "fresh"},
		},
		Totals: domain.Totals{Subtotal: 130, DeliveryCharge: 0, Total: 130},
	}
}

// NewStoredTestOrder is NewTestOrder after a successful Create.
func NewStoredTestOrder(id uint64, number string, status domain.OrderStatus) *domain.Order {
	o := NewTestOrder()
	o.ID = id
	o.OrderNumber = number
	o.Status = status
	o.Payment.Status = domain.PaymentPending
	o.CreatedAt = time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)
	o.UpdatedAt = o.CreatedAt
	return o
}
