package http

import (
	"perfume-shop/internal/domain"
	"perfume-shop/internal/notify"
)

// UpdateOrderRequest carries the admin-editable order fields. Pointers keep
// "absent" distinct from "set to empty".
type UpdateOrderRequest struct {
	Status        *string `json:"status"`
	AdminNotes    *string `json:"adminNotes"`
	PaymentStatus *string `json:"paymentStatus"`
}

type CreateOrderResponse struct {
	Success       bool          `json:"success"`
	Message       string        `json:"message"`
	OrderNumber   string        `json:"orderNumber"`
	Order         *domain.Order `json:"order"`
	Notifications notify.Result `json:"notifications"`
}

type ListOrdersResponse struct {
	Orders      []domain.Order `json:"orders"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	TotalOrders int64          `json:"totalOrders"`
}

type TestEmailRequest struct {
	Email string `json:"email"`
}
