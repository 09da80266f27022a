// Package validation checks and normalizes an incoming order payload before
// anything touches the store. It is pure: no I/O, no clock, no randomness, so
// it can be tested without a database.
package validation

import (
	"fmt"
	"strings"

	"perfume-shop/internal/domain"
)

// OrderPayload is the raw client submission. Optional numeric fields are
// pointers so "absent" and "zero" can be told apart.
type OrderPayload struct {
	Customer   *CustomerPayload `json:"customer"`
	Delivery   *DeliveryPayload `json:"delivery"`
	Payment    *PaymentPayload  `json:"payment"`
	Items      []ItemPayload    `json:"items"`
	Totals     *TotalsPayload   `json:"totals"`
	OrderNotes string           `json:"orderNotes"`
}

type CustomerPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type DeliveryPayload struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type PaymentPayload struct {
	Method        string `json:"method"`
	TransactionID string `json:"transactionId"`
}

type ItemPayload struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Price     *float64 `json:"price"`
	Quantity  *int     `json:"quantity"`
	Category  string   `json:"category"`
}

type TotalsPayload struct {
	Subtotal       float64  `json:"subtotal"`
	DeliveryCharge float64  `json:"deliveryCharge"`
	Total          *float64 `json:"total"`
}

// Validate checks the payload and returns a normalized order ready for
// persistence. Checks run in a fixed sequence and stop at the first failure,
// each with its own message so callers can tell causes apart. Totals are
// trusted as supplied; nothing cross-checks total against the line items.
func Validate(p *OrderPayload) (*domain.Order, error) {
	if p == nil {
		return nil, domain.NewValidationError("body", "Request body is required")
	}

	if p.Customer == nil {
		return nil, domain.NewValidationError("customer", "Customer information is required")
	}
	if p.Delivery == nil {
		return nil, domain.NewValidationError("delivery", "Delivery information is required")
	}
	if p.Payment == nil {
		return nil, domain.NewValidationError("payment", "Payment information is required")
	}
	if len(p.Items) == 0 {
		return nil, domain.NewValidationError("items", "At least one order item is required")
	}
	if p.Totals == nil {
		return nil, domain.NewValidationError("totals", "Order totals are required")
	}

	customer := domain.Customer{
		FirstName: strings.TrimSpace(p.Customer.FirstName),
		LastName:  strings.TrimSpace(p.Customer.LastName),
		Phone:     strings.TrimSpace(p.Customer.Phone),
		Email:     strings.TrimSpace(p.Customer.Email),
	}
	if customer.FirstName == "" {
		return nil, domain.NewValidationError("customer.firstName", "First name is required")
	}
	if customer.LastName == "" {
		return nil, domain.NewValidationError("customer.lastName", "Last name is required")
	}
	if customer.Phone == "" {
		return nil, domain.NewValidationError("customer.phone", "Phone number is required")
	}

	delivery := domain.Delivery{
		Address:    strings.TrimSpace(p.Delivery.Address),
		City:       strings.TrimSpace(p.Delivery.City),
		PostalCode: strings.TrimSpace(p.Delivery.PostalCode),
	}
	if delivery.Address == "" {
		return nil, domain.NewValidationError("delivery.address", "Delivery address is required")
	}
	if delivery.City == "" {
		return nil, domain.NewValidationError("delivery.city", "City is required")
	}

	method := domain.PaymentMethod(strings.TrimSpace(p.Payment.Method))
	if method != domain.PaymentBkash && method != domain.PaymentCOD {
		return nil, domain.NewValidationError("payment.method", "Payment method must be bkash or cod")
	}
	trxID := strings.TrimSpace(p.Payment.TransactionID)
	if method == domain.PaymentBkash && trxID == "" {
		return nil, domain.NewValidationError("payment.transactionId", "Transaction ID is required for bKash payments")
	}

	items := make([]domain.OrderItem, 0, len(p.Items))
	for i, it := range p.Items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }

		productID := strings.TrimSpace(it.ProductID)
		if productID == "" {
			return nil, domain.NewValidationError(field("productId"), "Item %d: product ID is required", i+1)
		}
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, domain.NewValidationError(field("name"), "Item %d: name is required", i+1)
		}
		if it.Price == nil {
			return nil, domain.NewValidationError(field("price"), "Item %d: price is required", i+1)
		}
		if *it.Price <= 0 {
			return nil, domain.NewValidationError(field("price"), "Item %d: price must be greater than zero", i+1)
		}
		if it.Quantity == nil {
			return nil, domain.NewValidationError(field("quantity"), "Item %d: quantity is required", i+1)
		}
		if *it.Quantity <= 0 {
			return nil, domain.NewValidationError(field("quantity"), "Item %d: quantity must be greater than zero", i+1)
		}

		category := strings.TrimSpace(it.Category)
		if category == "" {
			category = "other"
		}
		items = append(items, domain.OrderItem{
			ProductID: productID,
			Name:      name,
			Price:     *it.Price,
			Quantity:  *it.Quantity,
			Category:  category,
		})
	}

	if p.Totals.Total == nil {
		return nil, domain.NewValidationError("totals.total", "Order total is required")
	}
	if *p.Totals.Total <= 0 {
		return nil, domain.NewValidationError("totals.total", "Order total must be greater than zero")
	}
	if p.Totals.Subtotal < 0 {
		return nil, domain.NewValidationError("totals.subtotal", "Subtotal cannot be negative")
	}
	if p.Totals.DeliveryCharge < 0 {
		return nil, domain.NewValidationError("totals.deliveryCharge", "Delivery charge cannot be negative")
	}

	return &domain.Order{
		Customer: customer,
		Delivery: delivery,
		Payment: domain.Payment{
			Method:        method,
			TransactionID: trxID,
		},
		Items: items,
		Totals: domain.Totals{
			Subtotal:       p.Totals.Subtotal,
			DeliveryCharge: p.Totals.DeliveryCharge,
			Total:          *p.Totals.Total,
		},
		OrderNotes: strings.TrimSpace(p.OrderNotes),
	}, nil
}
