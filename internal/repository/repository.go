package repository

import (
	"context"

	"perfume-shop/internal/domain"
)

type OrderFilter struct {
	// Status filters by exact order status; "" or "all" disables the filter.
	Status string
	// Page is 1-indexed. Values are passed through as given.
	Page  int
	Limit int
}

type OrderRepository interface {
	// Create persists a new order. Returns domain.ErrDuplicateOrderNumber
	// when the unique index on order_number rejects the insert.
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
	// FindByID returns (nil, nil) when no such order exists.
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByNumber(ctx context.Context, number string) (*domain.Order, error)
	List(ctx context.Context, f OrderFilter) ([]domain.Order, int64, error)
}

type ProductFilter struct {
	Category string
	InStock  *bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
	// FindByID returns (nil, nil) when no such product exists.
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	// ReplaceAll deletes every product and inserts the given set. Used by the
	// destructive reseed path only.
	ReplaceAll(ctx context.Context, products []domain.Product) error
	// Ping probes store connectivity; catalog reads fall back to the sample
	// dataset when it fails.
	Ping(ctx context.Context) error
}
