package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"perfume-shop/internal/domain"
	"perfume-shop/internal/infra/rabbitmq"
	"perfume-shop/internal/repository"
)

// orderNumberAttempts bounds the retry loop when a generated order number
// collides with an existing one. The suffix space is only 1000 values per
// day, so collisions are expected under load; five fresh draws make the
// residual failure odds negligible.
const orderNumberAttempts = 5

type OrderService struct {
	repo      repository.OrderRepository
	publisher rabbitmq.PublisherInterface
	log       *zap.Logger
	now       func() time.Time
}

func NewOrderService(repo repository.OrderRepository, log *zap.Logger) *OrderService {
	return &OrderService{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// SetPublisher wires the optional event publisher. Events are best-effort;
// a nil publisher simply disables them.
func (s *OrderService) SetPublisher(p rabbitmq.PublisherInterface) {
	s.publisher = p
}

// Create persists a normalized order: assigns the order number, stamps the
// initial statuses and timestamps, and retries with a fresh number when the
// store reports a collision.
func (s *OrderService) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	// Validation runs before this point; these guards only catch callers
	// that bypassed it.
	if len(order.Items) == 0 {
		return nil, domain.NewValidationError("items", "At least one order item is required")
	}
	if order.Totals.Total <= 0 {
		return nil, domain.NewValidationError("totals.total", "Order total must be greater than zero")
	}
	if order.Customer.Phone == "" {
		return nil, domain.NewValidationError("customer.phone", "Phone number is required")
	}

	now := s.now()
	order.Status = domain.StatusPending
	order.Payment.Status = domain.PaymentPending
	order.AdminNotes = ""
	order.CreatedAt = now
	order.UpdatedAt = now

	var lastErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = domain.NewOrderNumber(now)

		err := s.repo.Create(ctx, order)
		if err == nil {
			s.log.Info("order created",
				zap.Uint64("id", order.ID),
				zap.String("orderNumber", order.OrderNumber))
			s.publishAsync("order.created", domain.OrderCreatedEvent{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				Total:       order.Totals.Total,
				ItemCount:   len(order.Items),
				CreatedAt:   order.CreatedAt,
			})
			return order, nil
		}
		if !errors.Is(err, domain.ErrDuplicateOrderNumber) {
			return nil, err
		}
		lastErr = err
		s.log.Warn("order number collision, retrying",
			zap.String("orderNumber", order.OrderNumber),
			zap.Int("attempt", attempt+1))
	}
	return nil, fmt.Errorf("order number generation exhausted after %d attempts: %w", orderNumberAttempts, lastErr)
}

// OrderUpdate carries the admin-editable fields. Nil means "leave as is".
type OrderUpdate struct {
	Status        *string
	AdminNotes    *string
	PaymentStatus *string
}

// Update applies a partial update and returns the updated order together
// with the status it had before, so callers can decide whether a
// status-change notification is due.
func (s *OrderService) Update(ctx context.Context, id uint64, upd OrderUpdate) (*domain.Order, domain.OrderStatus, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.ErrOrderNotFound
	}

	prev := order.Status

	if upd.Status != nil {
		status := domain.OrderStatus(*upd.Status)
		if !status.Valid() {
			return nil, "", domain.NewValidationError("status", "Unknown order status %q", *upd.Status)
		}
		// Any enumerated status may follow any other; there is no
		// transition table.
		order.Status = status
	}
	if upd.PaymentStatus != nil {
		ps := domain.PaymentStatus(*upd.PaymentStatus)
		if !ps.Valid() {
			return nil, "", domain.NewValidationError("paymentStatus", "Unknown payment status %q", *upd.PaymentStatus)
		}
		order.Payment.Status = ps
	}
	if upd.AdminNotes != nil {
		order.AdminNotes = *upd.AdminNotes
	}
	order.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, "", err
	}

	if order.Status != prev {
		s.publishAsync("order.status_changed", domain.OrderStatusChangedEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			From:        prev,
			To:          order.Status,
			ChangedAt:   order.UpdatedAt,
		})
	}
	return order, prev, nil
}

func (s *OrderService) GetByID(ctx context.Context, id uint64) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	order, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// List returns one page of orders plus the total count and page count.
// Page and limit are passed through as supplied.
func (s *OrderService) List(ctx context.Context, status string, page, limit int) ([]domain.Order, int64, int, error) {
	orders, total, err := s.repo.List(ctx, repository.OrderFilter{
		Status: status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := 1
	if limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return orders, total, totalPages, nil
}

func (s *OrderService) publishAsync(routingKey string, event any) {
	if s.publisher == nil {
		return
	}
	go func() {
		if err := s.publisher.Publish(context.Background(), routingKey, event); err != nil {
			s.log.Warn("event publish failed", zap.String("routingKey", routingKey), zap.Error(err))
		}
	}()
}
