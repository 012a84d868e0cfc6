package repositories

import (
	"context"
	"sync"
	"time"

	"pizzeria/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It stands in for the remote order service in local runs and tests,
// applying the same pricing rules the real service does.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create places a new order from the draft and prices it.
func (r *MockOrderRepository) Create(ctx context.Context, draft models.DraftOrder) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	price := orderPrice(draft.Cart)
	order := models.Order{
		ID:                uuid.New().String(),
		Status:            "preparing",
		Priority:          draft.Priority,
		Customer:          draft.Customer,
		Phone:             draft.Phone,
		Address:           draft.Address,
		Position:          draft.Position,
		OrderPrice:        price,
		PriorityPrice:     priorityPrice(price, draft.Priority),
		EstimatedDelivery: estimateDelivery(now, draft.Priority),
		Cart:              draft.Cart,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	r.orders[order.ID] = order
	return &order, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

// UpdatePriority flags an existing order as priority. Repeating the call
// leaves the order in the same state.
func (r *MockOrderRepository) UpdatePriority(ctx context.Context, id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	order.Priority = true
	order.PriorityPrice = priorityPrice(order.OrderPrice, true)
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return &order, nil
}
