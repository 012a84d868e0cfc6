package repositories

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/models"
)

// ErrOrderNotFound indicates the requested order is unknown to the service.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository is the contract of the order service consumed by the
// submission workflow and the tracking view. Create accepts a draft and
// returns the placed order; UpdatePriority is the only allowed in-place
// mutation of a placed order and is safe to retry.
type OrderRepository interface {
	Create(ctx context.Context, draft models.DraftOrder) (*models.Order, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	UpdatePriority(ctx context.Context, id string) (*models.Order, error)
}

// Priority orders pay a 20% surcharge on the cart total and get the
// shorter delivery window.
const (
	priorityRate          = 0.2
	standardDeliveryDelay = 40 * time.Minute
	priorityDeliveryDelay = 25 * time.Minute
)

func orderPrice(cart []models.CartLine) float64 {
	var total float64
	for _, line := range cart {
		total += line.TotalPrice
	}
	return total
}

func priorityPrice(orderPrice float64, priority bool) float64 {
	if !priority {
		return 0
	}
	return orderPrice * priorityRate
}

func estimateDelivery(placedAt time.Time, priority bool) time.Time {
	if priority {
		return placedAt.Add(priorityDeliveryDelay)
	}
	return placedAt.Add(standardDeliveryDelay)
}
