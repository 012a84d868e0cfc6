package services

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"pizzeria/internal/models"
	"pizzeria/internal/repositories"
)

// TrackingService derives the delivery-tracking view of a placed order.
type TrackingService struct {
	orderRepo repositories.OrderRepository
	menuRepo  repositories.MenuRepository
}

// NewTrackingService creates a new TrackingService.
func NewTrackingService(orderRepo repositories.OrderRepository, menuRepo repositories.MenuRepository) *TrackingService {
	return &TrackingService{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
	}
}

// NewTracker starts a view activation for the given order. Each tracker
// fetches the ingredient lookup at most once, on its own goroutine, however
// often the view is refreshed.
func (s *TrackingService) NewTracker(orderID string) *Tracker {
	return &Tracker{
		svc:     s,
		orderID: orderID,
		ready:   make(chan struct{}),
	}
}

// Tracker is one activation of the order tracking view.
type Tracker struct {
	svc     *TrackingService
	orderID string

	once        sync.Once
	ready       chan struct{}
	ingredients map[int][]string
}

// View re-fetches the order and derives its tracking projection. The first
// call kicks off the ingredient lookup concurrently with the order fetch;
// the lookup runs to completion and its result is joined in whenever it
// lands. A failed lookup degrades to empty ingredient lists, as does any
// cart entry whose pizza id is unknown to the menu.
func (t *Tracker) View(ctx context.Context) (*models.OrderView, error) {
	t.once.Do(func() {
		go t.loadIngredients()
	})

	order, err := t.svc.orderRepo.GetByID(ctx, t.orderID)
	if err != nil {
		return nil, err
	}

	// The ingredient fetch has no cancellation; it either has landed
	// already or we wait for it here.
	<-t.ready

	items := make([]models.OrderViewItem, 0, len(order.Cart))
	for _, line := range order.Cart {
		ingredients := t.ingredients[line.PizzaID]
		if ingredients == nil {
			ingredients = []string{}
		}
		items = append(items, models.OrderViewItem{
			CartLine:    line,
			Ingredients: ingredients,
		})
	}

	minutes := minutesLeft(order.EstimatedDelivery)
	return &models.OrderView{
		ID:                order.ID,
		Status:            order.Status,
		Priority:          order.Priority,
		OrderPrice:        order.OrderPrice,
		PriorityPrice:     order.PriorityPrice,
		TotalPrice:        order.OrderPrice + order.PriorityPrice,
		EstimatedDelivery: order.EstimatedDelivery,
		MinutesLeft:       minutes,
		Overdue:           minutes < 0,
		Items:             items,
	}, nil
}

func (t *Tracker) loadIngredients() {
	defer close(t.ready)

	menu, err := t.svc.menuRepo.GetAll(context.Background())
	if err != nil {
		log.Printf("Failed to fetch ingredient lookup for order %s: %v", t.orderID, err)
		return
	}
	lookup := make(map[int][]string, len(menu))
	for _, item := range menu {
		lookup[item.ID] = item.Ingredients
	}
	t.ingredients = lookup
}

// minutesLeft may be negative, meaning the delivery is overdue.
func minutesLeft(estimated time.Time) int {
	return int(math.Round(time.Until(estimated).Minutes()))
}
