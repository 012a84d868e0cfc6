package services

import (
	"sync"

	"pizzeria/internal/models"
)

// CartStore holds the line items of one session's cart. Lines keep their
// insertion order, there is at most one line per pizza id, and every
// mutation recomputes the affected line's total price. Mutations are applied
// synchronously in call order; registered listeners are notified after each
// committed mutation.
type CartStore struct {
	mu        sync.Mutex
	lines     []models.CartLine
	listeners []func()
}

// NewCartStore creates an empty cart.
func NewCartStore() *CartStore {
	return &CartStore{}
}

// Subscribe registers a listener invoked after every committed mutation.
// Listeners may read the store; they run outside the store's lock.
func (c *CartStore) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *CartStore) notify() {
	c.mu.Lock()
	listeners := make([]func(), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// AddItem appends a new line with quantity 1. Adding a pizza that already
// has a line is a caller error; callers must check membership first.
func (c *CartStore) AddItem(pizzaID int, name string, unitPrice float64) error {
	c.mu.Lock()
	if c.indexOf(pizzaID) >= 0 {
		c.mu.Unlock()
		return ErrDuplicateLine
	}
	c.lines = append(c.lines, models.CartLine{
		PizzaID:    pizzaID,
		Name:       name,
		Quantity:   1,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice,
	})
	c.mu.Unlock()
	c.notify()
	return nil
}

// RemoveItem deletes the line for the given pizza. Removing an absent line
// is a no-op.
func (c *CartStore) RemoveItem(pizzaID int) {
	c.mu.Lock()
	i := c.indexOf(pizzaID)
	if i < 0 {
		c.mu.Unlock()
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.mu.Unlock()
	c.notify()
}

// IncreaseQuantity adds one to the line's quantity.
func (c *CartStore) IncreaseQuantity(pizzaID int) error {
	c.mu.Lock()
	i := c.indexOf(pizzaID)
	if i < 0 {
		c.mu.Unlock()
		return ErrLineNotFound
	}
	c.lines[i].Quantity++
	c.lines[i].TotalPrice = float64(c.lines[i].Quantity) * c.lines[i].UnitPrice
	c.mu.Unlock()
	c.notify()
	return nil
}

// DecreaseQuantity subtracts one from the line's quantity. A line reaching
// quantity 0 is removed, so no line ever rests at quantity 0 and quantity
// never goes negative.
func (c *CartStore) DecreaseQuantity(pizzaID int) error {
	c.mu.Lock()
	i := c.indexOf(pizzaID)
	if i < 0 {
		c.mu.Unlock()
		return ErrLineNotFound
	}
	c.lines[i].Quantity--
	if c.lines[i].Quantity <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	} else {
		c.lines[i].TotalPrice = float64(c.lines[i].Quantity) * c.lines[i].UnitPrice
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

// Clear empties the cart. Clearing an empty cart is a no-op.
func (c *CartStore) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
	c.notify()
}

// Items returns a snapshot of the cart lines in insertion order.
func (c *CartStore) Items() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := make([]models.CartLine, len(c.lines))
	copy(snapshot, c.lines)
	return snapshot
}

// Line returns the line for the given pizza, or nil if absent.
func (c *CartStore) Line(pizzaID int) *models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(pizzaID); i >= 0 {
		line := c.lines[i]
		return &line
	}
	return nil
}

// Quantity returns the quantity of the given pizza, 0 if absent.
func (c *CartStore) Quantity(pizzaID int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(pizzaID); i >= 0 {
		return c.lines[i].Quantity
	}
	return 0
}

// TotalQuantity returns the number of pizzas across all lines.
func (c *CartStore) TotalQuantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total int
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the cart total.
func (c *CartStore) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, line := range c.lines {
		total += line.TotalPrice
	}
	return total
}

// indexOf must be called with the lock held.
func (c *CartStore) indexOf(pizzaID int) int {
	for i := range c.lines {
		if c.lines[i].PizzaID == pizzaID {
			return i
		}
	}
	return -1
}
