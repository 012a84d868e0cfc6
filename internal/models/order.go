package models

import "time"

// OrderForm is the raw order submission form as sent by the client.
type OrderForm struct {
	Customer string `json:"customer" validate:"required"`
	Phone    string `json:"phone" validate:"required,intlphone"`
	Address  string `json:"address" validate:"required"`
	Priority bool   `json:"priority"`
}

// DraftOrder is an order under construction: a validated form plus a
// snapshot of the cart taken at submission time. It is never mutated once
// built; a late-arriving address resolution does not alter an in-flight draft.
type DraftOrder struct {
	Customer string     `json:"customer"`
	Phone    string     `json:"phone"`
	Address  string     `json:"address"`
	Position *Position  `json:"position,omitempty"`
	Priority bool       `json:"priority"`
	Cart     []CartLine `json:"cart"`
}

// Order is a placed order as reported by the order service. It is an
// immutable snapshot per fetch; callers re-fetch to observe status changes.
type Order struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"` // e.g. "preparing", "delivering", "delivered"
	Priority          bool       `json:"priority"`
	Customer          string     `json:"customer"`
	Phone             string     `json:"phone"`
	Address           string     `json:"address"`
	Position          *Position  `json:"position,omitempty"`
	OrderPrice        float64    `json:"orderPrice"`
	PriorityPrice     float64    `json:"priorityPrice"`
	EstimatedDelivery time.Time  `json:"estimatedDelivery"`
	Cart              []CartLine `json:"cart"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// OrderViewItem is a cart line enriched with the ingredient list of the
// corresponding menu item. Unknown pizza ids get an empty list.
type OrderViewItem struct {
	CartLine
	Ingredients []string `json:"ingredients"`
}

// OrderView is the delivery-tracking projection of an Order: the countdown
// until the estimated delivery plus ingredient-enriched cart entries.
// MinutesLeft may be negative, meaning the order is overdue; that is a
// displayable state, not an error.
type OrderView struct {
	ID                string          `json:"id"`
	Status            string          `json:"status"`
	Priority          bool            `json:"priority"`
	OrderPrice        float64         `json:"orderPrice"`
	PriorityPrice     float64         `json:"priorityPrice"`
	TotalPrice        float64         `json:"totalPrice"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
	MinutesLeft       int             `json:"minutesLeft"`
	Overdue           bool            `json:"overdue"`
	Items             []OrderViewItem `json:"items"`
}
