package models

// CartLine is one distinct pizza-with-quantity entry in a cart.
// TotalPrice is always recomputed as Quantity * UnitPrice whenever the
// quantity changes; it is never stored independently of that relation.
type CartLine struct {
	PizzaID    int     `json:"pizzaId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}
