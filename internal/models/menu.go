package models

// MenuItem represents a pizza on the restaurant menu.
// The menu is read-only from this service's point of view.
type MenuItem struct {
	ID          int      `json:"id"`
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	UnitPrice   float64  `json:"unitPrice" validate:"required,gt=0"`
	Ingredients []string `json:"ingredients"`
	SoldOut     bool     `json:"soldOut"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty,url"`
}
