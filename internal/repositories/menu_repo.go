package repositories

import (
	"context"
	"errors"

	"pizzeria/internal/models"
)

// ErrMenuItemNotFound indicates the requested pizza is not on the menu.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuRepository defines read access to the restaurant's menu catalog.
// The catalog is owned by the restaurant; this service never mutates it.
type MenuRepository interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id int) (*models.MenuItem, error)
}
