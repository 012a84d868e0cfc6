package repositories

import (
	"context"
	"sort"
	"sync"

	"pizzeria/internal/models"
)

// MockMenuRepository is an in-memory implementation of MenuRepository.
type MockMenuRepository struct {
	items map[int]models.MenuItem
	mu    sync.RWMutex
}

// NewMockMenuRepository creates a new instance of MockMenuRepository.
func NewMockMenuRepository() *MockMenuRepository {
	return &MockMenuRepository{
		items: make(map[int]models.MenuItem),
	}
}

// Seed loads the given menu items, replacing any existing entry with the
// same id.
func (r *MockMenuRepository) Seed(items []models.MenuItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		r.items[item.ID] = item
	}
}

// GetAll returns the full menu sorted by item id.
func (r *MockMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	menu := make([]models.MenuItem, 0, len(r.items))
	for _, item := range r.items {
		menu = append(menu, item)
	}
	sort.Slice(menu, func(i, j int) bool { return menu[i].ID < menu[j].ID })
	return menu, nil
}

// GetByID returns a menu item by its id.
func (r *MockMenuRepository) GetByID(ctx context.Context, id int) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrMenuItemNotFound
	}
	return &item, nil
}
