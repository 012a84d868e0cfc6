package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pizzeria/internal/models"
)

// HTTPMenuRepository fetches the menu from the remote restaurant API
// (GET /menu). Item lookup filters the listing because the API has no
// per-item endpoint.
type HTTPMenuRepository struct {
	baseURL string
	client  *http.Client
}

// NewHTTPMenuRepository creates a new instance of HTTPMenuRepository.
func NewHTTPMenuRepository(baseURL string) *HTTPMenuRepository {
	return &HTTPMenuRepository{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// GetAll returns the full remote menu.
func (r *HTTPMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/menu", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build menu request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("menu request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("menu service returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Data []models.MenuItem `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode menu response: %w", err)
	}
	return envelope.Data, nil
}

// GetByID returns a single menu item by its id.
func (r *HTTPMenuRepository) GetByID(ctx context.Context, id int) (*models.MenuItem, error) {
	menu, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range menu {
		if menu[i].ID == id {
			return &menu[i], nil
		}
	}
	return nil, fmt.Errorf("menu item %d: %w", id, ErrMenuItemNotFound)
}
