package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pizzeria/internal/models"
)

// HTTPOrderRepository talks to a remote restaurant API
// (POST /order, GET /order/:id, PATCH /order/:id).
type HTTPOrderRepository struct {
	baseURL string
	client  *http.Client
}

// NewHTTPOrderRepository creates a new instance of HTTPOrderRepository.
func NewHTTPOrderRepository(baseURL string) *HTTPOrderRepository {
	return &HTTPOrderRepository{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// orderEnvelope is the response wrapper the restaurant API uses.
type orderEnvelope struct {
	Data models.Order `json:"data"`
}

// Create submits the draft to the remote order service.
func (r *HTTPOrderRepository) Create(ctx context.Context, draft models.DraftOrder) (*models.Order, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal draft order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/order", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return r.do(req, http.StatusCreated)
}

// GetByID fetches an order from the remote order service.
func (r *HTTPOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/order/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build get order request: %w", err)
	}
	return r.do(req, http.StatusOK)
}

// UpdatePriority flags an existing remote order as priority.
func (r *HTTPOrderRepository) UpdatePriority(ctx context.Context, id string) (*models.Order, error) {
	body := []byte(`{"priority":true}`)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, r.baseURL+"/order/"+id, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build update order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(req, http.StatusOK)
}

func (r *HTTPOrderRepository) do(req *http.Request, wantStatus int) (*models.Order, error) {
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrOrderNotFound
	}
	if resp.StatusCode != wantStatus {
		return nil, fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	var envelope orderEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode order service response: %w", err)
	}
	return &envelope.Data, nil
}
