// Package geocode resolves the caller's current position and a
// human-readable address from IP geolocation plus reverse geocoding.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pizzeria/internal/models"
)

// Typed failures of the provider. Deadline errors from ctx pass through
// unwrapped so callers can distinguish a timeout.
var (
	ErrPermissionDenied = errors.New("geolocation permission denied")
	ErrProvider         = errors.New("geolocation provider error")
)

// Config holds the provider endpoints.
type Config struct {
	// LocateURL returns the caller's coordinates, e.g. a BigDataCloud
	// ip-geolocation endpoint.
	LocateURL string
	// ReverseURL reverse-geocodes a coordinate into an address.
	ReverseURL string
}

// Client is an HTTP geolocation/reverse-geocoding client.
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient creates a new geocoding client.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type locateResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type reverseResponse struct {
	Locality    string `json:"locality"`
	City        string `json:"city"`
	Postcode    string `json:"postcode"`
	CountryName string `json:"countryName"`
}

// ResolveCurrentAddress resolves the caller's position and formats the
// reverse-geocoded address. It blocks until the provider answers or ctx
// expires; cancellation-by-supersession is the caller's concern.
func (c *Client) ResolveCurrentAddress(ctx context.Context) (models.Position, string, error) {
	var loc locateResponse
	if err := c.getJSON(ctx, c.cfg.LocateURL, &loc); err != nil {
		return models.Position{}, "", err
	}
	pos := models.Position{Latitude: loc.Latitude, Longitude: loc.Longitude}

	url := fmt.Sprintf("%s?latitude=%f&longitude=%f", c.cfg.ReverseURL, pos.Latitude, pos.Longitude)
	var rev reverseResponse
	if err := c.getJSON(ctx, url, &rev); err != nil {
		return models.Position{}, "", err
	}
	return pos, formatAddress(rev), nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrPermissionDenied
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}
	return nil
}

func formatAddress(rev reverseResponse) string {
	parts := make([]string, 0, 3)
	if rev.Locality != "" {
		parts = append(parts, rev.Locality)
	}
	if rev.City != "" || rev.Postcode != "" {
		parts = append(parts, strings.TrimSpace(rev.City+" "+rev.Postcode))
	}
	if rev.CountryName != "" {
		parts = append(parts, rev.CountryName)
	}
	return strings.Join(parts, ", ")
}
