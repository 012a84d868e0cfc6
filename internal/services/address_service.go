package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"pizzeria/internal/models"
	"pizzeria/pkg/geocode"
)

// Geolocator resolves the caller's current position and a human-readable
// address. Implemented by pkg/geocode for production use.
type Geolocator interface {
	ResolveCurrentAddress(ctx context.Context) (models.Position, string, error)
}

const resolveTimeout = 30 * time.Second

// AddressService runs the address acquisition state machine over one
// session's UserAddressState: idle -> loading -> ready|error, with retries
// allowed from ready and error. RequestAddress returns immediately; the
// resolution runs on its own goroutine. Only the most recently initiated
// attempt may update the state: a newer request supersedes an in-flight one
// and the stale result is discarded.
type AddressService struct {
	geo Geolocator

	mu        sync.Mutex
	state     models.UserAddressState
	gen       uint64
	listeners []func()
}

// NewAddressService creates an AddressService in the idle state.
func NewAddressService(geo Geolocator) *AddressService {
	return &AddressService{
		geo:   geo,
		state: models.UserAddressState{Status: models.AddressIdle},
	}
}

// Subscribe registers a listener invoked after every committed transition.
func (s *AddressService) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *AddressService) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// SetUsername records the customer's display name on the session state.
func (s *AddressService) SetUsername(name string) {
	s.mu.Lock()
	s.state.Username = name
	s.mu.Unlock()
	s.notify()
}

// State returns a snapshot of the current address state.
func (s *AddressService) State() models.UserAddressState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	if s.state.Position != nil {
		pos := *s.state.Position
		state.Position = &pos
	}
	return state
}

// RequestAddress starts a new acquisition attempt and returns immediately.
// Calling it while an attempt is in flight restarts the acquisition; the
// superseded attempt's result is discarded when it arrives.
func (s *AddressService) RequestAddress() {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state.Status = models.AddressLoading
	s.mu.Unlock()
	s.notify()

	go s.resolve(gen)
}

func (s *AddressService) resolve(gen uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	pos, address, err := s.geo.ResolveCurrentAddress(ctx)

	s.mu.Lock()
	if gen != s.gen {
		// A newer request superseded this attempt.
		s.mu.Unlock()
		return
	}
	if err != nil {
		// A previously resolved position/address is preserved so a
		// failed retry does not destroy a valid address.
		s.state.Status = models.AddressError
		s.state.Error = userMessage(err)
	} else {
		s.state.Status = models.AddressReady
		s.state.Position = &pos
		s.state.Address = address
		s.state.Error = ""
	}
	s.mu.Unlock()
	s.notify()
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, geocode.ErrPermissionDenied):
		return "Permission to use your location was denied."
	case errors.Is(err, context.DeadlineExceeded):
		return "Locating you took too long. Please try again."
	default:
		return "There was a problem getting your address. Make sure to fill this field!"
	}
}
