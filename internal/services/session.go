package services

import (
	"sync"

	"github.com/google/uuid"
)

// Session is the per-session state container: the cart, the address
// acquisition state, and the live tracking-view activations. Components
// receive it as a dependency instead of reaching for globals.
type Session struct {
	ID      string
	Cart    *CartStore
	Address *AddressService

	mu       sync.Mutex
	trackers map[string]*Tracker
}

// Tracker returns the session's tracker for the given order, creating it on
// first access. Repeated polls of the same order reuse one tracker, so the
// ingredient lookup is fetched once per view activation.
func (s *Session) Tracker(tracking *TrackingService, orderID string) *Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.trackers[orderID]; ok {
		return t
	}
	t := tracking.NewTracker(orderID)
	s.trackers[orderID] = t
	return t
}

// SessionManager hands out per-session state containers keyed by session id.
type SessionManager struct {
	geo Geolocator

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionManager creates a new SessionManager.
func NewSessionManager(geo Geolocator) *SessionManager {
	return &SessionManager{
		geo:      geo,
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for the given id, minting a fresh id when
// the caller has none yet.
func (m *SessionManager) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = uuid.New().String()
	}
	if session, ok := m.sessions[id]; ok {
		return session
	}
	session := &Session{
		ID:       id,
		Cart:     NewCartStore(),
		Address:  NewAddressService(m.geo),
		trackers: make(map[string]*Tracker),
	}
	m.sessions[id] = session
	return session
}
