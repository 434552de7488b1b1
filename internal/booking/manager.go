package booking

import (
	"fmt"
	"sync"

	"github.com/examsaathi/examsaathi-web/pkg/logger"
)

// Manager hands out one controller per mentor so an in-progress booking
// survives across requests. Bookings never persist beyond process memory.
type Manager struct {
	charger Charger
	logger  *logger.Logger

	mu     sync.Mutex
	active map[string]*Controller
}

// NewManager builds a booking manager around the payment charger.
func NewManager(charger Charger, logg *logger.Logger) (*Manager, error) {
	if charger == nil {
		return nil, fmt.Errorf("charger required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Manager{
		charger: charger,
		logger:  logg,
		active:  make(map[string]*Controller),
	}, nil
}

// For returns the booking in progress for the mentor, starting one if needed.
func (m *Manager) For(mentorID string) (*Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.active[mentorID]; ok {
		return c, nil
	}
	c, err := NewController(mentorID, m.charger, m.logger)
	if err != nil {
		return nil, err
	}
	m.active[mentorID] = c
	return c, nil
}

// Reset discards the booking for the mentor so a new one can start.
func (m *Manager) Reset(mentorID string) {
	m.mu.Lock()
	delete(m.active, mentorID)
	m.mu.Unlock()
}
