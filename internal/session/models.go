// Package session keeps one station view per browsing session and serialises
// the requests made against it.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/Shashankvwali/VoltGo/internal/station"
)

// Session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
)

// Session is one user's browsing session. All access to the view goes
// through mu, so requests for the same session run one at a time.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	closed   bool
	view     *station.View
}

func newSession(id string, catalog *station.Catalog, now time.Time) *Session {
	return &Session{
		ID:        id,
		CreatedAt: now,
		lastSeen:  now,
		view:      station.NewView(catalog),
	}
}

// LastSeen returns when the session last handled a request.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
