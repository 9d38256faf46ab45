package session

import "context"

// Repository defines storage for live sessions.
type Repository interface {
	// Get retrieves a session by ID.
	// Returns ErrSessionNotFound if the session doesn't exist.
	Get(ctx context.Context, id string) (*Session, error)

	// Save stores a new session.
	Save(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every stored session.
	List(ctx context.Context) ([]*Session, error)
}
