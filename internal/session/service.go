package session

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Shashankvwali/VoltGo/internal/station"
)

// Default session policy.
const (
	DefaultIdleTTL       = 30 * time.Minute
	DefaultSweepSchedule = "@every 1m"
)

// Config holds session lifetime configuration.
type Config struct {
	IdleTTL       time.Duration
	SweepSchedule string
}

// ConfigFromEnv creates a Config from environment variables.
func ConfigFromEnv() Config {
	cfg := Config{
		IdleTTL:       DefaultIdleTTL,
		SweepSchedule: DefaultSweepSchedule,
	}

	if ttl, err := time.ParseDuration(os.Getenv("SESSION_IDLE_TTL")); err == nil && ttl > 0 {
		cfg.IdleTTL = ttl
	}
	if schedule := os.Getenv("SESSION_SWEEP_SCHEDULE"); schedule != "" {
		cfg.SweepSchedule = schedule
	}

	return cfg
}

// ServiceConfig holds dependencies for the session service.
type ServiceConfig struct {
	Repository Repository
	Catalog    *station.Catalog
	Logger     zerolog.Logger
	Metrics    *Metrics
	IdleTTL    time.Duration
	Now        func() time.Time
}

// Service runs search, reserve and cancel requests against session views.
type Service struct {
	repo    Repository
	catalog *station.Catalog
	logger  zerolog.Logger
	metrics *Metrics
	idleTTL time.Duration
	now     func() time.Time
}

// NewService creates a new session service.
func NewService(cfg ServiceConfig) *Service {
	idleTTL := cfg.IdleTTL
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		repo:    cfg.Repository,
		catalog: cfg.Catalog,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		idleTTL: idleTTL,
		now:     now,
	}
}

// Catalog returns the catalog every session view is built from.
func (s *Service) Catalog() *station.Catalog {
	return s.catalog
}

// Create starts a session showing the whole catalog.
func (s *Service) Create(ctx context.Context) (string, station.Snapshot, error) {
	sess := newSession("ses_"+uuid.New().String()[:22], s.catalog, s.now())

	if err := s.repo.Save(ctx, sess); err != nil {
		return "", station.Snapshot{}, err
	}
	s.metrics.sessionsChanged(ctx, 1)

	s.logger.Debug().Str("session_id", sess.ID).Msg("session created")

	return sess.ID, sess.view.Snapshot(), nil
}

// View returns the current state of a session.
func (s *Service) View(ctx context.Context, id string) (station.Snapshot, error) {
	return s.withView(ctx, id, func(*station.View) {})
}

// Search runs a location search in a session. A query without matches is not
// an error: the snapshot carries the full catalog and a not-found message.
func (s *Service) Search(ctx context.Context, id, query string) (station.Snapshot, error) {
	return s.withView(ctx, id, func(v *station.View) {
		result := v.Search(query)
		s.metrics.recordSearch(ctx, result.Matched())

		s.logger.Debug().
			Str("session_id", id).
			Str("query", query).
			Int("results", len(result.Results)).
			Bool("matched", result.Matched()).
			Msg("search completed")
	})
}

// Reserve reserves a displayed station. Requests the state machine rejects
// leave the view unchanged and are not errors.
func (s *Service) Reserve(ctx context.Context, id string, stationID int) (station.Snapshot, error) {
	return s.withView(ctx, id, func(v *station.View) {
		applied := v.Reserve(stationID)
		s.metrics.recordTransition(ctx, "reserve", applied)
		s.logTransition(id, "reserve", stationID, applied)
	})
}

// Cancel cancels a reservation. Cancelling an unreserved or unknown station is a no-op.
func (s *Service) Cancel(ctx context.Context, id string, stationID int) (station.Snapshot, error) {
	return s.withView(ctx, id, func(v *station.View) {
		applied := v.Cancel(stationID)
		s.metrics.recordTransition(ctx, "cancel", applied)
		s.logTransition(id, "cancel", stationID, applied)
	})
}

// End closes a session and discards its view.
func (s *Service) End(ctx context.Context, id string) error {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return ErrSessionNotFound
	}
	return s.close(ctx, sess)
}

// Sweep closes sessions idle since before now minus the idle TTL and
// returns how many were closed.
func (s *Service) Sweep(ctx context.Context, now time.Time) (int, error) {
	sessions, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := now.Add(-s.idleTTL)
	closed := 0
	for _, sess := range sessions {
		sess.mu.Lock()
		if !sess.closed && sess.lastSeen.Before(cutoff) {
			if err := s.close(ctx, sess); err != nil {
				sess.mu.Unlock()
				return closed, err
			}
			closed++
		}
		sess.mu.Unlock()
	}

	return closed, nil
}

// withView runs fn with exclusive access to the session's view and returns
// a snapshot taken under the same lock.
func (s *Service) withView(ctx context.Context, id string, fn func(v *station.View)) (station.Snapshot, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return station.Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return station.Snapshot{}, ErrSessionNotFound
	}

	fn(sess.view)
	sess.lastSeen = s.now()

	return sess.view.Snapshot(), nil
}

// close must be called with sess.mu held.
func (s *Service) close(ctx context.Context, sess *Session) error {
	if err := s.repo.Delete(ctx, sess.ID); err != nil {
		return err
	}
	sess.closed = true
	s.metrics.sessionsChanged(ctx, -1)
	return nil
}

func (s *Service) logTransition(sessionID, action string, stationID int, applied bool) {
	s.logger.Debug().
		Str("session_id", sessionID).
		Str("action", action).
		Int("station_id", stationID).
		Bool("applied", applied).
		Msg("reservation request handled")
}
