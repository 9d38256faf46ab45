package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/Shashankvwali/VoltGo/internal/station"
)

// Feed errors.
var (
	ErrFeedUnavailable = errors.New("catalog feed unavailable")
	ErrFeedURLRequired = errors.New("catalog feed url is required")
)

// FeedConfig holds configuration for the HTTP catalog feed.
type FeedConfig struct {
	// URL returns a JSON array of stations.
	URL string

	// Timeout bounds each HTTP attempt.
	// Default: 10 seconds
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	// Default: 3
	MaxRetries uint64

	// InitialInterval is the first retry delay.
	// Default: 200ms
	InitialInterval time.Duration

	// MaxInterval caps the retry delay.
	// Default: 5 seconds
	MaxInterval time.Duration

	Logger zerolog.Logger
}

// feedStation is the wire format of one feed entry.
type feedStation struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Status  string `json:"status"`
	ETA     string `json:"eta"`
}

// FeedSource fetches the catalog once from an HTTP JSON feed. Transient
// failures (network errors, 5xx) are retried with exponential backoff behind
// a circuit breaker.
type FeedSource struct {
	cfg        FeedConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]feedStation]
}

// NewFeedSource creates a new feed source.
func NewFeedSource(cfg FeedConfig) (*FeedSource, error) {
	if cfg.URL == "" {
		return nil, ErrFeedURLRequired
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 200 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}

	logger := cfg.Logger
	breaker := gobreaker.NewCircuitBreaker[[]feedStation](gobreaker.Settings{
		Name:        "catalog-feed",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})

	return &FeedSource{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
	}, nil
}

// Name implements Source.
func (s *FeedSource) Name() string {
	return KindFeed
}

// Load implements Source.
func (s *FeedSource) Load(ctx context.Context) ([]station.Record, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.cfg.InitialInterval
	bo.MaxInterval = s.cfg.MaxInterval
	bo.MaxElapsedTime = 0

	var entries []feedStation
	attempt := 0

	operation := func() error {
		attempt++
		result, err := s.breaker.Execute(func() ([]feedStation, error) {
			return s.fetch(ctx)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(fmt.Errorf("%w: %w", ErrFeedUnavailable, err))
			}
			var perm *permanentError
			if errors.As(err, &perm) {
				return backoff.Permanent(perm.err)
			}

			s.cfg.Logger.Warn().Err(err).Int("attempt", attempt).Msg("catalog feed request failed")
			return err
		}

		entries = result
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, s.cfg.MaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return toRecords(entries)
}

func (s *FeedSource) fetch(ctx context.Context) ([]feedStation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, http.NoBody)
	if err != nil {
		return nil, &permanentError{err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrFeedUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &permanentError{err: fmt.Errorf("unexpected feed status %d", resp.StatusCode)}
	}

	var entries []feedStation
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, &permanentError{err: fmt.Errorf("decode feed: %w", err)}
	}

	return entries, nil
}

func toRecords(entries []feedStation) ([]station.Record, error) {
	records := make([]station.Record, 0, len(entries))
	for _, e := range entries {
		status, err := station.ParseStatus(e.Status)
		if err != nil {
			return nil, fmt.Errorf("station %d: %w", e.ID, err)
		}

		records = append(records, station.Record{
			ID:      e.ID,
			Name:    e.Name,
			Address: e.Address,
			Status:  status,
			ETA:     e.ETA,
		})
	}
	return records, nil
}

// permanentError marks a failure that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string {
	return e.err.Error()
}

func (e *permanentError) Unwrap() error {
	return e.err
}

var _ Source = (*FeedSource)(nil)
