// Package catalog loads the station catalog from its configured source at start-up.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Shashankvwali/VoltGo/internal/station"
)

// Source kinds accepted by CATALOG_SOURCE.
const (
	KindStatic   = "static"
	KindPostgres = "postgres"
	KindFeed     = "feed"
)

// Catalog errors.
var (
	ErrEmptyCatalog = errors.New("catalog is empty")
	ErrUnknownKind  = errors.New("unknown catalog source")
)

// Source supplies the ordered station records the catalog is built from.
type Source interface {
	// Name identifies the source in logs and errors.
	Name() string

	// Load returns all station records in display order.
	Load(ctx context.Context) ([]station.Record, error)
}

// Config holds catalog source configuration.
type Config struct {
	Kind        string
	FeedURL     string
	FeedTimeout time.Duration
}

// ConfigFromEnv creates a Config from environment variables.
func ConfigFromEnv() Config {
	timeout, err := time.ParseDuration(os.Getenv("CATALOG_FEED_TIMEOUT"))
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}

	kind := strings.ToLower(strings.TrimSpace(os.Getenv("CATALOG_SOURCE")))
	if kind == "" {
		kind = KindStatic
	}

	return Config{
		Kind:        kind,
		FeedURL:     os.Getenv("CATALOG_FEED_URL"),
		FeedTimeout: timeout,
	}
}

// Load reads every record from src, validates them, and freezes them into a catalog.
func Load(ctx context.Context, src Source) (*station.Catalog, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", src.Name(), err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("load catalog from %s: %w", src.Name(), ErrEmptyCatalog)
	}

	if err := Validate(records); err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", src.Name(), err)
	}

	c, err := station.NewCatalog(records)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", src.Name(), err)
	}

	return c, nil
}
