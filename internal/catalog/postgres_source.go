package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shashankvwali/VoltGo/internal/station"
)

// PostgresSource reads the catalog from the charging_stations table.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a new PostgreSQL catalog source.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Name implements Source.
func (s *PostgresSource) Name() string {
	return KindPostgres
}

// Load implements Source.
func (s *PostgresSource) Load(ctx context.Context) ([]station.Record, error) {
	query := `
		SELECT id, name, address, status, eta
		FROM charging_stations
		ORDER BY position, id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query stations: %w", err)
	}
	defer rows.Close()

	var records []station.Record
	for rows.Next() {
		var (
			r      station.Record
			status string
		)

		if err := rows.Scan(&r.ID, &r.Name, &r.Address, &status, &r.ETA); err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}

		r.Status, err = station.ParseStatus(status)
		if err != nil {
			return nil, fmt.Errorf("station %d: %w", r.ID, err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stations: %w", err)
	}

	return records, nil
}

var _ Source = (*PostgresSource)(nil)
