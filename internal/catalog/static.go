package catalog

import (
	"context"

	"github.com/Shashankvwali/VoltGo/internal/station"
)

// StaticSource serves a fixed list of records.
type StaticSource struct {
	records []station.Record
}

// NewStaticSource creates a source over the given records.
// A nil slice selects the built-in seed catalog.
func NewStaticSource(records []station.Record) *StaticSource {
	if records == nil {
		records = SeedRecords()
	}
	return &StaticSource{records: records}
}

// Name implements Source.
func (s *StaticSource) Name() string {
	return KindStatic
}

// Load implements Source.
func (s *StaticSource) Load(_ context.Context) ([]station.Record, error) {
	result := make([]station.Record, len(s.records))
	copy(result, s.records)
	return result, nil
}

// SeedRecords returns the built-in station catalog.
func SeedRecords() []station.Record {
	return []station.Record{
		{ID: 1, Name: "Station #1", Address: "RR Nagar, Bengaluru", Status: station.StatusAvailable, ETA: "5 mins away"},
		{ID: 2, Name: "Station #2", Address: "Jayanagar, Bengaluru", Status: station.StatusOccupied, ETA: "10 mins away"},
		{ID: 3, Name: "Station #3", Address: "Vijayanagr, Bengaluru", Status: station.StatusAvailable, ETA: "3 mins away"},
	}
}

var _ Source = (*StaticSource)(nil)
