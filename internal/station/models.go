// Package station provides the charging station catalog, the location search,
// and the per-session reservation state machine.
package station

import (
	"errors"
	"fmt"
	"strings"
)

// Catalog errors.
var (
	ErrDuplicateID   = errors.New("duplicate station id")
	ErrUnknownStatus = errors.New("unknown station status")
)

// Status is the occupancy status of a station. It is fixed per record.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusOccupied  Status = "Occupied"
)

// ParseStatus converts a status string into a Status, ignoring case.
func ParseStatus(s string) (Status, error) {
	switch {
	case strings.EqualFold(s, string(StatusAvailable)):
		return StatusAvailable, nil
	case strings.EqualFold(s, string(StatusOccupied)):
		return StatusOccupied, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Record is an immutable catalog entry.
type Record struct {
	ID      int
	Name    string
	Address string
	Status  Status
	// ETA is a free-text arrival estimate such as "5 mins away".
	ETA string
}

// Displayed is a catalog record as shown in a view, annotated with the
// transient reservation flag. Reserved is only ever true for Available stations.
type Displayed struct {
	Record
	Reserved bool
}

// Catalog is the ordered, read-only list of stations loaded at start-up.
type Catalog struct {
	records []Record
	index   map[int]int
}

// NewCatalog freezes records into a Catalog. Order is preserved and IDs must be unique.
func NewCatalog(records []Record) (*Catalog, error) {
	c := &Catalog{
		records: make([]Record, len(records)),
		index:   make(map[int]int, len(records)),
	}
	copy(c.records, records)

	for i, r := range c.records {
		if _, exists := c.index[r.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		c.index[r.ID] = i
	}

	return c, nil
}

// Records returns a copy of the catalog in its original order.
func (c *Catalog) Records() []Record {
	result := make([]Record, len(c.records))
	copy(result, c.records)
	return result
}

// Get returns the record with the given ID.
func (c *Catalog) Get(id int) (Record, bool) {
	i, ok := c.index[id]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// Len returns the number of records in the catalog.
func (c *Catalog) Len() int {
	return len(c.records)
}
