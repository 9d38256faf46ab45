package catalog

import (
	"fmt"
	"strings"

	"github.com/Shashankvwali/VoltGo/internal/station"
)

// ValidationError lists the catalog records that failed validation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid catalog: " + strings.Join(e.Problems, "; ")
}

// Validate checks every record for a positive ID, a name, an address and a known status.
func Validate(records []station.Record) error {
	var problems []string

	for i, r := range records {
		if r.ID <= 0 {
			problems = append(problems, fmt.Sprintf("record %d: id must be positive", i))
		}
		if strings.TrimSpace(r.Name) == "" {
			problems = append(problems, fmt.Sprintf("record %d: name is required", i))
		}
		if strings.TrimSpace(r.Address) == "" {
			problems = append(problems, fmt.Sprintf("record %d: address is required", i))
		}
		if r.Status != station.StatusAvailable && r.Status != station.StatusOccupied {
			problems = append(problems, fmt.Sprintf("record %d: unknown status %q", i, r.Status))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
