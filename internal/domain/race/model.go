package race

import (
	"fmt"
	"strings"
	"time"
)

// Race is one calendar event of the season.
type Race struct {
	ID              int64
	Name            string
	Country         string
	Circuit         string
	Dates           string
	Flag            string
	RaceDate        time.Time
	Status          string
	ExternalEventID string
}

func (r Race) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("race id must be greater than zero")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("race name is required")
	}
	if r.RaceDate.IsZero() {
		return fmt.Errorf("race date is required")
	}

	return nil
}
