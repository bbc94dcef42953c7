package rider

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCollectionMissing is returned by stores whose riders collection has not been created yet.
var ErrCollectionMissing = errors.New("riders collection is missing")

// Rider is immutable reference data for the championship grid.
type Rider struct {
	ID       int64
	Name     string
	Number   int
	Team     string
	ImageURL string
}

func (r Rider) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("rider id must be greater than zero")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("rider name is required")
	}
	if r.Number <= 0 {
		return fmt.Errorf("rider number must be greater than zero")
	}

	return nil
}

// IndexByNumber maps race numbers to rider ids. Riders are visited in id
// order and a later rider sharing a number replaces the earlier one.
func IndexByNumber(items []Rider) map[int]int64 {
	sorted := append([]Rider(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	out := make(map[int]int64, len(sorted))
	for _, item := range sorted {
		out[item.Number] = item.ID
	}
	return out
}
