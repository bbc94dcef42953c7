package vote

import (
	"errors"
	"fmt"
)

var (
	ErrLocked           = errors.New("vote is locked, no further changes permitted")
	ErrConcurrentChange = errors.New("vote was changed by another request")
)

// Vote is a player's pick for one race. At most one exists per (player, race).
type Vote struct {
	PlayerID int64
	RaceID   int64
	RiderID  int64
	IsLocked bool
}

func (v Vote) Validate() error {
	if v.PlayerID <= 0 {
		return fmt.Errorf("vote player id must be greater than zero")
	}
	if v.RaceID <= 0 {
		return fmt.Errorf("vote race id must be greater than zero")
	}
	if v.RiderID <= 0 {
		return fmt.Errorf("vote rider id must be greater than zero")
	}

	return nil
}

// CountForRider counts the votes a player has cast for a rider across all races.
func CountForRider(items []Vote, playerID, riderID int64) int {
	count := 0
	for _, item := range items {
		if item.PlayerID == playerID && item.RiderID == riderID {
			count++
		}
	}
	return count
}

// FindForRace returns the player's vote for a race, if any.
func FindForRace(items []Vote, playerID, raceID int64) (Vote, bool) {
	for _, item := range items {
		if item.PlayerID == playerID && item.RaceID == raceID {
			return item, true
		}
	}
	return Vote{}, false
}
