package point

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSessionAlreadyScored is returned when a batch targets a (race, session) that already holds points.
var ErrSessionAlreadyScored = errors.New("session already scored")

// Point is an award credited to a player whose rider scored in a session.
type Point struct {
	ID          int64
	PlayerID    int64
	RaceID      int64
	RiderID     int64
	SessionID   string
	SessionName string
	Points      int
}

func (p Point) Validate() error {
	if p.PlayerID <= 0 || p.RaceID <= 0 || p.RiderID <= 0 {
		return fmt.Errorf("point player, race and rider ids must be greater than zero")
	}
	if strings.TrimSpace(p.SessionID) == "" {
		return fmt.Errorf("point session id is required")
	}
	if p.Points <= 0 {
		return fmt.Errorf("point value must be greater than zero")
	}

	return nil
}

// SessionName renders a session label such as "RAC" or "SPR 1".
func SessionName(sessionType string, number *int) string {
	label := sessionType
	if number != nil {
		label += " " + strconv.Itoa(*number)
	}
	return strings.TrimSpace(label)
}

// ValidateBatch checks that every point belongs to the same (race, session).
func ValidateBatch(items []Point) error {
	if len(items) == 0 {
		return fmt.Errorf("point batch is empty")
	}
	raceID, sessionID := items[0].RaceID, items[0].SessionID
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if item.RaceID != raceID || item.SessionID != sessionID {
			return fmt.Errorf("point batch mixes sessions: race=%d session=%s", item.RaceID, item.SessionID)
		}
	}
	return nil
}
