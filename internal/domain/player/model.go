package player

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCollectionMissing is returned by stores whose players collection has not been created yet.
var ErrCollectionMissing = errors.New("players collection is missing")

// Player is a pool participant. Players are seeded once and never edited.
type Player struct {
	ID   int64
	Name string
}

func (p Player) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be greater than zero")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}
