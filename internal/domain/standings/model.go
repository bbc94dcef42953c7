package standings

import (
	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/point"
	"github.com/riskibarqy/porra/internal/domain/vote"
)

// Input is one consistent read of the pool's collections.
type Input struct {
	Players []player.Player
	Votes   []vote.Vote
	Points  []point.Point
	// NextRaceID is zero when there is no race to vote for.
	NextRaceID int64
}

// PlayerStats is derived per player on every read.
type PlayerStats struct {
	PlayerID       int64
	Points         int
	LastRacePoints int
	// VoteHistory counts the player's votes per rider id across all races.
	VoteHistory map[int64]int
}

// Standing is one leaderboard row.
type Standing struct {
	Rank           int
	PlayerID       int64
	Points         int
	LastRacePoints int
	Gap            int
}

// Bet is a player's current pick for the next race.
type Bet struct {
	PlayerID int64
	RiderID  int64
	Locked   bool
}

// RiderTally is a per-rider total, either votes received or points delivered.
type RiderTally struct {
	RiderID int64
	Total   int
}

// Efficiency is a player's points per vote cast.
type Efficiency struct {
	PlayerID int64
	Points   int
	Votes    int
	Average  float64
}

// Summary holds the headline stats. Each entry is nil when there is nothing to rank.
type Summary struct {
	MostVoted *RiderTally
	TopScorer *RiderTally
	Guru      *Efficiency
}

// HistoryEntry is one row of a player's vote histogram.
type HistoryEntry struct {
	RiderID int64
	Count   int
}

// Snapshot is the full derived state for one Input.
type Snapshot struct {
	Stats            []PlayerStats
	Standings        []Standing
	Bets             []Bet
	LastScoredRaceID int64
	Summary          Summary

	statsByPlayer map[int64]int
}
