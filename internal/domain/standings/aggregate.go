package standings

import (
	"sort"

	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/point"
	"github.com/riskibarqy/porra/internal/domain/vote"
)

// Build derives the full snapshot from scratch. Players are processed in id
// order; argmax ties go to whichever entry was seen first.
func Build(in Input) Snapshot {
	players := append([]player.Player(nil), in.Players...)
	sort.SliceStable(players, func(i, j int) bool { return players[i].ID < players[j].ID })

	stats := make([]PlayerStats, 0, len(players))
	index := make(map[int64]int, len(players))
	for _, item := range players {
		if _, dup := index[item.ID]; dup {
			continue
		}
		index[item.ID] = len(stats)
		stats = append(stats, PlayerStats{
			PlayerID:    item.ID,
			VoteHistory: make(map[int64]int),
		})
	}

	lastRaceID := LastScoredRaceID(in.Points)
	for _, p := range in.Points {
		pos, ok := index[p.PlayerID]
		if !ok {
			continue
		}
		stats[pos].Points += p.Points
		if p.RaceID == lastRaceID {
			stats[pos].LastRacePoints += p.Points
		}
	}

	bets := make([]Bet, 0, len(stats))
	for _, v := range in.Votes {
		if pos, ok := index[v.PlayerID]; ok {
			stats[pos].VoteHistory[v.RiderID]++
		}
		if in.NextRaceID > 0 && v.RaceID == in.NextRaceID {
			bets = append(bets, Bet{PlayerID: v.PlayerID, RiderID: v.RiderID, Locked: v.IsLocked})
		}
	}
	sort.SliceStable(bets, func(i, j int) bool { return bets[i].PlayerID < bets[j].PlayerID })

	return Snapshot{
		Stats:            stats,
		Standings:        rank(stats),
		Bets:             bets,
		LastScoredRaceID: lastRaceID,
		Summary:          summarize(stats, in.Votes, in.Points),
		statsByPlayer:    index,
	}
}

// LastScoredRaceID is the highest race id holding any point, or zero.
func LastScoredRaceID(items []point.Point) int64 {
	var out int64
	for _, item := range items {
		if item.RaceID > out {
			out = item.RaceID
		}
	}
	return out
}

func rank(stats []PlayerStats) []Standing {
	ordered := append([]PlayerStats(nil), stats...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Points > ordered[j].Points })

	out := make([]Standing, 0, len(ordered))
	leader := 0
	if len(ordered) > 0 {
		leader = ordered[0].Points
	}
	for i, item := range ordered {
		out = append(out, Standing{
			Rank:           i + 1,
			PlayerID:       item.PlayerID,
			Points:         item.Points,
			LastRacePoints: item.LastRacePoints,
			Gap:            leader - item.Points,
		})
	}
	return out
}

func summarize(stats []PlayerStats, votes []vote.Vote, points []point.Point) Summary {
	if len(votes) == 0 && len(points) == 0 {
		return Summary{}
	}

	out := Summary{}
	out.MostVoted = argmaxTally(votes, func(v vote.Vote) (int64, int) { return v.RiderID, 1 })
	out.TopScorer = argmaxTally(points, func(p point.Point) (int64, int) { return p.RiderID, p.Points })

	votesByPlayer := make(map[int64]int, len(stats))
	for _, v := range votes {
		votesByPlayer[v.PlayerID]++
	}
	for _, item := range stats {
		count := votesByPlayer[item.PlayerID]
		if count == 0 {
			continue
		}
		average := float64(item.Points) / float64(count)
		if out.Guru == nil || average > out.Guru.Average {
			out.Guru = &Efficiency{
				PlayerID: item.PlayerID,
				Points:   item.Points,
				Votes:    count,
				Average:  average,
			}
		}
	}

	return out
}

func argmaxTally[T any](items []T, key func(T) (int64, int)) *RiderTally {
	totals := make(map[int64]int)
	order := make([]int64, 0)
	for _, item := range items {
		riderID, value := key(item)
		if _, seen := totals[riderID]; !seen {
			order = append(order, riderID)
		}
		totals[riderID] += value
	}

	var best *RiderTally
	for _, riderID := range order {
		if best == nil || totals[riderID] > best.Total {
			best = &RiderTally{RiderID: riderID, Total: totals[riderID]}
		}
	}
	return best
}

// PlayerStats returns the derived stats of one player.
func (s Snapshot) PlayerStats(playerID int64) (PlayerStats, bool) {
	pos, ok := s.statsByPlayer[playerID]
	if !ok {
		return PlayerStats{}, false
	}
	return s.Stats[pos], true
}

// History returns a player's vote histogram, most voted riders first.
func (s Snapshot) History(playerID int64) []HistoryEntry {
	item, ok := s.PlayerStats(playerID)
	if !ok {
		return nil
	}

	out := make([]HistoryEntry, 0, len(item.VoteHistory))
	for riderID, count := range item.VoteHistory {
		out = append(out, HistoryEntry{RiderID: riderID, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].RiderID < out[j].RiderID
		}
		return out[i].Count > out[j].Count
	})
	return out
}
