package standings

import (
	"testing"

	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/point"
	"github.com/riskibarqy/porra/internal/domain/vote"
)

func fixtureInput() Input {
	return Input{
		Players: []player.Player{
			{ID: 3, Name: "BEGO"},
			{ID: 1, Name: "ANITA"},
			{ID: 2, Name: "APA"},
		},
		Votes: []vote.Vote{
			{PlayerID: 1, RaceID: 1, RiderID: 10},
			{PlayerID: 2, RaceID: 1, RiderID: 20},
			{PlayerID: 1, RaceID: 2, RiderID: 10},
			{PlayerID: 2, RaceID: 2, RiderID: 10, IsLocked: true},
			{PlayerID: 3, RaceID: 3, RiderID: 20},
			{PlayerID: 1, RaceID: 3, RiderID: 30, IsLocked: true},
		},
		Points: []point.Point{
			{ID: 1, PlayerID: 1, RaceID: 1, RiderID: 10, SessionID: "r1-spr", Points: 12},
			{ID: 2, PlayerID: 1, RaceID: 1, RiderID: 10, SessionID: "r1-rac", Points: 25},
			{ID: 3, PlayerID: 2, RaceID: 2, RiderID: 10, SessionID: "r2-rac", Points: 20},
			{ID: 4, PlayerID: 1, RaceID: 2, RiderID: 10, SessionID: "r2-rac", Points: 20},
		},
		NextRaceID: 3,
	}
}

func TestBuild_PlayerStats(t *testing.T) {
	snap := Build(fixtureInput())

	if snap.LastScoredRaceID != 2 {
		t.Fatalf("unexpected last scored race: got=%d want=2", snap.LastScoredRaceID)
	}

	anita, ok := snap.PlayerStats(1)
	if !ok {
		t.Fatalf("expected stats for player 1")
	}
	if anita.Points != 57 {
		t.Fatalf("unexpected points: got=%d want=57", anita.Points)
	}
	if anita.LastRacePoints != 20 {
		t.Fatalf("unexpected last race points: got=%d want=20", anita.LastRacePoints)
	}
	if anita.VoteHistory[10] != 2 || anita.VoteHistory[30] != 1 {
		t.Fatalf("unexpected vote history: %+v", anita.VoteHistory)
	}

	bego, _ := snap.PlayerStats(3)
	if bego.Points != 0 || bego.LastRacePoints != 0 {
		t.Fatalf("unexpected stats for player without points: %+v", bego)
	}
}

func TestBuild_PointsMatchPointRows(t *testing.T) {
	in := fixtureInput()
	snap := Build(in)

	for _, item := range snap.Stats {
		want := 0
		for _, p := range in.Points {
			if p.PlayerID == item.PlayerID {
				want += p.Points
			}
		}
		if item.Points != want {
			t.Fatalf("player %d points mismatch: got=%d want=%d", item.PlayerID, item.Points, want)
		}
	}
}

func TestBuild_Standings(t *testing.T) {
	in := fixtureInput()
	in.Points = append(in.Points, point.Point{ID: 5, PlayerID: 3, RaceID: 1, RiderID: 20, SessionID: "r1-rac", Points: 20})
	snap := Build(in)

	if len(snap.Standings) != 3 {
		t.Fatalf("unexpected standings size: got=%d want=3", len(snap.Standings))
	}

	wantOrder := []int64{1, 2, 3}
	for i, row := range snap.Standings {
		if row.PlayerID != wantOrder[i] {
			t.Fatalf("unexpected player at rank %d: got=%d want=%d", i+1, row.PlayerID, wantOrder[i])
		}
		if row.Rank != i+1 {
			t.Fatalf("unexpected rank: got=%d want=%d", row.Rank, i+1)
		}
		if i > 0 && row.Points > snap.Standings[i-1].Points {
			t.Fatalf("standings not sorted by points at rank %d", row.Rank)
		}
	}
	if snap.Standings[0].Gap != 0 {
		t.Fatalf("leader gap must be zero, got=%d", snap.Standings[0].Gap)
	}
	if snap.Standings[1].Gap != 37 {
		t.Fatalf("unexpected gap: got=%d want=37", snap.Standings[1].Gap)
	}
}

func TestBuild_CurrentBets(t *testing.T) {
	snap := Build(fixtureInput())

	if len(snap.Bets) != 2 {
		t.Fatalf("unexpected bet count: got=%d want=2", len(snap.Bets))
	}
	if snap.Bets[0] != (Bet{PlayerID: 1, RiderID: 30, Locked: true}) {
		t.Fatalf("unexpected first bet: %+v", snap.Bets[0])
	}
	if snap.Bets[1] != (Bet{PlayerID: 3, RiderID: 20, Locked: false}) {
		t.Fatalf("unexpected second bet: %+v", snap.Bets[1])
	}

	in := fixtureInput()
	in.NextRaceID = 0
	if got := Build(in).Bets; len(got) != 0 {
		t.Fatalf("expected no bets without a next race, got %d", len(got))
	}
}

func TestBuild_Summary(t *testing.T) {
	snap := Build(fixtureInput())

	if snap.Summary.MostVoted == nil || snap.Summary.MostVoted.RiderID != 10 || snap.Summary.MostVoted.Total != 3 {
		t.Fatalf("unexpected most voted: %+v", snap.Summary.MostVoted)
	}
	if snap.Summary.TopScorer == nil || snap.Summary.TopScorer.RiderID != 10 || snap.Summary.TopScorer.Total != 77 {
		t.Fatalf("unexpected top scorer: %+v", snap.Summary.TopScorer)
	}
	if snap.Summary.Guru == nil || snap.Summary.Guru.PlayerID != 1 {
		t.Fatalf("unexpected guru: %+v", snap.Summary.Guru)
	}
	if snap.Summary.Guru.Average != 19 {
		t.Fatalf("unexpected guru average: got=%v want=19", snap.Summary.Guru.Average)
	}
}

func TestBuild_SummaryTiesGoToFirstSeen(t *testing.T) {
	snap := Build(Input{
		Players: []player.Player{{ID: 1}, {ID: 2}},
		Votes: []vote.Vote{
			{PlayerID: 1, RaceID: 1, RiderID: 7},
			{PlayerID: 2, RaceID: 1, RiderID: 4},
		},
	})

	if snap.Summary.MostVoted == nil || snap.Summary.MostVoted.RiderID != 7 {
		t.Fatalf("expected first seen rider to win tie, got %+v", snap.Summary.MostVoted)
	}
	if snap.Summary.TopScorer != nil {
		t.Fatalf("expected no top scorer without points")
	}
	if snap.Summary.Guru == nil || snap.Summary.Guru.PlayerID != 1 {
		t.Fatalf("expected lowest player id to win zero-average tie, got %+v", snap.Summary.Guru)
	}
}

func TestBuild_SummaryEmpty(t *testing.T) {
	snap := Build(Input{Players: []player.Player{{ID: 1}}})
	if snap.Summary.MostVoted != nil || snap.Summary.TopScorer != nil || snap.Summary.Guru != nil {
		t.Fatalf("expected empty summary, got %+v", snap.Summary)
	}
}

func TestSnapshot_History(t *testing.T) {
	snap := Build(fixtureInput())

	got := snap.History(1)
	want := []HistoryEntry{{RiderID: 10, Count: 2}, {RiderID: 30, Count: 1}}
	if len(got) != len(want) {
		t.Fatalf("unexpected history size: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected history row %d: got=%+v want=%+v", i, got[i], want[i])
		}
	}
	if snap.History(99) != nil {
		t.Fatalf("expected nil history for unknown player")
	}
}
