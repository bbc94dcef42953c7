package memory

// Store bundles the five in-memory collections. It starts empty; the
// bootstrap flow seeds it.
type Store struct {
	Players *PlayerRepository
	Riders  *RiderRepository
	Races   *RaceRepository
	Votes   *VoteRepository
	Points  *PointRepository
}

func NewStore() *Store {
	store := &Store{
		Players: NewPlayerRepository(nil),
		Riders:  NewRiderRepository(nil),
		Races:   NewRaceRepository(nil),
		Votes:   NewVoteRepository(nil),
		Points:  NewPointRepository(nil),
	}
	store.Races.referenced = func(raceID int64) bool {
		return store.Votes.hasRace(raceID) || store.Points.hasRace(raceID)
	}
	return store
}
