package httpapi

import (
	"time"

	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/point"
	"github.com/riskibarqy/porra/internal/domain/race"
	"github.com/riskibarqy/porra/internal/domain/rider"
	"github.com/riskibarqy/porra/internal/domain/standings"
	"github.com/riskibarqy/porra/internal/usecase"
)

type castVoteRequest struct {
	PlayerID int64 `json:"playerId" validate:"required,gt=0"`
	RiderID  int64 `json:"riderId" validate:"required,gt=0"`
}

type awardSessionRequest struct {
	ExternalEventID string                       `json:"externalEventId" validate:"required"`
	Session         sessionRequest               `json:"session"`
	Classification  []classificationEntryRequest `json:"classification" validate:"dive"`
}

type sessionRequest struct {
	ID     string `json:"id" validate:"required"`
	Type   string `json:"type" validate:"required"`
	Number *int   `json:"number,omitempty" validate:"omitempty,gte=0"`
}

type classificationEntryRequest struct {
	RiderNumber int     `json:"riderNumber" validate:"gt=0"`
	Points      float64 `json:"points" validate:"gte=0"`
}

type outcomeDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type scoringOutcomeDTO struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	RaceID  int64  `json:"raceId,omitempty"`
	Awarded int    `json:"awarded"`
}

type playerDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type riderDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	Team     string `json:"team"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type raceDTO struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Country         string    `json:"country"`
	Circuit         string    `json:"circuit"`
	Dates           string    `json:"dates"`
	Flag            string    `json:"flag"`
	RaceDate        time.Time `json:"raceDate"`
	Status          string    `json:"status,omitempty"`
	ExternalEventID string    `json:"externalEventId,omitempty"`
	VotingDeadline  time.Time `json:"votingDeadline"`
}

type betDTO struct {
	PlayerID   int64  `json:"playerId"`
	PlayerName string `json:"playerName"`
	RiderID    int64  `json:"riderId"`
	RiderName  string `json:"riderName"`
	Locked     bool   `json:"locked"`
}

type dashboardDTO struct {
	NextRace     *raceDTO   `json:"nextRace,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	VotingOpen   bool       `json:"votingOpen"`
	CalendarYear int        `json:"calendarYear,omitempty"`
	Bets         []betDTO   `json:"bets"`
	LockedVotes  int        `json:"lockedVotes"`
}

type standingDTO struct {
	Rank           int    `json:"rank"`
	PlayerID       int64  `json:"playerId"`
	PlayerName     string `json:"playerName"`
	Points         int    `json:"points"`
	LastRacePoints int    `json:"lastRacePoints"`
	Gap            int    `json:"gap"`
}

type standingsDTO struct {
	LastScoredRaceID int64         `json:"lastScoredRaceId,omitempty"`
	Items            []standingDTO `json:"items"`
}

type riderTallyDTO struct {
	RiderID   int64  `json:"riderId"`
	RiderName string `json:"riderName"`
	Total     int    `json:"total"`
}

type guruDTO struct {
	PlayerID   int64   `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Points     int     `json:"points"`
	Votes      int     `json:"votes"`
	Average    float64 `json:"average"`
}

type statsDTO struct {
	MostVoted *riderTallyDTO `json:"mostVoted,omitempty"`
	TopScorer *riderTallyDTO `json:"topScorer,omitempty"`
	Guru      *guruDTO       `json:"guru,omitempty"`
	Players   []standingDTO  `json:"players"`
}

type historyEntryDTO struct {
	RiderID   int64  `json:"riderId"`
	RiderName string `json:"riderName"`
	Count     int    `json:"count"`
}

type playerHistoryDTO struct {
	Player         playerDTO         `json:"player"`
	Points         int               `json:"points"`
	LastRacePoints int               `json:"lastRacePoints"`
	History        []historyEntryDTO `json:"history"`
}

type bootstrapStatusDTO struct {
	NeedsSeeding bool `json:"needsSeeding"`
	Players      int  `json:"players"`
	Riders       int  `json:"riders"`
}

type bootstrapResultDTO struct {
	Players    int `json:"players"`
	Riders     int `json:"riders"`
	SeasonYear int `json:"seasonYear"`
	Races      int `json:"races"`
}

type calendarImportDTO struct {
	SeasonYear int       `json:"seasonYear"`
	Races      []raceDTO `json:"races"`
}

type seasonDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Year    int    `json:"year"`
	Current bool   `json:"current"`
}

type categoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type eventDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SponsoredName string    `json:"sponsoredName,omitempty"`
	CountryISO    string    `json:"countryIso"`
	CountryName   string    `json:"countryName"`
	CircuitName   string    `json:"circuitName"`
	DateStart     time.Time `json:"dateStart"`
	DateEnd       time.Time `json:"dateEnd"`
	Status        string    `json:"status,omitempty"`
}

type sessionDTO struct {
	ID     string    `json:"id"`
	Type   string    `json:"type"`
	Number *int      `json:"number,omitempty"`
	Name   string    `json:"name"`
	Date   time.Time `json:"date"`
	Status string    `json:"status,omitempty"`
}

type classificationEntryDTO struct {
	Position    int     `json:"position"`
	RiderNumber int     `json:"riderNumber"`
	RiderName   string  `json:"riderName"`
	Team        string  `json:"team"`
	Constructor string  `json:"constructor"`
	Points      float64 `json:"points"`
	Time        string  `json:"time,omitempty"`
	BestLap     string  `json:"bestLap,omitempty"`
	Gap         string  `json:"gap,omitempty"`
}

type worldStandingDTO struct {
	Position    int     `json:"position"`
	RiderNumber int     `json:"riderNumber"`
	RiderName   string  `json:"riderName"`
	Team        string  `json:"team"`
	Constructor string  `json:"constructor"`
	Points      float64 `json:"points"`
}

type nameIndex struct {
	players map[int64]string
	riders  map[int64]string
}

func newNameIndex(players []player.Player, riders []rider.Rider) nameIndex {
	out := nameIndex{
		players: make(map[int64]string, len(players)),
		riders:  make(map[int64]string, len(riders)),
	}
	for _, item := range players {
		out.players[item.ID] = item.Name
	}
	for _, item := range riders {
		out.riders[item.ID] = item.Name
	}
	return out
}

func toPlayerDTOs(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerDTO{ID: item.ID, Name: item.Name})
	}
	return out
}

func toRiderDTOs(items []rider.Rider) []riderDTO {
	out := make([]riderDTO, 0, len(items))
	for _, item := range items {
		out = append(out, riderDTO{
			ID:       item.ID,
			Name:     item.Name,
			Number:   item.Number,
			Team:     item.Team,
			ImageURL: item.ImageURL,
		})
	}
	return out
}

func toRaceDTO(item race.Race) raceDTO {
	return raceDTO{
		ID:              item.ID,
		Name:            item.Name,
		Country:         item.Country,
		Circuit:         item.Circuit,
		Dates:           item.Dates,
		Flag:            item.Flag,
		RaceDate:        item.RaceDate,
		Status:          item.Status,
		ExternalEventID: item.ExternalEventID,
		VotingDeadline:  race.VotingDeadline(item.RaceDate),
	}
}

func toRaceDTOs(items []race.Race) []raceDTO {
	out := make([]raceDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toRaceDTO(item))
	}
	return out
}

func toDashboardDTO(view usecase.Overview) dashboardDTO {
	names := newNameIndex(view.Players, view.Riders)
	out := dashboardDTO{
		CalendarYear: view.CalendarYear,
		Bets:         make([]betDTO, 0, len(view.Snapshot.Bets)),
	}
	if view.HasNextRace {
		next := toRaceDTO(view.Window.Race)
		deadline := view.Window.Deadline
		out.NextRace = &next
		out.Deadline = &deadline
		out.VotingOpen = view.Window.Open
	}
	for _, bet := range view.Snapshot.Bets {
		if bet.Locked {
			out.LockedVotes++
		}
		out.Bets = append(out.Bets, betDTO{
			PlayerID:   bet.PlayerID,
			PlayerName: names.players[bet.PlayerID],
			RiderID:    bet.RiderID,
			RiderName:  names.riders[bet.RiderID],
			Locked:     bet.Locked,
		})
	}
	return out
}

func toStandingDTOs(items []standings.Standing, names nameIndex) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, item := range items {
		out = append(out, standingDTO{
			Rank:           item.Rank,
			PlayerID:       item.PlayerID,
			PlayerName:     names.players[item.PlayerID],
			Points:         item.Points,
			LastRacePoints: item.LastRacePoints,
			Gap:            item.Gap,
		})
	}
	return out
}

func toStatsDTO(view usecase.Overview) statsDTO {
	names := newNameIndex(view.Players, view.Riders)
	summary := view.Snapshot.Summary
	out := statsDTO{
		MostVoted: toRiderTallyDTO(summary.MostVoted, names),
		TopScorer: toRiderTallyDTO(summary.TopScorer, names),
		Players:   toStandingDTOs(view.Snapshot.Standings, names),
	}
	if summary.Guru != nil {
		out.Guru = &guruDTO{
			PlayerID:   summary.Guru.PlayerID,
			PlayerName: names.players[summary.Guru.PlayerID],
			Points:     summary.Guru.Points,
			Votes:      summary.Guru.Votes,
			Average:    summary.Guru.Average,
		}
	}
	return out
}

func toRiderTallyDTO(item *standings.RiderTally, names nameIndex) *riderTallyDTO {
	if item == nil {
		return nil
	}
	return &riderTallyDTO{
		RiderID:   item.RiderID,
		RiderName: names.riders[item.RiderID],
		Total:     item.Total,
	}
}

func toPlayerHistoryDTO(item player.Player, history []standings.HistoryEntry, view usecase.Overview) playerHistoryDTO {
	names := newNameIndex(view.Players, view.Riders)
	out := playerHistoryDTO{
		Player:  playerDTO{ID: item.ID, Name: item.Name},
		History: make([]historyEntryDTO, 0, len(history)),
	}
	if stats, ok := view.Snapshot.PlayerStats(item.ID); ok {
		out.Points = stats.Points
		out.LastRacePoints = stats.LastRacePoints
	}
	for _, entry := range history {
		out.History = append(out.History, historyEntryDTO{
			RiderID:   entry.RiderID,
			RiderName: names.riders[entry.RiderID],
			Count:     entry.Count,
		})
	}
	return out
}

func toSessionDTO(item usecase.ExternalSession) sessionDTO {
	return sessionDTO{
		ID:     item.ID,
		Type:   item.Type,
		Number: item.Number,
		Name:   point.SessionName(item.Type, item.Number),
		Date:   item.Date,
		Status: item.Status,
	}
}
