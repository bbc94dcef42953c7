package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/porra/internal/domain/player"
	"github.com/riskibarqy/porra/internal/domain/point"
	"github.com/riskibarqy/porra/internal/domain/race"
	"github.com/riskibarqy/porra/internal/domain/rider"
	"github.com/riskibarqy/porra/internal/domain/vote"
)

type playerTableModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type riderTableModel struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Number   int    `db:"number"`
	Team     string `db:"team"`
	ImageURL string `db:"image_url"`
}

type raceTableModel struct {
	ID         int64          `db:"id"`
	Name       string         `db:"name"`
	Country    string         `db:"country"`
	Circuit    string         `db:"circuit"`
	Dates      string         `db:"dates"`
	Flag       string         `db:"flag"`
	RaceDate   time.Time      `db:"race_date"`
	Status     string         `db:"status"`
	APIEventID sql.NullString `db:"api_event_id"`
}

type voteTableModel struct {
	PlayerID int64 `db:"player_id"`
	RaceID   int64 `db:"race_id"`
	RiderID  int64 `db:"rider_id"`
	IsLocked bool  `db:"is_locked"`
}

type pointTableModel struct {
	ID          int64  `db:"id"`
	PlayerID    int64  `db:"player_id"`
	RaceID      int64  `db:"race_id"`
	RiderID     int64  `db:"rider_id"`
	SessionID   string `db:"session_id"`
	SessionName string `db:"session_name"`
	Points      int    `db:"points"`
}

type pointInsertModel struct {
	PlayerID    int64  `db:"player_id"`
	RaceID      int64  `db:"race_id"`
	RiderID     int64  `db:"rider_id"`
	SessionID   string `db:"session_id"`
	SessionName string `db:"session_name"`
	Points      int    `db:"points"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{ID: m.ID, Name: m.Name}
}

func (m riderTableModel) toDomain() rider.Rider {
	return rider.Rider{ID: m.ID, Name: m.Name, Number: m.Number, Team: m.Team, ImageURL: m.ImageURL}
}

func (m raceTableModel) toDomain() race.Race {
	return race.Race{
		ID:              m.ID,
		Name:            m.Name,
		Country:         m.Country,
		Circuit:         m.Circuit,
		Dates:           m.Dates,
		Flag:            m.Flag,
		RaceDate:        m.RaceDate.UTC(),
		Status:          m.Status,
		ExternalEventID: m.APIEventID.String,
	}
}

func raceRow(item race.Race) raceTableModel {
	return raceTableModel{
		ID:         item.ID,
		Name:       item.Name,
		Country:    item.Country,
		Circuit:    item.Circuit,
		Dates:      item.Dates,
		Flag:       item.Flag,
		RaceDate:   item.RaceDate.UTC(),
		Status:     item.Status,
		APIEventID: nullString(item.ExternalEventID),
	}
}

func (m voteTableModel) toDomain() vote.Vote {
	return vote.Vote{PlayerID: m.PlayerID, RaceID: m.RaceID, RiderID: m.RiderID, IsLocked: m.IsLocked}
}

func (m pointTableModel) toDomain() point.Point {
	return point.Point{
		ID:          m.ID,
		PlayerID:    m.PlayerID,
		RaceID:      m.RaceID,
		RiderID:     m.RiderID,
		SessionID:   m.SessionID,
		SessionName: m.SessionName,
		Points:      m.Points,
	}
}
