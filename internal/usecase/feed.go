package usecase

import (
	"context"
	"time"
)

// ResultsFeed is the read-only source of calendar and classification data.
type ResultsFeed interface {
	ListSeasons(ctx context.Context) ([]ExternalSeason, error)
	ListCategories(ctx context.Context, seasonID string) ([]ExternalCategory, error)
	ListEvents(ctx context.Context, seasonID string, finishedOnly bool) ([]ExternalEvent, error)
	ListSessions(ctx context.Context, eventID, categoryID string) ([]ExternalSession, error)
	GetClassification(ctx context.Context, sessionID string) ([]ClassificationEntry, error)
	GetWorldStandings(ctx context.Context, seasonID, categoryID string) ([]StandingEntry, error)
}

type ExternalSeason struct {
	ID      string
	Name    string
	Year    int
	Current bool
}

type ExternalCategory struct {
	ID   string
	Name string
}

type ExternalEvent struct {
	ID            string
	Name          string
	SponsoredName string
	CountryISO    string
	CountryName   string
	CircuitName   string
	DateStart     time.Time
	DateEnd       time.Time
	Status        string
	Test          bool
}

type ExternalSession struct {
	ID     string
	Type   string
	Number *int
	Date   time.Time
	Status string
}

type ClassificationEntry struct {
	Position    int
	RiderNumber int
	RiderName   string
	Team        string
	Constructor string
	Points      float64
	Time        string
	BestLap     string
	Gap         string
}

type StandingEntry struct {
	Position    int
	RiderNumber int
	RiderName   string
	Team        string
	Constructor string
	Points      float64
}
