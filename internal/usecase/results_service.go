package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// ResultsService exposes the results feed for browsing.
type ResultsService struct {
	feed ResultsFeed
}

func NewResultsService(feed ResultsFeed) *ResultsService {
	return &ResultsService{feed: feed}
}

// Seasons lists seasons, newest first.
func (s *ResultsService) Seasons(ctx context.Context) ([]ExternalSeason, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.Seasons")
	defer span.End()

	items, err := s.feed.ListSeasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Year > items[j].Year })
	return items, nil
}

func (s *ResultsService) Categories(ctx context.Context, seasonID string) ([]ExternalCategory, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	items, err := s.feed.ListCategories(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list categories season=%s: %w", seasonID, err)
	}
	return items, nil
}

// FinishedEvents lists a season's finished events, leaving out tests.
func (s *ResultsService) FinishedEvents(ctx context.Context, seasonID string) ([]ExternalEvent, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	items, err := s.feed.ListEvents(ctx, seasonID, true)
	if err != nil {
		return nil, fmt.Errorf("list finished events season=%s: %w", seasonID, err)
	}

	out := make([]ExternalEvent, 0, len(items))
	for _, item := range items {
		if item.Test || strings.Contains(strings.ToLower(item.SponsoredName), "test") {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *ResultsService) Sessions(ctx context.Context, eventID, categoryID string) ([]ExternalSession, error) {
	eventID, categoryID = strings.TrimSpace(eventID), strings.TrimSpace(categoryID)
	if eventID == "" || categoryID == "" {
		return nil, fmt.Errorf("%w: event id and category id are required", ErrInvalidInput)
	}

	items, err := s.feed.ListSessions(ctx, eventID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list sessions event=%s: %w", eventID, err)
	}
	return items, nil
}

func (s *ResultsService) Classification(ctx context.Context, sessionID string) ([]ClassificationEntry, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	items, err := s.feed.GetClassification(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get classification session=%s: %w", sessionID, err)
	}
	return items, nil
}

func (s *ResultsService) WorldStandings(ctx context.Context, seasonID, categoryID string) ([]StandingEntry, error) {
	seasonID, categoryID = strings.TrimSpace(seasonID), strings.TrimSpace(categoryID)
	if seasonID == "" || categoryID == "" {
		return nil, fmt.Errorf("%w: season id and category id are required", ErrInvalidInput)
	}

	items, err := s.feed.GetWorldStandings(ctx, seasonID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("get world standings season=%s: %w", seasonID, err)
	}
	return items, nil
}
