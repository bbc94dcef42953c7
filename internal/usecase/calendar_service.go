package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/porra/internal/domain/race"
	"github.com/riskibarqy/porra/internal/platform/logging"
)

const defaultFlag = "🏁"

var shortMonths = [...]string{"ENE", "FEB", "MAR", "ABR", "MAY", "JUN", "JUL", "AGO", "SEPT", "OCT", "NOV", "DIC"}

type CalendarImportResult struct {
	SeasonYear int
	Races      []race.Race
}

// CalendarService replaces the local race calendar with the feed's current season.
type CalendarService struct {
	feed     ResultsFeed
	raceRepo race.Repository
	logger   *logging.Logger
}

func NewCalendarService(feed ResultsFeed, raceRepo race.Repository, logger *logging.Logger) *CalendarService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CalendarService{feed: feed, raceRepo: raceRepo, logger: logger}
}

func (s *CalendarService) Import(ctx context.Context) (CalendarImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarService.Import")
	defer span.End()

	result, err := s.importCurrentSeason(ctx)
	if err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "calendar import failed", "error", err)
		return CalendarImportResult{}, err
	}

	s.logger.InfoContext(ctx, "calendar imported", "season_year", result.SeasonYear, "races", len(result.Races))
	return result, nil
}

func (s *CalendarService) importCurrentSeason(ctx context.Context) (CalendarImportResult, error) {
	seasons, err := s.feed.ListSeasons(ctx)
	if err != nil {
		return CalendarImportResult{}, fmt.Errorf("list seasons: %w", err)
	}
	current, ok := currentSeason(seasons)
	if !ok {
		return CalendarImportResult{}, fmt.Errorf("%w: no current season in results feed", ErrNotFound)
	}

	events, err := s.feed.ListEvents(ctx, current.ID, false)
	if err != nil {
		return CalendarImportResult{}, fmt.Errorf("list events season=%s: %w", current.ID, err)
	}

	races := BuildCalendar(events)
	if len(races) == 0 {
		return CalendarImportResult{}, fmt.Errorf("%w: no race events for season %d", ErrNotFound, current.Year)
	}
	if err := s.raceRepo.Replace(ctx, races); err != nil {
		return CalendarImportResult{}, storageErr("replace races", err)
	}

	return CalendarImportResult{SeasonYear: current.Year, Races: races}, nil
}

// BuildCalendar drops test events, orders the rest by start date and
// assigns sequential ids starting at 1.
func BuildCalendar(events []ExternalEvent) []race.Race {
	filtered := make([]ExternalEvent, 0, len(events))
	for _, item := range events {
		if item.Test {
			continue
		}
		filtered = append(filtered, item)
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].DateStart.Before(filtered[j].DateStart) })

	out := make([]race.Race, 0, len(filtered))
	for i, item := range filtered {
		out = append(out, race.Race{
			ID:              int64(i + 1),
			Name:            item.SponsoredName,
			Country:         item.CountryName,
			Circuit:         item.CircuitName,
			Dates:           formatDates(item.DateStart, item.DateEnd),
			Flag:            isoToFlag(item.CountryISO),
			RaceDate:        item.DateStart.UTC(),
			Status:          item.Status,
			ExternalEventID: item.ID,
		})
	}
	return out
}

func currentSeason(items []ExternalSeason) (ExternalSeason, bool) {
	for _, item := range items {
		if item.Current {
			return item, true
		}
	}
	return ExternalSeason{}, false
}

// isoToFlag turns a two-letter country code into its regional indicator pair.
func isoToFlag(iso string) string {
	if len(iso) != 2 {
		return defaultFlag
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(iso) {
		b.WriteRune(r + 127397)
	}
	return b.String()
}

// formatDates renders "5 MAR - 7 MAR" using UTC days.
func formatDates(start, end time.Time) string {
	start, end = start.UTC(), end.UTC()
	return strconv.Itoa(start.Day()) + " " + shortMonth(start) + " - " + strconv.Itoa(end.Day()) + " " + shortMonth(end)
}

func shortMonth(t time.Time) string {
	return shortMonths[t.Month()-1]
}
