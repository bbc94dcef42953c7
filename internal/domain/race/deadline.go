package race

import (
	"sort"
	"time"
)

const deadlineHourUTC = 14

// VotingDeadline returns the instant votes for a race stop being accepted:
// raceDate + ((6-weekday+7)%7 - 1) days on the UTC calendar, at 14:00 UTC.
// That is the day before the first Saturday on or after the race date, so a
// Saturday race closes the Friday before it while a race dated Sunday to
// Friday closes on the Friday on or after it.
func VotingDeadline(raceDate time.Time) time.Time {
	day := raceDate.UTC()
	dow := int(day.Weekday())
	daysUntilSaturday := (6 - dow + 7) % 7

	return time.Date(day.Year(), day.Month(), day.Day()+daysUntilSaturday-1, deadlineHourUTC, 0, 0, 0, time.UTC)
}

func IsVotingOpen(now, raceDate time.Time) bool {
	return now.Before(VotingDeadline(raceDate))
}

// SortByDate orders races by race date, keeping id order for equal dates.
func SortByDate(items []Race) []Race {
	out := append([]Race(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RaceDate.Equal(out[j].RaceDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].RaceDate.Before(out[j].RaceDate)
	})
	return out
}

// NextRace picks the earliest race dated today (UTC) or later. When the
// season is over the last race is returned.
func NextRace(items []Race, now time.Time) (Race, bool) {
	if len(items) == 0 {
		return Race{}, false
	}

	sorted := SortByDate(items)
	nowUTC := now.UTC()
	today := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC)
	for _, item := range sorted {
		if !item.RaceDate.Before(today) {
			return item, true
		}
	}

	return sorted[len(sorted)-1], true
}

// Window describes the voting state of the next race at a point in time.
type Window struct {
	Race     Race
	Deadline time.Time
	Open     bool
}

// CurrentWindow resolves the next race and whether it still accepts votes.
func CurrentWindow(items []Race, now time.Time) (Window, bool) {
	next, ok := NextRace(items, now)
	if !ok {
		return Window{}, false
	}

	deadline := VotingDeadline(next.RaceDate)
	return Window{
		Race:     next,
		Deadline: deadline,
		Open:     now.Before(deadline),
	}, true
}
