package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/porra/internal/domain/race"
)

func TestIsUndefinedTable(t *testing.T) {
	t.Run("matches 42P01", func(t *testing.T) {
		err := fmt.Errorf("select races: %w", &pq.Error{Code: "42P01", Message: `relation "races" does not exist`})
		if !isUndefinedTable(err) {
			t.Fatalf("expected true for undefined table error")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		if isUndefinedTable(&pq.Error{Code: "23505"}) {
			t.Fatalf("expected false for unique violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUndefinedTable(errors.New("relation does not exist")) {
			t.Fatalf("expected false for non-pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
	if isNotFound(errors.New("other")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestRaceRowRoundTripKeepsEventID(t *testing.T) {
	in := race.Race{
		ID:              3,
		Name:            "Grand Prix of the Americas",
		RaceDate:        time.Date(2026, 3, 27, 9, 0, 0, 0, time.UTC),
		ExternalEventID: "evt-cota",
	}
	got := raceRow(in).toDomain()
	if got != in {
		t.Fatalf("unexpected race: got=%+v want=%+v", got, in)
	}

	if row := raceRow(race.Race{ID: 4}); row.APIEventID.Valid {
		t.Fatalf("empty event id must be stored as NULL")
	}
}

func TestReplaceRacesStatements(t *testing.T) {
	stmts, err := replaceRacesStatements([]race.Race{
		{ID: 1, Name: "Portugal", RaceDate: time.Date(2026, 3, 27, 9, 0, 0, 0, time.UTC), ExternalEventID: "e2"},
		{ID: 2, Name: "Americas", RaceDate: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC), ExternalEventID: "e3"},
	})
	if err != nil {
		t.Fatalf("build statements: %v", err)
	}
	if len(stmts) != 3 {
		t.Fatalf("unexpected statement count: got=%d want=3", len(stmts))
	}

	if !strings.HasPrefix(stmts[0].query, "UPDATE races SET api_event_id = NULL") {
		t.Fatalf("event ids must be cleared before the upsert: %q", stmts[0].query)
	}
	if !strings.HasPrefix(stmts[1].query, "INSERT INTO races") || !strings.Contains(stmts[1].query, "api_event_id = EXCLUDED.api_event_id") {
		t.Fatalf("unexpected upsert: %q", stmts[1].query)
	}
	if len(stmts[1].args) != 2*len(raceColumns) {
		t.Fatalf("unexpected upsert args: got=%d want=%d", len(stmts[1].args), 2*len(raceColumns))
	}

	del := stmts[2]
	if !strings.HasPrefix(del.query, "DELETE FROM races") ||
		!strings.Contains(del.query, "FROM votes") ||
		!strings.Contains(del.query, "FROM points") {
		t.Fatalf("dropped races must be deleted only when unreferenced: %q", del.query)
	}
	ids, ok := del.args[0].(*pq.Int64Array)
	if !ok || len(*ids) != 2 || (*ids)[0] != 1 || (*ids)[1] != 2 {
		t.Fatalf("unexpected kept ids: %#v", del.args[0])
	}
}
