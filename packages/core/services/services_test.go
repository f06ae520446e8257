package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"roster-api/packages/core/audit"
	apperrors "roster-api/packages/core/errors"
	"roster-api/packages/core/models"
	"roster-api/packages/core/repository"
	"roster-api/packages/core/testdb"

	"github.com/jonboulle/clockwork"
)

type fixture struct {
	players     *PlayerService
	assignments *TeamAssignmentService
	statistics  *StatisticService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC))
	store := repository.NewStore(testdb.Open(t), audit.NewStamper(clock))
	return fixture{
		players:     NewPlayerService(store),
		assignments: NewTeamAssignmentService(store),
		statistics:  NewStatisticService(store),
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func (f fixture) player(t *testing.T) *models.Player {
	t.Helper()
	p := &models.Player{UserID: "owner-1", Name: "Ana", DateOfBirth: day(2014, time.March, 15)}
	if err := f.players.CreatePlayer(context.Background(), "user-1", p); err != nil {
		t.Fatalf("CreatePlayer() error = %v", err)
	}
	return p
}

func (f fixture) assignment(t *testing.T, playerID uint, team string) *models.TeamAssignment {
	t.Helper()
	a := &models.TeamAssignment{PlayerID: playerID, TeamName: team, ChampionshipName: "Spring League", JoinedDate: day(2024, time.September, 1)}
	if err := f.assignments.AddAssignment(context.Background(), "user-1", a); err != nil {
		t.Fatalf("AddAssignment() error = %v", err)
	}
	return a
}

func TestPlayerServiceNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.players.GetPlayer(ctx, 5); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetPlayer() error = %v, want not found", err)
	}
	if err := f.players.DeletePlayer(ctx, "user-1", 5); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("DeletePlayer() error = %v, want not found", err)
	}

	p := f.player(t)
	if err := f.players.DeletePlayer(ctx, "user-1", p.ID); err != nil {
		t.Fatalf("DeletePlayer() error = %v", err)
	}
	if _, err := f.players.GetPlayer(ctx, p.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetPlayer() after delete error = %v, want not found", err)
	}
}

func TestAddAssignmentRejectsActiveDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.player(t)
	first := f.assignment(t, p.ID, "Eagles")

	second := &models.TeamAssignment{PlayerID: p.ID, TeamName: "Eagles", ChampionshipName: "Spring League", JoinedDate: day(2024, time.October, 1)}
	err := f.assignments.AddAssignment(ctx, "user-1", second)
	if !errors.Is(err, apperrors.ErrDuplicateActiveAssignment) {
		t.Fatalf("AddAssignment() error = %v, want duplicate active assignment", err)
	}

	// A closed assignment to the same team is history, not a duplicate.
	closedRow := &models.TeamAssignment{PlayerID: p.ID, TeamName: "Eagles", ChampionshipName: "Spring League", JoinedDate: day(2023, time.September, 1)}
	left := day(2024, time.June, 30)
	closedRow.LeftDate = &left
	if err := f.assignments.AddAssignment(ctx, "user-1", closedRow); err != nil {
		t.Fatalf("AddAssignment(closed) error = %v", err)
	}

	if _, err := f.assignments.CloseAssignment(ctx, "user-1", first.ID, day(2025, time.June, 30)); err != nil {
		t.Fatalf("CloseAssignment() error = %v", err)
	}
	if err := f.assignments.AddAssignment(ctx, "user-1", second); err != nil {
		t.Fatalf("AddAssignment() after close error = %v", err)
	}

	active, err := f.assignments.ListAssignments(ctx, p.ID, true)
	if err != nil {
		t.Fatalf("ListAssignments() error = %v", err)
	}
	if len(active) != 1 || active[0].ID != second.ID {
		t.Fatalf("active assignments = %+v, want only %d", active, second.ID)
	}
}

func TestAddAssignmentChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	missingPlayer := &models.TeamAssignment{PlayerID: 77, TeamName: "Eagles", ChampionshipName: "Spring League", JoinedDate: day(2024, time.September, 1)}
	if err := f.assignments.AddAssignment(ctx, "user-1", missingPlayer); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("AddAssignment(missing player) error = %v, want not found", err)
	}

	invalid := &models.TeamAssignment{PlayerID: 77, TeamName: "", ChampionshipName: "Spring League"}
	if err := f.assignments.AddAssignment(ctx, "user-1", invalid); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("AddAssignment(invalid) error = %v, want validation failure", err)
	}

	if _, err := f.assignments.ListAssignments(ctx, 77, false); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("ListAssignments(missing player) error = %v, want not found", err)
	}
}

func TestUpdateAssignment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.player(t)
	eagles := f.assignment(t, p.ID, "Eagles")
	hawks := f.assignment(t, p.ID, "Hawks")

	// Saving a row unchanged must not trip over itself.
	same := *eagles
	if err := f.assignments.UpdateAssignment(ctx, "user-2", &same); err != nil {
		t.Fatalf("UpdateAssignment(unchanged) error = %v", err)
	}

	rename := *hawks
	rename.TeamName = "Eagles"
	if err := f.assignments.UpdateAssignment(ctx, "user-2", &rename); !errors.Is(err, apperrors.ErrDuplicateActiveAssignment) {
		t.Fatalf("UpdateAssignment(rename onto active) error = %v, want duplicate", err)
	}

	missing := *hawks
	missing.ID = 404
	if err := f.assignments.UpdateAssignment(ctx, "user-2", &missing); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("UpdateAssignment(missing) error = %v, want not found", err)
	}

	if _, err := f.assignments.CloseAssignment(ctx, "user-2", hawks.ID, day(2024, time.August, 1)); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("CloseAssignment(before joined) error = %v, want validation failure", err)
	}
	closed, err := f.assignments.CloseAssignment(ctx, "user-2", hawks.ID, day(2025, time.May, 31))
	if err != nil {
		t.Fatalf("CloseAssignment() error = %v", err)
	}
	if closed.IsActive() || !closed.LeftDate.Equal(day(2025, time.May, 31)) {
		t.Fatalf("closed assignment = %+v", closed)
	}
	if closed.ModifiedBy == nil || *closed.ModifiedBy != "user-2" {
		t.Fatalf("modified by = %v, want user-2", closed.ModifiedBy)
	}
}

func TestStatisticServiceReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.player(t)
	a := f.assignment(t, p.ID, "Eagles")

	dangling := &models.PlayerStatistic{TeamAssignmentID: 999, GameDate: day(2025, time.January, 5), MinutesPlayed: 90, JerseyNumber: 9}
	err := f.statistics.AddStatistic(ctx, "user-1", dangling)
	var domainErr *apperrors.Error
	if !errors.As(err, &domainErr) || domainErr.Code != apperrors.CodeValidationFailed {
		t.Fatalf("AddStatistic(dangling) error = %v, want validation failure", err)
	}
	if _, ok := domainErr.Fields["team_assignment_id"]; !ok {
		t.Fatalf("fields = %v, want team_assignment_id", domainErr.Fields)
	}

	stat := &models.PlayerStatistic{TeamAssignmentID: a.ID, GameDate: day(2025, time.January, 5), MinutesPlayed: 90, JerseyNumber: 9, Goals: 2}
	if err := f.statistics.AddStatistic(ctx, "user-1", stat); err != nil {
		t.Fatalf("AddStatistic() error = %v", err)
	}

	if _, err := f.statistics.ListByDateRange(ctx, p.ID, day(2025, time.February, 1), day(2025, time.January, 1)); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("ListByDateRange(inverted) error = %v, want validation failure", err)
	}
	ranged, err := f.statistics.ListByDateRange(ctx, p.ID, day(2025, time.January, 5), day(2025, time.January, 5))
	if err != nil || len(ranged) != 1 {
		t.Fatalf("ListByDateRange(single day) = %v, %v; want one row", ranged, err)
	}

	aggregates, err := f.statistics.GetAggregates(ctx, p.ID, nil)
	if err != nil {
		t.Fatalf("GetAggregates() error = %v", err)
	}
	if aggregates.Games != 1 || aggregates.TotalGoals != 2 || aggregates.AverageMinutes != 90 {
		t.Fatalf("aggregates = %+v", aggregates)
	}
	if _, err := f.statistics.GetAggregates(ctx, 999, nil); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetAggregates(missing player) error = %v, want not found", err)
	}
	if _, err := f.statistics.ListByAssignment(ctx, 999); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("ListByAssignment(missing) error = %v, want not found", err)
	}

	if err := f.statistics.DeleteStatistic(ctx, "user-1", stat.ID); err != nil {
		t.Fatalf("DeleteStatistic() error = %v", err)
	}
	if _, err := f.statistics.GetStatistic(ctx, stat.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("GetStatistic() after delete error = %v, want not found", err)
	}
}
