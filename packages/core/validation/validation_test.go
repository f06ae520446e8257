package validation

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"roster-api/packages/core/models"
)

var joined = time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC)

func validPlayer() models.Player {
	return models.Player{
		UserID:      "user-1",
		Name:        "Ana Souza",
		DateOfBirth: time.Date(2014, time.March, 15, 0, 0, 0, 0, time.UTC),
		Audit:       models.Audit{CreatedBy: "user-1"},
	}
}

func validAssignment() models.TeamAssignment {
	return models.TeamAssignment{
		PlayerID:         1,
		TeamName:         "Eagles",
		ChampionshipName: "Spring League",
		JoinedDate:       joined,
		Audit:            models.Audit{CreatedBy: "user-1"},
	}
}

func validStatistic() models.PlayerStatistic {
	return models.PlayerStatistic{
		TeamAssignmentID: 1,
		GameDate:         time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC),
		MinutesPlayed:    90,
		JerseyNumber:     10,
		Audit:            models.Audit{CreatedBy: "user-1"},
	}
}

func TestPlayer(t *testing.T) {
	if errs := Player(validPlayer()); !errs.Valid() {
		t.Fatalf("expected valid player, got %v", errs)
	}

	long := strings.Repeat("x", 51)
	p := validPlayer()
	p.Name = "  "
	p.UserID = ""
	p.DateOfBirth = time.Time{}
	p.Gender = &long

	errs := Player(p)
	want := []string{"date_of_birth", "gender", "name", "user_id"}
	if got := errs.Fields(); !reflect.DeepEqual(got, want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}

	p = validPlayer()
	p.Name = strings.Repeat("é", 201)
	errs = Player(p)
	if got := errs["name"]; len(got) != 1 || got[0] != "must be at most 200 characters" {
		t.Fatalf("name errors = %v", got)
	}

	p = validPlayer()
	p.Name = strings.Repeat("é", 200)
	if errs := Player(p); !errs.Valid() {
		t.Fatalf("expected 200 characters to be accepted, got %v", errs)
	}
}

func TestTeamAssignment(t *testing.T) {
	if errs := TeamAssignment(validAssignment()); !errs.Valid() {
		t.Fatalf("expected valid assignment, got %v", errs)
	}

	tests := []struct {
		name  string
		edit  func(*models.TeamAssignment)
		field string
	}{
		{"blank team", func(a *models.TeamAssignment) { a.TeamName = "" }, "team_name"},
		{"blank championship", func(a *models.TeamAssignment) { a.ChampionshipName = " " }, "championship_name"},
		{"long championship", func(a *models.TeamAssignment) { a.ChampionshipName = strings.Repeat("c", 201) }, "championship_name"},
		{"zero joined", func(a *models.TeamAssignment) { a.JoinedDate = time.Time{} }, "joined_date"},
		{"left before joined", func(a *models.TeamAssignment) {
			left := joined.AddDate(0, 0, -1)
			a.LeftDate = &left
		}, "left_date"},
		{"missing player", func(a *models.TeamAssignment) { a.PlayerID = 0 }, "player_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAssignment()
			tt.edit(&a)
			errs := TeamAssignment(a)
			if len(errs) != 1 || len(errs[tt.field]) == 0 {
				t.Fatalf("errors = %v, want only %s", errs, tt.field)
			}
		})
	}

	a := validAssignment()
	sameDay := joined
	a.LeftDate = &sameDay
	if errs := TeamAssignment(a); !errs.Valid() {
		t.Fatalf("expected left date equal to joined date to be valid, got %v", errs)
	}
}

func TestPlayerStatistic(t *testing.T) {
	if errs := PlayerStatistic(validStatistic()); !errs.Valid() {
		t.Fatalf("expected valid statistic, got %v", errs)
	}

	s := models.PlayerStatistic{
		MinutesPlayed: -1,
		JerseyNumber:  0,
		Goals:         -2,
		Assists:       -3,
	}
	errs := PlayerStatistic(s)
	want := []string{"assists", "game_date", "goals", "jersey_number", "minutes_played", "team_assignment_id"}
	if got := errs.Fields(); !reflect.DeepEqual(got, want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
	if got := errs["minutes_played"][0]; got != "must be greater than or equal to 0" {
		t.Fatalf("minutes message = %q", got)
	}
	if got := errs["jersey_number"][0]; got != "must be greater than or equal to 1" {
		t.Fatalf("jersey message = %q", got)
	}
}

func TestProvenance(t *testing.T) {
	if errs := Provenance("created_by", "user-1"); !errs.Valid() {
		t.Fatalf("expected valid provenance, got %v", errs)
	}

	errs := Provenance("modified_by", "  ")
	if got := errs["modified_by"]; len(got) != 1 || got[0] != "is required" {
		t.Fatalf("modified_by errors = %v", got)
	}

	merged := PlayerStatistic(models.PlayerStatistic{TeamAssignmentID: 1, JerseyNumber: 1}).
		Merge(Provenance("created_by", ""))
	want := []string{"created_by", "game_date"}
	if got := merged.Fields(); !reflect.DeepEqual(got, want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
}
